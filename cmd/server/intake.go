package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fadilmartias/labour-intake/internal/client"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var intakeCmd = &cobra.Command{
	Use:   "intake",
	Short: "Run an interview in the terminal against a running server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runIntake(cmd)
	},
}

func init() {
	rootCmd.AddCommand(intakeCmd)
}

func runIntake(cmd *cobra.Command) error {
	ctx := cmd.Context()
	api := client.New(apiURL, apiTimeout)

	opening := promptui.Prompt{
		Label: "Tell us about yourself and your work",
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("please say something")
			}
			return nil
		},
	}
	message, err := opening.Run()
	if err != nil {
		return err
	}

	session, err := api.StartIntake(ctx, message)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Language: %s, trade: %s\n", session.Language, session.Trade)

	answers, err := askQuestions(session.AllQuestions, func(label string) (string, error) {
		p := promptui.Prompt{Label: label}
		return p.Run()
	})
	if err != nil {
		return err
	}

	confirm := promptui.Select{
		Label: "Submit your answers?",
		Items: []string{"Yes", "No"},
	}
	if _, choice, err := confirm.Run(); err != nil || choice != "Yes" {
		fmt.Fprintln(cmd.OutOrStdout(), "Answers not submitted")
		return err
	}

	result, err := api.SubmitIntake(ctx, session.SessionID, answers)
	if err != nil {
		return err
	}
	p := result.Profile

	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.SetTitle("Profile %s", p.ID)
	tw.AppendRows([]table.Row{
		{"Name", p.Name},
		{"Trade", p.Trade},
		{"Experience", fmt.Sprintf("%d years", p.Experience)},
		{"Score", result.Score},
		{"Badge", p.Badge},
		{"Readiness", p.WorkReadiness},
		{"Recommendation", p.HiringRecommendation},
		{"Evaluated by", p.EvaluationSource},
	})
	tw.AppendFooter(table.Row{"Summary", p.AISummary})
	tw.Render()
	return nil
}

// askQuestions collects one answer per question and stops at the first failed prompt,
// so an interrupt never submits a partial interview.
func askQuestions(questions []string, ask func(label string) (string, error)) ([]string, error) {
	answers := make([]string, 0, len(questions))
	for i, q := range questions {
		answer, err := ask(fmt.Sprintf("[%d/%d] %s", i+1, len(questions), q))
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		answers = append(answers, answer)
	}
	return answers, nil
}
