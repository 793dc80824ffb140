package main

import (
	"fmt"
	"os"

	"github.com/fadilmartias/labour-intake/internal/client"
	"github.com/fadilmartias/labour-intake/internal/repository"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search evaluated profiles on a running server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		filter, err := searchFilterFromFlags(cmd)
		if err != nil {
			return err
		}
		profiles, page, err := client.New(apiURL, apiTimeout).Search(cmd.Context(), filter)
		if err != nil {
			return err
		}

		tw := table.NewWriter()
		tw.SetOutputMirror(os.Stdout)
		tw.AppendHeader(table.Row{"ID", "Name", "Trade", "Exp", "Location", "Salary", "Score", "Badge"})
		for _, p := range profiles {
			salary := ""
			if p.SalaryRange.Min != nil && p.SalaryRange.Max != nil {
				salary = fmt.Sprintf("%d-%d", *p.SalaryRange.Min, *p.SalaryRange.Max)
			}
			tw.AppendRow(table.Row{p.ID, p.Name, p.Trade, p.Experience, p.Location, salary, p.TotalScore, p.Badge})
		}
		if page != nil {
			tw.AppendFooter(table.Row{"", "", "", "", "", "", "Page", fmt.Sprintf("%d/%d (%d)", page.Page, page.TotalPages, page.TotalItems)})
		}
		tw.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	f := searchCmd.Flags()
	f.String("trade", "", "trade substring")
	f.String("location", "", "location substring")
	f.Int("min-experience", 0, "minimum years of experience")
	f.Int("min-salary", 0, "lowest acceptable monthly wage")
	f.Int("max-salary", 0, "highest acceptable monthly wage")
	f.Int("page", 1, "page number")
	f.Int("page-size", repository.DefaultPageSize, "results per page")
}

// searchFilterFromFlags leaves numeric bounds nil unless the flag was given.
func searchFilterFromFlags(cmd *cobra.Command) (repository.ProfileFilter, error) {
	f := cmd.Flags()
	var filter repository.ProfileFilter
	var err error
	if filter.Trade, err = f.GetString("trade"); err != nil {
		return filter, err
	}
	if filter.Location, err = f.GetString("location"); err != nil {
		return filter, err
	}
	optional := func(name string) (*int, error) {
		if !f.Changed(name) {
			return nil, nil
		}
		v, err := f.GetInt(name)
		return &v, err
	}
	if filter.MinExperience, err = optional("min-experience"); err != nil {
		return filter, err
	}
	if filter.MinSalary, err = optional("min-salary"); err != nil {
		return filter, err
	}
	if filter.MaxSalary, err = optional("max-salary"); err != nil {
		return filter, err
	}
	if filter.Page, err = f.GetInt("page"); err != nil {
		return filter, err
	}
	if filter.PageSize, err = f.GetInt("page-size"); err != nil {
		return filter, err
	}
	return filter, nil
}
