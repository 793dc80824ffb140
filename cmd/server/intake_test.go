package main

import (
	"errors"
	"testing"

	"github.com/manifoldco/promptui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAskQuestions(t *testing.T) {
	var labels []string
	answers, err := askQuestions([]string{"Name?", "Age?"}, func(label string) (string, error) {
		labels = append(labels, label)
		return "answer " + label, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"[1/2] Name?", "[2/2] Age?"}, labels)
	assert.Equal(t, []string{"answer [1/2] Name?", "answer [2/2] Age?"}, answers)
}

func TestAskQuestionsStopsOnInterrupt(t *testing.T) {
	asked := 0
	answers, err := askQuestions([]string{"Name?", "Age?", "Trade?"}, func(string) (string, error) {
		asked++
		if asked == 2 {
			return "", promptui.ErrInterrupt
		}
		return "x", nil
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, promptui.ErrInterrupt))
	assert.Contains(t, err.Error(), "question 2")
	assert.Nil(t, answers)
	assert.Equal(t, 2, asked)
}
