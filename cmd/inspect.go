package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quizlr/quizlr/internal/quiz"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <quiz.json>",
	Short: "Summarize a quiz file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read quiz: %w", err)
		}
		var q quiz.Quiz
		if err := json.Unmarshal(data, &q); err != nil {
			return fmt.Errorf("parse quiz: %w", err)
		}

		fmt.Printf("Title:       %s\n", q.Title)
		if q.Description != nil {
			fmt.Printf("Description: %s\n", *q.Description)
		}
		fmt.Printf("Questions:   %d\n", len(q.Questions))
		fmt.Printf("Topics:      %d\n", len(q.TopicIDs))
		fmt.Printf("Difficulty:  %.2f to %.2f\n", q.DifficultyRange.Min, q.DifficultyRange.Max)
		fmt.Printf("Duration:    ~%d min\n", q.EstimatedDurationMinutes)
		fmt.Printf("Pass mark:   %.0f%%\n", q.PassThreshold*100)
		fmt.Printf("Skippable:   %v\n", q.AllowSkip)
		fmt.Printf("Randomized:  %v\n", q.RandomizeQuestions)

		if len(q.Questions) == 0 {
			return nil
		}

		fmt.Println()
		fmt.Printf("%-4s  %-22s  %-10s  %s\n", "#", "Type", "Difficulty", "Est sec")
		fmt.Println(strings.Repeat("─", 50))
		for i, question := range q.Questions {
			fmt.Printf("%-4d  %-22s  %-10.2f  %d\n",
				i+1,
				question.Variant.Kind(),
				question.Difficulty,
				question.EstimatedTimeSeconds,
			)
		}
		return nil
	},
}
