package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quizlr/quizlr/internal/quiz"
)

// strategies is the named set the score command can run, with the standard
// parameters for each.
func strategies() map[string]quiz.Strategy {
	return map[string]quiz.Strategy{
		"simple": quiz.Simple{},
		"time": quiz.TimeWeighted{
			BaseTimeSeconds:  60,
			PenaltyPerSecond: 0.01,
		},
		"difficulty": quiz.DifficultyWeighted{
			EasyMultiplier:   1.0,
			MediumMultiplier: 1.5,
			HardMultiplier:   2.0,
		},
		"adaptive": quiz.Adaptive{
			TimeWeight:        0.2,
			DifficultyWeight:  0.3,
			StreakWeight:      0.2,
			ConsistencyWeight: 0.1,
		},
	}
}

var scoreCmd = &cobra.Command{
	Use:   "score <quiz.json> <session.json>",
	Short: "Score a session against its quiz",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("strategy")

		q, err := readQuiz(args[0])
		if err != nil {
			return err
		}
		s, err := readSession(args[1])
		if err != nil {
			return err
		}

		all := strategies()
		selected := map[string]quiz.Strategy{}
		if name == "all" {
			selected = all
		} else {
			st, ok := all[name]
			if !ok {
				return fmt.Errorf("unknown strategy %q (simple, time, difficulty, adaptive, all)", name)
			}
			selected[name] = st
		}

		report := struct {
			Summary quiz.SessionSummary   `json:"summary"`
			Scores  map[string]quiz.Score `json:"scores"`
		}{
			Summary: s.Summary(),
			Scores:  make(map[string]quiz.Score, len(selected)),
		}
		for n, st := range selected {
			report.Scores[n] = st.Calculate(s, q.Questions)
		}

		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		fmt.Println(string(out))
		return nil
	},
}

func readQuiz(path string) (*quiz.Quiz, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read quiz: %w", err)
	}
	var q quiz.Quiz
	if err := json.Unmarshal(data, &q); err != nil {
		return nil, fmt.Errorf("parse quiz: %w", err)
	}
	return &q, nil
}

func readSession(path string) (*quiz.Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	var s quiz.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}
	return &s, nil
}

func init() {
	scoreCmd.Flags().StringP("strategy", "s", "all", "Scoring strategy: simple, time, difficulty, adaptive, or all")
}
