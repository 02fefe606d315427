package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quizlr/quizlr/internal/quiz"
	"github.com/quizlr/quizlr/internal/storage"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Read and write the configured storage backend",
}

// openStore builds the storage backend from QUIZLR_* env vars, with the --db
// flag taking priority for the local backend.
func openStore(cmd *cobra.Command) (storage.Store, error) {
	cfg := storage.ConfigFromEnv()
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		if err := storage.EnsureDir(p); err != nil {
			return nil, err
		}
		cfg.DBPath = p
	}
	logger := newLogger()
	cfg.GitHub.Logger = &logger
	return storage.Open(cfg)
}

var storePutCmd = &cobra.Command{
	Use:   "put <quiz.json>",
	Short: "Validate a quiz file and save it under quizzes/<id>.json",
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

		s, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}

		key := fmt.Sprintf("quizzes/%s.json", q.ID)
		if err := s.Save(context.Background(), key, data); err != nil {
			return fmt.Errorf("save quiz: %w", err)
		}
		fmt.Println(key)
		return nil
	},
}

var storeGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a stored value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}

		data, err := s.Load(context.Background(), args[0])
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

var storeListCmd = &cobra.Command{
	Use:   "list [prefix]",
	Short: "List stored keys, optionally under a prefix",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prefix := ""
		if len(args) == 1 {
			prefix = args[0]
		}

		s, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}

		keys, err := s.List(context.Background(), prefix)
		if err != nil {
			return fmt.Errorf("list keys: %w", err)
		}
		for _, k := range keys {
			fmt.Println(k)
		}
		return nil
	},
}

func init() {
	storeCmd.AddCommand(storePutCmd)
	storeCmd.AddCommand(storeGetCmd)
	storeCmd.AddCommand(storeListCmd)

	rootCmd.AddCommand(storeCmd)
}
