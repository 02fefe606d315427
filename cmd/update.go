package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/quizlr/quizlr/internal/selfupdate"
)

var (
	updateCheckOnly bool
	updateTarget    string
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update quizlr to the latest release",
	RunE: func(cmd *cobra.Command, args []string) error {
		checker := selfupdate.NewChecker(selfupdate.WithTimeout(2 * time.Minute))

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		if updateCheckOnly {
			return runUpdateCheck(ctx, checker)
		}

		input := &selfupdate.UpdateInput{
			CurrentVersion: version,
			TargetVersion:  updateTarget,
		}
		err := checker.Update(ctx, input, func(p selfupdate.UpdateProgress) {
			fmt.Println(p.Message)
		})

		switch {
		case err == nil:
			return nil
		case errors.Is(err, selfupdate.ErrDevBuild):
			fmt.Println("This is a development build; install a release build to use the updater.")
			return nil
		case errors.Is(err, selfupdate.ErrAlreadyLatest):
			fmt.Println("quizlr is up to date.")
			return nil
		case os.IsPermission(err):
			return fmt.Errorf("%w\n\nTry running: sudo quizlr update", err)
		default:
			return err
		}
	},
}

func runUpdateCheck(ctx context.Context, checker *selfupdate.Checker) error {
	result, err := checker.Check(ctx, &selfupdate.CheckInput{Version: version})
	if err != nil {
		return fmt.Errorf("check for updates: %w", err)
	}
	if !result.UpdateAvailable {
		fmt.Println("quizlr is up to date.")
		return nil
	}
	fmt.Printf("Update available: %s -> %s\n", result.CurrentVersion, result.LatestVersion)
	if result.ReleaseURL != "" {
		fmt.Println(result.ReleaseURL)
	}
	return nil
}

func init() {
	updateCmd.Flags().BoolVar(&updateCheckOnly, "check", false, "Only check for a newer release, do not install it")
	updateCmd.Flags().StringVar(&updateTarget, "target", "", "Install a specific release tag instead of the latest")

	rootCmd.AddCommand(updateCmd)
}
