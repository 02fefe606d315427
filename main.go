package main

import (
	"os"

	"github.com/quizlr/quizlr/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
