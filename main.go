package main

import (
	"os"

	"github.com/feedbackhub/feedbackhub/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
