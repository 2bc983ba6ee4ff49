package cmd

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/feedbackhub/feedbackhub/config"
)

var resetCmdFlags struct {
	Force bool
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the database file",
	Long:  `This command deletes the sqlite database file, removing all users and feedback. The schema is recreated on the next start.`,
	Run:   reset,
}

func init() {
	resetCmd.Flags().BoolVar(&resetCmdFlags.Force, "force", false, "Delete without confirmation")

	rootCmd.AddCommand(resetCmd)
}

func reset(_ *cobra.Command, _ []string) {
	cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if !resetCmdFlags.Force {
		log.Fatal("refusing to delete the database without --force")
	}

	if err := os.Remove(cfg.Database.Path); err != nil {
		if os.IsNotExist(err) {
			log.Info("database file does not exist, nothing to do", "path", cfg.Database.Path)
			return
		}
		log.Fatalf("failed to delete database file: %v", err)
	}

	log.Info("database file deleted", "path", cfg.Database.Path)
}
