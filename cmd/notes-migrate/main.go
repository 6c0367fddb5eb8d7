// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the notes-migrate CLI, a one-shot
// migration of locally stored Apple Notes into Google Keep. Running the
// bare command executes the whole pipeline: extract, back up, upload.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/notes-migrate/internal/keep"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd runs the full migration pipeline. The extract and upload
// subcommands run its halves separately.
var rootCmd = &cobra.Command{
	Use:   "notes-migrate",
	Short: "Migrate Apple Notes to Google Keep",
	Long: `notes-migrate reads notes from the local Apple Notes database, writes a
timestamped backup file, and uploads each note to Google Keep through its
unofficial API. It prompts interactively for Google credentials; accounts
with two-factor enabled need an App Password.

The run is one-shot and sequential. Use "extract" for an offline dry run
that only writes the backup file, and "upload" to replay a backup file
without touching the Apple Notes database again.`,
	RunE:          runMigrate,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./notes-migrate.yaml or ~/.config/notes-migrate/config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable wire-level debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("notes-migrate")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "notes-migrate"))
		}
	}

	viper.SetEnvPrefix("NOTES_MIGRATE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		var authErr *keep.AuthError
		if errors.As(err, &authErr) {
			fmt.Fprintln(os.Stderr, "\n"+keep.AuthGuidance)
		}
		os.Exit(1)
	}
}
