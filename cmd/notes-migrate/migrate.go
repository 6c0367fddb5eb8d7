// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/notes-migrate/internal/applenotes"
	"github.com/pdiddy/notes-migrate/internal/backup"
	"github.com/pdiddy/notes-migrate/internal/credentials"
	"github.com/pdiddy/notes-migrate/internal/keep"
	"github.com/pdiddy/notes-migrate/pkg/types"
)

func init() {
	rootCmd.PersistentFlags().String("db-path", "", "Apple Notes database path (default: the standard location under ~/Library)")
	rootCmd.PersistentFlags().String("backup-dir", "", "directory for the backup file (default \".\")")
	rootCmd.PersistentFlags().String("format", "", "backup format: json or yaml (default json)")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	banner(out, "Apple Notes to Google Keep Migration Tool")

	fmt.Fprintln(out, "\nStep 1: Extracting notes from Apple Notes...")
	dbPath, err := sourceDBPath(cmd)
	if err != nil {
		return err
	}
	notes, err := applenotes.Extract(dbPath, out)
	if err != nil {
		return err
	}
	if len(notes) == 0 {
		fmt.Fprintln(out, "No notes found in the Apple Notes database.")
		return nil
	}

	fmt.Fprintln(out, "\nStep 2: Creating backup...")
	backupCfg, err := backupConfig(cmd)
	if err != nil {
		return err
	}
	path, err := backup.Write(notes, backupCfg.Dir, backupCfg.Format)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Backup saved to: %s\n", path)

	fmt.Fprintln(out, "\nStep 3: Google Keep login")
	fmt.Fprintln(out, strings.Repeat("-", 60))
	creds, err := credentials.Ask(credentials.NewTerminalPrompter(), viper.GetString("keep.email"))
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "\nStep 4: Uploading to Google Keep...")
	fmt.Fprintln(out, strings.Repeat("-", 60))
	client := newKeepClient(cmd)
	if err := login(client, creds, out); err != nil {
		return err
	}
	keep.UploadAll(client, notes, out)

	banner(out, "Migration complete!")
	return nil
}

// login authenticates the client. On failure the returned *keep.AuthError
// propagates to main, which adds the app-password guidance; no uploads
// happen unless this succeeds.
func login(client *keep.Client, creds credentials.Credentials, w io.Writer) error {
	fmt.Fprintln(w, "\nConnecting to Google Keep...")
	if err := client.Login(creds.Email, creds.Password); err != nil {
		return err
	}
	fmt.Fprintln(w, "Successfully logged in to Google Keep")
	return nil
}

func banner(w io.Writer, title string) {
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("=", 60))
}

// sourceDBPath resolves the source store path: flag, then config, then the
// platform default.
func sourceDBPath(cmd *cobra.Command) (string, error) {
	if path, _ := cmd.Flags().GetString("db-path"); path != "" {
		return path, nil
	}
	if path := viper.GetString("source.db_path"); path != "" {
		return path, nil
	}
	return applenotes.DefaultDBPath()
}

// backupConfig resolves the backup directory and format.
func backupConfig(cmd *cobra.Command) (types.BackupConfig, error) {
	dir, _ := cmd.Flags().GetString("backup-dir")
	if dir == "" {
		dir = viper.GetString("backup.dir")
	}
	if dir == "" {
		dir = "."
	}

	format, _ := cmd.Flags().GetString("format")
	if format == "" {
		format = viper.GetString("backup.format")
	}
	if format == "" {
		format = string(types.BackupJSON)
	}
	switch types.BackupFormat(format) {
	case types.BackupJSON, types.BackupYAML:
	default:
		return types.BackupConfig{}, fmt.Errorf("unknown backup format %q (use json or yaml)", format)
	}

	return types.BackupConfig{Dir: dir, Format: types.BackupFormat(format)}, nil
}

// newKeepClient builds the destination client from config, attaching a
// debug logger when --verbose is set.
func newKeepClient(cmd *cobra.Command) *keep.Client {
	cfg := types.KeepConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("keep.timeout"),
			UserAgent: viper.GetString("keep.user_agent"),
		},
		BaseURL: viper.GetString("keep.base_url"),
		AuthURL: viper.GetString("keep.auth_url"),
	}
	client := keep.NewClient(cfg)
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		client = client.WithLogger(zerolog.New(os.Stderr).With().Timestamp().Logger())
	}
	return client
}
