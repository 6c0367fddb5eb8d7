// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/notes-migrate/internal/applenotes"
	"github.com/pdiddy/notes-migrate/internal/backup"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract notes and write the backup file without uploading",
	Long: `Extract reads the Apple Notes database and writes the timestamped backup
file, skipping the upload phase entirely. Useful as an offline dry run; the
resulting file can be replayed later with "upload".`,
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

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

	backupCfg, err := backupConfig(cmd)
	if err != nil {
		return err
	}
	path, err := backup.Write(notes, backupCfg.Dir, backupCfg.Format)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Backup saved to: %s\n", path)
	return nil
}
