// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/notes-migrate/internal/backup"
	"github.com/pdiddy/notes-migrate/internal/credentials"
	"github.com/pdiddy/notes-migrate/internal/keep"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <backup-file>",
	Short: "Upload notes from a previously written backup file",
	Long: `Upload replays a backup file produced by a prior run against Google Keep,
without reading the Apple Notes database. Lets an interrupted migration
resume from its durability checkpoint.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	notes, err := backup.Read(args[0])
	if err != nil {
		return err
	}
	if len(notes) == 0 {
		fmt.Fprintln(out, "Backup file contains no notes.")
		return nil
	}
	fmt.Fprintf(out, "Loaded %d notes from %s\n", len(notes), args[0])

	creds, err := credentials.Ask(credentials.NewTerminalPrompter(), viper.GetString("keep.email"))
	if err != nil {
		return err
	}

	client := newKeepClient(cmd)
	if err := login(client, creds, out); err != nil {
		return err
	}
	keep.UploadAll(client, notes, out)
	return nil
}
