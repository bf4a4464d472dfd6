package main

import (
	"github.com/spf13/cobra"

	"breakdb/internal/database"
)

func newConvertCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert SOURCE DEST",
		Short: "Convert a database between formats",
		Long: `Convert reads a database in one format and writes it out in another,
both formats chosen by file extension (.csv, .json, .xlsx).`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			root.logger.Info("converting database", "from", args[0], "to", args[1])
			return database.Convert(args[0], args[1])
		},
	}
	return cmd
}
