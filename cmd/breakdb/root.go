package main

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"breakdb/internal/logging"
)

type rootOptions struct {
	quiet   bool
	verbose bool
	noColor bool

	logger *log.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "breakdb",
		Short: "Collate fracture X-ray DICOM files into an annotated database",
		Long: `breakdb walks directories of heterogeneous DICOM files, merges the
fragments that describe the same X-ray image, and collates them into a
tabular database that can be converted between formats and exported as
annotated image datasets.`,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.logger = logging.New(logging.Options{
				Quiet:   opts.quiet,
				Verbose: opts.verbose,
				NoColor: opts.noColor,
			})
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false,
		"only log errors")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false,
		"log debug output")
	cmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false,
		"disable colored output")

	cmd.AddCommand(
		newCreateCmd(opts),
		newConvertCmd(opts),
		newExportCmd(opts),
		newPrintTagsCmd(opts),
	)
	return cmd
}
