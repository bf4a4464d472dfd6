package main

import (
	"errors"

	"github.com/spf13/cobra"

	"breakdb/internal/collate"
	"breakdb/internal/config"
)

func newCreateCmd(root *rootOptions) *cobra.Command {
	var (
		output           string
		extensions       []string
		pattern          string
		relativePaths    bool
		skipBroken       bool
		ignoreDuplicates bool
		workers          int
		configPath       string
		saveConfigPath   string
	)

	cmd := &cobra.Command{
		Use:   "create [flags] DIRS...",
		Short: "Collate DICOM files into a new database",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dirs := args

			if configPath != "" {
				cfg, err := config.LoadCreate(configPath)
				if err != nil {
					return err
				}
				if len(dirs) == 0 {
					dirs = cfg.Paths
				}
				if output == "" {
					output = cfg.Output
				}
				if len(extensions) == 0 {
					extensions = cfg.Extensions
				}
				if pattern == "" {
					pattern = cfg.Pattern
				}
				relativePaths = relativePaths || cfg.RelativePaths
				skipBroken = skipBroken || cfg.SkipBroken
				ignoreDuplicates = ignoreDuplicates || cfg.IgnoreDuplicates
				if workers == 0 {
					workers = cfg.Workers
				}
			}

			if len(dirs) == 0 {
				return errors.New("at least one directory to search is required")
			}
			if output == "" {
				return errors.New("an output database path is required")
			}

			if saveConfigPath != "" {
				err := config.SaveCreate(saveConfigPath, config.Create{
					Paths:            dirs,
					Output:           output,
					Extensions:       extensions,
					Pattern:          pattern,
					RelativePaths:    relativePaths,
					SkipBroken:       skipBroken,
					IgnoreDuplicates: ignoreDuplicates,
					Workers:          workers,
				})
				if err != nil {
					return err
				}
			}

			return collate.Create(dirs, output, collate.Options{
				Extensions:       extensions,
				Pattern:          pattern,
				RelativePaths:    relativePaths,
				SkipBroken:       skipBroken,
				IgnoreDuplicates: ignoreDuplicates,
				Workers:          workers,
				Logger:           root.logger,
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "",
		"database file to create (format chosen by extension)")
	cmd.Flags().StringSliceVar(&extensions, "extensions", nil,
		"admissible file extensions (default .dcm)")
	cmd.Flags().StringVar(&pattern, "pattern", "",
		"glob narrowing discovery, relative to each directory (e.g. arm/**)")
	cmd.Flags().BoolVar(&relativePaths, "relative-paths", false,
		"store file paths relative to the searched directories")
	cmd.Flags().BoolVar(&skipBroken, "skip-broken", false,
		"tolerate unparsable files and unmergeable fragments")
	cmd.Flags().BoolVar(&ignoreDuplicates, "ignore-duplicates", false,
		"tolerate conflicting pixel data within one image")
	cmd.Flags().IntVar(&workers, "workers", 0,
		"parallel workers (0 = CPU count)")
	cmd.Flags().StringVar(&configPath, "config", "",
		"load run settings from a YAML file")
	cmd.Flags().StringVar(&saveConfigPath, "save-config", "",
		"write the effective run settings to a YAML file")
	return cmd
}
