package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"breakdb/internal/config"
	"breakdb/internal/database"
	"breakdb/internal/export"
	"breakdb/internal/export/voc"
	"breakdb/internal/export/yolo"
)

func newExportCmd(root *rootOptions) *cobra.Command {
	var (
		format          string
		output          string
		targetWidth     int
		targetHeight    int
		keepAspectRatio bool
		noUpscale       bool
		ignoreScaling   bool
		ignoreWindowing bool
		skipBroken      bool
		workers         int
		configPath      string
		saveConfigPath  string
	)

	cmd := &cobra.Command{
		Use:   "export [flags] DATABASE",
		Short: "Export a database as an annotated image dataset",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var databasePath string
			if len(args) == 1 {
				databasePath = args[0]
			}

			if configPath != "" {
				cfg, err := config.LoadExport(configPath)
				if err != nil {
					return err
				}
				if databasePath == "" {
					databasePath = cfg.Database
				}
				if output == "" {
					output = cfg.Output
				}
				if format == "" {
					format = cfg.Format
				}
				if targetWidth == 0 {
					targetWidth = cfg.TargetWidth
				}
				if targetHeight == 0 {
					targetHeight = cfg.TargetHeight
				}
				keepAspectRatio = keepAspectRatio || cfg.KeepAspectRatio
				noUpscale = noUpscale || cfg.NoUpscale
				ignoreScaling = ignoreScaling || cfg.IgnoreScaling
				ignoreWindowing = ignoreWindowing || cfg.IgnoreWindowing
				skipBroken = skipBroken || cfg.SkipBroken
				if workers == 0 {
					workers = cfg.Workers
				}
			}

			if databasePath == "" {
				return errors.New("a database path is required")
			}
			if output == "" {
				return errors.New("an output directory is required")
			}

			if saveConfigPath != "" {
				err := config.SaveExport(saveConfigPath, config.Export{
					Database:        databasePath,
					Output:          output,
					Format:          format,
					TargetWidth:     targetWidth,
					TargetHeight:    targetHeight,
					KeepAspectRatio: keepAspectRatio,
					NoUpscale:       noUpscale,
					IgnoreScaling:   ignoreScaling,
					IgnoreWindowing: ignoreWindowing,
					SkipBroken:      skipBroken,
					Workers:         workers,
				})
				if err != nil {
					return err
				}
			}

			exporter, err := exporterFor(format)
			if err != nil {
				return err
			}

			table, err := database.Read(databasePath)
			if err != nil {
				return err
			}

			return export.Database(cmd.Context(), table, exporter, output, export.Options{
				TargetWidth:     targetWidth,
				TargetHeight:    targetHeight,
				KeepAspectRatio: keepAspectRatio,
				NoUpscale:       noUpscale,
				IgnoreScaling:   ignoreScaling,
				IgnoreWindowing: ignoreWindowing,
				SkipBroken:      skipBroken,
				Workers:         workers,
				Logger:          root.logger,
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "voc",
		"dataset format: voc or yolo")
	cmd.Flags().StringVarP(&output, "output", "o", "",
		"directory to write the dataset under")
	cmd.Flags().IntVar(&targetWidth, "target-width", 0,
		"maximum exported image width (0 = original)")
	cmd.Flags().IntVar(&targetHeight, "target-height", 0,
		"maximum exported image height (0 = original)")
	cmd.Flags().BoolVar(&keepAspectRatio, "keep-aspect-ratio", false,
		"preserve aspect ratio when resizing")
	cmd.Flags().BoolVar(&noUpscale, "no-upscale", false,
		"never enlarge images beyond their native size")
	cmd.Flags().BoolVar(&ignoreScaling, "ignore-scaling", false,
		"skip the stored-value scaling transform")
	cmd.Flags().BoolVar(&ignoreWindowing, "ignore-windowing", false,
		"skip the visualization window transform")
	cmd.Flags().BoolVar(&skipBroken, "skip-broken", false,
		"tolerate rows that fail to export")
	cmd.Flags().IntVar(&workers, "workers", 0,
		"parallel workers (0 = CPU count)")
	cmd.Flags().StringVar(&configPath, "config", "",
		"load run settings from a YAML file")
	cmd.Flags().StringVar(&saveConfigPath, "save-config", "",
		"write the effective run settings to a YAML file")
	return cmd
}

func exporterFor(format string) (export.Exporter, error) {
	switch format {
	case "voc", "":
		return voc.New(), nil
	case "yolo":
		return yolo.New(), nil
	default:
		return nil, fmt.Errorf("unknown export format %q (want voc or yolo)", format)
	}
}
