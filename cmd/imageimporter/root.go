// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/imageimporter/pkg/config"
	"github.com/walteh/imageimporter/pkg/importer"
	"github.com/walteh/imageimporter/pkg/log"
	"github.com/walteh/imageimporter/pkg/status"
)

// rootOpts holds the flag values of one root command
type rootOpts struct {
	configFile string
	debug      bool
	summary    bool
}

// 🌱 newRootCmd creates the imageimporter command. Import notices go to
// stdout; diagnostics and the summary go to stderr.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOpts{}

	rootCmd := &cobra.Command{
		Use:   "imageimporter [flags] <source>... <destination>",
		Short: "Copy images into folders named after the day they were taken",
		Long: `imageimporter copies image files matching the given paths or glob patterns
into <destination>/YYYY-MM-DD folders. The date comes from the EXIF capture
time when present, and from the file's modification time otherwise.

Files that already exist in their date folder are skipped, never overwritten.
A file that fails to import is reported and the remaining files still run.`,
		Example: `  imageimporter /Volumes/CARD/DCIM/*.JPG ~/Pictures/import
  imageimporter "card/**/*.jpg" "card/**/*.CR2" ~/Pictures/import
  imageimporter -c imageimporter.hcl photo.heic ~/Pictures/import`,
		Args:          cobra.MinimumNArgs(2),
		Version:       GetVersionInfo().Version,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), opts, args, stdout, stderr)
		},
	}

	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetVersionTemplate(FormatVersion())
	addRootFlags(rootCmd, opts)

	return rootCmd
}

// addRootFlags adds the flags to the root command
func addRootFlags(cmd *cobra.Command, opts *rootOpts) {
	cmd.Flags().StringVarP(&opts.configFile, "config", "c", "", "config file path (.yaml, .yml, .hcl or .json)")
	cmd.Flags().BoolVarP(&opts.debug, "debug", "d", false, "enable debug logging")
	cmd.Flags().BoolVar(&opts.summary, "summary", true, "print a summary table to stderr when done")
}

// setupLogging builds the console logger for stderr based on flags
func setupLogging(stderr io.Writer, debug bool) *log.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return log.NewConsole(stderr, level)
}

// 🏃 runImport runs one import. Only setup problems are returned as errors.
func runImport(ctx context.Context, opts *rootOpts, args []string, stdout, stderr io.Writer) error {
	logger := setupLogging(stderr, opts.debug)
	ctx = log.NewContext(ctx, logger)

	sources, destination := args[:len(args)-1], args[len(args)-1]

	cfg, err := config.Load(ctx, opts.configFile)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}

	mgr := status.New(stdout)
	imp, err := importer.New(importer.Options{
		Sources:     sources,
		Destination: destination,
		Config:      cfg,
		Reporter:    mgr,
	})
	if err != nil {
		return errors.Errorf("creating importer: %w", err)
	}

	logger.Zerolog().Debug().
		Strs("sources", sources).
		Str("destination", destination).
		Str("config", cfg.String()).
		Msg("starting import")

	logger.Header(fmt.Sprintf("importing %s into %s", plural(len(sources), "source"), destination))

	records := imp.ImportAll(ctx)
	reportResults(ctx, len(sources), mgr.Counts(), records, opts.summary)

	return nil
}

// 📊 reportResults prints the summary and a closing line to the console logger
func reportResults(ctx context.Context, sources int, counts status.Counts, records []status.Record, summary bool) {
	logger := log.FromContext(ctx)

	if summary {
		logger.Newline()
		if err := logger.Summary(counts); err != nil {
			logger.Zerolog().Warn().Err(err).Msg("printing summary")
		}
		logger.Failures(records)
	}

	switch {
	case len(records) == 0:
		logger.Warningf("no image files matched %s", plural(sources, "source pattern"))
	case counts.Failed > 0:
		logger.Errorf("%d of %s failed to import", counts.Failed, plural(counts.Total(), "file"))
	case counts.Copied == 0:
		logger.Infof("nothing new to import, %s already present", plural(counts.Skipped, "file"))
	default:
		logger.Successf("imported %s", plural(counts.Copied, "file"))
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
