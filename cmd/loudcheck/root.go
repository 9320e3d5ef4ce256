package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/backmassage/loudcheck/internal/check"
	"github.com/backmassage/loudcheck/internal/config"
	"github.com/backmassage/loudcheck/internal/display"
	"github.com/backmassage/loudcheck/internal/logging"
	"github.com/backmassage/loudcheck/internal/pipeline"
	"github.com/backmassage/loudcheck/internal/report"
)

// version and commit are set at build time via -ldflags (e.g. Makefile).
var (
	version = "1.0.0-dev"
	commit  = "unknown"
)

var (
	cfg       = config.DefaultConfig()
	rateList  string
	colorMode string
)

var rootCmd = &cobra.Command{
	Use:   "loudcheck [paths...]",
	Short: "Batch loudness compliance checker for audio files",
	Long: `loudcheck analyzes audio files for loudness compliance using ffmpeg's
loudnorm and astats filters. Each file is measured for integrated loudness,
true peak, loudness range, and sample peak, then classified READY, ADJUST,
or ERROR against the configured target. Results are written as CSV and HTML
reports.

Paths may be files or directories. A single argument of the form @file reads
newline-separated paths from that file; arguments containing ";" are split
into multiple paths. With no paths, the current directory is scanned.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "loudcheck: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	f := rootCmd.Flags()

	f.Float64Var(&cfg.TargetLUFS, "target", cfg.TargetLUFS, "target integrated loudness in LUFS")
	f.Float64Var(&cfg.ToleranceLU, "tolerance", cfg.ToleranceLU, "allowed deviation from target in LU")
	f.Float64Var(&cfg.TruePeakMax, "true-peak", cfg.TruePeakMax, "maximum allowed true peak in dBTP")
	f.Float64Var(&cfg.LoudnessRangeLU, "lra", cfg.LoudnessRangeLU, "loudness range target passed to the analyzer in LU")
	f.StringVar(&rateList, "rates", "44100,48000", "comma-separated allowed sample rates in Hz")
	f.StringSliceVar(&cfg.Extensions, "ext", cfg.Extensions, "audio file extensions to scan")
	f.BoolVarP(&cfg.Recursive, "recursive", "r", cfg.Recursive, "scan directories recursively")
	f.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "per-invocation subprocess timeout")

	f.StringVar(&cfg.CSVPath, "csv", cfg.CSVPath, "CSV report path (empty disables)")
	f.StringVar(&cfg.HTMLPath, "html", cfg.HTMLPath, "HTML report path (empty disables)")
	f.StringVar(&cfg.DebugDir, "debug-dir", cfg.DebugDir, "directory for extraction-failure dumps (empty disables)")

	f.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "per-file debug logging")
	f.BoolVar(&cfg.NoProgress, "no-progress", cfg.NoProgress, "disable the progress bar")
	f.StringVar(&colorMode, "color", string(cfg.ColorMode), "color output: auto, always, never")
	f.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "also append log lines to this file")
	f.BoolVar(&cfg.CheckOnly, "check", cfg.CheckOnly, "run system diagnostics and exit")

	rootCmd.Version = fmt.Sprintf("%s (%s)", version, commit)
	rootCmd.SetVersionTemplate("loudcheck {{.Version}}\n")
}

func run(cmd *cobra.Command, args []string) error {
	paths, err := expandArgs(args)
	if err != nil {
		return err
	}
	cfg.Paths = paths

	rates, err := config.ParseRateList(rateList)
	if err != nil {
		return err
	}
	cfg.AllowedRates = rates
	cfg.ColorMode = config.ColorMode(colorMode)

	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		return err
	}
	defer log.Close()

	display.PrintBanner()

	if cfg.CheckOnly {
		check.RunCheck(log)
		return nil
	}

	// Nothing downstream works without the external tools; fail fast.
	if err := check.CheckDeps(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stats, records, err := pipeline.Run(ctx, &cfg, log)
	if err != nil {
		return err
	}
	if stats.Total == 0 {
		log.Info("No matching audio files found. Nothing to do.")
		return nil
	}
	if err := ctx.Err(); err != nil && len(records) == 0 {
		return errors.New("interrupted before any file was analyzed")
	}

	if cfg.CSVPath != "" {
		if err := report.WriteCSV(cfg.CSVPath, records); err != nil {
			return err
		}
		log.Success("CSV report written: %s", cfg.CSVPath)
	}
	if cfg.HTMLPath != "" {
		if err := report.WriteHTML(cfg.HTMLPath, &cfg, stats, records); err != nil {
			return err
		}
		log.Success("HTML report written: %s", cfg.HTMLPath)
	}

	display.PrintSummary(&cfg, stats)
	return nil
}
