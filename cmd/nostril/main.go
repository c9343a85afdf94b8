package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Bijlsma/nostril"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp(os.Stdin, os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "nostril:", err)
		os.Exit(1)
	}
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:                   "nostril",
		Usage:                  "Tell word-like strings from nonsense",
		Reader:                 stdin,
		Writer:                 stdout,
		ErrWriter:              stderr,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "model",
				Aliases: []string{"m"},
				Usage:   "Trained statistics file (default: built-in English model)",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Detector config file (.toml, .yaml)",
			},
			&cli.IntSliceFlag{
				Name:  "lengths",
				Usage: "N-gram lengths to combine (overrides config)",
			},
			&cli.Float64Flag{
				Name:  "threshold",
				Usage: "Score below which a string is nonsense (overrides config)",
			},
			&cli.IntFlag{
				Name:  "min-length",
				Usage: "Minimum letters after sanitizing (overrides config)",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Log debug output to stderr",
			},
		},
		Before: func(c *cli.Context) error {
			level := slog.LevelWarn
			if c.Bool("verbose") {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: level})))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "check",
				Usage:     "Classify strings as nonsense or real",
				ArgsUsage: "[string...] (reads lines from stdin when empty)",
				Action:    checkCommand,
			},
			{
				Name:      "score",
				Usage:     "Print the score of each string",
				ArgsUsage: "[string...]",
				Action:    scoreCommand,
			},
			{
				Name:      "sanitize",
				Usage:     "Print each string as the detector sees it",
				ArgsUsage: "[string...]",
				Action:    sanitizeCommand,
			},
			{
				Name:      "train",
				Usage:     "Build statistics from word lists",
				ArgsUsage: "[file...] (reads stdin when empty)",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "out",
						Aliases:  []string{"o"},
						Usage:    "Output file",
						Required: true,
					},
					&cli.IntSliceFlag{
						Name:  "ngram",
						Usage: "N-gram lengths to count",
						Value: cli.NewIntSlice(nostril.DefaultTrainLengths...),
					},
					&cli.Float64Flag{
						Name:  "unseen-weight",
						Usage: "Weight of n-grams absent from the training words",
						Value: nostril.DefaultUnseenWeight,
					},
				},
				Action: trainCommand,
			},
			{
				Name:  "calibrate",
				Usage: "Suggest a threshold from files of good and bad strings",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "good", Usage: "File of real strings, one per line", Required: true},
					&cli.StringFlag{Name: "bad", Usage: "File of nonsense strings, one per line", Required: true},
				},
				Action: calibrateCommand,
			},
			{
				Name:      "eval",
				Usage:     "Run the detector over a corpus and report accuracy",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "labeled",
						Usage: "Lines are <label>\\t<text>; report accuracy",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent classifiers (0: one per CPU)",
					},
				},
				Action: evalCommand,
			},
			{
				Name:   "info",
				Usage:  "Describe the loaded statistics",
				Action: infoCommand,
			},
		},
	}
}
