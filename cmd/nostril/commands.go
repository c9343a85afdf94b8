package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Bijlsma/nostril"
	"github.com/urfave/cli/v2"
)

func loadStats(c *cli.Context) (*nostril.Stats, error) {
	path := c.String("model")
	if path == "" {
		slog.Debug("using built-in model")
		return nostril.DefaultStats()
	}
	stats, err := nostril.LoadStats(path)
	if err != nil {
		return nil, err
	}
	slog.Debug("loaded model", "path", path, "ngrams", stats.Len(), "lengths", stats.Lengths())
	return stats, nil
}

// loadConfig starts from the config file, if any, and applies flag
// overrides on top.
func loadConfig(c *cli.Context) (nostril.Config, error) {
	cfg := nostril.DefaultConfig()
	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = nostril.LoadConfig(path); err != nil {
			return nostril.Config{}, err
		}
		slog.Debug("loaded config", "path", path)
	}
	if c.IsSet("lengths") {
		cfg.Lengths = c.IntSlice("lengths")
	}
	if c.IsSet("threshold") {
		cfg.Threshold = c.Float64("threshold")
	}
	if c.IsSet("min-length") {
		cfg.MinLength = c.Int("min-length")
	}
	return cfg, nil
}

func loadDetector(c *cli.Context) (*nostril.Detector, error) {
	stats, err := loadStats(c)
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	d, err := nostril.NewDetector(stats, nostril.WithConfig(cfg))
	if err != nil {
		return nil, err
	}
	slog.Debug("detector ready", "lengths", cfg.Lengths, "threshold", cfg.Threshold, "min_length", cfg.MinLength)
	return d, nil
}

// inputs returns the command arguments, or the lines of stdin when there
// are none.
func inputs(c *cli.Context) ([]string, error) {
	if c.NArg() > 0 {
		return c.Args().Slice(), nil
	}
	return nostril.ReadLines(c.App.Reader)
}

func checkCommand(c *cli.Context) error {
	d, err := loadDetector(c)
	if err != nil {
		return err
	}
	texts, err := inputs(c)
	if err != nil {
		return err
	}
	for _, text := range texts {
		verdict := "real"
		isNonsense, err := d.Nonsense(text)
		if errors.Is(err, nostril.ErrInputTooShort) {
			verdict = "short"
		} else if err != nil {
			return err
		} else if isNonsense {
			verdict = "nonsense"
		}
		fmt.Fprintf(c.App.Writer, "%s\t%s\n", verdict, text)
	}
	return nil
}

func scoreCommand(c *cli.Context) error {
	d, err := loadDetector(c)
	if err != nil {
		return err
	}
	texts, err := inputs(c)
	if err != nil {
		return err
	}
	for _, text := range texts {
		score, err := d.Score(text)
		if errors.Is(err, nostril.ErrInputTooShort) {
			slog.Warn("skipping short input", "text", text)
			continue
		} else if err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "%.4f\t%s\n", score, text)
	}
	return nil
}

func sanitizeCommand(c *cli.Context) error {
	texts, err := inputs(c)
	if err != nil {
		return err
	}
	for _, text := range texts {
		fmt.Fprintln(c.App.Writer, nostril.SanitizeString(text))
	}
	return nil
}

func trainCommand(c *cli.Context) error {
	tr, err := nostril.NewTrainer(
		nostril.TrainerLengths(c.IntSlice("ngram")...),
		nostril.TrainerDefaultWeight(c.Float64("unseen-weight")))
	if err != nil {
		return err
	}

	if c.NArg() == 0 {
		if err := tr.Add(c.App.Reader); err != nil {
			return err
		}
	}
	for _, path := range c.Args().Slice() {
		if err := addFile(tr, path); err != nil {
			return err
		}
	}

	stats, err := tr.Compile()
	if err != nil {
		return err
	}
	out := c.String("out")
	if err := nostril.SaveStats(out, stats); err != nil {
		return err
	}
	slog.Info("wrote model", "path", out, "words", tr.Words(), "ngrams", stats.Len())
	return nil
}

func addFile(tr *nostril.Trainer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := tr.Add(f); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	slog.Debug("added training file", "path", path, "words", tr.Words())
	return nil
}

func readLinesFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return nostril.ReadLines(f)
}

func calibrateCommand(c *cli.Context) error {
	stats, err := loadStats(c)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	good, err := readLinesFile(c.String("good"))
	if err != nil {
		return err
	}
	bad, err := readLinesFile(c.String("bad"))
	if err != nil {
		return err
	}

	thresh, err := nostril.Calibrate(stats, cfg, good, bad)
	if errors.Is(err, nostril.ErrOverlap) {
		slog.Warn("threshold cannot separate the inputs", "err", err)
	} else if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "%.4f\n", thresh)
	return nil
}

func evalCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: nostril eval [--labeled] <file>")
	}
	d, err := loadDetector(c)
	if err != nil {
		return err
	}

	f, err := os.Open(c.Args().First())
	if err != nil {
		return err
	}
	defer f.Close()

	var rep nostril.Report
	if c.Bool("labeled") {
		samples, err := nostril.ReadSamples(f)
		if err != nil {
			return err
		}
		if rep, err = nostril.EvaluateLabeled(c.Context, d, samples, c.Int("workers")); err != nil {
			return err
		}
	} else {
		texts, err := nostril.ReadLines(f)
		if err != nil {
			return err
		}
		if rep, err = nostril.EvaluateUnlabeled(c.Context, d, texts, c.Int("workers")); err != nil {
			return err
		}
	}

	printReport(c.App.Writer, rep, c.Bool("labeled"))
	return nil
}

func printReport(w io.Writer, rep nostril.Report, labeled bool) {
	fmt.Fprintf(w, "total %d, skipped %d, nonsense %d, real %d\n", rep.Total, rep.Skipped, rep.Nonsense, rep.Real)
	if labeled {
		fmt.Fprintf(w, "false positives %d, false negatives %d, accuracy %.2f%%\n",
			rep.FalsePositives, rep.FalseNegatives, 100*rep.Accuracy())
		for _, m := range rep.Mistakes {
			expected := "nonsense"
			if m.Nonsense {
				expected = "real"
			}
			fmt.Fprintf(w, "  expected %s\t%.4f\t%s\n", expected, m.Score, m.Text)
		}
		return
	}
	for _, r := range rep.Flagged {
		fmt.Fprintf(w, "  nonsense\t%.4f\t%s\n", r.Score, r.Text)
	}
}

func infoCommand(c *cli.Context) error {
	stats, err := loadStats(c)
	if err != nil {
		return err
	}
	w := c.App.Writer
	fmt.Fprintf(w, "words %d, ngrams %d, unseen weight %.4f\n", stats.Vocabulary(), stats.Len(), stats.DefaultWeight())
	for _, l := range stats.Lengths() {
		fmt.Fprintf(w, "  length %d: coverage %.4f%%\n", l, 100*stats.Coverage(l))
	}
	return nil
}
