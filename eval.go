package nostril

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Sample is one labeled string for EvaluateLabeled.
type Sample struct {
	Text     string
	Nonsense bool
}

// Result is the outcome for a single evaluated string.
type Result struct {
	Text     string
	Score    float64
	Nonsense bool
}

// Report summarises an evaluation run. A false positive is a real string
// flagged as nonsense; a false negative is nonsense let through as real.
type Report struct {
	Total          int
	Skipped        int
	Nonsense       int
	Real           int
	FalsePositives int
	FalseNegatives int

	// Mistakes lists misclassified samples of a labeled run, in input order.
	Mistakes []Result

	// Flagged lists strings classified as nonsense in an unlabeled run, in
	// input order.
	Flagged []Result
}

// Evaluated is the number of strings that were long enough to classify.
func (r Report) Evaluated() int {
	return r.Total - r.Skipped
}

// Accuracy is the share of evaluated strings classified correctly. It is
// only meaningful for labeled runs and is 0 when nothing was evaluated.
func (r Report) Accuracy() float64 {
	n := r.Evaluated()
	if n == 0 {
		return 0
	}
	return float64(n-r.FalsePositives-r.FalseNegatives) / float64(n)
}

type outcome struct {
	skipped bool
	score   float64
	verdict bool
}

// classifyAll runs d over texts with at most workers goroutines. Strings
// that are too short are marked skipped; any other error aborts the run.
func classifyAll(ctx context.Context, d *Detector, texts []string, workers int) ([]outcome, error) {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	out := make([]outcome, len(texts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, text := range texts {
		if gctx.Err() != nil {
			break
		}
		i, text := i, text
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			score, err := d.Score(text)
			if errors.Is(err, ErrInputTooShort) {
				out[i].skipped = true
				return nil
			} else if err != nil {
				return fmt.Errorf("nostril: classify %q: %w", text, err)
			}
			out[i].score = score
			out[i].verdict = score < d.cfg.Threshold
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// EvaluateLabeled classifies every sample and compares against its label.
// workers < 1 uses GOMAXPROCS goroutines.
func EvaluateLabeled(ctx context.Context, d *Detector, samples []Sample, workers int) (Report, error) {
	texts := make([]string, len(samples))
	for i, s := range samples {
		texts[i] = s.Text
	}

	outs, err := classifyAll(ctx, d, texts, workers)
	if err != nil {
		return Report{}, err
	}

	rep := Report{Total: len(samples)}
	for i, o := range outs {
		if o.skipped {
			rep.Skipped++
			continue
		}
		rep.count(o.verdict)
		if o.verdict == samples[i].Nonsense {
			continue
		}
		if o.verdict {
			rep.FalsePositives++
		} else {
			rep.FalseNegatives++
		}
		rep.Mistakes = append(rep.Mistakes, Result{Text: samples[i].Text, Score: o.score, Nonsense: o.verdict})
	}
	return rep, nil
}

// EvaluateUnlabeled classifies texts and reports which ones were flagged.
func EvaluateUnlabeled(ctx context.Context, d *Detector, texts []string, workers int) (Report, error) {
	outs, err := classifyAll(ctx, d, texts, workers)
	if err != nil {
		return Report{}, err
	}

	rep := Report{Total: len(texts)}
	for i, o := range outs {
		if o.skipped {
			rep.Skipped++
			continue
		}
		rep.count(o.verdict)
		if o.verdict {
			rep.Flagged = append(rep.Flagged, Result{Text: texts[i], Score: o.score, Nonsense: true})
		}
	}
	return rep, nil
}

func (r *Report) count(nonsense bool) {
	if nonsense {
		r.Nonsense++
	} else {
		r.Real++
	}
}

// ReadSamples parses one labeled sample per line in the form
// "<label><TAB><text>". Labels n, nonsense and 1 mark nonsense; r, real and
// 0 mark real text. Blank lines and lines starting with '#' are ignored.
func ReadSamples(rdr io.Reader) ([]Sample, error) {
	var samples []Sample
	scn := bufio.NewScanner(rdr)
	line := 0
	for scn.Scan() {
		line++
		txt := strings.TrimRight(scn.Text(), "\r")
		if strings.TrimSpace(txt) == "" || strings.HasPrefix(txt, "#") {
			continue
		}
		label, text, ok := strings.Cut(txt, "\t")
		if !ok {
			return nil, fmt.Errorf("nostril: line %d: expected <label>\\t<text>", line)
		}
		var s Sample
		switch strings.ToLower(strings.TrimSpace(label)) {
		case "n", "nonsense", "1":
			s.Nonsense = true
		case "r", "real", "0":
		default:
			return nil, fmt.Errorf("nostril: line %d: unknown label %q", line, label)
		}
		s.Text = text
		samples = append(samples, s)
	}
	if err := scn.Err(); err != nil {
		return nil, err
	}
	return samples, nil
}

// ReadLines returns the non-blank lines of rdr with surrounding whitespace
// removed.
func ReadLines(rdr io.Reader) ([]string, error) {
	var lines []string
	scn := bufio.NewScanner(rdr)
	for scn.Scan() {
		if txt := strings.TrimSpace(scn.Text()); txt != "" {
			lines = append(lines, txt)
		}
	}
	return lines, scn.Err()
}
