package tournament

import (
	"connect4/engine"
	"fmt"
	"io"
	"math"
	"slices"
	"time"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// histogramBins is the number of buckets in the game length histogram.
const histogramBins = 10

// Report aggregates the games of a tournament.
type Report struct {
	Labels  [2]string
	Planned int
	Played  int
	// Counts maps a strategy label, or TieLabel, to the games it decided.
	Counts     map[string]int
	FirstWins  map[string]int // wins while moving first
	Timeouts   map[string]int
	Violations map[string]int
	Lengths    []float64 // moves per game
	Elapsed    time.Duration
}

func newReport(labels [2]string, planned int) *Report {
	return &Report{
		Labels:     labels,
		Planned:    planned,
		Counts:     map[string]int{},
		FirstWins:  map[string]int{},
		Timeouts:   map[string]int{},
		Violations: map[string]int{},
		Lengths:    make([]float64, 0, planned),
	}
}

func (r *Report) add(order [2]string, outcome string, result engine.GameResult) {
	r.Played++
	r.Counts[outcome]++
	if outcome == order[0] {
		r.FirstWins[outcome]++
	}
	for seat, label := range order {
		if n := result.Timeouts[seat]; n > 0 {
			r.Timeouts[label] += n
		}
		if n := result.Violations[seat]; n > 0 {
			r.Violations[label] += n
		}
	}
	r.Lengths = append(r.Lengths, float64(result.Moves))
}

// WinRate is the share of played games decided by label.
func (r *Report) WinRate(label string) float64 {
	if r.Played == 0 {
		return 0
	}
	return float64(r.Counts[label]) / float64(r.Played)
}

// WinRateInterval returns the normal-approximation interval around
// WinRate(label) at the given confidence, a percentage between 0 and 100.
func (r *Report) WinRateInterval(label string, confidence float64) (float64, float64) {
	p := r.WinRate(label)
	if r.Played == 0 {
		return 0, 0
	}
	z := zVal(confidence)
	margin := z * math.Sqrt(p*(1-p)/float64(r.Played))
	return math.Max(0, p-margin), math.Min(1, p+margin)
}

func zVal(confidence float64) float64 {
	dist := distuv.Normal{
		Mu:    0,
		Sigma: 1,
	}
	return dist.Quantile((1 + confidence/100) / 2)
}

// LengthStats returns the mean, standard deviation and median game length.
func (r *Report) LengthStats() (mean, std, median float64) {
	if len(r.Lengths) == 0 {
		return 0, 0, 0
	}
	mean, std = stat.MeanStdDev(r.Lengths, nil)
	if len(r.Lengths) == 1 {
		std = 0
	}
	sorted := slices.Clone(r.Lengths)
	slices.Sort(sorted)
	median = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	return mean, std, median
}

// Outcomes lists the labels in Counts, strategies first and TieLabel last.
func (r *Report) Outcomes() []string {
	labels := lo.Keys(r.Counts)
	slices.SortFunc(labels, func(a, b string) int {
		switch {
		case a == b:
			return 0
		case a == TieLabel:
			return 1
		case b == TieLabel:
			return -1
		case a < b:
			return -1
		}
		return 1
	})
	return labels
}

// Summary is the serializable form of a Report.
type Summary struct {
	Labels     [2]string      `yaml:"strategies"`
	Planned    int            `yaml:"planned"`
	Played     int            `yaml:"played"`
	Counts     map[string]int `yaml:"counts"`
	FirstWins  map[string]int `yaml:"first_mover_wins,omitempty"`
	Timeouts   map[string]int `yaml:"timeouts,omitempty"`
	Violations map[string]int `yaml:"violations,omitempty"`
	MeanLength float64        `yaml:"mean_length"`
	StdLength  float64        `yaml:"std_length"`
	MedLength  float64        `yaml:"median_length"`
	Elapsed    string         `yaml:"elapsed"`
}

func (r *Report) Summary() Summary {
	mean, std, median := r.LengthStats()
	return Summary{
		Labels:     r.Labels,
		Planned:    r.Planned,
		Played:     r.Played,
		Counts:     r.Counts,
		FirstWins:  r.FirstWins,
		Timeouts:   r.Timeouts,
		Violations: r.Violations,
		MeanLength: mean,
		StdLength:  std,
		MedLength:  median,
		Elapsed:    r.Elapsed.Round(time.Millisecond).String(),
	}
}

// Fprint writes a human readable report: outcome counts with win rates,
// contract breaches, length statistics and a length histogram.
func (r *Report) Fprint(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%d of %d games played in %s\n\n", r.Played, r.Planned, r.Elapsed.Round(time.Millisecond)); err != nil {
		return err
	}
	for _, label := range r.Outcomes() {
		lo95, hi95 := r.WinRateInterval(label, 95)
		if _, err := fmt.Fprintf(w, "%-20s %6d  %5.1f%%  (95%% CI %4.1f-%4.1f%%)\n",
			label, r.Counts[label], 100*r.WinRate(label), 100*lo95, 100*hi95); err != nil {
			return err
		}
	}
	for _, label := range r.Labels {
		if r.Timeouts[label] == 0 && r.Violations[label] == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "%-20s timeouts=%d violations=%d\n", label, r.Timeouts[label], r.Violations[label]); err != nil {
			return err
		}
	}
	if len(r.Lengths) == 0 {
		return nil
	}

	mean, std, median := r.LengthStats()
	if _, err := fmt.Fprintf(w, "\ngame length: mean %.1f, std %.1f, median %.0f\n", mean, std, median); err != nil {
		return err
	}
	if lo.Min(r.Lengths) == lo.Max(r.Lengths) {
		return nil
	}
	h := histogram.Hist(histogramBins, r.Lengths)
	return histogram.Fprint(w, h, histogram.Linear(40))
}
