// internal/solver/search.go
//
// Exhaustive greedy search for the next guess.
//
// For every probe p, in probe order:
//   score(p) = Σ over candidates a of max(0, |C| − |filter(C, Check(a, p))|)
// i.e. the total number of candidates a guess of p would eliminate, summed over
// every candidate taken as the secret. The highest score wins; on ties the
// earliest probe wins. This is a raw total-reduction heuristic, not entropy,
// and the precomputed start word was tuned against exactly this rule.
//
// Probes are independent, so the probe list is split into contiguous ranges
// scanned by separate goroutines over a shared read-only candidate slice.
// The merge keeps the highest score and, on ties, the lowest probe index, so
// the result does not depend on the worker count.

package solver

import (
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle/apps/solver/internal/clue"
	"github.com/robalobadob/wordle/apps/solver/internal/filter"
	"github.com/robalobadob/wordle/apps/solver/internal/metrics"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// patterns is the number of distinct kind combinations for one guess (3^5).
const patterns = 243

// pick is a scored probe position.
type pick struct {
	index int
	score int
}

// better reports whether a should replace b: higher score, then lower index.
func (a pick) better(b pick) bool {
	if b.index < 0 {
		return a.index >= 0
	}
	if a.index < 0 {
		return false
	}
	return a.score > b.score || (a.score == b.score && a.index < b.index)
}

// search returns the best probe for the current state. Requires len(candidates) > 1
// and len(probes) > 0.
func (s *Solver) search() words.Word {
	start := time.Now()
	best := bestProbe(s.candidates, s.probes, s.workers)

	metrics.SearchDuration.Observe(time.Since(start).Seconds())
	metrics.ProbeEvaluations.Add(float64(len(s.candidates) * len(s.probes)))
	log.Debug().
		Int("round", s.guesses+1).
		Int("candidates", len(s.candidates)).
		Int("probes", len(s.probes)).
		Str("guess", s.probes[best.index].String()).
		Int("score", best.score).
		Dur("elapsed", time.Since(start)).
		Msg("guess search")

	return s.probes[best.index]
}

// bestProbe scans probes across up to workers goroutines and merges the results.
func bestProbe(candidates, probes []words.Word, workers int) pick {
	if workers > len(probes) {
		workers = len(probes)
	}
	if workers <= 1 {
		return scan(candidates, probes, 0, len(probes))
	}

	chunk := (len(probes) + workers - 1) / workers
	results := make([]pick, workers)
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := min(lo+chunk, len(probes))
		if lo >= hi {
			results[w] = pick{index: -1}
			continue
		}
		w := w
		g.Go(func() error {
			results[w] = scan(candidates, probes, lo, hi)
			return nil
		})
	}
	_ = g.Wait()

	best := pick{index: -1}
	for _, r := range results {
		if r.better(best) {
			best = r
		}
	}
	return best
}

// scan scores probes[lo:hi] and returns the best one in that range.
//
// For a fixed probe the clue vector is determined by its kind pattern, so the
// filter count is memoised per pattern rather than recomputed per candidate.
func scan(candidates, probes []words.Word, lo, hi int) pick {
	best := pick{index: -1, score: -1}
	n := len(candidates)
	var memo [patterns]int32

	for i := lo; i < hi; i++ {
		p := probes[i]
		for k := range memo {
			memo[k] = -1
		}
		score := 0
		for _, a := range candidates {
			v := clue.Check(a, p)
			code := patternCode(v)
			m := memo[code]
			if m < 0 {
				m = int32(filter.Count(candidates, v))
				memo[code] = m
			}
			if d := n - int(m); d > 0 {
				score += d
			}
		}
		if score > best.score {
			best = pick{index: i, score: score}
		}
	}
	return best
}

// patternCode maps the kinds of v to 0..242.
func patternCode(v clue.Vector) int {
	code := 0
	for _, c := range v {
		code = code*3 + int(c.Kind)
	}
	return code
}
