// internal/stats/stats.go
//
// Benchmark: solve every answer word and summarize how many rounds it took.
// Responsibilities:
//   - Play one game per answer with a fresh solver (games run in parallel).
//   - Collect per-word results in answer order.
//   - Build the summary: histogram by rounds, mean, worst case, failures.
//
// A failure is a game not solved within game.DefaultRows guesses. Games that
// hit the round cap or run out of consistent words are recorded, not fatal.

package stats

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/metrics"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// DefaultMaxRounds caps a single benchmark game.
const DefaultMaxRounds = 20

// Options configures a benchmark run.
type Options struct {
	StartWord     string // opening guess; solver.DefaultStartWord when empty
	Alternate     bool   // use the alternate probe list
	Limit         int    // solve only the first Limit answers when > 0
	Workers       int    // games played in parallel; GOMAXPROCS when < 1
	SolverWorkers int    // search goroutines per game; 1 when < 1
	MaxRounds     int    // per-game cap; DefaultMaxRounds when < 1

	// Progress, if set, is called after each game with the number finished.
	// It may be called from several goroutines.
	Progress func(done, total int)
}

// Result is the outcome for one answer word.
type Result struct {
	Word    words.Word   `json:"word"`
	Rounds  int          `json:"rounds"`
	Solved  bool         `json:"solved"`
	Guesses []words.Word `json:"guesses"`
	Err     string       `json:"error,omitempty"`
}

// Report summarizes a benchmark run.
type Report struct {
	StartWord  words.Word    `json:"startWord"`
	Alternate  bool          `json:"alternate"`
	Results    []Result      `json:"results"`
	Histogram  map[int]int   `json:"histogram"`
	Mean       float64       `json:"mean"`
	Worst      int           `json:"worst"`
	WorstWords []words.Word  `json:"worstWords"`
	Failures   int           `json:"failures"`
	Elapsed    time.Duration `json:"elapsed"`
}

// Run plays the benchmark. It stops scheduling new games when ctx is done
// and returns ctx.Err() in that case.
func Run(ctx context.Context, lex *words.Lexicon, opts Options) (*Report, error) {
	opts = withDefaults(opts)

	// Validate the start word once, up front.
	probe, err := solver.New(lex, opts.Alternate).WithStartWord(opts.StartWord)
	if err != nil {
		return nil, err
	}

	answers := lex.Answers()
	if opts.Limit > 0 && opts.Limit < len(answers) {
		answers = answers[:opts.Limit]
	}

	start := time.Now()
	results := make([]Result, len(answers))
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, answer := range answers {
		if gctx.Err() != nil {
			break
		}
		i, answer := i, answer
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = solveOne(lex, answer, opts)
			if opts.Progress != nil {
				opts.Progress(int(done.Add(1)), len(answers))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r := summarize(results)
	r.StartWord = probe.StartWord()
	r.Alternate = opts.Alternate
	r.Elapsed = time.Since(start)
	log.Info().
		Int("games", len(results)).
		Float64("mean", r.Mean).
		Int("worst", r.Worst).
		Int("failures", r.Failures).
		Dur("elapsed", r.Elapsed).
		Msg("benchmark finished")
	return r, nil
}

func withDefaults(o Options) Options {
	if o.StartWord == "" {
		o.StartWord = solver.DefaultStartWord
	}
	if o.Workers < 1 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.SolverWorkers < 1 {
		o.SolverWorkers = 1
	}
	if o.MaxRounds < 1 {
		o.MaxRounds = DefaultMaxRounds
	}
	return o
}

// solveOne plays a single game. The start word was validated by Run.
func solveOne(lex *words.Lexicon, answer words.Word, opts Options) Result {
	s, _ := solver.New(lex, opts.Alternate, solver.WithWorkers(opts.SolverWorkers)).WithStartWord(opts.StartWord)
	t, err := game.Play(s, answer, opts.MaxRounds)

	res := Result{Word: answer, Rounds: t.Rounds(), Solved: t.Solved()}
	for _, turn := range t {
		res.Guesses = append(res.Guesses, turn.Guess)
	}
	if err != nil {
		res.Err = err.Error()
		log.Warn().Err(err).Str("answer", answer.String()).Msg("benchmark game not solved")
	}
	if res.Solved && res.Rounds <= game.DefaultRows {
		metrics.BenchmarkSolves.WithLabelValues(metrics.OutcomeSolved).Inc()
	} else {
		metrics.BenchmarkSolves.WithLabelValues(metrics.OutcomeFailed).Inc()
	}
	return res
}

// summarize builds the histogram and aggregates over results.
func summarize(results []Result) *Report {
	r := &Report{Results: results, Histogram: make(map[int]int)}
	total := 0
	for _, res := range results {
		r.Histogram[res.Rounds]++
		total += res.Rounds
		if !res.Solved || res.Rounds > game.DefaultRows {
			r.Failures++
		}
		switch {
		case res.Rounds > r.Worst:
			r.Worst = res.Rounds
			r.WorstWords = []words.Word{res.Word}
		case res.Rounds == r.Worst:
			r.WorstWords = append(r.WorstWords, res.Word)
		}
	}
	if len(results) > 0 {
		r.Mean = float64(total) / float64(len(results))
	}
	return r
}

// String renders a short text summary.
func (r *Report) String() string {
	return fmt.Sprintf("games=%d mean=%.3f worst=%d (%d words) failures=%d elapsed=%s",
		len(r.Results), r.Mean, r.Worst, len(r.WorstWords), r.Failures, r.Elapsed.Round(time.Millisecond))
}
