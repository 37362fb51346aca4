// commands.go
//
// Command-line interface.
//   serve   → HTTP API (internal/httpserver)
//   solve   → let the solver play against a secret word
//   assist  → suggest guesses for a real game, reading feedback patterns from stdin
//   check   → score one guess against a secret
//   stats   → benchmark over the answer list, optionally saved to SQLite
//   daily   → solve the deterministic word of the day
//
// Configuration comes from the environment (see internal/config); flags
// override the solver settings per command.

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/solver/internal/clue"
	"github.com/robalobadob/wordle/apps/solver/internal/config"
	"github.com/robalobadob/wordle/apps/solver/internal/daily"
	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/httpserver"
	"github.com/robalobadob/wordle/apps/solver/internal/results"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/stats"
	"github.com/robalobadob/wordle/apps/solver/internal/store"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// app is the state shared by all commands, filled in by the root pre-run.
type app struct {
	cfg config.Config
	lex *words.Lexicon
}

// solverFlags are the per-command solver overrides.
type solverFlags struct {
	start   string
	alt     bool
	workers int
}

func (f *solverFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.start, "start", "", "opening guess (default $SOLVER_START_WORD or tares)")
	cmd.Flags().BoolVar(&f.alt, "alt", false, "use the alternate probe list (default $SOLVER_ALT_WORDS)")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "search goroutines (default $SOLVER_WORKERS)")
}

// newSolver builds a solver from config overridden by flags.
func (a *app) newSolver(cmd *cobra.Command, f *solverFlags) (*solver.Solver, error) {
	start := a.cfg.StartWord
	if f.start != "" {
		start = f.start
	}
	alt := a.cfg.AltWords
	if cmd.Flags().Changed("alt") {
		alt = f.alt
	}
	workers := a.cfg.Workers
	if f.workers > 0 {
		workers = f.workers
	}
	return solver.New(a.lex, alt, solver.WithWorkers(workers)).WithStartWord(start)
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "wordle-solver",
		Short:         "Greedy Wordle solver: guess suggestions, autoplay, benchmarks and an HTTP API",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			a.cfg = cfg
			setupLogging(cfg.LogLevel, cmd.Name() != "serve")

			lex, err := words.Load(cfg.Words)
			if err != nil {
				log.Error().Err(err).Msg("failed to load word lists")
				return err
			}
			a.lex = lex
			return nil
		},
	}
	root.AddCommand(
		newServeCmd(a),
		newSolveCmd(a),
		newAssistCmd(a),
		newCheckCmd(a),
		newStatsCmd(a),
		newDailyCmd(a),
	)
	return root
}

// setupLogging sets the global level; console output goes to stderr in human form.
func setupLogging(level string, console bool) {
	if lvl, err := zerolog.ParseLevel(level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if console {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// ---------------------------------- serve ----------------------------------

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.lex.Lookup(a.cfg.StartWord, false, a.cfg.AltWords); err != nil {
				return fmt.Errorf("SOLVER_START_WORD: %w", err)
			}
			res, err := results.Open(a.cfg.DBPath)
			if err != nil {
				log.Warn().Err(err).Str("db", a.cfg.DBPath).Msg("results store unavailable; /stats/runs disabled")
				res = nil
			} else {
				defer res.Close()
			}

			srv := httpserver.New(a.lex, store.NewMemoryStore(), res, httpserver.Options{
				JWTSecret:    a.cfg.JWTSecret,
				SessionTTL:   a.cfg.SessionTTL,
				DailySalt:    a.cfg.DailySalt,
				ClientOrigin: a.cfg.ClientOrigin,
				StartWord:    a.cfg.StartWord,
				Workers:      a.cfg.Workers,
			})
			answers, probes, alt := a.lex.Stats()
			log.Info().Str("port", a.cfg.Port).Int("answers", answers).Int("probes", probes).Int("altProbes", alt).Msg("starting solver server")
			return srv.Start(":" + a.cfg.Port)
		},
	}
}

// ---------------------------------- solve ----------------------------------

func newSolveCmd(a *app) *cobra.Command {
	var f solverFlags
	var maxRounds int
	cmd := &cobra.Command{
		Use:   "solve [secret]",
		Short: "Let the solver play against a secret word (random answer if omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			secret := a.lex.RandomAnswer()
			if len(args) == 1 {
				w, err := a.lex.Lookup(args[0], true, false)
				if err != nil {
					return fmt.Errorf("secret: %w", err)
				}
				secret = w
			}
			s, err := a.newSolver(cmd, &f)
			if err != nil {
				return err
			}
			t, err := game.Play(s, secret, maxRounds)
			printTranscript(cmd.OutOrStdout(), t)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "solved %s in %d\n", secret, t.Rounds())
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().IntVar(&maxRounds, "max-rounds", stats.DefaultMaxRounds, "give up after this many guesses")
	return cmd
}

func printTranscript(out io.Writer, t game.Transcript) {
	for i, turn := range t {
		fmt.Fprintf(out, "%2d  %s  %s\n", i+1, turn.Guess, turn.Clues.Pattern())
	}
}

// ---------------------------------- assist ---------------------------------

func newAssistCmd(a *app) *cobra.Command {
	var f solverFlags
	cmd := &cobra.Command{
		Use:   "assist",
		Short: "Suggest guesses for a real game; type the feedback as g/y/. (e.g. .yg..)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.newSolver(cmd, &f)
			if err != nil {
				return err
			}
			return assist(s, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	f.register(cmd)
	return cmd
}

// assist runs the suggest/feedback loop until an all-Right pattern or EOF.
func assist(s *solver.Solver, in io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(in)
	for {
		if s.Exhausted() {
			return errors.New("no word matches the feedback given; check the patterns entered")
		}
		guess := s.Guess()
		fmt.Fprintf(out, "guess %d: %s  (%d candidates)\nfeedback> ", s.GuessCount(), guess, s.Remaining())

		var v clue.Vector
		for {
			if !sc.Scan() {
				fmt.Fprintln(out)
				return sc.Err()
			}
			var err error
			if v, err = clue.ParsePattern(guess, strings.TrimSpace(sc.Text())); err == nil {
				break
			}
			fmt.Fprintf(out, "%v\nfeedback> ", err)
		}
		if v.Solved() {
			fmt.Fprintf(out, "solved in %d\n", s.GuessCount())
			return nil
		}
		s.FilterSelf(v)
		if n := s.Remaining(); n > 0 && n <= 10 {
			fmt.Fprintf(out, "candidates: %s\n", strings.Join(words.Strings(s.Candidates()), " "))
		}
	}
}

// ---------------------------------- check ----------------------------------

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <secret> <guess>",
		Short: "Score a guess against a secret",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, err := words.Parse(args[0])
			if err != nil {
				return fmt.Errorf("secret: %w", err)
			}
			guess, err := words.Parse(args[1])
			if err != nil {
				return fmt.Errorf("guess: %w", err)
			}
			v := clue.Check(secret, guess)
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", v.Pattern(), v)
			return nil
		},
	}
}

// ---------------------------------- stats ----------------------------------

func newStatsCmd(a *app) *cobra.Command {
	var f solverFlags
	var limit, games int
	var save, quiet bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Solve every answer word and report the distribution of rounds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			opts := stats.Options{
				StartWord:     a.cfg.StartWord,
				Alternate:     a.cfg.AltWords,
				Limit:         limit,
				Workers:       games,
				SolverWorkers: f.workers,
			}
			if f.start != "" {
				opts.StartWord = f.start
			}
			if cmd.Flags().Changed("alt") {
				opts.Alternate = f.alt
			}
			if !quiet {
				total, _, _ := a.lex.Stats()
				if limit > 0 && limit < total {
					total = limit
				}
				bar := progressbar.Default(int64(total), "solving")
				opts.Progress = func(done, total int) { _ = bar.Add(1) }
			}

			report, err := stats.Run(ctx, a.lex, opts)
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), report)

			if save {
				return saveReport(ctx, a.cfg.DBPath, report, cmd.OutOrStdout())
			}
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().IntVar(&limit, "limit", 0, "solve only the first N answers")
	cmd.Flags().IntVar(&games, "games", 0, "games played in parallel (default GOMAXPROCS)")
	cmd.Flags().BoolVar(&save, "save", false, "store the run in $DB_PATH")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "no progress bar")
	return cmd
}

func printReport(out io.Writer, r *stats.Report) {
	rounds := make([]int, 0, len(r.Histogram))
	for n := range r.Histogram {
		rounds = append(rounds, n)
	}
	sort.Ints(rounds)

	fmt.Fprintf(out, "start word %s, %d games\n", r.StartWord, len(r.Results))
	for _, n := range rounds {
		fmt.Fprintf(out, "%3d: %5d\n", n, r.Histogram[n])
	}
	fmt.Fprintln(out, r)
	if len(r.WorstWords) > 0 {
		fmt.Fprintf(out, "hardest (%d rounds): %s\n", r.Worst, strings.Join(words.Strings(r.WorstWords), " "))
	}
}

func saveReport(ctx context.Context, dsn string, r *stats.Report, out io.Writer) error {
	db, err := results.Open(dsn)
	if err != nil {
		return err
	}
	defer db.Close()
	id, err := db.SaveRun(ctx, r)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "saved run %d to %s\n", id, dsn)
	return nil
}

// ---------------------------------- daily ----------------------------------

func newDailyCmd(a *app) *cobra.Command {
	var f solverFlags
	var date string
	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Solve the deterministic word of the day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := daily.ParseDate(date)
			if err != nil {
				return err
			}
			s, err := a.newSolver(cmd, &f)
			if err != nil {
				return err
			}
			t, err := game.Play(s, daily.Answer(d, a.cfg.DailySalt, a.lex), stats.DefaultMaxRounds)
			fmt.Fprintf(cmd.OutOrStdout(), "daily %s\n", daily.DateKey(d))
			printTranscript(cmd.OutOrStdout(), t)
			return err
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&date, "date", "", "YYYY-MM-DD (default today, UTC)")
	return cmd
}
