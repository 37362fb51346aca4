// internal/config/config.go
//
// Environment-driven configuration.
// main loads an optional .env file (godotenv) before calling Load.
//
// Variables (defaults in parentheses):
//   PORT (5175), LOG_LEVEL (info)
//   WORDS_ANSWERS_FILE, WORDS_PROBES_FILE, WORDS_ALT_PROBES_FILE
//   SOLVER_START_WORD (tares), SOLVER_ALT_WORDS (false), SOLVER_WORKERS (GOMAXPROCS)
//   DB_PATH (./data/results.db)
//   JWT_SECRET (dev_secret_change_me), SESSION_TTL_HOURS (24)
//   DAILY_SALT (local_dev_salt), CLIENT_ORIGIN (http://localhost:5173)

package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// Config is the resolved process configuration.
type Config struct {
	Port         string
	LogLevel     string
	Words        words.Sources
	StartWord    string
	AltWords     bool
	Workers      int
	DBPath       string
	JWTSecret    string
	SessionTTL   time.Duration
	DailySalt    string
	ClientOrigin string
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	cfg := Config{
		Port:     getEnv("PORT", "5175"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Words: words.Sources{
			AnswersFile:   os.Getenv("WORDS_ANSWERS_FILE"),
			ProbesFile:    os.Getenv("WORDS_PROBES_FILE"),
			AltProbesFile: os.Getenv("WORDS_ALT_PROBES_FILE"),
		},
		StartWord:    getEnv("SOLVER_START_WORD", solver.DefaultStartWord),
		DBPath:       getEnv("DB_PATH", "./data/results.db"),
		JWTSecret:    getEnv("JWT_SECRET", "dev_secret_change_me"),
		DailySalt:    getEnv("DAILY_SALT", "local_dev_salt"),
		ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
	}

	var err error
	if cfg.AltWords, err = envBool("SOLVER_ALT_WORDS", false); err != nil {
		return cfg, err
	}
	if cfg.Workers, err = envInt("SOLVER_WORKERS", runtime.GOMAXPROCS(0)); err != nil {
		return cfg, err
	}
	hours, err := envInt("SESSION_TTL_HOURS", 24)
	if err != nil {
		return cfg, err
	}
	cfg.SessionTTL = time.Duration(hours) * time.Hour
	return cfg, nil
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("%s: %w", k, err)
	}
	return n, nil
}

func envBool(k string, def bool) (bool, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, fmt.Errorf("%s: %w", k, err)
	}
	return b, nil
}
