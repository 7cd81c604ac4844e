// internal/config/config.go
//
// Process configuration.
// Values come from the environment, after an optional .env file has been
// loaded with godotenv. Variables already set in the environment win over
// the file. Command-line flags override the result in package main.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// Config is everything the driver reads from the environment.
type Config struct {
	Words    words.Sources // WORDS_ANSWERS_FILE, WORDS_ALLOWED_FILE
	LogLevel string        // LOG_LEVEL

	Solver solver.Options // STRATEGY, HARD_MODE, HARD_RULE, WORKERS

	Port              string        // PORT
	DBPath            string        // DB_PATH
	JWTSecret         string        // JWT_SECRET
	JWTExpires        time.Duration // JWT_EXPIRES_HOURS
	AdminPasswordHash string        // ADMIN_PASSWORD_HASH, bcrypt
	ClientOrigin      string        // CLIENT_ORIGIN
	SessionTTL        time.Duration // SESSION_TTL_MINUTES

	DailySalt string // DAILY_SALT
}

// Load reads files (".env" when none are given) into the environment, then
// builds a Config. Missing files are not an error.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv.
func FromEnv(getenv func(string) string) (Config, error) {
	get := func(k, def string) string {
		if v := getenv(k); v != "" {
			return v
		}
		return def
	}

	c := Config{
		Words: words.Sources{
			AnswersFile: getenv("WORDS_ANSWERS_FILE"),
			AllowedFile: getenv("WORDS_ALLOWED_FILE"),
		},
		LogLevel:          get("LOG_LEVEL", "info"),
		Port:              get("PORT", "5175"),
		DBPath:            get("DB_PATH", "./data/results.db"),
		JWTSecret:         get("JWT_SECRET", "dev_secret_change_me"),
		AdminPasswordHash: getenv("ADMIN_PASSWORD_HASH"),
		ClientOrigin:      get("CLIENT_ORIGIN", "http://localhost:5173"),
		DailySalt:         get("DAILY_SALT", "wordle-solver"),
	}

	var err error
	if c.Solver.Strategy, err = solver.ParseStrategy(get("STRATEGY", "groupsize")); err != nil {
		return Config{}, fmt.Errorf("STRATEGY: %w", err)
	}
	if c.Solver.Hard, err = strconv.ParseBool(get("HARD_MODE", "false")); err != nil {
		return Config{}, fmt.Errorf("HARD_MODE: %w", err)
	}
	if c.Solver.Rule, err = solver.ParseHardRule(getenv("HARD_RULE")); err != nil {
		return Config{}, fmt.Errorf("HARD_RULE: %w", err)
	}
	if c.Solver.Workers, err = strconv.Atoi(get("WORKERS", "0")); err != nil {
		return Config{}, fmt.Errorf("WORKERS: %w", err)
	}
	hours, err := strconv.Atoi(get("JWT_EXPIRES_HOURS", "12"))
	if err != nil {
		return Config{}, fmt.Errorf("JWT_EXPIRES_HOURS: %w", err)
	}
	c.JWTExpires = time.Duration(hours) * time.Hour
	mins, err := strconv.Atoi(get("SESSION_TTL_MINUTES", "60"))
	if err != nil {
		return Config{}, fmt.Errorf("SESSION_TTL_MINUTES: %w", err)
	}
	c.SessionTTL = time.Duration(mins) * time.Minute
	return c, nil
}
