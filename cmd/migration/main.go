package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	"github.com/riskibarqy/live-match/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/live-match/internal/platform/logging"
)

var errUsage = errors.New("usage")

// migrator is the part of *migrate.Migrate the commands drive.
type migrator interface {
	Up() error
	Steps(n int) error
	Migrate(version uint) error
	Force(version int) error
	Version() (uint, bool, error)
}

type command struct {
	usage string
	run   func(m migrator, args []string, out io.Writer, logger *logging.Logger) error
}

var commands = map[string]command{
	"up": {"up", func(m migrator, _ []string, _ io.Writer, logger *logging.Logger) error {
		return settle(m.Up(), logger, "migrations applied")
	}},
	"down": {"down [steps=1]", func(m migrator, args []string, _ io.Writer, logger *logging.Logger) error {
		steps := 1
		if len(args) > 0 {
			n, err := strconv.Atoi(strings.TrimSpace(args[0]))
			if err != nil || n < 1 {
				return fmt.Errorf("down steps must be a positive integer, got %q", args[0])
			}
			steps = n
		}
		return settle(m.Steps(-steps), logger, "migrations rolled back", "steps", steps)
	}},
	"goto": {"goto <version>", func(m migrator, args []string, _ io.Writer, logger *logging.Logger) error {
		target, err := versionArg(args)
		if err != nil {
			return err
		}
		return settle(m.Migrate(uint(target)), logger, "migrated", "version", target)
	}},
	"force": {"force <version>", func(m migrator, args []string, _ io.Writer, logger *logging.Logger) error {
		version, err := versionArg(args)
		if err != nil {
			return err
		}
		if err := m.Force(version); err != nil {
			return fmt.Errorf("force version %d: %w", version, err)
		}
		logger.Info("migration version forced", "version", version)
		return nil
	}},
	"version": {"version", func(m migrator, _ []string, out io.Writer, _ *logging.Logger) error {
		version, dirty, err := m.Version()
		switch {
		case errors.Is(err, migrate.ErrNilVersion):
			_, err = fmt.Fprintln(out, "version: none\ndirty: false")
			return err
		case err != nil:
			return fmt.Errorf("read version: %w", err)
		}
		_, err = fmt.Fprintf(out, "version: %d\ndirty: %t\n", version, dirty)
		return err
	}},
}

func main() {
	_ = godotenv.Load()

	logger := logging.NewJSON(logging.LevelInfo).Named("migration")
	err := run(os.Args[1:], logger)
	switch {
	case errors.Is(err, errUsage):
		printUsage(os.Stderr)
		os.Exit(2)
	case err != nil:
		logger.Error("migration failed", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

func run(args []string, logger *logging.Logger) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, ok := commands[strings.ToLower(strings.TrimSpace(args[0]))]
	if !ok {
		return errUsage
	}

	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		return errors.New("DB_URL is required")
	}
	dir, err := migrationsDir()
	if err != nil {
		return err
	}

	m, err := migrate.New("file://"+filepath.ToSlash(dir), postgres.DSN(dbURL, envBool("DB_DISABLE_PREPARED_BINARY_RESULT")))
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if err := errors.Join(srcErr, dbErr); err != nil {
			logger.Warn("close migrator failed", "error", err)
		}
	}()

	logger.Info("running migration command", "command", cmd.usage, "dir", dir)
	return cmd.run(m, args[1:], os.Stdout, logger)
}

// settle treats ErrNoChange as success.
func settle(err error, logger *logging.Logger, msg string, args ...any) error {
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("no migration changes")
		return nil
	case err != nil:
		return err
	}
	logger.Info(msg, args...)
	return nil
}

func versionArg(args []string) (int, error) {
	if len(args) == 0 {
		return 0, errors.New("a version argument is required")
	}
	version, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil || version < 0 {
		return 0, fmt.Errorf("version must be a non-negative integer, got %q", args[0])
	}
	return version, nil
}

// migrationsDir prefers MIGRATIONS_DIR, then the repo and container layouts.
func migrationsDir() (string, error) {
	for _, candidate := range []string{os.Getenv("MIGRATIONS_DIR"), "db/migrations", "/app/db/migrations"} {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return filepath.Abs(candidate)
		}
	}
	return "", errors.New("migrations directory not found; set MIGRATIONS_DIR")
}

func envBool(key string) bool {
	ok, _ := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	return ok || strings.EqualFold(strings.TrimSpace(os.Getenv(key)), "yes")
}

func printUsage(w io.Writer) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	slices.Sort(names)

	fmt.Fprintf(w, "usage: %s <command> [args]\n", filepath.Base(os.Args[0]))
	for _, name := range names {
		fmt.Fprintf(w, "  %s\n", commands[name].usage)
	}
}
