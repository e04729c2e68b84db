package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"
)

// envReader reads typed values from the environment, falling back to a
// default when a key is unset or blank, and records every parse failure.
type envReader struct {
	problems []error
}

func (r *envReader) fail(format string, args ...any) {
	r.problems = append(r.problems, fmt.Errorf(format, args...))
}

func (r *envReader) require(ok bool, format string, args ...any) {
	if !ok {
		r.fail(format, args...)
	}
}

func (r *envReader) err() error {
	return wrapProblems(r.problems)
}

func (r *envReader) raw(key string) (string, bool) {
	value := strings.TrimSpace(os.Getenv(key))
	return value, value != ""
}

func (r *envReader) str(key, fallback string) string {
	if value, ok := r.raw(key); ok {
		return value
	}
	return fallback
}

func (r *envReader) oneOf(key, fallback string, allowed ...string) string {
	value := strings.ToLower(r.str(key, fallback))
	if !slices.Contains(allowed, value) {
		r.fail("%s %q: want one of %s", key, value, strings.Join(allowed, ", "))
		return fallback
	}
	return value
}

func (r *envReader) boolean(key string, fallback bool) bool {
	value, ok := r.raw(key)
	if !ok {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		r.fail("parse %s: %w", key, err)
		return fallback
	}
	return parsed
}

func (r *envReader) atLeast(key string, fallback, minimum int) int {
	value, ok := r.raw(key)
	if !ok {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		r.fail("parse %s: %w", key, err)
		return fallback
	}
	if parsed < minimum {
		r.fail("%s must be >= %d, got %d", key, minimum, parsed)
	}
	return parsed
}

func (r *envReader) positiveDuration(key string, fallback time.Duration) time.Duration {
	value, ok := r.raw(key)
	if !ok {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		r.fail("parse %s: %w", key, err)
		return fallback
	}
	if parsed <= 0 {
		r.fail("%s must be > 0, got %s", key, parsed)
	}
	return parsed
}

// list splits a comma-separated value, dropping blank items.
func (r *envReader) list(key, fallback string) []string {
	var out []string
	for _, item := range strings.Split(r.str(key, fallback), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
