package datatable

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"
)

// Ready-made ChangeFuncs. They ignore the cell position; wrap them when a
// rule depends on it.

// Required rejects nil and blank strings.
func Required(v any, _, _ int) error {
	switch x := v.(type) {
	case nil:
		return fmt.Errorf("required")
	case string:
		if strings.TrimSpace(x) == "" {
			return fmt.Errorf("required")
		}
	}
	return nil
}

// MinInt rejects integers below n. nil passes; combine with Required.
func MinInt(n int) ChangeFunc {
	return func(v any, _, _ int) error {
		if i, ok := v.(int); ok && i < n {
			return fmt.Errorf("min %d", n)
		}
		return nil
	}
}

// MaxInt rejects integers above n.
func MaxInt(n int) ChangeFunc {
	return func(v any, _, _ int) error {
		if i, ok := v.(int); ok && i > n {
			return fmt.Errorf("max %d", n)
		}
		return nil
	}
}

// IntRange rejects integers outside [lo, hi].
func IntRange(lo, hi int) ChangeFunc {
	return func(v any, _, _ int) error {
		if i, ok := v.(int); ok && (i < lo || i > hi) {
			return fmt.Errorf("must be between %d and %d", lo, hi)
		}
		return nil
	}
}

// MaxLen rejects strings longer than n characters.
func MaxLen(n int) ChangeFunc {
	return func(v any, _, _ int) error {
		if s, ok := v.(string); ok && utf8.RuneCountInString(s) > n {
			return fmt.Errorf("max %d characters", n)
		}
		return nil
	}
}

// Match rejects non-empty strings that don't match the given regex pattern.
func Match(pattern string) ChangeFunc {
	re := regexp.MustCompile(pattern)
	return func(v any, _, _ int) error {
		s, ok := v.(string)
		if !ok || s == "" {
			return nil
		}
		if !re.MatchString(s) {
			return fmt.Errorf("invalid format")
		}
		return nil
	}
}

// OneOf rejects strings outside the allowed set.
func OneOf(allowed ...string) ChangeFunc {
	return func(v any, _, _ int) error {
		if s, ok := v.(string); ok && !slices.Contains(allowed, s) {
			return fmt.Errorf("must be one of %s", strings.Join(allowed, ", "))
		}
		return nil
	}
}

// All runs each check in order and returns the first failure.
func All(checks ...ChangeFunc) ChangeFunc {
	return func(v any, row, col int) error {
		for _, check := range checks {
			if err := check(v, row, col); err != nil {
				return err
			}
		}
		return nil
	}
}
