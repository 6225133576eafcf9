package entry

import (
	"fmt"
	"strings"
	"time"
)

// DateKeyLayout is the YYYY-MM-DD layout of date keys.
const DateKeyLayout = "2006-01-02"

// FormatDateKey formats t in its own location, the writer's local day.
func FormatDateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// ParseDateKey parses a strict YYYY-MM-DD key in loc.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateKeyLayout, key, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateKey, key)
	}
	return t, nil
}

// ValidateDateKey checks that key can name a storage partition.
// Keys are opaque unless strict is set, then they must be real calendar dates.
func ValidateDateKey(key string, strict bool) error {
	if !safeSegment(key) {
		return fmt.Errorf("%w: %q", ErrInvalidDateKey, key)
	}
	if strict {
		if _, err := ParseDateKey(key, time.UTC); err != nil {
			return err
		}
	}
	return nil
}

// ValidateOwner checks that owner can name a storage partition.
func ValidateOwner(owner string) error {
	if !safeSegment(owner) {
		return fmt.Errorf("%w: %q", ErrInvalidOwner, owner)
	}
	return nil
}

// safeSegment отсекает значения, которые нельзя использовать как имя файла или префикс ключа.
func safeSegment(s string) bool {
	if s == "" || s == "." || s == ".." {
		return false
	}
	return !strings.ContainsAny(s, "/\\\x00") && !strings.Contains(s, "..")
}
