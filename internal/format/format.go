// Package format holds the pure display-formatting helpers: locale-grouped
// numbers and KST timestamps. No state beyond the shared printer.
package format

import (
	"errors"
	"fmt"
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ErrInvalidTimestamp reports an unparseable snapshot timestamp. Callers
// substitute TimestampPlaceholder rather than propagate it.
var ErrInvalidTimestamp = errors.New("invalid timestamp")

// TimestampPlaceholder is displayed when the producer's timestamp is broken.
const TimestampPlaceholder = "-"

const timestampLayout = "2006.01.02 15:04"

// The leaderboard displays in Korean locale and KST, regardless of where
// the server runs.
var (
	printer = message.NewPrinter(language.Korean)
	display = loadDisplayZone()
)

func loadDisplayZone() *time.Location {
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		return time.FixedZone("KST", 9*60*60)
	}
	return loc
}

// Number renders n with thousands grouping, rounded to the nearest integer.
func Number(n float64) string {
	return printer.Sprintf("%d", int64(math.Round(n)))
}

// Count renders an integer count with thousands grouping.
func Count(n int64) string {
	return printer.Sprintf("%d", n)
}

// Compact renders a subscriber count: values of 1000 and above collapse to
// one-decimal K form ("12.3K"), smaller values keep plain grouping.
func Compact(n int64) string {
	if n >= 1000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	}
	return Count(n)
}

// SignedChange renders a subscriber delta with explicit sign and, when the
// percent is nonzero, a one-decimal percent suffix: "+123 (+4.5%)".
func SignedChange(change int64, percent float64) string {
	s := fmt.Sprintf("%+d", change)
	if percent != 0 {
		s += fmt.Sprintf(" (%+.1f%%)", percent)
	}
	return s
}

// SignedScore renders a score delta with explicit sign and grouping.
func SignedScore(delta float64) string {
	n := int64(math.Round(delta))
	if n >= 0 {
		return "+" + Count(n)
	}
	return "-" + Count(-n)
}

// Timestamp renders an ISO-8601 instant as "YYYY.MM.DD HH:mm" in KST.
func Timestamp(iso string) (string, error) {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimestamp, iso)
	}
	return t.In(display).Format(timestampLayout), nil
}

// TimestampOrPlaceholder is Timestamp with the placeholder fallback applied.
func TimestampOrPlaceholder(iso string) string {
	s, err := Timestamp(iso)
	if err != nil {
		return TimestampPlaceholder
	}
	return s
}
