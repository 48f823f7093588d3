package date

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// dynamic date expressions: "@today" optionally followed by a signed offset
// in days, weeks, months or years.
var todayRe = regexp.MustCompile(`^@today([+-])(\d+)([dwmy])$`)

// Resolve evaluates a dynamic date expression into an ISO "YYYY-MM-DD" string.
//
// Supported expressions:
//
//	""              -> ""
//	"@today"        -> today's date in the given time zone
//	"@today+90d"    -> 90 days from today
//	"@today-7d"     -> 7 days ago
//	"@today+3m"     -> 3 months from today (calendar aware)
//	"2026-01-01"    -> passed through as-is
//
// The "@today" token and the unit letter are case-insensitive. Any other
// non-empty string is returned unchanged: it is assumed to be a concrete
// date already, and consumers that parse it decide what to do with it.
func Resolve(expr, tzname string) string {
	return resolveFrom(expr, TodayIn(location(tzname)))
}

// location resolves a time zone name, falling back to the system local zone
// when the name is empty or unknown.
func location(tzname string) *time.Location {
	if tzname == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(tzname)
	if err != nil {
		return time.Local
	}
	return loc
}

// resolveFrom is Resolve with an explicit base day instead of today.
func resolveFrom(expr string, base Date) string {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return ""
	}
	lower := strings.ToLower(expr)

	if lower == "@today" {
		return base.String()
	}

	m := todayRe.FindStringSubmatch(lower)
	if m == nil {
		// Not a dynamic expression: pass through unchanged.
		return expr
	}

	n, _ := strconv.Atoi(m[2]) // the regexp guarantees digits
	if m[1] == "-" {
		n = -n
	}
	switch m[3] {
	case "d":
		return base.Add(n).String()
	case "w":
		return base.Add(7 * n).String()
	case "m":
		return base.AddMonths(n).String()
	default: // "y"
		return base.AddYears(n).String()
	}
}
