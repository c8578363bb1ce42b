package jobmanager

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// progressMarker matches the worker progress protocol: the case-insensitive
// token "progress:", optional blanks, then the value up to the next blank.
var progressMarker = regexp.MustCompile(`(?i)progress:[ \t]*(\S*)`)

var errNotFinite = errors.New("value is not finite")

// ParseProgress extracts a percentage from a line of worker output, e.g.
// "progress: 42.5%" yields 42.5. ok is false when the line carries no
// usable value; err is a *ParseWarning when the marker is present but the
// value is malformed. ParseProgress never panics and has no side effects.
func ParseProgress(line string) (pct float64, ok bool, err error) {
	m := progressMarker.FindStringSubmatch(line)
	if m == nil {
		return 0, false, nil
	}

	value := strings.TrimSuffix(m[1], "%")

	pct, err = strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false, &ParseWarning{Value: m[1], Err: err}
	}

	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return 0, false, &ParseWarning{Value: m[1], Err: errNotFinite}
	}

	return pct, true, nil
}

func clampPercent(pct float64) float64 {
	return max(0, min(100, pct))
}
