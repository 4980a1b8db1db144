package metadata

import (
	"fmt"
	"regexp"
	"strconv"
)

// ISO-8601 time-only duration, the form YouTube uses: PT#H#M#S.
var isoDurationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// ParseISODuration parses an ISO-8601 duration like "PT10M30S" into total
// seconds. The second return is false for anything outside the PT#H#M#S
// grammar, including a bare "PT".
func ParseISODuration(s string) (int64, bool) {
	m := isoDurationPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	if m[1] == "" && m[2] == "" && m[3] == "" {
		return 0, false
	}

	var total int64
	for i, mult := range []int64{3600, 60, 1} {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.ParseInt(m[i+1], 10, 64)
		if err != nil {
			return 0, false
		}
		total += n * mult
	}
	return total, true
}

// FormatISODuration converts seconds to the ISO-8601 form (PT#H#M#S).
// Zero and negative inputs yield "PT0S".
func FormatISODuration(seconds int64) string {
	if seconds <= 0 {
		return "PT0S"
	}

	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60

	out := "PT"
	if h > 0 {
		out += fmt.Sprintf("%dH", h)
	}
	if m > 0 {
		out += fmt.Sprintf("%dM", m)
	}
	if s > 0 || (h == 0 && m == 0) {
		out += fmt.Sprintf("%dS", s)
	}
	return out
}
