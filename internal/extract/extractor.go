// Package extract wraps the yt-dlp backend behind a narrow capability
// interface so handlers and tests never touch the subprocess directly.
package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"thirdcoast.systems/tubemeta/internal/videoref"
	"thirdcoast.systems/tubemeta/pkg/ytdlp"
)

// Kind classifies an extraction failure for HTTP status mapping.
type Kind int

const (
	// KindUnavailable means the video itself cannot be served: private,
	// deleted, age-blocked, or nonexistent. Maps to a client error.
	KindUnavailable Kind = iota

	// KindUpstream means YouTube or yt-dlp failed: network errors, timeouts,
	// extractor breakage. Maps to a server error.
	KindUpstream
)

type Error struct {
	Kind   Kind
	Reason string
	Cause  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("extract: %s", e.Reason)
}

func (e *Error) Unwrap() error { return e.Cause }

// Extractor fetches the raw metadata bag for a video. Implementations own
// their retry and timeout policy; callers only see success or *Error.
type Extractor interface {
	Extract(ctx context.Context, ref videoref.Ref) (map[string]any, error)
}

type infoClient interface {
	ExtractInfo(ctx context.Context, url string, extraArgs ...string) (map[string]any, error)
}

// YTDLP is the yt-dlp-backed Extractor.
type YTDLP struct {
	yt infoClient
}

// Default args mirror what a desktop browser session looks like; the android
// player client avoids most web-side throttling.
var defaultArgs = []string{
	"--extractor-args", "youtube:player_client=android,web",
	"--user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"--add-header", "Accept-Language:en-US,en;q=0.9",
}

func NewYTDLP(path string) *YTDLP {
	c := ytdlp.New()
	if strings.TrimSpace(path) != "" {
		c.Path = path
	}
	c.ExtraArgs = append(c.ExtraArgs, defaultArgs...)
	return &YTDLP{yt: c}
}

// Extract fetches metadata for ref. The returned map is yt-dlp's JSON output
// passed through uninterpreted.
func (y *YTDLP) Extract(ctx context.Context, ref videoref.Ref) (map[string]any, error) {
	info, err := y.yt.ExtractInfo(ctx, ref.WatchURL())
	if err != nil {
		return nil, classify(err)
	}
	return info, nil
}

// Stderr fragments yt-dlp emits for videos that cannot be served, as opposed
// to transient upstream failures.
var unavailableFragments = []string{
	"video unavailable",
	"private video",
	"this video is private",
	"has been removed",
	"no longer available",
	"account associated with this video has been terminated",
	"sign in to confirm your age",
	"age-restricted",
	"available in your country",
	"is not a valid url",
	"unable to extract video id",
}

func classify(err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &Error{Kind: KindUpstream, Reason: "extraction timed out", Cause: err}
	}

	var ee *ytdlp.ExecError
	if errors.As(err, &ee) {
		reason := firstErrorLine(ee.Stderr)
		if reason == "" {
			reason = ee.Error()
		}
		lower := strings.ToLower(reason)
		for _, frag := range unavailableFragments {
			if strings.Contains(lower, frag) {
				return &Error{Kind: KindUnavailable, Reason: reason, Cause: err}
			}
		}
		return &Error{Kind: KindUpstream, Reason: reason, Cause: err}
	}

	return &Error{Kind: KindUpstream, Reason: err.Error(), Cause: err}
}

// firstErrorLine returns the first "ERROR:" line from yt-dlp stderr, without
// the prefix. Falls back to the first non-empty line.
func firstErrorLine(stderr string) string {
	fallback := ""
	for _, line := range strings.Split(stderr, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if rest, ok := strings.CutPrefix(line, "ERROR:"); ok {
			return strings.TrimSpace(rest)
		}
		if fallback == "" {
			fallback = line
		}
	}
	return fallback
}
