package videoref

import (
	"errors"
	"net/url"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidURL is returned when the input is not a recognized YouTube URL
// or the embedded video ID is malformed.
var ErrInvalidURL = errors.New("invalid YouTube URL")

// Well-known host aliases. Key: input host. Value: canonical domain.
//
// Keep this intentionally conservative: we only alias hosts that are truly
// YouTube from a user perspective.
var canonicalDomainByHost = map[string]string{
	"youtube.com":     "youtube.com",
	"www.youtube.com": "youtube.com",
	"m.youtube.com":   "youtube.com",
	"youtu.be":        "youtu.be",
}

// YouTube video IDs are always 11 characters.
var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// Ref identifies a single YouTube video. Built once by Parse and never
// mutated afterwards.
type Ref struct {
	VideoID string
	IsShort bool
}

// Parse validates a user-provided URL and extracts the canonical video ID.
//
// Recognized shapes (scheme optional, host case-insensitive, www/m aliases):
//   - youtube.com/watch?v={id}
//   - youtu.be/{id}
//   - youtube.com/shorts/{id}
//   - youtube.com/embed/{id}
//   - youtube.com/v/{id}
//   - youtube.com/live/{id}
//
// Extra query parameters and trailing path segments after the ID are ignored.
func Parse(input string) (Ref, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Ref{}, ErrInvalidURL
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Ref{}, ErrInvalidURL
	}
	if u.Scheme == "" {
		// Best effort: treat as https.
		u, err = url.Parse("https://" + raw)
		if err != nil {
			return Ref{}, ErrInvalidURL
		}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Ref{}, ErrInvalidURL
	}

	host := normalizeHost(u.Host)
	canon, ok := canonicalDomainByHost[host]
	if !ok {
		return Ref{}, ErrInvalidURL
	}

	if canon == "youtu.be" {
		return makeRef(firstPathSegment(u.Path), false)
	}

	// youtube.com/watch?v={id}
	if v := u.Query().Get("v"); v != "" {
		return makeRef(v, false)
	}

	for _, prefix := range []string{"/shorts/", "/embed/", "/v/", "/live/"} {
		if strings.HasPrefix(u.Path, prefix) {
			id := firstPathSegment(strings.TrimPrefix(u.Path, prefix))
			return makeRef(id, prefix == "/shorts/")
		}
	}

	return Ref{}, ErrInvalidURL
}

func makeRef(id string, isShort bool) (Ref, error) {
	id = strings.TrimSpace(id)
	if !videoIDPattern.MatchString(id) {
		return Ref{}, ErrInvalidURL
	}
	return Ref{VideoID: id, IsShort: isShort}, nil
}

// WatchURL returns the canonical URL handed to the extraction backend.
// Shorts keep their /shorts/ path so the extractor sees the same surface
// the user did.
func (r Ref) WatchURL() string {
	if r.IsShort {
		return "https://www.youtube.com/shorts/" + url.PathEscape(r.VideoID)
	}
	return "https://www.youtube.com/watch?v=" + url.QueryEscape(r.VideoID)
}

// namespaceUUID is the deterministic UUIDv5 namespace for youtube.com,
// uuid.NewSHA1(uuid.NameSpaceDNS, []byte("youtube.com")).
var namespaceUUID = uuid.NewSHA1(uuid.NameSpaceDNS, []byte("youtube.com"))

// UUID returns a deterministic UUIDv5 for the video, stable across URL
// shapes. Used as the metadata cache key.
func (r Ref) UUID() uuid.UUID {
	return uuid.NewSHA1(namespaceUUID, []byte(r.VideoID))
}

func normalizeHost(hostport string) string {
	h := strings.TrimSpace(strings.ToLower(hostport))
	if h == "" {
		return ""
	}
	// url.URL.Host may include port.
	if strings.Contains(h, ":") {
		if parsed, err := url.Parse("//" + h); err == nil {
			if parsed.Hostname() != "" {
				h = parsed.Hostname()
			}
		}
	}
	h = strings.TrimSuffix(h, ".")
	return h
}

func firstPathSegment(p string) string {
	p = strings.TrimSpace(p)
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		return ""
	}
	seg, _, _ := strings.Cut(p, "/")
	return strings.TrimSpace(seg)
}
