package metadata

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"thirdcoast.systems/tubemeta/internal/videoref"
)

// Thumbnail resolution names keyed by the i.ytimg.com basename yt-dlp reports.
var thumbnailNameByBasename = map[string]string{
	"default":       "default",
	"mqdefault":     "medium",
	"hqdefault":     "high",
	"sddefault":     "standard",
	"maxresdefault": "maxres",
}

// Normalize maps the raw extractor output onto the fixed Video shape.
//
// It is a pure function and never fails: every field access has a default, and
// an empty raw map yields a Video with only the identity fields populated.
func Normalize(raw map[string]any, ref videoref.Ref) Video {
	v := Video{
		VideoID: ref.VideoID,
		IsShort: ref.IsShort,
	}

	v.Snippet = normalizeSnippet(raw)
	v.Statistics = normalizeStatistics(raw)
	v.ContentDetails = normalizeContentDetails(raw)
	v.Status = normalizeStatus(raw)
	v.Channel = normalizeChannel(raw)

	v.Player = Player{EmbedHTML: embedHTML(ref.VideoID)}
	v.AdditionalInfo = &AdditionalInfo{
		UUID:        ref.UUID().String(),
		WebpageURL:  stringField(raw, "webpage_url"),
		OriginalURL: stringField(raw, "original_url"),
	}

	return v
}

func normalizeSnippet(raw map[string]any) Snippet {
	s := Snippet{
		Title:       stringField(raw, "title"),
		Description: stringField(raw, "description"),
		Tags:        stringSliceField(raw, "tags"),
		Thumbnails:  normalizeThumbnails(raw),
	}

	s.PublishedAt = publishedAt(raw)

	s.ChannelID = stringField(raw, "channel_id")
	if s.ChannelID != "" {
		s.ChannelURL = "https://www.youtube.com/channel/" + s.ChannelID
	}

	s.ChannelTitle = stringField(raw, "channel")
	if s.ChannelTitle == "" {
		s.ChannelTitle = stringField(raw, "uploader")
	}

	if cats, ok := raw["categories"].([]any); ok && len(cats) > 0 {
		if c, ok := cats[0].(string); ok && strings.TrimSpace(c) != "" {
			cat := strings.TrimSpace(c)
			s.CategoryID = &cat
		}
	}

	if live, ok := raw["is_live"].(bool); ok {
		if live {
			s.LiveBroadcastContent = "live"
		} else {
			s.LiveBroadcastContent = "none"
		}
	}

	if lang := stringField(raw, "language"); lang != "" {
		s.DefaultLanguage = &lang
		s.DefaultAudioLanguage = &lang
	}

	if s.Title != "" || s.Description != "" {
		s.Localized = &Localized{Title: s.Title, Description: s.Description}
	}

	return s
}

// publishedAt converts yt-dlp's upload_date (YYYYMMDD) to RFC3339.
// An unparseable value is passed through verbatim rather than dropped.
func publishedAt(raw map[string]any) *string {
	ud := stringField(raw, "upload_date")
	if ud == "" {
		return nil
	}
	if t, err := time.Parse("20060102", ud); err == nil {
		formatted := t.UTC().Format("2006-01-02T15:04:05Z")
		return &formatted
	}
	return &ud
}

func normalizeStatistics(raw map[string]any) Statistics {
	st := Statistics{
		ViewCount:    countField(raw, "view_count"),
		LikeCount:    countField(raw, "like_count"),
		CommentCount: countField(raw, "comment_count"),
	}
	if st.ViewCount != nil || st.LikeCount != nil || st.CommentCount != nil {
		st.FavoriteCount = "0"
	}
	return st
}

func normalizeContentDetails(raw map[string]any) ContentDetails {
	cd := ContentDetails{}

	// yt-dlp reports duration as a number; other backends may hand us the
	// ISO-8601 string directly. A malformed string keeps the raw value with
	// DurationSeconds staying 0 rather than failing the response.
	switch d := raw["duration"].(type) {
	case float64:
		if d > 0 {
			cd.DurationSeconds = int64(d)
		}
		cd.Duration = FormatISODuration(cd.DurationSeconds)
	case string:
		cd.Duration = d
		if secs, ok := ParseISODuration(d); ok {
			cd.DurationSeconds = secs
		}
	}

	if height, ok := floatField(raw, "height"); ok {
		if height >= 720 {
			cd.Definition = "hd"
		} else {
			cd.Definition = "sd"
		}
	}

	if caps, ok := captionsAvailable(raw); ok {
		cd.CaptionsAvailable = &caps
	}

	if len(raw) > 0 {
		cd.Dimension = "2d"
		cd.Projection = "rectangular"
	}

	return cd
}

// captionsAvailable reports whether the extractor saw manual subtitles or
// auto-captions. The second return is false when neither key is present, so
// the output field stays absent instead of claiming "no captions".
func captionsAvailable(raw map[string]any) (bool, bool) {
	present := false
	for _, key := range []string{"subtitles", "automatic_captions"} {
		v, ok := raw[key]
		if !ok {
			continue
		}
		present = true
		if m, ok := v.(map[string]any); ok && len(m) > 0 {
			return true, true
		}
	}
	return false, present
}

func normalizeStatus(raw map[string]any) Status {
	st := Status{
		UploadStatus:  "processed",
		PrivacyStatus: "public",
		License:       "youtube",
		Embeddable:    true,
	}
	if avail := stringField(raw, "availability"); avail != "" {
		st.PrivacyStatus = avail
	}
	if age, ok := floatField(raw, "age_limit"); ok && age > 0 {
		st.AgeRestricted = true
	}
	return st
}

func normalizeChannel(raw map[string]any) Channel {
	ch := Channel{
		ID:              stringField(raw, "channel_id"),
		CustomURL:       stringField(raw, "uploader_url"),
		SubscriberCount: countField(raw, "channel_follower_count"),
	}

	ch.Title = stringField(raw, "channel")
	if ch.Title == "" {
		ch.Title = stringField(raw, "uploader")
	}

	ch.URL = stringField(raw, "channel_url")
	if ch.URL == "" && ch.ID != "" {
		ch.URL = "https://www.youtube.com/channel/" + ch.ID
	}

	return ch
}

func normalizeThumbnails(raw map[string]any) map[string]Thumbnail {
	entries, ok := raw["thumbnails"].([]any)
	if !ok || len(entries) == 0 {
		return nil
	}

	out := make(map[string]Thumbnail, len(entries))
	for _, e := range entries {
		m, ok := e.(map[string]any)
		if !ok {
			continue
		}
		url := stringField(m, "url")
		if url == "" {
			continue
		}

		name := thumbnailName(m, url)
		if name == "" {
			continue
		}

		t := Thumbnail{URL: url}
		if w, ok := floatField(m, "width"); ok {
			t.Width = int(w)
		}
		if h, ok := floatField(m, "height"); ok {
			t.Height = int(h)
		}
		out[name] = t
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

// thumbnailName keys a thumbnail entry by the well-known ytimg basename,
// falling back to the extractor-assigned id.
func thumbnailName(m map[string]any, url string) string {
	base := url
	if i := strings.LastIndex(base, "/"); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.IndexAny(base, ".?"); i >= 0 {
		base = base[:i]
	}
	if name, ok := thumbnailNameByBasename[base]; ok {
		return name
	}
	return stringField(m, "id")
}

func embedHTML(videoID string) string {
	return fmt.Sprintf(
		`<iframe width="480" height="270" src="//www.youtube.com/embed/%s" frameborder="0" allow="accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture; web-share" referrerpolicy="strict-origin-when-cross-origin" allowfullscreen></iframe>`,
		videoID)
}

func stringField(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func floatField(m map[string]any, key string) (float64, bool) {
	v, ok := m[key].(float64)
	return v, ok
}

func stringSliceField(m map[string]any, key string) []string {
	out := []string{}
	arr, ok := m[key].([]any)
	if !ok {
		return out
	}
	for _, it := range arr {
		s, ok := it.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

// countField reads a numeric counter as a decimal string. Nil when the key is
// missing or not a number, so absent counters stay absent.
func countField(m map[string]any, key string) *string {
	v, ok := m[key].(float64)
	if !ok {
		return nil
	}
	s := strconv.FormatInt(int64(v), 10)
	return &s
}
