package metadata

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"thirdcoast.systems/tubemeta/internal/videoref"
)

var testRef = videoref.Ref{VideoID: "dQw4w9WgXcQ"}

// rawFromJSON mirrors how raw metadata actually arrives: decoded from yt-dlp
// JSON, so all numbers are float64.
func rawFromJSON(t *testing.T, s string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &m))
	return m
}

func TestNormalize_FullPayload(t *testing.T) {
	raw := rawFromJSON(t, `{
		"title": "Never Gonna Give You Up",
		"description": "Official video",
		"upload_date": "20091025",
		"channel_id": "UCuAXFkgsw1L7xaCfnd5JJOw",
		"channel": "Rick Astley",
		"uploader": "RickAstleyVEVO",
		"uploader_url": "https://www.youtube.com/@RickAstley",
		"channel_url": "https://www.youtube.com/channel/UCuAXFkgsw1L7xaCfnd5JJOw",
		"channel_follower_count": 4500000,
		"duration": 212,
		"height": 1080,
		"view_count": 1400000000,
		"like_count": 16000000,
		"comment_count": 2200000,
		"tags": ["rick astley", " never gonna give you up ", ""],
		"categories": ["Music"],
		"is_live": false,
		"language": "en",
		"age_limit": 0,
		"availability": "public",
		"webpage_url": "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"original_url": "https://youtu.be/dQw4w9WgXcQ",
		"subtitles": {"en": []},
		"thumbnails": [
			{"url": "https://i.ytimg.com/vi/dQw4w9WgXcQ/default.jpg", "width": 120, "height": 90},
			{"url": "https://i.ytimg.com/vi/dQw4w9WgXcQ/maxresdefault.jpg", "width": 1280, "height": 720}
		]
	}`)

	v := Normalize(raw, testRef)

	require.Equal(t, "dQw4w9WgXcQ", v.VideoID)
	require.False(t, v.IsShort)

	require.NotNil(t, v.Snippet.PublishedAt)
	require.Equal(t, "2009-10-25T00:00:00Z", *v.Snippet.PublishedAt)
	require.Equal(t, "UCuAXFkgsw1L7xaCfnd5JJOw", v.Snippet.ChannelID)
	require.Equal(t, "https://www.youtube.com/channel/UCuAXFkgsw1L7xaCfnd5JJOw", v.Snippet.ChannelURL)
	require.Equal(t, "Never Gonna Give You Up", v.Snippet.Title)
	require.Equal(t, "Rick Astley", v.Snippet.ChannelTitle)
	require.Equal(t, []string{"rick astley", "never gonna give you up"}, v.Snippet.Tags)
	require.NotNil(t, v.Snippet.CategoryID)
	require.Equal(t, "Music", *v.Snippet.CategoryID)
	require.Equal(t, "none", v.Snippet.LiveBroadcastContent)
	require.NotNil(t, v.Snippet.DefaultLanguage)
	require.Equal(t, "en", *v.Snippet.DefaultLanguage)
	require.NotNil(t, v.Snippet.Localized)
	require.Equal(t, "Never Gonna Give You Up", v.Snippet.Localized.Title)

	require.NotNil(t, v.Statistics.ViewCount)
	require.Equal(t, "1400000000", *v.Statistics.ViewCount)
	require.NotNil(t, v.Statistics.LikeCount)
	require.Equal(t, "16000000", *v.Statistics.LikeCount)
	require.NotNil(t, v.Statistics.CommentCount)
	require.Equal(t, "2200000", *v.Statistics.CommentCount)
	require.Equal(t, "0", v.Statistics.FavoriteCount)

	require.Equal(t, "PT3M32S", v.ContentDetails.Duration)
	require.Equal(t, int64(212), v.ContentDetails.DurationSeconds)
	require.Equal(t, "hd", v.ContentDetails.Definition)
	require.NotNil(t, v.ContentDetails.CaptionsAvailable)
	require.True(t, *v.ContentDetails.CaptionsAvailable)
	require.Equal(t, "2d", v.ContentDetails.Dimension)
	require.Equal(t, "rectangular", v.ContentDetails.Projection)

	require.Equal(t, "public", v.Status.PrivacyStatus)
	require.False(t, v.Status.AgeRestricted)

	require.Equal(t, "UCuAXFkgsw1L7xaCfnd5JJOw", v.Channel.ID)
	require.Equal(t, "Rick Astley", v.Channel.Title)
	require.Equal(t, "https://www.youtube.com/@RickAstley", v.Channel.CustomURL)
	require.NotNil(t, v.Channel.SubscriberCount)
	require.Equal(t, "4500000", *v.Channel.SubscriberCount)
	require.Equal(t, "https://www.youtube.com/channel/UCuAXFkgsw1L7xaCfnd5JJOw", v.Channel.URL)

	require.Len(t, v.Snippet.Thumbnails, 2)
	require.Equal(t, Thumbnail{URL: "https://i.ytimg.com/vi/dQw4w9WgXcQ/default.jpg", Width: 120, Height: 90}, v.Snippet.Thumbnails["default"])
	require.Equal(t, 1280, v.Snippet.Thumbnails["maxres"].Width)

	require.NotNil(t, v.AdditionalInfo)
	require.Equal(t, testRef.UUID().String(), v.AdditionalInfo.UUID)
	require.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", v.AdditionalInfo.WebpageURL)

	require.Contains(t, v.Player.EmbedHTML, "//www.youtube.com/embed/dQw4w9WgXcQ")
}

func TestNormalize_EmptyRaw(t *testing.T) {
	ref := videoref.Ref{VideoID: "ggLajT7aMMk", IsShort: true}
	v := Normalize(map[string]any{}, ref)

	require.Equal(t, "ggLajT7aMMk", v.VideoID)
	require.True(t, v.IsShort)

	require.Nil(t, v.Snippet.PublishedAt)
	require.Empty(t, v.Snippet.ChannelID)
	require.Empty(t, v.Snippet.ChannelURL)
	require.Empty(t, v.Snippet.Title)
	require.Empty(t, v.Snippet.LiveBroadcastContent)
	require.Nil(t, v.Snippet.CategoryID)
	require.Nil(t, v.Snippet.Localized)
	require.Nil(t, v.Snippet.Thumbnails)
	require.Equal(t, []string{}, v.Snippet.Tags)

	require.Nil(t, v.Statistics.ViewCount)
	require.Nil(t, v.Statistics.LikeCount)
	require.Nil(t, v.Statistics.CommentCount)
	require.Empty(t, v.Statistics.FavoriteCount)

	require.Empty(t, v.ContentDetails.Duration)
	require.Zero(t, v.ContentDetails.DurationSeconds)
	require.Empty(t, v.ContentDetails.Definition)
	require.Nil(t, v.ContentDetails.CaptionsAvailable)
	require.Empty(t, v.ContentDetails.Dimension)

	require.Empty(t, v.Channel.ID)
	require.Nil(t, v.Channel.SubscriberCount)
	require.Empty(t, v.Channel.URL)
}

func TestNormalize_DurationVariants(t *testing.T) {
	t.Run("iso string", func(t *testing.T) {
		v := Normalize(map[string]any{"duration": "PT10M30S"}, testRef)
		require.Equal(t, "PT10M30S", v.ContentDetails.Duration)
		require.Equal(t, int64(630), v.ContentDetails.DurationSeconds)
	})

	t.Run("malformed string kept verbatim", func(t *testing.T) {
		v := Normalize(map[string]any{"duration": "ten minutes"}, testRef)
		require.Equal(t, "ten minutes", v.ContentDetails.Duration)
		require.Zero(t, v.ContentDetails.DurationSeconds)
	})

	t.Run("numeric seconds", func(t *testing.T) {
		v := Normalize(rawFromJSON(t, `{"duration": 3600}`), testRef)
		require.Equal(t, "PT1H", v.ContentDetails.Duration)
		require.Equal(t, int64(3600), v.ContentDetails.DurationSeconds)
	})
}

func TestNormalize_ChannelURLDerivedOnlyWhenIDPresent(t *testing.T) {
	v := Normalize(map[string]any{"channel_id": "UC123"}, testRef)
	require.Equal(t, "https://www.youtube.com/channel/UC123", v.Snippet.ChannelURL)
	require.Equal(t, "https://www.youtube.com/channel/UC123", v.Channel.URL)

	v = Normalize(map[string]any{"title": "no channel"}, testRef)
	require.Empty(t, v.Snippet.ChannelURL)
	require.Empty(t, v.Channel.URL)
}

func TestNormalize_ChannelTitleFallsBackToUploader(t *testing.T) {
	v := Normalize(map[string]any{"uploader": "SomeUploader"}, testRef)
	require.Equal(t, "SomeUploader", v.Snippet.ChannelTitle)
	require.Equal(t, "SomeUploader", v.Channel.Title)
}

func TestNormalize_Definition(t *testing.T) {
	v := Normalize(rawFromJSON(t, `{"height": 480}`), testRef)
	require.Equal(t, "sd", v.ContentDetails.Definition)

	v = Normalize(rawFromJSON(t, `{"height": 720}`), testRef)
	require.Equal(t, "hd", v.ContentDetails.Definition)
}

func TestNormalize_Captions(t *testing.T) {
	v := Normalize(rawFromJSON(t, `{"subtitles": {}, "automatic_captions": {}}`), testRef)
	require.NotNil(t, v.ContentDetails.CaptionsAvailable)
	require.False(t, *v.ContentDetails.CaptionsAvailable)

	v = Normalize(rawFromJSON(t, `{"automatic_captions": {"en": []}}`), testRef)
	require.NotNil(t, v.ContentDetails.CaptionsAvailable)
	require.True(t, *v.ContentDetails.CaptionsAvailable)
}

func TestNormalize_Status(t *testing.T) {
	v := Normalize(rawFromJSON(t, `{"availability": "unlisted", "age_limit": 18}`), testRef)
	require.Equal(t, "unlisted", v.Status.PrivacyStatus)
	require.True(t, v.Status.AgeRestricted)
	require.Equal(t, "processed", v.Status.UploadStatus)
	require.True(t, v.Status.Embeddable)
}

func TestNormalize_ThumbnailsSkipEntriesWithoutURL(t *testing.T) {
	v := Normalize(rawFromJSON(t, `{"thumbnails": [
		{"width": 120, "height": 90},
		{"url": "https://i.ytimg.com/vi/x/hqdefault.jpg?sqp=abc", "width": 480, "height": 360},
		{"url": "https://example.com/custom.jpg", "id": "0"}
	]}`), testRef)

	require.Len(t, v.Snippet.Thumbnails, 2)
	require.Equal(t, 480, v.Snippet.Thumbnails["high"].Width)
	require.Equal(t, "https://example.com/custom.jpg", v.Snippet.Thumbnails["0"].URL)
}

func TestNormalize_UnparseableUploadDateKeptVerbatim(t *testing.T) {
	v := Normalize(map[string]any{"upload_date": "sometime"}, testRef)
	require.NotNil(t, v.Snippet.PublishedAt)
	require.Equal(t, "sometime", *v.Snippet.PublishedAt)
}
