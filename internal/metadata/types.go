package metadata

// Video is the fixed response shape, modeled on the YouTube Data API video
// resource. Optional leaves are pointers (or omitempty) so that fields the
// extractor did not return are absent rather than fabricated.
type Video struct {
	VideoID string `json:"videoId"`
	IsShort bool   `json:"isShort"`

	Snippet        Snippet         `json:"snippet"`
	Statistics     Statistics      `json:"statistics"`
	ContentDetails ContentDetails  `json:"contentDetails"`
	Status         Status          `json:"status"`
	Player         Player          `json:"player"`
	Channel        Channel         `json:"channel"`
	AdditionalInfo *AdditionalInfo `json:"additionalInfo,omitempty"`
}

type Snippet struct {
	PublishedAt          *string              `json:"publishedAt"`
	ChannelID            string               `json:"channelId,omitempty"`
	ChannelURL           string               `json:"channelUrl,omitempty"`
	Title                string               `json:"title"`
	Description          string               `json:"description"`
	Thumbnails           map[string]Thumbnail `json:"thumbnails,omitempty"`
	ChannelTitle         string               `json:"channelTitle,omitempty"`
	CategoryID           *string              `json:"categoryId,omitempty"`
	LiveBroadcastContent string               `json:"liveBroadcastContent,omitempty"`
	DefaultLanguage      *string              `json:"defaultLanguage,omitempty"`
	Localized            *Localized           `json:"localized,omitempty"`
	DefaultAudioLanguage *string              `json:"defaultAudioLanguage,omitempty"`
	Tags                 []string             `json:"tags"`
}

type Localized struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// Statistics counters are decimal strings, matching YouTube's own convention.
// A counter the extractor did not report stays nil.
type Statistics struct {
	ViewCount     *string `json:"viewCount"`
	LikeCount     *string `json:"likeCount"`
	FavoriteCount string  `json:"favoriteCount,omitempty"`
	CommentCount  *string `json:"commentCount"`
}

type ContentDetails struct {
	// Duration is the ISO-8601 encoding (e.g. "PT10M30S"). When the raw value
	// is malformed it is passed through verbatim and DurationSeconds is 0.
	Duration          string `json:"duration,omitempty"`
	DurationSeconds   int64  `json:"durationSeconds"`
	Dimension         string `json:"dimension,omitempty"`
	Definition        string `json:"definition,omitempty"`
	CaptionsAvailable *bool  `json:"captionsAvailable,omitempty"`
	Projection        string `json:"projection,omitempty"`
}

type Status struct {
	UploadStatus  string `json:"uploadStatus"`
	PrivacyStatus string `json:"privacyStatus"`
	License       string `json:"license"`
	Embeddable    bool   `json:"embeddable"`
	AgeRestricted bool   `json:"ageRestricted"`
}

type Player struct {
	EmbedHTML string `json:"embedHtml"`
}

type Channel struct {
	ID              string  `json:"id,omitempty"`
	Title           string  `json:"title,omitempty"`
	CustomURL       string  `json:"customUrl,omitempty"`
	SubscriberCount *string `json:"subscriberCount"`
	URL             string  `json:"url,omitempty"`
}

type AdditionalInfo struct {
	UUID        string `json:"uuid"`
	WebpageURL  string `json:"webpageUrl,omitempty"`
	OriginalURL string `json:"originalUrl,omitempty"`
}
