// package video_api serves video metadata lookups.
package video_api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"thirdcoast.systems/tubemeta/cmd/api/handlers/common"
	"thirdcoast.systems/tubemeta/internal/cache"
	"thirdcoast.systems/tubemeta/internal/extract"
	"thirdcoast.systems/tubemeta/internal/metadata"
	"thirdcoast.systems/tubemeta/internal/videoref"
)

type videoRequest struct {
	URL string `json:"url"`
}

// HandleVideo resolves a YouTube URL to normalized metadata. Registered for
// both GET (url query param) and POST (JSON body); when both are supplied the
// query parameter wins.
func HandleVideo(xt extract.Extractor, vc *cache.VideoCache, timeout time.Duration) echo.HandlerFunc {
	return func(c echo.Context) error {
		rawURL := strings.TrimSpace(c.QueryParam("url"))
		if rawURL == "" && c.Request().Method == http.MethodPost {
			var req videoRequest
			if err := c.Bind(&req); err != nil {
				return common.Fail(c, http.StatusBadRequest, "invalid request body")
			}
			rawURL = strings.TrimSpace(req.URL)
		}
		if rawURL == "" {
			return common.Fail(c, http.StatusBadRequest, "url is required")
		}

		ref, err := videoref.Parse(rawURL)
		if err != nil {
			return common.Fail(c, http.StatusBadRequest, "invalid YouTube URL")
		}

		key := ref.UUID()
		if v, ok := vc.Get(key); ok {
			// The cache key is shape-independent; the Shorts flag follows the
			// URL the caller actually used.
			v.IsShort = ref.IsShort
			slog.Debug("video served from cache", "video_id", ref.VideoID)
			return common.OK(c, v)
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
		defer cancel()

		started := time.Now()
		raw, err := xt.Extract(ctx, ref)
		if err != nil {
			var xe *extract.Error
			if errors.As(err, &xe) {
				status := http.StatusBadGateway
				if xe.Kind == extract.KindUnavailable {
					status = http.StatusNotFound
				}
				slog.Warn("extraction failed", "video_id", ref.VideoID, "kind", int(xe.Kind), "reason", xe.Reason)
				return common.Fail(c, status, xe.Reason)
			}
			slog.Error("extraction failed", "video_id", ref.VideoID, "error", err)
			return common.Fail(c, http.StatusInternalServerError, "extraction failed")
		}

		v := metadata.Normalize(raw, ref)
		vc.Put(key, v)

		slog.Info("video extracted",
			"video_id", ref.VideoID,
			"is_short", ref.IsShort,
			"duration_seconds", v.ContentDetails.DurationSeconds,
			"latency", time.Since(started))

		return common.OK(c, v)
	}
}
