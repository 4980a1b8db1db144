package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"thirdcoast.systems/tubemeta/cmd/api/handlers/video_api"
	"thirdcoast.systems/tubemeta/internal/cache"
	"thirdcoast.systems/tubemeta/internal/config"
	"thirdcoast.systems/tubemeta/internal/extract"
)

const apiVersion = "1.0.0"

type Webserver struct {
	*echo.Echo
	videoCache *cache.VideoCache
}

func NewWebserver(conf *config.Config, xt extract.Extractor) *Webserver {
	e := echo.New()

	s := &Webserver{
		Echo:       e,
		videoCache: cache.New(time.Duration(conf.CacheTTLSeconds) * time.Second),
	}

	s.setupMiddleware()
	s.registerRoutes(xt, time.Duration(conf.ExtractTimeoutSeconds)*time.Second)

	return s
}

func (s *Webserver) setupMiddleware() {
	s.HideBanner = true
	s.HidePort = true
	s.Use(middleware.BodyLimit("64K"))
	s.Use(middleware.Recover())
	s.Use(middleware.RequestID())
	s.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
	}))
	s.Use(middleware.CORS())
	s.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/health"
		},
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  false,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"remote_ip", v.RemoteIP,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				fields = append(fields, "error", v.Error)
			}
			slog.Info("request", fields...)
			return nil
		},
	}))
}

func (s *Webserver) registerRoutes(xt extract.Extractor, extractTimeout time.Duration) {
	videoHandler := video_api.HandleVideo(xt, s.videoCache, extractTimeout)
	s.GET("/video", videoHandler)
	s.POST("/video", videoHandler)

	// Health check
	s.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
	})

	// API description
	s.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"message": "YouTube Video Metadata API",
			"version": apiVersion,
			"endpoints": map[string]string{
				"GET /video":  "Get video metadata by URL query parameter",
				"POST /video": "Get video metadata by URL in request body",
				"GET /health": "Health check endpoint",
			},
		})
	})
}
