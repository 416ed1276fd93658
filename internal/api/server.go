package api

import (
	"context"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/officeshinyujun/torax-api/internal/download"
	"github.com/officeshinyujun/torax-api/internal/extractor"
)

// Extractor is the external media engine the handlers delegate to.
type Extractor interface {
	VideoInfo(ctx context.Context, url string) (*extractor.Metadata, error)
	Search(ctx context.Context, query string, maxResults int) ([]extractor.SearchEntry, error)
	DownloadAudio(ctx context.Context, url, destDir string) (string, error)
}

type Server struct {
	ext   Extractor
	store *download.Store
	rdb   *redis.Client

	// DownloadTimeout bounds a single extractor download+transcode run.
	DownloadTimeout time.Duration
}

func NewServer(ext Extractor, store *download.Store, rdb *redis.Client) *Server {
	return &Server{
		ext:             ext,
		store:           store,
		rdb:             rdb,
		DownloadTimeout: 10 * time.Minute,
	}
}

func (s *Server) HandleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "YouTube Audio Downloader API",
	})
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "torax-api",
	})
}
