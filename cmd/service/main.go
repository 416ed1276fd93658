package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/officeshinyujun/torax-api/internal/api"
	"github.com/officeshinyujun/torax-api/internal/download"
	"github.com/officeshinyujun/torax-api/internal/extractor"
)

func main() {
	_ = godotenv.Load()

	port := getenv("PORT", "8000")
	downloadDir := getenv("DOWNLOAD_DIR", "downloads")
	ytdlpBin := getenv("YTDLP_PATH", "yt-dlp")
	origins := strings.Split(getenv("ALLOWED_ORIGINS", "*"), ",")
	maxFileAge := time.Duration(getenvInt("MAX_FILE_AGE", 3600)) * time.Second
	downloadTimeout := time.Duration(getenvInt("DOWNLOAD_TIMEOUT", 600)) * time.Second

	store, err := download.NewStore(downloadDir)
	if err != nil {
		log.Fatalf("torax-api: %v", err)
	}

	var rdb *redis.Client
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Fatalf("torax-api: invalid REDIS_URL: %v", err)
		}
		rdb = redis.NewClient(opt)
		defer rdb.Close()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store.StartSweeper(ctx, time.Minute, maxFileAge)

	ext := extractor.NewClient(ytdlpBin)
	srv := api.NewServer(ext, store, rdb)
	srv.DownloadTimeout = downloadTimeout

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(api.CORS(origins))

	r.Get("/", srv.HandleRoot)
	r.Get("/health", srv.HandleHealth)

	r.Route("/api/video", func(r chi.Router) {
		// Metadata and search are bounded; downloads manage their own
		// timeout so a long transcode is not cut off mid-way.
		r.With(middleware.Timeout(30 * time.Second)).Post("/info", srv.HandleInfo)
		r.With(middleware.Timeout(30 * time.Second)).Post("/search", srv.HandleSearch)
		r.Post("/download", srv.HandleDownload)
	})

	log.Printf("torax-api listening on :%s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatalf("torax-api: %v", err)
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
		log.Printf("torax-api: ignoring invalid %s=%q", k, v)
	}
	return def
}
