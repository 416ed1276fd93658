package api

import (
	"fmt"

	"github.com/officeshinyujun/torax-api/internal/extractor"
)

const (
	// Thumbnails are always synthesized from the video id, never trusted
	// from the upstream payload.
	thumbnailTemplate = "https://i.ytimg.com/vi/%s/maxresdefault.jpg"
	watchURLTemplate  = "https://www.youtube.com/watch?v=%s"

	defaultMaxResults = 10
)

type VideoInfoRequest struct {
	URL string `json:"url"`
}

type SearchRequest struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

type VideoMetadata struct {
	Title       string   `json:"title"`
	Duration    int      `json:"duration"`
	Uploader    string   `json:"uploader"`
	ViewCount   int64    `json:"view_count"`
	Thumbnail   string   `json:"thumbnail"`
	UploadDate  string   `json:"upload_date"`
	Description string   `json:"description"`
	Categories  []string `json:"categories"`
	Tags        []string `json:"tags"`
}

type SearchResultItem struct {
	Title     string `json:"title"`
	Uploader  string `json:"uploader"`
	ViewCount int64  `json:"view_count"`
	Thumbnail string `json:"thumbnail"`
	URL       string `json:"url"`
	Duration  int    `json:"duration"`
	VideoID   string `json:"video_id"`
}

type SearchResponse struct {
	Results []SearchResultItem `json:"results"`
}

func metadataResponse(m *extractor.Metadata) VideoMetadata {
	return VideoMetadata{
		Title:       m.Title,
		Duration:    m.Duration,
		Uploader:    m.Uploader,
		ViewCount:   m.ViewCount,
		Thumbnail:   m.Thumbnail,
		UploadDate:  m.UploadDate,
		Description: m.Description,
		Categories:  m.Categories,
		Tags:        m.Tags,
	}
}

func searchResults(entries []extractor.SearchEntry, max int) []SearchResultItem {
	if len(entries) > max {
		entries = entries[:max]
	}
	out := make([]SearchResultItem, 0, len(entries))
	for _, e := range entries {
		out = append(out, SearchResultItem{
			Title:     e.Title,
			Uploader:  e.Uploader,
			ViewCount: e.ViewCount,
			Thumbnail: fmt.Sprintf(thumbnailTemplate, e.ID),
			URL:       fmt.Sprintf(watchURLTemplate, e.ID),
			Duration:  e.Duration,
			VideoID:   e.ID,
		})
	}
	return out
}
