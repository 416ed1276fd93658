package extractor

// Metadata is the full per-video record returned by a metadata-only
// extraction. Fields the extractor omitted carry the placeholders the API
// promises ("No title", "Unknown", zeros, empty lists).
type Metadata struct {
	Title       string
	Duration    int
	Uploader    string
	ViewCount   int64
	Thumbnail   string
	UploadDate  string
	Description string
	Categories  []string
	Tags        []string
}

// SearchEntry is one lightweight result from a flat search. Only the raw
// upstream fields live here; canonical watch and thumbnail URLs are
// synthesized by the API layer from ID.
type SearchEntry struct {
	ID        string
	Title     string
	Uploader  string
	Duration  int
	ViewCount int64
}

// videoJSON mirrors the subset of yt-dlp's -J output this service reads.
type videoJSON struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Duration    float64      `json:"duration"`
	Uploader    string       `json:"uploader"`
	ViewCount   int64        `json:"view_count"`
	Thumbnail   string       `json:"thumbnail"`
	UploadDate  string       `json:"upload_date"`
	Description string       `json:"description"`
	Categories  []string     `json:"categories"`
	Tags        []string     `json:"tags"`
	Entries     []*videoJSON `json:"entries"`
}

func (v *videoJSON) metadata() *Metadata {
	m := &Metadata{
		Title:       v.Title,
		Duration:    int(v.Duration),
		Uploader:    v.Uploader,
		ViewCount:   v.ViewCount,
		Thumbnail:   v.Thumbnail,
		UploadDate:  v.UploadDate,
		Description: v.Description,
		Categories:  v.Categories,
		Tags:        v.Tags,
	}
	if m.Title == "" {
		m.Title = "No title"
	}
	if m.Uploader == "" {
		m.Uploader = "Unknown"
	}
	if m.Duration < 0 {
		m.Duration = 0
	}
	if m.ViewCount < 0 {
		m.ViewCount = 0
	}
	if m.Categories == nil {
		m.Categories = []string{}
	}
	if m.Tags == nil {
		m.Tags = []string{}
	}
	return m
}

// searchEntries flattens a search playlist, dropping null entries and
// entries without a video id.
func (v *videoJSON) searchEntries() []SearchEntry {
	out := make([]SearchEntry, 0, len(v.Entries))
	for _, e := range v.Entries {
		if e == nil || e.ID == "" {
			continue
		}
		entry := SearchEntry{
			ID:        e.ID,
			Title:     e.Title,
			Uploader:  e.Uploader,
			Duration:  int(e.Duration),
			ViewCount: e.ViewCount,
		}
		if entry.Title == "" {
			entry.Title = "No title"
		}
		if entry.Uploader == "" {
			entry.Uploader = "Unknown"
		}
		out = append(out, entry)
	}
	return out
}
