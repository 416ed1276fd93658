package extractor

import "errors"

// ErrArtifactMissing signals that yt-dlp reported success but the expected
// audio file was not on disk afterwards. It is always wrapped in a
// DownloadError.
var ErrArtifactMissing = errors.New("audio artifact missing after extraction")

// ExtractionError is a failed metadata lookup: bad URL, unsupported source,
// platform-side refusal. Treated as a client fault.
type ExtractionError struct {
	URL string
	Err error
}

func (e *ExtractionError) Error() string {
	return "extract " + e.URL + ": " + e.Err.Error()
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// SearchError is a failed search call against the platform.
type SearchError struct {
	Query string
	Err   error
}

func (e *SearchError) Error() string {
	return "search " + e.Query + ": " + e.Err.Error()
}

func (e *SearchError) Unwrap() error { return e.Err }

// DownloadError is a failed download or transcode, or a missing artifact
// after a claimed success. Unlike the other two it indicates a server-side
// or environment problem, not bad input.
type DownloadError struct {
	URL string
	Err error
}

func (e *DownloadError) Error() string {
	return "download " + e.URL + ": " + e.Err.Error()
}

func (e *DownloadError) Unwrap() error { return e.Err }
