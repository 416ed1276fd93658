package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/officeshinyujun/torax-api/internal/download"
	"github.com/officeshinyujun/torax-api/internal/extractor"
)

// funcExtractor backs the download tests: the fake has to write real files
// into the per-request workspace.
type funcExtractor struct {
	downloadFn func(ctx context.Context, url, destDir string) (string, error)
}

func (f *funcExtractor) VideoInfo(ctx context.Context, url string) (*extractor.Metadata, error) {
	return nil, errors.New("not implemented")
}

func (f *funcExtractor) Search(ctx context.Context, query string, maxResults int) ([]extractor.SearchEntry, error) {
	return nil, errors.New("not implemented")
}

func (f *funcExtractor) DownloadAudio(ctx context.Context, url, destDir string) (string, error) {
	return f.downloadFn(ctx, url, destDir)
}

func newTestStore(t *testing.T) *download.Store {
	t.Helper()
	store, err := download.NewStore(filepath.Join(t.TempDir(), "downloads"))
	require.NoError(t, err)
	return store
}

func workingDirEntries(t *testing.T, store *download.Store) []os.DirEntry {
	t.Helper()
	entries, err := os.ReadDir(store.Root())
	require.NoError(t, err)
	return entries
}

func TestHandleDownload(t *testing.T) {
	t.Run("streams artifact and cleans up", func(t *testing.T) {
		store := newTestStore(t)
		ext := &funcExtractor{
			downloadFn: func(ctx context.Context, url, destDir string) (string, error) {
				path := filepath.Join(destDir, "My Song.mp3")
				return path, os.WriteFile(path, []byte("mp3-bytes"), 0o644)
			},
		}
		srv := NewServer(ext, store, nil)

		rr := httptest.NewRecorder()
		srv.HandleDownload(rr, postJSON("/api/video/download", `{"url":"https://youtu.be/abc"}`))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "audio/mpeg", rr.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="My Song.mp3"`, rr.Header().Get("Content-Disposition"))
		assert.Equal(t, "9", rr.Header().Get("Content-Length"))
		assert.Equal(t, "mp3-bytes", rr.Body.String())

		assert.Empty(t, workingDirEntries(t, store), "workspace must be removed after streaming")
	})

	t.Run("extractor failure is a server error and leaves no files", func(t *testing.T) {
		store := newTestStore(t)
		ext := &funcExtractor{
			downloadFn: func(ctx context.Context, url, destDir string) (string, error) {
				// Partial output before the failure must be swept too.
				_ = os.WriteFile(filepath.Join(destDir, "partial.webm"), []byte("x"), 0o644)
				return "", &extractor.DownloadError{URL: url, Err: errors.New("ffmpeg exited 1")}
			},
		}
		srv := NewServer(ext, store, nil)

		rr := httptest.NewRecorder()
		srv.HandleDownload(rr, postJSON("/api/video/download", `{"url":"https://youtu.be/abc"}`))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Body.String(), "detail")
		assert.Contains(t, rr.Body.String(), "ffmpeg exited 1")
		assert.Empty(t, workingDirEntries(t, store))
	})

	t.Run("missing artifact is a server error", func(t *testing.T) {
		store := newTestStore(t)
		ext := &funcExtractor{
			downloadFn: func(ctx context.Context, url, destDir string) (string, error) {
				return "", &extractor.DownloadError{URL: url, Err: extractor.ErrArtifactMissing}
			},
		}
		srv := NewServer(ext, store, nil)

		rr := httptest.NewRecorder()
		srv.HandleDownload(rr, postJSON("/api/video/download", `{"url":"https://youtu.be/abc"}`))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Body.String(), "artifact missing")
		assert.Empty(t, workingDirEntries(t, store))
	})

	t.Run("invalid url is a client error", func(t *testing.T) {
		store := newTestStore(t)
		srv := NewServer(&funcExtractor{}, store, nil)

		rr := httptest.NewRecorder()
		srv.HandleDownload(rr, postJSON("/api/video/download", `{"url":""}`))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Empty(t, workingDirEntries(t, store))
	})

	t.Run("concurrent downloads with identical titles do not collide", func(t *testing.T) {
		store := newTestStore(t)
		ext := &funcExtractor{
			downloadFn: func(ctx context.Context, url, destDir string) (string, error) {
				// Same title for every request; content derived from the URL.
				path := filepath.Join(destDir, "Same Title.mp3")
				return path, os.WriteFile(path, []byte("content-for-"+url), 0o644)
			},
		}
		srv := NewServer(ext, store, nil)

		urls := []string{"https://youtu.be/first", "https://youtu.be/second"}
		bodies := make([]string, len(urls))

		var wg sync.WaitGroup
		for i, u := range urls {
			wg.Add(1)
			go func(i int, u string) {
				defer wg.Done()
				rr := httptest.NewRecorder()
				srv.HandleDownload(rr, postJSON("/api/video/download", `{"url":"`+u+`"}`))
				if rr.Code == http.StatusOK {
					bodies[i] = rr.Body.String()
				}
			}(i, u)
		}
		wg.Wait()

		assert.Equal(t, "content-for-https://youtu.be/first", bodies[0])
		assert.Equal(t, "content-for-https://youtu.be/second", bodies[1])
		assert.Empty(t, workingDirEntries(t, store))
	})
}
