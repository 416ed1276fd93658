package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
)

// HandleDownload produces an MP3 for the requested video and streams it
// back. The workspace holding the artifact is released on every exit path:
// success, extractor failure, or client disconnect mid-stream.
func (s *Server) HandleDownload(w http.ResponseWriter, r *http.Request) {
	var req VideoInfoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := validateURL(req.URL); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ws, err := s.store.NewWorkspace()
	if err != nil {
		log.Printf("torax-api: allocate workspace: %v", err)
		writeError(w, http.StatusInternalServerError, "could not allocate working directory")
		return
	}
	defer s.store.Release(ws)

	// Deriving from the request context kills the yt-dlp subprocess if the
	// client goes away before extraction finishes.
	ctx, cancel := context.WithTimeout(r.Context(), s.DownloadTimeout)
	defer cancel()

	path, err := s.ext.DownloadAudio(ctx, req.URL, ws)
	if err != nil {
		log.Printf("torax-api: download %s: %v", req.URL, err)
		writeExtractorError(w, err)
		return
	}

	f, err := os.Open(path)
	if err != nil {
		log.Printf("torax-api: open artifact %s: %v", path, err)
		writeError(w, http.StatusInternalServerError, "could not open audio artifact")
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%s", strconv.Quote(filepath.Base(path))))
	if info, err := f.Stat(); err == nil {
		w.Header().Set("Content-Length", strconv.FormatInt(info.Size(), 10))
	}

	if _, err := io.Copy(w, f); err != nil {
		// Headers are already out; nothing to send, just clean up.
		log.Printf("torax-api: stream %s aborted: %v", filepath.Base(path), err)
	}
}
