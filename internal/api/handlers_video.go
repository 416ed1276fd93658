package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
)

func (s *Server) HandleInfo(w http.ResponseWriter, r *http.Request) {
	var req VideoInfoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := validateURL(req.URL); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	key := infoCacheKey(req.URL)

	var cached VideoMetadata
	if s.cacheGet(ctx, key, &cached) {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	meta, err := s.ext.VideoInfo(ctx, req.URL)
	if err != nil {
		writeExtractorError(w, err)
		return
	}

	resp := metadataResponse(meta)
	s.cacheSet(ctx, key, resp)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) HandleSearch(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}
	if req.MaxResults <= 0 {
		req.MaxResults = defaultMaxResults
	}

	ctx := r.Context()
	key := searchCacheKey(req.Query, req.MaxResults)

	var cached SearchResponse
	if s.cacheGet(ctx, key, &cached) {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	entries, err := s.ext.Search(ctx, req.Query, req.MaxResults)
	if err != nil {
		writeExtractorError(w, err)
		return
	}

	resp := SearchResponse{Results: searchResults(entries, req.MaxResults)}
	s.cacheSet(ctx, key, resp)
	writeJSON(w, http.StatusOK, resp)
}

func validateURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return errors.New("url is required")
	}
	u, err := url.ParseRequestURI(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("url is not a valid URI")
	}
	return nil
}
