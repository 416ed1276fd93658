package api

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"time"
)

const cacheTTL = 10 * time.Minute

func infoCacheKey(url string) string {
	return "torax:info:" + url
}

func searchCacheKey(query string, max int) string {
	return "torax:search:" + query + ":" + strconv.Itoa(max)
}

// cacheGet fills v from Redis and reports whether it hit. With no Redis
// client configured it always misses; cache problems are logged, never
// surfaced to the caller.
func (s *Server) cacheGet(ctx context.Context, key string, v any) bool {
	if s.rdb == nil {
		return false
	}
	data, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Printf("torax-api: cache decode %s: %v", key, err)
		return false
	}
	return true
}

func (s *Server) cacheSet(ctx context.Context, key string, v any) {
	if s.rdb == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, data, cacheTTL).Err(); err != nil {
		log.Printf("torax-api: cache set %s: %v", key, err)
	}
}
