// Package extractor wraps the yt-dlp binary. Metadata and search use -J
// dumps; audio downloads go through yt-dlp's ffmpeg post-processor to
// produce an MP3 inside a caller-owned directory.
package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const (
	audioFormat  = "mp3"
	audioQuality = "192K"

	// stderr is passed through to API error payloads; keep it bounded.
	maxStderr = 300
)

type runnerFunc func(ctx context.Context, bin string, args ...string) ([]byte, error)

// Client invokes yt-dlp as a subprocess. Safe for concurrent use; each call
// spawns its own process bound to the caller's context.
type Client struct {
	bin string
	run runnerFunc
}

func NewClient(bin string) *Client {
	if bin == "" {
		bin = "yt-dlp"
	}
	return &Client{bin: bin, run: runCommand}
}

func runCommand(ctx context.Context, bin string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		msg := truncate(strings.TrimSpace(stderr.String()), maxStderr)
		if msg == "" {
			msg = err.Error()
		}
		return nil, errors.New(msg)
	}
	return stdout.Bytes(), nil
}

// VideoInfo performs a metadata-only extraction. No download, no file side
// effects.
func (c *Client) VideoInfo(ctx context.Context, url string) (*Metadata, error) {
	out, err := c.run(ctx, c.bin, "-J", "--no-playlist", "--no-warnings", url)
	if err != nil {
		return nil, &ExtractionError{URL: url, Err: err}
	}

	var data videoJSON
	if err := json.Unmarshal(out, &data); err != nil {
		return nil, &ExtractionError{URL: url, Err: fmt.Errorf("decode extractor output: %w", err)}
	}
	return data.metadata(), nil
}

// Search runs a flat search bounded by maxResults. Fewer or zero entries is
// not an error; unresolvable entries are dropped.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]SearchEntry, error) {
	out, err := c.run(ctx, c.bin, "-J", "--flat-playlist", "--no-warnings", searchTarget(query, maxResults))
	if err != nil {
		return nil, &SearchError{Query: query, Err: err}
	}

	var data videoJSON
	if err := json.Unmarshal(out, &data); err != nil {
		return nil, &SearchError{Query: query, Err: fmt.Errorf("decode extractor output: %w", err)}
	}
	return data.searchEntries(), nil
}

// DownloadAudio downloads the best audio stream, transcodes it to MP3 via
// the ffmpeg post-processor, and returns the artifact's absolute path. The
// artifact is written inside destDir, which the caller owns and removes.
func (c *Client) DownloadAudio(ctx context.Context, url, destDir string) (string, error) {
	out, err := c.run(ctx, c.bin,
		"--no-playlist",
		"--no-warnings",
		"-f", "bestaudio/best",
		"--extract-audio",
		"--audio-format", audioFormat,
		"--audio-quality", audioQuality,
		"-o", filepath.Join(destDir, "%(title)s.%(ext)s"),
		"--print", "after_move:filepath",
		"--no-simulate",
		url,
	)
	if err != nil {
		return "", &DownloadError{URL: url, Err: err}
	}

	path, err := resolveArtifact(string(out), destDir)
	if err != nil {
		return "", &DownloadError{URL: url, Err: err}
	}
	return path, nil
}

// resolveArtifact locates the produced MP3: first from the printed filepath,
// then by globbing the destination directory. The extraction claimed success
// by the time this runs, so an empty result is a broken invariant.
func resolveArtifact(printed, destDir string) (string, error) {
	for _, line := range strings.Split(printed, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if _, err := os.Stat(line); err == nil {
			return line, nil
		}
	}

	matches, _ := filepath.Glob(filepath.Join(destDir, "*."+audioFormat))
	if len(matches) > 0 {
		return matches[0], nil
	}
	return "", ErrArtifactMissing
}

func searchTarget(query string, maxResults int) string {
	return fmt.Sprintf("ytsearch%d:%s", maxResults, query)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
