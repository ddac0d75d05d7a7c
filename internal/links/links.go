// Package links extracts YouTube video identifiers from raw URL strings.
//
// Parsing is pure: no I/O happens outside of [ReadFile], and a [VideoID] is
// only ever constructed from a line matching one of the recognized URL
// shapes.
package links

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// ErrNoMatch indicates a line matched none of the recognized URL shapes.
var ErrNoMatch = fmt.Errorf("no video id found in URL")

// VideoID is a validated 11-character YouTube video identifier.
type VideoID string

func (v VideoID) String() string { return string(v) }

// URL shapes are tried in order; the first capture wins.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`[?&]v=([A-Za-z0-9_-]{11})`),     // standard watch URL
	regexp.MustCompile(`youtu\.be/([A-Za-z0-9_-]{11})`), // short link
	regexp.MustCompile(`embed/([A-Za-z0-9_-]{11})`),     // embed player
	regexp.MustCompile(`shorts/([A-Za-z0-9_-]{11})`),    // shorts
	regexp.MustCompile(`/v/([A-Za-z0-9_-]{11})`),        // legacy flash player
}

// ExtractVideoID returns the video identifier embedded in raw, or
// [ErrNoMatch] if raw matches none of the recognized URL shapes.
func ExtractVideoID(raw string) (VideoID, error) {
	for _, pattern := range patterns {
		if m := pattern.FindStringSubmatch(raw); m != nil {
			return VideoID(m[1]), nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNoMatch, raw)
}

// ParseReader reads one URL per line from r, trimming whitespace and
// ignoring blank lines. Lines that yield no identifier are returned in
// skipped for the caller to warn about.
func ParseReader(r io.Reader) (ids []VideoID, skipped []string, err error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		id, err := ExtractVideoID(line)
		if err != nil {
			skipped = append(skipped, line)
			continue
		}
		ids = append(ids, id)
	}

	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read links: %w", err)
	}

	return ids, skipped, nil
}

// ReadFile parses the link file at path via [ParseReader].
func ReadFile(path string) ([]VideoID, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open link file: %w", err)
	}
	defer f.Close()

	return ParseReader(f)
}
