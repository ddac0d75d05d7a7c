// package formatter provides functions to export build run history to
// various formats (JSON, CSV, Markdown)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"tubelist/internal/models"
)

// RunsToJSON converts run history to indented JSON.
func RunsToJSON(runs []*models.Run) ([]byte, error) {
	data, err := json.MarshalIndent(runs, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal runs: %w", err)
	}
	return data, nil
}

// RunsToCSV converts run history to CSV format with columns:
// ID, Date, Playlist, Title, Privacy, Attempted, Added, NotFound, Duplicates, Failed
func RunsToCSV(runs []*models.Run) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Date", "Playlist", "Title", "Privacy", "Attempted", "Added", "NotFound", "Duplicates", "Failed"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, run := range runs {
		record := []string{
			run.RunID,
			run.Created.Format(time.RFC3339),
			run.Playlist.ID,
			run.Playlist.Title,
			string(run.Playlist.Privacy),
			strconv.Itoa(run.Attempted),
			strconv.Itoa(run.Added),
			strconv.Itoa(run.NotFound),
			strconv.Itoa(run.Duplicates),
			strconv.Itoa(run.Failed),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// RunsToMarkdown converts run history to a Markdown table.
func RunsToMarkdown(runs []*models.Run) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Build History\n\n")
	buf.WriteString(fmt.Sprintf("**Runs**: %d\n\n", len(runs)))

	buf.WriteString("| Date | Playlist | Attempted | Added | Not Found | Duplicates | Failed |\n")
	buf.WriteString("| --- | --- | --- | --- | --- | --- | --- |\n")
	for _, run := range runs {
		buf.WriteString(fmt.Sprintf("| %s | [%s](%s) | %d | %d | %d | %d | %d |\n",
			run.Created.Format("2006-01-02 15:04"),
			run.Playlist.Title, run.Playlist.URL(),
			run.Attempted, run.Added, run.NotFound, run.Duplicates, run.Failed))
	}

	return buf.Bytes(), nil
}

// WriteExport serializes runs in the requested format and writes the result
// to filepath. Format must be one of json, csv or markdown.
func WriteExport(runs []*models.Run, format string, filepath string) (string, error) {
	var data []byte
	var err error

	switch format {
	case "json":
		data, err = RunsToJSON(runs)
	case "csv":
		data, err = RunsToCSV(runs)
	case "markdown", "md":
		data, err = RunsToMarkdown(runs)
	default:
		return "", fmt.Errorf("unsupported export format %q: must be json, csv or markdown", format)
	}
	if err != nil {
		return "", err
	}

	if filepath == "" {
		filepath = defaultFilename(format)
	}
	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return filepath, nil
}

func defaultFilename(format string) string {
	ext := format
	if format == "markdown" {
		ext = "md"
	}
	return fmt.Sprintf("runs_%s.%s", time.Now().Format("20060102_150405"), ext)
}
