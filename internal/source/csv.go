// Package source fetches and parses the meetings CSV document.
package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"
)

// Loader fetches the meetings CSV from an http(s) URL or a local file path
// and parses it into raw rows (header name → cell value).
type Loader struct {
	location   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewLoader creates a Loader for the given CSV location.
func NewLoader(location string, timeout time.Duration, logger *slog.Logger) *Loader {
	return &Loader{
		location: location,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Load fetches and parses the CSV. Any fetch or parse error is fatal to the
// load; it is the caller's job to surface it.
func (l *Loader) Load(ctx context.Context) ([]map[string]string, error) {
	body, err := l.open(ctx)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	rows, err := parseRows(body)
	if err != nil {
		return nil, fmt.Errorf("parse csv %s: %w", l.location, err)
	}

	l.logger.Debug("csv loaded", "location", l.location, "rows", len(rows))
	return rows, nil
}

func (l *Loader) open(ctx context.Context) (io.ReadCloser, error) {
	if strings.HasPrefix(l.location, "http://") || strings.HasPrefix(l.location, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.location, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		resp, err := l.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch csv: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("fetch csv: status %d from %s", resp.StatusCode, l.location)
		}
		return resp.Body, nil
	}

	f, err := os.Open(l.location)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	return f, nil
}

// parseRows reads a header row and maps every following record onto it.
// Records are allowed to be ragged: short rows leave trailing columns empty,
// surplus cells are ignored.
func parseRows(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}

		row := make(map[string]string, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			if i < len(record) {
				row[name] = record[i]
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}
