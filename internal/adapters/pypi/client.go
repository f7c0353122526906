// Package pypi implements the package index port against a PyPI-style JSON
// API, with memory and disk caching in front of the network client.
package pypi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mrmachine/reqs/internal/core/domain"
	"github.com/mrmachine/reqs/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultBaseURL is the public index queried when no other URL is configured.
const DefaultBaseURL = "https://pypi.org"

const defaultTimeout = 30 * time.Second

var _ ports.PackageIndex = (*Client)(nil)

// Client queries a PyPI-style JSON API ("/pypi/<name>/json").
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for the given index base URL.
// An empty baseURL selects the public index.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Project fetches the record for the named project.
func (c *Client) Project(ctx context.Context, name domain.Name) (*domain.PackageRecord, error) {
	url := fmt.Sprintf("%s/pypi/%s/json", c.baseURL, name.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to build index request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "index request failed"), "package", name.String())
	}
	defer resp.Body.Close() //nolint:errcheck // best effort close

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, zerr.With(domain.ErrPackageNotFound, "package", name.String())
	case resp.StatusCode != http.StatusOK:
		err := zerr.With(zerr.New("unexpected index response"), "package", name.String())
		return nil, zerr.With(err, "status", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read index response"), "package", name.String())
	}

	var project projectResponse
	if err := json.Unmarshal(body, &project); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse index response"), "package", name.String())
	}

	return toRecord(&project), nil
}

func toRecord(project *projectResponse) *domain.PackageRecord {
	record := &domain.PackageRecord{
		Name:   project.Info.Name,
		Latest: project.Info.Version,
	}

	record.Versions = make([]string, 0, len(project.Releases))
	for version := range project.Releases {
		record.Versions = append(record.Versions, version)
	}

	for _, dist := range project.Info.RequiresDist {
		if name, ok := requiredName(dist); ok {
			record.Requires = append(record.Requires, name)
		}
	}
	return record
}

// requiredName extracts the bare distribution name from a requires_dist
// entry such as "django (>=1.3) ; extra == 'forms'". Entries gated on an
// extra are skipped; only hard dependencies feed the graph.
func requiredName(dist string) (string, bool) {
	if _, marker, found := strings.Cut(dist, ";"); found {
		if strings.Contains(marker, "extra") {
			return "", false
		}
	}

	dist = strings.TrimSpace(dist)
	i := 0
	for i < len(dist) && isNameByte(dist[i]) {
		i++
	}
	if i == 0 {
		return "", false
	}
	return dist[:i], true
}

func isNameByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '-', c == '_', c == '.':
		return true
	}
	return false
}
