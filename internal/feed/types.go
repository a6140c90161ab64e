// Package feed fetches the raw per-zone resources: the yearly CSV table and
// its companion PDF. Resources live under a source that is either an
// http(s) base URL or a local directory.
package feed

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

// Kind selects which resource of a zone to fetch.
type Kind string

const (
	KindCSV Kind = "csv"
	KindPDF Kind = "pdf"
)

// ParseKind accepts "csv" or "pdf".
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindCSV, KindPDF:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown resource kind %q: must be csv or pdf", s)
}

// FileName returns the resource name for zone, e.g. "SGR01.csv".
func FileName(zone string, kind Kind) string {
	return zone + "." + string(kind)
}

// Fetcher retrieves a named resource from a source.
type Fetcher interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
	// Source describes where resources come from, for cache keys and logs.
	Source() string
}

// StatusError is returned when an HTTP source answers with a non-2xx status.
type StatusError struct {
	URL  string
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s returned status %d", e.URL, e.Code)
	}
	return fmt.Sprintf("%s returned status %d: %s", e.URL, e.Code, e.Body)
}

// ErrNotFound reports a missing resource (404 or a missing file).
var ErrNotFound = errors.New("resource not found")

// Is lets errors.Is(err, ErrNotFound) match a 404 StatusError.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Code == 404
}

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+\.(csv|pdf)$`)

func checkName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("invalid resource name %q", name)
	}
	return nil
}
