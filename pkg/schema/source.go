package schema

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// Source identifies where a stored schema came from so loaders can read files,
// fs.FS entries, or URLs through the same entry point.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

type location struct {
	kind  SourceKind
	value string
}

func (l location) Kind() SourceKind { return l.kind }
func (l location) Location() string { return l.value }

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(p string) Source {
	return location{kind: SourceKindFile, value: filepath.Clean(p)}
}

// SourceFromFS returns a Source identifying a resource inside an fs.FS.
func SourceFromFS(name string) Source {
	return location{kind: SourceKindFS, value: path.Clean(name)}
}

// SourceFromURL parses the supplied URL string and returns a Source. It panics
// if the URL is invalid to surface configuration mistakes early.
func SourceFromURL(raw string) Source {
	src, err := urlSource(raw)
	if err != nil {
		panic(err.Error())
	}
	return src
}

// ParseSource maps a user supplied path or URL onto a Source. http(s) URLs
// become URL sources, everything else is treated as a file path.
func ParseSource(raw string) (Source, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, errors.New("schema: source is required")
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return urlSource(trimmed)
	}
	return SourceFromFile(trimmed), nil
}

func urlSource(raw string) (Source, error) {
	if raw == "" {
		return nil, errors.New("schema: empty URL source")
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		return nil, fmt.Errorf("schema: invalid URL %q: %v", raw, err)
	}
	return location{kind: SourceKindURL, value: raw}, nil
}
