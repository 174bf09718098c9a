package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-schemaform/pkg/schema"
)

// payload is what a fetcher hands back: the bytes plus the format the origin
// declared, when it declared one.
type payload struct {
	data   []byte
	format schema.Format
}

type fetcher func(ctx context.Context, location string) (payload, error)

// Loader implements schema.Loader. Each source kind maps to a fetcher; kinds
// without a fetcher were not enabled by the options.
type Loader struct {
	fetchers map[schema.SourceKind]fetcher
}

var _ schema.Loader = (*Loader)(nil)

// New builds a Loader from resolved options. Local files are always readable;
// fs.FS and HTTP sources need a file system or an HTTP client respectively.
func New(options schema.LoaderOptions) schema.Loader {
	l := &Loader{fetchers: map[schema.SourceKind]fetcher{
		schema.SourceKindFile: loadFile,
	}}

	if options.FileSystem != nil {
		files := options.FileSystem
		l.fetchers[schema.SourceKindFS] = func(ctx context.Context, name string) (payload, error) {
			return loadFromFS(ctx, files, name)
		}
	}

	if client := httpClient(options); client != nil {
		l.fetchers[schema.SourceKindURL] = func(ctx context.Context, url string) (payload, error) {
			return loadHTTP(ctx, client, url, options.RequestTimeout)
		}
	}
	return l
}

func httpClient(options schema.LoaderOptions) *http.Client {
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if options.RequestTimeout > 0 && clone.Timeout == 0 {
			clone.Timeout = options.RequestTimeout
		}
		return &clone
	case options.AllowHTTPFallback:
		return &http.Client{Timeout: options.RequestTimeout}
	}
	return nil
}

// Load fetches src, settles its format and checks that the payload parses in
// that format before wrapping it. A declared format (HTTP Content-Type) wins
// over the location extension, which wins over sniffing the bytes.
func (l *Loader) Load(ctx context.Context, src schema.Source) (schema.Document, error) {
	if src == nil {
		return schema.Document{}, errors.New("schema loader: source is nil")
	}

	fetch, ok := l.fetchers[src.Kind()]
	if !ok {
		return schema.Document{}, unavailable(src.Kind())
	}
	got, err := fetch(ctx, src.Location())
	if err != nil {
		return schema.Document{}, err
	}

	if len(bytes.TrimSpace(got.data)) == 0 {
		return schema.Document{}, fmt.Errorf("schema loader: %s is empty", src.Location())
	}

	format := got.format
	if format == "" {
		format = schema.FormatForPath(src.Location())
	}
	if format == "" {
		format = schema.DetectFormat(got.data)
	}
	if err := checkSyntax(format, got.data); err != nil {
		return schema.Document{}, fmt.Errorf("schema loader: %s is not valid %s: %w", src.Location(), format, err)
	}
	return schema.NewDocumentWithFormat(src, got.data, format)
}

func unavailable(kind schema.SourceKind) error {
	switch kind {
	case schema.SourceKindURL:
		return errors.New("schema loader: http support disabled")
	case schema.SourceKindFS:
		return errors.New("schema loader: no file system configured")
	}
	return fmt.Errorf("schema loader: unsupported source kind %q", kind)
}

func checkSyntax(format schema.Format, data []byte) error {
	if format == schema.FormatYAML {
		var node yaml.Node
		return yaml.Unmarshal(data, &node)
	}
	var value any
	return json.Unmarshal(data, &value)
}
