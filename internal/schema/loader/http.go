package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-schemaform/pkg/schema"
)

// maxRemoteSchemaBytes bounds remote payloads.
const maxRemoteSchemaBytes = 4 << 20

func loadHTTP(ctx context.Context, client *http.Client, url string, timeout time.Duration) (payload, error) {
	if url == "" {
		return payload{}, errors.New("schema loader: url is required")
	}

	reqCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return payload{}, fmt.Errorf("schema loader: build request: %w", err)
	}
	req.Header.Set("Accept", "application/schema+json, application/json, application/yaml;q=0.9")

	resp, err := client.Do(req)
	if err != nil {
		return payload{}, fmt.Errorf("schema loader: fetch %s: %w", url, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return payload{}, errors.New("schema loader: unexpected status " + resp.Status)
	}
	format, err := formatFromContentType(resp.Header.Get("Content-Type"))
	if err != nil {
		return payload{}, fmt.Errorf("schema loader: %s: %w", url, err)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteSchemaBytes+1))
	if err != nil {
		return payload{}, fmt.Errorf("schema loader: read body: %w", err)
	}
	if len(data) > maxRemoteSchemaBytes {
		return payload{}, fmt.Errorf("schema loader: response exceeds %d bytes", maxRemoteSchemaBytes)
	}
	return payload{data: data, format: format}, nil
}

// formatFromContentType maps JSON and YAML media types (including +json and
// +yaml suffixes) to a Format. Generic types such as text/plain declare
// nothing. HTML responses are refused.
func formatFromContentType(header string) (schema.Format, error) {
	if header == "" {
		return "", nil
	}
	mediaType, _, err := mime.ParseMediaType(header)
	if err != nil {
		return "", nil
	}
	switch {
	case mediaType == "application/json", strings.HasSuffix(mediaType, "+json"):
		return schema.FormatJSON, nil
	case mediaType == "application/yaml", mediaType == "application/x-yaml",
		mediaType == "text/yaml", mediaType == "text/x-yaml", strings.HasSuffix(mediaType, "+yaml"):
		return schema.FormatYAML, nil
	case mediaType == "text/html", mediaType == "application/xhtml+xml":
		return "", fmt.Errorf("unexpected content type %s", mediaType)
	}
	return "", nil
}
