package radio

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
)

var ErrInvalidStream = errors.New("not a playable stream")

var validContentTypes = []string{
	"audio/",
	"video/",
	"application/vnd.apple.mpegurl",
	"application/x-mpegurl",
	"application/ogg",
	"application/x-scpls",
	"application/xspf+xml",
	"application/octet-stream", // risky but often used for streams
}

// Probe is what the stream server told us about a link.
type Probe struct {
	ContentType string
	FinalURL    string
	StationName string
}

// RadioResolver validates streaming radio links by checking headers and heuristics.
type RadioResolver struct {
	Client *http.Client
}

func NewRadioResolver() *RadioResolver {
	return &RadioResolver{
		Client: &http.Client{
			Timeout: 5 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 5 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
	}
}

// Check probes rawURL and accepts it when the content type or the file
// extension looks like audio.
func (r *RadioResolver) Check(ctx context.Context, rawURL string) (Probe, error) {
	probe, err := r.probe(ctx, rawURL)
	if err != nil {
		return Probe{}, fmt.Errorf("failed to fetch content type: %w", err)
	}

	if isAllowedType(probe.ContentType) || isLikelyPlaylist(probe.FinalURL) {
		return probe, nil
	}
	return probe, fmt.Errorf("%w: content-type %q, url %s", ErrInvalidStream, probe.ContentType, probe.FinalURL)
}

func (r *RadioResolver) probe(ctx context.Context, rawURL string) (Probe, error) {
	resp, err := r.do(ctx, http.MethodHead, rawURL)
	if err != nil || resp.StatusCode >= 400 {
		if resp != nil {
			resp.Body.Close()
		}
		// many stream servers refuse HEAD
		resp, err = r.do(ctx, http.MethodGet, rawURL)
		if err != nil {
			return Probe{}, fmt.Errorf("GET fallback failed: %w", err)
		}
		if resp.StatusCode >= 400 {
			resp.Body.Close()
			return Probe{}, fmt.Errorf("GET fallback failed: status %d", resp.StatusCode)
		}
	}
	// the body of a live stream never ends, so it is not drained
	defer resp.Body.Close()

	return Probe{
		ContentType: resp.Header.Get("Content-Type"),
		FinalURL:    resp.Request.URL.String(),
		StationName: strings.TrimSpace(resp.Header.Get("icy-name")),
	}, nil
}

func (r *RadioResolver) do(ctx context.Context, method, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("request creation failed: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Icy-MetaData", "1")
	return r.Client.Do(req)
}

func isAllowedType(contentType string) bool {
	// strip params like "audio/mpeg; charset=utf-8"
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = contentType[:idx]
	}
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	for _, allowed := range validContentTypes {
		if strings.HasPrefix(contentType, allowed) {
			return true
		}
	}
	return false
}

func isLikelyPlaylist(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	switch strings.ToLower(path.Ext(u.Path)) {
	case ".m3u", ".m3u8", ".pls", ".xspf", ".asx":
		return true
	}
	return false
}
