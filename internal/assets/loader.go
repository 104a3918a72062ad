// Package assets loads table artwork off the render goroutine.
package assets

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // decoders for background artwork
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// ErrNoAsset is returned when no location was configured.
var ErrNoAsset = errors.New("no asset location")

// Source loads images asynchronously.
type Source interface {
	Load(ctx context.Context, location string) *Future
}

// Loader fetches images from local paths, file:// URLs or http(s) URLs.
type Loader struct {
	client *http.Client
	logger *log.Logger
}

// Option configures a Loader
type Option func(*Loader)

// WithHTTPClient overrides the client used for http(s) locations.
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) { l.client = c }
}

// NewLoader creates a loader
func NewLoader(logger *log.Logger, opts ...Option) *Loader {
	l := &Loader{
		client: &http.Client{Timeout: 30 * time.Second},
		logger: logger.WithPrefix("assets"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load starts fetching location and returns immediately.
func (l *Loader) Load(ctx context.Context, location string) *Future {
	f := newFuture()
	if location == "" {
		f.complete(nil, ErrNoAsset)
		return f
	}

	go func() {
		start := time.Now()
		tex, err := l.fetch(ctx, location)
		if err != nil {
			l.logger.Warn("Failed to load asset", "location", location, "error", err)
		} else {
			l.logger.Debug("Loaded asset",
				"location", location,
				"size", tex.Bounds().Size(),
				"elapsed", time.Since(start))
		}
		f.complete(tex, err)
	}()
	return f
}

func (l *Loader) fetch(ctx context.Context, location string) (image.Image, error) {
	u, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("parse asset location: %w", err)
	}

	switch u.Scheme {
	case "http", "https":
		return l.fetchHTTP(ctx, location)
	case "file":
		return decodeFile(u.Path)
	case "":
		return decodeFile(location)
	default:
		return nil, fmt.Errorf("unsupported asset scheme %q", u.Scheme)
	}
}

func (l *Loader) fetchHTTP(ctx context.Context, location string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch asset: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch asset: %s", resp.Status)
	}
	return decode(resp.Body)
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open asset: %w", err)
	}
	defer func() { _ = f.Close() }()
	return decode(f)
}

func decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// AverageColor returns the mean colour of img as 0xRRGGBB, sampling at most
// about 64x64 pixels.
func AverageColor(img image.Image) uint32 {
	b := img.Bounds()
	if b.Empty() {
		return 0
	}
	stepX := max(b.Dx()/64, 1)
	stepY := max(b.Dy()/64, 1)

	var r, g, bl, n uint64
	for y := b.Min.Y; y < b.Max.Y; y += stepY {
		for x := b.Min.X; x < b.Max.X; x += stepX {
			cr, cg, cb, _ := img.At(x, y).RGBA()
			r += uint64(cr >> 8)
			g += uint64(cg >> 8)
			bl += uint64(cb >> 8)
			n++
		}
	}
	return uint32(r/n)<<16 | uint32(g/n)<<8 | uint32(bl/n)
}
