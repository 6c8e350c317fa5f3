package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register decoder for .jpg assets
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"

	"github.com/couchcryptid/city-weather/internal/domain"
	"github.com/couchcryptid/city-weather/internal/observability"
)

// ErrUnknownAsset is returned for asset IDs that have no file.
var ErrUnknownAsset = errors.New("unknown asset")

// files maps each background to its file name inside the asset directory.
var files = map[domain.AssetID]string{
	domain.AssetClearSky: "clearsky.png",
	domain.AssetRain:     "raining.png",
	domain.AssetClouds:   "cloudy.jpg",
	domain.AssetHaze:     "haze.png",
	domain.AssetMist:     "mist.jpg",
	domain.AssetDefault:  "default.jpg",
}

// Loader reads background images from a directory and scales them to the
// requested window size.
type Loader struct {
	dir     string
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewLoader creates a Loader rooted at dir.
func NewLoader(dir string, metrics *observability.Metrics, logger *slog.Logger) *Loader {
	return &Loader{dir: dir, metrics: metrics, logger: logger}
}

// Path returns the file path for an asset.
func (l *Loader) Path(id domain.AssetID) (string, error) {
	name, ok := files[id]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownAsset, id)
	}
	return filepath.Join(l.dir, name), nil
}

// Load decodes the asset and resizes it to width x height.
func (l *Loader) Load(id domain.AssetID, width, height int) (image.Image, error) {
	img, err := l.load(id, width, height)
	result := "ok"
	if err != nil {
		result = "error"
		l.logger.Warn("asset load failed", "asset", id, "error", err)
	}
	l.metrics.AssetLoads.WithLabelValues(string(id), result).Inc()
	return img, err
}

func (l *Loader) load(id domain.AssetID, width, height int) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid target size %dx%d", width, height)
	}
	path, err := l.Path(id)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open asset: %w", err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode asset %s: %w", path, err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst, nil
}

// WritePNG loads the asset at the given size and encodes it as PNG.
func (l *Loader) WritePNG(w io.Writer, id domain.AssetID, width, height int) error {
	img, err := l.Load(id, width, height)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	_, err = buf.WriteTo(w)
	return err
}

// CheckReadiness reports whether the default background is available, since
// every lookup can fall back to it.
func (l *Loader) CheckReadiness(_ context.Context) error {
	path, err := l.Path(domain.AssetDefault)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("default background missing: %w", err)
	}
	return nil
}
