// Package icon loads the tray icon from disk and falls back to a built-in
// icon when the file is missing, unreadable or not a valid ICO file.
package icon

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"

	"github.com/sergeymakinen/go-ico"

	"github.com/autoclick/autoclick/internal/logging"
	"github.com/autoclick/autoclick/internal/pathutil"
)

var (
	// ErrMalformed is returned for data that does not decode as an ICO file.
	ErrMalformed = errors.New("malformed ICO data")

	// ErrClosed is returned by Image after Close.
	ErrClosed = errors.New("icon closed")
)

// defaultData is used whenever no usable icon file is found.
//
//go:embed default.ico
var defaultData []byte

var decodeDefault = sync.OnceValues(func() ([]image.Image, error) {
	return decode(defaultData)
})

// Icon is a loaded ICO file and its decoded images. Close releases both.
type Icon struct {
	mu      sync.RWMutex
	data    []byte
	images  []image.Image
	path    string
	builtin bool
}

// Default returns the built-in application icon.
func Default() *Icon {
	images, _ := decodeDefault()
	return &Icon{data: defaultData, images: images, builtin: true}
}

// Load resolves name as given and then relative to the executable's
// directory. The first candidate that decodes as an ICO file wins.
// Any failure yields the built-in icon; Load never returns nil.
func Load(name string, logger *logging.Logger) *Icon {
	baseDir, err := pathutil.ExecutableDir()
	if err != nil && logger != nil {
		logger.Debug().Err(err).Msg("Executable directory unknown, skipping it for icon lookup")
	}
	return LoadFrom(name, baseDir, logger)
}

// LoadFrom is Load with an explicit base directory for the second lookup.
// The returned Path is absolute.
func LoadFrom(name, baseDir string, logger *logging.Logger) *Icon {
	if logger == nil {
		logger = logging.Nop()
	}

	for _, path := range pathutil.Candidates(name, baseDir) {
		data, images, err := readICO(path)
		if err != nil {
			logger.Debug().Err(err).Str("path", path).Msg("Icon candidate rejected")
			continue
		}
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		logger.Debug().Str("path", path).Int("images", len(images)).Msg("Icon loaded")
		return &Icon{data: data, images: images, path: path}
	}

	logger.Debug().Str("name", name).Msg("Using built-in icon")
	return Default()
}

func readICO(path string) ([]byte, []image.Image, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, err
	}
	if info.IsDir() {
		return nil, nil, fmt.Errorf("%s is a directory", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	images, err := decode(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, images, nil
}

// decode validates every image in data, not just the directory.
func decode(data []byte) ([]image.Image, error) {
	images, err := ico.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if len(images) == 0 {
		return nil, ErrMalformed
	}
	return images, nil
}

// Bytes returns the ICO file contents, or nil after Close.
func (i *Icon) Bytes() []byte {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.data
}

// Path returns the file the icon was read from, empty for the built-in icon.
func (i *Icon) Path() string {
	return i.path
}

// IsDefault reports whether this is the built-in icon.
func (i *Icon) IsDefault() bool {
	return i.builtin
}

// Image returns the decoded image best suited for a size×size rendering:
// the smallest one at least size wide, else the largest.
func (i *Icon) Image(size int) (image.Image, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if i.data == nil {
		return nil, ErrClosed
	}
	if len(i.images) == 0 {
		return nil, ErrMalformed
	}
	return closest(i.images, size), nil
}

func closest(images []image.Image, size int) image.Image {
	var best image.Image
	for _, m := range images {
		if best == nil || better(m.Bounds().Dx(), best.Bounds().Dx(), size) {
			best = m
		}
	}
	return best
}

// better reports whether width w beats width cur for a target size.
// Downscaling looks better than upscaling, so any width that covers size
// beats one that does not.
func better(w, cur, size int) bool {
	switch {
	case w >= size && cur >= size:
		return w < cur
	case w >= size:
		return true
	case cur >= size:
		return false
	default:
		return w > cur
	}
}

// Close drops the icon data. Safe to call more than once.
func (i *Icon) Close() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.data = nil
	i.images = nil
}
