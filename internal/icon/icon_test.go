package icon

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/sergeymakinen/go-ico"
)

// makeICO encodes one square image per size. Each image is filled with a
// gray level equal to its size so tests can tell them apart.
func makeICO(t *testing.T, sizes ...int) []byte {
	t.Helper()
	images := make([]image.Image, 0, len(sizes))
	for _, s := range sizes {
		m := image.NewNRGBA(image.Rect(0, 0, s, s))
		for y := 0; y < s; y++ {
			for x := 0; x < s; x++ {
				m.SetNRGBA(x, y, color.NRGBA{R: uint8(s), G: uint8(s), B: uint8(s), A: 0xFF})
			}
		}
		images = append(images, m)
	}

	var buf bytes.Buffer
	if err := ico.EncodeAll(&buf, images); err != nil {
		t.Fatalf("encode ICO: %v", err)
	}
	return buf.Bytes()
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIconIsValid(t *testing.T) {
	ic := Default()
	if !ic.IsDefault() {
		t.Error("Default().IsDefault() = false")
	}
	if ic.Path() != "" {
		t.Errorf("Default().Path() = %q, want empty", ic.Path())
	}
	if _, err := decode(ic.Bytes()); err != nil {
		t.Fatalf("built-in icon does not decode: %v", err)
	}
	img, err := ic.Image(48)
	if err != nil {
		t.Fatalf("Image(48) error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 48 || b.Dy() != 48 {
		t.Errorf("Image(48) bounds = %v, want 48x48", b)
	}
}

func TestLoadFromExistingFile(t *testing.T) {
	dir := t.TempDir()
	data := makeICO(t, 16, 32)
	path := writeFile(t, dir, "kitty.ico", data)

	ic := LoadFrom(path, "", nil)
	if ic.IsDefault() {
		t.Fatal("expected icon loaded from file, got default")
	}
	if ic.Path() != path {
		t.Errorf("Path() = %q, want %q", ic.Path(), path)
	}
	if !bytes.Equal(ic.Bytes(), data) {
		t.Error("Bytes() do not match file contents")
	}
}

func TestLoadFromBaseDirectory(t *testing.T) {
	exeDir := t.TempDir()
	writeFile(t, exeDir, "kitty-test-only.ico", makeICO(t, 32))

	// Not present in the working directory, so the base directory is used.
	ic := LoadFrom("kitty-test-only.ico", exeDir, nil)
	if ic.IsDefault() {
		t.Fatal("expected icon from base directory, got default")
	}
	if want := filepath.Join(exeDir, "kitty-test-only.ico"); ic.Path() != want {
		t.Errorf("Path() = %q, want %q", ic.Path(), want)
	}
}

func TestLoadFromWorkingDirectoryGivesAbsolutePath(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "kitty.ico", makeICO(t, 32))
	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldWd) })

	ic := LoadFrom("kitty.ico", "", nil)
	if ic.IsDefault() {
		t.Fatal("expected icon from working directory, got default")
	}
	if !filepath.IsAbs(ic.Path()) {
		t.Errorf("Path() = %q, want an absolute path", ic.Path())
	}
	if filepath.Base(ic.Path()) != "kitty.ico" {
		t.Errorf("Path() = %q, want it to name kitty.ico", ic.Path())
	}
}

func TestLoadFallsBackToDefault(t *testing.T) {
	dir := t.TempDir()
	valid := makeICO(t, 32)

	cursor := append([]byte(nil), valid...)
	cursor[2] = 2

	malformed := writeFile(t, dir, "broken.ico", []byte("not an icon at all"))
	truncated := writeFile(t, dir, "short.ico", valid[:20])
	noPayload := writeFile(t, dir, "cut.ico", valid[:len(valid)-16])
	cursorFile := writeFile(t, dir, "pointer.cur", cursor)
	noImages := writeFile(t, dir, "empty.ico", []byte{0, 0, 1, 0, 0, 0})

	tests := []struct {
		name  string
		input string
	}{
		{"empty string", ""},
		{"blank", "  "},
		{"missing file", filepath.Join(dir, "missing.ico")},
		{"directory", dir},
		{"malformed file", malformed},
		{"truncated directory", truncated},
		{"truncated image", noPayload},
		{"cursor file", cursorFile},
		{"no images", noImages},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ic := LoadFrom(tt.input, dir, nil)
			if ic == nil {
				t.Fatal("LoadFrom returned nil")
			}
			if !ic.IsDefault() {
				t.Errorf("LoadFrom(%q) used %q, want default icon", tt.input, ic.Path())
			}
		})
	}
}

func TestLoadNeverReturnsNil(t *testing.T) {
	if ic := Load("definitely-not-here.ico", nil); ic == nil || !ic.IsDefault() {
		t.Errorf("Load() = %+v, want default icon", ic)
	}
}

func TestDecodeWrapsErrMalformed(t *testing.T) {
	_, err := decode([]byte("GIF89a"))
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("decode() error = %v, want ErrMalformed", err)
	}
}

func TestImageSelectsClosestSize(t *testing.T) {
	tests := []struct {
		name  string
		sizes []int
		want  int
	}{
		{"exact match", []int{16, 48, 128}, 48},
		{"smallest larger", []int{16, 64, 128}, 64},
		{"largest when none cover", []int{16, 32}, 32},
		{"single image", []int{16}, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeFile(t, dir, "sized.ico", makeICO(t, tt.sizes...))

			ic := LoadFrom(path, "", nil)
			if ic.IsDefault() {
				t.Fatal("expected icon loaded from file, got default")
			}
			img, err := ic.Image(48)
			if err != nil {
				t.Fatalf("Image() error = %v", err)
			}
			if got := img.Bounds().Dx(); got != tt.want {
				t.Errorf("Image(48) width = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	ic := Default()
	ic.Close()
	ic.Close()

	if ic.Bytes() != nil {
		t.Error("Bytes() after Close should be nil")
	}
	if _, err := ic.Image(16); !errors.Is(err, ErrClosed) {
		t.Errorf("Image() after Close error = %v, want ErrClosed", err)
	}
	if Default().Bytes() == nil {
		t.Error("closing one default icon must not affect later ones")
	}
}
