package ioutils

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"normal-file.mp3", "normal-file.mp3"},
		{"file:with:colons.mp3", "file_with_colons.mp3"},
		{"file<with>brackets.mp3", "file_with_brackets.mp3"},
		{"file/with\\slashes.mp3", "file_with_slashes.mp3"},
		{"file|with|pipes.mp3", "file_with_pipes.mp3"},
		{"file?with*wildcards.mp3", "file_with_wildcards.mp3"},
		{"file\"with\"quotes.mp3", "file_with_quotes.mp3"},
		{"trailing dots...", "trailing dots"},
		{"multiple   spaces", "multiple spaces"},
		{"trailing spaces   ", "trailing spaces"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := SanitizeFileName(tt.input); got != tt.want {
				t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEnsureAlbumDir(t *testing.T) {
	root := t.TempDir()

	dir, err := EnsureAlbumDir(root, "AC/DC", "Back in Black")
	if err != nil {
		t.Fatalf("EnsureAlbumDir failed: %v", err)
	}

	want := filepath.Join(root, "AC_DC", "Back in Black")
	if dir != want {
		t.Errorf("dir = %q, want %q", dir, want)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("directory not created: %v", err)
	}

	// Second call is a no-op.
	if _, err := EnsureAlbumDir(root, "AC/DC", "Back in Black"); err != nil {
		t.Errorf("second EnsureAlbumDir failed: %v", err)
	}
}

func TestWriteNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "track.mp3")

	if err := WriteNewFile(path, []byte("audio")); err != nil {
		t.Fatalf("WriteNewFile failed: %v", err)
	}

	err := WriteNewFile(path, []byte("other"))
	if !errors.Is(err, ErrExist) {
		t.Fatalf("second write error = %v, want ErrExist", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "audio" {
		t.Errorf("file overwritten: %q", data)
	}
}

func TestWriteNewFile_MissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "track.mp3")
	if err := WriteNewFile(path, []byte("audio")); err == nil {
		t.Error("expected error for missing directory")
	}
	if Exists(path) {
		t.Error("no file should be left behind")
	}
}

func TestImageService_Prepare(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 200, 100))
	for x := 0; x < 200; x++ {
		src.Set(x, 50, color.RGBA{R: 255, A: 255})
	}
	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, src); err != nil {
		t.Fatal(err)
	}

	t.Run("passthrough", func(t *testing.T) {
		svc := NewImageService(CoverOptions{})
		data, mime := svc.Prepare(pngBuf.Bytes())
		if mime != "image/png" || !bytes.Equal(data, pngBuf.Bytes()) {
			t.Errorf("expected untouched PNG, got %s", mime)
		}
	})

	t.Run("resize and convert", func(t *testing.T) {
		svc := NewImageService(CoverOptions{Resize: true, MaxSize: 50, ConvertToJPEG: true})
		data, mime := svc.Prepare(pngBuf.Bytes())
		if mime != "image/jpeg" {
			t.Fatalf("mime = %s, want image/jpeg", mime)
		}
		img, err := jpeg.Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if b := img.Bounds(); b.Dx() != 50 || b.Dy() != 25 {
			t.Errorf("size = %dx%d, want 50x25", b.Dx(), b.Dy())
		}
	})

	t.Run("undecodable", func(t *testing.T) {
		svc := NewImageService(CoverOptions{ConvertToJPEG: true})
		data, _ := svc.Prepare([]byte("not an image"))
		if string(data) != "not an image" {
			t.Error("undecodable input should be returned unchanged")
		}
	})
}
