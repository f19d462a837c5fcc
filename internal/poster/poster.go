// Package poster copies picked images into the app-private posters directory
// and resolves stored paths for display.
package poster

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// placeholderSize is the edge of the generated placeholder when no crop size
// is configured.
const placeholderSize = 150

// ErrNotImage is returned when the picked file is not an image.
var ErrNotImage = errors.New("file is not an image")

// Store owns the posters directory.
type Store struct {
	Dir         string
	Placeholder string
	// CropSize, when positive, center-crops imported posters to a square of
	// this many pixels.
	CropSize int

	now func() time.Time
}

// NewStore returns a Store rooted at dir.
func NewStore(dir, placeholder string, cropSize int) *Store {
	return &Store{Dir: dir, Placeholder: placeholder, CropSize: cropSize, now: time.Now}
}

// Import copies src into the posters directory under a fresh, timestamped
// name and returns the absolute destination path. The original file is left
// untouched.
func (s *Store) Import(src string) (string, error) {
	mtype, err := mimetype.DetectFile(src)
	if err != nil {
		return "", fmt.Errorf("failed to read picked image %s: %w", src, err)
	}
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", fmt.Errorf("%s (%s): %w", src, mtype.String(), ErrNotImage)
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create posters directory: %w", err)
	}

	dst, err := filepath.Abs(filepath.Join(s.Dir, s.fileName(mtype.Extension())))
	if err != nil {
		return "", fmt.Errorf("failed to resolve poster path: %w", err)
	}

	if s.CropSize > 0 {
		if _, ferr := imaging.FormatFromFilename(dst); ferr == nil {
			if err := s.crop(src, dst); err != nil {
				return "", err
			}
			return dst, nil
		}
	}

	if err := copyFile(src, dst); err != nil {
		return "", err
	}
	return dst, nil
}

func (s *Store) fileName(ext string) string {
	if ext == "" {
		ext = ".img"
	}
	now := time.Now
	if s.now != nil {
		now = s.now
	}
	return fmt.Sprintf("poster_%d_%s%s", now().UnixMilli(), uuid.NewString()[:8], ext)
}

func (s *Store) crop(src, dst string) error {
	img, err := imaging.Open(src, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("failed to decode picked image %s: %w", src, err)
	}
	thumb := imaging.Fill(img, s.CropSize, s.CropSize, imaging.Center, imaging.Lanczos)
	if err := imaging.Save(thumb, dst); err != nil {
		return fmt.Errorf("failed to save poster %s: %w", dst, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open picked image %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create poster %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("failed to copy poster %s: %w", dst, err)
	}
	return out.Close()
}

// Resolve returns path when it names an existing regular file and the
// placeholder otherwise.
func (s *Store) Resolve(path string) string {
	if path == "" {
		return s.Placeholder
	}
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return s.Placeholder
	}
	return path
}

// Remove deletes a poster previously returned by Import. Paths outside the
// posters directory are left alone, and a file that is already gone is not
// an error.
func (s *Store) Remove(path string) error {
	if path == "" {
		return nil
	}
	dir, err := filepath.Abs(s.Dir)
	if err != nil {
		return fmt.Errorf("failed to resolve posters directory: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve poster path: %w", err)
	}
	if filepath.Dir(abs) != dir {
		return nil
	}
	if err := os.Remove(abs); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove poster %s: %w", abs, err)
	}
	return nil
}

// EnsurePlaceholder writes a plain square image at Placeholder when no file is
// there yet, so Resolve never falls back to a missing path.
func (s *Store) EnsurePlaceholder() error {
	if s.Placeholder == "" {
		return errors.New("no placeholder configured")
	}
	info, err := os.Stat(s.Placeholder)
	switch {
	case err == nil && info.Mode().IsRegular():
		return nil
	case err == nil:
		return fmt.Errorf("placeholder %s is not a regular file", s.Placeholder)
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("failed to check placeholder %s: %w", s.Placeholder, err)
	}

	if _, err := imaging.FormatFromFilename(s.Placeholder); err != nil {
		return fmt.Errorf("placeholder %s: %w", s.Placeholder, err)
	}
	if err := os.MkdirAll(filepath.Dir(s.Placeholder), 0o755); err != nil {
		return fmt.Errorf("failed to create placeholder directory: %w", err)
	}
	size := s.CropSize
	if size <= 0 {
		size = placeholderSize
	}
	img := imaging.New(size, size, color.NRGBA{R: 0x2b, G: 0x2d, B: 0x42, A: 0xff})
	if err := imaging.Save(img, s.Placeholder); err != nil {
		return fmt.Errorf("failed to write placeholder %s: %w", s.Placeholder, err)
	}
	return nil
}
