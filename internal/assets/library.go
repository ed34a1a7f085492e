// Package assets manages the image files referenced by user avatars and
// product listings. Imported files live flat in one managed directory and
// are referred to everywhere else by forward-slash relative paths, which is
// what the data documents store.
package assets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Library is the managed image directory.
type Library struct {
	dir    string
	logger zerolog.Logger
}

// New creates the managed directory if needed and returns the library.
func New(dir string, logger zerolog.Logger) (*Library, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create image directory %s: %w", dir, err)
	}
	return &Library{
		dir:    dir,
		logger: logger.With().Str("component", "assets").Logger(),
	}, nil
}

// Dir returns the managed directory path.
func (l *Library) Dir() string {
	return l.dir
}

// Import copies the file at src into the managed directory and returns the
// forward-slash path to refer to it by. A name already in use gets a numeric
// suffix: photo.png, photo_1.png, photo_2.png, and so on; existing files are
// never overwritten.
//
// Import does not fail into the caller. On an empty source, an unreadable
// file or a copy error it logs a diagnostic and reports ok=false, which
// callers treat as "no image imported".
func (l *Library) Import(src string) (string, bool) {
	if strings.TrimSpace(src) == "" {
		return "", false
	}
	if _, err := os.Stat(src); err != nil {
		l.logger.Warn().Str("src", src).Err(err).Msg("image source not readable")
		return "", false
	}

	base := filepath.Base(src)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)

	candidate := base
	for i := 1; l.exists(candidate); i++ {
		candidate = fmt.Sprintf("%s_%d%s", name, i, ext)
	}

	if err := copyFile(src, filepath.Join(l.dir, candidate)); err != nil {
		l.logger.Warn().Str("src", src).Err(err).Msg("image import failed")
		return "", false
	}

	rel := filepath.ToSlash(filepath.Join(l.dir, candidate))
	l.logger.Debug().Str("src", src).Str("path", rel).Msg("image imported")
	return rel, true
}

// List returns the file names currently in the managed directory.
func (l *Library) List() ([]string, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("read image directory %s: %w", l.dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// Remove deletes a file from the managed directory by name.
func (l *Library) Remove(name string) error {
	return os.Remove(filepath.Join(l.dir, name))
}

func (l *Library) exists(name string) bool {
	_, err := os.Stat(filepath.Join(l.dir, name))
	return err == nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
