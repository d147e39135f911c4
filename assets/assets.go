// Package assets provides the byte sources backends read textures, audio
// and fonts from: a directory on disk, an fs.FS, a packr box, and an LZ4
// wrapper that decompresses "*.lz4" assets on the fly.
package assets

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gobuffalo/packr"
	"github.com/phanxgames/meadow"
)

// Source opens assets by slash-separated path.
type Source interface {
	Open(name string) (io.ReadCloser, error)
}

// ReadFile reads the whole asset at name.
func ReadFile(src Source, name string) ([]byte, error) {
	rc, err := src.Open(name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("assets: read %s: %w", name, err)
	}
	return data, nil
}

// Ext returns the lower-cased extension of name, ignoring a trailing
// ".lz4", so "theme.ogg.lz4" reports ".ogg".
func Ext(name string) string {
	name = strings.TrimSuffix(strings.ToLower(name), lz4Ext)
	return path.Ext(name)
}

type dirSource string

// Dir returns a Source reading files below root.
func Dir(root string) Source { return dirSource(root) }

func (d dirSource) Open(name string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(string(d), filepath.FromSlash(name)))
	if err != nil {
		return nil, fmt.Errorf("assets: %w", err)
	}
	return f, nil
}

// Root returns the directory the source reads from.
func (d dirSource) Root() string { return string(d) }

type fsSource struct{ fsys fs.FS }

// FS returns a Source reading from fsys, such as an embed.FS.
func FS(fsys fs.FS) Source { return fsSource{fsys} }

func (s fsSource) Open(name string) (io.ReadCloser, error) {
	f, err := s.fsys.Open(strings.TrimPrefix(name, "/"))
	if err != nil {
		return nil, fmt.Errorf("assets: %w", err)
	}
	return f, nil
}

type boxSource struct{ box packr.Box }

// Box returns a Source reading from a packr box. Boxes read from disk
// during development and from the packed binary after packr builds it.
func Box(box packr.Box) Source { return boxSource{box} }

func (s boxSource) Open(name string) (io.ReadCloser, error) {
	data, err := s.box.Find(name)
	if err != nil {
		return nil, fmt.Errorf("assets: box %s: %s: %w", s.box.Path, name, fs.ErrNotExist)
	}
	meadow.Logger().WithField("path", name).Trace("asset read from box")
	return io.NopCloser(bytes.NewReader(data)), nil
}
