package assets

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/phanxgames/meadow"
	"github.com/pierrec/lz4"
)

const lz4Ext = ".lz4"

type lz4Source struct{ src Source }

// LZ4 wraps src so compressed assets are read transparently. Names ending
// in ".lz4" are decompressed. Any other name is opened as is, and if it
// does not exist, name+".lz4" is tried.
func LZ4(src Source) Source { return lz4Source{src} }

func (s lz4Source) Open(name string) (io.ReadCloser, error) {
	if strings.HasSuffix(strings.ToLower(name), lz4Ext) {
		return s.openCompressed(name)
	}
	rc, err := s.src.Open(name)
	if err == nil {
		return rc, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	rc, cerr := s.openCompressed(name + lz4Ext)
	if cerr != nil {
		// report the plain name
		return nil, err
	}
	return rc, nil
}

func (s lz4Source) openCompressed(name string) (io.ReadCloser, error) {
	rc, err := s.src.Open(name)
	if err != nil {
		return nil, err
	}
	meadow.Logger().WithField("path", name).Trace("decompressing lz4 asset")
	return &lz4ReadCloser{Reader: lz4.NewReader(rc), under: rc, name: name}, nil
}

type lz4ReadCloser struct {
	*lz4.Reader
	under io.Closer
	name  string
}

func (r *lz4ReadCloser) Read(p []byte) (int, error) {
	n, err := r.Reader.Read(p)
	if err != nil && err != io.EOF {
		return n, fmt.Errorf("assets: lz4 %s: %w", r.name, err)
	}
	return n, err
}

func (r *lz4ReadCloser) Close() error {
	return r.under.Close()
}
