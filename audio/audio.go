// Package audio loads sound effects and music tracks with beep and plays
// them through the speaker. Its Loader satisfies the meadow sound and music
// loader interfaces, so it plugs into a ResourceManager from any backend.
package audio

import (
	"bytes"
	"fmt"
	"io"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/flac"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"
	"github.com/phanxgames/meadow"
	"github.com/phanxgames/meadow/assets"
	"github.com/sirupsen/logrus"
)

// resampleQuality is passed to beep.Resample.
const resampleQuality = 4

// Sound is a short effect decoded fully into memory at the output rate.
type Sound struct {
	Buffer *beep.Buffer
}

// Streamer returns a new streamer over the whole sound. Each call is
// independent, so one Sound can play several times at once.
func (s *Sound) Streamer() beep.StreamSeeker {
	return s.Buffer.Streamer(0, s.Buffer.Len())
}

// Music is a track decoded on demand while it plays.
type Music struct {
	Stream beep.StreamSeekCloser
	Format beep.Format
}

// Loader decodes WAV, Ogg Vorbis, MP3 and FLAC assets by extension.
type Loader struct {
	src  assets.Source
	rate beep.SampleRate
}

// NewLoader creates a Loader reading from src. Sounds are resampled to rate.
func NewLoader(src assets.Source, rate beep.SampleRate) *Loader {
	return &Loader{src: src, rate: rate}
}

// SampleRate returns the rate sounds are resampled to.
func (l *Loader) SampleRate() beep.SampleRate { return l.rate }

// LoadSound decodes the whole asset at path into a buffer.
func (l *Loader) LoadSound(path string) (*Sound, error) {
	stream, format, err := l.decode(path)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	buf := beep.NewBuffer(beep.Format{SampleRate: l.rate, NumChannels: format.NumChannels, Precision: format.Precision})
	if format.SampleRate == l.rate {
		buf.Append(stream)
	} else {
		buf.Append(beep.Resample(resampleQuality, format.SampleRate, l.rate, stream))
	}
	if err := stream.Err(); err != nil {
		return nil, fmt.Errorf("audio: decode %s: %w", path, err)
	}
	meadow.Logger().WithFields(logrus.Fields{"path": path, "samples": buf.Len()}).Debug("sound decoded")
	return &Sound{Buffer: buf}, nil
}

// FreeSound drops the sound's samples.
func (l *Loader) FreeSound(s *Sound) {
	s.Buffer = beep.NewBuffer(s.Buffer.Format())
}

// LoadMusic opens the asset at path for streaming.
func (l *Loader) LoadMusic(path string) (*Music, error) {
	stream, format, err := l.decode(path)
	if err != nil {
		return nil, err
	}
	return &Music{Stream: stream, Format: format}, nil
}

// FreeMusic closes the track's decoder.
func (l *Loader) FreeMusic(m *Music) {
	if err := m.Stream.Close(); err != nil {
		meadow.Logger().WithError(err).Warn("closing music stream failed")
	}
}

// decode reads the asset into memory so every decoder gets a seekable
// source, then picks a decoder by extension.
func (l *Loader) decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	data, err := assets.ReadFile(l.src, path)
	if err != nil {
		return nil, beep.Format{}, err
	}
	rc := readSeekNopCloser{bytes.NewReader(data)}

	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)
	switch ext := assets.Ext(path); ext {
	case ".wav":
		stream, format, err = wav.Decode(rc)
	case ".ogg":
		stream, format, err = vorbis.Decode(rc)
	case ".mp3":
		stream, format, err = mp3.Decode(rc)
	case ".flac":
		stream, format, err = flac.Decode(rc)
	default:
		return nil, beep.Format{}, fmt.Errorf("audio: %s: unsupported format %q", path, ext)
	}
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("audio: decode %s: %w", path, err)
	}
	return stream, format, nil
}

type readSeekNopCloser struct {
	*bytes.Reader
}

func (readSeekNopCloser) Close() error { return nil }

var _ io.ReadSeekCloser = readSeekNopCloser{}
