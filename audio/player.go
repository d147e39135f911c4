package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/phanxgames/meadow"
)

// Player mixes sound effects and one music track onto the speaker.
type Player struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	mixer       *beep.Mixer
	music       *beep.Ctrl
	volume      *effects.Volume
	initialized bool
}

// NewPlayer creates a player mixing at rate. Call Init to start output.
func NewPlayer(rate beep.SampleRate) *Player {
	return &Player{
		rate:  rate,
		mixer: &beep.Mixer{},
	}
}

// Init opens the speaker with a 100ms buffer and starts the mixer.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	meadow.Logger().WithField("rate", int(p.rate)).Trace("audio player initialized")
	return nil
}

// lock guards mixer changes against the speaker goroutine once output runs.
func (p *Player) lock() func() {
	p.mu.Lock()
	if !p.initialized {
		return p.mu.Unlock
	}
	speaker.Lock()
	return func() {
		speaker.Unlock()
		p.mu.Unlock()
	}
}

// PlaySound starts s from the beginning. Overlapping plays are mixed.
func (p *Player) PlaySound(s *Sound) {
	if s == nil || s.Buffer.Len() == 0 {
		return
	}
	var streamer beep.Streamer = s.Streamer()
	if rate := s.Buffer.Format().SampleRate; rate != p.rate {
		streamer = beep.Resample(resampleQuality, rate, p.rate, streamer)
	}
	defer p.lock()()
	p.mixer.Add(streamer)
}

// PlayMusic replaces the current track with m, rewound to the start.
// When loop is set the track repeats until stopped.
func (p *Player) PlayMusic(m *Music, loop bool) error {
	defer p.lock()()

	// detach first: m may be the track the speaker is reading
	if p.music != nil {
		p.music.Streamer = nil
		p.music = nil
		p.volume = nil
	}
	if err := m.Stream.Seek(0); err != nil {
		return err
	}

	var streamer beep.Streamer = m.Stream
	if loop {
		streamer = beep.Loop(-1, m.Stream)
	}
	if m.Format.SampleRate != p.rate {
		streamer = beep.Resample(resampleQuality, m.Format.SampleRate, p.rate, streamer)
	}
	p.music = &beep.Ctrl{Streamer: streamer}
	p.volume = &effects.Volume{Streamer: p.music, Base: 2}
	p.mixer.Add(p.volume)
	return nil
}

// PauseMusic pauses or resumes the current track.
func (p *Player) PauseMusic(paused bool) {
	defer p.lock()()
	if p.music != nil {
		p.music.Paused = paused
	}
}

// SetMusicVolume sets the track volume in powers of two: 0 is unchanged,
// -1 is half, 1 is double. Values at or below -10 mute.
func (p *Player) SetMusicVolume(v float64) {
	defer p.lock()()
	if p.volume != nil {
		p.volume.Volume = v
		p.volume.Silent = v <= -10
	}
}

// StopMusic stops the current track.
func (p *Player) StopMusic() {
	defer p.lock()()
	if p.music != nil {
		// a nil streamer ends the ctrl, so the mixer drops it
		p.music.Streamer = nil
		p.music = nil
		p.volume = nil
	}
}

// Playing returns the number of active streams in the mixer.
func (p *Player) Playing() int {
	defer p.lock()()
	return p.mixer.Len()
}

// Close stops all sounds and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		speaker.Lock()
	}
	p.mixer.Clear()
	p.music = nil
	p.volume = nil
	if p.initialized {
		speaker.Unlock()
		speaker.Close()
		p.initialized = false
	}
	meadow.Logger().Trace("audio player closed")
}
