// Package audio plays short feedback cues for ray interaction events.
package audio

import (
	"bytes"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// Cue identifies a feedback sound.
type Cue int

const (
	CueClick Cue = iota
	CueGrab
	CueRelease
	cueCount
)

var cueNames = [cueCount]string{"click", "grab", "release"}

// String returns the cue name used in config files.
func (c Cue) String() string {
	if c < 0 || c >= cueCount {
		return "unknown"
	}
	return cueNames[c]
}

// ParseCue returns the cue called name.
func ParseCue(name string) (Cue, error) {
	for i, n := range cueNames {
		if n == name {
			return Cue(i), nil
		}
	}
	return 0, fmt.Errorf("unknown cue %q", name)
}

// Built-in tones used until a cue is replaced with LoadCue.
var defaultTones = [cueCount]struct {
	freq float64
	dur  time.Duration
}{
	CueClick:   {1200, 40 * time.Millisecond},
	CueGrab:    {660, 90 * time.Millisecond},
	CueRelease: {440, 90 * time.Millisecond},
}

// Manager holds the decoded cues and a mixer for overlapping playback.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate
	volume      float64 // 0.0 to 1.0

	cues  [cueCount]*beep.Buffer
	mixer *beep.Mixer
}

// New creates a manager with the built-in tones. Playback needs Init.
func New() (*Manager, error) {
	m := &Manager{
		sampleRate: DefaultSampleRate,
		volume:     1.0,
		mixer:      &beep.Mixer{},
	}
	for c, tone := range defaultTones {
		buf, err := toneBuffer(m.sampleRate, tone.freq, tone.dur)
		if err != nil {
			return nil, fmt.Errorf("cue %s: %w", Cue(c), err)
		}
		m.cues[c] = buf
	}
	return m, nil
}

func toneBuffer(sr beep.SampleRate, freq float64, dur time.Duration) (*beep.Buffer, error) {
	tone, err := generators.SineTone(sr, freq)
	if err != nil {
		return nil, err
	}
	buf := beep.NewBuffer(beep.Format{SampleRate: sr, NumChannels: 2, Precision: 2})
	buf.Append(beep.Take(sr.N(dur), tone))
	return buf, nil
}

// Init opens the audio device.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m.mixer)

	m.initialized = true
	return nil
}

// Close shuts down the audio device.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	m.initialized = false
}

// IsInitialized returns whether the audio device is open.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// SetVolume sets the cue volume (0.0 to 1.0).
func (m *Manager) SetVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = clamp(vol, 0, 1)
}

// Volume returns the cue volume.
func (m *Manager) Volume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.volume
}

// LoadCue replaces cue with a WAV clip, resampled to the playback rate.
func (m *Manager) LoadCue(cue Cue, data []byte) error {
	if cue < 0 || cue >= cueCount {
		return fmt.Errorf("unknown cue %d", cue)
	}

	streamer, format, err := wav.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode wav: %w", err)
	}
	defer streamer.Close()

	m.mu.Lock()
	defer m.mu.Unlock()

	var s beep.Streamer = streamer
	if format.SampleRate != m.sampleRate {
		s = beep.Resample(4, format.SampleRate, m.sampleRate, streamer)
	}
	buf := beep.NewBuffer(beep.Format{SampleRate: m.sampleRate, NumChannels: format.NumChannels, Precision: format.Precision})
	buf.Append(s)
	if err := streamer.Err(); err != nil {
		return fmt.Errorf("decode wav: %w", err)
	}
	m.cues[cue] = buf
	return nil
}

// Len returns the cue length in samples.
func (m *Manager) Len(cue Cue) int {
	if cue < 0 || cue >= cueCount {
		return 0
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cues[cue].Len()
}

// Play starts cue on the mixer. Cues overlap.
func (m *Manager) Play(cue Cue) error {
	if cue < 0 || cue >= cueCount {
		return fmt.Errorf("unknown cue %d", cue)
	}

	m.mu.RLock()
	initialized := m.initialized
	s := m.stream(cue)
	m.mu.RUnlock()

	if !initialized {
		return fmt.Errorf("audio not initialized")
	}

	speaker.Lock()
	m.mixer.Add(s)
	speaker.Unlock()
	return nil
}

// stream returns a volume-scaled reader over the cue. Callers hold mu.
func (m *Manager) stream(cue Cue) beep.Streamer {
	buf := m.cues[cue]
	return &effects.Volume{
		Streamer: buf.Streamer(0, buf.Len()),
		Base:     2,
		Volume:   volumeExponent(m.volume),
		Silent:   m.volume <= 0,
	}
}

// volumeExponent converts a 0-1 amplitude to the base-2 exponent used by
// effects.Volume: 1 is 0, 0.5 is -1 (about -6 dB).
func volumeExponent(vol float64) float64 {
	if vol <= 0 {
		return -100
	}
	return math.Log2(vol)
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
