package ui

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SoundType represents different sound effects.
type SoundType int

const (
	SoundMove SoundType = iota
	SoundCapture
	SoundCheck
	SoundCastle
	SoundInvalid
	SoundGameEnd
)

const sampleRate = 44100

// envelope shapes the amplitude of a voice over its normalized progress.
type envelope func(t, p float64) float64

var (
	// woodDecay is a fast exponential decay in absolute time.
	woodDecay envelope = func(t, _ float64) float64 { return math.Exp(-t * 30) }
	// attackDecay ramps up over the first 10% then falls linearly.
	attackDecay envelope = func(_, p float64) float64 {
		if p < 0.1 {
			return p / 0.1
		}
		return 1 - (p-0.1)/0.9
	}
	linearDecay envelope = func(_, p float64) float64 { return 1 - p }
	// swell fades in, holds, then fades out over the last 30%.
	swell envelope = func(_, p float64) float64 {
		switch {
		case p < 0.1:
			return p / 0.1
		case p > 0.7:
			return (1 - p) / 0.3
		}
		return 1
	}
)

// voice is one synthesized segment. Harmonics are multiples of freq with
// their relative weights; texture adds a fixed wooden rattle.
type voice struct {
	freqs     []float64
	harmonics []float64
	duration  float64
	amplitude float64
	env       envelope
	texture   bool
	delay     float64 // silence before this voice, in seconds
}

var soundSpecs = map[SoundType][]voice{
	SoundMove:    {{freqs: []float64{440}, duration: 0.08, amplitude: 0.3, env: woodDecay, texture: true}},
	SoundCapture: {{freqs: []float64{330}, duration: 0.12, amplitude: 0.5, env: woodDecay, texture: true}},
	SoundCheck:   {{freqs: []float64{880}, duration: 0.15, amplitude: 0.4, env: attackDecay}},
	SoundCastle: {
		{freqs: []float64{400}, duration: 0.06, amplitude: 0.3, env: woodDecay, texture: true},
		{freqs: []float64{440}, duration: 0.06, amplitude: 0.24, env: woodDecay, texture: true, delay: 0.05},
	},
	SoundInvalid: {{freqs: []float64{150}, harmonics: []float64{1, 0.3}, duration: 0.1, amplitude: 0.15, env: linearDecay}},
	SoundGameEnd: {{freqs: []float64{261.63, 329.63, 392.00}, duration: 0.4, amplitude: 0.5, env: swell}},
}

// synthesize renders voices back to back as 16-bit little-endian stereo PCM.
func synthesize(voices []voice) []byte {
	var data []byte
	for _, v := range voices {
		data = append(data, make([]byte, int(sampleRate*v.delay)*4)...)

		harmonics := v.harmonics
		if len(harmonics) == 0 {
			harmonics = []float64{1}
		}

		samples := int(sampleRate * v.duration)
		for i := 0; i < samples; i++ {
			t := float64(i) / sampleRate
			p := t / v.duration

			wave := 0.0
			for _, f := range v.freqs {
				for h, w := range harmonics {
					wave += w * math.Sin(2*math.Pi*f*float64(h+1)*t)
				}
			}
			wave /= float64(len(v.freqs))
			if v.texture {
				wave += (math.Sin(float64(i)*0.3) + math.Sin(float64(i)*0.7)) * 0.3
			}

			val := int16(math.Max(-1, math.Min(1, wave*v.env(t, p)*v.amplitude)) * 32767)
			data = append(data, byte(val), byte(val>>8), byte(val), byte(val>>8))
		}
	}
	return data
}

// AudioManager handles sound effect playback.
type AudioManager struct {
	context *audio.Context
	sounds  map[SoundType][]byte
	enabled bool
	volume  float64
}

// NewAudioManager creates an audio manager with every sound pre-rendered.
func NewAudioManager() *AudioManager {
	am := &AudioManager{
		context: audio.NewContext(sampleRate),
		sounds:  make(map[SoundType][]byte, len(soundSpecs)),
		enabled: true,
		volume:  0.5,
	}
	for st, voices := range soundSpecs {
		am.sounds[st] = synthesize(voices)
	}
	return am
}

// Play plays a sound effect. Each call gets its own player so sounds overlap.
func (am *AudioManager) Play(sound SoundType) {
	if !am.enabled {
		return
	}
	data, ok := am.sounds[sound]
	if !ok {
		return
	}
	player := am.context.NewPlayerFromBytes(data)
	player.SetVolume(am.volume)
	player.Play()
}

// SetEnabled enables or disables audio.
func (am *AudioManager) SetEnabled(enabled bool) {
	am.enabled = enabled
}

// IsEnabled returns whether audio is enabled.
func (am *AudioManager) IsEnabled() bool {
	return am.enabled
}
