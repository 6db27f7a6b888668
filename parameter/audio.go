package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 50 * time.Millisecond

	// MinSoundGap between consecutive cues of the same type
	MinSoundGap = 50 * time.Millisecond

	// AudioVolume is the linear gain applied to every cue
	AudioVolume = 0.25
)

// Error (denial) Sound
const (
	ErrorSoundDuration = 80 * time.Millisecond
	ErrorSoundFreq     = 120.0
)

// Pulse Sound
const (
	PulseSoundDuration = 60 * time.Millisecond
	PulseSoundFreq     = 880.0
)

// Coin Sound (purchase, settlement)
const (
	CoinSoundNote1Duration = 80 * time.Millisecond
	CoinSoundNote2Duration = 200 * time.Millisecond
	CoinSoundNote1Freq     = 988.0
	CoinSoundNote2Freq     = 1319.0
)

// Alarm Sound (derail)
const (
	AlarmSoundDuration = 400 * time.Millisecond
	AlarmStartFreq     = 660.0
	AlarmEndFreq       = 220.0
)

// Whoosh Sound (drone dispatch, reboot)
const (
	WhooshSoundDuration = 300 * time.Millisecond
	WhooshStartFreq     = 200.0
	WhooshEndFreq       = 900.0
)

// Bell Sound (terminal arrival)
const (
	BellSoundDuration = 500 * time.Millisecond
	BellSoundFreq     = 523.0
)

// Envelope shaping shared by cues
const (
	CueAttack   = 5 * time.Millisecond
	CueRelease  = 40 * time.Millisecond
	BellRelease = 350 * time.Millisecond
)
