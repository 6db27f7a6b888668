package core

// SoundType represents different sound cues
type SoundType int

const (
	SoundError    SoundType = iota // Denied intent buzz
	SoundPulse                     // Manual pulse
	SoundCoin                      // Purchase or settlement payout
	SoundAlarm                     // Derail
	SoundWhoosh                    // Drone dispatch
	SoundBell                      // Terminal arrival
	SoundTypeCount
)

// String returns the cue name
func (s SoundType) String() string {
	switch s {
	case SoundError:
		return "error"
	case SoundPulse:
		return "pulse"
	case SoundCoin:
		return "coin"
	case SoundAlarm:
		return "alarm"
	case SoundWhoosh:
		return "whoosh"
	case SoundBell:
		return "bell"
	default:
		return "unknown"
	}
}
