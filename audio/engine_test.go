package audio

import (
	"errors"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/perimeter/core"
	"github.com/lixenwraith/perimeter/engine"
	"github.com/lixenwraith/perimeter/parameter"
	"github.com/lixenwraith/perimeter/service"
)

// fakeOutput captures the mixer instead of opening a device
type fakeOutput struct {
	initErr error
	stream  beep.Streamer
	closed  bool
}

func (f *fakeOutput) Init(beep.SampleRate, int) error { return f.initErr }
func (f *fakeOutput) Play(s beep.Streamer)            { f.stream = s }
func (f *fakeOutput) Close()                          { f.closed = true }

func newTestEngine(t *testing.T, out *fakeOutput) (*AudioEngine, *time.Time) {
	t.Helper()
	ae, err := NewAudioEngine(nil, out)
	if err != nil {
		t.Fatalf("NewAudioEngine failed: %v", err)
	}
	now := time.Unix(1_700_000_000, 0)
	ae.now = func() time.Time { return now }
	if err := ae.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	t.Cleanup(ae.Stop)
	return ae, &now
}

func TestPlayMixesIntoOutput(t *testing.T) {
	out := &fakeOutput{}
	ae, _ := newTestEngine(t, out)

	if !ae.Play(core.SoundBell) {
		t.Fatal("Expected bell to play")
	}
	if ae.Active() != 1 {
		t.Errorf("Expected 1 active cue, got %d", ae.Active())
	}

	n, peak := drain(beep.Take(testRate.N(100*time.Millisecond), out.stream))
	if n == 0 || peak == 0 {
		t.Errorf("Expected audible output, got %d samples peak %f", n, peak)
	}
	if peak > parameter.AudioVolume {
		t.Errorf("Expected peak below master volume %f, got %f", parameter.AudioVolume, peak)
	}
}

func TestMinSoundGap(t *testing.T) {
	ae, now := newTestEngine(t, &fakeOutput{})

	if !ae.Play(core.SoundPulse) {
		t.Fatal("Expected first pulse to play")
	}
	if ae.Play(core.SoundPulse) {
		t.Error("Expected repeat inside the gap to be dropped")
	}
	if !ae.Play(core.SoundCoin) {
		t.Error("Expected a different cue to play")
	}
	*now = now.Add(parameter.MinSoundGap)
	if !ae.Play(core.SoundPulse) {
		t.Error("Expected pulse after the gap to play")
	}

	played, dropped := ae.GetStats()
	if played != 3 || dropped != 1 {
		t.Errorf("Expected 3 played 1 dropped, got %d %d", played, dropped)
	}
}

func TestMuteAndSilentMode(t *testing.T) {
	ae, _ := newTestEngine(t, &fakeOutput{})
	if enabled := ae.ToggleMute(); enabled {
		t.Error("Expected mute after toggle")
	}
	if ae.Play(core.SoundError) {
		t.Error("Expected muted engine to refuse play")
	}
	ae.ToggleMute()

	silent, _ := newTestEngine(t, &fakeOutput{initErr: errors.New("no device")})
	if !silent.IsRunning() || silent.IsEnabled() {
		t.Error("Expected silent mode: running but not enabled")
	}
	if silent.Play(core.SoundError) {
		t.Error("Expected silent engine to refuse play")
	}
}

func TestStartTwice(t *testing.T) {
	ae, _ := newTestEngine(t, &fakeOutput{})
	if err := ae.Start(); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("Expected ErrAlreadyRunning, got %v", err)
	}
}

func TestStopClosesOutput(t *testing.T) {
	out := &fakeOutput{}
	ae, err := NewAudioEngine(nil, out)
	if err != nil {
		t.Fatalf("NewAudioEngine failed: %v", err)
	}
	ae.Start()
	ae.Stop()
	if !out.closed {
		t.Error("Expected output to be closed")
	}
	if ae.Play(core.SoundCoin) {
		t.Error("Expected stopped engine to refuse play")
	}
}

func TestServiceContributesPlayer(t *testing.T) {
	s := NewService(&fakeOutput{})
	if err := s.Init(ServiceOptions{Enabled: true}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer s.Stop()

	var got *engine.AudioResource
	s.Contribute(func(r any) {
		if ar, ok := r.(*engine.AudioResource); ok {
			got = ar
		}
	})
	if got == nil || got.Player == nil {
		t.Fatal("Expected audio resource")
	}
	if got.Player.IsMuted() {
		t.Error("Expected unmuted player")
	}

	var _ service.Service = s
}

func TestServiceDisabled(t *testing.T) {
	s := NewService(&fakeOutput{})
	s.Init(ServiceOptions{Muted: false, Enabled: false})
	if !s.IsDisabled() || s.Player() != nil {
		t.Error("Expected disabled service without player")
	}
	s.Contribute(func(any) { t.Error("Expected no contribution") })
}

func TestServiceStartsMuted(t *testing.T) {
	s := NewService(&fakeOutput{})
	s.Init(ServiceOptions{Muted: true, Enabled: true})
	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer s.Stop()

	p := s.Player()
	if p == nil || !p.IsMuted() {
		t.Fatal("Expected a muted player")
	}
	if p.Play(core.SoundCoin) {
		t.Error("Expected muted player to drop sounds")
	}
}
