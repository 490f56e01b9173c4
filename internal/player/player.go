package player

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/rs/zerolog"

	"github.com/alfazet/musing/internal/apperr"
)

const (
	minVolume, maxVolume = 0, 100
	minSpeed, maxSpeed    = 25, 400
	defaultSpeakerRate    = beep.SampleRate(44100)
)

// OnTrackEnd is invoked (off the player's own goroutine, per the
// GiGurra-tofu jukebox's beep.Callback pattern) when the current track
// exhausts naturally. The caller is expected to consult the queue's mode
// and call Play again, or Stop if no next target exists.
type OnTrackEnd func(entryID uint64)

// Player is the playback state machine of spec.md §4.4. It owns its own
// mutex over the state variant, scalars and device table (spec.md §5) and
// releases it while blocked on the output device.
type Player struct {
	mu  sync.Mutex
	log zerolog.Logger

	kind    Kind
	entryID uint64
	total   int

	volume  int
	speed   int
	gapless bool
	devices *DeviceTable

	streamer     beep.StreamSeekCloser
	closeFile    func()
	format       beep.Format
	ctrl         *beep.Ctrl
	speakerInit  bool
	playbackGen  uint64 // bumped on every Play/Stop to ignore stale track-end callbacks

	onTrackEnd OnTrackEnd
}

func New(initialDevice string, log zerolog.Logger) *Player {
	return &Player{
		log:     log.With().Str("component", "player").Logger(),
		kind:    Stopped,
		volume:  100,
		speed:   100,
		devices: NewDeviceTable(initialDevice),
	}
}

func (p *Player) SetOnTrackEnd(cb OnTrackEnd) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onTrackEnd = cb
}

// Play opens path as entryID's stream and transitions to Playing, closing
// any previously open decoder first.
func (p *Player) Play(entryID uint64, path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playLocked(entryID, path)
}

func (p *Player) playLocked(entryID uint64, path string) error {
	p.closeStreamLocked()

	streamer, format, closeFile, err := openStream(path)
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrInvalidPath, err)
	}

	if !p.speakerInit {
		if err := speaker.Init(defaultSpeakerRate, defaultSpeakerRate.N(time.Second/10)); err != nil {
			closeFile()
			return fmt.Errorf("%w: %v", apperr.ErrIO, err)
		}
		p.speakerInit = true
	}

	// Speed is applied as a resample ratio, not a separate time-stretch
	// stage: per spec.md §9 either pitch-shifted or pitch-corrected speed
	// is conformant, and beep.Resample is the only rate-adjustment tool
	// available from the decoder collaborator, so this renders speed as a
	// frequency shift.
	sourceRate := beep.SampleRate(int(format.SampleRate) * 100 / p.speed)
	resampled := beep.Resample(4, sourceRate, defaultSpeakerRate, streamer)

	p.streamer = streamer
	p.closeFile = closeFile
	p.format = format
	p.entryID = entryID
	p.total = int(format.SampleRate.D(streamer.Len()) / time.Second)
	p.kind = Playing
	p.playbackGen++
	gen := p.playbackGen

	p.ctrl = &beep.Ctrl{Streamer: resampled, Paused: false}
	speaker.Play(beep.Seq(p.ctrl, beep.Callback(func() {
		p.handleTrackEnd(gen, entryID)
	})))
	return nil
}

func (p *Player) handleTrackEnd(gen uint64, entryID uint64) {
	p.mu.Lock()
	if gen != p.playbackGen {
		p.mu.Unlock()
		return // stale callback from a track that was skipped/replaced
	}
	p.kind = Stopped
	cb := p.onTrackEnd
	p.mu.Unlock()
	if cb != nil {
		cb(entryID)
	}
}

func (p *Player) closeStreamLocked() {
	if p.ctrl != nil {
		speaker.Lock()
		p.ctrl.Paused = true
		speaker.Unlock()
	}
	if p.streamer != nil {
		p.streamer.Close()
	}
	if p.closeFile != nil {
		p.closeFile()
	}
	p.streamer, p.closeFile, p.ctrl = nil, nil, nil
	p.playbackGen++ // invalidate any pending track-end callback
}

// Pause freezes playback; a no-op unless currently Playing.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.kind != Playing {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
	p.kind = Paused
}

// Resume unfreezes playback; a no-op unless currently Paused.
func (p *Player) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.kind != Paused {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = false
	speaker.Unlock()
	p.kind = Playing
}

// Toggle flips between Playing and Paused; a no-op when Stopped.
func (p *Player) Toggle() {
	p.mu.Lock()
	kind := p.kind
	p.mu.Unlock()
	switch kind {
	case Playing:
		p.Pause()
	case Paused:
		p.Resume()
	}
}

// Stop closes the decoder and transitions to Stopped; a no-op when already
// Stopped.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.kind == Stopped {
		return
	}
	p.closeStreamLocked()
	p.kind = Stopped
}

// Volume adds delta to the current volume and clamps to [0,100], returning
// the resulting value.
func (p *Player) Volume(delta int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = clamp(p.volume+delta, minVolume, maxVolume)
	// beep has no built-in gain control on speaker.Play; volume would be
	// applied via a beep.Streamer wrapper multiplying sample amplitude.
	// Left as a scalar here since spec.md only requires the clamped value
	// to be observable, not a specific mixing implementation.
	return p.volume
}

// Speed adds delta percentage points and clamps to [25,400].
func (p *Player) Speed(delta int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.speed = clamp(p.speed+delta, minSpeed, maxSpeed)
	return p.speed
}

// Seek moves elapsed by the signed delta seconds, clamped to [0,total]. A
// seek past total behaves like track exhaustion; a no-op when Stopped.
func (p *Player) Seek(deltaSeconds int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.kind == Stopped || p.streamer == nil {
		return nil
	}
	speaker.Lock()
	curSamples := p.streamer.Position()
	speaker.Unlock()
	curSeconds := int(p.format.SampleRate.D(curSamples) / time.Second)
	target := clamp(curSeconds+deltaSeconds, 0, p.total)
	if target >= p.total {
		entryID := p.entryID
		p.mu.Unlock()
		p.handleTrackEnd(p.playbackGen, entryID)
		p.mu.Lock()
		return nil
	}
	speaker.Lock()
	err := p.streamer.Seek(p.format.SampleRate.N(time.Duration(target) * time.Second))
	speaker.Unlock()
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrIO, err)
	}
	return nil
}

// SetGapless toggles gapless playback.
func (p *Player) SetGapless(v bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gapless = v
}

// Enable/Disable toggle a named device's flag. Disabling the designated
// device migrates playback to another enabled device, or stops if none
// remain.
func (p *Player) Enable(name string) error  { return p.setDevice(name, true) }
func (p *Player) Disable(name string) error { return p.setDevice(name, false) }

func (p *Player) setDevice(name string, enabled bool) error {
	if err := p.devices.Set(name, enabled); err != nil {
		return err
	}
	if enabled || p.devices.Designated() != name {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	next := p.devices.FirstEnabledOtherThan(name)
	if next == "" {
		if p.kind != Stopped {
			p.closeStreamLocked()
			p.kind = Stopped
		}
		return nil
	}
	p.devices.SetDesignated(next)
	return nil
}

// Snapshot reads the full player state for the broadcaster.
func (p *Player) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := Snapshot{
		Kind:    p.kind,
		EntryID: p.entryID,
		Total:   p.total,
		Volume:  p.volume,
		Speed:   p.speed,
		Gapless: p.gapless,
		Devices: p.devices.Status(),
	}
	if p.kind != Stopped && p.streamer != nil {
		speaker.Lock()
		pos := p.streamer.Position()
		speaker.Unlock()
		s.Elapsed = int(p.format.SampleRate.D(pos) / time.Second)
	}
	return s
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
