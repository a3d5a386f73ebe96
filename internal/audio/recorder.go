package audio

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/danielrosehill/voicenote/internal/quality"
	"github.com/danielrosehill/voicenote/internal/wavfile"
)

// State represents the current state of the recorder.
type State string

const (
	StateIdle      State = "IDLE"
	StateRecording State = "RECORDING"
	StatePaused    State = "PAUSED"
	StateStopped   State = "STOPPED"
)

// collectorJoinTimeout bounds the wait for the buffering goroutine to finish
// draining during teardown. After it, teardown proceeds regardless.
const collectorJoinTimeout = time.Second

// ErrNoAudio is returned by Save when nothing was recorded.
var ErrNoAudio = errors.New("no audio recorded")

// InvalidStateError reports an operation attempted from a state that does not
// permit it.
type InvalidStateError struct {
	Op    string
	State State
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s while %s", e.Op, e.State)
}

// LevelFunc receives the dB level of every delivered chunk, including while
// paused. It runs on the audio delivery path and must not block.
type LevelFunc func(db float64)

// Recorder is the capture state machine for one voice note at a time.
//
// Transitions: IDLE → RECORDING ⇄ PAUSED → STOPPED → IDLE, with Clear forcing
// IDLE from anywhere. Start/Pause/Resume/Stop are no-ops outside their legal
// source states. While paused the hardware stream stays open so the level
// meter keeps updating; only buffering is suspended.
type Recorder struct {
	levelFn    LevelFunc
	openStream openStreamFunc

	buf captureBuffer

	mu            sync.Mutex
	state         State
	profile       quality.Profile
	deviceIndex   int
	stream        inputStream
	chunkC        chan []byte
	collectorQuit chan struct{}
	collectorDone chan struct{}
	lastLevel     float64
}

// NewRecorder creates an idle recorder using the given quality profile and
// the system default input device.
func NewRecorder(profile quality.Profile, levelFn LevelFunc) *Recorder {
	if profile.SampleRate == 0 {
		profile = quality.Default()
	}
	return &Recorder{
		levelFn:     levelFn,
		openStream:  openMalgoStream,
		state:       StateIdle,
		profile:     profile,
		deviceIndex: DefaultDevice,
		lastLevel:   SilenceFloorDB,
	}
}

// State returns the current state.
func (r *Recorder) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Quality returns the active quality profile.
func (r *Recorder) Quality() quality.Profile {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.profile
}

// Level returns the most recent level measurement in dB.
func (r *Recorder) Level() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastLevel
}

// SetQuality changes the quality profile. Legal only while idle; the profile
// determines both the live capture format and the output encoding.
func (r *Recorder) SetQuality(profile quality.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StateIdle {
		return &InvalidStateError{Op: "change quality", State: r.state}
	}
	r.profile = profile
	return nil
}

// SetDevice selects the input device by catalog index (DefaultDevice for the
// system default). Takes effect on the next Start.
func (r *Recorder) SetDevice(index int) {
	r.mu.Lock()
	r.deviceIndex = index
	r.mu.Unlock()
	slog.Info("Input device selected", "index", index)
}

// Duration returns the buffered recording length in seconds.
func (r *Recorder) Duration() float64 {
	r.mu.Lock()
	profile := r.profile
	r.mu.Unlock()

	samples := r.buf.bytes() / profile.SampleWidth
	if samples == 0 {
		return 0
	}
	return float64(samples) / float64(profile.SampleRate)
}

// Start opens the live input stream and begins buffering. No-op unless idle.
func (r *Recorder) Start() error {
	r.mu.Lock()
	if r.state != StateIdle {
		r.mu.Unlock()
		return nil
	}
	profile := r.profile
	deviceIndex := r.deviceIndex

	r.buf.reset()
	r.chunkC = make(chan []byte, 1000/periodSizeMS) // buffer 1 second
	r.collectorQuit = make(chan struct{})
	r.collectorDone = make(chan struct{})
	r.state = StateRecording

	stream, err := r.openStream(streamConfig{
		SampleRate:  profile.SampleRate,
		SampleWidth: profile.SampleWidth,
		DeviceIndex: deviceIndex,
	}, r.onChunk)
	if err != nil {
		r.state = StateIdle
		r.chunkC = nil
		r.collectorQuit = nil
		r.collectorDone = nil
		r.mu.Unlock()
		return fmt.Errorf("starting recording: %w", err)
	}
	r.stream = stream
	go r.collect(r.chunkC, r.collectorQuit, r.collectorDone)
	r.mu.Unlock()

	slog.Info("Recording started",
		"sample_rate", profile.SampleRate,
		"bit_depth", profile.BitDepth(),
		"device_index", deviceIndex)
	return nil
}

// Pause suspends buffering. The stream stays open so level updates continue.
// No-op unless recording.
func (r *Recorder) Pause() {
	r.mu.Lock()
	if r.state == StateRecording {
		r.state = StatePaused
		slog.Debug("Recording paused")
	}
	r.mu.Unlock()
}

// Resume restarts buffering after a pause. No-op unless paused.
func (r *Recorder) Resume() {
	r.mu.Lock()
	if r.state == StatePaused {
		r.state = StateRecording
		slog.Debug("Recording resumed")
	}
	r.mu.Unlock()
}

// Stop closes the live stream and freezes the buffer for saving. No-op unless
// recording or paused.
func (r *Recorder) Stop() {
	r.mu.Lock()
	if r.state != StateRecording && r.state != StatePaused {
		r.mu.Unlock()
		return
	}
	r.state = StateStopped
	stream := r.stream
	quit := r.collectorQuit
	done := r.collectorDone
	r.stream = nil
	r.chunkC = nil
	r.collectorQuit = nil
	r.collectorDone = nil
	r.mu.Unlock()

	if stream != nil {
		if err := stream.Close(); err != nil {
			slog.Warn("Error closing capture stream", "error", err)
		}
	}
	if quit != nil {
		close(quit)
		select {
		case <-done:
		case <-time.After(collectorJoinTimeout):
			slog.Warn("Capture collector did not drain in time")
		}
	}
	slog.Info("Recording stopped", "duration_seconds", r.Duration())
}

// Clear discards buffered audio and returns to idle, closing any live stream.
// Legal from any state.
func (r *Recorder) Clear() {
	r.Stop()
	r.buf.reset()
	r.mu.Lock()
	r.state = StateIdle
	r.lastLevel = SilenceFloorDB
	r.mu.Unlock()
	slog.Debug("Recording cleared")
}

// Save writes the buffered audio to dest as a WAV file and returns the actual
// path written, with the extension normalized. Legal only when stopped with a
// non-empty buffer. On I/O failure the buffer and state are left untouched so
// the caller may retry with a different destination.
func (r *Recorder) Save(dest string) (string, error) {
	r.mu.Lock()
	if r.state != StateStopped {
		state := r.state
		r.mu.Unlock()
		return "", &InvalidStateError{Op: "save", State: state}
	}
	profile := r.profile
	r.mu.Unlock()

	pcm := r.buf.concat()
	if len(pcm) == 0 {
		return "", ErrNoAudio
	}

	path := wavfile.NormalizePath(dest)
	if err := wavfile.Write(path, pcm, profile.SampleRate, profile.SampleWidth); err != nil {
		return "", fmt.Errorf("saving voice note: %w", err)
	}

	r.buf.reset()
	r.mu.Lock()
	r.state = StateIdle
	r.mu.Unlock()

	slog.Info("Voice note saved", "path", path, "bytes", len(pcm))
	return path, nil
}

// onChunk is the delivery callback, invoked by the audio subsystem on its own
// execution context once per captured block.
func (r *Recorder) onChunk(pcm []byte) {
	r.mu.Lock()
	state := r.state
	profile := r.profile
	chunkC := r.chunkC
	r.mu.Unlock()

	// Level is always measured, even while paused.
	db := ChunkLevel(pcm, profile.SampleWidth)
	r.mu.Lock()
	r.lastLevel = db
	r.mu.Unlock()
	if r.levelFn != nil {
		r.levelFn(db)
	}

	if state != StateRecording || chunkC == nil {
		return
	}

	// The subsystem reuses the delivery buffer; hand the collector a copy.
	chunk := append([]byte(nil), pcm...)
	select {
	case chunkC <- chunk:
	default:
		slog.Warn("Capture queue full, dropping chunk", "bytes", len(chunk))
	}
}

// collect drains delivered chunks into the capture buffer until told to quit,
// then flushes whatever is still queued.
func (r *Recorder) collect(chunkC chan []byte, quit, done chan struct{}) {
	defer close(done)
	for {
		select {
		case chunk := <-chunkC:
			r.buf.append(chunk)
		case <-quit:
			for {
				select {
				case chunk := <-chunkC:
					r.buf.append(chunk)
				default:
					return
				}
			}
		}
	}
}
