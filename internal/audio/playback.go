package audio

import (
	"context"
	"encoding/binary"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/gen2brain/malgo"
	"github.com/go-audio/wav"
)

// FileDuration reports the playable duration of a saved voice note.
func FileDuration(path string) (time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening voice note: %w", err)
	}
	defer f.Close()
	return wav.NewDecoder(f).Duration()
}

// PlayFile decodes a saved voice note and plays it on the default output
// device. Returns when playback finishes or ctx is canceled.
func PlayFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening voice note: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return fmt.Errorf("decoding voice note: %w", err)
	}
	if buf == nil || len(buf.Data) == 0 {
		return fmt.Errorf("voice note %s contains no audio", path)
	}

	// Playback always runs as signed 16-bit; 8-bit notes are widened so the
	// zero-filled tail of the last block is true silence.
	pcm := make([]byte, len(buf.Data)*2)
	for i, s := range buf.Data {
		v := int16(s)
		if dec.BitDepth == 8 {
			v = int16(s-128) << 8
		}
		binary.LittleEndian.PutUint16(pcm[i*2:], uint16(v))
	}

	malgoCtx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return fmt.Errorf("initializing audio context: %w", err)
	}
	defer func() {
		_ = malgoCtx.Uninit()
		malgoCtx.Free()
	}()

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Playback)
	deviceConfig.SampleRate = uint32(buf.Format.SampleRate)
	deviceConfig.PeriodSizeInMilliseconds = periodSizeMS
	deviceConfig.Playback.Format = malgo.FormatS16
	deviceConfig.Playback.Channels = uint32(buf.Format.NumChannels)
	deviceConfig.Alsa.NoMMap = 1

	var (
		pos      int
		doneOnce sync.Once
	)
	done := make(chan struct{})

	callbacks := malgo.DeviceCallbacks{
		Data: func(pOutput, pInput []byte, frameCount uint32) {
			n := copy(pOutput, pcm[pos:])
			pos += n
			for i := n; i < len(pOutput); i++ {
				pOutput[i] = 0
			}
			if pos >= len(pcm) {
				doneOnce.Do(func() { close(done) })
			}
		},
	}

	device, err := malgo.InitDevice(malgoCtx.Context, deviceConfig, callbacks)
	if err != nil {
		return fmt.Errorf("opening playback device: %w", err)
	}
	defer device.Uninit()

	if err := device.Start(); err != nil {
		return fmt.Errorf("starting playback device: %w", err)
	}

	slog.Info("Playing voice note", "path", path,
		"sample_rate", buf.Format.SampleRate, "samples", len(buf.Data))

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}
