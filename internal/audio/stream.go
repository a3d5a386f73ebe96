package audio

import (
	"fmt"

	"github.com/gen2brain/malgo"

	"github.com/danielrosehill/voicenote/internal/quality"
)

// periodSizeMS is the captured block size in milliseconds.
const periodSizeMS = 100

// streamConfig describes the capture format for one recording attempt.
type streamConfig struct {
	SampleRate  int
	SampleWidth int
	DeviceIndex int // DefaultDevice for the system default
}

// dataFunc receives each delivered PCM block. The slice is owned by the audio
// subsystem and only valid for the duration of the call.
type dataFunc func(pcm []byte)

// inputStream is a live capture stream. Close stops delivery and releases the
// underlying device.
type inputStream interface {
	Close() error
}

// openStreamFunc opens a live input stream. Swappable so tests can drive
// chunks deterministically.
type openStreamFunc func(cfg streamConfig, onData dataFunc) (inputStream, error)

type malgoStream struct {
	malgoCtx *malgo.AllocatedContext
	device   *malgo.Device
}

func (s *malgoStream) Close() error {
	s.device.Uninit()
	err := s.malgoCtx.Uninit()
	s.malgoCtx.Free()
	return err
}

// openMalgoStream opens a capture device and starts chunk delivery.
func openMalgoStream(cfg streamConfig, onData dataFunc) (inputStream, error) {
	malgoCtx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("initializing audio context: %w", err)
	}
	cleanup := func() {
		_ = malgoCtx.Uninit()
		malgoCtx.Free()
	}

	format := malgo.FormatS16
	if cfg.SampleWidth == 1 {
		format = malgo.FormatU8
	}

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Capture)
	deviceConfig.SampleRate = uint32(cfg.SampleRate)
	deviceConfig.PeriodSizeInMilliseconds = periodSizeMS
	deviceConfig.Capture.Format = format
	deviceConfig.Capture.Channels = quality.Channels
	deviceConfig.Alsa.NoMMap = 1

	if cfg.DeviceIndex != DefaultDevice {
		infos, err := malgoCtx.Devices(malgo.Capture)
		if err != nil {
			cleanup()
			return nil, fmt.Errorf("enumerating capture devices: %w", err)
		}
		if cfg.DeviceIndex < 0 || cfg.DeviceIndex >= len(infos) {
			cleanup()
			return nil, fmt.Errorf("%w: index %d", ErrDeviceUnavailable, cfg.DeviceIndex)
		}
		id := infos[cfg.DeviceIndex].ID
		deviceConfig.Capture.DeviceID = id.Pointer()
	}

	callbacks := malgo.DeviceCallbacks{
		Data: func(pOutput, pInput []byte, frameCount uint32) {
			onData(pInput)
		},
	}

	device, err := malgo.InitDevice(malgoCtx.Context, deviceConfig, callbacks)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("opening capture device: %w", err)
	}
	if err := device.Start(); err != nil {
		device.Uninit()
		cleanup()
		return nil, fmt.Errorf("starting capture device: %w", err)
	}

	return &malgoStream{malgoCtx: malgoCtx, device: device}, nil
}
