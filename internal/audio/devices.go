package audio

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gen2brain/malgo"
)

// DefaultDevice selects the system default input device.
const DefaultDevice = -1

// ErrDeviceUnavailable is returned when the selected device index no longer
// exists at stream-open time.
var ErrDeviceUnavailable = errors.New("audio input device unavailable")

// Device describes an audio input endpoint at the time of the query. The list
// is never cached; device sets can change between calls.
type Device struct {
	Index      int    `json:"index"`
	Name       string `json:"name"`
	Channels   int    `json:"channels"`
	SampleRate int    `json:"sample_rate"`
	IsDefault  bool   `json:"is_default"`
}

// ListInputDevices queries the host audio subsystem for all capture endpoints.
func ListInputDevices() ([]Device, error) {
	malgoCtx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("initializing audio context: %w", err)
	}
	defer func() {
		_ = malgoCtx.Uninit()
		malgoCtx.Free()
	}()

	infos, err := malgoCtx.Devices(malgo.Capture)
	if err != nil {
		return nil, fmt.Errorf("enumerating capture devices: %w", err)
	}

	devices := make([]Device, 0, len(infos))
	for i, info := range infos {
		full, err := malgoCtx.DeviceInfo(malgo.Capture, info.ID, malgo.Shared)
		if err != nil {
			slog.Warn("Unable to query audio device info", "index", i, "error", err)
			continue
		}

		dev := Device{
			Index:     i,
			Name:      full.Name(),
			Channels:  1,
			IsDefault: full.IsDefault == 1,
		}
		if full.FormatCount > 0 {
			dev.Channels = int(full.Formats[0].Channels)
			dev.SampleRate = int(full.Formats[0].SampleRate)
		}
		devices = append(devices, dev)
	}

	return devices, nil
}

// FindInputDevice returns the first input device with the given name, or nil.
func FindInputDevice(name string) *Device {
	devices, err := ListInputDevices()
	if err != nil {
		slog.Warn("Unable to list audio devices", "error", err)
		return nil
	}
	for i := range devices {
		if devices[i].Name == name {
			return &devices[i]
		}
	}
	return nil
}
