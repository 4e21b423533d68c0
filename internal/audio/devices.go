package audio

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// Device describes one audio input device.
type Device struct {
	Index             int
	Name              string
	Channels          int
	DefaultSampleRate float64
}

// ListDevices returns the available input devices in the platform's
// enumeration order. Devices without input channels are skipped. An
// empty result is not an error.
func (r *Recorder) ListDevices() ([]Device, error) {
	infos, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("%w: enumerating devices: %v", ErrDeviceUnavailable, err)
	}
	return filterInputDevices(infos), nil
}

func filterInputDevices(infos []*portaudio.DeviceInfo) []Device {
	out := make([]Device, 0, len(infos))
	for _, d := range infos {
		if d == nil || d.MaxInputChannels < 1 {
			continue
		}
		out = append(out, Device{
			Index:             d.Index,
			Name:              d.Name,
			Channels:          d.MaxInputChannels,
			DefaultSampleRate: d.DefaultSampleRate,
		})
	}
	return out
}

// inputDevice resolves a device index to a usable input device. A
// negative index selects the system default. Opening a stream without
// this check passing first is a programming error.
func (r *Recorder) inputDevice(index int) (*portaudio.DeviceInfo, error) {
	var info *portaudio.DeviceInfo
	if index < 0 {
		var err error
		info, err = portaudio.DefaultInputDevice()
		if err != nil {
			return nil, fmt.Errorf("%w: no default input device: %v", ErrDeviceUnavailable, err)
		}
	} else {
		infos, err := portaudio.Devices()
		if err != nil {
			return nil, fmt.Errorf("%w: enumerating devices: %v", ErrDeviceUnavailable, err)
		}
		if index >= len(infos) {
			return nil, fmt.Errorf("%w: no device with index %d", ErrDeviceUnavailable, index)
		}
		info = infos[index]
	}

	if info == nil || info.MaxInputChannels < 1 {
		name := "unknown"
		if info != nil {
			name = info.Name
		}
		return nil, fmt.Errorf("%w: device %q has no input channels", ErrDeviceUnavailable, name)
	}
	return info, nil
}
