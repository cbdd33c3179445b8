// Package config loads the per device settings from a yaml file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/guettli/eventqueue/pkg/eventqueue"
	"github.com/guettli/eventqueue/pkg/types"
	"gopkg.in/yaml.v3"
)

var (
	ErrNegativeMultiplier = errors.New("multiplier must not be negative")
	ErrDuplicateDeviceID  = errors.New("device_id is used twice")
	ErrEmptyMatch         = errors.New("device needs a name or a path")
)

type Device struct {
	Name                           string  `yaml:"name"`
	Path                           string  `yaml:"path"`
	DeviceID                       uint64  `yaml:"device_id"`
	IsGamePad                      bool    `yaml:"is_game_pad"`
	PointingMotionXYMultiplier     float64 `yaml:"pointing_motion_xy_multiplier"`
	PointingMotionWheelsMultiplier float64 `yaml:"pointing_motion_wheels_multiplier"`
}

type Config struct {
	Devices []Device `yaml:"devices"`
}

func LoadYamlFile(yamlFile string) (*Config, error) {
	data, err := os.ReadFile(yamlFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read yaml config from %q: %w", yamlFile, err)
	}
	c, err := LoadYamlFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %q: %w", yamlFile, err)
	}
	return c, nil
}

func LoadYamlFromBytes(yamlBytes []byte) (*Config, error) {
	c := Config{}
	err := yaml.Unmarshal(yamlBytes, &c)
	if err != nil {
		return nil, err
	}
	ids := map[uint64]bool{}
	for i := range c.Devices {
		d := &c.Devices[i]
		if d.Name == "" && d.Path == "" {
			return nil, fmt.Errorf("device #%d: %w", i+1, ErrEmptyMatch)
		}
		if d.PointingMotionXYMultiplier < 0 || d.PointingMotionWheelsMultiplier < 0 {
			return nil, fmt.Errorf("device %q: %w", d.match(), ErrNegativeMultiplier)
		}
		if d.DeviceID != 0 {
			if ids[d.DeviceID] {
				return nil, fmt.Errorf("device %q: %d: %w", d.match(), d.DeviceID, ErrDuplicateDeviceID)
			}
			ids[d.DeviceID] = true
		}
		d.setDefaults()
	}
	return &c, nil
}

func (d *Device) setDefaults() {
	if d.PointingMotionXYMultiplier == 0 {
		d.PointingMotionXYMultiplier = 1.0
	}
	if d.PointingMotionWheelsMultiplier == 0 {
		d.PointingMotionWheelsMultiplier = 1.0
	}
}

func (d *Device) match() string {
	if d.Path != "" {
		return d.Path
	}
	return d.Name
}

// Lookup returns the settings of the first device matching path or name.
// A path match wins over a name match. Unknown devices get the defaults.
// A nil Config is valid.
func (c *Config) Lookup(name, path string) (Device, bool) {
	if c != nil {
		for _, d := range c.Devices {
			if d.Path != "" && d.Path == path {
				return d, true
			}
		}
		for _, d := range c.Devices {
			if d.Path == "" && d.Name != "" && d.Name == name {
				return d, true
			}
		}
	}
	d := Device{Name: name, Path: path}
	d.setDefaults()
	return d, false
}

// MaxDeviceID returns the largest configured device_id, or 0.
func (c *Config) MaxDeviceID() uint64 {
	var maxID uint64
	if c != nil {
		for _, d := range c.Devices {
			maxID = max(maxID, d.DeviceID)
		}
	}
	return maxID
}

// DeviceProperties applies the settings to props. A configured device_id
// replaces the one of props.
func (d Device) DeviceProperties(props types.DeviceProperties) types.DeviceProperties {
	if d.DeviceID != 0 {
		props.DeviceID = types.DeviceID(d.DeviceID)
	}
	if d.IsGamePad {
		props.IsGamePad = true
	}
	return props
}

func (d Device) MakeQueueParameters(h *eventqueue.HatSwitchConverter) eventqueue.MakeQueueParameters {
	return eventqueue.MakeQueueParameters{
		PointingMotionXYMultiplier:     d.PointingMotionXYMultiplier,
		PointingMotionWheelsMultiplier: d.PointingMotionWheelsMultiplier,
		HatSwitchConverter:             h,
	}
}
