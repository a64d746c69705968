package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Profile is an optional static receiver configuration loaded from a YAML
// file. The fmradion command applies Mode, Device, Stereo, Deemphasis,
// PilotShift and MultipathStages only where the matching command-line flag
// was not given; it does not apply CenterFrequency or Extra, and the "-c"
// string is not merged with the profile. This file-based profile has no counterpart in the reference
// decoder, which only accepted command-line flags; it supplements the
// distilled spec for repeatable field deployments.
type Profile struct {
	Mode             string `yaml:"mode"`
	Device           string `yaml:"device"`
	CenterFrequency  int64  `yaml:"center_frequency_hz"`
	Stereo           bool   `yaml:"stereo"`
	Deemphasis       string `yaml:"deemphasis"`
	PilotShift       bool   `yaml:"pilot_shift"`
	MultipathStages  int    `yaml:"multipath_stages"`
	Extra            map[string]string `yaml:"extra"`
}

// LoadProfile reads and parses a YAML profile file.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
