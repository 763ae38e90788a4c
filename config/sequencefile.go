package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SequenceFile is the YAML shape accepted for defining a sequence without
// writing Go literals, mirroring the Sequence/Movement/Beat data model.
type SequenceFile struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description,omitempty"`
	Key         string         `yaml:"key,omitempty"`
	Tempo       int            `yaml:"tempo"`
	Category    string         `yaml:"category,omitempty"`
	Movements   []MovementFile `yaml:"movements"`
}

// MovementFile is one YAML movement entry.
type MovementFile struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Beats       []BeatFile `yaml:"beats"`
}

// BeatFile is one YAML beat entry.
type BeatFile struct {
	Beat          int            `yaml:"beat"`
	Event         string         `yaml:"event"`
	Title         string         `yaml:"title,omitempty"`
	Description   string         `yaml:"description,omitempty"`
	Dynamics      string         `yaml:"dynamics,omitempty"`
	Timing        TimingFile     `yaml:"timing"`
	Data          map[string]any `yaml:"data,omitempty"`
	ErrorHandling string         `yaml:"errorHandling,omitempty"`
}

// TimingFile is the YAML shape of a beat's timing directive.
type TimingFile struct {
	Kind    string `yaml:"kind"`
	DelayMS int64  `yaml:"delayMs,omitempty"`
}

// LoadSequenceFile reads a YAML sequence definition from path. Callers
// convert the result into sequence.Sequence via sequence.FromFile - this
// package stays free of a sequence package import to avoid a dependency
// cycle with sequtil. Unknown fields are rejected so a typo'd key (e.g.
// "tempoo") surfaces as a parse error instead of silently defaulting.
func LoadSequenceFile(path string) (*SequenceFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sequence file %s: %w", path, err)
	}

	var sf SequenceFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sf); err != nil {
		return nil, fmt.Errorf("parse sequence file %s: %w", path, err)
	}

	return &sf, nil
}
