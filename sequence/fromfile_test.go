package sequence

import (
	"testing"

	"github.com/c360/musicalconductor/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromFile(t *testing.T) {
	sf := &config.SequenceFile{
		Name:  "Demo.ping-symphony",
		Tempo: 120,
		Movements: []config.MovementFile{
			{
				Name: "main",
				Beats: []config.BeatFile{
					{
						Beat:          1,
						Event:         "a",
						Timing:        config.TimingFile{Kind: "IMMEDIATE"},
						ErrorHandling: "stop",
						Data:          map[string]any{"k": "v"},
					},
					{
						Beat:          2,
						Event:         "b",
						Timing:        config.TimingFile{Kind: "DELAYED", DelayMS: 50},
						ErrorHandling: "continue",
					},
				},
			},
		},
	}

	seq := FromFile(sf)

	assert.Equal(t, "Demo.ping-symphony", seq.Name)
	assert.Equal(t, 120, seq.Tempo)
	require.Len(t, seq.Movements, 1)
	require.Len(t, seq.Movements[0].Beats, 2)

	b0 := seq.Movements[0].Beats[0]
	assert.Equal(t, TimingImmediate, b0.Timing.Kind)
	assert.Equal(t, ErrorStop, b0.ErrorHandling)
	assert.Equal(t, "v", b0.Data["k"])

	b1 := seq.Movements[0].Beats[1]
	assert.Equal(t, TimingDelayed, b1.Timing.Kind)
	assert.EqualValues(t, 50, b1.Timing.DelayMS)
	assert.Equal(t, ErrorContinue, b1.ErrorHandling)

	validator := NewValidator(nil)
	result := validator.Validate(&seq)
	assert.Equal(t, "valid", result.Status)
}
