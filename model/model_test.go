package model_test

import (
	"testing"

	"github.com/raybnn/topology/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	m, err := model.New(100, 10, 10, 5.0, 0.1, 1.0, 50)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultMaxSameCounter, m.MaxSameCounter)
	assert.Equal(t, model.DefaultMaxAllowedHitsNeuron, m.MaxAllowedHitsNeuron)
	assert.Equal(t, model.DefaultMaxAllowedHitsGlia, m.MaxAllowedHitsGlia)
	assert.True(t, m.RayNeuronIntersect)
	assert.EqualValues(t, 80, m.HiddenSize())
}

func TestNewWithOptions(t *testing.T) {
	m, err := model.New(100, 10, 10, 5.0, 0.1, 1.0, 50,
		model.WithMaxSameCounter(9),
		model.WithMaxAllowedHitsNeuron(3),
		model.WithMaxAllowedHitsGlia(1),
		model.WithRayNeuronIntersect(false),
	)
	require.NoError(t, err)
	assert.EqualValues(t, 9, m.MaxSameCounter)
	assert.EqualValues(t, 3, m.MaxAllowedHitsNeuron)
	assert.EqualValues(t, 1, m.MaxAllowedHitsGlia)
	assert.False(t, m.RayNeuronIntersect)
}

func TestValidateRejectsBadInput(t *testing.T) {
	cases := []struct {
		name                                string
		neuronSize, inputSize, outputSize   int64
		sphereRad, neuronRad, conRad        float32
		rayMaxRounds                        int64
	}{
		{"zero neuron size", 0, 0, 0, 1, 1, 1, 10},
		{"cohorts exceed total", 10, 6, 6, 1, 1, 1, 10},
		{"negative sphere rad", 10, 1, 1, -1, 1, 1, 10},
		{"zero neuron rad", 10, 1, 1, 1, 0, 1, 10},
		{"zero con rad", 10, 1, 1, 1, 1, 0, 10},
		{"zero ray max rounds", 10, 1, 1, 1, 1, 1, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := model.New(tc.neuronSize, tc.inputSize, tc.outputSize, tc.sphereRad, tc.neuronRad, tc.conRad, tc.rayMaxRounds)
			require.ErrorIs(t, err, model.ErrInvalidArgument)
		})
	}
}
