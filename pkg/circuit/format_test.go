package circuit_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/circuitcore/mnasim/pkg/circuit"
)

func TestFormatVoltages_SortedAndPrefixed(t *testing.T) {
	c := circuit.New()
	c.MarkGround("0")
	_, err := c.AddVoltageSourceDC("V1", "in", "0", 5)
	require.NoError(t, err)
	_, err = c.AddResistor("R1", "in", "out", 1000)
	require.NoError(t, err)
	_, err = c.AddResistor("R2", "out", "0", 1000)
	require.NoError(t, err)

	out := c.FormatVoltages(map[string]float64{"out": 2.5, "in": 5})
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "in="))
	assert.True(t, strings.HasPrefix(lines[1], "out="))
}

func TestFormatACMagnitudes_SortedOutput(t *testing.T) {
	c := circuit.New()
	out := c.FormatACMagnitudes(map[string]float64{"b": 0.5, "a": 1.0})
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "a="))
	assert.True(t, strings.HasPrefix(lines[1], "b="))
}
