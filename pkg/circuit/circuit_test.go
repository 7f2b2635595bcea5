package circuit_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/circuitcore/mnasim/pkg/circuit"
	"github.com/circuitcore/mnasim/pkg/element"
	"github.com/circuitcore/mnasim/pkg/matrix"
	"github.com/circuitcore/mnasim/pkg/mnaerror"
)

func TestCircuit_ResistiveDividerExact(t *testing.T) {
	c := circuit.New()
	c.MarkGround("0")
	_, err := c.AddVoltageSourceDC("V1", "in", "0", 10)
	require.NoError(t, err)
	_, err = c.AddResistor("R1", "in", "mid", 1000)
	require.NoError(t, err)
	_, err = c.AddResistor("R2", "mid", "0", 1000)
	require.NoError(t, err)

	c.Prepare()
	sys := matrix.New(c.Size(), false)
	require.NoError(t, c.Stamp(sys, element.Context{Kind: element.OperatingPoint}))
	require.NoError(t, sys.Solve())

	voltages, err := c.Project(sys)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, voltages["in"], 1e-9)
	assert.InDelta(t, 5.0, voltages["mid"], 1e-9)
}

func TestCircuit_DuplicateNameRejected(t *testing.T) {
	c := circuit.New()
	_, err := c.AddResistor("R1", "a", "b", 100)
	require.NoError(t, err)

	_, err = c.AddResistor("R1", "a", "b", 200)
	require.Error(t, err)
	assert.True(t, errors.Is(err, mnaerror.ErrDuplicateName))
}

func TestCircuit_InvalidParameterRejected(t *testing.T) {
	c := circuit.New()
	_, err := c.AddResistor("R1", "a", "b", -100)
	require.Error(t, err)
	assert.True(t, errors.Is(err, mnaerror.ErrInvalidParameter))
}

func TestCircuit_ExtraVariableCount(t *testing.T) {
	c := circuit.New()
	c.MarkGround("0")
	_, err := c.AddVoltageSourceDC("V1", "in", "0", 5)
	require.NoError(t, err)
	_, err = c.AddInductor("L1", "in", "out", 1e-3)
	require.NoError(t, err)
	_, err = c.AddResistor("R1", "out", "0", 100)
	require.NoError(t, err)

	c.Prepare()
	assert.Equal(t, 2, c.ExtraVariableCount()) // one DC vs + one inductor
	assert.Equal(t, 2, c.NonGroundNodeCount())  // "in", "out"
}
