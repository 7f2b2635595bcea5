package history_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/circuitcore/mnasim/pkg/history"
)

func TestStore_AppendAndQueryByName(t *testing.T) {
	s := history.NewStore()
	s.AppendVoltage("n1", 0, 1.0)
	s.AppendVoltage("n1", 1e-3, 1.5)
	s.AppendCurrent("L1", 0, 0.1)

	got := s.VoltageHistory("n1")
	assert.Len(t, got, 2)
	assert.InDelta(t, 1.5, got[1].Y, 1e-12)

	assert.Empty(t, s.VoltageHistory("unknown"))
	assert.Len(t, s.CurrentHistory("L1"), 1)
}

func TestStore_FormatACLine(t *testing.T) {
	s := history.NewStore()
	s.AppendACMagnitude("out", 1000, 0.707)
	phase := []history.Sample{{X: 1000, Y: -45}}

	line := s.FormatACLine("out", 0, phase)
	assert.Contains(t, line, "out=")
	assert.Contains(t, line, "-45.0deg")

	assert.Empty(t, s.FormatACLine("out", 5, phase))
}

func TestStore_ClearDropsAllSeries(t *testing.T) {
	s := history.NewStore()
	s.AppendVoltage("n1", 0, 1.0)
	s.AppendACMagnitude("n1", 1000, 0.5)
	s.AppendPhase("n1", 90, 0.5)

	s.Clear()

	assert.Empty(t, s.VoltageHistory("n1"))
	assert.Empty(t, s.ACHistory("n1"))
	assert.Empty(t, s.PhaseHistory("n1"))
}
