package analysis_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/circuitcore/mnasim/pkg/analysis"
	"github.com/circuitcore/mnasim/pkg/circuit"
)

func TestDC_ResistiveDividerExact(t *testing.T) {
	c := circuit.New()
	c.MarkGround("0")
	_, err := c.AddVoltageSourceDC("V1", "in", "0", 10)
	require.NoError(t, err)
	_, err = c.AddResistor("R1", "in", "mid", 1000)
	require.NoError(t, err)
	_, err = c.AddResistor("R2", "mid", "0", 1000)
	require.NoError(t, err)

	d := analysis.NewDriver(c)
	v, err := d.DC()
	require.NoError(t, err)
	assert.InDelta(t, 5.0, v["mid"], 1e-9)
}

func TestDC_Linearity(t *testing.T) {
	build := func(vSrc float64) map[string]float64 {
		c := circuit.New()
		c.MarkGround("0")
		_, _ = c.AddVoltageSourceDC("V1", "in", "0", vSrc)
		_, _ = c.AddResistor("R1", "in", "mid", 1000)
		_, _ = c.AddResistor("R2", "mid", "0", 2000)
		d := analysis.NewDriver(c)
		v, err := d.DC()
		require.NoError(t, err)
		return v
	}

	base := build(4)
	scaled := build(12) // 3x
	assert.InDelta(t, base["mid"]*3, scaled["mid"], 1e-9)
}

func TestDC_ForwardBiasedDiodeCurrent(t *testing.T) {
	c := circuit.New()
	c.MarkGround("0")
	_, err := c.AddVoltageSourceDC("V1", "in", "0", 5)
	require.NoError(t, err)
	_, err = c.AddDiode("D1", "in", "mid", 0.7)
	require.NoError(t, err)
	_, err = c.AddResistor("R1", "mid", "0", 1000)
	require.NoError(t, err)

	d := analysis.NewDriver(c)
	v, err := d.DC()
	require.NoError(t, err)

	wantCurrent := (5.0 - 0.7) / 1000.0
	assert.InDelta(t, 5.0-0.7, v["mid"], 1e-9)

	diode := c.Diodes()[0]
	assert.InDelta(t, wantCurrent, diode.SolvedCurrent, 1e-9)
}

func TestDC_ReverseBiasedDiodeCarriesNoCurrent(t *testing.T) {
	c := circuit.New()
	c.MarkGround("0")
	_, err := c.AddVoltageSourceDC("V1", "in", "0", 0.3)
	require.NoError(t, err)
	_, err = c.AddDiode("D1", "in", "mid", 0.7)
	require.NoError(t, err)
	_, err = c.AddResistor("R1", "mid", "0", 1000)
	require.NoError(t, err)

	d := analysis.NewDriver(c)
	v, err := d.DC()
	require.NoError(t, err)
	assert.InDelta(t, 0.0, v["mid"], 1e-9)
}

func TestDC_ZenerClamp(t *testing.T) {
	c := circuit.New()
	c.MarkGround("0")
	_, err := c.AddVoltageSourceDC("V1", "in", "0", -10)
	require.NoError(t, err)
	_, err = c.AddResistor("R1", "in", "mid", 1000)
	require.NoError(t, err)
	_, err = c.AddZenerDiode("D1", "mid", "0", 0.7, 5.1)
	require.NoError(t, err)

	d := analysis.NewDriver(c)
	v, err := d.DC()
	require.NoError(t, err)
	assert.InDelta(t, -5.1, v["mid"], 1e-6)
}

func TestTransient_RCStepResponse(t *testing.T) {
	const r, capF = 1000.0, 1e-6
	const rc = r * capF
	const vSource = 5.0

	c := circuit.New()
	c.MarkGround("0")
	_, err := c.AddVoltageSourceDC("V1", "in", "0", vSource)
	require.NoError(t, err)
	_, err = c.AddResistor("R1", "in", "out", r)
	require.NoError(t, err)
	_, err = c.AddCapacitor("C1", "out", "0", capF)
	require.NoError(t, err)

	dt := rc / 50.0
	d := analysis.NewDriver(c)
	require.NoError(t, d.Transient(dt, 5*rc))

	samples := d.History.VoltageHistory("out")
	require.NotEmpty(t, samples)

	for _, s := range samples {
		want := vSource * (1 - math.Exp(-s.X/rc))
		assert.InDelta(t, want, s.Y, 0.01*vSource)
	}
}

func TestTransient_InitialConditionMatchesDC(t *testing.T) {
	c := circuit.New()
	c.MarkGround("0")
	_, err := c.AddVoltageSourceDC("V1", "in", "0", 9)
	require.NoError(t, err)
	_, err = c.AddResistor("R1", "in", "out", 500)
	require.NoError(t, err)
	_, err = c.AddCapacitor("C1", "out", "0", 2e-6)
	require.NoError(t, err)

	dOp := analysis.NewDriver(c)
	dcVoltages, err := dOp.DC()
	require.NoError(t, err)

	d := analysis.NewDriver(c)
	require.NoError(t, d.Transient(1e-5, 1e-3))

	samples := d.History.VoltageHistory("out")
	require.NotEmpty(t, samples)
	assert.InDelta(t, dcVoltages["out"], samples[0].Y, 1e-9)
	assert.Equal(t, 0.0, samples[0].X)
}

func TestTransient_LRStepResponse(t *testing.T) {
	const r, l = 100.0, 0.01
	const tau = l / r
	const vSource = 5.0

	c := circuit.New()
	c.MarkGround("0")
	_, err := c.AddVoltageSourceDC("V1", "in", "0", vSource)
	require.NoError(t, err)
	_, err = c.AddResistor("R1", "in", "out", r)
	require.NoError(t, err)
	_, err = c.AddInductor("L1", "out", "0", l)
	require.NoError(t, err)

	dt := tau / 50.0
	d := analysis.NewDriver(c)
	require.NoError(t, d.Transient(dt, 5*tau))

	samples := d.History.CurrentHistory("L1")
	require.NotEmpty(t, samples)

	for _, s := range samples {
		want := (vSource / r) * (1 - math.Exp(-s.X/tau))
		assert.InDelta(t, want, s.Y, 0.01*(vSource/r))
	}
}

func TestACSweep_RCLowPass(t *testing.T) {
	const r, capF = 1000.0, 1e-7
	f0 := 1 / (2 * math.Pi * r * capF)

	c := circuit.New()
	c.MarkGround("0")
	_, err := c.AddVoltageSourceAC("V1", "in", "0", 1.0, f0, 0)
	require.NoError(t, err)
	_, err = c.AddResistor("R1", "in", "out", r)
	require.NoError(t, err)
	_, err = c.AddCapacitor("C1", "out", "0", capF)
	require.NoError(t, err)

	d := analysis.NewDriver(c)
	n, err := d.ACSweep("V1", f0/10, f0*10, 21, analysis.Decade)
	require.NoError(t, err)
	assert.Equal(t, 21, n)

	samples := d.History.ACHistory("out")
	require.Len(t, samples, 21)
	for _, s := range samples {
		want := 1.0 / math.Sqrt(1+math.Pow(2*math.Pi*s.X*r*capF, 2))
		assert.InDelta(t, want, s.Y, 1e-3*want+1e-6)
	}
}

func TestACSweep_UnknownSource(t *testing.T) {
	c := circuit.New()
	c.MarkGround("0")
	_, err := c.AddResistor("R1", "in", "0", 100)
	require.NoError(t, err)

	d := analysis.NewDriver(c)
	_, err = d.ACSweep("VX", 1, 100, 5, analysis.Linear)
	require.Error(t, err)
}

func TestPhaseSweep_RestoresOriginalPhase(t *testing.T) {
	c := circuit.New()
	c.MarkGround("0")
	src, err := c.AddVoltageSourceAC("V1", "in", "0", 1.0, 1000, 30)
	require.NoError(t, err)
	_, err = c.AddResistor("R1", "in", "0", 100)
	require.NoError(t, err)

	d := analysis.NewDriver(c)
	n, err := d.PhaseSweep("V1", 1000, 0, 180, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.InDelta(t, 30.0, src.PhaseDeg(), 1e-9)
}

func TestACSweep_ZenerClampHoldsAcrossFrequencySweep(t *testing.T) {
	c := circuit.New()
	c.MarkGround("0")
	// Biased past breakdown at t=0 (10V * cos(180deg) = -10V) so the DC
	// bootstrap that ACSweep/PhaseSweep run before sweeping resolves the
	// Zener to RevOn; the clamp then holds at every swept point because
	// diode state is frozen for the whole sweep.
	src, err := c.AddVoltageSourceAC("V1", "in", "0", 10, 1000, 180)
	require.NoError(t, err)
	_, err = c.AddResistor("R1", "in", "mid", 1000)
	require.NoError(t, err)
	_, err = c.AddZenerDiode("D1", "mid", "0", 0.7, 5.1)
	require.NoError(t, err)

	d := analysis.NewDriver(c)
	n, err := d.ACSweep("V1", 100, 10000, 5, analysis.Linear)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	samples := d.History.ACHistory("mid")
	require.Len(t, samples, 5)
	for _, s := range samples {
		assert.GreaterOrEqual(t, s.Y, 0.7)
		assert.LessOrEqual(t, s.Y, 5.1)
	}

	assert.InDelta(t, 180.0, src.PhaseDeg(), 1e-9)
}

func TestPhaseSweep_ZenerClampHoldsAcrossPhaseSweep(t *testing.T) {
	c := circuit.New()
	c.MarkGround("0")
	src, err := c.AddVoltageSourceAC("V1", "in", "0", 10, 1000, 180)
	require.NoError(t, err)
	_, err = c.AddResistor("R1", "in", "mid", 1000)
	require.NoError(t, err)
	_, err = c.AddZenerDiode("D1", "mid", "0", 0.7, 5.1)
	require.NoError(t, err)

	d := analysis.NewDriver(c)
	n, err := d.PhaseSweep("V1", 1000, 0, 360, 9)
	require.NoError(t, err)
	assert.Equal(t, 9, n)

	samples := d.History.PhaseHistory("mid")
	require.Len(t, samples, 9)
	for _, s := range samples {
		assert.GreaterOrEqual(t, s.Y, 0.7)
		assert.LessOrEqual(t, s.Y, 5.1)
	}

	assert.InDelta(t, 180.0, src.PhaseDeg(), 1e-9)
}

func TestDiodeIteration_BoundedByTwiceDiodeCount(t *testing.T) {
	// Two diodes: DC must converge within 2*2 iterations.
	c := circuit.New(circuit.WithMaxDiodeIterations(4))
	c.MarkGround("0")
	_, err := c.AddVoltageSourceDC("V1", "in", "0", 5)
	require.NoError(t, err)
	_, err = c.AddDiode("D1", "in", "mid1", 0.7)
	require.NoError(t, err)
	_, err = c.AddResistor("R1", "mid1", "mid2", 1000)
	require.NoError(t, err)
	_, err = c.AddDiode("D2", "mid2", "0", 0.7)
	require.NoError(t, err)

	d := analysis.NewDriver(c)
	_, err = d.DC()
	require.NoError(t, err)
}
