// Package history holds the time/frequency/phase series the analysis
// driver appends to during a run and the query API reads back by name. It
// is the sole owner of this state: nodes and elements stay thin and carry
// no history of their own.
package history

import "github.com/circuitcore/mnasim/pkg/util"

// Sample is a single (x, y) point in a time, frequency, or phase series.
type Sample struct {
	X float64
	Y float64
}

// Store accumulates per-node and per-element series, keyed by name.
// Appended exclusively by the analysis driver; cleared at the start of
// each analysis; reads are random-access-by-name.
type Store struct {
	voltage map[string][]Sample // node name -> (t, V)
	acMag   map[string][]Sample // node name -> (f, |V|)
	phase   map[string][]Sample // node name -> (ϕ, |V|)
	current map[string][]Sample // element name -> (t, I)
}

func NewStore() *Store {
	return &Store{
		voltage: make(map[string][]Sample),
		acMag:   make(map[string][]Sample),
		phase:   make(map[string][]Sample),
		current: make(map[string][]Sample),
	}
}

// Clear drops every series. Called by the driver at the start of each
// analysis; history is never pruned mid-run.
func (s *Store) Clear() {
	s.voltage = make(map[string][]Sample)
	s.acMag = make(map[string][]Sample)
	s.phase = make(map[string][]Sample)
	s.current = make(map[string][]Sample)
}

func (s *Store) AppendVoltage(node string, t, v float64) {
	s.voltage[node] = append(s.voltage[node], Sample{X: t, Y: v})
}

func (s *Store) AppendACMagnitude(node string, freq, mag float64) {
	s.acMag[node] = append(s.acMag[node], Sample{X: freq, Y: mag})
}

func (s *Store) AppendPhase(node string, phaseDeg, mag float64) {
	s.phase[node] = append(s.phase[node], Sample{X: phaseDeg, Y: mag})
}

func (s *Store) AppendCurrent(element string, t, i float64) {
	s.current[element] = append(s.current[element], Sample{X: t, Y: i})
}

// FormatACLine renders one AC-sweep point as "freq  name=mag<phasedeg",
// pairing this series' magnitude against phaseAt's matching phase sample.
func (s *Store) FormatACLine(node string, i int, phaseAt []Sample) string {
	ac := s.acMag[node]
	if i >= len(ac) {
		return ""
	}
	phase := 0.0
	if i < len(phaseAt) {
		phase = phaseAt[i].Y
	}
	return util.FormatFrequency(ac[i].X) + " " + util.FormatMagnitudePhase(node, ac[i].Y, phase)
}

func (s *Store) VoltageHistory(node string) []Sample { return s.voltage[node] }
func (s *Store) ACHistory(node string) []Sample       { return s.acMag[node] }
func (s *Store) PhaseHistory(node string) []Sample    { return s.phase[node] }
func (s *Store) CurrentHistory(element string) []Sample { return s.current[element] }
