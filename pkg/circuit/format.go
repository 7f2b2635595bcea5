package circuit

import (
	"fmt"
	"sort"
	"strings"

	"github.com/circuitcore/mnasim/pkg/util"
)

// FormatVoltages renders a DC/operating-point solution (as returned by
// Project) as one "name=value" line per non-ground node, SI-prefixed and
// sorted by name for stable output. Ground is never listed — its voltage
// is definitionally zero.
func (c *Circuit) FormatVoltages(voltages map[string]float64) string {
	names := make([]string, 0, len(voltages))
	for name := range voltages {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("%s=%s", name, util.FormatValueFactor(voltages[name], "V")))
	}
	return strings.Join(lines, "\n")
}

// FormatACMagnitudes renders a frequency-domain magnitude solution (as
// returned by ProjectComplexMagnitudes) the same way, one "name=value"
// line per non-ground node sorted by name.
func (c *Circuit) FormatACMagnitudes(mags map[string]float64) string {
	names := make([]string, 0, len(mags))
	for name := range mags {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("%s=%s", name, util.FormatMagnitude(mags[name])))
	}
	return strings.Join(lines, "\n")
}
