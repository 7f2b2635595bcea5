// Package circuit is the graph of nodes and elements an analysis runs
// against: node/element storage, matrix-index assignment, stamp
// orchestration, and the result projector that writes a solved vector
// back onto the graph.
package circuit

import (
	"fmt"

	"github.com/circuitcore/mnasim/pkg/element"
	"github.com/circuitcore/mnasim/pkg/matrix"
	"github.com/circuitcore/mnasim/pkg/mnaerror"
)

// Config holds the tunables the analysis driver and diode iteration loop
// read. Zero value is meaningless; build one with NewConfig.
// MaxDiodeIterations caps the diode iteration loop. DiodeEpsilonI is
// stored but not read: the diode state machine (element.Diode.NextState)
// always uses its own fixed 1e-9 tolerance.
type Config struct {
	MaxDiodeIterations int
	DiodeEpsilonI      float64
}

// Option configures a Config at construction.
type Option func(*Config)

func WithMaxDiodeIterations(n int) Option {
	return func(c *Config) { c.MaxDiodeIterations = n }
}

func WithDiodeEpsilonI(eps float64) Option {
	return func(c *Config) { c.DiodeEpsilonI = eps }
}

func NewConfig(opts ...Option) Config {
	c := Config{MaxDiodeIterations: 100, DiodeEpsilonI: 1e-9}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// endpoints holds an element's node identities by Node.ID, independent of
// matrix-index assignment: elements are added before Prepare runs, and
// Prepare is what turns these into the 1-based MNA indices (0 = ground)
// every element's Stamp actually uses.
type endpoints struct {
	a, b int
}

// nodeSetter is the subset of element.Element every kind satisfies via its
// embedded Base.
type nodeSetter interface {
	SetNodes(n1, n2 int)
}

// Circuit is the graph: nodes, elements by kind, and the matrix-index
// assignment that is recomputed whenever the graph's structural shape
// (node count, voltage-source count, inductor count) changes.
type Circuit struct {
	Config Config

	nodes      []*Node
	nodeByName map[string]*Node

	resistors  []*element.Resistor
	capacitors []*element.Capacitor
	inductors  []*element.Inductor
	vsDC       []*element.VoltageSourceDC
	vsAC       []*element.VoltageSourceAC
	isources   []*element.CurrentSource
	diodes     []*element.Diode

	resistorNames  map[string]bool
	capacitorNames map[string]bool
	inductorNames  map[string]bool
	vsNames        map[string]bool // shared by VoltageSourceDC and VoltageSourceAC: one "V" kind
	isourceNames   map[string]bool
	diodeNames     map[string]bool

	allElements []element.Element
	endpointsOf map[element.Element]endpoints

	matrixIndex map[int]int  // Node.ID -> 1-based MNA row; absent for ground
	nodeAtIndex map[int]*Node // inverse of matrixIndex, for current-history lookups
	n           int          // non-ground node count
}

func New(opts ...Option) *Circuit {
	return &Circuit{
		Config:         NewConfig(opts...),
		nodeByName:     make(map[string]*Node),
		resistorNames:  make(map[string]bool),
		capacitorNames: make(map[string]bool),
		inductorNames:  make(map[string]bool),
		vsNames:        make(map[string]bool),
		isourceNames:   make(map[string]bool),
		diodeNames:     make(map[string]bool),
		endpointsOf:    make(map[element.Element]endpoints),
		matrixIndex:    make(map[int]int),
	}
}

// AddNode creates a new, non-ground node unconditionally.
func (c *Circuit) AddNode(name string) *Node {
	n := &Node{ID: len(c.nodes), Name: name}
	c.nodes = append(c.nodes, n)
	c.nodeByName[name] = n
	return n
}

// FindOrCreateNode is the only implicit graph mutation an element
// insertion performs: an endpoint name that doesn't resolve auto-creates
// the node.
func (c *Circuit) FindOrCreateNode(name string) *Node {
	if n, ok := c.nodeByName[name]; ok {
		return n
	}
	return c.AddNode(name)
}

func (c *Circuit) MarkGround(name string) {
	c.FindOrCreateNode(name).Ground = true
}

// Node looks a node up by name, or nil if it has never been referenced.
func (c *Circuit) Node(name string) *Node {
	return c.nodeByName[name]
}

// Nodes returns every node in insertion order, ground included.
func (c *Circuit) Nodes() []*Node {
	return c.nodes
}

// MatrixIndex returns the MNA row for a non-ground node, or 0 (the ground
// sentinel) if the node is ground or not yet indexed.
func (c *Circuit) MatrixIndex(n *Node) int {
	if n == nil || n.Ground {
		return 0
	}
	return c.matrixIndex[n.ID]
}

// ExtraVariableCount is dc_vs_count + ac_vs_count + inductor_count +
// active_diode_count.
func (c *Circuit) ExtraVariableCount() int {
	active := 0
	for _, d := range c.diodes {
		if d.State != element.Off {
			active++
		}
	}
	return len(c.vsDC) + len(c.vsAC) + len(c.inductors) + active
}

// NonGroundNodeCount is n, the number of MNA node rows.
func (c *Circuit) NonGroundNodeCount() int { return c.n }

// Prepare (re)computes the static matrix-index assignment (non-ground
// nodes in insertion order, then DC voltage sources, then AC voltage
// sources, then inductors) and pushes the resulting indices onto every
// element's Base. Diode branch indices are dynamic and assigned
// separately by AssignDiodeBranchIndices, once per diode-iteration pass.
// Safe to call repeatedly; the graph's structural shape never changes
// mid-run.
func (c *Circuit) Prepare() {
	c.matrixIndex = make(map[int]int)
	c.nodeAtIndex = make(map[int]*Node)
	row := 1
	for _, node := range c.nodes {
		if node.Ground {
			continue
		}
		c.matrixIndex[node.ID] = row
		c.nodeAtIndex[row] = node
		row++
	}
	c.n = row - 1

	for _, v := range c.vsDC {
		v.SetBranchIndex(row)
		row++
	}
	for _, v := range c.vsAC {
		v.SetBranchIndex(row)
		row++
	}
	for _, l := range c.inductors {
		l.SetBranchIndex(row)
		row++
	}

	for _, e := range c.allElements {
		ep := c.endpointsOf[e]
		a := c.matrixIndexByID(ep.a)
		b := c.matrixIndexByID(ep.b)
		e.(nodeSetter).SetNodes(a, b)
	}
}

func (c *Circuit) matrixIndexByID(id int) int {
	return c.MatrixIndex(c.nodes[id])
}

// NodeByMatrixIndex is the inverse of MatrixIndex: given a 1-based MNA
// row, returns the node occupying it, or nil for the ground sentinel (0)
// or a row beyond the node block (a branch-current row).
func (c *Circuit) NodeByMatrixIndex(idx int) *Node {
	return c.nodeAtIndex[idx]
}

// AssignDiodeBranchIndices resets OFF diodes to branch index -1 and gives
// every ON diode a unique row following the static block computed by
// Prepare. Called once per diode-iteration pass, after Prepare.
func (c *Circuit) AssignDiodeBranchIndices() {
	row := c.n + len(c.vsDC) + len(c.vsAC) + len(c.inductors) + 1
	for _, d := range c.diodes {
		if d.State == element.Off {
			d.SetBranchIndex(-1)
			continue
		}
		d.SetBranchIndex(row)
		row++
	}
}

// Size is the full MNA system dimension for the current diode states.
func (c *Circuit) Size() int {
	return c.n + c.ExtraVariableCount()
}

func (c *Circuit) resolveNodes(n1, n2 string) (int, int) {
	a := c.FindOrCreateNode(n1)
	b := c.FindOrCreateNode(n2)
	return a.ID, b.ID
}

func (c *Circuit) track(e element.Element, aID, bID int) {
	c.allElements = append(c.allElements, e)
	c.endpointsOf[e] = endpoints{a: aID, b: bID}
}

func (c *Circuit) AddResistor(name, n1, n2 string, r float64) (*element.Resistor, error) {
	if c.resistorNames[name] {
		return nil, fmt.Errorf("%w: resistor %q", mnaerror.ErrDuplicateName, name)
	}
	res, err := element.NewResistor(name, r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", mnaerror.ErrInvalidParameter, err)
	}
	aID, bID := c.resolveNodes(n1, n2)
	c.resistorNames[name] = true
	c.resistors = append(c.resistors, res)
	c.track(res, aID, bID)
	return res, nil
}

func (c *Circuit) AddCapacitor(name, n1, n2 string, capF float64) (*element.Capacitor, error) {
	if c.capacitorNames[name] {
		return nil, fmt.Errorf("%w: capacitor %q", mnaerror.ErrDuplicateName, name)
	}
	capElem, err := element.NewCapacitor(name, capF)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", mnaerror.ErrInvalidParameter, err)
	}
	aID, bID := c.resolveNodes(n1, n2)
	c.capacitorNames[name] = true
	c.capacitors = append(c.capacitors, capElem)
	c.track(capElem, aID, bID)
	return capElem, nil
}

func (c *Circuit) AddInductor(name, n1, n2 string, l float64) (*element.Inductor, error) {
	if c.inductorNames[name] {
		return nil, fmt.Errorf("%w: inductor %q", mnaerror.ErrDuplicateName, name)
	}
	ind, err := element.NewInductor(name, l)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", mnaerror.ErrInvalidParameter, err)
	}
	aID, bID := c.resolveNodes(n1, n2)
	c.inductorNames[name] = true
	c.inductors = append(c.inductors, ind)
	c.track(ind, aID, bID)
	return ind, nil
}

func (c *Circuit) AddVoltageSourceDC(name, n1, n2 string, v float64) (*element.VoltageSourceDC, error) {
	if c.vsNames[name] {
		return nil, fmt.Errorf("%w: voltage source %q", mnaerror.ErrDuplicateName, name)
	}
	src := element.NewVoltageSourceDC(name, v)
	aID, bID := c.resolveNodes(n1, n2)
	c.vsNames[name] = true
	c.vsDC = append(c.vsDC, src)
	c.track(src, aID, bID)
	return src, nil
}

func (c *Circuit) AddVoltageSourceAC(name, n1, n2 string, magnitude, freqHz, phaseDeg float64) (*element.VoltageSourceAC, error) {
	if c.vsNames[name] {
		return nil, fmt.Errorf("%w: voltage source %q", mnaerror.ErrDuplicateName, name)
	}
	src := element.NewVoltageSourceAC(name, magnitude, freqHz, phaseDeg)
	aID, bID := c.resolveNodes(n1, n2)
	c.vsNames[name] = true
	c.vsAC = append(c.vsAC, src)
	c.track(src, aID, bID)
	return src, nil
}

func (c *Circuit) AddCurrentSource(name, n1, n2 string, i float64) (*element.CurrentSource, error) {
	if c.isourceNames[name] {
		return nil, fmt.Errorf("%w: current source %q", mnaerror.ErrDuplicateName, name)
	}
	src := element.NewCurrentSource(name, i)
	aID, bID := c.resolveNodes(n1, n2)
	c.isourceNames[name] = true
	c.isources = append(c.isources, src)
	c.track(src, aID, bID)
	return src, nil
}

func (c *Circuit) AddDiode(name, n1, n2 string, vf float64) (*element.Diode, error) {
	if c.diodeNames[name] {
		return nil, fmt.Errorf("%w: diode %q", mnaerror.ErrDuplicateName, name)
	}
	d := element.NewDiode(name, vf)
	aID, bID := c.resolveNodes(n1, n2)
	c.diodeNames[name] = true
	c.diodes = append(c.diodes, d)
	c.track(d, aID, bID)
	return d, nil
}

func (c *Circuit) AddZenerDiode(name, n1, n2 string, vf, vz float64) (*element.Diode, error) {
	if c.diodeNames[name] {
		return nil, fmt.Errorf("%w: diode %q", mnaerror.ErrDuplicateName, name)
	}
	d := element.NewZenerDiode(name, vf, vz)
	aID, bID := c.resolveNodes(n1, n2)
	c.diodeNames[name] = true
	c.diodes = append(c.diodes, d)
	c.track(d, aID, bID)
	return d, nil
}

// Diodes exposes the diode slice for the driver's iteration loop.
func (c *Circuit) Diodes() []*element.Diode { return c.diodes }

// Inductors exposes the inductor slice for transient companion-state
// advancement.
func (c *Circuit) Inductors() []*element.Inductor { return c.inductors }

// Capacitors exposes the capacitor slice for transient companion-state
// advancement.
func (c *Circuit) Capacitors() []*element.Capacitor { return c.capacitors }

// Resistors exposes the resistor slice, for current-history computation.
func (c *Circuit) Resistors() []*element.Resistor { return c.resistors }

// VoltageSourcesDC exposes the DC voltage sources, for current-history
// computation.
func (c *Circuit) VoltageSourcesDC() []*element.VoltageSourceDC { return c.vsDC }

// VoltageSourceDC looks a DC voltage source up by name, for the DC sweep
// driver.
func (c *Circuit) VoltageSourceDC(name string) *element.VoltageSourceDC {
	for _, v := range c.vsDC {
		if v.Name() == name {
			return v
		}
	}
	return nil
}

// VoltageSourcesAC exposes the AC voltage sources, for sweep drivers that
// need to locate one by name and temporarily mutate its phase.
func (c *Circuit) VoltageSourcesAC() []*element.VoltageSourceAC { return c.vsAC }

// VoltageSourceAC looks an AC voltage source up by name.
func (c *Circuit) VoltageSourceAC(name string) *element.VoltageSourceAC {
	for _, v := range c.vsAC {
		if v.Name() == name {
			return v
		}
	}
	return nil
}

// Stamp assembles the full (A, b) system into sys for the given context.
// sys must already be sized to c.Size() (real or complex, matching the
// context's kind). The assembler clears sys to zero first.
func (c *Circuit) Stamp(sys *matrix.System, ctx element.Context) error {
	sys.Clear()
	for _, e := range c.allElements {
		if err := e.Stamp(sys, ctx); err != nil {
			return fmt.Errorf("stamping %s %s: %w", e.Kind(), e.Name(), err)
		}
	}
	return nil
}
