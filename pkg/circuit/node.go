package circuit

// Node is identified by a unique name and a stable integer id assigned on
// creation. A node marked Ground is excluded from the MNA unknown vector;
// its voltage is definitionally zero. History lives in pkg/history, keyed
// by name, not on the node itself.
type Node struct {
	ID     int
	Name   string
	Ground bool
}
