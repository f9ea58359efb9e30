package netlist

import "sort"

// Assignment is a single resolved drive of one target selection. Source is
// nil for a constant drive, in which case Constant holds the driven value.
// References to nets are non-owning: the nets live in the same Module.
type Assignment struct {
	Source    *Net
	SourceBit Bit
	Target    *Net
	TargetBit Bit

	// Tri is non-nil when the drive is gated by a control net.
	Tri *TriControl

	// Constant is the driven value when Source is nil. When a source net
	// is present the field carries NoConstant.
	Constant int

	Invert bool
}

// NoConstant marks the Constant field of an assignment that is driven by a
// source net.
const NoConstant = -1

// TriControl names the net (and bit) gating a tristated assignment.
type TriControl struct {
	Net *Net
	Bit Bit
}

// ParamKind discriminates the value held by a Param.
type ParamKind int

const (
	ParamInt ParamKind = iota
	ParamString
)

// Param is a named parameter attached to a node instance. Exactly one of
// Int and String is meaningful, selected by Kind.
type Param struct {
	Name   string
	Kind   ParamKind
	Int    int
	String string
}

// PortAssociation binds one bit of a named instance port to one bit of a
// net. A Whole PortBit means the association has not been split per bit.
type PortAssociation struct {
	PortName string
	PortBit  Bit
	Net      *Net
	NetBit   Bit
}

// Node is an instance of a primitive or sub-module type within a module.
type Node struct {
	TypeName string
	Name     string
	Params   []*Param
	Ports    []*PortAssociation
}

// Module is the finished unit of output: a named container owning its nets,
// assignments, and node instances in declaration order (nets in name order).
type Module struct {
	Name        string
	Nets        []*Net
	Assignments []*Assignment
	Nodes       []*Node
}

// Net returns the module's net with the given name, or nil. Nets are kept
// sorted by name, so the lookup is a binary search.
func (m *Module) Net(name string) *Net {
	i := sort.Search(len(m.Nets), func(i int) bool { return m.Nets[i].Name >= name })
	if i < len(m.Nets) && m.Nets[i].Name == name {
		return m.Nets[i]
	}
	return nil
}

// Node returns the module's node instance with the given name, or nil.
func (m *Module) Node(name string) *Node {
	for _, n := range m.Nodes {
		if n.Name == name {
			return n
		}
	}
	return nil
}
