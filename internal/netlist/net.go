package netlist

import "fmt"

// NetKind classifies a declared net.
type NetKind int

const (
	KindWire NetKind = iota
	KindInput
	KindOutput
)

func (k NetKind) String() string {
	switch k {
	case KindWire:
		return "wire"
	case KindInput:
		return "input"
	case KindOutput:
		return "output"
	}
	return fmt.Sprintf("NetKind(%d)", int(k))
}

// Net is a named wire, input port, or output port of a module. Left and
// Right are the declared bit-range bounds in either order; Left == Right
// means a scalar. Indexed records whether bit-indexed addressing of the net
// is meaningful; it is always false for scalars.
type Net struct {
	Name    string
	Left    int
	Right   int
	Kind    NetKind
	Indexed bool
}

// Scalar reports whether the net is a single bit.
func (n *Net) Scalar() bool { return n.Left == n.Right }

// Min returns the lower bound of the declared range.
func (n *Net) Min() int {
	if n.Right < n.Left {
		return n.Right
	}
	return n.Left
}

// Max returns the upper bound of the declared range.
func (n *Net) Max() int {
	if n.Right > n.Left {
		return n.Right
	}
	return n.Left
}

// Width returns the number of bits in the net.
func (n *Net) Width() int { return n.Max() - n.Min() + 1 }

// step returns the direction of travel from Left toward Right.
func (n *Net) step() int {
	if n.Left > n.Right {
		return -1
	}
	return 1
}

// contains reports whether the selection is legal for this net: the whole
// net always is, a concrete bit must fall inside the declared range.
func (n *Net) contains(b Bit) bool {
	return b.Whole || (b.Pos >= n.Min() && b.Pos <= n.Max())
}

func (n *Net) String() string {
	if n.Scalar() {
		return n.Name
	}
	return fmt.Sprintf("%s[%d:%d]", n.Name, n.Left, n.Right)
}

// Bit selects either the whole of a net or a single bit position within it.
// Pos is meaningful only when Whole is false.
type Bit struct {
	Whole bool `json:"whole,omitempty"`
	Pos   int  `json:"pos"`
}

// WholeNet selects a net accessed as a single unit.
func WholeNet() Bit { return Bit{Whole: true} }

// BitAt selects the single bit at position pos.
func BitAt(pos int) Bit { return Bit{Pos: pos} }

func (b Bit) String() string {
	if b.Whole {
		return "*"
	}
	return fmt.Sprintf("%d", b.Pos)
}
