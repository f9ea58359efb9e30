package netlist

import (
	"fmt"

	"github.com/robert-at-pretension-io/vqm-netlist/internal/seq"
)

// Warning is a recoverable problem noticed during construction, carrying the
// source line the driving grammar was on when it occurred.
type Warning struct {
	Line    int
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s", w.Line, w.Message)
}

// Builder accumulates one module at a time from the semantic actions of an
// external grammar and collects finished modules for downstream queries.
//
// The caller contract is the grammar's: nets are declared before anything
// references them by name, a node's ports are supplied at declaration time,
// and parameters are attached only after their node exists. A broken
// precondition is a bug in the (trusted) caller, not an environmental
// failure, so the builder panics on it rather than emitting a corrupt
// netlist. Duplicate net declarations are the one recoverable case: the
// first declaration wins and a Warning is recorded.
//
// A Builder is a single parse session. It is not safe for concurrent use.
type Builder struct {
	nets    NetIndex
	assigns seq.Array[*Assignment]
	nodes   seq.Array[*Node]

	// mru caches the most recently declared or parameter-resolved node.
	// Parameter definitions almost always follow their instance directly,
	// so the cache usually saves the linear node scan. Purely a latency
	// device: a miss falls back to the scan with identical results.
	mru *Node

	line     int
	modules  []*Module
	warnings []Warning

	// WarnFunc, when set, receives each warning as it is recorded.
	WarnFunc func(Warning)
}

// NewBuilder returns an empty construction session.
func NewBuilder() *Builder { return &Builder{} }

// SetLine records the source line the grammar is currently processing; it is
// used to annotate warnings.
func (b *Builder) SetLine(line int) { b.line = line }

// Warnings returns the warnings recorded since the last Reset.
func (b *Builder) Warnings() []Warning { return b.warnings }

func (b *Builder) warnf(format string, args ...any) {
	w := Warning{Line: b.line, Message: fmt.Sprintf(format, args...)}
	b.warnings = append(b.warnings, w)
	if b.WarnFunc != nil {
		b.WarnFunc(w)
	}
}

// DeclareNet declares a net with the given bit-range bounds and kind and
// returns it. Scalars are never indexed regardless of the declaration. A
// redeclaration under an existing name keeps the original net, records a
// warning, and returns the original so later references alias it.
func (b *Builder) DeclareNet(name string, left, right int, kind NetKind) *Net {
	n := &Net{
		Name:    name,
		Left:    left,
		Right:   right,
		Kind:    kind,
		Indexed: left != right,
	}
	existing, inserted := b.nets.InsertOrGet(n)
	if !inserted {
		b.warnf("duplicate net (%s) declaration; ignoring duplicate", name)
	}
	return existing
}

// DeclareNetGroup declares one net per identifier in the group, all sharing
// the same range and kind, then forces the indexed flag from the declaration
// site (scalars stay non-indexed).
func (b *Builder) DeclareNetGroup(idents []Ident, left, right int, kind NetKind, indexed bool) {
	for _, id := range idents {
		n := b.DeclareNet(id.Name, left, right, kind)
		n.Indexed = indexed && !n.Scalar()
	}
}

// LookupNet returns the named net of the module under construction, or nil.
func (b *Builder) LookupNet(name string) *Net { return b.nets.Lookup(name) }

// DeclareAssignment records the assignment of a source selection (or a
// constant when source is nil) to a target selection. A target that resolves
// to a single concrete bit yields exactly one Assignment. A genuine
// multi-bit bus driven as a whole is expanded into per-bit assignments,
// pairing target bits with source bits in ascending numeric order; the
// source must be at least as wide as the target.
func (b *Builder) DeclareAssignment(source *Net, sourceBit Bit, target *Net, targetBit Bit, tri *TriControl, constant int, invert bool) {
	if target == nil {
		panic("netlist: assignment with nil target")
	}
	if source != nil {
		if source.Scalar() {
			// A single-wire source is always assigned whole.
			sourceBit = WholeNet()
		}
		if !source.contains(sourceBit) {
			panic(fmt.Sprintf("netlist: source bit %s outside %s", sourceBit, source))
		}
	}
	if !target.contains(targetBit) {
		panic(fmt.Sprintf("netlist: target bit %s outside %s", targetBit, target))
	}
	if tri != nil {
		if tri.Net == nil {
			panic("netlist: tristate assignment without control net")
		}
		if !tri.Net.contains(tri.Bit) {
			panic(fmt.Sprintf("netlist: tri-control bit %s outside %s", tri.Bit, tri.Net))
		}
	}
	if target.Scalar() {
		// A single-wire target is always assigned whole.
		targetBit = WholeNet()
	}

	if !targetBit.Whole || !target.Indexed {
		b.assigns.Append(&Assignment{
			Source:    source,
			SourceBit: sourceBit,
			Target:    target,
			TargetBit: targetBit,
			Tri:       tri,
			Constant:  constant,
			Invert:    invert,
		})
		return
	}

	// Whole multi-bit bus target: split into wire-to-wire assignments so
	// downstream consumers only ever see single-bit drives. Source bits
	// pair up ascending regardless of either net's declared orientation.
	srcPos := 0
	if source != nil {
		if target.Width() > source.Width() {
			panic(fmt.Sprintf("netlist: cannot assign %s to wider target %s", source, target))
		}
		srcPos = source.Min()
	}
	for pos := target.Min(); pos <= target.Max(); pos++ {
		a := &Assignment{
			Source:    source,
			Target:    target,
			TargetBit: BitAt(pos),
			Tri:       tri,
			Constant:  constant,
			Invert:    invert,
		}
		if source != nil {
			a.SourceBit = BitAt(srcPos)
			srcPos++
		}
		b.assigns.Append(a)
	}
}

// NewPortAssociation builds a port-to-net binding after checking that the
// net selection is legal.
func (b *Builder) NewPortAssociation(portName string, portBit Bit, net *Net, netBit Bit) *PortAssociation {
	if portName == "" {
		panic("netlist: port association without port name")
	}
	if net == nil {
		panic(fmt.Sprintf("netlist: port %s associated with nil net", portName))
	}
	if !net.contains(netBit) {
		panic(fmt.Sprintf("netlist: net bit %s outside %s for port %s", netBit, net, portName))
	}
	return &PortAssociation{PortName: portName, PortBit: portBit, Net: net, NetBit: netBit}
}

// AssociatePort binds a textual identifier to a named port. An indexed
// identifier or a scalar net yields a single association. A whole multi-bit
// net fans out into one association per bit, port bits counted down from
// width-1 (the given portBit applies only to the single-association cases).
// Returns nil when the identifier names no known net.
func (b *Builder) AssociatePort(ident Ident, portName string, portBit Bit) []*PortAssociation {
	net := b.nets.Lookup(ident.Name)
	if net == nil {
		return nil
	}
	if ident.Indexed {
		return []*PortAssociation{b.NewPortAssociation(portName, portBit, net, BitAt(ident.Index))}
	}
	if net.Scalar() {
		return []*PortAssociation{b.NewPortAssociation(portName, portBit, net, BitAt(net.Left))}
	}
	out := make([]*PortAssociation, 0, net.Width())
	port := net.Width() - 1
	for pos, step := net.Left, net.step(); pos != net.Right+step; pos += step {
		out = append(out, b.NewPortAssociation(portName, BitAt(port), net, BitAt(pos)))
		port--
	}
	return out
}

// DeclareNode records an instance of typeName under instanceName with the
// given port associations. Any association that connects a whole multi-bit
// bus is expanded in place into per-bit associations: port bits counted down
// from width-1 to 0, net bits stepped from the net's declared Left toward
// Right. The expanded records are spliced in directly after the original and
// the scan continues past them.
func (b *Builder) DeclareNode(typeName, instanceName string, ports []*PortAssociation) *Node {
	if ports == nil {
		panic(fmt.Sprintf("netlist: node %s declared without port list", instanceName))
	}
	pa := seq.FromSlice(ports)
	for i := 0; i < pa.Len(); i++ {
		assoc := pa.At(i)
		net := assoc.Net
		if net == nil {
			panic(fmt.Sprintf("netlist: node %s port %s has no net", instanceName, assoc.PortName))
		}
		if net.Scalar() || !assoc.PortBit.Whole || !assoc.NetBit.Whole {
			continue
		}
		width := net.Width()
		step := net.step()
		assoc.PortBit = BitAt(width - 1)
		assoc.NetBit = BitAt(net.Left)
		pos := net.Left + step
		for k := 1; k < width; k++ {
			pa.InsertAt(&PortAssociation{
				PortName: assoc.PortName,
				PortBit:  BitAt(width - 1 - k),
				Net:      net,
				NetBit:   BitAt(pos),
			}, i+k)
			pos += step
		}
		i += width - 1
	}

	node := &Node{
		TypeName: typeName,
		Name:     instanceName,
		Ports:    pa.Slice(),
	}
	b.nodes.Append(node)
	b.mru = node
	return node
}

// AttachIntParam attaches an integer-valued parameter to the node the
// identifier resolves to.
func (b *Builder) AttachIntParam(ident Ident, name string, value int) {
	node := b.resolveNode(ident)
	node.Params = append(node.Params, &Param{Name: name, Kind: ParamInt, Int: value})
}

// AttachStringParam attaches a string-valued parameter to the node the
// identifier resolves to.
func (b *Builder) AttachStringParam(ident Ident, name string, value string) {
	node := b.resolveNode(ident)
	node.Params = append(node.Params, &Param{Name: name, Kind: ParamString, String: value})
}

// resolveNode maps an identifier to the node it names. An indexed identifier
// resolves as "name[index]". The MRU cache is consulted first; a miss falls
// back to a linear scan over the declared nodes and refreshes the cache.
func (b *Builder) resolveNode(ident Ident) *Node {
	name := ident.Name
	if ident.Indexed {
		name = fmt.Sprintf("%s[%d]", ident.Name, ident.Index)
	}
	if b.mru != nil && b.mru.Name == name {
		return b.mru
	}
	for i := 0; i < b.nodes.Len(); i++ {
		if node := b.nodes.At(i); node.Name == name {
			b.mru = node
			return node
		}
	}
	panic(fmt.Sprintf("netlist: parameter attached to unknown node %q", name))
}

// FinalizeModule wraps everything declared since the previous finalize into
// a Module, appends it to the session's finished-module list, and clears the
// transient state so the next module starts clean.
func (b *Builder) FinalizeModule(name string) *Module {
	m := &Module{
		Name:        name,
		Nets:        b.nets.Slice(),
		Assignments: b.assigns.Slice(),
		Nodes:       b.nodes.Slice(),
	}
	b.modules = append(b.modules, m)

	b.nets = NetIndex{}
	b.assigns = seq.Array[*Assignment]{}
	b.nodes = seq.Array[*Node]{}
	b.mru = nil
	return m
}

// Modules returns the finished modules in finalize order.
func (b *Builder) Modules() []*Module { return b.modules }

// Module returns the finished module with the given name, or nil.
func (b *Builder) Module(name string) *Module {
	for _, m := range b.modules {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Reset returns the session to its initial condition: the finished-module
// list, all transient state, and recorded warnings are dropped.
func (b *Builder) Reset() {
	b.nets = NetIndex{}
	b.assigns = seq.Array[*Assignment]{}
	b.nodes = seq.Array[*Node]{}
	b.mru = nil
	b.line = 0
	b.modules = nil
	b.warnings = nil
}
