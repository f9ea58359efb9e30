package netlist

// Ident is a textual net reference as the grammar hands it over: a name plus
// an optional bit index. Inside a concatenation group a nil *Ident is the
// explicit "no connection" placeholder.
type Ident struct {
	Name    string
	Indexed bool
	Index   int
}

// NewIdent references a whole net by name.
func NewIdent(name string) Ident { return Ident{Name: name} }

// NewIndexedIdent references a single bit of a net by name.
func NewIndexedIdent(name string, index int) Ident {
	return Ident{Name: name, Indexed: true, Index: index}
}

// flattenConnections resolves a concatenation group into a sequence with one
// entry per bit, preserving textual order. Stub entries (nil, or names that
// resolve to no known net) stay in the sequence as nils so that callers
// walking a target cursor can step over them. A whole multi-bit net expands
// into indexed identifiers in its natural Left-to-Right order; indexed
// entries and scalars pass through.
func (b *Builder) flattenConnections(group []*Ident) []*Ident {
	out := make([]*Ident, 0, len(group))
	for _, src := range group {
		if src == nil {
			out = append(out, nil)
			continue
		}
		net := b.nets.Lookup(src.Name)
		if net == nil {
			// An unknown name is a dummy wire; treat it as a stub.
			out = append(out, nil)
			continue
		}
		if !net.Scalar() && !src.Indexed {
			for pos, step := net.Left, net.step(); pos != net.Right+step; pos += step {
				id := NewIndexedIdent(net.Name, pos)
				out = append(out, &id)
			}
			continue
		}
		out = append(out, src)
	}
	return out
}

// FlattenGroup resolves a concatenation group into its ordered single-bit
// identifiers. Stubs and unresolvable names contribute nothing.
func (b *Builder) FlattenGroup(group []*Ident) []*Ident {
	flat := b.flattenConnections(group)
	out := flat[:0]
	for _, id := range flat {
		if id != nil {
			out = append(out, id)
		}
	}
	return out
}

// BindToPort connects a concatenation group to the named port, one
// association per flattened bit. Element i of the flattened sequence binds
// to port bit len-1-i, so the first textual element lands on the most
// significant port bit.
func (b *Builder) BindToPort(group []*Ident, portName string) []*PortAssociation {
	flat := b.FlattenGroup(group)
	out := make([]*PortAssociation, 0, len(flat))
	for i, id := range flat {
		assocs := b.AssociatePort(*id, portName, BitAt(len(flat)-1-i))
		out = append(out, assocs...)
	}
	return out
}

// ConcatAssign drives the target net from a concatenation group, one
// wire-to-wire assignment per resolved bit. The target cursor starts at the
// target's declared Left bound and steps toward Right; a stub entry leaves
// its target bit undriven and moves on.
func (b *Builder) ConcatAssign(group []*Ident, target *Net, invert bool) {
	if target == nil {
		panic("netlist: concatenation assignment with nil target")
	}
	cursor := target.Left
	step := target.step()
	for _, id := range b.flattenConnections(group) {
		if id != nil {
			net := b.nets.Lookup(id.Name)
			srcBit := WholeNet()
			if id.Indexed {
				srcBit = BitAt(id.Index)
			}
			b.DeclareAssignment(net, srcBit, target, BitAt(cursor), nil, NoConstant, invert)
		}
		cursor += step
	}
}
