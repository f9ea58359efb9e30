package netlist

import "github.com/robert-at-pretension-io/vqm-netlist/internal/seq"

// NetIndex keeps the nets of the module under construction sorted by name
// (lexicographic byte order) so that lookups and insertions are O(log n).
type NetIndex struct {
	nets seq.Array[*Net]
}

// Len returns the number of nets in the index.
func (x *NetIndex) Len() int { return x.nets.Len() }

// At returns the net at position i in name order.
func (x *NetIndex) At(i int) *Net { return x.nets.At(i) }

// Slice returns the sorted backing slice. Read-only for callers that do not
// own the index.
func (x *NetIndex) Slice() []*Net { return x.nets.Slice() }

// locateInsertionPoint returns the index of the net with the given name if
// present, or the position at which a net with that name belongs.
func (x *NetIndex) locateInsertionPoint(name string) int {
	right := x.nets.Len() - 1
	if right < 0 {
		return 0
	}
	if name > x.nets.At(right).Name {
		return x.nets.Len()
	}
	if name < x.nets.At(0).Name {
		return 0
	}

	left, index := 0, 0
	for left <= right {
		index = (left + right) / 2
		switch cur := x.nets.At(index).Name; {
		case name > cur:
			left = index + 1
		case name < cur:
			right = index - 1
		default:
			return index
		}
	}
	// No exact match: the search landed next to the slot. If the element
	// landed on sorts before name, the insertion point is one past it.
	if x.nets.At(index).Name < name {
		index++
	}
	return index
}

// InsertOrGet adds n to the index, keeping name order. If a net with the
// same name already exists the new net is discarded and the original is
// returned with inserted=false (first declaration wins; later references
// bind to it transparently).
func (x *NetIndex) InsertOrGet(n *Net) (net *Net, inserted bool) {
	pos := x.locateInsertionPoint(n.Name)
	if pos < x.nets.Len() && x.nets.At(pos).Name == n.Name {
		return x.nets.At(pos), false
	}
	x.nets.InsertAt(n, pos)
	return n, true
}

// Lookup returns the net with the given name, or nil.
func (x *NetIndex) Lookup(name string) *Net {
	pos := x.locateInsertionPoint(name)
	if pos < x.nets.Len() && x.nets.At(pos).Name == name {
		return x.nets.At(pos)
	}
	return nil
}
