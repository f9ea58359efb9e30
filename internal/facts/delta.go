package facts

// Delta captures added and removed rows between two table snapshots, e.g.
// between two parse sessions over an edited design.
type Delta struct {
	Added   Tables `json:"added"`
	Removed Tables `json:"removed"`
}

// ComputeDelta computes row-level additions and removals between snapshots.
func ComputeDelta(prev, next Tables) Delta {
	return Delta{
		Added:   diffTables(prev, next),
		Removed: diffTables(next, prev),
	}
}

// diffTables returns the rows present in `to` but not in `from`.
func diffTables(from, to Tables) Tables {
	out := emptyTables()
	out.Modules = diffRows(from.Modules, to.Modules)
	out.Nets = diffRows(from.Nets, to.Nets)
	out.Assignments = diffRows(from.Assignments, to.Assignments)
	out.Nodes = diffRows(from.Nodes, to.Nodes)
	out.Params = diffRows(from.Params, to.Params)
	out.Ports = diffRows(from.Ports, to.Ports)
	return out
}

func diffRows[T comparable](from, to []T) []T {
	seen := make(map[T]int, len(from))
	for _, row := range from {
		seen[row]++
	}
	out := []T{}
	for _, row := range to {
		if seen[row] > 0 {
			seen[row]--
			continue
		}
		out = append(out, row)
	}
	return out
}
