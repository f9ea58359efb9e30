package facts

import (
	"sort"

	"github.com/robert-at-pretension-io/vqm-netlist/internal/netlist"
)

// Tables is the flat relational view of a set of finished modules. Each
// slice is a relation with plain rows, ready for serialization or for
// loading into a query engine. Rows are comparable values so snapshots can
// be diffed.
type Tables struct {
	Modules     []ModuleRow `json:"modules"`
	Nets        []NetRow    `json:"nets"`
	Assignments []AssignRow `json:"assignments"`
	Nodes       []NodeRow   `json:"nodes"`
	Params      []ParamRow  `json:"params"`
	Ports       []PortRow   `json:"ports"`
}

type ModuleRow struct {
	Name        string `json:"name"`
	Nets        int    `json:"nets"`
	Assignments int    `json:"assignments"`
	Nodes       int    `json:"nodes"`
}

type NetRow struct {
	Module  string `json:"module"`
	Name    string `json:"name"`
	Left    int    `json:"left"`
	Right   int    `json:"right"`
	Kind    string `json:"kind"`
	Indexed bool   `json:"indexed"`
}

// AssignRow flattens one assignment. Source is empty for a constant drive,
// in which case Constant holds the driven value; otherwise Constant carries
// the unused-sentinel the builder stored. Seq is the declaration position
// within the module, which downstream consumers use for tie-breaking.
type AssignRow struct {
	Module    string      `json:"module"`
	Seq       int         `json:"seq"`
	Source    string      `json:"source,omitempty"`
	SourceBit netlist.Bit `json:"source_bit"`
	Target    string      `json:"target"`
	TargetBit netlist.Bit `json:"target_bit"`
	Tristate  bool        `json:"tristate,omitempty"`
	TriNet    string      `json:"tri_net,omitempty"`
	TriBit    netlist.Bit `json:"tri_bit"`
	Constant  int         `json:"constant"`
	Invert    bool        `json:"invert,omitempty"`
}

type NodeRow struct {
	Module string `json:"module"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Seq    int    `json:"seq"`
}

type ParamRow struct {
	Module string `json:"module"`
	Node   string `json:"node"`
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Int    int    `json:"int"`
	String string `json:"string,omitempty"`
}

type PortRow struct {
	Module  string      `json:"module"`
	Node    string      `json:"node"`
	Port    string      `json:"port"`
	PortBit netlist.Bit `json:"port_bit"`
	Net     string      `json:"net"`
	NetBit  netlist.Bit `json:"net_bit"`
	Seq     int         `json:"seq"`
}

// BuildTables flattens finished modules into the relational model. Modules
// are sorted by name; rows within a module keep declaration order.
func BuildTables(modules []*netlist.Module) Tables {
	t := emptyTables()

	sorted := make([]*netlist.Module, len(modules))
	copy(sorted, modules)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	for _, m := range sorted {
		t.Modules = append(t.Modules, ModuleRow{
			Name:        m.Name,
			Nets:        len(m.Nets),
			Assignments: len(m.Assignments),
			Nodes:       len(m.Nodes),
		})

		for _, n := range m.Nets {
			t.Nets = append(t.Nets, NetRow{
				Module:  m.Name,
				Name:    n.Name,
				Left:    n.Left,
				Right:   n.Right,
				Kind:    n.Kind.String(),
				Indexed: n.Indexed,
			})
		}

		for i, a := range m.Assignments {
			row := AssignRow{
				Module:    m.Name,
				Seq:       i,
				SourceBit: a.SourceBit,
				Target:    a.Target.Name,
				TargetBit: a.TargetBit,
				Constant:  a.Constant,
				Invert:    a.Invert,
			}
			if a.Source != nil {
				row.Source = a.Source.Name
			}
			if a.Tri != nil {
				row.Tristate = true
				row.TriNet = a.Tri.Net.Name
				row.TriBit = a.Tri.Bit
			}
			t.Assignments = append(t.Assignments, row)
		}

		for i, n := range m.Nodes {
			t.Nodes = append(t.Nodes, NodeRow{
				Module: m.Name,
				Name:   n.Name,
				Type:   n.TypeName,
				Seq:    i,
			})
			for _, p := range n.Params {
				row := ParamRow{
					Module: m.Name,
					Node:   n.Name,
					Name:   p.Name,
				}
				switch p.Kind {
				case netlist.ParamString:
					row.Kind = "string"
					row.String = p.String
				default:
					row.Kind = "int"
					row.Int = p.Int
				}
				t.Params = append(t.Params, row)
			}
			for j, p := range n.Ports {
				t.Ports = append(t.Ports, PortRow{
					Module:  m.Name,
					Node:    n.Name,
					Port:    p.PortName,
					PortBit: p.PortBit,
					Net:     p.Net.Name,
					NetBit:  p.NetBit,
					Seq:     j,
				})
			}
		}
	}

	return t
}

func emptyTables() Tables {
	return Tables{
		Modules:     []ModuleRow{},
		Nets:        []NetRow{},
		Assignments: []AssignRow{},
		Nodes:       []NodeRow{},
		Params:      []ParamRow{},
		Ports:       []PortRow{},
	}
}
