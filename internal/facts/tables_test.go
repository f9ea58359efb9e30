package facts

import (
	"testing"

	"github.com/robert-at-pretension-io/vqm-netlist/internal/netlist"
)

func buildExample(t *testing.T) []*netlist.Module {
	t.Helper()
	b := netlist.NewBuilder()

	a := b.DeclareNet("a", 3, 0, netlist.KindWire)
	b.DeclareNet("b", 2, 0, netlist.KindInput)
	c := b.DeclareNet("c", 0, 0, netlist.KindWire)
	bid, cid := netlist.NewIdent("b"), netlist.NewIdent("c")
	b.ConcatAssign([]*netlist.Ident{&bid, &cid}, a, false)
	b.DeclareNode("buf", "u1", []*netlist.PortAssociation{
		b.NewPortAssociation("in", netlist.WholeNet(), c, netlist.BitAt(0)),
	})
	b.AttachIntParam(netlist.NewIdent("u1"), "width", 1)
	b.FinalizeModule("zeta")

	b.DeclareNet("w", 0, 0, netlist.KindOutput)
	b.FinalizeModule("alpha")

	return b.Modules()
}

func TestBuildTables(t *testing.T) {
	tables := BuildTables(buildExample(t))

	if len(tables.Modules) != 2 {
		t.Fatalf("module rows = %+v", tables.Modules)
	}
	// Modules sort by name even though zeta was finalized first.
	if tables.Modules[0].Name != "alpha" || tables.Modules[1].Name != "zeta" {
		t.Fatalf("module order = %+v", tables.Modules)
	}
	if tables.Modules[1].Nets != 3 || tables.Modules[1].Assignments != 4 || tables.Modules[1].Nodes != 1 {
		t.Fatalf("zeta counts = %+v", tables.Modules[1])
	}

	if len(tables.Assignments) != 4 {
		t.Fatalf("assignment rows = %+v", tables.Assignments)
	}
	first := tables.Assignments[0]
	if first.Module != "zeta" || first.Seq != 0 || first.Source != "b" ||
		first.SourceBit != netlist.BitAt(2) || first.Target != "a" ||
		first.TargetBit != netlist.BitAt(3) {
		t.Fatalf("first assignment row = %+v", first)
	}
	last := tables.Assignments[3]
	if last.Source != "c" || !last.SourceBit.Whole || last.TargetBit != netlist.BitAt(0) {
		t.Fatalf("last assignment row = %+v", last)
	}

	if len(tables.Params) != 1 || tables.Params[0].Kind != "int" || tables.Params[0].Int != 1 {
		t.Fatalf("param rows = %+v", tables.Params)
	}
	if len(tables.Ports) != 1 || tables.Ports[0].Node != "u1" || tables.Ports[0].Net != "c" {
		t.Fatalf("port rows = %+v", tables.Ports)
	}

	kinds := map[string]string{}
	for _, n := range tables.Nets {
		kinds[n.Name] = n.Kind
	}
	if kinds["b"] != "input" || kinds["w"] != "output" || kinds["a"] != "wire" {
		t.Fatalf("net kinds = %+v", kinds)
	}
}

func TestFilterByModules(t *testing.T) {
	tables := BuildTables(buildExample(t))

	filtered := FilterByModules(tables, map[string]bool{"zeta": true})
	if len(filtered.Modules) != 1 || filtered.Modules[0].Name != "zeta" {
		t.Fatalf("filtered modules = %+v", filtered.Modules)
	}
	if len(filtered.Nets) != 3 || len(filtered.Assignments) != 4 {
		t.Fatalf("filtered rows: nets=%d assignments=%d", len(filtered.Nets), len(filtered.Assignments))
	}

	empty := FilterByModules(tables, map[string]bool{})
	if len(empty.Modules) != 0 || len(empty.Nets) != 0 {
		t.Fatalf("empty filter returned rows: %+v", empty)
	}
}

func TestComputeDelta(t *testing.T) {
	prev := BuildTables(buildExample(t))
	next := BuildTables(buildExample(t))
	next.Nets = append(next.Nets, NetRow{Module: "zeta", Name: "extra", Kind: "wire"})
	next.Modules = next.Modules[1:] // drop alpha

	delta := ComputeDelta(prev, next)
	if len(delta.Added.Nets) != 1 || delta.Added.Nets[0].Name != "extra" {
		t.Fatalf("added = %+v", delta.Added.Nets)
	}
	if len(delta.Removed.Modules) != 1 || delta.Removed.Modules[0].Name != "alpha" {
		t.Fatalf("removed = %+v", delta.Removed.Modules)
	}
	if len(delta.Added.Assignments) != 0 || len(delta.Removed.Assignments) != 0 {
		t.Fatalf("assignment delta should be empty: %+v", delta)
	}
}
