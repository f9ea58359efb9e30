package validator

import (
	"strings"
	"testing"

	"github.com/robert-at-pretension-io/vqm-netlist/internal/facts"
	"github.com/robert-at-pretension-io/vqm-netlist/internal/netlist"
)

func exampleTables(t *testing.T) facts.Tables {
	t.Helper()
	b := netlist.NewBuilder()
	a := b.DeclareNet("a", 3, 0, netlist.KindWire)
	b.DeclareNet("b", 2, 0, netlist.KindInput)
	bid := netlist.NewIdent("b")
	b.ConcatAssign([]*netlist.Ident{&bid}, a, false)
	w := b.DeclareNet("en", 0, 0, netlist.KindWire)
	b.DeclareNode("tbuf", "u1", []*netlist.PortAssociation{
		b.NewPortAssociation("oe", netlist.WholeNet(), w, netlist.BitAt(0)),
	})
	b.AttachStringParam(netlist.NewIdent("u1"), "mode", "weak")
	b.FinalizeModule("top")
	return facts.BuildTables(b.Modules())
}

func TestValidateAcceptsExportedTables(t *testing.T) {
	v, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := v.Validate(exampleTables(t)); err != nil {
		t.Fatalf("valid tables rejected: %v", err)
	}
}

func TestValidateRejectsBadKind(t *testing.T) {
	v, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tables := exampleTables(t)
	tables.Nets[0].Kind = "tri_state"
	err = v.Validate(tables)
	if err == nil {
		t.Fatal("tables with unknown net kind passed validation")
	}
	if !strings.Contains(err.Error(), "kind") {
		t.Fatalf("error does not mention the bad field: %v", err)
	}
}

func TestValidateRejectsUnknownField(t *testing.T) {
	v, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	raw := []byte(`{"modules":[],"nets":[],"assignments":[],"nodes":[],"params":[],"ports":[],"extra":1}`)
	if err := v.ValidateJSON(raw); err == nil {
		t.Fatal("unknown top-level field passed validation")
	}
}

func TestValidationErrorsListsProblems(t *testing.T) {
	v, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tables := exampleTables(t)
	if msgs := v.ValidationErrors(tables); msgs != nil {
		t.Fatalf("valid tables produced errors: %v", msgs)
	}
	tables.Modules[0].Nets = -1
	if msgs := v.ValidationErrors(tables); len(msgs) == 0 {
		t.Fatal("invalid tables produced no error messages")
	}
}
