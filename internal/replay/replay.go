// Package replay drives a netlist.Builder from a recorded stream of
// semantic actions. The trace format exists so that builder behavior can be
// exercised end to end (from the command line or from tests) without the
// grammar front end; each line is one action the grammar would have issued.
//
// Format, one action per line ('#' starts a comment, blank lines ignored):
//
//	module <name>
//	net <wire|input|output> <left> <right> <name>
//	group <wire|input|output> <left> <right> <indexed|plain> <name>...
//	assign <target> [<source>] [const=<n>] [invert] [tri=<ctl>]
//	concat <target> [invert] <item>...
//	node <type> <instance> <port>=<conn> ...
//	param <instance> <name> <int | str:<value>>
//	end
//
// Operands may carry a bit index as <name>[<bit>]; "-" is the explicit
// no-connection stub in concat items and node connections; a node connection
// of the form {a,b[2],-} is a concatenation group.
package replay

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"fortio.org/safecast"

	"github.com/robert-at-pretension-io/vqm-netlist/internal/netlist"
)

// Replay parses the trace and issues its actions against the builder. The
// trace is untrusted input, so contract violations the builder would panic
// on (out-of-range bits, parameters on unknown nodes) are caught here and
// reported as errors with the offending line number.
func Replay(r io.Reader, b *netlist.Builder) (err error) {
	line := 0
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("line %d: %v", line, rec)
		}
	}()

	scanner := bufio.NewScanner(r)
	module := ""
	for scanner.Scan() {
		line++
		b.SetLine(line)
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		cmd, args := fields[0], fields[1:]

		var actionErr error
		switch cmd {
		case "module":
			module, actionErr = doModule(args, module)
		case "net":
			actionErr = doNet(b, args)
		case "group":
			actionErr = doGroup(b, args)
		case "assign":
			actionErr = doAssign(b, args)
		case "concat":
			actionErr = doConcat(b, args)
		case "node":
			actionErr = doNode(b, args)
		case "param":
			actionErr = doParam(b, args)
		case "end":
			if module == "" {
				actionErr = fmt.Errorf("end outside a module")
			} else {
				b.FinalizeModule(module)
				module = ""
			}
		default:
			actionErr = fmt.Errorf("unknown action %q", cmd)
		}
		if actionErr != nil {
			return fmt.Errorf("line %d: %w", line, actionErr)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading trace: %w", err)
	}
	if module != "" {
		return fmt.Errorf("module %q not finalized at end of trace", module)
	}
	return nil
}

func doModule(args []string, current string) (string, error) {
	if len(args) != 1 {
		return current, fmt.Errorf("module wants a name")
	}
	if current != "" {
		return current, fmt.Errorf("module %q still open", current)
	}
	return args[0], nil
}

func doNet(b *netlist.Builder, args []string) error {
	if len(args) != 4 {
		return fmt.Errorf("net wants: kind left right name")
	}
	kind, err := parseKind(args[0])
	if err != nil {
		return err
	}
	left, err := parseInt(args[1])
	if err != nil {
		return err
	}
	right, err := parseInt(args[2])
	if err != nil {
		return err
	}
	b.DeclareNet(args[3], left, right, kind)
	return nil
}

func doGroup(b *netlist.Builder, args []string) error {
	if len(args) < 5 {
		return fmt.Errorf("group wants: kind left right indexed|plain name...")
	}
	kind, err := parseKind(args[0])
	if err != nil {
		return err
	}
	left, err := parseInt(args[1])
	if err != nil {
		return err
	}
	right, err := parseInt(args[2])
	if err != nil {
		return err
	}
	var indexed bool
	switch args[3] {
	case "indexed":
		indexed = true
	case "plain":
	default:
		return fmt.Errorf("group wants indexed or plain, got %q", args[3])
	}
	idents := make([]netlist.Ident, 0, len(args[4:]))
	for _, name := range args[4:] {
		idents = append(idents, netlist.NewIdent(name))
	}
	b.DeclareNetGroup(idents, left, right, kind, indexed)
	return nil
}

func doAssign(b *netlist.Builder, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("assign wants a target")
	}
	target, targetBit, err := resolveOperand(b, args[0])
	if err != nil {
		return err
	}

	var source *netlist.Net
	sourceBit := netlist.WholeNet()
	var tri *netlist.TriControl
	constant := netlist.NoConstant
	invert := false
	for _, arg := range args[1:] {
		switch {
		case arg == "invert":
			invert = true
		case strings.HasPrefix(arg, "const="):
			constant, err = parseInt(strings.TrimPrefix(arg, "const="))
			if err != nil {
				return err
			}
		case strings.HasPrefix(arg, "tri="):
			net, bit, err := resolveOperand(b, strings.TrimPrefix(arg, "tri="))
			if err != nil {
				return err
			}
			tri = &netlist.TriControl{Net: net, Bit: bit}
		default:
			if source != nil {
				return fmt.Errorf("assign has two sources")
			}
			source, sourceBit, err = resolveOperand(b, arg)
			if err != nil {
				return err
			}
		}
	}
	if source == nil && constant == netlist.NoConstant {
		return fmt.Errorf("assign wants a source or const=")
	}
	b.DeclareAssignment(source, sourceBit, target, targetBit, tri, constant, invert)
	return nil
}

func doConcat(b *netlist.Builder, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("concat wants: target [invert] item...")
	}
	target, _, err := resolveOperand(b, args[0])
	if err != nil {
		return err
	}
	items := args[1:]
	invert := false
	if items[0] == "invert" {
		invert = true
		items = items[1:]
	}
	group := make([]*netlist.Ident, 0, len(items))
	for _, item := range items {
		if item == "-" {
			group = append(group, nil)
			continue
		}
		id, err := parseOperand(item)
		if err != nil {
			return err
		}
		group = append(group, &id)
	}
	b.ConcatAssign(group, target, invert)
	return nil
}

func doNode(b *netlist.Builder, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("node wants: type instance port=conn...")
	}
	typeName, instance := args[0], args[1]
	ports := []*netlist.PortAssociation{}
	for _, arg := range args[2:] {
		port, conn, ok := strings.Cut(arg, "=")
		if !ok || port == "" {
			return fmt.Errorf("bad port connection %q", arg)
		}
		if strings.HasPrefix(conn, "{") {
			if !strings.HasSuffix(conn, "}") {
				return fmt.Errorf("unterminated group %q", conn)
			}
			group, err := parseGroup(strings.TrimSuffix(strings.TrimPrefix(conn, "{"), "}"))
			if err != nil {
				return err
			}
			ports = append(ports, b.BindToPort(group, port)...)
			continue
		}
		if conn == "-" {
			continue // explicit no-connection
		}
		id, err := parseOperand(conn)
		if err != nil {
			return err
		}
		ports = append(ports, b.AssociatePort(id, port, netlist.WholeNet())...)
	}
	b.DeclareNode(typeName, instance, ports)
	return nil
}

func doParam(b *netlist.Builder, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("param wants: instance name value")
	}
	ident, err := parseOperand(args[0])
	if err != nil {
		return err
	}
	if value, ok := strings.CutPrefix(args[2], "str:"); ok {
		b.AttachStringParam(ident, args[1], value)
		return nil
	}
	value, err := parseInt(args[2])
	if err != nil {
		return err
	}
	b.AttachIntParam(ident, args[1], value)
	return nil
}

func parseKind(s string) (netlist.NetKind, error) {
	switch s {
	case "wire":
		return netlist.KindWire, nil
	case "input":
		return netlist.KindInput, nil
	case "output":
		return netlist.KindOutput, nil
	}
	return netlist.KindWire, fmt.Errorf("unknown net kind %q", s)
}

func parseGroup(inner string) ([]*netlist.Ident, error) {
	parts := strings.Split(inner, ",")
	group := make([]*netlist.Ident, 0, len(parts))
	for _, part := range parts {
		if part == "-" {
			group = append(group, nil)
			continue
		}
		id, err := parseOperand(part)
		if err != nil {
			return nil, err
		}
		group = append(group, &id)
	}
	return group, nil
}

// parseOperand reads "name" or "name[bit]".
func parseOperand(s string) (netlist.Ident, error) {
	open := strings.IndexByte(s, '[')
	if open < 0 {
		if s == "" {
			return netlist.Ident{}, fmt.Errorf("empty operand")
		}
		return netlist.NewIdent(s), nil
	}
	if !strings.HasSuffix(s, "]") || open == 0 {
		return netlist.Ident{}, fmt.Errorf("bad operand %q", s)
	}
	bit, err := parseInt(s[open+1 : len(s)-1])
	if err != nil {
		return netlist.Ident{}, fmt.Errorf("bad operand %q: %w", s, err)
	}
	return netlist.NewIndexedIdent(s[:open], bit), nil
}

// resolveOperand parses an operand and resolves it against the nets declared
// so far.
func resolveOperand(b *netlist.Builder, s string) (*netlist.Net, netlist.Bit, error) {
	id, err := parseOperand(s)
	if err != nil {
		return nil, netlist.Bit{}, err
	}
	net := b.LookupNet(id.Name)
	if net == nil {
		return nil, netlist.Bit{}, fmt.Errorf("unknown net %q", id.Name)
	}
	if id.Indexed {
		return net, netlist.BitAt(id.Index), nil
	}
	return net, netlist.WholeNet(), nil
}

func parseInt(s string) (int, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad integer %q", s)
	}
	i, err := safecast.Conv[int](v)
	if err != nil {
		return 0, fmt.Errorf("integer %q out of range: %w", s, err)
	}
	return i, nil
}
