// Package netlist builds a query-ready in-memory model of hardware modules
// (nets, assignments, node instances) from the stream of semantic actions an
// external grammar front end produces while reading a VQM-style netlist.
//
// THE PIPELINE:
//  1. The grammar declares nets; they land in a name-ordered index
//  2. Assignments and instances are declared against those nets; whole-bus
//     uses are split into per-bit records as they arrive
//  3. Concatenation groups are flattened to per-bit identifiers and bound
//     to ports or assignment targets
//  4. FinalizeModule snapshots everything into a Module and clears the
//     transient state for the next one
//
// The finished-module list is the product; downstream tools only read it.
package netlist
