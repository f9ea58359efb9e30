package facts

// FilterByModules returns a new Tables holding only rows that belong to a
// module in the given set.
func FilterByModules(tables Tables, modules map[string]bool) Tables {
	if len(modules) == 0 {
		return emptyTables()
	}
	out := emptyTables()

	for _, row := range tables.Modules {
		if modules[row.Name] {
			out.Modules = append(out.Modules, row)
		}
	}
	for _, row := range tables.Nets {
		if modules[row.Module] {
			out.Nets = append(out.Nets, row)
		}
	}
	for _, row := range tables.Assignments {
		if modules[row.Module] {
			out.Assignments = append(out.Assignments, row)
		}
	}
	for _, row := range tables.Nodes {
		if modules[row.Module] {
			out.Nodes = append(out.Nodes, row)
		}
	}
	for _, row := range tables.Params {
		if modules[row.Module] {
			out.Params = append(out.Params, row)
		}
	}
	for _, row := range tables.Ports {
		if modules[row.Module] {
			out.Ports = append(out.Ports, row)
		}
	}
	return out
}
