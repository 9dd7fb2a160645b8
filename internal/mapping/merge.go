package mapping

// Merge returns a copy of existing with every entry of discovered added for
// names that have no active entry yet. Entries already in existing are never
// altered. Discovered function order is preserved for new names.
func Merge(existing, discovered *Table) *Table {
	out := existing.Clone()

	for _, name := range discovered.orderedFunctionNames() {
		if _, ok := out.Functions[name]; ok {
			continue
		}

		out.SetFunction(name, discovered.Functions[name])
	}

	for name, e := range discovered.Classes {
		if _, ok := out.Classes[name]; ok {
			continue
		}

		out.Classes[name] = e
	}

	return out
}
