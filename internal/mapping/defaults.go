package mapping

// DefaultRootNamespace is the namespace unmapped symbols are placed in.
const DefaultRootNamespace = "Minnow"

// DefaultFunctionClass is the class unmapped functions are grouped into.
const DefaultFunctionClass = "Misc"

// Placement controls where default entries point.
type Placement struct {
	// Root is the root namespace for synthesized entries.
	Root string
	// FunctionClass is the class synthesized function entries use.
	FunctionClass string
}

// DefaultPlacement returns the stock placement.
func DefaultPlacement() Placement {
	return Placement{
		Root:          DefaultRootNamespace,
		FunctionClass: DefaultFunctionClass,
	}
}

// SynthesizeFunction returns the default entry for an unmapped function:
// (root, FunctionClass, name).
func SynthesizeFunction(name string, p Placement) FunctionEntry {
	return FunctionEntry{
		Namespace: p.Root,
		Class:     p.FunctionClass,
		Method:    name,
	}
}

// SynthesizeClass returns the default entry for an unmapped class: (root, name).
func SynthesizeClass(name string, p Placement) ClassEntry {
	return ClassEntry{
		Namespace: p.Root,
		Class:     name,
	}
}
