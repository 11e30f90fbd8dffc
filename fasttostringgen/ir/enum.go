package ir

// EnumDescriptor represents one marked enumeration eligible for generation.
type EnumDescriptor struct {
	// Name is the type identifier.
	Name GoIdentifier

	// Underlying is the integer kind the type is defined over (e.g. "int", "uint8").
	// Generated method docs name it.
	Underlying string

	// Members contains the declared constants of the type, in declaration order.
	Members []EnumMember

	// MethodName is the configured name of the generated method.
	// Empty means no override was configured.
	MethodName string

	// Source location of the type declaration.
	Source Source
}

// QualifiedName returns the package-qualified type name.
func (d *EnumDescriptor) QualifiedName() string { return d.Name.Qualified() }

// ResolvedMethodName returns the configured method name, or def if none was configured.
func (d *EnumDescriptor) ResolvedMethodName(def string) string {
	if d.MethodName != "" {
		return d.MethodName
	}
	return def
}

// DistinctMembers returns the members whose value was not already declared by
// an earlier member, preserving order. A Go switch cannot repeat a constant case,
// so later aliases resolve to the first declared name.
func (d *EnumDescriptor) DistinctMembers() []EnumMember {
	seen := make(map[string]bool, len(d.Members))
	out := make([]EnumMember, 0, len(d.Members))
	for _, m := range d.Members {
		if seen[m.Value] {
			continue
		}
		seen[m.Value] = true
		out = append(out, m)
	}
	return out
}

// Aliases returns the members that share their value with an earlier member,
// keyed by name, with the name of the member they resolve to.
func (d *EnumDescriptor) Aliases() map[string]string {
	first := make(map[string]string, len(d.Members))
	var aliases map[string]string
	for _, m := range d.Members {
		if name, ok := first[m.Value]; ok {
			if aliases == nil {
				aliases = make(map[string]string)
			}
			aliases[m.Name] = name
			continue
		}
		first[m.Value] = m.Name
	}
	return aliases
}

// EnumMember represents a single enum constant.
type EnumMember struct {
	// Name is the constant name.
	Name string

	// Value is the exact constant value as printed by go/constant.
	Value string

	// Documentation for this member. Its summary is rendered next to the
	// member's case in generated code.
	Documentation Documentation
}
