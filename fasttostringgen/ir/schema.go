package ir

// Schema holds the marked enums of one package.
type Schema struct {
	// Package is the source Go package information.
	Package PackageInfo

	// Enums contains the marked enums in file order, then declaration order.
	Enums []*EnumDescriptor

	// Warnings contains non-fatal issues encountered during discovery.
	Warnings []Warning
}

// AddEnum adds an enum descriptor to the schema.
// A descriptor whose qualified name is already present is ignored and
// AddEnum reports false.
func (s *Schema) AddEnum(e *EnumDescriptor) bool {
	if s.FindEnum(e.Name) != nil {
		return false
	}
	s.Enums = append(s.Enums, e)
	return true
}

// AddWarning adds a warning to the schema.
func (s *Schema) AddWarning(w Warning) {
	s.Warnings = append(s.Warnings, w)
}

// FindEnum looks up an enum by name. Returns nil if not found.
func (s *Schema) FindEnum(name GoIdentifier) *EnumDescriptor {
	for _, e := range s.Enums {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// Validate checks the schema for structural issues an emitter cannot recover from.
// Returns all validation errors found (not just the first).
func (s *Schema) Validate() []error {
	var errs []error

	seen := make(map[GoIdentifier]bool)
	for _, e := range s.Enums {
		if e.Name.Name == "" {
			errs = append(errs, &ValidationError{
				Code:    "missing_name",
				Message: "enum without a type name",
			})
			continue
		}
		if seen[e.Name] {
			errs = append(errs, &ValidationError{
				Code:    "duplicate_enum",
				Message: "duplicate enum: " + e.QualifiedName(),
			})
		}
		seen[e.Name] = true

		if e.Name.Package != "" && s.Package.Path != "" && e.Name.Package != s.Package.Path {
			errs = append(errs, &ValidationError{
				Code:    "foreign_enum",
				Message: "enum " + e.QualifiedName() + " is not declared in package " + s.Package.Path,
			})
		}

		if len(e.Members) == 0 {
			errs = append(errs, &ValidationError{
				Code:    "no_members",
				Message: "enum " + e.QualifiedName() + " has no members",
			})
		}

		names := make(map[string]bool, len(e.Members))
		for _, m := range e.Members {
			if names[m.Name] {
				errs = append(errs, &ValidationError{
					Code:    "duplicate_member",
					Message: "enum " + e.QualifiedName() + " declares " + m.Name + " twice",
				})
			}
			names[m.Name] = true
		}
	}

	return errs
}

// ValidationError represents a schema validation error.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
