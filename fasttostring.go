// Package fasttostring is the runtime support linked by code that the
// fasttostring generator emits.
//
// Mark an integer-backed enum type with the directive:
//
//	//fasttostring:enum
//	type HumanStates int
//
//	const (
//	    Idle HumanStates = iota
//	    Working
//	    Sleeping
//	)
//
// and run the generator (usually through go generate). For every marked type it
// writes a method that returns the declared name of a value without reflection:
//
//	name, err := Sleeping.FastToString() // "Sleeping", nil
//	_, err = HumanStates(99).FastToString()
//	errors.Is(err, fasttostring.ErrOutOfRange) // true
//
// The method name can be changed per type with a constant string expression:
//
//	//fasttostring:enum method="Name"
package fasttostring

// Directive is the comment prefix that marks an enum type for generation.
const Directive = "//fasttostring:enum"

// DefaultMethodName is the name of the generated method when a marked type
// does not configure one.
const DefaultMethodName = "FastToString"

// GeneratedHeader is the first line of every file written by the generator.
// Files starting with it are owned by the generator and are regenerated freely.
const GeneratedHeader = "// Code generated by fasttostring. DO NOT EDIT."

// Version guard shared by the generator and the runtime.
//
// Generated files contain
//
//	const (
//	    _ = fasttostring.EnforceVersion(GenVersion - fasttostring.MinVersion)
//	    _ = fasttostring.EnforceVersion(fasttostring.MaxVersion - GenVersion)
//	)
//
// where GenVersion is the literal value of GenVersion at generation time.
// EnforceVersion is unsigned, so a generated file built against an
// incompatible runtime fails to compile with a constant overflow.
const (
	// GenVersion is the version of the generated code layout emitted by this
	// release of the generator.
	GenVersion = 1

	// MinVersion is the oldest generated code layout this runtime supports.
	MinVersion = 1

	// MaxVersion is the newest generated code layout this runtime supports.
	MaxVersion = GenVersion
)

// EnforceVersion is used by generated code to assert at compile time that
// the linked runtime supports the generated layout.
type EnforceVersion uint
