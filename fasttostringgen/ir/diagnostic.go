package ir

// Diagnostic codes reported by declaration providers.
const (
	CodeUnknownDirective   = "unknown_directive"
	CodeMisplacedDirective = "misplaced_directive"
	CodeNotAnEnum          = "not_an_enum"
	CodeNoMembers          = "no_members"
	CodeInvalidOption      = "invalid_option"
	CodeInvalidMethodName  = "invalid_method_name"
	CodeMethodConflict     = "method_conflict"
)

// Diagnostic is a generation-time error tied to a source location.
// It fails the generation pass.
type Diagnostic struct {
	Code    string
	Message string
	Source  Source
}

func (d *Diagnostic) Error() string {
	if d.Source.IsZero() {
		return d.Message
	}
	return d.Source.String() + ": " + d.Message
}
