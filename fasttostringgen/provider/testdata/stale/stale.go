package stale

//fasttostring:enum
type Mode int

const (
	Off Mode = iota
	On
)
