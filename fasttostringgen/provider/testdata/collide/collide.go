// Package collide declares names the generated code would otherwise use.
package collide

const fasttostring = "taken"

//fasttostring:enum
type Letter int

const (
	v Letter = iota
	x
	w
)
