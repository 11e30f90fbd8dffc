// Package states contains marked enums for the source provider tests.
package states

// HumanStates is what a person is doing.
//
//fasttostring:enum
type HumanStates int

const (
	// Idle means doing nothing.
	Idle HumanStates = iota
	Working
	Sleeping
)

// Priority uses a method name override.
//
//fasttostring:enum method="Describe"
type Priority uint8

const (
	PriorityLow Priority = iota + 1
	PriorityHigh
	_
	PriorityUrgent
)

const weekdayMethod = "Day" + "Name"

// Weekday resolves its method name from a constant.
//
//fasttostring:enum method=weekdayMethod
type Weekday int16

const (
	Sunday Weekday = iota
	Monday
)

// Level declares an alias value.
//
//fasttostring:enum
type Level int

const (
	Debug Level = iota
	Info
	Warn
	Default = Info
)

// Color is not marked.
type Color int

const (
	Red Color = iota
	Green
)

type (
	//fasttostring:enum
	Direction uint

	Unmarked int
)

const (
	North Direction = 1 << iota
	South
)
