package states

const (
	// Eating and Dead are declared in a second file.
	Eating HumanStates = iota + 3
	Dead
)

// Untyped constants are not members.
const Maybe = 7

var notAConstant = Working
