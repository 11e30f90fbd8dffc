// Package invalid misuses the directive in every supported way.
package invalid

//fasttostring:enum
type Name string

const Alice Name = "alice"

//fasttostring:enum
type Point struct{ X, Y int }

//fasttostring:enum
type Alias = int

//fasttostring:enum
type Empty int

var dynamic = "Name"

//fasttostring:enum method=dynamic
type Dynamic int

const DynamicA Dynamic = 0

//fasttostring:enum method="1abc"
type BadName int

const BadNameA BadName = 0

//fasttostring:enum method=Undefined
type Unresolved int

const UnresolvedA Unresolved = 0

//fasttostring:enum method=42
type NotString int

const NotStringA NotString = 0

//fasttostring:enum
type Conflict int

const ConflictA Conflict = 0

func (c Conflict) FastToString() (string, error) { return "", nil }

//fasttostring:enum method="Kind"
type PtrConflict int

const PtrConflictA PtrConflict = 0

func (c *PtrConflict) Kind() string { return "" }

//fasttostring:enum
func helper() {}

//fasttostring:enum
type Fine int

const FineA Fine = 0
