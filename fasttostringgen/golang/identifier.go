package golang

import (
	"strconv"

	"github.com/broady/fasttostring/fasttostringgen/ir"
)

const runtimeName = "fasttostring"

// receiverCandidates are tried in order before falling back to numbered names.
var receiverCandidates = []string{"v", "x", "e", "val"}

// importAlias returns the name the runtime package is imported under.
// Generated files share the package scope, so the plain name is only used
// when no package-level declaration already takes it.
func importAlias(pkg ir.PackageInfo) string {
	if !pkg.Declares(runtimeName) {
		return runtimeName
	}
	for i := 1; ; i++ {
		name := runtimeName + strconv.Itoa(i)
		if !pkg.Declares(name) {
			return name
		}
	}
}

// receiverName picks a receiver that does not shadow anything the method
// body refers to: the members, the type and the runtime import.
func receiverName(e *ir.EnumDescriptor, alias string) string {
	taken := map[string]bool{
		alias:       true,
		e.Name.Name: true,
	}
	for _, m := range e.Members {
		taken[m.Name] = true
	}

	for _, name := range receiverCandidates {
		if !taken[name] {
			return name
		}
	}
	for i := 0; ; i++ {
		name := "v" + strconv.Itoa(i)
		if !taken[name] {
			return name
		}
	}
}

// Filename returns the name of the generated file for a package.
func Filename(pkgName string) string {
	return pkgName + "_fasttostring.go"
}
