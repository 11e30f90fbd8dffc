package ir

// Artifact is one rendered source file.
type Artifact struct {
	// Package is the package the file belongs to.
	Package PackageInfo

	// Filename is the base name of the file inside the package directory.
	Filename string

	// Enums lists the qualified names of the enums rendered into the file.
	Enums []string

	// Content is the complete file content.
	Content []byte
}
