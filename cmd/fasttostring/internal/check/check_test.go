package check

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broady/fasttostring"
	"github.com/broady/fasttostring/cmd/fasttostring/internal/report"
	"github.com/broady/fasttostring/fasttostringgen"
)

func generatedFile(path, body string) fasttostringgen.GeneratedFile {
	return fasttostringgen.GeneratedFile{
		Path:    path,
		Content: []byte(fasttostring.GeneratedHeader + "\n\n" + body),
	}
}

func TestCompare(t *testing.T) {
	root := t.TempDir()
	result := &fasttostringgen.GenerateResult{
		Root: root,
		Files: []fasttostringgen.GeneratedFile{
			generatedFile("a/a_fasttostring.go", "package a\n"),
			generatedFile("b/b_fasttostring.go", "package b\n\nconst B = 2\n"),
			generatedFile("c/c_fasttostring.go", "package c\n"),
		},
	}
	for _, f := range result.Files[:2] {
		require.NoError(t, os.MkdirAll(filepath.Join(root, filepath.Dir(f.Path)), 0o755))
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, "a", "a_fasttostring.go"), result.Files[0].Content, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "b", "b_fasttostring.go"),
		[]byte(fasttostring.GeneratedHeader+"\n\npackage b\n\nconst B = 1\n"), 0o644))

	var buf bytes.Buffer
	stale, err := compare(context.Background(), result, report.NewColored(&buf, false))
	require.NoError(t, err)
	assert.Equal(t, 2, stale)

	out := buf.String()
	assert.NotContains(t, out, "a/a_fasttostring.go")
	assert.Contains(t, out, "stale: b/b_fasttostring.go\n")
	assert.Contains(t, out, "-const B = 1\n+const B = 2\n")
	assert.Contains(t, out, "missing: c/c_fasttostring.go\n")
	assert.NotContains(t, out, "up to date")

	// Nothing is written by a check.
	_, err = os.Stat(filepath.Join(root, "c", "c_fasttostring.go"))
	assert.True(t, os.IsNotExist(err))
}

func TestCompare_UpToDate(t *testing.T) {
	root := t.TempDir()
	f := generatedFile("x_fasttostring.go", "package x\n")
	require.NoError(t, os.WriteFile(filepath.Join(root, f.Path), f.Content, 0o644))

	var buf bytes.Buffer
	stale, err := compare(context.Background(),
		&fasttostringgen.GenerateResult{Root: root, Files: []fasttostringgen.GeneratedFile{f}},
		report.NewColored(&buf, false))
	require.NoError(t, err)
	assert.Zero(t, stale)
	assert.Equal(t, "✓ 1 generated files up to date\n", buf.String())
}

func TestDiff(t *testing.T) {
	current := "package p\n\nfunc a() {}\nfunc b() {}\n"
	want := "package p\n\nfunc a() {}\nfunc c() {}\nfunc d() {}\n"

	got := Diff("p/p_fasttostring.go", []byte(current), []byte(want))
	assert.Equal(t, `--- p/p_fasttostring.go (on disk)
+++ p/p_fasttostring.go (generated)
@@ line 4 @@
-func b() {}
+func c() {}
+func d() {}
`, got)
}

func TestDiff_Missing(t *testing.T) {
	got := Diff("x.go", nil, []byte("package x\n"))
	assert.Contains(t, got, "@@ line 1 @@\n+package x\n")
}

func TestDiff_NoTrailingNewline(t *testing.T) {
	got := Diff("x.go", []byte("package x\nconst A = 1"), []byte("package x\nconst A = 2\n"))
	assert.Contains(t, got, "-const A = 1\n")
	assert.Contains(t, got, "+const A = 2\n")
}

func TestDiff_Equal(t *testing.T) {
	got := Diff("x.go", []byte("package x\n"), []byte("package x\n"))
	assert.NotContains(t, got, "@@")
}
