package main

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) (*CLI, string) {
	t.Helper()
	cli := &CLI{}
	parser, err := newParser(cli)
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	require.NoError(t, err)
	return cli, kctx.Selected().Name
}

func TestParse_DefaultCommand(t *testing.T) {
	cli, cmd := parse(t)
	assert.Equal(t, "gen", cmd)
	assert.Empty(t, cli.Gen.Patterns)

	cli, cmd = parse(t, "./...", "-m", "Name", "-o", "enums_gen.go")
	assert.Equal(t, "gen", cmd)
	assert.Equal(t, []string{"./..."}, cli.Gen.Patterns)
	assert.Equal(t, "Name", cli.Gen.Method)
	assert.Equal(t, "enums_gen.go", cli.Gen.Output)
}

func TestParse_Check(t *testing.T) {
	cli, cmd := parse(t, "check", "--tags=a,b", "-C", "sub", "./pkg")
	assert.Equal(t, "check", cmd)
	assert.Equal(t, []string{"a", "b"}, cli.Check.Tags)
	assert.Equal(t, "sub", cli.Check.Dir)
	assert.Equal(t, []string{"./pkg"}, cli.Check.Patterns)
}

func TestParse_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fasttostring.yaml")
	require.NoError(t, os.WriteFile(path, []byte("method: Label\ntags: [x, y]\nforce: true\n"), 0o644))

	cli, _ := parse(t, "gen", "--config", path)
	assert.Equal(t, "Label", cli.Gen.Method)
	assert.Equal(t, []string{"x", "y"}, cli.Gen.Tags)
	assert.True(t, cli.Gen.Force)

	cli, _ = parse(t, "gen", "--config", path, "-m", "Other")
	assert.Equal(t, "Other", cli.Gen.Method, "flags take precedence over the config file")
}

func TestYAMLConfig_Validate(t *testing.T) {
	parser, err := newParser(&CLI{})
	require.NoError(t, err)

	r, err := yamlConfig(strings.NewReader("method: Label\nbuild_tags: x\nbogus: 1\nother: 2\n"))
	require.NoError(t, err)
	err = r.Validate(parser.Model)
	require.Error(t, err)
	assert.Equal(t, "config: unknown keys bogus, build_tags, other", err.Error())

	r, err = yamlConfig(strings.NewReader("method: Label\ntags: x\n"))
	require.NoError(t, err)
	assert.NoError(t, r.Validate(parser.Model))
}

func TestYAMLConfig_DuplicateSpellings(t *testing.T) {
	parser, err := newParser(&CLI{})
	require.NoError(t, err)

	r, err := yamlConfig(strings.NewReader("build_tags: a\nbuild-tags: b\nmethod: Label\n"))
	require.NoError(t, err)
	err = r.Validate(parser.Model)
	require.Error(t, err)
	assert.Equal(t, "config: keys set more than once: build-tags (build-tags, build_tags)", err.Error())
}

func TestYAMLConfig_Empty(t *testing.T) {
	r, err := yamlConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, r)
}

func TestYAMLConfig_Invalid(t *testing.T) {
	_, err := yamlConfig(strings.NewReader("method: [unclosed\n"))
	assert.Error(t, err)
}

func TestFlagValue(t *testing.T) {
	tests := []struct {
		in   any
		want any
	}{
		{nil, nil},
		{"Name", "Name"},
		{true, "true"},
		{uint64(3), "3"},
		{[]any{"a", "b"}, "a,b"},
	}
	for _, tt := range tests {
		got, err := flagValue(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := flagValue(map[string]any{"a": 1})
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, false).Debug("hidden")
	assert.Empty(t, buf.String())

	newLogger(&buf, true).Debug("shown")
	assert.Contains(t, buf.String(), "msg=shown")
}

func TestVersion(t *testing.T) {
	build := func(version string, settings ...debug.BuildSetting) func() (*debug.BuildInfo, bool) {
		return func() (*debug.BuildInfo, bool) {
			info := &debug.BuildInfo{Settings: settings}
			info.Main.Version = version
			return info, true
		}
	}

	assert.Equal(t, "v1.2.3", version("0.1.0", build("v1.2.3")))
	assert.Equal(t, "devel-0.1.0", version("0.1.0", build("(devel)")))
	assert.Equal(t, "devel-0.1.0+abcdef1", version("0.1.0", build("(devel)",
		debug.BuildSetting{Key: "vcs.revision", Value: "abcdef1234567"})))
	assert.Equal(t, "devel-0.1.0+abcdef1.dirty", version("0.1.0", build("",
		debug.BuildSetting{Key: "vcs.revision", Value: "abcdef1234567"},
		debug.BuildSetting{Key: "vcs.modified", Value: "true"})))
	assert.Equal(t, "0.1.0", version("0.1.0", func() (*debug.BuildInfo, bool) { return nil, false }))
}
