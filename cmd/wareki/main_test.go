package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"wareki/internal/config"
	"wareki/internal/wareki"
)

func TestJoinArgs(t *testing.T) {
	got := joinArgs([]string{"令和", "5"})
	if got != "令和5" {
		t.Fatalf("expected '令和5', got '%s'", got)
	}

	year, err := wareki.ParseYear(joinArgs([]string{"H", "30"}))
	require.NoError(t, err)
	assert.Equal(t, 2018, year)
}

func TestIsInteractive(t *testing.T) {
	assert.True(t, isInteractive(rootCmd))
	assert.True(t, isInteractive(searchCmd))
	assert.False(t, isInteractive(convertCmd))
	assert.False(t, isInteractive(serveCmd))
}

// setup resets the globals a command reads.
func setup(t *testing.T, format string) *bytes.Buffer {
	t.Helper()
	logger = zap.NewNop()
	cfg = config.DefaultConfig()
	outputFormat = format
	erasMarkdown = false
	t.Cleanup(func() {
		outputFormat = "text"
		erasMarkdown = false
	})
	return &bytes.Buffer{}
}

func newTestCommand(out *bytes.Buffer) *cobra.Command {
	cmd := &cobra.Command{}
	cmd.SetOut(out)
	return cmd
}

func TestRunConvertText(t *testing.T) {
	out := setup(t, "text")

	err := runConvert(newTestCommand(out), []string{"R2"})
	require.NoError(t, err)

	want := "西暦2020年\n令和2年\n(平成32年)\n(昭和95年)\n(大正109年)\n(明治153年)\n"
	assert.Equal(t, want, out.String())
}

func TestRunConvertMultipleQueries(t *testing.T) {
	out := setup(t, "text")

	err := runConvert(newTestCommand(out), []string{"1868", "abc"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errSomeUnparseable))
	assert.Contains(t, err.Error(), "1 of 2")

	assert.Equal(t, "1868:\n西暦1868年\n明治1年\n\nabc: cannot parse\n", out.String())
}

func TestRunConvertNormalizesInput(t *testing.T) {
	out := setup(t, "text")

	require.NoError(t, runConvert(newTestCommand(out), []string{"Ｒ５"}))
	assert.Contains(t, out.String(), "令和5年")

	out.Reset()
	cfg.NormalizeInput = false
	assert.Error(t, runConvert(newTestCommand(out), []string{"Ｒ５"}))
}

func TestRunConvertJSON(t *testing.T) {
	out := setup(t, "json")

	err := runConvert(newTestCommand(out), []string{"H30", "x"})
	require.Error(t, err)

	var got []convertResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 2)

	assert.Equal(t, "H30", got[0].Query)
	assert.Equal(t, 2018, got[0].Year)
	assert.Empty(t, got[0].Error)
	assert.Equal(t, "令和", got[0].Results[1].Label)
	assert.Equal(t, 0, len(got[1].Results))
	assert.NotEmpty(t, got[1].Error)

	// Unparseable queries still list an empty results array
	assert.Contains(t, out.String(), `"results": []`)
}

func TestRunConvertYAML(t *testing.T) {
	out := setup(t, "yaml")

	require.NoError(t, runConvert(newTestCommand(out), []string{"s64"}))

	var got []convertResult
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, 1989, got[0].Year)
	assert.Equal(t, "平成1年", got[0].Results[1].Text)
	assert.Equal(t, "昭和64年", got[0].Results[2].Text)
}

func TestRunConvertUnknownFormat(t *testing.T) {
	out := setup(t, "xml")

	err := runConvert(newTestCommand(out), []string{"2020"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestRunErasText(t *testing.T) {
	out := setup(t, "text")

	require.NoError(t, runEras(newTestCommand(out), nil))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[0], "KEY"))
	assert.True(t, strings.HasPrefix(lines[1], "reiwa"))
	assert.Contains(t, lines[1], "2019-")
	assert.Contains(t, lines[2], "1989-2019")
	assert.True(t, strings.HasPrefix(lines[5], "meiji"))
}

func TestErasMarkdownTable(t *testing.T) {
	md := erasMarkdownTable(wareki.Eras())

	assert.Contains(t, md, "| reiwa | 令和 | 2019- | 令和, 令, R, r |")
	assert.Contains(t, md, "| heisei | 平成 | 1989-2019 | 平成, 平, H, h |")
	assert.Equal(t, 5, strings.Count(md, "\n| ")-1)
}

func TestRunErasMarkdown(t *testing.T) {
	out := setup(t, "text")
	erasMarkdown = true

	require.NoError(t, runEras(newTestCommand(out), nil))
	assert.Contains(t, out.String(), "reiwa")
	assert.Contains(t, out.String(), "meiji")
}

func TestRootConvertCommand(t *testing.T) {
	t.Setenv("WAREKI_PORT", "")
	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetArgs([]string{"convert", "--config", filepath.Join(t.TempDir(), "missing.yaml"), "令和1"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		outputFormat = "text"
	})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, stdout.String(), "平成31年")
	assert.NotNil(t, cfg)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestVersionCommand(t *testing.T) {
	var stdout bytes.Buffer
	versionCmd.SetOut(&stdout)
	t.Cleanup(func() { versionCmd.SetOut(nil) })

	versionCmd.Run(versionCmd, nil)
	assert.Equal(t, "wareki dev\n", stdout.String())
}
