// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pdiddy/cache2config/internal/convert"
	"github.com/pdiddy/cache2config/pkg/types"
)

const sampleCache = `{"pattern":"hello","reply":"hi there"}
not json
{"pattern":"bye","reply":"see you"}
`

const sampleConfig = `[{"patterns":["hello"],"reply":{"type":"PlainMessage","data":"hi there"}},{"patterns":["bye"],"reply":{"type":"PlainMessage","data":"see you"}}]`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConvertFile(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "cache.jsonl", sampleCache)
	output := filepath.Join(dir, "config.json")

	res, err := convertFile(context.Background(), input, output, types.Settings{}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 1, res.ErrorCount())

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, sampleConfig, string(data))
}

func TestConvertFile_Idempotent(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "cache.jsonl", sampleCache+`{"pattern":"merci","reply":"de rien ✨"}`+"\n")
	first := filepath.Join(dir, "first.json")
	second := filepath.Join(dir, "second.json")

	_, err := convertFile(context.Background(), input, first, types.Settings{}, zap.NewNop())
	require.NoError(t, err)
	_, err = convertFile(context.Background(), input, second, types.Settings{}, zap.NewNop())
	require.NoError(t, err)

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestConvertFile_Errors(t *testing.T) {
	t.Run("missing input leaves output untouched", func(t *testing.T) {
		dir := t.TempDir()
		output := filepath.Join(dir, "config.json")

		_, err := convertFile(context.Background(), filepath.Join(dir, "absent.jsonl"), output, types.Settings{}, zap.NewNop())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "opening input")

		_, statErr := os.Stat(output)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("output directory missing", func(t *testing.T) {
		dir := t.TempDir()
		input := writeFile(t, dir, "cache.jsonl", sampleCache)

		_, err := convertFile(context.Background(), input, filepath.Join(dir, "nope", "config.json"), types.Settings{}, zap.NewNop())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "opening output")
	})

	t.Run("oversized line aborts", func(t *testing.T) {
		dir := t.TempDir()
		input := writeFile(t, dir, "cache.jsonl", `{"pattern":"p","reply":"`+string(bytes.Repeat([]byte("x"), 512))+`"}`+"\n")

		_, err := convertFile(context.Background(), input, filepath.Join(dir, "config.json"), types.Settings{MaxLineBytes: 128}, zap.NewNop())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "converting")
	})
}

func TestConvertFile_FatalErrorKeepsPreviousOutput(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "cache.jsonl", `{"pattern":"a","reply":"b"}`+"\n"+`{"pattern":"p","reply":"`+string(bytes.Repeat([]byte("x"), 512))+`"}`+"\n")
	output := writeFile(t, dir, "config.json", sampleConfig)

	_, err := convertFile(context.Background(), input, output, types.Settings{MaxLineBytes: 128}, zap.NewNop())
	require.Error(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, sampleConfig, string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no temporary output should remain")
}

func TestNewLogger(t *testing.T) {
	l, err := newLogger("debug")
	require.NoError(t, err)
	assert.NotNil(t, l)

	_, err = newLogger("chatty")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestRootCmd_ConvertWithSummary(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "cache.jsonl", sampleCache)
	output := filepath.Join(dir, "config.json")
	summary := filepath.Join(dir, "summary.yaml")

	rootCmd.SetArgs([]string{input, output, "--summary", summary, "--log-level", "error"})
	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, sampleConfig, string(data))

	s, err := convert.ReadSummary(summary)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Lines)
	assert.Equal(t, 2, s.Converted)
	assert.Equal(t, 1, s.Skipped)
}

func TestRootCmd_WrongArgCount(t *testing.T) {
	rootCmd.SetArgs([]string{"only-one"})
	assert.Error(t, rootCmd.Execute())
}

func TestAppendThenMerge(t *testing.T) {
	dir := t.TempDir()
	cachePath := filepath.Join(dir, "cache.jsonl")

	rootCmd.SetArgs([]string{"append", cachePath, "ping", "pong", "again"})
	require.NoError(t, rootCmd.Execute())

	first := filepath.Join(dir, "first.json")
	_, err := convertFile(context.Background(), cachePath, first, types.Settings{}, zap.NewNop())
	require.NoError(t, err)

	second := writeFile(t, dir, "second.json", `[{"patterns":["a","b"],"reply":{"type":"PlainMessage","data":"c"}}]`)
	merged := filepath.Join(dir, "merged.json")

	rootCmd.SetArgs([]string{"merge", merged, first, second})
	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(merged)
	require.NoError(t, err)
	assert.Equal(t, `[{"patterns":["ping"],"reply":{"type":"PlainMessage","data":"pong again"}},{"patterns":["a","b"],"reply":{"type":"PlainMessage","data":"c"}}]`, string(data))
}

func TestVersionCmd(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	t.Cleanup(func() { rootCmd.SetOut(nil) })

	rootCmd.SetArgs([]string{"version"})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "cache2config dev\n", out.String())
}
