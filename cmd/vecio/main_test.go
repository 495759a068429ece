package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/vecio"
	"github.com/arloliu/vecio/array"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"vecio"}, args...))

	return out.String(), err
}

func TestDemoAndInspect(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.vecio")

	out, err := run(t, "demo", path)
	require.NoError(t, err)
	require.Contains(t, out, "wrote "+path)

	out, err = run(t, "inspect", path)
	require.NoError(t, err)
	for _, want := range []string{"HEADERSIZE", "295", "float64", "Name", "test", "testdim", "[8 9 10 11 ... 17]"} {
		require.Contains(t, strings.ToUpper(out), strings.ToUpper(want))
	}
}

func TestDemoStdout(t *testing.T) {
	out, err := run(t, "demo", "-")
	require.NoError(t, err)

	arr, err := array.Unmarshal[float64]([]byte(out))
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, arr.Data())
}

func TestDump(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "grid.vecio")

	arr := vecio.NewFloat32()
	require.NoError(t, arr.AddDim("row", []uint64{10, 20}))
	require.NoError(t, arr.AddDim("col", []uint64{1, 2}))
	arr.SetData([]float32{0.5, 1.5, 2.5, 3.5})
	require.NoError(t, vecio.WriteFile(path, arr))

	out, err := run(t, "dump", path)
	require.NoError(t, err)
	require.Equal(t, "row=10,col=1\t0.5\nrow=10,col=2\t1.5\nrow=20,col=1\t2.5\nrow=20,col=2\t3.5\n", out)

	out, err = run(t, "dump", "--limit", "1", path)
	require.NoError(t, err)
	require.Equal(t, "row=10,col=1\t0.5\n", out)
}

func TestPack(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "test.vecio")
	packed := filepath.Join(dir, "test.vecio.zst")

	_, err := run(t, "demo", plain)
	require.NoError(t, err)

	out, err := run(t, "pack", plain, packed)
	require.NoError(t, err)
	require.Contains(t, out, "Zstd")

	arr, err := vecio.ReadFile[float64](packed)
	require.NoError(t, err)
	require.Equal(t, float64(10), arr.Data()[9])

	_, err = run(t, "pack", "--compression", "brotli", plain, packed)
	require.Error(t, err)
}

func TestInspectCorrupted(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.vecio")
	_, err := run(t, "demo", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	data[len(data)-1] ^= 0xFF
	require.NoError(t, os.WriteFile(path, data, 0o644))

	_, err = run(t, "inspect", path)
	require.Error(t, err)

	_, err = run(t, "inspect", "--no-verify", path)
	require.NoError(t, err)
}

func TestArgumentErrors(t *testing.T) {
	for _, args := range [][]string{
		{"inspect"},
		{"dump"},
		{"demo"},
		{"pack", "only-one"},
	} {
		_, err := run(t, args...)
		require.Error(t, err, strings.Join(args, " "))
	}
}
