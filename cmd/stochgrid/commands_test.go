package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/stochgrid/treeindex"
)

func writeConfig(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))
	return path
}

func run(t *testing.T, args ...string) []byte {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute(), errOut.String())
	return out.Bytes()
}

const smallTree = `
tree: {depth: 1, branching: 2, stage_length: 2}
regrid: {duration: 2}
log: {level: error}
`

func TestGridCommand(t *testing.T) {
	cfg := writeConfig(t, smallTree)
	var nodes []treeindex.Node
	require.NoError(t, yaml.Unmarshal(run(t, "grid", "-c", cfg), &nodes))
	require.Len(t, nodes, 6)
	require.Equal(t, treeindex.At(0, 0), nodes[0])
	require.Equal(t, treeindex.At(1, 3), nodes[5])
}

func TestSampleCommand_Reproducible(t *testing.T) {
	cfg := writeConfig(t, smallTree)
	decode := func(b []byte) []valueEntry {
		var doc struct {
			Seed   int64        `yaml:"seed"`
			Values []valueEntry `yaml:"values"`
		}
		require.NoError(t, yaml.Unmarshal(b, &doc))
		require.EqualValues(t, 42, doc.Seed)
		return doc.Values
	}
	a := decode(run(t, "sample", "-c", cfg, "--seed", "42", "--synthetic", "50"))
	b := decode(run(t, "sample", "-c", cfg, "--seed", "42", "--synthetic", "50"))
	require.Len(t, a, 6)
	require.Equal(t, a, b)
}

func TestSampleCommand_CSV(t *testing.T) {
	dir := t.TempDir()
	csv := "index,value\n"
	for i := 0; i < 10; i++ {
		csv += string(rune('0'+i)) + "," + string(rune('1'+i%5)) + "\n"
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "series.csv"), []byte(csv), 0o600))
	cfg := writeConfig(t, smallTree+"sampling: {source: {dir: "+dir+"}}\n")

	out := run(t, "sample", "-c", cfg, "--csv", "series.csv", "--no-compress")
	require.Contains(t, string(out), "values:")
}

func TestRegridCommand_Dedup(t *testing.T) {
	cfg := writeConfig(t, smallTree)
	var coarse []treeindex.Node
	require.NoError(t, yaml.Unmarshal(run(t, "regrid", "-c", cfg, "--dedup"), &coarse))
	require.Equal(t, []treeindex.Node{treeindex.At(0, 0), treeindex.At(0, 2), treeindex.At(1, 2)}, coarse)
}

func TestWeightsCommand(t *testing.T) {
	cfg := writeConfig(t, smallTree)
	var w []weightEntry
	require.NoError(t, yaml.Unmarshal(run(t, "weights", "-c", cfg), &w))
	require.Len(t, w, 6)
	require.Equal(t, weightEntry{Node: treeindex.At(0, 0), Weight: 2}, w[0])
}

func TestInvalidOverride(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"regrid", "--duration", "0"})
	require.Error(t, cmd.Execute())
}
