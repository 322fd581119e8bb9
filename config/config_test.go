package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/stochgrid/cluster"
	"github.com/katalvlaran/stochgrid/config"
)

func TestParse_OverDefaults(t *testing.T) {
	cfg, err := config.Parse([]byte(`
tree:
  depth: 2
  branching: 3
  seed: 42
sampling:
  epsilon: 0.5
  policy: leaf-index
  break_points:
    - {period: 24, phase: 0}
regrid:
  delay: 6
`))
	require.NoError(t, err)
	require.Equal(t, 2, cfg.Tree.Depth)
	require.Equal(t, 3, cfg.Tree.Branching)
	require.Equal(t, 24, cfg.Tree.StageLength) // from Default
	require.NotNil(t, cfg.Tree.Seed)
	require.EqualValues(t, 42, *cfg.Tree.Seed)
	require.True(t, cfg.Sampling.Compress)
	require.Equal(t, 0.5, cfg.Sampling.Epsilon)
	require.Equal(t, []cluster.BreakPoint{{Period: 24, Phase: 0}}, cfg.Sampling.BreakPoints)
	require.Equal(t, 24, cfg.Regrid.Duration)
	require.Equal(t, 6, cfg.Regrid.Delay)
}

func TestParse_Empty(t *testing.T) {
	cfg, err := config.Parse(nil)
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)
	require.Nil(t, cfg.Tree.Seed)
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"Branching":  "tree: {branching: 0}",
		"Epsilon":    "sampling: {epsilon: -1}",
		"Policy":     "sampling: {policy: sideways}",
		"BreakPoint": "sampling: {break_points: [{period: 2, phase: 2}]}",
		"Duration":   "regrid: {duration: 0}",
		"LogLevel":   "log: {level: loud}",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Parse([]byte(doc))
			require.ErrorIs(t, err, config.ErrInvalid)
		})
	}
}

func TestParse_UnknownField(t *testing.T) {
	_, err := config.Parse([]byte("tree: {height: 3}"))
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: 4\n"), 0o600))
	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, 4, cfg.Workers)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate_Delimiter(t *testing.T) {
	cfg := config.Default()
	cfg.Sampling.Source.Delimiter = ";"
	require.NoError(t, cfg.Validate())
	cfg.Sampling.Source.Delimiter = ";;"
	require.ErrorIs(t, cfg.Validate(), config.ErrInvalid)
}

// TestValidate_CustomTags exercises every custom validation tag on a valid
// configuration, so an unregistered tag would surface here.
func TestValidate_CustomTags(t *testing.T) {
	cfg := config.Default()
	cfg.Sampling.Policy = "leaf-index"
	cfg.Log.Level = "debug"
	cfg.Sampling.Source.Delimiter = "\t"
	require.NotPanics(t, func() {
		require.NoError(t, cfg.Validate())
	})
}
