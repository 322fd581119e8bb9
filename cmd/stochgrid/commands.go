// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/stochgrid/config"
	"github.com/katalvlaran/stochgrid/dataset"
	"github.com/katalvlaran/stochgrid/logging"
	"github.com/katalvlaran/stochgrid/sampling"
	"github.com/katalvlaran/stochgrid/stochtree"
	"github.com/katalvlaran/stochgrid/treeindex"
)

// flags holds command-line overrides applied on top of the config file.
type flags struct {
	configPath string
	seed       int64
	logLevel   string
	jsonLog    bool

	csv        string
	synthetic  int
	noCompress bool
	epsilon    float64
	policy     string
	sample     bool

	duration int
	delay    int
	dedup    bool
}

// valueEntry is one row of `sample` output.
type valueEntry struct {
	Node  treeindex.Node `yaml:"node"`
	Value float64        `yaml:"value"`
}

// weightEntry is one row of `weights` output.
type weightEntry struct {
	Node   treeindex.Node `yaml:"node"`
	Weight int            `yaml:"weight"`
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:           "stochgrid",
		Short:         "Scenario-tree grids for stochastic optimization models",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&f.configPath, "config", "c", "", "YAML run configuration (defaults apply when empty)")
	pf.Int64Var(&f.seed, "seed", 0, "sampling seed; overrides tree.seed")
	pf.StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error; overrides log.level")
	pf.BoolVar(&f.jsonLog, "log-json", false, "emit JSON log records")

	sampleFlags := func(cmd *cobra.Command) {
		cmd.Flags().StringVar(&f.csv, "csv", "", "CSV source; overrides sampling.source.file")
		cmd.Flags().IntVar(&f.synthetic, "synthetic", 0, "use a synthetic series of this length")
		cmd.Flags().BoolVar(&f.noCompress, "no-compress", false, "skip run compression")
		cmd.Flags().Float64Var(&f.epsilon, "epsilon", 0, "run tolerance; overrides sampling.epsilon")
		cmd.Flags().StringVar(&f.policy, "policy", "", "ancestor-shared or leaf-index")
	}

	gridCmd := &cobra.Command{
		Use:   "grid",
		Short: "Print the surviving grid nodes in canonical order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGrid(cmd, f)
		},
	}
	gridCmd.Flags().BoolVar(&f.sample, "sample", false, "run a sampling pass first")
	sampleFlags(gridCmd)

	sampleCmd := &cobra.Command{
		Use:   "sample",
		Short: "Sample the configured source onto the tree and print node values",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSample(cmd, f)
		},
	}
	sampleFlags(sampleCmd)

	regridCmd := &cobra.Command{
		Use:   "regrid",
		Short: "Print the decision-grid node of every surviving node",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRegrid(cmd, f)
		},
	}
	regridCmd.Flags().IntVar(&f.duration, "duration", 0, "coarse bucket width; overrides regrid.duration")
	regridCmd.Flags().IntVar(&f.delay, "delay", 0, "steps before coarse branching; overrides regrid.delay")
	regridCmd.Flags().BoolVar(&f.dedup, "dedup", false, "drop repeated coarse nodes")
	regridCmd.Flags().BoolVar(&f.sample, "sample", false, "run a sampling pass first")
	sampleFlags(regridCmd)

	weightsCmd := &cobra.Command{
		Use:   "weights",
		Short: "Print the leaf weight of every surviving node",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWeights(cmd, f)
		},
	}
	weightsCmd.Flags().BoolVar(&f.sample, "sample", false, "run a sampling pass first")
	sampleFlags(weightsCmd)

	root.AddCommand(gridCmd, sampleCmd, regridCmd, weightsCmd)
	return root
}

// load reads the config file and applies the flags that were set.
func load(cmd *cobra.Command, f *flags) (config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		var err error
		if cfg, err = config.Load(f.configPath); err != nil {
			return config.Config{}, err
		}
	}
	changed := func(name string) bool {
		fl := cmd.Flags().Lookup(name)
		return fl != nil && fl.Changed
	}
	if changed("seed") {
		cfg.Tree.Seed = &f.seed
	}
	if changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if changed("log-json") {
		cfg.Log.JSON = f.jsonLog
	}
	if changed("csv") {
		cfg.Sampling.Source.File = f.csv
	}
	if changed("synthetic") {
		cfg.Sampling.Source.File = ""
		cfg.Sampling.Source.SyntheticLength = f.synthetic
	}
	if changed("no-compress") {
		cfg.Sampling.Compress = !f.noCompress
	}
	if changed("epsilon") {
		cfg.Sampling.Epsilon = f.epsilon
	}
	if changed("policy") {
		cfg.Sampling.Policy = f.policy
	}
	if changed("duration") {
		cfg.Regrid.Duration = f.duration
	}
	if changed("delay") {
		cfg.Regrid.Delay = f.delay
	}
	return cfg, cfg.Validate()
}

func newLogger(cfg config.Config, w io.Writer) *slog.Logger {
	lvl, _ := logging.ParseLevel(cfg.Log.Level) // validated by load
	return logging.New(logging.Config{Level: lvl, JSON: cfg.Log.JSON, Output: w, Component: "stochgrid"})
}

func buildTree(ctx context.Context, cmd *cobra.Command, cfg config.Config) (*stochtree.Tree, error) {
	opts := []stochtree.Option{stochtree.WithLogger(newLogger(cfg, cmd.ErrOrStderr()))}
	if cfg.Tree.Seed != nil {
		opts = append(opts, stochtree.WithSeed(*cfg.Tree.Seed))
	}
	if cfg.Workers > 0 {
		opts = append(opts, stochtree.WithWorkers(cfg.Workers))
	}
	return stochtree.New(ctx, cfg.Tree.Depth, cfg.Tree.Branching, cfg.Tree.StageLength, opts...)
}

func source(cfg config.SourceConfig) dataset.Source {
	if cfg.File == "" {
		return dataset.Synthetic{Length: cfg.SyntheticLength, Seed: cfg.SyntheticSeed}
	}
	src := dataset.CSVFile{Name: cfg.File, Dir: cfg.Dir}
	if cfg.Delimiter != "" {
		src.Comma, _ = utf8.DecodeRuneInString(cfg.Delimiter)
	}
	return src
}

func samplingOptions(cfg config.SamplingConfig) []sampling.Option {
	policy, _ := sampling.ParsePolicy(cfg.Policy) // validated by load
	return []sampling.Option{
		sampling.WithCompression(cfg.Compress),
		sampling.WithEpsilon(cfg.Epsilon),
		sampling.WithBreakPoints(cfg.BreakPoints...),
		sampling.WithAncestorPolicy(policy),
	}
}

// prepare loads the config, builds the tree and, when asked, runs one pass.
func prepare(cmd *cobra.Command, f *flags, pass bool) (*stochtree.Tree, config.Config, map[treeindex.Node]float64, error) {
	cfg, err := load(cmd, f)
	if err != nil {
		return nil, cfg, nil, err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	tr, err := buildTree(ctx, cmd, cfg)
	if err != nil {
		return nil, cfg, nil, err
	}
	if !pass {
		return tr, cfg, nil, nil
	}
	vals, err := tr.AssignDataset(ctx, source(cfg.Sampling.Source), samplingOptions(cfg.Sampling)...)
	if err != nil {
		return nil, cfg, nil, err
	}
	return tr, cfg, vals, nil
}

func emit(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return enc.Close()
}

func runGrid(cmd *cobra.Command, f *flags) error {
	tr, _, _, err := prepare(cmd, f, f.sample)
	if err != nil {
		return err
	}
	return emit(cmd.OutOrStdout(), tr.Grid())
}

func runSample(cmd *cobra.Command, f *flags) error {
	tr, _, vals, err := prepare(cmd, f, true)
	if err != nil {
		return err
	}
	out := make([]valueEntry, 0, len(vals))
	for n, v := range vals {
		out = append(out, valueEntry{Node: n, Value: v})
	}
	slices.SortFunc(out, func(a, b valueEntry) int { return treeindex.Compare(a.Node, b.Node) })
	return emit(cmd.OutOrStdout(), map[string]any{
		"seed":   tr.Seed(),
		"pass":   tr.Snapshot().ID().String(),
		"values": out,
	})
}

func runRegrid(cmd *cobra.Command, f *flags) error {
	tr, cfg, _, err := prepare(cmd, f, f.sample)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	coarse, err := tr.Regrid(ctx, cfg.Regrid.Duration, cfg.Regrid.Delay)
	if err != nil {
		return err
	}
	if f.dedup {
		coarse = stochtree.Deduplicate(coarse)
	}
	return emit(cmd.OutOrStdout(), coarse)
}

func runWeights(cmd *cobra.Command, f *flags) error {
	tr, _, _, err := prepare(cmd, f, f.sample)
	if err != nil {
		return err
	}
	w := tr.LeafWeights()
	out := make([]weightEntry, 0, len(w))
	for n, v := range w {
		out = append(out, weightEntry{Node: n, Weight: v})
	}
	slices.SortFunc(out, func(a, b weightEntry) int { return treeindex.Compare(a.Node, b.Node) })
	return emit(cmd.OutOrStdout(), out)
}
