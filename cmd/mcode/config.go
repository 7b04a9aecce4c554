package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lazear/mcode/pkg/dataset"
	"github.com/lazear/mcode/pkg/mcode"
)

// duration accepts "30s"/"2m" strings from both flags and YAML.
type duration time.Duration

func (d *duration) String() string { return time.Duration(*d).String() }

func (d *duration) Set(s string) error {
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = duration(v)
	return nil
}

func (d *duration) UnmarshalYAML(node *yaml.Node) error {
	return d.Set(node.Value)
}

// Config collects every pipeline setting. Values come from built-in
// defaults, then the optional -config YAML file, then command-line
// flags, later sources winning.
type Config struct {
	Input         string   `yaml:"input"`
	Format        string   `yaml:"format"`
	Mapping       string   `yaml:"mapping"`
	Threshold     int      `yaml:"threshold"`
	CacheDir      string   `yaml:"cache_dir"`
	LoadSnapshot  string   `yaml:"load_snapshot"`
	SaveSnapshot  string   `yaml:"save_snapshot"`
	Out           string   `yaml:"out"`
	OutFormat     string   `yaml:"out_format"`
	ComponentsOut string   `yaml:"components_out"`
	VWP           float64  `yaml:"vwp"`
	Haircut       bool     `yaml:"haircut"`
	Fluff         bool     `yaml:"fluff"`
	FluffDensity  float64  `yaml:"fluff_density"`
	MinSize       int      `yaml:"min_size"`
	MinScore      float64  `yaml:"min_score"`
	PostOrder     string   `yaml:"post_order"`
	PostMode      string   `yaml:"post_mode"`
	Workers       int      `yaml:"workers"`
	Timeout       duration `yaml:"timeout"`
	MetricsListen string   `yaml:"metrics_listen"`
	DatabaseURL   string   `yaml:"database_url"`
	S3Region      string   `yaml:"s3_region"`
	S3Anonymous   bool     `yaml:"s3_anonymous"`
	LogLevel      string   `yaml:"log_level"`
}

func defaultConfig() *Config {
	def := mcode.DefaultOptions()
	return &Config{
		Format:       "bioplex",
		Threshold:    -1,
		CacheDir:     ".mcode-cache",
		OutFormat:    "csv",
		VWP:          def.VertexWeightPercentage,
		Haircut:      def.Haircut,
		Fluff:        def.Fluff,
		FluffDensity: def.FluffDensityThreshold,
		MinSize:      def.MinComplexSize,
		MinScore:     def.MinScore,
		Workers:      def.Workers,
		PostOrder:    def.PostOrder.String(),
		PostMode:     def.PostMode.String(),
		S3Anonymous:  true,
		LogLevel:     "info",
	}
}

// loadConfig parses flags, merges in the -config file if given, and
// re-parses so explicit flags override file values.
func loadConfig() (*Config, error) {
	cfg := defaultConfig()

	configPath := flag.String("config", "", "Optional YAML config file")
	flag.StringVar(&cfg.Input, "input", cfg.Input, "Dataset path or URI (file, http(s)://, s3://)")
	flag.StringVar(&cfg.Format, "format", cfg.Format, "Input format: bioplex, string, csv")
	flag.StringVar(&cfg.Mapping, "mapping", cfg.Mapping, "STRING-to-UniProt mapping file (string format only)")
	flag.IntVar(&cfg.Threshold, "threshold", cfg.Threshold, "Minimum interaction score; -1 uses the format default")
	flag.StringVar(&cfg.CacheDir, "cache-dir", cfg.CacheDir, "Directory for downloaded datasets")
	flag.StringVar(&cfg.LoadSnapshot, "load-snapshot", cfg.LoadSnapshot, "Load the graph from a snapshot instead of parsing")
	flag.StringVar(&cfg.SaveSnapshot, "save-snapshot", cfg.SaveSnapshot, "Write the parsed graph to a snapshot file")
	flag.StringVar(&cfg.Out, "out", cfg.Out, "Output file (default stdout)")
	flag.StringVar(&cfg.OutFormat, "out-format", cfg.OutFormat, "Output format: csv, json")
	flag.StringVar(&cfg.ComponentsOut, "components-out", cfg.ComponentsOut, "Optional protein,component_id CSV file")
	flag.Float64Var(&cfg.VWP, "vwp", cfg.VWP, "Vertex weight percentage (0..1); larger grows looser complexes")
	flag.BoolVar(&cfg.Haircut, "haircut", cfg.Haircut, "Trim pendant vertices from complexes")
	flag.BoolVar(&cfg.Fluff, "fluff", cfg.Fluff, "Grow complexes with dense boundary neighbors")
	flag.Float64Var(&cfg.FluffDensity, "fluff-density", cfg.FluffDensity, "Density floor for fluff admission (0..1)")
	flag.IntVar(&cfg.MinSize, "min-size", cfg.MinSize, "Drop complexes smaller than this")
	flag.Float64Var(&cfg.MinScore, "min-score", cfg.MinScore, "Drop complexes scoring below this")
	flag.StringVar(&cfg.PostOrder, "post-order", cfg.PostOrder, "Post-processing order: haircut-then-fluff, fluff-then-haircut")
	flag.StringVar(&cfg.PostMode, "post-mode", cfg.PostMode, "Post-processing mode: two-phase, interleaved")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "Vertex weighting workers; 0 means one per CPU")
	flag.Var(&cfg.Timeout, "timeout", "Abort the run after this long (e.g. 2m); 0 disables")
	flag.StringVar(&cfg.MetricsListen, "metrics-listen", cfg.MetricsListen, "Serve Prometheus metrics on this address")
	flag.StringVar(&cfg.DatabaseURL, "db", cfg.DatabaseURL, "PostgreSQL URL for the result store")
	flag.StringVar(&cfg.S3Region, "s3-region", cfg.S3Region, "AWS region for s3:// datasets")
	flag.BoolVar(&cfg.S3Anonymous, "s3-anonymous", cfg.S3Anonymous, "Fetch s3:// datasets without credentials")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	flag.Parse()

	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
		// Second pass: flags given on the command line beat the file.
		if err := flag.CommandLine.Parse(os.Args[1:]); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// EngineOptions converts the CLI settings into validated engine options.
func (c *Config) EngineOptions() (*mcode.Options, error) {
	order, err := mcode.ParsePostOrder(c.PostOrder)
	if err != nil {
		return nil, err
	}
	mode, err := mcode.ParsePostMode(c.PostMode)
	if err != nil {
		return nil, err
	}
	opts := &mcode.Options{
		VertexWeightPercentage: c.VWP,
		Haircut:                c.Haircut,
		Fluff:                  c.Fluff,
		FluffDensityThreshold:  c.FluffDensity,
		MinComplexSize:         c.MinSize,
		MinScore:               c.MinScore,
		Workers:                c.Workers,
		PostOrder:              order,
		PostMode:               mode,
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

func (c *Config) parseOptions() *dataset.ParseOptions {
	if c.Threshold < 0 {
		return nil
	}
	return &dataset.ParseOptions{MinScore: c.Threshold}
}
