package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lazear/mcode/pkg/components"
	"github.com/lazear/mcode/pkg/dataset"
	"github.com/lazear/mcode/pkg/logging"
	"github.com/lazear/mcode/pkg/mcode"
	"github.com/lazear/mcode/pkg/metrics"
	"github.com/lazear/mcode/pkg/report"
	"github.com/lazear/mcode/pkg/resultstore"
	"github.com/lazear/mcode/pkg/snapshot"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := logging.NewJSONLogger(os.Stderr, logging.ParseLevel(cfg.LogLevel))
	logging.SetDefaultLogger(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("Run failed", logging.Error(err))
		os.Exit(1)
	}
}

func run(cfg *Config, logger logging.Logger) error {
	reg := metrics.DefaultRegistry()
	if cfg.MetricsListen != "" {
		serveMetrics(cfg.MetricsListen, reg, logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.Timeout))
		defer cancel()
	}

	el, err := loadEdgeList(ctx, cfg, reg, logger)
	if err != nil {
		return err
	}
	logger.Info("Interaction network loaded",
		logging.Vertices(el.NumVertices()),
		logging.Edges(el.NumEdges()),
	)
	reg.SetGraphSize(el.NumVertices(), el.NumEdges())

	if cfg.SaveSnapshot != "" {
		start := time.Now()
		written, err := snapshot.Write(cfg.SaveSnapshot, el)
		if err != nil {
			return fmt.Errorf("saving snapshot: %w", err)
		}
		reg.RecordSnapshotWrite(time.Since(start), written)
		logger.Info("Snapshot saved", logging.Path(cfg.SaveSnapshot), logging.Int64("bytes", written))
	}

	g, err := el.Build()
	if err != nil {
		return fmt.Errorf("building graph: %w", err)
	}

	comps := components.Find(g)
	logger.Info("Connected components", logging.Count(comps.Count))

	opts, err := cfg.EngineOptions()
	if err != nil {
		return err
	}

	res, err := mcode.FindComplexes(ctx, g, opts)
	if err != nil {
		reg.RecordRun("error", 0, 0)
		return fmt.Errorf("clustering: %w", err)
	}
	reg.RecordRun("success", res.Stats.SeedsExpanded, res.Stats.CandidatesEmitted)
	reg.SetGraphShape(comps.Count, res.Stats.MaxCoreness)
	recordStages(reg, res.Stats)
	for _, c := range res.Complexes {
		reg.ObserveComplex(c.Score, c.Size())
	}

	rep := report.New(res, el.Names)
	rep.Stats.Components = comps.Count

	if err := writeReport(cfg, rep); err != nil {
		return err
	}
	if cfg.ComponentsOut != "" {
		if err := writeComponents(cfg.ComponentsOut, comps, el.Names); err != nil {
			return err
		}
		logger.Info("Components written", logging.Path(cfg.ComponentsOut))
	}
	if cfg.DatabaseURL != "" {
		store, err := resultstore.NewStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("connecting result store: %w", err)
		}
		defer store.Close()
		if err := store.SaveRun(ctx, rep); err != nil {
			return err
		}
		logger.Info("Run exported", logging.RunID(res.RunID))
	}

	logger.Info("Clustering complete",
		logging.RunID(res.RunID),
		logging.Complexes(len(res.Complexes)),
		logging.Latency(res.Stats.Elapsed),
	)
	return nil
}

// loadEdgeList resolves the input to a local file and parses it, or
// short-circuits through a snapshot.
func loadEdgeList(ctx context.Context, cfg *Config, reg *metrics.Registry, logger logging.Logger) (*dataset.EdgeList, error) {
	if cfg.LoadSnapshot != "" {
		el, err := snapshot.Load(cfg.LoadSnapshot)
		if err != nil {
			reg.RecordSnapshotLoad("error")
			return nil, fmt.Errorf("loading snapshot: %w", err)
		}
		reg.RecordSnapshotLoad("success")
		logger.Info("Snapshot loaded", logging.Path(cfg.LoadSnapshot))
		return el, nil
	}

	if cfg.Input == "" {
		return nil, errors.New("-input is required (or -load-snapshot)")
	}

	fetcher := &dataset.Fetcher{CacheDir: cfg.CacheDir, Metrics: reg, Logger: logger}
	if strings.HasPrefix(cfg.Input, "s3://") || strings.HasPrefix(cfg.Mapping, "s3://") {
		s3c, err := dataset.NewS3Client(ctx, dataset.S3ClientOptions{
			Region:    cfg.S3Region,
			Anonymous: cfg.S3Anonymous,
		})
		if err != nil {
			return nil, err
		}
		fetcher.S3 = s3c
	}

	inputPath, err := fetcher.Fetch(ctx, cfg.Input)
	if err != nil {
		return nil, err
	}
	mappingPath := ""
	if cfg.Mapping != "" {
		if mappingPath, err = fetcher.Fetch(ctx, cfg.Mapping); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	el, stats, err := parseFile(inputPath, mappingPath, cfg)
	if err != nil {
		return nil, err
	}
	reg.RecordStage(metrics.StageParse, time.Since(start))
	reg.RecordParse(cfg.Format, stats.Accepted, stats.BelowThreshold, stats.Unmapped, stats.SelfInteractions, stats.Duplicates)
	logger.Info("Dataset parsed",
		logging.Dataset(cfg.Format),
		logging.Int("rows", stats.RowsRead),
		logging.Int("accepted", stats.Accepted),
		logging.Int("below_threshold", stats.BelowThreshold),
		logging.Int("unmapped", stats.Unmapped),
	)
	return el, nil
}

func parseFile(path, mappingPath string, cfg *Config) (*dataset.EdgeList, dataset.ParseStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, dataset.ParseStats{}, err
	}
	defer f.Close()

	switch cfg.Format {
	case "bioplex":
		return dataset.ParseBioPlex(f, cfg.parseOptions())
	case "string":
		if mappingPath == "" {
			return nil, dataset.ParseStats{}, errors.New("-mapping is required for the string format")
		}
		mf, err := os.Open(mappingPath)
		if err != nil {
			return nil, dataset.ParseStats{}, err
		}
		defer mf.Close()
		mapping, err := dataset.ParseSTRINGMapping(mf)
		if err != nil {
			return nil, dataset.ParseStats{}, err
		}
		return dataset.ParseSTRING(f, mapping, cfg.parseOptions())
	case "csv":
		return dataset.ParseCleanedCSV(f, cfg.parseOptions())
	default:
		return nil, dataset.ParseStats{}, fmt.Errorf("unknown format %q (bioplex, string, csv)", cfg.Format)
	}
}

func writeReport(cfg *Config, rep *report.Report) error {
	out := os.Stdout
	if cfg.Out != "" {
		f, err := os.Create(cfg.Out)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}
	switch cfg.OutFormat {
	case "csv":
		return rep.WriteCSV(out)
	case "json":
		return rep.WriteJSON(out)
	default:
		return fmt.Errorf("unknown output format %q (csv, json)", cfg.OutFormat)
	}
}

func writeComponents(path string, comps *components.Result, names []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating components file: %w", err)
	}
	defer f.Close()
	return report.WriteComponentsCSV(f, comps, names)
}

func recordStages(reg *metrics.Registry, stats mcode.Stats) {
	reg.RecordStage(metrics.StageCoreness, stats.CorenessTime)
	reg.RecordStage(metrics.StageWeight, stats.WeightTime)
	reg.RecordStage(metrics.StageExpand, stats.ExpandTime)
	reg.RecordStage(metrics.StagePost, stats.PostTime)
}

// serveMetrics exposes the registry for long-running batch jobs.
func serveMetrics(addr string, reg *metrics.Registry, logger logging.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg.GetPrometheusRegistry(), promhttp.HandlerOpts{}))
	go func() {
		logger.Info("Metrics server listening", logging.String("addr", addr))
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Error("Metrics server failed", logging.Error(err))
		}
	}()
}
