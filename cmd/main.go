package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/andrew200611/Lab3-mutex/bench"
	"github.com/andrew200611/Lab3-mutex/config"
	"github.com/andrew200611/Lab3-mutex/register"
	"github.com/andrew200611/Lab3-mutex/report"
	"github.com/andrew200611/Lab3-mutex/workload"
	"github.com/charmbracelet/log"
	"github.com/google/gops/agent"
	"golang.org/x/sync/errgroup"
)

const usage = `usage: %s [generate|run|all] [flags]

  generate  write the workload files
  run       benchmark existing workload files
  all       generate, then run (default)

`

func main() {
	os.Exit(execute(os.Args[1:]))
}

// execute runs one command and returns the process exit code. Everything it
// starts, the gops agent included, is stopped before it returns.
func execute(args []string) int {
	command := "all"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		command, args = args[0], args[1:]
	}

	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), usage, os.Args[0])
		fs.PrintDefaults()
	}
	configPath := fs.String("config", "", "TOML config file (defaults to the reference experiment)")
	dir := fs.String("dir", "", "directory for workload files")
	out := fs.String("out", "", "directory for CSV, JSON and chart results")
	commands := fs.Int("commands", 0, "commands per generated workload file")
	trials := fs.Int("trials", 0, "timed runs averaged per configuration")
	seed := fs.Uint64("seed", 0, "generation seed, 0 for a random one")
	level := fs.String("log-level", "", "debug, info, warn or error")
	gops := fs.Bool("gops", false, "start a gops diagnostics agent")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	switch command {
	case "generate", "run", "all":
	default:
		fs.Usage()
		log.Errorf("unknown command: %s", command)
		return 2
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Errorf("can't load config %s: %v", *configPath, err)
			return 1
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dir":
			cfg.Dir = *dir
		case "out":
			cfg.Output = *out
		case "commands":
			cfg.Commands = *commands
		case "trials":
			cfg.Trials = *trials
		case "seed":
			cfg.Seed = *seed
		case "log-level":
			cfg.LogLevel = *level
		}
	})
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		log.Errorf("invalid config: %v", err)
		return 1
	}

	lvl, _ := log.ParseLevel(cfg.LogLevel)
	log.SetLevel(lvl)

	if *gops {
		if err := agent.Listen(agent.Options{}); err != nil {
			log.Warnf("gops agent not started: %v", err)
		} else {
			defer agent.Close()
		}
	}

	switch command {
	case "generate":
		if err := generate(cfg); err != nil {
			log.Errorf("generation failed: %v", err)
			return 1
		}
	case "run":
		run(cfg)
	case "all":
		if err := generate(cfg); err != nil {
			log.Errorf("generation failed, benchmarking what is available: %v", err)
		}
		run(cfg)
	}
	return 0
}

// generate writes every workload file in parallel. Each failure is logged; the
// first one is returned once all workloads are done.
func generate(cfg *config.Config) error {
	log.Infof("generating %d workload files of %d commands in %s", len(cfg.Workloads), cfg.Commands, cfg.Dir)
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return err
	}

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, w := range cfg.Workloads {
		path := cfg.Path(w)
		gen := cfg.Generator(i)
		g.Go(func() error {
			ops, err := gen.Generate()
			if err != nil {
				log.Errorf("workload %s: %v", w.Name, err)
				return err
			}
			if err := workload.Save(path, ops); err != nil {
				log.Errorf("workload %s: %v", w.Name, err)
				return err
			}

			counts := workload.Counts(ops)
			kv := []interface{}{"workload", w.Name, "file", path}
			for _, m := range w.Mix {
				kv = append(kv, m.Command, counts[m.Command])
			}
			log.Info("workload generated", kv...)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	log.Infof("workload generation finished")
	return nil
}

// run sweeps every workload over every thread count and reports the means.
func run(cfg *config.Config) {
	log.Infof("per-field mutex register, %d fields; %d trials per configuration; GOMAXPROCS=%d",
		register.DefaultFields, cfg.Trials, runtime.GOMAXPROCS(0))

	sinks := report.Multi{report.NewConsole(os.Stdout)}
	if cfg.Output != "" {
		if err := os.MkdirAll(cfg.Output, 0o755); err != nil {
			log.Errorf("can't create results directory %s: %v", cfg.Output, err)
		} else {
			sinks = append(sinks,
				report.NewCSV(filepath.Join(cfg.Output, "results.csv")),
				report.NewJSON(filepath.Join(cfg.Output, "results.json")),
				report.NewChart(filepath.Join(cfg.Output, "results.png")),
			)
		}
	}

	summary := bench.NewRunner(cfg.Trials).Sweep(cfg.Specs(), cfg.Threads, sinks)
	if err := sinks.Flush(); err != nil {
		log.Errorf("can't write results: %v", err)
	}

	if len(summary.Failed) > 0 {
		log.Warnf("%d of %d configurations produced no timing",
			len(summary.Failed), len(summary.Failed)+len(summary.Results))
	}
}
