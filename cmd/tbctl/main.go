// Command tbctl is this module's CLI entry point, matching the ambient
// stack's "stdlib flag (teacher's main.go wiring style; no REPL/shell
// parser per Non-goals)" — unlike the teacher's main.go, which starts an
// HTTP server, this module has no network-facing surface (spec.md §1
// Non-goals: "no HTTP/RPC surfaces"), so main wires two subcommands
// directly to the module's two programmatic entry points (spec.md §6):
// `sweep` drives profile.RunOneToAllProfile across every stop through
// orchestrate.Pool, and `query` drives ptl.RunQuery for one source/target
// pair.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap/zapcore"

	"github.com/transitcore/tripbased/config"
	"github.com/transitcore/tripbased/edgeflags"
	"github.com/transitcore/tripbased/orchestrate"
	"github.com/transitcore/tripbased/ptl"
	"github.com/transitcore/tripbased/splitgraph"
	"github.com/transitcore/tripbased/tlog"
	"github.com/transitcore/tripbased/transit"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "sweep":
		runSweep(os.Args[2:])
	case "query":
		runQuery(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: tbctl sweep -config FILE [-out FILE]")
	fmt.Fprintln(os.Stderr, "       tbctl query  -config FILE -source ID -time SECONDS -target ID")
}

func runSweep(args []string) {
	fs := flag.NewFlagSet("sweep", flag.ExitOnError)
	configPath := fs.String("config", "tbctl.yaml", "path to the yaml config file")
	outPath := fs.String("out", "", "path to write the merged edge-flag matrix (edgeflags.StoreMatrix); skipped if empty")
	fs.Parse(args)

	cfg, err := config.Read(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "tbctl: "+err.Error())
		os.Exit(1)
	}
	tlog.Init(os.Stderr, logLevel(cfg.LogLevel))
	defer tlog.Sync()

	data, err := transit.LoadData(cfg.Data.Transit)
	if err != nil {
		fmt.Fprintln(os.Stderr, "tbctl: loading transit data: "+err.Error())
		os.Exit(1)
	}
	split := splitgraph.Build(data)
	routeLabels := transit.BuildRouteLabels(data)

	sources := make([]transit.StopId, data.NumberOfStops())
	for i := range sources {
		sources[i] = transit.StopId(i)
	}

	pool := orchestrate.New(data, split, routeLabels, cfg.Preprocessing.NumWorkers, cfg.Preprocessing.RoundCap)
	matrix, err := orchestrate.Run(context.Background(), pool, sources)
	if err != nil {
		fmt.Fprintln(os.Stderr, "tbctl: sweep failed: "+err.Error())
		os.Exit(1)
	}

	fmt.Printf("tbctl: swept %d stops, %d edges x %d cells\n", len(sources), matrix.NumEdges(), matrix.NumCells())

	if *outPath != "" {
		if err := edgeflags.StoreMatrix(matrix, *outPath); err != nil {
			fmt.Fprintln(os.Stderr, "tbctl: writing matrix: "+err.Error())
			os.Exit(1)
		}
	}
}

func runQuery(args []string) {
	fs := flag.NewFlagSet("query", flag.ExitOnError)
	configPath := fs.String("config", "tbctl.yaml", "path to the yaml config file")
	source := fs.Int("source", 0, "source stop id")
	departure := fs.Int("time", 0, "departure time, seconds since midnight")
	target := fs.Int("target", 0, "target stop id")
	fs.Parse(args)

	cfg, err := config.Read(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "tbctl: "+err.Error())
		os.Exit(1)
	}
	tlog.Init(os.Stderr, logLevel(cfg.LogLevel))
	defer tlog.Sync()

	if cfg.Data.PTLLabels == "" {
		fmt.Fprintln(os.Stderr, "tbctl: query requires data.ptl-labels in the config")
		os.Exit(1)
	}

	transitData, err := transit.LoadData(cfg.Data.Transit)
	if err != nil {
		fmt.Fprintln(os.Stderr, "tbctl: loading transit data: "+err.Error())
		os.Exit(1)
	}

	ptlData, err := ptl.LoadData(cfg.Data.PTLLabels, transitData)
	if err != nil {
		fmt.Fprintln(os.Stderr, "tbctl: loading PTL labels: "+err.Error())
		os.Exit(1)
	}

	arrival := ptl.RunQuery(ptlData, transit.StopId(*source), int32(*departure), transit.StopId(*target))
	if !arrival.HasValue {
		fmt.Println("no journey found")
		os.Exit(1)
	}
	fmt.Printf("earliest arrival: %d\n", arrival.Value)
}

func logLevel(s string) zapcore.Level {
	switch s {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
