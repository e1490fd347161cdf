package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	kitlog "github.com/go-kit/kit/log"

	"github.com/helioviz/orbitcast"
)

// NOTE: This tool fetches one state vector per body at the reference epoch, derives
// the orbital elements and exports one full orbit of sampled positions per body.
// The number of CPUs to use matters because each body runs on its own goroutine.

var (
	bodiesFlag string
	sourceFlag string
	outFlag    string
	epochFlag  string
	stepFlag   int
	xyzvFlag   bool
	numCPUs    int
)

func init() {
	flag.StringVar(&bodiesFlag, "bodies", "", "comma separated body names (default: all nine Horizons targets)")
	flag.StringVar(&sourceFlag, "source", "", "state vector source, horizons or vsop87 (default: config)")
	flag.StringVar(&outFlag, "out", "", "output directory (default: config)")
	flag.StringVar(&epochFlag, "epoch", "", "reference epoch as YYYY-MM-DD (default: config)")
	flag.IntVar(&stepFlag, "step", 0, "step size in days for all bodies (default: per-body table)")
	flag.BoolVar(&xyzvFlag, "xyzv", false, "also write .xyzv trajectory files")
	flag.IntVar(&numCPUs, "cpus", -1, "number of CPUs to use (set to 0 for max CPUs)")
}

func main() {
	flag.Parse()
	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	logger = kitlog.With(logger, "app", "orbitcast")
	orbitcast.SetLogger(logger)

	conf, err := orbitcast.LoadConfig()
	if err != nil {
		fatal(logger, err)
	}
	if outFlag != "" {
		conf.OutputDir = outFlag
	}
	if sourceFlag != "" {
		conf.Source = sourceFlag
	}
	if epochFlag != "" {
		dt, err := parseEpoch(epochFlag)
		if err != nil {
			fatal(logger, err)
		}
		conf.Epoch = dt
	}

	bodies, err := selectBodies(bodiesFlag)
	if err != nil {
		fatal(logger, err)
	}
	if stepFlag > 0 {
		for _, body := range bodies {
			conf.Steps[strings.ToLower(body.Name)] = stepFlag
		}
	}

	var src orbitcast.StateVectorSource
	switch conf.Source {
	case "horizons":
		src = orbitcast.NewHorizonsClient(conf.HorizonsURL)
	case "vsop87":
		src = orbitcast.NewVSOP87Source(conf.VSOP87Dir)
	default:
		fatal(logger, fmt.Errorf("unknown source '%s'", conf.Source))
	}

	availableCPUs := runtime.NumCPU()
	if numCPUs <= 0 || numCPUs > availableCPUs {
		numCPUs = availableCPUs
	}
	runtime.GOMAXPROCS(numCPUs)

	export := orbitcast.ExportConfig{OutputDir: conf.OutputDir, JSON: true, XYZV: xyzvFlag}
	batch := orbitcast.NewBatch(src, conf, export, logger)
	batch.SetWorkers(numCPUs)

	failed := 0
	for _, res := range batch.Run(context.Background(), bodies) {
		if res.Err != nil {
			failed++
			continue
		}
		logger.Log("level", "notice", "subsys", "main", "saved", orbitcast.PositionsFilename(export, res.Body.Name), "points", len(res.Samples))
	}
	if failed == len(bodies) {
		fatal(logger, fmt.Errorf("all %d bodies failed", failed))
	}
}

func parseEpoch(s string) (time.Time, error) {
	dt, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid epoch '%s': %w", s, err)
	}
	return dt.UTC(), nil
}

func selectBodies(list string) ([]orbitcast.CelestialObject, error) {
	if list == "" {
		return orbitcast.Planets, nil
	}
	var bodies []orbitcast.CelestialObject
	for _, name := range strings.Split(list, ",") {
		body, err := orbitcast.CelestialObjectFromString(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		bodies = append(bodies, body)
	}
	return bodies, nil
}

func fatal(logger kitlog.Logger, err error) {
	logger.Log("level", "critical", "subsys", "main", "err", err)
	os.Exit(1)
}
