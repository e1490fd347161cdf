package orbitcast

import (
	"context"
	"runtime"
	"sync"
	"time"

	kitlog "github.com/go-kit/kit/log"
)

// StateVectorSource supplies one Sun-centered state vector per body at a given
// epoch. HorizonsClient and VSOP87Source both implement it.
type StateVectorSource interface {
	StateVector(ctx context.Context, body CelestialObject, epoch time.Time) (StateVector, error)
}

// BodyResult is the outcome of one body's derive+propagate pipeline.
type BodyResult struct {
	Body     CelestialObject
	Elements *OrbitalElements
	Samples  []Sample
	Err      error
}

// Batch runs the full pipeline across several bodies. Each body is independent, so
// the bodies fan out over a fixed worker count with a join at the end; a failing
// body is logged and skipped without aborting the rest.
type Batch struct {
	src     StateVectorSource
	conf    Config
	export  ExportConfig
	logger  kitlog.Logger
	workers int
}

// NewBatch creates a batch over the given source and configuration. A nil logger
// silences the run.
func NewBatch(src StateVectorSource, conf Config, export ExportConfig, logger kitlog.Logger) *Batch {
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	return &Batch{src: src, conf: conf, export: export, logger: logger, workers: runtime.NumCPU()}
}

// SetWorkers overrides the worker count.
func (b *Batch) SetWorkers(n int) {
	if n > 0 {
		b.workers = n
	}
}

// Run processes all bodies and returns one result per body, in input order.
func (b *Batch) Run(ctx context.Context, bodies []CelestialObject) []BodyResult {
	results := make([]BodyResult, len(bodies))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < b.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = b.runBody(ctx, bodies[idx])
			}
		}()
	}

feed:
	for idx := range bodies {
		select {
		case jobs <- idx:
		case <-ctx.Done():
			for rest := idx; rest < len(bodies); rest++ {
				results[rest] = BodyResult{Body: bodies[rest], Err: ctx.Err()}
			}
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	return results
}

func (b *Batch) runBody(ctx context.Context, body CelestialObject) BodyResult {
	res := BodyResult{Body: body}

	sv, err := b.src.StateVector(ctx, body, b.conf.Epoch)
	if err != nil {
		b.logger.Log("level", "warning", "subsys", "batch", "body", body.Name, "status", "skipped", "err", err)
		res.Err = err
		return res
	}

	el, err := NewElementsFromState(sv, Sun)
	if err != nil {
		b.logger.Log("level", "warning", "subsys", "batch", "body", body.Name, "status", "skipped", "err", err)
		res.Err = err
		return res
	}
	res.Elements = el

	step := b.conf.StepDaysFor(body)
	samples, err := Propagate(el, step)
	if err != nil {
		b.logger.Log("level", "error", "subsys", "batch", "body", body.Name, "step(d)", step, "err", err)
		res.Err = err
		return res
	}
	res.Samples = samples
	b.logger.Log("level", "info", "subsys", "batch", "body", body.Name, "orbit", el, "step(d)", step, "samples", len(samples))

	if !b.export.IsUseless() {
		if err := WritePositions(b.export, body.Name, samples); err != nil {
			b.logger.Log("level", "error", "subsys", "export", "body", body.Name, "err", err)
			res.Err = err
		}
	}
	return res
}
