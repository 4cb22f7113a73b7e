// Package bench fires repeated independent calls at a single route and
// summarizes their latencies.
//
// Every call goes through the route's full pipeline, so the numbers include
// merging, decoding and response normalization as well as the network.
package bench

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/rs/zerolog"

	"github.com/wesleyorama2/restful/restful"
	"github.com/wesleyorama2/restful/transport"
)

// Histogram range: 1 microsecond to 1 hour, 3 significant figures.
const (
	histogramMin     = 1
	histogramMax     = 3600000000
	histogramSigFigs = 3
)

// Target is anything that can be called like a route.
type Target interface {
	Request(ctx context.Context, params restful.Params) (*restful.Response, error)
}

// Options controls a run.
type Options struct {
	// Requests is the total number of calls (default: 1)
	Requests int

	// Concurrency is the number of workers issuing calls (default: 1)
	Concurrency int

	// Params are passed to every call
	Params restful.Params

	Logger zerolog.Logger
}

// Summary is the result of a run.
type Summary struct {
	Requests    int64         `json:"requests" yaml:"requests"`
	Successes   int64         `json:"successes" yaml:"successes"`
	Failures    int64         `json:"failures" yaml:"failures"`
	StatusCodes map[int]int64 `json:"statusCodes,omitempty" yaml:"statusCodes,omitempty"`
	Errors      int64         `json:"errors" yaml:"errors"`

	Elapsed           time.Duration `json:"elapsed" yaml:"elapsed"`
	RequestsPerSecond float64       `json:"requestsPerSecond" yaml:"requestsPerSecond"`

	Min  time.Duration `json:"min" yaml:"min"`
	Max  time.Duration `json:"max" yaml:"max"`
	Mean time.Duration `json:"mean" yaml:"mean"`
	P50  time.Duration `json:"p50" yaml:"p50"`
	P90  time.Duration `json:"p90" yaml:"p90"`
	P99  time.Duration `json:"p99" yaml:"p99"`
}

// SuccessRate returns the fraction of successful calls.
func (s *Summary) SuccessRate() float64 {
	if s.Requests == 0 {
		return 0
	}
	return float64(s.Successes) / float64(s.Requests)
}

// recorder collects results from concurrent workers.
type recorder struct {
	// RecordValue is not safe for concurrent use
	histMu sync.Mutex
	hist   *hdrhistogram.Histogram

	codesMu sync.Mutex
	codes   map[int]int64

	total     atomic.Int64
	successes atomic.Int64
	failures  atomic.Int64
	errs      atomic.Int64
}

func newRecorder() *recorder {
	return &recorder{
		hist:  hdrhistogram.New(histogramMin, histogramMax, histogramSigFigs),
		codes: make(map[int]int64),
	}
}

func (r *recorder) record(latency time.Duration, resp *restful.Response, err error) {
	micros := latency.Microseconds()
	if micros < histogramMin {
		micros = histogramMin
	}
	if micros > histogramMax {
		micros = histogramMax
	}

	r.histMu.Lock()
	_ = r.hist.RecordValue(micros)
	r.histMu.Unlock()

	r.total.Add(1)
	if err == nil {
		r.successes.Add(1)
		r.countCode(resp.Status.Code)
		return
	}

	r.failures.Add(1)
	var statusErr *transport.StatusError
	if errors.As(err, &statusErr) {
		r.countCode(statusErr.Code)
		return
	}
	r.errs.Add(1)
}

func (r *recorder) countCode(code int) {
	r.codesMu.Lock()
	r.codes[code]++
	r.codesMu.Unlock()
}

func (r *recorder) summary(elapsed time.Duration) *Summary {
	r.histMu.Lock()
	defer r.histMu.Unlock()

	s := &Summary{
		Requests:    r.total.Load(),
		Successes:   r.successes.Load(),
		Failures:    r.failures.Load(),
		Errors:      r.errs.Load(),
		StatusCodes: r.codes,
		Elapsed:     elapsed,
		Min:         time.Duration(r.hist.Min()) * time.Microsecond,
		Max:         time.Duration(r.hist.Max()) * time.Microsecond,
		Mean:        time.Duration(r.hist.Mean()) * time.Microsecond,
		P50:         time.Duration(r.hist.ValueAtQuantile(50)) * time.Microsecond,
		P90:         time.Duration(r.hist.ValueAtQuantile(90)) * time.Microsecond,
		P99:         time.Duration(r.hist.ValueAtQuantile(99)) * time.Microsecond,
	}
	if elapsed > 0 {
		s.RequestsPerSecond = float64(s.Requests) / elapsed.Seconds()
	}
	return s
}

// Run issues opts.Requests calls against target using opts.Concurrency
// workers. Cancelling ctx stops workers from picking up new calls; the
// summary covers the calls that were made.
func Run(ctx context.Context, target Target, opts Options) (*Summary, error) {
	if target == nil {
		return nil, errors.New("bench: nil target")
	}
	if opts.Requests <= 0 {
		opts.Requests = 1
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	if opts.Concurrency > opts.Requests {
		opts.Concurrency = opts.Requests
	}

	rec := newRecorder()
	jobs := make(chan struct{}, opts.Requests)
	for i := 0; i < opts.Requests; i++ {
		jobs <- struct{}{}
	}
	close(jobs)

	opts.Logger.Debug().
		Int("requests", opts.Requests).
		Int("concurrency", opts.Concurrency).
		Msg("starting bench")

	start := time.Now()
	var wg sync.WaitGroup
	for w := 0; w < opts.Concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range jobs {
				if ctx.Err() != nil {
					return
				}
				callStart := time.Now()
				resp, err := target.Request(ctx, opts.Params)
				rec.record(time.Since(callStart), resp, err)
				if err != nil {
					opts.Logger.Debug().Err(err).Msg("call failed")
				}
			}
		}()
	}
	wg.Wait()

	summary := rec.summary(time.Since(start))
	if summary.Requests == 0 && ctx.Err() != nil {
		return summary, fmt.Errorf("bench: %w", ctx.Err())
	}
	return summary, nil
}
