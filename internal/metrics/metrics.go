// Package metrics exposes Prometheus instruments for alignment analysis.
package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/aria-lang/hspflow/internal/alignment"
	"github.com/aria-lang/hspflow/internal/hit"
)

// Result labels.
const (
	ResultOK            = "ok"
	ResultEmpty         = "empty_alignment"
	ResultShapeMismatch = "shape_mismatch"
	ResultExcess        = "excess_positions"
	ResultNoHSPs        = "no_hsps"
	ResultOther         = "error"
)

var (
	hitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hspflow_hits_total",
		Help: "Hits prepared, by result",
	}, []string{"result"})

	hspsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hspflow_hsps_total",
		Help: "HSPs decoded into match lines and position sets",
	})

	prepareDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "hspflow_hit_prepare_duration_seconds",
		Help:    "Time spent preparing one hit",
		Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1},
	})

	batchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hspflow_batches_total",
		Help: "Batch runs, by outcome",
	}, []string{"outcome"})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hspflow_http_requests_total",
		Help: "HTTP requests, by method, route and status",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hspflow_http_request_duration_seconds",
		Help:    "HTTP request latency, by route",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
)

// ResultLabel maps a prepare error onto a metric label.
func ResultLabel(err error) string {
	var (
		empty  *alignment.EmptyAlignmentError
		shape  *alignment.ShapeMismatchError
		excess *hit.ExcessPositionsError
	)
	switch {
	case err == nil:
		return ResultOK
	case errors.As(err, &empty):
		return ResultEmpty
	case errors.As(err, &shape):
		return ResultShapeMismatch
	case errors.As(err, &excess):
		return ResultExcess
	case errors.Is(err, hit.ErrNoHSPs):
		return ResultNoHSPs
	default:
		return ResultOther
	}
}

// ObserveHit records one prepared hit.
func ObserveHit(hsps int, elapsed time.Duration, err error) {
	hitsTotal.WithLabelValues(ResultLabel(err)).Inc()
	prepareDuration.Observe(elapsed.Seconds())
	if err == nil {
		hspsTotal.Add(float64(hsps))
	}
}

// ObserveBatch records the outcome of a batch run.
func ObserveBatch(aborted bool) {
	if aborted {
		batchesTotal.WithLabelValues("aborted").Inc()
		return
	}
	batchesTotal.WithLabelValues("completed").Inc()
}

// ObserveRequest records one served HTTP request. route is the matched
// router pattern, not the raw path.
func ObserveRequest(method, route string, status int, elapsed time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}
