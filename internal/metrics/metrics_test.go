package metrics

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/aria-lang/hspflow/internal/alignment"
	"github.com/aria-lang/hspflow/internal/hit"
)

func TestResultLabel(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ResultOK},
		{"empty", &alignment.EmptyAlignmentError{}, ResultEmpty},
		{"wrapped shape", fmt.Errorf("hsp 2: %w", &alignment.ShapeMismatchError{}), ResultShapeMismatch},
		{"excess", &hit.ExcessPositionsError{Kind: "identical"}, ResultExcess},
		{"no hsps", fmt.Errorf("q vs t: %w", hit.ErrNoHSPs), ResultNoHSPs},
		{"other", errors.New("boom"), ResultOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResultLabel(tt.err))
		})
	}
}

func TestObserveHit(t *testing.T) {
	before := testutil.ToFloat64(hitsTotal.WithLabelValues(ResultOK))
	hspBefore := testutil.ToFloat64(hspsTotal)

	ObserveHit(3, time.Millisecond, nil)
	ObserveHit(1, time.Millisecond, &alignment.EmptyAlignmentError{})

	assert.Equal(t, before+1, testutil.ToFloat64(hitsTotal.WithLabelValues(ResultOK)))
	assert.Equal(t, hspBefore+3, testutil.ToFloat64(hspsTotal))
}

func TestObserveBatch(t *testing.T) {
	before := testutil.ToFloat64(batchesTotal.WithLabelValues("aborted"))
	ObserveBatch(true)
	assert.Equal(t, before+1, testutil.ToFloat64(batchesTotal.WithLabelValues("aborted")))
}

func TestObserveRequest(t *testing.T) {
	c := httpRequests.WithLabelValues("POST", "/api/region", "200")
	before := testutil.ToFloat64(c)
	ObserveRequest("POST", "/api/region", 200, 2*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(c))
}
