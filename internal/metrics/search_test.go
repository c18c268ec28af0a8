package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegisterSearchMetrics_Idempotent(t *testing.T) {
	RegisterSearchMetrics()
	RegisterSearchMetrics() // second call must not panic on duplicate registration
}

func TestSearchRequestsTotal_Labels(t *testing.T) {
	c := SearchRequestsTotal.WithLabelValues("strict", "ur", "true")
	before := testutil.ToFloat64(c)
	c.Inc()
	if got := testutil.ToFloat64(c); got != before+1 {
		t.Errorf("counter = %f, want %f", got, before+1)
	}
}
