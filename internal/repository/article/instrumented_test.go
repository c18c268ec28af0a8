package article

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kailas-cloud/duodex/internal/db"
	"github.com/kailas-cloud/duodex/internal/metrics"
)

func TestInstrumented_CountsErrors(t *testing.T) {
	ms := &mockStore{
		hgetAllFn: func(context.Context, string) (map[string]string, error) {
			return nil, errors.New("boom")
		},
	}
	r := NewInstrumented(New(ms, ""), nil)
	c := metrics.RepositoryErrorsTotal.WithLabelValues("get")
	before := testutil.ToFloat64(c)

	if _, err := r.Get(context.Background(), "a1"); err == nil {
		t.Fatal("expected error")
	}
	if got := testutil.ToFloat64(c); got != before+1 {
		t.Errorf("errors counter = %f, want %f", got, before+1)
	}
}

func TestInstrumented_NotFoundIsNotAnError(t *testing.T) {
	r := NewInstrumented(NewMemory(), nil)
	c := metrics.RepositoryErrorsTotal.WithLabelValues("get")
	before := testutil.ToFloat64(c)

	if _, err := r.Get(context.Background(), "missing"); err == nil {
		t.Fatal("expected not found")
	}
	if got := testutil.ToFloat64(c); got != before {
		t.Errorf("not found must not count as error: %f -> %f", before, got)
	}
}

func TestInstrumented_Delegates(t *testing.T) {
	ms := &mockStore{
		indexExistsFn: func(context.Context, string) (bool, error) { return true, nil },
		createIndexFn: func(context.Context, *db.IndexDefinition) error {
			t.Fatal("index exists; create must not be called")
			return nil
		},
	}
	r := NewInstrumented(New(ms, ""), nil)

	ready, err := r.IndexReady(context.Background())
	if err != nil || !ready {
		t.Fatalf("ready=%v err=%v", ready, err)
	}
	if created, err := r.EnsureIndex(context.Background()); err != nil || created {
		t.Fatalf("created=%v err=%v", created, err)
	}
}
