package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestFormatMetricsListsAllKeys(t *testing.T) {
	IncrQuizRequests()
	out := FormatMetrics()
	for _, k := range metricKeys {
		if !strings.Contains(out, k+" ") {
			t.Errorf("FormatMetrics() missing key %q", k)
		}
	}
	if GetMetrics()["quiz_requests"] < 1 {
		t.Error("quiz_requests counter not incremented")
	}
}

func TestTrackOperationPassesError(t *testing.T) {
	want := errors.New("boom")
	got := TrackOperation(context.Background(), "test", func(context.Context) error { return want })
	if !errors.Is(got, want) {
		t.Errorf("TrackOperation() = %v, want %v", got, want)
	}
}
