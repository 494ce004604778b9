package monitoring

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	return m.GetCounter().GetValue()
}

func TestObserveSubmission(t *testing.T) {
	Init()
	Init()

	before := counterValue(t, ResponsesSubmitted.WithLabelValues("tpl-metrics"))
	ObserveSubmission("tpl-metrics", "Good", 80)
	if got := counterValue(t, ResponsesSubmitted.WithLabelValues("tpl-metrics")); got != before+1 {
		t.Fatalf("submitted counter = %v, want %v", got, before+1)
	}

	ObserveValidationFailure("tpl-metrics")
	if got := counterValue(t, ValidationFailures.WithLabelValues("tpl-metrics")); got < 1 {
		t.Fatalf("validation failure counter = %v", got)
	}
}
