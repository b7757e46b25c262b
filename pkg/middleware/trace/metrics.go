package trace

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/scienceol/labportal"

type counters struct {
	recordsSaved metric.Int64Counter
	viewsSaved   metric.Int64Counter
	logins       metric.Int64Counter
}

var (
	metricsOnce sync.Once
	c           counters
)

// instruments created on the global meter are re-bound when InitTrace
// installs the real provider.
func load() *counters {
	metricsOnce.Do(func() {
		m := otel.Meter(meterName)
		c.recordsSaved, _ = m.Int64Counter("labportal.records.saved",
			metric.WithDescription("lab records created or updated"))
		c.viewsSaved, _ = m.Int64Counter("labportal.saved_views.saved",
			metric.WithDescription("saved views created or updated"))
		c.logins, _ = m.Int64Counter("labportal.logins",
			metric.WithDescription("login attempts by outcome"))
	})
	return &c
}

func RecordSaved(ctx context.Context, op string) {
	load().recordsSaved.Add(ctx, 1, metric.WithAttributes(attribute.String("op", op)))
}

func ViewSaved(ctx context.Context, op string) {
	load().viewsSaved.Add(ctx, 1, metric.WithAttributes(attribute.String("op", op)))
}

func Login(ctx context.Context, ok bool) {
	outcome := "failed"
	if ok {
		outcome = "ok"
	}
	load().logins.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
