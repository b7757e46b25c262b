package dashboard

import "context"

// Service recomputes the dashboard on every call.
type Service interface {
	Summary(ctx context.Context) (*Summary, error)
}
