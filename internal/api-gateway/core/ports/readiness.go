package ports

import "context"

// ReadinessProbe checks that one backend is able to serve requests.
type ReadinessProbe interface {
	Name() string
	Check(ctx context.Context) error
}
