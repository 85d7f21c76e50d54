package health

import "context"

// StorePinger checks key-value store availability.
type StorePinger interface {
	Ping(ctx context.Context) error
}

// GenerationChecker checks text-generation provider availability.
type GenerationChecker interface {
	HealthCheck(ctx context.Context) error
}
