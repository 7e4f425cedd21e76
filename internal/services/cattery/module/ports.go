package module

import (
	"context"

	"cattery/internal/services/cattery/domain"
)

// Runner is a background loop owned by the module
type Runner interface {
	Run(ctx context.Context) error
}

// Ports exposed by the cattery module
type Ports struct {
	Service   domain.ServicePort
	Caretaker Runner
}
