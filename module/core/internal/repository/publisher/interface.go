package publisher

import (
	"context"

	"github.com/nandanugg/geofence-tracker/module/core/domain"
)

type TransitionPublisher interface {
	PublishTransition(ctx context.Context, tr *domain.Transition) error
}
