// Package sideeffect holds the best-effort actions fanned out after an
// order is paid. Each collaborator is invoked once per fulfillment and
// must tolerate at-least-once invocation; a failure is logged by the
// orchestrator and never blocks the other collaborators or the webhook
// response.
package sideeffect

import (
	"context"

	"plan-fulfillment/internal/model"
)

type SideEffect interface {
	Name() string
	Apply(ctx context.Context, order *model.Order) error
}
