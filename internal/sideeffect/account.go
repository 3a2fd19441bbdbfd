package sideeffect

import (
	"context"
	"fmt"

	"plan-fulfillment/internal/model"
	"plan-fulfillment/internal/repository"

	"github.com/google/uuid"
)

type accountProvisioner struct {
	customers repository.CustomerRepository
}

// NewAccountProvisioner creates the customer account for the buyer, or
// refreshes the plan on an existing one.
func NewAccountProvisioner(customers repository.CustomerRepository) SideEffect {
	return &accountProvisioner{customers: customers}
}

func (p *accountProvisioner) Name() string { return "account_provisioning" }

func (p *accountProvisioner) Apply(ctx context.Context, order *model.Order) error {
	err := p.customers.Upsert(ctx, &model.Customer{
		ID:    uuid.NewString(),
		Email: order.CustomerEmail,
		Name:  order.CustomerName,
		Phone: order.CustomerPhone,
		Plan:  order.Plan,
	})
	if err != nil {
		return fmt.Errorf("provision account for %s: %w", order.CustomerEmail, err)
	}
	return nil
}
