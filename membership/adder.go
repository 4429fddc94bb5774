package membership

import (
	"context"
	"log"

	"Gin_postgres_redis_companies/models"
	"Gin_postgres_redis_companies/policy"
)

// Adder adds an employee to a company by email address.
type Adder struct {
	Store Store
	Gate  policy.Gate
	Roles *policy.Catalog
}

func NewAdder(store Store, gate policy.Gate, roles *policy.Catalog) *Adder {
	return &Adder{Store: store, Gate: gate, Roles: roles}
}

// Add authorizes inviter for addCompanyEmployee, validates email and role,
// rejects emails already on the company, then attaches the (possibly new) user.
func (a *Adder) Add(ctx context.Context, inviter *models.User, c *models.Company, email, role string) error {
	if err := policy.Authorize(ctx, a.Gate, inviter, policy.ActionAddEmployee, c); err != nil {
		return err
	}
	if err := validateEmail(email); err != nil {
		return err
	}
	if err := validateRole(a.Roles, role); err != nil {
		return err
	}

	return a.Store.Transaction(ctx, func(ctx context.Context) error {
		exists, err := a.Store.HasUserWithEmail(ctx, c, email)
		if err != nil {
			return err
		}
		if exists {
			return invalid("email", "This user already belongs to the company.")
		}

		u, err := a.Store.FindOrCreateUserByEmail(ctx, email)
		if err != nil {
			return err
		}
		if err := a.Store.Attach(ctx, c, u, role); err != nil {
			return err
		}
		log.Printf("[membership] %s joined company %s as %q", u.Email, c.ID, role)
		return nil
	})
}
