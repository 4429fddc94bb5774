// Package invitations consumes pending company invitations.
//
// An invitation is pending until it is accepted or cancelled; both paths
// delete it. Accepting needs no authorization beyond holding the link,
// cancelling requires removeCompanyEmployee on the invitation's company.
package invitations

import (
	"context"
	"fmt"
	"log"

	"Gin_postgres_redis_companies/models"
	"Gin_postgres_redis_companies/policy"
)

// Store is what the handler reads and deletes.
type Store interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
	FindInvitationByID(ctx context.Context, id string) (*models.CompanyInvitation, error)
	FindInvitationForUpdate(ctx context.Context, id string) (*models.CompanyInvitation, error)
	FindCompanyByID(ctx context.Context, id string) (*models.Company, error)
	FindOwner(ctx context.Context, c *models.Company) (*models.User, error)
	DeleteInvitation(ctx context.Context, inv *models.CompanyInvitation) error
}

// EmployeeAdder creates the membership; its errors reach the caller untouched.
type EmployeeAdder interface {
	Add(ctx context.Context, inviter *models.User, c *models.Company, email, role string) error
}

// Notification is the banner shown after a successful accept.
type Notification struct {
	Company *models.Company `json:"company"`
	Message string          `json:"message"`
}

type Handler struct {
	Store Store
	Adder EmployeeAdder
	Gate  policy.Gate
}

func NewHandler(store Store, adder EmployeeAdder, gate policy.Gate) *Handler {
	return &Handler{Store: store, Adder: adder, Gate: gate}
}

// Accept locks the invitation, adds the invited email to the company on the
// owner's behalf and deletes the invitation, all in one transaction. A failed
// add rolls back and leaves the invitation pending.
func (h *Handler) Accept(ctx context.Context, invitationID string) (Notification, error) {
	var company *models.Company
	err := h.Store.Transaction(ctx, func(ctx context.Context) error {
		inv, err := h.Store.FindInvitationForUpdate(ctx, invitationID)
		if err != nil {
			return err
		}
		company, err = h.Store.FindCompanyByID(ctx, inv.CompanyID)
		if err != nil {
			return err
		}
		owner, err := h.Store.FindOwner(ctx, company)
		if err != nil {
			return err
		}
		if err := h.Adder.Add(ctx, owner, company, inv.Email, inv.Role); err != nil {
			return err
		}
		return h.Store.DeleteInvitation(ctx, inv)
	})
	if err != nil {
		return Notification{}, err
	}

	log.Printf("[invitation] %s accepted (company %s)", invitationID, company.ID)
	return Notification{
		Company: company,
		Message: fmt.Sprintf("Great! You have accepted the invitation to join the %s company.", company.Name),
	}, nil
}

// Cancel deletes the invitation when user may remove employees from its company.
func (h *Handler) Cancel(ctx context.Context, user *models.User, invitationID string) error {
	inv, err := h.Store.FindInvitationByID(ctx, invitationID)
	if err != nil {
		return err
	}
	company, err := h.Store.FindCompanyByID(ctx, inv.CompanyID)
	if err != nil {
		return err
	}
	if err := policy.Authorize(ctx, h.Gate, user, policy.ActionRemoveEmployee, company); err != nil {
		return err
	}
	if err := h.Store.DeleteInvitation(ctx, inv); err != nil {
		return err
	}
	log.Printf("[invitation] %s cancelled by %s", invitationID, user.ID)
	return nil
}
