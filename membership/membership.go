// Package membership holds the write-side actions on company membership:
// adding employees, removing them, changing roles and deleting companies.
// Every action authorizes through the policy gate before touching storage.
package membership

import (
	"context"
	"fmt"

	"Gin_postgres_redis_companies/models"
	"Gin_postgres_redis_companies/policy"

	"github.com/go-playground/validator/v10"
)

// Store is the slice of the repository the actions need.
type Store interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
	HasUserWithEmail(ctx context.Context, c *models.Company, email string) (bool, error)
	FindOrCreateUserByEmail(ctx context.Context, email string) (*models.User, error)
	MemberRole(ctx context.Context, companyID, userID string) (string, bool, error)
	Attach(ctx context.Context, c *models.Company, u *models.User, role string) error
	UpdateRole(ctx context.Context, c *models.Company, u *models.User, role string) error
	RemoveUser(ctx context.Context, c *models.Company, u *models.User) error
	PurgeCompany(ctx context.Context, c *models.Company) error
}

// ValidationError is a rejected input; rendered as 422.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

var validate = validator.New()

func validateEmail(email string) error {
	if err := validate.Var(email, "required,email"); err != nil {
		return invalid("email", "The email field must be a valid email address.")
	}
	return nil
}

func validateRole(roles *policy.Catalog, role string) error {
	if !roles.HasRoles() {
		return nil
	}
	if role == "" {
		return invalid("role", "The role field is required.")
	}
	if _, ok := roles.Find(role); !ok {
		return invalid("role", "The selected role is invalid.")
	}
	return nil
}
