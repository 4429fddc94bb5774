// Package dbtest spins up an in-memory SQLite database with the full schema
// and offers small seeding helpers for repository-level tests.
package dbtest

import (
	"context"
	"testing"

	"Gin_postgres_redis_companies/db"
	"Gin_postgres_redis_companies/models"

	"github.com/stretchr/testify/require"
)

func NewRepo(t *testing.T) *db.Repo {
	t.Helper()
	conn, err := db.Open(db.Options{Driver: "sqlite", Path: ":memory:", Silent: true})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db.NewRepo(conn)
}

func User(t *testing.T, repo *db.Repo, email string) *models.User {
	t.Helper()
	u := &models.User{Name: email, Email: email}
	require.NoError(t, repo.CreateUser(context.Background(), u))
	return u
}

func Company(t *testing.T, repo *db.Repo, owner *models.User, name string) *models.Company {
	t.Helper()
	c, err := repo.CreateCompany(context.Background(), owner, name, false)
	require.NoError(t, err)
	return c
}

func Member(t *testing.T, repo *db.Repo, c *models.Company, u *models.User, role string) {
	t.Helper()
	require.NoError(t, repo.Attach(context.Background(), c, u, role))
}

func Invitation(t *testing.T, repo *db.Repo, c *models.Company, email, role string) *models.CompanyInvitation {
	t.Helper()
	inv, err := repo.CreateInvitation(context.Background(), c, email, role)
	require.NoError(t, err)
	return inv
}

// CurrentCompany 把用户的当前公司指向 c，并重新读回
func CurrentCompany(t *testing.T, repo *db.Repo, u *models.User, c *models.Company) {
	t.Helper()
	require.NoError(t, repo.SwitchCurrentCompany(context.Background(), u, c))
}

func Reload(t *testing.T, repo *db.Repo, u *models.User) *models.User {
	t.Helper()
	got, err := repo.FindUserByID(context.Background(), u.ID)
	require.NoError(t, err)
	return got
}
