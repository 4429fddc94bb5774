package db_test

import (
	"context"
	"errors"
	"testing"

	"Gin_postgres_redis_companies/db/dbtest"
	"Gin_postgres_redis_companies/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAllUsersContainsOwnerOnce(t *testing.T) {
	repo := dbtest.NewRepo(t)
	ctx := context.Background()

	owner := dbtest.User(t, repo, "owner@x.com")
	member := dbtest.User(t, repo, "member@x.com")
	c := dbtest.Company(t, repo, owner, "Acme")
	dbtest.Member(t, repo, c, member, "employee")

	users, err := repo.AllUsers(ctx, c)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{owner.ID, member.ID}, ids(users))

	// 所有者同时是显式成员，仍然只出现一次
	dbtest.Member(t, repo, c, owner, "admin")
	users, err = repo.AllUsers(ctx, c)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{owner.ID, member.ID}, ids(users))
}

func TestListMembersCarriesRole(t *testing.T) {
	repo := dbtest.NewRepo(t)
	owner := dbtest.User(t, repo, "owner@x.com")
	member := dbtest.User(t, repo, "member@x.com")
	c := dbtest.Company(t, repo, owner, "Acme")
	dbtest.Member(t, repo, c, member, "employee")

	members, err := repo.ListMembers(context.Background(), c)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, member.ID, members[0].ID)
	assert.Equal(t, "member@x.com", members[0].Email)
	assert.Equal(t, "employee", members[0].Role)
	assert.False(t, members[0].JoinedAt.IsZero())
}

func TestHasUser(t *testing.T) {
	repo := dbtest.NewRepo(t)
	ctx := context.Background()
	owner := dbtest.User(t, repo, "owner@x.com")
	member := dbtest.User(t, repo, "member@x.com")
	stranger := dbtest.User(t, repo, "stranger@x.com")
	c := dbtest.Company(t, repo, owner, "Acme")
	dbtest.Member(t, repo, c, member, "employee")

	for _, tc := range []struct {
		name string
		user *models.User
		want bool
	}{
		{"owner", owner, true},
		{"member", member, true},
		{"stranger", stranger, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := repo.HasUser(ctx, c, tc.user)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestHasUserWithEmailIsCaseSensitive(t *testing.T) {
	repo := dbtest.NewRepo(t)
	ctx := context.Background()
	owner := dbtest.User(t, repo, "owner@x.com")
	member := dbtest.User(t, repo, "member@x.com")
	c := dbtest.Company(t, repo, owner, "Acme")
	dbtest.Member(t, repo, c, member, "employee")

	ok, err := repo.HasUserWithEmail(ctx, c, "owner@x.com")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.HasUserWithEmail(ctx, c, "member@x.com")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.HasUserWithEmail(ctx, c, "Member@x.com")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRemoveUserClearsCurrentCompany(t *testing.T) {
	repo := dbtest.NewRepo(t)
	ctx := context.Background()
	owner := dbtest.User(t, repo, "owner@x.com")
	member := dbtest.User(t, repo, "member@x.com")
	c := dbtest.Company(t, repo, owner, "Acme")
	other := dbtest.Company(t, repo, owner, "Other")
	dbtest.Member(t, repo, c, member, "employee")
	dbtest.CurrentCompany(t, repo, member, c)

	require.NoError(t, repo.RemoveUser(ctx, c, member))

	ok, err := repo.HasUser(ctx, c, member)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, member.CurrentCompanyID)
	assert.Nil(t, dbtest.Reload(t, repo, member).CurrentCompanyID)

	// 当前公司是别的公司时不动它
	dbtest.Member(t, repo, c, member, "employee")
	dbtest.CurrentCompany(t, repo, member, other)
	require.NoError(t, repo.RemoveUser(ctx, c, member))
	got := dbtest.Reload(t, repo, member)
	require.NotNil(t, got.CurrentCompanyID)
	assert.Equal(t, other.ID, *got.CurrentCompanyID)
}

func TestRemoveUserIsIdempotent(t *testing.T) {
	repo := dbtest.NewRepo(t)
	owner := dbtest.User(t, repo, "owner@x.com")
	stranger := dbtest.User(t, repo, "stranger@x.com")
	c := dbtest.Company(t, repo, owner, "Acme")

	require.NoError(t, repo.RemoveUser(context.Background(), c, stranger))
	require.NoError(t, repo.RemoveUser(context.Background(), c, stranger))
}

func TestRemoveUserKeepsOwnerAccess(t *testing.T) {
	repo := dbtest.NewRepo(t)
	ctx := context.Background()
	owner := dbtest.User(t, repo, "owner@x.com")
	c := dbtest.Company(t, repo, owner, "Acme")
	dbtest.Member(t, repo, c, owner, "admin")

	require.NoError(t, repo.RemoveUser(ctx, c, owner))
	ok, err := repo.HasUser(ctx, c, owner)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPurgeCompany(t *testing.T) {
	repo := dbtest.NewRepo(t)
	ctx := context.Background()
	owner := dbtest.User(t, repo, "owner@x.com")
	m1 := dbtest.User(t, repo, "m1@x.com")
	m2 := dbtest.User(t, repo, "m2@x.com")
	c := dbtest.Company(t, repo, owner, "Acme")
	keep := dbtest.Company(t, repo, owner, "Keep")
	dbtest.Member(t, repo, c, m1, "employee")
	dbtest.Member(t, repo, c, m2, "manager")
	dbtest.Member(t, repo, keep, m2, "employee")
	dbtest.Invitation(t, repo, c, "new@x.com", "employee")
	dbtest.CurrentCompany(t, repo, owner, c)
	dbtest.CurrentCompany(t, repo, m1, c)
	dbtest.CurrentCompany(t, repo, m2, keep)

	require.NoError(t, repo.PurgeCompany(ctx, c))

	_, err := repo.FindCompanyByID(ctx, c.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	var joins int64
	require.NoError(t, repo.DB.Model(&models.Employeeship{}).Where("company_id = ?", c.ID).Count(&joins).Error)
	assert.Zero(t, joins)

	var pointing int64
	require.NoError(t, repo.DB.Model(&models.User{}).Where("current_company_id = ?", c.ID).Count(&pointing).Error)
	assert.Zero(t, pointing)

	n, err := repo.CountCompanyInvitations(ctx, c.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	// 其他公司不受影响
	got := dbtest.Reload(t, repo, m2)
	require.NotNil(t, got.CurrentCompanyID)
	assert.Equal(t, keep.ID, *got.CurrentCompanyID)
	members, err := repo.ListMembers(ctx, keep)
	require.NoError(t, err)
	assert.Len(t, members, 1)
}

func TestPurgeCompanyRollsBackOnFailure(t *testing.T) {
	repo := dbtest.NewRepo(t)
	ctx := context.Background()
	owner := dbtest.User(t, repo, "owner@x.com")
	m1 := dbtest.User(t, repo, "m1@x.com")
	c := dbtest.Company(t, repo, owner, "Acme")
	dbtest.Member(t, repo, c, m1, "employee")
	dbtest.CurrentCompany(t, repo, m1, c)

	boom := errors.New("boom")
	err := repo.Transaction(ctx, func(ctx context.Context) error {
		if err := repo.PurgeCompany(ctx, c); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = repo.FindCompanyByID(ctx, c.ID)
	require.NoError(t, err)
	members, err := repo.ListMembers(ctx, c)
	require.NoError(t, err)
	assert.Len(t, members, 1)
	got := dbtest.Reload(t, repo, m1)
	require.NotNil(t, got.CurrentCompanyID)
	assert.Equal(t, c.ID, *got.CurrentCompanyID)
}

func TestUpdateRole(t *testing.T) {
	repo := dbtest.NewRepo(t)
	ctx := context.Background()
	owner := dbtest.User(t, repo, "owner@x.com")
	member := dbtest.User(t, repo, "member@x.com")
	stranger := dbtest.User(t, repo, "stranger@x.com")
	c := dbtest.Company(t, repo, owner, "Acme")
	dbtest.Member(t, repo, c, member, "employee")

	require.NoError(t, repo.UpdateRole(ctx, c, member, "manager"))
	role, ok, err := repo.MemberRole(ctx, c.ID, member.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "manager", role)

	assert.ErrorIs(t, repo.UpdateRole(ctx, c, stranger, "manager"), gorm.ErrRecordNotFound)
}

func ids(users []models.User) []string {
	out := make([]string, 0, len(users))
	for _, u := range users {
		out = append(out, u.ID)
	}
	return out
}
