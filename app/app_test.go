package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"Gin_postgres_redis_companies/db/dbtest"
	"Gin_postgres_redis_companies/links"
	"Gin_postgres_redis_companies/membership"
	"Gin_postgres_redis_companies/policy"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestErrorResponse(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{gorm.ErrRecordNotFound, http.StatusNotFound},
		{fmt.Errorf("load: %w", gorm.ErrRecordNotFound), http.StatusNotFound},
		{policy.ErrForbidden, http.StatusForbidden},
		{fmt.Errorf("%w: expired", links.ErrInvalidSignature), http.StatusForbidden},
		{&membership.ValidationError{Field: "email", Message: "taken"}, http.StatusUnprocessableEntity},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		status, _ := ErrorResponse(tc.err)
		assert.Equal(t, tc.want, status, tc.err.Error())
	}
}

func TestRenderErrorsLeavesWrittenResponses(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RenderErrors())
	r.GET("/written", func(c *gin.Context) {
		_ = c.Error(errors.New("logged only"))
		c.JSON(http.StatusTeapot, H{"ok": false})
	})
	r.GET("/missing", func(c *gin.Context) {
		_ = c.Error(gorm.ErrRecordNotFound)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/written", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSignedInvitation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	signer := links.NewSigner("secret", "", time.Hour)
	r := gin.New()
	r.Use(RenderErrors())
	r.GET("/i/:invitation", SignedInvitation(signer, "invitation"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	sig, err := signer.Sign("abc")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/i/abc?signature="+sig, nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/i/other?signature="+sig, nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("INVITE_LINK_TTL_HOURS", "nope")
	t.Setenv("BOOTSTRAP_EMAIL", "Owner@X.com")

	cfg := LoadConfig()
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "/dashboard", cfg.HomePath)
	assert.Equal(t, 72*time.Hour, cfg.InviteLinkTTL)
	assert.Equal(t, "owner@x.com", cfg.BootstrapEmail)
	assert.Equal(t, "3001", cfg.Port)
}

func TestBootstrapOwner(t *testing.T) {
	repo := dbtest.NewRepo(t)
	ctx := context.Background()
	cfg := Config{BootstrapEmail: "boss@x.com"}

	BootstrapOwner(ctx, cfg, repo)
	BootstrapOwner(ctx, cfg, repo)

	u, err := repo.FindUserByEmail(ctx, "boss@x.com")
	require.NoError(t, err)
	n, err := repo.CountOwnedCompanies(ctx, u.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	require.NotNil(t, u.CurrentCompanyID)

	c, err := repo.FindCompanyByID(ctx, *u.CurrentCompanyID)
	require.NoError(t, err)
	assert.True(t, c.PersonalCompany)
	assert.Equal(t, "boss's Company", c.Name)
}
