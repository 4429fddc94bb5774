// app/bootstrap.go
package app

import (
	"context"
	"log"

	"Gin_postgres_redis_companies/db"
)

// BootstrapOwner 确保 BOOTSTRAP_EMAIL 对应的用户存在并拥有一个个人公司
func BootstrapOwner(ctx context.Context, cfg Config, repo *db.Repo) {
	if cfg.BootstrapEmail == "" {
		return
	}
	err := repo.Transaction(ctx, func(ctx context.Context) error {
		u, err := repo.FindOrCreateUserByEmail(ctx, cfg.BootstrapEmail)
		if err != nil {
			return err
		}
		n, err := repo.CountOwnedCompanies(ctx, u.ID)
		if err != nil {
			return err
		}
		if n > 0 {
			return nil // 已经有公司，跳过
		}
		c, err := repo.CreateCompany(ctx, u, u.Name+"'s Company", true)
		if err != nil {
			return err
		}
		if err := repo.SwitchCurrentCompany(ctx, u, c); err != nil {
			return err
		}
		log.Printf("[BOOTSTRAP] created personal company %q (%s) for %s", c.Name, c.ID, u.Email)
		return nil
	})
	if err != nil {
		log.Printf("bootstrap owner failed: %v", err)
	}
}
