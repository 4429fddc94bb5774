package membership

import (
	"context"
	"log"

	"Gin_postgres_redis_companies/models"
	"Gin_postgres_redis_companies/policy"
)

// Remover 移除成员；成员也可以自己退出
type Remover struct {
	Store Store
	Gate  policy.Gate
}

func NewRemover(store Store, gate policy.Gate) *Remover {
	return &Remover{Store: store, Gate: gate}
}

func (r *Remover) Remove(ctx context.Context, actor *models.User, c *models.Company, target *models.User) error {
	if actor == nil {
		return policy.ErrForbidden
	}
	if actor.ID != target.ID {
		if err := policy.Authorize(ctx, r.Gate, actor, policy.ActionRemoveEmployee, c); err != nil {
			return err
		}
	}
	if target.OwnsCompany(c) {
		return invalid("company", "You may not leave a company that you created.")
	}
	if err := r.Store.RemoveUser(ctx, c, target); err != nil {
		return err
	}
	log.Printf("[membership] %s removed from company %s by %s", target.ID, c.ID, actor.ID)
	return nil
}

// RoleUpdater 修改成员角色
type RoleUpdater struct {
	Store Store
	Gate  policy.Gate
	Roles *policy.Catalog
}

func NewRoleUpdater(store Store, gate policy.Gate, roles *policy.Catalog) *RoleUpdater {
	return &RoleUpdater{Store: store, Gate: gate, Roles: roles}
}

func (u *RoleUpdater) Update(ctx context.Context, actor *models.User, c *models.Company, target *models.User, role string) error {
	if err := policy.Authorize(ctx, u.Gate, actor, policy.ActionUpdateEmployeePermissions, c); err != nil {
		return err
	}
	if err := validateRole(u.Roles, role); err != nil {
		return err
	}
	return u.Store.UpdateRole(ctx, c, target, role)
}

// Deleter 删除（purge）公司；个人公司不可删除
type Deleter struct {
	Store Store
	Gate  policy.Gate
}

func NewDeleter(store Store, gate policy.Gate) *Deleter {
	return &Deleter{Store: store, Gate: gate}
}

func (d *Deleter) Delete(ctx context.Context, actor *models.User, c *models.Company) error {
	if err := policy.Authorize(ctx, d.Gate, actor, policy.ActionDelete, c); err != nil {
		return err
	}
	if c.PersonalCompany {
		return invalid("company", "You may not delete your personal company.")
	}
	if err := d.Store.PurgeCompany(ctx, c); err != nil {
		return err
	}
	log.Printf("[membership] company %s purged by %s", c.ID, actor.ID)
	return nil
}
