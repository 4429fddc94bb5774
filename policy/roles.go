package policy

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Role 是公司内可分配的角色及其权限
type Role struct {
	Key         string   `yaml:"key" json:"key"`
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Permissions []string `yaml:"permissions" json:"permissions"`
}

// Catalog 保持声明顺序
type Catalog struct {
	roles []Role
}

func DefaultCatalog() *Catalog {
	return NewCatalog(
		Role{Key: "admin", Name: "Administrator", Description: "Administrator users can perform any action.", Permissions: []string{"*"}},
		Role{Key: "manager", Name: "Manager", Description: "Managers can read, create, update and delete company resources.", Permissions: []string{"create", "read", "update", "delete"}},
		Role{Key: "editor", Name: "Editor", Description: "Editor users have the ability to read, create, and update.", Permissions: []string{"read", "create", "update"}},
		Role{Key: "employee", Name: "Employee", Description: "Employees can read company resources.", Permissions: []string{"read"}},
	)
}

func NewCatalog(roles ...Role) *Catalog {
	return &Catalog{roles: roles}
}

// LoadCatalog 读取 YAML 角色文件；path 为空时用默认角色
//
//	roles:
//	  - key: admin
//	    name: Administrator
//	    permissions: ["*"]
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roles file: %w", err)
	}
	return ParseCatalog(b)
}

func ParseCatalog(b []byte) (*Catalog, error) {
	var doc struct {
		Roles []Role `yaml:"roles"`
	}
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse roles: %w", err)
	}
	seen := make(map[string]bool, len(doc.Roles))
	for _, r := range doc.Roles {
		if r.Key == "" {
			return nil, fmt.Errorf("parse roles: role without key")
		}
		if seen[r.Key] {
			return nil, fmt.Errorf("parse roles: duplicate role %q", r.Key)
		}
		seen[r.Key] = true
	}
	return NewCatalog(doc.Roles...), nil
}

func (c *Catalog) HasRoles() bool { return len(c.roles) > 0 }

func (c *Catalog) Roles() []Role { return slices.Clone(c.roles) }

func (c *Catalog) Find(key string) (Role, bool) {
	for _, r := range c.roles {
		if r.Key == key {
			return r, true
		}
	}
	return Role{}, false
}

// Permissions 返回角色的权限；未知角色返回 nil
func (c *Catalog) Permissions(key string) []string {
	r, ok := c.Find(key)
	if !ok {
		return nil
	}
	return r.Permissions
}
