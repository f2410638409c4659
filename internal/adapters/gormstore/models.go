// Package gormstore contains gorm-backed adapters over the target project's database.
package gormstore

import "time"

// PermissionGroup maps the permission_groups table.
type PermissionGroup struct {
	ID        int64 `gorm:"primaryKey"`
	Name      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name.
func (PermissionGroup) TableName() string { return "permission_groups" }

// Permission maps the permissions table.
type Permission struct {
	ID                int64 `gorm:"primaryKey"`
	Name              string
	Key               string
	PermissionGroupID int64
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName returns the table name.
func (Permission) TableName() string { return "permissions" }
