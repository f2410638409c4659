package db

// SchemaSQL mirrors the RBAC tables created by the generated Laravel
// migrations, in sqlite dialect. The tool never runs it against a project:
// the project's own migrations own the schema. Tests use it via
// GetSchemaSQL() so the gorm models cannot drift from the migration
// templates unnoticed.
//
// When a migration template under templates/scaffold/rbac changes, update
// the matching table here.
const SchemaSQL = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name VARCHAR(255) NOT NULL,
	email VARCHAR(255) NOT NULL UNIQUE,
	password VARCHAR(255) NOT NULL,
	created_at DATETIME,
	updated_at DATETIME
);

CREATE TABLE IF NOT EXISTS roles (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name VARCHAR(255) NOT NULL,
	is_active BOOLEAN NOT NULL DEFAULT 1,
	created_at DATETIME,
	updated_at DATETIME
);

CREATE TABLE IF NOT EXISTS permission_groups (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name VARCHAR(255) NOT NULL,
	is_active BOOLEAN NOT NULL DEFAULT 1,
	created_at DATETIME,
	updated_at DATETIME
);

CREATE TABLE IF NOT EXISTS permissions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name VARCHAR(255) NOT NULL,
	key VARCHAR(255) NOT NULL UNIQUE,
	permission_group_id INTEGER NOT NULL REFERENCES permission_groups(id) ON DELETE CASCADE,
	is_active BOOLEAN NOT NULL DEFAULT 1,
	created_at DATETIME,
	updated_at DATETIME
);

CREATE TABLE IF NOT EXISTS role_permissions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	role_id INTEGER NOT NULL REFERENCES roles(id) ON DELETE CASCADE,
	permission_id INTEGER NOT NULL REFERENCES permissions(id) ON DELETE CASCADE,
	created_at DATETIME,
	updated_at DATETIME
);

CREATE TABLE IF NOT EXISTS user_roles (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	role_id INTEGER NOT NULL REFERENCES roles(id) ON DELETE CASCADE,
	created_at DATETIME,
	updated_at DATETIME
);
`

// GetSchemaSQL returns the RBAC schema SQL for use by tests.
func GetSchemaSQL() string {
	return SchemaSQL
}
