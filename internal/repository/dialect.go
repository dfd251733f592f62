package repository

// dialect supplies the backend-specific query text. The repository logic above
// it never branches on the backend kind; placeholders and minor syntax are the
// only differences between the two implementations.
type dialect interface {
	gooseDialect() string
	migrationsDir() string

	selectAdmins() string
	selectAdmin() string
	deleteAdminScoped() string
	deleteAdminGlobal() string
	insertAdmin() string
	insertAdminFlag() string
	selectGroups() string

	selectActivePenalties() string
	insertPenalty() string
	liftPenalty() string
	updatePenaltyPassed() string
	expirePenaltyServed() string
	expirePenalties() string
	expireAdmins() string
	anonymizePenalties() string
}

type postgresDialect struct{}

func (postgresDialect) gooseDialect() string  { return "postgres" }
func (postgresDialect) migrationsDir() string { return "migrations/postgres" }

func (postgresDialect) selectAdmins() string {
	return `
SELECT a.id, a.identity, a.name, a.immunity, a.created, a.ends, a.server_id, f.flag
  FROM admins a
  LEFT JOIN admin_flags f ON f.admin_id = a.id
 WHERE (a.server_id IS NULL OR a.server_id = $1)
   AND (a.ends IS NULL OR a.ends > $2)
 ORDER BY a.id`
}

func (postgresDialect) selectAdmin() string {
	return `
SELECT a.id, a.identity, a.name, a.immunity, a.created, a.ends, a.server_id, f.flag
  FROM admins a
  LEFT JOIN admin_flags f ON f.admin_id = a.id
 WHERE a.identity = $1
   AND (a.server_id IS NULL OR a.server_id = $2)
   AND (a.ends IS NULL OR a.ends > $3)
 ORDER BY a.id`
}

func (postgresDialect) deleteAdminScoped() string {
	return `DELETE FROM admins WHERE identity = $1 AND server_id = $2`
}

func (postgresDialect) deleteAdminGlobal() string {
	return `DELETE FROM admins WHERE identity = $1 AND server_id IS NULL`
}

func (postgresDialect) insertAdmin() string {
	return `
INSERT INTO admins (identity, name, immunity, created, ends, server_id)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`
}

func (postgresDialect) insertAdminFlag() string {
	return `INSERT INTO admin_flags (admin_id, flag) VALUES ($1, $2)`
}

func (postgresDialect) selectGroups() string {
	return `
SELECT g.name, g.immunity, f.flag
  FROM admin_groups g
  LEFT JOIN admin_group_flags f ON f.group_name = g.name
 ORDER BY g.name`
}

func (postgresDialect) selectActivePenalties() string {
	return `
SELECT id, identity, address, kind, status, reason, duration, created, ends, passed, server_id
  FROM penalties
 WHERE identity = $1
   AND status = 'ACTIVE'
   AND (server_id IS NULL OR server_id = $2)
 ORDER BY id`
}

func (postgresDialect) insertPenalty() string {
	return `
INSERT INTO penalties (identity, address, kind, status, reason, duration, created, ends, passed, server_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id`
}

func (postgresDialect) liftPenalty() string {
	return `UPDATE penalties SET status = 'LIFTED' WHERE id = $1 AND kind = $2 AND status = 'ACTIVE'`
}

func (postgresDialect) updatePenaltyPassed() string {
	return `UPDATE penalties SET passed = $1 WHERE id = $2 AND status = 'ACTIVE'`
}

func (postgresDialect) expirePenaltyServed() string {
	return `UPDATE penalties SET status = 'EXPIRED', passed = $1 WHERE id = $2 AND status = 'ACTIVE'`
}

func (postgresDialect) expirePenalties() string {
	return `
UPDATE penalties
   SET status = 'EXPIRED'
 WHERE status = 'ACTIVE'
   AND duration > 0
   AND passed IS NULL
   AND ends IS NOT NULL
   AND ends <= $1`
}

func (postgresDialect) expireAdmins() string {
	return `DELETE FROM admins WHERE ends IS NOT NULL AND ends <= $1`
}

func (postgresDialect) anonymizePenalties() string {
	return `UPDATE penalties SET address = NULL WHERE address IS NOT NULL AND created < $1`
}

type sqliteDialect struct{}

func (sqliteDialect) gooseDialect() string  { return "sqlite3" }
func (sqliteDialect) migrationsDir() string { return "migrations/sqlite" }

func (sqliteDialect) selectAdmins() string {
	return `
SELECT a.id, a.identity, a.name, a.immunity, a.created, a.ends, a.server_id, f.flag
  FROM admins a
  LEFT JOIN admin_flags f ON f.admin_id = a.id
 WHERE (a.server_id IS NULL OR a.server_id = ?)
   AND (a.ends IS NULL OR a.ends > ?)
 ORDER BY a.id`
}

func (sqliteDialect) selectAdmin() string {
	return `
SELECT a.id, a.identity, a.name, a.immunity, a.created, a.ends, a.server_id, f.flag
  FROM admins a
  LEFT JOIN admin_flags f ON f.admin_id = a.id
 WHERE a.identity = ?
   AND (a.server_id IS NULL OR a.server_id = ?)
   AND (a.ends IS NULL OR a.ends > ?)
 ORDER BY a.id`
}

func (sqliteDialect) deleteAdminScoped() string {
	return `DELETE FROM admins WHERE identity = ? AND server_id = ?`
}

func (sqliteDialect) deleteAdminGlobal() string {
	return `DELETE FROM admins WHERE identity = ? AND server_id IS NULL`
}

func (sqliteDialect) insertAdmin() string {
	return `
INSERT INTO admins (identity, name, immunity, created, ends, server_id)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING id`
}

func (sqliteDialect) insertAdminFlag() string {
	return `INSERT INTO admin_flags (admin_id, flag) VALUES (?, ?)`
}

func (sqliteDialect) selectGroups() string {
	return `
SELECT g.name, g.immunity, f.flag
  FROM admin_groups g
  LEFT JOIN admin_group_flags f ON f.group_name = g.name
 ORDER BY g.name`
}

func (sqliteDialect) selectActivePenalties() string {
	return `
SELECT id, identity, address, kind, status, reason, duration, created, ends, passed, server_id
  FROM penalties
 WHERE identity = ?
   AND status = 'ACTIVE'
   AND (server_id IS NULL OR server_id = ?)
 ORDER BY id`
}

func (sqliteDialect) insertPenalty() string {
	return `
INSERT INTO penalties (identity, address, kind, status, reason, duration, created, ends, passed, server_id)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id`
}

func (sqliteDialect) liftPenalty() string {
	return `UPDATE penalties SET status = 'LIFTED' WHERE id = ? AND kind = ? AND status = 'ACTIVE'`
}

func (sqliteDialect) updatePenaltyPassed() string {
	return `UPDATE penalties SET passed = ? WHERE id = ? AND status = 'ACTIVE'`
}

func (sqliteDialect) expirePenaltyServed() string {
	return `UPDATE penalties SET status = 'EXPIRED', passed = ? WHERE id = ? AND status = 'ACTIVE'`
}

func (sqliteDialect) expirePenalties() string {
	return `
UPDATE penalties
   SET status = 'EXPIRED'
 WHERE status = 'ACTIVE'
   AND duration > 0
   AND passed IS NULL
   AND ends IS NOT NULL
   AND ends <= ?`
}

func (sqliteDialect) expireAdmins() string {
	return `DELETE FROM admins WHERE ends IS NOT NULL AND ends <= ?`
}

func (sqliteDialect) anonymizePenalties() string {
	return `UPDATE penalties SET address = NULL WHERE address IS NOT NULL AND created < ?`
}
