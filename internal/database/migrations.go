package database

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
)

// Migration represents a database migration
type Migration struct {
	Version     int
	Description string
	SQL         string
}

// GetMigrations returns all database migrations for the given driver.
func GetMigrations(dbType string) []Migration {
	if dbType == "postgres" {
		return getPostgresMigrations()
	}
	return getSQLiteMigrations()
}

func getPostgresMigrations() []Migration {
	return []Migration{
		{
			Version:     1,
			Description: "Create users table",
			SQL: `CREATE TABLE IF NOT EXISTS users (
				id BIGSERIAL PRIMARY KEY,
				email VARCHAR(255) UNIQUE NOT NULL,
				password_hash VARCHAR(255) NOT NULL,
				role VARCHAR(20) NOT NULL DEFAULT 'user',
				email_verified BOOLEAN NOT NULL DEFAULT FALSE,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			)`,
		},
		{
			Version:     2,
			Description: "Create clients table",
			SQL: `CREATE TABLE IF NOT EXISTS clients (
				id BIGSERIAL PRIMARY KEY,
				name VARCHAR(255) NOT NULL,
				company VARCHAR(255) NOT NULL DEFAULT '',
				contact_name VARCHAR(255) NOT NULL DEFAULT '',
				contact_email VARCHAR(255) NOT NULL DEFAULT '',
				contact_phone VARCHAR(50) NOT NULL DEFAULT '',
				notes TEXT NOT NULL DEFAULT '',
				status VARCHAR(20) NOT NULL DEFAULT 'active',
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			)`,
		},
		{
			Version:     3,
			Description: "Create projects table",
			SQL: `CREATE TABLE IF NOT EXISTS projects (
				id BIGSERIAL PRIMARY KEY,
				client_id BIGINT NOT NULL REFERENCES clients(id) ON DELETE CASCADE,
				name VARCHAR(255) NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				status VARCHAR(20) NOT NULL DEFAULT 'planned',
				due_date TIMESTAMP WITH TIME ZONE,
				budget DECIMAL(12,2),
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			)`,
		},
		{
			Version:     4,
			Description: "Create services table",
			SQL: `CREATE TABLE IF NOT EXISTS services (
				id BIGSERIAL PRIMARY KEY,
				client_id BIGINT NOT NULL REFERENCES clients(id) ON DELETE CASCADE,
				name VARCHAR(255) NOT NULL,
				rate DECIMAL(10,2) NOT NULL DEFAULT 0,
				billing_cycle VARCHAR(20) NOT NULL DEFAULT 'monthly',
				active BOOLEAN NOT NULL DEFAULT TRUE,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			)`,
		},
		{
			Version:     5,
			Description: "Create hosting_accounts table",
			SQL: `CREATE TABLE IF NOT EXISTS hosting_accounts (
				id BIGSERIAL PRIMARY KEY,
				client_id BIGINT NOT NULL REFERENCES clients(id) ON DELETE CASCADE,
				domain VARCHAR(255) NOT NULL,
				provider VARCHAR(255) NOT NULL DEFAULT '',
				plan VARCHAR(255) NOT NULL DEFAULT '',
				renewal_date TIMESTAMP WITH TIME ZONE,
				status VARCHAR(20) NOT NULL DEFAULT 'active',
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			)`,
		},
		{
			Version:     6,
			Description: "Create calendar_events table",
			SQL: `CREATE TABLE IF NOT EXISTS calendar_events (
				id BIGSERIAL PRIMARY KEY,
				user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				title VARCHAR(255) NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				starts_at TIMESTAMP WITH TIME ZONE NOT NULL,
				ends_at TIMESTAMP WITH TIME ZONE NOT NULL,
				all_day BOOLEAN NOT NULL DEFAULT FALSE,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			)`,
		},
		{
			Version:     7,
			Description: "Create notifications table",
			SQL: `CREATE TABLE IF NOT EXISTS notifications (
				id BIGSERIAL PRIMARY KEY,
				user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				title VARCHAR(255) NOT NULL,
				body TEXT NOT NULL DEFAULT '',
				is_read BOOLEAN NOT NULL DEFAULT FALSE,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			)`,
		},
		{
			Version:     8,
			Description: "Create user_settings table",
			SQL: `CREATE TABLE IF NOT EXISTS user_settings (
				user_id BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
				theme VARCHAR(20) NOT NULL DEFAULT 'light',
				locale VARCHAR(10) NOT NULL DEFAULT 'en',
				email_notifications BOOLEAN NOT NULL DEFAULT TRUE,
				reminder_lead_minutes INTEGER NOT NULL DEFAULT 30,
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			)`,
		},
		{
			Version:     9,
			Description: "Create documents table",
			SQL: `CREATE TABLE IF NOT EXISTS documents (
				id BIGSERIAL PRIMARY KEY,
				client_id BIGINT NOT NULL REFERENCES clients(id) ON DELETE CASCADE,
				file_name VARCHAR(255) NOT NULL,
				storage_key VARCHAR(512) UNIQUE NOT NULL,
				size BIGINT NOT NULL DEFAULT 0,
				content_type VARCHAR(255) NOT NULL DEFAULT 'application/octet-stream',
				uploaded_by BIGINT NOT NULL,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			)`,
		},
		{
			Version:     10,
			Description: "Create indexes",
			SQL: `CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
				CREATE INDEX IF NOT EXISTS idx_projects_client_id ON projects(client_id);
				CREATE INDEX IF NOT EXISTS idx_services_client_id ON services(client_id);
				CREATE INDEX IF NOT EXISTS idx_hosting_client_id ON hosting_accounts(client_id);
				CREATE INDEX IF NOT EXISTS idx_events_user_id ON calendar_events(user_id);
				CREATE INDEX IF NOT EXISTS idx_events_starts_at ON calendar_events(starts_at);
				CREATE INDEX IF NOT EXISTS idx_notifications_user_id ON notifications(user_id);
				CREATE INDEX IF NOT EXISTS idx_documents_client_id ON documents(client_id)`,
		},
	}
}

func getSQLiteMigrations() []Migration {
	return []Migration{
		{
			Version:     1,
			Description: "Create users table",
			SQL: `CREATE TABLE IF NOT EXISTS users (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				email TEXT UNIQUE NOT NULL,
				password_hash TEXT NOT NULL,
				role TEXT NOT NULL DEFAULT 'user',
				email_verified BOOLEAN NOT NULL DEFAULT 0,
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`,
		},
		{
			Version:     2,
			Description: "Create clients table",
			SQL: `CREATE TABLE IF NOT EXISTS clients (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL,
				company TEXT NOT NULL DEFAULT '',
				contact_name TEXT NOT NULL DEFAULT '',
				contact_email TEXT NOT NULL DEFAULT '',
				contact_phone TEXT NOT NULL DEFAULT '',
				notes TEXT NOT NULL DEFAULT '',
				status TEXT NOT NULL DEFAULT 'active',
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`,
		},
		{
			Version:     3,
			Description: "Create projects table",
			SQL: `CREATE TABLE IF NOT EXISTS projects (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				client_id INTEGER NOT NULL,
				name TEXT NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				status TEXT NOT NULL DEFAULT 'planned',
				due_date DATETIME,
				budget REAL,
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (client_id) REFERENCES clients(id) ON DELETE CASCADE
			)`,
		},
		{
			Version:     4,
			Description: "Create services table",
			SQL: `CREATE TABLE IF NOT EXISTS services (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				client_id INTEGER NOT NULL,
				name TEXT NOT NULL,
				rate REAL NOT NULL DEFAULT 0,
				billing_cycle TEXT NOT NULL DEFAULT 'monthly',
				active BOOLEAN NOT NULL DEFAULT 1,
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (client_id) REFERENCES clients(id) ON DELETE CASCADE
			)`,
		},
		{
			Version:     5,
			Description: "Create hosting_accounts table",
			SQL: `CREATE TABLE IF NOT EXISTS hosting_accounts (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				client_id INTEGER NOT NULL,
				domain TEXT NOT NULL,
				provider TEXT NOT NULL DEFAULT '',
				plan TEXT NOT NULL DEFAULT '',
				renewal_date DATETIME,
				status TEXT NOT NULL DEFAULT 'active',
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (client_id) REFERENCES clients(id) ON DELETE CASCADE
			)`,
		},
		{
			Version:     6,
			Description: "Create calendar_events table",
			SQL: `CREATE TABLE IF NOT EXISTS calendar_events (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				user_id INTEGER NOT NULL,
				title TEXT NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				starts_at DATETIME NOT NULL,
				ends_at DATETIME NOT NULL,
				all_day BOOLEAN NOT NULL DEFAULT 0,
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
			)`,
		},
		{
			Version:     7,
			Description: "Create notifications table",
			SQL: `CREATE TABLE IF NOT EXISTS notifications (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				user_id INTEGER NOT NULL,
				title TEXT NOT NULL,
				body TEXT NOT NULL DEFAULT '',
				is_read BOOLEAN NOT NULL DEFAULT 0,
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
			)`,
		},
		{
			Version:     8,
			Description: "Create user_settings table",
			SQL: `CREATE TABLE IF NOT EXISTS user_settings (
				user_id INTEGER PRIMARY KEY,
				theme TEXT NOT NULL DEFAULT 'light',
				locale TEXT NOT NULL DEFAULT 'en',
				email_notifications BOOLEAN NOT NULL DEFAULT 1,
				reminder_lead_minutes INTEGER NOT NULL DEFAULT 30,
				updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
			)`,
		},
		{
			Version:     9,
			Description: "Create documents table",
			SQL: `CREATE TABLE IF NOT EXISTS documents (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				client_id INTEGER NOT NULL,
				file_name TEXT NOT NULL,
				storage_key TEXT UNIQUE NOT NULL,
				size INTEGER NOT NULL DEFAULT 0,
				content_type TEXT NOT NULL DEFAULT 'application/octet-stream',
				uploaded_by INTEGER NOT NULL,
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (client_id) REFERENCES clients(id) ON DELETE CASCADE
			)`,
		},
		{
			Version:     10,
			Description: "Create indexes",
			SQL: `CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
				CREATE INDEX IF NOT EXISTS idx_projects_client_id ON projects(client_id);
				CREATE INDEX IF NOT EXISTS idx_services_client_id ON services(client_id);
				CREATE INDEX IF NOT EXISTS idx_hosting_client_id ON hosting_accounts(client_id);
				CREATE INDEX IF NOT EXISTS idx_events_user_id ON calendar_events(user_id);
				CREATE INDEX IF NOT EXISTS idx_events_starts_at ON calendar_events(starts_at);
				CREATE INDEX IF NOT EXISTS idx_notifications_user_id ON notifications(user_id);
				CREATE INDEX IF NOT EXISTS idx_documents_client_id ON documents(client_id)`,
		},
	}
}

// createMigrationsTable creates the migrations tracking table
func createMigrationsTable(db *sql.DB, dbType string) error {
	var query string
	if dbType == "postgres" {
		query = `CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
		)`
	} else {
		query = `CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`
	}

	_, err := db.Exec(query)
	return err
}

// getAppliedMigrations returns the set of applied migration versions
func getAppliedMigrations(db *sql.DB) (map[int]bool, error) {
	applied := make(map[int]bool)

	rows, err := db.Query("SELECT version FROM schema_migrations")
	if err != nil {
		return applied, err
	}
	defer rows.Close()

	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return applied, err
		}
		applied[version] = true
	}

	return applied, rows.Err()
}

// recordMigration records that a migration has been applied
func recordMigration(db *sql.DB, dbType string, version int) error {
	var query string
	if dbType == "postgres" {
		query = "INSERT INTO schema_migrations (version) VALUES ($1)"
	} else {
		query = "INSERT INTO schema_migrations (version) VALUES (?)"
	}
	_, err := db.Exec(query, version)
	return err
}

// RunMigrations runs all pending migrations
func RunMigrations(db *sql.DB, dbType string) error {
	if err := createMigrationsTable(db, dbType); err != nil {
		return fmt.Errorf("failed to create migrations table: %v", err)
	}

	applied, err := getAppliedMigrations(db)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %v", err)
	}

	for _, migration := range GetMigrations(dbType) {
		if applied[migration.Version] {
			continue
		}

		log.Printf("Applying migration %d: %s", migration.Version, migration.Description)

		// Index migrations bundle several statements; execute them one by one.
		statements := strings.Split(migration.SQL, ";")
		for _, stmt := range statements {
			stmt = strings.TrimSpace(stmt)
			if stmt == "" {
				continue
			}
			if _, err := db.Exec(stmt); err != nil {
				return fmt.Errorf("failed to apply migration %d: %v", migration.Version, err)
			}
		}

		if err := recordMigration(db, dbType, migration.Version); err != nil {
			return fmt.Errorf("failed to record migration %d: %v", migration.Version, err)
		}
	}

	return nil
}
