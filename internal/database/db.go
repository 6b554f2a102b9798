package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// schema creates the catalog and guest tables.  Statements are idempotent
// and executed one by one because the driver does not enable multiStatements.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS showings (
		id              BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		movie_name      VARCHAR(255)    NOT NULL,
		category        VARCHAR(100)    NOT NULL DEFAULT '',
		description     TEXT            NOT NULL,
		actors          TEXT            NOT NULL,
		show_time       VARCHAR(100)    NOT NULL DEFAULT '',
		screen_no       VARCHAR(50)     NOT NULL DEFAULT '',
		total_seats     INT             NOT NULL DEFAULT 0,
		available_seats INT             NOT NULL DEFAULT 0,
		version         BIGINT UNSIGNED NOT NULL DEFAULT 0,
		created_at      DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at      DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		KEY idx_showings_name (movie_name),
		KEY idx_showings_category (category),
		CONSTRAINT chk_showings_seats CHECK (available_seats >= 0)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS guests (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		username      VARCHAR(191)    NOT NULL,
		password_hash VARCHAR(255)    NOT NULL,
		created_at    DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_guests_username (username)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate creates the tables used by the MySQL stores if they are missing.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
