// Package database owns the MySQL connection pool and the schema
// bootstrap.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"loadboard/internal/config"
)

// Open builds the connection pool from the runtime configuration and
// verifies connectivity before the server takes traffic. Pool sizing
// comes from config so a deployment can tune it without a rebuild.
func Open(cfg config.Config) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn(cfg))
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.DBMaxConns)
	db.SetMaxIdleConns(cfg.DBMaxConns)
	db.SetConnMaxLifetime(cfg.DBConnLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	return db, nil
}

// dsn assembles the driver connection string. parseTime maps DATETIME
// columns onto time.Time and loc pins them to UTC, matching how every
// timestamp in the schema is written.
func dsn(cfg config.Config) string {
	auth := cfg.DBUser
	if cfg.DBPass != "" {
		auth += ":" + cfg.DBPass
	}
	addr := net.JoinHostPort(cfg.DBHost, cfg.DBPort)
	return fmt.Sprintf("%s@tcp(%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, addr, cfg.DBName)
}
