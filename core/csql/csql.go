// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

// Package csql bootstraps the optional postgres database of the service
package csql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq" // load database driver for postgres

	"github.com/relabs-tech/dataobjects/core/logger"
)

// PingTimeout bounds a health check of the database
const PingTimeout = 2 * time.Second

// DB encapsulates a standard sql.DB with a schema
type DB struct {
	*sql.DB
	Schema string
}

// DataSourceName adds password to the postgres connection string dsn. An empty
// password leaves dsn unchanged.
func DataSourceName(dsn, password string) string {
	if password == "" {
		return dsn
	}
	return strings.TrimSpace(dsn) + " password=" + password
}

// OpenWithSchema opens a postgres database with a schema. The schema gets
// created if it does not exist yet, an empty schema selects "public".
func OpenWithSchema(ctx context.Context, dataSourceName, schema string) (*DB, error) {
	rlog := logger.FromContext(ctx)
	rlog.Infoln("connecting to postgres database")
	db, err := sql.Open("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, PingTimeout)
	defer cancel()
	if err = db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot reach database: %w", err)
	}
	if len(schema) == 0 {
		schema = "public"
	} else {
		rlog.Infoln("selected database schema:", schema)
		if _, err = db.ExecContext(ctx, `CREATE schema IF NOT EXISTS `+schema+`;`); err != nil {
			db.Close()
			return nil, fmt.Errorf("cannot create schema %s: %w", schema, err)
		}
	}
	return &DB{DB: db, Schema: schema}, nil
}

// Health pings the database. A nil database is reported as disabled.
func (db *DB) Health(ctx context.Context) string {
	if db == nil || db.DB == nil {
		return "disabled"
	}
	ctx, cancel := context.WithTimeout(ctx, PingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		logger.FromContext(ctx).WithError(err).Warnln("database health check failed")
		return "unavailable"
	}
	return "ok"
}
