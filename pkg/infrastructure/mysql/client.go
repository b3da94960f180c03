// Package mysql implements the repositories over MySQL with sqlx. Stock
// mutation is a single conditional UPDATE, so two concurrent orders can
// never both pass an availability check before either decrements.
package mysql

import (
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	pkgerrors "github.com/pkg/errors"
)

func Connect(dsn string) (*sqlx.DB, error) {
	if !strings.Contains(dsn, "parseTime") {
		if strings.Contains(dsn, "?") {
			dsn += "&parseTime=true"
		} else {
			dsn += "?parseTime=true"
		}
	}
	db, err := sqlx.Connect("mysql", dsn)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "connect to mysql")
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)
	return db, nil
}

func Migrate(dsn, migrationsPath string) error {
	m, err := migrate.New("file://"+migrationsPath, "mysql://"+dsn)
	if err != nil {
		return pkgerrors.Wrap(err, "init migrations")
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return pkgerrors.Wrap(err, "apply migrations")
	}
	return nil
}
