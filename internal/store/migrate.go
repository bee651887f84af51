package store

import (
	"context"
	"net/url"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/pkg/errors"
)

// Migrator handles DB schema migrations using golang-migrate.
type Migrator struct {
	dsn string
	dir string
}

// NewMigrator reads migrations from db/migrations under the working directory.
func NewMigrator(dsn string) (*Migrator, error) {
	if dsn == "" {
		return nil, errors.New("missing DSN")
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return &Migrator{dsn: dsn, dir: filepath.Join(wd, "db", "migrations")}, nil
}

func (m *Migrator) sourceURL() string {
	u := url.URL{Scheme: "file", Path: m.dir}
	return u.String()
}

func (m *Migrator) Up(ctx context.Context) error {
	return m.run(ctx, func(mig *migrate.Migrate) error { return mig.Up() })
}

func (m *Migrator) Down(ctx context.Context) error {
	return m.run(ctx, func(mig *migrate.Migrate) error { return mig.Steps(-1) })
}

func (m *Migrator) run(ctx context.Context, step func(*migrate.Migrate) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	mig, err := migrate.New(m.sourceURL(), m.dsn)
	if err != nil {
		return errors.Wrap(err, "open migrations")
	}
	defer mig.Close()
	if err := step(mig); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return ErrNoChange
		}
		return errors.Wrap(err, "migrate")
	}
	return nil
}
