package migrator

import (
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/Leyinc1/manuelbest/internal/config"
)

//go:embed migrations/*.sql
var fs embed.FS

type Migrator struct {
	log *slog.Logger
	db  *sqlx.DB
	m   *migrate.Migrate
}

func New(cfg config.PostgresConfig, log *slog.Logger) (*Migrator, error) {
	const op = "migrator.New"

	db, err := sqlx.Connect("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("%s: failed to connect: %w", op, err)
	}

	driver, err := postgres.WithInstance(db.DB, &postgres.Config{})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: failed to create driver: %w", op, err)
	}

	source, err := iofs.New(fs, "migrations")
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: failed to create source: %w", op, err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: failed to create migrate instance: %w", op, err)
	}

	return &Migrator{log: log.With(slog.String("op", op)), db: db, m: m}, nil
}

// Up applies pending migrations; steps > 0 limits how many.
func (mg *Migrator) Up(steps int) error {
	const op = "migrator.Up"

	mg.log.Info("applying database migrations", slog.Int("steps", steps))

	var err error
	if steps > 0 {
		err = mg.m.Steps(steps)
	} else {
		err = mg.m.Up()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%s: migration failed: %w", op, err)
	}

	return nil
}

// Down rolls back steps migrations, or all of them when steps <= 0.
func (mg *Migrator) Down(steps int) error {
	const op = "migrator.Down"

	mg.log.Info("rolling back database migrations", slog.Int("steps", steps))

	var err error
	if steps > 0 {
		err = mg.m.Steps(-steps)
	} else {
		err = mg.m.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%s: rollback failed: %w", op, err)
	}

	return nil
}

func (mg *Migrator) Version() (uint, bool, error) {
	v, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

func (mg *Migrator) Close() {
	mg.m.Close()
	mg.db.Close()
}

// RunMigrations applies every pending migration. Called on service start.
func RunMigrations(cfg config.PostgresConfig, log *slog.Logger) error {
	const op = "migrator.RunMigrations"

	mg, err := New(cfg, log)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer mg.Close()

	return mg.Up(0)
}
