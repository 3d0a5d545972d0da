package cmd

import (
	"context"

	"github.com/smzarrabimmp/cms/cmd/flags"
	"github.com/smzarrabimmp/cms/internal/migrations"
	"github.com/smzarrabimmp/cms/internal/sqlx"
	"github.com/smzarrabimmp/cms/logx"
)

type MigrateCommand struct {
	Up     UpCommand     `command:"up" description:"Apply migrations that have not yet been applied"`
	Down   DownCommand   `command:"down" description:"Roll back the most recently applied migration"`
	Status StatusCommand `command:"status" description:"Report which migrations have been applied"`
}

type UpCommand struct {
	Logger flags.LagerFlag

	DB flags.DBFlag `group:"DB" namespace:"db"`
}

func (cmd UpCommand) Execute([]string) error {
	logger := cmd.Logger.Logger("cms")
	logger = logger.WithName("migrate-up")

	// The in-memory store starts from the current schema, so there is
	// nothing to migrate.
	if cmd.DB.IsInMemory() {
		return nil
	}

	ctx := context.Background()

	conn, err := cmd.DB.Connect(ctx, logger)
	if err != nil {
		return err
	}
	defer conn.Close()

	return sqlx.ApplyMigrations(ctx, logger, conn, migrations.TableName, migrations.Migrations)
}

type DownCommand struct {
	Logger flags.LagerFlag

	All bool `long:"all" description:"Roll back all applied migrations instead of only the most recent one"`

	DB flags.DBFlag `group:"DB" namespace:"db"`
}

func (cmd DownCommand) Execute([]string) error {
	logger := cmd.Logger.Logger("cms")
	logger = logger.WithName("migrate-down")

	if cmd.DB.IsInMemory() {
		return nil
	}

	ctx := context.Background()

	conn, err := cmd.DB.Connect(ctx, logger)
	if err != nil {
		return err
	}
	defer conn.Close()

	return sqlx.RollbackMigrations(ctx, logger, conn, migrations.TableName, migrations.Migrations, cmd.All)
}

type StatusCommand struct {
	Logger flags.LagerFlag

	DB flags.DBFlag `group:"DB" namespace:"db"`
}

func (cmd StatusCommand) Execute([]string) error {
	logger := cmd.Logger.Logger("cms")
	logger = logger.WithName("migrate-status")

	if cmd.DB.IsInMemory() {
		return nil
	}

	ctx := context.Background()

	conn, err := cmd.DB.Connect(ctx, logger)
	if err != nil {
		return err
	}
	defer conn.Close()

	applied, err := sqlx.RetrieveAppliedMigrations(ctx, logger, conn, migrations.TableName)
	if err != nil {
		return err
	}

	for version, migration := range migrations.Migrations {
		_, ok := applied[version]
		logger.Info(migrationStatus,
			logx.Data{Key: "version", Value: version},
			logx.Data{Key: "name", Value: migration.Name},
			logx.Data{Key: "applied", Value: ok},
		)
	}

	return nil
}
