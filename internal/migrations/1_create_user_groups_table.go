package migrations

import (
	"context"

	"github.com/smzarrabimmp/cms/internal/sqlx"
	"github.com/smzarrabimmp/cms/logx"
)

var createUserGroupsTable = `
CREATE TABLE IF NOT EXISTS user_group
(
  id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
  uuid BINARY(16) NOT NULL UNIQUE,
  name VARCHAR(255) NOT NULL,
  handle VARCHAR(255) NOT NULL UNIQUE
)
`

var deleteUserGroupsTable = `DROP TABLE user_group`

func createUserGroupsTableUp(ctx context.Context, logger logx.Logger, tx *sqlx.Tx) error {
	logger = logger.WithName("create-user-groups-table")
	logger.Debug(starting)
	defer logger.Debug(finished)

	_, err := tx.ExecContext(ctx, createUserGroupsTable)

	return err
}

func createUserGroupsTableDown(ctx context.Context, logger logx.Logger, tx *sqlx.Tx) error {
	logger = logger.WithName("create-user-groups-table")
	logger.Debug(starting)
	defer logger.Debug(finished)

	_, err := tx.ExecContext(ctx, deleteUserGroupsTable)

	return err
}
