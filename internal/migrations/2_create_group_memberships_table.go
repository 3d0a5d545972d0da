package migrations

import (
	"context"

	"github.com/smzarrabimmp/cms/internal/sqlx"
	"github.com/smzarrabimmp/cms/logx"
)

var createGroupMembershipsTable = `
CREATE TABLE IF NOT EXISTS group_membership
(
  id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
  uuid BINARY(16) NOT NULL UNIQUE,
  group_id BIGINT NOT NULL,
  user_id BIGINT NOT NULL
)
`

var addGroupMembershipGroupIDForeignKey = `
ALTER TABLE
	group_membership
ADD CONSTRAINT
	group_membership_group_id_fkey
FOREIGN KEY(group_id) REFERENCES user_group(id)
ON DELETE CASCADE
`

var addUniqueIndexToGroupMembershipTable = `
ALTER TABLE
	group_membership
ADD UNIQUE INDEX
	unique_group_membership (group_id, user_id)
`

var deleteGroupMembershipsTable = `DROP TABLE group_membership`

func createGroupMembershipsTableUp(ctx context.Context, logger logx.Logger, tx *sqlx.Tx) error {
	logger = logger.WithName("create-group-memberships-table")
	logger.Debug(starting)
	defer logger.Debug(finished)

	_, err := tx.ExecContext(ctx, createGroupMembershipsTable)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, addGroupMembershipGroupIDForeignKey)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, addUniqueIndexToGroupMembershipTable)

	return err
}

func createGroupMembershipsTableDown(ctx context.Context, logger logx.Logger, tx *sqlx.Tx) error {
	logger = logger.WithName("create-group-memberships-table")
	logger.Debug(starting)
	defer logger.Debug(finished)

	_, err := tx.ExecContext(ctx, deleteGroupMembershipsTable)

	return err
}
