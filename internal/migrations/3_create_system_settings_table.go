package migrations

import (
	"context"

	"github.com/smzarrabimmp/cms/internal/sqlx"
	"github.com/smzarrabimmp/cms/logx"
)

var createSystemSettingsTable = `
CREATE TABLE IF NOT EXISTS system_setting
(
  id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
  uuid BINARY(16) NOT NULL UNIQUE,
  namespace VARCHAR(255) NOT NULL,
  setting_key VARCHAR(255) NOT NULL,
  setting_value VARCHAR(4095) NOT NULL
)
`

var addUniqueIndexToSystemSettingTable = `
ALTER TABLE
	system_setting
ADD UNIQUE INDEX
	unique_system_setting (namespace, setting_key)
`

var deleteSystemSettingsTable = `DROP TABLE system_setting`

func createSystemSettingsTableUp(ctx context.Context, logger logx.Logger, tx *sqlx.Tx) error {
	logger = logger.WithName("create-system-settings-table")
	logger.Debug(starting)
	defer logger.Debug(finished)

	_, err := tx.ExecContext(ctx, createSystemSettingsTable)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, addUniqueIndexToSystemSettingTable)

	return err
}

func createSystemSettingsTableDown(ctx context.Context, logger logx.Logger, tx *sqlx.Tx) error {
	logger = logger.WithName("create-system-settings-table")
	logger.Debug(starting)
	defer logger.Debug(finished)

	_, err := tx.ExecContext(ctx, deleteSystemSettingsTable)

	return err
}
