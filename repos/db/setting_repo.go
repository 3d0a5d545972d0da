package db

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	uuid "github.com/satori/go.uuid"

	"github.com/smzarrabimmp/cms"
	"github.com/smzarrabimmp/cms/internal/sqlx"
	"github.com/smzarrabimmp/cms/logx"
	"github.com/smzarrabimmp/cms/repos"
)

func (s *Store) FindSetting(
	ctx context.Context,
	logger logx.Logger,
	query repos.FindSettingQuery,
) (cms.Setting, error) {
	return findSetting(ctx, logger.WithName("data-service"), s.conn, query)
}

func (s *Store) SaveSetting(
	ctx context.Context,
	logger logx.Logger,
	setting cms.Setting,
) (err error) {
	logger = logger.WithName("data-service")

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		logger.Error(failedToStartTransaction, err)
		return
	}

	defer func() {
		if commitErr := sqlx.Commit(logger, tx, err); commitErr != nil {
			err = commitErr
		}
	}()

	err = saveSetting(ctx, logger, tx, setting)

	return
}

func findSetting(
	ctx context.Context,
	logger logx.Logger,
	conn squirrel.BaseRunner,
	query repos.FindSettingQuery,
) (cms.Setting, error) {
	logger = logger.WithName("find-setting").WithData(
		logx.Data{Key: "system_setting.namespace", Value: query.Namespace},
		logx.Data{Key: "system_setting.setting_key", Value: query.Key},
	)

	var (
		namespace string
		key       string
		value     string
	)

	err := squirrel.Select("namespace", "setting_key", "setting_value").
		From("system_setting").
		Where(squirrel.Eq{
			"namespace":   query.Namespace,
			"setting_key": query.Key,
		}).
		RunWith(conn).
		ScanContext(ctx, &namespace, &key, &value)

	switch err {
	case nil:
		return cms.Setting{
			Namespace: namespace,
			Key:       key,
			Value:     value,
		}, nil
	case sql.ErrNoRows:
		logger.Debug(errSettingNotFound)
		return cms.Setting{}, cms.ErrSettingNotFound
	default:
		logger.Error(failedToFindSetting, err)
		return cms.Setting{}, err
	}
}

func saveSetting(
	ctx context.Context,
	logger logx.Logger,
	conn squirrel.BaseRunner,
	setting cms.Setting,
) error {
	logger = logger.WithName("save-setting").WithData(
		logx.Data{Key: "system_setting.namespace", Value: setting.Namespace},
		logx.Data{Key: "system_setting.setting_key", Value: setting.Key},
	)

	u := uuid.NewV4().Bytes()

	_, err := squirrel.Insert("system_setting").
		Columns("uuid", "namespace", "setting_key", "setting_value").
		Values(u, setting.Namespace, setting.Key, setting.Value).
		Suffix("ON DUPLICATE KEY UPDATE setting_value = ?", setting.Value).
		RunWith(conn).
		ExecContext(ctx)
	if err != nil {
		logger.Error(failedToSaveSetting, err)
		return err
	}

	return nil
}
