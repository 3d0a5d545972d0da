package db

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/go-sql-driver/mysql"
	uuid "github.com/satori/go.uuid"

	"github.com/smzarrabimmp/cms"
	"github.com/smzarrabimmp/cms/internal/sqlx"
	"github.com/smzarrabimmp/cms/logx"
	"github.com/smzarrabimmp/cms/repos"
)

func (s *Store) GroupsForUser(
	ctx context.Context,
	logger logx.Logger,
	query repos.ListUserGroupsQuery,
) ([]cms.Group, error) {
	return groupsForUser(ctx, logger.WithName("data-service"), s.conn, query)
}

func (s *Store) ReplaceUserGroups(
	ctx context.Context,
	logger logx.Logger,
	user cms.User,
	groupIDs []int64,
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

	err = replaceUserGroups(ctx, logger, tx, user, groupIDs)

	return
}

func groupsForUser(
	ctx context.Context,
	logger logx.Logger,
	conn squirrel.BaseRunner,
	query repos.ListUserGroupsQuery,
) ([]cms.Group, error) {
	logger = logger.WithName("groups-for-user").WithData(
		logx.Data{Key: "group_membership.user_id", Value: query.UserID},
	)

	rows, err := squirrel.Select("user_group.id", "user_group.name", "user_group.handle").
		From("user_group").
		Join("group_membership ON group_membership.group_id = user_group.id").
		Where(squirrel.Eq{"group_membership.user_id": query.UserID}).
		OrderBy("user_group.name").
		RunWith(conn).
		QueryContext(ctx)
	if err != nil {
		logger.Error(failedToListUserGroups, err)
		return nil, err
	}
	defer rows.Close()

	var groups []cms.Group
	for rows.Next() {
		var (
			groupID     int64
			groupName   string
			groupHandle string
		)

		err = rows.Scan(&groupID, &groupName, &groupHandle)
		if err != nil {
			logger.Error(failedToScanRow, err)
			return nil, err
		}

		groups = append(groups, cms.Group{
			ID:     groupID,
			Name:   groupName,
			Handle: groupHandle,
		})
	}

	err = rows.Err()
	if err != nil {
		logger.Error(failedToIterateOverRows, err)
		return nil, err
	}

	return groups, nil
}

func replaceUserGroups(
	ctx context.Context,
	logger logx.Logger,
	conn squirrel.BaseRunner,
	user cms.User,
	groupIDs []int64,
) error {
	logger = logger.WithName("replace-user-groups").WithData(
		logx.Data{Key: "group_membership.user_id", Value: user.ID},
	)

	_, err := squirrel.Delete("group_membership").
		Where(squirrel.Eq{"user_id": user.ID}).
		RunWith(conn).
		ExecContext(ctx)
	if err != nil {
		logger.Error(failedToDeleteMemberships, err)
		return err
	}

	for _, groupID := range groupIDs {
		u := uuid.NewV4().Bytes()

		_, err = squirrel.Insert("group_membership").
			Columns("uuid", "group_id", "user_id").
			Values(u, groupID, user.ID).
			RunWith(conn).
			ExecContext(ctx)

		switch e := err.(type) {
		case nil:
		case *mysql.MySQLError:
			if e.Number == MySQLErrorCodeForeignKeyViolation {
				logger.Debug(errGroupNotFound)
				return cms.ErrGroupNotFound
			}

			logger.Error(failedToCreateMembership, err)
			return err
		default:
			logger.Error(failedToCreateMembership, err)
			return err
		}
	}

	return nil
}
