package db

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/go-sql-driver/mysql"
	uuid "github.com/satori/go.uuid"

	"github.com/smzarrabimmp/cms"
	"github.com/smzarrabimmp/cms/internal/sqlx"
	"github.com/smzarrabimmp/cms/logx"
)

func (s *Store) CreateGroup(
	ctx context.Context,
	logger logx.Logger,
	name string,
	handle string,
) (g cms.Group, err error) {
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

	g, err = createGroup(ctx, logger, tx, name, handle)

	return
}

func (s *Store) UpdateGroup(
	ctx context.Context,
	logger logx.Logger,
	group cms.Group,
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

	err = updateGroup(ctx, logger, tx, group)

	return
}

func (s *Store) FindGroupByID(
	ctx context.Context,
	logger logx.Logger,
	id int64,
) (cms.Group, error) {
	return findGroupByID(ctx, logger.WithName("data-service"), s.conn, id)
}

func (s *Store) FindGroupByHandle(
	ctx context.Context,
	logger logx.Logger,
	handle string,
) (cms.Group, error) {
	return findGroupByHandle(ctx, logger.WithName("data-service"), s.conn, handle)
}

func (s *Store) ListGroups(
	ctx context.Context,
	logger logx.Logger,
) ([]cms.Group, error) {
	return listGroups(ctx, logger.WithName("data-service"), s.conn)
}

func (s *Store) DeleteGroupByID(
	ctx context.Context,
	logger logx.Logger,
	id int64,
) error {
	return deleteGroupByID(ctx, logger.WithName("data-service"), s.conn, id)
}

func createGroup(
	ctx context.Context,
	logger logx.Logger,
	conn squirrel.BaseRunner,
	name string,
	handle string,
) (cms.Group, error) {
	logger = logger.WithName("create-group")
	u := uuid.NewV4().Bytes()

	result, err := squirrel.Insert("user_group").
		Columns("uuid", "name", "handle").
		Values(u, name, handle).
		RunWith(conn).
		ExecContext(ctx)

	switch e := err.(type) {
	case nil:
		groupID, err2 := result.LastInsertId()
		if err2 != nil {
			logger.Error(failedToRetrieveID, err2)
			return cms.Group{}, err2
		}

		return cms.Group{
			ID:     groupID,
			Name:   name,
			Handle: handle,
		}, nil
	case *mysql.MySQLError:
		if e.Number == MySQLErrorCodeDuplicateKey {
			logger.Debug(errGroupHandleTaken)
			return cms.Group{}, cms.ErrGroupHandleTaken
		}

		logger.Error(failedToCreateGroup, err)
		return cms.Group{}, err
	default:
		logger.Error(failedToCreateGroup, err)
		return cms.Group{}, err
	}
}

func updateGroup(
	ctx context.Context,
	logger logx.Logger,
	conn squirrel.BaseRunner,
	group cms.Group,
) error {
	logger = logger.WithName("update-group")

	// An update of identical values affects zero rows, so absence has to be
	// checked with a read rather than with the affected-row count.
	_, err := findGroupByID(ctx, logger, conn, group.ID)
	if err != nil {
		return err
	}

	_, err = squirrel.Update("user_group").
		Set("name", group.Name).
		Set("handle", group.Handle).
		Where(squirrel.Eq{"id": group.ID}).
		RunWith(conn).
		ExecContext(ctx)

	switch e := err.(type) {
	case nil:
		return nil
	case *mysql.MySQLError:
		if e.Number == MySQLErrorCodeDuplicateKey {
			logger.Debug(errGroupHandleTaken)
			return cms.ErrGroupHandleTaken
		}

		logger.Error(failedToUpdateGroup, err)
		return err
	default:
		logger.Error(failedToUpdateGroup, err)
		return err
	}
}

func findGroupByID(
	ctx context.Context,
	logger logx.Logger,
	conn squirrel.BaseRunner,
	id int64,
) (cms.Group, error) {
	logger = logger.WithName("find-group-by-id")

	var (
		groupID     int64
		groupName   string
		groupHandle string
	)

	err := squirrel.Select("id", "name", "handle").
		From("user_group").
		Where(squirrel.Eq{"id": id}).
		RunWith(conn).
		ScanContext(ctx, &groupID, &groupName, &groupHandle)

	switch err {
	case nil:
		return cms.Group{
			ID:     groupID,
			Name:   groupName,
			Handle: groupHandle,
		}, nil
	case sql.ErrNoRows:
		logger.Debug(errGroupNotFound)
		return cms.Group{}, cms.ErrGroupNotFound
	default:
		logger.Error(failedToFindGroup, err)
		return cms.Group{}, err
	}
}

func findGroupByHandle(
	ctx context.Context,
	logger logx.Logger,
	conn squirrel.BaseRunner,
	handle string,
) (cms.Group, error) {
	logger = logger.WithName("find-group-by-handle")

	var (
		groupID     int64
		groupName   string
		groupHandle string
	)

	err := squirrel.Select("id", "name", "handle").
		From("user_group").
		Where(squirrel.Eq{"handle": handle}).
		RunWith(conn).
		ScanContext(ctx, &groupID, &groupName, &groupHandle)

	switch err {
	case nil:
		return cms.Group{
			ID:     groupID,
			Name:   groupName,
			Handle: groupHandle,
		}, nil
	case sql.ErrNoRows:
		logger.Debug(errGroupNotFound)
		return cms.Group{}, cms.ErrGroupNotFound
	default:
		logger.Error(failedToFindGroup, err)
		return cms.Group{}, err
	}
}

func listGroups(
	ctx context.Context,
	logger logx.Logger,
	conn squirrel.BaseRunner,
) ([]cms.Group, error) {
	logger = logger.WithName("list-groups")

	rows, err := squirrel.Select("id", "name", "handle").
		From("user_group").
		OrderBy("name").
		RunWith(conn).
		QueryContext(ctx)
	if err != nil {
		logger.Error(failedToListGroups, err)
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

func deleteGroupByID(
	ctx context.Context,
	logger logx.Logger,
	conn squirrel.BaseRunner,
	id int64,
) error {
	logger = logger.WithName("delete-group-by-id")

	// Memberships go with the group through the foreign key's cascade.
	result, err := squirrel.Delete("user_group").
		Where(squirrel.Eq{"id": id}).
		RunWith(conn).
		ExecContext(ctx)

	switch err {
	case nil:
		n, err2 := result.RowsAffected()
		if err2 != nil {
			logger.Error(failedToCountRowsAffected, err2)
			return err2
		}

		if n == 0 {
			logger.Debug(errGroupNotFound)
			return cms.ErrGroupNotFound
		}

		return nil
	case sql.ErrNoRows:
		logger.Debug(errGroupNotFound)
		return cms.ErrGroupNotFound
	default:
		logger.Error(failedToDeleteGroup, err)
		return err
	}
}
