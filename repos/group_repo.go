package repos

import (
	"context"

	"github.com/smzarrabimmp/cms"
	"github.com/smzarrabimmp/cms/logx"
)

// GroupRepo stores user groups. Lookups for groups which do not exist
// return cms.ErrGroupNotFound, and writes which would reuse a taken
// handle return cms.ErrGroupHandleTaken.
type GroupRepo interface {
	CreateGroup(
		ctx context.Context,
		logger logx.Logger,
		name string,
		handle string,
	) (cms.Group, error)

	UpdateGroup(
		ctx context.Context,
		logger logx.Logger,
		group cms.Group,
	) error

	FindGroupByID(
		ctx context.Context,
		logger logx.Logger,
		id int64,
	) (cms.Group, error)

	FindGroupByHandle(
		ctx context.Context,
		logger logx.Logger,
		handle string,
	) (cms.Group, error)

	ListGroups(
		ctx context.Context,
		logger logx.Logger,
	) ([]cms.Group, error)

	DeleteGroupByID(
		ctx context.Context,
		logger logx.Logger,
		id int64,
	) error
}
