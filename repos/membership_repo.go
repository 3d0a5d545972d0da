package repos

import (
	"context"

	"github.com/smzarrabimmp/cms"
	"github.com/smzarrabimmp/cms/logx"
)

type ListUserGroupsQuery struct {
	UserID int64
}

// MembershipRepo stores which groups a user belongs to. A user's
// membership is always written as a whole set; there is no operation to
// add or remove a single group.
type MembershipRepo interface {
	GroupsForUser(
		ctx context.Context,
		logger logx.Logger,
		query ListUserGroupsQuery,
	) ([]cms.Group, error)

	ReplaceUserGroups(
		ctx context.Context,
		logger logx.Logger,
		user cms.User,
		groupIDs []int64,
	) error
}
