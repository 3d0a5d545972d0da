package inmemory

import (
	"context"
	"sort"

	"github.com/smzarrabimmp/cms"
	"github.com/smzarrabimmp/cms/logx"
	"github.com/smzarrabimmp/cms/repos"
)

func (s *Store) GroupsForUser(
	ctx context.Context,
	logger logx.Logger,
	query repos.ListUserGroupsQuery,
) ([]cms.Group, error) {
	s.rw.RLock()
	defer s.rw.RUnlock()

	var groups []cms.Group
	for _, groupID := range s.memberships[query.UserID] {
		if group, exists := s.groups[groupID]; exists {
			groups = append(groups, group)
		}
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Name < groups[j].Name
	})

	return groups, nil
}

func (s *Store) ReplaceUserGroups(
	ctx context.Context,
	logger logx.Logger,
	user cms.User,
	groupIDs []int64,
) error {
	s.rw.Lock()
	defer s.rw.Unlock()

	for _, groupID := range groupIDs {
		if _, exists := s.groups[groupID]; !exists {
			return cms.ErrGroupNotFound
		}
	}

	if len(groupIDs) == 0 {
		delete(s.memberships, user.ID)
		return nil
	}

	membership := make([]int64, len(groupIDs))
	copy(membership, groupIDs)

	s.memberships[user.ID] = membership

	return nil
}
