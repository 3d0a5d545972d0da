package inmemory

import (
	"context"
	"sort"

	"github.com/smzarrabimmp/cms"
	"github.com/smzarrabimmp/cms/logx"
)

func (s *Store) CreateGroup(
	ctx context.Context,
	logger logx.Logger,
	name string,
	handle string,
) (cms.Group, error) {
	s.rw.Lock()
	defer s.rw.Unlock()

	if _, exists := s.handles[handle]; exists {
		return cms.Group{}, cms.ErrGroupHandleTaken
	}

	group := cms.Group{
		ID:     s.nextGroupID,
		Name:   name,
		Handle: handle,
	}
	s.nextGroupID++

	s.groups[group.ID] = group
	s.handles[group.Handle] = group.ID

	return group, nil
}

func (s *Store) UpdateGroup(
	ctx context.Context,
	logger logx.Logger,
	group cms.Group,
) error {
	s.rw.Lock()
	defer s.rw.Unlock()

	existing, exists := s.groups[group.ID]
	if !exists {
		return cms.ErrGroupNotFound
	}

	if otherID, taken := s.handles[group.Handle]; taken && otherID != group.ID {
		return cms.ErrGroupHandleTaken
	}

	delete(s.handles, existing.Handle)

	stored := cms.Group{
		ID:     group.ID,
		Name:   group.Name,
		Handle: group.Handle,
	}
	s.groups[stored.ID] = stored
	s.handles[stored.Handle] = stored.ID

	return nil
}

func (s *Store) FindGroupByID(
	ctx context.Context,
	logger logx.Logger,
	id int64,
) (cms.Group, error) {
	s.rw.RLock()
	defer s.rw.RUnlock()

	group, exists := s.groups[id]
	if !exists {
		return cms.Group{}, cms.ErrGroupNotFound
	}

	return group, nil
}

func (s *Store) FindGroupByHandle(
	ctx context.Context,
	logger logx.Logger,
	handle string,
) (cms.Group, error) {
	s.rw.RLock()
	defer s.rw.RUnlock()

	id, exists := s.handles[handle]
	if !exists {
		return cms.Group{}, cms.ErrGroupNotFound
	}

	return s.groups[id], nil
}

func (s *Store) ListGroups(
	ctx context.Context,
	logger logx.Logger,
) ([]cms.Group, error) {
	s.rw.RLock()
	defer s.rw.RUnlock()

	var groups []cms.Group
	for _, group := range s.groups {
		groups = append(groups, group)
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Name < groups[j].Name
	})

	return groups, nil
}

func (s *Store) DeleteGroupByID(
	ctx context.Context,
	logger logx.Logger,
	id int64,
) error {
	s.rw.Lock()
	defer s.rw.Unlock()

	group, exists := s.groups[id]
	if !exists {
		return cms.ErrGroupNotFound
	}

	delete(s.groups, id)
	delete(s.handles, group.Handle)

	// "Cascade"
	// Remove memberships of the deleted group
	for userID, groupIDs := range s.memberships {
		for i, groupID := range groupIDs {
			if groupID == id {
				s.memberships[userID] = append(groupIDs[:i], groupIDs[i+1:]...)
				logger.Debug(success, logx.Data{Key: "group_membership.user_id", Value: userID})
				break
			}
		}
	}

	logger.Debug(success)

	return nil
}
