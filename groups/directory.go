package groups

import (
	"context"
	"fmt"
	"strconv"

	"github.com/smzarrabimmp/cms"
	"github.com/smzarrabimmp/cms/logx"
	"github.com/smzarrabimmp/cms/repos"
)

// Directory answers questions about user groups and carries out every
// change to them. It owns validation and the hooks fired around
// membership changes; storage is delegated to the repos it is
// constructed with, so the same directory runs against MySQL or the
// in-memory store.
type Directory struct {
	groupRepo      repos.GroupRepo
	membershipRepo repos.MembershipRepo

	logger   logx.Logger
	settings Settings
	hooks    *Hooks
}

func NewDirectory(
	groupRepo repos.GroupRepo,
	membershipRepo repos.MembershipRepo,
	opts ...DirectoryOption,
) *Directory {
	config := &directoryConfig{
		logger:   &emptyLogger{},
		settings: emptySettings{},
		hooks:    &Hooks{},
	}

	for _, opt := range opts {
		opt(config)
	}

	return &Directory{
		groupRepo:      groupRepo,
		membershipRepo: membershipRepo,
		logger:         config.logger,
		settings:       config.settings,
		hooks:          config.hooks,
	}
}

// Hooks returns the registry used by membership changes so embedders can
// attach callbacks after construction.
func (d *Directory) Hooks() *Hooks {
	return d.hooks
}

func (d *Directory) ListGroups(ctx context.Context) ([]cms.Group, error) {
	logger := d.logger.WithName("list-groups")
	logger.Debug(starting)

	groups, err := d.groupRepo.ListGroups(ctx, logger)
	if err != nil {
		return nil, err
	}

	logger.Debug(success)
	return groups, nil
}

func (d *Directory) ListGroupsIndexedBy(ctx context.Context, key cms.GroupIndex) (map[string]cms.Group, error) {
	groups, err := d.ListGroups(ctx)
	if err != nil {
		return nil, err
	}

	return cms.IndexGroupsBy(groups, key)
}

// GroupByID returns the group with the given id, or nil when no such
// group exists.
func (d *Directory) GroupByID(ctx context.Context, id int64) (*cms.Group, error) {
	logger := d.logger.WithName("group-by-id").WithData(
		logx.Data{Key: "group.id", Value: id},
	)
	logger.Debug(starting)

	group, err := d.groupRepo.FindGroupByID(ctx, logger, id)
	switch err {
	case nil:
		logger.Debug(success)
		return &group, nil
	case cms.ErrGroupNotFound:
		return nil, nil
	default:
		return nil, err
	}
}

// GroupByHandle returns the group with the given handle, or nil when no
// such group exists.
func (d *Directory) GroupByHandle(ctx context.Context, handle string) (*cms.Group, error) {
	logger := d.logger.WithName("group-by-handle").WithData(
		logx.Data{Key: "group.handle", Value: handle},
	)
	logger.Debug(starting)

	group, err := d.groupRepo.FindGroupByHandle(ctx, logger, handle)
	switch err {
	case nil:
		logger.Debug(success)
		return &group, nil
	case cms.ErrGroupNotFound:
		return nil, nil
	default:
		return nil, err
	}
}

// GroupsForUser returns the groups the user belongs to, ordered by name.
// A user with no memberships gets an empty list.
func (d *Directory) GroupsForUser(ctx context.Context, userID int64) ([]cms.Group, error) {
	logger := d.logger.WithName("groups-for-user").WithData(
		logx.Data{Key: "user.id", Value: userID},
	)
	logger.Debug(starting)

	groups, err := d.membershipRepo.GroupsForUser(ctx, logger, repos.ListUserGroupsQuery{
		UserID: userID,
	})
	if err != nil {
		return nil, err
	}

	logger.Debug(success)
	return groups, nil
}

func (d *Directory) GroupsForUserIndexedBy(ctx context.Context, userID int64, key cms.GroupIndex) (map[string]cms.Group, error) {
	groups, err := d.GroupsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return cms.IndexGroupsBy(groups, key)
}

// SaveGroup validates and stores the group, creating it when its id is
// zero and writing the new id back on success. Validation failures and a
// taken handle land on group.Errors with a (false, nil) return; updating
// a group that no longer exists is an error.
func (d *Directory) SaveGroup(ctx context.Context, group *cms.Group) (bool, error) {
	logger := d.logger.WithName("save-group").WithData(
		logx.Data{Key: "group.id", Value: group.ID},
		logx.Data{Key: "group.handle", Value: group.Handle},
	)
	logger.Debug(starting)

	group.ClearErrors()
	validateGroup(group)
	if group.HasErrors() {
		logger.Debug(validationFailed)
		return false, nil
	}

	if group.ID == 0 {
		created, err := d.groupRepo.CreateGroup(ctx, logger, group.Name, group.Handle)
		switch err {
		case nil:
			group.ID = created.ID
		case cms.ErrGroupHandleTaken:
			group.AddError("handle", fmt.Sprintf("handle %q has already been taken", group.Handle))
			logger.Debug(validationFailed)
			return false, nil
		default:
			return false, err
		}
	} else {
		if err := d.groupRepo.UpdateGroup(ctx, logger, *group); err != nil {
			if err == cms.ErrGroupHandleTaken {
				group.AddError("handle", fmt.Sprintf("handle %q has already been taken", group.Handle))
				logger.Debug(validationFailed)
				return false, nil
			}

			return false, err
		}
	}

	logger.Debug(success)
	return true, nil
}

// AssignUserToGroups replaces the user's entire membership with the
// given groups. A nil or empty slice removes the user from every group.
// Duplicate ids collapse; before-assign hooks see the collapsed set and
// any veto leaves the stored membership untouched.
func (d *Directory) AssignUserToGroups(ctx context.Context, userID int64, groupIDs []int64) (bool, error) {
	logger := d.logger.WithName("assign-user-to-groups").WithData(
		logx.Data{Key: "user.id", Value: userID},
	)
	logger.Debug(starting)

	event := AssignEvent{
		UserID:   userID,
		GroupIDs: dedupeGroupIDs(groupIDs),
	}

	if !d.hooks.runBeforeAssign(ctx, event) {
		logger.Info(assignmentRejected)
		return false, nil
	}

	user := cms.User{ID: userID}
	if err := d.membershipRepo.ReplaceUserGroups(ctx, logger, user, event.GroupIDs); err != nil {
		return false, err
	}

	d.hooks.runAfterAssign(ctx, event)

	logger.Debug(success)
	return true, nil
}

// AssignUserToDefaultGroup places the user in the group named by the
// users/defaultGroupId setting. Nothing happens when the setting is
// absent, when a hook vetoes the assignment, or when the configured
// group no longer exists; a value that does not parse as an id at all is
// an error.
func (d *Directory) AssignUserToDefaultGroup(ctx context.Context, user cms.User) (bool, error) {
	logger := d.logger.WithName("assign-user-to-default-group").WithData(
		logx.Data{Key: "user.id", Value: user.ID},
	)
	logger.Debug(starting)

	value, ok, err := d.settings.Get(ctx, SettingsNamespaceUsers, SettingDefaultGroupID)
	if err != nil {
		logger.Error(failedToReadDefaultGroupSetting, err)
		return false, err
	}
	if !ok {
		logger.Debug(noDefaultGroupConfigured)
		return false, nil
	}

	groupID, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		logger.Error(invalidDefaultGroupSetting, err, logx.Data{Key: "setting.value", Value: value})
		return false, err
	}

	event := DefaultAssignEvent{User: user}
	if !d.hooks.runBeforeDefaultAssign(ctx, event) {
		logger.Info(assignmentRejected)
		return false, nil
	}

	assigned, err := d.AssignUserToGroups(ctx, user.ID, []int64{groupID})
	if err != nil {
		if err == cms.ErrGroupNotFound {
			logger.Error(staleDefaultGroupSetting, err, logx.Data{Key: "group.id", Value: groupID})
			return false, nil
		}

		return false, err
	}
	if !assigned {
		return false, nil
	}

	d.hooks.runAfterDefaultAssign(ctx, event)

	logger.Debug(success)
	return true, nil
}

// DeleteGroupByID removes the group and every membership of it. Deleting
// a group that is already gone is not an error.
func (d *Directory) DeleteGroupByID(ctx context.Context, id int64) (bool, error) {
	logger := d.logger.WithName("delete-group-by-id").WithData(
		logx.Data{Key: "group.id", Value: id},
	)
	logger.Debug(starting)

	err := d.groupRepo.DeleteGroupByID(ctx, logger, id)
	switch err {
	case nil, cms.ErrGroupNotFound:
		logger.Debug(success)
		return true, nil
	default:
		return false, err
	}
}

func dedupeGroupIDs(groupIDs []int64) []int64 {
	seen := make(map[int64]struct{}, len(groupIDs))
	deduped := make([]int64, 0, len(groupIDs))

	for _, id := range groupIDs {
		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		deduped = append(deduped, id)
	}

	return deduped
}

type DirectoryOption func(*directoryConfig)

func WithLogger(logger logx.Logger) DirectoryOption {
	return func(o *directoryConfig) {
		o.logger = logger
	}
}

func WithSettings(settings Settings) DirectoryOption {
	return func(o *directoryConfig) {
		o.settings = settings
	}
}

func WithHooks(hooks *Hooks) DirectoryOption {
	return func(o *directoryConfig) {
		o.hooks = hooks
	}
}

type directoryConfig struct {
	logger   logx.Logger
	settings Settings
	hooks    *Hooks
}

type emptyLogger struct{}

func (l *emptyLogger) WithName(string) logx.Logger {
	return l
}

func (l *emptyLogger) WithData(...logx.Data) logx.Logger {
	return l
}

func (l *emptyLogger) Debug(string, ...logx.Data) {}

func (l *emptyLogger) Info(string, ...logx.Data) {}

func (l *emptyLogger) Error(string, error, ...logx.Data) {}

type emptySettings struct{}

func (emptySettings) Get(context.Context, string, string) (string, bool, error) {
	return "", false, nil
}
