package monitorfakes

import (
	"context"
	"sync"

	"github.com/smzarrabimmp/cms"
	"github.com/smzarrabimmp/cms/monitor"
)

type FakeClient struct {
	mu sync.Mutex

	CreateGroupStub          func(ctx context.Context, name, handle string) (cms.Group, error)
	createGroupCalls         []createGroupCall
	createGroupReturns       createGroupReturns
	createGroupReturnsOnCall map[int]createGroupReturns

	DeleteGroupStub          func(ctx context.Context, id int64) error
	deleteGroupCalls         []deleteGroupCall
	deleteGroupReturns       error
	deleteGroupReturnsOnCall map[int]error

	AssignUserToGroupsStub          func(ctx context.Context, userID int64, groupIDs []int64) error
	assignUserToGroupsCalls         []assignUserToGroupsCall
	assignUserToGroupsReturns       error
	assignUserToGroupsReturnsOnCall map[int]error

	GroupsForUserStub          func(ctx context.Context, userID int64) ([]cms.Group, error)
	groupsForUserCalls         []groupsForUserCall
	groupsForUserReturns       groupsForUserReturns
	groupsForUserReturnsOnCall map[int]groupsForUserReturns
}

type createGroupCall struct {
	ctx    context.Context
	name   string
	handle string
}

type createGroupReturns struct {
	group cms.Group
	err   error
}

type deleteGroupCall struct {
	ctx context.Context
	id  int64
}

type assignUserToGroupsCall struct {
	ctx      context.Context
	userID   int64
	groupIDs []int64
}

type groupsForUserCall struct {
	ctx    context.Context
	userID int64
}

type groupsForUserReturns struct {
	groups []cms.Group
	err    error
}

func (f *FakeClient) CreateGroup(ctx context.Context, name, handle string) (cms.Group, error) {
	f.mu.Lock()
	i := len(f.createGroupCalls)
	f.createGroupCalls = append(f.createGroupCalls, createGroupCall{ctx: ctx, name: name, handle: handle})
	stub := f.CreateGroupStub
	onCall, hasOnCall := f.createGroupReturnsOnCall[i]
	returns := f.createGroupReturns
	f.mu.Unlock()

	if stub != nil {
		return stub(ctx, name, handle)
	}
	if hasOnCall {
		return onCall.group, onCall.err
	}
	return returns.group, returns.err
}

func (f *FakeClient) CreateGroupReturns(group cms.Group, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.createGroupReturns = createGroupReturns{group: group, err: err}
}

func (f *FakeClient) CreateGroupReturnsOnCall(i int, group cms.Group, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createGroupReturnsOnCall == nil {
		f.createGroupReturnsOnCall = map[int]createGroupReturns{}
	}
	f.createGroupReturnsOnCall[i] = createGroupReturns{group: group, err: err}
}

func (f *FakeClient) CreateGroupCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.createGroupCalls)
}

func (f *FakeClient) CreateGroupArgsForCall(i int) (context.Context, string, string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	call := f.createGroupCalls[i]
	return call.ctx, call.name, call.handle
}

func (f *FakeClient) DeleteGroup(ctx context.Context, id int64) error {
	f.mu.Lock()
	i := len(f.deleteGroupCalls)
	f.deleteGroupCalls = append(f.deleteGroupCalls, deleteGroupCall{ctx: ctx, id: id})
	stub := f.DeleteGroupStub
	onCall, hasOnCall := f.deleteGroupReturnsOnCall[i]
	returns := f.deleteGroupReturns
	f.mu.Unlock()

	if stub != nil {
		return stub(ctx, id)
	}
	if hasOnCall {
		return onCall
	}
	return returns
}

func (f *FakeClient) DeleteGroupReturns(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.deleteGroupReturns = err
}

func (f *FakeClient) DeleteGroupReturnsOnCall(i int, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.deleteGroupReturnsOnCall == nil {
		f.deleteGroupReturnsOnCall = map[int]error{}
	}
	f.deleteGroupReturnsOnCall[i] = err
}

func (f *FakeClient) DeleteGroupCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.deleteGroupCalls)
}

func (f *FakeClient) DeleteGroupArgsForCall(i int) (context.Context, int64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	call := f.deleteGroupCalls[i]
	return call.ctx, call.id
}

func (f *FakeClient) AssignUserToGroups(ctx context.Context, userID int64, groupIDs []int64) error {
	f.mu.Lock()
	i := len(f.assignUserToGroupsCalls)
	f.assignUserToGroupsCalls = append(f.assignUserToGroupsCalls, assignUserToGroupsCall{ctx: ctx, userID: userID, groupIDs: groupIDs})
	stub := f.AssignUserToGroupsStub
	onCall, hasOnCall := f.assignUserToGroupsReturnsOnCall[i]
	returns := f.assignUserToGroupsReturns
	f.mu.Unlock()

	if stub != nil {
		return stub(ctx, userID, groupIDs)
	}
	if hasOnCall {
		return onCall
	}
	return returns
}

func (f *FakeClient) AssignUserToGroupsReturns(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.assignUserToGroupsReturns = err
}

func (f *FakeClient) AssignUserToGroupsReturnsOnCall(i int, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.assignUserToGroupsReturnsOnCall == nil {
		f.assignUserToGroupsReturnsOnCall = map[int]error{}
	}
	f.assignUserToGroupsReturnsOnCall[i] = err
}

func (f *FakeClient) AssignUserToGroupsCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.assignUserToGroupsCalls)
}

func (f *FakeClient) AssignUserToGroupsArgsForCall(i int) (context.Context, int64, []int64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	call := f.assignUserToGroupsCalls[i]
	return call.ctx, call.userID, call.groupIDs
}

func (f *FakeClient) GroupsForUser(ctx context.Context, userID int64) ([]cms.Group, error) {
	f.mu.Lock()
	i := len(f.groupsForUserCalls)
	f.groupsForUserCalls = append(f.groupsForUserCalls, groupsForUserCall{ctx: ctx, userID: userID})
	stub := f.GroupsForUserStub
	onCall, hasOnCall := f.groupsForUserReturnsOnCall[i]
	returns := f.groupsForUserReturns
	f.mu.Unlock()

	if stub != nil {
		return stub(ctx, userID)
	}
	if hasOnCall {
		return onCall.groups, onCall.err
	}
	return returns.groups, returns.err
}

func (f *FakeClient) GroupsForUserReturns(groups []cms.Group, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.groupsForUserReturns = groupsForUserReturns{groups: groups, err: err}
}

func (f *FakeClient) GroupsForUserReturnsOnCall(i int, groups []cms.Group, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.groupsForUserReturnsOnCall == nil {
		f.groupsForUserReturnsOnCall = map[int]groupsForUserReturns{}
	}
	f.groupsForUserReturnsOnCall[i] = groupsForUserReturns{groups: groups, err: err}
}

func (f *FakeClient) GroupsForUserCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.groupsForUserCalls)
}

func (f *FakeClient) GroupsForUserArgsForCall(i int) (context.Context, int64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	call := f.groupsForUserCalls[i]
	return call.ctx, call.userID
}

var _ monitor.Client = &FakeClient{}
