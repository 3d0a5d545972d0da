package groups

import (
	"context"

	"github.com/smzarrabimmp/cms"
)

// AssignEvent describes a replacement of a user's group membership. The
// same event value is passed to the hooks before and after the change.
type AssignEvent struct {
	UserID   int64
	GroupIDs []int64
}

// DefaultAssignEvent describes an assignment of a user to the configured
// default group.
type DefaultAssignEvent struct {
	User cms.User
}

type BeforeAssignHook func(ctx context.Context, event AssignEvent) bool

type AfterAssignHook func(ctx context.Context, event AssignEvent)

type BeforeDefaultAssignHook func(ctx context.Context, event DefaultAssignEvent) bool

type AfterDefaultAssignHook func(ctx context.Context, event DefaultAssignEvent)

// Hooks collects callbacks around membership changes. A before-hook
// returning false vetoes the change; every before-hook still runs so
// each registration sees every event. After-hooks run only once the
// change has been stored.
//
// Registration is not safe for concurrent use with running operations;
// register hooks before handing the directory out.
type Hooks struct {
	beforeAssign []BeforeAssignHook
	afterAssign  []AfterAssignHook

	beforeDefaultAssign []BeforeDefaultAssignHook
	afterDefaultAssign  []AfterDefaultAssignHook
}

func (h *Hooks) OnBeforeAssign(hook BeforeAssignHook) {
	h.beforeAssign = append(h.beforeAssign, hook)
}

func (h *Hooks) OnAfterAssign(hook AfterAssignHook) {
	h.afterAssign = append(h.afterAssign, hook)
}

func (h *Hooks) OnBeforeDefaultAssign(hook BeforeDefaultAssignHook) {
	h.beforeDefaultAssign = append(h.beforeDefaultAssign, hook)
}

func (h *Hooks) OnAfterDefaultAssign(hook AfterDefaultAssignHook) {
	h.afterDefaultAssign = append(h.afterDefaultAssign, hook)
}

func (h *Hooks) runBeforeAssign(ctx context.Context, event AssignEvent) bool {
	allowed := true
	for _, hook := range h.beforeAssign {
		if !hook(ctx, event) {
			allowed = false
		}
	}

	return allowed
}

func (h *Hooks) runAfterAssign(ctx context.Context, event AssignEvent) {
	for _, hook := range h.afterAssign {
		hook(ctx, event)
	}
}

func (h *Hooks) runBeforeDefaultAssign(ctx context.Context, event DefaultAssignEvent) bool {
	allowed := true
	for _, hook := range h.beforeDefaultAssign {
		if !hook(ctx, event) {
			allowed = false
		}
	}

	return allowed
}

func (h *Hooks) runAfterDefaultAssign(ctx context.Context, event DefaultAssignEvent) {
	for _, hook := range h.afterDefaultAssign {
		hook(ctx, event)
	}
}
