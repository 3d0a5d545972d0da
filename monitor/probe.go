package monitor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"code.cloudfoundry.org/clock"
	uuid "github.com/satori/go.uuid"
	"github.com/smzarrabimmp/cms"
)

// Real user ids handed out by the directory are positive; a negative id
// keeps the probe's memberships away from production users.
var probeUser = cms.User{
	ID:       -1,
	Username: "group-directory-probe",
}

//go:generate counterfeiter . Client

type Client interface {
	CreateGroup(ctx context.Context, name, handle string) (cms.Group, error)
	DeleteGroup(ctx context.Context, id int64) error
	AssignUserToGroups(ctx context.Context, userID int64, groupIDs []int64) error
	GroupsForUser(ctx context.Context, userID int64) ([]cms.Group, error)
}

type Probe struct {
	client         Client
	clock          clock.Clock
	timeout        time.Duration
	cleanupTimeout time.Duration
	maxLatency     time.Duration
}

func NewProbe(client Client, opts ...Option) *Probe {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	return &Probe{
		client:         client,
		clock:          o.clock,
		timeout:        o.timeout,
		cleanupTimeout: o.cleanupTimeout,
		maxLatency:     o.maxLatency,
	}
}

// Run exercises a full membership round trip: create a throwaway group,
// assign the probe user to it, confirm the assignment is visible, clear
// it again, and delete the group.
func (p *Probe) Run() error {
	var (
		err    error
		failed bool
	)

	suffix := uuid.NewV4().String()
	name := fmt.Sprintf("probe-group-%s", suffix)
	handle := fmt.Sprintf("probe_group_%s", strings.Replace(suffix, "-", "_", -1))

	var group cms.Group

	defer func() {
		if err != nil {
			ctx, cancel := context.WithTimeout(context.Background(), p.cleanupTimeout)
			defer cancel()

			p.client.DeleteGroup(ctx, group.ID)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	start := p.clock.Now()
	if group, err = p.client.CreateGroup(ctx, name, handle); err != nil {
		return err
	}
	if p.clock.Since(start) > p.maxLatency {
		failed = true
	}

	ctx, cancel = context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	start = p.clock.Now()
	if err = p.client.AssignUserToGroups(ctx, probeUser.ID, []int64{group.ID}); err != nil {
		return err
	}
	if p.clock.Since(start) > p.maxLatency {
		failed = true
	}

	ctx, cancel = context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	var listed []cms.Group
	start = p.clock.Now()
	listed, err = p.client.GroupsForUser(ctx, probeUser.ID)
	if p.clock.Since(start) > p.maxLatency {
		failed = true
	}
	if err == nil && !containsGroup(listed, group.ID) {
		err = ErrIncorrectMembership
	}
	if err != nil {
		return err
	}

	ctx, cancel = context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	start = p.clock.Now()
	if err = p.client.AssignUserToGroups(ctx, probeUser.ID, nil); err != nil {
		return err
	}
	if p.clock.Since(start) > p.maxLatency {
		failed = true
	}

	ctx, cancel = context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	start = p.clock.Now()
	listed, err = p.client.GroupsForUser(ctx, probeUser.ID)
	if p.clock.Since(start) > p.maxLatency {
		failed = true
	}
	if err == nil && containsGroup(listed, group.ID) {
		err = ErrIncorrectMembership
	}
	if err != nil {
		return err
	}

	ctx, cancel = context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	start = p.clock.Now()
	if err = p.client.DeleteGroup(ctx, group.ID); err != nil {
		return err
	}
	if p.clock.Since(start) > p.maxLatency {
		failed = true
	}

	if failed {
		return ErrExceededMaxLatency
	}

	return nil
}

func containsGroup(groups []cms.Group, id int64) bool {
	for _, group := range groups {
		if group.ID == id {
			return true
		}
	}

	return false
}
