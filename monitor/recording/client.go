package recording

import (
	"context"
	"time"

	"code.cloudfoundry.org/clock"
	"github.com/smzarrabimmp/cms"
	"github.com/smzarrabimmp/cms/monitor"
)

//go:generate counterfeiter . DurationRecorder

type DurationRecorder interface {
	Observe(duration time.Duration) error
}

// Client wraps a probe client and records how long each successful call
// took. Failed calls are not recorded.
type Client struct {
	client   monitor.Client
	recorder DurationRecorder
	clock    clock.Clock
}

func NewClient(client monitor.Client, recorder DurationRecorder, opts ...Option) *Client {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	return &Client{
		client:   client,
		recorder: recorder,
		clock:    o.clock,
	}
}

func (c *Client) CreateGroup(ctx context.Context, name, handle string) (cms.Group, error) {
	start := c.clock.Now()
	group, err := c.client.CreateGroup(ctx, name, handle)
	if err != nil {
		return cms.Group{}, err
	}

	if err := c.recorder.Observe(c.clock.Since(start)); err != nil {
		return group, FailedToObserveDurationError{Err: err}
	}

	return group, nil
}

func (c *Client) DeleteGroup(ctx context.Context, id int64) error {
	start := c.clock.Now()
	if err := c.client.DeleteGroup(ctx, id); err != nil {
		return err
	}

	if err := c.recorder.Observe(c.clock.Since(start)); err != nil {
		return FailedToObserveDurationError{Err: err}
	}

	return nil
}

func (c *Client) AssignUserToGroups(ctx context.Context, userID int64, groupIDs []int64) error {
	start := c.clock.Now()
	if err := c.client.AssignUserToGroups(ctx, userID, groupIDs); err != nil {
		return err
	}

	if err := c.recorder.Observe(c.clock.Since(start)); err != nil {
		return FailedToObserveDurationError{Err: err}
	}

	return nil
}

func (c *Client) GroupsForUser(ctx context.Context, userID int64) ([]cms.Group, error) {
	start := c.clock.Now()
	groups, err := c.client.GroupsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := c.recorder.Observe(c.clock.Since(start)); err != nil {
		return groups, FailedToObserveDurationError{Err: err}
	}

	return groups, nil
}
