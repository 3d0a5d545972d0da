package cms

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Client talks to a group directory server over its HTTP API.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	closed  bool
}

func Dial(addr string, opts ...DialOption) (*Client, error) {
	if addr == "" {
		return nil, ErrAddrEmpty
	}

	config := &options{}

	for _, opt := range opts {
		opt(config)
	}

	if config.tlsConfig == nil {
		return nil, ErrNoTransportSecurity
	}

	baseURL, err := url.Parse("https://" + addr)
	if err != nil {
		return nil, err
	}

	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: config.tlsConfig,
			},
		},
	}, nil
}

func (c *Client) Close() error {
	if c.closed {
		return ErrClientConnClosing
	}

	c.closed = true
	c.http.CloseIdleConnections()
	return nil
}

func (c *Client) CreateGroup(ctx context.Context, name, handle string) (Group, error) {
	request := struct {
		Group Group `json:"group"`
	}{Group: Group{Name: name, Handle: handle}}

	var response struct {
		Group Group `json:"group"`
	}
	if err := c.do(ctx, http.MethodPost, "/v1/groups", request, &response); err != nil {
		return Group{}, err
	}

	return response.Group, nil
}

func (c *Client) UpdateGroup(ctx context.Context, group Group) (Group, error) {
	request := struct {
		Group Group `json:"group"`
	}{Group: group}

	var response struct {
		Group Group `json:"group"`
	}
	path := fmt.Sprintf("/v1/groups/%d", group.ID)
	if err := c.do(ctx, http.MethodPut, path, request, &response); err != nil {
		return Group{}, err
	}

	return response.Group, nil
}

func (c *Client) GroupByID(ctx context.Context, id int64) (Group, error) {
	var response struct {
		Group Group `json:"group"`
	}
	path := fmt.Sprintf("/v1/groups/%d", id)
	if err := c.do(ctx, http.MethodGet, path, nil, &response); err != nil {
		return Group{}, err
	}

	return response.Group, nil
}

func (c *Client) GroupByHandle(ctx context.Context, handle string) (Group, error) {
	var response struct {
		Group Group `json:"group"`
	}
	path := fmt.Sprintf("/v1/groups/handle/%s", url.PathEscape(handle))
	if err := c.do(ctx, http.MethodGet, path, nil, &response); err != nil {
		return Group{}, err
	}

	return response.Group, nil
}

func (c *Client) ListGroups(ctx context.Context) ([]Group, error) {
	var response struct {
		Groups []Group `json:"groups"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/groups", nil, &response); err != nil {
		return nil, err
	}

	return response.Groups, nil
}

func (c *Client) DeleteGroup(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/v1/groups/%d", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) GroupsForUser(ctx context.Context, userID int64) ([]Group, error) {
	var response struct {
		Groups []Group `json:"groups"`
	}
	path := fmt.Sprintf("/v1/users/%d/groups", userID)
	if err := c.do(ctx, http.MethodGet, path, nil, &response); err != nil {
		return nil, err
	}

	return response.Groups, nil
}

func (c *Client) AssignUserToGroups(ctx context.Context, userID int64, groupIDs []int64) error {
	request := struct {
		GroupIDs []int64 `json:"groupIds"`
	}{GroupIDs: groupIDs}

	path := fmt.Sprintf("/v1/users/%d/groups", userID)
	return c.do(ctx, http.MethodPut, path, request, nil)
}

func (c *Client) AssignUserToDefaultGroup(ctx context.Context, user User) error {
	request := struct {
		User User `json:"user"`
	}{User: user}

	path := fmt.Sprintf("/v1/users/%d/groups/default", user.ID)
	return c.do(ctx, http.MethodPost, path, request, nil)
}

func (c *Client) Setting(ctx context.Context, namespace, key string) (Setting, error) {
	var response struct {
		Setting Setting `json:"setting"`
	}
	path := fmt.Sprintf("/v1/settings/%s/%s", url.PathEscape(namespace), url.PathEscape(key))
	if err := c.do(ctx, http.MethodGet, path, nil, &response); err != nil {
		return Setting{}, err
	}

	return response.Setting, nil
}

func (c *Client) SaveSetting(ctx context.Context, setting Setting) error {
	request := struct {
		Value string `json:"value"`
	}{Value: setting.Value}

	path := fmt.Sprintf("/v1/settings/%s/%s", url.PathEscape(setting.Namespace), url.PathEscape(setting.Key))
	return c.do(ctx, http.MethodPut, path, request, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, result interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return decodeError(res)
	}

	if result != nil {
		return json.NewDecoder(res.Body).Decode(result)
	}

	return nil
}

// decodeError turns the server's error envelopes back into the sentinel
// errors callers compare against.
func decodeError(res *http.Response) error {
	var payload struct {
		Error  string       `json:"error"`
		Errors []FieldError `json:"errors"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return ErrUnknown
	}

	if len(payload.Errors) > 0 {
		return ValidationError{Errors: payload.Errors}
	}

	switch payload.Error {
	case "group-not-found":
		return ErrGroupNotFound
	case "setting-not-found":
		return ErrSettingNotFound
	case "assignment-rejected":
		return ErrAssignmentRejected
	case "no-default-user-group":
		return ErrNoDefaultUserGroup
	default:
		return ErrUnknown
	}
}

type DialOption func(*options)

func WithTLSConfig(config *tls.Config) DialOption {
	return func(o *options) {
		o.tlsConfig = config
	}
}

type options struct {
	tlsConfig *tls.Config
}
