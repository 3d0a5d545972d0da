package groups

import (
	"context"

	"github.com/smzarrabimmp/cms"
	"github.com/smzarrabimmp/cms/logx"
	"github.com/smzarrabimmp/cms/repos"
)

const (
	SettingsNamespaceUsers = "users"

	// SettingDefaultGroupID names the setting holding the id of the group
	// new users are placed in.
	SettingDefaultGroupID = "defaultGroupId"
)

// Settings supplies configuration values to the directory. Absence is
// reported through the second return value, not an error.
type Settings interface {
	Get(ctx context.Context, namespace, key string) (string, bool, error)
}

// StaticSettings serves values from a fixed map keyed "namespace/key".
type StaticSettings map[string]string

func (s StaticSettings) Get(_ context.Context, namespace string, key string) (string, bool, error) {
	value, ok := s[namespace+"/"+key]

	return value, ok, nil
}

// StoreSettings reads values through a repos.SettingRepo.
type StoreSettings struct {
	repo   repos.SettingRepo
	logger logx.Logger
}

func NewStoreSettings(repo repos.SettingRepo, logger logx.Logger) *StoreSettings {
	return &StoreSettings{
		repo:   repo,
		logger: logger,
	}
}

func (s *StoreSettings) Get(ctx context.Context, namespace string, key string) (string, bool, error) {
	setting, err := s.repo.FindSetting(ctx, s.logger, repos.FindSettingQuery{
		Namespace: namespace,
		Key:       key,
	})

	switch err {
	case nil:
		return setting.Value, true, nil
	case cms.ErrSettingNotFound:
		return "", false, nil
	default:
		return "", false, err
	}
}
