package inmemory

import (
	"context"

	"github.com/smzarrabimmp/cms"
	"github.com/smzarrabimmp/cms/logx"
	"github.com/smzarrabimmp/cms/repos"
)

func (s *Store) FindSetting(
	ctx context.Context,
	logger logx.Logger,
	query repos.FindSettingQuery,
) (cms.Setting, error) {
	s.rw.RLock()
	defer s.rw.RUnlock()

	setting, exists := s.settings[settingName{namespace: query.Namespace, key: query.Key}]
	if !exists {
		return cms.Setting{}, cms.ErrSettingNotFound
	}

	return setting, nil
}

func (s *Store) SaveSetting(
	ctx context.Context,
	logger logx.Logger,
	setting cms.Setting,
) error {
	s.rw.Lock()
	defer s.rw.Unlock()

	s.settings[settingName{namespace: setting.Namespace, key: setting.Key}] = setting

	return nil
}
