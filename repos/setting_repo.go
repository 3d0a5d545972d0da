package repos

import (
	"context"

	"github.com/smzarrabimmp/cms"
	"github.com/smzarrabimmp/cms/logx"
)

type FindSettingQuery struct {
	Namespace string
	Key       string
}

type SettingRepo interface {
	FindSetting(
		ctx context.Context,
		logger logx.Logger,
		query FindSettingQuery,
	) (cms.Setting, error)

	SaveSetting(
		ctx context.Context,
		logger logx.Logger,
		setting cms.Setting,
	) error
}
