package reposbehaviors

import (
	"context"
	"time"

	"code.cloudfoundry.org/lager/v3/lagertest"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	uuid "github.com/satori/go.uuid"

	"github.com/smzarrabimmp/cms"
	"github.com/smzarrabimmp/cms/logx"
	"github.com/smzarrabimmp/cms/logx/lagerx"
	"github.com/smzarrabimmp/cms/repos"
)

func BehavesLikeASettingRepo(subjectCreator func() repos.SettingRepo) {
	var (
		subject repos.SettingRepo

		ctx    context.Context
		logger logx.Logger

		cancelFunc context.CancelFunc
	)

	BeforeEach(func() {
		subject = subjectCreator()

		ctx, cancelFunc = context.WithTimeout(context.Background(), 1*time.Second)
		logger = lagerx.NewLogger(lagertest.NewTestLogger("cms-test"))
	})

	AfterEach(func() {
		cancelFunc()
	})

	Describe("#FindSetting", func() {
		It("finds a saved setting", func() {
			setting := cms.Setting{
				Namespace: uuid.NewV4().String(),
				Key:       uuid.NewV4().String(),
				Value:     uuid.NewV4().String(),
			}

			err := subject.SaveSetting(ctx, logger, setting)
			Expect(err).NotTo(HaveOccurred())

			found, err := subject.FindSetting(ctx, logger, repos.FindSettingQuery{
				Namespace: setting.Namespace,
				Key:       setting.Key,
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(Equal(setting))
		})

		It("fails if the setting does not exist", func() {
			_, err := subject.FindSetting(ctx, logger, repos.FindSettingQuery{
				Namespace: uuid.NewV4().String(),
				Key:       uuid.NewV4().String(),
			})

			Expect(err).To(Equal(cms.ErrSettingNotFound))
		})

		It("keeps namespaces separate", func() {
			key := uuid.NewV4().String()
			setting := cms.Setting{
				Namespace: uuid.NewV4().String(),
				Key:       key,
				Value:     uuid.NewV4().String(),
			}

			err := subject.SaveSetting(ctx, logger, setting)
			Expect(err).NotTo(HaveOccurred())

			_, err = subject.FindSetting(ctx, logger, repos.FindSettingQuery{
				Namespace: uuid.NewV4().String(),
				Key:       key,
			})

			Expect(err).To(Equal(cms.ErrSettingNotFound))
		})
	})

	Describe("#SaveSetting", func() {
		It("overwrites the value on a second save", func() {
			setting := cms.Setting{
				Namespace: uuid.NewV4().String(),
				Key:       uuid.NewV4().String(),
				Value:     "before",
			}

			err := subject.SaveSetting(ctx, logger, setting)
			Expect(err).NotTo(HaveOccurred())

			setting.Value = "after"
			err = subject.SaveSetting(ctx, logger, setting)
			Expect(err).NotTo(HaveOccurred())

			found, err := subject.FindSetting(ctx, logger, repos.FindSettingQuery{
				Namespace: setting.Namespace,
				Key:       setting.Key,
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(found.Value).To(Equal("after"))
		})

		It("keeps settings with the same key in other namespaces", func() {
			key := uuid.NewV4().String()
			first := cms.Setting{
				Namespace: uuid.NewV4().String(),
				Key:       key,
				Value:     uuid.NewV4().String(),
			}
			second := cms.Setting{
				Namespace: uuid.NewV4().String(),
				Key:       key,
				Value:     uuid.NewV4().String(),
			}

			err := subject.SaveSetting(ctx, logger, first)
			Expect(err).NotTo(HaveOccurred())

			err = subject.SaveSetting(ctx, logger, second)
			Expect(err).NotTo(HaveOccurred())

			found, err := subject.FindSetting(ctx, logger, repos.FindSettingQuery{
				Namespace: first.Namespace,
				Key:       first.Key,
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(found.Value).To(Equal(first.Value))
		})
	})
}
