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

func BehavesLikeAGroupRepo(subjectCreator func() repos.GroupRepo) {
	var (
		subject repos.GroupRepo

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

	Describe("#CreateGroup", func() {
		It("saves the group and assigns it an id", func() {
			name := uuid.NewV4().String()
			handle := uuid.NewV4().String()

			group, err := subject.CreateGroup(ctx, logger, name, handle)

			Expect(err).NotTo(HaveOccurred())
			Expect(group.ID).NotTo(BeZero())
			Expect(group.Name).To(Equal(name))
			Expect(group.Handle).To(Equal(handle))
		})

		It("fails if a group with the handle already exists", func() {
			handle := uuid.NewV4().String()

			_, err := subject.CreateGroup(ctx, logger, uuid.NewV4().String(), handle)
			Expect(err).NotTo(HaveOccurred())

			_, err = subject.CreateGroup(ctx, logger, uuid.NewV4().String(), handle)
			Expect(err).To(Equal(cms.ErrGroupHandleTaken))
		})

		It("allows separate groups to share a name", func() {
			name := uuid.NewV4().String()

			_, err := subject.CreateGroup(ctx, logger, name, uuid.NewV4().String())
			Expect(err).NotTo(HaveOccurred())

			_, err = subject.CreateGroup(ctx, logger, name, uuid.NewV4().String())
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("#UpdateGroup", func() {
		It("updates the group's name and handle", func() {
			group, err := subject.CreateGroup(ctx, logger, uuid.NewV4().String(), uuid.NewV4().String())
			Expect(err).NotTo(HaveOccurred())

			group.Name = uuid.NewV4().String()
			group.Handle = uuid.NewV4().String()

			err = subject.UpdateGroup(ctx, logger, group)
			Expect(err).NotTo(HaveOccurred())

			found, err := subject.FindGroupByID(ctx, logger, group.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(Equal(group))
		})

		It("frees the previous handle", func() {
			oldHandle := uuid.NewV4().String()

			group, err := subject.CreateGroup(ctx, logger, uuid.NewV4().String(), oldHandle)
			Expect(err).NotTo(HaveOccurred())

			group.Handle = uuid.NewV4().String()
			err = subject.UpdateGroup(ctx, logger, group)
			Expect(err).NotTo(HaveOccurred())

			_, err = subject.CreateGroup(ctx, logger, uuid.NewV4().String(), oldHandle)
			Expect(err).NotTo(HaveOccurred())
		})

		It("keeps the group's own handle without conflict", func() {
			group, err := subject.CreateGroup(ctx, logger, uuid.NewV4().String(), uuid.NewV4().String())
			Expect(err).NotTo(HaveOccurred())

			group.Name = uuid.NewV4().String()

			err = subject.UpdateGroup(ctx, logger, group)
			Expect(err).NotTo(HaveOccurred())

			found, err := subject.FindGroupByID(ctx, logger, group.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found.Name).To(Equal(group.Name))
		})

		It("fails if the group does not exist", func() {
			group := cms.Group{
				ID:     int64(1000000),
				Name:   uuid.NewV4().String(),
				Handle: uuid.NewV4().String(),
			}

			err := subject.UpdateGroup(ctx, logger, group)
			Expect(err).To(Equal(cms.ErrGroupNotFound))
		})

		It("fails if the handle belongs to another group", func() {
			takenHandle := uuid.NewV4().String()

			_, err := subject.CreateGroup(ctx, logger, uuid.NewV4().String(), takenHandle)
			Expect(err).NotTo(HaveOccurred())

			group, err := subject.CreateGroup(ctx, logger, uuid.NewV4().String(), uuid.NewV4().String())
			Expect(err).NotTo(HaveOccurred())

			group.Handle = takenHandle
			err = subject.UpdateGroup(ctx, logger, group)
			Expect(err).To(Equal(cms.ErrGroupHandleTaken))
		})
	})

	Describe("#FindGroupByID", func() {
		It("finds the group", func() {
			group, err := subject.CreateGroup(ctx, logger, uuid.NewV4().String(), uuid.NewV4().String())
			Expect(err).NotTo(HaveOccurred())

			found, err := subject.FindGroupByID(ctx, logger, group.ID)

			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(Equal(group))
		})

		It("fails if the group does not exist", func() {
			_, err := subject.FindGroupByID(ctx, logger, int64(1000000))

			Expect(err).To(Equal(cms.ErrGroupNotFound))
		})
	})

	Describe("#FindGroupByHandle", func() {
		It("finds the group", func() {
			group, err := subject.CreateGroup(ctx, logger, uuid.NewV4().String(), uuid.NewV4().String())
			Expect(err).NotTo(HaveOccurred())

			found, err := subject.FindGroupByHandle(ctx, logger, group.Handle)

			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(Equal(group))
		})

		It("fails if the group does not exist", func() {
			_, err := subject.FindGroupByHandle(ctx, logger, uuid.NewV4().String())

			Expect(err).To(Equal(cms.ErrGroupNotFound))
		})
	})

	Describe("#ListGroups", func() {
		It("returns all groups ordered by name", func() {
			gamma, err := subject.CreateGroup(ctx, logger, "gamma-"+uuid.NewV4().String(), uuid.NewV4().String())
			Expect(err).NotTo(HaveOccurred())

			alpha, err := subject.CreateGroup(ctx, logger, "alpha-"+uuid.NewV4().String(), uuid.NewV4().String())
			Expect(err).NotTo(HaveOccurred())

			beta, err := subject.CreateGroup(ctx, logger, "beta-"+uuid.NewV4().String(), uuid.NewV4().String())
			Expect(err).NotTo(HaveOccurred())

			groups, err := subject.ListGroups(ctx, logger)

			Expect(err).NotTo(HaveOccurred())
			Expect(groups).To(Equal([]cms.Group{alpha, beta, gamma}))
		})

		It("returns no groups when none exist", func() {
			groups, err := subject.ListGroups(ctx, logger)

			Expect(err).NotTo(HaveOccurred())
			Expect(groups).To(BeEmpty())
		})
	})

	Describe("#DeleteGroupByID", func() {
		It("deletes the group if it exists", func() {
			group, err := subject.CreateGroup(ctx, logger, uuid.NewV4().String(), uuid.NewV4().String())
			Expect(err).NotTo(HaveOccurred())

			err = subject.DeleteGroupByID(ctx, logger, group.ID)
			Expect(err).NotTo(HaveOccurred())

			_, err = subject.FindGroupByID(ctx, logger, group.ID)
			Expect(err).To(Equal(cms.ErrGroupNotFound))
		})

		It("frees the group's handle", func() {
			handle := uuid.NewV4().String()

			group, err := subject.CreateGroup(ctx, logger, uuid.NewV4().String(), handle)
			Expect(err).NotTo(HaveOccurred())

			err = subject.DeleteGroupByID(ctx, logger, group.ID)
			Expect(err).NotTo(HaveOccurred())

			_, err = subject.CreateGroup(ctx, logger, uuid.NewV4().String(), handle)
			Expect(err).NotTo(HaveOccurred())
		})

		It("fails if the group does not exist", func() {
			err := subject.DeleteGroupByID(ctx, logger, int64(1000000))

			Expect(err).To(Equal(cms.ErrGroupNotFound))
		})
	})
}
