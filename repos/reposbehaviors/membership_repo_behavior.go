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

func BehavesLikeAMembershipRepo(
	subjectCreator func() repos.MembershipRepo,
	groupRepoCreator func() repos.GroupRepo,
) {
	var (
		subject   repos.MembershipRepo
		groupRepo repos.GroupRepo

		ctx    context.Context
		logger logx.Logger

		cancelFunc context.CancelFunc

		user cms.User
	)

	createGroup := func(name string) cms.Group {
		group, err := groupRepo.CreateGroup(ctx, logger, name, uuid.NewV4().String())
		Expect(err).NotTo(HaveOccurred())

		return group
	}

	BeforeEach(func() {
		subject = subjectCreator()
		groupRepo = groupRepoCreator()

		ctx, cancelFunc = context.WithTimeout(context.Background(), 1*time.Second)
		logger = lagerx.NewLogger(lagertest.NewTestLogger("cms-test"))

		user = cms.User{ID: 1, Username: "test-user"}
	})

	AfterEach(func() {
		cancelFunc()
	})

	Describe("#GroupsForUser", func() {
		It("returns no groups for an unknown user", func() {
			groups, err := subject.GroupsForUser(ctx, logger, repos.ListUserGroupsQuery{UserID: user.ID})

			Expect(err).NotTo(HaveOccurred())
			Expect(groups).To(BeEmpty())
		})

		It("returns the user's groups ordered by name", func() {
			gamma := createGroup("gamma-" + uuid.NewV4().String())
			alpha := createGroup("alpha-" + uuid.NewV4().String())
			beta := createGroup("beta-" + uuid.NewV4().String())

			err := subject.ReplaceUserGroups(ctx, logger, user, []int64{gamma.ID, alpha.ID, beta.ID})
			Expect(err).NotTo(HaveOccurred())

			groups, err := subject.GroupsForUser(ctx, logger, repos.ListUserGroupsQuery{UserID: user.ID})

			Expect(err).NotTo(HaveOccurred())
			Expect(groups).To(Equal([]cms.Group{alpha, beta, gamma}))
		})

		It("keeps users' memberships separate", func() {
			group := createGroup(uuid.NewV4().String())
			otherUser := cms.User{ID: 2, Username: "other-user"}

			err := subject.ReplaceUserGroups(ctx, logger, user, []int64{group.ID})
			Expect(err).NotTo(HaveOccurred())

			groups, err := subject.GroupsForUser(ctx, logger, repos.ListUserGroupsQuery{UserID: otherUser.ID})

			Expect(err).NotTo(HaveOccurred())
			Expect(groups).To(BeEmpty())
		})
	})

	Describe("#ReplaceUserGroups", func() {
		It("replaces the user's entire membership", func() {
			before := createGroup(uuid.NewV4().String())
			after := createGroup(uuid.NewV4().String())

			err := subject.ReplaceUserGroups(ctx, logger, user, []int64{before.ID})
			Expect(err).NotTo(HaveOccurred())

			err = subject.ReplaceUserGroups(ctx, logger, user, []int64{after.ID})
			Expect(err).NotTo(HaveOccurred())

			groups, err := subject.GroupsForUser(ctx, logger, repos.ListUserGroupsQuery{UserID: user.ID})

			Expect(err).NotTo(HaveOccurred())
			Expect(groups).To(Equal([]cms.Group{after}))
		})

		It("removes all groups when given none", func() {
			group := createGroup(uuid.NewV4().String())

			err := subject.ReplaceUserGroups(ctx, logger, user, []int64{group.ID})
			Expect(err).NotTo(HaveOccurred())

			err = subject.ReplaceUserGroups(ctx, logger, user, []int64{})
			Expect(err).NotTo(HaveOccurred())

			groups, err := subject.GroupsForUser(ctx, logger, repos.ListUserGroupsQuery{UserID: user.ID})

			Expect(err).NotTo(HaveOccurred())
			Expect(groups).To(BeEmpty())
		})

		It("fails if a group does not exist, leaving the membership unchanged", func() {
			group := createGroup(uuid.NewV4().String())

			err := subject.ReplaceUserGroups(ctx, logger, user, []int64{group.ID})
			Expect(err).NotTo(HaveOccurred())

			err = subject.ReplaceUserGroups(ctx, logger, user, []int64{group.ID, int64(1000000)})
			Expect(err).To(Equal(cms.ErrGroupNotFound))

			groups, err := subject.GroupsForUser(ctx, logger, repos.ListUserGroupsQuery{UserID: user.ID})

			Expect(err).NotTo(HaveOccurred())
			Expect(groups).To(Equal([]cms.Group{group}))
		})

		It("removes the membership when the group is deleted", func() {
			kept := createGroup("alpha-" + uuid.NewV4().String())
			deleted := createGroup("beta-" + uuid.NewV4().String())

			err := subject.ReplaceUserGroups(ctx, logger, user, []int64{kept.ID, deleted.ID})
			Expect(err).NotTo(HaveOccurred())

			err = groupRepo.DeleteGroupByID(ctx, logger, deleted.ID)
			Expect(err).NotTo(HaveOccurred())

			groups, err := subject.GroupsForUser(ctx, logger, repos.ListUserGroupsQuery{UserID: user.ID})

			Expect(err).NotTo(HaveOccurred())
			Expect(groups).To(Equal([]cms.Group{kept}))
		})
	})
}
