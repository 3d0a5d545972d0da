package groups_test

import (
	"context"
	"strconv"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smzarrabimmp/cms"
	"github.com/smzarrabimmp/cms/groups"
	"github.com/smzarrabimmp/cms/repos/inmemory"
)

var _ = Describe("Directory", func() {
	var (
		subject *groups.Directory

		store    *inmemory.Store
		settings groups.StaticSettings

		ctx        context.Context
		cancelFunc context.CancelFunc
	)

	BeforeEach(func() {
		store = inmemory.NewStore()
		settings = groups.StaticSettings{}
		subject = groups.NewDirectory(store, store, groups.WithSettings(settings))

		ctx, cancelFunc = context.WithTimeout(context.Background(), 1*time.Second)
	})

	AfterEach(func() {
		cancelFunc()
	})

	createGroup := func(name, handle string) cms.Group {
		group := cms.Group{Name: name, Handle: handle}

		saved, err := subject.SaveGroup(ctx, &group)
		Expect(err).NotTo(HaveOccurred())
		Expect(saved).To(BeTrue())

		return group
	}

	configureDefaultGroup := func(id int64) {
		settings[groups.SettingsNamespaceUsers+"/"+groups.SettingDefaultGroupID] = strconv.FormatInt(id, 10)
	}

	Describe("#SaveGroup", func() {
		It("creates the group and writes the new id back", func() {
			group := cms.Group{Name: "Editors", Handle: "editors"}

			saved, err := subject.SaveGroup(ctx, &group)

			Expect(err).NotTo(HaveOccurred())
			Expect(saved).To(BeTrue())
			Expect(group.ID).NotTo(BeZero())

			found, err := subject.GroupByID(ctx, group.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(*found).To(Equal(group))
		})

		It("accumulates a field error for every invalid field", func() {
			group := cms.Group{}

			saved, err := subject.SaveGroup(ctx, &group)

			Expect(err).NotTo(HaveOccurred())
			Expect(saved).To(BeFalse())
			Expect(group.Errors).To(HaveLen(2))
			Expect(group.Errors[0].Field).To(Equal("name"))
			Expect(group.Errors[1].Field).To(Equal("handle"))
		})

		It("rejects a name of only whitespace", func() {
			group := cms.Group{Name: "   ", Handle: "editors"}

			saved, err := subject.SaveGroup(ctx, &group)

			Expect(err).NotTo(HaveOccurred())
			Expect(saved).To(BeFalse())
			Expect(group.Errors).To(HaveLen(1))
			Expect(group.Errors[0].Field).To(Equal("name"))
			Expect(group.Errors[0].Message).To(ContainSubstring("blank"))
		})

		It("rejects a name longer than 255 characters", func() {
			group := cms.Group{Name: strings.Repeat("a", 256), Handle: "editors"}

			saved, err := subject.SaveGroup(ctx, &group)

			Expect(err).NotTo(HaveOccurred())
			Expect(saved).To(BeFalse())
			Expect(group.Errors).To(HaveLen(1))
			Expect(group.Errors[0].Field).To(Equal("name"))
			Expect(group.Errors[0].Message).To(ContainSubstring("longer than 255"))
		})

		It("rejects a handle longer than 255 characters", func() {
			group := cms.Group{Name: "Editors", Handle: strings.Repeat("a", 256)}

			saved, err := subject.SaveGroup(ctx, &group)

			Expect(err).NotTo(HaveOccurred())
			Expect(saved).To(BeFalse())
			Expect(group.Errors).To(HaveLen(1))
			Expect(group.Errors[0].Field).To(Equal("handle"))
			Expect(group.Errors[0].Message).To(ContainSubstring("longer than 255"))
		})

		It("rejects a handle that does not look like an identifier", func() {
			for _, handle := range []string{"3ditors", "edit-ors", "edit ors", "_editors"} {
				group := cms.Group{Name: "Editors", Handle: handle}

				saved, err := subject.SaveGroup(ctx, &group)

				Expect(err).NotTo(HaveOccurred())
				Expect(saved).To(BeFalse())
				Expect(group.Errors).To(HaveLen(1))
				Expect(group.Errors[0].Field).To(Equal("handle"))
				Expect(group.Errors[0].Message).To(ContainSubstring("must start with a letter"))
			}
		})

		It("records a field error when the handle is taken", func() {
			createGroup("Editors", "editors")

			group := cms.Group{Name: "Other Editors", Handle: "editors"}
			saved, err := subject.SaveGroup(ctx, &group)

			Expect(err).NotTo(HaveOccurred())
			Expect(saved).To(BeFalse())
			Expect(group.ID).To(BeZero())
			Expect(group.Errors).To(HaveLen(1))
			Expect(group.Errors[0].Field).To(Equal("handle"))
			Expect(group.Errors[0].Message).To(ContainSubstring(`handle "editors" has already been taken`))
		})

		It("clears the previous attempt's errors on each save", func() {
			group := cms.Group{}

			saved, err := subject.SaveGroup(ctx, &group)
			Expect(err).NotTo(HaveOccurred())
			Expect(saved).To(BeFalse())
			Expect(group.HasErrors()).To(BeTrue())

			group.Name = "Editors"
			group.Handle = "editors"

			saved, err = subject.SaveGroup(ctx, &group)
			Expect(err).NotTo(HaveOccurred())
			Expect(saved).To(BeTrue())
			Expect(group.HasErrors()).To(BeFalse())
		})

		It("updates an existing group", func() {
			group := createGroup("Editors", "editors")

			group.Name = "Writers"
			group.Handle = "writers"

			saved, err := subject.SaveGroup(ctx, &group)
			Expect(err).NotTo(HaveOccurred())
			Expect(saved).To(BeTrue())

			found, err := subject.GroupByID(ctx, group.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found.Name).To(Equal("Writers"))
			Expect(found.Handle).To(Equal("writers"))
		})

		It("records a field error when an update takes another group's handle", func() {
			createGroup("Editors", "editors")
			group := createGroup("Writers", "writers")

			group.Handle = "editors"

			saved, err := subject.SaveGroup(ctx, &group)

			Expect(err).NotTo(HaveOccurred())
			Expect(saved).To(BeFalse())
			Expect(group.Errors).To(HaveLen(1))
			Expect(group.Errors[0].Field).To(Equal("handle"))
		})

		It("fails when updating a group that no longer exists", func() {
			group := createGroup("Editors", "editors")

			deleted, err := subject.DeleteGroupByID(ctx, group.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(deleted).To(BeTrue())

			saved, err := subject.SaveGroup(ctx, &group)

			Expect(saved).To(BeFalse())
			Expect(err).To(Equal(cms.ErrGroupNotFound))
		})
	})

	Describe("#ListGroups", func() {
		It("returns all groups ordered by name", func() {
			gamma := createGroup("gamma", "gamma")
			alpha := createGroup("alpha", "alpha")
			beta := createGroup("beta", "beta")

			listed, err := subject.ListGroups(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(listed).To(Equal([]cms.Group{alpha, beta, gamma}))
		})

		It("returns no groups when none exist", func() {
			listed, err := subject.ListGroups(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(listed).To(BeEmpty())
		})
	})

	Describe("#ListGroupsIndexedBy", func() {
		It("indexes the groups by handle", func() {
			editors := createGroup("Editors", "editors")
			writers := createGroup("Writers", "writers")

			indexed, err := subject.ListGroupsIndexedBy(ctx, cms.GroupIndexByHandle)

			Expect(err).NotTo(HaveOccurred())
			Expect(indexed).To(Equal(map[string]cms.Group{
				"editors": editors,
				"writers": writers,
			}))
		})

		It("indexes the groups by id", func() {
			editors := createGroup("Editors", "editors")

			indexed, err := subject.ListGroupsIndexedBy(ctx, cms.GroupIndexByID)

			Expect(err).NotTo(HaveOccurred())
			Expect(indexed).To(HaveKeyWithValue(strconv.FormatInt(editors.ID, 10), editors))
		})

		It("fails on an unknown index", func() {
			_, err := subject.ListGroupsIndexedBy(ctx, cms.GroupIndex("nope"))

			Expect(err).To(Equal(cms.ErrUnknownGroupIndex))
		})
	})

	Describe("#GroupByID", func() {
		It("returns nil without an error for an unknown id", func() {
			group, err := subject.GroupByID(ctx, 100)

			Expect(err).NotTo(HaveOccurred())
			Expect(group).To(BeNil())
		})
	})

	Describe("#GroupByHandle", func() {
		It("finds the group by its handle", func() {
			editors := createGroup("Editors", "editors")

			group, err := subject.GroupByHandle(ctx, "editors")

			Expect(err).NotTo(HaveOccurred())
			Expect(*group).To(Equal(editors))
		})

		It("returns nil without an error for an unknown handle", func() {
			group, err := subject.GroupByHandle(ctx, "missing")

			Expect(err).NotTo(HaveOccurred())
			Expect(group).To(BeNil())
		})
	})

	Describe("#GroupsForUser", func() {
		It("returns no groups for a user with no memberships", func() {
			listed, err := subject.GroupsForUser(ctx, 1)

			Expect(err).NotTo(HaveOccurred())
			Expect(listed).To(BeEmpty())
		})

		It("returns the user's groups ordered by name", func() {
			beta := createGroup("beta", "beta")
			alpha := createGroup("alpha", "alpha")

			assigned, err := subject.AssignUserToGroups(ctx, 1, []int64{beta.ID, alpha.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(assigned).To(BeTrue())

			listed, err := subject.GroupsForUser(ctx, 1)

			Expect(err).NotTo(HaveOccurred())
			Expect(listed).To(Equal([]cms.Group{alpha, beta}))
		})
	})

	Describe("#GroupsForUserIndexedBy", func() {
		It("indexes the user's groups by handle", func() {
			editors := createGroup("Editors", "editors")

			assigned, err := subject.AssignUserToGroups(ctx, 1, []int64{editors.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(assigned).To(BeTrue())

			indexed, err := subject.GroupsForUserIndexedBy(ctx, 1, cms.GroupIndexByHandle)

			Expect(err).NotTo(HaveOccurred())
			Expect(indexed).To(Equal(map[string]cms.Group{"editors": editors}))
		})
	})

	Describe("#AssignUserToGroups", func() {
		It("replaces the user's entire membership", func() {
			before := createGroup("Before", "before")
			after := createGroup("After", "after")

			assigned, err := subject.AssignUserToGroups(ctx, 1, []int64{before.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(assigned).To(BeTrue())

			assigned, err = subject.AssignUserToGroups(ctx, 1, []int64{after.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(assigned).To(BeTrue())

			listed, err := subject.GroupsForUser(ctx, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(listed).To(Equal([]cms.Group{after}))
		})

		It("removes every membership when given no groups", func() {
			editors := createGroup("Editors", "editors")

			assigned, err := subject.AssignUserToGroups(ctx, 1, []int64{editors.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(assigned).To(BeTrue())

			assigned, err = subject.AssignUserToGroups(ctx, 1, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(assigned).To(BeTrue())

			listed, err := subject.GroupsForUser(ctx, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(listed).To(BeEmpty())
		})

		It("collapses duplicate group ids", func() {
			editors := createGroup("Editors", "editors")

			var events []groups.AssignEvent
			subject.Hooks().OnBeforeAssign(func(_ context.Context, event groups.AssignEvent) bool {
				events = append(events, event)
				return true
			})

			assigned, err := subject.AssignUserToGroups(ctx, 1, []int64{editors.ID, editors.ID, editors.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(assigned).To(BeTrue())

			Expect(events).To(Equal([]groups.AssignEvent{
				{UserID: 1, GroupIDs: []int64{editors.ID}},
			}))

			listed, err := subject.GroupsForUser(ctx, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(listed).To(Equal([]cms.Group{editors}))
		})

		It("fails when a group does not exist, leaving the membership unchanged", func() {
			editors := createGroup("Editors", "editors")

			assigned, err := subject.AssignUserToGroups(ctx, 1, []int64{editors.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(assigned).To(BeTrue())

			assigned, err = subject.AssignUserToGroups(ctx, 1, []int64{editors.ID, 100})
			Expect(assigned).To(BeFalse())
			Expect(err).To(Equal(cms.ErrGroupNotFound))

			listed, err := subject.GroupsForUser(ctx, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(listed).To(Equal([]cms.Group{editors}))
		})

		It("does not change the membership when a hook vetoes the assignment", func() {
			editors := createGroup("Editors", "editors")

			subject.Hooks().OnBeforeAssign(func(context.Context, groups.AssignEvent) bool {
				return false
			})

			assigned, err := subject.AssignUserToGroups(ctx, 1, []int64{editors.ID})

			Expect(err).NotTo(HaveOccurred())
			Expect(assigned).To(BeFalse())

			listed, err := subject.GroupsForUser(ctx, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(listed).To(BeEmpty())
		})

		It("runs every before hook even after a veto", func() {
			editors := createGroup("Editors", "editors")

			var calls []string
			subject.Hooks().OnBeforeAssign(func(context.Context, groups.AssignEvent) bool {
				calls = append(calls, "first")
				return false
			})
			subject.Hooks().OnBeforeAssign(func(context.Context, groups.AssignEvent) bool {
				calls = append(calls, "second")
				return true
			})

			assigned, err := subject.AssignUserToGroups(ctx, 1, []int64{editors.ID})

			Expect(err).NotTo(HaveOccurred())
			Expect(assigned).To(BeFalse())
			Expect(calls).To(Equal([]string{"first", "second"}))
		})

		It("runs after hooks only when the assignment went through", func() {
			editors := createGroup("Editors", "editors")

			var events []groups.AssignEvent
			subject.Hooks().OnAfterAssign(func(_ context.Context, event groups.AssignEvent) {
				events = append(events, event)
			})

			assigned, err := subject.AssignUserToGroups(ctx, 1, []int64{editors.ID, 100})
			Expect(assigned).To(BeFalse())
			Expect(err).To(Equal(cms.ErrGroupNotFound))
			Expect(events).To(BeEmpty())

			assigned, err = subject.AssignUserToGroups(ctx, 1, []int64{editors.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(assigned).To(BeTrue())
			Expect(events).To(Equal([]groups.AssignEvent{
				{UserID: 1, GroupIDs: []int64{editors.ID}},
			}))
		})
	})

	Describe("#AssignUserToDefaultGroup", func() {
		user := cms.User{ID: 1, Username: "new-user"}

		It("does nothing when no default group is configured", func() {
			assigned, err := subject.AssignUserToDefaultGroup(ctx, user)

			Expect(err).NotTo(HaveOccurred())
			Expect(assigned).To(BeFalse())

			listed, err := subject.GroupsForUser(ctx, user.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(listed).To(BeEmpty())
		})

		It("assigns the user to the configured group", func() {
			members := createGroup("Members", "members")
			configureDefaultGroup(members.ID)

			assigned, err := subject.AssignUserToDefaultGroup(ctx, user)

			Expect(err).NotTo(HaveOccurred())
			Expect(assigned).To(BeTrue())

			listed, err := subject.GroupsForUser(ctx, user.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(listed).To(Equal([]cms.Group{members}))
		})

		It("fails when the configured value is not an id", func() {
			settings[groups.SettingsNamespaceUsers+"/"+groups.SettingDefaultGroupID] = "not-a-number"

			assigned, err := subject.AssignUserToDefaultGroup(ctx, user)

			Expect(assigned).To(BeFalse())
			Expect(err).To(HaveOccurred())
		})

		It("does nothing when the configured group no longer exists", func() {
			members := createGroup("Members", "members")
			configureDefaultGroup(members.ID)

			deleted, err := subject.DeleteGroupByID(ctx, members.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(deleted).To(BeTrue())

			assigned, err := subject.AssignUserToDefaultGroup(ctx, user)

			Expect(err).NotTo(HaveOccurred())
			Expect(assigned).To(BeFalse())

			listed, err := subject.GroupsForUser(ctx, user.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(listed).To(BeEmpty())
		})

		It("does not assign when a default hook vetoes it", func() {
			members := createGroup("Members", "members")
			configureDefaultGroup(members.ID)

			subject.Hooks().OnBeforeDefaultAssign(func(context.Context, groups.DefaultAssignEvent) bool {
				return false
			})

			assigned, err := subject.AssignUserToDefaultGroup(ctx, user)

			Expect(err).NotTo(HaveOccurred())
			Expect(assigned).To(BeFalse())

			listed, err := subject.GroupsForUser(ctx, user.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(listed).To(BeEmpty())
		})

		It("fires the assignment hooks as well", func() {
			members := createGroup("Members", "members")
			configureDefaultGroup(members.ID)

			var events []groups.AssignEvent
			subject.Hooks().OnBeforeAssign(func(_ context.Context, event groups.AssignEvent) bool {
				events = append(events, event)
				return true
			})

			assigned, err := subject.AssignUserToDefaultGroup(ctx, user)

			Expect(err).NotTo(HaveOccurred())
			Expect(assigned).To(BeTrue())
			Expect(events).To(Equal([]groups.AssignEvent{
				{UserID: user.ID, GroupIDs: []int64{members.ID}},
			}))
		})

		It("does not assign when an assignment hook vetoes it", func() {
			members := createGroup("Members", "members")
			configureDefaultGroup(members.ID)

			var afterCalls int
			subject.Hooks().OnBeforeAssign(func(context.Context, groups.AssignEvent) bool {
				return false
			})
			subject.Hooks().OnAfterDefaultAssign(func(context.Context, groups.DefaultAssignEvent) {
				afterCalls++
			})

			assigned, err := subject.AssignUserToDefaultGroup(ctx, user)

			Expect(err).NotTo(HaveOccurred())
			Expect(assigned).To(BeFalse())
			Expect(afterCalls).To(BeZero())
		})

		It("runs after hooks only when the assignment went through", func() {
			members := createGroup("Members", "members")
			configureDefaultGroup(members.ID)

			var events []groups.DefaultAssignEvent
			subject.Hooks().OnAfterDefaultAssign(func(_ context.Context, event groups.DefaultAssignEvent) {
				events = append(events, event)
			})

			assigned, err := subject.AssignUserToDefaultGroup(ctx, user)

			Expect(err).NotTo(HaveOccurred())
			Expect(assigned).To(BeTrue())
			Expect(events).To(Equal([]groups.DefaultAssignEvent{{User: user}}))
		})
	})

	Describe("#DeleteGroupByID", func() {
		It("deletes the group and its memberships", func() {
			kept := createGroup("Kept", "kept")
			doomed := createGroup("Doomed", "doomed")

			assigned, err := subject.AssignUserToGroups(ctx, 1, []int64{kept.ID, doomed.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(assigned).To(BeTrue())

			deleted, err := subject.DeleteGroupByID(ctx, doomed.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(deleted).To(BeTrue())

			group, err := subject.GroupByID(ctx, doomed.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(group).To(BeNil())

			listed, err := subject.GroupsForUser(ctx, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(listed).To(Equal([]cms.Group{kept}))
		})

		It("succeeds for an id that was never a group", func() {
			deleted, err := subject.DeleteGroupByID(ctx, 100)

			Expect(err).NotTo(HaveOccurred())
			Expect(deleted).To(BeTrue())
		})

		It("succeeds when deleting the same group twice", func() {
			group := createGroup("Editors", "editors")

			deleted, err := subject.DeleteGroupByID(ctx, group.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(deleted).To(BeTrue())

			deleted, err = subject.DeleteGroupByID(ctx, group.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(deleted).To(BeTrue())
		})
	})
})
