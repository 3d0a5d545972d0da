package cms_test

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"net/http"

	. "github.com/smzarrabimmp/cms"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/ghttp"
)

var _ = Describe("Client", func() {
	Describe("#Dial", func() {
		It("succeeds when TLS config is supplied", func() {
			server := ghttp.NewTLSServer()
			defer server.Close()

			client, err := Dial(server.Addr(), WithTLSConfig(server.HTTPTestServer.TLS))
			Expect(err).NotTo(HaveOccurred())

			Expect(client).NotTo(BeNil())
		})

		It("fails when the address is empty", func() {
			_, err := Dial("")

			Expect(err).To(MatchError("address cannot be empty"))
		})

		It("fails when no transport security is supplied", func() {
			server := ghttp.NewTLSServer()
			defer server.Close()

			_, err := Dial(server.Addr())

			Expect(err).To(MatchError("cms: no transport security set (use cms.WithTLSConfig() to set)"))
		})
	})

	Describe("#Close", func() {
		It("succeeds on the first call only", func() {
			server := ghttp.NewTLSServer()
			defer server.Close()

			client, err := Dial(server.Addr(), WithTLSConfig(server.HTTPTestServer.TLS))
			Expect(err).NotTo(HaveOccurred())

			err = client.Close()
			Expect(err).NotTo(HaveOccurred())

			err = client.Close()
			Expect(err).To(MatchError("cms: the client connection is already closing or closed"))
		})
	})

	Describe("talking to a server", func() {
		var (
			server  *ghttp.Server
			subject *Client

			ctx context.Context
		)

		BeforeEach(func() {
			server = ghttp.NewTLSServer()

			pool := x509.NewCertPool()
			pool.AddCert(server.HTTPTestServer.Certificate())

			var err error
			subject, err = Dial(server.Addr(), WithTLSConfig(&tls.Config{RootCAs: pool}))
			Expect(err).NotTo(HaveOccurred())

			ctx = context.Background()
		})

		AfterEach(func() {
			server.Close()
		})

		Describe("#CreateGroup", func() {
			It("sends the group and returns the created group", func() {
				server.AppendHandlers(ghttp.CombineHandlers(
					ghttp.VerifyRequest("POST", "/v1/groups"),
					ghttp.VerifyJSON(`{"group": {"name": "Editors", "handle": "editors"}}`),
					ghttp.RespondWith(http.StatusCreated, `{"group": {"id": 1, "name": "Editors", "handle": "editors"}}`),
				))

				group, err := subject.CreateGroup(ctx, "Editors", "editors")
				Expect(err).NotTo(HaveOccurred())
				Expect(group).To(Equal(Group{ID: 1, Name: "Editors", Handle: "editors"}))
			})

			It("returns the field errors of a rejected save", func() {
				server.AppendHandlers(ghttp.CombineHandlers(
					ghttp.VerifyRequest("POST", "/v1/groups"),
					ghttp.RespondWith(http.StatusUnprocessableEntity, `{"errors": [{"field": "handle", "message": "handle cannot be blank"}]}`),
				))

				_, err := subject.CreateGroup(ctx, "Editors", "")
				Expect(err).To(HaveOccurred())

				validationErr, ok := err.(ValidationError)
				Expect(ok).To(BeTrue())
				Expect(validationErr.Errors).To(Equal([]FieldError{
					{Field: "handle", Message: "handle cannot be blank"},
				}))
			})
		})

		Describe("#UpdateGroup", func() {
			It("sends the group to its own route", func() {
				server.AppendHandlers(ghttp.CombineHandlers(
					ghttp.VerifyRequest("PUT", "/v1/groups/1"),
					ghttp.VerifyJSON(`{"group": {"id": 1, "name": "Writers", "handle": "writers"}}`),
					ghttp.RespondWith(http.StatusOK, `{"group": {"id": 1, "name": "Writers", "handle": "writers"}}`),
				))

				group, err := subject.UpdateGroup(ctx, Group{ID: 1, Name: "Writers", Handle: "writers"})
				Expect(err).NotTo(HaveOccurred())
				Expect(group.Handle).To(Equal("writers"))
			})

			It("fails when the group does not exist", func() {
				server.AppendHandlers(ghttp.RespondWith(http.StatusNotFound, `{"error": "group-not-found"}`))

				_, err := subject.UpdateGroup(ctx, Group{ID: 1000000, Name: "Writers", Handle: "writers"})
				Expect(err).To(MatchError(ErrGroupNotFound))
			})
		})

		Describe("#GroupByID", func() {
			It("returns the group", func() {
				server.AppendHandlers(ghttp.CombineHandlers(
					ghttp.VerifyRequest("GET", "/v1/groups/1"),
					ghttp.RespondWith(http.StatusOK, `{"group": {"id": 1, "name": "Editors", "handle": "editors"}}`),
				))

				group, err := subject.GroupByID(ctx, 1)
				Expect(err).NotTo(HaveOccurred())
				Expect(group).To(Equal(Group{ID: 1, Name: "Editors", Handle: "editors"}))
			})

			It("fails when the group does not exist", func() {
				server.AppendHandlers(ghttp.RespondWith(http.StatusNotFound, `{"error": "group-not-found"}`))

				_, err := subject.GroupByID(ctx, 1000000)
				Expect(err).To(MatchError(ErrGroupNotFound))
			})
		})

		Describe("#GroupByHandle", func() {
			It("returns the group", func() {
				server.AppendHandlers(ghttp.CombineHandlers(
					ghttp.VerifyRequest("GET", "/v1/groups/handle/editors"),
					ghttp.RespondWith(http.StatusOK, `{"group": {"id": 1, "name": "Editors", "handle": "editors"}}`),
				))

				group, err := subject.GroupByHandle(ctx, "editors")
				Expect(err).NotTo(HaveOccurred())
				Expect(group.ID).To(Equal(int64(1)))
			})
		})

		Describe("#ListGroups", func() {
			It("returns all groups", func() {
				server.AppendHandlers(ghttp.CombineHandlers(
					ghttp.VerifyRequest("GET", "/v1/groups"),
					ghttp.RespondWith(http.StatusOK, `{"groups": [{"id": 1, "name": "Editors", "handle": "editors"}, {"id": 2, "name": "Writers", "handle": "writers"}]}`),
				))

				groups, err := subject.ListGroups(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(groups).To(Equal([]Group{
					{ID: 1, Name: "Editors", Handle: "editors"},
					{ID: 2, Name: "Writers", Handle: "writers"},
				}))
			})

			It("maps unexpected failures to ErrUnknown", func() {
				server.AppendHandlers(ghttp.RespondWith(http.StatusInternalServerError, `{"error": "internal-error"}`))

				_, err := subject.ListGroups(ctx)
				Expect(err).To(MatchError("cms: unknown error"))
			})
		})

		Describe("#DeleteGroup", func() {
			It("succeeds", func() {
				server.AppendHandlers(ghttp.CombineHandlers(
					ghttp.VerifyRequest("DELETE", "/v1/groups/1"),
					ghttp.RespondWith(http.StatusNoContent, nil),
				))

				Expect(subject.DeleteGroup(ctx, 1)).To(Succeed())
			})
		})

		Describe("#GroupsForUser", func() {
			It("returns the user's groups", func() {
				server.AppendHandlers(ghttp.CombineHandlers(
					ghttp.VerifyRequest("GET", "/v1/users/7/groups"),
					ghttp.RespondWith(http.StatusOK, `{"groups": [{"id": 1, "name": "Editors", "handle": "editors"}]}`),
				))

				groups, err := subject.GroupsForUser(ctx, 7)
				Expect(err).NotTo(HaveOccurred())
				Expect(groups).To(HaveLen(1))
			})
		})

		Describe("#AssignUserToGroups", func() {
			It("sends the full group set", func() {
				server.AppendHandlers(ghttp.CombineHandlers(
					ghttp.VerifyRequest("PUT", "/v1/users/7/groups"),
					ghttp.VerifyJSON(`{"groupIds": [1, 2]}`),
					ghttp.RespondWith(http.StatusNoContent, nil),
				))

				Expect(subject.AssignUserToGroups(ctx, 7, []int64{1, 2})).To(Succeed())
			})

			It("fails when a group does not exist", func() {
				server.AppendHandlers(ghttp.RespondWith(http.StatusUnprocessableEntity, `{"error": "group-not-found"}`))

				err := subject.AssignUserToGroups(ctx, 7, []int64{1000000})
				Expect(err).To(MatchError(ErrGroupNotFound))
			})

			It("fails when the assignment is rejected", func() {
				server.AppendHandlers(ghttp.RespondWith(http.StatusForbidden, `{"error": "assignment-rejected"}`))

				err := subject.AssignUserToGroups(ctx, 7, []int64{1})
				Expect(err).To(MatchError("cms: the group assignment was rejected"))
			})
		})

		Describe("#AssignUserToDefaultGroup", func() {
			It("sends the user", func() {
				server.AppendHandlers(ghttp.CombineHandlers(
					ghttp.VerifyRequest("POST", "/v1/users/7/groups/default"),
					ghttp.VerifyJSON(`{"user": {"id": 7, "username": "sam"}}`),
					ghttp.RespondWith(http.StatusNoContent, nil),
				))

				Expect(subject.AssignUserToDefaultGroup(ctx, User{ID: 7, Username: "sam"})).To(Succeed())
			})

			It("fails when no default group is configured", func() {
				server.AppendHandlers(ghttp.RespondWith(http.StatusConflict, `{"error": "no-default-user-group"}`))

				err := subject.AssignUserToDefaultGroup(ctx, User{ID: 7})
				Expect(err).To(MatchError("cms: no default user group is configured"))
			})
		})

		Describe("#Setting", func() {
			It("returns the setting", func() {
				server.AppendHandlers(ghttp.CombineHandlers(
					ghttp.VerifyRequest("GET", "/v1/settings/users/defaultGroupId"),
					ghttp.RespondWith(http.StatusOK, `{"setting": {"namespace": "users", "key": "defaultGroupId", "value": "1"}}`),
				))

				setting, err := subject.Setting(ctx, "users", "defaultGroupId")
				Expect(err).NotTo(HaveOccurred())
				Expect(setting).To(Equal(Setting{Namespace: "users", Key: "defaultGroupId", Value: "1"}))
			})

			It("fails when the setting does not exist", func() {
				server.AppendHandlers(ghttp.RespondWith(http.StatusNotFound, `{"error": "setting-not-found"}`))

				_, err := subject.Setting(ctx, "users", "defaultGroupId")
				Expect(err).To(MatchError(ErrSettingNotFound))
			})
		})

		Describe("#SaveSetting", func() {
			It("sends the value", func() {
				server.AppendHandlers(ghttp.CombineHandlers(
					ghttp.VerifyRequest("PUT", "/v1/settings/users/defaultGroupId"),
					ghttp.VerifyJSON(`{"value": "1"}`),
					ghttp.RespondWith(http.StatusNoContent, nil),
				))

				Expect(subject.SaveSetting(ctx, Setting{Namespace: "users", Key: "defaultGroupId", Value: "1"})).To(Succeed())
			})
		})
	})
})
