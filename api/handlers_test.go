package api_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smzarrabimmp/cms/api"
	"github.com/smzarrabimmp/cms/groups"
	"github.com/smzarrabimmp/cms/logx/logxfakes"
	"github.com/smzarrabimmp/cms/metrics/testmetrics"
	"github.com/smzarrabimmp/cms/repos/inmemory"
)

var _ = Describe("Handler", func() {
	var (
		store          *inmemory.Store
		securityLogger *logxfakes.FakeSecurityLogger
		statter        *testmetrics.Statter
		settings       groups.StaticSettings
		hooks          *groups.Hooks

		handler http.Handler
	)

	BeforeEach(func() {
		store = inmemory.NewStore()
		securityLogger = &logxfakes.FakeSecurityLogger{}
		statter = testmetrics.NewStatter()
		settings = groups.StaticSettings{}
		hooks = &groups.Hooks{}

		handler = api.NewServer(
			store,
			api.WithSecurityLogger(securityLogger),
			api.WithStatter(statter),
			api.WithSettings(settings),
			api.WithHooks(hooks),
		).Handler()
	})

	do := func(method, target, body string) *httptest.ResponseRecorder {
		var reader io.Reader
		if body != "" {
			reader = strings.NewReader(body)
		}

		request := httptest.NewRequest(method, target, reader)
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)

		return recorder
	}

	Describe("POST /v1/groups", func() {
		It("creates the group", func() {
			response := do("POST", "/v1/groups", `{"group":{"name":"Editors","handle":"editors"}}`)

			Expect(response.Code).To(Equal(http.StatusCreated))
			Expect(response.Body.String()).To(MatchJSON(`{"group":{"id":1,"name":"Editors","handle":"editors"}}`))
		})

		It("returns the field errors of an invalid group", func() {
			response := do("POST", "/v1/groups", `{"group":{"name":"","handle":""}}`)

			Expect(response.Code).To(Equal(http.StatusUnprocessableEntity))
			Expect(response.Body.String()).To(MatchJSON(`{
				"errors": [
					{"field": "name", "message": "name cannot be blank"},
					{"field": "handle", "message": "handle cannot be blank"}
				]
			}`))
		})

		It("returns a field error when the handle is taken", func() {
			do("POST", "/v1/groups", `{"group":{"name":"Editors","handle":"editors"}}`)

			response := do("POST", "/v1/groups", `{"group":{"name":"Other","handle":"editors"}}`)

			Expect(response.Code).To(Equal(http.StatusUnprocessableEntity))
			Expect(response.Body.String()).To(MatchJSON(`{
				"errors": [
					{"field": "handle", "message": "handle \"editors\" has already been taken"}
				]
			}`))
		})

		It("rejects a body that is not JSON", func() {
			response := do("POST", "/v1/groups", `{nope`)

			Expect(response.Code).To(Equal(http.StatusBadRequest))
			Expect(response.Body.String()).To(MatchJSON(`{"error":"invalid-json"}`))
		})

		It("logs a security event", func() {
			do("POST", "/v1/groups", `{"group":{"name":"Editors","handle":"editors"}}`)

			Expect(securityLogger.LogCallCount()).To(Equal(1))
			_, signature, name, _ := securityLogger.LogArgsForCall(0)
			Expect(signature).To(Equal("SaveGroup"))
			Expect(name).To(Equal("Group save"))
		})
	})

	Describe("GET /v1/groups", func() {
		It("lists the groups ordered by name", func() {
			do("POST", "/v1/groups", `{"group":{"name":"beta","handle":"beta"}}`)
			do("POST", "/v1/groups", `{"group":{"name":"alpha","handle":"alpha"}}`)

			response := do("GET", "/v1/groups", "")

			Expect(response.Code).To(Equal(http.StatusOK))
			Expect(response.Body.String()).To(MatchJSON(`{
				"groups": [
					{"id": 2, "name": "alpha", "handle": "alpha"},
					{"id": 1, "name": "beta", "handle": "beta"}
				]
			}`))
		})

		It("records request metrics", func() {
			do("GET", "/v1/groups", "")

			Expect(statter.IncCalls()).To(ContainElement(testmetrics.IncCall{
				Metric: "cms.usergroups.count.list-groups",
				Value:  1,
			}))
			Expect(statter.GaugeCalls()).To(ContainElement(testmetrics.GaugeCall{
				Metric: "cms.usergroups.success.list-groups",
				Value:  1,
			}))
		})
	})

	Describe("GET /v1/groups/{groupID}", func() {
		It("returns the group", func() {
			do("POST", "/v1/groups", `{"group":{"name":"Editors","handle":"editors"}}`)

			response := do("GET", "/v1/groups/1", "")

			Expect(response.Code).To(Equal(http.StatusOK))
			Expect(response.Body.String()).To(MatchJSON(`{"group":{"id":1,"name":"Editors","handle":"editors"}}`))
		})

		It("404s for an unknown group", func() {
			response := do("GET", "/v1/groups/100", "")

			Expect(response.Code).To(Equal(http.StatusNotFound))
			Expect(response.Body.String()).To(MatchJSON(`{"error":"group-not-found"}`))
		})

		It("rejects an id that is not a number", func() {
			response := do("GET", "/v1/groups/nope", "")

			Expect(response.Code).To(Equal(http.StatusBadRequest))
			Expect(response.Body.String()).To(MatchJSON(`{"error":"invalid-group-id"}`))
		})
	})

	Describe("GET /v1/groups/handle/{handle}", func() {
		It("returns the group", func() {
			do("POST", "/v1/groups", `{"group":{"name":"Editors","handle":"editors"}}`)

			response := do("GET", "/v1/groups/handle/editors", "")

			Expect(response.Code).To(Equal(http.StatusOK))
			Expect(response.Body.String()).To(MatchJSON(`{"group":{"id":1,"name":"Editors","handle":"editors"}}`))
		})

		It("404s for an unknown handle", func() {
			response := do("GET", "/v1/groups/handle/missing", "")

			Expect(response.Code).To(Equal(http.StatusNotFound))
			Expect(response.Body.String()).To(MatchJSON(`{"error":"group-not-found"}`))
		})
	})

	Describe("PUT /v1/groups/{groupID}", func() {
		It("updates the group", func() {
			do("POST", "/v1/groups", `{"group":{"name":"Editors","handle":"editors"}}`)

			response := do("PUT", "/v1/groups/1", `{"group":{"name":"Writers","handle":"writers"}}`)

			Expect(response.Code).To(Equal(http.StatusOK))
			Expect(response.Body.String()).To(MatchJSON(`{"group":{"id":1,"name":"Writers","handle":"writers"}}`))
		})

		It("404s for a group that does not exist", func() {
			response := do("PUT", "/v1/groups/100", `{"group":{"name":"Writers","handle":"writers"}}`)

			Expect(response.Code).To(Equal(http.StatusNotFound))
			Expect(response.Body.String()).To(MatchJSON(`{"error":"group-not-found"}`))
		})

		It("returns the field errors of an invalid update", func() {
			do("POST", "/v1/groups", `{"group":{"name":"Editors","handle":"editors"}}`)

			response := do("PUT", "/v1/groups/1", `{"group":{"name":"","handle":"editors"}}`)

			Expect(response.Code).To(Equal(http.StatusUnprocessableEntity))
			Expect(response.Body.String()).To(MatchJSON(`{
				"errors": [{"field": "name", "message": "name cannot be blank"}]
			}`))
		})
	})

	Describe("DELETE /v1/groups/{groupID}", func() {
		It("deletes the group", func() {
			do("POST", "/v1/groups", `{"group":{"name":"Editors","handle":"editors"}}`)

			response := do("DELETE", "/v1/groups/1", "")
			Expect(response.Code).To(Equal(http.StatusNoContent))

			response = do("GET", "/v1/groups/1", "")
			Expect(response.Code).To(Equal(http.StatusNotFound))
		})

		It("succeeds for a group that does not exist", func() {
			response := do("DELETE", "/v1/groups/100", "")

			Expect(response.Code).To(Equal(http.StatusNoContent))
		})
	})

	Describe("PUT /v1/users/{userID}/groups", func() {
		It("replaces the user's membership", func() {
			do("POST", "/v1/groups", `{"group":{"name":"Editors","handle":"editors"}}`)
			do("POST", "/v1/groups", `{"group":{"name":"Writers","handle":"writers"}}`)

			response := do("PUT", "/v1/users/7/groups", `{"groupIds":[1,2]}`)
			Expect(response.Code).To(Equal(http.StatusNoContent))

			response = do("GET", "/v1/users/7/groups", "")
			Expect(response.Code).To(Equal(http.StatusOK))
			Expect(response.Body.String()).To(MatchJSON(`{
				"groups": [
					{"id": 1, "name": "Editors", "handle": "editors"},
					{"id": 2, "name": "Writers", "handle": "writers"}
				]
			}`))
		})

		It("422s when a group does not exist", func() {
			response := do("PUT", "/v1/users/7/groups", `{"groupIds":[100]}`)

			Expect(response.Code).To(Equal(http.StatusUnprocessableEntity))
			Expect(response.Body.String()).To(MatchJSON(`{"error":"group-not-found"}`))
		})

		It("403s when a hook rejects the assignment", func() {
			do("POST", "/v1/groups", `{"group":{"name":"Editors","handle":"editors"}}`)

			hooks.OnBeforeAssign(func(context.Context, groups.AssignEvent) bool {
				return false
			})

			response := do("PUT", "/v1/users/7/groups", `{"groupIds":[1]}`)

			Expect(response.Code).To(Equal(http.StatusForbidden))
			Expect(response.Body.String()).To(MatchJSON(`{"error":"assignment-rejected"}`))
		})
	})

	Describe("POST /v1/users/{userID}/groups/default", func() {
		It("assigns the user to the configured default group", func() {
			do("POST", "/v1/groups", `{"group":{"name":"Members","handle":"members"}}`)
			settings[groups.SettingsNamespaceUsers+"/"+groups.SettingDefaultGroupID] = "1"

			response := do("POST", "/v1/users/7/groups/default", `{"user":{"username":"new-user"}}`)
			Expect(response.Code).To(Equal(http.StatusNoContent))

			response = do("GET", "/v1/users/7/groups", "")
			Expect(response.Body.String()).To(MatchJSON(`{
				"groups": [{"id": 1, "name": "Members", "handle": "members"}]
			}`))
		})

		It("works without a request body", func() {
			do("POST", "/v1/groups", `{"group":{"name":"Members","handle":"members"}}`)
			settings[groups.SettingsNamespaceUsers+"/"+groups.SettingDefaultGroupID] = "1"

			response := do("POST", "/v1/users/7/groups/default", "")

			Expect(response.Code).To(Equal(http.StatusNoContent))
		})

		It("409s when no default group is configured", func() {
			response := do("POST", "/v1/users/7/groups/default", "")

			Expect(response.Code).To(Equal(http.StatusConflict))
			Expect(response.Body.String()).To(MatchJSON(`{"error":"no-default-user-group"}`))
		})
	})

	Describe("settings routes", func() {
		It("saves and returns a setting", func() {
			response := do("PUT", "/v1/settings/users/defaultGroupId", `{"value":"4"}`)
			Expect(response.Code).To(Equal(http.StatusNoContent))

			response = do("GET", "/v1/settings/users/defaultGroupId", "")
			Expect(response.Code).To(Equal(http.StatusOK))
			Expect(response.Body.String()).To(MatchJSON(`{
				"setting": {"namespace": "users", "key": "defaultGroupId", "value": "4"}
			}`))
		})

		It("404s for a setting that does not exist", func() {
			response := do("GET", "/v1/settings/users/missing", "")

			Expect(response.Code).To(Equal(http.StatusNotFound))
			Expect(response.Body.String()).To(MatchJSON(`{"error":"setting-not-found"}`))
		})
	})

	Describe("panic recovery", func() {
		It("responds with a 500 when a handler panics", func() {
			do("POST", "/v1/groups", `{"group":{"name":"Editors","handle":"editors"}}`)

			hooks.OnBeforeAssign(func(context.Context, groups.AssignEvent) bool {
				panic("hook exploded")
			})

			response := do("PUT", "/v1/users/7/groups", `{"groupIds":[1]}`)

			Expect(response.Code).To(Equal(http.StatusInternalServerError))
			Expect(response.Body.String()).To(MatchJSON(`{"error":"internal-error"}`))
		})
	})
})
