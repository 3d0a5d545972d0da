package api

import (
	"encoding/json"
	"net/http"

	"github.com/smzarrabimmp/cms"
)

// Error codes carried in the {"error": ...} envelope.
const (
	errCodeInvalidJSON        = "invalid-json"
	errCodeInvalidGroupID     = "invalid-group-id"
	errCodeInvalidUserID      = "invalid-user-id"
	errCodeGroupNotFound      = "group-not-found"
	errCodeSettingNotFound    = "setting-not-found"
	errCodeAssignmentRejected = "assignment-rejected"
	errCodeNoDefaultGroup     = "no-default-user-group"
	errCodeInternal           = "internal-error"
)

type groupRequest struct {
	Group cms.Group `json:"group"`
}

type groupResponse struct {
	Group cms.Group `json:"group"`
}

type groupsResponse struct {
	Groups []cms.Group `json:"groups"`
}

type assignRequest struct {
	GroupIDs []int64 `json:"groupIds"`
}

type defaultAssignRequest struct {
	User cms.User `json:"user"`
}

type settingRequest struct {
	Value string `json:"value"`
}

type settingResponse struct {
	Setting cms.Setting `json:"setting"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type validationResponse struct {
	Errors []cms.FieldError `json:"errors"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, errorResponse{Error: code})
}
