package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/smzarrabimmp/cms"
	"github.com/smzarrabimmp/cms/groups"
	"github.com/smzarrabimmp/cms/logx"
)

type assignmentHandler struct {
	logger         logx.Logger
	securityLogger logx.SecurityLogger
	directory      *groups.Directory
}

func (h *assignmentHandler) listUserGroups(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, errCodeInvalidUserID)
		return
	}

	listed, err := h.directory.GroupsForUser(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, errCodeInternal)
		return
	}

	writeJSON(w, http.StatusOK, groupsResponse{Groups: listed})
}

func (h *assignmentHandler) assignUserToGroups(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, errCodeInvalidUserID)
		return
	}

	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error(failedToDecodeRequest, err)
		writeError(w, http.StatusBadRequest, errCodeInvalidJSON)
		return
	}

	extensions := []logx.SecurityData{
		{Key: "userID", Value: strconv.FormatInt(userID, 10)},
		{Key: "groupIDs", Value: fmt.Sprintf("%v", req.GroupIDs)},
	}
	h.securityLogger.Log(ctx, "AssignUserToGroups", "Group assignment", extensions...)

	assigned, err := h.directory.AssignUserToGroups(ctx, userID, req.GroupIDs)
	switch err {
	case nil:
	case cms.ErrGroupNotFound:
		writeError(w, http.StatusUnprocessableEntity, errCodeGroupNotFound)
		return
	default:
		writeError(w, http.StatusInternalServerError, errCodeInternal)
		return
	}
	if !assigned {
		writeError(w, http.StatusForbidden, errCodeAssignmentRejected)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *assignmentHandler) assignUserToDefaultGroup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, errCodeInvalidUserID)
		return
	}

	// The body is optional; it can carry the username for the audit trail.
	var req defaultAssignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		h.logger.Error(failedToDecodeRequest, err)
		writeError(w, http.StatusBadRequest, errCodeInvalidJSON)
		return
	}

	user := req.User
	user.ID = userID

	extensions := []logx.SecurityData{
		{Key: "userID", Value: strconv.FormatInt(user.ID, 10)},
		{Key: "username", Value: user.Username},
	}
	h.securityLogger.Log(ctx, "AssignUserToDefaultGroup", "Default group assignment", extensions...)

	assigned, err := h.directory.AssignUserToDefaultGroup(ctx, user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, errCodeInternal)
		return
	}
	if !assigned {
		writeError(w, http.StatusConflict, errCodeNoDefaultGroup)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
