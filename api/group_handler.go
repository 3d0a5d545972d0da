package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/smzarrabimmp/cms"
	"github.com/smzarrabimmp/cms/groups"
	"github.com/smzarrabimmp/cms/logx"
)

type groupHandler struct {
	logger         logx.Logger
	securityLogger logx.SecurityLogger
	directory      *groups.Directory
}

func (h *groupHandler) listGroups(w http.ResponseWriter, r *http.Request) {
	listed, err := h.directory.ListGroups(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, errCodeInternal)
		return
	}

	writeJSON(w, http.StatusOK, groupsResponse{Groups: listed})
}

func (h *groupHandler) createGroup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req groupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error(failedToDecodeRequest, err)
		writeError(w, http.StatusBadRequest, errCodeInvalidJSON)
		return
	}

	group := req.Group
	group.ID = 0

	extensions := []logx.SecurityData{
		{Key: "groupName", Value: group.Name},
		{Key: "groupHandle", Value: group.Handle},
	}
	h.securityLogger.Log(ctx, "SaveGroup", "Group save", extensions...)

	saved, err := h.directory.SaveGroup(ctx, &group)
	if err != nil {
		writeError(w, http.StatusInternalServerError, errCodeInternal)
		return
	}
	if !saved {
		writeJSON(w, http.StatusUnprocessableEntity, validationResponse{Errors: group.Errors})
		return
	}

	writeJSON(w, http.StatusCreated, groupResponse{Group: group})
}

func (h *groupHandler) getGroup(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "groupID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, errCodeInvalidGroupID)
		return
	}

	group, err := h.directory.GroupByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, errCodeInternal)
		return
	}
	if group == nil {
		writeError(w, http.StatusNotFound, errCodeGroupNotFound)
		return
	}

	writeJSON(w, http.StatusOK, groupResponse{Group: *group})
}

func (h *groupHandler) getGroupByHandle(w http.ResponseWriter, r *http.Request) {
	group, err := h.directory.GroupByHandle(r.Context(), chi.URLParam(r, "handle"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, errCodeInternal)
		return
	}
	if group == nil {
		writeError(w, http.StatusNotFound, errCodeGroupNotFound)
		return
	}

	writeJSON(w, http.StatusOK, groupResponse{Group: *group})
}

func (h *groupHandler) updateGroup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(chi.URLParam(r, "groupID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, errCodeInvalidGroupID)
		return
	}

	var req groupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error(failedToDecodeRequest, err)
		writeError(w, http.StatusBadRequest, errCodeInvalidJSON)
		return
	}

	group := req.Group
	group.ID = id

	extensions := []logx.SecurityData{
		{Key: "groupID", Value: strconv.FormatInt(id, 10)},
		{Key: "groupName", Value: group.Name},
		{Key: "groupHandle", Value: group.Handle},
	}
	h.securityLogger.Log(ctx, "SaveGroup", "Group save", extensions...)

	saved, err := h.directory.SaveGroup(ctx, &group)
	switch err {
	case nil:
	case cms.ErrGroupNotFound:
		writeError(w, http.StatusNotFound, errCodeGroupNotFound)
		return
	default:
		writeError(w, http.StatusInternalServerError, errCodeInternal)
		return
	}
	if !saved {
		writeJSON(w, http.StatusUnprocessableEntity, validationResponse{Errors: group.Errors})
		return
	}

	writeJSON(w, http.StatusOK, groupResponse{Group: group})
}

func (h *groupHandler) deleteGroup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(chi.URLParam(r, "groupID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, errCodeInvalidGroupID)
		return
	}

	extensions := []logx.SecurityData{
		{Key: "groupID", Value: strconv.FormatInt(id, 10)},
	}
	h.securityLogger.Log(ctx, "DeleteGroup", "Group deletion", extensions...)

	if _, err := h.directory.DeleteGroupByID(ctx, id); err != nil {
		writeError(w, http.StatusInternalServerError, errCodeInternal)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
