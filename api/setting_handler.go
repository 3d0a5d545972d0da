package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/smzarrabimmp/cms"
	"github.com/smzarrabimmp/cms/logx"
	"github.com/smzarrabimmp/cms/repos"
)

type settingHandler struct {
	logger         logx.Logger
	securityLogger logx.SecurityLogger
	settingRepo    repos.SettingRepo
}

func (h *settingHandler) findSetting(w http.ResponseWriter, r *http.Request) {
	setting, err := h.settingRepo.FindSetting(r.Context(), h.logger, repos.FindSettingQuery{
		Namespace: chi.URLParam(r, "namespace"),
		Key:       chi.URLParam(r, "key"),
	})
	switch err {
	case nil:
	case cms.ErrSettingNotFound:
		writeError(w, http.StatusNotFound, errCodeSettingNotFound)
		return
	default:
		writeError(w, http.StatusInternalServerError, errCodeInternal)
		return
	}

	writeJSON(w, http.StatusOK, settingResponse{Setting: setting})
}

func (h *settingHandler) saveSetting(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req settingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error(failedToDecodeRequest, err)
		writeError(w, http.StatusBadRequest, errCodeInvalidJSON)
		return
	}

	setting := cms.Setting{
		Namespace: chi.URLParam(r, "namespace"),
		Key:       chi.URLParam(r, "key"),
		Value:     req.Value,
	}

	extensions := []logx.SecurityData{
		{Key: "settingNamespace", Value: setting.Namespace},
		{Key: "settingKey", Value: setting.Key},
	}
	h.securityLogger.Log(ctx, "SaveSetting", "Setting save", extensions...)

	if err := h.settingRepo.SaveSetting(ctx, h.logger, setting); err != nil {
		writeError(w, http.StatusInternalServerError, errCodeInternal)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
