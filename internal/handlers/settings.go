package handlers

import (
	"context"
	"net/http"

	"jamjournal/internal/services"
	"jamjournal/internal/utils/helpers"

	"github.com/gorilla/mux"
)

type SettingsStore interface {
	GetSetting(ctx context.Context, key string) (string, bool, error)
	SetSetting(ctx context.Context, key, value string) error
}

// через API правятся только известные ключи
var editableSettings = map[string]bool{
	services.SettingSiteURL:           true,
	services.SettingSubmitRedirectURL: true,
}

type SettingsHandler struct{ store SettingsStore }

func NewSettingsHandler(store SettingsStore) *SettingsHandler { return &SettingsHandler{store: store} }

type settingBody struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	if !editableSettings[key] {
		helpers.Error(w, http.StatusNotFound, "not found")
		return
	}
	v, _, err := h.store.GetSetting(r.Context(), key)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, settingBody{Key: key, Value: v})
}

func (h *SettingsHandler) Put(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	if !editableSettings[key] {
		helpers.Error(w, http.StatusNotFound, "not found")
		return
	}
	var body settingBody
	if err := helpers.DecodeJSON(r, &body); err != nil {
		helpers.Error(w, http.StatusBadRequest, "bad json")
		return
	}
	if err := h.store.SetSetting(r.Context(), key, body.Value); err != nil {
		writeServiceError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, settingBody{Key: key, Value: body.Value})
}
