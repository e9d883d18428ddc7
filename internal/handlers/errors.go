package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"jamjournal/internal/repository"
	"jamjournal/internal/services"
	"jamjournal/internal/utils/helpers"

	"github.com/gorilla/mux"
)

// writeServiceError переводит ошибки сервисов в HTTP-коды.
// Детали ошибок хранилища клиенту не отдаются.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		helpers.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		helpers.Error(w, http.StatusNotFound, "not found")
	default:
		helpers.Error(w, http.StatusInternalServerError, repository.ErrStore.Error())
	}
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
