package handlers

import (
	"Keyo/internal/authentication"
	"Keyo/utils"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

func writeJson(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		utils.HandleHttpError(w, err)
	}
}

// decodeDto reads and validates a json request body.
func decodeDto[T any](r *http.Request) (T, error) {
	var dto T
	err := json.NewDecoder(r.Body).Decode(&dto)
	if err != nil {
		return dto, fmt.Errorf("decoding request body: %w", utils.ErrHttpBadRequest)
	}

	err = utils.ValidateDto(dto)
	if err != nil {
		return dto, err
	}

	return dto, nil
}

func pathUuid(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		return uuid.Nil, fmt.Errorf("parsing %s: %w", name, utils.ErrHttpBadRequest)
	}
	return id, nil
}

func currentProfileId(r *http.Request) uuid.UUID {
	return authentication.GetCurrentUser(r.Context()).ProfileId
}
