package utils

import (
	"Keyo/internal/config"
	"Keyo/internal/logging"
	"errors"
	"fmt"
	"net/http"
)

var ErrResourceNotFound = errors.New("not found")
var ErrNotificationNotFound = fmt.Errorf("notification: %w", ErrResourceNotFound)
var ErrDeviceNotFound = fmt.Errorf("device: %w", ErrResourceNotFound)

var ErrHttpBadRequest = errors.New("bad request")
var ErrHttpUnauthorized = errors.New("unauthorized")
var ErrHttpForbidden = errors.New("forbidden")
var ErrHttpConflict = errors.New("conflict")

var ErrInvalidNotificationType = fmt.Errorf("invalid notification type: %w", ErrHttpBadRequest)
var ErrInvalidPriority = fmt.Errorf("invalid priority: %w", ErrHttpBadRequest)

func HandleHttpError(w http.ResponseWriter, err error) {
	var status int
	var msg string

	switch {
	case errors.Is(err, ErrHttpBadRequest):
		status = http.StatusBadRequest
		msg = err.Error()

	case errors.Is(err, ErrHttpUnauthorized):
		status = http.StatusUnauthorized
		msg = "unauthorized"

	case errors.Is(err, ErrHttpForbidden):
		status = http.StatusForbidden
		msg = "forbidden"

	case errors.Is(err, ErrResourceNotFound):
		status = http.StatusNotFound
		msg = err.Error()

	case errors.Is(err, ErrHttpConflict):
		status = http.StatusConflict
		msg = err.Error()

	default:
		status = http.StatusInternalServerError
		logging.Logger.Errorf("internal server error: %v", err)
		if config.IsProduction() {
			msg = "internal server error"
		} else {
			msg = err.Error()
		}
	}

	http.Error(w, msg, status)
}

func PanicOnError(f func() error, msg string) {
	err := f()
	if err != nil {
		logging.Logger.Fatalf("%s: %v", msg, err)
	}
}
