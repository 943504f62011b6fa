package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hglok/raidsync/internal/common/logger"
	"github.com/hglok/raidsync/internal/services/draft"
)

// errorResponse is the wire shape of every non-2xx reply. The lock holder
// fields are populated only for lock conflicts so clients can show who is
// in the way and for how long.
type errorResponse struct {
	Error      string     `json:"error"`
	LockedBy   string     `json:"lockedBy,omitempty"`
	LockedName string     `json:"lockedByName,omitempty"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
}

type badBodyError struct {
	cause error
}

func (e *badBodyError) Error() string {
	return fmt.Sprintf("invalid request body: %v", e.cause)
}

func errBadBody(cause error) error {
	return &badBodyError{cause: cause}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	resp := errorResponse{Error: err.Error()}

	var conflict *draft.LockConflictError
	if errors.As(err, &conflict) {
		resp.LockedBy = conflict.HolderID
		resp.LockedName = conflict.HolderName
		expires := conflict.ExpiresAt
		resp.ExpiresAt = &expires
	}

	status := statusForError(err)
	if status == http.StatusInternalServerError {
		logger.L().Error(r.Context(), "request failed",
			logger.String("path", r.URL.Path),
			logger.Error(err))
		// Internals stay internal.
		resp.Error = "internal error"
	}

	writeJSON(w, status, resp)
}

func statusForError(err error) int {
	var badBody *badBodyError

	switch {
	case errors.Is(err, draft.ErrEventNotFound),
		errors.Is(err, draft.ErrSlotNotFound),
		errors.Is(err, draft.ErrParticipantNotFound),
		errors.Is(err, draft.ErrLockNotFound):
		return http.StatusNotFound

	case errors.Is(err, draft.ErrLockConflict),
		errors.Is(err, draft.ErrSlotOccupied),
		errors.Is(err, draft.ErrConcurrentUpdate):
		return http.StatusConflict

	case errors.Is(err, draft.ErrNotLockHolder),
		errors.Is(err, draft.ErrNotDrafter):
		return http.StatusForbidden

	case errors.Is(err, draft.ErrSlotEmpty),
		errors.Is(err, draft.ErrInvalidJob),
		errors.Is(err, draft.ErrJobRoleMismatch),
		errors.Is(err, draft.ErrJobRestricted),
		errors.Is(err, draft.ErrInvalidParticipantType),
		errors.Is(err, draft.ErrInvalidInput),
		errors.As(err, &badBody):
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}
