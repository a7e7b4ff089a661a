package http

import (
	"errors"
	"net/http"

	"huddle/internal/core/domain"
	"huddle/internal/core/ports"
	"huddle/internal/infrastructure/middleware"
	apperrors "huddle/pkg/errors"

	"github.com/gin-gonic/gin"
)

// legacyError maps core failures onto the response vocabulary the original
// clients already parse. Status codes intentionally mirror the legacy
// surface (e.g. a duplicate email is a 403, not a 409).
func legacyError(err error) *apperrors.AppError {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return apperrors.NewAppError(apperrors.ErrCodeNotFound, "emailNotFound", http.StatusNotFound)
	case errors.Is(err, domain.ErrDuplicateEmail):
		return apperrors.NewAppError(apperrors.ErrCodeConflict, "emailAlreadyExists", http.StatusForbidden)
	case errors.Is(err, domain.ErrCredentialMismatch):
		return apperrors.NewAppError(apperrors.ErrCodeForbidden, "passwordMismatch", http.StatusForbidden)
	case errors.Is(err, domain.ErrInvalidToken):
		return apperrors.NewAppError(apperrors.ErrCodeForbidden, "invalidToken", http.StatusForbidden)
	case errors.Is(err, domain.ErrExpiredToken):
		return apperrors.NewAppError(apperrors.ErrCodeForbidden, "expiredToken", http.StatusForbidden)
	case errors.Is(err, domain.ErrEventNotFound):
		return apperrors.NewAppError(apperrors.ErrCodeNotFound, "eventNotFound", http.StatusNotFound)
	case errors.Is(err, domain.ErrFriendNotFound):
		return apperrors.NewAppError(apperrors.ErrCodeNotFound, "friendNotFound", http.StatusNotFound)
	case errors.Is(err, domain.ErrNotEventHost):
		return apperrors.NewAppError(apperrors.ErrCodeForbidden, "notEventHost", http.StatusForbidden)
	case errors.Is(err, domain.ErrAlreadyVisited):
		return apperrors.NewAppError(apperrors.ErrCodeForbidden, "eventAlreadyVisited", http.StatusForbidden)
	case errors.Is(err, domain.ErrInvalidJoinKey):
		return apperrors.NewAppError(apperrors.ErrCodeForbidden, "invalidKey", http.StatusForbidden)
	case errors.Is(err, domain.ErrSelfRelation):
		return apperrors.NewAppError(apperrors.ErrCodeInvalidInput, "invalidTarget", http.StatusBadRequest)
	default:
		return apperrors.WrapError(err, apperrors.ErrCodeInternal, "internalError", http.StatusInternalServerError)
	}
}

// userNotFound is the variant used by endpoints that address users by id
// rather than by the caller's email.
func userNotFound(err error) *apperrors.AppError {
	if errors.Is(err, domain.ErrUserNotFound) {
		return apperrors.NewAppError(apperrors.ErrCodeNotFound, "userNotFound", http.StatusNotFound)
	}
	return legacyError(err)
}

func tokenFrom(c *gin.Context) (string, bool) {
	return middleware.TokenFromContext(c)
}

// authenticate resolves the acting user from the body email and the token
// extracted from the authorization header. Every authenticated endpoint
// goes through here before touching any store.
func authenticate(c *gin.Context, sessions ports.SessionService, email string) (*domain.User, error) {
	token, ok := middleware.TokenFromContext(c)
	if !ok {
		return nil, domain.ErrInvalidToken
	}
	return sessions.Validate(c.Request.Context(), email, token)
}

func publicUsers(users []*domain.User) []domain.PublicUser {
	out := make([]domain.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out
}
