package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/pricelist/internal/imaging"
	"github.com/Skotchmaster/pricelist/internal/service"
	"github.com/Skotchmaster/pricelist/internal/transport"
)

const SessionCookieName = "session"

func CreateCookie(name string, value string, path string, exp time.Time) *http.Cookie {
	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  exp,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}

	return cookie
}

func errorJSON(c echo.Context, code int, err error) error {
	return c.JSON(code, transport.ErrorResponse{Error: err.Error()})
}

var clientErrors = []error{
	service.ErrNameRequired,
	service.ErrPriceRequired,
	service.ErrCategoryRequired,
	service.ErrDuplicateCategory,
	service.ErrCategoryHasItems,
	service.ErrCategoryNotFound,
	service.ErrItemNotFound,
	imaging.ErrMissingPayload,
	imaging.ErrPayloadTooLarge,
	imaging.ErrUnsupportedMediaType,
}

var errInternal = errors.New("Something went wrong. Please try again.")

// mapError keeps the error taxonomy at the boundary: anything the
// client caused is a 400/401 with its message verbatim, anything else
// is a generic 500.
func mapError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrUnauthorized), errors.Is(err, service.ErrBadCredentials):
		return errorJSON(c, http.StatusUnauthorized, err)
	default:
		for _, known := range clientErrors {
			if errors.Is(err, known) {
				return errorJSON(c, http.StatusBadRequest, err)
			}
		}
		return errorJSON(c, http.StatusInternalServerError, errInternal)
	}
}
