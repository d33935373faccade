package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/pricelist/internal/logging"
	"github.com/Skotchmaster/pricelist/internal/service"
	"github.com/Skotchmaster/pricelist/internal/transport"
)

type AuthHTTP struct {
	Sessions *service.SessionService
}

func (h *AuthHTTP) sessionToken(c echo.Context) string {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_failed", "status", 401, "reason", "invalid body", "error", err)
		return errorJSON(c, http.StatusUnauthorized, service.ErrBadCredentials)
	}

	token, exp, err := h.Sessions.Login(ctx, req.Username, req.Password)
	if err != nil {
		l.Warn("login_failed", "status", 401, "reason", "bad credentials")
		return mapError(c, err)
	}

	c.SetCookie(CreateCookie(SessionCookieName, token, "/", exp))

	l.Info("login_success")
	return c.JSON(http.StatusOK, transport.OKResponse{OK: true})
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	if err := h.Sessions.Logout(ctx, h.sessionToken(c)); err != nil {
		l.Error("logout_failed", "status", 500, "error", err)
		return mapError(c, err)
	}

	expired := time.Now().Add(-1 * time.Hour)
	c.SetCookie(CreateCookie(SessionCookieName, "", "/", expired))

	return c.JSON(http.StatusOK, transport.OKResponse{OK: true})
}

func (h *AuthHTTP) Me(c echo.Context) error {
	ctx := c.Request().Context()
	return c.JSON(http.StatusOK, transport.MeResponse{
		IsAdmin: h.Sessions.IsAdmin(ctx, h.sessionToken(c)),
	})
}

// RequireAdmin rejects before any ingest or store work happens.
func (h *AuthHTTP) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		if err := h.Sessions.Authorize(ctx, h.sessionToken(c)); err != nil {
			logging.FromContext(ctx).Warn("authorize_failed", "status", 401, "path", c.Path())
			return mapError(c, err)
		}
		return next(c)
	}
}
