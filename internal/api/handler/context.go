package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ayel/intranet/internal/api/middleware"
	"github.com/ayel/intranet/internal/core/domain"
)

// viewer rebuilds the session user from the claims injected by the Auth
// middleware. A missing subject means the middleware did not run.
func viewer(c echo.Context) (*domain.User, error) {
	id, _ := c.Get(middleware.CtxUserID).(string)
	if id == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	username, _ := c.Get(middleware.CtxUsername).(string)
	fullName, _ := c.Get(middleware.CtxFullName).(string)
	role, _ := c.Get(middleware.CtxRole).(string)
	category, _ := c.Get(middleware.CtxCategory).(string)
	companyID, _ := c.Get(middleware.CtxCompanyID).(string)

	return &domain.User{
		ID:        id,
		Username:  username,
		FullName:  fullName,
		Role:      domain.Role(role),
		Category:  domain.Category(category),
		CompanyID: companyID,
	}, nil
}

// session returns the token id and expiry of the current request.
func session(c echo.Context) (jti string, expiresAt time.Time) {
	jti, _ = c.Get(middleware.CtxTokenID).(string)
	expiresAt, _ = c.Get(middleware.CtxExpiresAt).(time.Time)
	return jti, expiresAt
}
