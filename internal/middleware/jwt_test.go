package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/airline-seat-reservation/internal/model"
    "github.com/iliyamo/airline-seat-reservation/internal/utils"
)

const testSecret = "middleware-test-secret"

func okHandler(c echo.Context) error {
    return c.String(http.StatusOK, "ok")
}

func doRequest(t *testing.T, mw []echo.MiddlewareFunc, authHeader string) *httptest.ResponseRecorder {
    t.Helper()
    e := echo.New()
    h := okHandler
    for i := len(mw) - 1; i >= 0; i-- {
        h = mw[i](h)
    }
    req := httptest.NewRequest(http.MethodGet, "/", nil)
    if authHeader != "" {
        req.Header.Set("Authorization", authHeader)
    }
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    require.NoError(t, h(c))
    return rec
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
    at, err := utils.NewAccessToken(testSecret, 42, model.RolePassenger, 5)
    require.NoError(t, err)

    rec := doRequest(t, []echo.MiddlewareFunc{JWTAuth(testSecret)}, "Bearer "+at.Token)
    assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTAuthRejectsMissingAndBadTokens(t *testing.T) {
    rec := doRequest(t, []echo.MiddlewareFunc{JWTAuth(testSecret)}, "")
    assert.Equal(t, http.StatusUnauthorized, rec.Code)

    rec = doRequest(t, []echo.MiddlewareFunc{JWTAuth(testSecret)}, "Bearer not-a-jwt")
    assert.Equal(t, http.StatusUnauthorized, rec.Code)

    at, err := utils.NewAccessToken("other-secret", 1, model.RolePassenger, 5)
    require.NoError(t, err)
    rec = doRequest(t, []echo.MiddlewareFunc{JWTAuth(testSecret)}, "Bearer "+at.Token)
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRoleEnforcesAllowedSet(t *testing.T) {
    passenger, err := utils.NewAccessToken(testSecret, 7, model.RolePassenger, 5)
    require.NoError(t, err)
    admin, err := utils.NewAccessToken(testSecret, 8, model.RoleAdmin, 5)
    require.NoError(t, err)

    adminOnly := []echo.MiddlewareFunc{JWTAuth(testSecret), RequireRole(model.RoleAdmin)}

    rec := doRequest(t, adminOnly, "Bearer "+admin.Token)
    assert.Equal(t, http.StatusOK, rec.Code)

    rec = doRequest(t, adminOnly, "Bearer "+passenger.Token)
    assert.Equal(t, http.StatusForbidden, rec.Code)
}

// The booking surface admits every authenticated role, not just
// passengers; a staff or admin token must not see 403 on hold or
// confirm routes.
func TestRequireRoleBookingGuardAdmitsAllRoles(t *testing.T) {
    guard := RequireRole(model.RolePassenger, model.RoleStaff, model.RoleAdmin)

    for _, role := range []model.UserRole{model.RolePassenger, model.RoleStaff, model.RoleAdmin} {
        at, err := utils.NewAccessToken(testSecret, 9, role, 5)
        require.NoError(t, err)
        rec := doRequest(t, []echo.MiddlewareFunc{JWTAuth(testSecret), guard}, "Bearer "+at.Token)
        assert.Equal(t, http.StatusOK, rec.Code, "role %s", role)
    }

    // No role claim at all still fails closed.
    rec := doRequest(t, []echo.MiddlewareFunc{guard}, "")
    assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCurrentUserIDClaimTypes(t *testing.T) {
    e := echo.New()
    c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

    _, ok := CurrentUserID(c)
    assert.False(t, ok)

    c.Set("user_id", float64(42)) // json-decoded numeric claim
    id, ok := CurrentUserID(c)
    assert.True(t, ok)
    assert.Equal(t, uint64(42), id)

    c.Set("user_id", "77")
    id, ok = CurrentUserID(c)
    assert.True(t, ok)
    assert.Equal(t, uint64(77), id)

    c.Set("user_id", "not-a-number")
    _, ok = CurrentUserID(c)
    assert.False(t, ok)
}
