package middleware

import (
	"fmt"
	"net/http"

	"github.com/casbin/casbin/v2"
	casbinmodel "github.com/casbin/casbin/v2/model"
	"github.com/labstack/echo/v4"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

// Back-office permissions per role. Customers carry no policy rows;
// customer-facing routes only require a valid token.
var rolePolicies = [][]string{
	{"product_manager", "orders", "manage"},
	{"product_manager", "invoices", "read"},
	{"product_manager", "products", "stock"},
	{"sales_manager", "refunds", "decide"},
	{"sales_manager", "revenue", "read"},
	{"sales_manager", "products", "price"},
}

// NewEnforcer builds the in-memory RBAC enforcer for the two manager
// roles.
func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := casbinmodel.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("parse rbac model: %w", err)
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("build enforcer: %w", err)
	}
	for _, p := range rolePolicies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Require gates a route on the caller's role holding (obj, act).
// Must run after JWTMiddleware.
func Require(e *casbin.Enforcer, obj, act string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := GetClaims(c)
			if claims == nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
			}
			allowed, err := e.Enforce(claims.Role, obj, act)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": "authorization check failed"})
			}
			if !allowed {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "insufficient role"})
			}
			return next(c)
		}
	}
}
