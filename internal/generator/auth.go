package generator

import "github.com/toyz/testgen/internal/models"

// Recognized authentication middleware
const (
	WebAuthMiddleware      = "auth"
	SanctumAuthMiddleware  = "auth:sanctum"
	PassportAuthMiddleware = "auth:api"
)

// Classes imported by the API acting-as statements
const (
	SanctumClass  = `Laravel\Sanctum\Sanctum`
	PassportClass = `Laravel\Passport\Passport`
)

// AuthMiddleware is the recognized auth middleware set
var AuthMiddleware = []string{WebAuthMiddleware, SanctumAuthMiddleware, PassportAuthMiddleware}

// ResolveAuth intersects the route middleware with AuthMiddleware.
// Matching is exact and case-sensitive.
func ResolveAuth(middleware []string) models.AuthState {
	var state models.AuthState
	for _, mw := range middleware {
		switch mw {
		case WebAuthMiddleware:
			state.Web = true
		case SanctumAuthMiddleware:
			state.Sanctum = true
		case PassportAuthMiddleware:
			state.Passport = true
		}
	}
	return state
}

// SanctumActingAs returns the sanctum statement, or "" when sanctum is not used
func SanctumActingAs(auth models.AuthState, actor string) string {
	if !auth.Sanctum {
		return ""
	}
	return "Sanctum::actingAs(" + actor + ", ['*']);"
}

// PassportActingAs returns the passport statement, or "" when passport is not used
func PassportActingAs(auth models.AuthState, actor string) string {
	if !auth.Passport {
		return ""
	}
	return "Passport::actingAs(" + actor + ", ['*']);"
}

// APIActingAs selects the acting-as statement for API tests and the class
// it needs imported. Sanctum wins over passport when a route carries both.
func APIActingAs(auth models.AuthState, actor string) (statement, class string) {
	if auth.Sanctum {
		return SanctumActingAs(auth, actor), SanctumClass
	}
	if auth.Passport {
		return PassportActingAs(auth, actor), PassportClass
	}
	return "", ""
}

// WebActingAs returns the chained actingAs(...)-> prefix for browser tests
func WebActingAs(auth models.AuthState, actor string) string {
	if !auth.Web {
		return ""
	}
	return "actingAs(" + actor + ")->"
}

// Auth returns the auth state of the route, resolving it on first use.
// The state never changes afterwards.
func (g *Generator) Auth() models.AuthState {
	if !g.authResolved {
		g.auth = ResolveAuth(g.route.Middleware())
		g.authResolved = true
	}
	return g.auth
}

// IsAuthRequired reports whether the route carries recognized auth middleware
func (g *Generator) IsAuthRequired() bool {
	return g.Auth().Required()
}

// WriteAPIActingAs returns the API acting-as statement for actor and
// registers its import on b
func (g *Generator) WriteAPIActingAs(b *Builder, actor string) string {
	statement, class := APIActingAs(g.Auth(), actor)
	if class != "" {
		b.Import(class)
	}
	return statement
}
