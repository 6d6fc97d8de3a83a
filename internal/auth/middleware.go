package auth

import (
	"log/slog"
	"net/http"

	"github.com/schoolhub/schoolhub/internal/platform/httpx"
	"github.com/schoolhub/schoolhub/internal/shared"
)

// TokenHeader is the fixed request header carrying the short token.
const TokenHeader = "Token"

// Gates wires the access-gate middlewares for HTTP handlers. Both gates share
// one algorithm and differ only in the minimum-role predicate; on success the
// decoded principal is forwarded through the request context.
type Gates struct {
	Tokens *Manager
	Logger *slog.Logger
}

// SchoolAdmin admits school admins and superadmins. Tenant scoping happens
// later, inside each entity service.
func (g Gates) SchoolAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, err := g.authenticate(r)
		if err != nil {
			httpx.RespondError(w, err)
			return
		}
		switch p.Role {
		case shared.RoleSchoolAdmin, shared.RoleSuperAdmin:
		default:
			httpx.RespondError(w, shared.Errorf(shared.ErrForbidden, "forbidden: school admin access required"))
			return
		}
		next.ServeHTTP(w, r.WithContext(shared.ContextWithPrincipal(r.Context(), p)))
	})
}

// SuperAdmin admits superadmins only.
func (g Gates) SuperAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, err := g.authenticate(r)
		if err != nil {
			httpx.RespondError(w, err)
			return
		}
		if p.Role != shared.RoleSuperAdmin {
			httpx.RespondError(w, shared.Errorf(shared.ErrForbidden, "forbidden: superadmin access required"))
			return
		}
		next.ServeHTTP(w, r.WithContext(shared.ContextWithPrincipal(r.Context(), p)))
	})
}

// authenticate fails closed: a missing token and a failed verification are
// indistinguishable to the caller.
func (g Gates) authenticate(r *http.Request) (*shared.Principal, error) {
	token := r.Header.Get(TokenHeader)
	if token == "" {
		return nil, shared.ErrUnauthorized
	}
	p, err := g.Tokens.VerifyShortToken(token)
	if err != nil {
		if g.Logger != nil {
			g.Logger.Debug("token rejected", slog.String("path", r.URL.Path))
		}
		return nil, shared.ErrUnauthorized
	}
	return p, nil
}
