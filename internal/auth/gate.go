package auth

import (
	"context"
	"net/http"
	"strings"

	"cafe45/internal/models"

	"github.com/gin-gonic/gin"
)

// Paths the gate redirects to.
const (
	LoginPath        = "/admin/login"
	UnauthorizedPath = "/?unauthorized=1"
)

// IdentityKey is where the gate stores the verified user id on the context.
const IdentityKey = "auth.userID"

// ProfileStore looks up the per-identity admin flag.
type ProfileStore interface {
	GetProfileByUserID(ctx context.Context, userID string) (*models.Profile, error)
}

// Gate protects the admin section. It is a pure check with no side effects
// beyond the redirect decision:
//
//	no verifiable credential          -> redirect to the login page
//	verified but not an administrator -> redirect home with the unauthorized marker
//	verified administrator            -> request proceeds
//
// The login path itself always passes, so the redirect can never loop.
func Gate(tokens *TokenService, profiles ProfileStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == LoginPath {
			c.Next()
			return
		}

		userID, err := tokens.Verify(credentialFrom(c))
		if err != nil {
			c.Redirect(http.StatusSeeOther, LoginPath)
			c.Abort()
			return
		}

		// Missing profile and is_admin=false are the same answer.
		profile, err := profiles.GetProfileByUserID(c.Request.Context(), userID)
		if err != nil || profile == nil || !profile.IsAdmin {
			c.Redirect(http.StatusSeeOther, UnauthorizedPath)
			c.Abort()
			return
		}

		c.Set(IdentityKey, userID)
		c.Next()
	}
}

// credentialFrom reads the session token from the cookie, with the
// Authorization header as a fallback for non-browser clients.
func credentialFrom(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	return strings.TrimPrefix(header, "Bearer ")
}
