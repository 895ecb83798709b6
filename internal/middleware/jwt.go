package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/lummy-consults/lummy-api/internal/models"
	"github.com/lummy-consults/lummy-api/pkg/response"
)

// ContextUserKey is the gin context key storing the verified identity.
const ContextUserKey = "currentUser"

// TokenVerifier turns an Authorization header into a verified identity.
type TokenVerifier interface {
	Verify(authorizationHeader string) (*models.Identity, error)
}

// JWT protects routes by requiring a verified bearer token. The identity
// is attached to the context only after verification succeeds.
func JWT(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := verifier.Verify(c.GetHeader("Authorization"))
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserKey, identity)
		c.Next()
	}
}

// OptionalJWT attaches the identity when a valid token is present but
// never blocks the request.
func OptionalJWT(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if identity, err := verifier.Verify(c.GetHeader("Authorization")); err == nil {
			c.Set(ContextUserKey, identity)
		}
		c.Next()
	}
}

// IdentityFromContext returns the identity stored by JWT or OptionalJWT.
func IdentityFromContext(c *gin.Context) (*models.Identity, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	identity, ok := value.(*models.Identity)
	return identity, ok && identity != nil
}
