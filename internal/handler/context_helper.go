package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/lummy-consults/lummy-api/internal/middleware"
	"github.com/lummy-consults/lummy-api/internal/models"
	appErrors "github.com/lummy-consults/lummy-api/pkg/errors"
	"github.com/lummy-consults/lummy-api/pkg/response"
)

// requireIdentity returns the verified caller or writes a 401.
func requireIdentity(c *gin.Context) (*models.Identity, bool) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrMissingCredential, ""))
		return nil, false
	}
	return identity, true
}

// bindJSON decodes the request body or writes a 400.
func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return false
	}
	return true
}
