package middleware

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"

	"github.com/lummy-consults/lummy-api/pkg/middleware/requestid"
)

// ErrorReporting sends errors attached to 5xx responses to Sentry. Client
// errors are expected traffic and are not reported. It reuses the hub
// installed by sentrygin when present.
func ErrorReporting() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Status() < http.StatusInternalServerError || len(c.Errors) == 0 {
			return
		}

		hub := requestHub(c)
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetTag("route", c.FullPath())
			scope.SetTag("status", http.StatusText(c.Writer.Status()))
			if id := requestid.Value(c); id != "" {
				scope.SetTag("request_id", id)
			}
			if identity, ok := IdentityFromContext(c); ok {
				scope.SetUser(sentry.User{ID: identity.SubjectID})
			}
			for _, e := range c.Errors {
				hub.CaptureException(e.Err)
			}
		})
	}
}

func requestHub(c *gin.Context) *sentry.Hub {
	if hub := sentrygin.GetHubFromContext(c); hub != nil {
		return hub
	}
	if hub := sentry.GetHubFromContext(c.Request.Context()); hub != nil {
		return hub
	}
	hub := sentry.CurrentHub().Clone()
	hub.Scope().SetRequest(c.Request)
	return hub
}
