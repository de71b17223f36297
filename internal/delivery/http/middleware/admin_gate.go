package middleware

import (
	"net/http"

	"go-portfolio-backend/pkg/accesskey"
	"go-portfolio-backend/pkg/logger"
	"go-portfolio-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

// AdminKeyParam is the query parameter carrying the admin access key.
const AdminKeyParam = "key"

// reasonGateFailure marks a decision the gate could not make.
const reasonGateFailure accesskey.Reason = "gate_failure"

// AdminGate guards every path under the gate prefix. It is registered on the
// engine rather than a group so unknown admin paths are redirected too.
// Denied requests are redirected to the site root.
func AdminGate(gate *accesskey.Gate, accessLog *security.AccessLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		ip := accesskey.ClientIP(c.Request.Header)
		decision := decide(gate, path, ip, c.Query(AdminKeyParam))

		if decision.Reason == accesskey.ReasonNotAdmin {
			c.Next()
			return
		}

		event := security.AccessEvent{
			IP:        ip,
			Path:      path,
			Reason:    string(decision.Reason),
			UserAgent: c.Request.UserAgent(),
			RequestID: c.GetString(RequestIDKey),
		}
		switch {
		case decision.Reason == reasonGateFailure:
			event.Event = security.EventGateFailure
		case !decision.Allowed:
			event.Event = security.EventAccessDenied
		case decision.Reason == accesskey.ReasonAllowlisted:
			event.Event = security.EventAccessGrantedIP
		default:
			event.Event = security.EventAccessGrantedKey
		}
		accessLog.Log(event)

		if !decision.Allowed {
			c.Redirect(http.StatusTemporaryRedirect, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

// decide turns a panic inside the gate into a denial.
func decide(gate *accesskey.Gate, path, ip, key string) (d accesskey.Decision) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Error("admin gate panicked", "path", path, "panic", r)
			d = accesskey.Decision{Reason: reasonGateFailure}
		}
	}()
	return gate.Decide(path, ip, key)
}
