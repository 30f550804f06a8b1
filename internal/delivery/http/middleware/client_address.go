package middleware

import (
	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/netutil"

	"github.com/gin-gonic/gin"
)

// ClientAddress is the effective network address of the caller. gin's
// ClientIP already honours trusted proxies; the raw headers are the fallback.
func ClientAddress(c *gin.Context) string {
	return netutil.ClientAddress(c.ClientIP(), c.GetHeader("X-Forwarded-For"), c.GetHeader("X-Real-IP"))
}

// ViewerFrom builds the view-dedup identity of the request. Routes without
// auth yield an anonymous viewer.
func ViewerFrom(c *gin.Context) domain.Viewer {
	return domain.Viewer{
		UserID:  c.GetString(string(domain.KeyUserID)),
		Address: ClientAddress(c),
	}
}

// ActorFrom returns the authenticated caller set by AuthMiddleware.
func ActorFrom(c *gin.Context) domain.Actor {
	return domain.Actor{
		UserID: c.GetString(string(domain.KeyUserID)),
		Role:   c.GetString(string(domain.KeyUserRole)),
	}
}
