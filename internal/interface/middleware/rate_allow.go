package middleware

import (
	"github.com/gin-gonic/gin"
	"net"
)

// AllowPrivateIP returns an AllowFunc that bypasses rate limiting for
// clients on loopback or private ranges. Unparseable addresses are never
// bypassed.
func AllowPrivateIP() AllowFunc {
	return func(c *gin.Context) bool {
		parsed := net.ParseIP(ipFromCtx(c))
		if parsed == nil {
			return false
		}
		// 10.0.0.0/8, 172.16/12, 192.168/16, loopback
		return parsed.IsLoopback() || parsed.IsPrivate()
	}
}
