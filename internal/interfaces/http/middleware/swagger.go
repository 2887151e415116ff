package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// SwaggerConfig controls access to the /swagger endpoints. The API
// docs describe the whole BOM surface, so production deployments
// usually disable them or restrict them to the office network.
type SwaggerConfig struct {
	Enabled     bool
	RequireAuth bool     // run the JWT middleware before serving docs
	AllowedIPs  []string // IPs or CIDR ranges; empty allows everyone
}

// SwaggerProtection gates the swagger group. Disabled docs answer 404
// so the endpoint's existence is not advertised; a client outside the
// allowlist gets 403; with RequireAuth the JWT middleware runs last.
func SwaggerProtection(cfg SwaggerConfig, jwtMiddleware gin.HandlerFunc) gin.HandlerFunc {
	allowlist := parseAllowlist(cfg.AllowedIPs)

	return func(c *gin.Context) {
		if !cfg.Enabled {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":   "not_found",
				"message": "API documentation is not available",
			})
			return
		}

		if !allowlist.permits(clientIP(c)) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":   "forbidden",
				"message": "Access to API documentation is restricted",
			})
			return
		}

		if cfg.RequireAuth && jwtMiddleware != nil {
			jwtMiddleware(c)
			if c.IsAborted() {
				return
			}
		}

		c.Next()
	}
}

// ipAllowlist holds the parsed form of SwaggerConfig.AllowedIPs.
type ipAllowlist struct {
	open bool // no entries configured
	ips  []net.IP
	nets []*net.IPNet
}

func parseAllowlist(entries []string) *ipAllowlist {
	list := &ipAllowlist{open: len(entries) == 0}
	for _, entry := range entries {
		if strings.Contains(entry, "/") {
			if _, network, err := net.ParseCIDR(entry); err == nil {
				list.nets = append(list.nets, network)
			}
			continue
		}
		if ip := net.ParseIP(entry); ip != nil {
			list.ips = append(list.ips, ip)
		}
	}
	return list
}

func (l *ipAllowlist) permits(ip net.IP) bool {
	if l.open {
		return true
	}
	if ip == nil {
		return false
	}
	for _, allowed := range l.ips {
		if allowed.Equal(ip) {
			return true
		}
	}
	for _, network := range l.nets {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// clientIP resolves the caller's address, trusting gin's proxy
// handling first and falling back to the raw remote address.
func clientIP(c *gin.Context) net.IP {
	if ip := net.ParseIP(c.ClientIP()); ip != nil {
		return ip
	}
	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		host = c.Request.RemoteAddr
	}
	return net.ParseIP(host)
}
