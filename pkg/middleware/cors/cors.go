package cors

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Policy describes which browser origins may call the API and what they may
// send or read.
type Policy struct {
	// Origins lists allowed origins. Empty means any origin.
	Origins        []string
	Methods        []string
	Headers        []string
	ExposedHeaders []string
	MaxAge         time.Duration
}

// DefaultPolicy allows the planner front end to send the confirmation header
// and read export filenames and board revisions.
func DefaultPolicy(origins []string) Policy {
	return Policy{
		Origins:        origins,
		Methods:        []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		Headers:        []string{"Content-Type", "X-Requested-With", "X-Request-ID", "X-Confirm"},
		ExposedHeaders: []string{"Content-Disposition", "X-Board-Revision", "X-Request-ID"},
		MaxAge:         10 * time.Minute,
	}
}

// New applies DefaultPolicy.
func New(allowedOrigins []string) gin.HandlerFunc {
	return DefaultPolicy(allowedOrigins).Middleware()
}

// Middleware answers preflight requests and decorates the rest.
func (p Policy) Middleware() gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(p.Origins))
	for _, origin := range p.Origins {
		allowed[normalizeOrigin(origin)] = struct{}{}
	}
	anyOrigin := len(allowed) == 0
	fixed := map[string]string{
		"Access-Control-Allow-Credentials": "true",
		"Access-Control-Allow-Headers":     strings.Join(p.Headers, ", "),
		"Access-Control-Allow-Methods":     strings.Join(p.Methods, ", "),
		"Access-Control-Expose-Headers":    strings.Join(p.ExposedHeaders, ", "),
		"Access-Control-Max-Age":           strconv.Itoa(int(p.MaxAge / time.Second)),
	}

	return func(c *gin.Context) {
		header := c.Writer.Header()
		header.Add("Vary", "Origin")

		origin := c.GetHeader("Origin")
		switch {
		case origin == "" && anyOrigin:
			header.Set("Access-Control-Allow-Origin", "*")
		case origin != "":
			if _, ok := allowed[normalizeOrigin(origin)]; ok || anyOrigin {
				header.Set("Access-Control-Allow-Origin", origin)
			}
		}
		for name, value := range fixed {
			header.Set(name, value)
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func normalizeOrigin(origin string) string {
	return strings.ToLower(strings.TrimRight(strings.TrimSpace(origin), "/"))
}
