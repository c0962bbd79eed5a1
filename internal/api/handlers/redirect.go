package handlers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

// Redirect sends the client to an external store link. Only absolute
// http/https URLs pass; anything else is rejected rather than becoming an
// open redirect to arbitrary schemes.
func Redirect(c *gin.Context) {
	raw := c.Query("url")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter url is required"})
		return
	}

	target, err := url.Parse(raw)
	if err != nil || target.Host == "" || (target.Scheme != "http" && target.Scheme != "https") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url must be an absolute http or https link"})
		return
	}

	c.Redirect(http.StatusFound, target.String())
}
