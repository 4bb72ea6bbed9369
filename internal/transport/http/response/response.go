package response

import "github.com/gin-gonic/gin"

// Chat endpoints report failures as a bare {"error": "..."} object; the auth
// and tip surfaces use their own envelopes and build them inline.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
