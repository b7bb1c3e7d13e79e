package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// fileHandler serves a stored object when the link's signature checks out.
// Expired or tampered links get a plain 404, same as unknown keys.
func fileHandler(files FileStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Param("key")
		exp := c.Query("exp")
		sig := c.Query("sig")
		if !files.Verify(key, exp, sig) {
			c.JSON(http.StatusNotFound, errorResponse{Error: "not found"})
			return
		}
		f, err := files.Open(key)
		if err != nil {
			c.JSON(http.StatusNotFound, errorResponse{Error: "not found"})
			return
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			c.JSON(http.StatusNotFound, errorResponse{Error: "not found"})
			return
		}
		http.ServeContent(c.Writer, c.Request, key, info.ModTime(), f)
	}
}
