package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// maxUploadBytes caps attachment uploads at 10 MiB.
const maxUploadBytes = 10 << 20

func uploadAttachmentHandler(svc AttachmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)
		fileHeader, err := c.FormFile("file")
		if err != nil {
			badRequest(c, "multipart field \"file\" required")
			return
		}
		f, err := fileHeader.Open()
		if err != nil {
			badRequest(c, "unreadable upload")
			return
		}
		defer f.Close()

		a, err := svc.Upload(c.Request.Context(), currentOperator(c).ID, c.Param("id"),
			fileHeader.Filename, c.PostForm("kind"), f)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, a)
	}
}

func listAttachmentsHandler(svc AttachmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		attachments, err := svc.List(c.Request.Context(), currentOperator(c).ID, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"attachments": attachments})
	}
}

func deleteAttachmentHandler(svc AttachmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), currentOperator(c).ID, c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
