package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/lovishduggal/brainwave-backend/internal/http/response"
	"github.com/lovishduggal/brainwave-backend/internal/services"
)

type UploadHandler struct {
	upload *services.UploadService
}

func NewUploadHandler(upload *services.UploadService) *UploadHandler {
	return &UploadHandler{upload: upload}
}

// GET /api/upload
func (h *UploadHandler) AuthParams(c *gin.Context) {
	response.RespondOK(c, h.upload.NewAuthParams())
}
