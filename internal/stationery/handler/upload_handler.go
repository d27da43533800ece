package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/InfoRubix/stationery/internal/stationery/service"
)

type UploadHandler struct {
	svc *service.AssetService
}

func NewUploadHandler(svc *service.AssetService) *UploadHandler {
	return &UploadHandler{svc: svc}
}

// Upload POST /api/v1/upload
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "请上传文件")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		InternalError(c, "读取文件失败: "+err.Error())
		return
	}
	defer file.Close()

	asset, err := h.svc.Upload(c.Request.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		file)
	if err != nil {
		InternalError(c, "上传失败: "+err.Error())
		return
	}
	Created(c, asset)
}

// Delete DELETE /api/v1/upload/*id
func (h *UploadHandler) Delete(c *gin.Context) {
	objectID := c.Param("id")
	if len(objectID) > 0 && objectID[0] == '/' {
		objectID = objectID[1:]
	}
	if objectID == "" {
		BadRequest(c, "缺少文件ID")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), objectID); err != nil {
		InternalError(c, "删除失败: "+err.Error())
		return
	}
	Success(c, gin.H{"deleted": true})
}
