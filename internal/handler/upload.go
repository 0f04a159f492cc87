package handler

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/user/blog/internal/utils"
)

// multipart 头部等额外开销
const uploadOverhead = 1 << 20

// AdminUpload 上传文章缩略图，返回存储键和公开地址
func (h *Handler) AdminUpload(c *gin.Context) {
	limit := h.Config.UploadMaxBytes
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+uploadOverhead)

	fh, err := c.FormFile("thumbnail")
	if err != nil {
		utils.BadRequest(c, "缺少上传文件 thumbnail 或文件过大")
		return
	}
	if fh.Size > limit {
		utils.BadRequest(c, fmt.Sprintf("文件不能超过 %d 字节", limit))
		return
	}

	file, err := fh.Open()
	if err != nil {
		utils.BadRequest(c, "无法读取上传文件")
		return
	}
	defer file.Close()

	// 按文件内容判断类型，不信任客户端声明
	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF {
		utils.BadRequest(c, "无法读取上传文件")
		return
	}
	contentType := http.DetectContentType(head[:n])
	if !strings.HasPrefix(contentType, "image/") {
		utils.BadRequest(c, "只能上传图片")
		return
	}

	key, err := h.Thumbnails.Upload(io.MultiReader(bytes.NewReader(head[:n]), file), contentType)
	if err != nil {
		h.fail(c, err, "上传缩略图失败")
		return
	}
	utils.Success(c, UploadResponse{Key: key, URL: h.Thumbnails.PublicURL(key)})
}
