package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/xid"

	"github.com/vnkhanh/elearning-backend/logger"
	"github.com/vnkhanh/elearning-backend/utils"
)

const (
	uploadKey     = "uploaded_file"
	MaxUploadSize = 5 << 20
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

type UploadedFile struct {
	Folder string
	Ref    string
}

// Upload nhận tối đa một file ảnh ở field rồi lưu vào folder. Không có file
// thì handler vẫn chạy. Sai kiểu hoặc quá lớn thì trả 400 trước khi handler
// chạy. Nếu handler trả lỗi (>= 400), file vừa lưu bị xoá.
func Upload(files utils.FileStorage, field, folder string, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		fh, err := c.FormFile(field)
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			c.Next()
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Invalid Request", "errors": []string{err.Error()}})
			return
		}

		if !allowedImageTypes[strings.ToLower(fh.Header.Get("Content-Type"))] {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "File type not allowed"})
			return
		}
		if fh.Size > MaxUploadSize {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "File too large"})
			return
		}

		name := fmt.Sprintf("%s-%s%s", field, xid.New().String(), strings.ToLower(filepath.Ext(fh.Filename)))
		ref, err := files.Save(c.Request.Context(), folder, name, fh)
		if err != nil {
			log.Error("upload failed", "error", err, "field", field)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}

		c.Set(uploadKey, &UploadedFile{Folder: folder, Ref: ref})
		c.Next()

		if c.Writer.Status() >= http.StatusBadRequest {
			if err := files.Delete(c.Request.Context(), folder, ref); err != nil {
				log.Warn("cleanup of rejected upload failed", "error", err, "ref", ref)
			}
		}
	}
}

// UploadedFileFrom trả về file Upload đã lưu, nil nếu request không có file.
func UploadedFileFrom(c *gin.Context) *UploadedFile {
	v, ok := c.Get(uploadKey)
	if !ok {
		return nil
	}
	f, _ := v.(*UploadedFile)
	return f
}
