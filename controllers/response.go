package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/elearning-backend/middleware"
	"github.com/vnkhanh/elearning-backend/models"
	"github.com/vnkhanh/elearning-backend/store"
)

func ok(c *gin.Context, message string, data any) {
	if data == nil {
		c.JSON(http.StatusOK, gin.H{"message": message})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "data": data})
}

func badRequest(c *gin.Context, message string, errs ...string) {
	body := gin.H{"message": message}
	if len(errs) > 0 {
		body["errors"] = errs
	}
	c.JSON(http.StatusBadRequest, body)
}

// respondError: id sai hoặc không tìm thấy là 404, còn lại log rồi trả 500.
func (h *Controller) respondError(c *gin.Context, err error, notFound string) {
	if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrInvalidID) {
		c.JSON(http.StatusNotFound, gin.H{"message": notFound})
		return
	}
	h.log.Error("request failed", "error", err, "method", c.Request.Method, "path", c.FullPath())
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
}

// logCascade ghi lại lỗi dọn tham chiếu; bản ghi chính đã xoá nên vẫn trả thành công.
func (h *Controller) logCascade(err error) bool {
	var cascadeErr *store.CascadeError
	if errors.As(err, &cascadeErr) {
		h.log.Warn("cascade cleanup incomplete", "entity", cascadeErr.Entity, "id", cascadeErr.ID, "error", cascadeErr.Err)
		return true
	}
	return false
}

// removeFile xoá file cũ, lỗi chỉ được log. Ảnh mặc định không bao giờ bị xoá.
func (h *Controller) removeFile(ctx context.Context, folder, ref string) {
	if ref == "" || ref == models.DefaultPhoto {
		return
	}
	if err := h.files.Delete(ctx, folder, ref); err != nil {
		h.log.Warn("delete file failed", "error", err, "folder", folder, "ref", ref)
	}
}

func currentUser(c *gin.Context) middleware.Identity {
	id, _ := middleware.CurrentUser(c)
	return id
}

type courseResponse struct {
	models.Course
	ThumbnailURL  string `json:"thumbnail_url"`
	TotalStudents int    `json:"total_students"`
}

type studentResponse struct {
	models.User
	PhotoURL string `json:"photo_url"`
}

func (h *Controller) toCourseResponse(course models.Course) courseResponse {
	return courseResponse{
		Course:        course,
		ThumbnailURL:  h.files.URL(courseFolder, course.Thumbnail),
		TotalStudents: len(course.Students),
	}
}

func (h *Controller) toCourseResponses(courses []models.Course) []courseResponse {
	out := make([]courseResponse, 0, len(courses))
	for _, course := range courses {
		out = append(out, h.toCourseResponse(course))
	}
	return out
}

func (h *Controller) toStudentResponse(user models.User) studentResponse {
	return studentResponse{User: user, PhotoURL: h.files.URL(studentFolder, user.Photo)}
}

func (h *Controller) toStudentResponses(users []models.User) []studentResponse {
	out := make([]studentResponse, 0, len(users))
	for _, user := range users {
		out = append(out, h.toStudentResponse(user))
	}
	return out
}
