package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/elearning-backend/middleware"
	"github.com/vnkhanh/elearning-backend/models"
	"github.com/vnkhanh/elearning-backend/store"
)

type CourseInput struct {
	Name        string `json:"name" form:"name" validate:"required,min=5"`
	CategoryID  string `json:"categoryId" form:"categoryId" validate:"required,uuid"`
	Tagline     string `json:"tagline" form:"tagline" validate:"required,min=5"`
	Description string `json:"description" form:"description" validate:"required,min=10"`
}

func (h *Controller) GetCourses(c *gin.Context) {
	courses, err := h.store.ListCourses(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		h.respondError(c, err, "")
		return
	}
	ok(c, "Get Courses Success", h.toCourseResponses(courses))
}

// GetCourseByID: ?preview=true trả kèm nội dung khoá học.
func (h *Controller) GetCourseByID(c *gin.Context) {
	id, err := store.ParseID(c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Course not found")
		return
	}
	course, err := h.store.GetCourse(c.Request.Context(), currentUser(c).ID, id, c.Query("preview") == "true")
	if err != nil {
		h.respondError(c, err, "Course not found")
		return
	}
	ok(c, "Get Course Detail Success", h.toCourseResponse(*course))
}

func (h *Controller) PostCourse(c *gin.Context) {
	input := middleware.Payload[CourseInput](c)
	file := middleware.UploadedFileFrom(c)
	if file == nil {
		badRequest(c, "Invalid Request", "thumbnail is required")
		return
	}

	categoryID, err := store.ParseID(input.CategoryID)
	if err != nil {
		h.respondError(c, err, "Category not found")
		return
	}

	course := &models.Course{
		Name:        input.Name,
		Thumbnail:   file.Ref,
		CategoryID:  categoryID,
		Tagline:     input.Tagline,
		Description: input.Description,
		ManagerID:   currentUser(c).ID,
	}
	if err := h.store.CreateCourse(c.Request.Context(), course); err != nil {
		h.respondError(c, err, "Category not found")
		return
	}
	ok(c, "Create Course Success", h.toCourseResponse(*course))
}

// UpdateCourse ghi đè các trường; có thumbnail mới thì xoá thumbnail cũ.
func (h *Controller) UpdateCourse(c *gin.Context) {
	input := middleware.Payload[CourseInput](c)
	ctx := c.Request.Context()

	id, err := store.ParseID(c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Course not found")
		return
	}
	course, err := h.store.GetCourse(ctx, currentUser(c).ID, id, false)
	if err != nil {
		h.respondError(c, err, "Course not found")
		return
	}
	categoryID, err := store.ParseID(input.CategoryID)
	if err != nil {
		h.respondError(c, err, "Category not found")
		return
	}

	previousCategory := course.CategoryID
	oldThumbnail := course.Thumbnail

	course.Name = input.Name
	course.CategoryID = categoryID
	course.Tagline = input.Tagline
	course.Description = input.Description
	if file := middleware.UploadedFileFrom(c); file != nil {
		course.Thumbnail = file.Ref
	}

	if err := h.store.UpdateCourse(ctx, course, previousCategory); err != nil {
		h.respondError(c, err, "Category not found")
		return
	}
	if course.Thumbnail != oldThumbnail {
		h.removeFile(ctx, courseFolder, oldThumbnail)
	}

	// Bản ghi đã ghi xong: đọc lại lỗi thì vẫn trả thành công để không xoá mất thumbnail mới.
	updated, err := h.store.GetCourse(ctx, course.ManagerID, course.ID, false)
	if err != nil {
		h.log.Warn("reload updated course failed", "course_id", course.ID, "error", err)
		if course.CategoryID != previousCategory {
			course.Category = nil
		}
		updated = course
	}
	ok(c, "Update Course Success", h.toCourseResponse(*updated))
}

func (h *Controller) DeleteCourse(c *gin.Context) {
	ctx := c.Request.Context()
	id, err := store.ParseID(c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Course not found")
		return
	}

	course, err := h.store.DeleteCourse(ctx, currentUser(c).ID, id)
	if err != nil && !h.logCascade(err) {
		h.respondError(c, err, "Course not found")
		return
	}
	h.removeFile(ctx, courseFolder, course.Thumbnail)

	ok(c, "Delete Course Success", nil)
}

// ensureOwnedCourse trả 404 nếu khoá học không thuộc manager hiện tại.
func (h *Controller) ensureOwnedCourse(c *gin.Context, rawID string) (*models.Course, bool) {
	id, err := store.ParseID(rawID)
	if err == nil {
		var course *models.Course
		course, err = h.store.GetCourse(c.Request.Context(), currentUser(c).ID, id, false)
		if err == nil {
			return course, true
		}
	}
	if !errors.Is(err, store.ErrNotFound) && !errors.Is(err, store.ErrInvalidID) {
		h.respondError(c, err, "")
		return nil, false
	}
	h.respondError(c, store.ErrNotFound, "Course not found")
	return nil, false
}
