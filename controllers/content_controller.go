package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vnkhanh/elearning-backend/middleware"
	"github.com/vnkhanh/elearning-backend/models"
	"github.com/vnkhanh/elearning-backend/store"
)

type ContentInput struct {
	Title     string `json:"title" form:"title" validate:"required,min=5"`
	Type      string `json:"type" form:"type" validate:"required,oneof=video text"`
	YoutubeID string `json:"youtubeId" form:"youtubeId" validate:"required_if=Type video"`
	Text      string `json:"text" form:"text" validate:"required_if=Type text"`
	CourseID  string `json:"courseId" form:"courseId" validate:"required,uuid"`
}

func (in *ContentInput) apply(d *models.CourseDetail, courseID uuid.UUID) {
	d.Title = in.Title
	d.Type = models.ContentType(in.Type)
	d.YoutubeID = ""
	d.Text = ""
	if d.Type == models.ContentVideo {
		d.YoutubeID = in.YoutubeID
	} else {
		d.Text = in.Text
	}
	d.CourseID = courseID
}

func (h *Controller) GetContentByID(c *gin.Context) {
	id, err := store.ParseID(c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Content not found")
		return
	}
	detail, err := h.store.GetCourseDetail(c.Request.Context(), currentUser(c).ID, id)
	if err != nil {
		h.respondError(c, err, "Content not found")
		return
	}
	ok(c, "Get Detail Content Success", detail)
}

func (h *Controller) PostContent(c *gin.Context) {
	input := middleware.Payload[ContentInput](c)

	courseID, err := store.ParseID(input.CourseID)
	if err != nil {
		h.respondError(c, err, "Course not found")
		return
	}

	detail := &models.CourseDetail{}
	input.apply(detail, courseID)
	if err := h.store.CreateCourseDetail(c.Request.Context(), currentUser(c).ID, detail); err != nil {
		h.respondError(c, err, "Course not found")
		return
	}
	ok(c, "Create Content Success", detail)
}

func (h *Controller) UpdateContent(c *gin.Context) {
	input := middleware.Payload[ContentInput](c)
	ctx := c.Request.Context()
	managerID := currentUser(c).ID

	id, err := store.ParseID(c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Content not found")
		return
	}
	detail, err := h.store.GetCourseDetail(ctx, managerID, id)
	if err != nil {
		h.respondError(c, err, "Content not found")
		return
	}
	courseID, err := store.ParseID(input.CourseID)
	if err != nil {
		h.respondError(c, err, "Course not found")
		return
	}

	previousCourse := detail.CourseID
	input.apply(detail, courseID)
	if err := h.store.UpdateCourseDetail(ctx, managerID, detail, previousCourse); err != nil {
		h.respondError(c, err, "Course not found")
		return
	}
	ok(c, "Update Content Success", detail)
}

func (h *Controller) DeleteContent(c *gin.Context) {
	id, err := store.ParseID(c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Content not found")
		return
	}
	if _, err := h.store.DeleteCourseDetail(c.Request.Context(), currentUser(c).ID, id); err != nil && !h.logCascade(err) {
		h.respondError(c, err, "Content not found")
		return
	}
	ok(c, "Delete Content Success", nil)
}
