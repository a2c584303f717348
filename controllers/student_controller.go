package controllers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/elearning-backend/middleware"
	"github.com/vnkhanh/elearning-backend/models"
	"github.com/vnkhanh/elearning-backend/store"
)

type StudentInput struct {
	Name     string `json:"name" form:"name" validate:"required,min=5"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=5"`
}

type StudentUpdateInput struct {
	Name     string `json:"name" form:"name" validate:"required,min=5"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"omitempty,min=5"`
}

func (h *Controller) GetStudents(c *gin.Context) {
	students, err := h.store.ListStudents(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		h.respondError(c, err, "")
		return
	}
	ok(c, "Get Student success", h.toStudentResponses(students))
}

func (h *Controller) GetStudentByID(c *gin.Context) {
	id, err := store.ParseID(c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Student not found")
		return
	}
	student, err := h.store.GetStudent(c.Request.Context(), currentUser(c).ID, id)
	if err != nil {
		h.respondError(c, err, "Student not found")
		return
	}
	ok(c, "Get Student Detail success", h.toStudentResponse(*student))
}

// PostStudent tạo học viên thuộc manager hiện tại; không có avatar thì dùng ảnh mặc định.
func (h *Controller) PostStudent(c *gin.Context) {
	input := middleware.Payload[StudentInput](c)
	manager := currentUser(c)

	hashed, err := h.hashPassword(input.Password)
	if err != nil {
		h.respondError(c, err, "")
		return
	}

	photo := models.DefaultPhoto
	if file := middleware.UploadedFileFrom(c); file != nil {
		photo = file.Ref
	}

	student := &models.User{
		Name:      strings.TrimSpace(input.Name),
		Email:     strings.ToLower(strings.TrimSpace(input.Email)),
		Password:  hashed,
		Photo:     photo,
		Role:      models.RoleStudent,
		ManagerID: &manager.ID,
	}
	if err := h.store.CreateUser(c.Request.Context(), student); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			badRequest(c, "Email already used")
			return
		}
		h.respondError(c, err, "")
		return
	}

	h.sendWelcomeEmail(student.Email, student.Name, manager.Name)
	ok(c, "Create student success", nil)
}

func (h *Controller) UpdateStudent(c *gin.Context) {
	input := middleware.Payload[StudentUpdateInput](c)
	ctx := c.Request.Context()

	id, err := store.ParseID(c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Student not found")
		return
	}
	student, err := h.store.GetStudent(ctx, currentUser(c).ID, id)
	if err != nil {
		h.respondError(c, err, "Student not found")
		return
	}

	fields := map[string]any{
		"name":  strings.TrimSpace(input.Name),
		"email": strings.ToLower(strings.TrimSpace(input.Email)),
	}
	if input.Password != "" {
		hashed, err := h.hashPassword(input.Password)
		if err != nil {
			h.respondError(c, err, "")
			return
		}
		fields["password"] = hashed
	}
	file := middleware.UploadedFileFrom(c)
	if file != nil {
		fields["photo"] = file.Ref
	}

	if err := h.store.UpdateUser(ctx, student.ID, fields); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			badRequest(c, "Email already used")
			return
		}
		h.respondError(c, err, "Student not found")
		return
	}
	if file != nil {
		h.removeFile(ctx, studentFolder, student.Photo)
	}
	ok(c, "Update student success", nil)
}

func (h *Controller) DeleteStudent(c *gin.Context) {
	ctx := c.Request.Context()
	id, err := store.ParseID(c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Student not found")
		return
	}

	student, err := h.store.DeleteStudent(ctx, currentUser(c).ID, id)
	if err != nil && !h.logCascade(err) {
		h.respondError(c, err, "Student not found")
		return
	}
	h.removeFile(ctx, studentFolder, student.Photo)

	ok(c, "Delete student success", nil)
}

// GetStudentCourses trả các khoá học mà user hiện tại đã ghi danh.
func (h *Controller) GetStudentCourses(c *gin.Context) {
	courses, err := h.store.ListStudentCourses(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		h.respondError(c, err, "User not found")
		return
	}
	ok(c, "Get Student Courses success", h.toCourseResponses(courses))
}

// Gửi mail nền, lỗi chỉ log
func (h *Controller) sendWelcomeEmail(to, name, managerName string) {
	if h.mailer == nil {
		return
	}
	subject := "Your student account is ready"
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>%s has created a student account for you. Sign in with this email to start learning.</p>",
		name, managerName,
	)
	go func() {
		if err := h.mailer.Send(to, subject, body); err != nil {
			h.log.Warn("send welcome email failed", "error", err)
		}
	}()
}
