package middleware

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const payloadKey = "payload"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Báo lỗi theo tên field JSON
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// ValidateRequest bind body (JSON hoặc form/multipart) vào T và kiểm tra tag
// `validate` trước khi handler chạy. Handler lấy lại bằng Payload[T].
func ValidateRequest[T any]() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req T
		b := binding.Default(c.Request.Method, c.ContentType())
		if err := c.ShouldBindWith(&req, b); err != nil && !errors.Is(err, io.EOF) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"message": "Invalid Request",
				"errors":  []string{"malformed request body"},
			})
			return
		}

		if err := validate.Struct(&req); err != nil {
			var fieldErrs validator.ValidationErrors
			if errors.As(err, &fieldErrs) {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
					"message": "Invalid Request",
					"errors":  ValidationMessages(fieldErrs),
				})
				return
			}
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}

		c.Set(payloadKey, &req)
		c.Next()
	}
}

// Payload trả về body đã được ValidateRequest[T] kiểm tra.
func Payload[T any](c *gin.Context) *T {
	v, ok := c.Get(payloadKey)
	if !ok {
		return nil
	}
	req, _ := v.(*T)
	return req
}

// ValidationMessages đổi lỗi của validator thành câu dễ đọc cho client.
func ValidationMessages(errs validator.ValidationErrors) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, message(e))
	}
	return out
}

func message(e validator.FieldError) string {
	field := e.Field()
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "required_if":
		cond := strings.Fields(e.Param())
		if len(cond) == 2 {
			return fmt.Sprintf("%s is required when %s is %s", field, lowerFirst(cond[0]), cond[1])
		}
		return fmt.Sprintf("%s is required", field)
	case "min":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, e.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "max":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, e.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "uuid", "uuid4":
		return fmt.Sprintf("%s must be a valid id", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(e.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
