package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vnkhanh/elearning-backend/controllers"
	"github.com/vnkhanh/elearning-backend/logger"
	"github.com/vnkhanh/elearning-backend/middleware"
	"github.com/vnkhanh/elearning-backend/models"
	"github.com/vnkhanh/elearning-backend/services"
	"github.com/vnkhanh/elearning-backend/store"
	"github.com/vnkhanh/elearning-backend/utils"
	"github.com/vnkhanh/elearning-backend/ws"
)

type fakePayment struct {
	mu   sync.Mutex
	reqs []services.PaymentRequest
	// failures: số lần gọi đầu tiên trả lỗi.
	failures int
}

func (f *fakePayment) CreatePayment(_ context.Context, req services.PaymentRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reqs = append(f.reqs, req)
	if f.failures > 0 {
		f.failures--
		return "", errors.New("gateway unavailable")
	}
	return "https://pay.example/" + req.OrderID, nil
}

type testApp struct {
	router    *gin.Engine
	store     *store.Store
	tokens    *utils.TokenManager
	payment   *fakePayment
	uploadDir string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	require.NoError(t, store.AutoMigrate(db))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	log := logger.NewNop()
	st := store.New(db)
	uploadDir := t.TempDir()
	files := utils.NewLocalStorage(uploadDir, "http://localhost:3000")
	tokens := utils.NewTokenManager("test-secret", time.Hour)
	hub := ws.NewHub(log)
	payment := &fakePayment{}

	h := controllers.New(controllers.Options{
		Store:            st,
		Files:            files,
		Tokens:           tokens,
		Payment:          payment,
		Hub:              hub,
		Log:              log,
		SignupPrice:      280000,
		PaymentFinishURL: "http://localhost:5173/success-checkout",
		PasswordCost:     bcrypt.MinCost,
	})

	r := SetupRouter(Dependencies{
		Controller: h,
		Store:      st,
		Tokens:     tokens,
		Files:      files,
		Hub:        hub,
		Limiter:    middleware.NewRateLimiter(nil),
		Log:        log,
		UploadDir:  files.Root(),
	})
	return &testApp{router: r, store: st, tokens: tokens, payment: payment, uploadDir: uploadDir}
}

type response struct {
	Code int
	Body map[string]any
}

func (a *testApp) do(t *testing.T, method, path, token string, body io.Reader, contentType string) response {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "JWT "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	res := response{Code: w.Code}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res.Body), w.Body.String())
	}
	return res
}

func (a *testApp) json(t *testing.T, method, path, token string, payload any) response {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return a.do(t, method, path, token, bytes.NewReader(raw), "application/json")
}

type upload struct {
	field, filename, contentType string
}

func (a *testApp) multipart(t *testing.T, method, path, token string, fields map[string]string, file *upload) response {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, file.field, file.filename))
		h.Set("Content-Type", file.contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write([]byte("image-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return a.do(t, method, path, token, &body, w.FormDataContentType())
}

// manager tạo manager đã thanh toán và trả token.
func (a *testApp) manager(t *testing.T, email string) (*models.User, string) {
	t.Helper()
	ctx := context.Background()
	hashed, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	u := &models.User{Name: "Manager " + email, Email: email, Password: string(hashed), Role: models.RoleManager, Photo: models.DefaultPhoto}
	require.NoError(t, a.store.CreateUser(ctx, u))
	require.NoError(t, a.store.CreateTransaction(ctx, &models.Transaction{UserID: u.ID, Price: 280000, Status: models.TransactionSuccess}))

	token, err := a.tokens.Generate(u.ID)
	require.NoError(t, err)
	return u, token
}

func (a *testApp) category(t *testing.T, token, name string) string {
	t.Helper()
	res := a.json(t, http.MethodPost, "/api/categories", token, map[string]string{"name": name})
	require.Equal(t, http.StatusOK, res.Code, res.Body)
	return data(res)["id"].(string)
}

func (a *testApp) course(t *testing.T, token, categoryID, name string) string {
	t.Helper()
	res := a.multipart(t, http.MethodPost, "/api/courses", token, courseFields(categoryID, name),
		&upload{field: "thumbnail", filename: "cover.png", contentType: "image/png"})
	require.Equal(t, http.StatusOK, res.Code, res.Body)
	return data(res)["id"].(string)
}

func courseFields(categoryID, name string) map[string]string {
	return map[string]string{
		"name":        name,
		"categoryId":  categoryID,
		"tagline":     "Learn it fast",
		"description": "A course long enough to describe",
	}
}

func data(res response) map[string]any {
	d, _ := res.Body["data"].(map[string]any)
	return d
}

func list(res response) []any {
	l, _ := res.Body["data"].([]any)
	return l
}

func TestSignUpThenSignInAfterPayment(t *testing.T) {
	app := newTestApp(t)
	creds := map[string]string{"email": "owner@example.com", "password": "secret"}

	res := app.json(t, http.MethodPost, "/api/sign-up", "", map[string]string{
		"name": "Course Owner", "email": "owner@example.com", "password": "secret",
	})
	require.Equal(t, http.StatusOK, res.Code, res.Body)
	require.Len(t, app.payment.reqs, 1)
	req := app.payment.reqs[0]
	assert.EqualValues(t, 280000, req.Amount)
	assert.Equal(t, "owner@example.com", req.Email)
	assert.Equal(t, "https://pay.example/"+req.OrderID, data(res)["midtrans_payment_url"])

	res = app.json(t, http.MethodPost, "/api/sign-in", "", creds)
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "User not verified", res.Body["message"])

	res = app.json(t, http.MethodPost, "/api/handle-payment-midtrans", "", map[string]string{
		"order_id": req.OrderID, "transaction_status": "settlement",
	})
	require.Equal(t, http.StatusOK, res.Code)

	res = app.json(t, http.MethodPost, "/api/sign-in", "", creds)
	require.Equal(t, http.StatusOK, res.Code, res.Body)
	assert.Equal(t, "manager", data(res)["role"])
	assert.NotEmpty(t, data(res)["token"])

	res = app.json(t, http.MethodPost, "/api/sign-in", "", map[string]string{"email": "owner@example.com", "password": "wrong-pass"})
	assert.Equal(t, http.StatusBadRequest, res.Code)

	res = app.json(t, http.MethodPost, "/api/sign-up", "", map[string]string{
		"name": "Course Owner", "email": "owner@example.com", "password": "secret",
	})
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "Email already used", res.Body["message"])
}

func TestSignUp_GatewayFailureKeepsEmailFree(t *testing.T) {
	app := newTestApp(t)
	app.payment.failures = 1
	body := map[string]string{"name": "Course Owner", "email": "owner@example.com", "password": "secret"}

	res := app.json(t, http.MethodPost, "/api/sign-up", "", body)
	require.Equal(t, http.StatusInternalServerError, res.Code)
	assert.EqualValues(t, 0, countOf(t, app.store, &models.User{}))
	assert.EqualValues(t, 0, countOf(t, app.store, &models.Transaction{}))

	res = app.json(t, http.MethodPost, "/api/sign-up", "", body)
	require.Equal(t, http.StatusOK, res.Code, res.Body)
	require.Len(t, app.payment.reqs, 2)
	orderID := app.payment.reqs[1].OrderID
	assert.Equal(t, "https://pay.example/"+orderID, data(res)["midtrans_payment_url"])

	res = app.json(t, http.MethodPost, "/api/handle-payment-midtrans", "", map[string]string{
		"order_id": orderID, "transaction_status": "settlement",
	})
	require.Equal(t, http.StatusOK, res.Code)

	res = app.json(t, http.MethodPost, "/api/sign-in", "", map[string]string{"email": "owner@example.com", "password": "secret"})
	require.Equal(t, http.StatusOK, res.Code, res.Body)
}

func countOf(t *testing.T, st *store.Store, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, st.DB().Model(model).Count(&n).Error)
	return n
}

func TestSignUp_Validation(t *testing.T) {
	app := newTestApp(t)

	res := app.json(t, http.MethodPost, "/api/sign-up", "", map[string]string{"name": "abc", "email": "bad"})
	require.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "Invalid Request", res.Body["message"])
	assert.Len(t, res.Body["errors"], 3)
	assert.Empty(t, app.payment.reqs)
}

func TestPaymentWebhook(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	user, _ := app.manager(t, "m@example.com")
	tx := &models.Transaction{UserID: user.ID, Price: 280000}
	require.NoError(t, app.store.CreateTransaction(ctx, tx))

	status := func() models.TransactionStatus {
		var got models.Transaction
		require.NoError(t, app.store.DB().First(&got, "id = ?", tx.ID).Error)
		return got.Status
	}

	// order không tồn tại: vẫn thành công, không đổi gì
	res := app.json(t, http.MethodPost, "/api/handle-payment-midtrans", "", map[string]string{
		"order_id": uuid.NewString(), "transaction_status": "settlement",
	})
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "Handle Payment Success", res.Body["message"])
	assert.Equal(t, models.TransactionPending, status())

	res = app.json(t, http.MethodPost, "/api/handle-payment-midtrans", "", map[string]string{
		"order_id": tx.ID.String(), "transaction_status": "pending",
	})
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, models.TransactionPending, status())

	res = app.json(t, http.MethodPost, "/api/handle-payment-midtrans", "", map[string]string{
		"order_id": tx.ID.String(), "transaction_status": "expire",
	})
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, models.TransactionFailed, status())
}

func TestDeleteCourseRemovesItFromCategory(t *testing.T) {
	app := newTestApp(t)
	_, token := app.manager(t, "m@example.com")

	categoryID := app.category(t, token, "Programming")
	courseID := app.course(t, token, categoryID, "Golang Basics")

	res := app.do(t, http.MethodGet, "/api/categories/"+categoryID, token, nil, "")
	require.Equal(t, http.StatusOK, res.Code)
	courses := data(res)["courses"].([]any)
	require.Len(t, courses, 1)
	assert.Equal(t, courseID, courses[0].(map[string]any)["id"])
	assert.Equal(t, "programming", data(res)["slug"])

	res = app.do(t, http.MethodGet, "/api/courses/"+courseID, token, nil, "")
	require.Equal(t, http.StatusOK, res.Code)
	thumbnail := data(res)["thumbnail"].(string)
	assert.Equal(t, "http://localhost:3000/uploads/courses/"+thumbnail, data(res)["thumbnail_url"])
	_, err := os.Stat(filepath.Join(app.uploadDir, "courses", thumbnail))
	require.NoError(t, err)

	res = app.do(t, http.MethodDelete, "/api/courses/"+courseID, token, nil, "")
	require.Equal(t, http.StatusOK, res.Code)

	res = app.do(t, http.MethodGet, "/api/categories/"+categoryID, token, nil, "")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Nil(t, data(res)["courses"])

	_, err = os.Stat(filepath.Join(app.uploadDir, "courses", thumbnail))
	assert.True(t, os.IsNotExist(err))

	res = app.do(t, http.MethodGet, "/api/courses/"+courseID, token, nil, "")
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestPostCourse_UploadRules(t *testing.T) {
	app := newTestApp(t)
	_, token := app.manager(t, "m@example.com")
	categoryID := app.category(t, token, "Programming")

	res := app.multipart(t, http.MethodPost, "/api/courses", token, courseFields(categoryID, "Golang Basics"), nil)
	assert.Equal(t, http.StatusBadRequest, res.Code)

	res = app.multipart(t, http.MethodPost, "/api/courses", token, courseFields(categoryID, "Golang Basics"),
		&upload{field: "thumbnail", filename: "notes.pdf", contentType: "application/pdf"})
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "File type not allowed", res.Body["message"])

	// category không tồn tại: file vừa upload bị dọn
	res = app.multipart(t, http.MethodPost, "/api/courses", token, courseFields(uuid.NewString(), "Golang Basics"),
		&upload{field: "thumbnail", filename: "cover.jpg", contentType: "image/jpeg"})
	assert.Equal(t, http.StatusNotFound, res.Code)
	entries, _ := os.ReadDir(filepath.Join(app.uploadDir, "courses"))
	assert.Empty(t, entries)
}

func TestUpdateCourse_ReplacesThumbnail(t *testing.T) {
	app := newTestApp(t)
	_, token := app.manager(t, "m@example.com")
	categoryID := app.category(t, token, "Programming")
	designID := app.category(t, token, "Design")
	courseID := app.course(t, token, categoryID, "Golang Basics")

	res := app.do(t, http.MethodGet, "/api/courses/"+courseID, token, nil, "")
	oldThumbnail := data(res)["thumbnail"].(string)

	res = app.multipart(t, http.MethodPut, "/api/courses/"+courseID, token, courseFields(designID, "Golang Advanced"),
		&upload{field: "thumbnail", filename: "new.png", contentType: "image/png"})
	require.Equal(t, http.StatusOK, res.Code, res.Body)
	assert.Equal(t, "Golang Advanced", data(res)["name"])
	assert.NotEqual(t, oldThumbnail, data(res)["thumbnail"])
	assert.Equal(t, "Design", data(res)["category"].(map[string]any)["name"])

	_, err := os.Stat(filepath.Join(app.uploadDir, "courses", oldThumbnail))
	assert.True(t, os.IsNotExist(err))

	res = app.do(t, http.MethodGet, "/api/categories/"+categoryID, token, nil, "")
	assert.Nil(t, data(res)["courses"])
}

func TestUpdateCourse_ReloadFailureKeepsNewThumbnail(t *testing.T) {
	app := newTestApp(t)
	_, token := app.manager(t, "m@example.com")
	categoryID := app.category(t, token, "Programming")
	courseID := app.course(t, token, categoryID, "Golang Basics")

	// Sau khi cập nhật courses, mọi truy vấn đọc tiếp theo đều lỗi.
	failReads := false
	db := app.store.DB()
	require.NoError(t, db.Callback().Update().After("gorm:update").Register("test:arm_read_failure", func(tx *gorm.DB) {
		if tx.Error == nil && tx.Statement.Table == "courses" {
			failReads = true
		}
	}))
	require.NoError(t, db.Callback().Query().Before("gorm:query").Register("test:read_failure", func(tx *gorm.DB) {
		if failReads {
			_ = tx.AddError(errors.New("connection reset"))
		}
	}))

	res := app.multipart(t, http.MethodPut, "/api/courses/"+courseID, token, courseFields(categoryID, "Golang Advanced"),
		&upload{field: "thumbnail", filename: "new.png", contentType: "image/png"})
	require.Equal(t, http.StatusOK, res.Code, res.Body)
	newThumbnail := data(res)["thumbnail"].(string)
	assert.Equal(t, "Golang Advanced", data(res)["name"])

	failReads = false
	_, err := os.Stat(filepath.Join(app.uploadDir, "courses", newThumbnail))
	assert.NoError(t, err)

	var stored models.Course
	require.NoError(t, db.First(&stored, "id = ?", courseID).Error)
	assert.Equal(t, newThumbnail, stored.Thumbnail)
}

func TestCourseContents(t *testing.T) {
	app := newTestApp(t)
	_, token := app.manager(t, "m@example.com")
	courseID := app.course(t, token, app.category(t, token, "Programming"), "Golang Basics")

	res := app.json(t, http.MethodPost, "/api/courses/contents", token, map[string]string{
		"title": "Intro video", "type": "video", "courseId": courseID,
	})
	require.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, []any{"youtubeId is required when type is video"}, res.Body["errors"])

	res = app.json(t, http.MethodPost, "/api/courses/contents", token, map[string]string{
		"title": "Intro video", "type": "video", "youtubeId": "dQw4w9WgXcQ", "courseId": uuid.NewString(),
	})
	assert.Equal(t, http.StatusNotFound, res.Code)

	res = app.json(t, http.MethodPost, "/api/courses/contents", token, map[string]string{
		"title": "Intro video", "type": "video", "youtubeId": "dQw4w9WgXcQ", "courseId": courseID,
	})
	require.Equal(t, http.StatusOK, res.Code, res.Body)
	contentID := data(res)["id"].(string)

	res = app.json(t, http.MethodPut, "/api/courses/contents/"+contentID, token, map[string]string{
		"title": "Intro reading", "type": "text", "text": "Welcome aboard", "courseId": courseID,
	})
	require.Equal(t, http.StatusOK, res.Code, res.Body)
	assert.Equal(t, "text", data(res)["type"])
	assert.Nil(t, data(res)["youtubeId"])

	res = app.do(t, http.MethodGet, "/api/courses/"+courseID+"?preview=true", token, nil, "")
	require.Equal(t, http.StatusOK, res.Code)
	require.Len(t, data(res)["details"], 1)

	res = app.do(t, http.MethodDelete, "/api/courses/contents/"+contentID, token, nil, "")
	require.Equal(t, http.StatusOK, res.Code)

	res = app.do(t, http.MethodGet, "/api/courses/"+courseID+"?preview=true", token, nil, "")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Nil(t, data(res)["details"])

	res = app.do(t, http.MethodGet, "/api/courses/contents/"+contentID, token, nil, "")
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestStudentsAndEnrollment(t *testing.T) {
	app := newTestApp(t)
	_, token := app.manager(t, "m@example.com")
	courseID := app.course(t, token, app.category(t, token, "Programming"), "Golang Basics")

	res := app.multipart(t, http.MethodPost, "/api/students", token, map[string]string{
		"name": "Student One", "email": "student@example.com", "password": "secret",
	}, nil)
	require.Equal(t, http.StatusOK, res.Code, res.Body)

	res = app.do(t, http.MethodGet, "/api/students", token, nil, "")
	require.Equal(t, http.StatusOK, res.Code)
	students := list(res)
	require.Len(t, students, 1)
	student := students[0].(map[string]any)
	studentID := student["id"].(string)
	assert.True(t, strings.HasSuffix(student["photo_url"].(string), "/uploads/students/default.png"))
	assert.NotContains(t, student, "password")

	res = app.json(t, http.MethodPost, "/api/courses/students/"+courseID, token, map[string]string{"studentId": studentID})
	require.Equal(t, http.StatusOK, res.Code, res.Body)
	res = app.json(t, http.MethodPost, "/api/courses/students/"+courseID, token, map[string]string{"studentId": studentID})
	require.Equal(t, http.StatusOK, res.Code)

	res = app.do(t, http.MethodGet, "/api/courses/students/"+courseID, token, nil, "")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Len(t, data(res)["students"], 1)

	// học viên đăng nhập không cần giao dịch
	res = app.json(t, http.MethodPost, "/api/sign-in", "", map[string]string{"email": "student@example.com", "password": "secret"})
	require.Equal(t, http.StatusOK, res.Code, res.Body)
	studentToken := data(res)["token"].(string)

	res = app.do(t, http.MethodGet, "/api/students-courses", studentToken, nil, "")
	require.Equal(t, http.StatusOK, res.Code)
	require.Len(t, list(res), 1)

	res = app.do(t, http.MethodGet, "/api/overviews", token, nil, "")
	require.Equal(t, http.StatusOK, res.Code)
	assert.EqualValues(t, 1, data(res)["totalCourses"])
	assert.EqualValues(t, 1, data(res)["totalStudents"])

	res = app.json(t, http.MethodPut, "/api/courses/students/"+courseID, token, map[string]string{"studentId": studentID})
	require.Equal(t, http.StatusOK, res.Code)
	res = app.do(t, http.MethodGet, "/api/students-courses", studentToken, nil, "")
	assert.Empty(t, list(res))

	res = app.do(t, http.MethodDelete, "/api/students/"+studentID, token, nil, "")
	require.Equal(t, http.StatusOK, res.Code)

	// token của user đã bị xoá
	res = app.do(t, http.MethodGet, "/api/students-courses", studentToken, nil, "")
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "Token expired", res.Body["message"])
}

func TestUpdateStudent(t *testing.T) {
	app := newTestApp(t)
	_, token := app.manager(t, "m@example.com")

	res := app.multipart(t, http.MethodPost, "/api/students", token, map[string]string{
		"name": "Student One", "email": "student@example.com", "password": "secret",
	}, &upload{field: "avatar", filename: "me.png", contentType: "image/png"})
	require.Equal(t, http.StatusOK, res.Code, res.Body)

	res = app.do(t, http.MethodGet, "/api/students", token, nil, "")
	student := list(res)[0].(map[string]any)
	oldPhoto := student["photo"].(string)
	require.NotEqual(t, models.DefaultPhoto, oldPhoto)

	res = app.multipart(t, http.MethodPut, "/api/students/"+student["id"].(string), token, map[string]string{
		"name": "Student Renamed", "email": "student@example.com",
	}, &upload{field: "avatar", filename: "new.jpg", contentType: "image/jpeg"})
	require.Equal(t, http.StatusOK, res.Code, res.Body)

	res = app.do(t, http.MethodGet, "/api/students/"+student["id"].(string), token, nil, "")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "Student Renamed", data(res)["name"])
	_, err := os.Stat(filepath.Join(app.uploadDir, "students", oldPhoto))
	assert.True(t, os.IsNotExist(err))

	// mật khẩu cũ vẫn dùng được
	res = app.json(t, http.MethodPost, "/api/sign-in", "", map[string]string{"email": "student@example.com", "password": "secret"})
	assert.Equal(t, http.StatusOK, res.Code)
}

func TestManagerScoping(t *testing.T) {
	app := newTestApp(t)
	_, owner := app.manager(t, "owner@example.com")
	_, other := app.manager(t, "other@example.com")
	courseID := app.course(t, owner, app.category(t, owner, "Programming"), "Golang Basics")

	res := app.do(t, http.MethodGet, "/api/courses/"+courseID, other, nil, "")
	assert.Equal(t, http.StatusNotFound, res.Code)

	res = app.do(t, http.MethodDelete, "/api/courses/"+courseID, other, nil, "")
	assert.Equal(t, http.StatusNotFound, res.Code)

	res = app.do(t, http.MethodGet, "/api/courses", other, nil, "")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Empty(t, list(res))

	res = app.do(t, http.MethodGet, "/api/courses/not-a-uuid", owner, nil, "")
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestAuthRequired(t *testing.T) {
	app := newTestApp(t)

	res := app.do(t, http.MethodGet, "/api/courses", "", nil, "")
	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Equal(t, "Unauthorized", res.Body["message"])

	res = app.do(t, http.MethodGet, "/api/courses", "forged", nil, "")
	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Equal(t, "Invalid or expired token", res.Body["message"])
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)
	res := app.do(t, http.MethodGet, "/health", "", nil, "")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "ok", res.Body["status"])
}
