package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/vnkhanh/elearning-backend/controllers"
	"github.com/vnkhanh/elearning-backend/logger"
	"github.com/vnkhanh/elearning-backend/middleware"
	"github.com/vnkhanh/elearning-backend/store"
	"github.com/vnkhanh/elearning-backend/utils"
	"github.com/vnkhanh/elearning-backend/ws"
)

type Dependencies struct {
	Controller     *controllers.Controller
	Store          *store.Store
	Tokens         *utils.TokenManager
	Files          utils.FileStorage
	Hub            *ws.Hub
	Limiter        *middleware.RateLimiter
	Log            *logger.Logger
	AllowedOrigins []string
	// UploadDir được phục vụ ở /uploads khi lưu file trên đĩa.
	UploadDir   string
	Tracing     bool
	ServiceName string
}

func SetupRouter(d Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(d.Log))
	if d.Tracing {
		r.Use(otelgin.Middleware(d.ServiceName))
	}

	//Bật CORS
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(d.AllowedOrigins) == 0 || (len(d.AllowedOrigins) == 1 && d.AllowedOrigins[0] == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = d.AllowedOrigins
		corsCfg.AllowCredentials = true
	}
	r.Use(cors.New(corsCfg))

	if d.UploadDir != "" {
		r.Static("/uploads", d.UploadDir)
	}

	h := d.Controller
	r.GET("/health", h.HealthCheck)
	r.GET("/ws/transactions", d.Hub.HandleTransactionWebSocket(d.Tokens))

	api := r.Group("/api")

	api.POST("/sign-up", d.Limiter.Limit("sign-up", 10, time.Minute), middleware.ValidateRequest[controllers.SignUpInput](), h.SignUp)
	api.POST("/sign-in", d.Limiter.Limit("sign-in", 10, time.Minute), middleware.ValidateRequest[controllers.SignInInput](), h.SignIn)
	api.POST("/handle-payment-midtrans", h.HandlePayment)

	private := api.Group("")
	private.Use(middleware.Auth(d.Tokens, d.Store, d.Log))
	{
		thumbnail := middleware.Upload(d.Files, "thumbnail", "courses", d.Log)
		avatar := middleware.Upload(d.Files, "avatar", "students", d.Log)

		private.GET("/categories", h.GetCategories)
		private.GET("/categories/:id", h.GetCategoryByID)
		private.POST("/categories", middleware.ValidateRequest[controllers.CategoryInput](), h.PostCategory)

		// Nội dung và học viên của khoá học; đăng ký trước /courses/:id
		private.GET("/courses/contents/:id", h.GetContentByID)
		private.POST("/courses/contents", middleware.ValidateRequest[controllers.ContentInput](), h.PostContent)
		private.PUT("/courses/contents/:id", middleware.ValidateRequest[controllers.ContentInput](), h.UpdateContent)
		private.DELETE("/courses/contents/:id", h.DeleteContent)

		private.GET("/courses/students/:id", h.GetStudentsByCourseID)
		private.POST("/courses/students/:id", middleware.ValidateRequest[controllers.StudentIDInput](), h.PostStudentToCourse)
		private.PUT("/courses/students/:id", middleware.ValidateRequest[controllers.StudentIDInput](), h.DeleteStudentFromCourse)

		private.GET("/courses", h.GetCourses)
		private.GET("/courses/:id", h.GetCourseByID)
		private.POST("/courses", middleware.ValidateRequest[controllers.CourseInput](), thumbnail, h.PostCourse)
		private.PUT("/courses/:id", middleware.ValidateRequest[controllers.CourseInput](), thumbnail, h.UpdateCourse)
		private.DELETE("/courses/:id", h.DeleteCourse)

		private.GET("/students", h.GetStudents)
		private.GET("/students/:id", h.GetStudentByID)
		private.POST("/students", middleware.ValidateRequest[controllers.StudentInput](), avatar, h.PostStudent)
		private.PUT("/students/:id", middleware.ValidateRequest[controllers.StudentUpdateInput](), avatar, h.UpdateStudent)
		private.DELETE("/students/:id", h.DeleteStudent)

		private.GET("/students-courses", h.GetStudentCourses)
		private.GET("/overviews", h.GetOverviews)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
	})

	return r
}
