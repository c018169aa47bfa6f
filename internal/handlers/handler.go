package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"todoapp/internal/logger"
	"todoapp/internal/service"
	"todoapp/internal/web"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services     *service.Service
	log          *logger.Logger
	cookieSecure bool
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, cookieSecure bool) *Handler {
	return &Handler{services: services, log: log, cookieSecure: cookieSecure}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.SetHTMLTemplate(web.Templates())
	router.StaticFS("/static", web.Static())

	// Health endpoint
	router.GET("/health", h.health)

	// Public auth endpoints
	h.registerAuthRoutes(router)

	// Protected todo endpoints
	h.registerTodoRoutes(router)

	router.NoRoute(h.notFound)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	r.GET("/login", h.loginPage)
	r.POST("/login", h.login)
	r.GET("/signup", h.signupPage)
	r.POST("/signup", h.signup)
	r.GET("/logout", h.logout)
}

func (h *Handler) registerTodoRoutes(r *gin.Engine) {
	protected := r.Group("/", h.sessionMiddleware)
	{
		protected.GET("", h.listTodos)
		todos := protected.Group("/todos")
		{
			todos.POST("", h.createTodo)
			todos.GET("/:id", h.getTodo)
			todos.GET("/:id/edit", h.editTodoForm)
			todos.PUT("/:id", h.updateTodo)
			todos.POST("/:id/toggle", h.toggleTodo)
			todos.DELETE("/:id", h.deleteTodo)
		}
	}
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) notFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "not_found.html", nil)
}
