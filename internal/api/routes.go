package api

import (
	"alcyxob/gym-system/internal/apperr"
	"alcyxob/gym-system/internal/config"
	"alcyxob/gym-system/internal/domain"
	"alcyxob/gym-system/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrRouteNotFound is rendered for unknown paths.
var ErrRouteNotFound = apperr.New(apperr.KindNotFound, "error.routeNotFound")

// Dependencies carries everything the HTTP layer needs. Services not hosted
// by this process may be nil.
type Dependencies struct {
	Config          config.Config
	AuthService     service.AuthService
	UserService     service.UserService
	GymPassService  service.GymPassService
	TaskService     service.TaskService
	TrainingService service.TrainingService
	LoginLimiter    *LoginRateLimiter
}

func SetupRoutes(router *gin.Engine, deps Dependencies) {
	// ErrorHandler wraps everything after it, so it has to come before any
	// middleware that aborts.
	router.Use(RequestLogger(), MetricsMiddleware(), LocaleMiddleware(), ErrorHandler(), Recovery())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/metrics", metricsHandler())
	router.NoRoute(func(c *gin.Context) {
		abortWithError(c, ErrRouteNotFound)
	})

	authMiddleware := AuthMiddleware(deps.AuthService)
	cfg := deps.Config

	if cfg.HasService(config.ServiceUser) {
		registerUserRoutes(router, deps, authMiddleware)
	}
	if cfg.HasService(config.ServiceGymPass) {
		registerGymPassRoutes(router, deps, authMiddleware)
	}
	if cfg.HasService(config.ServiceTask) {
		registerTaskRoutes(router, deps, authMiddleware)
	}
	if cfg.HasService(config.ServiceTrainings) {
		registerTrainingRoutes(router, deps, authMiddleware)
	}
}

func registerUserRoutes(router *gin.Engine, deps Dependencies, authMiddleware gin.HandlerFunc) {
	authHandler := NewAuthHandler(deps.AuthService)
	userHandler := NewUserHandler(deps.AuthService, deps.UserService)

	limiter := deps.LoginLimiter
	if limiter == nil {
		limiter = NewLoginRateLimiter(deps.Config.RateLimit.LoginPerMinute, deps.Config.RateLimit.LoginBurst)
	}

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", limiter.Middleware(), authHandler.Login)
	}

	users := router.Group("/users")
	users.Use(authMiddleware)
	{
		users.GET("/me", userHandler.Me)
		users.GET("", RoleMiddleware(domain.RoleAdmin, domain.RoleManager), userHandler.List)
		users.GET("/:id", userHandler.Get)
		users.POST("", RoleMiddleware(domain.RoleAdmin), userHandler.Create)
		users.PUT("/:id", userHandler.Update)
		users.DELETE("/:id", RoleMiddleware(domain.RoleAdmin), userHandler.Delete)
	}
}

func registerGymPassRoutes(router *gin.Engine, deps Dependencies, authMiddleware gin.HandlerFunc) {
	h := NewGymPassHandler(deps.GymPassService)
	offerWriters := RoleMiddleware(domain.RoleManager, domain.RoleAdmin)

	offers := router.Group("/offer")
	{
		offers.GET("", h.ListOffers)
		offers.GET("/:id", h.GetOffer)
		offers.POST("", authMiddleware, offerWriters, h.CreateOffer)
		offers.PUT("/:id", authMiddleware, offerWriters, h.UpdateOffer)
		offers.DELETE("/:id", authMiddleware, offerWriters, h.DeleteOffer)
	}

	purchases := router.Group("/purchase")
	purchases.Use(authMiddleware)
	{
		// Ownership checks happen in the service.
		purchases.POST("", RoleMiddleware(domain.RoleUser), h.Purchase)
		purchases.GET("/status/:id", h.Status)
		purchases.GET("/user/:id", h.ListUserPasses)
		purchases.PUT("/:id/suspend/:date", RoleMiddleware(domain.RoleUser, domain.RoleAdmin), h.Suspend)
		purchases.PUT("/:id/entry", RoleMiddleware(domain.RoleEmployee, domain.RoleAdmin), h.RegisterEntry)
	}
}

func registerTaskRoutes(router *gin.Engine, deps Dependencies, authMiddleware gin.HandlerFunc) {
	h := NewTaskHandler(deps.TaskService)
	manager := RoleMiddleware(domain.RoleManager)
	employee := RoleMiddleware(domain.RoleEmployee)

	tasks := router.Group("/task")
	tasks.Use(authMiddleware)
	{
		tasks.POST("", manager, h.Create)
		tasks.GET("/manager", manager, h.ListForManager)
		tasks.GET("/employee", employee, h.ListForEmployee)
		tasks.GET("/:id", RoleMiddleware(domain.RoleManager, domain.RoleEmployee, domain.RoleAdmin), h.Get)
		tasks.PUT("/:id", manager, h.Update)
		tasks.DELETE("/:id", manager, h.Delete)
		tasks.PUT("/:id/approval/:status", employee, h.ChangeApproval)
		tasks.PUT("/:id/report", employee, h.SubmitReport)
		tasks.POST("/:id/report/attachment", employee, h.RequestAttachmentUpload)
		tasks.GET("/:id/report/attachment", RoleMiddleware(domain.RoleManager, domain.RoleEmployee), h.AttachmentDownloadURL)
		tasks.PUT("/:id/evaluation", manager, h.Evaluate)
	}
}

func registerTrainingRoutes(router *gin.Engine, deps Dependencies, authMiddleware gin.HandlerFunc) {
	h := NewTrainingHandler(deps.TrainingService)
	user := RoleMiddleware(domain.RoleUser)
	trainer := RoleMiddleware(domain.RoleTrainer)

	trainings := router.Group("/trainings/individual")
	trainings.Use(authMiddleware)
	{
		trainings.POST("", user, h.Create)
		trainings.GET("/user", user, h.ListForUser)
		trainings.GET("/trainer", trainer, h.ListForTrainer)
		trainings.GET("/:id", RoleMiddleware(domain.RoleUser, domain.RoleTrainer, domain.RoleAdmin), h.Get)
		trainings.PUT("/:id/accept", trainer, h.Accept())
		trainings.PUT("/:id/reject", trainer, h.Reject())
		trainings.DELETE("/:id/cancel", user, h.Cancel())
	}
}
