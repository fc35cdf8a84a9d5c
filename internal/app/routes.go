package app

import (
	"github.com/Diarra45/projet-Nan/internal/auth"
	"github.com/Diarra45/projet-Nan/internal/cache"
	"github.com/Diarra45/projet-Nan/internal/config"
	"github.com/Diarra45/projet-Nan/internal/handlers"
	"github.com/Diarra45/projet-Nan/internal/repo"
	"github.com/Diarra45/projet-Nan/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, db *pgxpool.Pool, rdb *redis.Client) {
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))

	tokens := auth.NewTokenManager(
		cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTTL.Duration(), cfg.JWT.RefreshTTL.Duration(),
	)
	revoked := auth.NewRevokedSet()
	taskCache := cache.NewTaskCache(rdb, cfg.Redis.DefaultTTL.Duration())

	userRepo := repo.NewPGUserRepo(db)
	adminRepo := repo.NewPGAdminRepo(db)
	groupRepo := repo.NewPGGroupRepo(db)
	taskRepo := repo.NewPGTaskRepo(db)
	pointRepo := repo.NewPGPointRepo(db)

	userSvc := service.NewUserService(userRepo, adminRepo, tokens, revoked)
	groupSvc := service.NewGroupService(groupRepo, taskRepo, pointRepo, taskCache)
	taskSvc := service.NewTaskService(taskRepo, groupRepo, taskCache)
	pointSvc := service.NewPointService(pointRepo, groupRepo)

	authHandler := handlers.NewAuthHandler(userSvc)
	groupHandler := handlers.NewGroupHandler(groupSvc)
	taskHandler := handlers.NewTaskHandler(taskSvc)
	pointHandler := handlers.NewPointHandler(pointSvc)

	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)
	r.POST("/refresh-token", authHandler.Refresh)

	protected := r.Group("", auth.RequireAuth(tokens, revoked))
	protected.POST("/logout", authHandler.Logout)
	protected.GET("/profile", authHandler.Profile)

	protected.POST("/group", groupHandler.Create)
	protected.GET("/groups", groupHandler.List)
	protected.POST("/group/join", groupHandler.Join)
	protected.GET("/group/:id", groupHandler.Get)
	protected.PUT("/group/:id", groupHandler.Update)
	protected.DELETE("/group/:id", groupHandler.Delete)
	protected.GET("/group/:id/members", groupHandler.Members)
	protected.DELETE("/group/:id/member/:memberId", groupHandler.RemoveMember)

	protected.POST("/task", taskHandler.Create)
	protected.GET("/tasks", taskHandler.ListMine)
	protected.GET("/tasks/personal", taskHandler.ListPersonal)
	protected.GET("/group/:id/tasks", taskHandler.ListForGroup)
	protected.GET("/task/:id", taskHandler.Get)
	protected.PUT("/task/:id", taskHandler.Update)
	protected.DELETE("/task/:id", taskHandler.Delete)

	protected.POST("/group/:id/point", pointHandler.Add)
	protected.GET("/group/:id/points", pointHandler.List)
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.Data(200, "application/json; charset=utf-8", []byte(doc))
	}
}
