package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/martlaas/teataja/pkg/teataja/auth"
	"github.com/martlaas/teataja/pkg/teataja/config"
	"github.com/martlaas/teataja/pkg/teataja/database"
	"github.com/martlaas/teataja/pkg/teataja/favorites"
	"github.com/martlaas/teataja/pkg/teataja/groups"
	"github.com/martlaas/teataja/pkg/teataja/models"
	"github.com/martlaas/teataja/pkg/teataja/notifications"
	"github.com/martlaas/teataja/pkg/teataja/readstatus"
	"github.com/martlaas/teataja/pkg/teataja/templates"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "github.com/martlaas/teataja/api/swagger"
)

// @title Teataja API
// @version 1.0
// @description Role-based notification board for an educational program.

// @contact.name Teataja Support
// @contact.url https://github.com/martlaas/teataja

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := database.Connect(cfg.DBPath); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := models.AutoMigrate(database.GetDB()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	// The two built-in role groups must exist before anyone registers
	if err := ensureRoleGroupsExist(); err != nil {
		log.Fatalf("Failed to ensure role groups exist: %v", err)
	}

	// Create a bootstrap program manager if none exists
	if err := ensureProgramManagerExists(cfg); err != nil {
		log.Fatalf("Failed to ensure program manager exists: %v", err)
	}

	// Set up Gin router
	r := gin.Default()

	// The SPA talks to this API cross-origin
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.CORSOrigin}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		authHandler := auth.NewHandler(database.GetDB())
		authHandler.RegisterRoutes(api.Group("/auth"))

		authenticated := api.Group("", auth.AuthMiddleware())
		managerOnly := api.Group("", auth.AuthMiddleware(), auth.RequireProgramManager())

		// Groups routes
		groupsHandler := groups.NewHandler(database.GetDB())
		groupsHandler.RegisterRoutes(authenticated)
		groupsHandler.RegisterManagerRoutes(managerOnly)

		// Notification routes: reads for everyone, writes for program managers
		notificationsHandler := notifications.NewHandler(database.GetDB())
		notificationsHandler.RegisterRoutes(authenticated)
		notificationsHandler.RegisterManagerRoutes(managerOnly)

		// Read-status routes
		readStatusHandler := readstatus.NewHandler(database.GetDB())
		readStatusHandler.RegisterRoutes(authenticated)

		// Favorites routes
		favoritesHandler := favorites.NewHandler(database.GetDB())
		favoritesHandler.RegisterRoutes(authenticated)

		// Template routes (program managers only, creator-scoped)
		templatesHandler := templates.NewHandler(database.GetDB())
		templatesHandler.RegisterRoutes(managerOnly)
	}

	log.Printf("Starting Teataja server on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// ensureRoleGroupsExist creates the built-in role groups on first start.
// Every user joins the group matching their role at registration.
func ensureRoleGroupsExist() error {
	db := database.GetDB()

	roleGroups := []models.Group{
		{Name: "Programmijuhid", IsRoleGroup: true, Role: models.RoleProgramManager},
		{Name: "Tudengid", IsRoleGroup: true, Role: models.RoleStudent},
	}

	for _, group := range roleGroups {
		var existing models.Group
		err := db.Where("is_role_group = ? AND role = ?", true, group.Role).First(&existing).Error
		if err == nil {
			continue
		}
		if err := db.Create(&group).Error; err != nil {
			return err
		}
		log.Printf("Created role group: %s (ID: %d)", group.Name, group.ID)
	}
	return nil
}

// ensureProgramManagerExists creates a bootstrap program manager account if
// no program manager exists yet, so a fresh install can log in and author
// notifications.
func ensureProgramManagerExists(cfg *config.Config) error {
	db := database.GetDB()

	var manager models.User
	err := db.Where("role = ?", models.RoleProgramManager).First(&manager).Error
	if err == nil {
		return nil // Already exists
	}

	hash, err := auth.HashPassword(cfg.BootstrapSecret)
	if err != nil {
		return err
	}

	manager = models.User{
		Name:         cfg.BootstrapName,
		Email:        cfg.BootstrapEmail,
		PasswordHash: hash,
		Role:         models.RoleProgramManager,
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&manager).Error; err != nil {
			return err
		}

		var roleGroup models.Group
		if err := tx.Where("is_role_group = ? AND role = ?", true, models.RoleProgramManager).First(&roleGroup).Error; err != nil {
			return err
		}
		membership := models.UserGroup{UserID: manager.ID, GroupID: roleGroup.ID}
		if err := tx.Create(&membership).Error; err != nil {
			return err
		}

		log.Printf("Created bootstrap program manager: %s (ID: %d)", manager.Email, manager.ID)
		return nil
	})
}
