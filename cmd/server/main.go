package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"

	"github.com/contractdesk/contract-management-api/internal/config"
	"github.com/contractdesk/contract-management-api/internal/constants"
	"github.com/contractdesk/contract-management-api/internal/database"
	"github.com/contractdesk/contract-management-api/internal/handlers"
	"github.com/contractdesk/contract-management-api/internal/mailer"
	"github.com/contractdesk/contract-management-api/internal/middleware"
	"github.com/contractdesk/contract-management-api/internal/repository"
	"github.com/contractdesk/contract-management-api/internal/services"
	"github.com/contractdesk/contract-management-api/internal/storage"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,                        // Redis pool size
		"tcp",                     // network type
		redisAddr,                 // Redis address from config
		"",                        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction, // true in production (HTTPS), false in development
		SameSite: 2,            // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	db := database.GetDB()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	inviteRepo := repository.NewInviteRepository(db)
	agreementRepo := repository.NewAgreementRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	vendorRepo := repository.NewVendorRepository(db)
	projectRepo := repository.NewProjectRepository(db)

	// Initialize AI service
	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey)
	}

	// Outbound email; a nil sender disables dispatch, invite links are
	// still returned to the caller.
	var sender mailer.Sender
	if smtpSender := mailer.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom); smtpSender != nil {
		sender = smtpSender
	}

	uploader := storage.NewLocalUploader(cfg.UploadDir, cfg.BaseURL)

	// Services
	authService := services.NewAuthService(userRepo)
	membershipService := services.NewMembershipService(orgRepo)
	orgService := services.NewOrganizationService(orgRepo)
	inviteService := services.NewInviteService(inviteRepo, orgRepo, userRepo, sender, cfg.BaseURL)
	agreementService := services.NewAgreementService(agreementRepo, projectRepo, orgRepo, aiService)
	templateService := services.NewTemplateService(templateRepo, orgRepo)
	vendorService := services.NewVendorService(vendorRepo, orgRepo, uploader)
	projectService := services.NewProjectService(projectRepo, orgRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, membershipService)
	orgHandler := handlers.NewOrganizationHandler(orgService)
	inviteHandler := handlers.NewInviteHandler(inviteService)
	agreementHandler := handlers.NewAgreementHandler(agreementService, authService)
	templateHandler := handlers.NewTemplateHandler(templateService)
	vendorHandler := handlers.NewVendorHandler(vendorService)
	projectHandler := handlers.NewProjectHandler(projectService)

	// Uploaded vendor documents
	r.Static("/uploads", cfg.UploadDir)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Contract Management API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Public invite routes: the acceptance screen is reached from an
		// emailed link, before any session exists.
		api.GET("/invites/token/:token", inviteHandler.GetInviteByToken)
		api.POST("/invites/token/:token/accept", inviteHandler.AcceptInvite)

		// Everything below requires a session and an organization membership.
		protected := api.Group("")
		protected.Use(middleware.RequireAuth(), middleware.RequireMembership(membershipService))
		{
			org := protected.Group("/organization")
			{
				org.GET("", orgHandler.GetOrganization)
				org.PUT("", middleware.RequireOrgAdmin(), orgHandler.UpdateOrganization)
				org.GET("/branches", orgHandler.ListBranches)
				org.POST("/branches", middleware.RequireOrgAdmin(), orgHandler.CreateBranch)
				org.PUT("/branches/:id", middleware.RequireOrgAdmin(), orgHandler.UpdateBranch)
				org.GET("/members", orgHandler.ListMembers)
			}

			invites := protected.Group("/invites")
			invites.Use(middleware.RequireBranchManager())
			{
				invites.POST("", inviteHandler.CreateInvite)
				invites.GET("", inviteHandler.ListInvites)
				invites.POST("/:id/revoke", inviteHandler.RevokeInvite)
			}

			agreements := protected.Group("/agreements")
			{
				agreements.GET("", agreementHandler.ListAgreements)
				agreements.POST("", agreementHandler.UpsertAgreement)
				agreements.GET("/:id", agreementHandler.GetAgreement)
				agreements.DELETE("/:id", agreementHandler.DeleteAgreement)
				agreements.POST("/:id/comments", agreementHandler.AddComment)
				agreements.POST("/generate-clause", agreementHandler.GenerateClause)
				agreements.POST("/analyze-risk", agreementHandler.AnalyzeRisk)
			}

			templates := protected.Group("/templates")
			{
				templates.GET("", templateHandler.ListTemplates)
				templates.POST("", templateHandler.CreateTemplate)
				templates.GET("/:id", templateHandler.GetTemplate)
				templates.PUT("/:id", templateHandler.UpdateTemplate)
			}

			vendors := protected.Group("/vendors")
			{
				vendors.GET("", vendorHandler.ListVendors)
				vendors.POST("", vendorHandler.CreateVendor)
				vendors.GET("/:id", vendorHandler.GetVendor)
				vendors.PUT("/:id", vendorHandler.UpdateVendor)
				vendors.POST("/:id/documents", vendorHandler.AttachDocuments)
			}

			projects := protected.Group("/projects")
			{
				projects.GET("", projectHandler.ListProjects)
				projects.POST("", projectHandler.CreateProject)
				projects.GET("/:id", projectHandler.GetProject)
				projects.PUT("/:id", projectHandler.UpdateProject)
			}
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
