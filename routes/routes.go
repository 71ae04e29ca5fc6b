package routes

import (
	"agendaplus-backend/config"
	"agendaplus-backend/controllers"
	"agendaplus-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:3000",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
		auth.POST("/logout", controllers.Logout)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Branch routes
		branches := api.Group("/branches")
		{
			branches.POST("", controllers.CreateBranch)
			branches.GET("", controllers.GetBranches)
		}

		// Professional routes
		professionals := api.Group("/professionals")
		{
			professionals.POST("", controllers.CreateProfessional)
			professionals.GET("", controllers.GetProfessionals)
			professionals.PUT("/:id", controllers.UpdateProfessional)
		}

		// Service catalog routes
		services := api.Group("/services")
		{
			services.POST("", controllers.CreateService)
			services.GET("", controllers.GetServices)
			services.GET("/:id", controllers.GetService)
			services.PUT("/:id", controllers.UpdateService)
		}

		// Client routes (edit is gated)
		clients := api.Group("/clients")
		{
			clients.POST("", controllers.CreateClient)
			clients.GET("", controllers.GetClients)
			clients.GET("/:id", controllers.GetClient)
			clients.PUT("/:id", controllers.UpdateClient)
		}

		// Appointment routes
		appointments := api.Group("/appointments")
		{
			appointments.POST("", controllers.CreateAppointment)
			appointments.GET("", controllers.GetAppointments)
			appointments.GET("/availability", controllers.GetAvailability)
			appointments.PATCH("/:id/status", controllers.TransitionAppointment)
			appointments.PATCH("/:id/awaiting-payment", controllers.MarkAwaitingPayment)
			appointments.POST("/:id/services", controllers.AddServiceLines) // gated
			appointments.POST("/:id/cancel", controllers.CancelServiceLine) // gated
		}

		// Walk-in quick service
		api.POST("/quick-service", controllers.QuickService)

		// Inventory routes (product edit/delete are gated)
		categories := api.Group("/categories")
		{
			categories.POST("", controllers.CreateCategory)
			categories.DELETE("/:id", controllers.DeleteCategory)
		}
		products := api.Group("/products")
		{
			products.POST("", controllers.CreateProduct)
			products.GET("", controllers.GetProducts)
			products.PUT("/:id", controllers.UpdateProduct)
			products.DELETE("/:id", controllers.DeleteProduct)
		}

		// Stock sale routes (edit/delete are gated)
		sales := api.Group("/sales")
		{
			sales.POST("", controllers.RecordSale)
			sales.GET("", controllers.GetSales)
			sales.PUT("/:id", controllers.EditSale)
			sales.DELETE("/:id", controllers.DeleteSale)
		}

		// Sensitive action gate
		gate := api.Group("/gate")
		{
			gate.GET("", controllers.GetGateStatus)
			gate.POST("/submit", controllers.SubmitGatePassword)
			gate.PUT("/password", controllers.SetGatePassword)
		}
	}

	return r
}
