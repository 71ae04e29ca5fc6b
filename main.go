package main

import (
	"fmt"
	"log"
	"os"

	"agendaplus-backend/config"
	"agendaplus-backend/controllers"
	"agendaplus-backend/models"
	"agendaplus-backend/routes"
	"agendaplus-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.Tenant{},
		&models.Branch{},
		&models.User{},
		&models.Professional{},
		&models.Service{},
		&models.Client{},
		&models.Appointment{},
		&models.ProductCategory{},
		&models.StockProduct{},
		&models.StockSale{},
		&models.AdminCredential{},
		&models.ReminderLog{},
	)
}

func main() {
	notifier := controllers.Setup(config.DB)

	reminders := services.NewReminderService(config.DB, notifier)
	reminders.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
