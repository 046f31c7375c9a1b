package main

import (
	"log"

	"tashil/config"
	"tashil/database"
	authRoutes "tashil/routers/authRoutes"
	digitalidRoutes "tashil/routers/digitalidRoutes"
	documentRoutes "tashil/routers/documentRoutes"
	notificationRoutes "tashil/routers/notificationRoutes"
	registrationRoutes "tashil/routers/registrationRoutes"
	reportRoutes "tashil/routers/reportRoutes"
	roleRoutes "tashil/routers/roleRoutes"
	"tashil/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve stored uploads
	app.Static("/uploads", config.AppConfig.UploadDir)

	authRoutes.SetupAuthRoutes(app)
	registrationRoutes.SetupRegistrationRoutes(app)
	documentRoutes.SetupDocumentRoutes(app)
	notificationRoutes.SetupNotificationRoutes(app)
	digitalidRoutes.SetupDigitalIDRoutes(app)
	reportRoutes.SetupReportRoutes(app)
	roleRoutes.SetupRoleRoutes(app)

	utils.InitializeIDExpiryScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
