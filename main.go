package main

import (
	"ccw/config"
	"ccw/database"
	adminRoutes "ccw/routers/adminRoutes"
	authRoutes "ccw/routers/authRoutes"
	certificateRoutes "ccw/routers/certificateRoutes"
	checkoutRoutes "ccw/routers/checkoutRoutes"
	courseRoutes "ccw/routers/courseRoutes"
	quizRoutes "ccw/routers/quizRoutes"
	"log"

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

	// Log every request
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	quizRoutes.SetupQuizRoutes(app)
	certificateRoutes.SetupCertificateRoutes(app)
	checkoutRoutes.SetupCheckoutRoutes(app)
	adminRoutes.SetupAdminRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
