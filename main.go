// file: main.go
package main

import (
	"log"
	"net/http"

	"github.com/JB-05/gen-201-mbc/config"
	"github.com/JB-05/gen-201-mbc/controllers"
	"github.com/JB-05/gen-201-mbc/database"
	"github.com/JB-05/gen-201-mbc/metrics"
	"github.com/JB-05/gen-201-mbc/routes"
	"github.com/JB-05/gen-201-mbc/services"
	"github.com/JB-05/gen-201-mbc/utils"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	database.Connect(cfg)
	database.MigrateTables()
	database.SeedDistricts()
	database.InitRedis(cfg)

	metrics.Register()
	utils.SetJWTSecret(cfg.JWTSecret)

	if !cfg.PaymentConfigured() {
		log.Println("WARNING: Razorpay credentials not set; payment endpoints will answer 503.")
	}

	payments := services.NewPaymentService(cfg)
	registrations := services.NewRegistrationService(database.DB)
	districts := services.NewDistrictService(database.DB)
	store := services.NewRedisSessionStore(database.RDB)
	forms := services.NewFormController(store, payments, registrations, districts, cfg)

	r := routes.SetupRouter(&routes.Deps{
		Registration: controllers.NewRegistrationController(forms, registrations),
		Payment:      controllers.NewPaymentController(payments),
		District:     controllers.NewDistrictController(districts),
		Admin:        controllers.NewAdminController(database.DB),
	})

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	log.Println("Starting server on", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, corsMiddleware.Handler(r)); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
