// file: routes/router.go
package routes

import (
	"net/http"

	"github.com/JB-05/gen-201-mbc/controllers"
	"github.com/JB-05/gen-201-mbc/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps carries the wired controllers into the router.
type Deps struct {
	Registration *controllers.RegistrationController
	Payment      *controllers.PaymentController
	District     *controllers.DistrictController
	Admin        *controllers.AdminController
}

func SetupRouter(deps *Deps) *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiV1 := r.Group("/api/v1")
	{
		// --- reference data ---
		apiV1.GET("/districts", deps.District.GetDistricts)

		// --- team name availability probe ---
		apiV1.GET("/teams/check-name", deps.Registration.CheckTeamName)

		// --- multi-step registration sessions ---
		sessions := apiV1.Group("/registration/sessions")
		{
			sessions.POST("", deps.Registration.StartSession)
			sessions.GET("/:id", deps.Registration.GetSession)
			sessions.POST("/:id/next", deps.Registration.NextStep)
			sessions.POST("/:id/back", deps.Registration.BackStep)
			sessions.POST("/:id/submit", deps.Registration.SubmitSession)
			sessions.POST("/:id/complete", deps.Registration.CompleteSession)
			sessions.POST("/:id/fail", deps.Registration.FailSession)
		}

		// --- raw gateway endpoints (gateway wire shapes, no envelope) ---
		payment := apiV1.Group("/payment")
		{
			payment.POST("/create-order", deps.Payment.CreateOrder)
			payment.POST("/verify", deps.Payment.VerifyPayment)
		}

		// --- admin dashboard ---
		apiV1.POST("/admin/login", deps.Admin.Login)
		admin := apiV1.Group("/admin")
		admin.Use(middlewares.AdminAuthMiddleware())
		{
			admin.GET("/registrations", deps.Admin.ListRegistrations)
			admin.GET("/registrations/:id", deps.Admin.GetRegistration)
			admin.PUT("/registrations/:id/status", deps.Admin.UpdateStatus)
			admin.GET("/registrations/:id/status-logs", deps.Admin.GetStatusLogs)
			admin.GET("/insights/districts", deps.Admin.DistrictInsights)
			admin.GET("/insights/payments", deps.Admin.PaymentInsights)
		}
	}

	return r
}
