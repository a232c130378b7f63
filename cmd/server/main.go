package main

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stripe/stripe-go/v82"

	"bellezza/internal/api"
	"bellezza/internal/auth"
	"bellezza/internal/repository"
	"bellezza/internal/service"
)

func main() {
	godotenv.Load()
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal().Msg("DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open DB")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to DB")
	}

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	salonRepo := repository.NewSalonRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	staffAuthRepo := repository.NewStaffAuthRepository(db)
	jobRepo := repository.NewJobRepository(db)

	salon, err := salonRepo.GetSalon()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load salon configuration")
	}
	location, err := time.LoadLocation(salon.Timezone)
	if err != nil {
		log.Warn().Str("timezone", salon.Timezone).Msg("unknown salon timezone, falling back to CET")
		location = time.FixedZone("CET", 3600)
	}

	availabilitySvc := service.NewAvailabilityService(salonRepo, appointmentRepo, employeeRepo, serviceRepo)
	stripeSvc := service.NewStripeService()
	senderSvc := service.NewSenderService(salon.Name, location)
	bookingSvc := service.NewBookingService(appointmentRepo, serviceRepo, employeeRepo, availabilitySvc, senderSvc)
	checkoutSvc := service.NewCheckoutService(saleRepo, inventoryRepo, serviceRepo, salonRepo, stripeSvc, senderSvc)
	staffAuthSvc := service.NewStaffAuthService(staffAuthRepo)
	adminSvc := service.NewAdminService(appointmentRepo, employeeRepo, serviceRepo, salonRepo, inventoryRepo, saleRepo, bookingSvc)
	jobSvc := service.NewJobService(jobRepo, senderSvc)

	availabilityHandler := api.NewAvailabilityHandler(availabilitySvc)
	appointmentHandler := api.NewAppointmentHandler(bookingSvc)
	adminHandler := api.NewAdminHandler(adminSvc, bookingSvc, checkoutSvc)
	staffAuthHandler := api.NewStaffAuthHandler(staffAuthSvc)
	stripeHandler := api.NewStripeWebhookHandler(os.Getenv("STRIPE_WEBHOOK_SECRET"), checkoutSvc, stripeSvc)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/availability/day/{date}", availabilityHandler.GetDaySchedule).Methods("GET")
	r.HandleFunc("/api/availability/week/{date}", availabilityHandler.GetWeekSchedule).Methods("GET")
	r.HandleFunc("/api/availability/validate", availabilityHandler.ValidateSlot).Methods("POST")
	r.HandleFunc("/api/appointments", appointmentHandler.CreateAppointment).Methods("POST")
	r.HandleFunc("/api/appointments/{code}", appointmentHandler.GetAppointment).Methods("POST")
	r.HandleFunc("/api/appointments/{code}", appointmentHandler.RescheduleAppointment).Methods("PUT")
	r.HandleFunc("/api/appointments/{code}/cancel", appointmentHandler.CancelAppointment).Methods("POST")
	r.HandleFunc("/api/login", staffAuthHandler.Login).Methods("POST")
	r.HandleFunc("/api/stripe/webhook", stripeHandler.HandleWebhook).Methods("POST")
	r.HandleFunc("/api/sales/by-session", stripeHandler.GetSaleBySessionID).Methods("GET")

	// Admin endpoints (protected)
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(auth.StaffAuthMiddleware)
	admin.HandleFunc("/appointments", adminHandler.ListAppointments).Methods("GET")
	admin.HandleFunc("/appointments/{code}/confirm", adminHandler.ConfirmAppointment).Methods("POST")
	admin.HandleFunc("/appointments/{code}/no-show", adminHandler.MarkNoShow).Methods("POST")
	admin.HandleFunc("/employees", adminHandler.ListEmployees).Methods("GET")
	admin.HandleFunc("/employees", adminHandler.CreateEmployee).Methods("POST")
	admin.HandleFunc("/employees/{id}", adminHandler.UpdateEmployee).Methods("PUT")
	admin.HandleFunc("/employees/{id}/leave", adminHandler.CreateLeaveRequest).Methods("POST")
	admin.HandleFunc("/leave", adminHandler.ListLeaveRequests).Methods("GET")
	admin.HandleFunc("/leave/{id}", adminHandler.SetLeaveStatus).Methods("PUT")
	admin.HandleFunc("/services", adminHandler.ListServices).Methods("GET")
	admin.HandleFunc("/services", adminHandler.CreateService).Methods("POST")
	admin.HandleFunc("/services/{id}", adminHandler.UpdateService).Methods("PUT")
	admin.HandleFunc("/opening-hours", adminHandler.GetOpeningHours).Methods("GET")
	admin.HandleFunc("/opening-hours", adminHandler.UpdateOpeningHours).Methods("PUT")
	admin.HandleFunc("/closures", adminHandler.ListClosures).Methods("GET")
	admin.HandleFunc("/closures", adminHandler.CreateClosure).Methods("POST")
	admin.HandleFunc("/closures/{id}", adminHandler.DeleteClosure).Methods("DELETE")
	admin.HandleFunc("/products", adminHandler.ListProducts).Methods("GET")
	admin.HandleFunc("/products", adminHandler.CreateProduct).Methods("POST")
	admin.HandleFunc("/products/{id}/stock", adminHandler.AdjustStock).Methods("POST")
	admin.HandleFunc("/products/low-stock", adminHandler.ListLowStock).Methods("GET")
	admin.HandleFunc("/sales", adminHandler.CreateSale).Methods("POST")
	admin.HandleFunc("/sales/{id}", adminHandler.GetSale).Methods("GET")
	admin.HandleFunc("/reports/daily/{date}", adminHandler.DailyReport).Methods("GET")
	admin.HandleFunc("/staff", auth.RequireRole("owner", staffAuthHandler.CreateStaff)).Methods("POST")

	c := cron.New()
	c.AddFunc("*/10 * * * *", func() {
		if err := jobSvc.CompleteFinishedAppointments(); err != nil {
			log.Error().Err(err).Msg("cron: complete finished appointments")
		}
	})
	c.AddFunc("0 3 * * *", func() {
		if _, err := jobSvc.PurgeStalePending(time.Now().Add(-48 * time.Hour)); err != nil {
			log.Error().Err(err).Msg("cron: purge stale pending appointments")
		}
	})
	c.AddFunc("0 * * * *", func() {
		if err := jobSvc.SendUpcomingReminders(24 * time.Hour); err != nil {
			log.Error().Err(err).Msg("cron: send upcoming reminders")
		}
	})
	c.Start()
	defer c.Stop()

	corsHandler := gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins([]string{os.Getenv("FRONTEND_ORIGIN")}),
		gorillahandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorillahandlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Info().Str("port", port).Msg("server running")
	log.Fatal().Err(http.ListenAndServe(":"+port, corsHandler)).Msg("server stopped")
}
