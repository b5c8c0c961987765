package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"driveshare-backend/internal/security"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Cars          *CarHandler
	Bookings      *BookingHandler
	Admin         *AdminHandler
	Notifications *NotificationHandler
}

// RouterConfig carries the router's non-handler dependencies. Redis is
// optional; without it the idempotency guard is skipped.
type RouterConfig struct {
	Tokens    security.TokenManager
	Redis     *redis.Client
	UploadDir string
}

func NewRouter(h *Handlers, cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	r.Use(Recover)
	r.Use(RequestLogger)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods(http.MethodGet)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	// Listing images are served straight off the blob store directory.
	r.PathPrefix("/uploads/cars/").Handler(
		http.StripPrefix("/uploads/cars/", http.FileServer(http.Dir(cfg.UploadDir))))

	// Public catalogue.
	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/cars", h.Cars.ListCars).Methods(http.MethodGet)
	api.HandleFunc("/cars/{id:[0-9]+}", h.Cars.GetCar).Methods(http.MethodGet)

	// Everything below requires a bearer token.
	authed := api.NewRoute().Subrouter()
	authed.Use(Authenticate(cfg.Tokens))
	if cfg.Redis != nil {
		authed.Use(Idempotency(cfg.Redis))
	}

	authed.HandleFunc("/cars", h.Cars.CreateCar).Methods(http.MethodPost)
	authed.HandleFunc("/cars/{id:[0-9]+}", h.Cars.UpdateCar).Methods(http.MethodPut)
	authed.HandleFunc("/cars/{id:[0-9]+}", h.Cars.DeleteCar).Methods(http.MethodDelete)
	authed.HandleFunc("/host/cars", h.Cars.ListMyCars).Methods(http.MethodGet)

	authed.HandleFunc("/bookings", h.Bookings.CreateBooking).Methods(http.MethodPost)
	authed.HandleFunc("/bookings", h.Bookings.ListMyBookings).Methods(http.MethodGet)
	authed.HandleFunc("/bookings/{id:[0-9]+}/approve", h.Bookings.ApproveBooking).Methods(http.MethodPost)
	authed.HandleFunc("/bookings/{id:[0-9]+}/reject", h.Bookings.RejectBooking).Methods(http.MethodPost)
	authed.HandleFunc("/bookings/{id:[0-9]+}/cancel", h.Bookings.CancelBooking).Methods(http.MethodPost)
	authed.HandleFunc("/host/requests", h.Bookings.ListHostRequests).Methods(http.MethodGet)
	authed.HandleFunc("/host/bookings", h.Bookings.ListHostBookings).Methods(http.MethodGet)

	authed.HandleFunc("/admin/cars/pending", h.Admin.ListPendingCars).Methods(http.MethodGet)
	authed.HandleFunc("/admin/cars/{id:[0-9]+}/approve", h.Admin.ApproveCar).Methods(http.MethodPost)
	authed.HandleFunc("/admin/cars/{id:[0-9]+}/reject", h.Admin.RejectCar).Methods(http.MethodPost)

	authed.HandleFunc("/notifications", h.Notifications.ListNotifications).Methods(http.MethodGet)
	authed.HandleFunc("/notifications/{id:[0-9]+}/read", h.Notifications.MarkAsRead).Methods(http.MethodPost)

	return r
}
