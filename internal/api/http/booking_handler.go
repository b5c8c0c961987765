package http

import (
	"context"
	"encoding/json"
	"net/http"

	"driveshare-backend/internal/domain"
	"driveshare-backend/internal/service"
)

// BookingHandler exposes the booking lifecycle: request, host decision,
// renter cancellation and the various listings.
type BookingHandler struct {
	bookings service.BookingService
}

func NewBookingHandler(bookings service.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

type createBookingRequest struct {
	CarID     int32  `json:"car_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
		return
	}

	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidationError(map[string]string{"body": "malformed json"}))
		return
	}
	if req.CarID <= 0 {
		writeError(w, domain.NewValidationError(map[string]string{"car_id": "must be a positive integer"}))
		return
	}

	booking, err := h.bookings.RequestBooking(r.Context(), principal, req.CarID, req.StartDate, req.EndDate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (h *BookingHandler) ApproveBooking(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.bookings.ApproveBooking)
}

func (h *BookingHandler) RejectBooking(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.bookings.RejectBooking)
}

func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.bookings.CancelBooking)
}

func (h *BookingHandler) decide(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, principal domain.Principal, id int32) (*domain.Booking, error)) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	booking, err := op(r.Context(), principal, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) ListHostRequests(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.bookings.ListHostRequests)
}

func (h *BookingHandler) ListHostBookings(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.bookings.ListHostBookings)
}

func (h *BookingHandler) ListMyBookings(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.bookings.ListRenterBookings)
}

func (h *BookingHandler) list(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, principal domain.Principal) ([]domain.Booking, error)) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
		return
	}
	bookings, err := op(r.Context(), principal)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}
