package http

import (
	"context"
	"net/http"

	"driveshare-backend/internal/domain"
	"driveshare-backend/internal/service"
)

// AdminHandler covers the listing review queue. Role enforcement lives
// in the service layer; the handler only shapes requests and responses.
type AdminHandler struct {
	cars service.CarService
}

func NewAdminHandler(cars service.CarService) *AdminHandler {
	return &AdminHandler{cars: cars}
}

func (h *AdminHandler) ListPendingCars(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
		return
	}
	cars, err := h.cars.ListPendingCars(r.Context(), principal)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cars)
}

func (h *AdminHandler) ApproveCar(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.cars.ApproveCar)
}

func (h *AdminHandler) RejectCar(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.cars.RejectCar)
}

func (h *AdminHandler) review(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, principal domain.Principal, id int32) (*domain.Car, error)) {
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

	car, err := op(r.Context(), principal, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, car)
}
