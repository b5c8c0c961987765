package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"driveshare-backend/internal/domain"
	"driveshare-backend/internal/service"
)

// CarHandler exposes listing management and the public catalogue.
type CarHandler struct {
	cars service.CarService
}

func NewCarHandler(cars service.CarService) *CarHandler {
	return &CarHandler{cars: cars}
}

// CreateCar accepts either JSON or a multipart form with an "image"
// part alongside the listing fields.
func (h *CarHandler) CreateCar(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
		return
	}

	in, err := decodeCarInput(r)
	if err != nil {
		writeError(w, err)
		return
	}

	car, err := h.cars.AddCar(r.Context(), principal, *in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, car)
}

func (h *CarHandler) GetCar(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	car, err := h.cars.GetCar(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, car)
}

func (h *CarHandler) UpdateCar(w http.ResponseWriter, r *http.Request) {
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

	in, err := decodeEditCarInput(r)
	if err != nil {
		writeError(w, err)
		return
	}

	car, err := h.cars.UpdateCar(r.Context(), principal, id, *in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, car)
}

func (h *CarHandler) DeleteCar(w http.ResponseWriter, r *http.Request) {
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
	if err := h.cars.DeleteCar(r.Context(), principal, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListCars is the public catalogue: approved listings only.
func (h *CarHandler) ListCars(w http.ResponseWriter, r *http.Request) {
	cars, err := h.cars.ListApprovedCars(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cars)
}

func (h *CarHandler) ListMyCars(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
		return
	}
	cars, err := h.cars.ListHostCars(r.Context(), principal)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cars)
}

const maxMultipartMemory = 10 << 20 // 10 MiB

func decodeCarInput(r *http.Request) (*service.AddCarInput, error) {
	in := &service.AddCarInput{}
	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			return nil, domain.NewValidationError(map[string]string{"body": "malformed multipart form"})
		}
		if v := r.FormValue("payload"); v != "" {
			if err := json.Unmarshal([]byte(v), in); err != nil {
				return nil, domain.NewValidationError(map[string]string{"payload": "malformed json"})
			}
		}
		if err := readImagePart(r, &in.ImageData, &in.ImageName); err != nil {
			return nil, err
		}
		return in, nil
	}
	if err := json.NewDecoder(r.Body).Decode(in); err != nil {
		return nil, domain.NewValidationError(map[string]string{"body": "malformed json"})
	}
	return in, nil
}

func decodeEditCarInput(r *http.Request) (*service.EditCarInput, error) {
	in := &service.EditCarInput{}
	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			return nil, domain.NewValidationError(map[string]string{"body": "malformed multipart form"})
		}
		if v := r.FormValue("payload"); v != "" {
			if err := json.Unmarshal([]byte(v), in); err != nil {
				return nil, domain.NewValidationError(map[string]string{"payload": "malformed json"})
			}
		}
		if err := readImagePart(r, &in.ImageData, &in.ImageName); err != nil {
			return nil, err
		}
		return in, nil
	}
	if err := json.NewDecoder(r.Body).Decode(in); err != nil {
		return nil, domain.NewValidationError(map[string]string{"body": "malformed json"})
	}
	return in, nil
}

func isMultipart(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	return len(ct) >= 19 && ct[:19] == "multipart/form-data"
}

func readImagePart(r *http.Request, data *[]byte, name *string) error {
	file, header, err := r.FormFile("image")
	if err == http.ErrMissingFile {
		return nil
	}
	if err != nil {
		return domain.NewValidationError(map[string]string{"image": "unreadable image part"})
	}
	defer file.Close()

	buf, err := io.ReadAll(file)
	if err != nil {
		return domain.NewValidationError(map[string]string{"image": "unreadable image part"})
	}
	*data = buf
	*name = header.Filename
	return nil
}

func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(map[string]string{name: "must be a positive integer"})
	}
	return int32(id), nil
}
