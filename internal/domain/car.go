package domain

type CarStatus string

const (
	CarStatusPending  CarStatus = "PENDING"
	CarStatusApproved CarStatus = "APPROVED"
	CarStatusRejected CarStatus = "REJECTED"
)

// Car is a host-owned listing. HostID never changes after creation;
// brand, type, model and year are fixed at listing time as well.
type Car struct {
	ID               int32     `json:"id"`
	HostID           int32     `json:"host_id"`
	Host             *User     `json:"host,omitempty"` // Populated by GetWithHost
	Brand            string    `json:"brand"`
	CarType          string    `json:"car_type"`
	Model            string    `json:"model"`
	Year             int32     `json:"year"`
	Transmission     string    `json:"transmission"`
	FuelType         string    `json:"fuel_type"`
	Seats            int32     `json:"seats"`
	PricePerDayCents int32     `json:"price_per_day_cents"`
	Location         string    `json:"location"`
	Description      string    `json:"description,omitempty"`
	ImagePath        *string   `json:"image_path,omitempty"`
	Status           CarStatus `json:"status"`
	CreatedOn        string    `json:"created_on"`
}
