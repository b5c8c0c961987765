package domain

type BookingStatus string

const (
	BookingStatusRequested BookingStatus = "REQUESTED"
	BookingStatusApproved  BookingStatus = "APPROVED"
	BookingStatusRejected  BookingStatus = "REJECTED"
	BookingStatusActive    BookingStatus = "ACTIVE"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// Terminal reports whether the status is a final outcome. Non-terminal
// bookings (REQUESTED, APPROVED, ACTIVE) block overlapping requests.
func (s BookingStatus) Terminal() bool {
	switch s {
	case BookingStatusRejected, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

// Booking is a renter's date-ranged request against a car. Dates are
// date-only (yyyy-mm-dd); both bounds are inclusive, so bookings that
// merely touch on a day still overlap.
type Booking struct {
	ID       int32 `json:"id"`
	CarID    int32 `json:"car_id"`
	Car      *Car  `json:"car,omitempty"` // Populated by GetWithCar
	RenterID int32 `json:"renter_id"`
	// Price snapshot computed from the car's price at request time.
	// Never trusted from client input.
	TotalPriceCents int32         `json:"total_price_cents"`
	StartDate       string        `json:"start_date"`
	EndDate         string        `json:"end_date"`
	Status          BookingStatus `json:"status"`
	CreatedOn       string        `json:"created_on"`
}
