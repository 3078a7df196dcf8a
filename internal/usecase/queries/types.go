package queries

import (
	"time"

	"github.com/google/uuid"
)

// Raw read model rows produced by the read store. Derived pricing and status
// are computed on top of these when building views.
type BookingRecord struct {
	ID                   uuid.UUID
	CustomerID           uuid.UUID
	CustomerName         string
	CustomerPhone        string
	SiteID               *uuid.UUID
	SiteName             *string
	SiteDailyRate        *int32
	SiteSurface          *int32
	SiteAllowedEquipment *string
	SiteProvidedService  *string
	Headcount            int32
	StartDate            *time.Time
	EndDate              *time.Time
	Equipment            string
	Service              string
	Discount             string
	DepositDate          *time.Time
	PaymentDate          *time.Time
	Canceled             bool
	HasBill              bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// BookingView is the read model exposed to presentation, reporting and
// billing: every stored field plus the derived day count, prices, open
// balance and status.
type BookingView struct {
	ID             uuid.UUID  `json:"id"`
	CustomerID     uuid.UUID  `json:"customer_id"`
	CustomerName   string     `json:"customer_name"`
	CustomerPhone  string     `json:"customer_phone"`
	SiteID         *uuid.UUID `json:"site_id,omitempty"`
	SiteName       *string    `json:"site_name,omitempty"`
	Headcount      int32      `json:"headcount"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	Equipment      string     `json:"equipment"`
	Service        string     `json:"service"`
	Discount       string     `json:"discount"`
	DepositDate    *time.Time `json:"deposit_date,omitempty"`
	PaymentDate    *time.Time `json:"payment_date,omitempty"`
	Canceled       bool       `json:"canceled"`
	HasBill        bool       `json:"has_bill"`
	DayCount       int32      `json:"day_count"`
	TotalPrice     int32      `json:"total_price"`
	DepositPrice   int32      `json:"deposit_price"`
	RemainingToPay int32      `json:"remaining_to_pay"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type SiteView struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	DailyRate        int32     `json:"daily_rate"`
	Surface          int32     `json:"surface"`
	AllowedEquipment string    `json:"allowed_equipment"`
	ProvidedService  string    `json:"provided_service"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type CustomerView struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AuditEventView struct {
	ID        int64     `json:"id"`
	BookingID uuid.UUID `json:"booking_id"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type AuthorizedUserView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`
}
