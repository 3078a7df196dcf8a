package site

import (
	"github.com/google/uuid"

	"campsite-booking/internal/pkg/errs"
)

var (
	ErrEmptyName       = errs.New("site name cannot be empty")
	ErrNegativeRate    = errs.New("site daily rate cannot be negative")
	ErrInvalidCatalog  = errs.New("invalid equipment or service value")
	ErrZeroSurfaceArea = errs.New("site surface must be positive")
)

// Site is one physical pitch of the campground. Its capabilities (allowed
// equipment, provided service) and daily rate are fixed as far as the booking
// engine is concerned; only seeding and back-office tooling write them.
type Site struct {
	id               uuid.UUID
	name             string
	dailyRate        int32
	surface          int32
	allowedEquipment Equipment
	providedService  Service
}

func NewSite(name string, dailyRate, surface int32, allowed Equipment, provided Service) (*Site, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if dailyRate < 0 {
		return nil, ErrNegativeRate
	}
	if surface <= 0 {
		return nil, ErrZeroSurfaceArea
	}
	if !allowed.IsValid() || !provided.IsValid() {
		return nil, ErrInvalidCatalog
	}
	return &Site{
		id:               uuid.New(),
		name:             name,
		dailyRate:        dailyRate,
		surface:          surface,
		allowedEquipment: allowed,
		providedService:  provided,
	}, nil
}

func ReconstructSite(id uuid.UUID, name string, dailyRate, surface int32, allowed Equipment, provided Service) *Site {
	return &Site{
		id:               id,
		name:             name,
		dailyRate:        dailyRate,
		surface:          surface,
		allowedEquipment: allowed,
		providedService:  provided,
	}
}

func (s *Site) ID() uuid.UUID               { return s.id }
func (s *Site) Name() string                { return s.name }
func (s *Site) DailyRate() int32            { return s.dailyRate }
func (s *Site) Surface() int32              { return s.surface }
func (s *Site) AllowedEquipment() Equipment { return s.allowedEquipment }
func (s *Site) ProvidedService() Service    { return s.providedService }

// IsFullyServiced reports whether the pitch hosts a mobilhome, which always
// comes with water and electricity included in the expected selection.
func (s *Site) IsFullyServiced() bool {
	return s.allowedEquipment == EquipmentMobilhome
}
