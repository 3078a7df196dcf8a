package site

import "campsite-booking/internal/pkg/errs"

// Equipment is what a customer sets up on a pitch, and also what a pitch is
// laid out for. Compatibility is not plain equality: a caravan pitch takes a
// tent as well, while a mobilhome pitch only ever hosts its own mobilhome.
type Equipment string

const (
	EquipmentNone      Equipment = "none"
	EquipmentTent      Equipment = "tent"
	EquipmentCaravan   Equipment = "caravan"
	EquipmentMobilhome Equipment = "mobilhome"
)

func NewEquipment(value string) (Equipment, error) {
	e := Equipment(value)
	if !e.IsValid() {
		return "", errs.Newf("unknown equipment %q", value)
	}
	return e, nil
}

func (e Equipment) String() string {
	return string(e)
}

func (e Equipment) IsValid() bool {
	switch e {
	case EquipmentNone, EquipmentTent, EquipmentCaravan, EquipmentMobilhome:
		return true
	default:
		return false
	}
}

func (e Equipment) rank() int {
	switch e {
	case EquipmentTent:
		return 1
	case EquipmentCaravan:
		return 2
	case EquipmentMobilhome:
		return 3
	default:
		return 0
	}
}

// IsCompatibleWith reports whether this selection can live on a pitch laid out
// for the given equipment. Mobilhome pitches are closed both ways: nothing
// else fits on them and a mobilhome fits nowhere else.
func (e Equipment) IsCompatibleWith(pitch Equipment) bool {
	if e == EquipmentMobilhome || pitch == EquipmentMobilhome {
		return e == EquipmentMobilhome && pitch == EquipmentMobilhome
	}
	return e.rank() <= pitch.rank()
}

// Service is the utility hookup a customer selects, billed per day on top of
// the pitch rate.
type Service string

const (
	ServiceNone                Service = "none"
	ServiceWater               Service = "water"
	ServiceWaterAndElectricity Service = "water_and_electricity"
)

func NewService(value string) (Service, error) {
	s := Service(value)
	if !s.IsValid() {
		return "", errs.Newf("unknown service %q", value)
	}
	return s, nil
}

func (s Service) String() string {
	return string(s)
}

func (s Service) IsValid() bool {
	switch s {
	case ServiceNone, ServiceWater, ServiceWaterAndElectricity:
		return true
	default:
		return false
	}
}

func (s Service) rank() int {
	switch s {
	case ServiceWater:
		return 1
	case ServiceWaterAndElectricity:
		return 2
	default:
		return 0
	}
}

// DailySurcharge is the per-day price added for the hookup.
func (s Service) DailySurcharge() int32 {
	switch s {
	case ServiceWater:
		return 4
	case ServiceWaterAndElectricity:
		return 7
	default:
		return 0
	}
}

// IsCompatibleWith reports whether the selection can be served on a pitch
// providing the given service. A pitch serves any selection up to what it
// provides.
func (s Service) IsCompatibleWith(provided Service) bool {
	return s.rank() <= provided.rank()
}
