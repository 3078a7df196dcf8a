package booking

import "campsite-booking/internal/domain/site"

// Correction records a field the constraint engine rewrote to keep a booking
// compatible with its site. Every correction surfaces as a recoverable
// violation and an audit event; none of them ever blocks the caller.
type Correction struct {
	Field   string
	Value   string
	Message string
}

const (
	FieldEquipment = "equipment"
	FieldService   = "service"
)

// ReconcileEquipment checks a requested equipment against the pitch it is to
// live on. An incompatible selection is replaced by the pitch's native
// equipment. Pure and total: violated reports whether a replacement happened.
func ReconcileEquipment(selection site.Equipment, pitch *site.Site) (site.Equipment, bool) {
	if selection.IsCompatibleWith(pitch.AllowedEquipment()) {
		return selection, false
	}
	return pitch.AllowedEquipment(), true
}

// ReconcileService checks a requested service against what the pitch
// provides. A mobilhome pitch overrides everything: the selection is forced
// to water and electricity regardless of general compatibility. Otherwise an
// unservable selection falls back to the pitch's native service.
func ReconcileService(selection site.Service, pitch *site.Site) (site.Service, bool) {
	if pitch.IsFullyServiced() {
		if selection != site.ServiceWaterAndElectricity {
			return site.ServiceWaterAndElectricity, true
		}
		return selection, false
	}
	if !selection.IsCompatibleWith(pitch.ProvidedService()) {
		return pitch.ProvidedService(), true
	}
	return selection, false
}
