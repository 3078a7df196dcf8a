//go:build unit

package site

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEquipmentIsCompatibleWith(t *testing.T) {
	tests := []struct {
		name      string
		selection Equipment
		pitch     Equipment
		want      bool
	}{
		{"none fits everywhere - tent pitch", EquipmentNone, EquipmentTent, true},
		{"none fits everywhere - caravan pitch", EquipmentNone, EquipmentCaravan, true},
		{"tent on tent pitch", EquipmentTent, EquipmentTent, true},
		{"tent on caravan pitch", EquipmentTent, EquipmentCaravan, true},
		{"caravan on tent pitch", EquipmentCaravan, EquipmentTent, false},
		{"caravan on caravan pitch", EquipmentCaravan, EquipmentCaravan, true},
		{"mobilhome on mobilhome pitch", EquipmentMobilhome, EquipmentMobilhome, true},
		{"mobilhome on caravan pitch", EquipmentMobilhome, EquipmentCaravan, false},
		{"caravan on mobilhome pitch", EquipmentCaravan, EquipmentMobilhome, false},
		{"tent on mobilhome pitch", EquipmentTent, EquipmentMobilhome, false},
		{"none on mobilhome pitch", EquipmentNone, EquipmentMobilhome, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.selection.IsCompatibleWith(tt.pitch))
		})
	}
}

func TestServiceIsCompatibleWith(t *testing.T) {
	tests := []struct {
		name      string
		selection Service
		provided  Service
		want      bool
	}{
		{"none needs nothing", ServiceNone, ServiceNone, true},
		{"water on water pitch", ServiceWater, ServiceWater, true},
		{"water on full-service pitch", ServiceWater, ServiceWaterAndElectricity, true},
		{"water on bare pitch", ServiceWater, ServiceNone, false},
		{"full service on water pitch", ServiceWaterAndElectricity, ServiceWater, false},
		{"full service on full-service pitch", ServiceWaterAndElectricity, ServiceWaterAndElectricity, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.selection.IsCompatibleWith(tt.provided))
		})
	}
}

func TestServiceDailySurcharge(t *testing.T) {
	assert.Equal(t, int32(0), ServiceNone.DailySurcharge())
	assert.Equal(t, int32(4), ServiceWater.DailySurcharge())
	assert.Equal(t, int32(7), ServiceWaterAndElectricity.DailySurcharge())
}

func TestNewEquipment(t *testing.T) {
	for _, value := range []string{"none", "tent", "caravan", "mobilhome"} {
		e, err := NewEquipment(value)
		assert.NoError(t, err)
		assert.Equal(t, value, e.String())
	}

	_, err := NewEquipment("yurt")
	assert.Error(t, err)
}

func TestNewSiteValidation(t *testing.T) {
	_, err := NewSite("", 20, 80, EquipmentTent, ServiceWater)
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = NewSite("A1", -1, 80, EquipmentTent, ServiceWater)
	assert.ErrorIs(t, err, ErrNegativeRate)

	_, err = NewSite("A1", 20, 0, EquipmentTent, ServiceWater)
	assert.ErrorIs(t, err, ErrZeroSurfaceArea)

	s, err := NewSite("A1", 20, 80, EquipmentTent, ServiceWater)
	assert.NoError(t, err)
	assert.Equal(t, "A1", s.Name())
	assert.False(t, s.IsFullyServiced())
}

func TestSiteIsFullyServiced(t *testing.T) {
	s, err := NewSite("M1", 35, 120, EquipmentMobilhome, ServiceWaterAndElectricity)
	assert.NoError(t, err)
	assert.True(t, s.IsFullyServiced())
}
