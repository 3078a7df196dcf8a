//go:build unit

package queries

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func datePtr(value string) *time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestBookingViewSearchKey(t *testing.T) {
	view := &BookingView{
		ID:            uuid.MustParse("9d2a7a78-0000-0000-0000-000000000000"),
		CustomerName:  "Jean Dupont",
		CustomerPhone: "+33 6 12 34 56 78",
		StartDate:     datePtr("2024-06-03"),
	}

	key := view.SearchKey()
	assert.Contains(t, key, "9d2a7a78")
	assert.Contains(t, key, "03/06/2024")
	assert.Contains(t, key, "jean dupont")
	assert.Contains(t, key, "+33 6 12 34 56 78")
}

func TestBookingViewDisplayName(t *testing.T) {
	id := uuid.MustParse("9d2a7a78-1db8-4b2f-8c6e-000000000000")

	tests := []struct {
		name string
		view BookingView
		want string
	}{
		{
			name: "scheduled shows the date span and customer",
			view: BookingView{
				ID:           id,
				CustomerName: "Jean Dupont",
				StartDate:    datePtr("2024-06-03"),
				EndDate:      datePtr("2024-06-07"),
			},
			want: "03/06-07/06 Jean Dupont",
		},
		{
			name: "canceled is prefixed",
			view: BookingView{
				ID:           id,
				CustomerName: "Jean Dupont",
				StartDate:    datePtr("2024-06-03"),
				EndDate:      datePtr("2024-06-07"),
				Canceled:     true,
			},
			want: "[canceled] 03/06-07/06 Jean Dupont",
		},
		{
			name: "draft falls back to the short id",
			view: BookingView{ID: id, CustomerName: "Jean Dupont"},
			want: "Booking 9d2a7a78",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.view.DisplayName())
		})
	}
}

func TestBookingViewStatusColor(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{"canceled", "black"},
		{"expired", "red"},
		{"settled", "green"},
		{"deposited", "blue"},
		{"scheduled", "yellow"},
		{"draft", "yellow"},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			view := &BookingView{Status: tt.status}
			assert.Equal(t, tt.want, view.StatusColor())
		})
	}
}

func TestSortBookings(t *testing.T) {
	scheduled := &BookingView{Status: "scheduled", StartDate: datePtr("2024-06-10")}
	scheduledEarlier := &BookingView{Status: "scheduled", StartDate: datePtr("2024-06-03")}
	draft := &BookingView{Status: "draft"}
	deposited := &BookingView{Status: "deposited", StartDate: datePtr("2024-06-01")}
	settled := &BookingView{Status: "settled", StartDate: datePtr("2024-06-01")}
	expired := &BookingView{Status: "expired", StartDate: datePtr("2024-01-01")}
	canceled := &BookingView{Status: "canceled", StartDate: datePtr("2024-05-01")}

	views := []*BookingView{canceled, settled, scheduled, expired, deposited, scheduledEarlier, draft}
	SortBookings(views)

	// Open work first: drafts lead their rank band (no start date), then
	// scheduled by start date, then deposited, settled, finally history.
	assert.Equal(t, []*BookingView{draft, scheduledEarlier, scheduled, deposited, settled, expired, canceled}, views)
}

func TestFilterListables(t *testing.T) {
	alpha := &SiteView{Name: "Alpha", AllowedEquipment: "tent", ProvidedService: "water"}
	bravo := &SiteView{Name: "Bravo", AllowedEquipment: "caravan", ProvidedService: "water_and_electricity"}
	sites := []*SiteView{alpha, bravo}

	t.Run("empty query keeps everything", func(t *testing.T) {
		assert.Equal(t, sites, FilterListables(sites, "  "))
	})

	t.Run("matches are case insensitive", func(t *testing.T) {
		assert.Equal(t, []*SiteView{alpha}, FilterListables(sites, "ALPHA"))
	})

	t.Run("search covers capability fields", func(t *testing.T) {
		assert.Equal(t, []*SiteView{bravo}, FilterListables(sites, "caravan"))
	})

	t.Run("no match yields nil", func(t *testing.T) {
		assert.Nil(t, FilterListables(sites, "yurt"))
	})
}

func TestCustomerViewListable(t *testing.T) {
	view := &CustomerView{FirstName: "Marie", LastName: "Curie", Email: "marie@example.com", Phone: "0601020304"}
	assert.Equal(t, "Marie Curie", view.DisplayName())
	assert.Contains(t, view.SearchKey(), "marie@example.com")
}
