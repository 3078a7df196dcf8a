package queries

import (
	"fmt"
	"sort"
	"strings"

	"campsite-booking/internal/domain/booking"
)

// Listable is the capability set shared by everything the back-office lists:
// a search key, a display label, a status color and a comparison rank.
// Implemented by the closed set of read models instead of inheritance.
type Listable interface {
	SearchKey() string
	DisplayName() string
	StatusColor() string
	CompareRank() int
}

const displayDateFormat = "02/01"

func (v *BookingView) SearchKey() string {
	start := ""
	if v.StartDate != nil {
		start = v.StartDate.Format("02/01/2006")
	}
	parts := []string{v.ID.String(), start, v.CustomerName, v.CustomerPhone}
	return strings.ToLower(strings.TrimSpace(strings.Join(parts, ";")))
}

func (v *BookingView) DisplayName() string {
	if v.StartDate == nil || v.EndDate == nil {
		return "Booking " + shortID(v.ID.String())
	}
	prefix := ""
	if v.Canceled {
		prefix = "[canceled] "
	}
	return fmt.Sprintf("%s%s-%s %s",
		prefix,
		v.StartDate.Format(displayDateFormat),
		v.EndDate.Format(displayDateFormat),
		v.CustomerName,
	)
}

func (v *BookingView) StatusColor() string {
	switch booking.Status(v.Status) {
	case booking.StatusCanceled:
		return "black"
	case booking.StatusExpired:
		return "red"
	case booking.StatusSettled:
		return "green"
	case booking.StatusDeposited:
		return "blue"
	default:
		return "yellow"
	}
}

// CompareRank orders the desk's work queue: open bookings first, deposited
// next, settled after, history last.
func (v *BookingView) CompareRank() int {
	switch booking.Status(v.Status) {
	case booking.StatusCanceled, booking.StatusExpired:
		return -10000
	case booking.StatusSettled:
		return 10
	case booking.StatusDeposited:
		return 100
	default:
		return 1000
	}
}

func (v *SiteView) SearchKey() string {
	return strings.ToLower(strings.Join([]string{v.Name, v.AllowedEquipment, v.ProvidedService}, ";"))
}

func (v *SiteView) DisplayName() string { return v.Name }
func (v *SiteView) StatusColor() string { return "green" }
func (v *SiteView) CompareRank() int    { return 0 }

func (v *CustomerView) SearchKey() string {
	return strings.ToLower(strings.Join([]string{v.FirstName, v.LastName, v.Email, v.Phone}, ";"))
}

func (v *CustomerView) DisplayName() string {
	return strings.TrimSpace(v.FirstName + " " + v.LastName)
}

func (v *CustomerView) StatusColor() string { return "green" }
func (v *CustomerView) CompareRank() int    { return 0 }

// SortBookings orders views by descending rank, then by start date.
func SortBookings(views []*BookingView) {
	sort.SliceStable(views, func(i, j int) bool {
		ri, rj := views[i].CompareRank(), views[j].CompareRank()
		if ri != rj {
			return ri > rj
		}
		si, sj := views[i].StartDate, views[j].StartDate
		switch {
		case si == nil:
			return sj != nil
		case sj == nil:
			return false
		default:
			return si.Before(*sj)
		}
	})
}

// FilterListables keeps the entries whose search key contains the query.
func FilterListables[T Listable](items []T, query string) []T {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return items
	}
	var out []T
	for _, item := range items {
		if strings.Contains(item.SearchKey(), query) {
			out = append(out, item)
		}
	}
	return out
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
