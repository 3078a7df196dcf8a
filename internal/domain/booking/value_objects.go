package booking

import (
	"time"

	"campsite-booking/internal/pkg/clock"
	"campsite-booking/internal/pkg/errs"
)

// DateRange is an inclusive span of calendar days. Both boundary days belong
// to the stay: a site freed on the 5th cannot be taken again before the 6th.
type DateRange struct {
	start time.Time
	end   time.Time
}

func NewDateRange(start, end time.Time) (DateRange, error) {
	start = clock.Midnight(start)
	end = clock.Midnight(end)
	if start.After(end) {
		return DateRange{}, errs.New("start date must not be after end date")
	}
	return DateRange{start: start, end: end}, nil
}

func (r DateRange) Start() time.Time {
	return r.start
}

func (r DateRange) End() time.Time {
	return r.end
}

// Days counts every calendar day of the stay, boundaries included.
func (r DateRange) Days() int {
	return int(r.end.Sub(r.start).Hours()/24) + 1
}

// Overlaps implements the inclusive rule: [s1,e1] and [s2,e2] overlap
// iff s1 <= e2 and s2 <= e1.
func (r DateRange) Overlaps(other DateRange) bool {
	return !r.start.After(other.end) && !other.start.After(r.end)
}
