package date

// Range represents a range of dates.
type Range struct{ From, To Date }

// LastDays returns the range of n days ending on (and including) end.
func LastDays(end Date, n int) Range {
	if n < 1 {
		n = 1
	}
	return Range{From: end.Add(1 - n), To: end}
}

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

// Days returns the number of days in the range, boundaries included.
func (r Range) Days() int {
	if r.To.Before(r.From) {
		return 0
	}
	return int(r.To.time().Sub(r.From.time()).Hours()/24) + 1
}
