package utils

import "time"

const dateKeyLayout = "2006-01-02"

// DateSet is a set of calendar dates. Membership ignores the time of day:
// any instant on a member date is contained.
type DateSet map[string]bool

func (ds DateSet) Add(element time.Time) {
	ds[element.Format(dateKeyLayout)] = true
}

func (ds DateSet) Contains(element time.Time) bool {
	return ds[element.Format(dateKeyLayout)]
}
