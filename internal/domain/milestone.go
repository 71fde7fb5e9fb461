package domain

import (
	"errors"
	"time"
)

// ErrMilestoneDates is returned when a milestone's start date falls after its
// end date.
var ErrMilestoneDates = errors.New("Start date must be sooner than end date.")

type Milestone struct {
	UID         string    `json:"uid"`
	ProjectID   string    `json:"projectId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color"`
	StartDate   int64     `json:"startDate"`
	EndDate     int64     `json:"endDate"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ValidateDates checks the startDate <= endDate invariant.
func (m *Milestone) ValidateDates() error {
	if m.StartDate > m.EndDate {
		return ErrMilestoneDates
	}
	return nil
}
