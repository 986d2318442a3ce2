package engine

import (
	"errors"
	"fmt"

	"github.com/salinovbadr/ramadhan-adventure-sub000/internal/storage"
)

var (
	ErrUnknownMember  = errors.New("crew member not found")
	ErrUnknownMission = errors.New("mission not found")
)

// DayOutOfRangeError indicates a cycle day outside 1..CycleDays.
type DayOutOfRangeError struct {
	Day int
}

func (e DayOutOfRangeError) Error() string {
	return fmt.Sprintf("day %d is outside the %d-day cycle", e.Day, storage.CycleDays)
}
