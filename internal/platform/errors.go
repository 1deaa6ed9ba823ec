package platform

import "errors"

var (
	ErrNotFound         = errors.New("platform: not found")
	ErrAlreadyExists    = errors.New("platform: already exists")
	ErrInvalidInput     = errors.New("platform: invalid input")
	ErrForbidden        = errors.New("platform: forbidden")
	ErrAssetAssigned    = errors.New("platform: asset already assigned")
	ErrBookingOverlap   = errors.New("platform: booking overlaps an existing booking")
	ErrAlreadyCheckedIn = errors.New("platform: attendance already recorded for this day")
)
