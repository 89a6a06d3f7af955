package tube

import "errors"

// Construction errors. Generate wraps them with the slice or corner involved,
// so compare with errors.Is.
var (
	ErrTooFewSlices    = errors.New("tube: fewer than 3 slices")
	ErrEmptySection    = errors.New("tube: cross-section has fewer than 3 corners")
	ErrInvalidSection  = errors.New("tube: cross-section attribute count does not match corner count")
	ErrSectionWinding  = errors.New("tube: cross-section is not counter-clockwise")
	ErrDegenerateFrame = errors.New("tube: reference vector is parallel to the tangent")
	ErrSeamMismatch    = errors.New("tube: twist does not map the cross-section onto itself")
	ErrInvalidOptions  = errors.New("tube: invalid options")
)
