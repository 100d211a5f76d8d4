package family

import "errors"

var (
	ErrFamilyNotFound  = errors.New("family not found")
	ErrInvalidFamilyID = errors.New("family id is empty after normalization")
	ErrInvalidCode     = errors.New("code does not resolve to a family or invite code")
	ErrFamilyExists    = errors.New("family already exists")
)
