package auctionerrors

import "errors"

// Repository-level errors
var (
	ErrListingNotFound  = errors.New("listing not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrBidNotFound      = errors.New("bid not found")
)

// business logic errors
var (
	ErrValidation    = errors.New("invalid input")
	ErrBidTooLow     = errors.New("bid amount too low")
	ErrListingClosed = errors.New("listing is closed")
	ErrNotOwner      = errors.New("not the listing owner")
	ErrUsernameTaken = errors.New("username already taken")
)
