package models

import "encoding/gob"

// Flash message categories.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash is a one-shot notification surfaced on the next rendered page.
type Flash struct {
	Category string
	Message  string
}

func init() {
	// Flashes are stored in the cookie session, which is gob encoded.
	gob.Register(Flash{})
}

// User is the view model passed to templates.
type User struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
}
