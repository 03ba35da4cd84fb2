package dealer

import "errors"

// ErrInvalidCredentials covers both unknown-email and wrong-password logins
// so the response never reveals which half failed.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrEmailTaken signals a registration against an email already in use.
var ErrEmailTaken = errors.New("a dealer with this email already exists")
