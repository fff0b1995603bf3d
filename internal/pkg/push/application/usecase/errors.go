package usecase

import "errors"

// ErrInvalidSubscription flags a subscribe request missing its endpoint or
// encryption keys.
var ErrInvalidSubscription = errors.New("push: subscription missing endpoint or keys")

// ErrPersistence indicates a registry failure inside a use case.
var ErrPersistence = errors.New("push use case persistence error")
