package usecase

import "errors"

// Errors surfaced to the original caller. Everything after a successful
// persist is best-effort and never reported through the request.
var (
	// ErrPersistence indicates an infrastructure/repository failure inside a
	// use case. The message is not considered sent.
	ErrPersistence = errors.New("chat use case persistence error")

	// ErrRecipientNotFound rejects a send to an unknown username before any
	// side effect.
	ErrRecipientNotFound = errors.New("chat: recipient does not exist")

	// ErrSelfMessage rejects a send addressed to the sender; the 1:1 model
	// has no self-conversations.
	ErrSelfMessage = errors.New("chat: cannot send a message to yourself")
)
