// Package subscriber owns newsletter subscribers and the unsubscribe flow.
//
// Service.Unsubscribe verifies a signed link token, looks the subscriber up
// by id and email, and deactivates the record. Every verification failure is
// reported as ErrInvalidLink; a token that names no stored record yields
// ErrSubscriberNotFound; storage failures yield ErrUnavailable. UserMessage
// turns any of them into text safe to show the visitor.
//
// PGStore is the Postgres Store used in production.
package subscriber
