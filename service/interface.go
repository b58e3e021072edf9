// Package service runs the long-lived parts of the binary (host loop,
// integrated server, audio output) under one ordered lifecycle
package service

// Service is one long-lived subsystem managed by a Hub
//
// The Hub calls, in order: Init on every service in dependency order, Start
// on every service in the same order, and Stop in reverse order on exit or
// after a failed Start
type Service interface {
	Name() string

	// Dependencies names services whose Init must run first
	Dependencies() []string

	// Init receives every arg passed to Hub.InitAll; a service picks the
	// types it understands and ignores the rest
	Init(args ...any) error

	Start() error

	// Stop must be idempotent
	Stop() error
}

// ResourcePublisher receives a value a service exposes to the binary
// (a host loop, an audio engine); the receiver switches on its type
type ResourcePublisher func(resource any)

// ResourceContributor is optionally implemented by services with values to
// expose after Init
type ResourceContributor interface {
	Contribute(publish ResourcePublisher)
}
