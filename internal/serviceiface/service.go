package serviceiface

// Service is the contract every managed service implements: a stable name
// for the registry, a non-blocking Start, and an idempotent Stop.
type Service interface {
	Name() string
	Start() error
	Stop() error
}
