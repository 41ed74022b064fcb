package bind

// SelfValidator is implemented by body types that validate themselves.
// Dispatch runs it after decoding, before `validate` struct tags; a failure
// becomes a BadRequest response and the handler is never invoked.
type SelfValidator interface {
	Validate() error
}
