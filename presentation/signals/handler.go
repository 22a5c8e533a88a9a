package signals

// Handler turns OS signals into application context cancellation.
type Handler interface {
	Handle()
}
