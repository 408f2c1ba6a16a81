package ports

// Notifier surfaces transient, human-readable notifications. Implementations
// auto-dismiss; callers never hand it a raw error object, only a message.
type Notifier interface {
	Info(message string)
	Error(message string)
}
