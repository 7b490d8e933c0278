package core

// Notifier pushes a short local notification to whoever is watching the
// dashboard. Implementations must be non-blocking and best-effort: a failed
// or disabled notification never fails the operation that triggered it.
type Notifier interface {
	Notify(title, body string)
}
