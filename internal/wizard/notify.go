package wizard

// Notifier surfaces transient messages to whatever frontend hosts the
// wizard. No message is fatal; the user retries manually.
type Notifier interface {
	Info(msg string)
	Success(msg string)
	Error(msg string)
}

// NopNotifier drops every message.
type NopNotifier struct{}

func (NopNotifier) Info(string)    {}
func (NopNotifier) Success(string) {}
func (NopNotifier) Error(string)   {}
