// Package notify abstracts the host application's notification surface. The
// builder reports operation outcomes through a Notifier and never renders
// anything itself.
package notify

import "go.uber.org/zap"

// Kind classifies a notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Notification is one user-visible message.
type Notification struct {
	Kind    Kind
	Title   string
	Message string
}

// Notifier receives operation outcomes. Implementations belong to the host;
// the builder only emits.
type Notifier interface {
	Notify(n Notification)
}

// Func adapts a function to the Notifier interface.
type Func func(n Notification)

// Notify implements Notifier.
func (f Func) Notify(n Notification) {
	if f != nil {
		f(n)
	}
}

// Nop discards every notification.
func Nop() Notifier {
	return Func(func(Notification) {})
}

// Logger routes notifications into a zap logger, useful for headless hosts
// such as the CLI.
func Logger(log *zap.Logger) Notifier {
	if log == nil {
		log = zap.NewNop()
	}
	return Func(func(n Notification) {
		switch n.Kind {
		case KindError:
			log.Error(n.Title, zap.String("detail", n.Message))
		default:
			log.Info(n.Title, zap.String("detail", n.Message))
		}
	})
}

// Recorder captures notifications for assertions in tests.
type Recorder struct {
	Notifications []Notification
}

// Notify implements Notifier.
func (r *Recorder) Notify(n Notification) {
	r.Notifications = append(r.Notifications, n)
}

// Last returns the most recent notification, if any.
func (r *Recorder) Last() (Notification, bool) {
	if len(r.Notifications) == 0 {
		return Notification{}, false
	}
	return r.Notifications[len(r.Notifications)-1], true
}
