package notify

import "log"

// Notifier receives the user-visible outcome of every mutation. The UI
// renders these as toasts; the default implementation just logs them.
type Notifier interface {
	Success(title, description string)
	Failure(title, description string)
}

type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Success(title, description string) {
	if description == "" {
		log.Printf("[notify] %s", title)
		return
	}
	log.Printf("[notify] %s: %s", title, description)
}

func (n *LogNotifier) Failure(title, description string) {
	if description == "" {
		log.Printf("[notify] ERROR %s", title)
		return
	}
	log.Printf("[notify] ERROR %s: %s", title, description)
}
