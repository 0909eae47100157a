package journal

import (
	"sync"

	"journal/internal/domain/services"
)

// Navigation is the pending navigation signal of a session
type Navigation struct {
	Back   bool            `json:"back,omitempty"`
	Screen services.Screen `json:"screen,omitempty"`
}

// Outbox buffers notices and navigation for clients that poll, such as HTTP.
// It implements services.Presenter and services.Navigator.
type Outbox struct {
	mu      sync.Mutex
	notices []services.Notice
	nav     Navigation
}

func (o *Outbox) Notify(n services.Notice) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.notices = append(o.notices, n)
}

func (o *Outbox) GoBack() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.nav = Navigation{Back: true}
}

func (o *Outbox) NavigateTo(screen services.Screen) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.nav = Navigation{Screen: screen}
}

// Drain returns and clears everything buffered since the last call
func (o *Outbox) Drain() ([]services.Notice, Navigation) {
	o.mu.Lock()
	defer o.mu.Unlock()

	notices := o.notices
	if notices == nil {
		notices = []services.Notice{}
	}
	nav := o.nav
	o.notices = nil
	o.nav = Navigation{}
	return notices, nav
}
