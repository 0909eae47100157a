package auth

import (
	"sync"

	"journal/internal/domain/models"
	"journal/internal/domain/services"
)

// CurrentUser is an observable holder of the signed-in user
type CurrentUser struct {
	mu     sync.Mutex
	user   *models.User
	subs   map[uint64]func(*models.User)
	nextID uint64
}

var _ services.CurrentUserStream = (*CurrentUser)(nil)

// NewCurrentUser creates a stream with nobody signed in
func NewCurrentUser() *CurrentUser {
	return &CurrentUser{subs: make(map[uint64]func(*models.User))}
}

func (c *CurrentUser) Current() *models.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyUser(c.user)
}

func (c *CurrentUser) Subscribe(fn func(user *models.User)) (cancel func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	current := copyUser(c.user)
	c.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, id)
			c.mu.Unlock()
		})
	}
}

// Set publishes user (nil for signed out) to every subscriber
func (c *CurrentUser) Set(user *models.User) {
	c.mu.Lock()
	c.user = copyUser(user)
	ids := make([]uint64, 0, len(c.subs))
	for id := range c.subs {
		ids = append(ids, id)
	}
	c.mu.Unlock()

	// Subscribers may cancel themselves or others from inside the callback
	for _, id := range ids {
		c.mu.Lock()
		fn, ok := c.subs[id]
		c.mu.Unlock()
		if ok {
			fn(copyUser(user))
		}
	}
}

func copyUser(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	cp := *u
	return &cp
}
