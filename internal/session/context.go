package session

import "github.com/gin-gonic/gin"

const ginKey = "session.store"

// Attach makes the client's Store available to downstream handlers.
func Attach(c *gin.Context, s *Store) { c.Set(ginKey, s) }

// From returns the Store attached by the session middleware.
func From(c *gin.Context) (*Store, bool) {
	v, ok := c.Get(ginKey)
	if !ok {
		return nil, false
	}
	s, ok := v.(*Store)
	return s, ok && s != nil
}
