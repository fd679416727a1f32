package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ClientCookie is the cookie naming the client (browser tab) whose storage namespace serves the request.
const ClientCookie = "client_id"

type Manager struct {
	Domain string
	Secure bool
	TTL    time.Duration
}

func NewCookie(domain string, secure bool, ttl time.Duration) *Manager {
	return &Manager{Domain: domain, Secure: secure, TTL: ttl}
}

// ClientID returns the request's client id, issuing a new cookie when absent or malformed.
func (m *Manager) ClientID(c *gin.Context) string {
	if v, err := c.Cookie(ClientCookie); err == nil {
		if _, pErr := uuid.Parse(v); pErr == nil {
			return v
		}
	}
	id := uuid.NewString()
	m.SetClientID(c, id, time.Now().Add(m.TTL))
	return id
}

// SetClientID stores the long-lived client identifier cookie.
func (m *Manager) SetClientID(c *gin.Context, id string, exp time.Time) {
	c.SetSameSite(http.SameSiteLaxMode)
	// HttpOnly: the browser shell never needs to read it.
	c.SetCookie(ClientCookie, id, maxAgeFrom(exp), "/", m.Domain, m.Secure, true)
}

func maxAgeFrom(exp time.Time) int {
	sec := int(time.Until(exp).Seconds())
	if sec < 0 {
		return 0
	}
	return sec
}
