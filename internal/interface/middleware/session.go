package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	repo "github.com/oksasatya/creatorlink/internal/domain/repository"
	"github.com/oksasatya/creatorlink/internal/session"
	"github.com/oksasatya/creatorlink/pkg/helpers"
)

// Session resolves the client cookie, rehydrates that client's Store and
// attaches it to the request. Restore failures leave an empty session.
func Session(storage repo.Storage, cookies *helpers.Manager, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID := cookies.ClientID(c)
		c.Set("clientID", clientID)

		st := session.NewStore(storage, clientID)
		if err := st.Restore(c.Request.Context()); err != nil && logger != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"client_id":  clientID,
				"request_id": c.GetString("request_id"),
			}).Warn("session restore failed")
		}
		if snap := st.Snapshot(); snap.IsAuthenticated {
			c.Set("userID", snap.User.ID)
			c.Set("userEmail", snap.User.Email)
			c.Set("userRole", snap.User.Role.String())
		}
		session.Attach(c, st)
		c.Next()
	}
}
