package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/cppla/folio/utils"
)

// SessionHeader carries the opaque session id in both directions.
const SessionHeader = "X-Session-ID"

const contextSessionObjKey = "session"

// SessionResolver attaches the caller's page session to the context, creating
// one when the header is absent or stale. The effective id is always echoed back.
func SessionResolver(store *utils.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, created := store.Resolve(c.GetHeader(SessionHeader))
		if created {
			utils.Sugar.Debugw("session created", "session", sess.ID)
		}
		c.Set(utils.ContextSessionKey, sess.ID)
		c.Set(contextSessionObjKey, sess)
		c.Header(SessionHeader, sess.ID)
		c.Next()
	}
}

// CurrentSession returns the session attached by SessionResolver.
func CurrentSession(c *gin.Context) (*utils.Session, bool) {
	v, ok := c.Get(contextSessionObjKey)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*utils.Session)
	return sess, ok
}
