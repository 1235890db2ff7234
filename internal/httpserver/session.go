package httpserver

import (
	"context"
	"net/http"
	"sync"

	"storefront/internal/service/cart"
	"storefront/internal/service/session"
	"storefront/internal/service/wishlist"
	"storefront/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionHeader = "X-Session-ID"
	sessionCookie = "sid"
	cookieMaxAge  = 60 * 60 * 24 * 365
)

type ctxKey string

const sessionCtxKey ctxKey = "session"

// sessionLocks hands out one mutex per session id so requests from the same browser
// run one at a time. Entries are dropped once no request holds them.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: make(map[string]*sessionLock)}
}

func (s *sessionLocks) lock(id string) func() {
	s.mu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &sessionLock{}
		s.locks[id] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, id)
		}
		s.mu.Unlock()
	}
}

func (s *sessionLocks) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.locks)
}

// sessionMiddleware resolves the browser session from the header or cookie, issuing a
// new id when neither is present, and serialises requests per session.
func sessionMiddleware(locks *sessionLocks) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(sessionHeader)
		if id == "" {
			id, _ = c.Cookie(sessionCookie)
		}
		if id == "" {
			id = uuid.NewString()
		} else {
			u, err := uuid.Parse(id)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
				return
			}
			// Braced, urn and bare-hex spellings all map to one canonical id.
			id = u.String()
		}

		c.Header(sessionHeader, id)
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(sessionCookie, id, cookieMaxAge, "/", "", false, true)

		unlock := locks.lock(id)
		defer unlock()

		ctx := context.WithValue(c.Request.Context(), sessionCtxKey, id)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	id, _ := c.Request.Context().Value(sessionCtxKey).(string)
	return id
}

func (a *api) sessionStore(c *gin.Context) storage.Store {
	return storage.ForSession(a.store, sessionID(c))
}

func (a *api) loadCart(c *gin.Context) (*cart.Container, error) {
	return cart.Load(c.Request.Context(), a.sessionStore(c), a.logger)
}

func (a *api) loadWishlist(c *gin.Context) (*wishlist.Container, error) {
	return wishlist.Load(c.Request.Context(), a.sessionStore(c), a.logger)
}

func (a *api) loadSession(c *gin.Context) (*session.Container, error) {
	return session.Load(c.Request.Context(), a.sessionStore(c), a.auth, a.logger)
}
