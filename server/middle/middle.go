// Package middle contains middleware for use with the Nuventure server.
package middle

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/cors"
	"github.com/tnwae/nuventure/server/result"
)

// HeaderSession is the request header a client may name its session in.
const HeaderSession = "X-Nuventure-Session"

// Middleware is a function that takes a handler and returns a new handler which
// wraps the given one and provides some additional functionality.
type Middleware func(next http.Handler) http.Handler

// SessionKey is a key in the context of a request populated by a
// SessionHandler.
type SessionKey int64

const (
	// SessionID holds the uuid.UUID given in HeaderSession, or uuid.Nil if
	// the header was absent.
	SessionID SessionKey = iota
)

// SessionHandler is middleware that reads the session a request belongs to
// from its headers and adds it to the request context before passing the
// request on. A malformed session header gets an HTTP-400 and the request
// goes no further.
type SessionHandler struct {
	next http.Handler
}

func (sh *SessionHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	id := uuid.Nil

	if hdr := req.Header.Get(HeaderSession); hdr != "" {
		var err error
		id, err = uuid.Parse(hdr)
		if err != nil {
			result.BadRequest(HeaderSession+": not a valid UUID", "bad session header %q", hdr).WriteResponse(w)
			return
		}
	}

	ctx := context.WithValue(req.Context(), SessionID, id)
	sh.next.ServeHTTP(w, req.WithContext(ctx))
}

// Session returns middleware that adds the requesting session to the
// context.
func Session() Middleware {
	return func(next http.Handler) http.Handler {
		return &SessionHandler{next: next}
	}
}

// SessionFrom returns the session added to ctx by a SessionHandler, or
// uuid.Nil if there is none.
func SessionFrom(ctx context.Context) uuid.UUID {
	id, ok := ctx.Value(SessionID).(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}

// CORS returns middleware that answers cross-origin requests from the given
// origins. A single "*" allows every origin.
func CORS(origins []string) Middleware {
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type", HeaderSession},
	})
	return c.Handler
}
