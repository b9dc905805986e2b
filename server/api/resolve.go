package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/tnwae/nuventure/internal/nverrors"
	"github.com/tnwae/nuventure/server/middle"
	"github.com/tnwae/nuventure/server/result"
	"github.com/tnwae/nuventure/server/serr"
)

// HTTPResolve returns a HandlerFunc that resolves a line of input. The line is
// never invoked; the response describes what it resolved to.
func (api API) HTTPResolve() http.HandlerFunc {
	return api.httpEndpoint(api.epResolve)
}

// POST /resolve: resolve one line of input.
func (api API) epResolve(req *http.Request) result.Result {
	var body ResolveRequest
	if err := parseJSON(req, &body); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}

	session, err := uuidOrNil(body.Session)
	if err != nil {
		return result.BadRequest("session: not a valid UUID", "bad session %q", body.Session)
	}
	if session == uuid.Nil {
		session = middle.SessionFrom(req.Context())
	}

	res, err := api.Backend.Resolve(req.Context(), session, body.Input)
	if err != nil {
		return result.InternalServerError("resolve: %s", err.Error())
	}

	resp := ResolveModel{
		Session:     res.Session.String(),
		Seq:         res.Seq,
		Input:       res.Input,
		State:       res.Outcome.State.String(),
		Verb:        res.Outcome.Verb,
		Help:        res.Outcome.Help,
		Suggestions: res.Outcome.Suggestions,
		Message:     res.Message,
	}
	if res.Outcome.Action != nil {
		resp.Target = res.Outcome.Action.Target()
		resp.Implement = res.Outcome.Action.Implement()
	}

	var nvErr *nverrors.Error
	if errors.As(res.Err, &nvErr) {
		resp.Error = &ErrorModel{
			Kind: nvErr.Kind.Key(),
			Verb: nvErr.Verb,
			Arg:  nvErr.Arg,
		}
	}

	return result.OK(resp, "session %s resolved %q as %s", resp.Session, resp.Input, resp.State)
}

// HTTPGetJournal returns a HandlerFunc that gets the journal of the session
// in the URL.
func (api API) HTTPGetJournal() http.HandlerFunc {
	return api.httpEndpoint(api.epGetJournal)
}

// GET /sessions/{id}/journal: get every line a session has sent.
func (api API) epGetJournal(req *http.Request) result.Result {
	id, err := getURLParam(req, "id", uuid.Parse)
	if err != nil {
		return result.BadRequest("session ID is not a valid UUID", err.Error())
	}

	entries, err := api.Backend.Journal(req.Context(), id)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound(err.Error())
		}
		return result.InternalServerError(err.Error())
	}

	resp := make([]JournalEntryModel, len(entries))
	for i, e := range entries {
		resp[i] = JournalEntryModel{
			ID:        e.ID.String(),
			Seq:       e.Seq,
			Input:     e.Input,
			State:     e.Outcome,
			Verb:      e.Verb,
			Target:    e.Target,
			Implement: e.Implement,
			ErrorKind: e.ErrorKind,
			Created:   e.Created.Format(time.RFC3339),
		}
	}

	return result.OK(resp, "client got %d journal entries for session %s", len(resp), id)
}
