package api

import (
	"net/http"

	"github.com/tnwae/nuventure/internal/version"
	"github.com/tnwae/nuventure/server/result"
)

// HTTPGetInfo returns a HandlerFunc that retrieves information on the API and
// server.
func (api API) HTTPGetInfo() http.HandlerFunc {
	return api.httpEndpoint(api.epGetInfo)
}

func (api API) epGetInfo(req *http.Request) result.Result {
	var resp InfoModel
	resp.Version.Server = version.ServerCurrent
	resp.Version.Nuventure = version.Current
	resp.Verbs = len(api.Backend.Verbs())

	return result.OK(resp, "client got API info")
}
