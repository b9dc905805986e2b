package api

import (
	"net/http"

	"github.com/tnwae/nuventure/server/result"
)

// HTTPGetAllVerbs returns a HandlerFunc that lists the verb table. Cheat
// verbs are left out.
func (api API) HTTPGetAllVerbs() http.HandlerFunc {
	return api.httpEndpoint(api.epGetAllVerbs)
}

func (api API) epGetAllVerbs(req *http.Request) result.Result {
	defs := api.Backend.Verbs()

	resp := make([]VerbModel, 0, len(defs))
	for _, d := range defs {
		if d.Cheat() {
			continue
		}
		resp = append(resp, VerbModel{
			Name:  d.Name,
			Keys:  d.Keys(),
			Help:  d.Help,
			Usage: api.Backend.HelpLine(d),
		})
	}

	return result.OK(resp, "client got %d verbs", len(resp))
}
