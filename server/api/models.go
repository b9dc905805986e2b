package api

// InfoModel is the response to GET /info.
type InfoModel struct {
	Version struct {
		Server    string `json:"server"`
		Nuventure string `json:"nuventure"`
	} `json:"version"`
	Verbs int `json:"verbs"`
}

// VerbModel describes one definition of the verb table.
type VerbModel struct {
	Name  string   `json:"name"`
	Keys  []string `json:"keys"`
	Help  string   `json:"help,omitempty"`
	Usage string   `json:"usage,omitempty"`
}

// ResolveRequest is the body of POST /resolve.
type ResolveRequest struct {
	Input   string `json:"input"`
	Session string `json:"session,omitempty"`
}

// ErrorModel describes why a line failed to resolve.
type ErrorModel struct {
	Kind string `json:"kind"`
	Verb string `json:"verb,omitempty"`
	Arg  string `json:"arg,omitempty"`
}

// ResolveModel is the response to POST /resolve.
type ResolveModel struct {
	Session     string      `json:"session"`
	Seq         int         `json:"seq,omitempty"`
	Input       string      `json:"input"`
	State       string      `json:"state"`
	Verb        string      `json:"verb,omitempty"`
	Target      string      `json:"target,omitempty"`
	Implement   string      `json:"implement,omitempty"`
	Help        []string    `json:"help,omitempty"`
	Suggestions []string    `json:"suggestions,omitempty"`
	Message     string      `json:"message,omitempty"`
	Error       *ErrorModel `json:"error,omitempty"`
}

// JournalEntryModel is one entry in the response to GET
// /sessions/{id}/journal.
type JournalEntryModel struct {
	ID        string `json:"id"`
	Seq       int    `json:"seq"`
	Input     string `json:"input"`
	State     string `json:"state"`
	Verb      string `json:"verb,omitempty"`
	Target    string `json:"target,omitempty"`
	Implement string `json:"implement,omitempty"`
	ErrorKind string `json:"error_kind,omitempty"`
	Created   string `json:"created"`
}
