package sync

// SyncData carries one Delta per entity, keyed by payload name. Every entity
// is always present, empty or not.
type SyncData map[string]Delta

// Summary aggregates bucket sizes across all entities.
type Summary struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Deleted int `json:"deleted"`
}

// PushSummary extends Summary with the push-only counters.
type PushSummary struct {
	Summary
	ConflictsCount int `json:"conflictsCount"`
	ErrorsCount    int `json:"errorsCount"`
}

// AppliedCount tallies successfully applied changes for one entity.
type AppliedCount struct {
	Upserted int `json:"upserted"`
	Deleted  int `json:"deleted"`
}

// Conflict reports a change rejected because the server row postdates the
// client's cursor. Nothing was written for it.
type Conflict struct {
	Entity string `json:"entity"`
	ID     any    `json:"id"`
	Reason string `json:"reason"`
}

// ItemError reports a change that failed at the storage level. Sibling
// changes in the same push are unaffected.
type ItemError struct {
	Entity string `json:"entity"`
	ID     any    `json:"id"`
	Error  string `json:"error"`
}

// PushResults is the per-entity outcome of the apply phase of a push.
type PushResults struct {
	Applied   map[string]*AppliedCount `json:"applied"`
	Conflicts []Conflict               `json:"conflicts"`
	Errors    []ItemError              `json:"errors"`
}

// ChangeSet is the client-side change list for one entity.
type ChangeSet struct {
	Upserts []Row `json:"upserts"`
	Deletes []Row `json:"deletes"`
}

// PushRequest is the change envelope a device submits. Since may be an
// ISO-8601 string or an epoch-millisecond number.
type PushRequest struct {
	DeviceID   string               `json:"device_id"`
	ClientTime int64                `json:"client_time"`
	Since      any                  `json:"since"`
	Changes    map[string]ChangeSet `json:"changes"`
}

// PullResponse is the envelope of GET /api/sync.
type PullResponse struct {
	Since      int64    `json:"since"`
	ServerTime int64    `json:"server_time"`
	Data       SyncData `json:"data"`
	Summary    Summary  `json:"summary"`
}

// PushResponse is the envelope of POST /api/sync: the outcome of the push
// plus a fresh pull from the same cursor.
type PushResponse struct {
	DeviceID   string       `json:"device_id"`
	ClientTime int64        `json:"client_time"`
	Since      int64        `json:"since"`
	ServerTime int64        `json:"server_time"`
	Results    *PushResults `json:"results"`
	Data       SyncData     `json:"data"`
	Summary    PushSummary  `json:"summary"`
}

func newPushResults() *PushResults {
	r := &PushResults{
		Applied:   make(map[string]*AppliedCount, len(Entities)),
		Conflicts: []Conflict{},
		Errors:    []ItemError{},
	}
	for _, d := range Entities {
		r.Applied[d.Name] = &AppliedCount{}
	}
	return r
}

func summarize(data SyncData) Summary {
	var s Summary
	for _, delta := range data {
		s.Created += len(delta.Created)
		s.Updated += len(delta.Updated)
		s.Deleted += len(delta.Deleted)
	}
	return s
}
