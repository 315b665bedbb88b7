// pkg/registry/schema.go
package registry

// Catalog is the versioned seed document the registry is built from.
type Catalog struct {
	Version     string              `json:"version"`
	LastUpdated string              `json:"lastUpdated"`
	Activities  map[string]Activity `json:"activities"`
}

// Activity is one extracurricular offering. The JSON field names are the
// wire contract for GET /activities.
type Activity struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// clone returns a deep copy so callers never alias registry state.
func (a Activity) clone() Activity {
	out := a
	out.Participants = make([]string, len(a.Participants))
	copy(out.Participants, a.Participants)
	return out
}
