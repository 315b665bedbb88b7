// pkg/registry/registry.go
package registry

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"mergington-activities/internal/common/errors"
)

//go:embed seed.json
var seedCatalog []byte

// Registry holds all activities in process memory, keyed by name. The
// activity set is fixed after construction; only each activity's participant
// sequence mutates. All operations take the mutex, so the registry is safe
// for concurrent request handlers.
type Registry struct {
	mu         sync.RWMutex
	activities map[string]*Activity
}

// New builds a registry from a validated catalog.
func New(catalog *Catalog) *Registry {
	activities := make(map[string]*Activity, len(catalog.Activities))
	for name, activity := range catalog.Activities {
		a := activity.clone()
		if a.Participants == nil {
			a.Participants = []string{}
		}
		activities[name] = &a
	}
	return &Registry{activities: activities}
}

// LoadCatalog reads and validates a catalog document from a file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return ParseCatalog(data)
}

// ParseCatalog validates a raw catalog document against the embedded schema
// and unmarshals it.
func ParseCatalog(data []byte) (*Catalog, error) {
	if err := ValidateCatalog(data); err != nil {
		return nil, err
	}
	var catalog Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, errors.NewCatalogInvalidError(err.Error())
	}
	return &catalog, nil
}

// Default builds a registry from the embedded seed catalog.
func Default() (*Registry, error) {
	catalog, err := ParseCatalog(seedCatalog)
	if err != nil {
		return nil, err
	}
	return New(catalog), nil
}

// Load builds a registry from a catalog file, falling back to the embedded
// seed when path is empty.
func Load(path string) (*Registry, error) {
	if path == "" {
		return Default()
	}
	catalog, err := LoadCatalog(path)
	if err != nil {
		return nil, err
	}
	return New(catalog), nil
}

// List returns the full mapping of name to activity record, including
// current participants. The result is a deep copy.
func (r *Registry) List() map[string]Activity {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]Activity, len(r.activities))
	for name, activity := range r.activities {
		out[name] = activity.clone()
	}
	return out
}

// Get returns a copy of a single activity record.
func (r *Registry) Get(activityName string) (Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	activity, exists := r.activities[activityName]
	if !exists {
		return Activity{}, errors.NewActivityNotFoundError(activityName)
	}
	return activity.clone(), nil
}

// Enroll appends email to the activity's participant sequence. It fails when
// the activity does not exist or the email is already registered.
// max_participants is advisory and never enforced.
func (r *Registry) Enroll(activityName, email string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	activity, exists := r.activities[activityName]
	if !exists {
		return "", errors.NewActivityNotFoundError(activityName)
	}
	if containsEmail(activity.Participants, email) {
		return "", errors.NewDuplicateSignupError(activityName, email)
	}

	activity.Participants = append(activity.Participants, email)
	return fmt.Sprintf("Signed up %s for %s", email, activityName), nil
}

// Withdraw removes email from the activity's participant sequence,
// preserving the relative order of the remaining entries. It fails when the
// activity does not exist or the email is not registered.
func (r *Registry) Withdraw(activityName, email string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	activity, exists := r.activities[activityName]
	if !exists {
		return "", errors.NewActivityNotFoundError(activityName)
	}
	if !containsEmail(activity.Participants, email) {
		return "", errors.NewNotRegisteredError(activityName, email)
	}

	remaining := activity.Participants[:0]
	for _, participant := range activity.Participants {
		if participant != email {
			remaining = append(remaining, participant)
		}
	}
	activity.Participants = remaining
	return fmt.Sprintf("Unregistered %s from %s", email, activityName), nil
}

// Len reports the number of activities in the registry.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.activities)
}

func containsEmail(participants []string, email string) bool {
	for _, participant := range participants {
		if participant == email {
			return true
		}
	}
	return false
}
