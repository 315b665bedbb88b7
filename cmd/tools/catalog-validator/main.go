// cmd/tools/catalog-validator/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"mergington-activities/pkg/registry"
)

// catalog-validator checks an activity catalog file against the catalog
// schema before it is shipped to a server. Run with no -path to check the
// embedded seed catalog.
func main() {
	path := flag.String("path", "", "Path to a catalog JSON file (empty validates the embedded seed)")
	flag.Parse()

	reg, err := registry.Load(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "catalog validation failed: %v\n", err)
		os.Exit(1)
	}

	activities := reg.List()
	names := make([]string, 0, len(activities))
	for name := range activities {
		names = append(names, name)
	}
	sort.Strings(names)

	source := *path
	if source == "" {
		source = "embedded seed"
	}
	fmt.Printf("Catalog OK (%s): %d activities\n", source, len(names))
	for _, name := range names {
		activity := activities[name]
		fmt.Printf("  %-20s %d/%d participants\n",
			name, len(activity.Participants), activity.MaxParticipants)
	}
}
