package parameterservice

import (
	platformservice "github.com/redjax/kparams/internal/services/platformService"
)

// Action writes parameters into the store. A nil Action is a no-op placeholder.
type Action func(s *Store)

// Record is an initialization guarded by a device/build pattern pair.
type Record struct {
	// Name identifies the action in diagnostics.
	Name   string
	Device Pattern
	Build  Pattern
	Action Action
}

// Registry is an ordered list of records. Order matters when several records
// match: later actions overwrite earlier writes.
type Registry []Record

// Run invokes the action of every record matching id, in declaration order,
// and returns how many actions ran. Matching records without an action are
// skipped and not counted.
func (r Registry) Run(store *Store, id platformservice.Identity, m Matcher) int {
	count := 0
	for _, rec := range r {
		if !RecordMatches(m, id, rec) {
			continue
		}
		if rec.Action == nil {
			continue
		}
		rec.Action(store)
		count++
	}
	return count
}

