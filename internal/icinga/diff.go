package icinga

import (
	"encoding/json"
	"fmt"
)

// Diff holds the attributes that differ between remote and desired state,
// stringified for reporting. Before and After always carry the same key set;
// both are empty when the states are equivalent.
//
// Only keys present in both states are compared. Server-managed keys that
// appear only remotely are ignored, and desired-only keys are deliberately
// not reported here: that class of drift is implied by the existence
// decision, not by the diff payload.
type Diff struct {
	Before map[string]string `json:"before"`
	After  map[string]string `json:"after"`
}

// NewDiff returns an empty Diff with both maps allocated, so the reported
// result always carries the before/after shape.
func NewDiff() Diff {
	return Diff{Before: map[string]string{}, After: map[string]string{}}
}

// Empty reports whether no attribute differs.
func (d Diff) Empty() bool {
	return len(d.Before) == 0 && len(d.After) == 0
}

// ComputeDiff compares remote state against the desired state. Remote values
// are scrubbed into comparable primitives, then both sides are canonically
// stringified before comparison so representation mismatches ("1" vs 1)
// never produce false positives.
func ComputeDiff(remote RemoteState, desired DesiredState) (Diff, error) {
	diff := NewDiff()

	for key, remoteValue := range remote {
		desiredValue, shared := desired[key]
		if !shared {
			continue
		}

		scrubbed, err := scrubValue(key, remoteValue)
		if err != nil {
			return NewDiff(), err
		}

		before := canonical(scrubbed)
		after := canonical(desiredValue)
		if before != after {
			diff.Before[key] = before
			diff.After[key] = after
		}
	}

	return diff, nil
}

// canonical renders a value into its canonical string form: strings
// verbatim, everything else as compact JSON. encoding/json sorts map keys,
// which keeps the rendering deterministic, while slice order is preserved.
func canonical(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(encoded)
	}
}
