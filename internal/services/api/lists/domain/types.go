// Package domain holds the prospect list shapes
package domain

import "time"

// ProspectList groups leads by id; membership is a set
type ProspectList struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	LeadIDs     []string  `json:"leadIds"`
	CreatedAt   time.Time `json:"createdAt"`
}

// AddIDs returns existing with the missing entries of add appended
// duplicates never enter; adding a present id is a no-op
func AddIDs(existing, add []string) []string {
	seen := make(map[string]struct{}, len(existing))
	out := make([]string, 0, len(existing)+len(add))
	for _, id := range existing {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	for _, id := range add {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// RemoveIDs returns existing without any entry of remove
// removing an absent id is a no-op
func RemoveIDs(existing, remove []string) []string {
	drop := make(map[string]struct{}, len(remove))
	for _, id := range remove {
		drop[id] = struct{}{}
	}
	out := make([]string, 0, len(existing))
	for _, id := range existing {
		if _, ok := drop[id]; ok {
			continue
		}
		out = append(out, id)
	}
	return out
}
