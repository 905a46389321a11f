// Package pattern groups universities that share the same tier pattern so
// identical weighting schemes can be reviewed and computed together.
package pattern

import (
	"fmt"
	"sort"
	"strings"

	"github.com/okian/admitscore/internal/domain/model"
)

var prefixes = map[model.Category]string{
	model.CategoryKorean:  "K",
	model.CategoryMath:    "M",
	model.CategoryEnglish: "E",
	model.CategoryInquiry: "I",
	model.CategoryHistory: "H",
	model.CategoryForeign: "F",
}

// Key renders the tier of every category, e.g. K1_M1_E2_I1_H0_F0.
func Key(cond model.UniversityCondition) string {
	parts := make([]string, 0, len(model.Categories))
	for _, c := range model.Categories {
		parts = append(parts, fmt.Sprintf("%s%d", prefixes[c], cond.TierOf(c)))
	}
	return strings.Join(parts, "_")
}

// Stat is the size of one pattern group.
type Stat struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Registry maps pattern keys to university ids.
type Registry struct {
	groups map[string][]string
}

// Build groups conditions by pattern key. Ids keep input order within a group.
func Build(conds []model.UniversityCondition) Registry {
	r := Registry{groups: make(map[string][]string)}
	for _, c := range conds {
		k := Key(c)
		r.groups[k] = append(r.groups[k], c.ID)
	}
	return r
}

// Groups returns a copy of the key to ids mapping.
func (r Registry) Groups() map[string][]string {
	out := make(map[string][]string, len(r.groups))
	for k, ids := range r.groups {
		out[k] = append([]string(nil), ids...)
	}
	return out
}

// IDs returns the universities sharing a key.
func (r Registry) IDs(key string) []string {
	return append([]string(nil), r.groups[key]...)
}

// Stats lists groups by size descending, then key.
func (r Registry) Stats() []Stat {
	out := make([]Stat, 0, len(r.groups))
	for k, ids := range r.groups {
		out = append(out, Stat{Key: k, Count: len(ids)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// Len returns the number of distinct patterns.
func (r Registry) Len() int { return len(r.groups) }
