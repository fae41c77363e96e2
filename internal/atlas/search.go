// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package atlas

import (
	"cmp"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/taibuivan/shanhai/pkg/slug"
)

const (
	// DefaultSearchLimit caps [Catalog.Search] results when no limit is given.
	DefaultSearchLimit = 10
	// MaxQueryRunes bounds the query text compared by [Catalog.Search].
	MaxQueryRunes = 64
)

// EntityKind names the record type of a search [Match].
type EntityKind string

const (
	EntityLocation EntityKind = "location"
	EntityWater    EntityKind = "water"
	EntityCreature EntityKind = "creature"
)

// kindRank breaks score ties: mountains first, then waters, then creatures.
var kindRank = map[EntityKind]int{EntityLocation: 0, EntityWater: 1, EntityCreature: 2}

// Match is a single search hit.
type Match struct {
	Kind   EntityKind `json:"kind"`
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	NameZh string     `json:"name_zh"`
	Score  float64    `json:"score"`
}

// Search finds records whose names resemble query.
//
// Latin names and ids are compared in slug form: exact match, prefix,
// substring, then per-word Levenshtein distance within a length-based limit.
// Chinese names are matched by substring on the raw query. Queries longer
// than [MaxQueryRunes] are truncated.
func (c *Catalog) Search(query string, limit int) []Match {
	raw := truncateRunes(strings.TrimSpace(query), MaxQueryRunes)
	folded := slug.From(raw)
	if raw == "" {
		return nil
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	var matches []Match
	consider := func(kind EntityKind, id, name, nameZh string) {
		score := max(scoreLatin(folded, id), scoreLatin(folded, name), scoreHan(raw, nameZh))
		if score > 0 {
			matches = append(matches, Match{Kind: kind, ID: id, Name: name, NameZh: nameZh, Score: score})
		}
	}

	for _, loc := range c.locations {
		consider(EntityLocation, loc.ID, loc.Name, loc.NameZh)
	}
	for _, water := range c.waters {
		consider(EntityWater, water.ID, water.Name, water.NameZh)
	}
	for _, creature := range c.creatures {
		consider(EntityCreature, creature.ID, creature.Name, creature.NameZh)
	}

	slices.SortStableFunc(matches, func(a, b Match) int {
		if a.Score != b.Score {
			return cmp.Compare(b.Score, a.Score)
		}
		if a.Kind != b.Kind {
			return cmp.Compare(kindRank[a.Kind], kindRank[b.Kind])
		}
		return cmp.Compare(a.Name, b.Name)
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// scoreLatin rates how well the folded query matches name.
func scoreLatin(folded, name string) float64 {
	key := slug.From(name)
	if folded == "" || key == "" {
		return 0
	}

	switch {
	case key == folded:
		return 1.0
	case strings.HasPrefix(key, folded) && len(folded) >= 2:
		return 0.9
	case strings.Contains(key, folded) && len(folded) >= 3:
		return 0.8
	}

	best := 0.0
	for _, word := range append(slug.Words(name), key) {
		if len(word) < 3 {
			continue
		}
		dist := levenshtein.ComputeDistance(folded, word)
		if dist > levenshteinLimit(len(word)) {
			continue
		}
		best = max(best, 0.72-0.08*float64(dist))
	}
	return best
}

// scoreHan rates a raw substring match against a Chinese name.
func scoreHan(raw, nameZh string) float64 {
	switch {
	case nameZh == "":
		return 0
	case nameZh == raw:
		return 1.0
	case strings.Contains(nameZh, raw):
		return 0.85
	}
	return 0
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

func truncateRunes(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return strings.TrimSpace(s[:i])
		}
		count++
	}
	return s
}
