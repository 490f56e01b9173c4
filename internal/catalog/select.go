package catalog

import (
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/alfazet/musing/internal/model"
)

// Group is one output group of a select query: the group_by key values plus
// the projected data rows.
type Group struct {
	Key  map[model.Tag]string
	Data [][]string
}

// Select evaluates spec.md §4.2's select pipeline: filter, project, group,
// sort. Grounded on original_source/src/database.rs::select/unique, ported
// to Go with samber/lo's Filter/GroupBy in place of Rust's iterator chain
// (the GiGurra-tofu pack repo reaches for samber/lo the same way for this
// kind of filter-then-group pipeline).
func (c *Catalog) Select(tags []model.Tag, filters []model.Filter, groupBy []model.Tag, comparators []model.Comparator) []Group {
	matched := lo.Filter(c.All(), func(s *model.Song, _ int) bool {
		return model.MatchesAll(filters, s)
	})

	sort.SliceStable(matched, func(i, j int) bool {
		return model.Chain(comparators, matched[i], matched[j]) < 0
	})

	if len(groupBy) == 0 {
		data := make([][]string, 0, len(matched))
		for _, s := range matched {
			data = append(data, projectRow(s, tags))
		}
		return []Group{{Key: map[model.Tag]string{}, Data: data}}
	}

	groups := lo.GroupBy(matched, func(s *model.Song) string {
		return groupKeyString(s, groupBy)
	})

	// Preserve first-appearance order among group keys, since matched is
	// already sorted and the group key string is a stable function of it.
	order := make([]string, 0, len(groups))
	seen := make(map[string]bool, len(groups))
	for _, s := range matched {
		k := groupKeyString(s, groupBy)
		if !seen[k] {
			seen[k] = true
			order = append(order, k)
		}
	}

	out := make([]Group, 0, len(order))
	for _, k := range order {
		members := groups[k]
		key := make(map[model.Tag]string, len(groupBy))
		for _, t := range groupBy {
			v, _ := members[0].TagValue(t)
			key[t] = v
		}
		data := make([][]string, 0, len(members))
		for _, s := range members {
			data = append(data, projectRow(s, tags))
		}
		out = append(out, Group{Key: key, Data: data})
	}
	return out
}

func projectRow(s *model.Song, tags []model.Tag) []string {
	row := make([]string, 0, len(tags)+1)
	for _, t := range tags {
		v, _ := s.TagValue(t)
		row = append(row, v)
	}
	row = append(row, s.Path)
	return row
}

func groupKeyString(s *model.Song, groupBy []model.Tag) string {
	parts := make([]string, len(groupBy))
	for i, t := range groupBy {
		v, _ := s.TagValue(t)
		parts[i] = v
	}
	return strings.Join(parts, "\x1f")
}
