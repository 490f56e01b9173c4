package model

import "regexp"

// Filter is a single regex predicate over one tag. A record missing the
// named tag never passes, regardless of Inverted.
type Filter struct {
	Tag      Tag
	Regex    *regexp.Regexp
	Inverted bool
}

// Matches evaluates the filter against one song.
func (f Filter) Matches(s *Song) bool {
	v, ok := s.TagValue(f.Tag)
	if !ok {
		return false
	}
	matched := f.Regex.MatchString(v)
	if f.Inverted {
		matched = !matched
	}
	return matched
}

// MatchesAll evaluates the conjunction of filters (select's "filters" arg).
func MatchesAll(filters []Filter, s *Song) bool {
	for _, f := range filters {
		if !f.Matches(s) {
			return false
		}
	}
	return true
}
