package server

import (
	"fmt"
	"regexp"

	"github.com/alfazet/musing/internal/apperr"
	"github.com/alfazet/musing/internal/model"
	"github.com/alfazet/musing/internal/transport"
)

func handleLs(s *Server, sess *session, req transport.Request) (transport.Response, error) {
	var dir string
	if _, err := req.Arg("dir", &dir); err != nil {
		return nil, fmt.Errorf("%w: dir", apperr.ErrMalformedRequest)
	}
	paths, err := s.catalog.Ls(dir)
	if err != nil {
		return nil, err
	}
	return transport.OK(map[string]any{"paths": paths}), nil
}

func handleMetadata(s *Server, sess *session, req transport.Request) (transport.Response, error) {
	var paths []string
	if _, err := req.Arg("paths", &paths); err != nil {
		return nil, fmt.Errorf("%w: paths", apperr.ErrMalformedRequest)
	}

	var tagNames []string
	hasTags, err := req.Arg("tags", &tagNames)
	if err != nil {
		return nil, fmt.Errorf("%w: tags", apperr.ErrMalformedRequest)
	}
	var allTags bool
	req.Arg("all_tags", &allTags)

	var tags []model.Tag
	if hasTags {
		for _, name := range tagNames {
			t, err := model.ParseTag(name)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", apperr.ErrUnknownTag, err)
			}
			tags = append(tags, t)
		}
	}

	results := s.catalog.Metadata(paths, tags, allTags || !hasTags)
	out := make([]map[string]string, len(results))
	for i, m := range results {
		row := make(map[string]string, len(m))
		for k, v := range m {
			row[string(k)] = v
		}
		out[i] = row
	}
	return transport.OK(map[string]any{"metadata": out}), nil
}

type wireFilter struct {
	Kind     string `json:"kind"`
	Tag      string `json:"tag"`
	Regex    string `json:"regex"`
	Inverted bool   `json:"inverted"`
}

type wireComparator struct {
	Tag   string `json:"tag"`
	Order string `json:"order"`
}

func handleSelect(s *Server, sess *session, req transport.Request) (transport.Response, error) {
	var tagNames []string
	req.Arg("tags", &tagNames)
	tags, err := parseTagList(tagNames)
	if err != nil {
		return nil, err
	}

	var wireFilters []wireFilter
	req.Arg("filters", &wireFilters)
	filters := make([]model.Filter, 0, len(wireFilters))
	for _, wf := range wireFilters {
		if wf.Kind != "regex" && wf.Kind != "" {
			return nil, fmt.Errorf("%w: unknown filter kind %q", apperr.ErrMalformedRequest, wf.Kind)
		}
		if wf.Tag == "" || wf.Regex == "" {
			return nil, fmt.Errorf("%w: filter missing tag/regex", apperr.ErrMalformedRequest)
		}
		tag, err := model.ParseTag(wf.Tag)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperr.ErrUnknownTag, err)
		}
		re, err := regexp.Compile(wf.Regex)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperr.ErrInvalidRegex, err)
		}
		filters = append(filters, model.Filter{Tag: tag, Regex: re, Inverted: wf.Inverted})
	}

	var groupByNames []string
	req.Arg("group_by", &groupByNames)
	groupBy, err := parseTagList(groupByNames)
	if err != nil {
		return nil, err
	}

	var wireComparators []wireComparator
	req.Arg("comparators", &wireComparators)
	comparators := make([]model.Comparator, 0, len(wireComparators))
	for _, wc := range wireComparators {
		tag, err := model.ParseTag(wc.Tag)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperr.ErrUnknownTag, err)
		}
		order, err := model.ParseOrder(wc.Order)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperr.ErrMalformedRequest, err)
		}
		comparators = append(comparators, model.Comparator{Tag: tag, Order: order})
	}

	groups := s.catalog.Select(tags, filters, groupBy, comparators)
	out := make([]map[string]any, len(groups))
	for i, g := range groups {
		obj := make(map[string]any, len(g.Key)+1)
		for k, v := range g.Key {
			obj[string(k)] = v
		}
		obj["data"] = g.Data
		out[i] = obj
	}
	return transport.OK(map[string]any{"values": out}), nil
}

func parseTagList(names []string) ([]model.Tag, error) {
	tags := make([]model.Tag, 0, len(names))
	for _, n := range names {
		t, err := model.ParseTag(n)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperr.ErrUnknownTag, err)
		}
		tags = append(tags, t)
	}
	return tags, nil
}

func handleUpdate(s *Server, sess *session, req transport.Request) (transport.Response, error) {
	if err := s.catalog.Update(); err != nil {
		return nil, err
	}
	return transport.OK(nil), nil
}
