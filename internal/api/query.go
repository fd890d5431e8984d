package api

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/starford/scholarmap/internal/apperr"
	"github.com/starford/scholarmap/internal/filter"
	"github.com/starford/scholarmap/internal/ordering"
	"github.com/starford/scholarmap/internal/profileservice"
)

// parseState reads filter parameters. Interest selections are only activated
// when their parameter is present; std_mode=1 activates the standardized
// filter with an empty selection.
func parseState(q url.Values) filter.State {
	s := filter.State{
		Query:    q.Get("q"),
		Track:    q.Get("track"),
		Subtrack: q.Get("subtrack"),
		Area:     q.Get("area"),
		Category: q.Get("category"),
		Areas:    q["areas"],
	}
	if q.Has("interests") {
		s.RawInterests = selection(q["interests"])
	}
	if q.Has("std") || q.Get("std_mode") == "1" {
		s.StandardizedInterests = selection(q["std"])
	}
	return s
}

func selection(terms []string) map[string]bool {
	sel := make(map[string]bool, len(terms))
	for _, t := range terms {
		if t != "" {
			sel[t] = true
		}
	}
	return sel
}

func parseInt(q url.Values, name string) (int, error) {
	v := q.Get(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", apperr.ErrInvalidFilter, name)
	}
	return n, nil
}

func parseSeed(q url.Values) (uint64, error) {
	v := q.Get("seed")
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil || n > ordering.MaxSeed {
		return 0, fmt.Errorf("%w: seed must be an integer in [0, %d]", apperr.ErrInvalidFilter, uint64(ordering.MaxSeed))
	}
	return n, nil
}

// parseQuery builds a list query from request parameters.
func parseQuery(q url.Values) (profileservice.Query, error) {
	key, err := ordering.ParseKey(q.Get("sort"))
	if err != nil {
		return profileservice.Query{}, fmt.Errorf("%w: %v", apperr.ErrInvalidFilter, err)
	}
	limit, err := parseInt(q, "limit")
	if err != nil {
		return profileservice.Query{}, err
	}
	offset, err := parseInt(q, "offset")
	if err != nil {
		return profileservice.Query{}, err
	}
	seed, err := parseSeed(q)
	if err != nil {
		return profileservice.Query{}, err
	}
	return profileservice.Query{State: parseState(q), Sort: key, Seed: seed, Limit: limit, Offset: offset}, nil
}
