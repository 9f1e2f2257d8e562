package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/recgames/board-game-server/internal/repository"
)

// RequestParams unifies query string and JSON body parameters. Unparseable
// values are dropped silently everywhere: filtering is best effort, never a
// validation error.
type RequestParams struct {
	Query url.Values
	Body  map[string]any
}

// ParseRequest reads the query string and, for JSON requests, the body.
func ParseRequest(r *http.Request) *RequestParams {
	p := &RequestParams{Query: r.URL.Query()}
	if r.Body != nil && strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			p.Body = body
		}
	}
	return p
}

// splitParts expands raw values: strings are comma-split and trimmed, lists
// are flattened.
func splitParts(raw []any) []string {
	var parts []string
	for _, value := range raw {
		switch v := value.(type) {
		case string:
			for _, part := range strings.Split(v, ",") {
				if part = strings.TrimSpace(part); part != "" {
					parts = append(parts, part)
				}
			}
		case []any:
			parts = append(parts, splitParts(v)...)
		case float64:
			parts = append(parts, strconv.FormatFloat(v, 'f', -1, 64))
		case nil:
		default:
			parts = append(parts, fmt.Sprint(v))
		}
	}
	return parts
}

// Strings collects all values of key from body and query, comma-split.
func (p *RequestParams) Strings(key string) []string {
	var raw []any
	if p.Body != nil {
		if v, ok := p.Body[key]; ok {
			raw = append(raw, v)
		}
	}
	for _, v := range p.Query[key] {
		raw = append(raw, v)
	}
	return splitParts(raw)
}

// UintIDs collects the values of key parsed as ids, dropping what does not
// parse.
func (p *RequestParams) UintIDs(key string) []uint {
	var ids []uint
	for _, part := range p.Strings(key) {
		if id, err := strconv.ParseUint(part, 10, 64); err == nil {
			ids = append(ids, uint(id))
		}
	}
	return ids
}

// First returns the first value of key, or "".
func (p *RequestParams) First(key string) string {
	values := p.Strings(key)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// Bool parses the first value of key; missing or unparseable yields def.
func (p *RequestParams) Bool(key string, def bool) bool {
	first := p.First(key)
	if first == "" {
		return def
	}
	if parsed, err := strconv.ParseBool(strings.ToLower(first)); err == nil {
		return parsed
	}
	return def
}

// Int parses the first value of key; missing or unparseable yields def.
func (p *RequestParams) Int(key string, def int) int {
	if parsed, err := strconv.Atoi(p.First(key)); err == nil {
		return parsed
	}
	return def
}

// IntPtr parses the first value of key, nil when absent or unparseable.
func (p *RequestParams) IntPtr(key string) *int {
	if parsed, err := strconv.Atoi(p.First(key)); err == nil {
		return &parsed
	}
	return nil
}

// PositiveIntPtr is IntPtr restricted to values above zero. Thresholds like
// exclude_play_count=0 would match every collection row, so they are dropped.
func (p *RequestParams) PositiveIntPtr(key string) *int {
	if parsed := p.IntPtr(key); parsed != nil && *parsed > 0 {
		return parsed
	}
	return nil
}

// Date parses the first value of key as an ISO date or timestamp, UTC.
func (p *RequestParams) Date(key string) *time.Time {
	first := p.First(key)
	if first == "" {
		return nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if parsed, err := time.Parse(layout, first); err == nil {
			parsed = parsed.UTC()
			return &parsed
		}
	}
	return nil
}

// fieldKind drives value parsing of catalog filters.
type fieldKind int

const (
	kindInt fieldKind = iota
	kindFloat
	kindBool
)

// gameFilterFields whitelists the filterable catalog columns and their
// comparison operators.
var gameFilterFields = map[string]fieldKind{
	"year":                kindInt,
	"min_players":         kindInt,
	"max_players":         kindInt,
	"min_players_rec":     kindInt,
	"max_players_rec":     kindInt,
	"min_players_best":    kindInt,
	"max_players_best":    kindInt,
	"min_age":             kindInt,
	"max_age":             kindInt,
	"min_age_rec":         kindFloat,
	"max_age_rec":         kindFloat,
	"min_time":            kindInt,
	"max_time":            kindInt,
	"bgg_rank":            kindInt,
	"num_votes":           kindInt,
	"avg_rating":          kindFloat,
	"bayes_rating":        kindFloat,
	"rec_rank":            kindInt,
	"rec_rating":          kindFloat,
	"rec_stars":           kindFloat,
	"complexity":          kindFloat,
	"language_dependency": kindFloat,
	"cooperative":         kindBool,
	"compilation":         kindBool,
}

var gameFilterOps = map[string]repository.Op{
	"":       repository.OpExact,
	"gt":     repository.OpGT,
	"gte":    repository.OpGTE,
	"lt":     repository.OpLT,
	"lte":    repository.OpLTE,
	"isnull": repository.OpIsNull,
}

// gameRelationFilters whitelists the many-to-many membership filters.
var gameRelationFilters = map[string]struct{}{
	"designer":        {},
	"artist":          {},
	"game_type":       {},
	"category":        {},
	"mechanic":        {},
	"implements":      {},
	"integrates_with": {},
	"compilation_of":  {},
}

// gameOrderingFields whitelists the sortable columns.
var gameOrderingFields = map[string]struct{}{
	"year": {}, "min_players": {}, "max_players": {},
	"min_players_rec": {}, "max_players_rec": {},
	"min_players_best": {}, "max_players_best": {},
	"min_age": {}, "max_age": {}, "min_age_rec": {}, "max_age_rec": {},
	"min_time": {}, "max_time": {},
	"bgg_rank": {}, "num_votes": {}, "avg_rating": {}, "bayes_rating": {},
	"rec_rank": {}, "rec_rating": {}, "complexity": {}, "language_dependency": {},
}

// DefaultGameOrdering mirrors the catalog's rating-first default sort.
var DefaultGameOrdering = []string{"-rec_rating", "-bayes_rating", "-avg_rating"}

// GameQuery builds the standing catalog query from the request: whitelisted
// column predicates (field or field__op keys), relation filters, ordering
// and name search. Anything unrecognized or unparseable is ignored.
func (p *RequestParams) GameQuery() repository.GameQuery {
	q := repository.GameQuery{Search: p.First("search")}

	for key := range p.Query {
		field, opName, _ := strings.Cut(key, "__")
		if _, ok := gameRelationFilters[field]; ok && opName == "" {
			if ids := p.UintIDs(key); len(ids) > 0 {
				if q.Relations == nil {
					q.Relations = make(map[string]uint)
				}
				q.Relations[field] = ids[0]
			}
			continue
		}

		kind, ok := gameFilterFields[field]
		if !ok {
			continue
		}
		op, ok := gameFilterOps[opName]
		if !ok {
			continue
		}

		raw := p.First(key)
		var value any
		switch {
		case op == repository.OpIsNull:
			parsed, err := strconv.ParseBool(strings.ToLower(raw))
			if err != nil {
				continue
			}
			value = parsed
		case kind == kindBool:
			parsed, err := strconv.ParseBool(strings.ToLower(raw))
			if err != nil || op != repository.OpExact {
				continue
			}
			value = parsed
		case kind == kindInt:
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				continue
			}
			value = parsed
		default:
			parsed, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				continue
			}
			value = parsed
		}
		q.Predicates = append(q.Predicates, repository.Predicate{Field: field, Op: op, Value: value})
	}

	q.Ordering = p.Ordering(DefaultGameOrdering)
	return q
}

// Ordering parses the ordering parameter against the whitelist, falling back
// to def when nothing valid remains.
func (p *RequestParams) Ordering(def []string) []string {
	var ordering []string
	for _, part := range p.Strings("ordering") {
		field := strings.TrimPrefix(part, "-")
		if _, ok := gameOrderingFields[field]; ok {
			ordering = append(ordering, part)
		}
	}
	if len(ordering) == 0 {
		return def
	}
	return ordering
}
