package api

import (
	"net/http"
	"sort"
	"strconv"
)

// StickyParam is a request parameter re-encoded into pagination links so a
// next-page request carries the same personalization context without any
// server-side session state.
type StickyParam struct {
	Key string
	// Numeric values are parsed as ids (dropping what does not parse) and
	// sorted numerically; otherwise values sort lexically.
	Numeric bool
}

// Paginator implements page-number pagination with sticky parameters.
type Paginator struct {
	PageSize    int
	MaxPageSize int
	Sticky      []StickyParam
}

// Page reads page and page_size from the request, clamping to sane bounds.
func (pg *Paginator) Page(p *RequestParams) (page, pageSize int) {
	page = p.Int("page", 1)
	if page < 1 {
		page = 1
	}
	pageSize = p.Int("page_size", pg.PageSize)
	if pageSize < 1 {
		pageSize = pg.PageSize
	}
	if pageSize > pg.MaxPageSize {
		pageSize = pg.MaxPageSize
	}
	return page, pageSize
}

// Slice cuts one page out of items.
func Slice[T any](items []T, page, pageSize int) []T {
	offset := (page - 1) * pageSize
	if offset >= len(items) {
		return nil
	}
	end := offset + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// PageResponse is the pagination envelope.
type PageResponse struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  any     `json:"results"`
}

// Envelope builds the response envelope with next/previous links.
func (pg *Paginator) Envelope(r *http.Request, p *RequestParams, count int64, page, pageSize int, results any) *PageResponse {
	resp := &PageResponse{Count: count, Results: results}
	if int64(page*pageSize) < count {
		resp.Next = pg.link(r, p, page+1, pageSize)
	}
	if page > 1 {
		resp.Previous = pg.link(r, p, page-1, pageSize)
	}
	return resp
}

// link rebuilds the request URL for the given page, re-encoding every sticky
// parameter as a sorted, deduplicated, comma-joined list (or removing it
// when no valid values remain).
func (pg *Paginator) link(r *http.Request, p *RequestParams, page, pageSize int) *string {
	u := *r.URL
	query := u.Query()
	query.Set("page", strconv.Itoa(page))
	query.Set("page_size", strconv.Itoa(pageSize))

	for _, sticky := range pg.Sticky {
		values := stickyValues(p, sticky)
		if len(values) == 0 {
			query.Del(sticky.Key)
			continue
		}
		joined := values[0]
		for _, v := range values[1:] {
			joined += "," + v
		}
		query.Set(sticky.Key, joined)
	}

	u.RawQuery = query.Encode()
	link := u.String()
	return &link
}

func stickyValues(p *RequestParams, sticky StickyParam) []string {
	parts := p.Strings(sticky.Key)

	if sticky.Numeric {
		var ids []int
		seen := make(map[int]struct{}, len(parts))
		for _, part := range parts {
			id, err := strconv.Atoi(part)
			if err != nil {
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
		sort.Ints(ids)
		values := make([]string, len(ids))
		for i, id := range ids {
			values[i] = strconv.Itoa(id)
		}
		return values
	}

	seen := make(map[string]struct{}, len(parts))
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if _, dup := seen[part]; dup {
			continue
		}
		seen[part] = struct{}{}
		values = append(values, part)
	}
	sort.Strings(values)
	return values
}
