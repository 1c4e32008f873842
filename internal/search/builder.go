package search

import "reflect"

// zeroer is implemented by domain filters that know when they select nothing.
type zeroer interface {
	IsZero() bool
}

// Build assembles the search body for one request. It copies its inputs and
// omits members that do not apply: the search term when query is empty, the
// order when unsorted, and the domain filter when it is the zero value.
func Build[D any](query string, page Pagination, order Order, filter D) Filter[D] {
	req := page.Request()
	out := Filter[D]{Pagination: &req}
	if query != "" {
		out.Search = &Term{Value: query}
	}
	if !order.IsZero() {
		o := order
		if o.Direction == "" {
			o.Direction = Asc
		}
		out.Order = &o
	}
	if !filterIsZero(filter) {
		f := filter
		out.Filter = &f
	}
	return out
}

func filterIsZero(filter any) bool {
	if filter == nil {
		return true
	}
	if z, ok := filter.(zeroer); ok {
		return z.IsZero()
	}
	return reflect.ValueOf(filter).IsZero()
}
