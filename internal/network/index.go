package network

import (
	"fmt"
	"sort"

	"github.com/wupperinst/itom/internal/labels"
	"github.com/wupperinst/itom/internal/param"
)

// Link is one end of a route as seen from a location: the location on the
// other side and the transport mode.
type Link struct {
	Peer int
	Mode int
}

type endpoint struct {
	loc, product, year int
}

// Index maps (location, product, year) to the outgoing and incoming links
// in (peer, mode) ordinal order. It is filled during load and only read
// afterwards, so reads take no lock.
type Index struct {
	out    map[endpoint][]Link
	in     map[endpoint][]Link
	routes map[labels.Tuple]struct{}
}

// New creates an empty index.
func New() *Index {
	return &Index{
		out:    make(map[endpoint][]Link),
		in:     make(map[endpoint][]Link),
		routes: make(map[labels.Tuple]struct{}),
	}
}

// FromTable builds the index from a TransportRoute table. Entries equal to
// zero are not routes.
func FromTable(routes *param.Table) (*Index, error) {
	if n := len(routes.Spec().Signature); n != 5 {
		return nil, fmt.Errorf("network: %s has arity %d, want 5", routes.Spec().Name, n)
	}
	if routes.Default() != 0 {
		return nil, fmt.Errorf("network: %s must default to 0, got %g", routes.Spec().Name, routes.Default())
	}
	idx := New()
	for _, o := range routes.Overrides() {
		if o.Value == 0 {
			continue
		}
		tu := o.Tuple
		idx.Add(tu.At(0), tu.At(1), tu.At(2), tu.At(3), tu.At(4))
	}
	return idx, nil
}

// Add records the route from -> to for product p over mode tr in year y.
// Adding the same route twice is not an error.
func (idx *Index) Add(from, to, p, tr, y int) {
	key := labels.T(from, to, p, tr, y)
	if _, exists := idx.routes[key]; exists {
		return
	}
	idx.routes[key] = struct{}{}

	o := endpoint{from, p, y}
	idx.out[o] = insert(idx.out[o], Link{Peer: to, Mode: tr})
	i := endpoint{to, p, y}
	idx.in[i] = insert(idx.in[i], Link{Peer: from, Mode: tr})
}

func insert(links []Link, l Link) []Link {
	at := sort.Search(len(links), func(i int) bool {
		if links[i].Peer != l.Peer {
			return links[i].Peer > l.Peer
		}
		return links[i].Mode >= l.Mode
	})
	links = append(links, Link{})
	copy(links[at+1:], links[at:])
	links[at] = l
	return links
}

// Has reports whether the route from -> to exists.
func (idx *Index) Has(from, to, p, tr, y int) bool {
	_, ok := idx.routes[labels.T(from, to, p, tr, y)]
	return ok
}

// Outgoing returns the links leaving loc for product p in year y. The slice
// is shared and must not be modified.
func (idx *Index) Outgoing(loc, p, y int) []Link {
	return idx.out[endpoint{loc, p, y}]
}

// Incoming returns the links arriving at loc for product p in year y.
func (idx *Index) Incoming(loc, p, y int) []Link {
	return idx.in[endpoint{loc, p, y}]
}

// Len returns the number of routes.
func (idx *Index) Len() int { return len(idx.routes) }

// Routes returns every route tuple (from, to, p, tr, y) in lexicographic
// order.
func (idx *Index) Routes() []labels.Tuple {
	out := make([]labels.Tuple, 0, len(idx.routes))
	for tu := range idx.routes {
		out = append(out, tu)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}
