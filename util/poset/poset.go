// Package poset implements a finite strict partial order over names,
// as declared by the subsort productions of a language definition.
//
// Relations are declared edge by edge with Relate and only become visible to
// Greater once Close has computed the transitive closure.
package poset

import (
	"github.com/hashicorp/go-set/v3"
	"github.com/shd101wyy/k-1/kerr"
	xset "github.com/xtgo/set"
	"slices"
	"sort"
)

// Edge is a declared fact Big > Small
type Edge struct {
	Big, Small string
}

// POSet is not safe for concurrent use until it has been closed,
// after which it is only read.
type POSet struct {
	// declared keeps insertion order and may hold duplicates
	declared []string
	// direct maps an element to the elements declared directly above it
	direct map[string]*set.Set[string]
	edges  []Edge
	// above maps an element to every element strictly greater than it, once closed
	above  map[string]*set.Set[string]
	closed bool
}

func New(elements ...string) *POSet {
	p := &POSet{
		direct: make(map[string]*set.Set[string], len(elements)),
	}
	p.Add(elements...)
	return p
}

func (p *POSet) Add(elements ...string) {
	for _, e := range elements {
		p.declared = append(p.declared, e)
		if _, ok := p.direct[e]; !ok {
			p.direct[e] = set.New[string](0)
		}
	}
	p.closed = false
}

func (p *POSet) Contains(element string) bool {
	_, ok := p.direct[element]
	return ok
}

// Relate declares big > small. Both must have been added before.
func (p *POSet) Relate(big, small string) error {
	for _, name := range []string{big, small} {
		if !p.Contains(name) {
			return kerr.New(kerr.NewUndeclaredSubsortSort{Name: name, Big: big, Small: small})
		}
	}
	if big == small {
		return kerr.New(kerr.NewCyclicSubsort{Cycle: []string{big, small}})
	}
	if p.direct[small].Insert(big) {
		p.edges = append(p.edges, Edge{Big: big, Small: small})
	}
	p.closed = false
	return nil
}

// Close computes the transitive closure of the declared relation.
// It fails with kerr.CyclicSubsort if the declarations are not acyclic,
// in which case Greater keeps answering from the previous closure.
func (p *POSet) Close() error {
	if p.closed {
		return nil
	}
	if cycle := p.findCycle(); cycle != nil {
		return kerr.New(kerr.NewCyclicSubsort{Cycle: cycle})
	}
	above := make(map[string]*set.Set[string], len(p.direct))
	var visit func(string) *set.Set[string]
	visit = func(e string) *set.Set[string] {
		if done, ok := above[e]; ok {
			return done
		}
		all := set.New[string](p.direct[e].Size())
		for parent := range p.direct[e].Items() {
			all.Insert(parent)
			all.InsertSet(visit(parent))
		}
		above[e] = all
		return all
	}
	for e := range p.direct {
		visit(e)
	}
	p.above = above
	p.closed = true
	return nil
}

// findCycle returns the elements of one cycle in declaration order, first element repeated at the end,
// or nil if the relation is acyclic
func (p *POSet) findCycle() []string {
	const (
		unvisited = iota
		onStack
		finished
	)
	state := make(map[string]int, len(p.direct))
	var stack []string
	var cycle []string

	var visit func(string) bool
	visit = func(e string) bool {
		state[e] = onStack
		stack = append(stack, e)
		parents := p.direct[e].Slice()
		slices.Sort(parents)
		for _, parent := range parents {
			switch state[parent] {
			case onStack:
				from := slices.Index(stack, parent)
				cycle = append(slices.Clone(stack[from:]), parent)
				slices.Reverse(cycle)
				return true
			case unvisited:
				if visit(parent) {
					return true
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[e] = finished
		return false
	}
	for _, e := range p.Elements() {
		if state[e] == unvisited && visit(e) {
			return cycle
		}
	}
	return nil
}

// Greater reports whether big > small in the closed relation
func (p *POSet) Greater(big, small string) bool {
	above, ok := p.above[small]
	return ok && above.Contains(big)
}

// Elements returns every added element, sorted and without duplicates
func (p *POSet) Elements() []string {
	elements := slices.Clone(p.declared)
	data := sort.StringSlice(elements)
	sort.Sort(data)
	return elements[:xset.Uniq(data)]
}

// Edges returns the declared facts, in declaration order
func (p *POSet) Edges() []Edge {
	return slices.Clone(p.edges)
}
