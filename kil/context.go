// Package kil holds the legacy whole-definition context:
// every sort of a definition and the subsort productions declared between them.
package kil

import (
	"github.com/shd101wyy/k-1/util"
	"github.com/shd101wyy/k-1/util/poset"
)

// Sort is the frontend representation of a sort.
// Names are not validated until the context is turned into a lattice.
type Sort struct {
	name string
}

func SortOf(name string) Sort { return Sort{name: name} }

func (s Sort) Name() string   { return s.name }
func (s Sort) String() string { return s.name }

// Context accumulates declarations for a whole definition.
// It is mutable and not suitable for concurrent use.
type Context struct {
	subsorts *poset.POSet
}

func NewContext() *Context {
	return &Context{subsorts: poset.New()}
}

// AddSort declares name, returning its Sort. Declaring a sort twice is harmless.
func (c *Context) AddSort(name string) Sort {
	c.subsorts.Add(name)
	return SortOf(name)
}

// AddSubsort declares big > small. Both sorts must be declared already.
func (c *Context) AddSubsort(big, small Sort) error {
	return c.subsorts.Relate(big.name, small.name)
}

// ComputeSubsortTransitiveClosure must run after the last AddSubsort and before IsSubsorted
func (c *Context) ComputeSubsortTransitiveClosure() error {
	return c.subsorts.Close()
}

// GetAllSorts returns every declared sort, ordered by name
func (c *Context) GetAllSorts() []Sort {
	return util.Map(c.subsorts.Elements(), SortOf)
}

// IsSubsorted reports whether big > small, as of the last ComputeSubsortTransitiveClosure
func (c *Context) IsSubsorted(big, small Sort) bool {
	return c.subsorts.Greater(big.name, small.name)
}
