// Package kore holds the sort values shared by every stage of the pipeline.
package kore

import (
	"github.com/benbjohnson/immutable"
	"github.com/shd101wyy/k-1/kerr"
	"regexp"
	"strings"
)

// Sort names a syntactic category of terms.
// Two sorts are equal iff their names are equal, so Sort can be compared with ==
// and used as a map key.
type Sort struct {
	name string
}

// BottomName is the name of the uninhabited sort
const BottomName = "#Bottom"

// Bottom is the uninhabited sort, below every other sort of a definition that declares it
var Bottom = Sort{name: BottomName}

var (
	K          = Sort{name: "K"}
	KItem      = Sort{name: "KItem"}
	KResult    = Sort{name: "KResult"}
	KConfigVar = Sort{name: "KConfigVar"}
	Int        = Sort{name: "Int"}
	Bool       = Sort{name: "Bool"}
	String     = Sort{name: "String"}
)

var sortNamePattern = regexp.MustCompile(`^#?[A-Za-z][A-Za-z0-9_\-]*$`)

// SortOf resolves name to a Sort, failing with kerr.UnresolvableSort
// if name is not a valid sort symbol.
//
// Parametric sorts are written Name{Param1,Param2}, where every parameter must itself be valid.
func SortOf(name string) (Sort, error) {
	if !validSortName(name) {
		return Sort{}, kerr.New(kerr.NewUnresolvableSort{Name: name})
	}
	return Sort{name: name}, nil
}

// MustSort is like SortOf but panics if name is not valid
func MustSort(name string) Sort {
	s, err := SortOf(name)
	if err != nil {
		panic(err)
	}
	return s
}

func validSortName(name string) bool {
	head, params, parametric := strings.Cut(name, "{")
	if !sortNamePattern.MatchString(head) {
		return false
	}
	if !parametric {
		return true
	}
	if !strings.HasSuffix(params, "}") {
		return false
	}
	params = strings.TrimSuffix(params, "}")
	depth, start := 0, 0
	for i, r := range params {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return false
			}
		case ',':
			if depth == 0 {
				if !validSortName(params[start:i]) {
					return false
				}
				start = i + 1
			}
		}
	}
	return depth == 0 && validSortName(params[start:])
}

func (s Sort) Name() string   { return s.name }
func (s Sort) String() string { return s.name }

func (s Sort) IsBottom() bool { return s == Bottom }

// IsZero is true for the zero value, which is never a member of a universe
func (s Sort) IsZero() bool { return s.name == "" }

// SortComparer orders sorts by name, for use in immutable sorted collections
type SortComparer struct{}

func (SortComparer) Compare(a, b Sort) int { return strings.Compare(a.name, b.name) }

var nameHasher = immutable.NewHasher("")

// SortHasher hashes sorts by name, for use as keys of immutable maps
type SortHasher struct{}

func (SortHasher) Hash(s Sort) uint32   { return nameHasher.Hash(s.name) }
func (SortHasher) Equal(a, b Sort) bool { return a == b }
