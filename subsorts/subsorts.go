// Package subsorts implements the subsort lattice of a language definition:
// the universe of declared sorts, the strict supersort relation between them,
// and the bounds, LUB and GLB queries built on top of it.
//
// A Subsorts value is built once from a Source and is immutable afterwards,
// so it can be queried from any number of goroutines without locking.
package subsorts

//go:generate mockgen -source=subsorts.go -destination=mocks/mocks.go -package=mocks Source

import (
	"github.com/benbjohnson/immutable"
	"github.com/shd101wyy/k-1/internal/log"
	"github.com/shd101wyy/k-1/kerr"
	"github.com/shd101wyy/k-1/kore"
	"log/slog"
)

var logger = log.DefaultLogger.With("section", "subsorts")

// Source is an upstream declaration of sorts.
// Every representation a definition can come in is adapted to it before being built.
type Source interface {
	// SortNames enumerates the declared sorts. Duplicates are allowed.
	SortNames() ([]string, error)
	// Supersort reports whether big is a strict supersort of small.
	// It is only asked about names returned by SortNames,
	// and is expected to already be transitively closed.
	Supersort(big, small string) bool
}

// sortID indexes a sort in the arena of one Subsorts
type sortID = int

type Subsorts struct {
	// sorts is the arena, indexed by sortID
	sorts []kore.Sort
	index *immutable.Map[kore.Sort, sortID]
	// subsort[big*len(sorts)+small] is true iff big is a strict supersort of small
	subsort []bool
	all     immutable.SortedSet[kore.Sort]
}

// Build resolves every name of src to a kore.Sort and records, for every ordered pair,
// whether the first is a strict supersort of the second.
//
// Build fails without a partial result if src fails or any name cannot be resolved.
func Build(src Source) (*Subsorts, error) {
	names, err := src.SortNames()
	if err != nil {
		return nil, err
	}

	s := &Subsorts{
		sorts: make([]kore.Sort, 0, len(names)),
	}
	index := immutable.NewMapBuilder[kore.Sort, sortID](kore.SortHasher{})
	for _, name := range names {
		sort, err := kore.SortOf(name)
		if err != nil {
			return nil, err
		}
		if _, seen := index.Get(sort); seen {
			continue
		}
		index.Set(sort, len(s.sorts))
		s.sorts = append(s.sorts, sort)
	}
	s.index = index.Map()

	n := len(s.sorts)
	s.subsort = make([]bool, n*n)
	relations := 0
	for big, bigSort := range s.sorts {
		for small, smallSort := range s.sorts {
			if src.Supersort(bigSort.Name(), smallSort.Name()) {
				s.subsort[big*n+small] = true
				relations++
			}
		}
	}
	s.all = immutable.NewSortedSet[kore.Sort](kore.SortComparer{}, s.sorts...)

	logger.Debug("built subsort lattice", "sorts", n, "relations", relations)
	return s, nil
}

// AllSorts returns the universe of s
func (s *Subsorts) AllSorts() immutable.SortedSet[kore.Sort] {
	return s.all
}

func (s *Subsorts) Len() int { return len(s.sorts) }

func (s *Subsorts) Contains(sort kore.Sort) bool {
	_, ok := s.index.Get(sort)
	return ok
}

// Validate checks that the relation s was built with is a strict partial order,
// reporting the first violation found as kerr.InvalidSubsortRelation.
//
// Build does not call Validate: upstream sources are expected to hand over a closed, acyclic relation.
func (s *Subsorts) Validate() error {
	n := len(s.sorts)
	for a := range n {
		if s.subsort[a*n+a] {
			return s.invalid(a, a, "a sort is a strict supersort of itself")
		}
		for b := range n {
			if !s.subsort[a*n+b] {
				continue
			}
			if s.subsort[b*n+a] {
				return s.invalid(a, b, "relation is not asymmetric")
			}
			for c := range n {
				if s.subsort[b*n+c] && !s.subsort[a*n+c] {
					return s.invalid(a, c, "relation is not transitively closed through "+s.sorts[b].Name())
				}
			}
		}
	}
	return nil
}

func (s *Subsorts) invalid(big, small sortID, reason string) error {
	err := kerr.New(kerr.NewInvalidSubsortRelation{
		Big:    s.sorts[big].Name(),
		Small:  s.sorts[small].Name(),
		Reason: reason,
	})
	logger.Warn("invalid subsort relation", slog.String("err", kerr.FormatWithCode(err)))
	return err
}

// Facts is a Source over an explicit list of names and closed supersort facts
type Facts struct {
	Names []string
	// Pairs holds [big, small] pairs
	Pairs [][2]string

	supersorts map[[2]string]struct{}
}

// SortNames fails with kerr.UndeclaredSubsortSort if a pair mentions a name not in Names
func (f *Facts) SortNames() ([]string, error) {
	declared := make(map[string]struct{}, len(f.Names))
	for _, name := range f.Names {
		declared[name] = struct{}{}
	}
	f.supersorts = make(map[[2]string]struct{}, len(f.Pairs))
	for _, pair := range f.Pairs {
		for _, name := range pair {
			if _, ok := declared[name]; !ok {
				return nil, kerr.New(kerr.NewUndeclaredSubsortSort{Name: name, Big: pair[0], Small: pair[1]})
			}
		}
		f.supersorts[pair] = struct{}{}
	}
	return f.Names, nil
}

func (f *Facts) Supersort(big, small string) bool {
	_, ok := f.supersorts[[2]string{big, small}]
	return ok
}
