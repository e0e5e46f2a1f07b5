package subsorts

import (
	"github.com/hashicorp/go-set/v3"
	"github.com/shd101wyy/k-1/kerr"
	"github.com/shd101wyy/k-1/kore"
	"log/slog"
)

// Direction selects which side of a subset a bound is looked for on
type Direction int

const (
	// Upper looks for supersorts
	Upper Direction = iota
	// Lower looks for subsorts
	Lower
)

func (d Direction) String() string {
	if d == Upper {
		return "upper"
	}
	return "lower"
}

// Subsorted reports whether big is a strict supersort of small.
// If either sort is not part of the universe it fails with kerr.UndefinedSort,
// naming big if big is undefined and small otherwise.
func (s *Subsorts) Subsorted(big, small kore.Sort) (bool, error) {
	bigID, ok := s.index.Get(big)
	if !ok {
		return false, kerr.New(kerr.NewUndefinedSort{Name: big.Name(), Role: kerr.RoleBig})
	}
	smallID, ok := s.index.Get(small)
	if !ok {
		return false, kerr.New(kerr.NewUndefinedSort{Name: small.Name(), Role: kerr.RoleSmall})
	}
	return s.subsort[bigID*len(s.sorts)+smallID], nil
}

// IsSubsorted is like Subsorted, but an undefined sort is a critical error:
// it panics with the kerr.UndefinedSort error. Use kerr.Recover to turn it back into an error.
func (s *Subsorts) IsSubsorted(big, small kore.Sort) bool {
	subsorted, err := s.Subsorted(big, small)
	if err != nil {
		panic(err)
	}
	return subsorted
}

// IsSubsortedEq is the reflexive closure of IsSubsorted.
// Identical sorts are equal without looking at the universe.
func (s *Subsorts) IsSubsortedEq(big, small kore.Sort) bool {
	return big == small || s.IsSubsorted(big, small)
}

func (s *Subsorts) UpperBounds(sorts ...kore.Sort) *set.Set[kore.Sort] {
	return s.UpperBoundsOf(set.From(sorts))
}

// UpperBoundsOf returns every sort of the universe that is a supersort of, or equal to, each member of subset
func (s *Subsorts) UpperBoundsOf(subset *set.Set[kore.Sort]) *set.Set[kore.Sort] {
	return s.bounds(subset, Upper)
}

func (s *Subsorts) LowerBounds(sorts ...kore.Sort) *set.Set[kore.Sort] {
	return s.LowerBoundsOf(set.From(sorts))
}

// LowerBoundsOf returns every sort of the universe that is a subsort of, or equal to, each member of subset
func (s *Subsorts) LowerBoundsOf(subset *set.Set[kore.Sort]) *set.Set[kore.Sort] {
	return s.bounds(subset, Lower)
}

func (s *Subsorts) LUB(sorts ...kore.Sort) (kore.Sort, bool) {
	return s.LUBSort(set.From(sorts))
}

// LUBSort returns the least upper bound of subset, if there is exactly one
func (s *Subsorts) LUBSort(subset *set.Set[kore.Sort]) (kore.Sort, bool) {
	return s.TopSort(subset, Upper)
}

func (s *Subsorts) GLB(sorts ...kore.Sort) (kore.Sort, bool) {
	return s.GLBSort(set.From(sorts))
}

// GLBSort returns the greatest lower bound of subset, if there is exactly one
func (s *Subsorts) GLBSort(subset *set.Set[kore.Sort]) (kore.Sort, bool) {
	return s.TopSort(subset, Lower)
}

// HasCommonSubsort reports whether a and b share a common subsort other than kore.Bottom
func (s *Subsorts) HasCommonSubsort(a, b kore.Sort) bool {
	lowerBounds := s.LowerBounds(a, b)
	return !lowerBounds.Empty() &&
		!(lowerBounds.Size() == 1 && lowerBounds.Contains(kore.Bottom))
}

// related reports whether a is strictly beyond b in direction dir:
// a supersort of b for Upper, a subsort of b for Lower
func (s *Subsorts) related(a, b sortID, dir Direction) bool {
	n := len(s.sorts)
	if dir == Lower {
		return s.subsort[b*n+a]
	}
	return s.subsort[a*n+b]
}

// idOf panics with kerr.UndefinedSort if sort is not in the universe.
// role is the argument sort would have been in the equivalent IsSubsorted call.
func (s *Subsorts) idOf(sort kore.Sort, role kerr.SortRole) sortID {
	id, ok := s.index.Get(sort)
	if !ok {
		panic(kerr.New(kerr.NewUndefinedSort{Name: sort.Name(), Role: role}))
	}
	return id
}

func (s *Subsorts) bounds(subset *set.Set[kore.Sort], dir Direction) *set.Set[kore.Sort] {
	if subset == nil || subset.Empty() {
		return set.New[kore.Sort](0)
	}
	if subset.Size() == 1 {
		// a sort is its own bound
		return set.From(subset.Slice())
	}
	ids := s.boundIDs(subset, dir)
	bounds := set.New[kore.Sort](len(ids))
	for _, id := range ids {
		bounds.Insert(s.sorts[id])
	}
	return bounds
}

// boundIDs scans the whole universe: bounds may be incomparable, so there is no early exit.
// It must only be called on subsets of at least two members.
func (s *Subsorts) boundIDs(subset *set.Set[kore.Sort], dir Direction) []sortID {
	// members are the small side of the relation for upper bounds, the big side for lower ones
	role := kerr.RoleSmall
	if dir == Lower {
		role = kerr.RoleBig
	}
	members := make([]sortID, 0, subset.Size())
	for member := range subset.Items() {
		members = append(members, s.idOf(member, role))
	}

	var bounds []sortID
	for candidate := range s.sorts {
		isBound := true
		for _, member := range members {
			if candidate != member && !s.related(candidate, member, dir) {
				isBound = false
				break
			}
		}
		if isBound {
			bounds = append(bounds, candidate)
		}
	}
	return bounds
}

// TopSort returns the member of the bounds of subset in direction dir
// that every other bound lies beyond, if there is exactly one such member.
// The LUB is the top sort of the upper bounds, the GLB the top sort of the lower bounds.
func (s *Subsorts) TopSort(subset *set.Set[kore.Sort], dir Direction) (kore.Sort, bool) {
	if subset == nil || subset.Empty() {
		return kore.Sort{}, false
	}
	if subset.Size() == 1 {
		for only := range subset.Items() {
			return only, true
		}
	}

	bounds := s.boundIDs(subset, dir)
	if len(bounds) == 0 {
		return kore.Sort{}, false
	}

	// if there is a top element, the scan ends on it
	candidate, found := bounds[0], true
	for _, bound := range bounds[1:] {
		switch {
		case !found:
			candidate, found = bound, true
		case s.related(candidate, bound, dir):
			candidate = bound
		case !s.related(bound, candidate, dir):
			// neither of them is the top element
			found = false
		}
	}
	if found {
		for _, bound := range bounds {
			if bound != candidate && !s.related(bound, candidate, dir) {
				found = false
				break
			}
		}
	}
	if !found {
		logger.Debug("no unique bound", "direction", dir, "subset", subsetValue{subset}, "bounds", len(bounds))
		return kore.Sort{}, false
	}
	return s.sorts[candidate], true
}

// subsetValue formats a subset only if the record it is logged in is handled
type subsetValue struct {
	subset *set.Set[kore.Sort]
}

func (v subsetValue) LogValue() slog.Value {
	return slog.StringValue(v.subset.String())
}
