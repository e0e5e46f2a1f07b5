package subsorts

import (
	"errors"
	"github.com/shd101wyy/k-1/kerr"
	"github.com/shd101wyy/k-1/kore"
	"github.com/shd101wyy/k-1/subsorts/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"testing"
)

// mustBuild builds a lattice over names from closed [big, small] pairs
func mustBuild(t *testing.T, names []string, pairs ...[2]string) *Subsorts {
	t.Helper()
	s, err := Build(&Facts{Names: names, Pairs: pairs})
	require.NoError(t, err)
	return s
}

func sortsOf(names ...string) []kore.Sort {
	sorts := make([]kore.Sort, 0, len(names))
	for _, name := range names {
		sorts = append(sorts, kore.MustSort(name))
	}
	return sorts
}

// allSorts lists the universe of s in name order
func allSorts(s *Subsorts) []kore.Sort {
	var sorts []kore.Sort
	itr := s.AllSorts().Iterator()
	for !itr.Done() {
		sort, _ := itr.Next()
		sorts = append(sorts, sort)
	}
	return sorts
}

type BuildSuite struct {
	suite.Suite
	ctrl   *gomock.Controller
	source *mocks.MockSource
}

func TestBuildSuite(t *testing.T) {
	suite.Run(t, new(BuildSuite))
}

func (s *BuildSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.source = mocks.NewMockSource(s.ctrl)
}

func (s *BuildSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *BuildSuite) TestAsksEveryOrderedPairOnce() {
	s.source.EXPECT().SortNames().Return([]string{"Exp", "Int", "Exp"}, nil)
	asked := make(map[[2]string]int)
	s.source.EXPECT().Supersort(gomock.Any(), gomock.Any()).Times(4).DoAndReturn(func(big, small string) bool {
		asked[[2]string{big, small}]++
		return big == "Exp" && small == "Int"
	})

	built, err := Build(s.source)
	s.Require().NoError(err)
	s.Equal(2, built.Len())
	s.Equal(map[[2]string]int{
		{"Exp", "Exp"}: 1,
		{"Exp", "Int"}: 1,
		{"Int", "Exp"}: 1,
		{"Int", "Int"}: 1,
	}, asked)
	s.True(built.IsSubsorted(kore.MustSort("Exp"), kore.Int))
	s.False(built.IsSubsorted(kore.Int, kore.MustSort("Exp")))
}

func (s *BuildSuite) TestSourceFailurePropagates() {
	sourceErr := errors.New("declarations unavailable")
	s.source.EXPECT().SortNames().Return(nil, sourceErr)

	built, err := Build(s.source)
	s.Nil(built)
	s.ErrorIs(err, sourceErr)
}

func (s *BuildSuite) TestUnresolvableNameFailsWholeBuild() {
	s.source.EXPECT().SortNames().Return([]string{"Int", "not a sort", "Bool"}, nil)

	built, err := Build(s.source)
	s.Nil(built)
	var unresolvable kerr.NewUnresolvableSort
	s.Require().True(errors.As(err, &unresolvable))
	s.Equal("not a sort", unresolvable.Name)
}

func (s *BuildSuite) TestEmptyUniverse() {
	s.source.EXPECT().SortNames().Return(nil, nil)

	built, err := Build(s.source)
	s.Require().NoError(err)
	s.Equal(0, built.Len())
	s.Equal(0, built.AllSorts().Len())
}

func TestFactsRejectUndeclaredNames(t *testing.T) {
	_, err := Build(&Facts{
		Names: []string{"Exp", "Int"},
		Pairs: [][2]string{{"Exp", "Int"}, {"Exp", "Bool"}},
	})
	var undeclared kerr.NewUndeclaredSubsortSort
	require.True(t, errors.As(err, &undeclared))
	assert.Equal(t, "Bool", undeclared.Name)
	assert.Equal(t, "Exp", undeclared.Big)
	assert.Equal(t, kerr.UndeclaredSubsortSort, undeclared.Code())
}

func TestAllSortsIsSortedUniverse(t *testing.T) {
	s := mustBuild(t, []string{"KItem", "Int", "Bool", "Int", "K"})

	assert.Equal(t, sortsOf("Bool", "Int", "K", "KItem"), allSorts(s))
	assert.True(t, s.AllSorts().Has(kore.Int))
	assert.False(t, s.AllSorts().Has(kore.String))
	assert.True(t, s.Contains(kore.K))
	assert.False(t, s.Contains(kore.Bottom))
	assert.Equal(t, 4, s.Len())
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		pairs  [][2]string
		reason string
	}{
		{
			name:  "closed partial order",
			pairs: [][2]string{{"A", "B"}, {"B", "C"}, {"A", "C"}},
		},
		{
			name:   "reflexive pair",
			pairs:  [][2]string{{"B", "B"}},
			reason: "itself",
		},
		{
			name:   "symmetric pair",
			pairs:  [][2]string{{"A", "B"}, {"B", "A"}},
			reason: "asymmetric",
		},
		{
			name:   "missing transitive pair",
			pairs:  [][2]string{{"A", "B"}, {"B", "C"}},
			reason: "transitively closed through B",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := mustBuild(t, []string{"A", "B", "C"}, tc.pairs...)
			err := s.Validate()
			if tc.reason == "" {
				assert.NoError(t, err)
				return
			}
			var invalid kerr.NewInvalidSubsortRelation
			require.True(t, errors.As(err, &invalid))
			assert.Contains(t, invalid.Reason, tc.reason)
		})
	}
}
