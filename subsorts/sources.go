package subsorts

import (
	"github.com/shd101wyy/k-1/definition"
	"github.com/shd101wyy/k-1/kil"
	"github.com/shd101wyy/k-1/kore"
	"github.com/shd101wyy/k-1/minikore"
	"github.com/shd101wyy/k-1/util"
)

// FromContext builds the lattice of a legacy whole-definition context.
// The context's subsort closure is (re)computed first, so a cyclic context fails here.
func FromContext(ctx *kil.Context) (*Subsorts, error) {
	if err := ctx.ComputeSubsortTransitiveClosure(); err != nil {
		return nil, err
	}
	return Build(contextSource{ctx})
}

// FromModuleUtils builds the lattice of a module in its intermediate representation
func FromModuleUtils(mu *minikore.ModuleUtils) (*Subsorts, error) {
	return Build(moduleUtilsSource{mu})
}

// FromModule builds the lattice of a compiled module
func FromModule(m *definition.Module) (*Subsorts, error) {
	return Build(moduleSource{m})
}

type contextSource struct {
	ctx *kil.Context
}

func (s contextSource) SortNames() ([]string, error) {
	return util.Names(s.ctx.GetAllSorts()), nil
}

func (s contextSource) Supersort(big, small string) bool {
	return s.ctx.IsSubsorted(kil.SortOf(big), kil.SortOf(small))
}

type moduleUtilsSource struct {
	mu *minikore.ModuleUtils
}

func (s moduleUtilsSource) SortNames() ([]string, error) {
	return s.mu.DefinedSorts(), nil
}

func (s moduleUtilsSource) Supersort(big, small string) bool {
	return s.mu.Subsorts().Greater(big, small)
}

type moduleSource struct {
	m *definition.Module
}

func (s moduleSource) SortNames() ([]string, error) {
	return util.Names(s.m.DefinedSorts()), nil
}

// Supersort only sees names of defined sorts, which were resolved when the module was built
func (s moduleSource) Supersort(big, small string) bool {
	return s.m.Subsorts().Greater(kore.MustSort(big), kore.MustSort(small))
}
