// Package definition is the compiled representation of a language definition:
// named modules that import each other, each with the sorts and subsorts visible in it.
package definition

import (
	"github.com/hashicorp/go-set/v3"
	"github.com/shd101wyy/k-1/internal/log"
	"github.com/shd101wyy/k-1/kerr"
	"github.com/shd101wyy/k-1/kore"
	"github.com/shd101wyy/k-1/util"
	"github.com/shd101wyy/k-1/util/poset"
	"slices"
)

var logger = log.DefaultLogger.With("section", "definition")

// SubsortProduction declares Sort < Supersort, written `syntax Supersort ::= Sort`
type SubsortProduction struct {
	Sort, Supersort kore.Sort
}

// Module is immutable once built by NewModule
type Module struct {
	name    string
	imports []*Module

	localSorts    []kore.Sort
	localSubsorts []SubsortProduction

	definedSorts *set.Set[kore.Sort]
	subsorts     *poset.POSet
}

// NewModule builds a module whose defined sorts and subsorts are its own plus
// those of every module it imports, transitively.
//
// If kore.Bottom is among the defined sorts, it is placed below every other defined sort.
func NewModule(name string, imports []*Module, sorts []kore.Sort, subsorts []SubsortProduction) (*Module, error) {
	m := &Module{
		name:          name,
		imports:       imports,
		localSorts:    sorts,
		localSubsorts: subsorts,
		definedSorts:  set.From(sorts),
	}
	for _, imported := range imports {
		m.definedSorts.InsertSet(imported.definedSorts)
	}

	m.subsorts = poset.New(util.Names(m.DefinedSorts())...)
	var errs *kerr.Errors
	for _, production := range m.allSubsorts() {
		if err := m.subsorts.Relate(production.Supersort.Name(), production.Sort.Name()); err != nil {
			errs = errs.With(err.(kerr.KError))
		}
	}
	if m.definedSorts.Contains(kore.Bottom) {
		for sort := range m.definedSorts.Items() {
			if sort != kore.Bottom {
				if err := m.subsorts.Relate(sort.Name(), kore.BottomName); err != nil {
					errs = errs.With(err.(kerr.KError))
				}
			}
		}
	}
	if errs.HasError() {
		return nil, errs
	}
	if err := m.subsorts.Close(); err != nil {
		return nil, errs.With(err.(kerr.KError))
	}
	logger.Debug("built module", "module", name, "sorts", m.definedSorts.Size(), "imports", len(imports))
	return m, nil
}

// allSubsorts returns the productions of m and of its imports, each once
func (m *Module) allSubsorts() []SubsortProduction {
	seen := set.New[SubsortProduction](len(m.localSubsorts))
	var all []SubsortProduction
	var visit func(*Module)
	visited := set.New[*Module](len(m.imports) + 1)
	visit = func(module *Module) {
		if !visited.Insert(module) {
			return
		}
		for _, imported := range module.imports {
			visit(imported)
		}
		for _, production := range module.localSubsorts {
			if seen.Insert(production) {
				all = append(all, production)
			}
		}
	}
	visit(m)
	return all
}

func (m *Module) Name() string { return m.name }

func (m *Module) Imports() []*Module { return slices.Clone(m.imports) }

// DefinedSorts returns every sort visible in m, ordered by name
func (m *Module) DefinedSorts() []kore.Sort {
	sorts := m.definedSorts.Slice()
	slices.SortFunc(sorts, kore.SortComparer{}.Compare)
	return sorts
}

func (m *Module) Subsorts() Relation {
	return Relation{poset: m.subsorts}
}

// Declarations returns the names of the defined sorts and the direct subsort facts
// between them, including the ones placing kore.Bottom, so that other representations
// of the same module can be built from it.
func (m *Module) Declarations() ([]string, []poset.Edge) {
	return m.subsorts.Elements(), m.subsorts.Edges()
}

// Relation is the closed subsort relation of a module
type Relation struct {
	poset *poset.POSet
}

// Greater reports whether big > small
func (r Relation) Greater(big, small kore.Sort) bool {
	return r.poset.Greater(big.Name(), small.Name())
}
