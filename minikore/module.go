// Package minikore is the intermediate, sentence-based representation of a module
// that sits between a parsed definition and its compiled form.
package minikore

import (
	"fmt"
	"github.com/pkg/errors"
	"github.com/shd101wyy/k-1/util/poset"
)

type Sentence interface {
	fmt.Stringer
	isSentence()
}

type SortDeclaration struct {
	Sort string
}

func (SortDeclaration) isSentence()      {}
func (d SortDeclaration) String() string { return "sort " + d.Sort }

// SubsortDeclaration states Big > Small, written `syntax Big ::= Small`
type SubsortDeclaration struct {
	Big, Small string
}

func (SubsortDeclaration) isSentence()      {}
func (d SubsortDeclaration) String() string { return fmt.Sprintf("syntax %s ::= %s", d.Big, d.Small) }

type Module struct {
	Name      string
	Sentences []Sentence
}

// ModuleUtils indexes the sentences of a Module
type ModuleUtils struct {
	module   Module
	subsorts *poset.POSet
}

// NewModuleUtils declares every sort before relating them,
// so sentences may come in any order. Subsorts between undeclared sorts
// and cyclic subsorts are reported as errors.
func NewModuleUtils(m Module) (*ModuleUtils, error) {
	subsorts := poset.New()
	for _, sentence := range m.Sentences {
		if decl, ok := sentence.(SortDeclaration); ok {
			subsorts.Add(decl.Sort)
		}
	}
	for _, sentence := range m.Sentences {
		if decl, ok := sentence.(SubsortDeclaration); ok {
			if err := subsorts.Relate(decl.Big, decl.Small); err != nil {
				return nil, errors.Wrapf(err, "module %s", m.Name)
			}
		}
	}
	if err := subsorts.Close(); err != nil {
		return nil, errors.Wrapf(err, "module %s", m.Name)
	}
	return &ModuleUtils{module: m, subsorts: subsorts}, nil
}

func (mu *ModuleUtils) Name() string { return mu.module.Name }

// DefinedSorts returns the declared sort names, ordered
func (mu *ModuleUtils) DefinedSorts() []string {
	return mu.subsorts.Elements()
}

func (mu *ModuleUtils) Subsorts() Relation {
	return Relation{poset: mu.subsorts}
}

// Relation is the closed subsort relation of a module
type Relation struct {
	poset *poset.POSet
}

// Greater reports whether a > b
func (r Relation) Greater(a, b string) bool {
	return r.poset.Greater(a, b)
}
