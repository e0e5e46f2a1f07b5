package cmd

import (
	"github.com/pkg/errors"
	"github.com/shd101wyy/k-1/definition"
	"github.com/shd101wyy/k-1/kerr"
	"github.com/shd101wyy/k-1/kil"
	"github.com/shd101wyy/k-1/kore"
	"github.com/shd101wyy/k-1/minikore"
	"github.com/shd101wyy/k-1/subsorts"
	"os"
	"path/filepath"
)

const (
	sourceKore     = "kore"
	sourceMiniKore = "minikore"
	sourceKil      = "kil"
)

// lattice loads the definition and builds the lattice of the selected module through the selected source
func (o *options) lattice() (*subsorts.Subsorts, error) {
	target, err := filepath.Abs(o.defPath)
	if err != nil {
		return nil, errors.Wrap(err, "could not get absolute path of definition")
	}
	def, err := definition.LoadFile(os.DirFS(filepath.Dir(target)), filepath.Base(target))
	if err != nil {
		return nil, err
	}

	var m *definition.Module
	if o.module == "" {
		m, err = def.MainModule()
	} else {
		m, err = def.Module(o.module)
	}
	if err != nil {
		return nil, err
	}

	var s *subsorts.Subsorts
	switch o.source {
	case sourceKore:
		s, err = subsorts.FromModule(m)
	case sourceMiniKore:
		s, err = fromMiniKore(m)
	case sourceKil:
		s, err = fromKil(m)
	default:
		return nil, kerr.New(kerr.NewUnknownSource{Name: o.source})
	}
	if err != nil {
		return nil, errors.Wrapf(err, "build lattice of module %s", m.Name())
	}
	logger.Info("built lattice", "module", m.Name(), "source", o.source, "sorts", s.Len())
	return s, nil
}

func fromMiniKore(m *definition.Module) (*subsorts.Subsorts, error) {
	names, edges := m.Declarations()
	sentences := make([]minikore.Sentence, 0, len(names)+len(edges))
	for _, name := range names {
		sentences = append(sentences, minikore.SortDeclaration{Sort: name})
	}
	for _, edge := range edges {
		sentences = append(sentences, minikore.SubsortDeclaration{Big: edge.Big, Small: edge.Small})
	}
	mu, err := minikore.NewModuleUtils(minikore.Module{Name: m.Name(), Sentences: sentences})
	if err != nil {
		return nil, err
	}
	return subsorts.FromModuleUtils(mu)
}

func fromKil(m *definition.Module) (*subsorts.Subsorts, error) {
	names, edges := m.Declarations()
	ctx := kil.NewContext()
	for _, name := range names {
		ctx.AddSort(name)
	}
	for _, edge := range edges {
		if err := ctx.AddSubsort(kil.SortOf(edge.Big), kil.SortOf(edge.Small)); err != nil {
			return nil, err
		}
	}
	return subsorts.FromContext(ctx)
}

// parseSorts resolves sort names given on the command line
func parseSorts(names []string) ([]kore.Sort, error) {
	sorts := make([]kore.Sort, 0, len(names))
	var errs *kerr.Errors
	for _, name := range names {
		sort, err := kore.SortOf(name)
		if err != nil {
			errs = errs.With(err.(kerr.KError))
			continue
		}
		sorts = append(sorts, sort)
	}
	if errs.HasError() {
		return nil, errs
	}
	return sorts, nil
}
