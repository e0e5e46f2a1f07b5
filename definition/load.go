package definition

import (
	"github.com/pkg/errors"
	"github.com/shd101wyy/k-1/kerr"
	"github.com/shd101wyy/k-1/kore"
	"gopkg.in/yaml.v3"
	"io"
	"io/fs"
	"slices"
)

// Definition is a set of named modules, one of which is the main module
type Definition struct {
	mainModule string
	modules    map[string]*Module
	// order lists module names in dependency order
	order []string
}

// Module returns the module called name
func (d *Definition) Module(name string) (*Module, error) {
	m, ok := d.modules[name]
	if !ok {
		return nil, kerr.New(kerr.NewUnknownModule{Module: name})
	}
	return m, nil
}

// MainModule returns the module named as main, or the last module in dependency order if none was named
func (d *Definition) MainModule() (*Module, error) {
	if d.mainModule == "" {
		if len(d.order) == 0 {
			return nil, kerr.New(kerr.NewUnknownModule{Module: "<main>"})
		}
		return d.modules[d.order[len(d.order)-1]], nil
	}
	return d.Module(d.mainModule)
}

// Modules returns every module, imported modules before their importers
func (d *Definition) Modules() []*Module {
	modules := make([]*Module, 0, len(d.order))
	for _, name := range d.order {
		modules = append(modules, d.modules[name])
	}
	return modules
}

type definitionFile struct {
	Main    string       `yaml:"main"`
	Modules []moduleDecl `yaml:"modules"`
}

type moduleDecl struct {
	Name    string   `yaml:"name"`
	Imports []string `yaml:"imports"`
	// Bottom declares kore.Bottom in the module
	Bottom   bool          `yaml:"bottom"`
	Sorts    []string      `yaml:"sorts"`
	Subsorts []subsortDecl `yaml:"subsorts"`
}

type subsortDecl struct {
	Sort       string   `yaml:"sort"`
	Supersorts []string `yaml:"supersorts"`
}

func LoadFile(fsys fs.FS, path string) (*Definition, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open definition %s", path)
	}
	defer f.Close()
	def, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "load definition %s", path)
	}
	return def, nil
}

// Load decodes a YAML definition and builds every module in it.
// Declaration problems are reported together as a *kerr.Errors.
func Load(r io.Reader) (*Definition, error) {
	var file definitionFile
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "decode definition")
	}

	var errs *kerr.Errors
	decls := make(map[string]moduleDecl, len(file.Modules))
	var names []string
	for _, decl := range file.Modules {
		if _, ok := decls[decl.Name]; ok {
			errs = errs.With(kerr.New(kerr.NewDuplicateModule{Module: decl.Name}))
			continue
		}
		decls[decl.Name] = decl
		names = append(names, decl.Name)
	}
	for _, name := range names {
		for _, imported := range decls[name].Imports {
			if _, ok := decls[imported]; !ok {
				errs = errs.With(kerr.New(kerr.NewUnknownImport{Module: name, Import: imported}))
			}
		}
	}
	if file.Main != "" {
		if _, ok := decls[file.Main]; !ok {
			errs = errs.With(kerr.New(kerr.NewUnknownModule{Module: file.Main}))
		}
	}
	if errs.HasError() {
		return nil, errs
	}

	order, err := importOrder(names, decls)
	if err != nil {
		return nil, errs.With(err)
	}

	def := &Definition{
		mainModule: file.Main,
		modules:    make(map[string]*Module, len(order)),
		order:      order,
	}
	for _, name := range order {
		m, moduleErrs := buildModule(decls[name], def.modules)
		if m == nil {
			errs = errs.Merge(moduleErrs)
			continue
		}
		def.modules[name] = m
	}
	if errs.HasError() {
		return nil, errs
	}
	logger.Info("loaded definition", "modules", len(order), "main", file.Main)
	return def, nil
}

// importOrder sorts module names so that every module comes after the modules it imports
func importOrder(names []string, decls map[string]moduleDecl) ([]string, kerr.KError) {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(names))
	var order, path []string
	var visit func(string) kerr.KError
	visit = func(name string) kerr.KError {
		switch state[name] {
		case done:
			return nil
		case visiting:
			from := slices.Index(path, name)
			return kerr.New(kerr.NewCyclicImport{Modules: append(slices.Clone(path[from:]), name)})
		}
		state[name] = visiting
		path = append(path, name)
		for _, imported := range decls[name].Imports {
			if err := visit(imported); err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		state[name] = done
		order = append(order, name)
		return nil
	}
	for _, name := range names {
		if err := visit(name); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// buildModule returns a nil module, and the errors that caused it, if decl or any of its imports is invalid
func buildModule(decl moduleDecl, built map[string]*Module) (*Module, *kerr.Errors) {
	var errs *kerr.Errors
	resolve := func(name string) kore.Sort {
		sort, err := kore.SortOf(name)
		if err != nil {
			errs = errs.With(err.(kerr.KError))
		}
		return sort
	}

	sorts := make([]kore.Sort, 0, len(decl.Sorts)+1)
	for _, name := range decl.Sorts {
		sorts = append(sorts, resolve(name))
	}
	if decl.Bottom {
		sorts = append(sorts, kore.Bottom)
	}
	var subsorts []SubsortProduction
	for _, subsort := range decl.Subsorts {
		sort := resolve(subsort.Sort)
		for _, supersort := range subsort.Supersorts {
			subsorts = append(subsorts, SubsortProduction{Sort: sort, Supersort: resolve(supersort)})
		}
	}
	imports := make([]*Module, 0, len(decl.Imports))
	for _, name := range decl.Imports {
		imported, ok := built[name]
		if !ok {
			// the imported module failed to build and was reported already
			return nil, errs
		}
		imports = append(imports, imported)
	}
	if errs.HasError() {
		return nil, errs
	}

	m, err := NewModule(decl.Name, imports, sorts, subsorts)
	if err != nil {
		var moduleErrs *kerr.Errors
		if errors.As(err, &moduleErrs) {
			return nil, errs.Merge(moduleErrs)
		}
		return nil, errs.With(kerr.New(kerr.Unclassified{From: err}))
	}
	return m, nil
}
