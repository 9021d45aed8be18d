package btcfg

import (
	"os"
	"strings"

	"github.com/dop251/goja"
	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/parser"
	"github.com/google/uuid"
)

// loadScript executes a JavaScript config in a fresh, isolated runtime and
// collects its top-level bindings as the configuration mapping. Each load
// gets its own VM, so state never leaks between loads or into the host
// process. Bindings whose names begin with a double underscore are treated as
// script-private and excluded; single-underscore names such as the `_base_`
// reference stay visible.
func (l *Loader) loadScript(path string) (map[string]any, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, wrapLoadError("script", path, err)
	}

	program, err := l.compileScript(string(src))
	if err != nil {
		return nil, wrapLoadError("script", path, err)
	}

	vm := goja.New()
	injected := map[string]bool{}
	if l.cfg.functions != nil {
		for _, name := range l.cfg.functions.Names() {
			fn := name
			if err := vm.Set(fn, func(arguments ...any) (any, error) {
				return l.cfg.functions.Call(fn, arguments...)
			}); err != nil {
				return nil, wrapLoadError("script", path, err)
			}
			injected[fn] = true
		}
	}

	if _, err := vm.RunProgram(program); err != nil {
		return nil, wrapLoadError("script", path, err)
	}

	// var and function declarations land on the global object.
	config := map[string]any{}
	global := vm.GlobalObject()
	for _, name := range global.Keys() {
		if skipBinding(name, injected) {
			continue
		}
		config[name] = global.Get(name).Export()
	}

	// let, const, and class declarations live in the global lexical
	// environment instead and have to be read back by declared name.
	lexical, err := lexicalNames(string(src))
	if err != nil {
		return nil, wrapLoadError("script", path, err)
	}
	for _, name := range lexical {
		if skipBinding(name, injected) {
			continue
		}
		if _, ok := config[name]; ok {
			continue
		}
		if value := vm.Get(name); value != nil {
			config[name] = value.Export()
		}
	}
	return config, nil
}

func skipBinding(name string, injected map[string]bool) bool {
	return injected[name] || strings.HasPrefix(name, "__")
}

// lexicalNames parses src and returns the names bound by top-level lexical
// declarations.
func lexicalNames(src string) ([]string, error) {
	program, err := parser.ParseFile(nil, "", src, 0)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, statement := range program.Body {
		switch decl := statement.(type) {
		case *ast.LexicalDeclaration:
			names = append(names, bindingNames(decl.List)...)
		case *ast.ClassDeclaration:
			if decl.Class != nil && decl.Class.Name != nil {
				names = append(names, decl.Class.Name.Name.String())
			}
		}
	}
	return names, nil
}

func bindingNames(list []*ast.Binding) []string {
	names := make([]string, 0, len(list))
	for _, binding := range list {
		if id, ok := binding.Target.(*ast.Identifier); ok {
			names = append(names, id.Name.String())
		}
	}
	return names
}

func (l *Loader) compileScript(src string) (*goja.Program, error) {
	if l.cfg.cache != nil {
		if cached, ok := l.cfg.cache.Get(src); ok {
			if program, ok := cached.(*goja.Program); ok {
				return program, nil
			}
		}
	}
	// Unique program name keeps stack traces from distinct loads apart.
	name := "btcfg-" + uuid.NewString() + ".js"
	program, err := goja.Compile(name, src, false)
	if err != nil {
		return nil, err
	}
	if l.cfg.cache != nil {
		l.cfg.cache.Set(src, program)
	}
	return program, nil
}
