package recipe

import (
	"sort"
	"strings"
)

// Func builds a Plan from a normalized Request.
type Func func(req Request) Plan

var recipes = map[string]Func{}

// Register adds a recipe under the provided name. Names are case-insensitive.
func Register(name string, f Func) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || f == nil {
		return
	}
	recipes[name] = f
}

// Lookup returns the recipe registered under name.
func Lookup(name string) (Func, bool) {
	f, ok := recipes[strings.ToLower(strings.TrimSpace(name))]
	return f, ok
}

// Names returns the registered recipe names in sorted order.
func Names() []string {
	names := make([]string, 0, len(recipes))
	for name := range recipes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build normalizes req and runs the named recipe.
func Build(name string, req Request) (Plan, bool) {
	f, ok := Lookup(name)
	if !ok {
		return Plan{}, false
	}
	return f(req.Normalized()), true
}
