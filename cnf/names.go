package cnf

import (
	"fmt"

	"github.com/nihei9/cky/grammar"
)

// nameGenerator hands out symbol names that collide neither with the names of the grammar being
// converted nor with each other. Each conversion owns its own generator.
type nameGenerator struct {
	used     map[string]struct{}
	counters map[string]int
}

func newNameGenerator(g *grammar.Grammar) *nameGenerator {
	gen := &nameGenerator{
		used:     map[string]struct{}{},
		counters: map[string]int{},
	}
	gen.reserve(g.Start.Name)
	for _, r := range g.Rules {
		gen.reserve(r.Head.Name)
		for _, sym := range r.Body {
			gen.reserve(sym.Name)
		}
	}
	return gen
}

func (gen *nameGenerator) reserve(name string) {
	gen.used[name] = struct{}{}
}

// fresh returns base itself when it is unused, otherwise base followed by the smallest free number.
func (gen *nameGenerator) fresh(base string) string {
	if _, ok := gen.used[base]; !ok {
		gen.reserve(base)
		return base
	}
	for i := 1; ; i++ {
		name := fmt.Sprintf("%v%v", base, i)
		if _, ok := gen.used[name]; !ok {
			gen.reserve(name)
			return name
		}
	}
}

// next returns prefix followed by the next number of the prefix's counter, skipping used names.
func (gen *nameGenerator) next(prefix string) string {
	for {
		gen.counters[prefix]++
		name := fmt.Sprintf("%v%v", prefix, gen.counters[prefix])
		if _, ok := gen.used[name]; !ok {
			gen.reserve(name)
			return name
		}
	}
}
