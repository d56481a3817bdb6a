// Package experiment runs the parsers over randomly generated grammars and words.
package experiment

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/nihei9/cky/cky"
	"github.com/nihei9/cky/cnf"
	"github.com/nihei9/cky/generator"
	"github.com/nihei9/cky/grammar"
	"github.com/nihei9/cky/pcky"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("cky.experiment")

// Combination selects the kind of grammar and word of one run.
type Combination struct {
	Probabilistic bool
	CNF           bool
	WantMember    bool
}

// Combinations returns every combination except a probabilistic grammar not in CNF, which no
// parser accepts.
func Combinations() []Combination {
	var combs []Combination
	for _, prob := range []bool{false, true} {
		for _, isCNF := range []bool{false, true} {
			for _, member := range []bool{false, true} {
				if prob && !isCNF {
					continue
				}
				combs = append(combs, Combination{
					Probabilistic: prob,
					CNF:           isCNF,
					WantMember:    member,
				})
			}
		}
	}
	return combs
}

type Run struct {
	Number int
	Combination

	// Grammar is the generated grammar and Converted its CNF form, when a conversion took place.
	Grammar   string
	Converted string

	// WordFound is false when no word of the wanted kind could be generated. The parse fields
	// are meaningless then.
	WordFound   bool
	Word        string
	Member      bool
	Probability float64
}

// Recorder persists runs.
type Recorder interface {
	SaveRun(ctx context.Context, batchID string, run *Run) error
}

type runnerConfig struct {
	recorder      Recorder
	batchID       string
	maxWordLength int
	parserOpts    []pcky.ParserOption
}

type RunnerOption func(c *runnerConfig)

// RecordTo saves every run to rec under batchID.
func RecordTo(rec Recorder, batchID string) RunnerOption {
	return func(c *runnerConfig) {
		c.recorder = rec
		c.batchID = batchID
	}
}

func MaxWordLength(length int) RunnerOption {
	return func(c *runnerConfig) {
		c.maxWordLength = length
	}
}

// ProbabilisticParserOptions are passed to every probabilistic parser the runner builds.
func ProbabilisticParserOptions(opts ...pcky.ParserOption) RunnerOption {
	return func(c *runnerConfig) {
		c.parserOpts = opts
	}
}

type Runner struct {
	rand   *rand.Rand
	config *runnerConfig
}

func NewRunner(seed int64, opts ...RunnerOption) *Runner {
	config := &runnerConfig{
		maxWordLength: 8,
	}
	for _, opt := range opts {
		opt(config)
	}
	return &Runner{
		rand:   rand.New(rand.NewSource(seed)),
		config: config,
	}
}

// Run performs one run per combination in the order of Combinations. It stops between runs when
// ctx is done.
func (r *Runner) Run(ctx context.Context) ([]*Run, error) {
	var runs []*Run
	for i, comb := range Combinations() {
		if err := ctx.Err(); err != nil {
			return runs, err
		}
		run, err := r.RunOne(i+1, comb)
		if err != nil {
			return runs, err
		}
		if r.config.recorder != nil {
			if err := r.config.recorder.SaveRun(ctx, r.config.batchID, run); err != nil {
				return runs, fmt.Errorf("cannot save the run %v: %w", run.Number, err)
			}
		}
		runs = append(runs, run)
	}
	return runs, nil
}

// RunOne generates a grammar and a word for comb and parses the word.
func (r *Runner) RunOne(number int, comb Combination) (*Run, error) {
	run := &Run{
		Number:      number,
		Combination: comb,
	}
	gm := generator.NewGrammarMaker(r.rand)

	if comb.Probabilistic {
		pg := gm.MakeProbabilistic(true, 0)
		run.Grammar = pg.String()
		g := pg.Grammar()
		word, ok, err := r.genWord(g, comb.WantMember)
		if err != nil {
			return nil, err
		}
		if !ok {
			log.Warningf("run %v: no word was generated", number)
			return run, nil
		}
		p, err := pcky.NewParser(pg, r.config.parserOpts...)
		if err != nil {
			return nil, err
		}
		res := p.Parse(word)
		run.WordFound = true
		run.Word = grammar.WordString(word)
		run.Member = res.Member
		run.Probability = res.Probability
		log.Infof("run %v: %+v, word: %v, result: %v", number, comb, run.Word, res)
		return run, nil
	}

	g := gm.Make(comb.CNF, 0)
	run.Grammar = g.String()
	if !comb.CNF {
		cg, err := cnf.Convert(g)
		if err != nil {
			return nil, err
		}
		run.Converted = cg.String()
		g = cg
	}
	word, ok, err := r.genWord(g, comb.WantMember)
	if err != nil {
		return nil, err
	}
	if !ok {
		log.Warningf("run %v: no word was generated", number)
		return run, nil
	}
	p, err := cky.NewParser(g)
	if err != nil {
		return nil, err
	}
	run.WordFound = true
	run.Word = grammar.WordString(word)
	run.Member = p.Parse(word)
	log.Infof("run %v: %+v, word: %v, member: %v", number, comb, run.Word, run.Member)
	return run, nil
}

// genWord makes a member of g, or a word verified not to be a member. g must be in CNF.
func (r *Runner) genWord(g *grammar.Grammar, member bool) ([]grammar.Symbol, bool, error) {
	if member {
		wm := generator.NewWordMaker(r.rand, g, generator.MaxLength(r.config.maxWordLength))
		for i := 0; i < 30; i++ {
			if word, ok := wm.Member(); ok {
				return word, true, nil
			}
		}
		wm = generator.NewWordMaker(r.rand, g, generator.MaxLength(r.config.maxWordLength), generator.MinLength(1))
		for i := 0; i < 20; i++ {
			if word, ok := wm.Member(); ok {
				return word, true, nil
			}
		}
		return nil, false, nil
	}

	p, err := cky.NewParser(g)
	if err != nil {
		return nil, false, err
	}
	wm := generator.NewWordMaker(r.rand, g, generator.MaxLength(r.config.maxWordLength))
	for i := 0; i < 20; i++ {
		word, ok := wm.NonMember()
		if !ok {
			continue
		}
		if p.Parse(word) {
			log.Debugf("a candidate non-member is a member: %v", grammar.WordString(word))
			continue
		}
		return word, true, nil
	}
	return nil, false, nil
}
