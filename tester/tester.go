package tester

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/nihei9/cky/cky"
	"github.com/nihei9/cky/cnf"
	"github.com/nihei9/cky/grammar"
	"github.com/nihei9/cky/pcky"
	"gopkg.in/yaml.v3"
)

// probabilityTolerance is the largest difference between an expected and an actual probability
// that is still a pass.
const probabilityTolerance = 1e-9

// TestCase is one word and its expected result. Probability is only meaningful for a probabilistic
// grammar.
type TestCase struct {
	Word        string   `yaml:"word"`
	Member      bool     `yaml:"member"`
	Probability *float64 `yaml:"probability,omitempty"`
}

// TestFile is the content of a test-case file.
type TestFile struct {
	Title string      `yaml:"title"`
	Cases []*TestCase `yaml:"cases"`
}

type Mismatch struct {
	Word    string
	Message string
}

type TestResult struct {
	TestCasePath string
	Error        error
	Mismatches   []*Mismatch
}

func (r *TestResult) String() string {
	if r.Error != nil {
		const indent1 = "    "
		const indent2 = indent1 + indent1

		msgLines := strings.Split(r.Error.Error(), "\n")
		msg := fmt.Sprintf("Failed %v:\n%v%v", r.TestCasePath, indent1, strings.Join(msgLines, "\n"+indent1))
		if len(r.Mismatches) == 0 {
			return msg
		}
		var lines []string
		for _, m := range r.Mismatches {
			lines = append(lines, fmt.Sprintf("%q: %v", m.Word, m.Message))
		}
		return fmt.Sprintf("%v\n%v%v", msg, indent2, strings.Join(lines, "\n"+indent2))
	}
	return fmt.Sprintf("Passed %v", r.TestCasePath)
}

type TestCaseWithMetadata struct {
	TestFile *TestFile
	FilePath string
	Error    error
}

func ListTestCases(testPath string) []*TestCaseWithMetadata {
	fi, err := os.Stat(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	if !fi.IsDir() {
		c, err := parseTestFile(testPath)
		return []*TestCaseWithMetadata{
			{
				TestFile: c,
				FilePath: testPath,
				Error:    err,
			},
		}
	}

	es, err := os.ReadDir(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	var cases []*TestCaseWithMetadata
	for _, e := range es {
		cs := ListTestCases(filepath.Join(testPath, e.Name()))
		cases = append(cases, cs...)
	}
	return cases
}

func parseTestFile(testCasePath string) (*TestFile, error) {
	f, err := os.Open(testCasePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d := yaml.NewDecoder(f)
	d.KnownFields(true)
	var tf TestFile
	if err := d.Decode(&tf); err != nil {
		return nil, fmt.Errorf("invalid test-case file: %w", err)
	}
	if len(tf.Cases) == 0 {
		return nil, errors.New("a test-case file needs at least one case")
	}
	return &tf, nil
}

// Tester runs test cases against Probabilistic when it is set and against Grammar otherwise.
// Grammar is converted to CNF when it is not in CNF yet.
type Tester struct {
	Grammar       *grammar.Grammar
	Probabilistic *grammar.ProbabilisticGrammar
	Cases         []*TestCaseWithMetadata
}

// judge returns a mismatch message, or "" when a word behaves as expected.
type judge func(c *TestCase) string

func (t *Tester) Run() []*TestResult {
	j, err := t.judge()
	var rs []*TestResult
	for _, c := range t.Cases {
		if err != nil {
			rs = append(rs, &TestResult{
				TestCasePath: c.FilePath,
				Error:        err,
			})
			continue
		}
		rs = append(rs, runTest(j, c))
	}
	return rs
}

func (t *Tester) judge() (judge, error) {
	if t.Probabilistic != nil {
		p, err := pcky.NewParser(t.Probabilistic)
		if err != nil {
			return nil, err
		}
		return func(c *TestCase) string {
			res := p.ParseString(c.Word)
			if res.Member != c.Member {
				return fmt.Sprintf("membership mismatch: expected: %v, actual: %v", c.Member, res.Member)
			}
			if c.Probability != nil && math.Abs(res.Probability-*c.Probability) > probabilityTolerance {
				return fmt.Sprintf("probability mismatch: expected: %v, actual: %v", *c.Probability, res.Probability)
			}
			return ""
		}, nil
	}

	if t.Grammar == nil {
		return nil, errors.New("no grammar was given")
	}
	g := t.Grammar
	if !cnf.IsCNF(g) {
		var err error
		g, err = cnf.Convert(g)
		if err != nil {
			return nil, err
		}
	}
	p, err := cky.NewParser(g)
	if err != nil {
		return nil, err
	}
	return func(c *TestCase) string {
		if c.Probability != nil {
			return "a probability can only be checked against a probabilistic grammar"
		}
		if member := p.ParseString(c.Word); member != c.Member {
			return fmt.Sprintf("membership mismatch: expected: %v, actual: %v", c.Member, member)
		}
		return ""
	}, nil
}

func runTest(j judge, c *TestCaseWithMetadata) *TestResult {
	if c.Error != nil {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        c.Error,
		}
	}

	var mismatches []*Mismatch
	for _, tc := range c.TestFile.Cases {
		if msg := j(tc); msg != "" {
			mismatches = append(mismatches, &Mismatch{
				Word:    tc.Word,
				Message: msg,
			})
		}
	}
	if len(mismatches) > 0 {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        fmt.Errorf("%v of %v cases failed", len(mismatches), len(c.TestFile.Cases)),
			Mismatches:   mismatches,
		}
	}
	return &TestResult{
		TestCasePath: c.FilePath,
	}
}
