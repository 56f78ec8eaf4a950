
package sentiment

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

//go:embed lexicon.yaml
var defaultLexicon []byte

// Lexicon holds word polarities plus the modifiers that change them.
type Lexicon struct {
	Words        map[string]float64 `yaml:"words"`
	Intensifiers map[string]float64 `yaml:"intensifiers"`
	Negators     []string           `yaml:"negators"`
}

// DefaultLexicon returns the built-in French/English lexicon.
func DefaultLexicon() (*Lexicon, error) {
	return ParseLexicon(defaultLexicon)
}

// LoadLexicon reads a lexicon from a YAML file.
func LoadLexicon(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseLexicon(data)
}

func ParseLexicon(data []byte) (*Lexicon, error) {
	var lex Lexicon
	if err := yaml.Unmarshal(data, &lex); err != nil {
		return nil, fmt.Errorf("parse lexicon: %w", err)
	}
	if len(lex.Words) == 0 {
		return nil, fmt.Errorf("parse lexicon: no words")
	}
	return &lex, nil
}

// negationWindow is how many tokens back a negator still applies.
const negationWindow = 2

// LexiconScorer averages the polarity of every lexicon word in a text.
// An intensifier right before a word scales it; a negator shortly before
// it flips and halves it.
type LexiconScorer struct {
	words        map[string]float64
	intensifiers map[string]float64
	negators     map[string]struct{}
}

func NewLexiconScorer(lex *Lexicon) *LexiconScorer {
	s := &LexiconScorer{
		words:        make(map[string]float64, len(lex.Words)),
		intensifiers: make(map[string]float64, len(lex.Intensifiers)),
		negators:     make(map[string]struct{}, len(lex.Negators)),
	}
	for w, p := range lex.Words {
		s.words[strings.ToLower(w)] = p
	}
	for w, m := range lex.Intensifiers {
		s.intensifiers[strings.ToLower(w)] = m
	}
	for _, w := range lex.Negators {
		s.negators[strings.ToLower(w)] = struct{}{}
	}
	return s
}

func (s *LexiconScorer) Polarity(text string) float64 {
	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '-'
	})

	var sum float64
	var n int
	for i, tok := range tokens {
		p, ok := s.words[tok]
		if !ok {
			continue
		}
		if i > 0 {
			if m, ok := s.intensifiers[tokens[i-1]]; ok {
				p *= m
			}
		}
		for j := i - 1; j >= 0 && j >= i-negationWindow; j-- {
			if _, neg := s.negators[tokens[j]]; neg {
				p *= -0.5
				break
			}
		}
		sum += clamp(p)
		n++
	}
	if n == 0 {
		return 0
	}
	return clamp(sum / float64(n))
}

func clamp(v float64) float64 {
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	}
	return v
}
