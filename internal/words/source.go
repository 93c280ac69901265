package words

import (
	"math/rand"
	"strconv"
	"time"
)

// DefaultPunctSet are the punctuation marks appended to generated words.
const DefaultPunctSet = ".,!?;:"

// numberProb is the chance a generated word is replaced with a number
// when number injection is enabled.
const numberProb = 0.15

// RandomSource draws words uniformly from a base list and applies
// punctuation and number injection. It never runs out, which timed
// sessions rely on.
type RandomSource struct {
	rnd       *rand.Rand
	words     []string
	punctProb float64
	numbers   bool
	punctSet  []rune
}

// NewRandomSource returns a source seeded with the current time.
func NewRandomSource(base []string, punctProb float64, numbers bool) *RandomSource {
	return newRandomSource(base, punctProb, numbers, rand.New(rand.NewSource(time.Now().UnixNano())))
}

func newRandomSource(base []string, punctProb float64, numbers bool, rnd *rand.Rand) *RandomSource {
	return &RandomSource{
		rnd:       rnd,
		words:     base,
		punctProb: punctProb,
		numbers:   numbers,
		punctSet:  []rune(DefaultPunctSet),
	}
}

// Next returns the next generated target word.
func (s *RandomSource) Next() string {
	word := s.words[s.rnd.Intn(len(s.words))]
	if s.numbers && s.rnd.Float64() < numberProb {
		word = strconv.Itoa(s.rnd.Intn(10000))
	}
	return s.applyPunct(word)
}

func (s *RandomSource) applyPunct(word string) string {
	if s.punctProb <= 0 || len(s.punctSet) == 0 {
		return word
	}
	if s.rnd.Float64() > s.punctProb {
		return word
	}
	punct := s.punctSet[s.rnd.Intn(len(s.punctSet))]
	return word + string(punct)
}

// SequenceSource yields words in their original order, wrapping around
// when exhausted. Book-derived lists use it so presentation order is
// preserved.
type SequenceSource struct {
	words []string
	idx   int
}

// NewSequenceSource returns an ordered source over the given words.
func NewSequenceSource(words []string) *SequenceSource {
	return &SequenceSource{words: words}
}

// Next returns the next word in order.
func (s *SequenceSource) Next() string {
	word := s.words[s.idx%len(s.words)]
	s.idx++
	return word
}
