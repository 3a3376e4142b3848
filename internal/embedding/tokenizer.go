package embedding

import (
	"hash/fnv"
	"strings"
)

// BERT special token IDs.
const (
	tokenCLS  = 101
	tokenSEP  = 102
	vocabSize = 30000
)

// Encoding is the model input for one text, padded to a fixed length.
type Encoding struct {
	InputIDs      []int64
	AttentionMask []int64
	TokenTypeIDs  []int64
}

// Tokenizer produces BERT-style model inputs.
type Tokenizer interface {
	Tokenize(text string, maxTokens int) Encoding
}

// WordTokenizer lowercases, splits on whitespace and hashes each word into
// the model vocabulary. It does not reproduce WordPiece.
type WordTokenizer struct{}

// NewWordTokenizer returns a WordTokenizer.
func NewWordTokenizer() *WordTokenizer {
	return &WordTokenizer{}
}

// Tokenize encodes text as [CLS] words... [SEP], padded to maxTokens.
func (WordTokenizer) Tokenize(text string, maxTokens int) Encoding {
	if maxTokens < 2 {
		maxTokens = 256
	}
	enc := Encoding{
		InputIDs:      make([]int64, maxTokens),
		AttentionMask: make([]int64, maxTokens),
		TokenTypeIDs:  make([]int64, maxTokens),
	}
	enc.InputIDs[0], enc.AttentionMask[0] = tokenCLS, 1

	pos := 1
	for _, w := range strings.Fields(strings.ToLower(text)) {
		if pos >= maxTokens-1 {
			break
		}
		enc.InputIDs[pos], enc.AttentionMask[pos] = wordID(w), 1
		pos++
	}
	enc.InputIDs[pos], enc.AttentionMask[pos] = tokenSEP, 1
	return enc
}

// wordID maps a word into the vocabulary, skipping the reserved low IDs.
func wordID(w string) int64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(w))
	return int64(1000 + h.Sum32()%(vocabSize-1000))
}
