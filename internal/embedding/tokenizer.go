package embedding

import "strings"

// Special token IDs for XLM-RoBERTa style vocabularies (BGE-M3 family).
const (
	tokenBOS = 0
	tokenPad = 1
	tokenEOS = 2
)

// Tokenizer produces model inputs (input_ids, attention_mask) for a sentence.
type Tokenizer interface {
	Tokenize(text string, maxTokens int) (inputIDs, attentionMask []int64)
}

// SimpleTokenizer is a whitespace tokenizer with hash-based token IDs. It is a
// stand-in for a real sentencepiece tokenizer: embeddings stay deterministic
// per input, which is all the matching pipeline contracts on.
type SimpleTokenizer struct {
	// VocabSize bounds the hashed token IDs; defaults to 250000 when zero.
	VocabSize int
}

// Tokenize splits text into words and produces padded token IDs up to maxTokens.
func (t *SimpleTokenizer) Tokenize(text string, maxTokens int) (inputIDs, attentionMask []int64) {
	if maxTokens <= 0 {
		maxTokens = 512
	}
	vocab := t.VocabSize
	if vocab <= 0 {
		vocab = 250000
	}

	inputIDs = make([]int64, maxTokens)
	attentionMask = make([]int64, maxTokens)
	for i := range inputIDs {
		inputIDs[i] = tokenPad
	}

	inputIDs[0] = tokenBOS
	attentionMask[0] = 1

	pos := 1
	for _, word := range strings.Fields(text) {
		if pos >= maxTokens-1 {
			break
		}
		// Reserve the special-token range.
		inputIDs[pos] = int64(hashString(word)%(vocab-3)) + 3
		attentionMask[pos] = 1
		pos++
	}
	if pos < maxTokens {
		inputIDs[pos] = tokenEOS
		attentionMask[pos] = 1
	}
	return inputIDs, attentionMask
}

// hashString returns a deterministic non-negative hash for token IDs.
func hashString(s string) int {
	h := 0
	for _, c := range s {
		h = 31*h + int(c)
	}
	if h < 0 {
		h = -h
	}
	return h
}
