// Package tfidf implements a small TF-IDF vectorizer with cosine similarity
// for retrieving the closest corpus entry to a free-text question.
package tfidf

import (
	"math"
	"strings"
	"unicode"
)

// Document is one retrievable corpus entry.
type Document struct {
	ID   string
	Text string
}

// Match is the best corpus entry for a query with its similarity score.
type Match struct {
	Document Document
	Score    float64
}

// Index is an immutable TF-IDF index over a document corpus.
type Index struct {
	docs    []Document
	idf     map[string]float64
	vectors []map[string]float64 // l2-normalized tf-idf per document
}

// NewIndex builds an index over the given documents.
func NewIndex(docs []Document) *Index {
	idx := &Index{
		docs: docs,
		idf:  make(map[string]float64),
	}

	freqs := make([]map[string]float64, len(docs))
	df := make(map[string]int)
	for i, doc := range docs {
		tf := termFreq(Tokenize(doc.Text))
		freqs[i] = tf
		for term := range tf {
			df[term]++
		}
	}

	// Smoothed idf so terms present in every document still contribute.
	n := float64(len(docs))
	for term, count := range df {
		idx.idf[term] = math.Log((1+n)/(1+float64(count))) + 1
	}

	idx.vectors = make([]map[string]float64, len(docs))
	for i, tf := range freqs {
		idx.vectors[i] = idx.vectorize(tf)
	}
	return idx
}

// Len returns the number of indexed documents.
func (x *Index) Len() int { return len(x.docs) }

// Best returns the corpus entry with the highest cosine similarity to the
// query, or ok=false for an empty index or a query with no known terms.
func (x *Index) Best(query string) (Match, bool) {
	qv := x.vectorize(termFreq(Tokenize(query)))
	if len(qv) == 0 {
		return Match{}, false
	}

	bestIdx, bestScore := -1, 0.0
	for i, dv := range x.vectors {
		score := dot(qv, dv)
		if bestIdx == -1 || score > bestScore {
			bestIdx, bestScore = i, score
		}
	}
	if bestIdx == -1 {
		return Match{}, false
	}
	return Match{Document: x.docs[bestIdx], Score: bestScore}, true
}

// vectorize turns raw term frequencies into an l2-normalized tf-idf vector.
// Terms unseen at index time carry no weight.
func (x *Index) vectorize(tf map[string]float64) map[string]float64 {
	vec := make(map[string]float64, len(tf))
	var norm float64
	for term, count := range tf {
		idf, ok := x.idf[term]
		if !ok {
			continue
		}
		w := count * idf
		vec[term] = w
		norm += w * w
	}
	if norm == 0 {
		return nil
	}
	norm = math.Sqrt(norm)
	for term := range vec {
		vec[term] /= norm
	}
	return vec
}

// Tokenize lowercases the text and splits it on any non-letter, non-digit
// rune.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

func termFreq(tokens []string) map[string]float64 {
	tf := make(map[string]float64, len(tokens))
	for _, tok := range tokens {
		tf[tok]++
	}
	return tf
}

func dot(a, b map[string]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for term, w := range a {
		sum += w * b[term]
	}
	return sum
}
