package domain

import "strings"

// Query is one user turn's resolution input: the normalized keyword tokens
// extracted by the NLU collaborator plus the raw utterance (used only by the
// name normalizer for substring and ordinal matching).
type Query struct {
	tokens  []string
	rawText string
}

// NewQuery builds a Query, lowercasing every token. Duplicate tokens are kept:
// repeating a keyword in the utterance increases its weight.
func NewQuery(tokens []string, rawText string) Query {
	return Query{tokens: lowerAll(tokens), rawText: rawText}
}

// Tokens returns the normalized query tokens.
func (q Query) Tokens() []string { return q.tokens }

// RawText returns the original utterance.
func (q Query) RawText() string { return q.rawText }

// IsEmpty reports whether no tokens were extracted.
func (q Query) IsEmpty() bool { return len(q.tokens) == 0 }

// Contains reports whether token is in the query token set (case-insensitive).
func (q Query) Contains(token string) bool {
	token = strings.ToLower(token)
	for _, t := range q.tokens {
		if t == token {
			return true
		}
	}
	return false
}

// Outcome classifies a resolution result.
type Outcome string

const (
	// OutcomeResolved means a single record won with a positive score.
	OutcomeResolved Outcome = "resolved"
	// OutcomeAmbiguous means the top score was tied or zero; the caller must
	// ask the user to clarify among the full candidate pool.
	OutcomeAmbiguous Outcome = "ambiguous"
	// OutcomeNoMatch means no record shared any token with the query.
	OutcomeNoMatch Outcome = "no_match"
)

// Candidate is a record with its match scores for one query.
type Candidate struct {
	record Record
	basic  int
	combo  int
}

// NewCandidate creates a scored candidate.
func NewCandidate(record Record, basic, combo int) Candidate {
	return Candidate{record: record, basic: basic, combo: combo}
}

// Record returns the candidate's catalog record.
func (c Candidate) Record() Record { return c.record }

// BasicScore returns the token overlap count.
func (c Candidate) BasicScore() int { return c.basic }

// ComboScore returns the satisfied combination rule count.
func (c Candidate) ComboScore() int { return c.combo }

// FinalScore returns basic + combo weighted by ComboWeight.
func (c Candidate) FinalScore() int { return c.basic + c.combo*ComboWeight }

// ComboWeight is the multiplier applied to combination scores. Paired phrase
// evidence disambiguates far better than single-token overlap, hence the
// heavier weight.
const ComboWeight = 2

// Resolution is the outcome of matching a query against the catalog.
type Resolution struct {
	outcome    Outcome
	winner     Record
	candidates []Candidate
}

// Resolved creates a resolution with a single winning record.
func Resolved(winner Record, candidates []Candidate) Resolution {
	return Resolution{outcome: OutcomeResolved, winner: winner, candidates: candidates}
}

// Ambiguous creates a clarification-needed resolution carrying the full
// candidate pool in original catalog order.
func Ambiguous(candidates []Candidate) Resolution {
	return Resolution{outcome: OutcomeAmbiguous, candidates: candidates}
}

// NoMatch creates an empty resolution.
func NoMatch() Resolution {
	return Resolution{outcome: OutcomeNoMatch}
}

// Outcome returns the resolution classification.
func (r Resolution) Outcome() Outcome { return r.outcome }

// Winner returns the resolved record; only meaningful for OutcomeResolved.
func (r Resolution) Winner() Record { return r.winner }

// Candidates returns the scored pool in catalog order.
func (r Resolution) Candidates() []Candidate { return r.candidates }
