// Package resolver ranks catalog records against a user query's token set and
// either picks a single winner or reports that clarification is needed.
//
// Single-token overlap over-generates ambiguity — many records share generic
// verbs like "obtener" or "registrar" — so multi-token combination rules carry
// double weight. Ties at the top score always surface as ambiguity rather
// than an arbitrary pick: guessing among tied candidates risks delivering
// wrong procedural information.
package resolver

import (
	"github.com/publilab/munbot/internal/catalog"
	"github.com/publilab/munbot/internal/domain"
)

// Resolver scores and ranks catalog records for a query.
type Resolver struct {
	rules catalog.Rules
}

// New creates a resolver with the given combination-rule table.
func New(rules catalog.Rules) *Resolver {
	return &Resolver{rules: rules}
}

// CandidatePool returns the records whose action keywords intersect the query
// tokens at all, in catalog order. An empty pool means NoMatch.
func (r *Resolver) CandidatePool(cat *catalog.Catalog, query *domain.Query) []domain.Record {
	var pool []domain.Record
	for _, rec := range cat.All() {
		for _, token := range query.Tokens() {
			if rec.HasAction(token) {
				pool = append(pool, rec)
				break
			}
		}
	}
	return pool
}

// Resolve ranks the candidate pool by finalScore = basic + 2*combo.
// A unique strict maximum above zero resolves to that record; any tie at the
// maximum — including a maximum of zero over a nonempty pool — yields an
// ambiguous resolution carrying the full pool in its original order.
func (r *Resolver) Resolve(query *domain.Query, pool []domain.Record) domain.Resolution {
	if len(pool) == 0 {
		return domain.NoMatch()
	}

	candidates := make([]domain.Candidate, len(pool))
	topScore := 0
	for i := range pool {
		basic := basicScore(&pool[i], query)
		combo := comboScore(r.rules.CombinationsFor(pool[i].ID()), query)
		candidates[i] = domain.NewCandidate(pool[i], basic, combo)
		if s := candidates[i].FinalScore(); s > topScore {
			topScore = s
		}
	}

	topCount := 0
	winner := -1
	for i := range candidates {
		if candidates[i].FinalScore() == topScore {
			topCount++
			winner = i
		}
	}

	if topScore > 0 && topCount == 1 {
		return domain.Resolved(candidates[winner].Record(), candidates)
	}
	return domain.Ambiguous(candidates)
}

// ResolveAgainst is CandidatePool followed by Resolve.
func (r *Resolver) ResolveAgainst(cat *catalog.Catalog, query *domain.Query) domain.Resolution {
	return r.Resolve(query, r.CandidatePool(cat, query))
}
