package resolver

import "github.com/publilab/munbot/internal/domain"

// basicScore counts, for each query token, whether it appears verbatim among
// the record's action keywords. Duplicate query tokens each count on their
// own — repeating a keyword in the utterance increases its weight.
func basicScore(record *domain.Record, query *domain.Query) int {
	score := 0
	for _, token := range query.Tokens() {
		if record.HasAction(token) {
			score++
		}
	}
	return score
}

// comboScore counts the record's satisfied combination rules. A rule is
// satisfied iff every one of its 2-3 keywords is present in the query,
// in any order.
func comboScore(combos [][]string, query *domain.Query) int {
	score := 0
	for _, combo := range combos {
		satisfied := true
		for _, kw := range combo {
			if !query.Contains(kw) {
				satisfied = false
				break
			}
		}
		if satisfied {
			score++
		}
	}
	return score
}
