package scoring

import "strings"

// dependencyIndicators are the phrases that mark a Korean patent claim as
// dependent when they appear near the start of the claim text: claim-number
// references ("제 N 항에", "청구항"), the "in the ... of claim" construction
// ("있어서"), alternatives ("또는"), and ranges ("내지").
var dependencyIndicators = []string{
	"제", "항에", "있어서", "청구항", "또는", "내지",
}

// claimHeadRunes is how far into a claim the classifier looks for a
// dependency indicator. Dependency references appear at the very start of a
// claim; scanning further produces false positives from claim bodies.
const claimHeadRunes = 50

// ClassifyClaims splits a claim list into independent and dependent claims.
// Every input claim lands in exactly one of the two outputs. For a non-empty
// input the independent list is never empty: if every claim matches a
// dependency indicator, the first claim is forced independent and the rest
// are dependent, since downstream hierarchy ratios divide by the independent
// count.
func ClassifyClaims(claims []string) (independent, dependent []string) {
	for _, claim := range claims {
		if isDependentClaim(claim) {
			dependent = append(dependent, claim)
		} else {
			independent = append(independent, claim)
		}
	}
	if len(independent) == 0 && len(claims) > 0 {
		independent = claims[:1]
		dependent = claims[1:]
	}
	return independent, dependent
}

func isDependentClaim(claim string) bool {
	head := claim
	if runes := []rune(claim); len(runes) > claimHeadRunes {
		head = string(runes[:claimHeadRunes])
	}
	for _, indicator := range dependencyIndicators {
		if strings.Contains(head, indicator) {
			return true
		}
	}
	return false
}
