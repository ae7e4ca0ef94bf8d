package scoring

import "fmt"

// Blend combines a category's quantitative total with its externally
// supplied qualitative score using the category's fixed ratio. The
// qualitative score is taken as-is: validating what the assessment oracle
// returns is the caller's problem, not the blender's.
//
// An unknown category is a programming error and panics.
func Blend(quantitative, qualitative float64, category Category, cfg Config) float64 {
	var ratio BlendRatio
	switch category {
	case CategoryTechnology:
		ratio = cfg.TechnologyBlend
	case CategoryRights:
		ratio = cfg.RightsBlend
	case CategoryMarket:
		ratio = cfg.MarketBlend
	default:
		panic(fmt.Sprintf("scoring: invalid category %q", category))
	}
	return quantitative*ratio.Quantitative + qualitative*ratio.Qualitative
}
