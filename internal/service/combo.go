package service

import (
	"strings"

	"nutriguide/internal/domain"
	"nutriguide/internal/locale"
)

// Combo names referenced by the profile rules. Must exist in the catalog
// handed to the matcher.
const (
	comboAthlete   = "Athlete Performance Pack"
	comboRecovery  = "Recovery & Repair Combo"
	comboBone      = "Bone Health Combo"
	comboHeart     = "Heart Health Combo"
	comboWomens    = "Women's Wellness Pack"
	comboEnergy    = "Energy & Vitality Combo"
	comboSleep     = "Sleep & Relax Combo"
	comboImmunity  = "Immune Support Combo"
	comboGutHealth = "Gut Health Combo"
)

const seniorAge = 65

// minComboOverlap is the qualification bar for matching a bundle against
// already-recommended products.
const minComboOverlap = 2

// ComboMatcher proposes pre-defined bundles, either from the interview
// profile or from the products just recommended. The catalog is read-only.
type ComboMatcher struct {
	combos       []domain.ProductCombo
	athleteWords []string
}

func NewComboMatcher(combos []domain.ProductCombo, loc *locale.Table) *ComboMatcher {
	if combos == nil {
		combos = domain.DefaultCombos()
	}
	if loc == nil {
		loc = locale.Default()
	}
	return &ComboMatcher{combos: combos, athleteWords: loc.AthleteWords}
}

// RecommendByProfile evaluates the rule list in fixed order and returns the
// matching combos, de-duplicated by name with first occurrence winning.
func (m *ComboMatcher) RecommendByProfile(goals []domain.GoalTag, age *int, gender *domain.Gender) []domain.ProductCombo {
	var names []string

	if m.hasAthleteGoal(goals) {
		names = append(names, comboAthlete, comboRecovery)
	}
	if age != nil && *age >= seniorAge {
		names = append(names, comboBone, comboHeart)
	}
	if gender != nil && *gender == domain.GenderFemale {
		names = append(names, comboWomens)
	}
	if hasGoal(goals, domain.GoalEnergy) {
		names = append(names, comboEnergy)
	}
	if hasGoal(goals, domain.GoalSleep) {
		names = append(names, comboSleep)
	}
	if hasGoal(goals, domain.GoalImmunity) {
		names = append(names, comboImmunity)
	}

	if len(names) == 0 {
		names = []string{comboGutHealth, comboImmunity}
	}

	seen := make(map[string]bool, len(names))
	out := make([]domain.ProductCombo, 0, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		if combo, ok := m.byName(name); ok {
			out = append(out, combo)
		}
	}
	return out
}

// MatchByRecommendedProducts picks the bundle sharing the most member-title
// keywords with the recommended products. A combo qualifies only with at
// least two overlapping members; ties keep the first-seen combo. Returns nil
// when nothing qualifies.
func (m *ComboMatcher) MatchByRecommendedProducts(recommended []domain.Product) *domain.ProductCombo {
	titles := make([]string, 0, len(recommended))
	for _, p := range recommended {
		titles = append(titles, strings.ToLower(p.Title))
	}

	var best *domain.ProductCombo
	bestOverlap := 0
	for i := range m.combos {
		overlap := overlapCount(m.combos[i].Products, titles)
		if overlap >= minComboOverlap && overlap > bestOverlap {
			best = &m.combos[i]
			bestOverlap = overlap
		}
	}
	if best == nil {
		return nil
	}
	combo := *best
	return &combo
}

// overlapCount counts combo members whose keyword overlaps a recommended
// title, case-insensitively and in either containment direction.
func overlapCount(members, titles []string) int {
	count := 0
	for _, member := range members {
		member = strings.ToLower(member)
		for _, title := range titles {
			if strings.Contains(title, member) || strings.Contains(member, title) {
				count++
				break
			}
		}
	}
	return count
}

func (m *ComboMatcher) hasAthleteGoal(goals []domain.GoalTag) bool {
	for _, g := range goals {
		lower := strings.ToLower(string(g))
		for _, w := range m.athleteWords {
			if strings.Contains(lower, strings.ToLower(w)) {
				return true
			}
		}
	}
	return false
}

func hasGoal(goals []domain.GoalTag, want domain.GoalTag) bool {
	for _, g := range goals {
		if g == want {
			return true
		}
	}
	return false
}

func (m *ComboMatcher) byName(name string) (domain.ProductCombo, bool) {
	for _, c := range m.combos {
		if c.Name == name {
			return c, true
		}
	}
	return domain.ProductCombo{}, false
}
