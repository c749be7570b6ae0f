package service

import (
	"regexp"
	"strconv"
	"strings"

	"nutriguide/internal/domain"
	"nutriguide/internal/locale"
)

// ResponseParser interprets one free-text or selected answer for a given
// interview step. All methods are pure: an uninterpretable input yields
// ok=false, never a panic or an error.
type ResponseParser struct {
	loc *locale.Table
}

func NewResponseParser(loc *locale.Table) *ResponseParser {
	if loc == nil {
		loc = locale.Default()
	}
	return &ResponseParser{loc: loc}
}

var (
	intPattern      = regexp.MustCompile(`\d+`)
	decimalPattern  = regexp.MustCompile(`\d+(?:[.,]\d+)?`)
	imperialPattern = regexp.MustCompile(`(?i)\b(lbs?|pounds?|livres?|ft|feet|foot|inch(?:es)?|in)\b`)
)

const (
	minAge    = 1
	maxAge    = 120
	minWeight = 1.0
	maxWeight = 500.0
	minHeight = 50.0
	maxHeight = 250.0
)

// Parse dispatches on the step. The update only carries fields owned by that
// step, so the caller can merge it blindly.
func (p *ResponseParser) Parse(input string, step domain.QuestionStep) (domain.ProfileUpdate, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return domain.ProfileUpdate{}, false
	}

	switch step {
	case domain.StepAge:
		return p.parseAge(input)
	case domain.StepGender:
		return p.parseGender(input)
	case domain.StepWeight:
		return p.parseWeight(input)
	case domain.StepHeight:
		return p.parseHeight(input)
	case domain.StepGoals:
		return p.parseGoals(input)
	case domain.StepAllergies:
		return p.parseAllergies(input)
	case domain.StepActivityLevel:
		return p.parseActivityLevel(input)
	case domain.StepAdditionalInfo:
		return p.parseAdditionalInfo(input)
	case domain.StepComplete:
		return domain.ProfileUpdate{}, false
	}
	return domain.ProfileUpdate{}, false
}

// parseAge extracts the first integer, which also covers "j'ai 32 ans" and
// "I am 32" phrasings.
func (p *ResponseParser) parseAge(input string) (domain.ProfileUpdate, bool) {
	match := intPattern.FindString(input)
	if match == "" {
		return domain.ProfileUpdate{}, false
	}
	age, err := strconv.Atoi(match)
	if err != nil || age < minAge || age > maxAge {
		return domain.ProfileUpdate{}, false
	}
	return domain.ProfileUpdate{Age: &age}, true
}

func (p *ResponseParser) parseGender(input string) (domain.ProfileUpdate, bool) {
	lower := strings.ToLower(input)
	for _, m := range p.loc.GenderSynonyms {
		if strings.Contains(lower, m.Keyword) {
			g := domain.Gender(m.Tag)
			return domain.ProfileUpdate{Gender: &g}, true
		}
	}
	return domain.ProfileUpdate{}, false
}

func (p *ResponseParser) parseWeight(input string) (domain.ProfileUpdate, bool) {
	if p.isSkip(input) {
		return domain.ProfileUpdate{ClearWeight: true}, true
	}
	value, ok := p.parseMetric(input, minWeight, maxWeight)
	if !ok {
		return domain.ProfileUpdate{}, false
	}
	return domain.ProfileUpdate{Weight: &value}, true
}

func (p *ResponseParser) parseHeight(input string) (domain.ProfileUpdate, bool) {
	if p.isSkip(input) {
		return domain.ProfileUpdate{ClearHeight: true}, true
	}
	value, ok := p.parseMetric(input, minHeight, maxHeight)
	if !ok {
		return domain.ProfileUpdate{}, false
	}
	return domain.ProfileUpdate{Height: &value}, true
}

// parseMetric rejects imperial-unit inputs outright so the UI can re-ask in
// metric, then extracts a decimal written with comma or dot.
func (p *ResponseParser) parseMetric(input string, min, max float64) (float64, bool) {
	if imperialPattern.MatchString(input) {
		return 0, false
	}
	match := decimalPattern.FindString(input)
	if match == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", "."), 64)
	if err != nil || value < min || value > max {
		return 0, false
	}
	return value, true
}

// parseGoals collects every goal keyword present in the input. When nothing
// matches but the text is non-trivial, it falls back to the generic wellness
// tag: a deliberate low-confidence guess, not a rejection.
func (p *ResponseParser) parseGoals(input string) (domain.ProfileUpdate, bool) {
	lower := strings.ToLower(input)
	var goals []domain.GoalTag
	seen := make(map[domain.GoalTag]bool)
	for _, m := range p.loc.GoalKeywords {
		if !strings.Contains(lower, m.Keyword) {
			continue
		}
		tag := domain.GoalTag(m.Tag)
		if !seen[tag] {
			seen[tag] = true
			goals = append(goals, tag)
		}
	}
	if len(goals) == 0 {
		if len(strings.TrimSpace(input)) < 4 {
			return domain.ProfileUpdate{}, false
		}
		goals = []domain.GoalTag{domain.GoalWellness}
	}
	return domain.ProfileUpdate{Goals: goals}, true
}

// parseAllergies distinguishes "no allergies" (explicit empty, non-nil slice)
// from an unanswered step. Allergy keywords are scanned before the none-words
// so "non, gluten et lactose" keeps the stated allergies.
func (p *ResponseParser) parseAllergies(input string) (domain.ProfileUpdate, bool) {
	lower := strings.ToLower(input)
	var allergies []domain.AllergyTag
	seen := make(map[domain.AllergyTag]bool)
	for _, m := range p.loc.AllergyKeywords {
		if !strings.Contains(lower, m.Keyword) {
			continue
		}
		tag := domain.AllergyTag(m.Tag)
		if !seen[tag] {
			seen[tag] = true
			allergies = append(allergies, tag)
		}
	}
	if len(allergies) > 0 {
		return domain.ProfileUpdate{Allergies: allergies}, true
	}
	for _, w := range p.loc.NoneWords {
		if strings.Contains(lower, w) {
			return domain.ProfileUpdate{Allergies: []domain.AllergyTag{}}, true
		}
	}
	return domain.ProfileUpdate{}, false
}

func (p *ResponseParser) parseActivityLevel(input string) (domain.ProfileUpdate, bool) {
	lower := strings.ToLower(input)
	for _, level := range p.loc.ActivityLevels {
		if strings.HasPrefix(strings.ToLower(level.Label), lower) {
			label := level.Label
			return domain.ProfileUpdate{ActivityLevel: &label}, true
		}
		for _, kw := range level.Keywords {
			if strings.Contains(lower, kw) {
				label := level.Label
				return domain.ProfileUpdate{ActivityLevel: &label}, true
			}
		}
	}
	return domain.ProfileUpdate{}, false
}

func (p *ResponseParser) parseAdditionalInfo(input string) (domain.ProfileUpdate, bool) {
	if p.isSkip(input) {
		empty := ""
		return domain.ProfileUpdate{AdditionalInfo: &empty}, true
	}
	text := strings.TrimSpace(input)
	if text == "" {
		return domain.ProfileUpdate{}, false
	}
	return domain.ProfileUpdate{AdditionalInfo: &text}, true
}

func (p *ResponseParser) isSkip(input string) bool {
	lower := strings.ToLower(strings.TrimSpace(input))
	for _, w := range p.loc.SkipWords {
		if lower == w || strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
