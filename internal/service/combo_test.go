package service

import (
	"testing"

	"nutriguide/internal/domain"
)

func intPtr(v int) *int { return &v }

func genderPtr(g domain.Gender) *domain.Gender { return &g }

func TestRecommendByProfile(t *testing.T) {
	m := NewComboMatcher(nil, nil)

	t.Run("senior woman seeking energy", func(t *testing.T) {
		combos := m.RecommendByProfile(
			[]domain.GoalTag{domain.GoalEnergy},
			intPtr(70),
			genderPtr(domain.GenderFemale),
		)

		want := []string{comboBone, comboHeart, comboWomens, comboEnergy}
		if len(combos) != len(want) {
			t.Fatalf("got %d combos %v, want %v", len(combos), comboNames(combos), want)
		}
		for i, name := range want {
			if combos[i].Name != name {
				t.Fatalf("combos=%v want %v", comboNames(combos), want)
			}
		}
	})

	t.Run("athlete adds performance and recovery", func(t *testing.T) {
		combos := m.RecommendByProfile([]domain.GoalTag{domain.GoalSport}, intPtr(25), nil)
		if len(combos) != 2 || combos[0].Name != comboAthlete || combos[1].Name != comboRecovery {
			t.Fatalf("combos=%v", comboNames(combos))
		}
	})

	t.Run("no rule matches falls back to the default pair", func(t *testing.T) {
		combos := m.RecommendByProfile(nil, intPtr(30), genderPtr(domain.GenderMale))
		if len(combos) != 2 || combos[0].Name != comboGutHealth || combos[1].Name != comboImmunity {
			t.Fatalf("combos=%v", comboNames(combos))
		}
	})

	t.Run("overlapping rules deduplicate by name", func(t *testing.T) {
		// Immunity appears once even when both the goal rule and the default
		// would produce it.
		combos := m.RecommendByProfile([]domain.GoalTag{domain.GoalImmunity}, nil, nil)
		seen := map[string]int{}
		for _, c := range combos {
			seen[c.Name]++
		}
		if seen[comboImmunity] != 1 {
			t.Fatalf("combos=%v", comboNames(combos))
		}
	})

	t.Run("just under the senior threshold", func(t *testing.T) {
		combos := m.RecommendByProfile(nil, intPtr(64), nil)
		for _, c := range combos {
			if c.Name == comboBone || c.Name == comboHeart {
				t.Fatalf("age 64 must not trigger senior combos, got %v", comboNames(combos))
			}
		}
	})
}

func TestMatchByRecommendedProducts(t *testing.T) {
	m := NewComboMatcher(nil, nil)

	t.Run("two overlapping members qualify", func(t *testing.T) {
		recommended := []domain.Product{
			{Title: "Melatonin Night Gummies"},
			{Title: "Magnesium Bisglycinate"},
			{Title: "Vitamin C 1000"},
		}
		combo := m.MatchByRecommendedProducts(recommended)
		if combo == nil || combo.Name != comboSleep {
			t.Fatalf("combo=%v", combo)
		}
	})

	t.Run("single overlap does not qualify", func(t *testing.T) {
		recommended := []domain.Product{
			{Title: "Melatonin Night Gummies"},
			{Title: "Unrelated Serum"},
		}
		if combo := m.MatchByRecommendedProducts(recommended); combo != nil {
			t.Fatalf("combo=%q, want nil", combo.Name)
		}
	})

	t.Run("highest overlap wins", func(t *testing.T) {
		recommended := []domain.Product{
			{Title: "Whey Protein Vanilla"},
			{Title: "Creatine Monohydrate Pure"},
			{Title: "BCAA Complex Tabs"},
			{Title: "Collagen Peptides Beauty"},
			{Title: "Omega-3 Fish Oil"},
		}
		// Athlete pack overlaps three members, recovery only two.
		combo := m.MatchByRecommendedProducts(recommended)
		if combo == nil || combo.Name != comboAthlete {
			t.Fatalf("combo=%v", combo)
		}
	})

	t.Run("empty recommendation", func(t *testing.T) {
		if combo := m.MatchByRecommendedProducts(nil); combo != nil {
			t.Fatalf("combo=%q, want nil", combo.Name)
		}
	})

	t.Run("returned combo is a copy", func(t *testing.T) {
		recommended := []domain.Product{
			{Title: "Melatonin"},
			{Title: "Ashwagandha Calm"},
		}
		combo := m.MatchByRecommendedProducts(recommended)
		if combo == nil {
			t.Fatal("expected a match")
		}
		combo.Name = "mutated"
		again := m.MatchByRecommendedProducts(recommended)
		if again == nil || again.Name == "mutated" {
			t.Fatal("matcher catalog must not be mutable through the result")
		}
	})
}

func comboNames(combos []domain.ProductCombo) []string {
	out := make([]string, len(combos))
	for i, c := range combos {
		out[i] = c.Name
	}
	return out
}
