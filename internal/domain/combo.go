package domain

// ProductCombo is a curated bundle of catalog products marketed together.
// The catalog is loaded once at startup and treated as read-only.
type ProductCombo struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Benefits       []string `json:"benefits"`
	Products       []string `json:"products"`
	TargetAudience []string `json:"target_audience"`
}

// DefaultCombos returns the built-in bundle catalog.
func DefaultCombos() []ProductCombo {
	return []ProductCombo{
		{
			Name:           "Athlete Performance Pack",
			Description:    "Soutien complet pour l'entraînement intensif et la performance.",
			Benefits:       []string{"endurance", "force", "récupération rapide"},
			Products:       []string{"Whey Protein", "Creatine Monohydrate", "BCAA Complex", "Electrolytes"},
			TargetAudience: []string{"sport", "muscle", "performance"},
		},
		{
			Name:           "Recovery & Repair Combo",
			Description:    "Réparation musculaire et articulaire après l'effort.",
			Benefits:       []string{"récupération musculaire", "confort articulaire"},
			Products:       []string{"Collagen Peptides", "Magnesium Bisglycinate", "Omega-3 Fish Oil", "Curcumin"},
			TargetAudience: []string{"sport", "recovery"},
		},
		{
			Name:           "Bone Health Combo",
			Description:    "Densité osseuse et mobilité pour les années à venir.",
			Benefits:       []string{"solidité osseuse", "absorption du calcium"},
			Products:       []string{"Calcium Citrate", "Vitamin D3", "Vitamin K2", "Magnesium Bisglycinate"},
			TargetAudience: []string{"senior", "bones"},
		},
		{
			Name:           "Heart Health Combo",
			Description:    "Soutien cardiovasculaire au quotidien.",
			Benefits:       []string{"circulation", "cholestérol équilibré"},
			Products:       []string{"Omega-3 Fish Oil", "Coenzyme Q10", "Garlic Extract"},
			TargetAudience: []string{"senior", "heart"},
		},
		{
			Name:           "Women's Wellness Pack",
			Description:    "Équilibre hormonal, fer et vitalité au féminin.",
			Benefits:       []string{"équilibre hormonal", "énergie", "beauté de la peau"},
			Products:       []string{"Iron Bisglycinate", "Folic Acid", "Evening Primrose Oil", "Biotin"},
			TargetAudience: []string{"female"},
		},
		{
			Name:           "Energy & Vitality Combo",
			Description:    "Un coup de fouet naturel contre la fatigue.",
			Benefits:       []string{"énergie durable", "réduction de la fatigue"},
			Products:       []string{"Vitamin B12", "Ginseng Extract", "Iron Bisglycinate", "Coenzyme Q10"},
			TargetAudience: []string{"energy"},
		},
		{
			Name:           "Sleep & Relax Combo",
			Description:    "Endormissement facilité et nuits réparatrices.",
			Benefits:       []string{"sommeil profond", "détente"},
			Products:       []string{"Melatonin", "Magnesium Bisglycinate", "Ashwagandha", "Chamomile Extract"},
			TargetAudience: []string{"sleep", "stress"},
		},
		{
			Name:           "Immune Support Combo",
			Description:    "Défenses naturelles renforcées toute l'année.",
			Benefits:       []string{"immunité", "résistance saisonnière"},
			Products:       []string{"Vitamin C", "Zinc Picolinate", "Echinacea", "Vitamin D3"},
			TargetAudience: []string{"immunity"},
		},
		{
			Name:           "Gut Health Combo",
			Description:    "Digestion confortable et flore intestinale équilibrée.",
			Benefits:       []string{"digestion", "flore intestinale"},
			Products:       []string{"Probiotic Complex", "Digestive Enzymes", "Psyllium Husk", "L-Glutamine"},
			TargetAudience: []string{"digestion"},
		},
	}
}
