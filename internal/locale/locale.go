package locale

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"nutriguide/internal/domain"
)

// KeywordMapping binds one recognizable keyword to the tag it produces.
// Kept as an ordered slice: for substring matching, longer or more specific
// entries must be checked before the shorter ones they contain
// ("femme" before "homme" is harmless, "female" before "male" is not).
type KeywordMapping struct {
	Keyword string `yaml:"keyword"`
	Tag     string `yaml:"tag"`
}

// ActivityLevel is one entry of the ordered activity scale.
type ActivityLevel struct {
	Label    string   `yaml:"label"`
	Keywords []string `yaml:"keywords"`
}

// Prompt is the question text shown for a step, with retry examples and the
// selection suggestions offered by the UI.
type Prompt struct {
	Text        string   `yaml:"text"`
	Examples    []string `yaml:"examples"`
	Suggestions []string `yaml:"suggestions"`
}

// Table groups every localized string and synonym dictionary the assistant
// uses. It is data on purpose: adding a locale entry must never require
// touching parser logic.
type Table struct {
	GenderSynonyms  []KeywordMapping `yaml:"gender_synonyms"`
	GoalKeywords    []KeywordMapping `yaml:"goal_keywords"`
	AllergyKeywords []KeywordMapping `yaml:"allergy_keywords"`
	ActivityLevels  []ActivityLevel  `yaml:"activity_levels"`

	SkipWords    []string `yaml:"skip_words"`
	NoneWords    []string `yaml:"none_words"`
	BackWords    []string `yaml:"back_words"`
	SummaryWords []string `yaml:"summary_words"`
	YesWords     []string `yaml:"yes_words"`
	NoWords      []string `yaml:"no_words"`
	SaleWords    []string `yaml:"sale_words"`
	AthleteWords []string `yaml:"athlete_words"`

	Prompts map[domain.QuestionStep]Prompt `yaml:"prompts"`

	Messages Messages `yaml:"messages"`
}

// Messages holds the fixed assistant sentences.
type Messages struct {
	Greeting           string `yaml:"greeting"`
	RetryPrefix        string `yaml:"retry_prefix"`
	ExamplesPrefix     string `yaml:"examples_prefix"`
	SelectionRequired  string `yaml:"selection_required"`
	CannotGoBack       string `yaml:"cannot_go_back"`
	BackPrefix         string `yaml:"back_prefix"`
	SummaryTitle       string `yaml:"summary_title"`
	NotProvided        string `yaml:"not_provided"`
	NoneLabel          string `yaml:"none_label"`
	ProfileSaved       string `yaml:"profile_saved"`
	SaveValidation     string `yaml:"save_validation"`
	SaveUnavailable    string `yaml:"save_unavailable"`
	SaveServerError    string `yaml:"save_server_error"`
	SaveNetworkError   string `yaml:"save_network_error"`
	WelcomeBack        string `yaml:"welcome_back"`
	ProductsFound      string `yaml:"products_found"`
	NoProductsFound    string `yaml:"no_products_found"`
	ComboProposal      string `yaml:"combo_proposal"`
	ComboAccepted      string `yaml:"combo_accepted"`
	ComboDeclined      string `yaml:"combo_declined"`
	SummaryFieldLabels struct {
		Age            string `yaml:"age"`
		Gender         string `yaml:"gender"`
		Weight         string `yaml:"weight"`
		Height         string `yaml:"height"`
		Goals          string `yaml:"goals"`
		Allergies      string `yaml:"allergies"`
		ActivityLevel  string `yaml:"activity_level"`
		AdditionalInfo string `yaml:"additional_info"`
	} `yaml:"summary_field_labels"`
}

// Load reads a YAML table from disk, starting from the defaults so a partial
// file only overrides what it declares.
func Load(path string) (*Table, error) {
	t := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read locale file: %w", err)
	}
	if err := yaml.Unmarshal(raw, t); err != nil {
		return nil, fmt.Errorf("parse locale file: %w", err)
	}
	return t, nil
}

// Default returns the built-in French-first table with English synonyms.
func Default() *Table {
	t := &Table{
		GenderSynonyms: []KeywordMapping{
			{Keyword: "femme", Tag: string(domain.GenderFemale)},
			{Keyword: "féminin", Tag: string(domain.GenderFemale)},
			{Keyword: "feminin", Tag: string(domain.GenderFemale)},
			{Keyword: "female", Tag: string(domain.GenderFemale)},
			{Keyword: "woman", Tag: string(domain.GenderFemale)},
			{Keyword: "homme", Tag: string(domain.GenderMale)},
			{Keyword: "masculin", Tag: string(domain.GenderMale)},
			{Keyword: "male", Tag: string(domain.GenderMale)},
			{Keyword: "man", Tag: string(domain.GenderMale)},
			{Keyword: "autre", Tag: string(domain.GenderOther)},
			{Keyword: "other", Tag: string(domain.GenderOther)},
			{Keyword: "non-binaire", Tag: string(domain.GenderOther)},
			{Keyword: "préfère ne pas", Tag: string(domain.GenderUnspecified)},
			{Keyword: "prefere ne pas", Tag: string(domain.GenderUnspecified)},
			{Keyword: "prefer not", Tag: string(domain.GenderUnspecified)},
			{Keyword: "pas répondre", Tag: string(domain.GenderUnspecified)},
		},
		GoalKeywords: []KeywordMapping{
			{Keyword: "énergie", Tag: string(domain.GoalEnergy)},
			{Keyword: "energie", Tag: string(domain.GoalEnergy)},
			{Keyword: "energy", Tag: string(domain.GoalEnergy)},
			{Keyword: "fatigue", Tag: string(domain.GoalEnergy)},
			{Keyword: "sommeil", Tag: string(domain.GoalSleep)},
			{Keyword: "sleep", Tag: string(domain.GoalSleep)},
			{Keyword: "dormir", Tag: string(domain.GoalSleep)},
			{Keyword: "insomnie", Tag: string(domain.GoalSleep)},
			{Keyword: "immunité", Tag: string(domain.GoalImmunity)},
			{Keyword: "immunite", Tag: string(domain.GoalImmunity)},
			{Keyword: "immunity", Tag: string(domain.GoalImmunity)},
			{Keyword: "immune", Tag: string(domain.GoalImmunity)},
			{Keyword: "défenses", Tag: string(domain.GoalImmunity)},
			{Keyword: "digestion", Tag: string(domain.GoalDigestion)},
			{Keyword: "digestif", Tag: string(domain.GoalDigestion)},
			{Keyword: "ventre", Tag: string(domain.GoalDigestion)},
			{Keyword: "gut", Tag: string(domain.GoalDigestion)},
			{Keyword: "stress", Tag: string(domain.GoalStress)},
			{Keyword: "anxiété", Tag: string(domain.GoalStress)},
			{Keyword: "anxiete", Tag: string(domain.GoalStress)},
			{Keyword: "anxiety", Tag: string(domain.GoalStress)},
			{Keyword: "relax", Tag: string(domain.GoalStress)},
			{Keyword: "muscle", Tag: string(domain.GoalMuscle)},
			{Keyword: "musculation", Tag: string(domain.GoalMuscle)},
			{Keyword: "prise de masse", Tag: string(domain.GoalMuscle)},
			{Keyword: "poids", Tag: string(domain.GoalWeightLoss)},
			{Keyword: "maigrir", Tag: string(domain.GoalWeightLoss)},
			{Keyword: "mincir", Tag: string(domain.GoalWeightLoss)},
			{Keyword: "weight", Tag: string(domain.GoalWeightLoss)},
			{Keyword: "peau", Tag: string(domain.GoalSkin)},
			{Keyword: "skin", Tag: string(domain.GoalSkin)},
			{Keyword: "cheveux", Tag: string(domain.GoalSkin)},
			{Keyword: "concentration", Tag: string(domain.GoalFocus)},
			{Keyword: "focus", Tag: string(domain.GoalFocus)},
			{Keyword: "mémoire", Tag: string(domain.GoalFocus)},
			{Keyword: "memoire", Tag: string(domain.GoalFocus)},
			{Keyword: "sport", Tag: string(domain.GoalSport)},
			{Keyword: "athlète", Tag: string(domain.GoalSport)},
			{Keyword: "athlete", Tag: string(domain.GoalSport)},
			{Keyword: "performance", Tag: string(domain.GoalSport)},
			{Keyword: "entraînement", Tag: string(domain.GoalSport)},
			{Keyword: "entrainement", Tag: string(domain.GoalSport)},
			{Keyword: "training", Tag: string(domain.GoalSport)},
		},
		AllergyKeywords: []KeywordMapping{
			{Keyword: "gluten", Tag: string(domain.AllergyGluten)},
			{Keyword: "blé", Tag: string(domain.AllergyGluten)},
			{Keyword: "lactose", Tag: string(domain.AllergyLactose)},
			{Keyword: "lait", Tag: string(domain.AllergyLactose)},
			{Keyword: "milk", Tag: string(domain.AllergyLactose)},
			{Keyword: "dairy", Tag: string(domain.AllergyLactose)},
			{Keyword: "produits laitiers", Tag: string(domain.AllergyLactose)},
			{Keyword: "arachide", Tag: string(domain.AllergyNuts)},
			{Keyword: "cacahuète", Tag: string(domain.AllergyNuts)},
			{Keyword: "noix", Tag: string(domain.AllergyNuts)},
			{Keyword: "fruits à coque", Tag: string(domain.AllergyNuts)},
			{Keyword: "nuts", Tag: string(domain.AllergyNuts)},
			{Keyword: "peanut", Tag: string(domain.AllergyNuts)},
			{Keyword: "soja", Tag: string(domain.AllergySoy)},
			{Keyword: "soy", Tag: string(domain.AllergySoy)},
			{Keyword: "crustacé", Tag: string(domain.AllergyShellfish)},
			{Keyword: "crustace", Tag: string(domain.AllergyShellfish)},
			{Keyword: "crevette", Tag: string(domain.AllergyShellfish)},
			{Keyword: "shellfish", Tag: string(domain.AllergyShellfish)},
			{Keyword: "œuf", Tag: string(domain.AllergyEgg)},
			{Keyword: "oeuf", Tag: string(domain.AllergyEgg)},
			{Keyword: "egg", Tag: string(domain.AllergyEgg)},
			{Keyword: "poisson", Tag: string(domain.AllergyFish)},
			{Keyword: "fish", Tag: string(domain.AllergyFish)},
		},
		ActivityLevels: []ActivityLevel{
			{Label: "sédentaire", Keywords: []string{"sédentaire", "sedentaire", "sedentary", "aucun sport", "pas de sport"}},
			{Label: "légèrement actif", Keywords: []string{"légèrement", "legerement", "lightly", "léger", "leger", "1-2"}},
			{Label: "modérément actif", Keywords: []string{"modérément", "moderement", "modéré", "modere", "moderate", "3-4"}},
			{Label: "très actif", Keywords: []string{"très actif", "tres actif", "very active", "5-6"}},
			{Label: "extrêmement actif", Keywords: []string{"extrêmement", "extremement", "extremely", "intensif", "tous les jours"}},
		},
		SkipWords:    []string{"passer", "passe", "skip", "je ne sais pas", "sais pas", "ne pas répondre", "suivant", "next"},
		NoneWords:    []string{"aucune", "aucun", "none", "rien", "pas d'allergie", "no allergy", "nope", "non"},
		BackWords:    []string{"retour", "back", "précédent", "precedent", "previous"},
		SummaryWords: []string{"résumé", "resume", "summary", "récapitulatif", "recapitulatif", "recap"},
		YesWords:     []string{"oui", "yes", "ouais", "ok", "d'accord", "volontiers", "yep", "carrément"},
		NoWords:      []string{"non", "no", "pas intéressé", "pas interesse", "non merci", "no thanks"},
		SaleWords:    []string{"promo", "promotion", "solde", "soldes", "réduction", "reduction", "sale", "discount", "moins cher", "pas cher", "deal"},
		AthleteWords: []string{"sport", "muscle", "performance", "athlete", "athlète", "training", "entraînement", "entrainement"},
	}

	t.Prompts = map[domain.QuestionStep]Prompt{
		domain.StepAge: {
			Text:     "Pour commencer, quel âge avez-vous ?",
			Examples: []string{"J'ai 32 ans", "32"},
		},
		domain.StepGender: {
			Text:        "Quel est votre genre ?",
			Examples:    []string{"Femme", "Homme"},
			Suggestions: []string{"Femme", "Homme", "Autre", "Je préfère ne pas répondre"},
		},
		domain.StepWeight: {
			Text:     "Quel est votre poids en kilogrammes ? (vous pouvez passer)",
			Examples: []string{"68", "72,5 kg", "passer"},
		},
		domain.StepHeight: {
			Text:     "Quelle est votre taille en centimètres ? (vous pouvez passer)",
			Examples: []string{"175", "1,68 m → écrivez 168", "passer"},
		},
		domain.StepGoals: {
			Text:        "Quels sont vos objectifs bien-être ?",
			Examples:    []string{"Plus d'énergie et un meilleur sommeil"},
			Suggestions: []string{"Énergie", "Sommeil", "Immunité", "Digestion", "Stress", "Sport"},
		},
		domain.StepAllergies: {
			Text:        "Avez-vous des allergies ou intolérances ?",
			Examples:    []string{"Gluten et lactose", "Aucune"},
			Suggestions: []string{"Gluten", "Lactose", "Fruits à coque", "Soja", "Aucune"},
		},
		domain.StepActivityLevel: {
			Text:        "Quel est votre niveau d'activité physique ?",
			Examples:    []string{"Modérément actif"},
			Suggestions: []string{"Sédentaire", "Légèrement actif", "Modérément actif", "Très actif", "Extrêmement actif"},
		},
		domain.StepAdditionalInfo: {
			Text:     "Autre chose à me signaler ? (traitement, régime, grossesse…)",
			Examples: []string{"Je suis végétarien", "Rien de particulier"},
		},
	}

	t.Messages = Messages{
		Greeting:          "Bonjour ! Je suis votre conseiller bien-être. Quelques questions pour personnaliser mes recommandations.",
		RetryPrefix:       "Je n'ai pas compris votre réponse.",
		ExamplesPrefix:    "Par exemple : ",
		SelectionRequired: "Merci de choisir parmi les options proposées.",
		CannotGoBack:      "Impossible de revenir en arrière, nous sommes à la première question.",
		BackPrefix:        "D'accord, reprenons la question précédente.",
		SummaryTitle:      "Voici votre profil pour le moment :",
		NotProvided:       "non renseigné",
		NoneLabel:         "aucune",
		ProfileSaved:      "Merci ! Votre profil est complet. Dites-moi ce que vous cherchez, je vous proposerai des produits adaptés.",
		SaveValidation:    "Certaines informations semblent invalides. Pouvez-vous renvoyer votre dernière réponse ?",
		SaveUnavailable:   "Le service est momentanément indisponible. Renvoyez votre message pour réessayer.",
		SaveServerError:   "Une erreur est survenue de notre côté. Renvoyez votre message pour réessayer.",
		SaveNetworkError:  "La connexion a échoué. Vérifiez votre réseau et renvoyez votre message.",
		WelcomeBack:       "Ravi de vous revoir ! Votre profil est déjà complet. Que cherchez-vous aujourd'hui ?",
		ProductsFound:     "Voici ce que je vous recommande :",
		NoProductsFound:   "Je n'ai rien trouvé qui corresponde. Essayez avec d'autres mots.",
		ComboProposal:     "Ces produits vont bien ensemble. Voulez-vous voir le pack « %s » ? (oui/non)",
		ComboAccepted:     "Excellent choix ! Voici le détail du pack.",
		ComboDeclined:     "Pas de souci. Dites-moi ce que vous cherchez d'autre.",
	}
	t.Messages.SummaryFieldLabels.Age = "Âge"
	t.Messages.SummaryFieldLabels.Gender = "Genre"
	t.Messages.SummaryFieldLabels.Weight = "Poids (kg)"
	t.Messages.SummaryFieldLabels.Height = "Taille (cm)"
	t.Messages.SummaryFieldLabels.Goals = "Objectifs"
	t.Messages.SummaryFieldLabels.Allergies = "Allergies"
	t.Messages.SummaryFieldLabels.ActivityLevel = "Activité physique"
	t.Messages.SummaryFieldLabels.AdditionalInfo = "Informations complémentaires"

	return t
}
