package domain

import "time"

type Gender string

const (
	GenderMale        Gender = "male"
	GenderFemale      Gender = "female"
	GenderOther       Gender = "other"
	GenderUnspecified Gender = "prefer-not-to-say"
)

// GoalTag clasifies what the visitor wants to get out of supplementation.
type GoalTag string

const (
	GoalEnergy     GoalTag = "energy"
	GoalSleep      GoalTag = "sleep"
	GoalImmunity   GoalTag = "immunity"
	GoalDigestion  GoalTag = "digestion"
	GoalStress     GoalTag = "stress"
	GoalMuscle     GoalTag = "muscle"
	GoalWeightLoss GoalTag = "weight-loss"
	GoalSkin       GoalTag = "skin"
	GoalFocus      GoalTag = "focus"
	GoalSport      GoalTag = "sport"
	GoalWellness   GoalTag = "wellness"
)

type AllergyTag string

const (
	AllergyGluten    AllergyTag = "gluten"
	AllergyLactose   AllergyTag = "lactose"
	AllergyNuts      AllergyTag = "nuts"
	AllergySoy       AllergyTag = "soy"
	AllergyShellfish AllergyTag = "shellfish"
	AllergyEgg       AllergyTag = "egg"
	AllergyFish      AllergyTag = "fish"
)

// Profile accumulates the answers collected during the onboarding interview.
// Pointer fields distinguish "not yet answered" (nil) from an explicit value;
// Allergies keeps the same distinction through nil vs empty slice.
type Profile struct {
	UserID         string       `json:"user_id"`
	Age            *int         `json:"age,omitempty"`
	Gender         *Gender      `json:"gender,omitempty"`
	Weight         *float64     `json:"weight,omitempty"`
	Height         *float64     `json:"height,omitempty"`
	Goals          []GoalTag    `json:"goals,omitempty"`
	Allergies      []AllergyTag `json:"allergies"`
	ActivityLevel  *string      `json:"activity_level,omitempty"`
	AdditionalInfo *string      `json:"additional_info,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// Complete reports whether the fields the interview treats as mandatory are set.
func (p Profile) Complete() bool {
	return p.Age != nil && p.Gender != nil
}

// ProfileUpdate is the typed result of parsing one answer. Only the fields
// belonging to the answered question are ever populated, so merging an update
// can never clobber another question's data.
type ProfileUpdate struct {
	Age            *int
	Gender         *Gender
	Weight         *float64
	ClearWeight    bool
	Height         *float64
	ClearHeight    bool
	Goals          []GoalTag
	Allergies      []AllergyTag
	ActivityLevel  *string
	AdditionalInfo *string
}

// Apply merges the update into the profile.
func (p *Profile) Apply(u ProfileUpdate) {
	if u.Age != nil {
		p.Age = u.Age
	}
	if u.Gender != nil {
		p.Gender = u.Gender
	}
	if u.Weight != nil {
		p.Weight = u.Weight
	}
	if u.ClearWeight {
		p.Weight = nil
	}
	if u.Height != nil {
		p.Height = u.Height
	}
	if u.ClearHeight {
		p.Height = nil
	}
	if u.Goals != nil {
		p.Goals = u.Goals
	}
	if u.Allergies != nil {
		p.Allergies = u.Allergies
	}
	if u.ActivityLevel != nil {
		p.ActivityLevel = u.ActivityLevel
	}
	if u.AdditionalInfo != nil {
		p.AdditionalInfo = u.AdditionalInfo
	}
	p.UpdatedAt = time.Now().UTC()
}
