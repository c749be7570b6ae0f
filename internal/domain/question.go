package domain

// QuestionStep identifies one slot of the fixed interview sequence.
type QuestionStep string

const (
	StepAge            QuestionStep = "age"
	StepGender         QuestionStep = "gender"
	StepWeight         QuestionStep = "weight"
	StepHeight         QuestionStep = "height"
	StepGoals          QuestionStep = "goals"
	StepAllergies      QuestionStep = "allergies"
	StepActivityLevel  QuestionStep = "activity_level"
	StepAdditionalInfo QuestionStep = "additional_info"
	StepComplete       QuestionStep = "complete"
)

// Steps returns the interview sequence in order, terminal step included.
func Steps() []QuestionStep {
	return []QuestionStep{
		StepAge,
		StepGender,
		StepWeight,
		StepHeight,
		StepGoals,
		StepAllergies,
		StepActivityLevel,
		StepAdditionalInfo,
		StepComplete,
	}
}

// NextStep returns the successor of the given step. StepComplete has none.
func NextStep(step QuestionStep) (QuestionStep, bool) {
	seq := Steps()
	for i, s := range seq {
		if s == step && i+1 < len(seq) {
			return seq[i+1], true
		}
	}
	return step, false
}

// QuestionSpec declares how a step collects its answer. Prompt text and
// suggestion labels live in the locale tables, keyed by step.
type QuestionSpec struct {
	Step          QuestionStep
	SelectionOnly bool
	Multi         bool
	AllowCustom   bool
	Skippable     bool
}

var questionSpecs = map[QuestionStep]QuestionSpec{
	StepAge:            {Step: StepAge},
	StepGender:         {Step: StepGender, SelectionOnly: true},
	StepWeight:         {Step: StepWeight, Skippable: true},
	StepHeight:         {Step: StepHeight, Skippable: true},
	StepGoals:          {Step: StepGoals, SelectionOnly: true, Multi: true, AllowCustom: true},
	StepAllergies:      {Step: StepAllergies, SelectionOnly: true, Multi: true, AllowCustom: true},
	StepActivityLevel:  {Step: StepActivityLevel, SelectionOnly: true},
	StepAdditionalInfo: {Step: StepAdditionalInfo, Skippable: true},
	StepComplete:       {Step: StepComplete},
}

// SpecFor returns the declaration for a step.
func SpecFor(step QuestionStep) QuestionSpec {
	return questionSpecs[step]
}
