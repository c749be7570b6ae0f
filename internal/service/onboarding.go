package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"nutriguide/internal/domain"
	"nutriguide/internal/locale"
)

// ProfileStore persists a completed interview profile and looks up an
// existing one. Implemented by the pgx repository on the API side and by the
// HTTP profile client on the widget side.
type ProfileStore interface {
	Save(ctx context.Context, profile domain.Profile) error
	Get(ctx context.Context, userID string) (domain.Profile, error)
}

// OnboardingState is the caller-owned interview state: one value per user
// session, never shared, so concurrent sessions are isolated for free.
type OnboardingState struct {
	Current   domain.QuestionStep   `json:"current"`
	History   []domain.QuestionStep `json:"history"`
	Profile   domain.Profile        `json:"profile"`
	Completed bool                  `json:"completed"`
}

// NewOnboardingState starts an interview at the first question.
// Invariant: history is never empty and its last entry is the current step.
func NewOnboardingState(userID string) *OnboardingState {
	first := domain.Steps()[0]
	return &OnboardingState{
		Current: first,
		History: []domain.QuestionStep{first},
		Profile: domain.Profile{UserID: userID, CreatedAt: time.Now().UTC()},
	}
}

// Answer is one user input as forwarded by the presentation layer, which
// knows whether the text came from a suggestion chip or free typing.
type Answer struct {
	Text          string
	FromSelection bool
}

// TurnResult is what the machine tells the presentation layer after a turn.
type TurnResult struct {
	Reply       string
	Suggestions []string
	AllowMulti  bool
	AllowCustom bool
	Completed   bool
}

// OnboardingMachine drives the interview: it owns no state itself, every
// transition operates on the caller's OnboardingState.
type OnboardingMachine struct {
	logger   *zap.Logger
	loc      *locale.Table
	parser   *ResponseParser
	profiles ProfileStore
}

func NewOnboardingMachine(logger *zap.Logger, loc *locale.Table, parser *ResponseParser, profiles ProfileStore) *OnboardingMachine {
	if loc == nil {
		loc = locale.Default()
	}
	if parser == nil {
		parser = NewResponseParser(loc)
	}
	return &OnboardingMachine{logger: logger, loc: loc, parser: parser, profiles: profiles}
}

// Handle processes one user turn. Every outcome, including persistence
// failures, is expressed as a reply; nothing here is fatal to the session.
func (m *OnboardingMachine) Handle(ctx context.Context, state *OnboardingState, ans Answer) TurnResult {
	if state.Completed || state.Current == domain.StepComplete {
		state.Completed = true
		return TurnResult{Reply: m.loc.Messages.WelcomeBack, Completed: true}
	}

	text := strings.TrimSpace(ans.Text)
	lower := strings.ToLower(text)

	if matchesCommand(lower, m.loc.BackWords) {
		return m.handleBack(state)
	}
	if matchesCommand(lower, m.loc.SummaryWords) {
		return m.handleSummary(state)
	}

	spec := domain.SpecFor(state.Current)
	if spec.SelectionOnly && !spec.AllowCustom && !ans.FromSelection {
		return m.rejectResult(state, m.loc.Messages.SelectionRequired)
	}

	update, ok := m.parser.Parse(text, state.Current)
	if !ok {
		return m.rejectResult(state, m.loc.Messages.RetryPrefix)
	}

	state.Profile.Apply(update)

	if state.Current == domain.StepAdditionalInfo {
		return m.complete(ctx, state)
	}

	state.advance()
	return m.promptResult(state.Current, "")
}

// FirstQuestion returns the opening turn for a fresh interview.
func (m *OnboardingMachine) FirstQuestion(state *OnboardingState) TurnResult {
	return m.promptResult(state.Current, m.loc.Messages.Greeting)
}

// handleBack pops one history entry; at the first question it answers with
// the boundary message and mutates nothing.
func (m *OnboardingMachine) handleBack(state *OnboardingState) TurnResult {
	if len(state.History) <= 1 {
		return m.rejectResult(state, m.loc.Messages.CannotGoBack)
	}
	state.History = state.History[:len(state.History)-1]
	state.Current = state.History[len(state.History)-1]
	return m.promptResult(state.Current, m.loc.Messages.BackPrefix)
}

func (m *OnboardingMachine) handleSummary(state *OnboardingState) TurnResult {
	summary := m.RenderSummary(state.Profile)
	res := m.promptResult(state.Current, "")
	res.Reply = summary + "\n\n" + res.Reply
	return res
}

// complete runs the one-shot summary-then-persist transition. On a store
// failure the machine stays at additional_info so the user can simply resend.
func (m *OnboardingMachine) complete(ctx context.Context, state *OnboardingState) TurnResult {
	if m.profiles != nil {
		if err := m.profiles.Save(ctx, state.Profile); err != nil {
			if m.logger != nil {
				m.logger.Warn("profile save failed",
					zap.Error(err),
					zap.String("user_id", state.Profile.UserID),
				)
			}
			return m.rejectResult(state, m.persistFailureMessage(err))
		}
	}

	state.advance()
	state.Completed = true
	return TurnResult{
		Reply:     m.RenderSummary(state.Profile) + "\n\n" + m.loc.Messages.ProfileSaved,
		Completed: true,
	}
}

// persistFailureMessage maps each failure sub-case to its own message; the
// recovery path is identical for all of them.
func (m *OnboardingMachine) persistFailureMessage(err error) string {
	switch {
	case errors.Is(err, ErrProfileInvalid):
		return m.loc.Messages.SaveValidation
	case errors.Is(err, ErrStoreUnavailable):
		return m.loc.Messages.SaveUnavailable
	case errors.Is(err, ErrStoreUnreachable):
		return m.loc.Messages.SaveNetworkError
	default:
		return m.loc.Messages.SaveServerError
	}
}

// RenderSummary prints the profile as a fixed-order list of labeled fields
// with localized placeholders for everything still unset.
func (m *OnboardingMachine) RenderSummary(p domain.Profile) string {
	labels := m.loc.Messages.SummaryFieldLabels
	notProvided := m.loc.Messages.NotProvided

	var b strings.Builder
	b.WriteString(m.loc.Messages.SummaryTitle)

	line := func(label, value string) {
		if value == "" {
			value = notProvided
		}
		fmt.Fprintf(&b, "\n- %s : %s", label, value)
	}

	ageVal := ""
	if p.Age != nil {
		ageVal = strconv.Itoa(*p.Age)
	}
	line(labels.Age, ageVal)

	genderVal := ""
	if p.Gender != nil {
		genderVal = string(*p.Gender)
	}
	line(labels.Gender, genderVal)

	weightVal := ""
	if p.Weight != nil {
		weightVal = strconv.FormatFloat(*p.Weight, 'f', -1, 64)
	}
	line(labels.Weight, weightVal)

	heightVal := ""
	if p.Height != nil {
		heightVal = strconv.FormatFloat(*p.Height, 'f', -1, 64)
	}
	line(labels.Height, heightVal)

	goalsVal := ""
	if len(p.Goals) > 0 {
		parts := make([]string, len(p.Goals))
		for i, g := range p.Goals {
			parts[i] = string(g)
		}
		goalsVal = strings.Join(parts, ", ")
	}
	line(labels.Goals, goalsVal)

	allergyVal := ""
	switch {
	case p.Allergies == nil:
	case len(p.Allergies) == 0:
		allergyVal = m.loc.Messages.NoneLabel
	default:
		parts := make([]string, len(p.Allergies))
		for i, a := range p.Allergies {
			parts[i] = string(a)
		}
		allergyVal = strings.Join(parts, ", ")
	}
	line(labels.Allergies, allergyVal)

	activityVal := ""
	if p.ActivityLevel != nil {
		activityVal = *p.ActivityLevel
	}
	line(labels.ActivityLevel, activityVal)

	infoVal := ""
	if p.AdditionalInfo != nil {
		infoVal = *p.AdditionalInfo
	}
	line(labels.AdditionalInfo, infoVal)

	return b.String()
}

// promptResult builds the turn that (re-)asks the question for a step.
func (m *OnboardingMachine) promptResult(step domain.QuestionStep, prefix string) TurnResult {
	prompt := m.loc.Prompts[step]
	spec := domain.SpecFor(step)
	reply := prompt.Text
	if prefix != "" {
		reply = prefix + "\n" + reply
	}
	return TurnResult{
		Reply:       reply,
		Suggestions: prompt.Suggestions,
		AllowMulti:  spec.Multi,
		AllowCustom: spec.AllowCustom,
	}
}

// rejectResult re-emits the current question with examples, mutating nothing.
func (m *OnboardingMachine) rejectResult(state *OnboardingState, reason string) TurnResult {
	prompt := m.loc.Prompts[state.Current]
	res := m.promptResult(state.Current, reason)
	if len(prompt.Examples) > 0 {
		res.Reply += "\n" + m.loc.Messages.ExamplesPrefix + strings.Join(prompt.Examples, " · ")
	}
	return res
}

// advance appends the current step to history if it is not already the most
// recent entry, then pushes the successor and moves onto it.
func (s *OnboardingState) advance() {
	if len(s.History) == 0 || s.History[len(s.History)-1] != s.Current {
		s.History = append(s.History, s.Current)
	}
	next, ok := domain.NextStep(s.Current)
	if !ok {
		return
	}
	s.History = append(s.History, next)
	s.Current = next
}

func matchesCommand(lower string, words []string) bool {
	for _, w := range words {
		if lower == w {
			return true
		}
	}
	return false
}
