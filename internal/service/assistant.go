package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"nutriguide/internal/catalog"
	"nutriguide/internal/domain"
	"nutriguide/internal/llm"
	"nutriguide/internal/locale"
	"nutriguide/internal/repository"
)

// AssistantService orchestrates one chat turn: interview while the profile
// is incomplete, product search and bundle proposals afterwards.
type AssistantService struct {
	logger     *zap.Logger
	loc        *locale.Table
	sessions   SessionStore
	profiles   ProfileStore
	catalog    catalog.Client
	onboarding *OnboardingMachine
	matcher    *ComboMatcher
	replies    llm.Client
	messages   repository.MessageRepository
}

func NewAssistantService(
	logger *zap.Logger,
	loc *locale.Table,
	sessions SessionStore,
	profiles ProfileStore,
	catalogClient catalog.Client,
	onboarding *OnboardingMachine,
	matcher *ComboMatcher,
	replies llm.Client,
	messages repository.MessageRepository,
) *AssistantService {
	if loc == nil {
		loc = locale.Default()
	}
	if replies == nil {
		replies = llm.Disabled{}
	}
	return &AssistantService{
		logger:     logger,
		loc:        loc,
		sessions:   sessions,
		profiles:   profiles,
		catalog:    catalogClient,
		onboarding: onboarding,
		matcher:    matcher,
		replies:    replies,
		messages:   messages,
	}
}

// StartSession opens a session for a user. A stored profile that already has
// age and gender short-circuits the interview straight to complete.
func (s *AssistantService) StartSession(ctx context.Context, userID string) (*Session, domain.Message, error) {
	now := time.Now().UTC()
	session := &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		State:     NewOnboardingState(userID),
		CreatedAt: now,
		UpdatedAt: now,
	}

	reply := s.onboarding.FirstQuestion(session.State)
	if s.profiles != nil {
		if existing, err := s.profiles.Get(ctx, userID); err == nil && existing.Complete() {
			session.State.Profile = existing
			session.State.Current = domain.StepComplete
			session.State.History = append(session.State.History, domain.StepComplete)
			session.State.Completed = true
			reply = TurnResult{Reply: s.loc.Messages.WelcomeBack, Completed: true}
		}
	}

	if err := s.sessions.Put(ctx, session); err != nil {
		return nil, domain.Message{}, fmt.Errorf("store session: %w", err)
	}

	msg := s.assistantMessage(session, reply)
	return session, msg, nil
}

// HandleMessage processes one user turn and returns the assistant's answer.
// Only infrastructure failures (unknown session, catalog fetch) surface as
// errors; everything conversational becomes a reply.
func (s *AssistantService) HandleMessage(ctx context.Context, sessionID string, ans Answer) (domain.Message, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return domain.Message{}, err
	}

	s.recordMessage(ctx, domain.Message{
		ID:        uuid.NewString(),
		SessionID: session.ID,
		UserID:    session.UserID,
		Role:      domain.RoleUser,
		Content:   ans.Text,
		CreatedAt: time.Now().UTC(),
	})

	var msg domain.Message
	if !session.State.Completed {
		msg = s.handleInterviewTurn(ctx, session, ans)
	} else if session.PendingCombo != nil {
		msg = s.handleComboConfirmation(session, ans)
	} else {
		msg, err = s.handleQueryTurn(ctx, session, ans)
		if err != nil {
			return domain.Message{}, err
		}
	}

	session.UpdatedAt = time.Now().UTC()
	if err := s.sessions.Put(ctx, session); err != nil {
		return domain.Message{}, fmt.Errorf("store session: %w", err)
	}

	s.recordMessage(ctx, msg)
	return msg, nil
}

func (s *AssistantService) handleInterviewTurn(ctx context.Context, session *Session, ans Answer) domain.Message {
	result := s.onboarding.Handle(ctx, session.State, ans)
	msg := s.assistantMessage(session, result)

	// The completion turn immediately proposes profile-matched bundles and
	// tag-based products so the user sees value right away.
	if result.Completed {
		profile := session.State.Profile
		msg.RecommendedCombos = s.matcher.RecommendByProfile(profile.Goals, profile.Age, profile.Gender)
		msg.RecommendedProducts = s.recommendByGoalTags(ctx, profile.Goals)
	}
	return msg
}

// recommendByGoalTags fetches tag-filtered candidates and ranks them; a
// failed fetch here only skips the extra products, completion still stands.
func (s *AssistantService) recommendByGoalTags(ctx context.Context, goals []domain.GoalTag) []domain.Product {
	if s.catalog == nil || len(goals) == 0 {
		return nil
	}
	tags := make([]string, len(goals))
	for i, g := range goals {
		tags[i] = string(g)
	}

	candidates, err := s.catalog.SearchByTags(ctx, tags)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("tag search failed", zap.Error(err), zap.Strings("tags", tags))
		}
		return nil
	}

	var fallbackPool []domain.Product
	if len(candidates) == 0 {
		fallbackPool, err = s.catalog.Search(ctx, strings.Join(tags, " "))
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("fallback search failed", zap.Error(err), zap.Strings("tags", tags))
			}
			return nil
		}
	}
	return RankByTags(candidates, fallbackPool, tags, defaultRankLimit)
}

func (s *AssistantService) handleComboConfirmation(session *Session, ans Answer) domain.Message {
	lower := strings.ToLower(strings.TrimSpace(ans.Text))
	combo := session.PendingCombo
	session.PendingCombo = nil

	if containsAny(lower, s.loc.YesWords) {
		return domain.Message{
			ID:                uuid.NewString(),
			SessionID:         session.ID,
			UserID:            session.UserID,
			Role:              domain.RoleAssistant,
			Content:           s.loc.Messages.ComboAccepted,
			RecommendedCombos: []domain.ProductCombo{*combo},
			CreatedAt:         time.Now().UTC(),
		}
	}

	// Anything that is not a yes drops the proposal; a plain "no" gets the
	// polite decline, other text is answered as a fresh query next turn.
	content := s.loc.Messages.ComboDeclined
	return domain.Message{
		ID:        uuid.NewString(),
		SessionID: session.ID,
		UserID:    session.UserID,
		Role:      domain.RoleAssistant,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
}

func (s *AssistantService) handleQueryTurn(ctx context.Context, session *Session, ans Answer) (domain.Message, error) {
	query := strings.TrimSpace(ans.Text)
	opts := DefaultRankOptions()
	if containsAny(strings.ToLower(query), s.loc.SaleWords) {
		opts.OnlyOnSale = true
	}

	candidates, err := s.catalog.Search(ctx, query)
	if err != nil {
		return domain.Message{}, fmt.Errorf("catalog search: %w", err)
	}

	top := Rank(candidates, query, opts)

	msg := domain.Message{
		ID:        uuid.NewString(),
		SessionID: session.ID,
		UserID:    session.UserID,
		Role:      domain.RoleAssistant,
		CreatedAt: time.Now().UTC(),
	}

	if len(top) == 0 {
		msg.Content = s.loc.Messages.NoProductsFound
		return msg, nil
	}

	titles := make([]string, len(top))
	for i, p := range top {
		titles[i] = p.Title
	}
	msg.RecommendedProducts = top
	msg.Content = s.phrase(ctx, query, titles, s.loc.Messages.ProductsFound+"\n- "+strings.Join(titles, "\n- "))

	if combo := s.matcher.MatchByRecommendedProducts(top); combo != nil {
		session.PendingCombo = combo
		msg.SuggestedCombo = combo
		msg.Content += "\n\n" + fmt.Sprintf(s.loc.Messages.ComboProposal, combo.Name)
	}
	return msg, nil
}

// phrase asks the chat-completion backend for a natural sentence around the
// recommendation; the template fallback keeps the assistant working offline.
func (s *AssistantService) phrase(ctx context.Context, query string, titles []string, fallback string) string {
	prompt := fmt.Sprintf(
		"Tu es un conseiller bien-être d'une boutique de compléments. Le client cherche: %q. Présente en deux phrases chaleureuses ces produits: %s. Ne mentionne pas de prix.",
		query, strings.Join(titles, ", "),
	)
	text, err := s.replies.Generate(ctx, prompt)
	if err != nil {
		if s.logger != nil && err != llm.ErrDisabled {
			s.logger.Warn("reply generation failed", zap.Error(err))
		}
		return fallback
	}
	return strings.TrimSpace(text) + "\n- " + strings.Join(titles, "\n- ")
}

func (s *AssistantService) assistantMessage(session *Session, result TurnResult) domain.Message {
	return domain.Message{
		ID:          uuid.NewString(),
		SessionID:   session.ID,
		UserID:      session.UserID,
		Role:        domain.RoleAssistant,
		Content:     result.Reply,
		Suggestions: result.Suggestions,
		AllowMulti:  result.AllowMulti,
		AllowCustom: result.AllowCustom,
		CreatedAt:   time.Now().UTC(),
	}
}

// recordMessage archives the transcript when a repository is configured.
// Failures are logged and ignored: the conversation must not depend on it.
func (s *AssistantService) recordMessage(ctx context.Context, msg domain.Message) {
	if s.messages == nil || msg.ID == "" {
		return
	}
	if err := s.messages.Create(ctx, msg); err != nil && s.logger != nil {
		s.logger.Warn("message archive failed", zap.Error(err), zap.String("session_id", msg.SessionID))
	}
}

func containsAny(lower string, words []string) bool {
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
