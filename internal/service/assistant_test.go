package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"nutriguide/internal/catalog"
	"nutriguide/internal/domain"
	"nutriguide/internal/locale"
)

func newTestAssistant(t *testing.T, store ProfileStore, cat catalog.Client) *AssistantService {
	t.Helper()
	loc := locale.Default()
	if store == nil {
		store = NewMemoryProfileStore()
	}
	if cat == nil {
		cat = catalog.NewStaticClient(nil)
	}
	onboarding := NewOnboardingMachine(zap.NewNop(), loc, NewResponseParser(loc), store)
	return NewAssistantService(
		zap.NewNop(), loc,
		NewMemorySessionStore(time.Hour),
		store, cat,
		onboarding,
		NewComboMatcher(nil, loc),
		nil, nil,
	)
}

func completedSession(t *testing.T, a *AssistantService, userID string) *Session {
	t.Helper()
	ctx := context.Background()
	session, _, err := a.StartSession(ctx, userID)
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	answers := []Answer{
		{Text: "30"},
		{Text: "Homme", FromSelection: true},
		{Text: "passer"},
		{Text: "passer"},
		{Text: "énergie"},
		{Text: "aucune"},
		{Text: "Sédentaire", FromSelection: true},
		{Text: "rien"},
	}
	for _, ans := range answers {
		if _, err := a.HandleMessage(ctx, session.ID, ans); err != nil {
			t.Fatalf("interview answer %q: %v", ans.Text, err)
		}
	}
	session, err = a.sessions.Get(ctx, session.ID)
	if err != nil {
		t.Fatalf("reload session: %v", err)
	}
	if !session.State.Completed {
		t.Fatalf("interview did not complete, current=%s", session.State.Current)
	}
	return session
}

func TestStartSessionNewUser(t *testing.T) {
	a := newTestAssistant(t, nil, nil)
	session, msg, err := a.StartSession(context.Background(), "u1")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if session.State.Current != domain.StepAge {
		t.Fatalf("current=%s", session.State.Current)
	}
	if !strings.Contains(msg.Content, a.loc.Prompts[domain.StepAge].Text) {
		t.Fatalf("greeting must ask the first question, got %q", msg.Content)
	}
}

func TestStartSessionKnownUserSkipsInterview(t *testing.T) {
	store := NewMemoryProfileStore()
	age := 41
	gender := domain.GenderFemale
	if err := store.Save(context.Background(), domain.Profile{
		UserID: "u1", Age: &age, Gender: &gender,
	}); err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	a := newTestAssistant(t, store, nil)
	session, msg, err := a.StartSession(context.Background(), "u1")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if !session.State.Completed || session.State.Current != domain.StepComplete {
		t.Fatalf("state=%+v", session.State)
	}
	if msg.Content != a.loc.Messages.WelcomeBack {
		t.Fatalf("got %q", msg.Content)
	}
}

func TestStartSessionIncompleteProfileRestartsInterview(t *testing.T) {
	store := NewMemoryProfileStore()
	age := 41
	if err := store.Save(context.Background(), domain.Profile{UserID: "u1", Age: &age}); err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	a := newTestAssistant(t, store, nil)
	session, _, err := a.StartSession(context.Background(), "u1")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if session.State.Completed {
		t.Fatal("a profile without gender must not skip the interview")
	}
}

func TestHandleMessageUnknownSession(t *testing.T) {
	a := newTestAssistant(t, nil, nil)
	if _, err := a.HandleMessage(context.Background(), "ghost", Answer{Text: "hi"}); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("err=%v", err)
	}
}

func TestInterviewCompletionAttachesRecommendations(t *testing.T) {
	a := newTestAssistant(t, nil, nil)
	ctx := context.Background()
	session, _, err := a.StartSession(ctx, "u1")
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	answers := []Answer{
		{Text: "30"},
		{Text: "Homme", FromSelection: true},
		{Text: "passer"},
		{Text: "passer"},
		{Text: "énergie"},
		{Text: "aucune"},
		{Text: "Sédentaire", FromSelection: true},
	}
	for _, ans := range answers {
		if _, err := a.HandleMessage(ctx, session.ID, ans); err != nil {
			t.Fatalf("answer %q: %v", ans.Text, err)
		}
	}

	msg, err := a.HandleMessage(ctx, session.ID, Answer{Text: "rien"})
	if err != nil {
		t.Fatalf("final answer: %v", err)
	}
	if len(msg.RecommendedCombos) == 0 {
		t.Fatal("completion must propose profile-matched combos")
	}
	if msg.RecommendedCombos[0].Name != comboEnergy {
		t.Fatalf("combos=%v", comboNames(msg.RecommendedCombos))
	}
	if len(msg.RecommendedProducts) == 0 {
		t.Fatal("completion must recommend tag-matched products")
	}
	for _, p := range msg.RecommendedProducts {
		if !hasAnyTag(p, "energy") {
			t.Fatalf("product %q lacks the energy tag", p.Title)
		}
	}
}

func TestQueryTurnRanksAndProposesCombo(t *testing.T) {
	a := newTestAssistant(t, nil, nil)
	ctx := context.Background()
	session := completedSession(t, a, "u1")

	msg, err := a.HandleMessage(ctx, session.ID, Answer{Text: "quelque chose pour le sommeil sleep"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(msg.RecommendedProducts) == 0 {
		t.Fatal("expected product recommendations")
	}
	if len(msg.RecommendedProducts) > 3 {
		t.Fatalf("got %d products, cap is 3", len(msg.RecommendedProducts))
	}
	if msg.SuggestedCombo == nil {
		t.Fatalf("sleep products overlap the sleep combo, got none; products=%v", titlesOf(msg.RecommendedProducts))
	}

	// "oui" confirms the pending combo.
	confirm, err := a.HandleMessage(ctx, session.ID, Answer{Text: "oui"})
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if len(confirm.RecommendedCombos) != 1 {
		t.Fatalf("combos=%v", comboNames(confirm.RecommendedCombos))
	}
	if confirm.Content != a.loc.Messages.ComboAccepted {
		t.Fatalf("got %q", confirm.Content)
	}

	// Pending combo is cleared: the next message is a fresh query.
	session, _ = a.sessions.Get(ctx, session.ID)
	if session.PendingCombo != nil {
		t.Fatal("pending combo must be cleared after confirmation")
	}
}

func TestComboDecline(t *testing.T) {
	a := newTestAssistant(t, nil, nil)
	ctx := context.Background()
	session := completedSession(t, a, "u1")

	if _, err := a.HandleMessage(ctx, session.ID, Answer{Text: "sleep melatonin magnesium"}); err != nil {
		t.Fatalf("query: %v", err)
	}
	session, _ = a.sessions.Get(ctx, session.ID)
	if session.PendingCombo == nil {
		t.Skip("no combo proposed for this catalog")
	}

	msg, err := a.HandleMessage(ctx, session.ID, Answer{Text: "non merci"})
	if err != nil {
		t.Fatalf("decline: %v", err)
	}
	if msg.Content != a.loc.Messages.ComboDeclined {
		t.Fatalf("got %q", msg.Content)
	}
	if len(msg.RecommendedCombos) != 0 {
		t.Fatal("declined proposal must not attach combos")
	}
	session, _ = a.sessions.Get(ctx, session.ID)
	if session.PendingCombo != nil {
		t.Fatal("pending combo must be cleared after decline")
	}
}

func TestQueryTurnSaleIntent(t *testing.T) {
	a := newTestAssistant(t, nil, nil)
	ctx := context.Background()
	session := completedSession(t, a, "u1")

	msg, err := a.HandleMessage(ctx, session.ID, Answer{Text: "energy en promo"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	for _, p := range msg.RecommendedProducts {
		if !p.OnSale {
			t.Fatalf("product %q is not on sale", p.Title)
		}
	}
}

func TestQueryTurnNoResults(t *testing.T) {
	a := newTestAssistant(t, nil, catalog.NewStaticClient([]domain.Product{{Title: "Lone Item"}}))
	ctx := context.Background()
	session := completedSession(t, a, "u1")

	msg, err := a.HandleMessage(ctx, session.ID, Answer{Text: "zzz"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if msg.Content != a.loc.Messages.NoProductsFound {
		t.Fatalf("got %q", msg.Content)
	}
	if len(msg.RecommendedProducts) != 0 {
		t.Fatalf("products=%v", titlesOf(msg.RecommendedProducts))
	}
}

func TestQueryTurnCatalogErrorSurfaces(t *testing.T) {
	broken := &catalog.StaticClient{Err: errors.New("storefront down")}
	a := newTestAssistant(t, nil, broken)
	ctx := context.Background()

	// Complete the interview with a working catalog swapped in temporarily.
	broken.Err = nil
	broken.Products = catalog.SampleProducts()
	session := completedSession(t, a, "u1")
	broken.Err = errors.New("storefront down")

	if _, err := a.HandleMessage(ctx, session.ID, Answer{Text: "energy"}); err == nil {
		t.Fatal("catalog failure must surface as an error, not an empty result")
	}
}

func hasAnyTag(p domain.Product, want string) bool {
	for _, tag := range p.Tags {
		if strings.EqualFold(tag, want) {
			return true
		}
	}
	return false
}
