package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"nutriguide/internal/catalog"
	"nutriguide/internal/domain"
	"nutriguide/internal/locale"
	"nutriguide/internal/service"
)

// fakeMessageRepo archives messages in memory.
type fakeMessageRepo struct {
	messages []domain.Message
}

func (r *fakeMessageRepo) Create(_ context.Context, msg domain.Message) error {
	r.messages = append(r.messages, msg)
	return nil
}

func (r *fakeMessageRepo) ListBySession(_ context.Context, sessionID string, limit int) ([]domain.Message, error) {
	var out []domain.Message
	for _, m := range r.messages {
		if m.SessionID == sessionID && len(out) < limit {
			out = append(out, m)
		}
	}
	return out, nil
}

func newChatRouter(messages *fakeMessageRepo) *gin.Engine {
	loc := locale.Default()
	store := service.NewMemoryProfileStore()
	onboarding := service.NewOnboardingMachine(zap.NewNop(), loc, service.NewResponseParser(loc), store)
	assistant := service.NewAssistantService(
		zap.NewNop(), loc,
		service.NewMemorySessionStore(time.Hour),
		store,
		catalog.NewStaticClient(nil),
		onboarding,
		service.NewComboMatcher(nil, loc),
		nil, messages,
	)

	h := NewChatHandler(zap.NewNop(), assistant, messages)
	r := gin.New()
	r.POST("/chat/session", h.StartSession)
	r.POST("/chat/message", h.PostMessage)
	r.GET("/chat/history", h.GetHistory)
	return r
}

func TestChatFlow(t *testing.T) {
	repo := &fakeMessageRepo{}
	router := newChatRouter(repo)

	w := performJSON(t, router, http.MethodPost, "/chat/session", `{"user_id":"u1"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("start status=%d body=%s", w.Code, w.Body.String())
	}
	var started struct {
		SessionID string         `json:"session_id"`
		Message   domain.Message `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &started); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if started.SessionID == "" || started.Message.Content == "" {
		t.Fatalf("started=%+v", started)
	}

	w = performJSON(t, router, http.MethodPost, "/chat/message",
		`{"session_id":"`+started.SessionID+`","content":"j'ai 29 ans"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("message status=%d body=%s", w.Code, w.Body.String())
	}
	var answered struct {
		Message domain.Message `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &answered); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// Age accepted, so the next question offers the gender suggestions.
	if len(answered.Message.Suggestions) == 0 {
		t.Fatalf("message=%+v", answered.Message)
	}

	w = performJSON(t, router, http.MethodGet, "/chat/history?sessionId="+started.SessionID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("history status=%d", w.Code)
	}
	var history struct {
		Messages []domain.Message `json:"messages"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &history); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// One user turn plus the assistant's answer are archived.
	if len(history.Messages) != 2 {
		t.Fatalf("history=%d messages", len(history.Messages))
	}
}

func TestChatValidation(t *testing.T) {
	router := newChatRouter(&fakeMessageRepo{})

	t.Run("missing user id", func(t *testing.T) {
		w := performJSON(t, router, http.MethodPost, "/chat/session", `{}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status=%d", w.Code)
		}
	})

	t.Run("unknown session", func(t *testing.T) {
		w := performJSON(t, router, http.MethodPost, "/chat/message",
			`{"session_id":"ghost","content":"hello"}`)
		if w.Code != http.StatusNotFound {
			t.Fatalf("status=%d", w.Code)
		}
	})

	t.Run("missing content", func(t *testing.T) {
		w := performJSON(t, router, http.MethodPost, "/chat/message", `{"session_id":"s1"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status=%d", w.Code)
		}
	})
}
