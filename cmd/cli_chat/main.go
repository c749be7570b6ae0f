package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"nutriguide/internal/catalog"
	"nutriguide/internal/llm"
	"nutriguide/internal/locale"
	"nutriguide/internal/profileapi"
	"nutriguide/internal/service"
)

// Terminal front-end for the assistant. Runs fully in memory against the
// sample catalog; set PROFILE_API_URL to persist profiles through the API.
func main() {
	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	_ = godotenv.Load()

	logger := zap.NewExample()
	defer logger.Sync()

	loc := locale.Default()
	if path := os.Getenv("LOCALE_PATH"); path != "" {
		if loaded, err := locale.Load(path); err == nil {
			loc = loaded
		} else {
			fmt.Printf("locale load failed, using defaults: %v\n", err)
		}
	}

	var profiles service.ProfileStore = service.NewMemoryProfileStore()
	if apiURL := os.Getenv("PROFILE_API_URL"); apiURL != "" {
		profiles = profileapi.NewClient(apiURL)
	}

	parser := service.NewResponseParser(loc)
	onboarding := service.NewOnboardingMachine(logger, loc, parser, profiles)
	matcher := service.NewComboMatcher(nil, loc)
	sessions := service.NewMemorySessionStore(24 * time.Hour)
	assistant := service.NewAssistantService(
		logger, loc, sessions, profiles,
		catalog.NewStaticClient(nil),
		onboarding, matcher, llm.Disabled{}, nil,
	)

	userID := os.Getenv("CHAT_USER_ID")
	if userID == "" {
		userID = uuid.NewString()
	}

	session, greeting, err := assistant.StartSession(ctx, userID)
	if err != nil {
		fmt.Printf("could not start session: %v\n", err)
		os.Exit(1)
	}
	printMessage(greeting.Content, greeting.Suggestions)
	suggestions := greeting.Suggestions

	for {
		fmt.Print("Vous > ")
		text, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if strings.EqualFold(text, "quitter") || strings.EqualFold(text, "exit") {
			fmt.Println("À bientôt !")
			return
		}

		msg, err := assistant.HandleMessage(ctx, session.ID, buildAnswer(text, suggestions))
		if err != nil {
			fmt.Printf("erreur: %v\n", err)
			continue
		}
		suggestions = msg.Suggestions

		printMessage(msg.Content, msg.Suggestions)
		for _, p := range msg.RecommendedProducts {
			tagline := ""
			if p.OnSale {
				tagline = " (en promo)"
			}
			fmt.Printf("   • %s — %.2f %s%s\n", p.Title, p.Price, p.Currency, tagline)
		}
		for _, combo := range msg.RecommendedCombos {
			fmt.Printf("   ◦ Pack %s : %s\n", combo.Name, strings.Join(combo.Products, ", "))
		}
	}
}

// buildAnswer marks typed input that matches one of the currently offered
// suggestions as a selection, so selection-only questions accept it.
func buildAnswer(text string, suggestions []string) service.Answer {
	for _, s := range suggestions {
		if strings.EqualFold(text, s) {
			return service.Answer{Text: s, FromSelection: true}
		}
	}
	return service.Answer{Text: text}
}

func printMessage(content string, suggestions []string) {
	fmt.Printf("Assistant > %s\n", content)
	if len(suggestions) > 0 {
		fmt.Printf("   [options: %s]\n", strings.Join(suggestions, " | "))
	}
}
