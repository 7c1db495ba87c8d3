package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"eventbot/internal/model"
	"eventbot/internal/repository"
	"eventbot/internal/utils"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// EventStore is what the chat core needs from the catalog.
type EventStore interface {
	SearchEvents(ctx context.Context, filter *model.EventFilter) ([]model.Event, error)
	ActiveEvents(ctx context.Context) ([]model.Event, error)
	GetEventByTitle(ctx context.Context, title string) (*model.Event, error)
	LogChat(ctx context.Context, id uuid.UUID, message string, intent *model.ParsedIntent, resultCount int, tookMs int64) error
}

var _ EventStore = (*repository.EventRepository)(nil)

// detailPrefix marks a request for the full card of one event, matched
// before any interpretation runs. Kept in folded form because the incoming
// message is accent-folded before the comparison.
const detailPrefix = "dame mas informacion sobre "

// faqRewrites maps well-known quick-reply phrases straight to canonical
// queries, skipping the model for the buttons the frontend shows. A phrase
// matches anywhere inside the folded message, first entry wins.
var faqRewrites = []struct {
	phrase  string
	rewrite string
}{
	{"eventos de hoy", "eventos de hoy"},
	{"eventos de esta semana", "eventos de los próximos 7 días"},
	{"eventos de este mes", "eventos de este mes"},
	{"eventos gratis", "eventos gratuitos"},
	{"eventos de musica", "eventos de música"},
	{"eventos de teatro", "eventos de teatro"},
}

// ChatService runs the full pipeline for one user message: interpret, query,
// narrate, log.
type ChatService struct {
	store       EventStore
	extractor   *IntentExtractor
	narrator    *Narrator
	recommender *Recommender
	loc         *time.Location
	log         zerolog.Logger
}

// NewChatService wires the pipeline. loc anchors relative dates and display
// formatting; nil falls back to UTC.
func NewChatService(store EventStore, extractor *IntentExtractor, narrator *Narrator, recommender *Recommender, loc *time.Location, log zerolog.Logger) *ChatService {
	if loc == nil {
		loc = time.UTC
	}
	return &ChatService{
		store:       store,
		extractor:   extractor,
		narrator:    narrator,
		recommender: recommender,
		loc:         loc,
		log:         log.With().Str("component", "chat").Logger(),
	}
}

// Respond handles one message end to end. Errors only surface for catalog
// failures; interpretation and narration problems degrade silently.
func (s *ChatService) Respond(ctx context.Context, message string) (*model.ChatResponse, error) {
	started := time.Now()
	now := time.Now().In(s.loc)

	if resp, handled, err := s.respondDetail(ctx, message); handled {
		if err != nil {
			return nil, err
		}
		s.logChat(message, nil, len(resp.Events), started)
		return resp, nil
	}

	lookup := message
	folded := utils.NormalizeText(message)
	for _, faq := range faqRewrites {
		if strings.Contains(folded, faq.phrase) {
			lookup = faq.rewrite
			break
		}
	}

	intent := s.extractor.Extract(ctx, lookup, now)

	var (
		resp *model.ChatResponse
		err  error
	)
	switch {
	case !intent.IsAboutEvents():
		resp = &model.ChatResponse{Response: s.narrator.OffTopic(ctx, message)}
	case intent.Kind == model.KindRecommendation:
		resp, err = s.respondRecommendation(ctx, message)
	default:
		resp, err = s.respondSearch(ctx, message, intent, now)
	}
	if err != nil {
		return nil, err
	}

	s.logChat(message, intent, len(resp.Events), started)
	return resp, nil
}

// respondDetail serves "dame más información sobre <título>" requests. The
// second return value reports whether the message was a detail request at all.
func (s *ChatService) respondDetail(ctx context.Context, message string) (*model.ChatResponse, bool, error) {
	trimmed := strings.TrimSpace(message)
	folded := utils.NormalizeText(trimmed)
	if !strings.HasPrefix(folded, detailPrefix) {
		return nil, false, nil
	}

	// Cut the prefix from the original message by rune count so the title
	// keeps its accents and casing.
	title := strings.TrimSpace(string([]rune(trimmed)[len([]rune(detailPrefix)):]))
	if title == "" {
		return &model.ChatResponse{Response: noMatchReply}, true, nil
	}

	event, err := s.store.GetEventByTitle(ctx, title)
	if err != nil {
		return nil, true, fmt.Errorf("failed to look up event: %w", err)
	}
	if event == nil {
		return &model.ChatResponse{
			Response: fmt.Sprintf("No encontré un evento llamado %q. Revisa el nombre e intenta de nuevo.", title),
		}, true, nil
	}

	return &model.ChatResponse{
		Response: s.detailCard(event),
		Events:   []model.EventSummary{event.Summary(s.loc)},
	}, true, nil
}

// detailCard renders the full information card for one event.
func (s *ChatService) detailCard(event *model.Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", event.Title)
	if event.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", event.Description)
	}

	date := event.StartsAt.In(s.loc).Format("02/01/2006 15:04")
	if event.EndsAt != nil {
		date += " hasta " + event.EndsAt.In(s.loc).Format("02/01/2006 15:04")
	}
	fmt.Fprintf(&b, "📅 Fecha: %s\n", date)

	place := event.Location
	if place == "" {
		place = "Ubicación por confirmar"
	}
	if event.Address != "" {
		place += ", " + event.Address
	}
	fmt.Fprintf(&b, "📍 Lugar: %s\n", place)
	fmt.Fprintf(&b, "💲 Costo: %s\n", event.PriceLabel())
	fmt.Fprintf(&b, "🏷️ Categoría: %s\n", event.Category.Label())
	if event.Contact != "" {
		fmt.Fprintf(&b, "📞 Contacto: %s\n", event.Contact)
	}
	if event.Link != "" {
		fmt.Fprintf(&b, "🔗 Más información: %s\n", event.Link)
	}
	b.WriteString("\nApoya lo local.")
	return b.String()
}

func (s *ChatService) respondRecommendation(ctx context.Context, message string) (*model.ChatResponse, error) {
	events, err := s.store.ActiveEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}

	pick := s.recommender.Pick(events)
	if pick == nil {
		return &model.ChatResponse{Response: noEventsReply}, nil
	}

	summary := pick.Summary(s.loc)
	return &model.ChatResponse{
		Response: s.narrator.Recommendation(ctx, message, summary),
		Events:   []model.EventSummary{summary},
	}, nil
}

func (s *ChatService) respondSearch(ctx context.Context, message string, intent *model.ParsedIntent, now time.Time) (*model.ChatResponse, error) {
	filter := BuildFilter(intent, now)

	events, err := s.store.SearchEvents(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search events: %w", err)
	}
	if len(events) == 0 {
		return &model.ChatResponse{Response: noMatchReply}, nil
	}

	summaries := make([]model.EventSummary, 0, len(events))
	for i := range events {
		summaries = append(summaries, events[i].Summary(s.loc))
	}

	return &model.ChatResponse{
		Response: s.narrator.Results(ctx, message, summaries, intent),
		Events:   summaries,
	}, nil
}

// logChat records the exchange without holding up the response. The request
// context may already be done by the time the insert runs, so the goroutine
// gets its own deadline.
func (s *ChatService) logChat(message string, intent *model.ParsedIntent, resultCount int, started time.Time) {
	tookMs := time.Since(started).Milliseconds()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.store.LogChat(ctx, uuid.New(), message, intent, resultCount, tookMs); err != nil {
			s.log.Warn().Err(err).Msg("failed to log chat")
		}
	}()
}
