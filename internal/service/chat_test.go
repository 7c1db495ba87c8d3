package service

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	"eventbot/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type stubStore struct {
	events     []model.Event
	byTitle    map[string]*model.Event
	searchErr  error
	lastFilter *model.EventFilter
	logged     int
}

func (s *stubStore) SearchEvents(_ context.Context, filter *model.EventFilter) ([]model.Event, error) {
	s.lastFilter = filter
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	if filter != nil && filter.None {
		return []model.Event{}, nil
	}
	return s.events, nil
}

func (s *stubStore) ActiveEvents(ctx context.Context) ([]model.Event, error) {
	return s.SearchEvents(ctx, nil)
}

func (s *stubStore) GetEventByTitle(_ context.Context, title string) (*model.Event, error) {
	if s.byTitle == nil {
		return nil, nil
	}
	return s.byTitle[strings.ToLower(title)], nil
}

func (s *stubStore) LogChat(_ context.Context, _ uuid.UUID, _ string, _ *model.ParsedIntent, _ int, _ int64) error {
	s.logged++
	return nil
}

func newTestChatService(store EventStore, gen TextGenerator) *ChatService {
	log := zerolog.Nop()
	return NewChatService(
		store,
		NewIntentExtractor(gen, time.Second, log),
		NewNarrator(gen, time.Second, log),
		NewRecommender(rand.New(rand.NewSource(7))),
		time.UTC,
		log,
	)
}

func sampleEvent(id int64, title string, price float64) model.Event {
	return model.Event{
		ID:       id,
		Title:    title,
		Category: model.CategoryMusic,
		StartsAt: time.Date(2024, time.November, 20, 19, 0, 0, 0, time.UTC),
		Location: "Plaza Central",
		Price:    price,
		Active:   true,
	}
}

func TestRespondSearchListsEvents(t *testing.T) {
	store := &stubStore{events: []model.Event{sampleEvent(1, "Concierto Andino", 0)}}
	svc := newTestChatService(store, nil)

	resp, err := svc.Respond(context.Background(), "eventos de música")
	if err != nil {
		t.Fatalf("Respond returned error: %v", err)
	}
	if len(resp.Events) != 1 || resp.Events[0].Title != "Concierto Andino" {
		t.Errorf("Events = %+v, want the matching event", resp.Events)
	}
	if !strings.Contains(resp.Response, "Concierto Andino") {
		t.Errorf("Response = %q, want it to mention the event", resp.Response)
	}
}

func TestRespondNoMatches(t *testing.T) {
	store := &stubStore{}
	svc := newTestChatService(store, nil)

	resp, err := svc.Respond(context.Background(), "eventos de ópera barroca")
	if err != nil {
		t.Fatalf("Respond returned error: %v", err)
	}
	if resp.Response != noMatchReply {
		t.Errorf("Response = %q, want the no-match reply", resp.Response)
	}
	if len(resp.Events) != 0 {
		t.Errorf("Events = %+v, want none", resp.Events)
	}
}

func TestRespondRewritesEmbeddedFAQPhrase(t *testing.T) {
	store := &stubStore{events: []model.Event{sampleEvent(1, "Feria Libre", 0)}}
	svc := newTestChatService(store, nil)

	if _, err := svc.Respond(context.Background(), "Quiero eventos de esta semana por favor"); err != nil {
		t.Fatalf("Respond returned error: %v", err)
	}

	if store.lastFilter == nil || store.lastFilter.TextContains == nil {
		t.Fatalf("filter = %+v, want a text search from the rewritten phrase", store.lastFilter)
	}
	if got := *store.lastFilter.TextContains; got != "eventos de los próximos 7 días" {
		t.Errorf("TextContains = %q, want the canonical rewrite", got)
	}
}

func TestRespondSurvivesInterpretationFailure(t *testing.T) {
	store := &stubStore{events: []model.Event{sampleEvent(1, "Feria Libre", 0)}}
	gen := &stubGenerator{enabled: true, err: errors.New("model down")}
	svc := newTestChatService(store, gen)

	resp, err := svc.Respond(context.Background(), "algo que hacer")
	if err != nil {
		t.Fatalf("Respond returned error: %v", err)
	}
	if resp.Response == "" {
		t.Error("Response is empty, want a degraded but usable reply")
	}
}

func TestRespondSearchErrorSurfaces(t *testing.T) {
	store := &stubStore{searchErr: errors.New("db down")}
	svc := newTestChatService(store, nil)

	if _, err := svc.Respond(context.Background(), "eventos"); err == nil {
		t.Fatal("Respond must surface catalog failures")
	}
}

func TestRespondRecommendationFromCatalog(t *testing.T) {
	store := &stubStore{events: []model.Event{sampleEvent(1, "Noche de Danza", 5)}}
	gen := &stubGenerator{enabled: true, reply: `{"es_recomendacion": true}`}
	svc := newTestChatService(store, gen)

	resp, err := svc.Respond(context.Background(), "recomiéndame algo")
	if err != nil {
		t.Fatalf("Respond returned error: %v", err)
	}
	if len(resp.Events) != 1 || resp.Events[0].Title != "Noche de Danza" {
		t.Errorf("Events = %+v, want the recommended event", resp.Events)
	}
}

func TestRespondRecommendationEmptyCatalog(t *testing.T) {
	store := &stubStore{}
	gen := &stubGenerator{enabled: true, reply: `{"es_recomendacion": true}`}
	svc := newTestChatService(store, gen)

	resp, err := svc.Respond(context.Background(), "recomiéndame algo")
	if err != nil {
		t.Fatalf("Respond returned error: %v", err)
	}
	if resp.Response != noEventsReply {
		t.Errorf("Response = %q, want the empty-catalog reply", resp.Response)
	}
}

func TestRespondOffTopic(t *testing.T) {
	store := &stubStore{events: []model.Event{sampleEvent(1, "x", 0)}}
	gen := &stubGenerator{enabled: true,
		reply: `{"es_sobre_eventos": false, "tipo_consulta": "busqueda"}`}
	svc := newTestChatService(store, gen)

	resp, err := svc.Respond(context.Background(), "¿cuál es la capital de Francia?")
	if err != nil {
		t.Fatalf("Respond returned error: %v", err)
	}
	if len(resp.Events) != 0 {
		t.Errorf("Events = %+v, want none for off-topic messages", resp.Events)
	}
	if resp.Response == "" {
		t.Error("Response is empty, want a redirect reply")
	}
}

func TestRespondDetailCard(t *testing.T) {
	event := sampleEvent(1, "Festival de Luces", 3.5)
	event.Contact = "099 999 9999"
	store := &stubStore{byTitle: map[string]*model.Event{"festival de luces": &event}}
	svc := newTestChatService(store, nil)

	resp, err := svc.Respond(context.Background(), "Dame más información sobre Festival de Luces")
	if err != nil {
		t.Fatalf("Respond returned error: %v", err)
	}
	for _, want := range []string{"Festival de Luces", "Plaza Central", "$3.50", "099 999 9999"} {
		if !strings.Contains(resp.Response, want) {
			t.Errorf("detail card missing %q in %q", want, resp.Response)
		}
	}
	if len(resp.Events) != 1 {
		t.Errorf("Events = %+v, want the detailed event", resp.Events)
	}
}

func TestRespondDetailUnknownTitle(t *testing.T) {
	store := &stubStore{}
	svc := newTestChatService(store, nil)

	resp, err := svc.Respond(context.Background(), "dame más información sobre Evento Fantasma")
	if err != nil {
		t.Fatalf("Respond returned error: %v", err)
	}
	if !strings.Contains(resp.Response, "Evento Fantasma") {
		t.Errorf("Response = %q, want it to echo the unknown title", resp.Response)
	}
}
