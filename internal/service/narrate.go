package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"eventbot/internal/model"

	"github.com/rs/zerolog"
)

// Canned replies used when the model is unavailable or fails mid-request.
const (
	noMatchReply  = "No encontré eventos que coincidan con tu búsqueda. ¿Podrías intentar con otros criterios?"
	noEventsReply = "Por ahora no tengo eventos registrados para recomendarte. ¡Vuelve pronto!"
	offTopicReply = "Soy un asistente de eventos locales. Pregúntame por conciertos, ferias, obras de teatro y más actividades de la ciudad."
)

// Narrator phrases query results in natural Spanish. Every method degrades to
// a serviceable fixed reply when the model call fails, so narration never
// blocks a response.
type Narrator struct {
	gen     TextGenerator
	timeout time.Duration
	log     zerolog.Logger
}

// NewNarrator creates a narrator. gen may be nil.
func NewNarrator(gen TextGenerator, timeout time.Duration, log zerolog.Logger) *Narrator {
	return &Narrator{
		gen:     gen,
		timeout: timeout,
		log:     log.With().Str("component", "narrator").Logger(),
	}
}

// Results narrates a list of matching events for the user's message.
func (n *Narrator) Results(ctx context.Context, message string, summaries []model.EventSummary, intent *model.ParsedIntent) string {
	fallback := listFallback(summaries)
	if n.gen == nil || !n.gen.IsEnabled() {
		return fallback
	}

	payload, err := json.Marshal(summaries)
	if err != nil {
		return fallback
	}

	prompt := fmt.Sprintf(`Eres el asistente de eventos de una ciudad andina. Hablas en español, con calidez y sin exagerar.

El usuario preguntó: %q
%s
Estos son los eventos encontrados (JSON):
%s

Redacta una respuesta breve y amigable presentando estos eventos. Menciona título, fecha, lugar y costo de cada uno. Si un evento es gratis, destácalo. No inventes eventos ni datos que no estén en la lista. No uses formato markdown.`,
		message, criterionContext(intent), payload)

	return n.generate(ctx, prompt, fallback)
}

// Recommendation narrates a single recommended event.
func (n *Narrator) Recommendation(ctx context.Context, message string, summary model.EventSummary) string {
	fallback := fmt.Sprintf("Te recomiendo %s, el %s en %s. Entrada: %s.",
		summary.Title, summary.Date, summary.Location, summary.Price)
	if n.gen == nil || !n.gen.IsEnabled() {
		return fallback
	}

	payload, err := json.Marshal(summary)
	if err != nil {
		return fallback
	}

	prompt := fmt.Sprintf(`Eres el asistente de eventos de una ciudad andina. Hablas en español, con calidez y sin exagerar.

El usuario pidió una recomendación: %q

Este es el evento elegido (JSON):
%s

Recomiéndaselo con entusiasmo en dos o tres frases. Menciona título, fecha, lugar y costo. No inventes datos. No uses formato markdown.`,
		message, payload)

	return n.generate(ctx, prompt, fallback)
}

// OffTopic answers a message that is not about events, steering the user back.
func (n *Narrator) OffTopic(ctx context.Context, message string) string {
	if n.gen == nil || !n.gen.IsEnabled() {
		return offTopicReply
	}

	prompt := fmt.Sprintf(`Eres el asistente de eventos de una ciudad andina. El usuario escribió algo que no trata de eventos: %q

Responde en español, en una o dos frases corteses, y recuérdale que puedes ayudarle a encontrar eventos locales (conciertos, ferias, teatro, deporte). No uses formato markdown.`,
		message)

	return n.generate(ctx, prompt, offTopicReply)
}

func (n *Narrator) generate(ctx context.Context, prompt, fallback string) string {
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	reply, err := n.gen.Generate(ctx, prompt)
	if err != nil || strings.TrimSpace(reply) == "" {
		n.log.Warn().Err(err).Msg("narration failed, using fixed reply")
		return fallback
	}
	return strings.TrimSpace(reply)
}

// criterionContext spells out the constraints the user asked for, so the
// narration can acknowledge them ("eventos gratis", "hasta $20").
func criterionContext(intent *model.ParsedIntent) string {
	if intent == nil {
		return ""
	}
	var parts []string
	if intent.FreeOnly != nil && *intent.FreeOnly {
		parts = append(parts, "el usuario pidió solo eventos gratuitos")
	}
	if intent.PriceCeiling != nil {
		parts = append(parts, fmt.Sprintf("el usuario tiene un presupuesto máximo de $%.2f", *intent.PriceCeiling))
	}
	if intent.Category != nil {
		parts = append(parts, fmt.Sprintf("el usuario busca eventos de %s", intent.Category.Label()))
	}
	if intent.Location != nil {
		parts = append(parts, fmt.Sprintf("el usuario busca eventos en %s", *intent.Location))
	}
	if len(parts) == 0 {
		return ""
	}
	return "Contexto: " + strings.Join(parts, "; ") + ".\n"
}

// listFallback renders results without the model: one line per event.
func listFallback(summaries []model.EventSummary) string {
	if len(summaries) == 0 {
		return noMatchReply
	}
	var b strings.Builder
	b.WriteString("Encontré estos eventos:\n")
	for _, s := range summaries {
		fmt.Fprintf(&b, "• %s | %s | %s | %s\n", s.Title, s.Date, s.Location, s.Price)
	}
	return strings.TrimRight(b.String(), "\n")
}
