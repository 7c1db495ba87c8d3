package service

import (
	"context"
	"fmt"
	"time"

	"eventbot/internal/model"
	"eventbot/internal/utils"

	"github.com/rs/zerolog"
)

// IntentExtractor turns a free-form user message into a ParsedIntent using
// the language model, degrading to a plain text search when the model is
// unavailable or answers with something unusable.
type IntentExtractor struct {
	gen     TextGenerator
	timeout time.Duration
	log     zerolog.Logger
}

// NewIntentExtractor creates an extractor. gen may be nil, in which case every
// message falls back to a text search intent.
func NewIntentExtractor(gen TextGenerator, timeout time.Duration, log zerolog.Logger) *IntentExtractor {
	return &IntentExtractor{
		gen:     gen,
		timeout: timeout,
		log:     log.With().Str("component", "intent").Logger(),
	}
}

// Extract interprets a message. It never returns an error: any failure along
// the way yields the deterministic fallback intent, so one flaky model call
// can't take the chatbot down.
func (e *IntentExtractor) Extract(ctx context.Context, message string, now time.Time) *model.ParsedIntent {
	if e.gen == nil || !e.gen.IsEnabled() {
		return fallbackIntent(message)
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	raw, err := e.gen.Generate(ctx, interpretPrompt(message, now))
	if err != nil {
		e.log.Warn().Err(err).Msg("intent interpretation failed, falling back to text search")
		return fallbackIntent(message)
	}

	var intent model.ParsedIntent
	if err := utils.DecodeModelJSON(raw, &intent); err != nil {
		e.log.Warn().Err(err).Str("raw", utils.TruncateRunes(raw, 200)).
			Msg("unparseable interpretation, falling back to text search")
		return fallbackIntent(message)
	}

	e.normalize(&intent)
	return &intent
}

// fallbackIntent is the deterministic degradation: search the catalog for the
// literal message text.
func fallbackIntent(message string) *model.ParsedIntent {
	return &model.ParsedIntent{
		Kind:       model.KindSearch,
		SearchText: &message,
	}
}

// normalize cleans up what the model returned: categories outside the closed
// set are dropped, and a recommendation request that carries concrete criteria
// is downgraded to the matching constrained query so the criteria win.
func (e *IntentExtractor) normalize(intent *model.ParsedIntent) {
	if intent.Category != nil {
		cat, ok := model.ParseCategory(string(*intent.Category))
		if ok {
			intent.Category = &cat
		} else {
			e.log.Debug().Str("category", string(*intent.Category)).Msg("dropping unknown category")
			intent.Category = nil
		}
	}

	if intent.WantsRecommendation() || intent.Kind == model.KindRecommendation {
		if intent.HasConstraints() {
			honor := false
			intent.Recommendation = &honor
			// A kind that already names its constraint (e.g. proximos,
			// gratuitos) stands on its own; only rewrite when the kind
			// itself carries no criterion.
			if !isConstrainedKind(intent.Kind) {
				intent.Kind = constrainedKind(intent)
			}
		} else {
			honor := true
			intent.Recommendation = &honor
			intent.Kind = model.KindRecommendation
		}
	}
}

func isConstrainedKind(kind model.QueryKind) bool {
	switch kind {
	case model.KindByDate, model.KindByDateRange, model.KindByCategory,
		model.KindByLocation, model.KindFreeOnly, model.KindUpcoming:
		return true
	}
	return false
}

// constrainedKind picks the query kind that matches the strongest criterion
// present, used when a recommendation request is downgraded.
func constrainedKind(intent *model.ParsedIntent) model.QueryKind {
	switch {
	case intent.Date != nil:
		return model.KindByDate
	case intent.DateStart != nil || intent.DateEnd != nil:
		return model.KindByDateRange
	case intent.Category != nil:
		return model.KindByCategory
	case intent.Location != nil:
		return model.KindByLocation
	case intent.FreeOnly != nil && *intent.FreeOnly:
		return model.KindFreeOnly
	case intent.UpcomingDays != nil:
		return model.KindUpcoming
	default:
		return model.KindSearch
	}
}

var spanishWeekdays = map[time.Weekday]string{
	time.Sunday:    "domingo",
	time.Monday:    "lunes",
	time.Tuesday:   "martes",
	time.Wednesday: "miércoles",
	time.Thursday:  "jueves",
	time.Friday:    "viernes",
	time.Saturday:  "sábado",
}

var spanishMonths = map[time.Month]string{
	time.January:   "enero",
	time.February:  "febrero",
	time.March:     "marzo",
	time.April:     "abril",
	time.May:       "mayo",
	time.June:      "junio",
	time.July:      "julio",
	time.August:    "agosto",
	time.September: "septiembre",
	time.October:   "octubre",
	time.November:  "noviembre",
	time.December:  "diciembre",
}

// interpretPrompt builds the interpretation prompt. The reference clock is
// spelled out so relative expressions resolve against the server's local time
// instead of whatever the model assumes.
func interpretPrompt(message string, now time.Time) string {
	return fmt.Sprintf(`Eres un intérprete de consultas para un chatbot de eventos locales.

FECHA Y HORA DE REFERENCIA:
- fecha_actual: %s
- hora_actual: %s
- dia_semana: %s
- dia_mes: %d
- mes: %s
- año: %d

Analiza el siguiente mensaje del usuario y responde SOLO con un objeto JSON con estos campos:
- es_sobre_eventos (bool): si el mensaje trata de eventos
- es_recomendacion (bool): si el usuario pide una recomendación o sugerencia
- tipo_consulta (string): uno de "por_fecha", "por_rango_fechas", "por_categoria", "por_ubicacion", "gratuitos", "proximos", "busqueda", "todos", "recomendacion"
- fecha (string, opcional): fecha concreta mencionada, formato YYYY-MM-DD, o YYYY-MM si solo hay mes
- fecha_inicio, fecha_fin (string, opcional): extremos del rango si hay rango de fechas
- categoria (string, opcional): una de "musica", "deporte", "cultural", "gastronomia", "educativo", "religioso", "feria", "teatro", "danza", "otro"
- ubicacion (string, opcional): lugar o sector mencionado
- texto_busqueda (string, opcional): términos libres de búsqueda
- solo_gratuitos (bool, opcional): true si pide solo eventos gratis
- precio_maximo (number, opcional): precio máximo si menciona un presupuesto
- dias_proximos (number, opcional): cantidad de días si pregunta por los próximos días

Reglas:
- Resuelve "hoy", "mañana", "este fin de semana" y similares usando la fecha de referencia.
- Si menciona solo un mes, usa formato YYYY-MM y no inventes el día.
- No inventes campos que el usuario no mencionó.
- Responde únicamente el JSON, sin explicaciones ni formato markdown.

Mensaje del usuario: %q`,
		now.Format("2006-01-02"),
		now.Format("15:04"),
		spanishWeekdays[now.Weekday()],
		now.Day(),
		spanishMonths[now.Month()],
		now.Year(),
		message,
	)
}
