package model

// QueryKind selects the filtering strategy for a parsed intent. The wire
// values match the Spanish vocabulary the interpretation prompt asks the
// language model to emit.
type QueryKind string

const (
	KindByDate         QueryKind = "por_fecha"
	KindByDateRange    QueryKind = "por_rango_fechas"
	KindByCategory     QueryKind = "por_categoria"
	KindByLocation     QueryKind = "por_ubicacion"
	KindFreeOnly       QueryKind = "gratuitos"
	KindUpcoming       QueryKind = "proximos"
	KindSearch         QueryKind = "busqueda"
	KindAll            QueryKind = "todos"
	KindRecommendation QueryKind = "recomendacion"
)

// ParsedIntent is the structured interpretation of one user message. Every
// field is optional: nil means "no constraint", which must never collapse
// into a zero value (an unset price ceiling is not a ceiling of zero).
type ParsedIntent struct {
	AboutEvents    *bool     `json:"es_sobre_eventos,omitempty"`
	Recommendation *bool     `json:"es_recomendacion,omitempty"`
	Kind           QueryKind `json:"tipo_consulta,omitempty"`
	Date           *string   `json:"fecha,omitempty"`
	DateStart      *string   `json:"fecha_inicio,omitempty"`
	DateEnd        *string   `json:"fecha_fin,omitempty"`
	Category       *Category `json:"categoria,omitempty"`
	Location       *string   `json:"ubicacion,omitempty"`
	SearchText     *string   `json:"texto_busqueda,omitempty"`
	FreeOnly       *bool     `json:"solo_gratuitos,omitempty"`
	PriceCeiling   *float64  `json:"precio_maximo,omitempty"`
	UpcomingDays   *int      `json:"dias_proximos,omitempty"`
}

// IsAboutEvents treats an unset flag as on-topic, matching the interpreter's
// optimistic default.
func (p *ParsedIntent) IsAboutEvents() bool {
	return p.AboutEvents == nil || *p.AboutEvents
}

// WantsRecommendation reports whether the interpreter flagged the message as
// a recommendation request.
func (p *ParsedIntent) WantsRecommendation() bool {
	return p.Recommendation != nil && *p.Recommendation
}

// HasConstraints reports whether any concrete search criterion is present.
// A recommendation flag is only honored when this is false; search text alone
// does not count as a constraint.
func (p *ParsedIntent) HasConstraints() bool {
	if p.Date != nil || p.DateStart != nil || p.DateEnd != nil {
		return true
	}
	if p.Category != nil || p.Location != nil || p.PriceCeiling != nil || p.UpcomingDays != nil {
		return true
	}
	if p.FreeOnly != nil && *p.FreeOnly {
		return true
	}
	switch p.Kind {
	case KindByDate, KindByDateRange, KindByCategory, KindByLocation, KindFreeOnly, KindUpcoming:
		return true
	}
	return false
}
