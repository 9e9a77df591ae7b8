package usecase

import (
	"math"
	"strconv"
	"strings"

	"github.com/xavierca1/ligue-pipeline/internal/entity"
)

// LeadFilters são os filtros do header; chave vazia não restringe nada.
type LeadFilters struct {
	Stage     entity.Stage  `json:"stage,omitempty"`
	Source    entity.Source `json:"source,omitempty"`
	DealValue string        `json:"dealValue,omitempty"` // "1000-5000" ou "10000+"
}

func (f LeadFilters) IsEmpty() bool {
	return f.Stage == "" && f.Source == "" && f.DealValue == ""
}

// DealRange é a faixa de valor de negócio, com limites inclusivos.
type DealRange struct {
	Min float64
	Max float64 // +Inf quando a faixa é "min+"
}

func (r DealRange) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// ParseDealRange aceita "min-max" e "min+". NaN e Inf não são valores de negócio.
func ParseDealRange(s string) (DealRange, error) {
	s = strings.TrimSpace(s)
	invalid := entity.ValidationErrors{{Field: "dealValue", Message: "must look like min-max or min+"}}

	if rest, ok := strings.CutSuffix(s, "+"); ok {
		floor, ok := parseBound(rest)
		if !ok {
			return DealRange{}, invalid
		}
		return DealRange{Min: floor, Max: math.Inf(1)}, nil
	}

	lo, hi, ok := strings.Cut(s, "-")
	if !ok {
		return DealRange{}, invalid
	}
	floor, ok := parseBound(lo)
	if !ok {
		return DealRange{}, invalid
	}
	ceil, ok := parseBound(hi)
	if !ok || ceil < floor {
		return DealRange{}, invalid
	}
	return DealRange{Min: floor, Max: ceil}, nil
}

func parseBound(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}

// FilterLeads aplica busca + filtros (AND entre eles). A busca é substring
// case-insensitive em name, company ou email; o termo não é aparado, então
// só espaços ainda é um filtro.
func FilterLeads(leads []entity.Lead, searchTerm string, filters LeadFilters) ([]entity.Lead, error) {
	var dealRange *DealRange
	if filters.DealValue != "" {
		r, err := ParseDealRange(filters.DealValue)
		if err != nil {
			return nil, err
		}
		dealRange = &r
	}

	term := strings.ToLower(searchTerm)

	out := make([]entity.Lead, 0, len(leads))
	for _, l := range leads {
		if term != "" && !matchesSearch(l, term) {
			continue
		}
		if filters.Stage != "" && l.Stage != filters.Stage {
			continue
		}
		if filters.Source != "" && l.Source != filters.Source {
			continue
		}
		if dealRange != nil && !dealRange.Contains(l.DealValue) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func matchesSearch(l entity.Lead, term string) bool {
	return strings.Contains(strings.ToLower(l.Name), term) ||
		strings.Contains(strings.ToLower(l.Company), term) ||
		strings.Contains(strings.ToLower(l.Email), term)
}
