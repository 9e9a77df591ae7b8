package entity

import (
	"context"
	"time"
)

// Stage é a posição do lead no funil de vendas.
type Stage string

const (
	StageNewLead    Stage = "New Lead"
	StageContacted  Stage = "Contacted"
	StageQualified  Stage = "Qualified"
	StageProposal   Stage = "Proposal"
	StageClosedWon  Stage = "Closed Won"
	StageClosedLost Stage = "Closed Lost"
)

// Stages na ordem das colunas do board.
var Stages = []Stage{
	StageNewLead,
	StageContacted,
	StageQualified,
	StageProposal,
	StageClosedWon,
	StageClosedLost,
}

func (s Stage) IsValid() bool {
	switch s {
	case StageNewLead, StageContacted, StageQualified, StageProposal, StageClosedWon, StageClosedLost:
		return true
	default:
		return false
	}
}

// IsQualified indica se o lead já passou da qualificação (conta em qualifiedLeads).
func (s Stage) IsQualified() bool {
	return s == StageQualified || s == StageProposal || s == StageClosedWon
}

// Source é o canal de origem do lead.
type Source string

const (
	SourceWebsite       Source = "Website"
	SourceReferral      Source = "Referral"
	SourceColdCall      Source = "Cold Call"
	SourceSocialMedia   Source = "Social Media"
	SourceEmailCampaign Source = "Email Campaign"
	SourceTradeShow     Source = "Trade Show"
)

var Sources = []Source{
	SourceWebsite,
	SourceReferral,
	SourceColdCall,
	SourceSocialMedia,
	SourceEmailCampaign,
	SourceTradeShow,
}

func (s Source) IsValid() bool {
	switch s {
	case SourceWebsite, SourceReferral, SourceColdCall, SourceSocialMedia, SourceEmailCampaign, SourceTradeShow:
		return true
	default:
		return false
	}
}

type Lead struct {
	ID              int        `json:"Id"`
	Name            string     `json:"name"`
	Company         string     `json:"company"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	DealValue       float64    `json:"dealValue"`
	Stage           Stage      `json:"stage"`
	Source          Source     `json:"source"`
	Notes           string     `json:"notes"`
	LastContactDate time.Time  `json:"lastContactDate"`
	NextActionDate  *time.Time `json:"nextActionDate"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// Clone devolve uma cópia desacoplada (o ponteiro de NextActionDate não é compartilhado).
func (l Lead) Clone() Lead {
	out := l
	if l.NextActionDate != nil {
		t := *l.NextActionDate
		out.NextActionDate = &t
	}
	return out
}

// Validate confere os campos obrigatórios e os enums.
func (l *Lead) Validate() error {
	var errs ValidationErrors

	if !isRequired(l.Name) {
		errs = append(errs, ValidationError{"name", "is required"})
	}
	if !isRequired(l.Email) {
		errs = append(errs, ValidationError{"email", "is required"})
	} else if !isValidEmail(l.Email) {
		errs = append(errs, ValidationError{"email", "must be a valid email address"})
	}
	if l.Phone != "" && !isValidPhone(l.Phone) {
		errs = append(errs, ValidationError{"phone", "must be a valid phone number"})
	}
	if l.DealValue < 0 {
		errs = append(errs, ValidationError{"dealValue", "must not be negative"})
	}
	if !l.Stage.IsValid() {
		errs = append(errs, ValidationError{"stage", "is not a pipeline stage"})
	}
	if l.Source != "" && !l.Source.IsValid() {
		errs = append(errs, ValidationError{"source", "is not a known lead source"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// LeadPatch lista explicitamente os campos atualizáveis. Id não faz parte.
type LeadPatch struct {
	Name            *string    `json:"name,omitempty"`
	Company         *string    `json:"company,omitempty"`
	Email           *string    `json:"email,omitempty"`
	Phone           *string    `json:"phone,omitempty"`
	DealValue       *float64   `json:"dealValue,omitempty"`
	Stage           *Stage     `json:"stage,omitempty"`
	Source          *Source    `json:"source,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
	LastContactDate *time.Time `json:"lastContactDate,omitempty"`
	NextActionDate  *time.Time `json:"nextActionDate,omitempty"`
	// ClearNextAction zera nextActionDate (null no JSON não chega aqui como ponteiro).
	ClearNextAction bool `json:"clearNextActionDate,omitempty"`
}

// Apply mescla o patch campo a campo sobre l.
func (p LeadPatch) Apply(l *Lead) {
	if p.Name != nil {
		l.Name = *p.Name
	}
	if p.Company != nil {
		l.Company = *p.Company
	}
	if p.Email != nil {
		l.Email = *p.Email
	}
	if p.Phone != nil {
		l.Phone = *p.Phone
	}
	if p.DealValue != nil {
		l.DealValue = *p.DealValue
	}
	if p.Stage != nil {
		l.Stage = *p.Stage
	}
	if p.Source != nil {
		l.Source = *p.Source
	}
	if p.Notes != nil {
		l.Notes = *p.Notes
	}
	if p.LastContactDate != nil {
		l.LastContactDate = *p.LastContactDate
	}
	if p.ClearNextAction {
		l.NextActionDate = nil
	} else if p.NextActionDate != nil {
		t := *p.NextActionDate
		l.NextActionDate = &t
	}
}

// LeadPatchFrom monta um patch com todos os campos editáveis do lead (usado no "salvar" do modal).
func LeadPatchFrom(l Lead) LeadPatch {
	p := LeadPatch{
		Name:            &l.Name,
		Company:         &l.Company,
		Email:           &l.Email,
		Phone:           &l.Phone,
		DealValue:       &l.DealValue,
		Stage:           &l.Stage,
		Source:          &l.Source,
		Notes:           &l.Notes,
		NextActionDate:  l.NextActionDate,
		ClearNextAction: l.NextActionDate == nil,
	}
	if !l.LastContactDate.IsZero() {
		p.LastContactDate = &l.LastContactDate
	}
	return p
}

type LeadRepositoryInterface interface {
	GetAll(ctx context.Context) ([]Lead, error)
	GetByID(ctx context.Context, id int) (Lead, error)
	Create(ctx context.Context, lead Lead) (Lead, error)
	Update(ctx context.Context, id int, patch LeadPatch) (Lead, error)
	Delete(ctx context.Context, id int) error
	// Restore reinsere um lead removido com o mesmo Id (compensação de transação).
	Restore(ctx context.Context, lead Lead) error
}
