package mail

import (
	"time"

	"github.com/xavierca1/ligue-pipeline/internal/entity"
)

type DealWonEmailData struct {
	EventID    string
	LeadName   string
	Company    string
	FromStage  entity.Stage
	DealValue  float64
	OccurredAt time.Time
}

type TaskDigestEmailData struct {
	Counts   digestCounts
	Sections []digestSection
}

type digestCounts struct {
	Pending   int
	Overdue   int
	Completed int
}

type digestSection struct {
	Title string
	Tasks []digestRow
}

type digestRow struct {
	Priority    entity.Priority
	Description string
	LeadName    string
	DueDate     time.Time
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	// Dialer é trocado nos testes; por padrão é um gomail.Dialer com o SMTP acima.
	Dialer Dialer
}
