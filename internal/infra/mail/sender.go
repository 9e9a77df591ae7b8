package mail

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/xavierca1/ligue-pipeline/internal/entity"
	"github.com/xavierca1/ligue-pipeline/internal/usecase"
	"gopkg.in/gomail.v2"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(
	template.New("").
		Funcs(template.FuncMap{"money": formatMoney}).
		ParseFS(templateFS, "templates/*.html"),
)

// Dialer é o que o sender precisa do gomail.Dialer.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		Dialer:   gomail.NewDialer(host, port, user, password),
	}
}

// DealWonSender entrega o aviso de deal won sempre para o mesmo destinatário.
type DealWonSender struct {
	*EmailSender
	To string
}

func (s DealWonSender) SendDealWon(ctx context.Context, event entity.PipelineEvent) error {
	return s.EmailSender.SendDealWon(ctx, s.To, event)
}

func (s *EmailSender) SendDealWon(ctx context.Context, to string, event entity.PipelineEvent) error {
	m, err := s.BuildDealWon(to, event)
	if err != nil {
		return err
	}
	return s.send(ctx, m)
}

func (s *EmailSender) BuildDealWon(to string, event entity.PipelineEvent) (*gomail.Message, error) {
	body, err := render("deal_won.html", DealWonEmailData{
		EventID:    event.EventID,
		LeadName:   event.LeadName,
		Company:    event.Company,
		FromStage:  event.FromStage,
		DealValue:  event.DealValue,
		OccurredAt: event.OccurredAt,
	})
	if err != nil {
		return nil, err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("🏆 Negócio fechado: %s (%s)", event.LeadName, formatMoney(event.DealValue)))
	m.SetBody("text/html", body)
	return m, nil
}

func (s *EmailSender) SendTaskDigest(ctx context.Context, to string, digest usecase.TaskDigest) error {
	m, err := s.BuildTaskDigest(to, digest)
	if err != nil {
		return err
	}
	return s.send(ctx, m)
}

func (s *EmailSender) BuildTaskDigest(to string, digest usecase.TaskDigest) (*gomail.Message, error) {
	body, err := render("task_digest.html", digestData(digest))
	if err != nil {
		return nil, err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("📋 %d tarefas pendentes (%d atrasadas)",
		digest.Counts.Pending, digest.Counts.Overdue))
	m.SetBody("text/html", body)
	return m, nil
}

func (s *EmailSender) send(ctx context.Context, m *gomail.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.Dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}
	return nil
}

func digestData(d usecase.TaskDigest) TaskDigestEmailData {
	section := func(title string, tasks []entity.Task) digestSection {
		rows := make([]digestRow, 0, len(tasks))
		for _, t := range tasks {
			name := d.LeadNames[t.LeadID]
			if name == "" {
				name = fmt.Sprintf("lead #%d", t.LeadID)
			}
			rows = append(rows, digestRow{
				Priority:    t.Priority,
				Description: t.Description,
				LeadName:    name,
				DueDate:     t.DueDate,
			})
		}
		return digestSection{Title: title, Tasks: rows}
	}

	return TaskDigestEmailData{
		Counts: digestCounts{
			Pending:   d.Counts.Pending,
			Overdue:   d.Counts.Overdue,
			Completed: d.Counts.Completed,
		},
		Sections: []digestSection{
			section("Atrasadas", d.Groups.Overdue),
			section("Hoje", d.Groups.Today),
			section("Amanhã", d.Groups.Tomorrow),
			section("Próximas", d.Groups.Upcoming),
		},
	}
}

func render(name string, data any) (string, error) {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, name, data); err != nil {
		return "", fmt.Errorf("erro ao processar template %s: %w", name, err)
	}
	return body.String(), nil
}

// formatMoney: 15000 -> "$15,000".
func formatMoney(v float64) string {
	n := int64(v + 0.5)
	s := fmt.Sprintf("%d", n)
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	return "$" + string(out)
}
