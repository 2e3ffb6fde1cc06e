package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"whenandwhere/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns a NotificationService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.NotificationService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendInvitation sends the "invitation" template to one invitee.
func (s *emailService) SendInvitation(ctx context.Context, data *domain.InvitationEmailData) error {
	if data == nil {
		return fmt.Errorf("invitation data is nil")
	}
	return s.send(ctx, "invitation", data.Email, data)
}

// SendOrganizerConfirmation sends the "organizer_confirmation" template to the organizer.
func (s *emailService) SendOrganizerConfirmation(ctx context.Context, data *domain.OrganizerConfirmationEmailData) error {
	if data == nil {
		return fmt.Errorf("organizer confirmation data is nil")
	}
	return s.send(ctx, "organizer_confirmation", data.Email, data)
}

// SendResponseNotification sends the "response_notification" template to the organizer.
func (s *emailService) SendResponseNotification(ctx context.Context, data *domain.ResponseNotificationEmailData) error {
	if data == nil {
		return fmt.Errorf("response notification data is nil")
	}
	return s.send(ctx, "response_notification", data.Email, data)
}

func (s *emailService) send(ctx context.Context, templateName, to string, data any) error {
	subject, htmlBody, textBody, err := s.renderer.Render(templateName, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", templateName, err)
	}
	if err := s.mailer.Send(ctx, to, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send %s email: %w", templateName, err)
	}
	s.logger.InfoContext(ctx, "email sent", "template", templateName, "to", to)
	return nil
}

// formatSlots renders the given slots for display, in the order of ids. Unknown ids are skipped.
func formatSlots(event *domain.Event, ids []string) []domain.FormattedSlot {
	out := make([]domain.FormattedSlot, 0, len(ids))
	for _, id := range ids {
		slot, ok := event.Slot(id)
		if !ok {
			continue
		}
		out = append(out, domain.FormattedSlot{ID: id, Label: formatSlot(slot)})
	}
	return out
}

func allSlotIDs(event *domain.Event) []string {
	ids := make([]string, len(event.DateSlots))
	for i, s := range event.DateSlots {
		ids[i] = s.ID
	}
	return ids
}

// formatSlot renders e.g. "Monday, March 10, 2025, 09:00 - 10:00".
func formatSlot(slot domain.DateSlot) string {
	label := slot.Date
	if d, err := time.Parse(domain.SlotDateLayout, slot.Date); err == nil {
		label = d.Format("Monday, January 2, 2006")
	}
	if slot.AllDay() {
		return label
	}
	return label + ", " + slot.StartTime + " - " + slot.EndTime
}

// linkBuilder builds the URLs placed in emails.
type linkBuilder struct {
	baseURL string
}

func newLinkBuilder(baseURL string) linkBuilder {
	return linkBuilder{baseURL: strings.TrimSuffix(baseURL, "/")}
}

func (l linkBuilder) response(eventID, attendeeID string) string {
	return l.baseURL + "/event-response/" + eventID + "/" + attendeeID
}

func (l linkBuilder) event(eventID string) string {
	return l.baseURL + "/my-events/" + eventID
}
