package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// FormattedSlot is a slot prepared for display in an email.
type FormattedSlot struct {
	ID    string
	Label string
}

// InvitationEmailData holds data for the invitation sent to each invitee.
type InvitationEmailData struct {
	Email          string
	AttendeeName   string
	EventName      string
	Location       string
	Description    string
	Website        string
	OrganizerName  string
	OrganizerEmail string
	Language       string
	Slots          []FormattedSlot
	ResponseURL    string
}

// OrganizerConfirmationEmailData holds data for the confirmation sent after an event is created.
type OrganizerConfirmationEmailData struct {
	Email       string
	EventName   string
	Location    string
	Description string
	Website     string
	Language    string
	Slots       []FormattedSlot
	Attendees   []Invitee
	EventURL    string
}

// ResponseNotificationEmailData holds data for the organizer notice sent on every submission.
// Slots restates the attendee's full current availability.
type ResponseNotificationEmailData struct {
	Email        string
	EventName    string
	AttendeeName string
	Language     string
	Slots        []FormattedSlot
	EventURL     string
}

// NotificationService sends the domain-level emails.
type NotificationService interface {
	SendInvitation(ctx context.Context, data *InvitationEmailData) error
	SendOrganizerConfirmation(ctx context.Context, data *OrganizerConfirmationEmailData) error
	SendResponseNotification(ctx context.Context, data *ResponseNotificationEmailData) error
}
