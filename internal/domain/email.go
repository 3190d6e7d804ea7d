package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// AssignmentEmailData holds data for the assignment notice email.
type AssignmentEmailData struct {
	Email     string
	StaffName string
	EventName string
	Role      string
	Date      string
	StartTime string
	EndTime   string
	Location  string
}

// UnassignmentEmailData holds data for the assignment-removed email.
type UnassignmentEmailData struct {
	Email     string
	StaffName string
	EventName string
	Role      string
	Date      string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendAssignmentNotice(ctx context.Context, data *AssignmentEmailData) error
	SendUnassignmentNotice(ctx context.Context, data *UnassignmentEmailData) error
}
