package services

import (
	"context"
	"fmt"
	"log"

	"mediastaffing/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendAssignmentNotice sends an assignment confirmation using the "assignment" template.
func (s *emailService) SendAssignmentNotice(ctx context.Context, data *domain.AssignmentEmailData) error {
	if data == nil {
		return fmt.Errorf("assignment email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("assignment", data)
	if err != nil {
		return fmt.Errorf("failed to render assignment template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send assignment email: %w", err)
	}
	log.Printf("[EMAIL] Assignment notice sent to %s", data.Email)
	return nil
}

// SendUnassignmentNotice sends a cancellation notice using the "unassignment" template.
func (s *emailService) SendUnassignmentNotice(ctx context.Context, data *domain.UnassignmentEmailData) error {
	if data == nil {
		return fmt.Errorf("unassignment email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("unassignment", data)
	if err != nil {
		return fmt.Errorf("failed to render unassignment template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send unassignment email: %w", err)
	}
	log.Printf("[EMAIL] Unassignment notice sent to %s", data.Email)
	return nil
}
