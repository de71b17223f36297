package usecase

import (
	"context"
	"fmt"
	"strings"

	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/pkg/apperror"
	"go-portfolio-backend/pkg/email"
)

// Mailer delivers contact form messages
type Mailer interface {
	IsConfigured() bool
	SendContactEmail(data email.ContactEmailData) error
}

type contactUsecase struct {
	mailer Mailer
}

// NewContactUsecase creates a new contact usecase
func NewContactUsecase(mailer Mailer) domain.ContactUsecase {
	return &contactUsecase{mailer: mailer}
}

// SendContactMessage validates the contact request and sends the email
func (uc *contactUsecase) SendContactMessage(ctx context.Context, req *domain.ContactRequest) error {
	data := email.ContactEmailData{
		SenderName:  strings.TrimSpace(req.Name),
		SenderEmail: strings.TrimSpace(req.Email),
		Subject:     strings.TrimSpace(req.Subject),
		Message:     strings.TrimSpace(req.Message),
	}

	// Binding accepts whitespace-only values
	fields := map[string]string{}
	if data.SenderName == "" {
		fields["name"] = "Name is required"
	}
	if data.SenderEmail == "" {
		fields["email"] = "Email is required"
	}
	if data.Subject == "" {
		fields["subject"] = "Subject is required"
	}
	if data.Message == "" {
		fields["message"] = "Message is required"
	}
	// Name, email and subject end up in mail headers
	for field, value := range map[string]string{"name": data.SenderName, "email": data.SenderEmail, "subject": data.Subject} {
		if strings.ContainsAny(value, "\r\n") {
			fields[field] = "Must be a single line"
		}
	}
	if len(fields) > 0 {
		return apperror.Validation(fields)
	}

	if !uc.mailer.IsConfigured() {
		return apperror.ServiceUnavailable("The contact form is currently unavailable", domain.ErrMailNotConfigured)
	}

	if err := uc.mailer.SendContactEmail(data); err != nil {
		return apperror.Internal(fmt.Errorf("failed to send contact email: %w", err))
	}
	return nil
}
