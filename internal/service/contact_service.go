package service

import (
	"context"
	"strings"

	"workspacebcn/internal/apierror"
	"workspacebcn/internal/dto"
	"workspacebcn/internal/model"
	"workspacebcn/internal/repository"
)

// ContactService persists messages from the public contact form.
type ContactService interface {
	Submit(ctx context.Context, req dto.ContactRequest) error
}

type contactService struct {
	repo repository.ContactRepository
}

func NewContactService(repo repository.ContactRepository) ContactService {
	return &contactService{repo: repo}
}

func (s *contactService) Submit(ctx context.Context, req dto.ContactRequest) error {
	if strings.TrimSpace(req.Name) == "" ||
		strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.Subject) == "" ||
		strings.TrimSpace(req.Message) == "" {
		return apierror.BadRequest("Nombre, email, asunto y mensaje son obligatorios")
	}

	return s.repo.Create(ctx, &model.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	})
}
