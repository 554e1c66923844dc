package document

import (
	"context"
	"errors"
	"net/http"
	"time"

	"hrconnect/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrDocumentNotFound = apperror.New(
	apperror.CodeNotFound,
	"Document not found",
	http.StatusNotFound,
)

//go:generate mockgen -source=document_service.go -destination=mock/document_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, uploaderID string, req CreateDocumentRequest) (DocumentResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]DocumentResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("document.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("document.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, uploaderID string, req CreateDocumentRequest) (DocumentResponse, error) {
	empUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return DocumentResponse{}, apperror.InvalidField("employee_id")
	}

	d := &Document{
		ID:          uuid.New(),
		EmployeeID:  empUUID,
		Title:       req.Title,
		Category:    req.Category,
		StorageKey:  req.StorageKey,
		ContentType: req.ContentType,
		SizeBytes:   req.SizeBytes,
	}
	if uploaderUUID, err := uuid.Parse(uploaderID); err == nil {
		d.UploadedBy = uploaderUUID
	}

	if err := s.repo.Create(ctx, d); err != nil {
		s.logger.Error("create document failed", zap.Error(err))
		return DocumentResponse{}, err
	}
	s.logger.Info("document created",
		zap.String("employee_id", req.EmployeeID),
		zap.String("storage_key", req.StorageKey),
	)
	return mapToResponse(*d), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]DocumentResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, apperror.InvalidField("employee_id")
	}
	rows, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	resp := make([]DocumentResponse, len(rows))
	for i, d := range rows {
		resp[i] = mapToResponse(d)
	}
	return resp, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDocumentNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

func mapToResponse(d Document) DocumentResponse {
	return DocumentResponse{
		ID:          d.ID.String(),
		EmployeeID:  d.EmployeeID.String(),
		Title:       d.Title,
		Category:    d.Category,
		StorageKey:  d.StorageKey,
		ContentType: d.ContentType,
		SizeBytes:   d.SizeBytes,
		CreatedAt:   d.CreatedAt.Format(time.RFC3339),
	}
}
