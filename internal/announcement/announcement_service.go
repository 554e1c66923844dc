package announcement

import (
	"context"
	"errors"
	"net/http"
	"time"

	"hrconnect/internal/shared/apperror"
	"hrconnect/internal/shared/timeutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrAnnouncementNotFound = apperror.New(
	apperror.CodeNotFound,
	"Announcement not found",
	http.StatusNotFound,
)

//go:generate mockgen -source=announcement_service.go -destination=mock/announcement_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, authorID string, req CreateAnnouncementRequest) (AnnouncementResponse, error)
	GetAll(ctx context.Context) ([]AnnouncementResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("announcement.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("announcement.service")
	}
	return &service{repo: repo, now: time.Now, logger: l}
}

func (s *service) Create(ctx context.Context, authorID string, req CreateAnnouncementRequest) (AnnouncementResponse, error) {
	a := &Announcement{
		ID:          uuid.New(),
		Title:       req.Title,
		Body:        req.Body,
		PublishedOn: s.now().UTC(),
	}
	if authorUUID, err := uuid.Parse(authorID); err == nil {
		a.CreatedBy = authorUUID
	}

	if err := s.repo.Create(ctx, a); err != nil {
		s.logger.Error("create announcement failed", zap.Error(err))
		return AnnouncementResponse{}, err
	}
	s.logger.Info("announcement created", zap.String("title", req.Title))
	return mapToResponse(*a), nil
}

func (s *service) GetAll(ctx context.Context) ([]AnnouncementResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]AnnouncementResponse, len(rows))
	for i, a := range rows {
		resp[i] = mapToResponse(a)
	}
	return resp, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAnnouncementNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

func mapToResponse(a Announcement) AnnouncementResponse {
	return AnnouncementResponse{
		ID:          a.ID.String(),
		Title:       a.Title,
		Body:        a.Body,
		PublishedOn: a.PublishedOn.Format(timeutil.DateLayout),
	}
}
