package services

import (
	"bazaar/internal/domain"
	"bazaar/internal/repos"
)

type NotificationService struct {
	Repo *repos.NotificationRepo
}

func NewNotificationService(r *repos.NotificationRepo) *NotificationService {
	return &NotificationService{Repo: r}
}

func (s *NotificationService) List(userID string) ([]domain.Notification, error) {
	return s.Repo.List(userID)
}

func (s *NotificationService) CountUnread(userID string) (int, error) {
	return s.Repo.CountUnread(userID)
}

// MarkRead flips is_read; only the recipient may do so.
func (s *NotificationService) MarkRead(userID, notificationID string) error {
	ok, err := s.Repo.MarkRead(notificationID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}
