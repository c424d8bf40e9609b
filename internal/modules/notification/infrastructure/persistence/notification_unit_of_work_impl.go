package persistence

import (
	notificationRepository "OrgLink/internal/modules/notification/domain/repository"

	"gorm.io/gorm"
)

type notificationUnitOfWorkImpl struct {
	db *gorm.DB
}

func NewNotificationUnitOfWork(db *gorm.DB) notificationRepository.NotificationUnitOfWork {
	return &notificationUnitOfWorkImpl{db: db}
}

func (u *notificationUnitOfWorkImpl) Transaction(fn func(repo notificationRepository.NotificationRepository) error) error {
	return u.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewNotificationRepository(tx))
	})
}
