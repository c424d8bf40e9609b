package repository

// NotificationUnitOfWork 把通知、投递范围、附件的写入收拢到同一事务
type NotificationUnitOfWork interface {
	Transaction(fn func(repo NotificationRepository) error) error
}
