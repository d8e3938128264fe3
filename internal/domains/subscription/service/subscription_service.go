package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"bookcatalog-backend/internal/domains/subscription/model"
	"bookcatalog-backend/internal/domains/subscription/repository"
	"bookcatalog-backend/internal/infrastructure/sms"
)

const newBookMessageTemplate = `Новая книга "%s" от автора %s уже доступна в нашей библиотеке!`

type SubscriptionService struct {
	repo   repository.RepositoryInterface
	sender sms.Sender
}

func NewSubscriptionService(repo repository.RepositoryInterface, sender sms.Sender) *SubscriptionService {
	return &SubscriptionService{repo: repo, sender: sender}
}

// Subscribe registers a phone for an author's new-book notifications,
// attaching the account when the caller is logged in. It returns false
// without error when the phone is already subscribed, so a repeat subscribe
// is a harmless no-op.
func (s *SubscriptionService) Subscribe(ctx context.Context, authorID int64, phone string, userID *int64) (bool, error) {
	sub := &model.AuthorSubscription{
		AuthorID: authorID,
		UserID:   userID,
		Phone:    model.NormalizePhone(phone),
	}
	if err := sub.Validate(); err != nil {
		return false, fmt.Errorf("%w: %v", model.ErrInvalidPhone, err)
	}

	if _, err := s.repo.Create(ctx, sub); err != nil {
		if errors.Is(err, model.ErrAlreadySubscribed) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Unsubscribe removes a subscription; false means there was nothing to
// remove.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, authorID int64, phone string) (bool, error) {
	return s.repo.Delete(ctx, authorID, model.NormalizePhone(phone))
}

// NotifyAboutNewBook fans out SMS notifications to every subscriber of every
// author on the book. Delivery is strictly best-effort: a failed send is
// logged and the loop moves on, so one bad number never blocks the rest.
func (s *SubscriptionService) NotifyAboutNewBook(ctx context.Context, event model.NewBookEvent) error {
	if len(event.Authors) == 0 {
		log.Warn().Int64("book_id", event.BookID).Msg("new book has no authors, nothing to notify")
		return nil
	}

	for _, author := range event.Authors {
		subs, err := s.repo.FindByAuthorID(ctx, author.ID)
		if err != nil {
			log.Error().Err(err).
				Int64("book_id", event.BookID).
				Int64("author_id", author.ID).
				Msg("failed to load subscribers")
			continue
		}

		message := fmt.Sprintf(newBookMessageTemplate, event.Title, author.Name)
		for _, sub := range subs {
			if err := s.sender.Send(ctx, sub.Phone, message); err != nil {
				log.Warn().Err(err).
					Int64("book_id", event.BookID).
					Int64("author_id", author.ID).
					Str("phone", sub.Phone).
					Msg("failed to send new book notification")
				continue
			}
		}
	}

	return nil
}
