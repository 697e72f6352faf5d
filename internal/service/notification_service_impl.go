package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bagdasarian/docspace-access/internal/domain"
	"github.com/bagdasarian/docspace-access/internal/mailer"
	"github.com/bagdasarian/docspace-access/internal/metrics"
	"github.com/bagdasarian/docspace-access/internal/repository"
	"github.com/sirupsen/logrus"
)

type notificationService struct {
	notificationRepo repository.NotificationRepository
	mailer           Mailer
	templates        *mailer.Templates
	metrics          *metrics.Metrics
	log              *logrus.Logger
}

// NewNotificationService создает новый экземпляр NotificationService
func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	sender Mailer,
	templates *mailer.Templates,
	m *metrics.Metrics,
	log *logrus.Logger,
) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		mailer:           sender,
		templates:        templates,
		metrics:          m,
		log:              log,
	}
}

// outbound - подготовленное сообщение одному получателю. email == nil означает без письма.
type outbound struct {
	recipient    domain.Principal
	notification *domain.Notification
	email        func() (domain.Email, error)
}

// NotifyMention уведомляет упомянутых участников
func (s *notificationService) NotifyMention(ctx context.Context, author domain.Principal, recipients []domain.Principal, mention MentionContext) (*FanoutResult, error) {
	var messages []outbound
	for _, recipient := range audience(recipients, author.ID) {
		messages = append(messages, outbound{
			recipient: recipient,
			notification: &domain.Notification{
				UserID:  recipient.ID,
				Type:    domain.NotificationMention,
				Title:   "💬 New Mention",
				Content: fmt.Sprintf("%s mentioned you in a comment", author.DisplayName()),
				Link:    mailer.FilePath(mention.FileID),
			},
			email: func() (domain.Email, error) {
				return s.templates.Mention(recipient.Email, author, mention.ProjectName, mention.FileName, mention.FileID, mention.Content)
			},
		})
	}

	return s.deliver(ctx, messages)
}

// NotifyMembershipChange уведомляет об изменении состава или данных команды/проекта
func (s *notificationService) NotifyMembershipChange(ctx context.Context, event MembershipEvent) (*FanoutResult, error) {
	scope := event.Scope
	actorName := event.Actor.DisplayName()
	link := mailer.ScopePath(scope.Scope, scope.ID)

	var messages []outbound
	switch event.Kind {
	case MembershipAdded:
		for _, target := range audience([]domain.Principal{event.Target}, event.Actor.ID) {
			messages = append(messages, s.invitation(event.Actor, target, scope))
		}
		for _, member := range audience(event.Audience, event.Actor.ID, event.Target.ID) {
			messages = append(messages, outbound{
				recipient: member,
				notification: &domain.Notification{
					UserID:  member.ID,
					Type:    domain.NotificationMemberJoined,
					Title:   "👋 New Member",
					Content: fmt.Sprintf("%s joined the %s %q", event.Target.DisplayName(), scope.Scope, scope.Name),
					Link:    link,
				},
			})
		}

	case MembershipRemoved:
		for _, target := range audience([]domain.Principal{event.Target}, event.Actor.ID) {
			messages = append(messages, outbound{
				recipient: target,
				notification: &domain.Notification{
					UserID:  target.ID,
					Type:    domain.NotificationMemberRemoved,
					Title:   "🚪 Removed from " + capitalize(scope.Scope.String()),
					Content: fmt.Sprintf("%s removed you from the %s %q", actorName, scope.Scope, scope.Name),
				},
			})
		}

	case MembershipRoleUpdated:
		for _, target := range audience([]domain.Principal{event.Target}, event.Actor.ID) {
			messages = append(messages, outbound{
				recipient: target,
				notification: &domain.Notification{
					UserID:  target.ID,
					Type:    domain.NotificationRoleUpdated,
					Title:   "🔑 Role Updated",
					Content: fmt.Sprintf("%s changed your role in the %s %q to %s", actorName, scope.Scope, scope.Name, event.Role),
					Link:    link,
				},
			})
		}

	case ScopeUpdated:
		notificationType := domain.NotificationProjectUpdated
		if scope.Scope == domain.ScopeTeam {
			notificationType = domain.NotificationTeamUpdated
		}
		for _, member := range audience(event.Audience, event.Actor.ID) {
			messages = append(messages, outbound{
				recipient: member,
				notification: &domain.Notification{
					UserID:  member.ID,
					Type:    notificationType,
					Title:   fmt.Sprintf("⚙️ %s Updated", capitalize(scope.Scope.String())),
					Content: fmt.Sprintf("%s updated the %s %q", actorName, scope.Scope, scope.Name),
					Link:    link,
				},
				email: func() (domain.Email, error) {
					return s.templates.ScopeUpdate(member.Email, event.Actor, scope)
				},
			})
		}

	default:
		return nil, domain.NewBadRequestError(fmt.Sprintf("unknown membership event %q", event.Kind))
	}

	return s.deliver(ctx, messages)
}

// NotifyFileUpdate уведомляет участников проекта об изменении файла
func (s *notificationService) NotifyFileUpdate(ctx context.Context, actor domain.Principal, members []domain.Principal, file FileContext) (*FanoutResult, error) {
	var messages []outbound
	for _, member := range audience(members, actor.ID) {
		messages = append(messages, outbound{
			recipient: member,
			notification: &domain.Notification{
				UserID:  member.ID,
				Type:    domain.NotificationFileUpdated,
				Title:   "📝 File Updated",
				Content: fmt.Sprintf("%s updated %q in %q", actor.DisplayName(), file.FileName, file.ProjectName),
				Link:    mailer.FilePath(file.FileID),
			},
			email: func() (domain.Email, error) {
				return s.templates.FileUpdate(member.Email, actor, file.ProjectName, file.FileName, file.FileID)
			},
		})
	}

	return s.deliver(ctx, messages)
}

func (s *notificationService) invitation(actor, target domain.Principal, scope domain.ScopeInfo) outbound {
	notificationType := domain.NotificationProjectInvitation
	title := "📁 Added to Project"
	render := s.templates.ProjectInvitation
	if scope.Scope == domain.ScopeTeam {
		notificationType = domain.NotificationTeamInvitation
		title = "👥 Added to Team"
		render = s.templates.TeamInvitation
	}

	return outbound{
		recipient: target,
		notification: &domain.Notification{
			UserID:  target.ID,
			Type:    notificationType,
			Title:   title,
			Content: fmt.Sprintf("%s added you to the %s %q", actor.DisplayName(), scope.Scope, scope.Name),
			Link:    mailer.ScopePath(scope.Scope, scope.ID),
		},
		email: func() (domain.Email, error) {
			return render(target.Email, actor, scope)
		},
	}
}

// deliver обрабатывает получателей по одному. Ошибка одного получателя не мешает
// следующим. Ошибки писем только логируются, ошибки уведомлений собираются
// и возвращаются вместе после обработки всех получателей.
func (s *notificationService) deliver(ctx context.Context, messages []outbound) (*FanoutResult, error) {
	result := &FanoutResult{Deliveries: make([]Delivery, 0, len(messages))}
	var errs []error

	for _, msg := range messages {
		notification := msg.notification
		delivery := Delivery{Recipient: msg.recipient, Type: notification.Type}
		entry := s.log.WithFields(logrus.Fields{
			"recipient": msg.recipient.ID,
			"type":      notification.Type,
		})

		err := s.notificationRepo.Create(ctx, notification)
		s.metrics.Notification(string(notification.Type), err)
		if err != nil {
			delivery.NotificationErr = err
			errs = append(errs, fmt.Errorf("failed to create notification for user %s: %w", msg.recipient.ID, err))
			entry.WithError(err).Error("failed to create notification")
		} else {
			delivery.NotificationID = notification.ID
		}

		if msg.email != nil && msg.recipient.Email != "" && !msg.recipient.EmailOptOut {
			delivery.EmailErr = s.sendEmail(ctx, msg.email)
			delivery.EmailSent = delivery.EmailErr == nil
			s.metrics.Email(string(notification.Type), delivery.EmailErr)
			if delivery.EmailErr != nil {
				entry.WithError(delivery.EmailErr).Warn("failed to send notification email")
			}
		}

		result.Deliveries = append(result.Deliveries, delivery)
	}

	return result, errors.Join(errs...)
}

func (s *notificationService) sendEmail(ctx context.Context, render func() (domain.Email, error)) error {
	email, err := render()
	if err != nil {
		return err
	}
	return s.mailer.Send(ctx, email)
}

// audience убирает дубли по ID, пустые ID и исключенных пользователей, сохраняя порядок.
func audience(principals []domain.Principal, exclude ...string) []domain.Principal {
	skip := make(map[string]bool, len(principals)+len(exclude))
	for _, id := range exclude {
		skip[id] = true
	}

	var out []domain.Principal
	for _, p := range principals {
		if p.ID == "" || skip[p.ID] {
			continue
		}
		skip[p.ID] = true
		out = append(out, p)
	}
	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
