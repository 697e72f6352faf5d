package service

import (
	"context"

	"github.com/bagdasarian/docspace-access/internal/domain"
)

// Mailer - транспорт писем. Реализуется mailer.Sender.
type Mailer interface {
	Send(ctx context.Context, email domain.Email) error
}

// NotificationService рассылает уведомления: одно уведомление в приложении и
// не более одного письма на получателя. Действующий пользователь не уведомляется.
type NotificationService interface {
	NotifyMention(ctx context.Context, author domain.Principal, recipients []domain.Principal, mention MentionContext) (*FanoutResult, error)
	NotifyMembershipChange(ctx context.Context, event MembershipEvent) (*FanoutResult, error)
	NotifyFileUpdate(ctx context.Context, actor domain.Principal, audience []domain.Principal, file FileContext) (*FanoutResult, error)
}

// MentionContext - где было сделано упоминание
type MentionContext struct {
	ProjectID   string
	ProjectName string
	FileID      string
	FileName    string
	Content     string
}

type FileContext struct {
	ProjectID   string
	ProjectName string
	FileID      string
	FileName    string
}

type MembershipEventKind string

const (
	MembershipAdded       MembershipEventKind = "ADDED"
	MembershipRemoved     MembershipEventKind = "REMOVED"
	MembershipRoleUpdated MembershipEventKind = "ROLE_UPDATED"
	ScopeUpdated          MembershipEventKind = "SCOPE_UPDATED"
)

// MembershipEvent описывает изменение состава или данных команды/проекта.
// Target пуст для ScopeUpdated. Audience - текущие участники scope.
type MembershipEvent struct {
	Kind     MembershipEventKind
	Scope    domain.ScopeInfo
	Actor    domain.Principal
	Target   domain.Principal
	Role     domain.Role
	Audience []domain.Principal
}

// Delivery - результат доставки одному получателю
type Delivery struct {
	Recipient       domain.Principal
	Type            domain.NotificationType
	NotificationID  string
	NotificationErr error
	EmailSent       bool
	EmailErr        error
}

// FanoutResult перечисляет доставки в порядке обработки получателей.
type FanoutResult struct {
	Deliveries []Delivery
}

// Created - число созданных уведомлений
func (r *FanoutResult) Created() int {
	if r == nil {
		return 0
	}
	count := 0
	for _, d := range r.Deliveries {
		if d.NotificationErr == nil {
			count++
		}
	}
	return count
}

func (r *FanoutResult) EmailsFailed() int {
	if r == nil {
		return 0
	}
	count := 0
	for _, d := range r.Deliveries {
		if d.EmailErr != nil {
			count++
		}
	}
	return count
}
