package service

import (
	"context"
	"fmt"

	"github.com/bagdasarian/docspace-access/internal/domain"
	"github.com/bagdasarian/docspace-access/internal/repository"
	"github.com/sirupsen/logrus"
)

// recordActivity пишет запись журнала. Как и рассылка, журнал не влияет на результат операции:
// ошибка записи только логируется.
func recordActivity(ctx context.Context, repo repository.ActivityRepository, log logrus.FieldLogger, activity domain.Activity) {
	if err := repo.Create(ctx, &activity); err != nil {
		log.WithError(err).WithFields(logrus.Fields{
			"action":   activity.Action,
			"scope":    activity.Scope,
			"scope_id": activity.ScopeID,
		}).Warn("activity log entry not written")
	}
}

func membershipActivity(kind MembershipEventKind, actor domain.Principal, scope domain.Scope, scopeID string, target domain.Principal, role domain.Role) domain.Activity {
	activity := domain.Activity{Scope: scope, ScopeID: scopeID, UserID: actor.ID}
	name := target.DisplayName()
	if name == "" {
		name = target.ID
	}

	switch kind {
	case MembershipAdded:
		activity.Action = domain.ActivityMemberAdded
		activity.Details = fmt.Sprintf("Added %s to the %s", name, scope)
	case MembershipRoleUpdated:
		activity.Action = domain.ActivityRoleUpdated
		activity.Details = fmt.Sprintf("Changed %s's role to %s", name, role)
	case MembershipRemoved:
		activity.Action = domain.ActivityMemberRemoved
		activity.Details = fmt.Sprintf("Removed %s from the %s", name, scope)
	}
	return activity
}

func scopeUpdatedActivity(actor domain.Principal, scope domain.Scope, scopeID string) domain.Activity {
	action := domain.ActivityProjectUpdated
	if scope == domain.ScopeTeam {
		action = domain.ActivityTeamUpdated
	}
	return domain.Activity{
		Scope:   scope,
		ScopeID: scopeID,
		UserID:  actor.ID,
		Action:  action,
		Details: fmt.Sprintf("Updated %s settings", scope),
	}
}
