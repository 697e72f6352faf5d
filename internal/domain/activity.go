package domain

import "time"

type ActivityAction string

const (
	ActivityMemberAdded    ActivityAction = "MEMBER_ADDED"
	ActivityMemberRemoved  ActivityAction = "MEMBER_REMOVED"
	ActivityRoleUpdated    ActivityAction = "ROLE_UPDATED"
	ActivityTeamUpdated    ActivityAction = "TEAM_UPDATED"
	ActivityProjectUpdated ActivityAction = "PROJECT_UPDATED"
	ActivityFileUpdated    ActivityAction = "FILE_UPDATED"
	ActivityCommentAdded   ActivityAction = "COMMENT_ADDED"
)

// Activity - запись журнала действий команды или проекта.
// FileID заполняется только для действий с файлами и комментариями.
type Activity struct {
	ID        string
	Scope     Scope
	ScopeID   string
	FileID    string
	UserID    string
	Action    ActivityAction
	Details   string
	CreatedAt time.Time
}
