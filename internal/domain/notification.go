package domain

import "time"

type NotificationType string

const (
	NotificationMention           NotificationType = "MENTION"
	NotificationTeamInvitation    NotificationType = "TEAM_INVITATION"
	NotificationProjectInvitation NotificationType = "PROJECT_INVITATION"
	NotificationMemberJoined      NotificationType = "MEMBER_JOINED"
	NotificationMemberRemoved     NotificationType = "MEMBER_REMOVED"
	NotificationRoleUpdated       NotificationType = "ROLE_UPDATED"
	NotificationTeamUpdated       NotificationType = "TEAM_UPDATED"
	NotificationProjectUpdated    NotificationType = "PROJECT_UPDATED"
	NotificationFileUpdated       NotificationType = "FILE_UPDATED"
)

type Notification struct {
	ID        string
	UserID    string
	Type      NotificationType
	Title     string
	Content   string
	Link      string
	IsRead    bool
	CreatedAt time.Time
}

// Email - готовое к отправке письмо
type Email struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Comment - внешняя сущность, ядро читает только автора, проект и текст
type Comment struct {
	ID         string
	AuthorID   string
	FileID     string
	FileName   string
	ProjectID  string
	Content    string
	ParentID   *string
	IsResolved bool
}
