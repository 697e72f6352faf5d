package handler

import "time"

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type AddMemberRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

type ChangeRoleRequest struct {
	Role string `json:"role"`
}

type MembershipResponse struct {
	Scope     string     `json:"scope"`
	ScopeID   string     `json:"scope_id"`
	UserID    string     `json:"user_id"`
	Role      string     `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type MemberResponse struct {
	UserID string `json:"user_id"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

type ListMembersResponse struct {
	Members []MemberResponse `json:"members"`
}

type PrincipalResponse struct {
	UserID string `json:"user_id"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email"`
}

type CommentMentionsRequest struct {
	CommentID string  `json:"comment_id"`
	ProjectID string  `json:"project_id"`
	FileID    string  `json:"file_id"`
	FileName  string  `json:"file_name"`
	Content   string  `json:"content"`
	ParentID  *string `json:"parent_id,omitempty"`
}

type CommentMentionsResponse struct {
	Mentioned []PrincipalResponse `json:"mentioned"`
}

type FileUpdateRequest struct {
	FileName string `json:"file_name"`
}

type FanoutResponse struct {
	Notified     int `json:"notified"`
	EmailsFailed int `json:"emails_failed"`
}
