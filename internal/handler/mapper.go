package handler

import (
	"strings"

	"github.com/bagdasarian/docspace-access/internal/domain"
	"github.com/bagdasarian/docspace-access/internal/service"
)

func domainMembershipToHTTP(m *domain.Membership) MembershipResponse {
	return MembershipResponse{
		Scope:     m.Scope.String(),
		ScopeID:   m.ScopeID,
		UserID:    m.UserID,
		Role:      string(m.Role),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func domainMembersToHTTP(members []*domain.Member) []MemberResponse {
	out := make([]MemberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, MemberResponse{
			UserID: m.UserID,
			Name:   m.User.Name,
			Email:  m.User.Email,
			Role:   string(m.Role),
		})
	}
	return out
}

func domainPrincipalsToHTTP(principals []domain.Principal) []PrincipalResponse {
	out := make([]PrincipalResponse, 0, len(principals))
	for _, p := range principals {
		out = append(out, PrincipalResponse{
			UserID: p.ID,
			Name:   p.Name,
			Email:  p.Email,
		})
	}
	return out
}

func fanoutToHTTP(result *service.FanoutResult) FanoutResponse {
	return FanoutResponse{
		Notified:     result.Created(),
		EmailsFailed: result.EmailsFailed(),
	}
}

func httpCommentToDomain(authorID string, req CommentMentionsRequest) domain.Comment {
	return domain.Comment{
		ID:        req.CommentID,
		AuthorID:  authorID,
		FileID:    req.FileID,
		FileName:  req.FileName,
		ProjectID: req.ProjectID,
		Content:   req.Content,
		ParentID:  req.ParentID,
	}
}

// httpRoleToDomain только нормализует регистр, допустимость роли проверяет сервис.
func httpRoleToDomain(role string) domain.Role {
	return domain.Role(strings.ToUpper(strings.TrimSpace(role)))
}
