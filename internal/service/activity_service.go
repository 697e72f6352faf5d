package service

import (
	"context"

	"github.com/bagdasarian/docspace-access/internal/domain"
)

// ActivityService уведомляет участников об изменениях команд, проектов и файлов.
type ActivityService interface {
	ScopeUpdated(ctx context.Context, actor domain.Principal, scope domain.Scope, scopeID string) (*FanoutResult, error)
	FileUpdated(ctx context.Context, actor domain.Principal, projectID, fileID, fileName string) (*FanoutResult, error)
}
