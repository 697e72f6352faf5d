package domain

import "fmt"

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Это позволяет использовать errors.Is()
func (e *DomainError) Is(target error) bool {
	if t, ok := target.(*DomainError); ok {
		return e.Code == t.Code
	}
	return false
}

const (
	CodeNotAMember         = "NOT_A_MEMBER"
	CodeInsufficientRole   = "INSUFFICIENT_ROLE"
	CodeTargetNotFound     = "TARGET_NOT_FOUND"
	CodeInvalidRole        = "INVALID_ROLE"
	CodeAlreadyMember      = "ALREADY_MEMBER"
	CodeLastAdminViolation = "LAST_ADMIN_VIOLATION"
	CodeNotFound           = "NOT_FOUND"
	CodeBadRequest         = "BAD_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
)

var (
	// ErrNotAMember - у пользователя нет членства в команде/проекте
	ErrNotAMember = &DomainError{
		Code:    CodeNotAMember,
		Message: "user is not a member of this scope",
	}

	// ErrInsufficientRole - роль пользователя ниже требуемой
	ErrInsufficientRole = &DomainError{
		Code:    CodeInsufficientRole,
		Message: "insufficient role for this operation",
	}

	// ErrTargetNotFound - изменяемое членство не существует
	ErrTargetNotFound = &DomainError{
		Code:    CodeTargetNotFound,
		Message: "member not found",
	}

	// ErrInvalidRole - роль не входит в шкалу данного scope
	ErrInvalidRole = &DomainError{
		Code:    CodeInvalidRole,
		Message: "invalid role",
	}

	// ErrAlreadyMember - пользователь уже состоит в команде/проекте
	ErrAlreadyMember = &DomainError{
		Code:    CodeAlreadyMember,
		Message: "user is already a member",
	}

	// ErrLastAdminViolation - операция оставила бы scope без администратора
	ErrLastAdminViolation = &DomainError{
		Code:    CodeLastAdminViolation,
		Message: "cannot remove the last admin",
	}

	// ErrNotFound - ресурс не найден
	ErrNotFound = &DomainError{
		Code:    CodeNotFound,
		Message: "resource not found",
	}
)

// NewNotFoundError создает ошибку NOT_FOUND с дополнительным контекстом
func NewNotFoundError(resource string) *DomainError {
	return &DomainError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewInvalidRoleError создает ошибку INVALID_ROLE с перечислением допустимых ролей
func NewInvalidRoleError(scope Scope, role Role) *DomainError {
	return &DomainError{
		Code:    CodeInvalidRole,
		Message: fmt.Sprintf("invalid %s role %q, must be one of %v", scope, role, scope.Roles()),
	}
}

// NewInsufficientRoleError создает ошибку INSUFFICIENT_ROLE с указанием требуемой роли
func NewInsufficientRoleError(scope Scope, required Role) *DomainError {
	return &DomainError{
		Code:    CodeInsufficientRole,
		Message: fmt.Sprintf("%s role %s or higher is required", scope, required),
	}
}

// NewNotAMemberError создает ошибку NOT_A_MEMBER для конкретного scope
func NewNotAMemberError(scope Scope) *DomainError {
	return &DomainError{
		Code:    CodeNotAMember,
		Message: fmt.Sprintf("access denied: not a %s member", scope),
	}
}

// NewLastAdminError различает понижение и удаление последнего администратора
func NewLastAdminError(scope Scope, removal bool) *DomainError {
	if removal {
		return &DomainError{
			Code:    CodeLastAdminViolation,
			Message: fmt.Sprintf("cannot remove the last admin from the %s", scope),
		}
	}
	return &DomainError{
		Code:    CodeLastAdminViolation,
		Message: "cannot remove admin role from the last admin",
	}
}

// NewBadRequestError создает ошибку BAD_REQUEST
func NewBadRequestError(message string) *DomainError {
	return &DomainError{
		Code:    CodeBadRequest,
		Message: message,
	}
}

// NewInvalidScopeError - запрос адресован неизвестному виду scope
func NewInvalidScopeError(scope Scope) *DomainError {
	return NewBadRequestError(fmt.Sprintf("unknown scope %q", scope))
}
