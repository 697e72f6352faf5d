package repository

import "errors"

var (
	// ErrNotFound - строка не найдена
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists - нарушено ограничение уникальности
	ErrAlreadyExists = errors.New("already exists")
)
