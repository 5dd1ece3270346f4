package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidState используется, когда операция недопустима в текущем статусе сущности
	// (например, повторная отправка уже завершенной игры).
	ErrInvalidState = errors.New("invalid state")

	// ErrUnauthorized используется для ошибок авторизации (неверный токен, неверный пароль).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden используется, когда у пользователя недостаточно прав для действия.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrExpiredToken используется, когда токен администратора истек.
	ErrExpiredToken = errors.New("token is expired")

	// ErrConflict используется для конфликтов уникальности (например, имя категории уже занято).
	ErrConflict = errors.New("resource state conflict")
)
