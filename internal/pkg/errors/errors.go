package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrConflict используется для конфликтов конкурентного обновления
	// (например, параллельная отправка ответов с двух устройств).
	ErrConflict = errors.New("resource state conflict")

	// ErrUnavailable используется для временных сбоев хранилища или сети.
	// Движок не делает ретраев сам - политика повтора принадлежит вызывающему.
	ErrUnavailable = errors.New("store temporarily unavailable")

	// ErrAlreadySubmitted используется при повторной отправке той же анкеты
	// в пределах окна дедупликации.
	ErrAlreadySubmitted = errors.New("survey already submitted")
)
