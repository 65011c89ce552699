// Package errors содержит общие доменные ошибки приложения
// и утилиты для error wrapping.
//
// Сервисный слой возвращает ровно четыре вида ошибок: ErrNotFound, ErrConflict,
// ErrUnauthorized и ErrInternal. Остальные ошибки используются repository и api слоями
// и маппятся на HTTP-статусы в api слое.
package errors

import (
	"errors"
)

var (
	// Ресурс не найден
	ErrNotFound = errors.New("not found")
	// Конфликт (email уже зарегистрирован)
	ErrConflict = errors.New("conflict")
	// Неавторизован (неверные учётные данные или токен)
	ErrUnauthorized = errors.New("unauthorized")
	// Получена непредвиденная ошибка
	ErrInternal = errors.New("internal error")
)

// ошибки repository и api слоёв
var (
	// Нарушение уникальности в хранилище
	ErrAlreadyExists = errors.New("already exists")
	// Входные данные невалидны (пустые поля)
	ErrInvalidInput = errors.New("invalid input")
	// Полученные JSON данные с ошибками
	ErrBadJSON = errors.New("bad json")
	// ожидаемая ошибка
	ErrExpectedError = errors.New("expected error")
)

// Безопасные сообщения, которые можно отдавать клиенту.
const (
	MsgUserNotFound       = "user not found"
	MsgEmailRegistered    = "email already registered"
	MsgInvalidCredentials = "invalid email or password"
	MsgInternal           = "internal error"
)

// Error — ошибка сервисного слоя.
//
// Kind — один из ErrNotFound/ErrConflict/ErrUnauthorized/ErrInternal,
// Op — имя операции ("error creating user"),
// Msg — безопасное сообщение для клиента,
// Err — исходная ошибка (может быть nil).
type Error struct {
	Kind error
	Op   string
	Msg  string
	Err  error
}

// Error возвращает "<op>: <исходное сообщение>".
// Для бизнес-ошибок без исходной ошибки используется Msg.
func (e *Error) Error() string {
	text := e.Msg
	if e.Err != nil {
		text = e.Err.Error()
	}
	if e.Op == "" {
		return text
	}
	return e.Op + ": " + text
}

// Unwrap позволяет errors.Is находить и вид ошибки, и исходную ошибку.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NotFound создаёт ошибку вида ErrNotFound.
func NotFound(op string) *Error {
	return &Error{Kind: ErrNotFound, Op: op, Msg: MsgUserNotFound}
}

// Conflict создаёт ошибку вида ErrConflict.
func Conflict(op string) *Error {
	return &Error{Kind: ErrConflict, Op: op, Msg: MsgEmailRegistered}
}

// Unauthorized создаёт ошибку вида ErrUnauthorized.
//
// Сообщение всегда одно и то же, чтобы не раскрывать существование email.
func Unauthorized() *Error {
	return &Error{Kind: ErrUnauthorized, Msg: MsgInvalidCredentials}
}

// Internal оборачивает ошибку хранилища с именем операции.
func Internal(op string, err error) *Error {
	return &Error{Kind: ErrInternal, Op: op, Msg: MsgInternal, Err: err}
}

// SafeMessage возвращает сообщение, которое можно показать клиенту.
func SafeMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Msg != "" {
		return e.Msg
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return MsgUserNotFound
	case errors.Is(err, ErrConflict), errors.Is(err, ErrAlreadyExists):
		return MsgEmailRegistered
	case errors.Is(err, ErrUnauthorized):
		return MsgInvalidCredentials
	}
	return MsgInternal
}
