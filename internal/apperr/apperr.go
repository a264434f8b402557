// Package apperr carries the error taxonomy the HTTP boundary maps to
// {message, code} responses. Services construct these; handlers never
// invent status codes on their own.
package apperr

import "net/http"

type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

func New(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

func MissingFields(message string) *Error {
	return New(http.StatusBadRequest, "MISSING_FIELDS", message)
}

func Validation(message string) *Error {
	return New(http.StatusBadRequest, "VALIDATION_ERROR", message)
}

func UserExists() *Error {
	return New(http.StatusConflict, "USER_EXISTS", "This email is already registered")
}

func InvalidPreference() *Error {
	return New(http.StatusBadRequest, "INVALID_PREFERENCE", "One or more selected preferences are invalid")
}

func InvalidCredentials() *Error {
	return New(http.StatusBadRequest, "INVALID_CREDENTIALS", "Invalid credentials")
}

func InvalidCategory() *Error {
	return New(http.StatusBadRequest, "INVALID_CATEGORY", "Invalid category")
}

func ArticleNotFound() *Error {
	return New(http.StatusNotFound, "ARTICLE_NOT_FOUND", "Article not found")
}

func UserNotFound() *Error {
	return New(http.StatusNotFound, "USER_NOT_FOUND", "User not found")
}

func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, "UNAUTHORIZED", message)
}

func Forbidden(message string) *Error {
	return New(http.StatusForbidden, "FORBIDDEN", message)
}

func Server() *Error {
	return New(http.StatusInternalServerError, "SERVER_ERROR", "internal server error")
}
