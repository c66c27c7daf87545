// Package response defines the envelope shared by every HTTP body.
package response

import (
	"github.com/labstack/echo/v4"
)

// Envelope is embedded at the top of every response body. The frontend
// keys on the ok flag and message, not on the HTTP status line.
type Envelope struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// Success returns the envelope for a successful body.
func Success() Envelope {
	return Envelope{OK: true}
}

// SuccessMessage returns a successful envelope carrying a message.
func SuccessMessage(message string) Envelope {
	return Envelope{OK: true, Message: message}
}

// Fail writes a bare failure body with the given HTTP status.
func Fail(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, Envelope{OK: false, Message: message})
}
