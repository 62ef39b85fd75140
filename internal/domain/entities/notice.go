package entities

import "time"

type NoticeLevel string

const (
	NoticeError   NoticeLevel = "error"
	NoticeWarning NoticeLevel = "warning"
	NoticeInfo    NoticeLevel = "info"
)

// Notice is an admin-only message, rendered on the settings page until cleared.
type Notice struct {
	Key      string // i18n message id
	Level    NoticeLevel
	RaisedAt time.Time
}
