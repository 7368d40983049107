package models

const (
	DefaultTheme    = "light"
	DefaultLanguage = "en"
)

type UserSettings struct {
	ID                   int    `json:"id"`
	UserID               int    `json:"user_id"`
	ReceiveNotifications bool   `json:"receive_notifications"`
	Theme                string `json:"theme"`
	Language             string `json:"language"`
}

type UpdateSettingsRequest struct {
	ReceiveNotifications *bool   `json:"receive_notifications"`
	Theme                *string `json:"theme"`
	Language             *string `json:"language"`
}
