package models

import "time"

// TranslationType источник перевода
type TranslationType string

const (
	TranslationVoice  TranslationType = "voice"
	TranslationText   TranslationType = "text"
	TranslationCamera TranslationType = "camera"
)

// GuestUserID владелец записей истории без вошедшего пользователя
const GuestUserID = "guest"

// HistoryEntry одна запись журнала переводов
type HistoryEntry struct {
	ID             string          `json:"id"`
	UserID         string          `json:"userId"`
	Original       string          `json:"original"`
	Translated     string          `json:"translated"`
	SourceLanguage string          `json:"sourceLanguage"`
	TargetLanguage string          `json:"targetLanguage"`
	Type           TranslationType `json:"type"`
	Timestamp      time.Time       `json:"timestamp"`
}
