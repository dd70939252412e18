package api

import (
	"time"
)

type (
	MessageRequestData struct {
		UID              string    `json:"uid"`
		EncryptedData    string    `json:"encryptedData"`
		ExpiresAt        time.Time `json:"expiresAt"`
		BurnAfterReading bool      `json:"burnAfterReading"`
	}
	MessageResponseData struct {
		EncryptedData    string    `json:"encryptedData"`
		ExpiresAt        time.Time `json:"expiresAt"`
		BurnAfterReading bool      `json:"burnAfterReading"`
	}
	StatusResponseData struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	HealthResponseData struct {
		Status    string    `json:"status"`
		Timestamp time.Time `json:"timestamp"`
	}
)
