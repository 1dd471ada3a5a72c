package handler

// Notification levels.
const (
	LevelSuccess = "success"
	LevelInfo    = "info"
	LevelError   = "error"
)

// Notification is the user-facing outcome attached to every mutating response
// and to every error.
type Notification struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

func Success(message string) Notification {
	return Notification{Level: LevelSuccess, Message: message}
}

func Info(message string) Notification {
	return Notification{Level: LevelInfo, Message: message}
}

func Failure(message string) Notification {
	return Notification{Level: LevelError, Message: message}
}

// messageResponse is returned by writes that carry no entity body.
type messageResponse struct {
	ID           string       `json:"id,omitempty"`
	Notification Notification `json:"notification"`
}

func done(message string) messageResponse {
	return messageResponse{Notification: Success(message)}
}

func created(id, message string) messageResponse {
	return messageResponse{ID: id, Notification: Success(message)}
}
