package clients

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"gente-backend/shared/database/models/notification"
)

// NotificationClient talks to the notification service over the gateway.
type NotificationClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewNotificationClient creates a client pointed at the given base URL
// (normally the API gateway).
func NewNotificationClient(baseURL string) *NotificationClient {
	return &NotificationClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// PasswordResetEmailRequest is the payload for the reset email endpoint.
type PasswordResetEmailRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Token string `json:"token"`
}

// AdminEventRequest is the payload for publishing an admin notification.
type AdminEventRequest struct {
	Type     string                         `json:"type"`
	Level    notification.NotificationLevel `json:"level"`
	Title    string                         `json:"title"`
	Message  string                         `json:"message"`
	Entity   string                         `json:"entity,omitempty"`
	EntityID *uint                          `json:"entity_id,omitempty"`
}

// SendPasswordResetEmail asks the notification service to deliver the reset
// link to the account owner.
func (nc *NotificationClient) SendPasswordResetEmail(to, name, token string) error {
	request := PasswordResetEmailRequest{
		Email: to,
		Name:  name,
		Token: token,
	}
	return nc.post("/api/notifications/email/password-reset", request)
}

// PublishAdminEvent persists an admin notification and pushes it to
// connected dashboard clients.
func (nc *NotificationClient) PublishAdminEvent(event AdminEventRequest) error {
	return nc.post("/api/notifications/events", event)
}

func (nc *NotificationClient) post(endpoint string, payload interface{}) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s%s", nc.baseURL, endpoint)
	resp, err := nc.httpClient.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("notification service returned status: %d", resp.StatusCode)
	}

	return nil
}
