package pincho

import (
	"github.com/Pincho-App/pincho-go/pkg/msgcrypto"
	"github.com/Pincho-App/pincho-go/pkg/tags"
)

// Notification is one push message to deliver via Send.
type Notification struct {
	Title   string
	Message string

	// Type selects the notification category; empty uses the service
	// default.
	Type string

	// Tags are normalized (lowercased, trimmed, deduplicated, stripped to
	// [a-z0-9_-]) before the request is built.
	Tags []string

	ImageURL  string
	ActionURL string

	// Password, when set, encrypts Message for the mobile app before it
	// leaves the process. The service receives only the ciphertext and the
	// IV and forwards both to the decrypting device.
	Password string
}

type sendBody struct {
	Title     string   `json:"title"`
	Message   string   `json:"message"`
	Type      string   `json:"type,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	ImageURL  string   `json:"imageURL,omitempty"`
	ActionURL string   `json:"actionURL,omitempty"`
	IV        string   `json:"iv,omitempty"`
}

type notifaiBody struct {
	Text string `json:"text"`
	Type string `json:"type,omitempty"`
}

// SendResponse is the service's reply to a delivered notification.
type SendResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// NotifaiResponse is the service's reply to a Notifai request. Notification
// is present when the service composed one from the prompt.
type NotifaiResponse struct {
	Status       string               `json:"status"`
	Message      string               `json:"message"`
	Notification *NotifaiNotification `json:"notification,omitempty"`
}

// NotifaiNotification is the notification the service composed and
// delivered on the caller's behalf.
type NotifaiNotification struct {
	Title     string   `json:"title"`
	Message   string   `json:"message"`
	Type      string   `json:"type"`
	ActionURL string   `json:"actionURL,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

// body builds the wire payload, encrypting the message when a password is
// present.
func (n Notification) body() (sendBody, error) {
	b := sendBody{
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type,
		Tags:      tags.Normalize(n.Tags),
		ImageURL:  n.ImageURL,
		ActionURL: n.ActionURL,
	}

	if n.Password != "" {
		iv, err := msgcrypto.NewIV()
		if err != nil {
			return sendBody{}, err
		}
		ciphertext, err := msgcrypto.Encrypt(n.Message, n.Password, iv)
		if err != nil {
			return sendBody{}, err
		}
		b.Message = ciphertext
		b.IV = msgcrypto.IVHex(iv)
	}

	return b, nil
}
