package pincho_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	pincho "github.com/Pincho-App/pincho-go"
	"github.com/Pincho-App/pincho-go/pkg/apierr"
)

func ExampleNew() {
	client := pincho.New(os.Getenv("PINCHO_TOKEN"),
		pincho.WithTimeout(5*time.Second),
		pincho.WithMaxRetries(2),
		pincho.WithLogger(slog.Default()),
	)

	resp, err := client.Send(context.Background(), pincho.Notification{
		Title:   "Deploy finished",
		Message: "v2.4.1 is live",
		Tags:    []string{"deploys", "production"},
	})
	if err != nil {
		var apiErr *apierr.Error
		if errors.As(err, &apiErr) && apiErr.Kind == apierr.KindRateLimit {
			fmt.Println("rate limited, retry after", apiErr.RetryAfter)
		}
		return
	}
	fmt.Println(resp.Status)
}

func ExampleClient_Send_encrypted() {
	client := pincho.New(os.Getenv("PINCHO_TOKEN"))

	// The message is encrypted before it leaves the process; only the
	// mobile app holding the password can read it.
	_, err := client.Send(context.Background(), pincho.Notification{
		Title:    "Credentials rotated",
		Message:  "new API key: sk-...",
		Password: os.Getenv("PINCHO_MESSAGE_PASSWORD"),
	})
	if err != nil {
		fmt.Println(err)
	}
}

func ExampleClient_RateLimit() {
	client := pincho.New(os.Getenv("PINCHO_TOKEN"))

	if _, err := client.Send(context.Background(), pincho.Notification{
		Title:   "ping",
		Message: "pong",
	}); err != nil {
		return
	}

	if snap, ok := client.RateLimit(); ok {
		fmt.Printf("%d of %d requests left until %s\n",
			snap.Remaining, snap.Limit, snap.Reset.Format(time.RFC3339))
	}
}
