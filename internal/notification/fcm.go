package notification

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"gorm.io/gorm"

	"github.com/Pedrolamon/hairdayy-sub000/internal/logging"
	"github.com/Pedrolamon/hairdayy-sub000/internal/models"
)

// Notifier delivers a push to a user. Delivery is always best-effort:
// callers use Dispatch and never see errors.
type Notifier interface {
	Notify(ctx context.Context, userID uint, title, body string, data map[string]string) error
}

// FCMNotifier resolves the user's registered device token and pushes
// through Firebase Cloud Messaging.
type FCMNotifier struct {
	db     *gorm.DB
	client *messaging.Client
}

func NewFCMNotifier(ctx context.Context, db *gorm.DB, credentialsFile string) (*FCMNotifier, error) {
	opts := []option.ClientOption{}
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase messaging: %w", err)
	}

	return &FCMNotifier{db: db, client: client}, nil
}

func (n *FCMNotifier) Notify(ctx context.Context, userID uint, title, body string, data map[string]string) error {
	var user models.User
	if err := n.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		return fmt.Errorf("notify: user %d: %w", userID, err)
	}
	if user.DeviceToken == "" {
		return fmt.Errorf("notify: user %d has no device token", userID)
	}

	msg := &messaging.Message{
		Token: user.DeviceToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	_, err := n.client.Send(ctx, msg)
	return err
}

// Dispatch pushes and swallows any failure. Notification delivery never
// fails a booking or a payout.
func Dispatch(ctx context.Context, n Notifier, userID uint, title, body string, data map[string]string) {
	if n == nil {
		return
	}
	if err := n.Notify(ctx, userID, title, body, data); err != nil {
		logging.L().Warn("push notification failed",
			zap.Uint("user_id", userID),
			zap.String("title", title),
			zap.Error(err),
		)
	}
}
