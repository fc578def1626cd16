package services

import (
	"context"

	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/internal/model"

	"go.uber.org/zap"
)

// LogNotifier is the Notifier used when no mail provider is configured.
// It writes the notification to the log instead of sending anything.
type LogNotifier struct {
	Log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{Log: log}
}

func (n *LogNotifier) NotifyPremiumPromotion(ctx context.Context, c *model.Customer) error {
	n.Log.Info("premium promotion notification (mail disabled)",
		zap.Int64("customerid", c.CustomerID),
		zap.String("email", c.Email))
	return nil
}

func (n *LogNotifier) SendConfirmation(ctx context.Context, email, confirmURL string) error {
	n.Log.Info("confirmation mail (mail disabled)",
		zap.String("email", email),
		zap.String("confirm_url", confirmURL))
	return nil
}
