package notification

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"

	"frontdesk/models"
	"frontdesk/utils"
)

// Notifier pushes dispatcher-facing alerts. Failures are the caller's to
// swallow; a missed push never fails a turn.
type Notifier interface {
	NotifyEscalation(ctx context.Context, tenant *models.Tenant, sess *models.Session, slotID string) error
	NotifyBooking(ctx context.Context, tenant *models.Tenant, record models.BookingRecord) error
}

// FCMNotifier sends pushes to the tenant's dispatcher device.
type FCMNotifier struct{}

func NewFCMNotifier() *FCMNotifier { return &FCMNotifier{} }

func (n *FCMNotifier) NotifyEscalation(ctx context.Context, tenant *models.Tenant, sess *models.Session, slotID string) error {
	body := fmt.Sprintf("Caller on session %s needs a human; could not collect %q.", sess.ID, slotID)
	return n.send(ctx, tenant, "Caller needs help", body, map[string]string{
		"type":      "escalation",
		"sessionId": sess.ID,
		"slotId":    slotID,
		"channel":   sess.Channel,
	})
}

func (n *FCMNotifier) NotifyBooking(ctx context.Context, tenant *models.Tenant, record models.BookingRecord) error {
	body := fmt.Sprintf("%s, %s, %s", record.Name, record.Phone, record.TimeWindow)
	if record.ASAP {
		body = fmt.Sprintf("%s, %s, ASAP", record.Name, record.Phone)
	}
	return n.send(ctx, tenant, "New booking "+record.CaseID, body, map[string]string{
		"type":    "booking",
		"caseId":  record.CaseID,
		"channel": record.Channel,
	})
}

func (n *FCMNotifier) send(ctx context.Context, tenant *models.Tenant, title, body string, data map[string]string) error {
	if utils.FCMClient == nil {
		return fmt.Errorf("fcm client not initialized")
	}
	token := tenant.DispatcherFCMToken
	if token == "" {
		return fmt.Errorf("tenant %s has no dispatcher FCM token", tenant.ID)
	}

	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "dispatch",
				Sound:     "default",
			},
		},
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send FCM message: %w", err)
	}
	return nil
}

// NopNotifier is used when Firebase is not configured.
type NopNotifier struct{}

func (NopNotifier) NotifyEscalation(context.Context, *models.Tenant, *models.Session, string) error {
	return nil
}

func (NopNotifier) NotifyBooking(context.Context, *models.Tenant, models.BookingRecord) error {
	return nil
}
