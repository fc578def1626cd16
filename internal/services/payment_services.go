package services

import (
	"context"
	"errors"
	"fmt"
	"os"

	mt "github.com/stealclub21/final-exam-demo-project-lotr-webshop/external/midtrans"
	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/internal/model"
	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/internal/repository"

	"github.com/google/uuid"
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"go.uber.org/zap"
)

// PaymentService drives the gateway collaborator for finished orders.
// The engine only consumes the approved/declined outcome to set the
// order's payment status.
type PaymentService struct {
	Payments *repository.PaymentRepository
	Orders   *repository.OrderRepository
	Snap     *snap.Client
	Log      *zap.Logger
}

func NewPaymentService(pr *repository.PaymentRepository, or *repository.OrderRepository, snap *snap.Client, log *zap.Logger) *PaymentService {
	return &PaymentService{Payments: pr, Orders: or, Snap: snap, Log: log}
}

// CreatePayment opens a gateway transaction for a finished order and
// returns the redirect target for the customer.
func (s *PaymentService) CreatePayment(ctx context.Context, customerID, orderID int64) (string, error) {
	order, err := s.Orders.GetByID(ctx, orderID)
	if err != nil {
		return "", err
	}
	if order.CustomerID != customerID {
		return "", fmt.Errorf("order %d: %w", orderID, model.ErrNotOwner)
	}
	if order.OrderStatus != model.OrderStatusDone {
		return "", fmt.Errorf("pay for %s order: %w", order.OrderStatus, model.ErrInvalidTransition)
	}
	if order.PaymentStatus != model.PaymentStatusPending {
		return "", errors.New("order cannot be paid")
	}
	if existing, err := s.Payments.GetByOrderID(ctx, orderID); err != nil {
		return "", err
	} else if existing != nil && existing.PaymentStatus == model.PaymentStatusPending {
		return "", errors.New("payment already in progress")
	}

	externalRef := fmt.Sprintf("LOTR-%d-%s", orderID, uuid.NewString())
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  externalRef,
			GrossAmt: int64(order.TotalPrice),
		},
	}
	resp, snapErr := s.Snap.CreateTransaction(req)
	if snapErr != nil {
		return "", snapErr
	}

	if _, err := s.Payments.CreatePending(ctx, orderID, order.TotalPrice, "midtrans", externalRef); err != nil {
		return "", err
	}
	return resp.RedirectURL, nil
}

// PendingOrder returns the customer's most recent finished order still
// awaiting payment, the one CreatePayment would act on.
func (s *PaymentService) PendingOrder(ctx context.Context, customerID int64) (*model.Order, error) {
	return s.Orders.FindPendingPaymentOrder(ctx, customerID)
}

// HandleGatewayNotification processes a webhook delivery from the
// gateway. Repeat deliveries for an already settled order are ignored.
func (s *PaymentService) HandleGatewayNotification(ctx context.Context, payload map[string]interface{}) error {
	orderIDStr, ok := payload["order_id"].(string)
	if !ok {
		return errors.New("missing order_id")
	}
	var orderID int64
	if _, err := fmt.Sscanf(orderIDStr, "LOTR-%d-", &orderID); err != nil {
		return errors.New("invalid order reference")
	}

	statusCode, _ := payload["status_code"].(string)
	grossAmount, _ := payload["gross_amount"].(string)
	signature, _ := payload["signature_key"].(string)
	if !mt.VerifySignature(orderIDStr, statusCode, grossAmount, signature, os.Getenv("MIDTRANS_SERVER_KEY")) {
		return errors.New("invalid signature")
	}

	order, err := s.Orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.PaymentStatus != model.PaymentStatusPending {
		// already processed
		return nil
	}

	transactionStatus, _ := payload["transaction_status"].(string)
	fraudStatus, _ := payload["fraud_status"].(string)

	switch transactionStatus {
	case "settlement":
		return s.setOutcome(ctx, orderID, model.PaymentStatusApproved)
	case "capture":
		if fraudStatus == "accept" {
			return s.setOutcome(ctx, orderID, model.PaymentStatusApproved)
		}
	case "expire", "cancel", "deny":
		return s.setOutcome(ctx, orderID, model.PaymentStatusDeclined)
	}
	return nil
}

func (s *PaymentService) setOutcome(ctx context.Context, orderID int64, status string) error {
	tx, err := s.Payments.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if status == model.PaymentStatusApproved {
		if err := s.Payments.MarkApprovedTx(ctx, tx, orderID); err != nil {
			return err
		}
	} else {
		if err := s.Payments.MarkDeclinedTx(ctx, tx, orderID); err != nil {
			return err
		}
	}
	if err := s.Orders.SetPaymentStatusTx(ctx, tx, orderID, status); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	s.Log.Info("payment outcome recorded",
		zap.Int64("orderid", orderID),
		zap.String("status", status))
	return nil
}
