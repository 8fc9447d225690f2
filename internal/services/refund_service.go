package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"CoffeeStoreAPI/internal/model"
	"CoffeeStoreAPI/internal/repository"
)

// RefundWindow is the eligibility period after an order's date.
const RefundWindow = 30 * 24 * time.Hour

// RefundService validates and stores refund requests and applies the
// manager's decision: approval restores stock and both outcomes notify
// the order's owner.
type RefundService struct {
	Refunds RefundStore
	Orders  OrderStore
	Users   UserDirectory
	Mailer  EmailSender

	Now func() time.Time
}

func NewRefundService(refunds RefundStore, orders OrderStore, users UserDirectory, mailer EmailSender) *RefundService {
	return &RefundService{
		Refunds: refunds,
		Orders:  orders,
		Users:   users,
		Mailer:  mailer,
		Now:     time.Now,
	}
}

// Request validates eligibility in order, first failure wins, then
// stores a pending refund. The amount is computed from the order's
// frozen unit price, not the current catalog price.
func (s *RefundService) Request(ctx context.Context, userID, orderID, productID int64, qty int) (*model.Refund, error) {
	order, err := s.Orders.GetOrderByID(ctx, orderID)
	if err != nil || order.UserID != userID {
		return nil, ErrUnauthorized
	}
	if order.Status != model.StatusDelivered {
		return nil, ErrRefundNotEligible
	}
	if s.Now().Sub(order.Date) > RefundWindow {
		return nil, ErrRefundPeriodExpired
	}

	var line *model.OrderItem
	for i := range order.Items {
		if order.Items[i].ProductID == productID {
			line = &order.Items[i]
			break
		}
	}
	if line == nil || qty < 1 || line.Quantity < qty {
		return nil, ErrInvalidProductOrQuantity
	}

	exists, err := s.Refunds.Exists(ctx, productID, orderID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateRefundRequest
	}

	amount := RefundAmount(line.UnitPrice, qty)
	refundID, err := s.Refunds.Create(ctx, productID, qty, orderID, amount)
	if err != nil {
		return nil, fmt.Errorf("store refund request: %w", err)
	}

	return &model.Refund{
		RefundID:  refundID,
		OrderID:   orderID,
		ProductID: productID,
		Quantity:  qty,
		Status:    model.RefundPending,
		Amount:    amount,
	}, nil
}

// Decide applies the manager decision exactly once: the status flip is
// conditional on the row still being pending, so a second decision
// fails instead of double-restocking. Approval restores stock in the
// same transaction as the flip.
func (s *RefundService) Decide(ctx context.Context, refundID int64, decision string) (model.RefundStatus, error) {
	status, ok := model.ParseRefundDecision(decision)
	if !ok {
		return "", ErrInvalidDecision
	}

	detail, err := s.Refunds.GetDetail(ctx, refundID)
	if err != nil {
		return "", ErrRefundNotFound
	}
	if detail.Status != model.RefundPending {
		return "", ErrRefundAlreadyDecided
	}

	tx, err := s.Orders.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("begin refund decision: %w", err)
	}
	defer tx.Rollback(ctx)

	flipped, err := tx.SetRefundStatusIfPending(ctx, refundID, status)
	if err != nil {
		return "", err
	}
	if !flipped {
		return "", ErrRefundAlreadyDecided
	}
	if status == model.RefundApproved {
		if err := tx.RestoreStock(ctx, detail.ProductID, detail.Quantity); err != nil {
			return "", err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("commit refund decision: %w", err)
	}

	s.notifyDecision(ctx, detail, status)
	return status, nil
}

func (s *RefundService) notifyDecision(ctx context.Context, detail *repository.RefundDetail, status model.RefundStatus) {
	email, err := s.Users.GetEmail(ctx, detail.UserID)
	if err != nil {
		log.Printf("refund %d: resolving owner email failed: %v", detail.RefundID, err)
		return
	}
	if email == "" {
		return
	}
	subject, body := refundDecisionEmail(detail.ProductName, status, detail.Amount)
	if err := s.Mailer.Send(ctx, email, subject, body, nil); err != nil {
		log.Printf("refund %d: decision email to %s failed: %v", detail.RefundID, email, err)
	}
}

// ListByUser returns the caller's refund history.
func (s *RefundService) ListByUser(ctx context.Context, userID int64) ([]model.Refund, error) {
	return s.Refunds.ListByUser(ctx, userID)
}

// ListAll returns every refund for the sales manager's review queue,
// pending requests first.
func (s *RefundService) ListAll(ctx context.Context) ([]model.Refund, error) {
	refunds, err := s.Refunds.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(refunds, func(i, j int) bool {
		return refunds[i].Status == model.RefundPending && refunds[j].Status != model.RefundPending
	})
	return refunds, nil
}
