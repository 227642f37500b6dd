package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"maison-storefront/internal/logger"
	"maison-storefront/internal/order"
	"maison-storefront/internal/payment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

const (
	EventChargeSuccess = "charge.success"
	EventChargeFailed  = "charge.failed"
)

// Event is the JSON the gateway posts.
type Event struct {
	Event string `json:"event"`
	Data  struct {
		ID        json.Number `json:"id"`
		Reference string      `json:"reference"`
		Status    string      `json:"status"`
		Metadata  struct {
			OrderID string `json:"order_id"`
		} `json:"metadata"`
	} `json:"data"`
}

// OrderUpdater is the slice of the order service the webhook needs.
type OrderUpdater interface {
	UpdatePaymentStatus(ctx context.Context, id string, status order.PaymentStatus) (*order.Order, error)
}

type Handler struct {
	orders  OrderUpdater
	repo    payment.Repository
	gateway payment.Gateway
}

func NewHandler(orders OrderUpdater, repo payment.Repository, gateway payment.Gateway) *Handler {
	return &Handler{orders: orders, repo: repo, gateway: gateway}
}

func (h *Handler) Handle(c *gin.Context) {
	ctx := c.Request.Context()
	log := logger.FromCtx(ctx).With(zap.String("layer", "webhook"))

	// 1. read and authenticate
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read body"})
		return
	}

	if err := h.gateway.VerifySignature(c.Request.Header, body); err != nil {
		log.Warn("rejected webhook", zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
		return
	}

	var evt Event
	if err := json.Unmarshal(body, &evt); err != nil || evt.Event == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload"})
		return
	}

	log = log.With(zap.String("event", evt.Event), zap.String("reference", evt.Data.Reference))

	// 2. idempotent inbox
	webhookID, duplicate, err := h.repo.SaveWebhook(ctx, payment.Webhook{
		Provider:       payment.Provider,
		EventID:        eventID(evt),
		EventType:      evt.Event,
		Reference:      evt.Data.Reference,
		Payload:        body,
		SignatureValid: true,
	})
	if err != nil {
		log.Error("failed to store webhook", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store webhook"})
		return
	}
	if duplicate {
		log.Info("duplicate webhook ignored")
		c.JSON(http.StatusOK, gin.H{"status": "duplicate"})
		return
	}

	// 3. map the event
	var (
		paymentStatus order.PaymentStatus
		ledgerStatus  payment.Status
	)
	switch evt.Event {
	case EventChargeSuccess:
		paymentStatus, ledgerStatus = order.PaymentPaid, payment.StatusSuccess
	case EventChargeFailed:
		paymentStatus, ledgerStatus = order.PaymentFailed, payment.StatusFailed
	default:
		h.markProcessed(ctx, log, webhookID)
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	orderID, err := h.resolveOrderID(ctx, evt)
	if err != nil {
		log.Error("cannot resolve order for webhook", zap.Error(err))
		h.markFailed(ctx, log, webhookID, err)
		c.JSON(http.StatusOK, gin.H{"status": "unresolved"})
		return
	}

	// 4. apply
	if _, err := h.orders.UpdatePaymentStatus(ctx, orderID, paymentStatus); err != nil {
		log.Error("failed to update order payment status", zap.String("order_id", orderID), zap.Error(err))
		h.markFailed(ctx, log, webhookID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order"})
		return
	}

	if evt.Data.Reference != "" {
		if err := h.repo.UpdateStatusByReference(ctx, evt.Data.Reference, ledgerStatus); err != nil &&
			!errors.Is(err, payment.ErrRecordNotFound) {
			log.Warn("failed to update payment ledger", zap.Error(err))
		}
	}

	h.markProcessed(ctx, log, webhookID)
	log.Info("webhook processed", zap.String("order_id", orderID), zap.String("payment_status", string(paymentStatus)))
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// resolveOrderID tries metadata, then the ledger, then the reference format.
func (h *Handler) resolveOrderID(ctx context.Context, evt Event) (string, error) {
	if id := strings.TrimSpace(evt.Data.Metadata.OrderID); id != "" {
		return id, nil
	}
	if evt.Data.Reference == "" {
		return "", payment.ErrMissingReference
	}

	rec, err := h.repo.GetByReference(ctx, evt.Data.Reference)
	if err == nil {
		return rec.OrderID, nil
	}
	if !errors.Is(err, payment.ErrRecordNotFound) {
		return "", err
	}

	return payment.ParseReference(evt.Data.Reference)
}

func (h *Handler) markProcessed(ctx context.Context, log *zap.Logger, id int64) {
	if err := h.repo.MarkWebhookProcessed(ctx, id); err != nil {
		log.Warn("failed to mark webhook processed", zap.Int64("webhook_id", id), zap.Error(err))
	}
}

func (h *Handler) markFailed(ctx context.Context, log *zap.Logger, id int64, cause error) {
	if err := h.repo.MarkWebhookFailed(ctx, id, cause.Error()); err != nil {
		log.Warn("failed to mark webhook failed", zap.Int64("webhook_id", id), zap.Error(err))
	}
}

func eventID(evt Event) string {
	if id := evt.Data.ID.String(); id != "" {
		return evt.Event + ":" + id
	}
	return evt.Event + ":" + evt.Data.Reference
}
