package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/http"
	"net/url"
	"strings"

	"maison-storefront/internal/apiclient"
	"maison-storefront/internal/logger"

	"go.uber.org/zap"
)

const (
	paymentPath     = "/api/payment"
	SignatureHeader = "x-paystack-signature"
	Provider        = "PAYSTACK"
)

type Gateway interface {
	Initialize(ctx context.Context, req InitRequest) (*Initialization, error)
	Verify(ctx context.Context, reference string) (*Verification, error)
	VerifySignature(header http.Header, body []byte) error
}

// apiGateway reaches the payment provider through the backend's payment endpoints.
type apiGateway struct {
	client        *apiclient.Client
	webhookSecret string
}

func NewGateway(client *apiclient.Client, webhookSecret string) Gateway {
	if webhookSecret == "" {
		logger.L().Warn("payment webhook secret is empty, signature checks are disabled")
	}
	return &apiGateway{client: client, webhookSecret: webhookSecret}
}

func (g *apiGateway) Initialize(ctx context.Context, req InitRequest) (*Initialization, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "gateway"),
		zap.String("order_id", req.OrderID),
		zap.String("reference", req.Reference),
		zap.String("amount", req.Amount.String()),
	)

	log.Info("initializing payment")

	var resp apiclient.Envelope[Initialization]
	if err := g.client.Post(ctx, paymentPath, req, &resp); err != nil {
		log.Error("payment initialization failed", zap.Error(err))
		return nil, err
	}

	out := resp.Data
	if out.Reference == "" {
		out.Reference = req.Reference
	}

	log.Info("payment initialized")
	return &out, nil
}

func (g *apiGateway) Verify(ctx context.Context, reference string) (*Verification, error) {
	log := logger.FromCtx(ctx).With(zap.String("layer", "gateway"), zap.String("reference", reference))

	var resp apiclient.Envelope[Verification]
	if err := g.client.Get(ctx, paymentPath, url.Values{"reference": {reference}}, &resp); err != nil {
		log.Error("payment verification failed", zap.Error(err))
		return nil, err
	}

	v := resp.Data
	if v.Reference == "" {
		v.Reference = reference
	}

	log.Info("payment verified", zap.String("status", string(v.Status)))
	return &v, nil
}

// VerifySignature checks the HMAC-SHA512 of the raw body. Skipped without a secret.
func (g *apiGateway) VerifySignature(header http.Header, body []byte) error {
	if g.webhookSecret == "" {
		return nil
	}

	sig := strings.TrimSpace(header.Get(SignatureHeader))
	got, err := hex.DecodeString(sig)
	if sig == "" || err != nil {
		return ErrInvalidSignature
	}

	mac := hmac.New(sha512.New, []byte(g.webhookSecret))
	mac.Write(body)
	if !hmac.Equal(got, mac.Sum(nil)) {
		return ErrInvalidSignature
	}
	return nil
}

// Sign returns the signature header value for body.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
