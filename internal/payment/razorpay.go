package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"quickqueue/config"
	apperrors "quickqueue/pkg/app_errors"
	"quickqueue/pkg/logger"

	razorpay "github.com/razorpay/razorpay-go"
	"go.uber.org/zap"
)

// Provider 金流閘道：建單 + 簽章驗證
type Provider interface {
	// CreateOrder 以最小幣值單位（paise）建立付款訂單，回傳 order id
	CreateOrder(ctx context.Context, amountMinorUnits int64, currency string) (string, error)
	// VerifySignature 驗證 gateway 回傳的付款簽章
	VerifySignature(orderID string, paymentID string, signature string) bool
}

type RazorpayProvider struct {
	client    *razorpay.Client
	keySecret string
	timeout   time.Duration
}

func NewRazorpayProvider(cfg *config.RazorpayConfig) Provider {
	return &RazorpayProvider{
		client:    razorpay.NewClient(cfg.KeyID, cfg.KeySecret),
		keySecret: cfg.KeySecret,
		timeout:   time.Duration(cfg.TimeoutSeconds) * time.Second,
	}
}

// CreateOrder SDK 不吃 context，自己包一層 timeout。
// 超時一律當 ErrPaymentProvider，重試交給呼叫端
func (p *RazorpayProvider) CreateOrder(ctx context.Context, amountMinorUnits int64, currency string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	type orderResult struct {
		orderID string
		err     error
	}
	ch := make(chan orderResult, 1)

	go func() {
		order, err := p.client.Order.Create(map[string]interface{}{
			"amount":          amountMinorUnits,
			"currency":        currency,
			"payment_capture": 1,
		}, nil)
		if err != nil {
			ch <- orderResult{err: err}
			return
		}

		orderID, ok := order["id"].(string)
		if !ok {
			ch <- orderResult{err: fmt.Errorf("unexpected order response: missing id")}
			return
		}
		ch <- orderResult{orderID: orderID}
	}()

	select {
	case <-ctx.Done():
		logger.WithComponent("payment").Warn("order creation timed out", zap.Error(ctx.Err()))
		return "", fmt.Errorf("%w: %v", apperrors.ErrPaymentProvider, ctx.Err())
	case res := <-ch:
		if res.err != nil {
			logger.WithComponent("payment").Error("order creation failed", zap.Error(res.err))
			return "", fmt.Errorf("%w: %v", apperrors.ErrPaymentProvider, res.err)
		}
		return res.orderID, nil
	}
}

// VerifySignature Razorpay 的簽章是 HMAC-SHA256(order_id + "|" + payment_id)
func (p *RazorpayProvider) VerifySignature(orderID string, paymentID string, signature string) bool {
	mac := hmac.New(sha256.New, []byte(p.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
