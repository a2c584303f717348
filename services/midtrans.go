package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"github.com/vnkhanh/elearning-backend/models"
)

// PaymentGateway tạo phiên thanh toán cho phí đăng ký manager.
type PaymentGateway interface {
	CreatePayment(ctx context.Context, req PaymentRequest) (redirectURL string, err error)
}

type PaymentRequest struct {
	OrderID   string
	Amount    int64
	Email     string
	FinishURL string
}

// MidtransClient tạo giao dịch Snap qua midtrans-go. baseURL khác host mặc định
// của SDK (sandbox, mock) thì request được chuyển sang host đó.
type MidtransClient struct {
	serverKey string
	env       midtrans.EnvironmentType
	target    *url.URL
	timeout   time.Duration
}

func NewMidtransClient(baseURL, serverKey string) *MidtransClient {
	m := &MidtransClient{
		serverKey: serverKey,
		env:       midtrans.Sandbox,
		timeout:   15 * time.Second,
	}
	if u, err := url.Parse(strings.TrimRight(baseURL, "/")); err == nil && u.Host != "" {
		m.target = u
		if u.Host == "app.midtrans.com" {
			m.env = midtrans.Production
		}
	}
	return m
}

func (m *MidtransClient) CreatePayment(ctx context.Context, req PaymentRequest) (string, error) {
	var client snap.Client
	client.New(m.serverKey, m.env)

	httpClient := midtrans.GetHttpClient(m.env)
	httpClient.HttpClient = &http.Client{
		Timeout:   m.timeout,
		Transport: snapTransport{ctx: ctx, target: m.target, next: http.DefaultTransport},
	}
	client.HttpClient = httpClient

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.OrderID,
			GrossAmt: req.Amount,
		},
		CreditCard: &snap.CreditCardDetails{Secure: true},
		CustomerDetail: &midtrans.CustomerDetails{
			Email: req.Email,
		},
	}
	if req.FinishURL != "" {
		snapReq.Callbacks = &snap.Callbacks{Finish: req.FinishURL}
	}

	resp, merr := client.CreateTransaction(snapReq)
	if merr != nil {
		return "", fmt.Errorf("midtrans: %s", merr.GetMessage())
	}
	if resp.RedirectURL == "" {
		return "", errors.New("midtrans: empty redirect_url")
	}
	return resp.RedirectURL, nil
}

// snapTransport gắn ctx của request vào lời gọi SDK và đổi host nếu cần.
type snapTransport struct {
	ctx    context.Context
	target *url.URL
	next   http.RoundTripper
}

func (t snapTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(t.ctx)
	if t.target != nil {
		r.URL.Scheme = t.target.Scheme
		r.URL.Host = t.target.Host
		r.Host = t.target.Host
	}
	return t.next.RoundTrip(r)
}

// TransactionStatusFor ánh xạ transaction_status của Midtrans sang trạng thái
// Transaction. ok=false: từ khoá không làm đổi trạng thái.
func TransactionStatusFor(keyword string) (status models.TransactionStatus, ok bool) {
	switch keyword {
	case "capture", "settlement":
		return models.TransactionSuccess, true
	case "deny", "cancel", "expire", "failure":
		return models.TransactionFailed, true
	default:
		return "", false
	}
}
