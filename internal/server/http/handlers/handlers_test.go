package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainErrors "github.com/lunorise/platform/internal/domain/errors"
	"github.com/lunorise/platform/internal/domain/model"
	"github.com/lunorise/platform/internal/feed"
	"github.com/lunorise/platform/internal/pkg/money"
	"github.com/lunorise/platform/internal/server/http/dto"
	"github.com/lunorise/platform/internal/server/http/middleware"
	testhelpers "github.com/lunorise/platform/internal/test"
	"github.com/lunorise/platform/internal/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// authFacadeStub provides controllable behaviour for auth endpoints.
type authFacadeStub struct {
	RegisterFn     func(context.Context, string, string, string) (string, error)
	AuthenticateFn func(context.Context, string, string, string) (string, error)
	ProfileFn      func(context.Context, int64) (*model.User, error)
}

func (s authFacadeStub) Register(ctx context.Context, phone, country, password string) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, phone, country, password)
	}
	return "token", nil
}

func (s authFacadeStub) Authenticate(ctx context.Context, phone, country, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, phone, country, password)
	}
	return "token", nil
}

func (s authFacadeStub) ParseToken(token string) (int64, error) { return 1, nil }

func (s authFacadeStub) Profile(ctx context.Context, userID int64) (*model.User, error) {
	if s.ProfileFn != nil {
		return s.ProfileFn(ctx, userID)
	}
	return &model.User{ID: userID, BalanceCents: 1000}, nil
}

// planFacadeStub simulates plan catalog operations.
type planFacadeStub struct {
	PurchaseFn func(context.Context, int64, string) (*model.Transaction, error)
	NotifyFn   func(string) error
}

func (s planFacadeStub) Plans() []model.Plan {
	return []model.Plan{{ID: "starter", Name: "Starter", DepositCents: 500, PayoutPerCycleCents: 50, CycleCount: 30, TotalReturnCents: 1500}}
}

func (s planFacadeStub) PurchasePlan(ctx context.Context, userID int64, planID string) (*model.Transaction, error) {
	if s.PurchaseFn != nil {
		return s.PurchaseFn(ctx, userID, planID)
	}
	amount := int64(500)
	return &model.Transaction{ID: 1, UserID: userID, Type: model.TransactionTypeDeposit, AmountUSDCents: &amount, Status: model.TransactionStatusPending}, nil
}

func (s planFacadeStub) NotifyPlan(planID string) error {
	if s.NotifyFn != nil {
		return s.NotifyFn(planID)
	}
	return nil
}

// withdrawalFacadeStub simulates withdrawal operations.
type withdrawalFacadeStub struct {
	SubmitFn func(context.Context, int64, string, string, uuid.UUID) (*model.Withdrawal, error)
	ListFn   func(context.Context, int64) ([]model.Withdrawal, error)
}

func (s withdrawalFacadeStub) QuoteWithdrawal(amount, currency string) (*usecase.WithdrawalQuote, error) {
	uc := usecase.NewWithdrawalUseCase(nil, nil, nil)
	return uc.Quote(amount, currency)
}

func (s withdrawalFacadeStub) SubmitWithdrawal(ctx context.Context, userID int64, amount, currency string, key uuid.UUID) (*model.Withdrawal, error) {
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, userID, amount, currency, key)
	}
	return &model.Withdrawal{ID: 1, UserID: userID, GrossCents: 300, FeeCents: 24, NetCents: 276, Currency: "USD", Status: model.WithdrawalStatusQueued, IdempotencyKey: uuid.New()}, nil
}

func (s withdrawalFacadeStub) Withdrawals(ctx context.Context, userID int64) ([]model.Withdrawal, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, userID)
	}
	return nil, nil
}

// payoutFacadeStub simulates payout profile operations.
type payoutFacadeStub struct {
	SaveBankFn   func(context.Context, int64, string, string, string) error
	SaveWalletFn func(context.Context, int64, string, string) error
	GetFn        func(context.Context, int64, model.PayoutMethodType) (*model.PayoutMethod, error)
}

func (s payoutFacadeStub) SaveBankDetails(ctx context.Context, userID int64, bankName, accountName, accountNumber string) error {
	if s.SaveBankFn != nil {
		return s.SaveBankFn(ctx, userID, bankName, accountName, accountNumber)
	}
	return nil
}

func (s payoutFacadeStub) SaveWallet(ctx context.Context, userID int64, network, walletAddress string) error {
	if s.SaveWalletFn != nil {
		return s.SaveWalletFn(ctx, userID, network, walletAddress)
	}
	return nil
}

func (s payoutFacadeStub) PayoutMethod(ctx context.Context, userID int64, typ model.PayoutMethodType) (*model.PayoutMethod, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, userID, typ)
	}
	return nil, domainErrors.ErrNotFound
}

// feedFacadeStub simulates transaction feed operations.
type feedFacadeStub struct {
	Items       []model.Transaction
	ExportFn    func(context.Context, int64, model.TransactionType) ([]byte, error)
	SubscribeFn func(context.Context, int64) (*feed.Subscription, error)
}

func (s feedFacadeStub) Transactions(ctx context.Context, userID int64, filter model.TransactionType) ([]model.Transaction, error) {
	return s.Items, nil
}

func (s feedFacadeStub) ExportTransactionsCSV(ctx context.Context, userID int64, filter model.TransactionType) ([]byte, error) {
	if s.ExportFn != nil {
		return s.ExportFn(ctx, userID, filter)
	}
	return nil, domainErrors.ErrNothingToExport
}

func (s feedFacadeStub) SubscribeFeed(ctx context.Context, userID int64) (*feed.Subscription, error) {
	if s.SubscribeFn != nil {
		return s.SubscribeFn(ctx, userID)
	}
	hub := feed.NewHub(&testhelpers.TransactionRepositoryStub{Items: s.Items}, slog.New(slog.NewJSONHandler(io.Discard, nil)))
	return hub.Subscribe(ctx, userID)
}

// ratesFacadeStub serves canned exchange rates.
type ratesFacadeStub struct {
	Stored *model.ExchangeRate
	Err    error
}

func (s ratesFacadeStub) Rate(ctx context.Context, currency string) (*model.ExchangeRate, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Stored != nil {
		return s.Stored, nil
	}
	return nil, domainErrors.ErrNotFound
}

func performRequest(t *testing.T, method, path string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	route, _, _ := strings.Cut(path, "?")
	router.Handle(method, route, func(c *gin.Context) {
		if setup != nil {
			setup(c)
		}
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// closeNotifyRecorder augments httptest.ResponseRecorder with the
// http.CloseNotifier implementation gin's Stream helper requires.
type closeNotifyRecorder struct {
	*httptest.ResponseRecorder
	closed chan bool
}

func newCloseNotifyRecorder() *closeNotifyRecorder {
	return &closeNotifyRecorder{httptest.NewRecorder(), make(chan bool, 1)}
}

func (r *closeNotifyRecorder) CloseNotify() <-chan bool { return r.closed }

func asUser(id int64) func(*gin.Context) {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDContextKey, id)
	}
}

func TestCurrentUserID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentUserID(c); got != 0 {
		t.Fatalf("expected 0 when not set, got %d", got)
	}

	c.Set(middleware.UserIDContextKey, int64(42))
	if got := CurrentUserID(c); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
}

func TestAuthHandlerRegister(t *testing.T) {
	body, _ := json.Marshal(dto.RegisterRequest{Phone: "+2348012345678", Country: "Nigeria", Password: "pass"})
	resp := performRequest(t, http.MethodPost, "/register", NewAuthHandler(authFacadeStub{}).Register, nil, body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if resp.Header().Get("Authorization") != "Bearer token" {
		t.Fatalf("expected auth header to be set")
	}
	result := resp.Result()
	t.Cleanup(func() { _ = result.Body.Close() })
	found := false
	for _, cookie := range result.Cookies() {
		if cookie.Name == "lunorise_token" && cookie.Value == "token" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected auth cookie named lunorise_token")
	}
}

func TestAuthHandlerRegisterFailures(t *testing.T) {
	tests := []struct {
		name   string
		facade authFacadeStub
		body   []byte
		status int
	}{
		{
			name:   "bad json",
			facade: authFacadeStub{},
			body:   []byte("{"),
			status: http.StatusBadRequest,
		},
		{
			name: "duplicate phone",
			facade: authFacadeStub{RegisterFn: func(context.Context, string, string, string) (string, error) {
				return "", domainErrors.ErrAlreadyExists
			}},
			body:   mustJSON(t, dto.RegisterRequest{Phone: "+1", Country: "US", Password: "p"}),
			status: http.StatusConflict,
		},
		{
			name: "blank credentials",
			facade: authFacadeStub{RegisterFn: func(context.Context, string, string, string) (string, error) {
				return "", domainErrors.ErrInvalidCredentials
			}},
			body:   mustJSON(t, dto.RegisterRequest{}),
			status: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/register", NewAuthHandler(tt.facade).Register, nil, tt.body, nil)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	tests := []struct {
		name   string
		facade authFacadeStub
		status int
	}{
		{name: "ok", facade: authFacadeStub{}, status: http.StatusOK},
		{
			name: "wrong password",
			facade: authFacadeStub{AuthenticateFn: func(context.Context, string, string, string) (string, error) {
				return "", domainErrors.ErrInvalidCredentials
			}},
			status: http.StatusUnauthorized,
		},
		{
			name: "country mismatch",
			facade: authFacadeStub{AuthenticateFn: func(context.Context, string, string, string) (string, error) {
				return "", domainErrors.ErrCountryMismatch
			}},
			status: http.StatusForbidden,
		},
	}

	body := mustJSON(t, dto.LoginRequest{Phone: "+1", Country: "US", Password: "p"})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/login", NewAuthHandler(tt.facade).Login, nil, body, nil)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestAuthHandlerBalance(t *testing.T) {
	facade := authFacadeStub{ProfileFn: func(ctx context.Context, id int64) (*model.User, error) {
		return &model.User{ID: id, BalanceCents: 12345}, nil
	}}
	resp := performRequest(t, http.MethodGet, "/balance", NewAuthHandler(facade).Balance, asUser(7), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var out dto.BalanceResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Balance != "123.45" || out.Currency != "USD" {
		t.Fatalf("unexpected balance %+v", out)
	}
}

func TestPlanHandlerList(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/plans", NewPlanHandler(planFacadeStub{}).List, asUser(7), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var out []dto.PlanResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 1 || out[0].ID != "starter" {
		t.Fatalf("unexpected plans %+v", out)
	}
	if out[0].Deposit != "5.00" || out[0].ReturnPercent != 200 {
		t.Fatalf("unexpected plan payload %+v", out[0])
	}
}

func TestPlanHandlerPurchase(t *testing.T) {
	resp := performRequest(t, http.MethodPost, "/plans/starter/purchase", NewPlanHandler(planFacadeStub{}).Purchase, asUser(7), nil, nil)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}

	locked := planFacadeStub{PurchaseFn: func(context.Context, int64, string) (*model.Transaction, error) {
		return nil, domainErrors.ErrPlanLocked
	}}
	resp = performRequest(t, http.MethodPost, "/plans/gold/purchase", NewPlanHandler(locked).Purchase, asUser(7), nil, nil)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected status 409 for locked plan, got %d", resp.Code)
	}

	unknown := planFacadeStub{PurchaseFn: func(context.Context, int64, string) (*model.Transaction, error) {
		return nil, domainErrors.ErrUnknownPlan
	}}
	resp = performRequest(t, http.MethodPost, "/plans/nope/purchase", NewPlanHandler(unknown).Purchase, asUser(7), nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 for unknown plan, got %d", resp.Code)
	}
}

func TestPlanHandlerNotify(t *testing.T) {
	resp := performRequest(t, http.MethodPost, "/plans/gold/notify", NewPlanHandler(planFacadeStub{}).Notify, asUser(7), nil, nil)
	if resp.Code != http.StatusAccepted {
		t.Fatalf("expected status 202, got %d", resp.Code)
	}

	unknown := planFacadeStub{NotifyFn: func(string) error { return domainErrors.ErrUnknownPlan }}
	resp = performRequest(t, http.MethodPost, "/plans/nope/notify", NewPlanHandler(unknown).Notify, asUser(7), nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestWithdrawalHandlerQuote(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/quote?amount=3.00&currency=USD", NewWithdrawalHandler(withdrawalFacadeStub{}).Quote, asUser(7), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var out dto.QuoteResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Fee != "0.24" || out.Net != "2.76" || out.FeePercent != 8 {
		t.Fatalf("unexpected quote %+v", out)
	}

	resp = performRequest(t, http.MethodGet, "/quote?amount=abc", NewWithdrawalHandler(withdrawalFacadeStub{}).Quote, asUser(7), nil, nil)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", resp.Code)
	}
}

func TestWithdrawalHandlerSubmit(t *testing.T) {
	body := mustJSON(t, dto.WithdrawRequest{Amount: "3.00", Currency: "USD"})
	resp := performRequest(t, http.MethodPost, "/withdrawals", NewWithdrawalHandler(withdrawalFacadeStub{}).Submit, asUser(7), body, nil)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	var out dto.WithdrawalResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Gross != "3.00" || out.Fee != "0.24" || out.Net != "2.76" {
		t.Fatalf("unexpected withdrawal %+v", out)
	}
}

func TestWithdrawalHandlerSubmitFailures(t *testing.T) {
	submitErr := func(err error) withdrawalFacadeStub {
		return withdrawalFacadeStub{SubmitFn: func(context.Context, int64, string, string, uuid.UUID) (*model.Withdrawal, error) {
			return nil, err
		}}
	}

	tests := []struct {
		name   string
		facade withdrawalFacadeStub
		body   []byte
		status int
	}{
		{name: "bad json", facade: withdrawalFacadeStub{}, body: []byte("{"), status: http.StatusBadRequest},
		{
			name:   "bad idempotency key",
			facade: withdrawalFacadeStub{},
			body:   mustJSON(t, dto.WithdrawRequest{Amount: "3.00", Currency: "USD", IdempotencyKey: "not-a-uuid"}),
			status: http.StatusBadRequest,
		},
		{
			name:   "below minimum",
			facade: submitErr(fmt.Errorf("%w: minimum is %s", domainErrors.ErrBelowMinWithdrawal, money.FormatUSD(200))),
			body:   mustJSON(t, dto.WithdrawRequest{Amount: "1.99", Currency: "USD"}),
			status: http.StatusUnprocessableEntity,
		},
		{
			name:   "insufficient funds",
			facade: submitErr(fmt.Errorf("%w: available %s", domainErrors.ErrInsufficientFunds, money.FormatUSD(500))),
			body:   mustJSON(t, dto.WithdrawRequest{Amount: "10.00", Currency: "USD"}),
			status: http.StatusPaymentRequired,
		},
		{
			name:   "no payout method",
			facade: submitErr(domainErrors.ErrNoPayoutMethod),
			body:   mustJSON(t, dto.WithdrawRequest{Amount: "10.00", Currency: "USD"}),
			status: http.StatusPreconditionFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/withdrawals", NewWithdrawalHandler(tt.facade).Submit, asUser(7), tt.body, nil)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestWithdrawalHandlerSubmitErrorNamesBalance(t *testing.T) {
	facade := withdrawalFacadeStub{SubmitFn: func(context.Context, int64, string, string, uuid.UUID) (*model.Withdrawal, error) {
		return nil, fmt.Errorf("%w: available %s", domainErrors.ErrInsufficientFunds, money.FormatUSD(500))
	}}
	body := mustJSON(t, dto.WithdrawRequest{Amount: "10.00", Currency: "USD"})
	resp := performRequest(t, http.MethodPost, "/withdrawals", NewWithdrawalHandler(facade).Submit, asUser(7), body, nil)
	if resp.Code != http.StatusPaymentRequired {
		t.Fatalf("expected status 402, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "$5.00") {
		t.Fatalf("expected error body to name available balance, got %s", resp.Body.String())
	}
}

func TestWithdrawalHandlerList(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/withdrawals", NewWithdrawalHandler(withdrawalFacadeStub{}).List, asUser(7), nil, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204 for empty history, got %d", resp.Code)
	}

	facade := withdrawalFacadeStub{ListFn: func(context.Context, int64) ([]model.Withdrawal, error) {
		return []model.Withdrawal{{ID: 1, GrossCents: 300, FeeCents: 24, NetCents: 276, Currency: "USD", Status: model.WithdrawalStatusQueued, CreatedAt: time.Unix(0, 0)}}, nil
	}}
	resp = performRequest(t, http.MethodGet, "/withdrawals", NewWithdrawalHandler(facade).List, asUser(7), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var out []dto.WithdrawalResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 1 || out[0].Net != "2.76" {
		t.Fatalf("unexpected history %+v", out)
	}
}

func TestPayoutHandlerSave(t *testing.T) {
	var savedBank bool
	facade := payoutFacadeStub{SaveBankFn: func(context.Context, int64, string, string, string) error {
		savedBank = true
		return nil
	}}
	body := mustJSON(t, dto.PayoutMethodRequest{Type: "bank", BankName: "GTBank", AccountName: "Ada Obi", AccountNumber: "0123"})
	resp := performRequest(t, http.MethodPost, "/payout-methods", NewPayoutHandler(facade).Save, asUser(7), body, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if !savedBank {
		t.Fatal("expected bank details to be saved")
	}

	body = mustJSON(t, dto.PayoutMethodRequest{Type: "usdt", WalletAddress: "0xabc"})
	resp = performRequest(t, http.MethodPost, "/payout-methods", NewPayoutHandler(payoutFacadeStub{}).Save, asUser(7), body, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	body = mustJSON(t, dto.PayoutMethodRequest{Type: "paypal"})
	resp = performRequest(t, http.MethodPost, "/payout-methods", NewPayoutHandler(payoutFacadeStub{}).Save, asUser(7), body, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for unknown type, got %d", resp.Code)
	}

	missing := payoutFacadeStub{SaveBankFn: func(context.Context, int64, string, string, string) error {
		return fmt.Errorf("%w: all bank details are required", domainErrors.ErrMissingField)
	}}
	body = mustJSON(t, dto.PayoutMethodRequest{Type: "bank"})
	resp = performRequest(t, http.MethodPost, "/payout-methods", NewPayoutHandler(missing).Save, asUser(7), body, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for missing fields, got %d", resp.Code)
	}
}

func TestPayoutHandlerGet(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/payout-methods?type=bank", NewPayoutHandler(payoutFacadeStub{}).Get, asUser(7), nil, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204 when no profile stored, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodGet, "/payout-methods?type=paypal", NewPayoutHandler(payoutFacadeStub{}).Get, asUser(7), nil, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for unknown type, got %d", resp.Code)
	}

	facade := payoutFacadeStub{GetFn: func(context.Context, int64, model.PayoutMethodType) (*model.PayoutMethod, error) {
		return &model.PayoutMethod{Type: model.PayoutMethodUSDT, Network: "BEP20", WalletAddress: "0xabc"}, nil
	}}
	resp = performRequest(t, http.MethodGet, "/payout-methods?type=usdt", NewPayoutHandler(facade).Get, asUser(7), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var out dto.PayoutMethodResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.WalletAddress != "0xabc" || out.Network != "BEP20" {
		t.Fatalf("unexpected payload %+v", out)
	}
}

func TestTransactionHandlerList(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/transactions", NewTransactionHandler(feedFacadeStub{}).List, asUser(7), nil, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204 for empty feed, got %d", resp.Code)
	}

	amount := int64(1500)
	facade := feedFacadeStub{Items: []model.Transaction{{ID: 1, Type: model.TransactionTypeDeposit, AmountUSDCents: &amount, Status: model.TransactionStatusConfirmed}}}
	resp = performRequest(t, http.MethodGet, "/transactions", NewTransactionHandler(facade).List, asUser(7), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var out []dto.TransactionResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 1 || out[0].AmountUSD == nil || *out[0].AmountUSD != "15.00" {
		t.Fatalf("unexpected feed %+v", out)
	}

	resp = performRequest(t, http.MethodGet, "/transactions?type=nonsense", NewTransactionHandler(facade).List, asUser(7), nil, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for unknown filter, got %d", resp.Code)
	}
}

func TestTransactionHandlerExport(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/export", NewTransactionHandler(feedFacadeStub{}).Export, asUser(7), nil, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204 for empty export, got %d", resp.Code)
	}

	facade := feedFacadeStub{ExportFn: func(context.Context, int64, model.TransactionType) ([]byte, error) {
		return []byte("Date,Type,Amount,Status,Note\n"), nil
	}}
	resp = performRequest(t, http.MethodGet, "/export", NewTransactionHandler(facade).Export, asUser(7), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "text/csv" {
		t.Fatalf("expected text/csv, got %q", ct)
	}
	if cd := resp.Header().Get("Content-Disposition"); !strings.Contains(cd, "transactions.csv") {
		t.Fatalf("expected attachment disposition, got %q", cd)
	}
}

func TestTransactionHandlerStream(t *testing.T) {
	amount := int64(1000)
	facade := feedFacadeStub{Items: []model.Transaction{{ID: 1, Type: model.TransactionTypeDeposit, AmountUSDCents: &amount, Status: model.TransactionStatusConfirmed}}}

	router := gin.New()
	router.GET("/stream", func(c *gin.Context) {
		asUser(7)(c)
		// Cancel after the initial snapshot is flushed.
		ctx, cancel := context.WithTimeout(c.Request.Context(), 200*time.Millisecond)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		NewTransactionHandler(facade).Stream(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/stream", nil)
	w := newCloseNotifyRecorder()
	router.ServeHTTP(w, req)

	body := w.Body.String()
	if !strings.Contains(body, "event:feed") {
		t.Fatalf("expected SSE feed event, got %q", body)
	}
	if !strings.Contains(body, "10.00") {
		t.Fatalf("expected snapshot payload, got %q", body)
	}
}

func TestRateHandlerGet(t *testing.T) {
	facade := ratesFacadeStub{Stored: &model.ExchangeRate{Currency: "NGN", Rate: 1580.5, UpdatedAt: time.Unix(0, 0).UTC()}}

	router := gin.New()
	router.GET("/rates/:currency", func(c *gin.Context) {
		asUser(7)(c)
		NewRateHandler(facade).Get(c)
	})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rates/NGN", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var out dto.RateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Currency != "NGN" || out.Rate != 1580.5 {
		t.Fatalf("unexpected rate %+v", out)
	}

	w = httptest.NewRecorder()
	missing := gin.New()
	missing.GET("/rates/:currency", func(c *gin.Context) {
		asUser(7)(c)
		NewRateHandler(ratesFacadeStub{}).Get(c)
	})
	missing.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rates/GHS", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return data
}
