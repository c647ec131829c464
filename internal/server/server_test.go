package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	analyticsdomain "github.com/smallbiznis/ispdesk/internal/analytics/domain"
	"github.com/smallbiznis/ispdesk/internal/analytics/engine"
	customerdomain "github.com/smallbiznis/ispdesk/internal/customer/domain"
	shopdomain "github.com/smallbiznis/ispdesk/internal/shop/domain"
	"github.com/smallbiznis/ispdesk/internal/shopcontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeShopService struct {
	shops map[string]shopdomain.Shop
}

func (f *fakeShopService) Create(ctx context.Context, req shopdomain.CreateShopRequest) (shopdomain.Shop, error) {
	if strings.TrimSpace(req.Name) == "" {
		return shopdomain.Shop{}, shopdomain.ErrInvalidName
	}
	shop := shopdomain.Shop{ID: "new-shop", Name: req.Name, Slug: "new-shop"}
	f.shops[shop.ID] = shop
	return shop, nil
}

func (f *fakeShopService) GetByID(ctx context.Context, id string) (shopdomain.Shop, error) {
	shop, ok := f.shops[id]
	if !ok {
		return shopdomain.Shop{}, shopdomain.ErrNotFound
	}
	return shop, nil
}

func (f *fakeShopService) List(ctx context.Context) ([]shopdomain.Shop, error) {
	var out []shopdomain.Shop
	for _, shop := range f.shops {
		out = append(out, shop)
	}
	return out, nil
}

type fakeCustomerService struct {
	customers   map[string]customerdomain.Customer
	seenShopIDs []string
}

func (f *fakeCustomerService) record(ctx context.Context) {
	shopID, _ := shopcontext.ShopIDFromContext(ctx)
	f.seenShopIDs = append(f.seenShopIDs, shopID)
}

func (f *fakeCustomerService) Create(ctx context.Context, req customerdomain.CreateCustomerRequest) (customerdomain.Customer, error) {
	f.record(ctx)
	if strings.TrimSpace(req.Name) == "" {
		return customerdomain.Customer{}, customerdomain.ErrInvalidName
	}
	c := customerdomain.Customer{ID: "c-new", Name: req.Name, Status: customerdomain.StatusActive}
	f.customers[c.ID] = c
	return c, nil
}

func (f *fakeCustomerService) List(ctx context.Context) ([]customerdomain.Customer, error) {
	f.record(ctx)
	var out []customerdomain.Customer
	for _, c := range f.customers {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCustomerService) GetByID(ctx context.Context, req customerdomain.GetCustomerRequest) (customerdomain.Customer, error) {
	f.record(ctx)
	c, ok := f.customers[req.ID]
	if !ok {
		return customerdomain.Customer{}, customerdomain.ErrNotFound
	}
	return c, nil
}

func (f *fakeCustomerService) Update(ctx context.Context, req customerdomain.UpdateCustomerRequest) (customerdomain.Customer, error) {
	f.record(ctx)
	c, ok := f.customers[req.ID]
	if !ok {
		return customerdomain.Customer{}, customerdomain.ErrNotFound
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	f.customers[c.ID] = c
	return c, nil
}

func (f *fakeCustomerService) Delete(ctx context.Context, req customerdomain.GetCustomerRequest) error {
	f.record(ctx)
	if _, ok := f.customers[req.ID]; !ok {
		return customerdomain.ErrNotFound
	}
	delete(f.customers, req.ID)
	return nil
}

type fakeAnalyticsService struct {
	analyticsdomain.Service
	lastMessage string
}

func (f *fakeAnalyticsService) Payments(ctx context.Context) (analyticsdomain.PaymentsView, error) {
	return analyticsdomain.PaymentsView{Rows: []analyticsdomain.PaymentLine{
		{CustomerID: "c1", CustomerName: "Asha", Plan: "Basic", Amount: 499, DueDate: "2025-03-12", Status: engine.StatusPending},
	}}, nil
}

func (f *fakeAnalyticsService) Messaging(ctx context.Context) (engine.ChannelStats, error) {
	return engine.ChannelStats{Email: 3, SMS: 1}, nil
}

func (f *fakeAnalyticsService) Assistant(ctx context.Context, message string) (analyticsdomain.AssistantReply, error) {
	f.lastMessage = message
	return analyticsdomain.AssistantReply{Intent: analyticsdomain.IntentGuide, Reply: "guide"}, nil
}

type fakeReports struct{}

func (fakeReports) DuesReport(ctx context.Context, view analyticsdomain.PaymentsView) (io.Reader, error) {
	return strings.NewReader("%PDF-1.3 dues"), nil
}

func (fakeReports) SuggestionsReport(ctx context.Context, view analyticsdomain.SuggestionsView) (io.Reader, error) {
	return strings.NewReader("%PDF-1.3 suggestions"), nil
}

type testServer struct {
	engine    *gin.Engine
	customers *fakeCustomerService
	analytics *fakeAnalyticsService
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(ErrorHandlingMiddleware())

	customers := &fakeCustomerService{customers: map[string]customerdomain.Customer{
		"c1": {ID: "c1", Name: "Asha", Status: customerdomain.StatusActive},
	}}
	analytics := &fakeAnalyticsService{}
	s := &Server{
		engine:       r,
		log:          zap.NewNop(),
		shopSvc:      &fakeShopService{shops: map[string]shopdomain.Shop{"shop-1": {ID: "shop-1", Name: "North Fiber"}}},
		customerSvc:  customers,
		analyticsSvc: analytics,
		reports:      fakeReports{},
	}
	s.RegisterRoutes()

	return testServer{engine: r, customers: customers, analytics: analytics}
}

func (ts testServer) do(method, path, shopID string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if shopID != "" {
		req.Header.Set(HeaderShop, shopID)
	}
	rec := httptest.NewRecorder()
	ts.engine.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorPayload {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}

func TestShopHeaderRequired(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/api/customers", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized", decodeError(t, rec).Type)

	rec = ts.do(http.MethodGet, "/api/customers", "unknown-shop", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, ts.customers.seenShopIDs)
}

func TestListCustomersScopesToShop(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/api/customers", "shop-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []customerdomain.Customer `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Asha", resp.Data[0].Name)
	assert.Equal(t, []string{"shop-1"}, ts.customers.seenShopIDs)
}

func TestCreateCustomerValidation(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost, "/api/customers", "shop-1", map[string]any{"name": " "})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	payload := decodeError(t, rec)
	assert.Equal(t, "validation_error", payload.Type)
	require.Len(t, payload.Errors, 1)
	assert.Equal(t, "invalid_name", payload.Errors[0].Code)
	assert.Equal(t, "name", payload.Errors[0].Field)

	rec = ts.do(http.MethodPost, "/api/customers", "shop-1", map[string]any{"name": "Ravi"})
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestMalformedBodyIsInvalidRequest(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/customers", strings.NewReader("{"))
	req.Header.Set(HeaderShop, "shop-1")
	rec := httptest.NewRecorder()
	ts.engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_request", decodeError(t, rec).Errors[0].Code)
}

func TestCustomerNotFound(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/api/customers/missing", "shop-1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeError(t, rec).Type)

	rec = ts.do(http.MethodDelete, "/api/customers/c1", "shop-1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestPaymentDuesAndPDF(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/api/payments/dues", "shop-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"customerName":"Asha"`)

	rec = ts.do(http.MethodGet, "/api/payments/dues.pdf", "shop-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "payment-dues.pdf")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))
}

func TestCampaignStatsAndAssistant(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/api/campaigns/stats", "shop-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"email":3,"sms":1,"whatsapp":0}}`, rec.Body.String())

	rec = ts.do(http.MethodPost, "/api/assistant", "shop-1", map[string]any{"message": "help me"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "help me", ts.analytics.lastMessage)
	assert.JSONEq(t, `{"data":{"intent":"guide","reply":"guide"}}`, rec.Body.String())
}

func TestCreateShopIsPublic(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost, "/api/shops", "", map[string]any{"name": "South Fiber"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(http.MethodGet, "/api/shops/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMapErrorTenantAndInternal(t *testing.T) {
	status, payload := mapError(customerdomain.ErrInvalidShop)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "unauthorized", payload.Type)

	status, payload = mapError(io.ErrUnexpectedEOF)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal_error", payload.Type)

	errType, code := classifyErrorForLog(customerdomain.ErrInvalidEmail)
	assert.Equal(t, "validation_error", errType)
	assert.Equal(t, "invalid_email", code)
}
