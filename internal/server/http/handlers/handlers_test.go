package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/fixpoint/fixpoint/internal/domain/errors"
	"github.com/fixpoint/fixpoint/internal/domain/model"
	"github.com/fixpoint/fixpoint/internal/pkg/upload"
	"github.com/fixpoint/fixpoint/internal/server/http/dto"
	"github.com/fixpoint/fixpoint/internal/server/http/middleware"
	testhelpers "github.com/fixpoint/fixpoint/internal/test"
)

func actorInjector(actor model.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ActorContextKey, actor)
		c.Next()
	}
}

func newOrderTestRouter(facade OrderFacade, actor model.Actor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	h := NewOrderHandler(facade)

	api := engine.Group("/api", actorInjector(actor))
	api.POST("/orders", h.Submit)
	api.GET("/orders", h.List)
	api.GET("/orders/:id", h.Get)
	api.POST("/orders/:id/take", h.Take)
	api.POST("/orders/:id/finish", h.Finish)
	api.POST("/orders/:id/cancel", h.Cancel)
	api.POST("/orders/:id/rate", h.Rate)
	api.PATCH("/orders/:id", h.Update)
	api.GET("/orders/:id/logs", h.Logs)
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestRegisterHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.POST("/api/auth/register", NewAuthHandler(testhelpers.ServiceFacadeStub{}).Register)

	username := testhelpers.RandomASCIIString(3, 12)
	rec := doJSON(t, engine, http.MethodPost, "/api/auth/register", dto.RegisterRequest{Username: username, Password: "password123"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.AuthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token == "" || resp.User.Username != username || resp.User.Role != "customer" {
		t.Fatalf("unexpected response %+v", resp)
	}
	if rec.Header().Get("Authorization") == "" {
		t.Fatal("expected authorization header")
	}
}

func TestRegisterHandlerErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid body", func(t *testing.T) {
		engine := gin.New()
		engine.POST("/register", NewAuthHandler(testhelpers.ServiceFacadeStub{}).Register)
		req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader("{broken"))
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("duplicate username", func(t *testing.T) {
		stub := testhelpers.ServiceFacadeStub{}
		stub.RegisterFn = func(context.Context, string, string, string, model.Role) (*model.User, string, error) {
			return nil, "", domainErrors.ErrAlreadyExists
		}
		engine := gin.New()
		engine.POST("/register", NewAuthHandler(stub).Register)
		rec := doJSON(t, engine, http.MethodPost, "/register", dto.RegisterRequest{Username: "alice", Password: "password123"})
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})

	t.Run("validation failure", func(t *testing.T) {
		stub := testhelpers.ServiceFacadeStub{}
		stub.RegisterFn = func(context.Context, string, string, string, model.Role) (*model.User, string, error) {
			return nil, "", domainErrors.Validation("password must be at least 9 characters")
		}
		engine := gin.New()
		engine.POST("/register", NewAuthHandler(stub).Register)
		rec := doJSON(t, engine, http.MethodPost, "/register", dto.RegisterRequest{Username: "alice", Password: "short"})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "password must be at least 9 characters") {
			t.Fatalf("expected reason in body, got %s", rec.Body.String())
		}
	})
}

func TestLoginHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.POST("/login", NewAuthHandler(testhelpers.ServiceFacadeStub{}).Login)
	rec := doJSON(t, engine, http.MethodPost, "/login", dto.LoginRequest{Username: "alice", Password: "password123"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	stub := testhelpers.ServiceFacadeStub{}
	stub.AuthenticateFn = func(context.Context, string, string) (*model.User, string, error) {
		return nil, "", domainErrors.ErrInvalidCredentials
	}
	engine = gin.New()
	engine.POST("/login", NewAuthHandler(stub).Login)
	rec = doJSON(t, engine, http.MethodPost, "/login", dto.LoginRequest{Username: "alice", Password: "wrong"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestSubmitHandler(t *testing.T) {
	actor := model.Actor{ID: 1, Role: model.RoleCustomer}
	engine := newOrderTestRouter(testhelpers.ServiceFacadeStub{}, actor)

	rec := doJSON(t, engine, http.MethodPost, "/api/orders", dto.SubmitOrderRequest{Location: "Room 5", Description: "leak"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.OrderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "pending" || resp.CustomerID != actor.ID {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestOrderHandlerErrorMapping(t *testing.T) {
	actor := model.Actor{ID: 1, Role: model.RoleCustomer}

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", domainErrors.Validation("location is required"), http.StatusBadRequest},
		{"forbidden", domainErrors.Forbidden("customer role required"), http.StatusForbidden},
		{"not found", domainErrors.ErrNotFound, http.StatusNotFound},
		{"invalid transition", domainErrors.InvalidTransition("order is not available for taking"), http.StatusConflict},
		{"storage failure", domainErrors.Storage(context.DeadlineExceeded), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := testhelpers.ServiceFacadeStub{}
			stub.TakeFn = func(context.Context, model.Actor, int64) error { return tt.err }
			engine := newOrderTestRouter(stub, actor)

			rec := doJSON(t, engine, http.MethodPost, "/api/orders/7/take", nil)
			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, rec.Code)
			}
			var resp dto.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp.Error == "" {
				t.Fatalf("expected error body, got %s", rec.Body.String())
			}
		})
	}
}

func TestOrderHandlerRejectsBadID(t *testing.T) {
	engine := newOrderTestRouter(testhelpers.ServiceFacadeStub{}, model.Actor{ID: 1, Role: model.RoleCustomer})

	for _, path := range []string{"/api/orders/abc", "/api/orders/0", "/api/orders/-4"} {
		rec := doJSON(t, engine, http.MethodGet, path, nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("GET %s: expected 400, got %d", path, rec.Code)
		}
	}
}

func TestFinishHandlerPassesMessage(t *testing.T) {
	var gotMessage string
	stub := testhelpers.ServiceFacadeStub{}
	stub.FinishFn = func(_ context.Context, _ model.Actor, _ int64, message string) error {
		gotMessage = message
		return nil
	}
	engine := newOrderTestRouter(stub, model.Actor{ID: 10, Role: model.RoleStaff})

	rec := doJSON(t, engine, http.MethodPost, "/api/orders/7/finish", dto.FinishOrderRequest{Message: "replaced the gasket"})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if gotMessage != "replaced the gasket" {
		t.Fatalf("unexpected message %q", gotMessage)
	}

	// Empty body is fine, the message is optional.
	rec = doJSON(t, engine, http.MethodPost, "/api/orders/7/finish", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for empty body, got %d", rec.Code)
	}
}

func TestUpdateHandlerBuildsPatch(t *testing.T) {
	var gotPatch model.OrderPatch
	stub := testhelpers.ServiceFacadeStub{}
	stub.UpdateInfoFn = func(_ context.Context, _ model.Actor, _ int64, patch model.OrderPatch) error {
		gotPatch = patch
		return nil
	}
	engine := newOrderTestRouter(stub, model.Actor{ID: 1, Role: model.RoleCustomer})

	loc := "Room 6"
	rec := doJSON(t, engine, http.MethodPatch, "/api/orders/7", dto.PatchOrderRequest{Location: &loc})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if gotPatch.Location == nil || *gotPatch.Location != "Room 6" || gotPatch.Description != nil {
		t.Fatalf("unexpected patch %+v", gotPatch)
	}
}

func TestRateHandler(t *testing.T) {
	var gotRating int
	stub := testhelpers.ServiceFacadeStub{}
	stub.RateFn = func(_ context.Context, _ model.Actor, _ int64, rating int, _ string) error {
		gotRating = rating
		return nil
	}
	engine := newOrderTestRouter(stub, model.Actor{ID: 1, Role: model.RoleCustomer})

	rec := doJSON(t, engine, http.MethodPost, "/api/orders/7/rate", dto.RateOrderRequest{Rating: 5, Comment: "great"})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if gotRating != 5 {
		t.Fatalf("unexpected rating %d", gotRating)
	}
}

func TestListHandlerParsesQuery(t *testing.T) {
	var gotStatus *model.OrderStatus
	var gotPage, gotPageSize int
	stub := testhelpers.ServiceFacadeStub{}
	stub.ListFn = func(_ context.Context, _ model.Actor, status *model.OrderStatus, page, pageSize int) ([]model.Order, error) {
		gotStatus, gotPage, gotPageSize = status, page, pageSize
		return nil, nil
	}
	engine := newOrderTestRouter(stub, model.Actor{ID: 10, Role: model.RoleStaff})

	rec := doJSON(t, engine, http.MethodGet, "/api/orders?status=pending&page=2&page_size=5", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotStatus == nil || *gotStatus != model.OrderStatusPending || gotPage != 2 || gotPageSize != 5 {
		t.Fatalf("unexpected query parse: %v %d %d", gotStatus, gotPage, gotPageSize)
	}
	if rec.Body.String() != "[]" {
		t.Fatalf("expected empty array body, got %s", rec.Body.String())
	}
}

func TestLogsHandler(t *testing.T) {
	engine := newOrderTestRouter(testhelpers.ServiceFacadeStub{}, model.Actor{ID: 10, Role: model.RoleStaff})

	rec := doJSON(t, engine, http.MethodGet, "/api/orders/7/logs", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp []dto.OrderLogResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || len(resp) != 1 {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
	if resp[0].Action != string(model.LogActionCreate) {
		t.Fatalf("unexpected entry %+v", resp[0])
	}
}

func TestUploadHandler(t *testing.T) {
	store, err := upload.NewStore(t.TempDir(), 1024, "")
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.POST("/api/upload", NewUploadHandler(store).Upload)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "photo.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	_, _ = part.Write([]byte("imagedata"))
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp dto.UploadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || !strings.HasPrefix(resp.URL, "/uploads/") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/upload", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without file, got %d", rec.Code)
	}
}

var _ ServiceFacade = testhelpers.ServiceFacadeStub{}
