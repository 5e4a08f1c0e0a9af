package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/RoyceAzure/lab/pos/internal/constants"
	"github.com/RoyceAzure/lab/pos/internal/domain/model"
	cmd_model "github.com/RoyceAzure/lab/pos/internal/domain/model/command"
	"github.com/RoyceAzure/lab/pos/internal/service"
	"github.com/stretchr/testify/mock"
)

type mockSessions struct {
	mock.Mock
}

func (m *mockSessions) Register(ctx context.Context, email, password string) (*model.User, error) {
	args := m.Called(ctx, email, password)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockSessions) SignIn(ctx context.Context, email, password string) (*model.Session, error) {
	args := m.Called(ctx, email, password)
	s, _ := args.Get(0).(*model.Session)
	return s, args.Error(1)
}

func (m *mockSessions) SignOut(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockSessions) Resolve(ctx context.Context, token string) (*service.Terminal, error) {
	args := m.Called(ctx, token)
	t, _ := args.Get(0).(*service.Terminal)
	return t, args.Error(1)
}

type mockDispatcher struct {
	mock.Mock
}

func (m *mockDispatcher) HandleCommand(ctx context.Context, cmd cmd_model.Command) (any, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0), args.Error(1)
}

type mockContacts struct {
	mock.Mock
}

func (m *mockContacts) ListClients(ctx context.Context) ([]model.Client, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).([]model.Client)
	return c, args.Error(1)
}

func (m *mockContacts) SaveClient(ctx context.Context, client *model.Client) error {
	return m.Called(ctx, client).Error(0)
}

func (m *mockContacts) DeleteClient(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockContacts) ListSuppliers(ctx context.Context) ([]model.Supplier, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).([]model.Supplier)
	return s, args.Error(1)
}

func (m *mockContacts) SaveSupplier(ctx context.Context, supplier *model.Supplier) error {
	return m.Called(ctx, supplier).Error(0)
}

func (m *mockContacts) DeleteSupplier(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type mockProducts struct {
	mock.Mock
}

func (m *mockProducts) List(ctx context.Context, t *service.Terminal, q string) []model.Product {
	args := m.Called(ctx, t, q)
	p, _ := args.Get(0).([]model.Product)
	return p
}

func (m *mockProducts) Create(ctx context.Context, in service.ProductInput) (*model.Product, error) {
	args := m.Called(ctx, in)
	p, _ := args.Get(0).(*model.Product)
	return p, args.Error(1)
}

func (m *mockProducts) Update(ctx context.Context, id uint, in service.ProductInput) (*model.Product, error) {
	args := m.Called(ctx, id, in)
	p, _ := args.Get(0).(*model.Product)
	return p, args.Error(1)
}

func (m *mockProducts) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

var testIdentity = model.Identity{UserID: 7, Email: "cashier@pos.test"}

// newRequest 帶著收銀台的request，t 為nil代表未登入
func newRequest(method, target, body string, t *service.Terminal) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if t != nil {
		ctx := service.WithTerminal(req.Context(), t)
		ctx = context.WithValue(ctx, constants.AuthorizationIdentity, t.Identity())
		ctx = context.WithValue(ctx, constants.AuthorizationToken, t.Token())
		req = req.WithContext(ctx)
	}
	return req
}
