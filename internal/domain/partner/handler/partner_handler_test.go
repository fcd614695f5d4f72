package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"yumzy/internal/domain/partner/model"
	"yumzy/internal/domain/partner/service"
	"yumzy/internal/pkg/middleware"
	baseModel "yumzy/pkg/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockPartnerService struct {
	mock.Mock
}

func (m *MockPartnerService) Register(params service.RegisterParams) (*service.AuthResult, error) {
	args := m.Called(params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockPartnerService) Login(email, password string) (*service.AuthResult, error) {
	args := m.Called(email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockPartnerService) GetPartner(id string) (*model.FoodPartner, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FoodPartner), args.Error(1)
}

func (m *MockPartnerService) UpdateProfile(id string, params service.ProfileParams) (*model.FoodPartner, error) {
	args := m.Called(id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FoodPartner), args.Error(1)
}

func init() {
	gin.SetMode(gin.TestMode)
}

func sendJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPartnerRegisterHandler(t *testing.T) {
	svc := new(MockPartnerService)
	h := NewPartnerHandler(svc, false)
	r := gin.New()
	r.POST("/register", h.Register)

	expire := time.Now().Add(time.Hour)
	input := RegisterInput{Name: "Spice Hub", ContactName: "Ravi", Phone: "999", Email: "spice@example.com", Password: "secret123"}
	svc.On("Register", mock.MatchedBy(func(p service.RegisterParams) bool { return p.Email == "spice@example.com" })).
		Return(&service.AuthResult{
			Partner:  &model.FoodPartner{BaseModel: baseModel.BaseModel{ID: "partner-1"}, Password: "hash"},
			Token:    "partner-token",
			ExpireAt: &expire,
		}, nil).Once()
	svc.On("Register", mock.Anything).Return(nil, service.ErrPartnerExists)

	w := sendJSON(r, http.MethodPost, "/register", input)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), middleware.PartnerTokenCookie+"=partner-token")
	assert.NotContains(t, w.Body.String(), "hash")

	w = sendJSON(r, http.MethodPost, "/register", input)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Food partner already exists")
}

func TestPartnerUpdateProfileHandler(t *testing.T) {
	svc := new(MockPartnerService)
	h := NewPartnerHandler(svc, false)
	r := gin.New()
	r.PUT("/profile", func(c *gin.Context) {
		c.Set("partnerID", "partner-1")
		c.Next()
	}, h.UpdateProfile)

	svc.On("UpdateProfile", "partner-1", mock.MatchedBy(func(p service.ProfileParams) bool {
		return p.Address != nil && *p.Address == "MG Road" && p.Logo == nil
	})).Return(&model.FoodPartner{BaseModel: baseModel.BaseModel{ID: "partner-1"}}, nil)

	w := sendJSON(r, http.MethodPut, "/profile", map[string]string{"address": "MG Road"})

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestPartnerLoginHandler(t *testing.T) {
	svc := new(MockPartnerService)
	h := NewPartnerHandler(svc, false)
	r := gin.New()
	r.POST("/login", h.Login)

	svc.On("Login", "spice@example.com", "bad").Return(nil, service.ErrInvalidCredentials)

	w := sendJSON(r, http.MethodPost, "/login", LoginInput{Email: "spice@example.com", Password: "bad"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
}
