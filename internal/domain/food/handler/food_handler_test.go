package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"yumzy/internal/domain/food/model"
	"yumzy/internal/domain/food/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockFoodService struct {
	mock.Mock
}

func (m *MockFoodService) CreateFood(ctx context.Context, partnerID string, params service.CreateFoodParams) (*model.Food, error) {
	args := m.Called(partnerID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Food), args.Error(1)
}

func (m *MockFoodService) Feed(ctx context.Context) ([]model.Food, error) {
	args := m.Called()
	return args.Get(0).([]model.Food), args.Error(1)
}

func (m *MockFoodService) MyFood(partnerID string) ([]model.Food, error) {
	args := m.Called(partnerID)
	return args.Get(0).([]model.Food), args.Error(1)
}

func (m *MockFoodService) PartnerStore(partnerID string) (*service.Store, error) {
	args := m.Called(partnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Store), args.Error(1)
}

func (m *MockFoodService) GetFood(id string) (*model.Food, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Food), args.Error(1)
}

func (m *MockFoodService) LikeStatus(userID, foodID string) (*service.LikeState, error) {
	args := m.Called(userID, foodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LikeState), args.Error(1)
}

func (m *MockFoodService) ToggleLike(userID, foodID string) (*service.LikeState, error) {
	args := m.Called(userID, foodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LikeState), args.Error(1)
}

func init() {
	gin.SetMode(gin.TestMode)
}

func withIdentity(key, id string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(key, id)
		c.Next()
	}
}

func multipartBody(t *testing.T, fileField string, fields map[string]string) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileField != "" {
		part, err := w.CreateFormFile(fileField, "dish.mp4")
		require.NoError(t, err)
		_, err = part.Write([]byte("video-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestCreateFoodHandler(t *testing.T) {
	for _, field := range []string{"video", "vedio", "videoFile", "clip"} {
		t.Run("Accepts field "+field, func(t *testing.T) {
			svc := new(MockFoodService)
			h := NewFoodHandler(svc)
			r := gin.New()
			r.POST("/food", withIdentity("partnerID", "partner-1"), h.CreateFood)

			svc.On("CreateFood", "partner-1", mock.MatchedBy(func(p service.CreateFoodParams) bool {
				return p.Name == "Dosa" && p.Price == 90 && p.Video != nil && p.Video.Filename == "dish.mp4"
			})).Return(&model.Food{Name: "Dosa"}, nil)

			body, ct := multipartBody(t, field, map[string]string{"name": "Dosa", "price": "90"})
			req := httptest.NewRequest(http.MethodPost, "/food", body)
			req.Header.Set("Content-Type", ct)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusCreated, w.Code)
			svc.AssertExpectations(t)
		})
	}

	t.Run("Missing video", func(t *testing.T) {
		h := NewFoodHandler(new(MockFoodService))
		r := gin.New()
		r.POST("/food", withIdentity("partnerID", "partner-1"), h.CreateFood)

		body, ct := multipartBody(t, "", map[string]string{"name": "Dosa", "price": "90"})
		req := httptest.NewRequest(http.MethodPost, "/food", body)
		req.Header.Set("Content-Type", ct)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Video file is required")
	})
}

func TestToggleLikeHandler(t *testing.T) {
	svc := new(MockFoodService)
	h := NewFoodHandler(svc)
	r := gin.New()
	r.POST("/food/:id/like", withIdentity("userID", "u1"), h.ToggleLike)

	svc.On("ToggleLike", "u1", "f1").Return(&service.LikeState{Liked: true, Count: 1}, nil).Once()
	svc.On("ToggleLike", "u1", "f1").Return(&service.LikeState{Liked: false, Count: 0}, nil).Once()
	svc.On("ToggleLike", "u1", "nope").Return(nil, service.ErrFoodNotFound)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/food/f1/like", nil))
	assert.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/food/f1/like", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"liked":false`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/food/nope/like", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetFoodAndStoreNotFound(t *testing.T) {
	svc := new(MockFoodService)
	h := NewFoodHandler(svc)
	r := gin.New()
	r.GET("/food/:id", h.GetFoodByID)
	r.GET("/food/partner/:id", h.GetPartnerStore)

	svc.On("GetFood", "missing").Return(nil, service.ErrFoodNotFound)
	svc.On("PartnerStore", "ghost").Return(nil, service.ErrStoreNotFound)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/food/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Food item not found")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/food/partner/ghost", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Store not found")
}
