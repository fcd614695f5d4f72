package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"yumzy/internal/domain/comment/model"
	"yumzy/internal/domain/comment/service"
	"yumzy/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) ListComments(foodID string, page utils.Pagination) (utils.PageResult, error) {
	args := m.Called(foodID, page)
	return args.Get(0).(utils.PageResult), args.Error(1)
}

func (m *MockCommentService) AddComment(userID, foodID, text string) (*model.Comment, error) {
	args := m.Called(userID, foodID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(svc service.CommentService) *gin.Engine {
	h := NewCommentHandler(svc)
	r := gin.New()
	r.GET("/comments/:foodId", h.GetComments)
	r.POST("/comments/:foodId", func(c *gin.Context) {
		c.Set("userID", "u1")
		c.Next()
	}, h.AddComment)
	return r
}

func TestAddCommentHandler(t *testing.T) {
	svc := new(MockCommentService)
	r := newRouter(svc)

	svc.On("AddComment", "u1", "f1", "Tasty").Return(&model.Comment{Text: "Tasty"}, nil)
	svc.On("AddComment", "u1", "f1", "  ").Return(nil, service.ErrEmptyComment)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/comments/f1", bytes.NewBufferString(`{"text":"Tasty"}`)))
	assert.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/comments/f1", bytes.NewBufferString(`{"text":"  "}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Comment cannot be empty")
}

func TestGetCommentsHandler(t *testing.T) {
	svc := new(MockCommentService)
	r := newRouter(svc)

	svc.On("ListComments", "f1", utils.Pagination{Page: 2, Limit: 5}).
		Return(utils.PageResult{List: []model.Comment{}, Total: 6, Page: 2, Limit: 5}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/comments/f1?page=2&limit=5", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":6`)
	svc.AssertExpectations(t)
}
