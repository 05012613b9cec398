package v1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	v1 "github.com/gatherly/gatherly-api/internal/api/handler/v1"
	"github.com/gatherly/gatherly-api/internal/domain"
	"github.com/gatherly/gatherly-api/internal/service"
)

type MockEventService struct {
	mock.Mock
}

func (m *MockEventService) ListEvents(ctx context.Context, filter domain.EventFilter) ([]domain.Event, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Event), args.Error(1)
}

func (m *MockEventService) CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	args := m.Called(ctx, event)
	return args.Get(0).(domain.Event), args.Error(1)
}

func (m *MockEventService) GetEvent(ctx context.Context, id uint) (domain.Event, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Event), args.Error(1)
}

func (m *MockEventService) ListEventParticipants(ctx context.Context, eventID uint, page, pageSize int) ([]domain.Participant, error) {
	args := m.Called(ctx, eventID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Participant), args.Error(1)
}

func (m *MockEventService) UpdateEvent(ctx context.Context, id uint, patch domain.EventPatch, callerID uint) (domain.Event, error) {
	args := m.Called(ctx, id, patch, callerID)
	return args.Get(0).(domain.Event), args.Error(1)
}

func (m *MockEventService) DeleteEvent(ctx context.Context, id uint, callerID uint) error {
	args := m.Called(ctx, id, callerID)
	return args.Error(0)
}

func setupEventRouter(svc v1.EventService, callerID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := v1.NewEventHandler(svc)

	group := router.Group("/api/v1")
	if callerID != 0 {
		group.Use(asCaller(callerID))
	}
	group.GET("/events/", h.HandleListEvents)
	group.POST("/events/", h.HandleCreateEvent)
	group.GET("/events/:eventID", h.HandleGetEvent)
	group.GET("/events/:eventID/participants", h.HandleListEventParticipants)
	group.PUT("/events/:eventID", h.HandleUpdateEvent)
	group.DELETE("/events/:eventID", h.HandleDeleteEvent)

	return router
}

func TestHandleListEvents(t *testing.T) {
	t.Run("no filters", func(t *testing.T) {
		svc := new(MockEventService)
		router := setupEventRouter(svc, 3)

		svc.On("ListEvents", mock.Anything, domain.EventFilter{}).Return([]domain.Event{
			{ID: 1, Title: "GopherCon", Date: time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/events/", nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusOK, resp.Code)

		var got []map[string]any
		assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
		assert.Len(t, got, 1)
		assert.Equal(t, "2026-09-12", got[0]["date"])
	})

	t.Run("query filters are forwarded", func(t *testing.T) {
		svc := new(MockEventService)
		router := setupEventRouter(svc, 3)

		date := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)
		svc.On("ListEvents", mock.Anything, domain.EventFilter{
			Title:     "con",
			Date:      &date,
			Location:  "berlin",
			EventType: "conf",
		}).Return([]domain.Event{}, nil)

		req := httptest.NewRequest(http.MethodGet,
			"/api/v1/events/?title=con&date=2026-09-12&location=berlin&event_type=conf", nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusOK, resp.Code)
		svc.AssertExpectations(t)
	})

	t.Run("unparsable date filter is dropped, not an error", func(t *testing.T) {
		svc := new(MockEventService)
		router := setupEventRouter(svc, 3)

		svc.On("ListEvents", mock.Anything, domain.EventFilter{}).Return([]domain.Event{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/events/?date=garbage", nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusOK, resp.Code)
		svc.AssertCalled(t, "ListEvents", mock.Anything, domain.EventFilter{})
	})
}

func TestHandleCreateEvent(t *testing.T) {
	t.Run("valid payload returns 201", func(t *testing.T) {
		svc := new(MockEventService)
		router := setupEventRouter(svc, 3)

		svc.On("CreateEvent", mock.Anything, mock.MatchedBy(func(e domain.Event) bool {
			return e.Title == "GopherCon" && e.Date.Equal(time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC))
		})).Return(domain.Event{ID: 1, Title: "GopherCon", Date: time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)}, nil)

		body := bytes.NewBufferString(`{"title": "GopherCon", "date": "2026-09-12", "event_type": "conference"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/events/", body)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusCreated, resp.Code)
	})

	t.Run("missing title returns 400", func(t *testing.T) {
		svc := new(MockEventService)
		router := setupEventRouter(svc, 3)

		body := bytes.NewBufferString(`{"date": "2026-09-12", "event_type": "conference"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/events/", body)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusBadRequest, resp.Code)
		svc.AssertNotCalled(t, "CreateEvent", mock.Anything, mock.Anything)
	})

	t.Run("unparsable date returns 400", func(t *testing.T) {
		svc := new(MockEventService)
		router := setupEventRouter(svc, 3)

		body := bytes.NewBufferString(`{"title": "GopherCon", "date": "12/09/2026", "event_type": "conference"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/events/", body)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})
}

func TestHandleGetEvent(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := new(MockEventService)
		router := setupEventRouter(svc, 3)

		svc.On("GetEvent", mock.Anything, uint(4)).Return(domain.Event{
			ID:           4,
			Title:        "GopherCon",
			Date:         time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
			Participants: []domain.Participant{{ID: 3, Username: "alice"}},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/events/4", nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusOK, resp.Code)

		var got map[string]any
		assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
		participants, ok := got["participants"].([]any)
		assert.True(t, ok)
		assert.Len(t, participants, 1)
	})

	t.Run("not found", func(t *testing.T) {
		svc := new(MockEventService)
		router := setupEventRouter(svc, 3)

		svc.On("GetEvent", mock.Anything, uint(99)).Return(domain.Event{}, service.ErrEventNotFound)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/events/99", nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusNotFound, resp.Code)
	})

	t.Run("non-numeric id returns 400", func(t *testing.T) {
		svc := new(MockEventService)
		router := setupEventRouter(svc, 3)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/events/abc", nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})
}

func TestHandleListEventParticipants(t *testing.T) {
	t.Run("default paging", func(t *testing.T) {
		svc := new(MockEventService)
		router := setupEventRouter(svc, 3)

		svc.On("ListEventParticipants", mock.Anything, uint(4), 1, 50).
			Return([]domain.Participant{{ID: 3, Username: "alice"}}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/events/4/participants", nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusOK, resp.Code)
	})

	t.Run("explicit paging", func(t *testing.T) {
		svc := new(MockEventService)
		router := setupEventRouter(svc, 3)

		svc.On("ListEventParticipants", mock.Anything, uint(4), 2, 10).
			Return([]domain.Participant{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/events/4/participants?page=2&page_size=10", nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusOK, resp.Code)
		svc.AssertExpectations(t)
	})
}

func TestHandleUpdateEvent(t *testing.T) {
	t.Run("organizer updates the title", func(t *testing.T) {
		svc := new(MockEventService)
		router := setupEventRouter(svc, 3)

		svc.On("UpdateEvent", mock.Anything, uint(4), mock.MatchedBy(func(p domain.EventPatch) bool {
			return p.Title != nil && *p.Title == "GopherCon EU" && p.Location == nil
		}), uint(3)).Return(domain.Event{ID: 4, Title: "GopherCon EU"}, nil)

		body := bytes.NewBufferString(`{"title": "GopherCon EU"}`)
		req := httptest.NewRequest(http.MethodPut, "/api/v1/events/4", body)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusOK, resp.Code)
	})

	t.Run("non-organizer returns 403", func(t *testing.T) {
		svc := new(MockEventService)
		router := setupEventRouter(svc, 3)

		svc.On("UpdateEvent", mock.Anything, uint(4), mock.Anything, uint(3)).
			Return(domain.Event{}, service.ErrNotOrganizer)

		body := bytes.NewBufferString(`{"title": "Hijacked"}`)
		req := httptest.NewRequest(http.MethodPut, "/api/v1/events/4", body)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusForbidden, resp.Code)
	})

	t.Run("unauthenticated caller returns 401", func(t *testing.T) {
		svc := new(MockEventService)
		router := setupEventRouter(svc, 0)

		body := bytes.NewBufferString(`{"title": "GopherCon EU"}`)
		req := httptest.NewRequest(http.MethodPut, "/api/v1/events/4", body)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusUnauthorized, resp.Code)
		svc.AssertNotCalled(t, "UpdateEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestHandleDeleteEvent(t *testing.T) {
	t.Run("deleted returns 204", func(t *testing.T) {
		svc := new(MockEventService)
		router := setupEventRouter(svc, 3)

		svc.On("DeleteEvent", mock.Anything, uint(4), uint(3)).Return(nil)

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/events/4", nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusNoContent, resp.Code)
	})

	t.Run("not found", func(t *testing.T) {
		svc := new(MockEventService)
		router := setupEventRouter(svc, 3)

		svc.On("DeleteEvent", mock.Anything, uint(99), uint(3)).Return(service.ErrEventNotFound)

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/events/99", nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusNotFound, resp.Code)
	})

	t.Run("non-organizer returns 403", func(t *testing.T) {
		svc := new(MockEventService)
		router := setupEventRouter(svc, 3)

		svc.On("DeleteEvent", mock.Anything, uint(4), uint(3)).Return(service.ErrNotOrganizer)

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/events/4", nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusForbidden, resp.Code)
	})
}
