package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// TestMiddlewaresStacks ensures we get both public and ops middlewares
// stacks with exact number of elements in those stacks.
func TestMiddlewaresStacks(t *testing.T) {
	api := newTestAPIHandler(nil, nil)
	pub, ops := api.MiddlewaresStacks()
	assert.Equal(t, 7, len(*pub))
	assert.Equal(t, 5, len(*ops))
}

// TestChain ensures each middleware in the stack is called as well the handler.
func TestChain(t *testing.T) {
	var ca, cb, cc, ch bool
	queue := make(chan int, 4)

	middlewareA := func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			queue <- 1
			ca = true
			next(w, r, ps)
		}
	}
	middlewareB := func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			queue <- 2
			cb = true
			next(w, r, ps)
		}
	}
	middlewareC := func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			queue <- 3
			cc = true
			next(w, r, ps)
		}
	}
	middlewares := Middlewares{
		middlewareA,
		middlewareB,
		middlewareC,
	}

	handler := func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		queue <- 4
		ch = true
	}

	chained := (&middlewares).Chain(handler)
	req := httptest.NewRequest("GET", "/books", nil)
	w := httptest.NewRecorder()
	chained(w, req, nil)

	t.Run("check calling", func(t *testing.T) {
		assert.Equal(t, true, ca)
		assert.Equal(t, true, cb)
		assert.Equal(t, true, cc)
		assert.Equal(t, true, ch)
	})

	t.Run("check ordering", func(t *testing.T) {
		assert.Equal(t, 1, <-queue)
		assert.Equal(t, 2, <-queue)
		assert.Equal(t, 3, <-queue)
		assert.Equal(t, 4, <-queue)
	})

	t.Run("empty stack", func(t *testing.T) {
		called := false
		(&Middlewares{}).Chain(func(http.ResponseWriter, *http.Request, httprouter.Params) { called = true })(w, req, nil)
		assert.True(t, called)
	})
}

// TestRequestsCounterMiddleware ensures the request counter increment.
func TestRequestsCounterMiddleware(t *testing.T) {
	api := newTestAPIHandler(nil, nil)
	var got uint64
	h := api.RequestsCounterMiddleware(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		got = GetRequestNumberFromContext(r.Context())
	})
	for i := 1; i <= 3; i++ {
		h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/books", nil), nil)
		assert.Equal(t, uint64(i), got)
	}
	assert.Equal(t, uint64(3), api.stats.called)
}

// TestRequestIDMiddleware ensures a request id is set into context and headers.
func TestRequestIDMiddleware(t *testing.T) {
	var ctxID string
	var logger *zap.Logger
	handler := func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		ctxID = GetValueFromContext(r.Context(), RequestIDContextKey)
		logger, _ = r.Context().Value(LoggerContextKey).(*zap.Logger)
	}

	t.Run("new id", func(t *testing.T) {
		api := newTestAPIHandler(nil, nil)
		api.idsHandler = NewMockUIDHandler("abc", false)
		w := httptest.NewRecorder()
		api.RequestIDMiddleware(handler)(w, httptest.NewRequest(http.MethodGet, "/books", nil), nil)
		assert.Equal(t, "r:abc", ctxID)
		assert.Equal(t, "r:abc", w.Header().Get(RequestIDHeader))
		assert.NotNil(t, logger)
	})

	t.Run("valid incoming id is reused", func(t *testing.T) {
		api := newTestAPIHandler(nil, nil)
		api.idsHandler = NewIDsHandler()
		incoming := NewIDsHandler().RequestID()
		req := httptest.NewRequest(http.MethodGet, "/books", nil)
		req.Header.Set(RequestIDHeader, incoming)
		w := httptest.NewRecorder()
		api.RequestIDMiddleware(handler)(w, req, nil)
		assert.Equal(t, incoming, ctxID)
		assert.Equal(t, incoming, w.Header().Get(RequestIDHeader))
	})

	t.Run("invalid incoming id is replaced", func(t *testing.T) {
		api := newTestAPIHandler(nil, nil)
		api.idsHandler = NewIDsHandler()
		req := httptest.NewRequest(http.MethodGet, "/books", nil)
		req.Header.Set(RequestIDHeader, "forged")
		w := httptest.NewRecorder()
		api.RequestIDMiddleware(handler)(w, req, nil)
		assert.NotEqual(t, "forged", ctxID)
		assert.True(t, api.idsHandler.IsValidRequestID(ctxID))
	})
}

func TestStatsMiddleware(t *testing.T) {
	api := newTestAPIHandler(nil, nil)
	h := api.StatsMiddleware(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if ps.ByName("id") == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("ok"))
	})
	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/books", nil), nil)
	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/books/1", nil), httprouter.Params{{Key: "id", Value: "1"}})
	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/books/2", nil), httprouter.Params{{Key: "id", Value: "2"}})
	assert.Equal(t, map[int]uint64{http.StatusNotFound: 1, http.StatusOK: 2}, api.stats.status)
}

func TestCORSMiddleware(t *testing.T) {
	w := httptest.NewRecorder()
	CORSMiddleware(func(http.ResponseWriter, *http.Request, httprouter.Params) {})(w, httptest.NewRequest(http.MethodGet, "/books", nil), nil)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, RequestIDHeader, w.Header().Get("Access-Control-Expose-Headers"))
}

// TestPanicRecoveryMiddleware ensures a panicking handler still gets a json 500 response.
func TestPanicRecoveryMiddleware(t *testing.T) {
	api := newTestAPIHandler(nil, nil)
	h := api.PanicRecoveryMiddleware(func(http.ResponseWriter, *http.Request, httprouter.Params) {
		panic("boom")
	})
	w := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		h(w, httptest.NewRequest(http.MethodGet, "/books", nil), nil)
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"status":"error","message":"failed to process the request."}`, w.Body.String())
}

func TestCoreMiddleware(t *testing.T) {
	api := newTestAPIHandler(nil, nil)
	called := false
	req := httptest.NewRequest(http.MethodGet, "/books", nil)
	req = req.WithContext(context.WithValue(req.Context(), LoggerContextKey, zap.NewNop()))
	api.CoreMiddleware(func(http.ResponseWriter, *http.Request, httprouter.Params) { called = true })(httptest.NewRecorder(), req, nil)
	assert.True(t, called)
}
