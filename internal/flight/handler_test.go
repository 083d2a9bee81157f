package flight

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"flights/pkg/logger"
)

type MockOfferService struct {
	mock.Mock
}

func (m *MockOfferService) GetAllOffers(ctx context.Context) (*OffersResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*OffersResponse), args.Error(1)
}

func (m *MockOfferService) SearchOffers(ctx context.Context, q QuerySpec) (*OffersResponse, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*OffersResponse), args.Error(1)
}

func (m *MockOfferService) BookOffer(ctx context.Context, req BookingRequest) (*Booking, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func setupRouter(svc OfferService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewOfferHandler(svc, logger.NewNop()).RegisterRoutes(router)
	return router
}

func perform(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestOfferHandler_Search(t *testing.T) {
	t.Run("binds query", func(t *testing.T) {
		svc := new(MockOfferService)
		svc.On("SearchOffers", mock.Anything, mock.MatchedBy(func(q QuerySpec) bool {
			return q.MinPrice != nil && *q.MinPrice == 300 && q.MaxPrice == nil &&
				q.OrderBy == "price" && q.CompanyName == "Airline A"
		})).Return(&OffersResponse{Offers: []Offer{offer("XYZ789", 350)}}, nil)

		w := perform(setupRouter(svc), http.MethodGet, "/v1/offers?minPrice=300&orderBy=price&companyName=Airline%20A", "")

		assert.Equal(t, http.StatusOK, w.Code)
		var resp OffersResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, []string{"XYZ789"}, ids(resp.Offers))
		svc.AssertExpectations(t)
	})

	t.Run("malformed price", func(t *testing.T) {
		svc := new(MockOfferService)

		w := perform(setupRouter(svc), http.MethodGet, "/v1/offers?minPrice=cheap", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, string(ErrorCodeValidation), decodeError(t, w)["code"])
		svc.AssertNotCalled(t, "SearchOffers", mock.Anything, mock.Anything)
	})

	t.Run("negative price", func(t *testing.T) {
		svc := new(MockOfferService)

		w := perform(setupRouter(svc), http.MethodGet, "/v1/offers?maxPrice=-5", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("validation error from service", func(t *testing.T) {
		svc := new(MockOfferService)
		svc.On("SearchOffers", mock.Anything, mock.Anything).
			Return(nil, NewValidationError(errors.New("minPrice must not be greater than maxPrice")))

		w := perform(setupRouter(svc), http.MethodGet, "/v1/offers?minPrice=9&maxPrice=1", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestOfferHandler_GetAll_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   ErrorCode
	}{
		{name: "no offers", err: ErrNoOffersAvailable, wantStatus: http.StatusNotFound, wantCode: ErrorCodeNoOffers},
		{name: "deadline", err: fmt.Errorf("%w: %w", ErrNoOffersAvailable, context.DeadlineExceeded), wantStatus: http.StatusGatewayTimeout, wantCode: ErrorCodeTimeout},
		{name: "unexpected", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantCode: ErrorCodeInternalFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockOfferService)
			svc.On("GetAllOffers", mock.Anything).Return(nil, tt.err)

			w := perform(setupRouter(svc), http.MethodGet, "/v1/offers/all", "")

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, string(tt.wantCode), decodeError(t, w)["code"])
		})
	}
}

func TestOfferHandler_GetAll(t *testing.T) {
	svc := new(MockOfferService)
	svc.On("GetAllOffers", mock.Anything).Return(&OffersResponse{
		Metadata: Metadata{TotalResults: 1, CacheHit: true},
		Offers:   []Offer{offer("ABC123", 250)},
	}, nil)

	w := perform(setupRouter(svc), http.MethodGet, "/v1/offers/all", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"cacheHit":true`)
	assert.Contains(t, w.Body.String(), `"offerId":"ABC123"`)
}

func TestOfferHandler_Book(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := new(MockOfferService)
		svc.On("BookOffer", mock.Anything, BookingRequest{ProviderID: 1, OfferID: "ABC123"}).
			Return(&Booking{Reference: "BK1", Offer: offer("ABC123", 250)}, nil)

		w := perform(setupRouter(svc), http.MethodPost, "/v1/offers/book", `{"providerId":1,"offerId":"ABC123"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"reference":"BK1"`)
	})

	t.Run("missing fields", func(t *testing.T) {
		svc := new(MockOfferService)

		w := perform(setupRouter(svc), http.MethodPost, "/v1/offers/book", `{"offerId":"ABC123"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "BookOffer", mock.Anything, mock.Anything)
	})

	t.Run("malformed json", func(t *testing.T) {
		w := perform(setupRouter(new(MockOfferService)), http.MethodPost, "/v1/offers/book", `{`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   ErrorCode
	}{
		{name: "unknown provider", err: fmt.Errorf("%w: 9", ErrUnknownProvider), wantStatus: http.StatusNotFound, wantCode: ErrorCodeUnknownProvider},
		{name: "offer not found", err: fmt.Errorf("avia-one: %w", ErrOfferNotFound), wantStatus: http.StatusNotFound, wantCode: ErrorCodeOfferNotFound},
		{name: "adapter failure", err: &ProviderError{Provider: "remote", Code: ErrorCodeProviderFailure, Err: errors.New("503")}, wantStatus: http.StatusBadGateway, wantCode: ErrorCodeProviderFailure},
		{name: "adapter timeout", err: &ProviderError{Provider: "remote", Code: ErrorCodeTimeout, Err: context.DeadlineExceeded}, wantStatus: http.StatusGatewayTimeout, wantCode: ErrorCodeTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockOfferService)
			svc.On("BookOffer", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := perform(setupRouter(svc), http.MethodPost, "/v1/offers/book", `{"providerId":9,"offerId":"X"}`)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, string(tt.wantCode), decodeError(t, w)["code"])
		})
	}
}
