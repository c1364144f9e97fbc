package throttle_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"bitbucket.org/crgw/booking-notifier/internal/throttle"
	"bitbucket.org/crgw/booking-notifier/internal/tools/responding"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type limiterMock struct {
	allowMock func(ctx context.Context, key string) (bool, error)
}

func (l *limiterMock) Allow(ctx context.Context, key string) (bool, error) {
	return l.allowMock(ctx, key)
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		allowed        bool
		err            error
		expectedCode   int
		expectHandler  bool
		expectedLogged string
	}{
		{
			name:          "allowed",
			allowed:       true,
			expectedCode:  http.StatusOK,
			expectHandler: true,
		},
		{
			name:           "refused",
			allowed:        false,
			expectedCode:   http.StatusTooManyRequests,
			expectHandler:  false,
			expectedLogged: "Too many booking requests",
		},
		{
			name:           "limiter unavailable",
			err:            assert.AnError,
			expectedCode:   http.StatusOK,
			expectHandler:  true,
			expectedLogged: "Unable to check submission limit",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			log := zerolog.New(out)
			handlerCalled := false

			limiter := &limiterMock{
				allowMock: func(ctx context.Context, key string) (bool, error) {
					assert.Equal(t, "192.0.2.10", key)
					return test.allowed, test.err
				},
			}

			router := gin.New()
			router.Use(func(c *gin.Context) {
				c.Set(responding.LoggerKey, &log)
			})
			router.POST("/submit-booking", throttle.Middleware(limiter), func(c *gin.Context) {
				handlerCalled = true
				c.Status(http.StatusOK)
			})

			response := httptest.NewRecorder()
			request, err := http.NewRequest(http.MethodPost, "/submit-booking", nil)
			assert.NoError(t, err)
			request.RemoteAddr = "192.0.2.10:43210"

			router.ServeHTTP(response, request)

			assert.Equal(t, test.expectedCode, response.Code)
			assert.Equal(t, test.expectHandler, handlerCalled)
			if test.expectedLogged != "" {
				assert.Contains(t, out.String(), test.expectedLogged)
			}
			if test.expectedCode == http.StatusTooManyRequests {
				assert.JSONEq(t, `{"error":"Too many booking requests. Please try again later."}`, response.Body.String())
			}
		})
	}
}
