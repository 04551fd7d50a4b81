package middlewares

import (
	"Keyo/internal/config"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/The127/ioc"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/suite"
)

type MiddlewaresSuite struct {
	suite.Suite
}

func TestMiddlewaresSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(MiddlewaresSuite))
}

func (s *MiddlewaresSuite) route(mw ...mux.MiddlewareFunc) *mux.Router {
	r := mux.NewRouter()
	r.Use(mw...)
	r.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.HandleFunc("/panic", func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	return r
}

func (s *MiddlewaresSuite) TestSslRedirect() {
	// arrange
	router := s.route(SecurityMiddleware(config.SecurityConfig{SslRedirect: true}))
	request := httptest.NewRequest(http.MethodGet, "http://keyo.example/ok?x=1", nil)
	recorder := httptest.NewRecorder()

	// act
	router.ServeHTTP(recorder, request)

	// assert
	s.Equal(http.StatusMovedPermanently, recorder.Code)
	s.Equal("https://keyo.example/ok?x=1", recorder.Header().Get("Location"))
}

func (s *MiddlewaresSuite) TestForwardedHttpsIsNotRedirected() {
	// arrange
	router := s.route(SecurityMiddleware(config.SecurityConfig{SslRedirect: true, HstsSeconds: 3600}))
	request := httptest.NewRequest(http.MethodGet, "http://keyo.example/ok", nil)
	request.Header.Set("X-Forwarded-Proto", "https")
	recorder := httptest.NewRecorder()

	// act
	router.ServeHTTP(recorder, request)

	// assert
	s.Equal(http.StatusOK, recorder.Code)
	s.Equal("max-age=3600; includeSubDomains", recorder.Header().Get("Strict-Transport-Security"))
	s.Equal("nosniff", recorder.Header().Get("X-Content-Type-Options"))
}

func (s *MiddlewaresSuite) TestNoHstsOnPlainHttp() {
	// arrange
	router := s.route(SecurityMiddleware(config.SecurityConfig{HstsSeconds: 3600}))
	recorder := httptest.NewRecorder()

	// act
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ok", nil))

	// assert
	s.Equal(http.StatusOK, recorder.Code)
	s.Empty(recorder.Header().Get("Strict-Transport-Security"))
}

func (s *MiddlewaresSuite) TestRecoverTurnsPanicIntoServerError() {
	// arrange
	router := s.route(RecoverMiddleware())
	recorder := httptest.NewRecorder()

	// act
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/panic", nil))

	// assert
	s.Equal(http.StatusInternalServerError, recorder.Code)
}

func (s *MiddlewaresSuite) TestScopeIsAvailableToHandlers() {
	// arrange
	dp := ioc.NewDependencyCollection().BuildProvider()
	router := mux.NewRouter()
	router.Use(ScopeMiddleware(dp), LoggingMiddleware())

	var scope *ioc.DependencyProvider
	router.HandleFunc("/scoped", func(w http.ResponseWriter, r *http.Request) {
		scope = GetScope(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	recorder := httptest.NewRecorder()

	// act
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/scoped", nil))

	// assert
	s.Equal(http.StatusNoContent, recorder.Code)
	s.NotNil(scope)
}
