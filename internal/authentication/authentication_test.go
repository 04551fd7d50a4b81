package authentication

import (
	"Keyo/internal/config"
	"Keyo/internal/middlewares"
	"Keyo/utils"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/The127/ioc"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/suite"
)

const signingKey = "test-signing-key"

type AuthenticationSuite struct {
	suite.Suite
	router *mux.Router
}

func TestAuthenticationSuite(t *testing.T) {
	suite.Run(t, new(AuthenticationSuite))
}

func (s *AuthenticationSuite) SetupTest() {
	config.C.Auth.JwtSigningKey = signingKey

	dc := ioc.NewDependencyCollection()
	ioc.RegisterSingleton(dc, func(dp *ioc.DependencyProvider) ServiceKeyVerifier {
		return NewServiceKeyVerifier("plain-key", "")
	})
	dp := dc.BuildProvider()
	s.T().Cleanup(func() {
		utils.PanicOnError(dp.Close, "closing provider")
	})

	s.router = mux.NewRouter()
	s.router.Use(middlewares.ScopeMiddleware(dp))
	s.router.Use(Middleware())

	api := s.router.PathPrefix("/api").Subrouter()
	api.Use(RequireProfile())
	api.HandleFunc("/me", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(GetCurrentUser(r.Context()).String()))
	})

	internal := s.router.PathPrefix("/internal").Subrouter()
	internal.Use(RequireService())
	internal.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func (s *AuthenticationSuite) serve(r *http.Request) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	s.router.ServeHTTP(recorder, r)
	return recorder
}

func (s *AuthenticationSuite) TestValidBearerTokenResolvesProfile() {
	// arrange
	profileId := uuid.New()
	token, err := IssueProfileToken(profileId, signingKey, time.Now(), time.Hour)
	s.Require().NoError(err)

	request := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	request.Header.Set("Authorization", "Bearer "+token)

	// act
	response := s.serve(request)

	// assert
	s.Equal(http.StatusOK, response.Code)
	s.Equal(profileId.String(), response.Body.String())
}

func (s *AuthenticationSuite) TestMissingTokenIsUnauthorized() {
	response := s.serve(httptest.NewRequest(http.MethodGet, "/api/me", nil))

	s.Equal(http.StatusUnauthorized, response.Code)
}

func (s *AuthenticationSuite) TestTokenSignedWithOtherKeyIsRejected() {
	// arrange
	token, err := IssueProfileToken(uuid.New(), "other-key", time.Now(), time.Hour)
	s.Require().NoError(err)

	request := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	request.Header.Set("Authorization", "Bearer "+token)

	// act
	response := s.serve(request)

	// assert
	s.Equal(http.StatusUnauthorized, response.Code)
}

func (s *AuthenticationSuite) TestExpiredTokenIsRejected() {
	// arrange
	token, err := IssueProfileToken(uuid.New(), signingKey, time.Now().Add(-2*time.Hour), time.Hour)
	s.Require().NoError(err)

	request := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	request.Header.Set("Authorization", "Bearer "+token)

	// act
	response := s.serve(request)

	// assert
	s.Equal(http.StatusUnauthorized, response.Code)
}

func (s *AuthenticationSuite) TestServiceKeyOpensInternalRoutes() {
	// arrange
	request := httptest.NewRequest(http.MethodGet, "/internal/ping", nil)
	request.Header.Set(ServiceKeyHeader, "plain-key")

	// act
	response := s.serve(request)

	// assert
	s.Equal(http.StatusNoContent, response.Code)
}

func (s *AuthenticationSuite) TestWrongServiceKeyIsRejected() {
	// arrange
	request := httptest.NewRequest(http.MethodGet, "/internal/ping", nil)
	request.Header.Set(ServiceKeyHeader, "guess")

	// act
	response := s.serve(request)

	// assert
	s.Equal(http.StatusUnauthorized, response.Code)
}

func (s *AuthenticationSuite) TestProfileCannotReachInternalRoutes() {
	// arrange
	token, err := IssueProfileToken(uuid.New(), signingKey, time.Now(), time.Hour)
	s.Require().NoError(err)

	request := httptest.NewRequest(http.MethodGet, "/internal/ping", nil)
	request.Header.Set("Authorization", "Bearer "+token)

	// act
	response := s.serve(request)

	// assert
	s.Equal(http.StatusUnauthorized, response.Code)
}

func (s *AuthenticationSuite) TestHashedServiceKey() {
	// arrange
	verifier := NewServiceKeyVerifier("", utils.HashSecret("hashed-key"))

	// act & assert
	s.True(verifier.Verify("hashed-key"))
	s.True(verifier.Verify("hashed-key"))
	s.False(verifier.Verify("other"))
	s.False(verifier.Verify(""))
}

func (s *AuthenticationSuite) TestHashedServiceKeyOutcomesAreRemembered() {
	// arrange
	verifier := NewServiceKeyVerifier("", utils.HashSecret("hashed-key"))

	// act
	verifier.Verify("hashed-key")
	verifier.Verify("other")
	verifier.Verify("other")

	// assert
	cache := verifier.(*serviceKeyVerifier).verified
	s.Equal(2, cache.Len())
	valid, ok := cache.TryGet(utils.CheapHash("other"))
	s.True(ok)
	s.False(valid)
}

func (s *AuthenticationSuite) TestUnconfiguredServiceKeyNeverVerifies() {
	verifier := NewServiceKeyVerifier("", "")

	s.False(verifier.Verify("anything"))
}
