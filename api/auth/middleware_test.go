package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

type MiddlewareTestSuite struct {
	suite.Suite
	router *gin.Engine
}

func (s *MiddlewareTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	store := cookie.NewStore([]byte("test-secret"))
	s.router.Use(sessions.Sessions("test_session", store))

	// Test-only login endpoint to set a session identity.
	s.router.GET("/test-login/:username", func(c *gin.Context) {
		session := sessions.Default(c)
		session.Set(SessionUserKey, c.Param("username"))
		s.Require().NoError(session.Save())
		c.Status(http.StatusOK)
	})

	s.router.GET("/protected", RequireAuth(), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextUserKey))
	})
	s.router.GET("/users/:username", RequireUser("username"), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextUserKey))
	})
}

func (s *MiddlewareTestSuite) login(username string) []*http.Cookie {
	req := httptest.NewRequest("GET", "/test-login/"+username, nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Require().Equal(http.StatusOK, w.Code)
	return w.Result().Cookies()
}

func (s *MiddlewareTestSuite) get(path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *MiddlewareTestSuite) TestRequireAuthWithoutSession() {
	w := s.get("/protected", nil)
	s.Equal(http.StatusFound, w.Code)
	s.Equal("/login", w.Header().Get("Location"))
}

func (s *MiddlewareTestSuite) TestRequireAuthWithSession() {
	cookies := s.login("alice")
	w := s.get("/protected", cookies)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("alice", w.Body.String())
}

func (s *MiddlewareTestSuite) TestRequireUserWithoutSession() {
	w := s.get("/users/alice", nil)
	s.Equal(http.StatusFound, w.Code)
	s.Equal("/login", w.Header().Get("Location"))
}

func (s *MiddlewareTestSuite) TestRequireUserMismatch() {
	cookies := s.login("bob")
	w := s.get("/users/alice", cookies)
	s.Equal(http.StatusFound, w.Code)
	s.Equal("/login", w.Header().Get("Location"))
}

func (s *MiddlewareTestSuite) TestRequireUserMatch() {
	cookies := s.login("alice")
	w := s.get("/users/alice", cookies)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("alice", w.Body.String())
}

func TestMiddlewareTestSuite(t *testing.T) {
	suite.Run(t, new(MiddlewareTestSuite))
}
