package integration_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/cinealto/cinema-reservation-api/internal/domain"
)

type AuthSuite struct {
	BaseSuite
}

func TestAuthSuite(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}
	suite.Run(t, new(AuthSuite))
}

func (s *AuthSuite) TestLogin() {
	scenarios := []Scenario{
		{
			Name:           "rejects malformed credentials",
			Method:         http.MethodPost,
			URL:            "/api/auth/login",
			Body:           jsonBody(s.T(), map[string]string{"email": "not-an-email", "password": "short"}),
			ExpectedStatus: http.StatusUnprocessableEntity,
		},
		{
			Name:             "rejects unknown users",
			Method:           http.MethodPost,
			URL:              "/api/auth/login",
			Body:             jsonBody(s.T(), map[string]string{"email": "ghost@example.com", "password": "Whatever1!pass"}),
			ExpectedStatus:   http.StatusUnauthorized,
			ExpectedResponse: errMessage("invalid credentials"),
		},
		{
			Name:           "rejects a wrong password",
			Method:         http.MethodPost,
			URL:            "/api/auth/login",
			Body:           jsonBody(s.T(), map[string]string{"email": customerEmail, "password": "Wrong123!pass"}),
			ExpectedStatus: http.StatusUnauthorized,
			BeforeTestFunc: func(t testing.TB, app *TestApp) {
				createTestUser(t, app, "Carl", customerEmail, customerPassword, domain.RoleCustomer)
			},
			ExpectedResponse: errMessage("invalid credentials"),
		},
		{
			Name:           "logs in with valid credentials",
			Method:         http.MethodPost,
			URL:            "/api/auth/login",
			Body:           jsonBody(s.T(), map[string]string{"email": customerEmail, "password": customerPassword}),
			ExpectedStatus: http.StatusOK,
			BeforeTestFunc: func(t testing.TB, app *TestApp) {
				createTestUser(t, app, "Carl", customerEmail, customerPassword, domain.RoleCustomer)
			},
			AfterTestFunc: func(t testing.TB, app *TestApp, res *http.Response) {
				if len(res.Cookies()) == 0 {
					t.Errorf("expected a session cookie after login")
				}
			},
		},
	}

	for _, scenario := range scenarios {
		scenario.Run(s.T(), s.app)
	}
}

func (s *AuthSuite) TestAdminEndpointsRequireAdminRole() {
	createTestUser(s.T(), s.app, "Carl", customerEmail, customerPassword, domain.RoleCustomer)
	cookies := loginCookies(s.T(), s.app, customerEmail, customerPassword)

	scenarios := []Scenario{
		{
			Name:             "anonymous users cannot create cinemas",
			Method:           http.MethodPost,
			URL:              "/api/cinemas",
			ExpectedStatus:   http.StatusUnauthorized,
			ExpectedResponse: errMessage("You must be authenticated to access this resource"),
		},
		{
			Name:             "customers cannot create cinemas",
			Method:           http.MethodPost,
			URL:              "/api/cinemas",
			Cookies:          cookies,
			ExpectedStatus:   http.StatusForbidden,
			ExpectedResponse: errMessage("You do not have permission to access this resource"),
		},
	}

	for _, scenario := range scenarios {
		scenario.Run(s.T(), s.app)
	}
}

func (s *AuthSuite) TestHealthcheck() {
	scenario := Scenario{
		Name:           "healthcheck reports availability",
		Method:         http.MethodGet,
		URL:            "/healthcheck",
		ExpectedStatus: http.StatusOK,
	}

	scenario.Run(s.T(), s.app)
}
