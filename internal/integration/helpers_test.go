package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/cinealto/cinema-reservation-api/internal/domain"
)

// Fields that change between runs and are excluded from response comparison.
var keysToIgnore = map[string]struct{}{
	"timestamp": {},
	"requestId": {},
	"createdAt": {},
	"reference": {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string, cookies []*http.Cookie) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	return req, nil
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanMap(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, ok := keysToIgnore[k]
		return ok
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanMap(m map[string]any) {
	for k := range m {
		if _, ok := keysToIgnore[k]; ok {
			delete(m, k)
			continue
		}
		if nested, ok := m[k].(map[string]any); ok {
			cleanMap(nested)
		}
	}
}

func jsonBody(t testing.TB, v any) io.Reader {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)

	return bytes.NewReader(data)
}

// createTestUser inserts a user directly; the bcrypt hash is computed at
// runtime so the plaintext password stays usable for login.
func createTestUser(t testing.TB, app *TestApp, firstName, email, password string, role domain.Role) int {
	t.Helper()

	user := &domain.User{
		FirstName: firstName,
		LastName:  "Tester",
		Email:     email,
		Role:      role,
	}
	require.NoError(t, user.Password.Set(password))

	var id int
	err := app.DB.QueryRow(
		context.Background(),
		`INSERT INTO users (first_name, last_name, email, password_hash, role)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash
		 RETURNING id`,
		user.FirstName, user.LastName, user.Email, user.Password.Hash, string(user.Role),
	).Scan(&id)
	require.NoError(t, err)

	return id
}

// loginCookies logs in through the real login endpoint and returns the
// session cookies for subsequent requests.
func loginCookies(t testing.TB, app *TestApp, email, password string) []*http.Cookie {
	t.Helper()

	body := jsonBody(t, map[string]string{"email": email, "password": password})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	app.App.Routes().ServeHTTP(rec, req)

	res := rec.Result()
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode, "login failed for %s", email)
	require.NotEmpty(t, res.Cookies())

	return res.Cookies()
}

// doRequest runs one request through the router and decodes the JSON body
// into out when it is non-nil.
func doRequest(t testing.TB, app *TestApp, method, url string, body any, cookies []*http.Cookie, out any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		reader = jsonBody(t, body)
	}

	req, err := prepareRequest(method, url, reader, nil, cookies)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	app.App.Routes().ServeHTTP(rec, req)

	res := rec.Result()
	defer res.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(res.Body).Decode(out),
			"failed to decode %s %s response", method, url)
	} else {
		_, _ = io.Copy(io.Discard, res.Body)
	}

	return res
}

func truncateAll(t testing.TB, app *TestApp) {
	t.Helper()

	_, err := app.DB.Exec(context.Background(), `
		TRUNCATE TABLE payments, booking_seats, bookings, seat_statuses,
			time_ranges, available_time_ranges, sessions, incidents,
			seats, rooms, movies, cinemas, users
		RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
}

func errMessage(message string) string {
	return fmt.Sprintf(`{"message": %q}`, message)
}
