package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/contractlens/internal/client/models"
)

type fakeCreds struct {
	mu     sync.Mutex
	token  string
	clears int
}

func (f *fakeCreds) Token() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token, f.token != ""
}

func (f *fakeCreds) Revoke(_ context.Context, token string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.token == "" || f.token != token {
		return false
	}
	f.token = ""
	f.clears++
	return true
}

func (f *fakeCreds) set(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
}

// recorder is a fake backend that remembers the last request it saw.
type recorder struct {
	mu      sync.Mutex
	headers http.Header
	method  string
	path    string
	body    []byte
	ctype   string

	status int
	reply  string

	// onRequest runs while the request is in flight.
	onRequest func()
}

func (rec *recorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b, _ := io.ReadAll(r.Body)
	rec.mu.Lock()
	rec.headers = r.Header.Clone()
	rec.method = r.Method
	rec.path = r.URL.Path
	rec.body = b
	rec.ctype = r.Header.Get("Content-Type")
	status, reply, hook := rec.status, rec.reply, rec.onRequest
	rec.mu.Unlock()

	if hook != nil {
		hook()
	}

	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, reply)
}

func newTestClient(t *testing.T, rec *recorder, opts ...Option) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(rec)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL+"/api/v1/", opts...)
}

func TestOutgoing_NoCredentialWhenUnauthenticated(t *testing.T) {
	rec := &recorder{reply: `[]`}
	c := newTestClient(t, rec, WithCredentials(&fakeCreds{}))

	_, err := c.ListContracts(context.Background())
	require.NoError(t, err)

	assert.Empty(t, rec.headers.Values("Authorization"))
	assert.Equal(t, "/api/v1/contracts", rec.path)
}

func TestOutgoing_ExactlyOneBearerWhenAuthenticated(t *testing.T) {
	rec := &recorder{reply: `[]`}
	creds := &fakeCreds{token: "T1"}
	c := newTestClient(t, rec, WithCredentials(creds))

	_, err := c.ListContracts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Bearer T1"}, rec.headers.Values("Authorization"))

	// the header follows the current token, not the one at construction
	creds.mu.Lock()
	creds.token = "T2"
	creds.mu.Unlock()

	_, err = c.ListContracts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Bearer T2"}, rec.headers.Values("Authorization"))
}

func TestOutgoing_WithBearerWins(t *testing.T) {
	rec := &recorder{reply: `{"id":1,"email":"a@b.com"}`}
	c := newTestClient(t, rec, WithCredentials(&fakeCreds{token: "OLD"}))

	_, err := c.Me(WithBearer(context.Background(), "T1"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Bearer T1"}, rec.headers.Values("Authorization"))
}

func TestOutgoing_StandardHeaders(t *testing.T) {
	rec := &recorder{reply: `[]`}
	c := newTestClient(t, rec, WithUserAgent("contractlens/test"))

	_, err := c.ListContracts(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "application/json", rec.headers.Get("Accept"))
	assert.Equal(t, "contractlens/test", rec.headers.Get("User-Agent"))
	assert.True(t, strings.HasPrefix(rec.headers.Get("X-Request-ID"), "req_"))
}

func TestIncoming_UnauthorizedClearsSessionAndNotifiesOnce(t *testing.T) {
	rec := &recorder{status: http.StatusUnauthorized, reply: `{"detail":"Could not validate credentials"}`}
	creds := &fakeCreds{token: "T1"}
	calls := 0
	c := newTestClient(t, rec,
		WithCredentials(creds),
		WithSessionExpiredHandler(func(context.Context) {
			// the source must already be cleared when the handler runs
			_, ok := creds.Token()
			assert.False(t, ok)
			calls++
		}),
	)

	_, err := c.ListContracts(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)

	detail, ok := Detail(err)
	assert.True(t, ok)
	assert.Equal(t, "Could not validate credentials", detail)

	assert.Equal(t, 1, creds.clears)
	assert.Equal(t, 1, calls)

	_, ok = creds.Token()
	assert.False(t, ok)
}

func TestIncoming_UnauthorizedForReplacedCredentialKeepsNewSession(t *testing.T) {
	creds := &fakeCreds{token: "T1"}
	rec := &recorder{
		status:    http.StatusUnauthorized,
		reply:     `{"detail":"Could not validate credentials"}`,
		onRequest: func() { creds.set("T2") },
	}
	calls := 0
	c := newTestClient(t, rec,
		WithCredentials(creds),
		WithSessionExpiredHandler(func(context.Context) { calls++ }),
	)

	_, err := c.ListContracts(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "Bearer T1", rec.headers.Get("Authorization"))

	token, ok := creds.Token()
	assert.True(t, ok)
	assert.Equal(t, "T2", token)
	assert.Equal(t, 0, creds.clears)
	assert.Equal(t, 0, calls)
}

func TestIncoming_UnauthorizedWithoutCredentialDoesNotExpire(t *testing.T) {
	rec := &recorder{status: http.StatusUnauthorized, reply: `{"detail":"Incorrect email or password"}`}
	creds := &fakeCreds{}
	calls := 0
	c := newTestClient(t, rec,
		WithCredentials(creds),
		WithSessionExpiredHandler(func(context.Context) { calls++ }),
	)

	_, err := c.Login(context.Background(), "a@b.com", "wrong")
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, 0, creds.clears)
	assert.Equal(t, 0, calls)
}

func TestIncoming_OtherStatusesPropagateUntouched(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		reply    string
		sentinel error
		detail   string
	}{
		{"not found", http.StatusNotFound, `{"detail":"Contract not found"}`, ErrNotFound, "Contract not found"},
		{"unavailable", http.StatusServiceUnavailable, ``, ErrUnavailable, ""},
		{"validation", http.StatusBadRequest, `{"detail":"Only PDF and DOCX files are supported"}`, nil, "Only PDF and DOCX files are supported"},
		{"forbidden", http.StatusForbidden, `{"detail":"Not your contract"}`, nil, "Not your contract"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{status: tt.status, reply: tt.reply}
			creds := &fakeCreds{token: "T1"}
			calls := 0
			c := newTestClient(t, rec,
				WithCredentials(creds),
				WithSessionExpiredHandler(func(context.Context) { calls++ }),
			)

			_, err := c.GetContract(context.Background(), 7)
			require.Error(t, err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.detail, apiErr.Detail)
			assert.True(t, strings.HasPrefix(apiErr.RequestID, "req_"))
			if tt.sentinel != nil {
				assert.ErrorIs(t, err, tt.sentinel)
			}
			assert.NotErrorIs(t, err, ErrUnauthorized)

			assert.Equal(t, 0, creds.clears)
			assert.Equal(t, 0, calls)
			_, ok := creds.Token()
			assert.True(t, ok)
		})
	}
}

func TestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	c := NewHTTPClient(srv.URL, WithTimeouts(50*time.Millisecond, 0))

	_, err := c.ListContracts(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestCallerCancellationPropagates(t *testing.T) {
	rec := &recorder{reply: `[]`}
	c := newTestClient(t, rec)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListContracts(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrUnavailable)
}

func TestTransportFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewHTTPClient(url)
	_, err := c.ListContracts(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestLogin_SendsFormAndReturnsToken(t *testing.T) {
	rec := &recorder{reply: `{"access_token":"T1","token_type":"bearer"}`}
	c := newTestClient(t, rec)

	token, err := c.Login(context.Background(), "a@b.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "T1", token)

	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/api/v1/auth/login", rec.path)
	assert.Equal(t, "application/x-www-form-urlencoded", rec.ctype)
	assert.Equal(t, "password=secret123&username=a%40b.com", string(rec.body))
}

func TestLogin_EmptyToken(t *testing.T) {
	rec := &recorder{reply: `{"token_type":"bearer"}`}
	c := newTestClient(t, rec)

	_, err := c.Login(context.Background(), "a@b.com", "secret123")
	require.ErrorIs(t, err, ErrNoAccessToken)
}

func TestSignup_SendsJSON(t *testing.T) {
	rec := &recorder{reply: `{"id":3,"email":"n@b.com","full_name":"New User","is_active":true}`}
	c := newTestClient(t, rec)

	user, err := c.Signup(context.Background(), "n@b.com", "password1", "New User")
	require.NoError(t, err)
	assert.Equal(t, &models.User{ID: 3, Email: "n@b.com", FullName: "New User"}, user)

	assert.Equal(t, "/api/v1/auth/signup", rec.path)
	assert.Equal(t, "application/json", rec.ctype)

	var sent map[string]string
	require.NoError(t, json.Unmarshal(rec.body, &sent))
	assert.Equal(t, map[string]string{"email": "n@b.com", "password": "password1", "full_name": "New User"}, sent)
}

func TestListContracts_NullIsEmpty(t *testing.T) {
	rec := &recorder{reply: `null`}
	c := newTestClient(t, rec)

	got, err := c.ListContracts(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGetContract_DecodesRecord(t *testing.T) {
	rec := &recorder{reply: `{"id":7,"filename":"nda.pdf","file_type":"pdf","uploaded_at":"2024-03-01T10:20:30.123456","content":"text"}`}
	c := newTestClient(t, rec)

	got, err := c.GetContract(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/contracts/7", rec.path)
	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, "nda.pdf", got.Filename)
	assert.Equal(t, "text", got.Content)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 20, 30, 123456000, time.UTC), got.UploadedAt.Time)
}

func TestUploadContract_Multipart(t *testing.T) {
	var (
		gotName string
		gotBody string
		gotType string
		fields  int
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		fields = len(r.MultipartForm.File) + len(r.MultipartForm.Value)
		f, hdr, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			return
		}
		defer f.Close()
		b, _ := io.ReadAll(f)
		gotName, gotBody, gotType = hdr.Filename, string(b), hdr.Header.Get("Content-Type")
		_, _ = io.WriteString(w, `{"id":42,"filename":"nda.pdf","file_type":"pdf","uploaded_at":"2024-03-01T10:20:30Z"}`)
	}))
	t.Cleanup(srv.Close)

	c := NewHTTPClient(srv.URL)
	got, err := c.UploadContract(context.Background(), "/tmp/docs/nda.pdf", strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)

	assert.Equal(t, int64(42), got.ID)
	assert.Equal(t, 1, fields)
	assert.Equal(t, "nda.pdf", gotName)
	assert.Equal(t, "%PDF-1.4", gotBody)
	assert.Equal(t, "application/pdf", gotType)
}

func TestAnalyzeContract(t *testing.T) {
	rec := &recorder{reply: `{"analysis":{"termination_clause":"30 days notice","governing_law":"Delaware"}}`}
	c := newTestClient(t, rec)

	got, err := c.AnalyzeContract(context.Background(), 9)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/api/v1/contracts/9/analyze", rec.path)
	assert.Empty(t, rec.body)
	assert.Equal(t, "30 days notice", got.TerminationClause)
	assert.Equal(t, "Delaware", got.GoverningLaw)
	assert.Empty(t, got.PaymentTerms)
}

func TestDecodeErrorIsReported(t *testing.T) {
	rec := &recorder{reply: `{not json`}
	c := newTestClient(t, rec)

	_, err := c.GetContract(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode GET /contracts/1 response")
}
