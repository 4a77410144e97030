package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/mobil-koeln/gomate/internal/api"
	"github.com/mobil-koeln/gomate/internal/storage"
	"github.com/mobil-koeln/gomate/internal/testutil"
)

type fakeAuth struct {
	payload string
	err     error
	calls   int
}

func (f *fakeAuth) Login(_ context.Context, _, _ string) (*api.LoginResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &api.LoginResponse{Raw: []byte(f.payload)}, nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newManager(auth Authenticator, store storage.Store) *Manager {
	return NewManager(auth, store, WithLogger(quietLogger()))
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
		wantOK  bool
	}{
		{"access token", `{"accessToken":"abc"}`, "abc", true},
		{"legacy token", `{"token":"old"}`, "old", true},
		{"access token wins", `{"token":"old","accessToken":"new"}`, "new", true},
		{"empty access token falls through", `{"accessToken":"","token":"old"}`, "old", true},
		{"no token", `{"id":1}`, "", false},
		{"non-string token", `{"accessToken":42}`, "", false},
		{"not json", `nope`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractToken([]byte(tt.payload))
			testutil.AssertEqual(t, got, tt.want)
			testutil.AssertEqual(t, ok, tt.wantOK)
		})
	}
}

func TestLogin_DoesNotPersist(t *testing.T) {
	store := storage.NewMemoryStore()
	m := newManager(&fakeAuth{payload: testutil.SampleLoginResponse}, store)

	sess, err := m.Login(context.Background(), "emilys", "emilyspass")
	testutil.AssertNil(t, err)
	testutil.AssertTrue(t, sess.IsAuthenticated())
	testutil.AssertEqual(t, store.Writes(storage.KeyUserToken), 0)
	testutil.AssertEqual(t, store.Writes(storage.KeyUserData), 0)
}

func TestPersist(t *testing.T) {
	store := storage.NewMemoryStore()
	m := newManager(&fakeAuth{payload: testutil.SampleLoginResponse}, store)

	sess, err := m.Login(context.Background(), "emilys", "emilyspass")
	testutil.AssertNil(t, err)
	testutil.AssertEqual(t, sess.Token, "abc")
	testutil.AssertEqual(t, sess.User.FirstName, "Emily")
	testutil.AssertTrue(t, sess.IsAuthenticated())

	m.Persist(context.Background(), sess)

	token, ok, err := storage.GetJSON[string](context.Background(), store, storage.KeyUserToken)
	testutil.AssertNil(t, err)
	testutil.AssertTrue(t, ok)
	testutil.AssertEqual(t, token, "abc")

	data, ok, _ := store.Get(context.Background(), storage.KeyUserData)
	testutil.AssertTrue(t, ok)
	testutil.AssertEqual(t, string(data), testutil.SampleLoginResponse)
}

func TestLogin_LegacyToken(t *testing.T) {
	m := newManager(&fakeAuth{payload: testutil.SampleLegacyLoginResponse}, storage.NewMemoryStore())

	sess, err := m.Login(context.Background(), "michaelw", "pw")
	testutil.AssertNil(t, err)
	testutil.AssertEqual(t, sess.Token, "legacy-token")
}

func TestLogin_WithoutToken(t *testing.T) {
	store := storage.NewMemoryStore()
	m := newManager(&fakeAuth{payload: testutil.SampleTokenlessLoginResponse}, store)

	sess, err := m.Login(context.Background(), "sophiab", "pw")
	testutil.AssertNil(t, err)
	testutil.AssertEqual(t, sess.Token, "")
	testutil.AssertTrue(t, sess.User != nil)
	testutil.AssertFalse(t, sess.IsAuthenticated())

	m.Persist(context.Background(), sess)

	testutil.AssertEqual(t, store.Writes(storage.KeyUserToken), 0)
	testutil.AssertEqual(t, store.Writes(storage.KeyUserData), 1)
}

func TestLogin_Failure(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{
			name:    "server message",
			err:     api.NewAPIErrorWithMessage(http.StatusBadRequest, "/auth/login", "Invalid credentials"),
			wantMsg: "Invalid credentials",
		},
		{
			name:    "error text",
			err:     errors.New("connection refused"),
			wantMsg: "connection refused",
		},
		{
			name:    "blank error",
			err:     errors.New("  "),
			wantMsg: "Login failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMemoryStore()
			m := newManager(&fakeAuth{err: tt.err}, store)

			sess, err := m.Login(context.Background(), "emilys", "wrong")
			testutil.AssertError(t, err)
			testutil.AssertFalse(t, sess.IsAuthenticated())

			var le *LoginError
			testutil.AssertTrue(t, errors.As(err, &le))
			testutil.AssertEqual(t, le.Message, tt.wantMsg)
			testutil.AssertErrorIs(t, err, tt.err)

			testutil.AssertEqual(t, store.Writes(storage.KeyUserToken), 0)
			testutil.AssertEqual(t, store.Writes(storage.KeyUserData), 0)
		})
	}
}

func TestLogin_MalformedPayload(t *testing.T) {
	m := newManager(&fakeAuth{payload: `[1,2]`}, storage.NewMemoryStore())

	_, err := m.Login(context.Background(), "emilys", "emilyspass")
	testutil.AssertErrorIs(t, err, api.ErrMalformedResponse)
}

func TestLogin_PersistFailureIgnored(t *testing.T) {
	store := storage.NewMemoryStore()
	store.FailWrites = errors.New("disk full")
	m := newManager(&fakeAuth{payload: testutil.SampleLoginResponse}, store)

	sess, err := m.Login(context.Background(), "emilys", "emilyspass")
	testutil.AssertNil(t, err)
	testutil.AssertTrue(t, sess.IsAuthenticated())

	m.Persist(context.Background(), sess)
	testutil.AssertEqual(t, store.Writes(storage.KeyUserToken), 0)
}

func TestLogin_AgainstMockServer(t *testing.T) {
	ms := testutil.NewJSONServer(http.StatusOK, testutil.SampleLoginResponse)
	defer ms.Close()

	client, err := api.NewClient(api.WithAuthURL(ms.URL+"/auth/login"), api.WithLogger(quietLogger()))
	testutil.AssertNil(t, err)

	store := storage.NewMemoryStore()
	m := newManager(client, store)

	sess, err := m.Login(context.Background(), "emilys", "emilyspass")
	testutil.AssertNil(t, err)
	testutil.AssertEqual(t, sess.Token, "abc")
	testutil.AssertEqual(t, sess.User.Username, "emilys")
}

func TestLogout(t *testing.T) {
	store := storage.NewMemoryStore()
	m := newManager(&fakeAuth{payload: testutil.SampleLoginResponse}, store)

	sess, err := m.Login(context.Background(), "emilys", "emilyspass")
	testutil.AssertNil(t, err)
	m.Persist(context.Background(), sess)

	m.Logout(context.Background())
	m.Wait()

	_, ok, _ := store.Get(context.Background(), storage.KeyUserToken)
	testutil.AssertFalse(t, ok)
	_, ok, _ = store.Get(context.Background(), storage.KeyUserData)
	testutil.AssertFalse(t, ok)
}

func TestPersist_AfterLogoutKeepsNewSession(t *testing.T) {
	store := storage.NewMemoryStore()
	m := newManager(&fakeAuth{payload: testutil.SampleLoginResponse}, store)

	first, err := m.Login(context.Background(), "emilys", "emilyspass")
	testutil.AssertNil(t, err)
	m.Persist(context.Background(), first)

	m.Logout(context.Background())
	m.Logout(context.Background())

	second, err := m.Login(context.Background(), "emilys", "emilyspass")
	testutil.AssertNil(t, err)
	m.Persist(context.Background(), second)
	m.Wait()

	testutil.AssertEqual(t, store.Removes(storage.KeyUserToken), 2)
	restored, ok := m.Restore(context.Background())
	testutil.AssertTrue(t, ok)
	testutil.AssertEqual(t, restored.Token, "abc")
}

func TestLogout_CancelledContextStillRemoves(t *testing.T) {
	store := storage.NewMemoryStore()
	_ = storage.SetJSON(context.Background(), store, storage.KeyUserToken, "abc")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := newManager(&fakeAuth{}, store)
	m.Logout(ctx)
	m.Wait()

	testutil.AssertEqual(t, store.Removes(storage.KeyUserToken), 1)
}

func TestLogout_FailureIsSwallowed(t *testing.T) {
	store := storage.NewMemoryStore()
	store.FailWrites = errors.New("read-only")

	m := newManager(&fakeAuth{}, store)
	m.Logout(context.Background())

	done := make(chan struct{})
	go func() {
		m.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("logout did not finish")
	}
}

func TestRestore(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		token    string // raw stored bytes, "" = absent
		userData string
		wantOK   bool
	}{
		{"both present", `"abc"`, testutil.SampleLoginResponse, true},
		{"token missing", "", testutil.SampleLoginResponse, false},
		{"user missing", `"abc"`, "", false},
		{"corrupt token", `abc`, testutil.SampleLoginResponse, false},
		{"corrupt user", `"abc"`, `{broken`, false},
		{"empty token", `""`, testutil.SampleLoginResponse, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMemoryStore()
			if tt.token != "" {
				testutil.AssertNil(t, store.Set(ctx, storage.KeyUserToken, []byte(tt.token)))
			}
			if tt.userData != "" {
				testutil.AssertNil(t, store.Set(ctx, storage.KeyUserData, []byte(tt.userData)))
			}

			auth := &fakeAuth{}
			m := newManager(auth, store)
			sess, ok := m.Restore(ctx)

			testutil.AssertEqual(t, ok, tt.wantOK)
			testutil.AssertEqual(t, sess.IsAuthenticated(), tt.wantOK)
			testutil.AssertEqual(t, auth.calls, 0)
			if tt.wantOK {
				testutil.AssertEqual(t, sess.User.DisplayName(), "Emily")
			}
		})
	}
}

func TestLoginError(t *testing.T) {
	inner := errors.New("boom")
	err := &LoginError{Message: "Login failed", Err: inner}

	testutil.AssertEqual(t, err.Error(), "Login failed")
	testutil.AssertTrue(t, errors.Is(err, inner))
}
