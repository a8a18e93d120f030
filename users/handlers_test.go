package users

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/minblog-go/apperror"
)

// fakeService is a canned Service for handler tests.
type fakeService struct {
	registerResp *UserResponse
	registerErr  error
	registered   []*NewUser
}

func (f *fakeService) Register(_ context.Context, nu *NewUser) (*UserResponse, error) {
	f.registered = append(f.registered, nu)
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	if f.registerResp != nil {
		return f.registerResp, nil
	}
	return &UserResponse{UserName: nu.Username, FirstName: nu.FirstName, LastName: nu.LastName}, nil
}

func (f *fakeService) GetUserByUsername(context.Context, string) (*User, error) {
	panic("not used in handler tests")
}

func (f *fakeService) CountByUsername(context.Context, string) (int64, error) {
	panic("not used in handler tests")
}

func (f *fakeService) VerifyCredentials(context.Context, string, string) (any, error) {
	panic("not used in handler tests")
}

func postUsers(svc Service, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	NewUserHandlers(svc).HandleRegister().ServeHTTP(rec, req)
	return rec
}

func TestHandleRegister(t *testing.T) {
	t.Parallel()

	t.Run("creates a user and never echoes the password", func(t *testing.T) {
		t.Parallel()
		svc := &fakeService{}
		rec := postUsers(svc, `{"userName":"abc","password":"pw123"}`)

		require.Equal(t, http.StatusCreated, rec.Code)

		// Inspect the raw body: no password key at all, and the absent name
		// fields must be absent rather than null.
		var body map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.NotContains(t, body, "password")
		assert.NotContains(t, body, "firstName")
		assert.NotContains(t, body, "lastName")
		assert.JSONEq(t, `"abc"`, string(body["userName"]))

		require.Len(t, svc.registered, 1)
		assert.Equal(t, "abc", svc.registered[0].Username)
		assert.Equal(t, "pw123", svc.registered[0].Password)
	})

	t.Run("empty body is a 400 before any validation", func(t *testing.T) {
		t.Parallel()
		svc := &fakeService{}
		rec := postUsers(svc, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, svc.registered)
	})

	t.Run("whitespace body counts as empty", func(t *testing.T) {
		t.Parallel()
		rec := postUsers(&fakeService{}, "   \n")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed JSON is a 400", func(t *testing.T) {
		t.Parallel()
		rec := postUsers(&fakeService{}, `{"userName": `)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("validation failures are 422 and reach no store", func(t *testing.T) {
		t.Parallel()
		svc := &fakeService{}
		rec := postUsers(svc, `{"userName":42,"password":"pw"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "userName")
		assert.Empty(t, svc.registered)
	})

	t.Run("duplicate username surfaces as 400", func(t *testing.T) {
		t.Parallel()
		svc := &fakeService{registerErr: apperror.NewConflictError("username already exists", nil)}
		rec := postUsers(svc, `{"userName":"abc","password":"pw123"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "username already exists")
	})

	t.Run("unexpected store failure is a generic 500", func(t *testing.T) {
		t.Parallel()
		svc := &fakeService{registerErr: apperror.NewDatabaseError("failed to create user", assert.AnError)}
		rec := postUsers(svc, `{"userName":"abc","password":"pw123"}`)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		// The wrapped driver detail never reaches the client.
		assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
	})
}
