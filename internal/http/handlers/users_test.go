package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mirkamary/schoolhub/internal/domain/user"
	"github.com/mirkamary/schoolhub/internal/http/handlers"
	"github.com/mirkamary/schoolhub/internal/users"
)

// Make sure Gin does not spam the console during the test

func init() {
	gin.SetMode(gin.TestMode)
}

// Fake implementation of the handlers.UserLifecycle interface

type fakeLifecycle struct {
	upsertFn    func(ctx context.Context, p user.Profile) (users.UpsertResult, error)
	patchRoleFn func(ctx context.Context, email, role string) (users.PatchResult, error)
	getFn       func(ctx context.Context, email string) (*user.Record, error)
	listFn      func(ctx context.Context, opts users.ListOptions) ([]user.Record, error)
}

func (f *fakeLifecycle) Upsert(ctx context.Context, p user.Profile) (users.UpsertResult, error) {
	if f.upsertFn != nil {
		return f.upsertFn(ctx, p)
	}

	return users.UpsertResult{}, nil
}

func (f *fakeLifecycle) PatchRole(ctx context.Context, email, role string) (users.PatchResult, error) {
	if f.patchRoleFn != nil {
		return f.patchRoleFn(ctx, email, role)
	}

	return users.PatchResult{}, nil
}

func (f *fakeLifecycle) GetByEmail(ctx context.Context, email string) (*user.Record, error) {
	if f.getFn != nil {
		return f.getFn(ctx, email)
	}

	return nil, nil
}

func (f *fakeLifecycle) List(ctx context.Context, opts users.ListOptions) ([]user.Record, error) {
	if f.listFn != nil {
		return f.listFn(ctx, opts)
	}

	return []user.Record{}, nil
}

// small helper which returns a gin engine mounting one handler per test

func setupRouter(method, path string, h gin.HandlerFunc) *gin.Engine {
	r := gin.New()

	r.Handle(method, path, h)

	return r
}

func TestPatchUserRoleHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setUp          func(*fakeLifecycle)
		wantStatusCode int
	}{
		{
			name: "success",
			body: `{"role": "admin"}`,
			setUp: func(f *fakeLifecycle) {
				f.patchRoleFn = func(ctx context.Context, email, role string) (users.PatchResult, error) {
					return users.PatchResult{Matched: 1, Modified: 1}, nil
				}
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "not_found",
			body: `{"role": "admin"}`,
			setUp: func(f *fakeLifecycle) {
				f.patchRoleFn = func(ctx context.Context, email, role string) (users.PatchResult, error) {
					return users.PatchResult{}, users.ErrNotFound
				}
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name: "no_change",
			body: `{"role": "admin"}`,
			setUp: func(f *fakeLifecycle) {
				f.patchRoleFn = func(ctx context.Context, email, role string) (users.PatchResult, error) {
					return users.PatchResult{Matched: 1}, users.ErrNoChange
				}
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "missing_role",
			body: `{}`,
			setUp: func(f *fakeLifecycle) {
				// the body never binds, so the service should not be called
				f.patchRoleFn = func(ctx context.Context, email, role string) (users.PatchResult, error) {
					t.Fatal("PatchRole called for an invalid body")
					return users.PatchResult{}, nil
				}
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "store_error",
			body: `{"role": "admin"}`,
			setUp: func(f *fakeLifecycle) {
				f.patchRoleFn = func(ctx context.Context, email, role string) (users.PatchResult, error) {
					return users.PatchResult{}, errors.New("store unreachable")
				}
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeLifecycle{}

			if tt.setUp != nil {
				tt.setUp(fake)
			}

			h := handlers.NewUsersHandler(fake)

			r := setupRouter(http.MethodPatch, "/users/:email", h.PatchUserRole)

			req := httptest.NewRequest(http.MethodPatch, "/users/ghost@x.com", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}

func TestGetUserByEmailHandler(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		fake := &fakeLifecycle{
			getFn: func(ctx context.Context, email string) (*user.Record, error) {
				return &user.Record{Email: email, DisplayName: "Ann", Role: "admin"}, nil
			},
		}

		h := handlers.NewUsersHandler(fake)
		r := setupRouter(http.MethodGet, "/users/:email", h.GetUserByEmail)

		req := httptest.NewRequest(http.MethodGet, "/users/a@x.com", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
		}

		var got map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if got["email"] != "a@x.com" || got["role"] != "admin" {
			t.Fatalf("unexpected body: %v", got)
		}
	})

	t.Run("absent_is_empty_200", func(t *testing.T) {
		h := handlers.NewUsersHandler(&fakeLifecycle{})
		r := setupRouter(http.MethodGet, "/users/:email", h.GetUserByEmail)

		req := httptest.NewRequest(http.MethodGet, "/users/nobody@x.com", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("got status %d, want 200", w.Code)
		}
		if w.Body.Len() != 0 {
			t.Fatalf("want empty body, got %q", w.Body.String())
		}
	})
}

func TestListUsersHandler(t *testing.T) {
	fake := &fakeLifecycle{
		listFn: func(ctx context.Context, opts users.ListOptions) ([]user.Record, error) {
			return []user.Record{
				{Email: "a@x.com", DisplayName: "Ann"},
				{Email: "b@x.com", DisplayName: "Ben"},
			}, nil
		},
	}

	h := handlers.NewUsersHandler(fake)
	r := setupRouter(http.MethodGet, "/users", h.ListUsers)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	var got []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("response is not a bare array: %v body=%s", err, w.Body.String())
	}
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
}

func TestUpsertUserHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setUp          func(*fakeLifecycle)
		wantStatusCode int
		wantOutcome    string
	}{
		{
			name: "created",
			body: `{"email":"a@x.com","displayName":"Ann","photoURL":"https://img.example/a.png"}`,
			setUp: func(f *fakeLifecycle) {
				f.upsertFn = func(ctx context.Context, p user.Profile) (users.UpsertResult, error) {
					if p.Extra["photoURL"] != "https://img.example/a.png" {
						t.Fatalf("extra fields dropped: %+v", p.Extra)
					}
					return users.UpsertResult{
						Outcome: users.OutcomeCreated,
						Record:  &user.Record{Email: p.Email, DisplayName: p.DisplayName, Extra: p.Extra},
					}, nil
				}
			},
			wantStatusCode: http.StatusCreated,
			wantOutcome:    "created",
		},
		{
			name: "request_transition",
			body: `{"email":"a@x.com","displayName":"Ann","status":"Requested"}`,
			setUp: func(f *fakeLifecycle) {
				f.upsertFn = func(ctx context.Context, p user.Profile) (users.UpsertResult, error) {
					if p.Status != user.StatusRequested {
						t.Fatalf("status not carried: %+v", p)
					}
					return users.UpsertResult{
						Outcome: users.OutcomeUpdated,
						Record:  &user.Record{Email: p.Email, DisplayName: p.DisplayName, Status: p.Status},
					}, nil
				}
			},
			wantStatusCode: http.StatusOK,
			wantOutcome:    "updated",
		},
		{
			name: "existing_unchanged",
			body: `{"email":"a@x.com","displayName":"Ann"}`,
			setUp: func(f *fakeLifecycle) {
				f.upsertFn = func(ctx context.Context, p user.Profile) (users.UpsertResult, error) {
					return users.UpsertResult{
						Outcome: users.OutcomeUnchanged,
						Record:  &user.Record{Email: p.Email, DisplayName: p.DisplayName},
					}, nil
				}
			},
			wantStatusCode: http.StatusOK,
			wantOutcome:    "unchanged",
		},
		{
			name:           "missing_display_name",
			body:           `{"email":"a@x.com"}`,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "store_error",
			body: `{"email":"a@x.com","displayName":"Ann"}`,
			setUp: func(f *fakeLifecycle) {
				f.upsertFn = func(ctx context.Context, p user.Profile) (users.UpsertResult, error) {
					return users.UpsertResult{}, errors.New("store unreachable")
				}
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeLifecycle{}

			if tt.setUp != nil {
				tt.setUp(fake)
			}

			h := handlers.NewUsersHandler(fake)
			r := setupRouter(http.MethodPut, "/user", h.UpsertUser)

			req := httptest.NewRequest(http.MethodPut, "/user", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}

			if tt.wantOutcome != "" {
				var got struct {
					Outcome string `json:"outcome"`
				}
				if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
					t.Fatalf("unmarshal: %v", err)
				}
				if got.Outcome != tt.wantOutcome {
					t.Fatalf("got outcome %q, want %q", got.Outcome, tt.wantOutcome)
				}
			}
		})
	}
}
