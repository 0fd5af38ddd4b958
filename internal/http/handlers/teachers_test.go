package handlers_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mirkamary/schoolhub/internal/domain/content"
	"github.com/mirkamary/schoolhub/internal/http/handlers"
	"github.com/mirkamary/schoolhub/internal/repo/mongodb"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeTeachersRepo struct {
	listFn   func(ctx context.Context) ([]content.Teacher, error)
	getFn    func(ctx context.Context, id string) (content.Teacher, error)
	insertFn func(ctx context.Context, t content.Teacher) (content.Teacher, error)
	updateFn func(ctx context.Context, id string, upd content.TeacherUpdate) error
	deleteFn func(ctx context.Context, id string) error
}

func (f *fakeTeachersRepo) List(ctx context.Context) ([]content.Teacher, error) {
	if f.listFn != nil {
		return f.listFn(ctx)
	}
	return []content.Teacher{}, nil
}

func (f *fakeTeachersRepo) GetByID(ctx context.Context, id string) (content.Teacher, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}
	return content.Teacher{}, nil
}

func (f *fakeTeachersRepo) Insert(ctx context.Context, t content.Teacher) (content.Teacher, error) {
	if f.insertFn != nil {
		return f.insertFn(ctx, t)
	}
	return t, nil
}

func (f *fakeTeachersRepo) Update(ctx context.Context, id string, upd content.TeacherUpdate) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, id, upd)
	}
	return nil
}

func (f *fakeTeachersRepo) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

// validateID mimics the repo's identifier handling so handler tests can
// exercise the 400 vs 404 split.
func validateID(known primitive.ObjectID) func(ctx context.Context, id string) (content.Teacher, error) {
	return func(ctx context.Context, id string) (content.Teacher, error) {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return content.Teacher{}, mongodb.ErrInvalidID
		}
		if oid != known {
			return content.Teacher{}, mongodb.ErrNotFound
		}
		return content.Teacher{ID: known, Name: "R. Ahmed", Role: "Head Teacher"}, nil
	}
}

func TestGetTeacherByIDHandler(t *testing.T) {
	known := primitive.NewObjectID()

	tests := []struct {
		name           string
		id             string
		wantStatusCode int
	}{
		{
			name:           "success",
			id:             known.Hex(),
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "malformed_id",
			id:             "not-an-object-id",
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "well_formed_but_unknown",
			id:             primitive.NewObjectID().Hex(),
			wantStatusCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeTeachersRepo{getFn: validateID(known)}

			h := handlers.NewTeachersHandler(fake)
			r := setupRouter(http.MethodGet, "/teacher/:id", h.GetTeacherByID)

			req := httptest.NewRequest(http.MethodGet, "/teacher/"+tt.id, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}

func TestUpdateTeacherHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		updateErr      error
		wantStatusCode int
	}{
		{
			name:           "success",
			body:           `{"name":"R. Ahmed","role":"Assistant Teacher"}`,
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "no_fields",
			body:           `{}`,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "unknown_id",
			body:           `{"name":"R. Ahmed"}`,
			updateErr:      mongodb.ErrNotFound,
			wantStatusCode: http.StatusNotFound,
		},
		{
			name:           "invalid_id",
			body:           `{"name":"R. Ahmed"}`,
			updateErr:      mongodb.ErrInvalidID,
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeTeachersRepo{
				updateFn: func(ctx context.Context, id string, upd content.TeacherUpdate) error {
					return tt.updateErr
				},
			}

			h := handlers.NewTeachersHandler(fake)
			r := setupRouter(http.MethodPatch, "/teacher/:id", h.UpdateTeacher)

			req := httptest.NewRequest(http.MethodPatch, "/teacher/abc", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}

func TestDeleteTeacherHandler(t *testing.T) {
	t.Run("unknown_id", func(t *testing.T) {
		fake := &fakeTeachersRepo{
			deleteFn: func(ctx context.Context, id string) error {
				return mongodb.ErrNotFound
			},
		}

		h := handlers.NewTeachersHandler(fake)
		r := setupRouter(http.MethodDelete, "/teacher/:id", h.DeleteTeacher)

		req := httptest.NewRequest(http.MethodDelete, "/teacher/"+primitive.NewObjectID().Hex(), nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("got status %d, want 404", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		h := handlers.NewTeachersHandler(&fakeTeachersRepo{})
		r := setupRouter(http.MethodDelete, "/teacher/:id", h.DeleteTeacher)

		req := httptest.NewRequest(http.MethodDelete, "/teacher/"+primitive.NewObjectID().Hex(), nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("got status %d, want 200", w.Code)
		}
	})
}
