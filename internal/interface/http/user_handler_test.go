package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkadata/userhub/internal/domain/derr"
	"github.com/arkadata/userhub/internal/domain/entity"
	"github.com/arkadata/userhub/pkg/validation"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validation.Init()
	os.Exit(m.Run())
}

type fakeService struct {
	createFn func(ctx context.Context, email, name string, age *int) (*entity.User, error)
	getFn    func(ctx context.Context, userID string) (*entity.User, error)
	patchFn  func(ctx context.Context, userID string, upd entity.UserUpdate) (*entity.User, error)
	listFn   func(ctx context.Context, limit, offset int) ([]entity.User, int, error)
	deleteFn func(ctx context.Context, userID string) error
}

func (s *fakeService) CreateUser(ctx context.Context, email, name string, age *int) (*entity.User, error) {
	return s.createFn(ctx, email, name, age)
}

func (s *fakeService) GetUser(ctx context.Context, userID string) (*entity.User, error) {
	return s.getFn(ctx, userID)
}

func (s *fakeService) PatchUser(ctx context.Context, userID string, upd entity.UserUpdate) (*entity.User, error) {
	return s.patchFn(ctx, userID, upd)
}

func (s *fakeService) ListUsers(ctx context.Context, limit, offset int) ([]entity.User, int, error) {
	return s.listFn(ctx, limit, offset)
}

func (s *fakeService) DeleteUser(ctx context.Context, userID string) error {
	return s.deleteFn(ctx, userID)
}

func newTestRouter(svc UserService) *gin.Engine {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	h := NewUserHandler(svc, logger)

	r := gin.New()
	api := r.Group("/api")
	users := api.Group("/users")
	users.POST("", h.CreateUser)
	users.GET("", h.ListUsers)
	users.GET("/:userId", h.GetUser)
	users.PATCH("/:userId", h.PatchUser)
	users.DELETE("/:userId", h.DeleteUser)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doRaw(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   map[string]any  `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func sampleUser() *entity.User {
	age := 36
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return &entity.User{
		ID:        "2c6a91f8-3b54-4f7d-9f10-57e6a2f0b111",
		Email:     "ada@example.com",
		Name:      "Ada",
		Age:       &age,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestCreateUserEndpoint(t *testing.T) {
	t.Run("201 with created user", func(t *testing.T) {
		svc := &fakeService{
			createFn: func(_ context.Context, email, name string, age *int) (*entity.User, error) {
				assert.Equal(t, "ada@example.com", email)
				assert.Equal(t, "Ada", name)
				require.NotNil(t, age)
				assert.Equal(t, 36, *age)
				return sampleUser(), nil
			},
		}
		w := doJSON(t, newTestRouter(svc), http.MethodPost, "/api/users", gin.H{
			"email": "ada@example.com",
			"name":  "Ada",
			"age":   36,
		})

		require.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w)
		assert.True(t, env.Success)

		var user map[string]any
		require.NoError(t, json.Unmarshal(env.Data, &user))
		assert.Equal(t, "ada@example.com", user["email"])
		assert.Equal(t, "2c6a91f8-3b54-4f7d-9f10-57e6a2f0b111", user["id"])
		assert.Equal(t, "2026-08-01T12:00:00Z", user["createdAt"])
	})

	t.Run("400 on malformed email", func(t *testing.T) {
		svc := &fakeService{
			createFn: func(context.Context, string, string, *int) (*entity.User, error) {
				t.Fatal("service must not be reached")
				return nil, nil
			},
		}
		w := doJSON(t, newTestRouter(svc), http.MethodPost, "/api/users", gin.H{
			"email": "not-an-email",
			"name":  "Ada",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("400 on missing name", func(t *testing.T) {
		svc := &fakeService{}
		w := doJSON(t, newTestRouter(svc), http.MethodPost, "/api/users", gin.H{
			"email": "ada@example.com",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("409 on duplicate email", func(t *testing.T) {
		svc := &fakeService{
			createFn: func(context.Context, string, string, *int) (*entity.User, error) {
				return nil, derr.NewDuplicateError("user with email ada@example.com already exists")
			},
		}
		w := doJSON(t, newTestRouter(svc), http.MethodPost, "/api/users", gin.H{
			"email": "ada@example.com",
			"name":  "Ada",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("500 hides internals", func(t *testing.T) {
		svc := &fakeService{
			createFn: func(context.Context, string, string, *int) (*entity.User, error) {
				return nil, derr.NewRepositoryError("user.create", errors.New("connection refused to 10.0.0.5"))
			},
		}
		w := doJSON(t, newTestRouter(svc), http.MethodPost, "/api/users", gin.H{
			"email": "ada@example.com",
			"name":  "Ada",
		})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "10.0.0.5")
		env := decodeEnvelope(t, w)
		assert.Equal(t, "an internal error occurred", env.Message)
	})
}

func TestGetUserEndpoint(t *testing.T) {
	t.Run("200 with user", func(t *testing.T) {
		svc := &fakeService{
			getFn: func(_ context.Context, userID string) (*entity.User, error) {
				assert.Equal(t, "u-1", userID)
				return sampleUser(), nil
			},
		}
		w := doJSON(t, newTestRouter(svc), http.MethodGet, "/api/users/u-1", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("404 when absent", func(t *testing.T) {
		svc := &fakeService{
			getFn: func(context.Context, string) (*entity.User, error) { return nil, nil },
		}
		w := doJSON(t, newTestRouter(svc), http.MethodGet, "/api/users/missing", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestPatchUserEndpoint(t *testing.T) {
	t.Run("tri-state fields reach the service", func(t *testing.T) {
		svc := &fakeService{
			patchFn: func(_ context.Context, userID string, upd entity.UserUpdate) (*entity.User, error) {
				assert.Equal(t, "u-1", userID)
				assert.True(t, upd.Name.Present)
				assert.Equal(t, "Ada Lovelace", upd.Name.Value)
				assert.True(t, upd.Age.Present)
				assert.True(t, upd.Age.Null)
				assert.False(t, upd.Email.Present)
				u := sampleUser()
				u.Name = "Ada Lovelace"
				u.Age = nil
				return u, nil
			},
		}
		w := doRaw(t, newTestRouter(svc), http.MethodPatch, "/api/users/u-1",
			`{"name": "Ada Lovelace", "age": null}`)

		require.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w)
		var user map[string]any
		require.NoError(t, json.Unmarshal(env.Data, &user))
		assert.Equal(t, "Ada Lovelace", user["name"])
		assert.Nil(t, user["age"])
	})

	t.Run("400 on empty patch", func(t *testing.T) {
		svc := &fakeService{
			patchFn: func(context.Context, string, entity.UserUpdate) (*entity.User, error) {
				t.Fatal("service must not be reached")
				return nil, nil
			},
		}
		w := doRaw(t, newTestRouter(svc), http.MethodPatch, "/api/users/u-1", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("400 on null name", func(t *testing.T) {
		svc := &fakeService{}
		w := doRaw(t, newTestRouter(svc), http.MethodPatch, "/api/users/u-1", `{"name": null}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("400 on out of range age", func(t *testing.T) {
		svc := &fakeService{}
		w := doRaw(t, newTestRouter(svc), http.MethodPatch, "/api/users/u-1", `{"age": 200}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("404 when target does not exist", func(t *testing.T) {
		svc := &fakeService{
			patchFn: func(context.Context, string, entity.UserUpdate) (*entity.User, error) {
				return nil, derr.NewNotFoundError("User", "missing")
			},
		}
		w := doRaw(t, newTestRouter(svc), http.MethodPatch, "/api/users/missing", `{"name": "X"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestListUsersEndpoint(t *testing.T) {
	t.Run("paginates with defaults", func(t *testing.T) {
		svc := &fakeService{
			listFn: func(_ context.Context, limit, offset int) ([]entity.User, int, error) {
				assert.Equal(t, 20, limit)
				assert.Equal(t, 0, offset)
				return []entity.User{*sampleUser()}, 1, nil
			},
		}
		w := doJSON(t, newTestRouter(svc), http.MethodGet, "/api/users", nil)

		require.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w)
		var page map[string]any
		require.NoError(t, json.Unmarshal(env.Data, &page))
		assert.Equal(t, float64(1), page["page"])
		assert.Equal(t, float64(20), page["pageSize"])
		assert.Equal(t, float64(1), page["total"])
		assert.Equal(t, float64(1), page["totalPages"])
	})

	t.Run("honors page and pageSize", func(t *testing.T) {
		svc := &fakeService{
			listFn: func(_ context.Context, limit, offset int) ([]entity.User, int, error) {
				assert.Equal(t, 5, limit)
				assert.Equal(t, 10, offset)
				return nil, 12, nil
			},
		}
		w := doJSON(t, newTestRouter(svc), http.MethodGet, "/api/users?page=3&pageSize=5", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("400 on oversized pageSize", func(t *testing.T) {
		svc := &fakeService{}
		w := doJSON(t, newTestRouter(svc), http.MethodGet, "/api/users?pageSize=500", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("400 on explicit zero page", func(t *testing.T) {
		svc := &fakeService{
			listFn: func(context.Context, int, int) ([]entity.User, int, error) {
				t.Fatal("service must not be reached")
				return nil, 0, nil
			},
		}
		w := doJSON(t, newTestRouter(svc), http.MethodGet, "/api/users?page=0", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("400 on explicit zero pageSize", func(t *testing.T) {
		svc := &fakeService{}
		w := doJSON(t, newTestRouter(svc), http.MethodGet, "/api/users?pageSize=0", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDeleteUserEndpoint(t *testing.T) {
	t.Run("204 on success", func(t *testing.T) {
		svc := &fakeService{
			deleteFn: func(_ context.Context, userID string) error {
				assert.Equal(t, "u-1", userID)
				return nil
			},
		}
		w := doJSON(t, newTestRouter(svc), http.MethodDelete, "/api/users/u-1", nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("404 when absent", func(t *testing.T) {
		svc := &fakeService{
			deleteFn: func(context.Context, string) error {
				return derr.NewNotFoundError("User", "missing")
			},
		}
		w := doJSON(t, newTestRouter(svc), http.MethodDelete, "/api/users/missing", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
