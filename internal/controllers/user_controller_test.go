package controllers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/biyonik/atom/internal/middleware"
	"github.com/biyonik/atom/internal/repositories"
	"github.com/biyonik/atom/internal/router"
	"github.com/biyonik/atom/pkg/auth"
	"github.com/biyonik/atom/pkg/cache"
	"github.com/biyonik/atom/pkg/session"
	"github.com/biyonik/atom/pkg/storage"
	"github.com/biyonik/atom/pkg/testutil"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	handler http.Handler
	users   *repositories.UserRepository
	store   *storage.LocalStorage
}

func setup(t *testing.T, apiMode bool) *fixture {
	t.Helper()

	logger := testutil.DiscardLogger()
	db := testutil.SQLiteDatabase(t, repositories.UsersTableSQLite)
	users := repositories.NewUserRepository(db, auth.NewHasher(bcrypt.MinCost))

	store, err := storage.NewLocalStorage(filepath.Join(t.TempDir(), "uploads"), logger)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	manager := session.NewManager(session.NewCacheHandler(cache.NewMemoryCache(logger)), logger)

	r := router.New(router.WithAPIMode(apiMode))
	r.Use(middleware.Session(manager))
	RegisterUserRoutes(r, NewUserController(users, store))

	return &fixture{handler: r, users: users, store: store}
}

func TestUserController_StoreAndIndex(t *testing.T) {
	f := setup(t, false)

	res := testutil.NewTestRequest(http.MethodPost, "/users").
		WithJSON(testutil.UserFactory().Make(nil)).
		Send(f.handler).
		AssertStatus(t, http.StatusCreated).
		AssertJSON(t).
		AssertJSONPath(t, "success", true)

	res.AssertJSONPath(t, "data.email", "test@example.com")
	testutil.AssertNotContains(t, res.GetBody(), "password")

	cookie := res.Cookie("atom_session")
	if cookie == nil {
		t.Fatal("Expected a session cookie after creating a user")
	}

	// Aynı oturumla listeleme son kullanıcıyı meta içinde göstermeli
	testutil.NewTestRequest(http.MethodGet, "/users").
		WithCookie(cookie).
		Send(f.handler).
		AssertStatus(t, http.StatusOK).
		AssertJSONPath(t, "meta.count", float64(1)).
		AssertJSONPath(t, "meta.last_user_id", float64(1))

	// Oturumsuz istekte last_user_id yok
	anon := testutil.NewTestRequest(http.MethodGet, "/users").Send(f.handler)
	if _, ok := anon.JSONPath(t, "meta.last_user_id"); ok {
		t.Error("Expected no last_user_id without a session")
	}
}

func TestUserController_IndexFilterByEmail(t *testing.T) {
	f := setup(t, false)

	for _, email := range []string{"ali@example.com", "veli@example.com"} {
		testutil.NewTestRequest(http.MethodPost, "/users").
			WithJSON(testutil.UserFactory().Make(map[string]interface{}{"email": email})).
			Send(f.handler).
			AssertStatus(t, http.StatusCreated)
	}

	res := testutil.NewTestRequest(http.MethodGet, "/users?email=veli@example.com").
		Send(f.handler).
		AssertStatus(t, http.StatusOK).
		AssertJSONPath(t, "meta.count", float64(1))
	testutil.AssertContains(t, res.GetBody(), "veli@example.com")
	testutil.AssertNotContains(t, res.GetBody(), "ali@example.com")

	testutil.NewTestRequest(http.MethodGet, "/users?email=yok@example.com").
		Send(f.handler).
		AssertStatus(t, http.StatusOK).
		AssertJSONPath(t, "meta.count", float64(0))

	testutil.NewTestRequest(http.MethodGet, "/users").
		Send(f.handler).
		AssertJSONPath(t, "meta.count", float64(2))
}

func TestUserController_StoreForm(t *testing.T) {
	f := setup(t, false)

	testutil.NewTestRequest(http.MethodPost, "/users").
		WithForm(url.Values{"name": {"Ayşe"}, "email": {"ayse@example.com"}, "password": {"password123"}}).
		Send(f.handler).
		AssertStatus(t, http.StatusCreated).
		AssertJSONPath(t, "data.name", "Ayşe")
}

func TestUserController_StoreValidation(t *testing.T) {
	f := setup(t, false)

	tests := []struct {
		name  string
		input map[string]interface{}
		field string
	}{
		{"missing name", map[string]interface{}{"name": " "}, "name"},
		{"bad email", map[string]interface{}{"email": "nope"}, "email"},
		{"short password", map[string]interface{}{"password": "123"}, "password"},
		{"name not a string", map[string]interface{}{"name": 42}, "name"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := testutil.NewTestRequest(http.MethodPost, "/users").
				WithJSON(testutil.UserFactory().Make(tc.input)).
				Send(f.handler).
				AssertStatus(t, http.StatusUnprocessableEntity)

			if _, ok := res.JSONPath(t, "data."+tc.field); !ok {
				t.Errorf("Expected error for field %s, got %s", tc.field, res.GetBody())
			}
		})
	}

	testutil.NewTestRequest(http.MethodPost, "/users").
		WithBody("application/json", strings.NewReader("{broken")).
		Send(f.handler).
		AssertStatus(t, http.StatusBadRequest)
}

func TestUserController_ShowUpdateDestroy(t *testing.T) {
	f := setup(t, false)

	created := testutil.NewTestRequest(http.MethodPost, "/users").
		WithJSON(testutil.UserFactory().Make(nil)).
		Send(f.handler)
	cookie := created.Cookie("atom_session")

	testutil.NewTestRequest(http.MethodGet, "/users/1").
		Send(f.handler).
		AssertStatus(t, http.StatusOK).
		AssertJSONPath(t, "data.name", "Test User")

	testutil.NewTestRequest(http.MethodPut, "/users/1").
		WithJSON(map[string]string{"name": "Yeni Ad"}).
		Send(f.handler).
		AssertStatus(t, http.StatusOK).
		AssertJSONPath(t, "data.name", "Yeni Ad")

	invalid := testutil.NewTestRequest(http.MethodPut, "/users/1").
		WithJSON(map[string]string{"email": "nope", "password": "123"}).
		Send(f.handler).
		AssertStatus(t, http.StatusUnprocessableEntity)
	testutil.AssertContains(t, invalid.GetBody(), "e-posta formatında değil")
	testutil.AssertContains(t, invalid.GetBody(), "en az 8 karakter")

	testutil.NewTestRequest(http.MethodPut, "/users/1").
		WithJSON(map[string]string{}).
		Send(f.handler).
		AssertStatus(t, http.StatusBadRequest)

	testutil.NewTestRequest(http.MethodDelete, "/users/1").
		WithCookie(cookie).
		Send(f.handler).
		AssertStatus(t, http.StatusOK)

	// Silinen kullanıcı oturumdan da düşer
	res := testutil.NewTestRequest(http.MethodGet, "/users").WithCookie(cookie).Send(f.handler)
	if _, ok := res.JSONPath(t, "meta.last_user_id"); ok {
		t.Error("Expected last_user_id to be removed after delete")
	}

	missing := testutil.NewTestRequest(http.MethodGet, "/users/1").
		Send(f.handler).
		AssertStatus(t, http.StatusNotFound)
	testutil.AssertContains(t, missing.GetBody(), "Kullanıcı bulunamadı")

	testutil.NewTestRequest(http.MethodDelete, "/users/abc").
		Send(f.handler).
		AssertStatus(t, http.StatusBadRequest)
}

func TestUserController_Avatar(t *testing.T) {
	f := setup(t, false)

	testutil.NewTestRequest(http.MethodPost, "/users").
		WithJSON(testutil.UserFactory().Make(nil)).
		Send(f.handler)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, _ := mw.CreateFormFile("avatar", "me.png")
	fw.Write([]byte("PNGDATA"))
	mw.Close()

	res := testutil.NewTestRequest(http.MethodPost, "/users/1/avatar").
		WithBody(mw.FormDataContentType(), &body).
		Send(f.handler).
		AssertStatus(t, http.StatusOK)

	avatar, _ := res.JSONPath(t, "data.avatar")
	avatarURL, _ := avatar.(string)
	if !strings.HasPrefix(avatarURL, "/uploads/") || !strings.HasSuffix(avatarURL, "-me.png") {
		t.Fatalf("Unexpected avatar url: %v", avatar)
	}

	data, err := f.store.Get(strings.TrimPrefix(avatarURL, "/uploads/"))
	if err != nil || string(data) != "PNGDATA" {
		t.Errorf("Expected stored avatar, got %q (%v)", data, err)
	}

	testutil.NewTestRequest(http.MethodPost, "/users/1/avatar").
		WithForm(url.Values{}).
		Send(f.handler).
		AssertStatus(t, http.StatusUnprocessableEntity)
}

func TestUserController_APIMode(t *testing.T) {
	f := setup(t, true)

	testutil.NewTestRequest(http.MethodPost, "/api/users").
		WithJSON(testutil.UserFactory().Make(nil)).
		Send(f.handler).
		AssertStatus(t, http.StatusCreated)

	testutil.NewTestRequest(http.MethodGet, "/api/users/1").
		Send(f.handler).
		AssertStatus(t, http.StatusOK)

	testutil.NewTestRequest(http.MethodPatch, "/api/users/1").
		Send(f.handler).
		AssertStatus(t, http.StatusMethodNotAllowed)
}
