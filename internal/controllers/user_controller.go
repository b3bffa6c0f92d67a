package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/biyonik/atom/internal/http/request"
	"github.com/biyonik/atom/internal/http/response"
	"github.com/biyonik/atom/internal/logging"
	"github.com/biyonik/atom/internal/models"
	"github.com/biyonik/atom/internal/repositories"
	"github.com/biyonik/atom/pkg/storage"
	"github.com/biyonik/atom/pkg/validation"
)

// LastUserKey, son oluşturulan kullanıcının ID'sinin oturumdaki anahtarı.
const LastUserKey = "last_user_id"

// UserController, users kaynağı için HTTP handler'larını içerir.
type UserController struct {
	users   *repositories.UserRepository
	storage storage.Storage
}

// NewUserController creates a new user controller.
func NewUserController(users *repositories.UserRepository, store storage.Storage) *UserController {
	return &UserController{
		users:   users,
		storage: store,
	}
}

// storeSchema, yeni kullanıcı için zorunlu alanlar.
func storeSchema() *validation.Schema {
	return validation.Make().Shape(map[string]validation.Type{
		"name":     validation.String().Required().Trim().Label("Ad").Max(255),
		"email":    validation.String().Required().Trim().Label("Email").Email(),
		"password": validation.String().Required().Label("Şifre").Min(8),
	})
}

// updateSchema, kısmi güncelleme; gönderilmeyen alanlar dokunulmadan kalır.
func updateSchema() *validation.Schema {
	return validation.Make().Shape(map[string]validation.Type{
		"name":     validation.String().Trim().Label("Ad").Min(1).Max(255),
		"email":    validation.String().Trim().Label("Email").Email(),
		"password": validation.String().Label("Şifre").Min(8),
	})
}

// Index - GET /users
// Tüm kullanıcıları listeler; meta içinde oturumdaki son kullanıcı ID'si döner.
// ?email= verilirse yalnızca o adrese sahip kullanıcı döner.
func (c *UserController) Index(w http.ResponseWriter, r *request.Request) {
	users, err := c.list(r)
	if err != nil {
		logging.Errorf("kullanıcılar listelenemedi: %v", err)
		response.ServerError(w, "")
		return
	}

	meta := map[string]any{"count": len(users)}
	if last, ok := r.Session(LastUserKey); ok {
		meta[LastUserKey] = last
	}

	response.Success(w, http.StatusOK, users, meta)
}

func (c *UserController) list(r *request.Request) ([]*models.User, error) {
	email := r.Query("email", "")
	if email == "" {
		return c.users.All(r.Context())
	}

	user, err := c.users.FindByEmail(r.Context(), email)
	if errors.Is(err, repositories.ErrUserNotFound) {
		return []*models.User{}, nil
	}
	if err != nil {
		return nil, err
	}
	return []*models.User{user}, nil
}

// Show - GET /users/{id}
func (c *UserController) Show(w http.ResponseWriter, r *request.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	user, err := c.users.Find(r.Context(), id)
	if err != nil {
		c.handleError(w, err)
		return
	}

	response.Success(w, http.StatusOK, user, nil)
}

// Store - POST /users
// JSON veya form gövdesi kabul eder.
func (c *UserController) Store(w http.ResponseWriter, r *request.Request) {
	// 1. Parse request
	data := map[string]any{}
	if r.IsJSON() {
		if err := r.ParseJSON(&data); err != nil {
			response.InvalidJSON(w)
			return
		}
	} else {
		for k, v := range r.Post() {
			data[k] = v
		}
	}

	// 2. Validate
	valid, ok := validation.ValidateAndRespond(storeSchema(), data, w)
	if !ok {
		return
	}

	// 3. Create
	user, err := c.users.Create(r.Context(), valid["name"].(string), valid["email"].(string), valid["password"].(string))
	if err != nil {
		logging.Errorf("kullanıcı oluşturulamadı: %v", err)
		response.ServerError(w, "")
		return
	}

	// 4. Remember and return
	r.SetSession(LastUserKey, user.ID)
	response.Success(w, http.StatusCreated, user, nil)
}

// Update - PUT /users/{id}
func (c *UserController) Update(w http.ResponseWriter, r *request.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	data := map[string]any{}
	if err := r.ParseJSON(&data); err != nil {
		response.InvalidJSON(w)
		return
	}

	valid, ok := validation.ValidateAndRespond(updateSchema(), data, w)
	if !ok {
		return
	}

	var in repositories.UserUpdate
	in.Name = optionalString(valid, "name")
	in.Email = optionalString(valid, "email")
	in.Password = optionalString(valid, "password")

	user, err := c.users.Update(r.Context(), id, in)
	if err != nil {
		c.handleError(w, err)
		return
	}

	response.Success(w, http.StatusOK, user, nil)
}

// Destroy - DELETE /users/{id}
func (c *UserController) Destroy(w http.ResponseWriter, r *request.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := c.users.Delete(r.Context(), id); err != nil {
		c.handleError(w, err)
		return
	}

	// Redis/cookie oturumlarında sayı float64 olarak döner.
	if last, ok := r.Session(LastUserKey); ok && fmt.Sprint(last) == strconv.FormatInt(id, 10) {
		r.UnsetSession(LastUserKey)
	}

	response.Success(w, http.StatusOK, map[string]any{"deleted": id}, nil)
}

// Avatar - POST /users/{id}/avatar
// Multipart "avatar" alanındaki dosyayı storage'a yazar.
func (c *UserController) Avatar(w http.ResponseWriter, r *request.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	path, err := r.StoreFile("avatar", c.storage)
	if errors.Is(err, request.ErrNoFile) {
		response.ValidationError(w, map[string][]string{"avatar": {"Dosya gerekli"}})
		return
	}
	if err != nil {
		logging.Errorf("avatar kaydedilemedi: %v", err)
		response.ServerError(w, "")
		return
	}

	url := c.storage.Url(path)
	user, err := c.users.Update(r.Context(), id, repositories.UserUpdate{Avatar: &url})
	if err != nil {
		c.storage.Delete(path)
		c.handleError(w, err)
		return
	}

	response.Success(w, http.StatusOK, user, nil)
}

func (c *UserController) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repositories.ErrUserNotFound):
		response.NotFound(w, "Kullanıcı bulunamadı")
	case errors.Is(err, repositories.ErrNothingToUpdate):
		response.BadRequest(w, "Güncellenecek alan yok")
	default:
		logging.Errorf("kullanıcı işlemi başarısız: %v", err)
		response.ServerError(w, "")
	}
}

func parseID(w http.ResponseWriter, r *request.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.RouteParam("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(w, "Geçersiz ID")
		return 0, false
	}
	return id, true
}

// optionalString, doğrulanmış veride bulunan metin alanının adresini döner.
func optionalString(valid map[string]any, key string) *string {
	v, ok := valid[key].(string)
	if !ok {
		return nil
	}
	return &v
}
