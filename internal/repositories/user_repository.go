package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/biyonik/atom/internal/models"
	"github.com/biyonik/atom/pkg/auth"
	"github.com/biyonik/atom/pkg/database"
	"github.com/jmoiron/sqlx"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrNothingToUpdate = errors.New("nothing to update")
)

// UserUpdate, kısmi güncelleme alanları. nil alanlar değiştirilmez.
type UserUpdate struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Avatar   *string `json:"-"`
}

// UserRepository, users tablosu üzerindeki işlemleri QueryBuilder ile yapar.
type UserRepository struct {
	db      *sqlx.DB
	grammar database.Grammar
	hasher  *auth.Hasher
}

// NewUserRepository, yeni bir UserRepository oluşturur.
func NewUserRepository(db *sqlx.DB, hasher *auth.Hasher) *UserRepository {
	return &UserRepository{
		db:      db,
		grammar: database.GrammarFor(db.DriverName()),
		hasher:  hasher,
	}
}

// newBuilder, her sorgu için yeni bir builder döndürür (builder eşzamanlı
// kullanıma uygun değildir).
func (r *UserRepository) newBuilder() *database.QueryBuilder {
	return database.New(r.db, r.grammar, "users")
}

// All, tüm kullanıcıları döndürür.
func (r *UserRepository) All(ctx context.Context) ([]*models.User, error) {
	rows, err := r.newBuilder().Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return toUsers(rows)
}

// Find, ID'ye göre kullanıcı bulur.
func (r *UserRepository) Find(ctx context.Context, id int64) (*models.User, error) {
	return r.findOne(ctx, database.Equals{Field: "id", Value: id})
}

// FindByEmail, email adresine göre kullanıcı bulur.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, database.Equals{Field: "email", Value: email})
}

func (r *UserRepository) findOne(ctx context.Context, cond database.Condition) (*models.User, error) {
	rows, err := r.newBuilder().Where(cond).Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrUserNotFound
	}
	return models.UserFromRow(rows[0])
}

// Create, şifreyi hash'leyerek yeni kullanıcı oluşturur.
func (r *UserRepository) Create(ctx context.Context, name, email, password string) (*models.User, error) {
	hash, err := r.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	res, err := r.newBuilder().Insert(ctx, database.Data{
		database.P("name", name),
		database.P("email", email),
		database.P("password", hash),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	id, ok := res["id"].(int64)
	if !ok {
		return nil, fmt.Errorf("failed to create user: unexpected id %v", res["id"])
	}

	return &models.User{ID: id, Name: name, Email: email, Password: hash}, nil
}

// Update, verilen alanları günceller ve güncel kullanıcıyı döndürür.
func (r *UserRepository) Update(ctx context.Context, id int64, in UserUpdate) (*models.User, error) {
	var data database.Data
	if in.Name != nil {
		data = append(data, database.P("name", *in.Name))
	}
	if in.Email != nil {
		data = append(data, database.P("email", *in.Email))
	}
	if in.Password != nil {
		hash, err := r.hasher.Hash(*in.Password)
		if err != nil {
			return nil, err
		}
		data = append(data, database.P("password", hash))
	}
	if in.Avatar != nil {
		data = append(data, database.P("avatar", *in.Avatar))
	}
	if len(data) == 0 {
		return nil, ErrNothingToUpdate
	}

	// MySQL değişmeyen satırlar için 0 döndürür; varlık Find ile kontrol edilir.
	if _, err := r.newBuilder().Where(database.Equals{Field: "id", Value: id}).Update(ctx, data); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return r.Find(ctx, id)
}

// Delete, kullanıcıyı siler.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	n, err := r.newBuilder().Where(database.Equals{Field: "id", Value: id}).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Authenticate, email ve şifre ile kullanıcıyı doğrular.
func (r *UserRepository) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := r.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !r.hasher.Check(password, user.Password) {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func toUsers(rows []map[string]any) ([]*models.User, error) {
	users := make([]*models.User, 0, len(rows))
	for _, row := range rows {
		u, err := models.UserFromRow(row)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}
