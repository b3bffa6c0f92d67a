package database

import "errors"

// -----------------------------------------------------------------------------
// Database Errors
// -----------------------------------------------------------------------------
// Paket genelinde kullanılan sentinel hatalar. Hepsi errors.Is() ile kontrol
// edilebilir. Sürücüden gelen SQL hataları (syntax, constraint vb.) bu
// katmanda sarmalanmaz, olduğu gibi çağırana döner.
// -----------------------------------------------------------------------------

var (
	// ErrInvalidArguments, hatalı arity'de koşul veya boş WHERE girdisi verildiğinde döner.
	ErrInvalidArguments = errors.New("database: invalid arguments")

	// ErrConnectionFailed, bağlantı açılamadığında döner (ConnectionError ile sarmalanır).
	ErrConnectionFailed = errors.New("database connection failed")

	// ErrUnsupportedDriver, tanınmayan bir DB_CONNECTION şeması için döner.
	ErrUnsupportedDriver = errors.New("database: unsupported driver")

	// ErrNoTable, tablo adı belirtilmeden terminal bir işlem çağrıldığında döner.
	ErrNoTable = errors.New("database: no table specified")

	// ErrNoColumns, boş veri ile INSERT/UPDATE çağrıldığında döner.
	ErrNoColumns = errors.New("database: no columns specified")
)

// ConnectionError, sürücünün bağlantı hatasını orijinal mesajıyla taşır.
//
// Error() çıktısı: "database connection failed => <sürücü mesajı>"
type ConnectionError struct {
	Key Key
	Err error
}

func (e *ConnectionError) Error() string {
	return ErrConnectionFailed.Error() + " => " + e.Err.Error()
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// Is, errors.Is(err, ErrConnectionFailed) kontrolünü destekler.
func (e *ConnectionError) Is(target error) bool {
	return target == ErrConnectionFailed
}
