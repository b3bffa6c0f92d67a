// Package logging, uygulama genelinde kullanılan yapılandırılmış logger.
//
// Bileşenler (database.Registry, cache, storage, session) yalnızca
// Printf/Println isteyen küçük bir Logger interface'i kabul eder; Std()
// bu paketteki logger'ı o interface'e uyarlar.
package logging

import (
	"fmt"
	"log"
	"os"

	clog "github.com/charmbracelet/log"
)

// L is the package-level logger.
var L = clog.NewWithOptions(os.Stderr, clog.Options{
	ReportTimestamp: true,
	Prefix:          "atom",
})

// Debugf logs a debug-level formatted message.
func Debugf(format string, v ...interface{}) {
	L.Debug(fmt.Sprintf(format, v...))
}

// Infof logs an info-level formatted message.
func Infof(format string, v ...interface{}) {
	L.Info(fmt.Sprintf(format, v...))
}

// Warnf logs a warning-level formatted message.
func Warnf(format string, v ...interface{}) {
	L.Warn(fmt.Sprintf(format, v...))
}

// Errorf logs an error-level formatted message.
func Errorf(format string, v ...interface{}) {
	L.Error(fmt.Sprintf(format, v...))
}

// SetLevel, seviye adından ("debug", "info", "warn", "error") log seviyesini ayarlar.
func SetLevel(level string) error {
	lvl, err := clog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	L.SetLevel(lvl)
	return nil
}

// Std, L'yi standart *log.Logger olarak döndürür (info seviyesinde yazar).
func Std() *log.Logger {
	return L.StandardLog(clog.StandardLogOptions{ForceLevel: clog.InfoLevel})
}
