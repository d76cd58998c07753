package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type entry struct {
	once  sync.Once
	value any
	err   error
}

var (
	cache         sync.Map // reflect.Type -> *entry
	dotenvLoaded  sync.Once
	dotenvFilesMu sync.Mutex
	dotenvFiles   []string
)

// UseDotenvFiles replaces the default ".env" lookup. It only has an effect
// before the first Load call.
func UseDotenvFiles(files ...string) {
	dotenvFilesMu.Lock()
	dotenvFiles = files
	dotenvFilesMu.Unlock()
}

// Load fills v from the process environment. A .env file is read once, if
// present, before the first parse. Each config type is parsed once; later
// calls copy the cached value, including a cached error.
//
//	type Config struct {
//		AdminToken string `env:"ADMIN_TOKEN,required"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	dotenvLoaded.Do(func() {
		dotenvFilesMu.Lock()
		files := dotenvFiles
		dotenvFilesMu.Unlock()
		// Missing files are fine; real deployments use the process environment.
		_ = godotenv.Load(files...)
	})

	key := reflect.TypeFor[T]()
	raw, _ := cache.LoadOrStore(key, &entry{})
	e := raw.(*entry)

	e.once.Do(func() {
		var parsed T
		if err := env.Parse(&parsed); err != nil {
			e.err = errors.Join(ErrParsingConfig, err)
			return
		}
		e.value = parsed
	})

	if e.err != nil {
		return e.err
	}
	*v = e.value.(T)
	return nil
}

// MustLoad is Load for configuration the process cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
}
