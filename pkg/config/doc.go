// Package config loads typed configuration from the process environment.
//
// It wraps github.com/joho/godotenv (optional .env files) and
// github.com/caarlos0/env/v11 (struct tags) and caches each parsed struct
// type, so every package can own its Config and call Load independently:
//
//	type Config struct {
//	    Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//
// Variables already present in the environment always win over values from
// .env files. Reset clears the cache, which tests use after t.Setenv.
package config
