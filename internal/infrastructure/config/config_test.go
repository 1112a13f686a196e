package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func baseEnv() map[string]string {
	return map[string]string{
		"JWT_SECRET":         "secret",
		"OPENROUTER_API_KEY": "sk-test",
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(baseEnv()))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8000" || cfg.BodyLimit != "10M" {
		t.Fatalf("unexpected server defaults: %+v", cfg)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://127.0.0.1:5173" {
		t.Fatalf("unexpected origins: %v", cfg.AllowedOrigins)
	}
	if cfg.Auth.TokenTTL != 24*time.Hour || cfg.Auth.JWTAlgorithm != "HS256" || cfg.Auth.BcryptCost != 12 {
		t.Fatalf("unexpected auth defaults: %+v", cfg.Auth)
	}
	if cfg.Store.Driver != StoreDriverPostgres || cfg.Blob.Driver != BlobDriverLocal {
		t.Fatalf("unexpected drivers: %s %s", cfg.Store.Driver, cfg.Blob.Driver)
	}
	if cfg.OpenRouter.Model != "deepseek/deepseek-chat-v3.1:free" || cfg.OpenRouter.Title != "Agentic AI Medical Analysis" {
		t.Fatalf("unexpected openrouter defaults: %+v", cfg.OpenRouter)
	}
	if !cfg.IsDevelopment() {
		t.Fatalf("expected development by default")
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	for _, key := range []string{"JWT_SECRET", "OPENROUTER_API_KEY"} {
		env := baseEnv()
		delete(env, key)
		if _, err := load(context.Background(), envconfig.MapLookuper(env)); err == nil {
			t.Fatalf("expected error without %s", key)
		}
	}
}

func TestLoad_Overrides(t *testing.T) {
	env := baseEnv()
	env["STORE_DRIVER"] = "mongo"
	env["TOKEN_TTL"] = "90m"
	env["ALLOWED_ORIGINS"] = "https://app.example.com"

	cfg, err := load(context.Background(), envconfig.MapLookuper(env))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Store.Driver != StoreDriverMongo || cfg.Auth.TokenTTL != 90*time.Minute {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "https://app.example.com" {
		t.Fatalf("unexpected origins: %v", cfg.AllowedOrigins)
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown store":      {"STORE_DRIVER": "sqlite"},
		"unknown blob":       {"BLOB_DRIVER": "ftp"},
		"s3 without bucket":  {"BLOB_DRIVER": "s3"},
		"asymmetric jwt alg": {"JWT_ALGORITHM": "RS256"},
	}
	for name, extra := range cases {
		env := baseEnv()
		for k, v := range extra {
			env[k] = v
		}
		_, err := load(context.Background(), envconfig.MapLookuper(env))
		if err == nil || !strings.Contains(err.Error(), "config:") {
			t.Fatalf("%s: expected validation error, got %v", name, err)
		}
	}
}
