package config

import (
	"testing"
	"time"

	"github.com/riskibarqy/tournament-ledger/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_StorageDriver(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("memory by default", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.StorageDriver != StorageMemory {
			t.Fatalf("unexpected storage driver: %q", cfg.StorageDriver)
		}
	})

	t.Run("postgres is case insensitive", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", " Postgres ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.StorageDriver != StoragePostgres {
			t.Fatalf("unexpected storage driver: %q", cfg.StorageDriver)
		}
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "sqlite")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unknown STORAGE_DRIVER")
		}
	})
}

func TestLoad_SeedDemoDataDefaults(t *testing.T) {
	tests := []struct {
		name   string
		env    string
		driver string
		want   bool
	}{
		{name: "dev memory seeds", env: EnvDev, driver: StorageMemory, want: true},
		{name: "dev postgres does not seed", env: EnvDev, driver: StoragePostgres, want: false},
		{name: "stage memory does not seed", env: EnvStage, driver: StorageMemory, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("APP_ENV", tt.env)
			t.Setenv("STORAGE_DRIVER", tt.driver)
			t.Setenv("SEED_DEMO_DATA", "")

			cfg, err := Load()
			if err != nil {
				t.Fatalf("load config: %v", err)
			}
			if cfg.SeedDemoData != tt.want {
				t.Fatalf("SeedDemoData = %v, want %v", cfg.SeedDemoData, tt.want)
			}
		})
	}
}

func TestLoad_ProdRequiresInternalJobToken(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("INTERNAL_JOB_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when APP_ENV=prod without INTERNAL_JOB_TOKEN")
	}

	t.Setenv("INTERNAL_JOB_TOKEN", "reconcile-secret")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.InternalJobToken != "reconcile-secret" {
		t.Fatalf("unexpected internal job token: %q", cfg.InternalJobToken)
	}
}

func TestLoad_ReconcileMaxWorkers(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("default", func(t *testing.T) {
		t.Setenv("RECONCILE_MAX_WORKERS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.ReconcileMaxWorkers != 4 {
			t.Fatalf("unexpected default reconcile workers: %d", cfg.ReconcileMaxWorkers)
		}
	})

	t.Run("must be positive", func(t *testing.T) {
		t.Setenv("RECONCILE_MAX_WORKERS", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for RECONCILE_MAX_WORKERS=0")
		}
	})
}

func TestLoad_DBCircuitConfig(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.DBCircuit.Enabled {
			t.Fatalf("expected DB circuit enabled by default")
		}
		if cfg.DBCircuit.FailureThreshold != 5 {
			t.Fatalf("unexpected failure threshold: %d", cfg.DBCircuit.FailureThreshold)
		}
		if cfg.DBCircuit.OpenTimeout != 15*time.Second {
			t.Fatalf("unexpected open timeout: %s", cfg.DBCircuit.OpenTimeout)
		}
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("DB_CIRCUIT_ENABLED", "false")
		t.Setenv("DB_CIRCUIT_FAILURE_COUNT", "3")
		t.Setenv("DB_CIRCUIT_OPEN_TIMEOUT", "5s")
		t.Setenv("DB_CIRCUIT_HALF_OPEN_MAX_REQ", "1")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.DBCircuit.Enabled {
			t.Fatalf("expected DB circuit disabled")
		}
		if cfg.DBCircuit.FailureThreshold != 3 || cfg.DBCircuit.OpenTimeout != 5*time.Second || cfg.DBCircuit.HalfOpenMaxReq != 1 {
			t.Fatalf("unexpected circuit config: %+v", cfg.DBCircuit)
		}
	})

	t.Run("invalid failure count", func(t *testing.T) {
		t.Setenv("DB_CIRCUIT_FAILURE_COUNT", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for DB_CIRCUIT_FAILURE_COUNT=0")
		}
	})
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "x-other=1, uptrace-dsn='https://token@api.uptrace.dev?grpc=4317'")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected uptrace dsn: %q", cfg.UptraceDSN)
	}
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_SERVICE_NAME", "tournament-ledger-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "tournament-ledger-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("default wildcard", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
			t.Fatalf("unexpected default CORS origins: %+v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("comma separated parsing", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://cup.example.com, http://localhost:5173 ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 2 {
			t.Fatalf("unexpected CORS origins length: %d", len(cfg.CORSAllowedOrigins))
		}
		if cfg.CORSAllowedOrigins[0] != "https://cup.example.com" || cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
			t.Fatalf("unexpected CORS origins: %+v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("only separators", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " , ,")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when CORS_ALLOWED_ORIGINS has no entries")
		}
	})
}

func TestLoad_CacheConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("CACHE_ENABLED", "")
		t.Setenv("CACHE_TTL", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.CacheEnabled {
			t.Fatalf("expected cache enabled by default")
		}
		if cfg.CacheTTL != 60*time.Second {
			t.Fatalf("unexpected default cache ttl: %s", cfg.CacheTTL)
		}
	})

	t.Run("invalid ttl", func(t *testing.T) {
		t.Setenv("CACHE_TTL", "bad")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid CACHE_TTL")
		}
	})
}

func TestLoad_LogLevel(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.LogLevel != logging.LevelDebug {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel)
	}
}
