package command

import (
	"path/filepath"
	"testing"

	"github.com/pixil98/go-testutil"
	"golang.org/x/crypto/bcrypt"
)

func validConfig(t *testing.T) *Config {
	t.Helper()
	return &Config{
		Server:  ServerConfig{Port: 8080},
		Storage: StorageConfig{Path: t.TempDir()},
	}
}

func TestConfigValidate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing token: %v", err)
	}

	tests := map[string]struct {
		mutate  func(*Config)
		wantErr string
	}{
		"valid": {
			mutate: func(*Config) {},
		},
		"valid with token": {
			mutate: func(c *Config) { c.Server.Tokens = []string{string(hash)} },
		},
		"missing port": {
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "port must be set",
		},
		"plaintext token": {
			mutate:  func(c *Config) { c.Server.Tokens = []string{"secret"} },
			wantErr: "not a bcrypt hash",
		},
		"missing storage path": {
			mutate:  func(c *Config) { c.Storage.Path = "" },
			wantErr: "path is required",
		},
		"missing catalog path": {
			mutate:  func(c *Config) { c.Catalog.Path = filepath.Join(t.TempDir(), "nope") },
			wantErr: "invalid path",
		},
		"bad nats timeout": {
			mutate:  func(c *Config) { c.Nats.StartTimeout = "soon" },
			wantErr: "parsing start_timeout",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			testutil.AssertErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestStorageDriverUnmarshalText(t *testing.T) {
	tests := map[string]struct {
		text    string
		want    StorageDriver
		wantErr string
	}{
		"file":    {text: "file", want: StorageDriverFile},
		"default": {text: "", want: StorageDriverFile},
		"sqlite":  {text: "sqlite", want: StorageDriverSQLite},
		"unknown": {text: "redis", wantErr: "unknown storage driver"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var d StorageDriver
			err := d.UnmarshalText([]byte(tt.text))
			if tt.wantErr != "" {
				testutil.AssertErrorContains(t, err, tt.wantErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "driver", d, tt.want)
		})
	}
}

func TestBuildWorkers(t *testing.T) {
	cfg := validConfig(t)

	workers, err := BuildWorkers(cfg)
	if err != nil {
		t.Fatalf("building workers: %v", err)
	}

	for _, name := range []string{"nats", "http"} {
		if _, ok := workers[name]; !ok {
			t.Errorf("missing worker %q", name)
		}
	}
}

func TestBuildWorkersRejectsWrongConfigType(t *testing.T) {
	_, err := BuildWorkers(struct{}{})
	testutil.AssertErrorContains(t, err, "unable to cast config")
}
