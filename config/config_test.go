package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("FIREBASE_PROJECT_ID", "")
	t.Setenv("NEXT_PUBLIC_FIREBASE_PROJECT_ID", "")

	cfg, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, "/admin", cfg.AdminPathPrefix)
	assert.Equal(t, "1112", cfg.AdminAccessCode)
	assert.Equal(t, "minute", cfg.AdminKeyMode)
	assert.False(t, cfg.HasStoreCredentials())
	assert.Equal(t, StoreDriverAuto, cfg.ResolveStoreDriver())
}

func TestAllowlistParsing(t *testing.T) {
	t.Setenv("ADMIN_IP_ALLOWLIST", " 10.0.0.1, ,192.168.1.5 ")

	cfg, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.1", "192.168.1.5"}, cfg.AdminIPAllowlist)
}

func TestSignedModeRequiresSecret(t *testing.T) {
	t.Setenv("ADMIN_KEY_MODE", "signed")
	t.Setenv("ADMIN_SIGNING_SECRET", "")

	cfg, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, "minute", cfg.AdminKeyMode)
}

func TestResolveStoreDriver(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"explicit wins", Config{StoreDriver: StoreDriverMemory, DBUrl: "postgres://x"}, StoreDriverMemory},
		{"postgres first", Config{DBUrl: "postgres://x", RedisURL: "redis://y"}, StoreDriverPostgres},
		{"redis next", Config{RedisURL: "redis://y"}, StoreDriverRedis},
		{"firestore with key", Config{FirebaseProjectID: "p", FirebaseClientEmail: "a@b", FirebasePrivateKey: "k"}, StoreDriverFirestore},
		{"firestore without key material", Config{FirebaseProjectID: "p"}, StoreDriverAuto},
		{"explicit firestore without credentials", Config{StoreDriver: StoreDriverFirestore}, StoreDriverAuto},
		{"explicit redis without url", Config{StoreDriver: StoreDriverRedis, DBUrl: "postgres://x"}, StoreDriverAuto},
		{"explicit postgres without url", Config{StoreDriver: StoreDriverPostgres}, StoreDriverAuto},
		{"explicit redis with url", Config{StoreDriver: StoreDriverRedis, RedisURL: "redis://y", DBUrl: "postgres://x"}, StoreDriverRedis},
		{"unknown driver passes through", Config{StoreDriver: "mongo"}, "mongo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.ResolveStoreDriver())
		})
	}
}

func TestPrivateKeyNewlines(t *testing.T) {
	t.Setenv("FIREBASE_PRIVATE_KEY", `-----BEGIN-----\nabc\n-----END-----`)

	cfg, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, "-----BEGIN-----\nabc\n-----END-----", cfg.FirebasePrivateKey)
}

func TestExplicitDriverWithoutCredentialsDegrades(t *testing.T) {
	t.Setenv("STORE_DRIVER", "firestore")
	t.Setenv("FIREBASE_PROJECT_ID", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "")

	cfg, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, StoreDriverFirestore, cfg.StoreDriver)
	assert.Equal(t, StoreDriverAuto, cfg.ResolveStoreDriver())
}
