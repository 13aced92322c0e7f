package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabase_DSN(t *testing.T) {
	d := Database{
		DBUser:     "agro",
		DBPassword: "secret",
		DBHost:     "db.local",
		DBPort:     3307,
		DBName:     "agro_cost",
		ParseTime:  true,
	}

	assert.Equal(t, "agro:secret@tcp(db.local:3307)/agro_cost?parseTime=true", d.DSN())
}

func TestReadConfig_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.yaml")
	yaml := `
database:
  db_user: "u"
  db_name: "n"
admin_login: "a"
admin_pass: "p"
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	var cfg Config
	require.NoError(t, cleanenv.ReadConfig(path, &cfg))

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "localhost:4001", cfg.Address)
	assert.Equal(t, 4*time.Second, cfg.Timeout)
	assert.Equal(t, 3306, cfg.DBPort)
	assert.True(t, cfg.ParseTime)
	assert.Equal(t, 5*time.Minute, cfg.ConnMaxLifetime)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
}
