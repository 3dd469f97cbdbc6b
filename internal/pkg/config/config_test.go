package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAccess(t *testing.T) {
	data := []byte(`
allowed_emails:
  - Leader@Empresa.com
  - " chefe@empresa.com "
admin_emails:
  - chefe@empresa.com
passwords:
  Leader@Empresa.com: "$2a$10$abc"
`)

	a, err := ParseAccess(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"leader@empresa.com", "chefe@empresa.com"}, a.AllowedEmails)
	assert.Equal(t, []string{"chefe@empresa.com"}, a.AdminEmails)
	assert.Equal(t, "$2a$10$abc", a.Passwords["leader@empresa.com"])
}

func TestParseAccessRejectsUnknownAdmin(t *testing.T) {
	_, err := ParseAccess([]byte("allowed_emails: [a@x.com]\nadmin_emails: [b@x.com]\n"))
	assert.Error(t, err)
}

func TestParseAccessRequiresAllowList(t *testing.T) {
	_, err := ParseAccess([]byte("admin_emails: []\n"))
	assert.Error(t, err)
}

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig([]string{"--auth-jwt-key=secret"})
	require.NoError(t, err)

	assert.Equal(t, DriverSQLServer, cfg.DB.Driver)
	assert.Equal(t, "DbLogistica", cfg.DB.Name)
	assert.Equal(t, 1433, cfg.DB.Port)
	assert.True(t, cfg.DB.Encrypt)
	assert.True(t, cfg.DB.TrustServerCertificate)
	assert.Equal(t, "5s", cfg.DB.ConnectTimeout.String())
	assert.Equal(t, []string{"Turno Colaboradores.xlsx", "turnos.xlsx", "turnos.csv"}, cfg.Import.SeedFiles)
	assert.NotContains(t, cfg.String(), "secret")
}

func TestNewConfigRequiresJWTKey(t *testing.T) {
	t.Setenv("ATTENDANCE_AUTH_JWT_KEY", "")
	_, err := NewConfig(nil)
	assert.Error(t, err)
}

func TestNewConfigRejectsDriver(t *testing.T) {
	_, err := NewConfig([]string{"--auth-jwt-key=k", "--db-driver=oracle"})
	assert.Error(t, err)
}
