package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ardanlabs/conf"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrHelp is returned by NewConfig when usage was printed.
var ErrHelp = errors.New("provided help")

// Namespace prefixes every environment variable, e.g. ATTENDANCE_DB_HOST.
const Namespace = "ATTENDANCE"

type Web struct {
	Port            string        `conf:"default:8080"`
	BaseURL         string        `conf:"default:http://localhost:8080"`
	ReadTimeout     time.Duration `conf:"default:10s"`
	WriteTimeout    time.Duration `conf:"default:30s"`
	ShutdownTimeout time.Duration `conf:"default:10s"`
	AllowedOrigins  []string      `conf:"default:http://localhost:3000"`
}

// DB selects the store and its connection settings. The defaults are the
// ones of the production SQL Server instance.
type DB struct {
	Driver                 string        `conf:"default:sqlserver"`
	Host                   string        `conf:"default:localhost"`
	Port                   int           `conf:"default:1433"`
	User                   string        `conf:"default:sa"`
	Password               string        `conf:"noprint"`
	Name                   string        `conf:"default:DbLogistica"`
	Encrypt                bool          `conf:"default:true"`
	TrustServerCertificate bool          `conf:"default:true"`
	ConnectTimeout         time.Duration `conf:"default:5s"`
	SQLitePath             string        `conf:"default:presencas.db"`
	MaxOpenConns           int           `conf:"default:10"`
	Debug                  bool          `conf:"default:false"`
}

type Auth struct {
	JWTKey     string        `conf:"noprint"`
	TokenTTL   time.Duration `conf:"default:12h"`
	AccessFile string        `conf:"default:config.yaml"`
}

type Redis struct {
	Addr     string
	Password string `conf:"noprint"`
	DB       int    `conf:"default:0"`
}

type Import struct {
	SeedFiles []string `conf:"default:Turno Colaboradores.xlsx;turnos.xlsx;turnos.csv"`
}

type Log struct {
	Level  string `conf:"default:info"`
	Pretty bool   `conf:"default:false"`
}

type Config struct {
	conf.Args
	Web    Web
	DB     DB
	Auth   Auth
	Redis  Redis
	Import Import
	Log    Log
}

// NewConfig parses flags and ATTENDANCE_* environment variables.
func NewConfig(args []string) (*Config, error) {
	var cfg Config

	if err := conf.Parse(args, Namespace, &cfg); err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			usage, err := conf.Usage(Namespace, &cfg)
			if err != nil {
				return nil, errors.Wrap(err, "generating config usage")
			}
			fmt.Println(usage)
			return nil, ErrHelp
		}
		return nil, errors.Wrap(err, "parsing config")
	}

	if cfg.Auth.JWTKey == "" {
		return nil, errors.New("missing required auth configuration: jwt key")
	}

	switch cfg.DB.Driver {
	case DriverSQLServer, DriverPostgres, DriverSQLite:
	default:
		return nil, errors.Errorf("unsupported db driver %q", cfg.DB.Driver)
	}

	return &cfg, nil
}

// String renders the configuration without secrets.
func (c *Config) String() string {
	out, err := conf.String(c)
	if err != nil {
		return err.Error()
	}
	return out
}

const (
	DriverSQLServer = "sqlserver"
	DriverPostgres  = "postgres"
	DriverSQLite    = "sqlite"
)

// Access holds the allow-lists of the access gate. It lives in a YAML file so
// the lists can change without a rebuild.
type Access struct {
	AllowedEmails []string          `yaml:"allowed_emails"`
	AdminEmails   []string          `yaml:"admin_emails"`
	Passwords     map[string]string `yaml:"passwords"`
}

// LoadAccess reads and validates the access file at path.
func LoadAccess(path string) (Access, error) {
	yamlFile, err := os.ReadFile(path)
	if err != nil {
		return Access{}, errors.Wrap(err, "reading access file")
	}

	return ParseAccess(yamlFile)
}

// ParseAccess decodes access lists and lower-cases every address.
func ParseAccess(data []byte) (Access, error) {
	var a Access
	if err := yaml.Unmarshal(data, &a); err != nil {
		return Access{}, errors.Wrap(err, "decoding access file")
	}

	a.AllowedEmails = lowerAll(a.AllowedEmails)
	a.AdminEmails = lowerAll(a.AdminEmails)

	passwords := make(map[string]string, len(a.Passwords))
	for email, hash := range a.Passwords {
		passwords[strings.ToLower(strings.TrimSpace(email))] = hash
	}
	a.Passwords = passwords

	if len(a.AllowedEmails) == 0 {
		return Access{}, errors.New("missing required access configuration: allowed_emails")
	}

	allowed := make(map[string]bool, len(a.AllowedEmails))
	for _, e := range a.AllowedEmails {
		allowed[e] = true
	}
	for _, e := range a.AdminEmails {
		if !allowed[e] {
			return Access{}, errors.Errorf("admin %q is not in allowed_emails", e)
		}
	}

	return a, nil
}

func lowerAll(list []string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
