package config

import (
	"log"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/ilyakaznacheev/cleanenv"
)

const defaultConfigPath = "./config/local.yaml"

type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"prod"`
	HTTPServer `yaml:"http_server"`
	Database   `yaml:"database"`

	CORSOrigins []string `yaml:"cors_origins" env:"CORS_ORIGINS" env-separator:"," env-default:"http://localhost:5173"`

	AdminLogin string `yaml:"admin_login" env:"ADMIN_LOGIN" env-required:"true"`
	AdminPass  string `yaml:"admin_pass" env:"ADMIN_PASS" env-required:"true"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:4001"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

type Database struct {
	DBUser          string        `yaml:"db_user" env:"DB_USER" env-required:"true"`
	DBPassword      string        `yaml:"db_password" env:"DB_PASSWORD"`
	DBHost          string        `yaml:"db_host" env:"DB_HOST" env-default:"localhost"`
	DBPort          int           `yaml:"db_port" env:"DB_PORT" env-default:"3306"`
	DBName          string        `yaml:"db_name" env:"DB_NAME" env-required:"true"`
	ParseTime       bool          `yaml:"parse_time" env-default:"true"`
	MaxOpenConns    int           `yaml:"max_open_conns" env-default:"10"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env-default:"5m"`
	Migrate         bool          `yaml:"migrate" env:"DB_MIGRATE" env-default:"false"`
}

// DSN returns the go-sql-driver/mysql connection string.
func (d Database) DSN() string {
	cfg := mysql.NewConfig()
	cfg.User = d.DBUser
	cfg.Passwd = d.DBPassword
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(d.DBHost, strconv.Itoa(d.DBPort))
	cfg.DBName = d.DBName
	cfg.ParseTime = d.ParseTime

	return cfg.FormatDSN()
}

func MustConfig() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return &cfg
}
