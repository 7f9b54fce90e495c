package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig `yaml:"server"`
	Minio     MinioConfig  `yaml:"minio"`
	OCR       OCRConfig    `yaml:"ocr"`
	Auth      AuthConfig   `yaml:"auth"`
	Log       LogConfig    `yaml:"log"`
	Store     StoreConfig  `yaml:"store"`
	Users     []User       `yaml:"users"`
	Companies []Company    `yaml:"companies"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type MinioConfig struct {
	Endpoint   string `yaml:"endpoint"`
	AccessKey  string `yaml:"access_key"`
	SecretKey  string `yaml:"secret_key"`
	Bucket     string `yaml:"bucket"`
	UseSSL     bool   `yaml:"use_ssl"`
	ExpireDays int    `yaml:"expire_days"`
}

type OCRConfig struct {
	APIURL         string `yaml:"api_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type AuthConfig struct {
	JWTSecret        string `yaml:"jwt_secret"`
	TokenExpireHours int    `yaml:"token_expire_hours"`
}

type LogConfig struct {
	Level  string `yaml:"level"` // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

type StoreConfig struct {
	Type       string `yaml:"type"` // memory or bolt
	Path       string `yaml:"path"` // bolt database file
	MaxRecords int    `yaml:"max_records"`
}

type User struct {
	ID       string `yaml:"id"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// Company is an insurance company quittances can be uploaded for. An upload
// naming a company not listed here is rejected before any record is created.
type Company struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

var GlobalConfig *Config

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Set defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Minio.ExpireDays == 0 {
		cfg.Minio.ExpireDays = 7
	}
	if cfg.OCR.TimeoutSeconds == 0 {
		cfg.OCR.TimeoutSeconds = 60
	}
	if cfg.Auth.TokenExpireHours == 0 {
		cfg.Auth.TokenExpireHours = 24
	}
	if cfg.Store.Type == "" {
		cfg.Store.Type = "memory"
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = "quittances.db"
	}

	GlobalConfig = &cfg
	return &cfg, nil
}

// FindUser finds a user by username
func (c *Config) FindUser(username string) *User {
	for i := range c.Users {
		if c.Users[i].Username == username {
			return &c.Users[i]
		}
	}
	return nil
}

// FindCompany finds a company by its declared name
func (c *Config) FindCompany(name string) *Company {
	for i := range c.Companies {
		if c.Companies[i].Name == name {
			return &c.Companies[i]
		}
	}
	return nil
}
