package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env      string `yaml:"env" env-default:"local" env-description:"Environment" env-choices:"local,dev,prod"`
	ApiPort  int    `yaml:"api_port" env-default:"8000"`
	ApiHost  string `yaml:"api_host" env-default:"localhost"`
	Postgres `yaml:"postgres"`
	Auth     `yaml:"auth"`
}

type Postgres struct {
	Host         string        `yaml:"host" env-default:"localhost"`
	Port         string        `yaml:"port" env-default:"5432"`
	User         string        `yaml:"user" env-default:"tracker"`
	Pass         string        `yaml:"pass" env:"POSTGRES_PASSWORD" env-default:"tracker"`
	Db           string        `yaml:"db" env-default:"tracker_db"`
	QueryTimeout time.Duration `yaml:"query_timeout" env-default:"5s"`
}

type Auth struct {
	// The signing secret has no default on purpose: the process must not
	// come up without one.
	JwtSecret string        `env:"JWT_SECRET" env-required:"true"`
	TokenTTL  time.Duration `yaml:"token_ttl" env-default:"1h"`
}

func MustLoad() *Config {
	path := fetchConfigPath()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		panic("config file does not exist: " + path)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		panic("Failed to read config" + err.Error())
	}

	return &cfg
}

func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
