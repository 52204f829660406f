package configuration

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/drzewo/drzewo/pkg/logging"
)

const Production = "production"

var singleton = sync.OnceValue(func() *Configuration {
	c := &Configuration{}
	if err := c.load([]string{".env", ".env.local"}); err != nil {
		c.Unload()
		panic(err)
	}
	return c
})

func LoadEnv(envFiles []string) (int, error) {
	existingFiles := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			existingFiles = append(existingFiles, file)
		}
	}

	if len(existingFiles) == 0 {
		return 0, nil
	}

	return len(existingFiles), godotenv.Load(existingFiles...)
}

type DatabaseOptions struct {
	Opts     string `env:"-"`
	Name     string `env:"DB_NAME" envDefault:"drzewo"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
}

func (d *DatabaseOptions) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s dbname=%s password=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Name, d.Password,
	)
}

type ImportOptions struct {
	BatchSize        int `env:"IMPORT_BATCH_SIZE" envDefault:"1000"`
	ProgressInterval int `env:"IMPORT_PROGRESS_INTERVAL" envDefault:"10000"`
}

// Validate checks the import tuning knobs for errors.
func (i *ImportOptions) Validate() error {
	if i.BatchSize <= 0 {
		return fmt.Errorf("import BatchSize must be positive, got %d", i.BatchSize)
	}
	if i.ProgressInterval <= 0 {
		return fmt.Errorf("import ProgressInterval must be positive, got %d", i.ProgressInterval)
	}
	return nil
}

type NearestOptions struct {
	DefaultLimit int     `env:"NEAREST_DEFAULT_LIMIT" envDefault:"10"`
	MaxLimit     int     `env:"NEAREST_MAX_LIMIT" envDefault:"100"`
	MinRadiusM   float64 `env:"NEAREST_MIN_RADIUS_M" envDefault:"1"`
	MaxRadiusM   float64 `env:"NEAREST_MAX_RADIUS_M" envDefault:"5000"`
}

func (n *NearestOptions) Validate() error {
	if n.DefaultLimit <= 0 || n.MaxLimit <= 0 {
		return fmt.Errorf("nearest limits must be positive, got default=%d max=%d", n.DefaultLimit, n.MaxLimit)
	}
	if n.DefaultLimit > n.MaxLimit {
		return fmt.Errorf("nearest DefaultLimit %d exceeds MaxLimit %d", n.DefaultLimit, n.MaxLimit)
	}
	if n.MinRadiusM <= 0 || n.MaxRadiusM < n.MinRadiusM {
		return fmt.Errorf("nearest radius bounds invalid: min=%f max=%f", n.MinRadiusM, n.MaxRadiusM)
	}
	return nil
}

type Configuration struct {
	Database DatabaseOptions
	Import   ImportOptions
	Nearest  NearestOptions

	DataDir          string `env:"DATA_DIR" envDefault:"data"`
	LogPath          string `env:"LOG_PATH" envDefault:"./logs/app.log"`
	LogLevel         string `env:"LOG_LEVEL" envDefault:"error"`
	ServerPort       int    `env:"PORT" envDefault:"3200"`
	GoAppEnvironment string `env:"GO_APP_ENV" envDefault:"development"`
	SocketAddress    string `env:"-"`

	logFile *os.File
	logger  *logrus.Logger
}

func (c *Configuration) Logger() *logrus.Logger {
	return c.logger
}

func (c *Configuration) LogrusLogLevel() logrus.Level {
	switch c.LogLevel {
	case "silent":
		return logrus.PanicLevel
	case "error":
		return logrus.ErrorLevel
	case "warn":
		return logrus.WarnLevel
	case "info":
		return logrus.InfoLevel
	case "debug":
		return logrus.DebugLevel
	default:
		return logrus.ErrorLevel
	}
}

func Use() *Configuration {
	return singleton()
}

func (c *Configuration) load(envFiles []string) error {
	n, err := LoadEnv(envFiles)
	if err != nil {
		return err
	}
	if n == 0 {
		wd, _ := os.Getwd()
		log.Println("No .env files found. Tried:")
		for _, file := range envFiles {
			log.Println(filepath.Join(wd, file))
		}
	}
	if err := env.Parse(c); err != nil {
		return err
	}

	if err := c.Import.Validate(); err != nil {
		return fmt.Errorf("import configuration error: %w", err)
	}
	if err := c.Nearest.Validate(); err != nil {
		return fmt.Errorf("nearest configuration error: %w", err)
	}

	f, logger, err := logging.FileLogger(c.LogrusLogLevel(), c.LogPath)
	if err != nil {
		return err
	}
	c.logFile = f
	c.logger = logger

	c.Database.Opts = c.Database.ConnectionString()
	if c.GoAppEnvironment == Production {
		c.SocketAddress = fmt.Sprintf(":%d", c.ServerPort)
	} else {
		c.SocketAddress = fmt.Sprintf("localhost:%d", c.ServerPort)
	}

	return nil
}

// unload handles a graceful shutdown.
func (c *Configuration) Unload() {
	if c.logFile != nil {
		if err := c.logFile.Close(); err != nil {
			log.Printf("Failed to close log file: %v", err)
		}
	}
}
