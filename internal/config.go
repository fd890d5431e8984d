package internal

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/text/language"

	"github.com/starford/scholarmap/internal/catalog"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App    ApplicationConfig `yaml:"app"`
	Data   DataConfig        `yaml:"data"`
	SQLite SQLiteConfig      `yaml:"sqlite"`
	Auth   AuthConfig        `yaml:"auth"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Data.Validate(); err != nil {
		return err
	}
	if err := c.SQLite.Validate(); err != nil {
		return err
	}
	return c.Auth.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
	// Locale drives name collation and interest tie-breaks (BCP 47, e.g. "en", "ar").
	Locale string `yaml:"locale"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Locale, validation.Required, validation.By(func(v any) error {
			_, err := language.Parse(v.(string))
			return err
		})),
	); err != nil {
		return err
	}
	return c.HTTP.Validate()
}

// Language returns the parsed collation locale, English when unparsable.
func (c *ApplicationConfig) Language() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.English
	}
	return tag
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// DataConfig locates the dataset. File names are relative to Dir.
type DataConfig struct {
	Dir             string `yaml:"dir"`
	ResearchersFile string `yaml:"researchers_file"`
	CategoriesFile  string `yaml:"categories_file"`
	LocationsFile   string `yaml:"locations_file"`
	// LocationsURL, when set, replaces LocationsFile as the location table source.
	LocationsURL string `yaml:"locations_url"`
	// Watch reloads the catalog when data files change.
	Watch    bool          `yaml:"watch"`
	Debounce time.Duration `yaml:"debounce"`
}

// Validate validates the data configuration.
func (c *DataConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Dir, validation.Required),
		validation.Field(&c.ResearchersFile, validation.Required, validation.By(relativePath)),
		validation.Field(&c.CategoriesFile, validation.Required, validation.By(relativePath)),
		validation.Field(&c.LocationsFile, validation.By(relativePath)),
		validation.Field(&c.LocationsURL, validation.By(httpURL)),
		validation.Field(&c.Debounce, validation.Min(time.Duration(0))),
	)
}

// Files returns the catalog file set. The locations file is left out when
// the table comes from LocationsURL.
func (c *DataConfig) Files() catalog.Files {
	f := catalog.Files{
		Researchers: c.ResearchersFile,
		Categories:  c.CategoriesFile,
		Locations:   c.LocationsFile,
	}
	if c.LocationsURL != "" {
		f.Locations = ""
	}
	return f
}

func relativePath(v any) error {
	p, _ := v.(string)
	if p != "" && filepath.IsAbs(p) {
		return errors.New("must be relative to the data dir")
	}
	return nil
}

func httpURL(v any) error {
	s, _ := v.(string)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("must be an http(s) URL")
	}
	return nil
}

// SQLiteConfig holds SQLite database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AuthConfig holds authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
			Locale: "en",
		},
		Data: DataConfig{
			Dir:             "./data",
			ResearchersFile: "researchers.json",
			CategoriesFile:  "categories.json",
			LocationsFile:   "locations.json",
			Watch:           true,
			Debounce:        catalog.DefaultDebounce,
		},
		SQLite: SQLiteConfig{
			Path: "./scholarmap.db",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}
