package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/freakmaxi/kertish-serve/basics/errors"
	"github.com/pelletier/go-toml"
	pkgerrors "github.com/pkg/errors"
)

const (
	defaultBindAddress = ":4000"
	defaultRoutePrefix = "/filedownload"
	defaultReadTimeout = 30
)

// Config holds the settings of the serving node. Values are read from the optional
// TOML file first and then overridden by the environment
type Config struct {
	BindAddress   string
	BaseDirectory string
	RoutePrefix   string
	RFCFraming    bool

	// seconds, 0 disables the limit
	ReadTimeout  uint64
	WriteTimeout uint64
}

func New() *Config {
	return &Config{
		BindAddress: defaultBindAddress,
		RoutePrefix: defaultRoutePrefix,
		ReadTimeout: defaultReadTimeout,
	}
}

// LoadFile reads the TOML configuration file on top of the current values.
// Keys that are not in the file keep their values
func (c *Config) LoadFile(path string) error {
	tree, err := toml.LoadFile(path)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to load TOML config")
	}

	bulkError := errors.NewBulkError()

	for key, target := range map[string]*string{
		"bind_address":   &c.BindAddress,
		"base_directory": &c.BaseDirectory,
		"route_prefix":   &c.RoutePrefix,
	} {
		if !tree.Has(key) {
			continue
		}
		value, ok := tree.Get(key).(string)
		if !ok {
			bulkError.Add(fmt.Errorf("%s should be a string", key))
			continue
		}
		*target = value
	}

	if tree.Has("rfc_framing") {
		value, ok := tree.Get("rfc_framing").(bool)
		if !ok {
			bulkError.Add(fmt.Errorf("rfc_framing should be a boolean"))
		} else {
			c.RFCFraming = value
		}
	}

	for key, target := range map[string]*uint64{
		"read_timeout":  &c.ReadTimeout,
		"write_timeout": &c.WriteTimeout,
	} {
		if !tree.Has(key) {
			continue
		}
		value, ok := tree.Get(key).(int64)
		if !ok || value < 0 {
			bulkError.Add(pkgerrors.WithMessage(errors.ErrTimeout, key))
			continue
		}
		*target = uint64(value)
	}

	return bulkError.ErrorOrNil()
}

// LoadEnvironment overrides the values with the environment variables that are set
func (c *Config) LoadEnvironment(getenv func(string) string) error {
	bulkError := errors.NewBulkError()

	if bindAddr := getenv("BIND_ADDRESS"); len(bindAddr) > 0 {
		c.BindAddress = bindAddr
	}

	if baseDirectory := getenv("BASE_DIRECTORY"); len(baseDirectory) > 0 {
		c.BaseDirectory = baseDirectory
	}

	if routePrefix := getenv("ROUTE_PREFIX"); len(routePrefix) > 0 {
		c.RoutePrefix = routePrefix
	}

	if rfcFraming := strings.ToLower(getenv("RFC_FRAMING")); len(rfcFraming) > 0 {
		c.RFCFraming = strings.Compare(rfcFraming, "1") == 0 || strings.Compare(rfcFraming, "true") == 0
	}

	if err := parseSeconds(getenv("READ_TIMEOUT"), &c.ReadTimeout); err != nil {
		bulkError.Add(pkgerrors.WithMessage(err, "READ_TIMEOUT"))
	}

	if err := parseSeconds(getenv("WRITE_TIMEOUT"), &c.WriteTimeout); err != nil {
		bulkError.Add(pkgerrors.WithMessage(err, "WRITE_TIMEOUT"))
	}

	return bulkError.ErrorOrNil()
}

func parseSeconds(value string, target *uint64) error {
	if len(value) == 0 {
		return nil
	}

	seconds, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return errors.ErrTimeout
	}
	*target = seconds
	return nil
}

// Validate checks the values and reports all the problems at once
func (c *Config) Validate() error {
	bulkError := errors.NewBulkError()

	if len(c.BaseDirectory) == 0 {
		bulkError.Add(pkgerrors.WithMessage(errors.ErrBaseDirectory, "BASE_DIRECTORY have to be specified"))
	}

	if len(c.BindAddress) == 0 {
		bulkError.Add(fmt.Errorf("bind address can not be empty"))
	}

	if len(c.RoutePrefix) > 0 && strings.Index(c.RoutePrefix, "/") != 0 {
		bulkError.Add(fmt.Errorf("route prefix should start with /"))
	}

	return bulkError.ErrorOrNil()
}

// Prefix is the route prefix without the trailing separator
func (c *Config) Prefix() string {
	return strings.TrimSuffix(c.RoutePrefix, "/")
}

func (c *Config) ReadTimeoutDuration() time.Duration {
	return time.Duration(c.ReadTimeout) * time.Second
}

func (c *Config) WriteTimeoutDuration() time.Duration {
	return time.Duration(c.WriteTimeout) * time.Second
}
