package metrics

import (
	"errors"
	"net/url"
	"time"

	"github.com/vertti/importcheck/pkg/logging"
)

// Logger is the logging interface used by collectors.
type Logger = logging.Logger

var (
	ErrPushgatewayURLInvalid = errors.New("metrics: invalid pushgateway URL")
	ErrJobNameRequired       = errors.New("metrics: job name is required for push")
	ErrInvalidTimeout        = errors.New("metrics: push timeout must be positive")
)

// DefaultTimeout bounds a Pushgateway push.
const DefaultTimeout = 10 * time.Second

// Config selects where metrics go. Both destinations may be set.
type Config struct {
	TextfilePath   string        // node_exporter textfile, "" disables
	PushgatewayURL string        // e.g. "http://pushgateway:9091", "" disables
	JobName        string        // Pushgateway job label
	Timeout        time.Duration // push timeout
}

// Enabled reports whether any destination is configured.
func (c Config) Enabled() bool {
	return c.TextfilePath != "" || c.PushgatewayURL != ""
}

// Validate checks the push settings. Textfile output needs no validation.
func (c Config) Validate() error {
	if c.PushgatewayURL == "" {
		return nil
	}

	u, err := url.Parse(c.PushgatewayURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ErrPushgatewayURLInvalid
	}
	if c.JobName == "" {
		return ErrJobNameRequired
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	return nil
}
