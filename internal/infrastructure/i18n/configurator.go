// Package i18n provides the default internationalization collaborator: it
// holds the merged message catalog and serves lookups to the host.
package i18n

import (
	"context"
	"sync"

	"github.com/alexisbeaulieu97/appstart/pkg/startup"
)

// Configurator implements startup.I18nConfigurator.
type Configurator struct {
	mu         sync.RWMutex
	messages   startup.MessageSet
	cookieName string
}

// New creates an empty Configurator.
func New() *Configurator {
	return &Configurator{}
}

// Configure implements startup.I18nConfigurator. It receives the merged
// catalog from the i18n phase wiring.
func (c *Configurator) Configure(_ context.Context, cfg startup.I18nConfig) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = cfg.Messages
	if cfg.Config != nil {
		c.cookieName = cfg.Config.LanguageCookieName
	}
	return nil
}

// Message looks up a message by identifier.
func (c *Configurator) Message(id string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	message, ok := c.messages[id]
	return message, ok
}

// LanguageCookieName returns the configured language-preference cookie name.
func (c *Configurator) LanguageCookieName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cookieName
}

var _ startup.I18nConfigurator = (*Configurator)(nil)
