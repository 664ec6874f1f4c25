package api

import (
	"errors"
	"fmt"
	"html/template"
	"time"

	"github.com/terraincognita07/rangepicker/internal/db"
	"github.com/terraincognita07/rangepicker/internal/i18n"
	"github.com/terraincognita07/rangepicker/internal/services"
	"github.com/terraincognita07/rangepicker/internal/templates"
	"gorm.io/gorm"
)

type Handler struct {
	db              *gorm.DB
	sessionKey      []byte
	location        *time.Location
	cookieSecure    bool
	defaultSpanDays int
	clock           services.Clock
	i18n            *i18n.Manager
	templates       map[string]*template.Template
	partials        map[string]*template.Template

	repositories *db.Repositories
	history      *services.RangeHistoryService
	sessions     *services.SessionStore
}

type HandlerOptions struct {
	SecretKey       string
	Location        *time.Location
	I18n            *i18n.Manager
	CookieSecure    bool
	DefaultSpanDays int
	Clock           services.Clock
	Sessions        *services.SessionStore
}

func NewHandler(database *gorm.DB, options HandlerOptions) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if options.I18n == nil {
		return nil, errors.New("i18n manager is required")
	}
	location := options.Location
	if location == nil {
		location = time.Local
	}
	clock := options.Clock
	if clock == nil {
		clock = services.SystemClock{}
	}
	sessions := options.Sessions
	if sessions == nil {
		sessions = services.NewSessionStore(clock)
	}

	sessionKey, err := deriveSessionKey(options.SecretKey)
	if err != nil {
		return nil, err
	}

	funcMap := newTemplateFuncMap()
	pages, err := parsePageTemplates(templates.Files, funcMap, pageTemplates)
	if err != nil {
		return nil, err
	}
	partials, err := parsePartialTemplates(templates.Files, funcMap, partialTemplateFiles)
	if err != nil {
		return nil, fmt.Errorf("parse partial templates: %w", err)
	}

	handler := &Handler{
		db:              database,
		sessionKey:      sessionKey,
		location:        location,
		cookieSecure:    options.CookieSecure,
		defaultSpanDays: options.DefaultSpanDays,
		clock:           clock,
		i18n:            options.I18n,
		templates:       pages,
		partials:        partials,
		sessions:        sessions,
	}
	return handler.withDependencies(database), nil
}

// Sessions exposes the store so the process can run a janitor over it.
func (handler *Handler) Sessions() *services.SessionStore {
	return handler.sessions
}
