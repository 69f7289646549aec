// Package snapshot decorates a Gateway with a diskv-backed cache of the last
// successful query results. When the engine daemon is unreachable the cached
// calendars, tags, config, and the unfiltered projection are served instead,
// so CLI one-shots keep working offline. Commands always pass through.
package snapshot

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/tasque/pkg/engine"
)

const (
	keyCalendars = "calendars"
	keyTags      = "tags"
	keyConfig    = "config"
	keyTasks     = "tasks"
)

// Gateway wraps an inner gateway with the offline cache.
type Gateway struct {
	inner engine.Gateway
	d     *diskv.Diskv
}

// New creates the caching gateway rooted at basePath.
func New(inner engine.Gateway, basePath string) *Gateway {
	return &Gateway{
		inner: inner,
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			CacheSizeMax: 1024 * 1024, // 1MB
		}),
	}
}

var _ engine.Gateway = (*Gateway)(nil)

func (g *Gateway) ConnectAndLoad(ctx context.Context) error {
	return g.inner.ConnectAndLoad(ctx)
}

func (g *Gateway) Calendars(ctx context.Context) ([]engine.Calendar, error) {
	items, err := g.inner.Calendars(ctx)
	if err != nil {
		var cached []engine.Calendar
		if g.readCached(keyCalendars, &cached, err) {
			return cached, nil
		}
		return nil, err
	}
	g.writeCached(keyCalendars, items)
	return items, nil
}

func (g *Gateway) Tags(ctx context.Context) ([]engine.Tag, error) {
	items, err := g.inner.Tags(ctx)
	if err != nil {
		var cached []engine.Tag
		if g.readCached(keyTags, &cached, err) {
			return cached, nil
		}
		return nil, err
	}
	g.writeCached(keyTags, items)
	return items, nil
}

func (g *Gateway) Config(ctx context.Context) (engine.Config, error) {
	cfg, err := g.inner.Config(ctx)
	if err != nil {
		var cached engine.Config
		if g.readCached(keyConfig, &cached, err) {
			return cached, nil
		}
		return engine.Config{}, err
	}
	g.writeCached(keyConfig, cfg)
	return cfg, nil
}

func (g *Gateway) Tasks(ctx context.Context, sel *engine.TagSelector, query string) ([]engine.Task, error) {
	items, err := g.inner.Tasks(ctx, sel, query)
	unfiltered := sel == nil && strings.TrimSpace(query) == ""
	if err != nil {
		var cached []engine.Task
		if unfiltered && g.readCached(keyTasks, &cached, err) {
			return cached, nil
		}
		return nil, err
	}
	if unfiltered {
		g.writeCached(keyTasks, items)
	}
	return items, nil
}

func (g *Gateway) ToggleTask(ctx context.Context, uid string) error {
	return g.inner.ToggleTask(ctx, uid)
}

func (g *Gateway) DeleteTask(ctx context.Context, uid string) error {
	return g.inner.DeleteTask(ctx, uid)
}

func (g *Gateway) AddTask(ctx context.Context, smart string) error {
	return g.inner.AddTask(ctx, smart)
}

func (g *Gateway) UpdateTaskText(ctx context.Context, uid, smart string) error {
	return g.inner.UpdateTaskText(ctx, uid, smart)
}

func (g *Gateway) UpdateTaskDescription(ctx context.Context, uid, text string) error {
	return g.inner.UpdateTaskDescription(ctx, uid, text)
}

func (g *Gateway) MoveTask(ctx context.Context, uid, destHref string) error {
	return g.inner.MoveTask(ctx, uid, destHref)
}

func (g *Gateway) SetCalendarVisibility(ctx context.Context, href string, visible bool) error {
	return g.inner.SetCalendarVisibility(ctx, href, visible)
}

func (g *Gateway) SetDefaultCalendar(ctx context.Context, href string) error {
	return g.inner.SetDefaultCalendar(ctx, href)
}

func (g *Gateway) SaveConfig(ctx context.Context, cfg engine.ConnectionConfig) error {
	return g.inner.SaveConfig(ctx, cfg)
}

func (g *Gateway) Connect(ctx context.Context, cfg engine.ConnectionConfig) (string, error) {
	return g.inner.Connect(ctx, cfg)
}

func (g *Gateway) AddAlias(ctx context.Context, key string, tags []string) error {
	return g.inner.AddAlias(ctx, key, tags)
}

func (g *Gateway) RemoveAlias(ctx context.Context, key string) error {
	return g.inner.RemoveAlias(ctx, key)
}

// readCached loads a cached value, but only for failures where stale data is
// better than nothing. Not-found and validation errors are real answers.
func (g *Gateway) readCached(key string, out any, cause error) bool {
	switch engine.KindOf(cause) {
	case engine.KindConnection, engine.KindTransient:
	default:
		return false
	}
	data, err := g.d.Read(key)
	if err != nil {
		return false
	}
	return json.Unmarshal(data, out) == nil
}

func (g *Gateway) writeCached(key string, val any) {
	data, err := json.Marshal(val)
	if err != nil {
		return
	}
	_ = g.d.Write(key, data)
}
