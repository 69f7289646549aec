package engine

import "context"

// Task is a read-only projection of a single todo as the engine computed it.
// The client never edits fields in place; every change is a Gateway command
// followed by a refetch.
type Task struct {
	UID          string   `json:"uid"`
	Summary      string   `json:"summary"`
	Description  string   `json:"description"`
	Done         bool     `json:"done"`
	Priority     int      `json:"priority"`
	Depth        int      `json:"depth"`
	DueDateISO   string   `json:"due,omitempty"`
	Recurring    bool     `json:"recurring"`
	Blocked      bool     `json:"blocked"`
	Categories   []string `json:"categories,omitempty"`
	CalendarHref string   `json:"calendar_href"`
	SmartString  string   `json:"smart_string"`
}

// Calendar is a remote task list. At most one calendar is the default,
// tracked separately via Config.DefaultCalendar.
type Calendar struct {
	Href    string `json:"href"`
	Name    string `json:"name"`
	Visible bool   `json:"visible"`
}

// Tag is a category name with its live task count. Uncategorized marks the
// synthetic "no tags" bucket, which is not a real tag name.
type Tag struct {
	Name          string `json:"name"`
	Count         int    `json:"count"`
	Uncategorized bool   `json:"uncategorized"`
}

// Config is the engine-persisted configuration snapshot.
type Config struct {
	URL             string              `json:"url"`
	Username        string              `json:"username"`
	AllowInsecure   bool                `json:"allow_insecure"`
	HideCompleted   bool                `json:"hide_completed"`
	DefaultCalendar string              `json:"default_calendar,omitempty"`
	TagAliases      map[string][]string `json:"tag_aliases,omitempty"`
}

// ConnectionConfig carries the fields the engine needs to (re)establish its
// remote session. Password is write-only: it never appears in Config.
type ConnectionConfig struct {
	URL           string `json:"url"`
	Username      string `json:"username"`
	Password      string `json:"password"`
	AllowInsecure bool   `json:"allow_insecure"`
	HideCompleted bool   `json:"hide_completed"`
}

// TagSelector scopes the task projection to a tag bucket. A nil selector
// means no tag filter. Uncategorized selects the synthetic bucket regardless
// of Name.
type TagSelector struct {
	Uncategorized bool   `json:"uncategorized"`
	Name          string `json:"name,omitempty"`
}

// Gateway is the full surface of the external task engine. Queries return
// snapshots and have no side effects; commands mutate engine state and
// return nothing (Connect additionally returns a status line). Every call
// can fail, and no call retries on its own.
type Gateway interface {
	// ConnectAndLoad establishes the remote session using the engine's
	// persisted configuration.
	ConnectAndLoad(ctx context.Context) error

	Calendars(ctx context.Context) ([]Calendar, error)
	Tags(ctx context.Context) ([]Tag, error)
	Config(ctx context.Context) (Config, error)
	// Tasks evaluates the projection for the selector/query pair. Both are
	// passed through verbatim; the engine owns the query syntax.
	Tasks(ctx context.Context, sel *TagSelector, query string) ([]Task, error)

	ToggleTask(ctx context.Context, uid string) error
	DeleteTask(ctx context.Context, uid string) error
	AddTask(ctx context.Context, smart string) error
	UpdateTaskText(ctx context.Context, uid, smart string) error
	UpdateTaskDescription(ctx context.Context, uid, text string) error
	MoveTask(ctx context.Context, uid, destHref string) error
	SetCalendarVisibility(ctx context.Context, href string, visible bool) error
	SetDefaultCalendar(ctx context.Context, href string) error
	SaveConfig(ctx context.Context, cfg ConnectionConfig) error
	Connect(ctx context.Context, cfg ConnectionConfig) (string, error)
	AddAlias(ctx context.Context, key string, tags []string) error
	RemoveAlias(ctx context.Context, key string) error
}
