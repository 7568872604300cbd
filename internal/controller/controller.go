// Package controller holds the view state behind the admin user
// directory screen: current page, draft and applied filter criteria,
// card/list mode, and the loading flag. Rendering, routing and toast
// presentation stay outside; the controller talks to them through
// injected capabilities.
package controller

import (
	"context"
	"sync"

	"go.uber.org/zap"

	domain "user-directory-service/internal/domain/directory"
	apperrors "user-directory-service/pkg/errors"
)

// ViewMode selects how the directory is rendered.
type ViewMode string

const (
	ViewModeCard ViewMode = "card"
	ViewModeList ViewMode = "list"
)

// Notification variants understood by the external toast surface.
const VariantDestructive = "destructive"

// Notification is what the controller hands to the notifier on
// failure; how it is displayed is not the controller's concern.
type Notification struct {
	Variant     string
	Title       string
	Description string
}

// Notifier is the external toast surface.
type Notifier interface {
	Notify(n Notification)
}

// Navigator handles outbound navigation to the per-user detail route.
type Navigator interface {
	GoToUser(userID string)
}

// PageFetcher is the server-filtered fetch engine.
type PageFetcher interface {
	FetchPage(ctx context.Context, page int64, criteria domain.FilterCriteria) ([]domain.UserRecord, domain.Meta, error)
}

// SnapshotFetcher is the single-shot fetch engine used by the
// locally-filtering variant.
type SnapshotFetcher interface {
	FetchAll(ctx context.Context) ([]domain.UserRecord, error)
}

// PageController drives the server-filtered, paginated variant of the
// directory screen. Every action that changes the (page, applied
// criteria) pair triggers an explicit refresh; there is no implicit
// change detection to miss an unchanged-but-reapplied filter.
//
// A refresh that fails leaves the previous result set in place. When
// refreshes overlap, the later-arriving response wins regardless of
// which request started first; nothing is cancelled.
type PageController struct {
	mu sync.Mutex

	fetcher   PageFetcher
	notifier  Notifier
	navigator Navigator
	onScroll  func()
	log       *zap.Logger

	mode       ViewMode
	filterOpen bool
	loading    bool

	draft   domain.FilterCriteria
	applied domain.FilterCriteria
	page    int64
	meta    domain.Meta
	users   []domain.UserRecord
}

// PageOption configures a PageController.
type PageOption func(*PageController)

// WithNavigator wires the detail-route navigation capability.
func WithNavigator(n Navigator) PageOption {
	return func(c *PageController) { c.navigator = n }
}

// WithScrollHook sets the callback fired after a valid page
// navigation, for scrolling the viewport back to the top.
func WithScrollHook(f func()) PageOption {
	return func(c *PageController) { c.onScroll = f }
}

// NewPageController creates the controller in card mode on page 1.
// Call Load to perform the initial fetch.
func NewPageController(fetcher PageFetcher, notifier Notifier, log *zap.Logger, opts ...PageOption) *PageController {
	c := &PageController{
		fetcher:  fetcher,
		notifier: notifier,
		log:      log,
		mode:     ViewModeCard,
		page:     1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load performs the initial fetch.
func (c *PageController) Load(ctx context.Context) {
	c.refresh(ctx)
}

// Users returns the current result set.
func (c *PageController) Users() []domain.UserRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.users
}

// Meta returns the current pagination metadata.
func (c *PageController) Meta() domain.Meta {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.meta
}

// Loading reports whether a fetch is in flight.
func (c *PageController) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Mode returns the current view mode.
func (c *PageController) Mode() ViewMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// SetMode switches between card and list rendering.
func (c *PageController) SetMode(m ViewMode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = m
}

// FilterOpen reports whether the filter panel is open.
func (c *PageController) FilterOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filterOpen
}

// OpenFilters opens the filter panel.
func (c *PageController) OpenFilters() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filterOpen = true
}

// CloseFilters closes the filter panel without touching the draft.
func (c *PageController) CloseFilters() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filterOpen = false
}

// Draft returns the criteria currently being edited in the form.
func (c *PageController) Draft() domain.FilterCriteria {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// SetDraft replaces the draft criteria. The applied criteria are
// untouched until Apply commits them.
func (c *PageController) SetDraft(criteria domain.FilterCriteria) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = criteria
}

// Applied returns the criteria that drove the last fetch.
func (c *PageController) Applied() domain.FilterCriteria {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applied
}

// Apply commits the draft, resets to page 1, closes the panel and
// refetches. Applying an unchanged draft still refetches.
func (c *PageController) Apply(ctx context.Context) {
	c.mu.Lock()
	c.applied = c.draft
	c.page = 1
	c.filterOpen = false
	c.mu.Unlock()

	c.refresh(ctx)
}

// Clear resets draft and applied criteria to empty, resets to page 1,
// closes the panel and refetches.
func (c *PageController) Clear(ctx context.Context) {
	c.mu.Lock()
	c.draft = domain.FilterCriteria{}
	c.applied = domain.FilterCriteria{}
	c.page = 1
	c.filterOpen = false
	c.mu.Unlock()

	c.refresh(ctx)
}

// GoToPage navigates to page n. Out-of-range targets are a no-op; a
// valid navigation refetches and fires the scroll hook.
func (c *PageController) GoToPage(ctx context.Context, n int64) {
	c.mu.Lock()
	if n < 1 || n > c.meta.Pages {
		c.mu.Unlock()
		return
	}
	c.page = n
	c.mu.Unlock()

	c.refresh(ctx)

	if c.onScroll != nil {
		c.onScroll()
	}
}

// Select navigates to the detail route for the given record.
func (c *PageController) Select(userID string) {
	if c.navigator != nil {
		c.navigator.GoToUser(userID)
	}
}

// refresh re-runs the fetch engine against the current (page, applied
// criteria) pair and applies the outcome. Failure ends the loading
// state, keeps the previous result set and raises a toast.
func (c *PageController) refresh(ctx context.Context) {
	c.mu.Lock()
	c.loading = true
	page, criteria := c.page, c.applied
	c.mu.Unlock()

	users, meta, err := c.fetcher.FetchPage(ctx, page, criteria)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false

	if err != nil {
		c.log.Warn("directory refresh failed", zap.Int64("page", page), zap.Error(err))
		c.notify(err)
		return
	}

	c.users = users
	c.meta = meta
}

func (c *PageController) notify(err error) {
	if c.notifier == nil {
		return
	}
	title := "Request failed"
	if apperrors.IsTransport(err) {
		title = "Connection problem"
	}
	c.notifier.Notify(Notification{
		Variant:     VariantDestructive,
		Title:       title,
		Description: apperrors.UserMessage(err),
	})
}
