package controller

import (
	"context"
	"sync"

	"go.uber.org/zap"

	domain "user-directory-service/internal/domain/directory"
	apperrors "user-directory-service/pkg/errors"
)

// LocalController drives the legacy variant of the directory screen:
// the full roster is fetched once at startup and every filter pass
// runs synchronously against the in-memory set. There is no
// pagination; the whole filtered result is exposed at once.
type LocalController struct {
	mu sync.Mutex

	fetcher   SnapshotFetcher
	notifier  Notifier
	navigator Navigator
	log       *zap.Logger

	mode       ViewMode
	filterOpen bool
	loading    bool

	draft   domain.FilterCriteria
	applied domain.FilterCriteria
	all     []domain.UserRecord
	visible []domain.UserRecord
}

// LocalOption configures a LocalController.
type LocalOption func(*LocalController)

// WithLocalNavigator wires the detail-route navigation capability.
func WithLocalNavigator(n Navigator) LocalOption {
	return func(c *LocalController) { c.navigator = n }
}

// NewLocalController creates the controller in card mode. Call Load to
// perform the single roster fetch.
func NewLocalController(fetcher SnapshotFetcher, notifier Notifier, log *zap.Logger, opts ...LocalOption) *LocalController {
	c := &LocalController{
		fetcher:  fetcher,
		notifier: notifier,
		log:      log,
		mode:     ViewModeCard,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load fetches the full roster once. On failure the roster stays
// empty and a toast is raised; filtering afterwards is a no-op over
// nothing, and the user may retry by reloading the screen.
func (c *LocalController) Load(ctx context.Context) {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	users, err := c.fetcher.FetchAll(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false

	if err != nil {
		c.log.Warn("roster load failed", zap.Error(err))
		c.notifyLocked(err)
		return
	}

	c.all = users
	c.visible = c.applied.Apply(users)
}

// Users returns the currently visible, filtered result set.
func (c *LocalController) Users() []domain.UserRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visible
}

// Loading reports whether the initial fetch is in flight.
func (c *LocalController) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Mode returns the current view mode.
func (c *LocalController) Mode() ViewMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// SetMode switches between card and list rendering.
func (c *LocalController) SetMode(m ViewMode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = m
}

// FilterOpen reports whether the filter panel is open.
func (c *LocalController) FilterOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filterOpen
}

// OpenFilters opens the filter panel.
func (c *LocalController) OpenFilters() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filterOpen = true
}

// CloseFilters closes the filter panel without touching the draft.
func (c *LocalController) CloseFilters() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filterOpen = false
}

// Draft returns the criteria currently being edited in the form.
func (c *LocalController) Draft() domain.FilterCriteria {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// SetDraft replaces the draft criteria.
func (c *LocalController) SetDraft(criteria domain.FilterCriteria) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = criteria
}

// Apply commits the draft, re-filters locally and closes the panel.
func (c *LocalController) Apply() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.applied = c.draft
	c.visible = c.applied.Apply(c.all)
	c.filterOpen = false
}

// Clear resets draft and applied criteria, restores the full roster
// and closes the panel.
func (c *LocalController) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = domain.FilterCriteria{}
	c.applied = domain.FilterCriteria{}
	c.visible = c.all
	c.filterOpen = false
}

// Select navigates to the detail route for the given record.
func (c *LocalController) Select(userID string) {
	if c.navigator != nil {
		c.navigator.GoToUser(userID)
	}
}

func (c *LocalController) notifyLocked(err error) {
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
