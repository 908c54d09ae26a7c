// Package habitsync is a client for the habit API that keeps a local cache of habits and logs.
//
// Reads are served from the cache when fresh and revalidated in the background. Mutations are
// applied to the cache first and rolled back when the server rejects them. Only one mutation per
// cache key may be in flight; a second one fails with ErrMutationInFlight.
package habitsync

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var (
	// ErrMutationInFlight is returned when a mutation targets a key that already has one pending
	ErrMutationInFlight = errors.New("a mutation is already in flight for this resource")

	// ErrClosed is returned by every call made after Close
	ErrClosed = errors.New("client closed")
)

const habitsKey = "habits"

func logsKey(habitID int64) string {
	return fmt.Sprintf("logs:%d", habitID)
}

// Options configures a Client
type Options struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client

	// RevalidateInterval is how often cached keys are refetched. Negative disables it.
	RevalidateInterval time.Duration
	// DedupeWindow is how long a fetched value is served without a new request
	DedupeWindow time.Duration
	// Retries is the number of extra attempts for failed reads. Negative disables them.
	Retries    int
	RetryDelay time.Duration

	// Location resolves "today" for optimistic toggles
	Location *time.Location
	Logger   *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.HTTPClient == nil {
		o.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}
	if o.RevalidateInterval == 0 {
		o.RevalidateInterval = 15 * time.Second
	}
	if o.DedupeWindow == 0 {
		o.DedupeWindow = 5 * time.Second
	}
	switch {
	case o.Retries == 0:
		o.Retries = 2
	case o.Retries < 0:
		o.Retries = 0
	}
	if o.RetryDelay == 0 {
		o.RetryDelay = 500 * time.Millisecond
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

type entry struct {
	value     any // always a slice
	fetchedAt time.Time
}

type fetchCall struct {
	done  chan struct{}
	value any
	err   error
}

// Client talks to the habit API through an owned cache
type Client struct {
	api  *apiClient
	opts Options
	log  *zap.Logger
	now  func() time.Time
	cron *cron.Cron

	mu       sync.Mutex
	entries  map[string]*entry
	fetches  map[string]*fetchCall
	inflight map[string]bool
	subs     map[int]func(key string)
	nextSub  int
	tempID   int64
	closed   bool
}

// New creates a client and starts background revalidation
func New(opts Options) (*Client, error) {
	opts = opts.withDefaults()

	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid server url %q", opts.BaseURL)
	}

	c := &Client{
		api: &apiClient{
			baseURL:    base.String(),
			token:      opts.Token,
			http:       opts.HTTPClient,
			retries:    opts.Retries,
			retryDelay: opts.RetryDelay,
		},
		opts:     opts,
		log:      opts.Logger,
		now:      time.Now,
		entries:  make(map[string]*entry),
		fetches:  make(map[string]*fetchCall),
		inflight: make(map[string]bool),
		subs:     make(map[int]func(string)),
	}

	if opts.RevalidateInterval > 0 {
		c.cron = cron.New()
		_, err := c.cron.AddFunc(fmt.Sprintf("@every %s", opts.RevalidateInterval), func() {
			ctx, cancel := context.WithTimeout(context.Background(), opts.RevalidateInterval)
			defer cancel()
			if err := c.Revalidate(ctx); err != nil && !errors.Is(err, ErrClosed) {
				c.log.Warn("revalidation failed", zap.Error(err))
			}
		})
		if err != nil {
			return nil, fmt.Errorf("failed to schedule revalidation: %w", err)
		}
		c.cron.Start()
	}

	return c, nil
}

// Close stops revalidation. Requests still running settle without touching the cache.
func (c *Client) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	if c.cron != nil {
		<-c.cron.Stop().Done()
	}
}

// Subscribe registers fn to be called with the key of every cache change
func (c *Client) Subscribe(fn func(key string)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

// subscribers must be called with mu held
func (c *Client) subscribers() []func(string) {
	out := make([]func(string), 0, len(c.subs))
	for _, fn := range c.subs {
		out = append(out, fn)
	}
	return out
}

func notify(subs []func(string), key string) {
	for _, fn := range subs {
		fn(key)
	}
}

func (c *Client) nextTempID() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tempID--
	return c.tempID
}

// Revalidate refetches every cached key whose value is older than the dedupe window
func (c *Client) Revalidate(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	keys := make([]string, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}
	c.mu.Unlock()

	var errs []error
	for _, key := range keys {
		var err error
		if key == habitsKey {
			_, err = c.Habits(ctx)
		} else {
			var habitID int64
			if _, scanErr := fmt.Sscanf(key, "logs:%d", &habitID); scanErr != nil {
				continue
			}
			_, err = c.Logs(ctx, habitID)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to revalidate %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

// drop forgets a key
func (c *Client) drop(key string) {
	c.mu.Lock()
	_, existed := c.entries[key]
	delete(c.entries, key)
	subs := c.subscribers()
	c.mu.Unlock()
	if existed {
		notify(subs, key)
	}
}

func cloneSlice[E any](s []E) []E {
	return append(make([]E, 0, len(s)), s...)
}

// cachedList returns a copy of the cached slice under key
func cachedList[E any](c *Client, key string) ([]E, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return cloneSlice(e.value.([]E)), true
}

// fetchList serves key from the cache when fresh, otherwise loads it once even under concurrent callers.
// A degraded answer never replaces cached data. Neither does a fetch that lands while a mutation is pending.
func fetchList[E any](ctx context.Context, c *Client, key string, force bool, load func(context.Context) ([]E, string, error)) ([]E, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClosed
	}
	if e, ok := c.entries[key]; ok && !force && c.now().Sub(e.fetchedAt) < c.opts.DedupeWindow {
		v := cloneSlice(e.value.([]E))
		c.mu.Unlock()
		return v, nil
	}
	if call, ok := c.fetches[key]; ok {
		c.mu.Unlock()
		select {
		case <-call.done:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		if call.err != nil {
			return nil, call.err
		}
		return cloneSlice(call.value.([]E)), nil
	}
	call := &fetchCall{done: make(chan struct{})}
	c.fetches[key] = call
	c.mu.Unlock()

	value, warning, err := load(ctx)
	if value == nil {
		value = []E{}
	}

	c.mu.Lock()
	delete(c.fetches, key)
	changed := false
	if err == nil && !c.closed {
		e, cached := c.entries[key]
		switch {
		case warning != "":
			c.log.Warn("server served a degraded read", zap.String("key", key), zap.String("warning", warning))
			if cached {
				value = e.value.([]E)
			}
		case c.inflight[key]:
			// the optimistic value stays until the mutation settles
		default:
			c.entries[key] = &entry{value: value, fetchedAt: c.now()}
			changed = true
		}
	}
	call.value, call.err = value, err
	close(call.done)
	var subs []func(string)
	if changed {
		subs = c.subscribers()
	}
	c.mu.Unlock()

	notify(subs, key)
	if err != nil {
		return nil, err
	}
	return cloneSlice(value), nil
}

// mutate applies optimistic to the cached slice, runs remote and then either settles the cache with
// the returned function or restores the snapshot. Keys that are not cached are left alone.
func mutate[E any](
	ctx context.Context,
	c *Client,
	key string,
	optimistic func([]E) []E,
	remote func(context.Context) (settle func([]E) []E, err error),
) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.inflight[key] {
		c.mu.Unlock()
		return ErrMutationInFlight
	}
	c.inflight[key] = true

	var snapshot []E
	e, cached := c.entries[key]
	if cached {
		snapshot = e.value.([]E)
		e.value = optimistic(cloneSlice(snapshot))
	}
	subs := c.subscribers()
	c.mu.Unlock()
	if cached {
		notify(subs, key)
	}

	settle, err := remote(ctx)

	c.mu.Lock()
	delete(c.inflight, key)
	if c.closed {
		c.mu.Unlock()
		return err
	}
	touched := false
	if e, ok := c.entries[key]; ok {
		switch {
		case err != nil && cached:
			e.value = snapshot
			touched = true
		case err == nil && settle != nil:
			e.value = settle(cloneSlice(e.value.([]E)))
			e.fetchedAt = c.now()
			touched = true
		}
	}
	subs = c.subscribers()
	c.mu.Unlock()

	if touched {
		notify(subs, key)
	}
	return err
}
