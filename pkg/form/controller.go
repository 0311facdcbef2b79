// Package form implements the contact form controller: it accumulates an
// in-progress inquiry, tracks which service sections are open (including the
// transient fade-out state a deselected section passes through), and submits
// the finished inquiry to the contact endpoint.
package form

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"contact-service/internal/models"
)

// ErrSubmissionInFlight is returned by Submit while a prior submission's
// round-trip is still outstanding.
var ErrSubmissionInFlight = errors.New("submission already in flight")

// Status is the banner state shown to the user
type Status int

const (
	StatusIdle Status = iota
	StatusSuccess
	StatusError
)

// SectionState describes one service section of the form
type SectionState int

const (
	// SectionAbsent - the tag is not selected and not animating
	SectionAbsent SectionState = iota
	// SectionSelected - the tag is selected; its sub-fields are in the payload
	SectionSelected
	// SectionClosing - the tag was just deselected; the section is still
	// visible during its fade-out but the tag is already out of the payload
	SectionClosing
)

const (
	defaultClosingDelay = 300 * time.Millisecond
	defaultBannerTTL    = 5 * time.Second
)

// Controller holds one form session's state. All methods are safe for
// concurrent use; the closing-animation timers never delay a submit.
type Controller struct {
	mu       sync.Mutex
	data     models.Inquiry
	selected []models.ServiceTag
	closing  map[models.ServiceTag]*time.Timer

	seoURLLinked bool
	inFlight     bool
	status       Status
	bannerTimer  *time.Timer

	endpoint     string
	client       *http.Client
	closingDelay time.Duration
	bannerTTL    time.Duration
}

// Option configures a Controller
type Option func(*Controller)

// WithHTTPClient sets the HTTP client used for submission
func WithHTTPClient(client *http.Client) Option {
	return func(c *Controller) { c.client = client }
}

// WithClosingDelay overrides the section fade-out duration
func WithClosingDelay(d time.Duration) Option {
	return func(c *Controller) { c.closingDelay = d }
}

// WithBannerTTL overrides how long the result banner stays up
func WithBannerTTL(d time.Duration) Option {
	return func(c *Controller) { c.bannerTTL = d }
}

// NewController creates a fresh form session posting to the given endpoint
func NewController(endpoint string, opts ...Option) *Controller {
	c := &Controller{
		closing:      make(map[models.ServiceTag]*time.Timer),
		endpoint:     endpoint,
		client:       &http.Client{Timeout: 30 * time.Second},
		closingDelay: defaultClosingDelay,
		bannerTTL:    defaultBannerTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ToggleService selects or deselects a service section. Selection is
// immediate. Deselection removes the tag from the payload immediately and
// parks the section in the closing state for the fade-out; its sub-field
// values are kept so reselecting restores them.
func (c *Controller) ToggleService(tag models.ServiceTag) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if timer, ok := c.closing[tag]; ok {
		// Reselect mid-animation: cancel the fade-out and restore
		timer.Stop()
		delete(c.closing, tag)
		c.selected = append(c.selected, tag)
		return
	}

	for n, s := range c.selected {
		if s == tag {
			c.selected = append(c.selected[:n], c.selected[n+1:]...)
			c.closing[tag] = time.AfterFunc(c.closingDelay, func() {
				c.mu.Lock()
				delete(c.closing, tag)
				c.mu.Unlock()
			})
			return
		}
	}

	c.selected = append(c.selected, tag)
}

// SectionState reports the display state of a service section
func (c *Controller) SectionState(tag models.ServiceTag) SectionState {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.closing[tag]; ok {
		return SectionClosing
	}
	for _, s := range c.selected {
		if s == tag {
			return SectionSelected
		}
	}
	return SectionAbsent
}

// UpdateField sets a top-level or sub-field by its JSON name, overwriting
// any prior value. The SEO URL field is ignored while mirrored from the
// website URL.
func (c *Controller) UpdateField(name, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch name {
	case "name":
		c.data.Name = value
	case "email":
		c.data.Email = value
	case "company":
		c.data.Company = value
	case "message":
		c.data.Message = value
	case "hasExistingWebsite":
		c.data.HasExistingWebsite = value
	case "websiteUrl":
		c.data.WebsiteURL = value
	case "websiteTimeline":
		c.data.WebsiteTimeline = value
	case "websiteBudget":
		c.data.WebsiteBudget = value
	case "hasExistingAccounts":
		c.data.HasExistingAccounts = value
	case "socialGoals":
		c.data.SocialGoals = value
	case "seoWebsiteUrl":
		if c.seoURLLinked {
			return nil
		}
		c.data.SEOWebsiteURL = value
	case "hasDoneSeo":
		c.data.HasDoneSEO = value
	case "targetArea":
		c.data.TargetArea = value
	case "competitors":
		c.data.Competitors = value
	case "businessType":
		c.data.BusinessType = value
	case "challenges":
		c.data.Challenges = value
	case "consultationFormat":
		c.data.ConsultationFormat = value
	default:
		return fmt.Errorf("unknown field %q", name)
	}
	return nil
}

// TogglePlatform adds or removes a social platform. Set semantics: no
// duplicates, order irrelevant.
func (c *Controller) TogglePlatform(platform string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for n, p := range c.data.SocialPlatforms {
		if p == platform {
			c.data.SocialPlatforms = append(c.data.SocialPlatforms[:n], c.data.SocialPlatforms[n+1:]...)
			return
		}
	}
	c.data.SocialPlatforms = append(c.data.SocialPlatforms, platform)
}

// LinkSEOURLToWebsiteURL mirrors the website URL into the SEO URL field and
// freezes it. This is a one-shot copy: later edits to the website URL do not
// propagate unless the link is re-applied. Disabling clears the SEO URL for
// independent entry.
func (c *Controller) LinkSEOURLToWebsiteURL(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if enabled {
		if c.data.WebsiteURL != "" {
			c.data.SEOWebsiteURL = c.data.WebsiteURL
		}
		c.seoURLLinked = true
		return
	}
	c.seoURLLinked = false
	c.data.SEOWebsiteURL = ""
}

// SEOURLLinked reports whether the SEO URL field is frozen to the website URL
func (c *Controller) SEOURLLinked() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seoURLLinked
}

// RequiredFields lists the fields the form marks required right now:
// name and email always, message only when no services are selected, and
// each selected service's required sub-fields.
func (c *Controller) RequiredFields() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	fields := []string{"name", "email"}
	if len(c.selected) == 0 {
		fields = append(fields, "message")
	}
	for _, tag := range c.selected {
		if spec := models.FragmentSpecFor(tag); spec != nil {
			fields = append(fields, spec.Required...)
		}
	}
	return fields
}

// Payload snapshots the inquiry as it would be submitted. Services derive
// from the selected set only; a section in its closing animation is already
// excluded, though its sub-field values still ride along untouched.
func (c *Controller) Payload() models.Inquiry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.payloadLocked()
}

func (c *Controller) payloadLocked() models.Inquiry {
	payload := c.data
	payload.Services = make([]string, len(c.selected))
	for n, tag := range c.selected {
		payload.Services[n] = string(tag)
	}
	payload.SocialPlatforms = append([]string(nil), c.data.SocialPlatforms...)
	return payload
}

// Status returns the current banner state
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Submit serializes the inquiry and posts it. A second submit while one is
// outstanding returns ErrSubmissionInFlight. On a 2xx response the form
// resets to its initial state; on any failure the entered data is kept so
// the user can retry, and the error banner auto-dismisses after 5 seconds.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return ErrSubmissionInFlight
	}
	c.inFlight = true
	payload := c.payloadLocked()
	c.mu.Unlock()

	err := c.post(ctx, payload)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false

	if err != nil {
		c.setStatusLocked(StatusError)
		return err
	}

	c.resetLocked()
	c.setStatusLocked(StatusSuccess)
	return nil
}

func (c *Controller) post(ctx context.Context, payload models.Inquiry) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to serialize inquiry: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("submission failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("submission rejected (%d): %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("submission rejected (%d)", resp.StatusCode)
	}
	return nil
}

// Reset returns the form to its initial empty state
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
	c.status = StatusIdle
}

func (c *Controller) resetLocked() {
	c.data = models.Inquiry{}
	c.selected = nil
	for tag, timer := range c.closing {
		timer.Stop()
		delete(c.closing, tag)
	}
	c.seoURLLinked = false
}

func (c *Controller) setStatusLocked(s Status) {
	c.status = s
	if c.bannerTimer != nil {
		c.bannerTimer.Stop()
	}
	c.bannerTimer = time.AfterFunc(c.bannerTTL, func() {
		c.mu.Lock()
		c.status = StatusIdle
		c.mu.Unlock()
	})
}
