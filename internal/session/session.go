// Package session implements the live editing loop of the builder: it owns
// the working document for one open résumé, re-renders the visual document
// after every change, and serializes saves and exports so they never
// overlap themselves.
package session

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/jonathan/resume-studio/internal/export"
	"github.com/jonathan/resume-studio/internal/render"
	"github.com/jonathan/resume-studio/internal/resume"
	"github.com/jonathan/resume-studio/internal/store"
)

// State is the controller's lifecycle phase. Saving and exporting are
// independent: an export may run while a save is in flight, but neither
// operation overlaps itself.
type State string

const (
	StateLoading   State = "loading"
	StateEditing   State = "editing"
	StateSaving    State = "saving"
	StateExporting State = "exporting"
)

var (
	// ErrSaveInProgress is returned when a save is requested while one is
	// already running.
	ErrSaveInProgress = errors.New("save already in progress")
	// ErrExportInProgress is returned when an export is requested while
	// one is already running.
	ErrExportInProgress = errors.New("export already in progress")
)

// Event describes a controller transition delivered to observers.
type Event struct {
	State  State
	Visual *render.Document
	Err    error
}

// Observer receives controller events. Observers are called synchronously
// on the goroutine driving the transition and must not call back into the
// controller.
type Observer func(Event)

// Controller owns one editing session: the working document, the selected
// template, and the identity of the saved record once one exists.
type Controller struct {
	store    store.RecordStore
	exporter *export.Exporter

	mu        sync.Mutex
	userID    uuid.UUID
	recordID  uuid.UUID
	template  render.Key
	title     string
	doc       resume.Document
	visual    *render.Document
	epoch     uint64 // bumped by Load; stale saves must not adopt record identity
	saving    bool
	exporting bool
	observers []Observer
}

// New starts a session over a fresh default document rendered with the
// given template.
func New(st store.RecordStore, ex *export.Exporter, userID uuid.UUID, key render.Key) (*Controller, error) {
	c := &Controller{
		store:    st,
		exporter: ex,
		userID:   userID,
		template: key,
		doc:      resume.NewDocument(),
	}
	if err := c.rerenderLocked(); err != nil {
		return nil, err
	}
	return c, nil
}

// Subscribe registers an observer for subsequent events.
func (c *Controller) Subscribe(fn Observer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
}

func (c *Controller) notifyLocked(ev Event) {
	for _, fn := range c.observers {
		fn(ev)
	}
}

// Document returns a copy of the working document.
func (c *Controller) Document() resume.Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doc.Clone()
}

// Visual returns the current rendered visual document.
func (c *Controller) Visual() *render.Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visual
}

// Template returns the selected template key.
func (c *Controller) Template() render.Key {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.template
}

// RecordID returns the saved record's ID, or uuid.Nil before the first
// successful save.
func (c *Controller) RecordID() uuid.UUID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recordID
}

func (c *Controller) rerenderLocked() error {
	visual, err := render.Render(c.doc, c.template)
	if err != nil {
		return fmt.Errorf("failed to render document: %w", err)
	}
	c.visual = visual
	return nil
}

// Load replaces the session's document with a saved record. A record that
// is missing, unreadable, or owned by someone else falls back to a fresh
// default document; the editor opens either way.
func (c *Controller) Load(ctx context.Context, id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.epoch++
	c.notifyLocked(Event{State: StateLoading})

	rec, err := c.store.GetResume(ctx, c.userID, id)
	if err != nil {
		log.Printf("failed to load resume %s, starting fresh: %v", id, err)
		c.recordID = uuid.Nil
		c.title = ""
		c.doc = resume.NewDocument()
	} else {
		doc, derr := resume.Decode(rec.Data)
		if derr != nil {
			log.Printf("failed to decode resume %s, starting fresh: %v", id, derr)
			c.recordID = uuid.Nil
			c.title = ""
			c.doc = resume.NewDocument()
		} else {
			c.recordID = rec.ID
			c.title = rec.Title
			c.doc = doc
			c.template = render.ParseKey(rec.Template)
		}
	}

	if err := c.rerenderLocked(); err != nil {
		return err
	}
	c.notifyLocked(Event{State: StateEditing, Visual: c.visual})
	return nil
}

// Update applies a pure transformation to the working document and
// re-renders synchronously. The update sees a copy; the session state only
// changes when both the transformation and the re-render succeed.
func (c *Controller) Update(fn func(resume.Document) (resume.Document, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := fn(c.doc.Clone())
	if err != nil {
		return err
	}
	next.Normalize()

	prev := c.doc
	c.doc = next
	if err := c.rerenderLocked(); err != nil {
		c.doc = prev
		return err
	}
	c.notifyLocked(Event{State: StateEditing, Visual: c.visual})
	return nil
}

// ApplyPatch overlays a partial document update.
func (c *Controller) ApplyPatch(p resume.Patch) error {
	if p.IsZero() {
		return nil
	}
	return c.Update(func(doc resume.Document) (resume.Document, error) {
		return resume.Apply(doc, p), nil
	})
}

// SetTemplate switches the template and re-renders the same document.
func (c *Controller) SetTemplate(key render.Key) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.template
	c.template = key
	if err := c.rerenderLocked(); err != nil {
		c.template = prev
		return err
	}
	c.notifyLocked(Event{State: StateEditing, Visual: c.visual})
	return nil
}

// Save persists the working document, creating a record on first save and
// overwriting it afterwards. The document, template, and derived title are
// snapshotted before any IO, so edits made while the save is in flight
// land in the next save, not this one. A failed save changes nothing; the
// caller may simply retry.
func (c *Controller) Save(ctx context.Context, explicitTitle string) (*store.ResumeRecord, error) {
	c.mu.Lock()
	if c.saving {
		c.mu.Unlock()
		return nil, ErrSaveInProgress
	}
	c.saving = true
	epoch := c.epoch
	snapshot := c.doc.Clone()
	template := c.template
	recordID := c.recordID
	visual := c.visual
	if explicitTitle == "" {
		explicitTitle = c.title
	}
	c.notifyLocked(Event{State: StateSaving})
	c.mu.Unlock()

	rec, err := c.persist(ctx, snapshot, template, recordID, visual, explicitTitle)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.saving = false
	if err != nil {
		c.notifyLocked(Event{State: StateEditing, Visual: c.visual, Err: err})
		return nil, err
	}
	if c.epoch != epoch {
		// The session was reloaded while the save was in flight. The
		// record was written, but it no longer belongs to this session.
		log.Printf("discarding stale save result for record %s", rec.ID)
		c.notifyLocked(Event{State: StateEditing, Visual: c.visual})
		return rec, nil
	}
	c.recordID = rec.ID
	c.title = rec.Title
	c.notifyLocked(Event{State: StateEditing, Visual: c.visual})
	return rec, nil
}

func (c *Controller) persist(ctx context.Context, snapshot resume.Document, template render.Key, recordID uuid.UUID, visual *render.Document, explicitTitle string) (*store.ResumeRecord, error) {
	data, err := resume.Encode(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}

	rec := &store.ResumeRecord{
		ID:        recordID,
		UserID:    c.userID,
		Template:  string(template),
		Title:     snapshot.DeriveTitle(explicitTitle, string(template)),
		Data:      data,
		Thumbnail: c.thumbnail(ctx, visual),
	}

	if recordID == uuid.Nil {
		if err := c.store.CreateResume(ctx, rec); err != nil {
			return nil, fmt.Errorf("failed to save resume: %w", err)
		}
		return rec, nil
	}
	if err := c.store.UpdateResume(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to save resume: %w", err)
	}
	return rec, nil
}

// thumbnail renders the preview image for a save. Thumbnails never block a
// save: with no exporter configured or a failing capture the record is
// simply saved without one.
func (c *Controller) thumbnail(ctx context.Context, visual *render.Document) string {
	if c.exporter == nil || visual == nil {
		return ""
	}
	data := c.exporter.Thumbnail(ctx, visual)
	if data == nil {
		return ""
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(data)
}

// Export captures the current visual document as a page-fit A4 PDF and
// returns it with its download filename. Unlike thumbnails, any failure
// aborts the export.
func (c *Controller) Export(ctx context.Context) ([]byte, string, error) {
	c.mu.Lock()
	if c.exporting {
		c.mu.Unlock()
		return nil, "", ErrExportInProgress
	}
	if c.exporter == nil {
		c.mu.Unlock()
		return nil, "", errors.New("no exporter configured")
	}
	c.exporting = true
	visual := c.visual
	fullName := c.doc.Profile.FullName
	c.notifyLocked(Event{State: StateExporting})
	c.mu.Unlock()

	pdf, err := c.exporter.PDF(ctx, visual)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.exporting = false
	if err != nil {
		c.notifyLocked(Event{State: StateEditing, Visual: c.visual, Err: err})
		return nil, "", fmt.Errorf("failed to export pdf: %w", err)
	}
	c.notifyLocked(Event{State: StateEditing, Visual: c.visual})
	return pdf, export.Filename(fullName), nil
}
