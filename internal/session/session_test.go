package session

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-studio/internal/export"
	"github.com/jonathan/resume-studio/internal/render"
	"github.com/jonathan/resume-studio/internal/resume"
	"github.com/jonathan/resume-studio/internal/store"
)

// flakyStore fails a configurable number of resume writes before
// delegating to the in-memory store.
type flakyStore struct {
	*store.Memory
	failures int
	mu       sync.Mutex
}

func (f *flakyStore) CreateResume(ctx context.Context, rec *store.ResumeRecord) error {
	f.mu.Lock()
	if f.failures > 0 {
		f.failures--
		f.mu.Unlock()
		return errors.New("connection reset")
	}
	f.mu.Unlock()
	return f.Memory.CreateResume(ctx, rec)
}

func newSession(t *testing.T, st store.RecordStore) *Controller {
	t.Helper()
	c, err := New(st, nil, uuid.New(), render.KeyModern)
	require.NoError(t, err)
	return c
}

func TestNewSessionStartsWithPlaceholder(t *testing.T) {
	c := newSession(t, store.NewMemory())
	v := c.Visual()
	require.NotNil(t, v)
	assert.True(t, v.Placeholder)
	assert.Equal(t, render.KeyModern, v.Template)
	assert.Equal(t, uuid.Nil, c.RecordID())
}

func TestApplyPatchRerendersSynchronously(t *testing.T) {
	c := newSession(t, store.NewMemory())

	err := c.ApplyPatch(resume.Patch{FullName: resume.StringPtr("Jane Doe")})
	require.NoError(t, err)

	v := c.Visual()
	assert.False(t, v.Placeholder)
	assert.Contains(t, v.HTML, "Jane Doe")
	assert.Equal(t, "Jane Doe", c.Document().Profile.FullName)
}

func TestUpdateRunsDocumentOperations(t *testing.T) {
	c := newSession(t, store.NewMemory())

	err := c.Update(func(doc resume.Document) (resume.Document, error) {
		doc.Skills = resume.AddSkill(doc.Skills, "Go")
		order, err := resume.MoveSection(doc.SectionOrder, resume.SectionSkills, 4, 0)
		if err != nil {
			return doc, err
		}
		doc.SectionOrder = order
		return doc, nil
	})
	require.NoError(t, err)

	doc := c.Document()
	assert.Equal(t, []string{"Go"}, doc.Skills)
	assert.Equal(t, resume.SectionSkills, doc.SectionOrder[0])
}

func TestUpdateErrorLeavesDocumentUnchanged(t *testing.T) {
	c := newSession(t, store.NewMemory())
	require.NoError(t, c.ApplyPatch(resume.Patch{FullName: resume.StringPtr("Jane Doe")}))

	err := c.Update(func(doc resume.Document) (resume.Document, error) {
		doc.Profile.FullName = "clobbered"
		return doc, errors.New("validation failed")
	})
	require.Error(t, err)
	assert.Equal(t, "Jane Doe", c.Document().Profile.FullName)
}

func TestSetTemplateKeepsDocument(t *testing.T) {
	c := newSession(t, store.NewMemory())
	require.NoError(t, c.ApplyPatch(resume.Patch{FullName: resume.StringPtr("Jane Doe")}))

	require.NoError(t, c.SetTemplate(render.KeyCreative))
	v := c.Visual()
	assert.Equal(t, render.KeyCreative, v.Template)
	assert.Contains(t, v.HTML, "Jane Doe")
}

func TestSaveDerivesTitleFromProfile(t *testing.T) {
	mem := store.NewMemory()
	c := newSession(t, mem)
	require.NoError(t, c.ApplyPatch(resume.Patch{
		FullName: resume.StringPtr("Jane Doe"),
		JobTitle: resume.StringPtr("Engineer"),
	}))

	rec, err := c.Save(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe — Engineer", rec.Title)
	assert.Equal(t, rec.ID, c.RecordID())
}

func TestSaveEmptyDocumentGetsUntitled(t *testing.T) {
	c := newSession(t, store.NewMemory())
	rec, err := c.Save(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "Untitled Resume", rec.Title)
}

func TestSaveExplicitTitleWins(t *testing.T) {
	c := newSession(t, store.NewMemory())
	rec, err := c.Save(context.Background(), "Dream Job Draft")
	require.NoError(t, err)
	assert.Equal(t, "Dream Job Draft", rec.Title)

	// The title sticks on subsequent saves with no explicit title.
	rec, err = c.Save(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "Dream Job Draft", rec.Title)
}

func TestSecondSaveUpdatesSameRecord(t *testing.T) {
	mem := store.NewMemory()
	c := newSession(t, mem)

	first, err := c.Save(context.Background(), "")
	require.NoError(t, err)
	require.NoError(t, c.ApplyPatch(resume.Patch{FullName: resume.StringPtr("Jane Doe")}))
	second, err := c.Save(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	recs, err := mem.ListResumes(context.Background(), c.userID)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestFailedSaveRetriesCleanly(t *testing.T) {
	flaky := &flakyStore{Memory: store.NewMemory(), failures: 1}
	c := newSession(t, flaky)
	require.NoError(t, c.ApplyPatch(resume.Patch{FullName: resume.StringPtr("Jane Doe")}))

	_, err := c.Save(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, uuid.Nil, c.RecordID())
	assert.Equal(t, "Jane Doe", c.Document().Profile.FullName)

	rec, err := c.Save(context.Background(), "")
	require.NoError(t, err)

	recs, err := flaky.ListResumes(context.Background(), c.userID)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, rec.ID, recs[0].ID)
}

func TestSaveIsNotReentrant(t *testing.T) {
	c := newSession(t, store.NewMemory())
	c.saving = true
	_, err := c.Save(context.Background(), "")
	assert.ErrorIs(t, err, ErrSaveInProgress)
}

func TestLoadRestoresSavedDocument(t *testing.T) {
	mem := store.NewMemory()
	c := newSession(t, mem)
	require.NoError(t, c.SetTemplate(render.KeyClassic))
	require.NoError(t, c.ApplyPatch(resume.Patch{FullName: resume.StringPtr("Jane Doe")}))
	rec, err := c.Save(context.Background(), "")
	require.NoError(t, err)

	fresh, err := New(mem, nil, c.userID, render.KeyModern)
	require.NoError(t, err)
	require.NoError(t, fresh.Load(context.Background(), rec.ID))

	assert.Equal(t, rec.ID, fresh.RecordID())
	assert.Equal(t, "Jane Doe", fresh.Document().Profile.FullName)
	assert.Equal(t, render.KeyClassic, fresh.Template())
}

func TestLoadMissingRecordFallsBackToDefault(t *testing.T) {
	c := newSession(t, store.NewMemory())
	require.NoError(t, c.ApplyPatch(resume.Patch{FullName: resume.StringPtr("Jane Doe")}))

	require.NoError(t, c.Load(context.Background(), uuid.New()))

	assert.Equal(t, uuid.Nil, c.RecordID())
	assert.Equal(t, "", c.Document().Profile.FullName)
	assert.True(t, c.Visual().Placeholder)
}

func TestObserversSeeSaveTransitions(t *testing.T) {
	c := newSession(t, store.NewMemory())
	var states []State
	c.Subscribe(func(ev Event) { states = append(states, ev.State) })

	_, err := c.Save(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []State{StateSaving, StateEditing}, states)
}

func TestExportIsNotReentrant(t *testing.T) {
	c := newSession(t, store.NewMemory())
	c.exporter = export.NewExporter(nil)
	c.exporting = true
	_, _, err := c.Export(context.Background())
	assert.ErrorIs(t, err, ErrExportInProgress)
}

func TestExportWithoutExporterFails(t *testing.T) {
	c := newSession(t, store.NewMemory())
	_, _, err := c.Export(context.Background())
	assert.Error(t, err)
}

// pngRasterizer returns a tiny real PNG regardless of input.
type pngRasterizer struct{}

func (pngRasterizer) Capture(_ context.Context, _ string, width, height int, opts export.CaptureOptions) (*export.Bitmap, error) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return &export.Bitmap{
		Data:   buf.Bytes(),
		Format: "png",
		Width:  int(float64(width) * opts.Scale),
		Height: int(float64(height) * opts.Scale),
	}, nil
}

func TestExportProducesNamedPDF(t *testing.T) {
	c := newSession(t, store.NewMemory())
	c.exporter = export.NewExporter(pngRasterizer{})
	require.NoError(t, c.ApplyPatch(resume.Patch{FullName: resume.StringPtr("Jane Doe")}))

	pdf, filename, err := c.Export(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe.pdf", filename)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

// reloadingStore reloads the controller from inside a resume write,
// simulating the user opening another record while a save is in flight.
type reloadingStore struct {
	*store.Memory
	controller *Controller
	reloaded   bool
}

func (r *reloadingStore) CreateResume(ctx context.Context, rec *store.ResumeRecord) error {
	if !r.reloaded {
		r.reloaded = true
		if err := r.controller.Load(ctx, uuid.New()); err != nil {
			return err
		}
	}
	return r.Memory.CreateResume(ctx, rec)
}

func TestSaveCompletingAfterReloadDoesNotAdoptRecord(t *testing.T) {
	rs := &reloadingStore{Memory: store.NewMemory()}
	c := newSession(t, rs)
	rs.controller = c
	require.NoError(t, c.ApplyPatch(resume.Patch{FullName: resume.StringPtr("Jane Doe")}))

	rec, err := c.Save(context.Background(), "")
	require.NoError(t, err)
	require.NotNil(t, rec)

	// The write happened, but the session moved on and keeps its
	// fresh identity.
	assert.Equal(t, uuid.Nil, c.RecordID())
	assert.Empty(t, c.Document().Profile.FullName)
}

func TestSaveAttachesThumbnailWhenExporterPresent(t *testing.T) {
	mem := store.NewMemory()
	c := newSession(t, mem)
	c.exporter = export.NewExporter(pngRasterizer{})

	rec, err := c.Save(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rec.Thumbnail, "data:image/jpeg;base64,"))
}
