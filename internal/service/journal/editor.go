package journal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"journal/internal/domain"
	models "journal/internal/domain/models/journal"
	"journal/internal/domain/services"
	journalSvc "journal/internal/domain/services/journal"
)

// Notice texts shown by the editor
const (
	editModeMessage      = "Edit mode activated! You can now make changes."
	undoMessage          = "Changes have been undone."
	noImageMessage       = "No image uploaded."
	saveSuccessMessage   = "Journal saved successfully!"
	saveFailedMessage    = "Failed to save journal entry. Please try again."
	loadFailedMessage    = "Failed to load journal entry. Please try again."
	deleteTitle          = "Delete Entry"
	deletePromptMessage  = "Are you sure you want to delete this journal entry?"
	deleteSuccessMessage = "Journal entry deleted successfully!"
	deleteFailedMessage  = "Failed to delete journal entry. Please try again."
)

// Mode is the editor's interaction mode
type Mode string

const (
	ModeViewing Mode = "viewing"
	ModeEditing Mode = "editing"
)

// StagedImage is a locally picked image that has not been uploaded yet
type StagedImage struct {
	URI      string `json:"uri"`
	FileName string `json:"fileName"`
}

// State is a read-only copy of the editor for rendering
type State struct {
	DateKey         models.DateKey `json:"dateKey"`
	Date            string         `json:"date"`
	Title           string         `json:"title"`
	Content         string         `json:"content"`
	ImageURL        string         `json:"imageUrl"`
	ImageFileName   string         `json:"imageFileName"`
	StagedImage     *StagedImage   `json:"stagedImage,omitempty"`
	Mode            Mode           `json:"mode"`
	Uploading       bool           `json:"uploading"`
	PreviousContent *string        `json:"previousContent,omitempty"`
	ImageViewerOpen bool           `json:"imageViewerOpen"`
	DeletePending   bool           `json:"deletePending"`
	Dirty           bool           `json:"dirty"`
	Exists          bool           `json:"exists"` // entry is persisted
}

// LoadOption configures Load
type LoadOption func(*loadOptions)

type loadOptions struct {
	discard bool
}

// DiscardChanges lets Load replace an editor holding unsaved edits
func DiscardChanges() LoadOption {
	return func(o *loadOptions) { o.discard = true }
}

// Editor is the lifecycle manager for the journal entry of one date.
// All methods are safe for concurrent use. Remote I/O runs without the lock
// held; the uploading flag keeps saves from overlapping.
type Editor struct {
	entries   journalSvc.EntryService
	images    journalSvc.ImageSource
	presenter services.Presenter
	navigator services.Navigator
	logger    *slog.Logger

	mu              sync.Mutex
	key             models.DateKey
	title           string
	content         string
	previousContent *string
	staged          *StagedImage
	remoteImageURL  string
	imageFileName   string
	mode            Mode
	uploading       bool
	imageViewerOpen bool
	deletePending   bool
	dirty           bool
	exists          bool
	rev             uint64 // bumped on every local edit
	saving          string // staged uri an in-flight save is reading
}

// NewEditor creates an editor. Call Load before anything else.
func NewEditor(
	entries journalSvc.EntryService,
	images journalSvc.ImageSource,
	presenter services.Presenter,
	navigator services.Navigator,
	logger *slog.Logger,
) *Editor {
	if presenter == nil {
		presenter = services.PresenterFunc(func(services.Notice) {})
	}
	if navigator == nil {
		navigator = nopNavigator{}
	}
	return &Editor{
		entries:   entries,
		images:    images,
		presenter: presenter,
		navigator: navigator,
		logger:    logger,
		mode:      ModeViewing,
	}
}

// Load fetches the entry for key and resets the editor to viewing it.
// An absent entry leaves every field empty. Loading a different key while
// there are unsaved edits fails with domain.ErrUnsavedChanges unless
// DiscardChanges is given.
func (e *Editor) Load(ctx context.Context, key models.DateKey, opts ...LoadOption) error {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}

	key, err := validateDateKey(key)
	if err != nil {
		return err
	}

	e.mu.Lock()
	switch {
	case e.uploading:
		e.mu.Unlock()
		return domain.ErrSaveInProgress
	case e.dirty && key != e.key && !o.discard:
		e.mu.Unlock()
		return domain.ErrUnsavedChanges
	}
	e.mu.Unlock()

	entry, err := e.entries.GetEntry(ctx, key)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		e.logger.Error("failed to load entry", "date_key", key, "error", err)
		e.notify(services.NoticeFailure, "", loadFailedMessage)
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.reset(key)
	if entry != nil {
		e.title = entry.Title
		e.content = entry.Content
		e.remoteImageURL = entry.ImageURL
		e.imageFileName = models.FileNameFromPath(entry.ImageURL)
		e.exists = true
	}

	e.logger.Debug("entry loaded", "date_key", key, "exists", e.exists)
	return nil
}

// reset clears all state for key. Caller holds mu.
func (e *Editor) reset(key models.DateKey) {
	e.key = key
	e.title = ""
	e.content = ""
	e.previousContent = nil
	e.setStaged(nil)
	e.remoteImageURL = ""
	e.imageFileName = ""
	e.mode = ModeViewing
	e.imageViewerOpen = false
	e.deletePending = false
	e.dirty = false
	e.exists = false
	e.rev++
}

// EnterEditMode switches to editing. Only the first call after a load
// surfaces a notice.
func (e *Editor) EnterEditMode() {
	e.mu.Lock()
	activated := e.mode != ModeEditing
	e.mode = ModeEditing
	e.mu.Unlock()

	if activated {
		e.notify(services.NoticeInfo, "", editModeMessage)
	}
}

// SetTitle replaces the pending title
func (e *Editor) SetTitle(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.title = text
	e.touch()
}

// UpdateContent snapshots the current content for Undo and replaces it
func (e *Editor) UpdateContent(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	prev := e.content
	e.previousContent = &prev
	e.content = text
	e.touch()
}

// Undo restores the content captured by the last UpdateContent. The snapshot
// is kept, so undoing twice gives the same result.
func (e *Editor) Undo() {
	e.mu.Lock()
	if e.previousContent != nil {
		e.content = *e.previousContent
	}
	e.mu.Unlock()

	e.notify(services.NoticeInfo, "", undoMessage)
}

// PickImage asks picker for an image and stages it. It reports whether an
// image was picked; a cancelled pick changes nothing.
func (e *Editor) PickImage(ctx context.Context, picker journalSvc.ImagePicker) (bool, error) {
	picked, err := picker.PickImage(ctx)
	if err != nil {
		return false, fmt.Errorf("pick image: %w", err)
	}
	if picked.Cancelled {
		return false, nil
	}

	fileName := models.FileNameFromPath(picked.URI)
	if _, err := models.ImagePath(fileName); err != nil {
		e.release(picked.URI)
		return false, &domain.ValidationError{Message: err.Error()}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.setStaged(&StagedImage{URI: picked.URI, FileName: fileName})
	e.imageFileName = fileName
	e.touch()
	return true, nil
}

// ClearImage drops the staged and the stored image; the next save persists
// the entry without one
func (e *Editor) ClearImage() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.setStaged(nil)
	e.remoteImageURL = ""
	e.imageFileName = ""
	e.imageViewerOpen = false
	e.touch()
}

// ViewImage opens the image viewer and returns what it shows: the staged
// image's uri or the stored image URL.
func (e *Editor) ViewImage() (string, error) {
	e.mu.Lock()
	uri := e.remoteImageURL
	if e.staged != nil {
		uri = e.staged.URI
	}
	if uri != "" {
		e.imageViewerOpen = true
	}
	e.mu.Unlock()

	if uri == "" {
		e.notify(services.NoticeInfo, "", noImageMessage)
		return "", domain.ErrNoImage
	}
	return uri, nil
}

// CloseImage closes the image viewer
func (e *Editor) CloseImage() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.imageViewerOpen = false
}

// Save persists the pending title and content. A staged image is uploaded
// first and its URL stored; otherwise the previously stored URL is kept.
// On success the editor signals GoBack.
func (e *Editor) Save(ctx context.Context) (*models.Entry, error) {
	e.mu.Lock()
	if e.uploading {
		e.mu.Unlock()
		return nil, domain.ErrSaveInProgress
	}
	if err := ValidateEntryFields(e.title, e.content); err != nil {
		e.mu.Unlock()
		e.notify(services.NoticeFailure, "", fillInMessage)
		return nil, err
	}

	e.uploading = true
	rev := e.rev
	req := &journalSvc.SaveEntryRequest{
		DateKey:  e.key,
		Title:    e.title,
		Content:  e.content,
		ImageURL: e.remoteImageURL,
	}
	var staged *StagedImage
	if e.staged != nil {
		s := *e.staged
		staged = &s
		e.saving = s.URI
	}
	e.mu.Unlock()

	if staged != nil {
		img, err := e.readStaged(ctx, staged)
		if err != nil {
			return nil, e.saveFailed(req.DateKey, err)
		}
		req.Image = img
	}

	entry, err := e.entries.SaveEntry(ctx, req)
	if err != nil {
		return nil, e.saveFailed(req.DateKey, err)
	}

	e.mu.Lock()
	e.uploading = false
	e.remoteImageURL = entry.ImageURL
	if staged != nil {
		if e.staged != nil && e.staged.URI == staged.URI {
			e.staged = nil
			e.imageFileName = staged.FileName
		}
		// Uploaded now, or replaced while the save was reading it
		e.release(staged.URI)
	}
	e.saving = ""
	e.exists = true
	// Edits made while the save was in flight are still unsaved
	e.dirty = e.rev != rev
	e.mu.Unlock()

	e.notify(services.NoticeSuccess, "", saveSuccessMessage)
	e.navigator.GoBack()
	return entry, nil
}

func (e *Editor) readStaged(ctx context.Context, staged *StagedImage) (*journalSvc.ImageUpload, error) {
	if e.images == nil {
		return nil, domain.Remote("read image", errors.New("no image source configured"))
	}
	data, contentType, err := e.images.ReadImage(ctx, staged.URI)
	if err != nil {
		return nil, domain.Remote("read image", err)
	}
	return &journalSvc.ImageUpload{
		FileName:    staged.FileName,
		ContentType: contentType,
		Data:        data,
	}, nil
}

func (e *Editor) saveFailed(key models.DateKey, err error) error {
	e.mu.Lock()
	e.uploading = false
	if e.saving != "" && (e.staged == nil || e.staged.URI != e.saving) {
		e.release(e.saving)
	}
	e.saving = ""
	e.mu.Unlock()

	e.logger.Error("failed to save entry", "date_key", key, "error", err)
	e.notify(services.NoticeFailure, "", saveFailedMessage)
	return err
}

// RequestDelete asks the user to confirm deletion. Nothing is deleted until
// ConfirmDelete.
func (e *Editor) RequestDelete() {
	e.mu.Lock()
	e.deletePending = true
	e.mu.Unlock()

	e.notify(services.NoticeConfirm, deleteTitle, deletePromptMessage)
}

// CancelDelete withdraws a pending delete request
func (e *Editor) CancelDelete() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.deletePending = false
}

// ConfirmDelete deletes the entry after RequestDelete. Without a pending
// request it fails with domain.ErrConfirmationRequired and deletes nothing.
func (e *Editor) ConfirmDelete(ctx context.Context) error {
	e.mu.Lock()
	if !e.deletePending {
		e.mu.Unlock()
		return domain.ErrConfirmationRequired
	}
	if e.uploading {
		e.mu.Unlock()
		return domain.ErrSaveInProgress
	}
	e.deletePending = false
	key := e.key
	e.mu.Unlock()

	if err := e.entries.DeleteEntry(ctx, key); err != nil {
		e.logger.Error("failed to delete entry", "date_key", key, "error", err)
		e.notify(services.NoticeFailure, "", deleteFailedMessage)
		return err
	}

	e.mu.Lock()
	if e.key == key {
		e.reset(key)
	}
	e.mu.Unlock()

	e.notify(services.NoticeSuccess, "", deleteSuccessMessage)
	e.navigator.GoBack()
	return nil
}

// Snapshot returns a copy of the current state
func (e *Editor) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := State{
		DateKey:         e.key,
		Date:            e.key.DisplayDate(),
		Title:           e.title,
		Content:         e.content,
		ImageURL:        e.remoteImageURL,
		ImageFileName:   e.imageFileName,
		Mode:            e.mode,
		Uploading:       e.uploading,
		ImageViewerOpen: e.imageViewerOpen,
		DeletePending:   e.deletePending,
		Dirty:           e.dirty,
		Exists:          e.exists,
	}
	if e.staged != nil {
		staged := *e.staged
		s.StagedImage = &staged
	}
	if e.previousContent != nil {
		prev := *e.previousContent
		s.PreviousContent = &prev
	}
	return s
}

// setStaged replaces the staged image and releases the one it replaces,
// unless an in-flight save is still reading it. Caller holds mu.
func (e *Editor) setStaged(img *StagedImage) {
	old := e.staged
	e.staged = img
	if old == nil || old.URI == e.saving || (img != nil && img.URI == old.URI) {
		return
	}
	e.release(old.URI)
}

func (e *Editor) release(uri string) {
	if r, ok := e.images.(journalSvc.ImageReleaser); ok && uri != "" {
		r.ReleaseImage(uri)
	}
}

// touch records a local edit. Caller holds mu.
func (e *Editor) touch() {
	e.dirty = true
	e.rev++
}

func (e *Editor) notify(kind services.NoticeKind, title, message string) {
	e.presenter.Notify(services.Notice{Kind: kind, Title: title, Message: message})
}

type nopNavigator struct{}

func (nopNavigator) GoBack()                    {}
func (nopNavigator) NavigateTo(services.Screen) {}
