// Package photos manages the photos attached to a single damage marker while it is being edited: at most
// three per marker, each one compressed and then uploaded to photo storage before it is kept.
package photos

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gobuffalo/events"

	"github.com/silinternational/intake-api/api"
	"github.com/silinternational/intake-api/domain"
	"github.com/silinternational/intake-api/log"
)

// File is a photo chosen by the user, before compression and upload
type File struct {
	Name        string
	ContentType string
	Content     []byte
}

// Store is the photo storage collaborator
type Store interface {
	// Upload stores the file under the group key and returns its public URL and storage path
	Upload(ctx context.Context, f File, groupKey string) (api.PhotoItem, error)

	// Delete removes a previously uploaded photo by storage path
	Delete(ctx context.Context, path string) error
}

// Compressor shrinks a photo before upload
type Compressor interface {
	Compress(ctx context.Context, f File) (File, error)
}

// AddResult reports what happened to a batch of files
type AddResult struct {
	Added   []api.PhotoItem
	Notices []api.Notice
}

// Manager holds the photo list for one editor session. Its list and batch count are guarded by a mutex
// so Uploading can be polled while AddFiles is blocked on the store.
type Manager struct {
	store      Store
	compressor Compressor
	groupKey   string

	mutex   sync.Mutex
	items   []api.PhotoItem
	batches int
}

// NewManager creates a Manager seeded with the photo URLs of an existing marker. Seeded photos have no
// known storage path. A nil compressor uploads files as they are.
func NewManager(store Store, compressor Compressor, groupKey string, seed []string) *Manager {
	m := &Manager{
		store:      store,
		compressor: compressor,
		groupKey:   groupKey,
		items:      make([]api.PhotoItem, 0, domain.MaxPhotosPerMarker),
	}
	for _, url := range seed {
		if len(m.items) == domain.MaxPhotosPerMarker {
			break
		}
		m.items = append(m.items, api.PhotoItem{URL: url})
	}
	return m
}

// AddFiles compresses and uploads files one at a time, in the order given, keeping each one that
// succeeds. Files beyond the remaining capacity are dropped with a capacity notice. A failure on one file
// produces a notice for that file and does not stop the rest of the batch.
func (m *Manager) AddFiles(ctx context.Context, files []File) AddResult {
	result := AddResult{Added: []api.PhotoItem{}, Notices: []api.Notice{}}

	remaining := m.start()
	defer m.finish()

	if len(files) > remaining {
		files = files[:remaining]
		result.Notices = append(result.Notices, capacityNotice(""))
	}

	for _, f := range files {
		item, err := m.process(ctx, f)
		if err != nil {
			log.WithFields(map[string]any{"file": f.Name, "group_key": m.groupKey}).
				Warnf("photo not added: %s", err)
			result.Notices = append(result.Notices, api.NewNotice(err, f.Name))
			continue
		}

		if !m.appendItem(item) {
			// another batch filled the list while this file was uploading
			m.deleteStored(ctx, item.Path)
			result.Notices = append(result.Notices, capacityNotice(f.Name))
			continue
		}
		result.Added = append(result.Added, item)

		emitEvent(events.Event{
			Kind:    domain.EventPhotoUploaded,
			Message: "photo uploaded",
			Payload: events.Payload{
				domain.EventPayloadGroupKey: m.groupKey,
				domain.EventPayloadURL:      item.URL,
				domain.EventPayloadPath:     item.Path,
			},
		})
	}

	return result
}

func (m *Manager) process(ctx context.Context, f File) (api.PhotoItem, error) {
	if m.compressor != nil {
		compressed, err := m.compressor.Compress(ctx, f)
		if err != nil {
			return api.PhotoItem{}, keyedError(err, api.ErrorPhotoCompression, api.CategoryUser)
		}
		f = compressed
	}

	item, err := m.store.Upload(ctx, f, m.groupKey)
	if err != nil {
		return api.PhotoItem{}, keyedError(err, api.ErrorPhotoUpload, api.CategoryStorage)
	}
	return item, nil
}

// appendItem adds an uploaded photo unless the list is already full
func (m *Manager) appendItem(item api.PhotoItem) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if len(m.items) >= domain.MaxPhotosPerMarker {
		return false
	}
	m.items = append(m.items, item)
	return true
}

func capacityNotice(file string) api.Notice {
	err := api.NewAppError(
		fmt.Errorf("photo limit of %d reached", domain.MaxPhotosPerMarker),
		api.ErrorPhotoCapacity,
		api.CategoryUser,
	)
	return api.NewNotice(err, file)
}

// start marks a batch as running and returns the capacity left at that moment
func (m *Manager) start() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.batches++
	return domain.MaxPhotosPerMarker - len(m.items)
}

func (m *Manager) finish() {
	m.mutex.Lock()
	m.batches--
	m.mutex.Unlock()
}

// Remove drops the photo at index. The stored object is deleted on a best-effort basis: a failed delete is
// logged and the photo is removed from the list anyway. An out-of-range index does nothing.
func (m *Manager) Remove(ctx context.Context, index int) bool {
	m.mutex.Lock()
	if index < 0 || index >= len(m.items) {
		m.mutex.Unlock()
		return false
	}
	item := m.items[index]
	m.items = append(m.items[:index:index], m.items[index+1:]...)
	m.mutex.Unlock()

	if item.Path != "" {
		m.deleteStored(ctx, item.Path)
	}
	return true
}

// deleteStored removes an object from the store. A failure is logged and emitted, never returned.
func (m *Manager) deleteStored(ctx context.Context, path string) {
	if err := m.store.Delete(ctx, path); err != nil {
		log.Warnf("failed to delete photo %s: %s", path, err)
		emitEvent(events.Event{
			Kind:    domain.EventPhotoDeleteFailed,
			Message: "photo delete failed",
			Payload: events.Payload{
				domain.EventPayloadPath:  path,
				domain.EventPayloadError: err.Error(),
			},
		})
	}
}

// Items returns a copy of the current photo list
func (m *Manager) Items() []api.PhotoItem {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return append([]api.PhotoItem{}, m.items...)
}

// Uploaded returns the photos this manager uploaded itself and still holds
func (m *Manager) Uploaded() []api.PhotoItem {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	uploaded := []api.PhotoItem{}
	for _, item := range m.items {
		if item.Path != "" {
			uploaded = append(uploaded, item)
		}
	}
	return uploaded
}

// URLs returns the public URLs of the current photos, in order
func (m *Manager) URLs() []string {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	urls := make([]string, len(m.items))
	for i, item := range m.items {
		urls[i] = item.URL
	}
	return urls
}

func (m *Manager) Len() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.items)
}

// Remaining is how many more photos can be added
func (m *Manager) Remaining() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return domain.MaxPhotosPerMarker - len(m.items)
}

// Uploading is true while any AddFiles batch is running
func (m *Manager) Uploading() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.batches > 0
}

// keyedError keeps an AppError as it is and wraps anything else with the given key
func keyedError(err error, key api.ErrorKey, category api.ErrorCategory) error {
	var appErr *api.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return api.NewAppError(err, key, category)
}

func emitEvent(e events.Event) {
	if err := events.Emit(e); err != nil {
		log.Errorf("error emitting event %s ... %v", e.Kind, err)
	}
}
