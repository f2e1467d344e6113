package store

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fatflowers/motorvault/internal/models"
	"github.com/fatflowers/motorvault/internal/platform/storage"
	"github.com/fatflowers/motorvault/pkg/tool"
	"github.com/fatflowers/motorvault/pkg/types"
)

// Storage keys owned exclusively by this store.
const (
	KeyUser      = "user"
	KeyVehicles  = "vehicles"
	KeyDocuments = "documents"
	KeyReminders = "reminders"
	KeyThemeMode = "theme_mode"
)

var entityKeys = []string{KeyUser, KeyVehicles, KeyDocuments, KeyReminders}
var managedKeys = []string{KeyUser, KeyVehicles, KeyDocuments, KeyReminders, KeyThemeMode}

// AuditRecorder receives destructive self-healing events (purges, resets).
// Implementations must not block; recording is best-effort.
type AuditRecorder interface {
	Record(ctx context.Context, action models.StorageAuditAction, key string, reason string, detail map[string]any)
}

// Store is the local state store: in-memory collections kept in sync with the
// key-value storage through write-behind persistence. Mutations are
// synchronous against memory and never fail from the caller's point of view;
// storage errors are logged and swallowed. A mutex serializes writers since
// HTTP handlers call in concurrently.
type Store struct {
	kv    storage.KV
	log   *zap.SugaredLogger
	audit AuditRecorder

	mu        sync.RWMutex
	user      *models.User
	vehicles  []models.Vehicle
	documents []models.Document
	reminders []models.Reminder

	loading atomic.Bool
	wg      sync.WaitGroup
}

func New(kv storage.KV, log *zap.SugaredLogger, audit AuditRecorder) *Store {
	s := &Store{
		kv:        kv,
		log:       log,
		audit:     audit,
		vehicles:  []models.Vehicle{},
		documents: []models.Document{},
		reminders: []models.Reminder{},
	}
	s.loading.Store(true)
	return s
}

// IsLoading reports whether the initial load has finished. It flips to false
// exactly once and never back.
func (s *Store) IsLoading() bool {
	return s.loading.Load()
}

// Flush waits for all in-flight write-behind work. Tests and shutdown hooks
// use it; mutation callers never do.
func (s *Store) Flush() {
	s.wg.Wait()
}

// Load runs the startup sequence: a corruption scan over the managed keys,
// then the four-key parallel load. It always completes — an unrecoverable
// failure ends in a full wipe and empty defaults, never a partial state.
func (s *Store) Load(ctx context.Context) {
	defer s.loading.Store(false)
	if err := s.scanForCorruption(ctx); err != nil {
		s.log.Errorf("storage corruption scan failed: %v", err)
	}
	s.loadData(ctx)
}

// scanForCorruption pattern-checks every recognized key ahead of the normal
// load and removes the obviously bad ones. It also sweeps keys whose NAME
// looks like a toString artifact.
func (s *Store) scanForCorruption(ctx context.Context) error {
	allKeys, err := s.kv.AllKeys(ctx)
	if err != nil {
		return err
	}

	appKeys := lo.Filter(allKeys, func(k string, _ int) bool { return lo.Contains(managedKeys, k) })
	for _, key := range appKeys {
		value, found, err := s.kv.GetItem(ctx, key)
		if err != nil {
			s.log.Errorf("error checking key %q: %v", key, err)
			if rmErr := s.kv.RemoveItem(ctx, key); rmErr != nil {
				s.log.Errorf("failed to remove unreadable key %q: %v", key, rmErr)
			}
			continue
		}
		trimmed := strings.TrimSpace(value)
		if !found || trimmed == "" {
			continue
		}
		if reason, corrupted := DetectCorruption(trimmed); corrupted {
			s.log.Warnw("detected corruption during scan", "key", key, "reason", reason, "sample", sample(trimmed))
			s.purgeKey(ctx, key, reason, trimmed)
		}
	}

	// Key-name sweep: storage has been seen growing keys named after
	// stringified values.
	for _, key := range allKeys {
		if lo.Contains(managedKeys, key) {
			continue
		}
		if suspiciousKeyName(key) {
			s.log.Warnw("removing suspiciously named key", "key", key)
			s.purgeKey(ctx, key, ReasonBareLeadingO, key)
		}
	}
	return nil
}

// loadData reads all four entity keys in parallel and reconciles in-memory
// state. Raw values that existed but decoded to nothing are treated as
// truncated writes and removed.
func (s *Store) loadData(ctx context.Context) {
	type rawItem struct {
		value string
		found bool
	}
	raws := make(map[string]rawItem, len(entityKeys))
	var rawMu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, key := range entityKeys {
		g.Go(func() error {
			value, found, err := s.kv.GetItem(gctx, key)
			if err != nil {
				return err
			}
			rawMu.Lock()
			raws[key] = rawItem{value: value, found: found}
			rawMu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.log.Errorf("critical error loading data: %v", err)
		s.resetToDefaults(ctx)
		return
	}

	user := safeParse(s, ctx, KeyUser, raws[KeyUser].value, raws[KeyUser].found, (*models.User)(nil))
	vehicles := safeParse(s, ctx, KeyVehicles, raws[KeyVehicles].value, raws[KeyVehicles].found, []models.Vehicle{})
	documents := safeParse(s, ctx, KeyDocuments, raws[KeyDocuments].value, raws[KeyDocuments].found, []models.Document{})
	reminders := safeParse(s, ctx, KeyReminders, raws[KeyReminders].value, raws[KeyReminders].found, []models.Reminder{})

	// Raw content present but nothing decoded: the write was partial or
	// truncated, so the key cannot be trusted either.
	var suspects []string
	if r := raws[KeyUser]; r.found && user == nil && strings.TrimSpace(r.value) != "null" {
		suspects = append(suspects, KeyUser)
	}
	if r := raws[KeyVehicles]; r.found && len(vehicles) == 0 && strings.TrimSpace(r.value) != "[]" {
		suspects = append(suspects, KeyVehicles)
	}
	if r := raws[KeyDocuments]; r.found && len(documents) == 0 && strings.TrimSpace(r.value) != "[]" {
		suspects = append(suspects, KeyDocuments)
	}
	if r := raws[KeyReminders]; r.found && len(reminders) == 0 && strings.TrimSpace(r.value) != "[]" {
		suspects = append(suspects, KeyReminders)
	}
	if len(suspects) > 0 {
		s.log.Warnw("clearing suspect keys after load", "keys", suspects)
		if err := s.kv.MultiRemove(ctx, suspects); err != nil {
			s.log.Errorf("failed to clear suspect keys: %v", err)
		}
		for _, key := range suspects {
			s.recordAudit(ctx, models.StorageAuditActionSuspectRemoved, key, "decoded_empty", nil)
		}
	}

	s.mu.Lock()
	s.user = user
	s.vehicles = vehicles
	s.documents = documents
	s.reminders = reminders
	s.mu.Unlock()
	s.log.Infow("data loading completed",
		"vehicles", len(vehicles), "documents", len(documents), "reminders", len(reminders), "has_user", user != nil)
}

// resetToDefaults is the last-resort recovery path: wipe every entity key and
// surface empty state rather than a partially corrupted one.
func (s *Store) resetToDefaults(ctx context.Context) {
	fullResetsTotal.Inc()
	if err := s.kv.MultiRemove(ctx, entityKeys); err != nil {
		s.log.Errorf("error clearing data during reset: %v", err)
	}
	s.recordAudit(ctx, models.StorageAuditActionFullReset, "", "load_failure", nil)

	s.mu.Lock()
	s.user = nil
	s.vehicles = []models.Vehicle{}
	s.documents = []models.Document{}
	s.reminders = []models.Reminder{}
	s.mu.Unlock()
}

// safeParse guards a raw storage value: empty/placeholder values fall back
// silently, pattern or structural rejects purge the key, and only then is a
// full decode attempted. Decode failures purge as well. The fallback is
// returned on every rejection path.
func safeParse[T any](s *Store, ctx context.Context, key, raw string, found bool, fallback T) T {
	if !found {
		return fallback
	}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "undefined" || trimmed == "null" {
		return fallback
	}

	if reason, corrupted := DetectCorruption(trimmed); corrupted {
		s.log.Warnw("corruption pattern detected", "key", key, "reason", reason, "sample", sample(trimmed))
		s.purgeKey(ctx, key, reason, trimmed)
		return fallback
	}

	if !looksLikeJSON(trimmed) {
		s.log.Warnw("invalid JSON format detected", "key", key, "sample", sample(trimmed))
		s.purgeKey(ctx, key, ReasonNotJSON, trimmed)
		return fallback
	}

	var out T
	if err := json.Unmarshal([]byte(trimmed), &out); err != nil {
		s.log.Errorw("JSON parse error", "key", key, "err", err, "sample", sample(trimmed))
		s.purgeKey(ctx, key, ReasonParseError, trimmed)
		return fallback
	}
	return out
}

// purgeKey removes a rejected key, asynchronously and best-effort. A failed
// removal is logged, never escalated.
func (s *Store) purgeKey(ctx context.Context, key string, reason CorruptionReason, raw string) {
	corruptionPurgedTotal.WithLabelValues(key, string(reason)).Inc()
	s.recordAudit(ctx, models.StorageAuditActionCorruptionPurged, key, string(reason), map[string]any{"sample": sample(raw)})

	bg := context.WithoutCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.kv.RemoveItem(bg, key); err != nil {
			s.log.Errorf("failed to remove corrupted key %q: %v", key, err)
		}
	}()
}

func (s *Store) recordAudit(ctx context.Context, action models.StorageAuditAction, key, reason string, detail map[string]any) {
	if s.audit == nil {
		return
	}
	s.audit.Record(ctx, action, key, reason, detail)
}

// persist marshals a value and writes it behind the caller's back. The write
// is fire-and-forget; a failure leaves in-memory state authoritative.
func (s *Store) persist(ctx context.Context, key string, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		s.log.Errorf("failed to serialize %q: %v", key, err)
		persistFailuresTotal.WithLabelValues(key).Inc()
		return
	}
	bg := context.WithoutCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.kv.SetItem(bg, key, string(payload)); err != nil {
			persistFailuresTotal.WithLabelValues(key).Inc()
			s.log.Errorf("error saving %q: %v", key, err)
		}
	}()
}

func sample(raw string) string {
	if len(raw) > 100 {
		return raw[:100]
	}
	return raw
}

// --- snapshot accessors ---

func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Store) Vehicles() []models.Vehicle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Vehicle(nil), s.vehicles...)
}

func (s *Store) Documents() []models.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Document(nil), s.documents...)
}

func (s *Store) Reminders() []models.Reminder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Reminder(nil), s.reminders...)
}

// --- user ---

// SetUser replaces the singleton user. A nil user removes the stored key
// rather than writing a null value.
func (s *Store) SetUser(ctx context.Context, user *models.User) {
	s.mu.Lock()
	if user != nil {
		u := *user
		s.user = &u
	} else {
		s.user = nil
	}
	s.mu.Unlock()

	if user != nil {
		s.persist(ctx, KeyUser, user)
		return
	}
	bg := context.WithoutCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.kv.RemoveItem(bg, KeyUser); err != nil {
			s.log.Errorf("error removing user key: %v", err)
		}
	}()
}

// --- vehicles ---

func (s *Store) AddVehicle(ctx context.Context, vehicle models.Vehicle) models.Vehicle {
	vehicle.ID = tool.GenerateUUIDV7()
	vehicle.CreatedAt = time.Now()

	s.mu.Lock()
	s.vehicles = append(s.vehicles, vehicle)
	snapshot := append([]models.Vehicle(nil), s.vehicles...)
	s.mu.Unlock()

	s.persist(ctx, KeyVehicles, snapshot)
	return vehicle
}

// UpdateVehicle merges a patch into the vehicle with the given id. A missing
// id is a silent no-op, but the collection is re-persisted regardless.
func (s *Store) UpdateVehicle(ctx context.Context, id string, patch VehiclePatch) (models.Vehicle, bool) {
	var updated models.Vehicle
	var found bool

	s.mu.Lock()
	for i := range s.vehicles {
		if s.vehicles[i].ID == id {
			patch.apply(&s.vehicles[i])
			updated = s.vehicles[i]
			found = true
			break
		}
	}
	snapshot := append([]models.Vehicle(nil), s.vehicles...)
	s.mu.Unlock()

	s.persist(ctx, KeyVehicles, snapshot)
	return updated, found
}

// DeleteVehicle removes the vehicle and cascades: no document or reminder may
// outlive the vehicle it references. Idempotent.
func (s *Store) DeleteVehicle(ctx context.Context, id string) {
	s.mu.Lock()
	s.vehicles = lo.Filter(s.vehicles, func(v models.Vehicle, _ int) bool { return v.ID != id })
	s.documents = lo.Filter(s.documents, func(d models.Document, _ int) bool { return d.VehicleID != id })
	s.reminders = lo.Filter(s.reminders, func(r models.Reminder, _ int) bool { return r.VehicleID != id })
	vehicles := append([]models.Vehicle(nil), s.vehicles...)
	documents := append([]models.Document(nil), s.documents...)
	reminders := append([]models.Reminder(nil), s.reminders...)
	s.mu.Unlock()

	s.persist(ctx, KeyVehicles, vehicles)
	s.persist(ctx, KeyDocuments, documents)
	s.persist(ctx, KeyReminders, reminders)
}

// --- documents ---

// AddDocument appends a document. Status is set to "valid" unconditionally at
// creation, even when the supplied expiry date is already in the past; status
// derivation happens on read.
func (s *Store) AddDocument(ctx context.Context, document models.Document) models.Document {
	now := time.Now()
	document.ID = tool.GenerateUUIDV7()
	document.CreatedAt = now
	document.UpdatedAt = now
	document.Status = types.DocumentStatusValid

	s.mu.Lock()
	s.documents = append(s.documents, document)
	snapshot := append([]models.Document(nil), s.documents...)
	s.mu.Unlock()

	s.persist(ctx, KeyDocuments, snapshot)
	return document
}

// UpdateDocument merges a patch and refreshes UpdatedAt. History is never
// touched here.
func (s *Store) UpdateDocument(ctx context.Context, id string, patch DocumentPatch) (models.Document, bool) {
	var updated models.Document
	var found bool

	s.mu.Lock()
	for i := range s.documents {
		if s.documents[i].ID == id {
			patch.apply(&s.documents[i])
			s.documents[i].UpdatedAt = time.Now()
			updated = s.documents[i]
			found = true
			break
		}
	}
	snapshot := append([]models.Document(nil), s.documents...)
	s.mu.Unlock()

	s.persist(ctx, KeyDocuments, snapshot)
	return updated, found
}

func (s *Store) DeleteDocument(ctx context.Context, id string) {
	s.mu.Lock()
	s.documents = lo.Filter(s.documents, func(d models.Document, _ int) bool { return d.ID != id })
	snapshot := append([]models.Document(nil), s.documents...)
	s.mu.Unlock()

	s.persist(ctx, KeyDocuments, snapshot)
}

// RenewDocument snapshots the document's current {expiryDate, imageUri,
// updatedAt} into history, then overwrites the live record with the new
// expiry. An empty imageURI keeps the prior image.
func (s *Store) RenewDocument(ctx context.Context, id string, newExpiryDate time.Time, imageURI string) (models.Document, bool) {
	var renewed models.Document
	var found bool

	s.mu.Lock()
	for i := range s.documents {
		if s.documents[i].ID != id {
			continue
		}
		doc := &s.documents[i]

		entry := models.DocumentHistory{
			ID:         tool.GenerateUUIDV7() + "_history",
			ExpiryDate: doc.ExpiryDate,
			ImageURI:   doc.ImageURI,
			UpdatedAt:  doc.UpdatedAt,
		}
		history := make([]models.DocumentHistory, 0, len(doc.History)+1)
		history = append(history, doc.History...)
		history = append(history, entry)

		doc.History = history
		doc.ExpiryDate = newExpiryDate
		if imageURI != "" {
			doc.ImageURI = imageURI
		}
		doc.Status = types.DocumentStatusValid
		doc.UpdatedAt = time.Now()

		renewed = *doc
		found = true
		break
	}
	if !found {
		s.mu.Unlock()
		return models.Document{}, false
	}
	snapshot := append([]models.Document(nil), s.documents...)
	s.mu.Unlock()

	s.persist(ctx, KeyDocuments, snapshot)
	return renewed, true
}

// --- reminders ---

func (s *Store) AddReminder(ctx context.Context, reminder models.Reminder) models.Reminder {
	reminder.ID = tool.GenerateUUIDV7()
	reminder.CreatedAt = time.Now()
	reminder.IsCompleted = false

	s.mu.Lock()
	s.reminders = append(s.reminders, reminder)
	snapshot := append([]models.Reminder(nil), s.reminders...)
	s.mu.Unlock()

	s.persist(ctx, KeyReminders, snapshot)
	return reminder
}

// UpdateReminder merges a patch. Unlike documents there is no timestamp to
// refresh, and history stays untouched even for completed reminders.
func (s *Store) UpdateReminder(ctx context.Context, id string, patch ReminderPatch) (models.Reminder, bool) {
	var updated models.Reminder
	var found bool

	s.mu.Lock()
	for i := range s.reminders {
		if s.reminders[i].ID == id {
			patch.apply(&s.reminders[i])
			updated = s.reminders[i]
			found = true
			break
		}
	}
	snapshot := append([]models.Reminder(nil), s.reminders...)
	s.mu.Unlock()

	s.persist(ctx, KeyReminders, snapshot)
	return updated, found
}

func (s *Store) DeleteReminder(ctx context.Context, id string) {
	s.mu.Lock()
	s.reminders = lo.Filter(s.reminders, func(r models.Reminder, _ int) bool { return r.ID != id })
	snapshot := append([]models.Reminder(nil), s.reminders...)
	s.mu.Unlock()

	s.persist(ctx, KeyReminders, snapshot)
}

// CompleteReminder appends an audit snapshot of the reminder's current state
// to history and flips the completion flags. The live title/type/date/time
// are not reset.
func (s *Store) CompleteReminder(ctx context.Context, id string) (models.Reminder, bool) {
	var completed models.Reminder
	var found bool
	now := time.Now()

	s.mu.Lock()
	for i := range s.reminders {
		if s.reminders[i].ID != id {
			continue
		}
		rem := &s.reminders[i]

		entry := models.ReminderHistory{
			ID:          tool.GenerateUUIDV7() + "_history",
			Title:       rem.Title,
			Type:        rem.Type,
			Date:        rem.Date,
			Time:        rem.Time,
			Description: rem.Description,
			CompletedAt: now,
		}
		history := make([]models.ReminderHistory, 0, len(rem.History)+1)
		history = append(history, rem.History...)
		history = append(history, entry)

		rem.History = history
		rem.IsCompleted = true
		rem.CompletedAt = &now

		completed = *rem
		found = true
		break
	}
	if !found {
		s.mu.Unlock()
		return models.Reminder{}, false
	}
	snapshot := append([]models.Reminder(nil), s.reminders...)
	s.mu.Unlock()

	s.persist(ctx, KeyReminders, snapshot)
	return completed, true
}

// --- theme ---

// Theme reads the persisted theme mode, defaulting to system.
func (s *Store) Theme(ctx context.Context) types.ThemeMode {
	raw, found, err := s.kv.GetItem(ctx, KeyThemeMode)
	if err != nil {
		s.log.Errorf("error reading theme mode: %v", err)
		return types.ThemeModeSystem
	}
	mode := types.ThemeMode(strings.TrimSpace(raw))
	if !found || !mode.Valid() {
		return types.ThemeModeSystem
	}
	return mode
}

// SetTheme persists the theme mode as a plain string (not JSON).
func (s *Store) SetTheme(ctx context.Context, mode types.ThemeMode) error {
	if !mode.Valid() {
		return errInvalidTheme
	}
	return s.kv.SetItem(ctx, KeyThemeMode, string(mode))
}

// --- recovery actions ---

// ClearAllData wipes every managed key (theme included) and resets in-memory
// state. It backs the UI's "clear data and restart" recovery action.
func (s *Store) ClearAllData(ctx context.Context) {
	if err := s.kv.MultiRemove(ctx, managedKeys); err != nil {
		s.log.Errorf("error clearing app data: %v", err)
	}
	s.recordAudit(ctx, models.StorageAuditActionClearAll, "", "manual", nil)

	s.mu.Lock()
	s.user = nil
	s.vehicles = []models.Vehicle{}
	s.documents = []models.Document{}
	s.reminders = []models.Reminder{}
	s.mu.Unlock()
	s.log.Infow("all app data cleared")
}

// ClearCorruptedData re-checks every managed key (theme gets a domain check
// instead of JSON validation), removes the ones that fail, and then reruns
// the load sequence against whatever remains.
func (s *Store) ClearCorruptedData(ctx context.Context) {
	allKeys, err := s.kv.AllKeys(ctx)
	if err != nil {
		s.log.Errorf("error during corrupted data cleanup: %v", err)
		return
	}
	appKeys := lo.Filter(allKeys, func(k string, _ int) bool { return lo.Contains(managedKeys, k) })

	var keysToRemove []string
	for _, key := range appKeys {
		value, found, err := s.kv.GetItem(ctx, key)
		if err != nil {
			s.log.Errorf("error checking key %q: %v", key, err)
			keysToRemove = append(keysToRemove, key)
			continue
		}
		trimmed := strings.TrimSpace(value)
		if !found || trimmed == "" || trimmed == "null" || trimmed == "undefined" {
			continue
		}

		if key == KeyThemeMode {
			if !types.ThemeMode(trimmed).Valid() {
				s.log.Warnw("invalid theme value detected", "value", sample(trimmed))
				keysToRemove = append(keysToRemove, key)
			}
			continue
		}

		if reason, corrupted := DetectCorruption(trimmed); corrupted {
			s.log.Warnw("corruption pattern detected during cleanup", "key", key, "reason", reason)
			keysToRemove = append(keysToRemove, key)
			continue
		}
		if !json.Valid([]byte(trimmed)) {
			s.log.Warnw("invalid JSON detected during cleanup", "key", key)
			keysToRemove = append(keysToRemove, key)
		}
	}

	if len(keysToRemove) > 0 {
		s.log.Infow("removing corrupted keys", "keys", keysToRemove)
		if err := s.kv.MultiRemove(ctx, keysToRemove); err != nil {
			s.log.Errorf("failed to remove corrupted keys: %v", err)
		}
		for _, key := range keysToRemove {
			corruptionPurgedTotal.WithLabelValues(key, "cleanup").Inc()
			s.recordAudit(ctx, models.StorageAuditActionCorruptionPurged, key, "cleanup", nil)
		}
	}

	s.loadData(ctx)
}

type storeError string

func (e storeError) Error() string { return string(e) }

const errInvalidTheme = storeError("store: invalid theme mode")
