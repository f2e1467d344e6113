package store

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/fatflowers/motorvault/internal/models"
	"github.com/fatflowers/motorvault/internal/platform/storage"
	"github.com/fatflowers/motorvault/pkg/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// auditStub records audit calls synchronously for assertions.
type auditStub struct {
	mu      sync.Mutex
	actions []models.StorageAuditAction
	keys    []string
}

func (a *auditStub) Record(_ context.Context, action models.StorageAuditAction, key string, _ string, _ map[string]any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.actions = append(a.actions, action)
	a.keys = append(a.keys, key)
}

func (a *auditStub) has(action models.StorageAuditAction, key string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := range a.actions {
		if a.actions[i] == action && a.keys[i] == key {
			return true
		}
	}
	return false
}

func newTestStore(t *testing.T) (*Store, *storage.Memory, *auditStub) {
	t.Helper()
	kv := storage.NewMemory()
	audit := &auditStub{}
	s := New(kv, zap.NewNop().Sugar(), audit)
	return s, kv, audit
}

func seed(t *testing.T, kv *storage.Memory, key, value string) {
	t.Helper()
	require.NoError(t, kv.SetItem(context.Background(), key, value))
}

func TestLoad_EmptyStorageYieldsDefaults(t *testing.T) {
	s, _, _ := newTestStore(t)
	require.True(t, s.IsLoading())

	s.Load(context.Background())
	s.Flush()

	assert.False(t, s.IsLoading())
	assert.Nil(t, s.User())
	assert.Empty(t, s.Vehicles())
	assert.Empty(t, s.Documents())
	assert.Empty(t, s.Reminders())
}

func TestLoad_CorruptedVehiclesFallsBackAndPurges(t *testing.T) {
	ctx := context.Background()
	s, kv, audit := newTestStore(t)
	seed(t, kv, KeyVehicles, "o")
	seed(t, kv, KeyDocuments, `[{"id":"d1","vehicleId":"v1","type":"insurance","expiryDate":"2026-12-01T00:00:00Z","status":"valid","createdAt":"2026-01-01T00:00:00Z","updatedAt":"2026-01-01T00:00:00Z"}]`)

	s.Load(ctx)
	s.Flush()

	// Corrupted key falls back to empty and gets removed; the healthy key
	// loads untouched.
	assert.Empty(t, s.Vehicles())
	require.Len(t, s.Documents(), 1)
	assert.Equal(t, "d1", s.Documents()[0].ID)

	_, found, err := kv.GetItem(ctx, KeyVehicles)
	require.NoError(t, err)
	assert.False(t, found)
	assert.True(t, audit.has(models.StorageAuditActionCorruptionPurged, KeyVehicles))
}

func TestLoad_PlaceholderValuesFallBackSilently(t *testing.T) {
	ctx := context.Background()
	s, kv, audit := newTestStore(t)
	seed(t, kv, KeyUser, "null")

	s.Load(ctx)
	s.Flush()

	assert.Nil(t, s.User())
	// "null" is a placeholder, not corruption: no purge, no audit entry.
	_, found, err := kv.GetItem(ctx, KeyUser)
	require.NoError(t, err)
	assert.True(t, found)
	assert.False(t, audit.has(models.StorageAuditActionCorruptionPurged, KeyUser))
}

func TestLoad_SuspectEmptyDecodeRemovesKey(t *testing.T) {
	ctx := context.Background()
	s, kv, audit := newTestStore(t)
	// Decodes to an empty slice but the raw text is not the canonical "[]",
	// so it is treated as a truncated write.
	seed(t, kv, KeyReminders, "[ ]")

	s.Load(ctx)
	s.Flush()

	assert.Empty(t, s.Reminders())
	_, found, err := kv.GetItem(ctx, KeyReminders)
	require.NoError(t, err)
	assert.False(t, found)
	assert.True(t, audit.has(models.StorageAuditActionSuspectRemoved, KeyReminders))
}

func TestLoad_SweepsSuspiciouslyNamedKeys(t *testing.T) {
	ctx := context.Background()
	s, kv, _ := newTestStore(t)
	seed(t, kv, "object Object", "junk")
	seed(t, kv, KeyVehicles, "[]")

	s.Load(ctx)
	s.Flush()

	_, found, err := kv.GetItem(ctx, "object Object")
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = kv.GetItem(ctx, KeyVehicles)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestLoad_CriticalErrorWipesAndResets(t *testing.T) {
	ctx := context.Background()
	s, kv, audit := newTestStore(t)
	seed(t, kv, KeyVehicles, `[{"id":"v1","type":"car","name":"Daily","registrationNumber":"ABC-123","make":"","model":"","year":"","createdAt":"2026-01-01T00:00:00Z"}]`)
	seed(t, kv, KeyUser, `{"id":"u1","name":"Ada","email":"ada@example.com","phone":"","subscriptionStatus":"trial","subscriptionExpiry":"2026-12-01T00:00:00Z"}`)
	kv.FailGet = true

	s.Load(ctx)
	s.Flush()

	// An unrecoverable read failure ends in a full wipe: empty defaults in
	// memory, no entity keys left behind, and loading still resolves.
	assert.False(t, s.IsLoading())
	assert.Nil(t, s.User())
	assert.Empty(t, s.Vehicles())
	assert.Empty(t, s.Documents())
	assert.Empty(t, s.Reminders())
	assert.True(t, audit.has(models.StorageAuditActionFullReset, ""))

	kv.FailGet = false
	keys, err := kv.AllKeys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestRoundTrip_MutationsSurviveRestart(t *testing.T) {
	ctx := context.Background()
	s, kv, _ := newTestStore(t)
	s.Load(ctx)

	v := s.AddVehicle(ctx, models.Vehicle{Type: types.VehicleTypeCar, Name: "Daily", RegistrationNumber: "ABC-123"})
	d := s.AddDocument(ctx, models.Document{VehicleID: v.ID, Type: types.DocumentTypeInsurance, ExpiryDate: time.Now().Add(90 * 24 * time.Hour)})
	r := s.AddReminder(ctx, models.Reminder{VehicleID: v.ID, Title: "Oil change", Type: types.ReminderTypeMaintenance, Date: time.Now().Add(7 * 24 * time.Hour), Time: "09:00"})
	s.SetUser(ctx, &models.User{ID: "u1", Name: "Ada", Email: "ada@example.com", SubscriptionStatus: types.SubscriptionStatusTrial, SubscriptionExpiry: time.Now().Add(7 * 24 * time.Hour)})
	s.Flush()

	// A fresh store over the same backing KV sees identical state.
	s2 := New(kv, zap.NewNop().Sugar(), nil)
	s2.Load(ctx)
	s2.Flush()

	require.NotNil(t, s2.User())
	assert.Equal(t, "Ada", s2.User().Name)
	require.Len(t, s2.Vehicles(), 1)
	assert.Equal(t, v.ID, s2.Vehicles()[0].ID)
	require.Len(t, s2.Documents(), 1)
	assert.Equal(t, d.ID, s2.Documents()[0].ID)
	require.Len(t, s2.Reminders(), 1)
	assert.Equal(t, r.ID, s2.Reminders()[0].ID)
}

func TestRoundTrip_HistoryArraysSurviveRestart(t *testing.T) {
	ctx := context.Background()
	s, kv, _ := newTestStore(t)
	s.Load(ctx)

	oldExpiry := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	doc := s.AddDocument(ctx, models.Document{VehicleID: "v1", Type: types.DocumentTypeInsurance, ExpiryDate: oldExpiry, ImageURI: "file://old.jpg"})
	renewed, found := s.RenewDocument(ctx, doc.ID, time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC), "file://new.jpg")
	require.True(t, found)

	rem := s.AddReminder(ctx, models.Reminder{
		VehicleID: "v1",
		Title:     "Renew insurance",
		Type:      types.ReminderTypeInsurance,
		Date:      time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Time:      "10:00",
	})
	completed, found := s.CompleteReminder(ctx, rem.ID)
	require.True(t, found)
	s.Flush()

	s2 := New(kv, zap.NewNop().Sugar(), nil)
	s2.Load(ctx)
	s2.Flush()

	require.Len(t, s2.Documents(), 1)
	require.Len(t, s2.Documents()[0].History, 1)
	docEntry := s2.Documents()[0].History[0]
	assert.Equal(t, renewed.History[0].ID, docEntry.ID)
	assert.Equal(t, oldExpiry, docEntry.ExpiryDate)
	assert.Equal(t, "file://old.jpg", docEntry.ImageURI)
	assert.True(t, renewed.History[0].UpdatedAt.Equal(docEntry.UpdatedAt))

	require.Len(t, s2.Reminders(), 1)
	reloaded := s2.Reminders()[0]
	assert.True(t, reloaded.IsCompleted)
	require.NotNil(t, reloaded.CompletedAt)
	require.Len(t, reloaded.History, 1)
	remEntry := reloaded.History[0]
	assert.Equal(t, completed.History[0].ID, remEntry.ID)
	assert.Equal(t, "Renew insurance", remEntry.Title)
	assert.Equal(t, types.ReminderTypeInsurance, remEntry.Type)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), remEntry.Date)
	assert.Equal(t, "10:00", remEntry.Time)
	assert.True(t, completed.History[0].CompletedAt.Equal(remEntry.CompletedAt))
	assert.True(t, completed.History[0].CompletedAt.Equal(*reloaded.CompletedAt))
}

func TestAddDocument_StatusForcedValidEvenWhenExpired(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestStore(t)
	s.Load(ctx)

	d := s.AddDocument(ctx, models.Document{
		VehicleID:  "v1",
		Type:       types.DocumentTypeRoadworthiness,
		ExpiryDate: time.Now().Add(-365 * 24 * time.Hour),
		Status:     types.DocumentStatusExpired,
	})
	s.Flush()

	assert.Equal(t, types.DocumentStatusValid, d.Status)
	assert.NotEmpty(t, d.ID)
	assert.False(t, d.CreatedAt.IsZero())
	assert.Equal(t, d.CreatedAt, d.UpdatedAt)
}

func TestUpdateVehicle_MissingIDIsNoOpButPersists(t *testing.T) {
	ctx := context.Background()
	s, kv, _ := newTestStore(t)
	s.Load(ctx)
	s.AddVehicle(ctx, models.Vehicle{Name: "Keep"})
	s.Flush()

	name := "Changed"
	_, found := s.UpdateVehicle(ctx, "no-such-id", VehiclePatch{Name: &name})
	s.Flush()

	assert.False(t, found)
	require.Len(t, s.Vehicles(), 1)
	assert.Equal(t, "Keep", s.Vehicles()[0].Name)

	raw, ok, err := kv.GetItem(ctx, KeyVehicles)
	require.NoError(t, err)
	require.True(t, ok)
	var persisted []models.Vehicle
	require.NoError(t, json.Unmarshal([]byte(raw), &persisted))
	require.Len(t, persisted, 1)
}

func TestDeleteVehicle_CascadesAndIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestStore(t)
	s.Load(ctx)

	v1 := s.AddVehicle(ctx, models.Vehicle{Name: "Doomed"})
	v2 := s.AddVehicle(ctx, models.Vehicle{Name: "Survivor"})
	s.AddDocument(ctx, models.Document{VehicleID: v1.ID, Type: types.DocumentTypeInsurance, ExpiryDate: time.Now()})
	keptDoc := s.AddDocument(ctx, models.Document{VehicleID: v2.ID, Type: types.DocumentTypeInsurance, ExpiryDate: time.Now()})
	s.AddReminder(ctx, models.Reminder{VehicleID: v1.ID, Title: "gone"})
	keptRem := s.AddReminder(ctx, models.Reminder{VehicleID: v2.ID, Title: "kept"})

	s.DeleteVehicle(ctx, v1.ID)
	s.Flush()

	require.Len(t, s.Vehicles(), 1)
	assert.Equal(t, v2.ID, s.Vehicles()[0].ID)
	require.Len(t, s.Documents(), 1)
	assert.Equal(t, keptDoc.ID, s.Documents()[0].ID)
	require.Len(t, s.Reminders(), 1)
	assert.Equal(t, keptRem.ID, s.Reminders()[0].ID)

	// Deleting again changes nothing.
	s.DeleteVehicle(ctx, v1.ID)
	s.Flush()
	assert.Len(t, s.Vehicles(), 1)
	assert.Len(t, s.Documents(), 1)
	assert.Len(t, s.Reminders(), 1)
}

func TestRenewDocument_SnapshotsPriorStateIntoHistory(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestStore(t)
	s.Load(ctx)

	oldExpiry := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	d := s.AddDocument(ctx, models.Document{VehicleID: "v1", Type: types.DocumentTypeInsurance, ExpiryDate: oldExpiry, ImageURI: "file://old.jpg"})

	newExpiry := time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC)
	renewed, found := s.RenewDocument(ctx, d.ID, newExpiry, "file://new.jpg")
	s.Flush()

	require.True(t, found)
	assert.Equal(t, newExpiry, renewed.ExpiryDate)
	assert.Equal(t, "file://new.jpg", renewed.ImageURI)
	assert.Equal(t, types.DocumentStatusValid, renewed.Status)

	require.Len(t, renewed.History, 1)
	entry := renewed.History[0]
	assert.Equal(t, oldExpiry, entry.ExpiryDate)
	assert.Equal(t, "file://old.jpg", entry.ImageURI)
	assert.Contains(t, entry.ID, "_history")

	// Second renewal with no image keeps the current one and appends.
	renewed2, found := s.RenewDocument(ctx, d.ID, newExpiry.AddDate(1, 0, 0), "")
	s.Flush()
	require.True(t, found)
	assert.Equal(t, "file://new.jpg", renewed2.ImageURI)
	require.Len(t, renewed2.History, 2)
	assert.Equal(t, newExpiry, renewed2.History[1].ExpiryDate)
}

func TestRenewDocument_MissingID(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestStore(t)
	s.Load(ctx)

	_, found := s.RenewDocument(ctx, "nope", time.Now(), "")
	s.Flush()
	assert.False(t, found)
}

func TestCompleteReminder_AppendsHistoryAndFlipsFlags(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestStore(t)
	s.Load(ctx)

	r := s.AddReminder(ctx, models.Reminder{
		VehicleID: "v1",
		Title:     "Renew insurance",
		Type:      types.ReminderTypeInsurance,
		Date:      time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Time:      "10:00",
	})

	completed, found := s.CompleteReminder(ctx, r.ID)
	s.Flush()

	require.True(t, found)
	assert.True(t, completed.IsCompleted)
	require.NotNil(t, completed.CompletedAt)

	require.Len(t, completed.History, 1)
	entry := completed.History[0]
	assert.Equal(t, "Renew insurance", entry.Title)
	assert.Equal(t, types.ReminderTypeInsurance, entry.Type)
	assert.Equal(t, "10:00", entry.Time)
	assert.Equal(t, *completed.CompletedAt, entry.CompletedAt)
	assert.Contains(t, entry.ID, "_history")

	// The live fields are not reset.
	assert.Equal(t, "Renew insurance", completed.Title)
}

func TestUpdateReminder_AfterCompletionPreservesFlagsAndHistory(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestStore(t)
	s.Load(ctx)

	r := s.AddReminder(ctx, models.Reminder{VehicleID: "v1", Title: "Old title", Type: types.ReminderTypeOther})
	_, found := s.CompleteReminder(ctx, r.ID)
	require.True(t, found)

	title := "New title"
	updated, found := s.UpdateReminder(ctx, r.ID, ReminderPatch{Title: &title})
	s.Flush()

	require.True(t, found)
	assert.Equal(t, "New title", updated.Title)
	assert.True(t, updated.IsCompleted)
	assert.NotNil(t, updated.CompletedAt)
	assert.Len(t, updated.History, 1)
}

func TestAddReminder_CompletionForcedFalse(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestStore(t)
	s.Load(ctx)

	r := s.AddReminder(ctx, models.Reminder{Title: "x", IsCompleted: true})
	s.Flush()
	assert.False(t, r.IsCompleted)
}

func TestSetUser_NilRemovesKey(t *testing.T) {
	ctx := context.Background()
	s, kv, _ := newTestStore(t)
	s.Load(ctx)

	s.SetUser(ctx, &models.User{ID: "u1", Name: "Ada"})
	s.Flush()
	_, found, err := kv.GetItem(ctx, KeyUser)
	require.NoError(t, err)
	require.True(t, found)

	s.SetUser(ctx, nil)
	s.Flush()
	assert.Nil(t, s.User())
	_, found, err = kv.GetItem(ctx, KeyUser)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMutations_SwallowWriteFailures(t *testing.T) {
	ctx := context.Background()
	s, kv, _ := newTestStore(t)
	s.Load(ctx)
	kv.FailSet = true

	v := s.AddVehicle(ctx, models.Vehicle{Name: "Ghost"})
	s.Flush()

	// In-memory state is authoritative even when the backing write fails.
	require.Len(t, s.Vehicles(), 1)
	assert.Equal(t, v.ID, s.Vehicles()[0].ID)
	_, found, err := kv.GetItem(ctx, KeyVehicles)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestTheme_DefaultAndRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestStore(t)
	s.Load(ctx)

	assert.Equal(t, types.ThemeModeSystem, s.Theme(ctx))

	require.NoError(t, s.SetTheme(ctx, types.ThemeModeDark))
	assert.Equal(t, types.ThemeModeDark, s.Theme(ctx))

	err := s.SetTheme(ctx, types.ThemeMode("neon"))
	require.Error(t, err)
	assert.Equal(t, types.ThemeModeDark, s.Theme(ctx))
}

func TestTheme_InvalidStoredValueFallsBack(t *testing.T) {
	ctx := context.Background()
	s, kv, _ := newTestStore(t)
	seed(t, kv, KeyThemeMode, "chartreuse")
	assert.Equal(t, types.ThemeModeSystem, s.Theme(ctx))
}

func TestClearAllData_WipesEverything(t *testing.T) {
	ctx := context.Background()
	s, kv, audit := newTestStore(t)
	s.Load(ctx)

	s.AddVehicle(ctx, models.Vehicle{Name: "v"})
	s.SetUser(ctx, &models.User{ID: "u1"})
	require.NoError(t, s.SetTheme(ctx, types.ThemeModeLight))
	s.Flush()

	s.ClearAllData(ctx)
	s.Flush()

	assert.Nil(t, s.User())
	assert.Empty(t, s.Vehicles())
	keys, err := kv.AllKeys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
	assert.True(t, audit.has(models.StorageAuditActionClearAll, ""))
}

func TestClearCorruptedData_RemovesBadKeysAndReloads(t *testing.T) {
	ctx := context.Background()
	s, kv, _ := newTestStore(t)
	seed(t, kv, KeyVehicles, "[object Object]")
	seed(t, kv, KeyDocuments, `[{"id":"d1","vehicleId":"v1","type":"insurance","expiryDate":"2026-12-01T00:00:00Z","status":"valid","createdAt":"2026-01-01T00:00:00Z","updatedAt":"2026-01-01T00:00:00Z"}]`)
	seed(t, kv, KeyThemeMode, "banana")

	s.ClearCorruptedData(ctx)
	s.Flush()

	assert.Empty(t, s.Vehicles())
	require.Len(t, s.Documents(), 1)

	_, found, err := kv.GetItem(ctx, KeyVehicles)
	require.NoError(t, err)
	assert.False(t, found)
	_, found, err = kv.GetItem(ctx, KeyThemeMode)
	require.NoError(t, err)
	assert.False(t, found)
	_, found, err = kv.GetItem(ctx, KeyDocuments)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestClearCorruptedData_ThemeGetsDomainCheckNotJSONCheck(t *testing.T) {
	ctx := context.Background()
	s, kv, _ := newTestStore(t)
	// "dark" is not JSON, but it is a valid theme value and must survive.
	seed(t, kv, KeyThemeMode, "dark")

	s.ClearCorruptedData(ctx)
	s.Flush()

	assert.Equal(t, types.ThemeModeDark, s.Theme(ctx))
}

func TestSnapshots_AreCopies(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestStore(t)
	s.Load(ctx)
	s.AddVehicle(ctx, models.Vehicle{Name: "original"})
	s.Flush()

	snap := s.Vehicles()
	snap[0].Name = "mutated"
	assert.Equal(t, "original", s.Vehicles()[0].Name)
}
