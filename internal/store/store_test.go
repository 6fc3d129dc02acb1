package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/OpsDesk-io/opsdesk/internal/config"
	"github.com/OpsDesk-io/opsdesk/internal/database"
	"github.com/OpsDesk-io/opsdesk/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	cfg := &config.Config{
		DatabaseType: "sqlite",
		DatabasePath: filepath.Join(t.TempDir(), "test.db"),
	}
	db, err := database.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return New(db, "sqlite")
}

func createTestUser(t *testing.T, s *Store, email string) *models.User {
	t.Helper()
	user, err := s.CreateUser(context.Background(), email, "hash", models.RoleUser)
	require.NoError(t, err)
	return user
}

func createTestClient(t *testing.T, s *Store, name string) *models.Client {
	t.Helper()
	client := &models.Client{Name: name, Status: models.ClientStatusActive}
	require.NoError(t, s.CreateClient(context.Background(), client))
	return client
}

func TestCreateAndGetUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := createTestUser(t, s, "Dev@OpsDesk.io")
	assert.Equal(t, "dev@opsdesk.io", user.Email, "email is stored normalized")

	got, err := s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)

	// Lookup is case-insensitive through normalization.
	got, err = s.GetUserByEmail(ctx, "DEV@opsdesk.IO")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	createTestUser(t, s, "dev@opsdesk.io")
	_, err := s.CreateUser(ctx, "DEV@opsdesk.io", "hash", models.RoleUser)
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestCountAndDeleteUsers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	count, err := s.CountUsers(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	user := createTestUser(t, s, "dev@opsdesk.io")
	count, err = s.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, s.DeleteUser(ctx, user.ID))
	_, err = s.GetUserByID(ctx, user.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.DeleteUser(ctx, user.ID), ErrNotFound)
}

func TestClientCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	client := createTestClient(t, s, "Acme Corp")
	require.NotZero(t, client.ID)

	client.Company = "Acme Corporation"
	client.Status = models.ClientStatusArchived
	require.NoError(t, s.UpdateClient(ctx, client))

	got, err := s.GetClient(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Corporation", got.Company)
	assert.Equal(t, models.ClientStatusArchived, got.Status)

	require.NoError(t, s.DeleteClient(ctx, client.ID))
	_, err = s.GetClient(ctx, client.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteClientCascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	client := createTestClient(t, s, "Acme Corp")
	project := &models.Project{ClientID: client.ID, Name: "Website"}
	require.NoError(t, s.CreateProject(ctx, project))
	service := &models.ServiceItem{ClientID: client.ID, Name: "Maintenance", Rate: 99}
	require.NoError(t, s.CreateService(ctx, service))

	require.NoError(t, s.DeleteClient(ctx, client.ID))

	_, err := s.GetProject(ctx, project.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetService(ctx, service.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListProjectsFilter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := createTestClient(t, s, "Client A")
	b := createTestClient(t, s, "Client B")

	require.NoError(t, s.CreateProject(ctx, &models.Project{ClientID: a.ID, Name: "P1"}))
	require.NoError(t, s.CreateProject(ctx, &models.Project{ClientID: a.ID, Name: "P2"}))
	require.NoError(t, s.CreateProject(ctx, &models.Project{ClientID: b.ID, Name: "P3"}))

	all, err := s.ListProjects(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	onlyA, err := s.ListProjects(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, onlyA, 2)
}

func TestProjectNullableFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	client := createTestClient(t, s, "Acme Corp")
	due := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	budget := 5000.0
	project := &models.Project{ClientID: client.ID, Name: "Website", DueDate: &due, Budget: &budget}
	require.NoError(t, s.CreateProject(ctx, project))

	got, err := s.GetProject(ctx, project.ID)
	require.NoError(t, err)
	require.NotNil(t, got.DueDate)
	require.NotNil(t, got.Budget)
	assert.Equal(t, 5000.0, *got.Budget)

	// Clearing both stores NULLs again.
	got.DueDate = nil
	got.Budget = nil
	require.NoError(t, s.UpdateProject(ctx, got))

	got, err = s.GetProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Nil(t, got.DueDate)
	assert.Nil(t, got.Budget)
}

func TestCalendarOwnership(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := createTestUser(t, s, "alice@opsdesk.io")
	bob := createTestUser(t, s, "bob@opsdesk.io")

	event := &models.CalendarEvent{
		UserID:   alice.ID,
		Title:    "Kickoff",
		StartsAt: time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
		EndsAt:   time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.CreateEvent(ctx, event))

	// The owner sees it; anyone else gets not-found, never a hint that the
	// row exists.
	_, err := s.GetEvent(ctx, event.ID, alice.ID)
	require.NoError(t, err)
	_, err = s.GetEvent(ctx, event.ID, bob.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	stolen := *event
	stolen.UserID = bob.ID
	stolen.Title = "Hijacked"
	assert.ErrorIs(t, s.UpdateEvent(ctx, &stolen), ErrNotFound)

	assert.ErrorIs(t, s.DeleteEvent(ctx, event.ID, bob.ID), ErrNotFound)

	// The failed attempts left the row untouched.
	got, err := s.GetEvent(ctx, event.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kickoff", got.Title)
}

func TestListEventsWindow(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := createTestUser(t, s, "alice@opsdesk.io")
	for _, day := range []int{1, 15, 28} {
		require.NoError(t, s.CreateEvent(ctx, &models.CalendarEvent{
			UserID:   alice.ID,
			Title:    "Event",
			StartsAt: time.Date(2026, 9, day, 9, 0, 0, 0, time.UTC),
			EndsAt:   time.Date(2026, 9, day, 10, 0, 0, 0, time.UTC),
		}))
	}

	all, err := s.ListEvents(ctx, alice.ID, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mid, err := s.ListEvents(ctx, alice.ID,
		time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, mid, 1)
}

func TestNotificationOwnership(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := createTestUser(t, s, "alice@opsdesk.io")
	bob := createTestUser(t, s, "bob@opsdesk.io")

	n := &models.Notification{UserID: alice.ID, Title: "Invoice due"}
	require.NoError(t, s.CreateNotification(ctx, n))

	assert.ErrorIs(t, s.MarkNotificationRead(ctx, n.ID, bob.ID), ErrNotFound)
	assert.ErrorIs(t, s.DeleteNotification(ctx, n.ID, bob.ID), ErrNotFound)

	got, err := s.GetNotification(ctx, n.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, got.Read)

	require.NoError(t, s.MarkNotificationRead(ctx, n.ID, alice.ID))
	count, err := s.CountUnreadNotifications(ctx, alice.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMarkAllNotificationsRead(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := createTestUser(t, s, "alice@opsdesk.io")
	for i := 0; i < 3; i++ {
		require.NoError(t, s.CreateNotification(ctx, &models.Notification{UserID: alice.ID, Title: "n"}))
	}

	require.NoError(t, s.MarkAllNotificationsRead(ctx, alice.ID))
	count, err := s.CountUnreadNotifications(ctx, alice.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	// Idempotent with nothing left unread.
	require.NoError(t, s.MarkAllNotificationsRead(ctx, alice.ID))
}

func TestBroadcastNotification(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := createTestUser(t, s, "alice@opsdesk.io")
	bob := createTestUser(t, s, "bob@opsdesk.io")

	count, err := s.BroadcastNotification(ctx, "Maintenance window", "Saturday 02:00 UTC")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	for _, id := range []int64{alice.ID, bob.ID} {
		list, err := s.ListNotifications(ctx, id)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Maintenance window", list[0].Title)
		assert.False(t, list[0].Read)
	}
}

func TestSettingsUpsert(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := createTestUser(t, s, "alice@opsdesk.io")

	_, err := s.GetSettings(ctx, alice.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	settings := &models.UserSettings{
		UserID: alice.ID, Theme: "dark", Locale: "en",
		EmailNotifications: true, ReminderLeadMins: 15,
	}
	require.NoError(t, s.UpsertSettings(ctx, settings))

	settings.Theme = "light"
	settings.ReminderLeadMins = 60
	require.NoError(t, s.UpsertSettings(ctx, settings))

	got, err := s.GetSettings(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "light", got.Theme)
	assert.Equal(t, 60, got.ReminderLeadMins)
}

func TestDocumentsScopedToClient(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := createTestUser(t, s, "alice@opsdesk.io")
	a := createTestClient(t, s, "Client A")
	b := createTestClient(t, s, "Client B")

	doc := &models.Document{
		ClientID: a.ID, FileName: "contract.pdf", StorageKey: "clients/1/x_contract.pdf",
		Size: 1234, ContentType: "application/pdf", UploadedBy: alice.ID,
	}
	require.NoError(t, s.CreateDocument(ctx, doc))

	_, err := s.GetDocument(ctx, doc.ID, a.ID)
	require.NoError(t, err)

	// The same document id does not resolve under another client's folder.
	_, err = s.GetDocument(ctx, doc.ID, b.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.DeleteDocument(ctx, doc.ID, b.ID), ErrNotFound)

	require.NoError(t, s.DeleteDocument(ctx, doc.ID, a.ID))
}

func TestHostingCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	client := createTestClient(t, s, "Acme Corp")
	renewal := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	account := &models.HostingAccount{
		ClientID: client.ID, Domain: "acme.example", Provider: "DigitalOcean",
		Plan: "basic", RenewalDate: &renewal,
	}
	require.NoError(t, s.CreateHostingAccount(ctx, account))
	assert.Equal(t, models.HostingStatusActive, account.Status, "status defaults to active")

	account.Status = models.HostingStatusSuspended
	require.NoError(t, s.UpdateHostingAccount(ctx, account))

	got, err := s.GetHostingAccount(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, models.HostingStatusSuspended, got.Status)
	require.NotNil(t, got.RenewalDate)

	require.NoError(t, s.DeleteHostingAccount(ctx, account.ID))
	_, err = s.GetHostingAccount(ctx, account.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRebind(t *testing.T) {
	sqlite := &Store{dialect: "sqlite"}
	assert.Equal(t, "SELECT * FROM t WHERE a = ? AND b = ?",
		sqlite.rebind("SELECT * FROM t WHERE a = ? AND b = ?"))

	pg := &Store{dialect: "postgres"}
	assert.Equal(t, "SELECT * FROM t WHERE a = $1 AND b = $2",
		pg.rebind("SELECT * FROM t WHERE a = ? AND b = ?"))
}
