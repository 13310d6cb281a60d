package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mem "guiapet/internal/adapters/storage/memory"
	"guiapet/internal/domain/pets"
	"guiapet/internal/domain/roster"
	"guiapet/internal/domain/session"
	"guiapet/internal/domain/vaccines"
	"guiapet/internal/ports/auth"
)

var today = time.Date(2026, 10, 15, 14, 0, 0, 0, time.UTC)

// switchablePets permite simular una caída del store después de la primera carga.
type switchablePets struct {
	pets.Repository
	mu   sync.Mutex
	fail bool
}

func (s *switchablePets) setFail(v bool) {
	s.mu.Lock()
	s.fail = v
	s.mu.Unlock()
}

func (s *switchablePets) ListByOwner(ctx context.Context, owner string) ([]pets.Pet, error) {
	s.mu.Lock()
	fail := s.fail
	s.mu.Unlock()
	if fail {
		return nil, errors.New("store down")
	}
	return s.Repository.ListByOwner(ctx, owner)
}

type fixture struct {
	deps     Deps
	pets     *switchablePets
	vaccines vaccines.Repository
	hub      *session.Hub
}

func newFixture() *fixture {
	pr := &switchablePets{Repository: mem.NewPetRepo()}
	vr := mem.NewVaccineRepo()
	hub := session.NewHub()
	return &fixture{
		pets:     pr,
		vaccines: vr,
		hub:      hub,
		deps: Deps{
			Roster:    roster.NewService(pets.NewService(pr), vaccines.NewService(vr), nil),
			Hub:       hub,
			Evaluator: vaccines.NewEvaluator(30),
		},
	}
}

func (f *fixture) addPet(t *testing.T, userID, name string) pets.Pet {
	t.Helper()
	p, err := f.deps.Roster.AddPet(context.Background(), userID, pets.CreateInput{Name: name, Breed: "SRD"})
	require.NoError(t, err)
	// created_at distinto para que el orden sea determinista
	time.Sleep(2 * time.Millisecond)
	return p
}

func claimsFor(userID string) auth.Claims {
	return auth.Claims{UserID: userID, Email: userID + "@example.com"}
}

func TestView_OnboardingWhenNoPets(t *testing.T) {
	f := newFixture()
	v := NewView(f.deps)
	require.NoError(t, v.Open(context.Background(), claimsFor("u-1"), ""))
	defer v.Close()

	s := v.Snapshot(today)
	assert.True(t, s.Onboarding)
	assert.Empty(t, s.Pets)
	assert.Nil(t, s.SelectedPet)
	require.NotNil(t, s.User)
	assert.Equal(t, "u-1", s.User.ID)
	assert.False(t, s.Reminder.Pending)
}

func TestView_OpenRequiresUser(t *testing.T) {
	v := NewView(newFixture().deps)
	assert.ErrorIs(t, v.Open(context.Background(), auth.Claims{}, ""), ErrUnauthorized)
}

func TestView_NewestPetSelectedAndDefaultsNotYetDue(t *testing.T) {
	f := newFixture()
	f.addPet(t, "u-1", "Rex")
	mel := f.addPet(t, "u-1", "Mel")

	v := NewView(f.deps)
	require.NoError(t, v.Open(context.Background(), claimsFor("u-1"), ""))
	defer v.Close()

	s := v.Snapshot(time.Now())
	require.Len(t, s.Pets, 2)
	assert.Equal(t, mel.ID, s.SelectedPetID)
	assert.Equal(t, "Mel", s.Pets[0].Name)
	assert.False(t, s.Onboarding)

	require.Len(t, s.Pets[0].Vaccines, 2)
	assert.Equal(t, 365, s.Pets[0].Vaccines[0].DaysUntil)
	assert.False(t, s.Pets[0].Vaccines[0].Upcoming)
	assert.False(t, s.Reminder.Pending)
}

func TestView_ReminderForSelectedPet(t *testing.T) {
	f := newFixture()
	rex := f.addPet(t, "u-1", "Rex")
	require.NoError(t, f.vaccines.CreateMany(context.Background(), []vaccines.Vaccine{
		{ID: "soon", PetID: rex.ID, Name: "Giárdia", Date: vaccines.DateOf(today), NextDate: vaccines.DateOf(today).AddDate(0, 0, 30)},
		{ID: "late", PetID: rex.ID, Name: "Gripe", Date: vaccines.DateOf(today), NextDate: vaccines.DateOf(today).AddDate(0, 0, -1)},
	}))

	v := NewView(f.deps)
	require.NoError(t, v.Open(context.Background(), claimsFor("u-1"), rex.ID))
	defer v.Close()

	s := v.Snapshot(today)
	require.NotNil(t, s.SelectedPet)
	assert.True(t, s.SelectedPet.HasPendingReminder)
	assert.True(t, s.Reminder.Pending)
	require.Len(t, s.Reminder.Upcoming, 1)
	assert.Equal(t, "soon", s.Reminder.Upcoming[0].VaccineID)
	assert.Equal(t, 30, s.Reminder.Upcoming[0].DaysUntil)

	// vencida primero (next_date asc) pero no cuenta como próxima
	assert.Equal(t, "late", s.SelectedPet.Vaccines[0].ID)
	assert.False(t, s.SelectedPet.Vaccines[0].Upcoming)
}

func TestView_SelectionSurvivesReload(t *testing.T) {
	f := newFixture()
	rex := f.addPet(t, "u-1", "Rex")
	f.addPet(t, "u-1", "Mel")

	v := NewView(f.deps)
	require.NoError(t, v.Open(context.Background(), claimsFor("u-1"), rex.ID))
	defer v.Close()
	assert.Equal(t, rex.ID, v.Snapshot(today).SelectedPetID)

	f.addPet(t, "u-1", "Bob")
	require.NoError(t, v.Reload(context.Background()))
	s := v.Snapshot(today)
	assert.Len(t, s.Pets, 3)
	assert.Equal(t, rex.ID, s.SelectedPetID)

	assert.False(t, v.Select("missing"))
	assert.True(t, v.Select(s.Pets[0].ID))
	assert.Equal(t, s.Pets[0].ID, v.Snapshot(today).SelectedPetID)
}

func TestView_FailedReloadKeepsPreviousRoster(t *testing.T) {
	f := newFixture()
	f.addPet(t, "u-1", "Rex")

	v := NewView(f.deps)
	require.NoError(t, v.Open(context.Background(), claimsFor("u-1"), ""))
	defer v.Close()

	f.pets.setFail(true)
	assert.Error(t, v.Reload(context.Background()))
	assert.Len(t, v.Snapshot(today).Pets, 1)
}

func TestView_SessionEvents(t *testing.T) {
	f := newFixture()
	v := NewView(f.deps)
	require.NoError(t, v.Open(context.Background(), claimsFor("u-1"), ""))
	require.Equal(t, 1, f.hub.Len())

	// otro usuario: se ignora
	f.hub.Publish(session.Event{Type: session.EventSignedOut, UserID: "u-2"})
	assert.Empty(t, v.Redirect())

	f.hub.Publish(session.Event{Type: session.EventSignedIn, UserID: "u-1"})
	<-v.Changes()
	assert.True(t, v.Stale())
	require.NoError(t, v.Reload(context.Background()))
	assert.False(t, v.Stale())

	f.hub.Publish(session.Event{Type: session.EventSignedOut, UserID: "u-1"})
	<-v.Changes()
	s := v.Snapshot(today)
	assert.Equal(t, "/login", s.Redirect)
	assert.Nil(t, s.User)
	assert.Empty(t, s.Pets)

	v.Close()
	v.Close()
	assert.Equal(t, 0, f.hub.Len())
	assert.ErrorIs(t, v.Reload(context.Background()), ErrClosed)
}
