package dao_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/gatherly/gatherly-api/internal/db"
	"github.com/gatherly/gatherly-api/internal/repository/dao"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Printf("skipping storage tests, docker unavailable: %v", err)
		os.Exit(0)
	}
	if err = pool.Client.Ping(); err != nil {
		log.Printf("skipping storage tests, docker unavailable: %v", err)
		os.Exit(0)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=gatherly",
			"POSTGRES_PASSWORD=gatherly",
			"POSTGRES_DB=gatherly_test",
			"listen_addresses = '*'",
		},
	}, func(conf *docker.HostConfig) {
		conf.AutoRemove = true
		conf.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("could not start postgres container: %v", err)
	}

	url := fmt.Sprintf("postgres://gatherly:gatherly@%v/gatherly_test?sslmode=disable",
		resource.GetHostPort("5432/tcp"))

	pool.MaxWait = 2 * time.Minute
	if err = pool.Retry(func() error {
		testDB, err = db.OpenPostgresWithURL(url)
		return err
	}); err != nil {
		log.Fatalf("could not connect to postgres container: %v", err)
	}

	code := m.Run()

	if err = pool.Purge(resource); err != nil {
		log.Printf("could not purge postgres container: %v", err)
	}

	os.Exit(code)
}

func truncateAll(t *testing.T) {
	t.Helper()
	err := testDB.Exec("TRUNCATE event_participations, events, participants RESTART IDENTITY CASCADE").Error
	require.NoError(t, err)
}

func insertParticipant(t *testing.T, username, email string) dao.Participant {
	t.Helper()
	created, err := dao.NewParticipantDAO(testDB).Insert(context.Background(), dao.Participant{
		Username: username,
		Email:    email,
		Password: "hashed",
	})
	require.NoError(t, err)
	return created
}

func insertEvent(t *testing.T, title, eventType, location string, date time.Time) dao.Event {
	t.Helper()
	created, err := dao.NewEventDAO(testDB).Insert(context.Background(), dao.Event{
		Title:     title,
		EventType: eventType,
		Location:  location,
		Date:      date,
	})
	require.NoError(t, err)
	return created
}

func TestParticipantDAO(t *testing.T) {
	ctx := context.Background()
	d := dao.NewParticipantDAO(testDB)

	t.Run("duplicate username maps to ErrUsernameExists", func(t *testing.T) {
		truncateAll(t)
		insertParticipant(t, "alice", "alice@example.com")

		_, err := d.Insert(ctx, dao.Participant{
			Username: "alice",
			Email:    "other@example.com",
			Password: "hashed",
		})

		assert.ErrorIs(t, err, dao.ErrUsernameExists)
	})

	t.Run("duplicate email maps to ErrEmailExists", func(t *testing.T) {
		truncateAll(t)
		insertParticipant(t, "alice", "alice@example.com")

		_, err := d.Insert(ctx, dao.Participant{
			Username: "bob",
			Email:    "alice@example.com",
			Password: "hashed",
		})

		assert.ErrorIs(t, err, dao.ErrEmailExists)
	})

	t.Run("find by username", func(t *testing.T) {
		truncateAll(t)
		insertParticipant(t, "alice", "alice@example.com")

		found, err := d.FindByUsername(ctx, "alice")

		assert.NoError(t, err)
		assert.Equal(t, "alice@example.com", found.Email)

		_, err = d.FindByUsername(ctx, "ghost")
		assert.ErrorIs(t, err, dao.ErrParticipantNotFound)
	})

	t.Run("delete of a missing row", func(t *testing.T) {
		truncateAll(t)

		assert.ErrorIs(t, d.Delete(ctx, 42), dao.ErrParticipantNotFound)
	})
}

func TestEventDAOFindAll(t *testing.T) {
	ctx := context.Background()
	d := dao.NewEventDAO(testDB)

	truncateAll(t)
	sept := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)
	oct := time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC)
	insertEvent(t, "GopherCon", "conference", "Berlin", sept)
	insertEvent(t, "Hack Night", "meetup", "Berlin", oct)
	insertEvent(t, "DevOpsCon", "conference", "Munich", oct)

	t.Run("title filter matches case-insensitive substrings", func(t *testing.T) {
		events, err := d.FindAll(ctx, dao.EventFilter{Title: "gopher"})

		assert.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "GopherCon", events[0].Title)
	})

	t.Run("date filter matches the calendar date exactly", func(t *testing.T) {
		events, err := d.FindAll(ctx, dao.EventFilter{Date: &oct})

		assert.NoError(t, err)
		assert.Len(t, events, 2)
	})

	t.Run("filters compose", func(t *testing.T) {
		events, err := d.FindAll(ctx, dao.EventFilter{Date: &oct, Location: "berlin"})

		assert.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "Hack Night", events[0].Title)
	})

	t.Run("pattern metacharacters in filters match literally", func(t *testing.T) {
		events, err := d.FindAll(ctx, dao.EventFilter{Title: "Con%"})

		assert.NoError(t, err)
		assert.Empty(t, events)

		events, err = d.FindAll(ctx, dao.EventFilter{Title: "_on"})
		assert.NoError(t, err)
		assert.Empty(t, events)
	})

	t.Run("no filters returns everything ordered by id", func(t *testing.T) {
		events, err := d.FindAll(ctx, dao.EventFilter{})

		assert.NoError(t, err)
		require.Len(t, events, 3)
		assert.Equal(t, "GopherCon", events[0].Title)
	})
}

func TestParticipationDAO(t *testing.T) {
	ctx := context.Background()
	d := dao.NewParticipationDAO(testDB)

	t.Run("second insert of the same pair maps to ErrAlreadyJoined", func(t *testing.T) {
		truncateAll(t)
		p := insertParticipant(t, "alice", "alice@example.com")
		e := insertEvent(t, "GopherCon", "conference", "Berlin", time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC))

		_, err := d.Insert(ctx, dao.EventParticipation{EventID: e.ID, ParticipantID: p.ID})
		require.NoError(t, err)

		_, err = d.Insert(ctx, dao.EventParticipation{EventID: e.ID, ParticipantID: p.ID})
		assert.ErrorIs(t, err, dao.ErrAlreadyJoined)
	})

	t.Run("unknown participant maps to ErrParticipantNotFound", func(t *testing.T) {
		truncateAll(t)
		e := insertEvent(t, "GopherCon", "conference", "Berlin", time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC))

		_, err := d.Insert(ctx, dao.EventParticipation{EventID: e.ID, ParticipantID: 9999})

		assert.ErrorIs(t, err, dao.ErrParticipantNotFound)
	})

	t.Run("unknown event maps to ErrEventNotFound", func(t *testing.T) {
		truncateAll(t)
		p := insertParticipant(t, "alice", "alice@example.com")

		_, err := d.Insert(ctx, dao.EventParticipation{EventID: 9999, ParticipantID: p.ID})

		assert.ErrorIs(t, err, dao.ErrEventNotFound)
	})

	t.Run("same participant may join distinct events", func(t *testing.T) {
		truncateAll(t)
		p := insertParticipant(t, "alice", "alice@example.com")
		e1 := insertEvent(t, "GopherCon", "conference", "Berlin", time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC))
		e2 := insertEvent(t, "Hack Night", "meetup", "Berlin", time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC))

		_, err := d.Insert(ctx, dao.EventParticipation{EventID: e1.ID, ParticipantID: p.ID})
		require.NoError(t, err)
		_, err = d.Insert(ctx, dao.EventParticipation{EventID: e2.ID, ParticipantID: p.ID})
		assert.NoError(t, err)
	})

	t.Run("organizer checks", func(t *testing.T) {
		truncateAll(t)
		alice := insertParticipant(t, "alice", "alice@example.com")
		bob := insertParticipant(t, "bob", "bob@example.com")
		e := insertEvent(t, "GopherCon", "conference", "Berlin", time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC))

		has, err := d.HasOrganizer(ctx, e.ID)
		require.NoError(t, err)
		assert.False(t, has)

		_, err = d.Insert(ctx, dao.EventParticipation{EventID: e.ID, ParticipantID: alice.ID, IsOrganizer: true})
		require.NoError(t, err)
		_, err = d.Insert(ctx, dao.EventParticipation{EventID: e.ID, ParticipantID: bob.ID})
		require.NoError(t, err)

		has, err = d.HasOrganizer(ctx, e.ID)
		require.NoError(t, err)
		assert.True(t, has)

		isOrg, err := d.IsOrganizer(ctx, e.ID, alice.ID)
		require.NoError(t, err)
		assert.True(t, isOrg)

		isOrg, err = d.IsOrganizer(ctx, e.ID, bob.ID)
		require.NoError(t, err)
		assert.False(t, isOrg)
	})

	t.Run("deleting the event cascades to its participations", func(t *testing.T) {
		truncateAll(t)
		p := insertParticipant(t, "alice", "alice@example.com")
		e := insertEvent(t, "GopherCon", "conference", "Berlin", time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC))

		_, err := d.Insert(ctx, dao.EventParticipation{EventID: e.ID, ParticipantID: p.ID})
		require.NoError(t, err)

		require.NoError(t, dao.NewEventDAO(testDB).Delete(ctx, e.ID))

		participations, err := d.FindAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, participations)
	})
}

func TestEventDAOFindParticipants(t *testing.T) {
	ctx := context.Background()
	d := dao.NewEventDAO(testDB)
	pd := dao.NewParticipationDAO(testDB)

	truncateAll(t)
	e := insertEvent(t, "GopherCon", "conference", "Berlin", time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC))
	for i := 0; i < 5; i++ {
		p := insertParticipant(t, fmt.Sprintf("user%d", i), fmt.Sprintf("user%d@example.com", i))
		_, err := pd.Insert(ctx, dao.EventParticipation{EventID: e.ID, ParticipantID: p.ID})
		require.NoError(t, err)
	}

	t.Run("ordered by join id", func(t *testing.T) {
		participants, err := d.FindParticipants(ctx, e.ID, -1, 0)

		assert.NoError(t, err)
		require.Len(t, participants, 5)
		assert.Equal(t, "user0", participants[0].Username)
	})

	t.Run("limit and offset page through", func(t *testing.T) {
		participants, err := d.FindParticipants(ctx, e.ID, 2, 2)

		assert.NoError(t, err)
		require.Len(t, participants, 2)
		assert.Equal(t, "user2", participants[0].Username)
	})

	t.Run("unknown event yields an empty list", func(t *testing.T) {
		participants, err := d.FindParticipants(ctx, 9999, -1, 0)

		assert.NoError(t, err)
		assert.Empty(t, participants)
	})
}
