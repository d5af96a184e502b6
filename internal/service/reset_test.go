package service

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"sync"
	"testing"
	"time"
	"traveldesk/travel-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers struct {
	mu        sync.Mutex
	byID      map[int]*model.User
	hashes    map[int]string
	updateErr error
}

func newFakeUsers(users ...*model.User) *fakeUsers {
	f := &fakeUsers{
		byID:   make(map[int]*model.User),
		hashes: make(map[int]string),
	}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) FindByID(_ context.Context, id int) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byID[id], nil
}

func (f *fakeUsers) UpdatePasswordHash(_ context.Context, id int, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.updateErr != nil {
		return f.updateErr
	}

	f.hashes[id] = hash
	return nil
}

func (f *fakeUsers) passwordUpdates(id int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.hashes[id]; ok {
		return 1
	}
	return 0
}

type fakeCodes struct {
	mu       sync.Mutex
	seq      int
	rows     map[int]*model.PasswordResetCode
	purgeErr error
	purges   int
}

func newFakeCodes() *fakeCodes {
	return &fakeCodes{rows: make(map[int]*model.PasswordResetCode)}
}

func (f *fakeCodes) Create(_ context.Context, rc *model.PasswordResetCode) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seq++
	rc.ID = f.seq
	cp := *rc
	f.rows[rc.ID] = &cp
	return nil
}

func (f *fakeCodes) FindActive(_ context.Context, code, email string) (*model.PasswordResetCode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, rc := range f.rows {
		if rc.Code == code && rc.Email == email && !rc.Used {
			cp := *rc
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeCodes) InvalidateAllForUser(_ context.Context, userID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now()
	for _, rc := range f.rows {
		if rc.UserID == userID && !rc.Used {
			rc.Used = true
			rc.UsedAt = &now
		}
	}
	return nil
}

func (f *fakeCodes) MarkUsed(_ context.Context, id int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rc, ok := f.rows[id]
	if !ok || rc.Used {
		return false, nil
	}

	now := time.Now()
	rc.Used = true
	rc.UsedAt = &now
	return true, nil
}

func (f *fakeCodes) PurgeExpired(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.purges++
	if f.purgeErr != nil {
		return 0, f.purgeErr
	}

	var removed int64
	for id, rc := range f.rows {
		if rc.ExpiresAt.Before(time.Now()) {
			delete(f.rows, id)
			removed++
		}
	}
	return removed, nil
}

func (f *fakeCodes) activeFor(userID int) []*model.PasswordResetCode {
	f.mu.Lock()
	defer f.mu.Unlock()

	var active []*model.PasswordResetCode
	for _, rc := range f.rows {
		if rc.UserID == userID && rc.Active(time.Now()) {
			cp := *rc
			active = append(active, &cp)
		}
	}
	return active
}

// fakeTx serializes transactions and rolls written state back when fn
// fails, mirroring what a database transaction does.
type fakeTx struct {
	mu    sync.Mutex
	users *fakeUsers
	codes *fakeCodes
}

func (t *fakeTx) InTx(_ context.Context, fn func(users UserDirectory, codes ResetCodeStore) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.users.mu.Lock()
	hashes := make(map[int]string, len(t.users.hashes))
	for id, h := range t.users.hashes {
		hashes[id] = h
	}
	t.users.mu.Unlock()

	t.codes.mu.Lock()
	rows := make(map[int]*model.PasswordResetCode, len(t.codes.rows))
	for id, rc := range t.codes.rows {
		cp := *rc
		rows[id] = &cp
	}
	t.codes.mu.Unlock()

	if err := fn(t.users, t.codes); err != nil {
		t.users.mu.Lock()
		t.users.hashes = hashes
		t.users.mu.Unlock()

		t.codes.mu.Lock()
		t.codes.rows = rows
		t.codes.mu.Unlock()

		return err
	}

	return nil
}

type plainHasher struct{}

func (plainHasher) GenerateFromPassword(p string) (string, error) {
	return "hashed:" + p, nil
}

func activeUser() *model.User {
	return &model.User{
		ID:     1,
		Name:   "Ana Torres",
		Email:  "ana@example.com",
		Role:   model.RoleRequester,
		Active: true,
	}
}

func newTestResetService(users *fakeUsers, codes *fakeCodes) *ResetService {
	return NewResetService(users, codes, plainHasher{}, &fakeTx{users: users, codes: codes})
}

func TestRequestResetUnknownEmail(t *testing.T) {
	s := newTestResetService(newFakeUsers(), newFakeCodes())

	_, err := s.RequestReset(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, ErrUnknownEmail)
}

func TestRequestResetDisabledAccount(t *testing.T) {
	u := activeUser()
	u.Active = false

	s := newTestResetService(newFakeUsers(u), newFakeCodes())

	_, err := s.RequestReset(context.Background(), u.Email)
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestRequestResetIssuesCode(t *testing.T) {
	codes := newFakeCodes()
	s := newTestResetService(newFakeUsers(activeUser()), codes)

	issued, err := s.RequestReset(context.Background(), "ana@example.com")
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), issued.Code)
	assert.Equal(t, "ana@example.com", issued.Email)
	assert.WithinDuration(t, time.Now().Add(time.Minute*5), issued.ExpiresAt, time.Second)

	active := codes.activeFor(1)
	require.Len(t, active, 1)
	assert.Equal(t, issued.Code, active[0].Code)
}

func TestRequestResetKeepsSingleActiveCode(t *testing.T) {
	codes := newFakeCodes()
	s := newTestResetService(newFakeUsers(activeUser()), codes)

	first, err := s.RequestReset(context.Background(), "ana@example.com")
	require.NoError(t, err)

	second, err := s.RequestReset(context.Background(), "ana@example.com")
	require.NoError(t, err)

	active := codes.activeFor(1)
	require.Len(t, active, 1)
	assert.Equal(t, second.Code, active[0].Code)

	// The superseded code must be unusable even if the codes collide
	if first.Code != second.Code {
		err = s.ConsumeReset(context.Background(), first.Code, "ana@example.com", "NewPass1!")
		assert.ErrorIs(t, err, ErrInvalidCode)
	}
}

func TestRequestResetSurvivesPurgeFailure(t *testing.T) {
	codes := newFakeCodes()
	codes.purgeErr = errors.New("disk on fire")

	s := newTestResetService(newFakeUsers(activeUser()), codes)

	_, err := s.RequestReset(context.Background(), "ana@example.com")
	assert.NoError(t, err)
}

func TestConsumeResetHappyPath(t *testing.T) {
	users := newFakeUsers(activeUser())
	codes := newFakeCodes()
	s := newTestResetService(users, codes)

	issued, err := s.RequestReset(context.Background(), "ana@example.com")
	require.NoError(t, err)

	err = s.ConsumeReset(context.Background(), issued.Code, "ana@example.com", "NewPass1!")
	require.NoError(t, err)

	assert.Equal(t, "hashed:NewPass1!", users.hashes[1])
	assert.Empty(t, codes.activeFor(1))

	// Same call repeated: the code is no longer active
	err = s.ConsumeReset(context.Background(), issued.Code, "ana@example.com", "NewPass1!")
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestConsumeResetWrongEmail(t *testing.T) {
	s := newTestResetService(newFakeUsers(activeUser()), newFakeCodes())

	issued, err := s.RequestReset(context.Background(), "ana@example.com")
	require.NoError(t, err)

	err = s.ConsumeReset(context.Background(), issued.Code, "other@example.com", "NewPass1!")
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestConsumeResetExpiredCode(t *testing.T) {
	users := newFakeUsers(activeUser())
	codes := newFakeCodes()
	s := newTestResetService(users, codes)

	issued, err := s.RequestReset(context.Background(), "ana@example.com")
	require.NoError(t, err)

	// Jump the service clock past the 5 minute window
	s.now = func() time.Time { return time.Now().Add(time.Minute * 6) }

	err = s.ConsumeReset(context.Background(), issued.Code, "ana@example.com", "NewPass1!")
	assert.ErrorIs(t, err, ErrCodeExpired)
	assert.Zero(t, users.passwordUpdates(1))
}

func TestConsumeResetDisabledAccount(t *testing.T) {
	u := activeUser()
	users := newFakeUsers(u)
	codes := newFakeCodes()
	s := newTestResetService(users, codes)

	issued, err := s.RequestReset(context.Background(), "ana@example.com")
	require.NoError(t, err)

	u.Active = false

	err = s.ConsumeReset(context.Background(), issued.Code, "ana@example.com", "NewPass1!")
	assert.ErrorIs(t, err, ErrAccountUnavailable)
}

func TestConsumeResetRollsBackOnPasswordUpdateFailure(t *testing.T) {
	users := newFakeUsers(activeUser())
	codes := newFakeCodes()
	s := newTestResetService(users, codes)

	issued, err := s.RequestReset(context.Background(), "ana@example.com")
	require.NoError(t, err)

	users.updateErr = errors.New("connection reset by peer")

	err = s.ConsumeReset(context.Background(), issued.Code, "ana@example.com", "NewPass1!")
	require.Error(t, err)
	assert.Zero(t, users.passwordUpdates(1))

	// The failed attempt must not burn the code, a retry has to work
	users.updateErr = nil

	err = s.ConsumeReset(context.Background(), issued.Code, "ana@example.com", "NewPass1!")
	require.NoError(t, err)
	assert.Equal(t, "hashed:NewPass1!", users.hashes[1])
}

func TestConsumeResetConcurrentCallers(t *testing.T) {
	users := newFakeUsers(activeUser())
	codes := newFakeCodes()
	s := newTestResetService(users, codes)

	issued, err := s.RequestReset(context.Background(), "ana@example.com")
	require.NoError(t, err)

	const callers = 32

	var wg sync.WaitGroup
	results := make([]error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = s.ConsumeReset(context.Background(), issued.Code, "ana@example.com", "pw"+strconv.Itoa(i)+"secret")
		}(i)
	}
	wg.Wait()

	var wins int
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrCodeUsed), errors.Is(err, ErrInvalidCode):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, wins, "exactly one caller may consume the code")
	assert.Equal(t, 1, users.passwordUpdates(1), "only the winner may touch the password")
}

func TestGenerateCode(t *testing.T) {
	for i := 0; i < 1000; i++ {
		code, err := generateCode()
		require.NoError(t, err)
		require.Len(t, code, 6)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}
