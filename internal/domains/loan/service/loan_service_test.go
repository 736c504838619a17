package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/loan/model"
	"library-backend/internal/domains/loan/repository"
)

// =====================================================
// IN-MEMORY STORE FAKE
// =====================================================

// memStore implements repository.LoanStore against in-memory slices.
// WithinTx serializes on a mutex, mirroring the per-book row lock the
// postgres store takes.
type memStore struct {
	mu       sync.Mutex
	books    map[uuid.UUID]bool
	loans    []*model.Loan
	waitlist []*model.WaitlistEntry
}

func newMemStore(bookIDs ...uuid.UUID) *memStore {
	books := make(map[uuid.UUID]bool)
	for _, id := range bookIDs {
		books[id] = true
	}
	return &memStore{books: books}
}

func (s *memStore) WithinTx(ctx context.Context, fn func(ops repository.LoanOperations) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&memOps{store: s})
}

func (s *memStore) GetWaitlist(ctx context.Context, bookID uuid.UUID) ([]model.WaitlistPosition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var positions []model.WaitlistPosition
	for _, e := range s.waitlistFor(bookID) {
		positions = append(positions, model.WaitlistPosition{
			ID:       e.ID,
			BookID:   e.BookID,
			MemberID: e.MemberID,
			JoinedAt: e.JoinedAt,
		})
	}
	return positions, nil
}

func (s *memStore) HasOpenLoan(ctx context.Context, bookID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.openLoan(bookID) != nil, nil
}

func (s *memStore) openLoan(bookID uuid.UUID) *model.Loan {
	for _, l := range s.loans {
		if l.BookID == bookID && l.IsOpen() {
			return l
		}
	}
	return nil
}

func (s *memStore) openLoanCount(bookID uuid.UUID) int {
	count := 0
	for _, l := range s.loans {
		if l.BookID == bookID && l.IsOpen() {
			count++
		}
	}
	return count
}

// waitlistFor returns entries in joined order, insertion order as tie-break
func (s *memStore) waitlistFor(bookID uuid.UUID) []*model.WaitlistEntry {
	var entries []*model.WaitlistEntry
	for _, e := range s.waitlist {
		if e.BookID == bookID {
			entries = append(entries, e)
		}
	}
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0 && entries[j].JoinedAt.Before(entries[j-1].JoinedAt); j-- {
			entries[j], entries[j-1] = entries[j-1], entries[j]
		}
	}
	return entries
}

type memOps struct {
	store *memStore
}

func (o *memOps) LockBook(bookID uuid.UUID) (bool, error) {
	return o.store.books[bookID], nil
}

func (o *memOps) FindOpenLoan(bookID uuid.UUID) (*model.Loan, error) {
	return o.store.openLoan(bookID), nil
}

func (o *memOps) CreateLoan(loan *model.Loan) error {
	o.store.loans = append(o.store.loans, loan)
	return nil
}

func (o *memOps) CloseOpenLoan(bookID uuid.UUID, returnedAt time.Time) (bool, error) {
	if open := o.store.openLoan(bookID); open != nil {
		t := returnedAt
		open.ReturnDate = &t
		return true, nil
	}
	return false, nil
}

func (o *memOps) NextInWaitlist(bookID uuid.UUID) (*model.WaitlistEntry, error) {
	entries := o.store.waitlistFor(bookID)
	if len(entries) == 0 {
		return nil, nil
	}
	return entries[0], nil
}

func (o *memOps) AddToWaitlist(entry *model.WaitlistEntry) error {
	for _, e := range o.store.waitlist {
		if e.BookID == entry.BookID && e.MemberID == entry.MemberID {
			return model.ErrAlreadyOnWaitlist
		}
	}
	o.store.waitlist = append(o.store.waitlist, entry)
	return nil
}

func (o *memOps) RemoveFromWaitlist(entryID uuid.UUID) error {
	for i, e := range o.store.waitlist {
		if e.ID == entryID {
			o.store.waitlist = append(o.store.waitlist[:i], o.store.waitlist[i+1:]...)
			return nil
		}
	}
	return nil
}

// newTestService wires the engine to a fake store and a fixed clock
func newTestService(store *memStore, now time.Time) *loanService {
	return &loanService{
		store: store,
		now:   func() time.Time { return now },
	}
}

// =====================================================
// REQUEST LOAN
// =====================================================

func TestRequestLoan_BookNotFound(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, time.Now())

	_, err := svc.RequestLoan(context.Background(), uuid.New(), uuid.New())

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrBookNotFound)
}

func TestRequestLoan_AvailableBookIsLoaned(t *testing.T) {
	bookID := uuid.New()
	memberID := uuid.New()
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

	store := newMemStore(bookID)
	svc := newTestService(store, now)

	result, err := svc.RequestLoan(context.Background(), bookID, memberID)

	require.NoError(t, err)
	assert.Equal(t, model.OutcomeLoaned, result.Outcome)
	require.NotNil(t, result.Loan)
	assert.Equal(t, memberID, result.Loan.MemberID)
	assert.Equal(t, now.AddDate(0, 0, 7), result.Loan.DueDate)
	assert.Equal(t, 1, store.openLoanCount(bookID))
}

func TestRequestLoan_OnLoanEnqueuesWaitlist(t *testing.T) {
	bookID := uuid.New()
	store := newMemStore(bookID)
	svc := newTestService(store, time.Now())

	_, err := svc.RequestLoan(context.Background(), bookID, uuid.New())
	require.NoError(t, err)

	result, err := svc.RequestLoan(context.Background(), bookID, uuid.New())

	require.NoError(t, err)
	assert.Equal(t, model.OutcomeWaitlisted, result.Outcome)
	assert.Nil(t, result.Loan)
	// Still exactly one open loan
	assert.Equal(t, 1, store.openLoanCount(bookID))
	assert.Len(t, store.waitlistFor(bookID), 1)
}

func TestRequestLoan_DuplicateWaitlistEntryConflicts(t *testing.T) {
	bookID := uuid.New()
	waiter := uuid.New()
	store := newMemStore(bookID)
	svc := newTestService(store, time.Now())

	_, err := svc.RequestLoan(context.Background(), bookID, uuid.New())
	require.NoError(t, err)

	_, err = svc.RequestLoan(context.Background(), bookID, waiter)
	require.NoError(t, err)

	_, err = svc.RequestLoan(context.Background(), bookID, waiter)

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrAlreadyOnWaitlist)
	assert.Len(t, store.waitlistFor(bookID), 1)
}

// =====================================================
// RETURN BOOK
// =====================================================

func TestReturnBook_EmptyWaitlistBecomesAvailable(t *testing.T) {
	bookID := uuid.New()
	store := newMemStore(bookID)
	svc := newTestService(store, time.Now())

	_, err := svc.RequestLoan(context.Background(), bookID, uuid.New())
	require.NoError(t, err)

	result, err := svc.ReturnBook(context.Background(), bookID)

	require.NoError(t, err)
	assert.Equal(t, model.OutcomeAvailable, result.Outcome)
	assert.Equal(t, 0, store.openLoanCount(bookID))
}

func TestReturnBook_NeverLentIsNoOp(t *testing.T) {
	bookID := uuid.New()
	store := newMemStore(bookID)
	svc := newTestService(store, time.Now())

	result, err := svc.ReturnBook(context.Background(), bookID)

	require.NoError(t, err)
	assert.Equal(t, model.OutcomeAvailable, result.Outcome)
}

func TestReturnBook_BookNotFound(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, time.Now())

	_, err := svc.ReturnBook(context.Background(), uuid.New())

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrBookNotFound)
}

func TestReturnBook_PromotesLongestWaitingMember(t *testing.T) {
	bookID := uuid.New()
	borrower := uuid.New()
	memberA := uuid.New()
	memberB := uuid.New()

	store := newMemStore(bookID)
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	svc := newTestService(store, base)
	_, err := svc.RequestLoan(context.Background(), bookID, borrower)
	require.NoError(t, err)

	// A joins before B
	svc = newTestService(store, base.Add(time.Minute))
	_, err = svc.RequestLoan(context.Background(), bookID, memberA)
	require.NoError(t, err)

	svc = newTestService(store, base.Add(2*time.Minute))
	_, err = svc.RequestLoan(context.Background(), bookID, memberB)
	require.NoError(t, err)

	returnedAt := base.Add(time.Hour)
	svc = newTestService(store, returnedAt)
	result, err := svc.ReturnBook(context.Background(), bookID)

	require.NoError(t, err)
	assert.Equal(t, model.OutcomeReassigned, result.Outcome)
	assert.Equal(t, memberA, result.MemberID)
	require.NotNil(t, result.Loan)
	// Loan identity changes and the due date resets on promotion
	assert.Equal(t, returnedAt.AddDate(0, 0, 7), result.Loan.DueDate)

	assert.Equal(t, 1, store.openLoanCount(bookID))
	assert.Equal(t, memberA, store.openLoan(bookID).MemberID)

	remaining := store.waitlistFor(bookID)
	require.Len(t, remaining, 1)
	assert.Equal(t, memberB, remaining[0].MemberID)
}

// =====================================================
// READS
// =====================================================

func TestCheckAvailability(t *testing.T) {
	bookID := uuid.New()
	store := newMemStore(bookID)
	svc := newTestService(store, time.Now())

	available, err := svc.CheckAvailability(context.Background(), bookID)
	require.NoError(t, err)
	assert.True(t, available)

	_, err = svc.RequestLoan(context.Background(), bookID, uuid.New())
	require.NoError(t, err)

	available, err = svc.CheckAvailability(context.Background(), bookID)
	require.NoError(t, err)
	assert.False(t, available)
}

func TestGetWaitlist_OrderedByJoinDate(t *testing.T) {
	bookID := uuid.New()
	memberA := uuid.New()
	memberB := uuid.New()

	store := newMemStore(bookID)
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	svc := newTestService(store, base)
	_, err := svc.RequestLoan(context.Background(), bookID, uuid.New())
	require.NoError(t, err)

	svc = newTestService(store, base.Add(time.Minute))
	_, err = svc.RequestLoan(context.Background(), bookID, memberA)
	require.NoError(t, err)

	svc = newTestService(store, base.Add(2*time.Minute))
	_, err = svc.RequestLoan(context.Background(), bookID, memberB)
	require.NoError(t, err)

	entries, err := svc.GetWaitlist(context.Background(), bookID)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, memberA, entries[0].MemberID)
	assert.Equal(t, memberB, entries[1].MemberID)
}

// =====================================================
// FULL LIFECYCLE
// =====================================================

func TestLendWaitlistReturnLifecycle(t *testing.T) {
	bookID := uuid.New()
	member1 := uuid.New()
	member2 := uuid.New()

	store := newMemStore(bookID)
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := newTestService(store, now)

	ctx := context.Background()

	// Lend to member1
	res, err := svc.RequestLoan(ctx, bookID, member1)
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeLoaned, res.Outcome)
	assert.Equal(t, now.AddDate(0, 0, 7), res.Loan.DueDate)

	// member2 is waitlisted
	res, err = svc.RequestLoan(ctx, bookID, member2)
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeWaitlisted, res.Outcome)

	// member2 again is a conflict
	_, err = svc.RequestLoan(ctx, bookID, member2)
	assert.ErrorIs(t, err, model.ErrAlreadyOnWaitlist)

	// Return hands the book straight to member2
	ret, err := svc.ReturnBook(ctx, bookID)
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeReassigned, ret.Outcome)
	assert.Equal(t, member2, ret.MemberID)

	assert.Empty(t, store.waitlistFor(bookID))
	assert.Equal(t, 1, store.openLoanCount(bookID))
	assert.Equal(t, member2, store.openLoan(bookID).MemberID)
}

// =====================================================
// CONCURRENCY
// =====================================================

func TestConcurrentRequests_SingleOpenLoan(t *testing.T) {
	bookID := uuid.New()
	store := newMemStore(bookID)
	svc := newTestService(store, time.Now())

	const callers = 16

	var wg sync.WaitGroup
	outcomes := make(chan model.LoanOutcome, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := svc.RequestLoan(context.Background(), bookID, uuid.New())
			if err == nil {
				outcomes <- res.Outcome
			}
		}()
	}
	wg.Wait()
	close(outcomes)

	loaned, waitlisted := 0, 0
	for outcome := range outcomes {
		switch outcome {
		case model.OutcomeLoaned:
			loaned++
		case model.OutcomeWaitlisted:
			waitlisted++
		}
	}

	assert.Equal(t, 1, loaned)
	assert.Equal(t, callers-1, waitlisted)
	assert.Equal(t, 1, store.openLoanCount(bookID))
}
