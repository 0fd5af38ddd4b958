package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mirkamary/schoolhub/internal/domain/user"
)

var (
	// ErrNotFound means no record matched the given email.
	ErrNotFound = errors.New("user not found")
	// ErrNoChange means a record matched but already held the requested value.
	ErrNoChange = errors.New("no changes made to the user")
)

// Store is the persistence surface the lifecycle service runs on. The
// store owns atomicity: Insert must converge concurrent duplicates onto
// one document, and lookups must report absence as (nil, nil), never as
// an error.
type Store interface {
	FindByKey(ctx context.Context, email, displayName string) (*user.Record, error)
	SetStatus(ctx context.Context, email, displayName, status string) (*user.Record, error)
	Insert(ctx context.Context, p user.Profile, timestamp int64) (*user.Record, error)
	UpdateRole(ctx context.Context, email, role string) (matched, modified int64, err error)
	FindByEmail(ctx context.Context, email string) (*user.Record, error)
	List(ctx context.Context, opts ListOptions) ([]user.Record, error)
}

// ListOptions is reserved for pagination; a zero value means the full set.
type ListOptions struct {
	Limit int64
	Skip  int64
}

type Outcome string

const (
	OutcomeCreated   Outcome = "created"
	OutcomeUpdated   Outcome = "updated"
	OutcomeUnchanged Outcome = "unchanged"
)

type UpsertResult struct {
	Outcome Outcome      `json:"outcome"`
	Record  *user.Record `json:"record"`
}

type PatchResult struct {
	Matched  int64 `json:"matchedCount"`
	Modified int64 `json:"modifiedCount"`
}

// Service holds the membership lifecycle rules. It keeps no state of its
// own; every call goes straight to the store.
type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{
		store: store,
		now:   time.Now,
	}
}

// Upsert applies the membership workflow for an inbound profile.
//
// Records are matched by the (email, displayName) pair, not by email
// alone; the same email under a different display name is a distinct
// record. An existing record only ever changes here when the incoming
// profile carries status "Requested" (the join-request transition, which
// is idempotent). Any other field changes for an existing pair are
// ignored. A profile with no matching pair is inserted whole, with a
// server-assigned timestamp, using the store's atomic upsert so two
// concurrent first writes converge onto one record.
func (s *Service) Upsert(ctx context.Context, p user.Profile) (UpsertResult, error) {
	existing, err := s.store.FindByKey(ctx, p.Email, p.DisplayName)

	if err != nil {
		return UpsertResult{}, fmt.Errorf("lookup user: %w", err)
	}

	if existing != nil {
		if p.Status == user.StatusRequested {
			rec, err := s.store.SetStatus(ctx, p.Email, p.DisplayName, user.StatusRequested)

			if err != nil {
				return UpsertResult{}, fmt.Errorf("set status: %w", err)
			}

			return UpsertResult{Outcome: OutcomeUpdated, Record: rec}, nil
		}

		return UpsertResult{Outcome: OutcomeUnchanged, Record: existing}, nil
	}

	rec, err := s.store.Insert(ctx, p, s.now().UnixMilli())

	if err != nil {
		return UpsertResult{}, fmt.Errorf("insert user: %w", err)
	}

	return UpsertResult{Outcome: OutcomeCreated, Record: rec}, nil
}

// PatchRole sets the role on the single record matching email. It
// returns ErrNotFound when nothing matched, and ErrNoChange when the
// record already holds the role; callers must be able to tell the two
// apart. No authorization check happens here.
func (s *Service) PatchRole(ctx context.Context, email, role string) (PatchResult, error) {
	matched, modified, err := s.store.UpdateRole(ctx, email, role)

	if err != nil {
		return PatchResult{}, fmt.Errorf("update role: %w", err)
	}

	if matched == 0 {
		return PatchResult{}, ErrNotFound
	}

	if modified == 0 {
		return PatchResult{Matched: matched}, ErrNoChange
	}

	return PatchResult{Matched: matched, Modified: modified}, nil
}

// GetByEmail is an exact-match lookup. Absence is a valid outcome:
// (nil, nil), not an error.
func (s *Service) GetByEmail(ctx context.Context, email string) (*user.Record, error) {
	return s.store.FindByEmail(ctx, email)
}

// List returns the full record set, unordered.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]user.Record, error) {
	recs, err := s.store.List(ctx, opts)

	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	if recs == nil {
		recs = []user.Record{}
	}

	return recs, nil
}
