package flow

import (
	"encoding/json"
	"sync"
)

// StoredDraft is the persisted shape: { step, data }.
type StoredDraft struct {
	Step Step          `json:"step"`
	Data *BookingDraft `json:"data"`
}

// DraftStore persists one draft per trip for the life of a browsing
// session. Malformed stored data is treated as absent, never surfaced.
type DraftStore interface {
	Load(tripID string) (Step, *BookingDraft, bool)
	Save(tripID string, step Step, draft *BookingDraft)
	Clear(tripID string)
}

// SessionDraftStore is the in-memory, session-scoped implementation.
// Entries are kept as encoded bytes so Load exercises the same
// decode-or-fail-open path a real storage backend would.
type SessionDraftStore struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func NewSessionDraftStore() *SessionDraftStore {
	return &SessionDraftStore{
		entries: make(map[string][]byte),
	}
}

func (s *SessionDraftStore) Load(tripID string) (Step, *BookingDraft, bool) {
	s.mu.Lock()
	raw, ok := s.entries[tripID]
	s.mu.Unlock()

	if !ok {
		return StepTravelerInfo, nil, false
	}

	var stored StoredDraft
	if err := json.Unmarshal(raw, &stored); err != nil {
		// Fail open: a corrupt entry restarts the flow at step 1.
		return StepTravelerInfo, nil, false
	}

	if stored.Data == nil || stored.Step < StepTravelerInfo || stored.Step > StepPayment {
		return StepTravelerInfo, nil, false
	}

	return stored.Step, stored.Data, true
}

func (s *SessionDraftStore) Save(tripID string, step Step, draft *BookingDraft) {
	raw, err := json.Marshal(StoredDraft{Step: step, Data: draft})
	if err != nil {
		return
	}

	s.mu.Lock()
	s.entries[tripID] = raw
	s.mu.Unlock()
}

func (s *SessionDraftStore) Clear(tripID string) {
	s.mu.Lock()
	delete(s.entries, tripID)
	s.mu.Unlock()
}

// Put stores a raw entry directly, bypassing encoding. Test hook for the
// malformed-data path.
func (s *SessionDraftStore) Put(tripID string, raw []byte) {
	s.mu.Lock()
	s.entries[tripID] = raw
	s.mu.Unlock()
}
