package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/tteslee/fundamental/internal"
)

// FileStorage keeps records and users in memory, indexed by owner, and
// flushes them to JSON files through debounced background workers. Writes
// land in a temp file first and are renamed into place.
type FileStorage struct {
	records         map[string]*internal.Record   // id -> Record
	userRecordIndex map[string][]*internal.Record // userID -> records sorted descending by start
	users           map[string]*internal.User     // id -> User
	mu              sync.RWMutex

	recordsFile      string
	usersFile        string
	saveRecordsChan  chan struct{}
	saveUsersChan    chan struct{}
	shutdownChan     chan struct{}
	saveRecordsDelay time.Duration
	saveUsersDelay   time.Duration
	logger           internal.Logger
}

func NewFileStorage(recordsFile, usersFile string, logger internal.Logger) (*FileStorage, error) {
	s := &FileStorage{
		records:          make(map[string]*internal.Record),
		userRecordIndex:  make(map[string][]*internal.Record),
		users:            make(map[string]*internal.User),
		recordsFile:      recordsFile,
		usersFile:        usersFile,
		saveRecordsChan:  make(chan struct{}, 1),
		saveUsersChan:    make(chan struct{}, 1),
		shutdownChan:     make(chan struct{}),
		saveRecordsDelay: 500 * time.Millisecond,
		saveUsersDelay:   500 * time.Millisecond,
		logger:           logger,
	}

	if err := s.loadRecords(); err != nil {
		logger.Errorf("storage: failed to load records: %v", err)
		return nil, err
	}
	if err := s.loadUsers(); err != nil {
		logger.Errorf("storage: failed to load users: %v", err)
		return nil, err
	}

	go s.saveRecordsWorker()
	go s.saveUsersWorker()

	return s, nil
}

func (s *FileStorage) loadRecords() error {
	file, err := os.Open(s.recordsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	var records []*internal.Record
	if err := json.NewDecoder(file).Decode(&records); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		s.records[r.ID] = r
		s.userRecordIndex[r.UserID] = append(s.userRecordIndex[r.UserID], r)
	}
	for userID := range s.userRecordIndex {
		sortDescending(s.userRecordIndex[userID])
	}
	return nil
}

func (s *FileStorage) loadUsers() error {
	file, err := os.Open(s.usersFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	var users []*internal.User
	if err := json.NewDecoder(file).Decode(&users); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range users {
		s.users[u.ID] = u
	}
	return nil
}

func atomicWriteFileJSON(filePath string, data interface{}) error {
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}

func (s *FileStorage) saveRecords() error {
	s.mu.RLock()
	records := make([]*internal.Record, 0, len(s.records))
	for _, r := range s.records {
		records = append(records, r)
	}
	s.mu.RUnlock()
	return atomicWriteFileJSON(s.recordsFile, records)
}

func (s *FileStorage) saveUsers() error {
	s.mu.RLock()
	users := make([]*internal.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	s.mu.RUnlock()
	return atomicWriteFileJSON(s.usersFile, users)
}

func (s *FileStorage) saveRecordsWorker() {
	timer := time.NewTimer(s.saveRecordsDelay)
	defer timer.Stop()

	for {
		select {
		case <-s.saveRecordsChan:
			timer.Reset(s.saveRecordsDelay)
		case <-timer.C:
			if err := s.saveRecords(); err != nil {
				s.logger.Errorf("storage: error saving records: %v", err)
			}
		case <-s.shutdownChan:
			return
		}
	}
}

func (s *FileStorage) saveUsersWorker() {
	timer := time.NewTimer(s.saveUsersDelay)
	defer timer.Stop()

	for {
		select {
		case <-s.saveUsersChan:
			timer.Reset(s.saveUsersDelay)
		case <-timer.C:
			if err := s.saveUsers(); err != nil {
				s.logger.Errorf("storage: error saving users: %v", err)
			}
		case <-s.shutdownChan:
			return
		}
	}
}

// Close stops the save workers and flushes pending data synchronously.
func (s *FileStorage) Close() error {
	close(s.shutdownChan)
	if err := s.saveRecords(); err != nil {
		return err
	}
	return s.saveUsers()
}

func (s *FileStorage) notifyRecordsChanged() {
	select {
	case s.saveRecordsChan <- struct{}{}:
	default:
	}
}

// --- RecordRepository ---

func (s *FileStorage) InsertRecord(ctx context.Context, rec *internal.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[rec.ID] = rec
	s.userRecordIndex[rec.UserID] = append(s.userRecordIndex[rec.UserID], rec)
	sortDescending(s.userRecordIndex[rec.UserID])
	s.notifyRecordsChanged()
	return nil
}

func (s *FileStorage) ListRecords(ctx context.Context, userID string) ([]internal.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recordsPtr, ok := s.userRecordIndex[userID]
	if !ok {
		return []internal.Record{}, nil
	}
	records := make([]internal.Record, len(recordsPtr))
	for i, r := range recordsPtr {
		records[i] = *r
	}
	return records, nil
}

func (s *FileStorage) ListRecordsByRange(ctx context.Context, userID string, from, to time.Time) ([]internal.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var records []internal.Record
	for _, r := range s.userRecordIndex[userID] {
		if r.StartTime.Before(from) || r.StartTime.After(to) {
			continue
		}
		records = append(records, *r)
	}
	// Index is descending; ranges are served ascending.
	sort.Slice(records, func(i, j int) bool {
		return records[i].StartTime.Before(records[j].StartTime)
	})
	return records, nil
}

func (s *FileStorage) UpdateRecord(ctx context.Context, id, userID string, fields RecordFields) (*internal.Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok || rec.UserID != userID {
		return nil, false, nil
	}

	rec.Type = fields.Type
	rec.StartTime = fields.StartTime
	rec.EndTime = fields.EndTime
	rec.Duration = fields.Duration
	rec.Memo = fields.Memo
	rec.UpdatedAt = time.Now()
	sortDescending(s.userRecordIndex[userID])

	updated := *rec
	s.notifyRecordsChanged()
	return &updated, true, nil
}

func (s *FileStorage) DeleteRecord(ctx context.Context, id, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok || rec.UserID != userID {
		return false, nil
	}

	delete(s.records, id)
	index := s.userRecordIndex[userID]
	for i, r := range index {
		if r.ID == id {
			s.userRecordIndex[userID] = append(index[:i], index[i+1:]...)
			break
		}
	}
	s.notifyRecordsChanged()
	return true, nil
}

// --- UserRepository ---

func (s *FileStorage) UpsertUser(ctx context.Context, user *internal.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.users[user.ID]; ok {
		existing.Email = user.Email
		existing.Name = user.Name
		existing.UpdatedAt = user.UpdatedAt
	} else {
		u := *user
		s.users[user.ID] = &u
	}
	select {
	case s.saveUsersChan <- struct{}{}:
	default:
	}
	return nil
}

func (s *FileStorage) GetUser(ctx context.Context, id string) (*internal.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, errors.New("storage: user not found")
	}
	user := *u
	return &user, nil
}

func sortDescending(records []*internal.Record) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].StartTime.After(records[j].StartTime)
	})
}

// --- Compile-time assertions ---
var _ RecordRepository = (*FileStorage)(nil)
var _ UserRepository = (*FileStorage)(nil)
