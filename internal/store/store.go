// Package store provides a BoltDB-backed record of received beacons.
package store

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
	bolt "go.etcd.io/bbolt"
)

var beaconsBucket = []byte("beacons")

// Sighting is a single beacon as seen by the listener.
type Sighting struct {
	Hostname   string
	Username   string
	RemoteAddr string
	UserAgent  string
}

// Key identifies a beacon source as hostname\username.
func (s Sighting) Key() string {
	return s.Hostname + `\` + s.Username
}

// BeaconRecord is the persisted state for one hostname/username source.
type BeaconRecord struct {
	Hostname   string    `msgpack:"hostname"`
	Username   string    `msgpack:"username"`
	RemoteAddr string    `msgpack:"remote_addr"`
	UserAgent  string    `msgpack:"user_agent"`
	FirstSeen  time.Time `msgpack:"first_seen"`
	LastSeen   time.Time `msgpack:"last_seen"`
	Count      uint64    `msgpack:"count"`
}

// Store wraps a bbolt database for beacon records.
type Store struct {
	db  *bolt.DB
	mu  sync.RWMutex
	log zerolog.Logger
}

// New opens or creates a BoltDB file at the given path.
func New(path string, log zerolog.Logger) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(beaconsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating beacons bucket: %w", err)
	}

	return &Store{db: db, log: log}, nil
}

// Close closes the underlying BoltDB.
func (s *Store) Close() error {
	return s.db.Close()
}

// Upsert records a sighting, creating the record on first contact.
func (s *Store) Upsert(seen Sighting) (BeaconRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var record BeaconRecord
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(beaconsBucket)
		key := []byte(seen.Key())
		now := time.Now()

		existing := b.Get(key)
		if existing != nil {
			if err := msgpack.Unmarshal(existing, &record); err != nil {
				s.log.Warn().Err(err).Str("key", seen.Key()).Msg("Failed to unmarshal existing record, overwriting")
				record = BeaconRecord{FirstSeen: now}
			}
			record.Count++
		} else {
			record = BeaconRecord{FirstSeen: now, Count: 1}
			s.log.Info().
				Str("hostname", seen.Hostname).
				Str("username", seen.Username).
				Str("remote", seen.RemoteAddr).
				Msg("New beacon source")
		}

		record.Hostname = seen.Hostname
		record.Username = seen.Username
		record.RemoteAddr = seen.RemoteAddr
		record.UserAgent = seen.UserAgent
		record.LastSeen = now

		data, err := msgpack.Marshal(&record)
		if err != nil {
			return fmt.Errorf("marshaling beacon record: %w", err)
		}
		return b.Put(key, data)
	})
	return record, err
}

// Get returns the record for hostname\username.
func (s *Store) Get(hostname, username string) (*BeaconRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := Sighting{Hostname: hostname, Username: username}.Key()
	var record *BeaconRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(beaconsBucket).Get([]byte(key))
		if v == nil {
			return fmt.Errorf("beacon source %s not found", key)
		}
		record = &BeaconRecord{}
		return msgpack.Unmarshal(v, record)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// GetAll returns all records, most recently seen first.
func (s *Store) GetAll() ([]BeaconRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var records []BeaconRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(beaconsBucket)
		return b.ForEach(func(k, v []byte) error {
			var record BeaconRecord
			if err := msgpack.Unmarshal(v, &record); err != nil {
				s.log.Warn().Err(err).Str("key", string(k)).Msg("Skipping corrupt record")
				return nil
			}
			records = append(records, record)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].LastSeen.After(records[j].LastSeen)
	})
	return records, nil
}
