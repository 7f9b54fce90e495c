package service

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/zayneb-web/OCR-SmartQuittance-Extractor/model"
)

const quittanceBucket = "quittances"

// BoltStore is a bbolt-backed Store. Records survive restarts, which also
// means a record stuck in processing after a crash stays visible instead of
// silently vanishing with the process.
type BoltStore struct {
	db *bbolt.DB
}

// NewBoltStore opens (or creates) the database file at path.
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening bolt database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(quittanceBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Save(q *model.Quittance) error {
	q.UpdatedAt = time.Now()
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(quittanceBucket))
		data, err := json.Marshal(q)
		if err != nil {
			return fmt.Errorf("marshaling quittance: %w", err)
		}
		return bucket.Put([]byte(q.ID), data)
	})
}

func (s *BoltStore) Get(id string) (*model.Quittance, error) {
	var q *model.Quittance
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(quittanceBucket))
		data := bucket.Get([]byte(id))
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &q)
	})
	if err != nil {
		return nil, fmt.Errorf("reading quittance: %w", err)
	}
	return q, nil
}

func (s *BoltStore) GetByUser(userID string) ([]*model.Quittance, error) {
	var result []*model.Quittance
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(quittanceBucket))
		return bucket.ForEach(func(k, v []byte) error {
			var q model.Quittance
			if err := json.Unmarshal(v, &q); err != nil {
				return fmt.Errorf("unmarshaling quittance %s: %w", k, err)
			}
			if q.UserID == userID {
				result = append(result, &q)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *BoltStore) Delete(id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(quittanceBucket)).Delete([]byte(id))
	})
}

func (s *BoltStore) Count() (int, error) {
	var count int
	err := s.db.View(func(tx *bbolt.Tx) error {
		count = tx.Bucket([]byte(quittanceBucket)).Stats().KeyN
		return nil
	})
	return count, err
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
