package storage

import (
	goerrors "errors"
	"fmt"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const uploadPrefix = "upload:"

type IUploadRepository interface {
	Record(name, mimeType, owner string, at time.Time) error
	IsOwner(name, identity string) (bool, error)
}

// UploadRepository remembers who uploaded each stored file.
// Identical content shares one record, every uploader is an owner.
type UploadRepository struct {
	db *badger.DB
}

func NewUploadRepository(db *badger.DB) *UploadRepository {
	return &UploadRepository{db: db}
}

type DiskUpload struct {
	Name      string   `cbor:"name"`
	MimeType  string   `cbor:"mime_type"`
	Owners    []string `cbor:"owners"`
	CreatedAt int64    `cbor:"created_at"`
}

// Record adds owner to the upload "upload:{name}", creating it on first use.
func (u *UploadRepository) Record(name, mimeType, owner string, at time.Time) error {
	return u.db.Update(func(txn *badger.Txn) error {
		d, err := getUpload(txn, name)
		if err != nil && !goerrors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		if goerrors.Is(err, badger.ErrKeyNotFound) {
			d = DiskUpload{Name: name, MimeType: mimeType, CreatedAt: at.UnixNano()}
		}
		if slices.Contains(d.Owners, owner) {
			return nil
		}
		d.Owners = append(d.Owners, owner)
		data, err := marshal(d)
		if err != nil {
			return fmt.Errorf("marshal upload: %w", err)
		}
		return txn.Set(uploadKey(name), data)
	})
}

func (u *UploadRepository) IsOwner(name, identity string) (bool, error) {
	var owner bool
	err := u.db.View(func(txn *badger.Txn) error {
		d, err := getUpload(txn, name)
		if goerrors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		owner = slices.Contains(d.Owners, identity)
		return nil
	})
	return owner, err
}

func getUpload(txn *badger.Txn, name string) (DiskUpload, error) {
	var d DiskUpload
	item, err := txn.Get(uploadKey(name))
	if err != nil {
		return d, err
	}
	err = item.Value(func(val []byte) error {
		return unmarshal(val, &d)
	})
	return d, err
}

func uploadKey(name string) []byte {
	return []byte(uploadPrefix + name)
}
