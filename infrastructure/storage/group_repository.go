package storage

import (
	"chat-relay/domain/chat"
	goerrors "errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

const groupInfoKey = "group:info"

type IGroupRepository interface {
	GetGroupInfo() (chat.GroupInfo, error)
	SaveGroupInfo(info chat.GroupInfo) error
}

// GroupRepository keeps the group channel metadata.
// defaultName is returned until an admin saves a name.
type GroupRepository struct {
	db          *badger.DB
	defaultName string
}

func NewGroupRepository(db *badger.DB, defaultName string) *GroupRepository {
	return &GroupRepository{db: db, defaultName: defaultName}
}

type DiskGroupInfo struct {
	Name string `cbor:"name"`
	Icon string `cbor:"icon"`
}

func (g *GroupRepository) GetGroupInfo() (chat.GroupInfo, error) {
	info := chat.GroupInfo{Name: g.defaultName}
	err := g.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(groupInfoKey))
		if goerrors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			var d DiskGroupInfo
			if err := unmarshal(val, &d); err != nil {
				return err
			}
			if d.Name != "" {
				info.Name = d.Name
			}
			info.Icon = d.Icon
			return nil
		})
	})
	return info, err
}

func (g *GroupRepository) SaveGroupInfo(info chat.GroupInfo) error {
	data, err := marshal(DiskGroupInfo{Name: info.Name, Icon: info.Icon})
	if err != nil {
		return fmt.Errorf("marshal group info: %w", err)
	}
	return g.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(groupInfoKey), data)
	})
}
