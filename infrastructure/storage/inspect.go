package storage

import (
	"chat-relay/domain/chat"
	"fmt"
	"strings"
	"time"
)

// Record is a human readable view of one stored key. Ciphertext is never opened.
type Record struct {
	Key       string
	Type      string
	Namespace string
	EntityID  string
	At        time.Time
	Detail    string
}

// Describe decodes a raw key/value pair as the repositories wrote it.
func Describe(key string, val []byte) Record {
	record := Record{Key: key, Type: "RAW", Namespace: "default", Detail: fmt.Sprintf("Size: %d bytes", len(val))}

	switch {
	case strings.HasPrefix(key, messageIndexPrefix):
		record.Type = "INDEX"
		record.EntityID = strings.TrimPrefix(key, messageIndexPrefix)
		record.Detail = "-> " + string(val)
	case strings.HasPrefix(key, messagePrefix):
		var d DiskMessage
		if err := unmarshal(val, &d); err != nil {
			record.Detail = "Error: unmarshal failed"
			return record
		}
		record.Type = "MESSAGE"
		record.Namespace = d.To
		record.EntityID = d.ID
		record.At = time.Unix(0, d.At)
		if chat.Kind(d.Kind) == chat.KindFile {
			record.Detail = fmt.Sprintf("%s -> %s file %s, seen by %s", d.From, d.To, d.Filename, strings.Join(d.SeenBy, ","))
		} else {
			record.Detail = fmt.Sprintf("%s -> %s %d sealed bytes, seen by %s", d.From, d.To, len(d.Ciphertext), strings.Join(d.SeenBy, ","))
		}
	case strings.HasPrefix(key, userPrefix):
		var d DiskUser
		if err := unmarshal(val, &d); err != nil {
			record.Detail = "Error: unmarshal failed"
			return record
		}
		record.Type = "USER"
		record.Namespace = d.Role
		record.EntityID = d.Username
		record.At = time.Unix(d.CreatedAt, 0)
		record.Detail = fmt.Sprintf("status=%s locked=%t mail=%t", d.Status, d.Locked, d.EmailNotifications)
	case strings.HasPrefix(key, notificationPrefix):
		var d DiskNotification
		if err := unmarshal(val, &d); err != nil {
			record.Detail = "Error: unmarshal failed"
			return record
		}
		record.Type = "NOTIFICATION"
		record.Namespace = d.Username
		record.EntityID = d.ID
		record.At = time.Unix(0, d.CreatedAt)
		record.Detail = fmt.Sprintf("[%s] read=%t %s", d.Type, d.Read, d.Message)
	case strings.HasPrefix(key, uploadPrefix):
		var d DiskUpload
		if err := unmarshal(val, &d); err != nil {
			record.Detail = "Error: unmarshal failed"
			return record
		}
		record.Type = "UPLOAD"
		record.EntityID = d.Name
		record.At = time.Unix(0, d.CreatedAt)
		record.Detail = fmt.Sprintf("%s owners=%s", d.MimeType, strings.Join(d.Owners, ","))
	case key == groupInfoKey:
		var d DiskGroupInfo
		if err := unmarshal(val, &d); err != nil {
			record.Detail = "Error: unmarshal failed"
			return record
		}
		record.Type = "GROUP"
		record.Detail = fmt.Sprintf("%s (%s)", d.Name, d.Icon)
	}
	return record
}
