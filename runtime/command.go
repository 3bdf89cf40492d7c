package runtime

import (
	"chat-relay/contract"

	"github.com/google/uuid"
)

// Command is a realtime request issued by one connection.
// Every command carries the connection it came from so the hub can answer it
// and refuse requests from connections that never joined.
type Command interface {
	Origin() contract.Connection
	Action() string
}

// JoinCommand announces identity on a freshly opened connection.
// Session is the identity authenticated when the connection was opened.
type JoinCommand struct {
	Conn     contract.Connection
	Session  string
	Identity string
}

type SendCommand struct {
	Conn contract.Connection
	From string
	To   string
	Text string
}

type FileMessageCommand struct {
	Conn     contract.Connection
	From     string
	To       string
	FilePath string
	Filename string
}

type SeenCommand struct {
	Conn      contract.Connection
	Identity  string
	MessageID uuid.UUID
}

type DeleteCommand struct {
	Conn      contract.Connection
	Identity  string
	MessageID uuid.UUID
}

// DisconnectCommand is issued by the transport when the connection is gone.
type DisconnectCommand struct {
	Conn     contract.Connection
	Identity string
}

func (c JoinCommand) Origin() contract.Connection        { return c.Conn }
func (c SendCommand) Origin() contract.Connection        { return c.Conn }
func (c FileMessageCommand) Origin() contract.Connection { return c.Conn }
func (c SeenCommand) Origin() contract.Connection        { return c.Conn }
func (c DeleteCommand) Origin() contract.Connection      { return c.Conn }
func (c DisconnectCommand) Origin() contract.Connection  { return c.Conn }

func (JoinCommand) Action() string        { return "join" }
func (SendCommand) Action() string        { return "send" }
func (FileMessageCommand) Action() string { return "fileMessage" }
func (SeenCommand) Action() string        { return "seen" }
func (DeleteCommand) Action() string      { return "delete" }
func (DisconnectCommand) Action() string  { return "disconnect" }
