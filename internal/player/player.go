package player

// Connection is an interface that abstracts the websocket connection.
type Connection interface {
	WriteMessage(messageType int, data []byte) error
	ReadMessage() (int, []byte, error)
	Close() error
}

// Player represents the human side of a room.
type Player struct {
	ID   string
	Conn Connection
}

// NewPlayer creates a new player bound to a connection.
func NewPlayer(id string, conn Connection) *Player {
	return &Player{
		ID:   id,
		Conn: conn,
	}
}
