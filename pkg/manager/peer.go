package manager

import (
	"fmt"

	"github.com/streamrelay/relay/pkg/structs"
)

// NewPeerStore returns an empty connection directory.
func NewPeerStore() *structs.PeerStore {
	return &structs.PeerStore{Peers: make(map[string]structs.Conn)}
}

// WithoutPeer returns the ids in the given slice that are not equal to the
// given id. The returned slice is new and the original is left untouched.
func WithoutPeer(ids []string, id string) []string {
	var b []string
	for _, x := range ids {
		if x != id {
			b = append(b, x)
		}
	}
	return b
}

// AddPeer registers a connection under its peer id.
// It returns an error if a connection with that id is already registered.
func AddPeer(p *structs.PeerStore, conn structs.Conn) error {
	if DoesPeerExist(p, conn.PeerID()) {
		return fmt.Errorf("peer %s already connected", conn.PeerID())
	}
	p.Peers[conn.PeerID()] = conn
	return nil
}

// RemovePeer drops a connection from the directory and reports whether it was present.
func RemovePeer(p *structs.PeerStore, id string) bool {
	if !DoesPeerExist(p, id) {
		return false
	}
	delete(p.Peers, id)
	return true
}

// GetPeer returns the connection for the given peer id, or nil if no such peer is connected.
func GetPeer(p *structs.PeerStore, id string) structs.Conn {
	return p.Peers[id]
}

func DoesPeerExist(p *structs.PeerStore, id string) bool {
	_, exists := p.Peers[id]
	return exists
}

// GetPeers resolves ids to connections, skipping ids with no live connection.
func GetPeers(p *structs.PeerStore, ids []string) []structs.Conn {
	conns := make([]structs.Conn, 0, len(ids))
	for _, id := range ids {
		if conn := p.Peers[id]; conn != nil {
			conns = append(conns, conn)
		}
	}
	return conns
}
