package manager

import (
	"slices"

	"github.com/streamrelay/relay/pkg/structs"
)

// None of the functions below lock. Callers hold the server mutex so a
// membership change and the fan-out decision that follows it observe the
// same state.

// NewRoomStore returns an empty room registry.
func NewRoomStore() *structs.RoomStore {
	return &structs.RoomStore{Rooms: make(map[string]map[string]struct{})}
}

// Join adds a peer to a room, creating the room if it doesn't exist.
// It returns false if the peer was already a member, in which case the set is unchanged.
func Join(r *structs.RoomStore, roomid string, peerid string) bool {
	members, exists := r.Rooms[roomid]
	if !exists {
		members = make(map[string]struct{})
		r.Rooms[roomid] = members
	}
	if _, joined := members[peerid]; joined {
		return false
	}
	members[peerid] = struct{}{}
	return true
}

// Leave removes a peer from a room and deletes the room once it is empty.
// It does nothing if the room or the membership doesn't exist, and reports
// whether the peer was removed.
func Leave(r *structs.RoomStore, roomid string, peerid string) bool {
	members, exists := r.Rooms[roomid]
	if !exists {
		return false
	}
	if _, joined := members[peerid]; !joined {
		return false
	}
	delete(members, peerid)
	if len(members) == 0 {
		delete(r.Rooms, roomid)
	}
	return true
}

// LeaveAll removes a peer from every room it belongs to, applying the same
// empty-room rule as Leave. It returns the rooms the peer was removed from,
// sorted, so a second call for the same peer returns nothing.
func LeaveAll(r *structs.RoomStore, peerid string) []string {
	var left []string
	for roomid := range r.Rooms {
		if Leave(r, roomid, peerid) {
			left = append(left, roomid)
		}
	}
	slices.Sort(left)
	return left
}

// MembersOf returns a sorted copy of a room's members, or an empty slice if
// the room doesn't exist.
func MembersOf(r *structs.RoomStore, roomid string) []string {
	members := r.Rooms[roomid]
	ids := make([]string, 0, len(members))
	for id := range members {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Rooms returns the ids of all rooms, sorted.
func Rooms(r *structs.RoomStore) []string {
	ids := make([]string, 0, len(r.Rooms))
	for id := range r.Rooms {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func DoesRoomExist(r *structs.RoomStore, roomid string) bool {
	_, exists := r.Rooms[roomid]
	return exists
}

func IsPeerInRoom(r *structs.RoomStore, roomid string, peerid string) bool {
	_, joined := r.Rooms[roomid][peerid]
	return joined
}

// Summaries returns the member count of every room, sorted by room id.
func Summaries(r *structs.RoomStore) []structs.RoomSummary {
	summaries := make([]structs.RoomSummary, 0, len(r.Rooms))
	for _, id := range Rooms(r) {
		summaries = append(summaries, structs.RoomSummary{RoomID: id, Members: len(r.Rooms[id])})
	}
	return summaries
}
