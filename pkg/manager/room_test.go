package manager

import (
	"slices"
	"testing"
)

func TestJoinCreatesRoomAndIsIdempotent(t *testing.T) {
	r := NewRoomStore()

	if !Join(r, "X", "A") {
		t.Fatal("first join should report a change")
	}
	if Join(r, "X", "A") {
		t.Fatal("second join should report no change")
	}
	if got := MembersOf(r, "X"); !slices.Equal(got, []string{"A"}) {
		t.Fatalf("members = %v", got)
	}
	if !IsPeerInRoom(r, "X", "A") || IsPeerInRoom(r, "X", "B") {
		t.Fatal("IsPeerInRoom disagrees with membership")
	}
}

func TestLeaveDeletesEmptyRoom(t *testing.T) {
	r := NewRoomStore()
	Join(r, "X", "A")
	Join(r, "X", "B")

	if !Leave(r, "X", "A") {
		t.Fatal("leave should report removal")
	}
	if !DoesRoomExist(r, "X") {
		t.Fatal("room with a remaining member must survive")
	}
	if Leave(r, "X", "A") {
		t.Fatal("leaving twice should be a no-op")
	}
	Leave(r, "X", "B")
	if DoesRoomExist(r, "X") {
		t.Fatal("empty room should be deleted")
	}
	if Leave(r, "missing", "A") {
		t.Fatal("leaving an unknown room should be a no-op")
	}
}

func TestLeaveAll(t *testing.T) {
	r := NewRoomStore()
	Join(r, "Y", "A")
	Join(r, "X", "A")
	Join(r, "X", "B")
	Join(r, "Z", "B")

	if got := LeaveAll(r, "A"); !slices.Equal(got, []string{"X", "Y"}) {
		t.Fatalf("left = %v", got)
	}
	if got := LeaveAll(r, "A"); len(got) != 0 {
		t.Fatalf("second LeaveAll = %v", got)
	}
	if got := Rooms(r); !slices.Equal(got, []string{"X", "Z"}) {
		t.Fatalf("rooms = %v", got)
	}
}

func TestMembersOfReturnsCopy(t *testing.T) {
	r := NewRoomStore()
	Join(r, "X", "B")
	Join(r, "X", "A")

	members := MembersOf(r, "X")
	if !slices.Equal(members, []string{"A", "B"}) {
		t.Fatalf("members = %v", members)
	}
	members[0] = "mutated"
	if !IsPeerInRoom(r, "X", "A") {
		t.Fatal("mutating the returned slice changed the registry")
	}

	if got := MembersOf(r, "missing"); got == nil || len(got) != 0 {
		t.Fatalf("unknown room members = %#v, want empty", got)
	}
}

func TestSummaries(t *testing.T) {
	r := NewRoomStore()
	if got := Summaries(r); len(got) != 0 {
		t.Fatalf("summaries = %+v", got)
	}

	Join(r, "b", "A")
	Join(r, "a", "A")
	Join(r, "a", "B")

	got := Summaries(r)
	if len(got) != 2 || got[0].RoomID != "a" || got[0].Members != 2 || got[1].RoomID != "b" || got[1].Members != 1 {
		t.Fatalf("summaries = %+v", got)
	}
}
