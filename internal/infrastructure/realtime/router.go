package realtime

import (
	"sync"
)

// Router tracks websocket sessions and the chat rooms they listen to.
// A user may hold several sessions at once (one per tab or device); each
// session joins rooms independently.
type Router struct {
	mu           sync.RWMutex
	sessions     map[string]*Connection            // sessionID -> connection
	userSessions map[string]map[string]struct{}    // userID -> set of sessionIDs
	rooms        map[string]map[string]*Connection // roomID -> sessionID -> connection
	sessionRooms map[string]map[string]struct{}    // sessionID -> set of roomIDs
}

func NewRouter() *Router {
	return &Router{
		sessions:     make(map[string]*Connection),
		userSessions: make(map[string]map[string]struct{}),
		rooms:        make(map[string]map[string]*Connection),
		sessionRooms: make(map[string]map[string]struct{}),
	}
}

// Attach registers the connection and starts its write loop.
func (r *Router) Attach(conn *Connection) {
	r.mu.Lock()
	r.sessions[conn.ID] = conn
	set := r.userSessions[conn.UserID]
	if set == nil {
		set = make(map[string]struct{})
		r.userSessions[conn.UserID] = set
	}
	set[conn.ID] = struct{}{}
	r.mu.Unlock()

	conn.Start()
}

// Detach forgets the connection and all its room memberships.
func (r *Router) Detach(conn *Connection) {
	r.mu.Lock()
	r.detachLocked(conn.ID)
	r.mu.Unlock()
}

// Join subscribes an attached connection to the room. Unknown connections are ignored.
func (r *Router) Join(roomID string, conn *Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[conn.ID]; !ok {
		return
	}

	room := r.rooms[roomID]
	if room == nil {
		room = make(map[string]*Connection)
		r.rooms[roomID] = room
	}
	room[conn.ID] = conn

	memberships := r.sessionRooms[conn.ID]
	if memberships == nil {
		memberships = make(map[string]struct{})
		r.sessionRooms[conn.ID] = memberships
	}
	memberships[roomID] = struct{}{}
}

func (r *Router) Leave(roomID string, conn *Connection) {
	r.mu.Lock()
	r.leaveLocked(roomID, conn.ID)
	r.mu.Unlock()
}

// Broadcast writes payload to every session subscribed to the room and
// returns how many accepted it.
func (r *Router) Broadcast(roomID string, payload []byte) int {
	r.mu.RLock()
	members := make([]*Connection, 0, len(r.rooms[roomID]))
	for _, conn := range r.rooms[roomID] {
		members = append(members, conn)
	}
	r.mu.RUnlock()

	delivered := 0
	for _, conn := range members {
		if err := conn.Send(payload); err == nil {
			delivered++
		}
	}
	return delivered
}

// NotifyUser delivers payload to every session of the user.
func (r *Router) NotifyUser(userID string, payload []byte) int {
	r.mu.RLock()
	conns := make([]*Connection, 0, len(r.userSessions[userID]))
	for sessionID := range r.userSessions[userID] {
		if conn := r.sessions[sessionID]; conn != nil {
			conns = append(conns, conn)
		}
	}
	r.mu.RUnlock()

	delivered := 0
	for _, conn := range conns {
		if conn.Send(payload) == nil {
			delivered++
		}
	}
	return delivered
}

// Members returns the number of sessions subscribed to the room.
func (r *Router) Members(roomID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms[roomID])
}

// Close terminates all tracked connections and clears router state.
func (r *Router) Close() {
	r.mu.Lock()
	sessions := make([]*Connection, 0, len(r.sessions))
	for _, conn := range r.sessions {
		sessions = append(sessions, conn)
	}
	r.sessions = make(map[string]*Connection)
	r.userSessions = make(map[string]map[string]struct{})
	r.rooms = make(map[string]map[string]*Connection)
	r.sessionRooms = make(map[string]map[string]struct{})
	r.mu.Unlock()

	for _, conn := range sessions {
		conn.Close(1001, "router shutdown")
	}
}

func (r *Router) detachLocked(sessionID string) {
	conn, ok := r.sessions[sessionID]
	if !ok {
		return
	}
	delete(r.sessions, sessionID)

	if set, ok := r.userSessions[conn.UserID]; ok {
		delete(set, sessionID)
		if len(set) == 0 {
			delete(r.userSessions, conn.UserID)
		}
	}

	for roomID := range r.sessionRooms[sessionID] {
		r.leaveLocked(roomID, sessionID)
	}
	delete(r.sessionRooms, sessionID)
}

func (r *Router) leaveLocked(roomID string, sessionID string) {
	if sessionID == "" {
		return
	}
	if room := r.rooms[roomID]; room != nil {
		delete(room, sessionID)
		if len(room) == 0 {
			delete(r.rooms, roomID)
		}
	}
	if memberships, ok := r.sessionRooms[sessionID]; ok {
		delete(memberships, roomID)
	}
}
