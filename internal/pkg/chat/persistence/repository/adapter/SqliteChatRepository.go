package adapter

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"recovery-chat/internal/infrastructure/database"
	chat "recovery-chat/internal/pkg/chat/application/domain"
	repository "recovery-chat/internal/pkg/chat/persistence/repository/port"
)

// SqliteChatRepository stores chat rooms and messages in SQLite.
// Timestamps are kept as unix nanoseconds so ordering is numeric.
type SqliteChatRepository struct {
	db *sql.DB
}

func NewSqliteChatRepository(db *sql.DB) *SqliteChatRepository {
	return &SqliteChatRepository{db: db}
}

var _ repository.ChatRepository = (*SqliteChatRepository)(nil)

var errNilDB = errors.New("SqliteChatRepository: nil db")

func (r *SqliteChatRepository) CreateRoom(ctx context.Context, room chat.ChatRoom) error {
	if r == nil || r.db == nil {
		return errNilDB
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO chat_rooms (id, mentor_id, patient_id, created_at)
		VALUES (?, ?, ?, ?)
	`, room.ID, room.MentorID, room.PatientID, room.CreatedAt.UnixNano())
	if database.IsSQLiteUniqueViolation(err) {
		return chat.ErrConflict
	}
	return err
}

func (r *SqliteChatRepository) GetRoom(ctx context.Context, roomID string) (chat.ChatRoom, error) {
	if r == nil || r.db == nil {
		return chat.ChatRoom{}, errNilDB
	}
	row := r.db.QueryRowContext(ctx, `
		SELECT id, mentor_id, patient_id, created_at
		FROM chat_rooms
		WHERE id = ?
	`, roomID)
	return scanSqliteRoom(row)
}

func (r *SqliteChatRepository) FindRoomByPair(ctx context.Context, mentorID string, patientID string) (chat.ChatRoom, error) {
	if r == nil || r.db == nil {
		return chat.ChatRoom{}, errNilDB
	}
	row := r.db.QueryRowContext(ctx, `
		SELECT id, mentor_id, patient_id, created_at
		FROM chat_rooms
		WHERE mentor_id = ? AND patient_id = ?
	`, mentorID, patientID)
	return scanSqliteRoom(row)
}

func (r *SqliteChatRepository) ListRoomsByParticipant(ctx context.Context, participantID string, role chat.Role) ([]chat.ChatRoom, error) {
	if r == nil || r.db == nil {
		return nil, errNilDB
	}
	column, err := roleColumn(role)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, mentor_id, patient_id, created_at
		FROM chat_rooms
		WHERE `+column+` = ?
		ORDER BY created_at DESC, id DESC
	`, participantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rooms := make([]chat.ChatRoom, 0)
	for rows.Next() {
		room, err := scanSqliteRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *SqliteChatRepository) SaveMessage(ctx context.Context, m chat.Message) error {
	if r == nil || r.db == nil {
		return errNilDB
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO messages (id, chat_room_id, sender_id, content, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, m.ID, m.ChatRoomID, m.SenderID, m.Content, m.CreatedAt.UnixNano())
	return err
}

func (r *SqliteChatRepository) ListMessages(ctx context.Context, roomID string, since *time.Time) ([]chat.Message, error) {
	if r == nil || r.db == nil {
		return nil, errNilDB
	}
	query := `
		SELECT id, chat_room_id, sender_id, content, created_at
		FROM messages
		WHERE chat_room_id = ?`
	args := []any{roomID}
	if since != nil {
		query += ` AND created_at > ?`
		args = append(args, since.UTC().UnixNano())
	}
	query += ` ORDER BY created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	msgs := make([]chat.Message, 0)
	for rows.Next() {
		msg, err := scanSqliteMessage(rows)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *SqliteChatRepository) LatestMessage(ctx context.Context, roomID string) (*chat.Message, error) {
	if r == nil || r.db == nil {
		return nil, errNilDB
	}
	row := r.db.QueryRowContext(ctx, `
		SELECT id, chat_room_id, sender_id, content, created_at
		FROM messages
		WHERE chat_room_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`, roomID)
	msg, err := scanSqliteMessage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *SqliteChatRepository) CountMessagesNotFrom(ctx context.Context, roomID string, viewerID string) (int, error) {
	if r == nil || r.db == nil {
		return 0, errNilDB
	}
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT count(*)
		FROM messages
		WHERE chat_room_id = ? AND sender_id <> ?
	`, roomID, viewerID).Scan(&n)
	return n, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSqliteRoom(row scanner) (chat.ChatRoom, error) {
	var (
		room chat.ChatRoom
		at   int64
	)
	err := row.Scan(&room.ID, &room.MentorID, &room.PatientID, &at)
	if errors.Is(err, sql.ErrNoRows) {
		return chat.ChatRoom{}, chat.ErrRoomNotFound
	}
	if err != nil {
		return chat.ChatRoom{}, err
	}
	room.CreatedAt = time.Unix(0, at).UTC()
	return room, nil
}

func scanSqliteMessage(row scanner) (chat.Message, error) {
	var (
		msg chat.Message
		at  int64
	)
	if err := row.Scan(&msg.ID, &msg.ChatRoomID, &msg.SenderID, &msg.Content, &at); err != nil {
		return chat.Message{}, err
	}
	msg.CreatedAt = time.Unix(0, at).UTC()
	return msg, nil
}
