package adapter

import (
	"context"
	"errors"
	"time"

	"recovery-chat/internal/infrastructure/database"
	chat "recovery-chat/internal/pkg/chat/application/domain"
	repository "recovery-chat/internal/pkg/chat/persistence/repository/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgChatRepository struct {
	pool *pgxpool.Pool
}

func NewPgChatRepository(pool *pgxpool.Pool) *PgChatRepository {
	return &PgChatRepository{pool: pool}
}

var _ repository.ChatRepository = (*PgChatRepository)(nil)

var errNilPool = errors.New("PgChatRepository: nil pool")

func (r *PgChatRepository) CreateRoom(ctx context.Context, room chat.ChatRoom) error {
	if r == nil || r.pool == nil {
		return errNilPool
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO chat_rooms (id, mentor_id, patient_id, created_at)
		VALUES ($1::uuid, $2, $3, $4)
	`, room.ID, room.MentorID, room.PatientID, room.CreatedAt)
	if database.IsUniqueViolation(err) {
		return chat.ErrConflict
	}
	return err
}

func (r *PgChatRepository) GetRoom(ctx context.Context, roomID string) (chat.ChatRoom, error) {
	if r == nil || r.pool == nil {
		return chat.ChatRoom{}, errNilPool
	}
	// ids that are not uuids can't exist; avoid a cast error from Postgres
	if !isUUID(roomID) {
		return chat.ChatRoom{}, chat.ErrRoomNotFound
	}
	row := r.pool.QueryRow(ctx, `
		SELECT id::text, mentor_id, patient_id, created_at
		FROM chat_rooms
		WHERE id = $1::uuid
	`, roomID)
	return scanPgRoom(row)
}

func (r *PgChatRepository) FindRoomByPair(ctx context.Context, mentorID string, patientID string) (chat.ChatRoom, error) {
	if r == nil || r.pool == nil {
		return chat.ChatRoom{}, errNilPool
	}
	row := r.pool.QueryRow(ctx, `
		SELECT id::text, mentor_id, patient_id, created_at
		FROM chat_rooms
		WHERE mentor_id = $1 AND patient_id = $2
	`, mentorID, patientID)
	return scanPgRoom(row)
}

func (r *PgChatRepository) ListRoomsByParticipant(ctx context.Context, participantID string, role chat.Role) ([]chat.ChatRoom, error) {
	if r == nil || r.pool == nil {
		return nil, errNilPool
	}
	column, err := roleColumn(role)
	if err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, mentor_id, patient_id, created_at
		FROM chat_rooms
		WHERE `+column+` = $1
		ORDER BY created_at DESC, id DESC
	`, participantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rooms := make([]chat.ChatRoom, 0)
	for rows.Next() {
		var room chat.ChatRoom
		if err := rows.Scan(&room.ID, &room.MentorID, &room.PatientID, &room.CreatedAt); err != nil {
			return nil, err
		}
		room.CreatedAt = room.CreatedAt.UTC()
		rooms = append(rooms, room)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return rooms, nil
}

func (r *PgChatRepository) SaveMessage(ctx context.Context, m chat.Message) error {
	if r == nil || r.pool == nil {
		return errNilPool
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO messages (id, chat_room_id, sender_id, content, created_at)
		VALUES ($1::uuid, $2::uuid, $3, $4, $5)
	`, m.ID, m.ChatRoomID, m.SenderID, m.Content, m.CreatedAt)
	return err
}

func (r *PgChatRepository) ListMessages(ctx context.Context, roomID string, since *time.Time) ([]chat.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errNilPool
	}
	msgs := make([]chat.Message, 0)
	if !isUUID(roomID) {
		return msgs, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, chat_room_id::text, sender_id, content, created_at
		FROM messages
		WHERE chat_room_id = $1::uuid
		  AND ($2::timestamptz IS NULL OR created_at > $2::timestamptz)
		ORDER BY created_at ASC, id ASC
	`, roomID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var msg chat.Message
		if err := rows.Scan(&msg.ID, &msg.ChatRoomID, &msg.SenderID, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, err
		}
		msg.CreatedAt = msg.CreatedAt.UTC()
		msgs = append(msgs, msg)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return msgs, nil
}

func (r *PgChatRepository) LatestMessage(ctx context.Context, roomID string) (*chat.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errNilPool
	}
	if !isUUID(roomID) {
		return nil, nil
	}
	var msg chat.Message
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, chat_room_id::text, sender_id, content, created_at
		FROM messages
		WHERE chat_room_id = $1::uuid
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`, roomID).Scan(&msg.ID, &msg.ChatRoomID, &msg.SenderID, &msg.Content, &msg.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	msg.CreatedAt = msg.CreatedAt.UTC()
	return &msg, nil
}

func (r *PgChatRepository) CountMessagesNotFrom(ctx context.Context, roomID string, viewerID string) (int, error) {
	if r == nil || r.pool == nil {
		return 0, errNilPool
	}
	if !isUUID(roomID) {
		return 0, nil
	}
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT count(*)
		FROM messages
		WHERE chat_room_id = $1::uuid AND sender_id <> $2
	`, roomID, viewerID).Scan(&n)
	return n, err
}

func scanPgRoom(row pgx.Row) (chat.ChatRoom, error) {
	var room chat.ChatRoom
	err := row.Scan(&room.ID, &room.MentorID, &room.PatientID, &room.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return chat.ChatRoom{}, chat.ErrRoomNotFound
	}
	if err != nil {
		return chat.ChatRoom{}, err
	}
	room.CreatedAt = room.CreatedAt.UTC()
	return room, nil
}
