package adapter

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"recovery-chat/internal/infrastructure/database"
	profile "recovery-chat/internal/pkg/profile/application/domain"
	repository "recovery-chat/internal/pkg/profile/persistence/repository/port"
)

// SqliteProfileRepository keeps profiles and mentors in SQLite with unix-nano timestamps.
type SqliteProfileRepository struct {
	db *sql.DB
}

func NewSqliteProfileRepository(db *sql.DB) *SqliteProfileRepository {
	return &SqliteProfileRepository{db: db}
}

var _ repository.ProfileRepository = (*SqliteProfileRepository)(nil)

var errNilDB = errors.New("SqliteProfileRepository: nil db")

const sqliteProfileColumns = `id, user_id, username, full_name, user_type, avatar_url, created_at, updated_at`

const sqliteMentorColumns = `id, user_id, specialization, bio, experience_years, is_available, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func (r *SqliteProfileRepository) GetProfile(ctx context.Context, userID string) (profile.Profile, error) {
	return r.profileWhere(ctx, `user_id = ?`, userID)
}

func (r *SqliteProfileRepository) GetProfileByUsername(ctx context.Context, username string) (profile.Profile, error) {
	return r.profileWhere(ctx, `username = ?`, username)
}

func (r *SqliteProfileRepository) profileWhere(ctx context.Context, cond string, arg any) (profile.Profile, error) {
	if r == nil || r.db == nil {
		return profile.Profile{}, errNilDB
	}
	row := r.db.QueryRowContext(ctx, `SELECT `+sqliteProfileColumns+` FROM profiles WHERE `+cond, arg)

	var (
		p                profile.Profile
		userType         string
		created, updated int64
		username, name   sql.NullString
		avatar           sql.NullString
	)
	err := row.Scan(&p.ID, &p.UserID, &username, &name, &userType, &avatar, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return profile.Profile{}, profile.ErrProfileNotFound
	}
	if err != nil {
		return profile.Profile{}, err
	}
	p.Username = nullable(username)
	p.FullName = nullable(name)
	p.AvatarURL = nullable(avatar)
	p.UserType = profile.UserType(userType)
	p.CreatedAt = time.Unix(0, created).UTC()
	p.UpdatedAt = time.Unix(0, updated).UTC()
	return p, nil
}

func (r *SqliteProfileRepository) CreateProfile(ctx context.Context, p profile.Profile) error {
	if r == nil || r.db == nil {
		return errNilDB
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profiles (id, user_id, username, full_name, user_type, avatar_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.UserID, p.Username, p.FullName, string(p.UserType), p.AvatarURL, p.CreatedAt.UnixNano(), p.UpdatedAt.UnixNano())
	if database.IsSQLiteUniqueViolation(err) {
		return profile.ErrProfileExists
	}
	return err
}

func (r *SqliteProfileRepository) UpdateProfile(ctx context.Context, p profile.Profile) error {
	if r == nil || r.db == nil {
		return errNilDB
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE profiles
		SET username = ?, full_name = ?, user_type = ?, avatar_url = ?, updated_at = ?
		WHERE user_id = ?
	`, p.Username, p.FullName, string(p.UserType), p.AvatarURL, p.UpdatedAt.UnixNano(), p.UserID)
	if database.IsSQLiteUniqueViolation(err) {
		return profile.ErrProfileExists
	}
	if err != nil {
		return err
	}
	return requireRow(res, profile.ErrProfileNotFound)
}

func (r *SqliteProfileRepository) GetMentor(ctx context.Context, userID string) (profile.Mentor, error) {
	if r == nil || r.db == nil {
		return profile.Mentor{}, errNilDB
	}
	row := r.db.QueryRowContext(ctx, `SELECT `+sqliteMentorColumns+` FROM mentors WHERE user_id = ?`, userID)
	m, err := scanSqliteMentor(row)
	if errors.Is(err, sql.ErrNoRows) {
		return profile.Mentor{}, profile.ErrMentorNotFound
	}
	return m, err
}

func (r *SqliteProfileRepository) ListAvailableMentors(ctx context.Context, specialization string) ([]profile.Mentor, error) {
	if r == nil || r.db == nil {
		return nil, errNilDB
	}
	// LIKE is case-insensitive for ASCII in SQLite
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+sqliteMentorColumns+`
		FROM mentors
		WHERE is_available = 1 AND (? = '' OR specialization LIKE ? ESCAPE '\')
		ORDER BY created_at ASC, id ASC
	`, specialization, containsPattern(specialization))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	mentors := make([]profile.Mentor, 0)
	for rows.Next() {
		m, err := scanSqliteMentor(rows)
		if err != nil {
			return nil, err
		}
		mentors = append(mentors, m)
	}
	return mentors, rows.Err()
}

func (r *SqliteProfileRepository) CreateMentor(ctx context.Context, m profile.Mentor) error {
	if r == nil || r.db == nil {
		return errNilDB
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO mentors (id, user_id, specialization, bio, experience_years, is_available, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, m.ID, m.UserID, m.Specialization, m.Bio, m.ExperienceYears, m.IsAvailable, m.CreatedAt.UnixNano(), m.UpdatedAt.UnixNano())
	if database.IsSQLiteUniqueViolation(err) {
		return profile.ErrMentorExists
	}
	return err
}

func (r *SqliteProfileRepository) UpdateMentor(ctx context.Context, m profile.Mentor) error {
	if r == nil || r.db == nil {
		return errNilDB
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE mentors
		SET specialization = ?, bio = ?, experience_years = ?, is_available = ?, updated_at = ?
		WHERE user_id = ?
	`, m.Specialization, m.Bio, m.ExperienceYears, m.IsAvailable, m.UpdatedAt.UnixNano(), m.UserID)
	if err != nil {
		return err
	}
	return requireRow(res, profile.ErrMentorNotFound)
}

func scanSqliteMentor(row scanner) (profile.Mentor, error) {
	var (
		m                profile.Mentor
		bio              sql.NullString
		exp              sql.NullInt64
		created, updated int64
	)
	if err := row.Scan(&m.ID, &m.UserID, &m.Specialization, &bio, &exp, &m.IsAvailable, &created, &updated); err != nil {
		return profile.Mentor{}, err
	}
	m.Bio = nullable(bio)
	if exp.Valid {
		v := int(exp.Int64)
		m.ExperienceYears = &v
	}
	m.CreatedAt = time.Unix(0, created).UTC()
	m.UpdatedAt = time.Unix(0, updated).UTC()
	return m, nil
}

func requireRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func nullable(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}
