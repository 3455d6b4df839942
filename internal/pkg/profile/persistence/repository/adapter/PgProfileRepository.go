package adapter

import (
	"context"
	"errors"

	"recovery-chat/internal/infrastructure/database"
	profile "recovery-chat/internal/pkg/profile/application/domain"
	repository "recovery-chat/internal/pkg/profile/persistence/repository/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgProfileRepository struct {
	pool *pgxpool.Pool
}

func NewPgProfileRepository(pool *pgxpool.Pool) *PgProfileRepository {
	return &PgProfileRepository{pool: pool}
}

var _ repository.ProfileRepository = (*PgProfileRepository)(nil)

var errNilPool = errors.New("PgProfileRepository: nil pool")

const pgProfileColumns = `id::text, user_id, username, full_name, user_type, avatar_url, created_at, updated_at`

const pgMentorColumns = `id::text, user_id, specialization, bio, experience_years, is_available, created_at, updated_at`

func (r *PgProfileRepository) GetProfile(ctx context.Context, userID string) (profile.Profile, error) {
	return r.profileWhere(ctx, `user_id = $1`, userID)
}

func (r *PgProfileRepository) GetProfileByUsername(ctx context.Context, username string) (profile.Profile, error) {
	return r.profileWhere(ctx, `username = $1`, username)
}

func (r *PgProfileRepository) profileWhere(ctx context.Context, cond string, arg any) (profile.Profile, error) {
	if r == nil || r.pool == nil {
		return profile.Profile{}, errNilPool
	}
	row := r.pool.QueryRow(ctx, `SELECT `+pgProfileColumns+` FROM profiles WHERE `+cond, arg)
	var p profile.Profile
	err := row.Scan(&p.ID, &p.UserID, &p.Username, &p.FullName, &p.UserType, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return profile.Profile{}, profile.ErrProfileNotFound
	}
	if err != nil {
		return profile.Profile{}, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return p, nil
}

func (r *PgProfileRepository) CreateProfile(ctx context.Context, p profile.Profile) error {
	if r == nil || r.pool == nil {
		return errNilPool
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO profiles (id, user_id, username, full_name, user_type, avatar_url, created_at, updated_at)
		VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8)
	`, p.ID, p.UserID, p.Username, p.FullName, string(p.UserType), p.AvatarURL, p.CreatedAt, p.UpdatedAt)
	if database.IsUniqueViolation(err) {
		return profile.ErrProfileExists
	}
	return err
}

func (r *PgProfileRepository) UpdateProfile(ctx context.Context, p profile.Profile) error {
	if r == nil || r.pool == nil {
		return errNilPool
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE profiles
		SET username = $2, full_name = $3, user_type = $4, avatar_url = $5, updated_at = $6
		WHERE user_id = $1
	`, p.UserID, p.Username, p.FullName, string(p.UserType), p.AvatarURL, p.UpdatedAt)
	if database.IsUniqueViolation(err) {
		return profile.ErrProfileExists
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return profile.ErrProfileNotFound
	}
	return nil
}

func (r *PgProfileRepository) GetMentor(ctx context.Context, userID string) (profile.Mentor, error) {
	if r == nil || r.pool == nil {
		return profile.Mentor{}, errNilPool
	}
	row := r.pool.QueryRow(ctx, `SELECT `+pgMentorColumns+` FROM mentors WHERE user_id = $1`, userID)
	m, err := scanPgMentor(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return profile.Mentor{}, profile.ErrMentorNotFound
	}
	return m, err
}

func (r *PgProfileRepository) ListAvailableMentors(ctx context.Context, specialization string) ([]profile.Mentor, error) {
	if r == nil || r.pool == nil {
		return nil, errNilPool
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+pgMentorColumns+`
		FROM mentors
		WHERE is_available AND ($1 = '' OR specialization ILIKE $2)
		ORDER BY created_at ASC, id ASC
	`, specialization, containsPattern(specialization))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	mentors := make([]profile.Mentor, 0)
	for rows.Next() {
		m, err := scanPgMentor(rows)
		if err != nil {
			return nil, err
		}
		mentors = append(mentors, m)
	}
	return mentors, rows.Err()
}

func (r *PgProfileRepository) CreateMentor(ctx context.Context, m profile.Mentor) error {
	if r == nil || r.pool == nil {
		return errNilPool
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO mentors (id, user_id, specialization, bio, experience_years, is_available, created_at, updated_at)
		VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8)
	`, m.ID, m.UserID, m.Specialization, m.Bio, m.ExperienceYears, m.IsAvailable, m.CreatedAt, m.UpdatedAt)
	if database.IsUniqueViolation(err) {
		return profile.ErrMentorExists
	}
	return err
}

func (r *PgProfileRepository) UpdateMentor(ctx context.Context, m profile.Mentor) error {
	if r == nil || r.pool == nil {
		return errNilPool
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE mentors
		SET specialization = $2, bio = $3, experience_years = $4, is_available = $5, updated_at = $6
		WHERE user_id = $1
	`, m.UserID, m.Specialization, m.Bio, m.ExperienceYears, m.IsAvailable, m.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return profile.ErrMentorNotFound
	}
	return nil
}

func scanPgMentor(row pgx.Row) (profile.Mentor, error) {
	var (
		m   profile.Mentor
		exp *int32
	)
	if err := row.Scan(&m.ID, &m.UserID, &m.Specialization, &m.Bio, &exp, &m.IsAvailable, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return profile.Mentor{}, err
	}
	if exp != nil {
		v := int(*exp)
		m.ExperienceYears = &v
	}
	m.CreatedAt = m.CreatedAt.UTC()
	m.UpdatedAt = m.UpdatedAt.UTC()
	return m, nil
}
