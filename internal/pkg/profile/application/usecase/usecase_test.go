package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"recovery-chat/internal/infrastructure/database/databasetest"
	chat "recovery-chat/internal/pkg/chat/application/domain"
	"recovery-chat/internal/pkg/chat/application/port"
	profile "recovery-chat/internal/pkg/profile/application/domain"
	"recovery-chat/internal/pkg/profile/persistence/repository/adapter"
	repository "recovery-chat/internal/pkg/profile/persistence/repository/port"
)

func ptr[T any](v T) *T { return &v }

func newRepo(t *testing.T) repository.ProfileRepository {
	t.Helper()
	return adapter.NewSqliteProfileRepository(databasetest.OpenSQLite(t))
}

func TestProfileLifecycle(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repo := newRepo(t)

	created, err := NewCreateProfileUseCase(repo).Execute(ctx, profile.Profile{UserID: "u-1", Username: ptr("sam"), UserType: profile.UserTypePatient})
	req.NoError(err)

	_, err = NewCreateProfileUseCase(repo).Execute(ctx, profile.Profile{UserID: "u-1", UserType: profile.UserTypePatient})
	req.ErrorIs(err, profile.ErrConflict)

	_, err = NewCreateProfileUseCase(repo).Execute(ctx, profile.Profile{UserID: "u-2"})
	req.ErrorIs(err, profile.ErrValidation)

	got, err := NewGetProfileUseCase(repo).Execute(ctx, "u-1")
	req.NoError(err)
	req.Equal(created, got)

	update := NewUpdateProfileUseCase(repo)
	update.Now = func() time.Time { return created.CreatedAt.Add(time.Hour) }
	updated, err := update.Execute(ctx, "u-1", profile.ProfileChanges{FullName: ptr("Sam R.")})
	req.NoError(err)
	req.Equal("Sam R.", *updated.FullName)
	req.Equal("sam", *updated.Username)
	req.Equal(created.CreatedAt.Add(time.Hour), updated.UpdatedAt)

	_, err = update.Execute(ctx, "ghost", profile.ProfileChanges{})
	req.ErrorIs(err, profile.ErrProfileNotFound)

	bad := profile.UserType("admin")
	_, err = update.Execute(ctx, "u-1", profile.ProfileChanges{UserType: &bad})
	req.ErrorIs(err, profile.ErrValidation)
}

func TestMentorDirectory(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repo := newRepo(t)

	_, err := NewCreateProfileUseCase(repo).Execute(ctx, profile.Profile{UserID: "m-1", FullName: ptr("Alex"), UserType: profile.UserTypeMentor})
	req.NoError(err)

	create := NewCreateMentorUseCase(repo)
	withProfile, err := create.Execute(ctx, profile.Mentor{UserID: "m-1", Specialization: "Alcohol recovery", IsAvailable: true})
	req.NoError(err)
	_, err = create.Execute(ctx, profile.Mentor{UserID: "m-2", Specialization: "Opioid use", IsAvailable: true})
	req.NoError(err)
	_, err = create.Execute(ctx, profile.Mentor{UserID: "m-1", Specialization: "again", IsAvailable: true})
	req.ErrorIs(err, profile.ErrConflict)

	all, err := NewListMentorsUseCase(repo).Execute(ctx, "")
	req.NoError(err)
	req.Len(all, 2)
	req.Equal("Alex", *all[0].Profile.FullName)
	req.Nil(all[1].Profile)

	filtered, err := NewListMentorsUseCase(repo).Execute(ctx, "opioid")
	req.NoError(err)
	req.Len(filtered, 1)
	req.Equal("m-2", filtered[0].UserID)

	one, err := NewGetMentorUseCase(repo).Execute(ctx, "m-1")
	req.NoError(err)
	req.Equal(*withProfile, one.Mentor)

	updated, err := NewUpdateMentorUseCase(repo).Execute(ctx, "m-1", profile.MentorChanges{IsAvailable: ptr(false)})
	req.NoError(err)
	req.False(updated.IsAvailable)

	all, err = NewListMentorsUseCase(repo).Execute(ctx, "")
	req.NoError(err)
	req.Len(all, 1)

	_, err = NewGetMentorUseCase(repo).Execute(ctx, "nobody")
	req.ErrorIs(err, profile.ErrMentorNotFound)
}

type failingRepo struct {
	repository.ProfileRepository
}

func (failingRepo) GetProfile(context.Context, string) (profile.Profile, error) {
	return profile.Profile{}, errors.New("connection refused")
}

func TestParticipantDirectory(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repo := newRepo(t)
	_, err := NewCreateProfileUseCase(repo).Execute(ctx, profile.Profile{UserID: "p-1", Username: ptr("river"), UserType: profile.UserTypePatient})
	req.NoError(err)

	dir := NewParticipantDirectory(repo)
	got, err := dir.Resolve(ctx, "p-1")
	req.NoError(err)
	req.Equal(port.Participant{UserID: "p-1", Username: ptr("river"), UserType: "patient"}, got)

	_, err = dir.Resolve(ctx, "ghost")
	req.ErrorIs(err, chat.ErrProfileNotFound)

	_, err = NewParticipantDirectory(failingRepo{}).Resolve(ctx, "p-1")
	req.Error(err)
	req.NotErrorIs(err, chat.ErrNotFound)

	_, err = NewGetProfileUseCase(failingRepo{}).Execute(ctx, "p-1")
	req.ErrorIs(err, ErrStorageUnavailable)
}

// takenUsernameRepo reports every username as free, then rejects the insert,
// as when a concurrent sign-up claims the name first.
type takenUsernameRepo struct {
	repository.ProfileRepository
}

func (takenUsernameRepo) GetProfileByUsername(context.Context, string) (profile.Profile, error) {
	return profile.Profile{}, profile.ErrProfileNotFound
}

func (takenUsernameRepo) CreateProfile(context.Context, profile.Profile) error {
	return profile.ErrProfileExists
}

type unreachableUsernameRepo struct {
	repository.ProfileRepository
}

func (unreachableUsernameRepo) GetProfileByUsername(context.Context, string) (profile.Profile, error) {
	return profile.Profile{}, errors.New("connection refused")
}

func TestSignUpAndSignIn(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repo := newRepo(t)
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	signUp := NewSignUpUseCase(repo)
	signUp.Now = func() time.Time { return now }
	signUp.NewID = func() string { return "user_1" }

	res, err := signUp.Execute(ctx, SignUpInput{Email: " ana@example.com ", Password: "pw"})
	req.NoError(err)
	req.Equal("user_1", res.User.UserID)
	req.Equal(ptr("ana@example.com"), res.User.Username)
	req.Equal(ptr("ana@example.com"), res.User.FullName)
	req.Equal(profile.UserTypePatient, res.User.UserType)
	req.Equal(now, res.User.CreatedAt)
	req.Equal(res.User, res.Session.User)

	_, err = signUp.Execute(ctx, SignUpInput{Username: "ana@example.com"})
	req.ErrorIs(err, profile.ErrUserExists)
	req.ErrorIs(err, profile.ErrValidation)

	_, err = signUp.Execute(ctx, SignUpInput{Password: "pw"})
	req.ErrorIs(err, profile.ErrMissingIdentity)

	signIn := NewSignInUseCase(repo)
	got, err := signIn.Execute(ctx, SignInInput{Email: "ana@example.com", Password: "wrong-is-fine"})
	req.NoError(err)
	req.Equal(res.User, got.User)

	got, err = signIn.Execute(ctx, SignInInput{Username: "ana@example.com"})
	req.NoError(err)
	req.Equal("user_1", got.User.UserID)

	_, err = signIn.Execute(ctx, SignInInput{Email: "ghost@example.com"})
	req.ErrorIs(err, profile.ErrBadCredentials)
	req.ErrorIs(err, profile.ErrUnauthenticated)
	_, err = signIn.Execute(ctx, SignInInput{})
	req.ErrorIs(err, profile.ErrBadCredentials)
}

func TestSignUp_UsernameClaimedConcurrently(t *testing.T) {
	_, err := NewSignUpUseCase(takenUsernameRepo{}).Execute(context.Background(), SignUpInput{Email: "ana@example.com"})
	require.ErrorIs(t, err, profile.ErrUserExists)
}

func TestAuth_StorageFailures(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()

	_, err := NewSignUpUseCase(unreachableUsernameRepo{}).Execute(ctx, SignUpInput{Email: "ana@example.com"})
	req.ErrorIs(err, ErrStorageUnavailable)

	_, err = NewSignInUseCase(unreachableUsernameRepo{}).Execute(ctx, SignInInput{Email: "ana@example.com"})
	req.ErrorIs(err, ErrStorageUnavailable)
	req.NotErrorIs(err, profile.ErrUnauthenticated)
}
