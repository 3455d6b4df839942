package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"recovery-chat/internal/infrastructure/database/databasetest"
	chat "recovery-chat/internal/pkg/chat/application/domain"
	"recovery-chat/internal/pkg/chat/application/port"
	"recovery-chat/internal/pkg/chat/application/port/mocks"
	"recovery-chat/internal/pkg/chat/persistence/repository/adapter"
	repository "recovery-chat/internal/pkg/chat/persistence/repository/port"
)

const (
	mentorID  = "mentor-m"
	patientID = "patient-p"
)

type fixture struct {
	repo     repository.ChatRepository
	profiles *mocks.MockProfileDirectory
	notifier *mocks.MockNotifier
}

// newFixture wires a SQLite-backed repository with a directory that knows
// the mentor and the patient.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	profiles := mocks.NewMockProfileDirectory(ctrl)
	profiles.EXPECT().Resolve(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, userID string) (port.Participant, error) {
			switch userID {
			case mentorID:
				return port.Participant{UserID: userID, UserType: "mentor"}, nil
			case patientID:
				return port.Participant{UserID: userID, UserType: "patient"}, nil
			default:
				return port.Participant{}, chat.ErrProfileNotFound
			}
		}).AnyTimes()

	return &fixture{
		repo:     adapter.NewSqliteChatRepository(databasetest.OpenSQLite(t)),
		profiles: profiles,
		notifier: mocks.NewMockNotifier(ctrl),
	}
}

func (f *fixture) findOrCreate() *FindOrCreateRoomUseCase {
	return NewFindOrCreateRoomUseCase(f.repo, f.profiles, zap.NewNop(), nil)
}

func (f *fixture) send() *SendMessageUseCase {
	return NewSendMessageUseCase(f.repo, f.notifier, zap.NewNop(), nil, time.Second)
}

func (f *fixture) room(t *testing.T) *chat.ChatRoom {
	t.Helper()
	room, _, err := f.findOrCreate().Execute(context.Background(), FindOrCreateRoomInput{MentorID: mentorID, PatientID: patientID})
	require.NoError(t, err)
	return room
}

func TestFindOrCreateRoom_Idempotent(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	uc := f.findOrCreate()
	in := FindOrCreateRoomInput{MentorID: mentorID, PatientID: patientID}

	first, created, err := uc.Execute(context.Background(), in)
	req.NoError(err)
	req.True(created)

	second, created, err := uc.Execute(context.Background(), in)
	req.NoError(err)
	req.False(created)
	req.Equal(first.ID, second.ID)
	req.Equal(*first, *second)
}

func TestFindOrCreateRoom_ConcurrentFirstContact(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	uc := f.findOrCreate()
	in := FindOrCreateRoomInput{MentorID: mentorID, PatientID: patientID}

	const callers = 16
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		ids     = make(map[string]int)
		creates int
		errs    []error
	)
	start := make(chan struct{})
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			room, created, err := uc.Execute(context.Background(), in)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			ids[room.ID]++
			if created {
				creates++
			}
		}()
	}
	close(start)
	wg.Wait()

	req.Empty(errs)
	req.Len(ids, 1)
	req.Equal(1, creates)

	rooms, err := f.repo.ListRoomsByParticipant(context.Background(), mentorID, chat.RoleMentor)
	req.NoError(err)
	req.Len(rooms, 1)
}

// racingRepo makes the first lookup miss and the insert conflict, which is
// what the loser of a concurrent first contact observes.
type racingRepo struct {
	repository.ChatRepository
	winner  chat.ChatRoom
	lookups int
}

func (r *racingRepo) FindRoomByPair(ctx context.Context, m, p string) (chat.ChatRoom, error) {
	r.lookups++
	if r.lookups == 1 {
		return chat.ChatRoom{}, chat.ErrRoomNotFound
	}
	return r.winner, nil
}

func (r *racingRepo) CreateRoom(context.Context, chat.ChatRoom) error {
	return chat.ErrConflict
}

func TestFindOrCreateRoom_ConflictReturnsExisting(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	winner, err := chat.NewChatRoom(mentorID, patientID, time.Now())
	req.NoError(err)
	repo := &racingRepo{winner: winner}

	uc := NewFindOrCreateRoomUseCase(repo, f.profiles, nil, nil)
	room, created, err := uc.Execute(context.Background(), FindOrCreateRoomInput{MentorID: mentorID, PatientID: patientID})
	req.NoError(err)
	req.False(created)
	req.Equal(winner, *room)
	req.Equal(2, repo.lookups)
}

func TestFindOrCreateRoom_Errors(t *testing.T) {
	f := newFixture(t)
	uc := f.findOrCreate()
	ctx := context.Background()

	_, _, err := uc.Execute(ctx, FindOrCreateRoomInput{MentorID: mentorID, PatientID: mentorID})
	require.ErrorIs(t, err, chat.ErrInvalidPair)

	_, _, err = uc.Execute(ctx, FindOrCreateRoomInput{MentorID: mentorID})
	require.ErrorIs(t, err, chat.ErrMissingParticipant)

	_, _, err = uc.Execute(ctx, FindOrCreateRoomInput{MentorID: mentorID, PatientID: "ghost"})
	require.ErrorIs(t, err, chat.ErrProfileNotFound)
	require.ErrorIs(t, err, chat.ErrNotFound)

	rooms, err := f.repo.ListRoomsByParticipant(ctx, mentorID, chat.RoleMentor)
	require.NoError(t, err)
	require.Empty(t, rooms)
}

type brokenRepo struct {
	repository.ChatRepository
}

var errDiskGone = errors.New("disk gone")

func (brokenRepo) FindRoomByPair(context.Context, string, string) (chat.ChatRoom, error) {
	return chat.ChatRoom{}, errDiskGone
}

func (brokenRepo) GetRoom(context.Context, string) (chat.ChatRoom, error) {
	return chat.ChatRoom{}, errDiskGone
}

func TestStorageFailuresSurface(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _, err := NewFindOrCreateRoomUseCase(brokenRepo{}, f.profiles, nil, nil).
		Execute(ctx, FindOrCreateRoomInput{MentorID: mentorID, PatientID: patientID})
	require.ErrorIs(t, err, ErrStorageUnavailable)

	_, err = NewSendMessageUseCase(brokenRepo{}, f.notifier, nil, nil, 0).
		Execute(ctx, SendMessageInput{ChatRoomID: "r", SenderID: mentorID, Content: "hi"})
	require.ErrorIs(t, err, ErrStorageUnavailable)

	_, err = NewListMessagesUseCase(brokenRepo{}).Execute(ctx, ListMessagesInput{ChatRoomID: "r"})
	require.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestSendMessage_NotifiesAfterAppend(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	room := f.room(t)

	var notified chat.Message
	f.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, msg chat.Message) error {
			stored, err := f.repo.ListMessages(ctx, room.ID, nil)
			req.NoError(err)
			req.Len(stored, 1)
			notified = msg
			return nil
		}).Times(1)

	msg, err := f.send().Execute(context.Background(), SendMessageInput{ChatRoomID: room.ID, SenderID: patientID, Content: "  hello  "})
	req.NoError(err)
	req.Equal("hello", msg.Content)
	req.Equal(patientID, msg.SenderID)
	req.Equal(*msg, notified)
}

func TestSendMessage_NotificationFailureIsSwallowed(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	room := f.room(t)
	f.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(errors.New("redis down")).Times(1)

	msg, err := f.send().Execute(context.Background(), SendMessageInput{ChatRoomID: room.ID, SenderID: mentorID, Content: "still here"})
	req.NoError(err)

	stored, err := f.repo.ListMessages(context.Background(), room.ID, nil)
	req.NoError(err)
	req.Equal([]chat.Message{*msg}, stored)
}

func TestSendMessage_Rejections(t *testing.T) {
	f := newFixture(t)
	room := f.room(t)
	uc := f.send()
	ctx := context.Background()

	_, err := uc.Execute(ctx, SendMessageInput{ChatRoomID: room.ID, SenderID: "stranger", Content: "hi"})
	require.ErrorIs(t, err, chat.ErrNotAParticipant)

	for _, content := range []string{"", "   ", "\n\t"} {
		_, err = uc.Execute(ctx, SendMessageInput{ChatRoomID: room.ID, SenderID: mentorID, Content: content})
		require.ErrorIs(t, err, chat.ErrEmptyContent)
	}

	_, err = uc.Execute(ctx, SendMessageInput{ChatRoomID: "no-such-room", SenderID: mentorID, Content: "hi"})
	require.ErrorIs(t, err, chat.ErrRoomNotFound)

	_, err = uc.Execute(ctx, SendMessageInput{SenderID: mentorID, Content: "hi"})
	require.ErrorIs(t, err, chat.ErrMissingRoom)

	stored, err := f.repo.ListMessages(ctx, room.ID, nil)
	require.NoError(t, err)
	require.Empty(t, stored)
}

// cancelOnLookup cancels the caller's context once the room was read, like a
// client timing out while the insert is in flight.
type cancelOnLookup struct {
	repository.ChatRepository
	cancel context.CancelFunc
}

func (r cancelOnLookup) GetRoom(ctx context.Context, id string) (chat.ChatRoom, error) {
	room, err := r.ChatRepository.GetRoom(ctx, id)
	r.cancel()
	return room, err
}

func TestSendMessage_InsertSurvivesCallerCancellation(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	room := f.room(t)
	f.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(nil)

	ctx, cancel := context.WithCancel(context.Background())
	uc := NewSendMessageUseCase(cancelOnLookup{ChatRepository: f.repo, cancel: cancel}, f.notifier, nil, nil, time.Second)
	msg, err := uc.Execute(ctx, SendMessageInput{ChatRoomID: room.ID, SenderID: patientID, Content: "sent anyway"})
	req.NoError(err)
	req.Error(ctx.Err())

	stored, err := f.repo.ListMessages(context.Background(), room.ID, nil)
	req.NoError(err)
	req.Equal([]chat.Message{*msg}, stored)
}

func TestScenario_MentorPatientConversation(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	ctx := context.Background()
	f.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	r1 := f.room(t)
	again := f.room(t)
	req.Equal(r1.ID, again.ID)

	unread := NewUnreadCountUseCase(f.repo)
	count := func(viewer string) int {
		n, err := unread.Execute(ctx, UnreadCountInput{ChatRoomID: r1.ID, ViewerID: viewer})
		req.NoError(err)
		return n
	}

	hello, err := f.send().Execute(ctx, SendMessageInput{ChatRoomID: r1.ID, SenderID: patientID, Content: "hello"})
	req.NoError(err)
	req.Equal(patientID, hello.SenderID)
	req.Equal(1, count(mentorID))

	_, err = f.send().Execute(ctx, SendMessageInput{ChatRoomID: r1.ID, SenderID: mentorID, Content: "hi there"})
	req.NoError(err)
	req.Equal(1, count(patientID))
	req.Equal(1, count(mentorID))

	msgs, err := NewListMessagesUseCase(f.repo).Execute(ctx, ListMessagesInput{ChatRoomID: r1.ID})
	req.NoError(err)
	req.Len(msgs, 2)
	req.Equal("hello", msgs[0].Content)
	req.Equal("hi there", msgs[1].Content)
}

func TestListMessages_OrderingAndSince(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	ctx := context.Background()
	room := f.room(t)
	f.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	// a frozen clock forces every message onto the same timestamp
	frozen := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	uc := f.send()
	uc.Clock = func() time.Time { return frozen }
	var sent []chat.Message
	for _, content := range []string{"a", "b", "c", "d", "e"} {
		msg, err := uc.Execute(ctx, SendMessageInput{ChatRoomID: room.ID, SenderID: mentorID, Content: content})
		req.NoError(err)
		sent = append(sent, *msg)
	}
	uc.Clock = func() time.Time { return frozen.Add(time.Second) }
	later, err := uc.Execute(ctx, SendMessageInput{ChatRoomID: room.ID, SenderID: patientID, Content: "later"})
	req.NoError(err)
	sent = append(sent, *later)

	list := NewListMessagesUseCase(f.repo)
	first, err := list.Execute(ctx, ListMessagesInput{ChatRoomID: room.ID})
	req.NoError(err)
	req.Equal(sent, first)
	second, err := list.Execute(ctx, ListMessagesInput{ChatRoomID: room.ID})
	req.NoError(err)
	req.Equal(first, second)

	incremental, err := list.Execute(ctx, ListMessagesInput{ChatRoomID: room.ID, Since: &frozen})
	req.NoError(err)
	req.Equal([]chat.Message{*later}, incremental)

	_, err = list.Execute(ctx, ListMessagesInput{ChatRoomID: "nope"})
	req.ErrorIs(err, chat.ErrRoomNotFound)
}

func TestListRooms_Summaries(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	ctx := context.Background()
	f.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	room := f.room(t)

	// a second room whose patient has no profile anymore
	orphan, err := chat.NewChatRoom(mentorID, "deleted-patient", time.Now().Add(time.Minute))
	req.NoError(err)
	req.NoError(f.repo.CreateRoom(ctx, orphan))

	_, err = f.send().Execute(ctx, SendMessageInput{ChatRoomID: room.ID, SenderID: patientID, Content: "one"})
	req.NoError(err)
	last, err := f.send().Execute(ctx, SendMessageInput{ChatRoomID: room.ID, SenderID: patientID, Content: "two"})
	req.NoError(err)

	uc := NewListRoomsUseCase(f.repo, f.profiles)
	summaries, err := uc.Execute(ctx, ListRoomsInput{ParticipantID: mentorID, Role: chat.RoleMentor})
	req.NoError(err)
	req.Len(summaries, 2)

	req.Equal(orphan.ID, summaries[0].Room.ID)
	req.Nil(summaries[0].Patient)
	req.NotNil(summaries[0].Mentor)
	req.Nil(summaries[0].LatestMessage)
	req.Zero(summaries[0].UnreadCount)

	req.Equal(room.ID, summaries[1].Room.ID)
	req.Equal(last, summaries[1].LatestMessage)
	req.Equal(2, summaries[1].UnreadCount)
	req.Equal(patientID, summaries[1].Patient.UserID)

	patientView, err := uc.Execute(ctx, ListRoomsInput{ParticipantID: patientID, Role: chat.RolePatient})
	req.NoError(err)
	req.Len(patientView, 1)
	req.Zero(patientView[0].UnreadCount)

	_, err = uc.Execute(ctx, ListRoomsInput{ParticipantID: patientID, Role: "admin"})
	req.ErrorIs(err, chat.ErrInvalidRole)
}

func TestGetRoomAndJoin(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	ctx := context.Background()
	room := f.room(t)

	details, err := NewGetRoomUseCase(f.repo, f.profiles).Execute(ctx, room.ID)
	req.NoError(err)
	req.Equal(*room, details.Room)
	req.Equal(mentorID, details.Mentor.UserID)
	req.Equal(patientID, details.Patient.UserID)

	_, err = NewGetRoomUseCase(f.repo, f.profiles).Execute(ctx, "missing")
	req.ErrorIs(err, chat.ErrRoomNotFound)

	join := NewJoinRoomUseCase(f.repo)
	req.NoError(join.Execute(ctx, JoinRoomInput{ChatRoomID: room.ID, UserID: patientID}))
	req.ErrorIs(join.Execute(ctx, JoinRoomInput{ChatRoomID: room.ID, UserID: "lurker"}), chat.ErrNotAParticipant)
	req.ErrorIs(join.Execute(ctx, JoinRoomInput{ChatRoomID: "missing", UserID: patientID}), chat.ErrRoomNotFound)
}
