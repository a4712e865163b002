package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"study-assistant-be/internal/constant"
	"study-assistant-be/internal/dto"
	"study-assistant-be/internal/entity"
	"study-assistant-be/internal/pkg/apperror"
	"study-assistant-be/internal/pkg/logger"
	"study-assistant-be/internal/repository/memory"
	"study-assistant-be/internal/repository/specification"
	"study-assistant-be/internal/repository/unitofwork"
	"study-assistant-be/pkg/examgen"
	"study-assistant-be/pkg/llm"
	"study-assistant-be/pkg/llm/llmtest"
	"study-assistant-be/pkg/notegen"
	"study-assistant-be/pkg/tutor"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChat(t *testing.T, provider *llmtest.Provider) (*chatService, *changeRecorder, *eventRecorder) {
	t.Helper()
	factory := newFactory(t)
	changes := &changeRecorder{}
	evts := &eventRecorder{}
	log := logger.NewNopLogger()

	notes := NewNoteService(factory, notegen.New(provider), changes, evts, log)
	exams := NewExamService(factory, examgen.New(provider), memory.NewAttemptRepository(time.Hour), nil, changes, evts, log)
	chat := NewChatService(factory, tutor.New(provider).WithPicker(func(int) int { return 0 }), notegen.New(provider), notes, exams, changes, log)
	return chat.(*chatService), changes, evts
}

func TestChatSendCreatesSession(t *testing.T) {
	ctx := context.Background()
	chat, changes, _ := newChat(t, llmtest.Text("Plants turn light into sugar."))
	userId := uuid.New()

	res, err := chat.Send(ctx, userId, &dto.SendMessageRequest{Message: "How does photosynthesis work?"})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, res.SessionId)
	assert.Equal(t, string(entity.SessionTypeStudy), res.SessionType)
	assert.Equal(t, "How does photosynthesis work?", res.Title)
	assert.Equal(t, "Plants turn light into sugar.", res.Reply.Content)
	assert.Equal(t, string(tutor.ActionChat), res.Action)
	assert.Nil(t, res.SessionNote)
	assert.Contains(t, changes.collections(), CollectionStudySessions)

	session, err := findSession(ctx, chat.uowFactory.NewUnitOfWork(ctx), userId, res.SessionId)
	require.NoError(t, err)
	require.Len(t, session.Messages, 2)
	assert.Equal(t, entity.SenderUser, session.Messages[0].Sender)
	assert.Equal(t, entity.SenderAI, session.Messages[1].Sender)
}

func TestChatSendFallsBackWhenTutorFails(t *testing.T) {
	chat, _, _ := newChat(t, llmtest.Failing(errors.New("quota exceeded")))

	res, err := chat.Send(context.Background(), uuid.New(), &dto.SendMessageRequest{Message: "Teach me algebra"})
	require.NoError(t, err)
	assert.Equal(t, constant.TutorFallbackReplies[0], res.Reply.Content)
}

func TestChatSendUnknownSession(t *testing.T) {
	chat, _, _ := newChat(t, llmtest.Text("hi"))
	missing := uuid.New()

	_, err := chat.Send(context.Background(), uuid.New(), &dto.SendMessageRequest{SessionId: &missing, Message: "hello"})
	assertCode(t, err, apperror.CodeNotFound)
}

func TestChatSendRejectsConcurrentTurn(t *testing.T) {
	ctx := context.Background()
	chat, _, _ := newChat(t, llmtest.Text("ok"))
	userId := uuid.New()

	first, err := chat.Send(ctx, userId, &dto.SendMessageRequest{Message: "first"})
	require.NoError(t, err)

	require.NoError(t, chat.inFlight.Add(userId.String()+":"+first.SessionId.String(), struct{}{}, 0))
	_, err = chat.Send(ctx, userId, &dto.SendMessageRequest{SessionId: &first.SessionId, Message: "second"})
	assertCode(t, err, apperror.CodeConflict)

	chat.inFlight.Delete(userId.String() + ":" + first.SessionId.String())
	_, err = chat.Send(ctx, userId, &dto.SendMessageRequest{SessionId: &first.SessionId, Message: "second"})
	assert.NoError(t, err)
}

func TestChatAutoSessionNoteEverySecondTurn(t *testing.T) {
	ctx := context.Background()
	chat, changes, _ := newChat(t, llmtest.Text("Newton's laws describe motion."))
	userId := uuid.New()

	first, err := chat.Send(ctx, userId, &dto.SendMessageRequest{Message: "Explain physics basics"})
	require.NoError(t, err)
	assert.Nil(t, first.SessionNote)

	second, err := chat.Send(ctx, userId, &dto.SendMessageRequest{SessionId: &first.SessionId, Message: "And the second law?"})
	require.NoError(t, err)
	require.NotNil(t, second.SessionNote)
	assert.NotEmpty(t, second.SessionNote.Content)

	third, err := chat.Send(ctx, userId, &dto.SendMessageRequest{SessionId: &first.SessionId, Message: "And the third?"})
	require.NoError(t, err)
	assert.Nil(t, third.SessionNote)

	session, err := findSession(ctx, chat.uowFactory.NewUnitOfWork(ctx), userId, first.SessionId)
	require.NoError(t, err)
	assert.Len(t, session.SessionNotes, 1)
	assert.Len(t, session.Messages, 6)
	assert.Contains(t, changes.collections(), CollectionSessionNotes)
}

func TestChatNotesCommand(t *testing.T) {
	ctx := context.Background()
	chat, changes, evts := newChat(t, llmtest.Text("## Key Concepts\n- cells"))
	userId := uuid.New()

	first, err := chat.Send(ctx, userId, &dto.SendMessageRequest{Message: "Tell me about biology cells"})
	require.NoError(t, err)

	res, err := chat.Send(ctx, userId, &dto.SendMessageRequest{SessionId: &first.SessionId, Message: "Can you make notes please?"})
	require.NoError(t, err)

	assert.Equal(t, string(tutor.ActionGenerateNotes), res.Action)
	assert.Equal(t, constant.NotesCommandReply, res.Reply.Content)
	require.NotNil(t, res.Note)
	assert.Equal(t, string(entity.NoteTypeGenerated), res.Note.Type)
	require.NotNil(t, res.Note.SessionId)
	assert.Equal(t, first.SessionId, *res.Note.SessionId)
	require.NotNil(t, res.FollowUp)
	assert.Contains(t, res.FollowUp.Content, res.Note.Title)

	assert.Contains(t, changes.collections(), CollectionGeneratedNotes)
	assert.Contains(t, evts.types(), "NOTES_GENERATED")

	notes, err := chat.uowFactory.NewUnitOfWork(ctx).NoteRepository().FindAll(ctx, specification.UserOwnedBy{UserID: userId})
	require.NoError(t, err)
	assert.Len(t, notes, 1)
}

func TestChatExamCommandWithoutNotes(t *testing.T) {
	chat, _, _ := newChat(t, llmtest.Text("ok"))

	res, err := chat.Send(context.Background(), uuid.New(), &dto.SendMessageRequest{Message: "quiz me on this"})
	require.NoError(t, err)

	assert.Equal(t, string(tutor.ActionGenerateExam), res.Action)
	assert.Nil(t, res.Exam)
	require.NotNil(t, res.FollowUp)
	assert.Equal(t, constant.ExamFailedReply, res.FollowUp.Content)
}

func TestChatWelcome(t *testing.T) {
	chat, _, _ := newChat(t, llmtest.Text("ok"))

	res, err := chat.Welcome(context.Background(), "notes")
	require.NoError(t, err)
	assert.Equal(t, constant.WelcomeNotes, res.Message)

	_, err = chat.Welcome(context.Background(), "planner")
	assertCode(t, err, apperror.CodeNotFound)
}

func TestSessionTitle(t *testing.T) {
	created := time.Date(2024, 3, 7, 10, 0, 0, 0, time.UTC)
	long := strings.Repeat("a", 60)

	tests := []struct {
		name        string
		messages    []entity.Message
		sessionType entity.SessionType
		want        string
	}{
		{"first user message", []entity.Message{{Sender: entity.SenderAI, Content: "hi"}, {Sender: entity.SenderUser, Content: "Cells"}}, entity.SessionTypeStudy, "Cells"},
		{"truncated", []entity.Message{{Sender: entity.SenderUser, Content: long}}, entity.SessionTypeStudy, strings.Repeat("a", 50) + "..."},
		{"exactly fifty", []entity.Message{{Sender: entity.SenderUser, Content: long[:50]}}, entity.SessionTypeStudy, long[:50]},
		{"study default", nil, entity.SessionTypeStudy, "Study Session - 3/7/2024"},
		{"notes default", nil, entity.SessionTypeNotes, "Notes - 3/7/2024"},
		{"exams default", nil, entity.SessionTypeExams, "Exam Prep - 3/7/2024"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SessionTitle(tt.messages, tt.sessionType, created))
		})
	}
}

func TestShouldTakeSessionNote(t *testing.T) {
	turn := func(users int) *entity.StudySession {
		s := &entity.StudySession{}
		for i := 0; i < users; i++ {
			s.Messages = append(s.Messages, entity.Message{Sender: entity.SenderUser}, entity.Message{Sender: entity.SenderAI})
		}
		return s
	}

	assert.False(t, ShouldTakeSessionNote(turn(1)))
	assert.True(t, ShouldTakeSessionNote(turn(2)))
	assert.False(t, ShouldTakeSessionNote(turn(3)))
	assert.True(t, ShouldTakeSessionNote(turn(4)))
}

// flakyFactory fails the next failures transaction starts.
type flakyFactory struct {
	unitofwork.RepositoryFactory
	failures int
}

func (f *flakyFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &flakyUnitOfWork{UnitOfWork: f.RepositoryFactory.NewUnitOfWork(ctx), factory: f}
}

type flakyUnitOfWork struct {
	unitofwork.UnitOfWork
	factory *flakyFactory
}

func (u *flakyUnitOfWork) Begin(ctx context.Context) error {
	if u.factory.failures > 0 {
		u.factory.failures--
		return errors.New("connection reset by peer")
	}
	return u.UnitOfWork.Begin(ctx)
}

// deletingProvider removes the conversation while the tutor is answering.
type deletingProvider struct {
	remove func()
}

func (p deletingProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	p.remove()
	return "Too late.", nil
}

func (p deletingProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	p.remove()
	return "Too late.", nil
}

func TestChatErrorReplyIsStored(t *testing.T) {
	ctx := context.Background()
	provider := llmtest.Text("Plants turn light into sugar.")
	factory := &flakyFactory{RepositoryFactory: newFactory(t), failures: 1}
	changes := &changeRecorder{}
	log := logger.NewNopLogger()
	notes := NewNoteService(factory, notegen.New(provider), changes, nil, log)
	exams := NewExamService(factory, examgen.New(provider), memory.NewAttemptRepository(time.Hour), nil, changes, nil, log)
	chat := NewChatService(factory, tutor.New(provider), notegen.New(provider), notes, exams, changes, log)
	userId := uuid.New()

	res, err := chat.Send(ctx, userId, &dto.SendMessageRequest{Message: "How does photosynthesis work?"})
	require.NoError(t, err)
	assert.Equal(t, ActionError, res.Action)
	assert.Equal(t, constant.ChatErrorReply, res.Reply.Content)
	require.NotEqual(t, uuid.Nil, res.SessionId)

	session, err := findSession(ctx, factory.NewUnitOfWork(ctx), userId, res.SessionId)
	require.NoError(t, err)
	require.Len(t, session.Messages, 2)
	assert.Equal(t, "How does photosynthesis work?", session.Messages[0].Content)
	assert.Equal(t, constant.ChatErrorReply, session.Messages[1].Content)
}

func TestChatTurnDoesNotRecreateDeletedSession(t *testing.T) {
	ctx := context.Background()
	factory := newFactory(t)
	userId := uuid.New()
	session := seedSession(t, factory, userId, entity.SessionTypeStudy)

	provider := deletingProvider{remove: func() {
		_ = factory.NewUnitOfWork(ctx).StudySessionRepository().Delete(ctx, session.Id)
	}}
	log := logger.NewNopLogger()
	changes := &changeRecorder{}
	notes := NewNoteService(factory, notegen.New(provider), changes, nil, log)
	exams := NewExamService(factory, examgen.New(provider), memory.NewAttemptRepository(time.Hour), nil, changes, nil, log)
	chat := NewChatService(factory, tutor.New(provider), notegen.New(provider), notes, exams, changes, log)

	res, err := chat.Send(ctx, userId, &dto.SendMessageRequest{SessionId: &session.Id, Message: "Tell me more"})
	require.NoError(t, err)
	assert.Equal(t, ActionError, res.Action)

	count, err := factory.NewUnitOfWork(ctx).StudySessionRepository().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
