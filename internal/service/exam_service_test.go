package service

import (
	"context"
	"testing"
	"time"

	"study-assistant-be/internal/constant"
	"study-assistant-be/internal/dto"
	"study-assistant-be/internal/entity"
	"study-assistant-be/internal/pkg/apperror"
	"study-assistant-be/internal/pkg/logger"
	"study-assistant-be/internal/repository/memory"
	"study-assistant-be/internal/repository/unitofwork"
	"study-assistant-be/pkg/examgen"
	"study-assistant-be/pkg/llm/llmtest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const examPayload = `{
  "title": "Cells - Exam",
  "questions": [
    {"type": "mcq", "question": "Powerhouse of the cell?", "options": ["Nucleus", "Mitochondria", "Ribosome", "Wall"], "correct": 1, "difficulty": "easy"},
    {"type": "short", "question": "What does a ribosome do?", "difficulty": "medium"},
    {"type": "long", "question": "Describe mitosis.", "difficulty": "hard"}
  ]
}`

func newExamService(t *testing.T, provider *llmtest.Provider) (IExamService, unitofwork.RepositoryFactory, *changeRecorder, *eventRecorder) {
	t.Helper()
	factory := newFactory(t)
	changes := &changeRecorder{}
	evts := &eventRecorder{}
	svc := NewExamService(factory, examgen.New(provider), memory.NewAttemptRepository(time.Hour), nil, changes, evts, logger.NewNopLogger())
	return svc, factory, changes, evts
}

func seedSession(t *testing.T, factory unitofwork.RepositoryFactory, userId uuid.UUID, sessionType entity.SessionType, notes ...string) *entity.StudySession {
	t.Helper()
	ctx := context.Background()
	session := &entity.StudySession{
		Id:     uuid.New(),
		UserId: userId,
		Title:  "Cells",
		Type:   sessionType,
		Messages: []entity.Message{
			{Sender: entity.SenderUser, Content: "What is a cell?", Timestamp: time.Now()},
			{Sender: entity.SenderAI, Content: "The basic unit of life.", Timestamp: time.Now()},
		},
		SessionNotes: []entity.SessionNote{},
		CreatedAt:    time.Now(),
	}
	for _, n := range notes {
		session.SessionNotes = append(session.SessionNotes, entity.SessionNote{Title: "Note", Content: n, CreatedAt: time.Now()})
	}
	require.NoError(t, factory.NewUnitOfWork(ctx).StudySessionRepository().Create(ctx, session))
	return session
}

func TestExamGenerateRequiresNotes(t *testing.T) {
	svc, factory, _, _ := newExamService(t, llmtest.Text(examPayload))
	userId := uuid.New()
	seedSession(t, factory, userId, entity.SessionTypeStudy)
	seedSession(t, factory, userId, entity.SessionTypeNotes, "notes outside study sessions are ignored")

	_, err := svc.Generate(context.Background(), userId, "")
	assertCode(t, err, apperror.CodeFailedPrecondition)

	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, constant.NoNotesForExam, appErr.Message)
}

func TestExamGenerateFallsBackOnBadPayload(t *testing.T) {
	svc, factory, _, _ := newExamService(t, llmtest.Text("Sure! Here you go."))
	userId := uuid.New()
	seedSession(t, factory, userId, entity.SessionTypeStudy, "Cells divide by mitosis.")

	res, err := svc.Generate(context.Background(), userId, "")
	require.NoError(t, err)
	assert.Contains(t, res.Title, "Study Exam - ")
	assert.Len(t, res.Questions, 3)
}

func TestExamFullAttempt(t *testing.T) {
	ctx := context.Background()
	provider := llmtest.Text(examPayload)
	svc, factory, changes, evts := newExamService(t, provider)
	userId := uuid.New()
	seedSession(t, factory, userId, entity.SessionTypeStudy, "Mitochondria make ATP.", "Ribosomes build proteins.")

	created, err := svc.Generate(ctx, userId, "Cells")
	require.NoError(t, err)
	assert.Equal(t, "Cells - Exam", created.Title)
	assert.Equal(t, 3, created.TotalQuestions)
	assert.Contains(t, provider.LastPrompt(), "Mitochondria make ATP.\n\nRibosomes build proteins.")
	assert.Contains(t, changes.collections(), CollectionExams)

	first, err := svc.Start(ctx, userId, created.Id)
	require.NoError(t, err)
	assert.Equal(t, 0, first.Index)
	assert.Equal(t, 3, first.Total)
	assert.Equal(t, "mcq", first.Question.Type)

	_, err = svc.Answer(ctx, userId, created.Id, &dto.SubmitAnswerRequest{Text: "   "})
	assertCode(t, err, apperror.CodeInvalidArgument)

	current, err := svc.Current(ctx, userId, created.Id)
	require.NoError(t, err)
	assert.Equal(t, 0, current.Index)

	wrong := 0
	fb, err := svc.Answer(ctx, userId, created.Id, &dto.SubmitAnswerRequest{OptionIndex: &wrong})
	require.NoError(t, err)
	assert.False(t, fb.Correct)
	assert.Equal(t, "Mitochondria", fb.CorrectAnswer)
	require.NotNil(t, fb.Next)
	assert.Equal(t, 1, fb.Next.Index)

	fb, err = svc.Answer(ctx, userId, created.Id, &dto.SubmitAnswerRequest{Text: "Builds proteins"})
	require.NoError(t, err)
	assert.True(t, fb.Correct)

	fb, err = svc.Answer(ctx, userId, created.Id, &dto.SubmitAnswerRequest{Text: "Mitosis is the process where one cell splits into two identical daughter cells."})
	require.NoError(t, err)
	assert.True(t, fb.Completed)
	require.NotNil(t, fb.Result)
	assert.Equal(t, 2, fb.Result.Score)
	assert.Equal(t, 67, fb.Result.Percentage)
	assert.Equal(t, "C", fb.Result.Grade)

	stored, err := svc.Show(ctx, userId, created.Id)
	require.NoError(t, err)
	assert.True(t, stored.Completed)
	require.NotNil(t, stored.Score)
	assert.Equal(t, 2, *stored.Score)
	assert.Len(t, stored.UserAnswers, 3)
	assert.Contains(t, evts.types(), "EXAM_COMPLETED")

	_, err = svc.Current(ctx, userId, created.Id)
	assertCode(t, err, apperror.CodeNotFound)

	_, err = svc.Start(ctx, userId, created.Id)
	assertCode(t, err, apperror.CodeConflict)
}

func TestExamIsScopedToOwner(t *testing.T) {
	ctx := context.Background()
	svc, factory, _, _ := newExamService(t, llmtest.Text(examPayload))
	owner := uuid.New()
	seedSession(t, factory, owner, entity.SessionTypeStudy, "notes")

	created, err := svc.Generate(ctx, owner, "")
	require.NoError(t, err)

	_, err = svc.Show(ctx, uuid.New(), created.Id)
	assertCode(t, err, apperror.CodeNotFound)
	_, err = svc.Start(ctx, uuid.New(), created.Id)
	assertCode(t, err, apperror.CodeNotFound)
}

func newExamAndSessions(t *testing.T) (IExamService, ISessionService, unitofwork.RepositoryFactory, *eventRecorder) {
	t.Helper()
	factory := newFactory(t)
	changes := &changeRecorder{}
	evts := &eventRecorder{}
	attempts := memory.NewAttemptRepository(time.Hour)
	exams := NewExamService(factory, examgen.New(llmtest.Text(examPayload)), attempts, nil, changes, evts, logger.NewNopLogger())
	sessions := NewSessionService(factory, attempts, changes)
	return exams, sessions, factory, evts
}

// answerFirst answers the first n questions of examPayload correctly and
// returns the last response.
func answerFirst(ctx context.Context, svc IExamService, userId, id uuid.UUID, n int) (*dto.SubmitAnswerResponse, error) {
	right := 1
	answers := []dto.SubmitAnswerRequest{
		{OptionIndex: &right},
		{Text: "Builds proteins"},
		{Text: "Mitosis is the process where one cell splits into two identical daughter cells."},
	}
	var (
		res *dto.SubmitAnswerResponse
		err error
	)
	for i := 0; i < n; i++ {
		if res, err = svc.Answer(ctx, userId, id, &answers[i]); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func TestExamDeletedDuringAttemptStaysDeleted(t *testing.T) {
	ctx := context.Background()
	exams, sessions, factory, evts := newExamAndSessions(t)
	userId := uuid.New()
	seedSession(t, factory, userId, entity.SessionTypeStudy, "Mitochondria make ATP.")

	created, err := exams.Generate(ctx, userId, "")
	require.NoError(t, err)
	_, err = exams.Start(ctx, userId, created.Id)
	require.NoError(t, err)
	_, err = answerFirst(ctx, exams, userId, created.Id, 2)
	require.NoError(t, err)

	require.NoError(t, sessions.Delete(ctx, userId, CollectionExams, created.Id))

	last := "Mitosis is the process where one cell splits into two identical daughter cells."
	_, err = exams.Answer(ctx, userId, created.Id, &dto.SubmitAnswerRequest{Text: last})
	assertCode(t, err, apperror.CodeNotFound)

	count, err := factory.NewUnitOfWork(ctx).ExamRepository().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.NotContains(t, evts.types(), "EXAM_COMPLETED")
}

func TestExamCompletionDoesNotRecreateDeletedExam(t *testing.T) {
	ctx := context.Background()
	svc, factory, _, evts := newExamService(t, llmtest.Text(examPayload))
	userId := uuid.New()
	seedSession(t, factory, userId, entity.SessionTypeStudy, "Mitochondria make ATP.")

	created, err := svc.Generate(ctx, userId, "")
	require.NoError(t, err)
	_, err = svc.Start(ctx, userId, created.Id)
	require.NoError(t, err)

	// Removed behind the attempt's back, e.g. by another instance.
	require.NoError(t, factory.NewUnitOfWork(ctx).ExamRepository().Delete(ctx, created.Id))

	_, err = answerFirst(ctx, svc, userId, created.Id, 3)
	assertCode(t, err, apperror.CodeNotFound)

	count, err := factory.NewUnitOfWork(ctx).ExamRepository().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.NotContains(t, evts.types(), "EXAM_COMPLETED")
}

func TestExamRenameDuringAttemptIsKept(t *testing.T) {
	ctx := context.Background()
	exams, sessions, factory, _ := newExamAndSessions(t)
	userId := uuid.New()
	seedSession(t, factory, userId, entity.SessionTypeStudy, "Mitochondria make ATP.")

	created, err := exams.Generate(ctx, userId, "")
	require.NoError(t, err)
	_, err = exams.Start(ctx, userId, created.Id)
	require.NoError(t, err)

	require.NoError(t, sessions.Rename(ctx, userId, CollectionExams, created.Id, &dto.RenameRequest{Title: "Renamed"}))

	res, err := answerFirst(ctx, exams, userId, created.Id, 3)
	require.NoError(t, err)
	require.True(t, res.Completed)

	stored, err := exams.Show(ctx, userId, created.Id)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", stored.Title)
	assert.True(t, stored.Completed)
	require.NotNil(t, stored.Score)
	assert.Equal(t, 3, *stored.Score)
}
