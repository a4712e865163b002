package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"study-assistant-be/internal/constant"
	"study-assistant-be/internal/dto"
	"study-assistant-be/internal/entity"
	"study-assistant-be/internal/pkg/apperror"
	"study-assistant-be/internal/pkg/logger"
	"study-assistant-be/internal/repository/memory"
	"study-assistant-be/internal/repository/specification"
	"study-assistant-be/internal/repository/unitofwork"
	"study-assistant-be/pkg/events"
	"study-assistant-be/pkg/exam"
	"study-assistant-be/pkg/examgen"
	"study-assistant-be/pkg/validation"

	"github.com/google/uuid"
)

const examCompletedMessage = "This exam has already been completed."

type IExamService interface {
	Generate(ctx context.Context, userId uuid.UUID, topic string) (*dto.ExamResponse, error)
	Show(ctx context.Context, userId, id uuid.UUID) (*dto.ExamResponse, error)
	Start(ctx context.Context, userId, id uuid.UUID) (*dto.CurrentQuestionResponse, error)
	Current(ctx context.Context, userId, id uuid.UUID) (*dto.CurrentQuestionResponse, error)
	Answer(ctx context.Context, userId, id uuid.UUID, req *dto.SubmitAnswerRequest) (*dto.SubmitAnswerResponse, error)
}

type examService struct {
	uowFactory       unitofwork.RepositoryFactory
	generator        *examgen.Generator
	attempts         *memory.AttemptRepository
	grade            exam.Grader
	publisherService IPublisherService
	eventPublisher   EventPublisher
	logger           logger.ILogger

	// mu serializes cursor moves on attempts.
	mu sync.Mutex
}

func NewExamService(
	uowFactory unitofwork.RepositoryFactory,
	generator *examgen.Generator,
	attempts *memory.AttemptRepository,
	grade exam.Grader,
	publisherService IPublisherService,
	eventPublisher EventPublisher,
	log logger.ILogger,
) IExamService {
	if grade == nil {
		grade = exam.HeuristicGrader
	}
	return &examService{
		uowFactory:       uowFactory,
		generator:        generator,
		attempts:         attempts,
		grade:            grade,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           log,
	}
}

// Generate builds an exam over every session note of the user's study
// sessions, newest session first.
func (s *examService) Generate(ctx context.Context, userId uuid.UUID, topic string) (*dto.ExamResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.StudySessionRepository().FindAll(ctx,
		ownedBy(userId),
		specification.BySessionType{Type: entity.SessionTypeStudy},
		newestFirst(),
	)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	var parts []string
	for _, session := range sessions {
		for _, note := range session.SessionNotes {
			parts = append(parts, note.Content)
		}
	}
	notes := strings.Join(parts, "\n\n")
	if strings.TrimSpace(notes) == "" {
		return nil, apperror.FailedPrecondition(constant.NoNotesForExam)
	}

	draft := s.generator.Generate(ctx, notes, strings.TrimSpace(topic))
	if draft.Err != nil {
		s.logger.Warn("EXAM", "Generation failed, using fallback exam", map[string]interface{}{
			"user_id": userId,
			"error":   draft.Err.Error(),
		})
	}

	record := draft.Exam(userId)
	record.Id = uuid.New()
	record.CreatedAt = time.Now()
	validation.SanitizeExam(record)
	if err := validation.ValidateExam(record); err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal(err)
	}
	defer uow.Rollback()

	if err := uow.ExamRepository().Create(ctx, record); err != nil {
		return nil, apperror.Internal(err)
	}
	if err := uow.Commit(); err != nil {
		return nil, apperror.Internal(err)
	}

	s.publisherService.CollectionChanged(ctx, userId, CollectionExams)
	return dto.NewExamResponse(record), nil
}

func (s *examService) Show(ctx context.Context, userId, id uuid.UUID) (*dto.ExamResponse, error) {
	record, err := findExam(ctx, s.uowFactory.NewUnitOfWork(ctx), userId, id)
	if err != nil {
		return nil, err
	}
	return dto.NewExamResponse(record), nil
}

// Start opens a fresh attempt. Progress is not resumable, so a running
// attempt is replaced.
func (s *examService) Start(ctx context.Context, userId, id uuid.UUID) (*dto.CurrentQuestionResponse, error) {
	record, err := findExam(ctx, s.uowFactory.NewUnitOfWork(ctx), userId, id)
	if err != nil {
		return nil, err
	}

	attempt, err := exam.NewAttempt(userId, record)
	if errors.Is(err, exam.ErrAlreadyCompleted) {
		return nil, apperror.Conflict(examCompletedMessage)
	}
	if errors.Is(err, exam.ErrNoQuestions) {
		return nil, apperror.FailedPrecondition("This exam has no questions.")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts.Save(attempt)
	return currentQuestion(attempt)
}

func (s *examService) Current(ctx context.Context, userId, id uuid.UUID) (*dto.CurrentQuestionResponse, error) {
	attempt, ok := s.attempts.Get(userId, id)
	if !ok {
		return nil, apperror.NotFound("No exam in progress. Start the exam first.")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return currentQuestion(attempt)
}

func (s *examService) Answer(ctx context.Context, userId, id uuid.UUID, req *dto.SubmitAnswerRequest) (*dto.SubmitAnswerResponse, error) {
	attempt, ok := s.attempts.Get(userId, id)
	if !ok {
		return nil, apperror.NotFound("No exam in progress. Start the exam first.")
	}

	s.mu.Lock()
	feedback, err := attempt.Submit(exam.Answer{OptionIndex: req.OptionIndex, Text: req.Text}, s.grade)
	var next *dto.CurrentQuestionResponse
	if err == nil && !feedback.Completed {
		next, err = currentQuestion(attempt)
	}
	s.mu.Unlock()

	if errors.Is(err, exam.ErrEmptyAnswer) {
		return nil, apperror.InvalidArgument(constant.EmptyAnswerMessage, nil)
	}
	if errors.Is(err, exam.ErrAlreadyCompleted) {
		return nil, apperror.Conflict(examCompletedMessage)
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}

	res := &dto.SubmitAnswerResponse{
		Index:         feedback.Index,
		Correct:       feedback.Correct,
		CorrectAnswer: feedback.CorrectAnswer,
		Completed:     feedback.Completed,
	}

	if !feedback.Completed {
		res.Next = next
		return res, nil
	}

	if err := s.complete(ctx, attempt); err != nil {
		return nil, err
	}
	res.Result = dto.NewExamResultDTO(attempt.Result())
	return res, nil
}

// complete persists the outcome columns only, so edits made to the exam while
// the attempt ran survive. The attempt is dropped either way; a failed write
// cannot be retried from the same attempt.
func (s *examService) complete(ctx context.Context, attempt *exam.Attempt) error {
	defer s.attempts.Delete(attempt.UserID, attempt.Exam.Id)

	record := attempt.Apply(time.Now())

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return apperror.Internal(err)
	}
	defer uow.Rollback()

	if err := uow.ExamRepository().Complete(ctx, record); err != nil {
		return writeError(err)
	}
	if err := uow.Commit(); err != nil {
		return apperror.Internal(err)
	}

	result := attempt.Result()
	s.publisherService.CollectionChanged(ctx, attempt.UserID, CollectionExams)
	publishEvent(ctx, s.eventPublisher, s.logger, events.New(events.ExamCompleted, map[string]interface{}{
		"user_id":    attempt.UserID.String(),
		"exam_id":    record.Id.String(),
		"score":      result.Score,
		"total":      result.Total,
		"percentage": result.Percentage,
		"grade":      result.Grade,
	}))
	return nil
}

func currentQuestion(attempt *exam.Attempt) (*dto.CurrentQuestionResponse, error) {
	q, err := attempt.Current()
	if err != nil {
		return nil, apperror.Conflict(examCompletedMessage)
	}
	return &dto.CurrentQuestionResponse{
		ExamId:   attempt.Exam.Id,
		Index:    attempt.Index,
		Total:    attempt.Total(),
		State:    string(attempt.State),
		Question: dto.NewQuestionDTO(*q),
	}, nil
}
