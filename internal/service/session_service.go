package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"study-assistant-be/internal/dto"
	"study-assistant-be/internal/entity"
	"study-assistant-be/internal/pkg/apperror"
	"study-assistant-be/internal/repository/contract"
	"study-assistant-be/internal/repository/memory"
	"study-assistant-be/internal/repository/specification"
	"study-assistant-be/internal/repository/unitofwork"
	"study-assistant-be/pkg/validation"

	"github.com/google/uuid"
)

// Sidebar collections. The notes list is derived from conversations that
// carry session notes; generated notes are a separate library.
const (
	CollectionStudySessions  = "study_sessions"
	CollectionSessionNotes   = "notes"
	CollectionExams          = "exams"
	CollectionGeneratedNotes = "generated_notes"
)

const notesListSuffix = " - Notes"

type ISessionService interface {
	List(ctx context.Context, userId uuid.UUID, collection string) ([]dto.SessionListItem, error)
	Show(ctx context.Context, userId uuid.UUID, collection string, id uuid.UUID) (interface{}, error)
	Rename(ctx context.Context, userId uuid.UUID, collection string, id uuid.UUID, req *dto.RenameRequest) error
	Delete(ctx context.Context, userId uuid.UUID, collection string, id uuid.UUID) error
}

type sessionService struct {
	uowFactory       unitofwork.RepositoryFactory
	attempts         *memory.AttemptRepository
	publisherService IPublisherService
}

// attempts is shared with the exam service so deleting an exam also drops
// its running attempt. It may be nil.
func NewSessionService(uowFactory unitofwork.RepositoryFactory, attempts *memory.AttemptRepository, publisherService IPublisherService) ISessionService {
	return &sessionService{
		uowFactory:       uowFactory,
		attempts:         attempts,
		publisherService: publisherService,
	}
}

func checkCollection(collection string) error {
	switch collection {
	case CollectionStudySessions, CollectionSessionNotes, CollectionExams:
		return nil
	}
	return apperror.NotFound("")
}

func ownedBy(userId uuid.UUID) specification.Specification {
	return specification.UserOwnedBy{UserID: userId}
}

func newestFirst() specification.Specification {
	return specification.NewestFirst{}
}

func (s *sessionService) List(ctx context.Context, userId uuid.UUID, collection string) ([]dto.SessionListItem, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}
	return listCollection(ctx, s.uowFactory.NewUnitOfWork(ctx), userId, collection)
}

// listCollection builds one sidebar list. Shared with the realtime feed.
func listCollection(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, collection string) ([]dto.SessionListItem, error) {
	items := make([]dto.SessionListItem, 0)

	switch collection {
	case CollectionExams:
		exams, err := uow.ExamRepository().FindAll(ctx, ownedBy(userId), newestFirst())
		if err != nil {
			return nil, apperror.Internal(err)
		}
		for _, e := range exams {
			items = append(items, dto.NewExamListItem(e))
		}

	case CollectionGeneratedNotes:
		notes, err := uow.NoteRepository().FindAll(ctx, ownedBy(userId), newestFirst())
		if err != nil {
			return nil, apperror.Internal(err)
		}
		for _, n := range notes {
			items = append(items, dto.NewNoteListItem(n))
		}

	case CollectionStudySessions, CollectionSessionNotes:
		sessions, err := uow.StudySessionRepository().FindAll(ctx, ownedBy(userId), newestFirst())
		if err != nil {
			return nil, apperror.Internal(err)
		}
		for _, session := range sessions {
			if collection == CollectionSessionNotes {
				if len(session.SessionNotes) == 0 {
					continue
				}
				item := dto.NewSessionListItem(session)
				item.Title = session.Title + notesListSuffix
				items = append(items, item)
				continue
			}
			items = append(items, dto.NewSessionListItem(session))
		}
	}

	return items, nil
}

func (s *sessionService) Show(ctx context.Context, userId uuid.UUID, collection string, id uuid.UUID) (interface{}, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if collection == CollectionExams {
		exam, err := findExam(ctx, uow, userId, id)
		if err != nil {
			return nil, err
		}
		return dto.NewExamResponse(exam), nil
	}

	session, err := findSession(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}
	res := dto.NewSessionResponse(session)
	if collection == CollectionSessionNotes {
		if len(session.SessionNotes) == 0 {
			return nil, apperror.NotFound("")
		}
		res.Title = session.Title + notesListSuffix
	}
	return res, nil
}

func (s *sessionService) Rename(ctx context.Context, userId uuid.UUID, collection string, id uuid.UUID, req *dto.RenameRequest) error {
	if err := checkCollection(collection); err != nil {
		return err
	}
	title := validation.Sanitize(strings.TrimSpace(req.Title))

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return apperror.Internal(err)
	}
	defer uow.Rollback()

	now := time.Now()
	changed := []string{collection}

	if collection == CollectionExams {
		exam, err := findExam(ctx, uow, userId, id)
		if err != nil {
			return err
		}
		exam.Title = title
		exam.UpdatedAt = &now
		if err := uow.ExamRepository().Update(ctx, exam); err != nil {
			return writeError(err)
		}
	} else {
		// Renaming from the notes list renames the conversation behind it.
		session, err := findSession(ctx, uow, userId, id)
		if err != nil {
			return err
		}
		session.Title = title
		session.UpdatedAt = &now
		if err := uow.StudySessionRepository().Update(ctx, session); err != nil {
			return writeError(err)
		}
		changed = []string{CollectionStudySessions, CollectionSessionNotes}
	}

	if err := uow.Commit(); err != nil {
		return apperror.Internal(err)
	}

	s.publisherService.CollectionChanged(ctx, userId, changed...)
	return nil
}

func (s *sessionService) Delete(ctx context.Context, userId uuid.UUID, collection string, id uuid.UUID) error {
	if err := checkCollection(collection); err != nil {
		return err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return apperror.Internal(err)
	}
	defer uow.Rollback()

	switch collection {
	case CollectionExams:
		if _, err := findExam(ctx, uow, userId, id); err != nil {
			return err
		}
		if err := uow.ExamRepository().Delete(ctx, id); err != nil {
			return apperror.Internal(err)
		}

	case CollectionSessionNotes:
		// Deleting from the notes list only clears the notes.
		session, err := findSession(ctx, uow, userId, id)
		if err != nil {
			return err
		}
		now := time.Now()
		session.SessionNotes = []entity.SessionNote{}
		session.UpdatedAt = &now
		if err := uow.StudySessionRepository().Update(ctx, session); err != nil {
			return writeError(err)
		}

	default:
		if _, err := findSession(ctx, uow, userId, id); err != nil {
			return err
		}
		if err := uow.StudySessionRepository().Delete(ctx, id); err != nil {
			return apperror.Internal(err)
		}
	}

	if err := uow.Commit(); err != nil {
		return apperror.Internal(err)
	}

	if collection == CollectionExams && s.attempts != nil {
		s.attempts.Delete(userId, id)
	}

	changed := []string{collection}
	if collection != CollectionExams {
		changed = []string{CollectionStudySessions, CollectionSessionNotes}
	}
	s.publisherService.CollectionChanged(ctx, userId, changed...)
	return nil
}

// writeError maps a failed repository write. A row deleted in the meantime
// is reported as missing rather than written back.
func writeError(err error) error {
	switch {
	case errors.Is(err, contract.ErrNotFound):
		return apperror.NotFound("")
	case errors.Is(err, contract.ErrAlreadyCompleted):
		return apperror.Conflict(examCompletedMessage)
	}
	return apperror.Internal(err)
}

func findSession(ctx context.Context, uow unitofwork.UnitOfWork, userId, id uuid.UUID) (*entity.StudySession, error) {
	session, err := uow.StudySessionRepository().FindOne(ctx, specification.ByID{ID: id}, ownedBy(userId))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if session == nil {
		return nil, apperror.NotFound("")
	}
	return session, nil
}

func findExam(ctx context.Context, uow unitofwork.UnitOfWork, userId, id uuid.UUID) (*entity.Exam, error) {
	exam, err := uow.ExamRepository().FindOne(ctx, specification.ByID{ID: id}, ownedBy(userId))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exam == nil {
		return nil, apperror.NotFound("")
	}
	return exam, nil
}
