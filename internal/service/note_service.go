package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"study-assistant-be/internal/dto"
	"study-assistant-be/internal/entity"
	"study-assistant-be/internal/pkg/apperror"
	"study-assistant-be/internal/pkg/logger"
	"study-assistant-be/internal/repository/specification"
	"study-assistant-be/internal/repository/unitofwork"
	"study-assistant-be/pkg/events"
	"study-assistant-be/pkg/notegen"
	"study-assistant-be/pkg/validation"

	"github.com/google/uuid"
)

type INoteService interface {
	Generate(ctx context.Context, userId uuid.UUID, req *dto.GenerateNoteRequest) (*dto.NoteResponse, error)
	GenerateFromSession(ctx context.Context, userId, sessionId uuid.UUID) (*dto.NoteResponse, error)
	GenerateFromTranscript(ctx context.Context, userId uuid.UUID, transcript, suggestedTitle string, sessionId *uuid.UUID, noteType entity.NoteType) (*dto.NoteResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]*dto.NoteResponse, error)
	Show(ctx context.Context, userId, id uuid.UUID) (*dto.NoteResponse, error)
	Rename(ctx context.Context, userId, id uuid.UUID, req *dto.RenameRequest) (*dto.NoteResponse, error)
	Delete(ctx context.Context, userId, id uuid.UUID) error
}

type noteService struct {
	uowFactory       unitofwork.RepositoryFactory
	generator        *notegen.Generator
	publisherService IPublisherService
	eventPublisher   EventPublisher
	logger           logger.ILogger
}

func NewNoteService(
	uowFactory unitofwork.RepositoryFactory,
	generator *notegen.Generator,
	publisherService IPublisherService,
	eventPublisher EventPublisher,
	log logger.ILogger,
) INoteService {
	return &noteService{
		uowFactory:       uowFactory,
		generator:        generator,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           log,
	}
}

func (c *noteService) Generate(ctx context.Context, userId uuid.UUID, req *dto.GenerateNoteRequest) (*dto.NoteResponse, error) {
	return c.GenerateFromTranscript(ctx, userId, req.Content, strings.TrimSpace(req.Title), nil, entity.NoteTypeGenerated)
}

func (c *noteService) GenerateFromSession(ctx context.Context, userId, sessionId uuid.UUID) (*dto.NoteResponse, error) {
	session, err := findSession(ctx, c.uowFactory.NewUnitOfWork(ctx), userId, sessionId)
	if err != nil {
		return nil, err
	}

	res, err := c.GenerateFromTranscript(ctx, userId, notegen.Transcript(session.Messages), session.Title, &session.Id, entity.NoteTypeAutoGenerated)
	var appErr *apperror.Error
	if errors.As(err, &appErr) && appErr.Code == apperror.CodeInvalidArgument {
		return nil, apperror.FailedPrecondition("This session has no messages to take notes from.")
	}
	return res, err
}

// GenerateFromTranscript runs the notes generator and stores the result.
// Generation failures are absorbed by the fallback notes.
func (c *noteService) GenerateFromTranscript(
	ctx context.Context,
	userId uuid.UUID,
	transcript, suggestedTitle string,
	sessionId *uuid.UUID,
	noteType entity.NoteType,
) (*dto.NoteResponse, error) {
	generated, err := c.generator.Generate(ctx, transcript, suggestedTitle)
	if errors.Is(err, notegen.ErrEmptyTranscript) {
		return nil, apperror.InvalidArgument("There is nothing to take notes from.", map[string]string{"content": "content is required"})
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if generated.Err != nil {
		c.logger.Warn("NOTES", "Generation failed, using fallback notes", map[string]interface{}{
			"user_id": userId,
			"error":   generated.Err.Error(),
		})
	}

	note := &entity.Note{
		Id:        uuid.New(),
		UserId:    userId,
		SessionId: sessionId,
		Title:     generated.Title,
		Content:   generated.Content,
		Topic:     generated.Topic,
		Type:      noteType,
		CreatedAt: time.Now(),
	}
	validation.SanitizeNote(note)
	if err := validation.ValidateNote(note); err != nil {
		return nil, err
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal(err)
	}
	defer uow.Rollback()

	if err := uow.NoteRepository().Create(ctx, note); err != nil {
		return nil, apperror.Internal(err)
	}
	if err := uow.Commit(); err != nil {
		return nil, apperror.Internal(err)
	}

	c.publisherService.CollectionChanged(ctx, userId, CollectionGeneratedNotes)
	publishEvent(ctx, c.eventPublisher, c.logger, events.New(events.NotesGenerated, map[string]interface{}{
		"user_id":  userId.String(),
		"note_id":  note.Id.String(),
		"title":    note.Title,
		"type":     string(note.Type),
		"fallback": generated.Err != nil,
	}))

	return dto.NewNoteResponse(note), nil
}

func (c *noteService) List(ctx context.Context, userId uuid.UUID) ([]*dto.NoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	notes, err := uow.NoteRepository().FindAll(ctx, ownedBy(userId), newestFirst())
	if err != nil {
		return nil, apperror.Internal(err)
	}

	res := make([]*dto.NoteResponse, 0, len(notes))
	for _, n := range notes {
		res = append(res, dto.NewNoteResponse(n))
	}
	return res, nil
}

func (c *noteService) Show(ctx context.Context, userId, id uuid.UUID) (*dto.NoteResponse, error) {
	note, err := c.find(ctx, c.uowFactory.NewUnitOfWork(ctx), userId, id)
	if err != nil {
		return nil, err
	}
	return dto.NewNoteResponse(note), nil
}

func (c *noteService) Rename(ctx context.Context, userId, id uuid.UUID, req *dto.RenameRequest) (*dto.NoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal(err)
	}
	defer uow.Rollback()

	note, err := c.find(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	note.Title = validation.Sanitize(strings.TrimSpace(req.Title))
	note.UpdatedAt = &now

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, writeError(err)
	}
	if err := uow.Commit(); err != nil {
		return nil, apperror.Internal(err)
	}

	c.publisherService.CollectionChanged(ctx, userId, CollectionGeneratedNotes)
	return dto.NewNoteResponse(note), nil
}

func (c *noteService) Delete(ctx context.Context, userId, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return apperror.Internal(err)
	}
	defer uow.Rollback()

	if _, err := c.find(ctx, uow, userId, id); err != nil {
		return err
	}
	if err := uow.NoteRepository().Delete(ctx, id); err != nil {
		return apperror.Internal(err)
	}
	if err := uow.Commit(); err != nil {
		return apperror.Internal(err)
	}

	c.publisherService.CollectionChanged(ctx, userId, CollectionGeneratedNotes)
	return nil
}

func (c *noteService) find(ctx context.Context, uow unitofwork.UnitOfWork, userId, id uuid.UUID) (*entity.Note, error) {
	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: id}, ownedBy(userId))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if note == nil {
		return nil, apperror.NotFound("")
	}
	return note, nil
}
