package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"study-assistant-be/internal/constant"
	"study-assistant-be/internal/dto"
	"study-assistant-be/internal/entity"
	"study-assistant-be/internal/pkg/apperror"
	"study-assistant-be/internal/pkg/logger"
	"study-assistant-be/internal/repository/unitofwork"
	"study-assistant-be/pkg/notegen"
	"study-assistant-be/pkg/tutor"
	"study-assistant-be/pkg/validation"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

const (
	titleMaxLength = 50

	// autoNoteWindow is how many trailing messages feed a session note.
	autoNoteWindow = 4

	// turnTimeout bounds how long a conversation stays locked by one turn.
	turnTimeout = 3 * time.Minute

	ActionError = "error"
)

type IChatService interface {
	Welcome(ctx context.Context, sessionType string) (*dto.WelcomeResponse, error)
	Send(ctx context.Context, userId uuid.UUID, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
}

type chatService struct {
	uowFactory       unitofwork.RepositoryFactory
	tutor            *tutor.Tutor
	notes            *notegen.Generator
	noteService      INoteService
	examService      IExamService
	publisherService IPublisherService
	logger           logger.ILogger

	// inFlight holds one key per conversation with a turn in progress.
	inFlight *cache.Cache
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	tutor *tutor.Tutor,
	notes *notegen.Generator,
	noteService INoteService,
	examService IExamService,
	publisherService IPublisherService,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:       uowFactory,
		tutor:            tutor,
		notes:            notes,
		noteService:      noteService,
		examService:      examService,
		publisherService: publisherService,
		logger:           log,
		inFlight:         cache.New(turnTimeout, time.Minute),
	}
}

func (c *chatService) Welcome(ctx context.Context, sessionType string) (*dto.WelcomeResponse, error) {
	t := entity.SessionType(sessionType)
	if !t.Valid() {
		return nil, apperror.NotFound("")
	}
	return &dto.WelcomeResponse{SessionType: sessionType, Message: tutor.Welcome(t)}, nil
}

// Send runs one tutor turn. Only one turn per conversation may be in flight.
// Failures after the conversation is resolved are answered with the canned
// error reply instead of an error response.
func (c *chatService) Send(ctx context.Context, userId uuid.UUID, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	session, isNew, err := c.resolveSession(ctx, userId, req)
	if err != nil {
		return nil, err
	}

	key := userId.String() + ":" + session.Id.String()
	if isNew {
		key = userId.String() + ":new:" + string(session.Type)
	}
	if err := c.inFlight.Add(key, struct{}{}, cache.DefaultExpiration); err != nil {
		return nil, apperror.Conflict("A reply is already being generated for this conversation.")
	}
	defer c.inFlight.Delete(key)

	before := len(session.Messages)
	res, err := c.turn(ctx, userId, session, isNew, req.Message)
	if err != nil {
		c.logger.Error("CHAT", "Turn failed", map[string]interface{}{
			"user_id":    userId,
			"session_id": session.Id,
			"error":      err.Error(),
		})
		return c.errorReply(ctx, userId, session, isNew, before), nil
	}
	return res, nil
}

func (c *chatService) resolveSession(ctx context.Context, userId uuid.UUID, req *dto.SendMessageRequest) (*entity.StudySession, bool, error) {
	if req.SessionId != nil {
		session, err := findSession(ctx, c.uowFactory.NewUnitOfWork(ctx), userId, *req.SessionId)
		if err != nil {
			return nil, false, err
		}
		return session, false, nil
	}

	sessionType := entity.SessionType(req.SessionType)
	if sessionType == "" {
		sessionType = entity.SessionTypeStudy
	}
	if !sessionType.Valid() {
		return nil, false, apperror.InvalidArgument("Unknown session type.", map[string]string{"session_type": "must be one of study_sessions notes exams"})
	}

	return &entity.StudySession{
		Id:           uuid.New(),
		UserId:       userId,
		Type:         sessionType,
		Messages:     []entity.Message{},
		SessionNotes: []entity.SessionNote{},
		CreatedAt:    time.Now(),
	}, true, nil
}

func (c *chatService) turn(ctx context.Context, userId uuid.UUID, session *entity.StudySession, isNew bool, message string) (*dto.SendMessageResponse, error) {
	session.Messages = append(session.Messages, entity.Message{
		Sender:    entity.SenderUser,
		Content:   validation.Sanitize(strings.TrimSpace(message)),
		Timestamp: time.Now(),
	})

	reply := c.tutor.Respond(ctx, session.Type, session.Messages)
	if reply.Fallback() {
		c.logger.Warn("CHAT", "Tutor generation failed, using fallback reply", map[string]interface{}{
			"session_id": session.Id,
			"error":      reply.Err.Error(),
		})
	}

	aiMessage := entity.Message{Sender: entity.SenderAI, Content: reply.Text, Timestamp: time.Now()}
	session.Messages = append(session.Messages, aiMessage)
	session.Title = SessionTitle(session.Messages, session.Type, session.CreatedAt)

	if err := c.save(ctx, session, isNew); err != nil {
		return nil, err
	}

	res := &dto.SendMessageResponse{
		SessionId:   session.Id,
		SessionType: string(session.Type),
		Title:       session.Title,
		Reply:       dto.MessageDTO{Sender: string(aiMessage.Sender), Content: aiMessage.Content, Timestamp: aiMessage.Timestamp},
		Action:      string(reply.Action),
	}

	switch reply.Action {
	case tutor.ActionGenerateNotes:
		c.generateNotes(ctx, userId, session, reply.Transcript, res)
	case tutor.ActionGenerateExam:
		c.generateExam(ctx, userId, res)
	}

	if note := c.autoSessionNote(ctx, session); note != nil {
		res.SessionNote = &dto.SessionNoteDTO{Title: note.Title, Content: note.Content, CreatedAt: note.CreatedAt}
	}

	c.publisherService.CollectionChanged(ctx, userId, CollectionStudySessions, CollectionSessionNotes)
	return res, nil
}

func (c *chatService) generateNotes(ctx context.Context, userId uuid.UUID, session *entity.StudySession, transcript string, res *dto.SendMessageResponse) {
	note, err := c.noteService.GenerateFromTranscript(ctx, userId, transcript, session.Title, &session.Id, entity.NoteTypeGenerated)
	if err != nil {
		c.logger.Warn("CHAT", "Notes command failed", map[string]interface{}{"session_id": session.Id, "error": err.Error()})
		res.FollowUp = followUp(constant.NotesFailedReply)
		return
	}
	res.Note = note
	res.FollowUp = followUp(fmt.Sprintf(constant.NotesCreatedReplyTemplate, note.Title))
}

func (c *chatService) generateExam(ctx context.Context, userId uuid.UUID, res *dto.SendMessageResponse) {
	created, err := c.examService.Generate(ctx, userId, "")
	if err != nil {
		c.logger.Warn("CHAT", "Exam command failed", map[string]interface{}{"user_id": userId, "error": err.Error()})
		res.FollowUp = followUp(constant.ExamFailedReply)
		return
	}
	res.Exam = created
	res.FollowUp = followUp(fmt.Sprintf(constant.ExamCreatedReplyTemplate, created.Title))
}

// autoSessionNote summarizes the last exchange every second user turn once
// the conversation has some depth. Failures only cost the note.
func (c *chatService) autoSessionNote(ctx context.Context, session *entity.StudySession) *entity.SessionNote {
	if !ShouldTakeSessionNote(session) {
		return nil
	}

	note, err := c.notes.SessionNote(ctx, session.Messages[len(session.Messages)-autoNoteWindow:])
	if err != nil {
		return nil
	}

	session.SessionNotes = append(session.SessionNotes, *note)
	if err := c.save(ctx, session, false); err != nil {
		c.logger.Warn("CHAT", "Failed to store session note", map[string]interface{}{"session_id": session.Id, "error": err.Error()})
		session.SessionNotes = session.SessionNotes[:len(session.SessionNotes)-1]
		return nil
	}
	return note
}

func (c *chatService) save(ctx context.Context, session *entity.StudySession, isNew bool) error {
	now := time.Now()
	session.UpdatedAt = &now
	validation.SanitizeSession(session)
	if err := validation.ValidateSession(session); err != nil {
		return err
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	repo := uow.StudySessionRepository()
	if isNew {
		if err := repo.Create(ctx, session); err != nil {
			return err
		}
	} else if err := repo.Update(ctx, session); err != nil {
		return err
	}
	return uow.Commit()
}

// errorReply answers a failed turn with the canned reply. The student's
// message and the reply are kept in the conversation when the store takes
// the write; a conversation deleted in the meantime is not recreated.
func (c *chatService) errorReply(ctx context.Context, userId uuid.UUID, session *entity.StudySession, isNew bool, before int) *dto.SendMessageResponse {
	reply := entity.Message{Sender: entity.SenderAI, Content: constant.ChatErrorReply, Timestamp: time.Now()}

	// drop whatever the turn added after the student's message
	end := before + 1
	if end > len(session.Messages) {
		end = len(session.Messages)
	}
	session.Messages = append(session.Messages[:end:end], reply)
	session.Title = SessionTitle(session.Messages, session.Type, session.CreatedAt)

	res := &dto.SendMessageResponse{
		SessionType: string(session.Type),
		Title:       session.Title,
		Reply:       dto.MessageDTO{Sender: string(reply.Sender), Content: reply.Content, Timestamp: reply.Timestamp},
		Action:      ActionError,
	}

	if err := c.save(ctx, session, isNew); err != nil {
		c.logger.Warn("CHAT", "Failed to store error reply", map[string]interface{}{
			"session_id": session.Id,
			"error":      err.Error(),
		})
		if !isNew {
			res.SessionId = session.Id
		}
		return res
	}

	res.SessionId = session.Id
	c.publisherService.CollectionChanged(ctx, userId, CollectionStudySessions, CollectionSessionNotes)
	return res
}

func followUp(text string) *dto.MessageDTO {
	return &dto.MessageDTO{Sender: string(entity.SenderAI), Content: text, Timestamp: time.Now()}
}

// ShouldTakeSessionNote is true after an even user turn in a conversation
// holding at least four messages.
func ShouldTakeSessionNote(session *entity.StudySession) bool {
	users := session.UserMessageCount()
	return len(session.Messages) >= autoNoteWindow && users >= 2 && users%2 == 0
}

// SessionTitle names a conversation after its first user message, or after
// its type and creation date while there is none.
func SessionTitle(messages []entity.Message, sessionType entity.SessionType, createdAt time.Time) string {
	for _, m := range messages {
		if m.Sender != entity.SenderUser {
			continue
		}
		content := strings.TrimSpace(m.Content)
		if content == "" {
			break
		}
		if utf8.RuneCountInString(content) > titleMaxLength {
			return string([]rune(content)[:titleMaxLength]) + "..."
		}
		return content
	}

	date := createdAt.Format("1/2/2006")
	switch sessionType {
	case entity.SessionTypeNotes:
		return "Notes - " + date
	case entity.SessionTypeExams:
		return "Exam Prep - " + date
	default:
		return "Study Session - " + date
	}
}
