package service

import (
	"context"
	"encoding/json"
	"time"

	"orgnotes-be/internal/dto"
	"orgnotes-be/internal/entity"
	"orgnotes-be/internal/pkg/apperrors"
	"orgnotes-be/internal/repository/specification"
	"orgnotes-be/internal/repository/unitofwork"
	"orgnotes-be/pkg/events"
	pktNats "orgnotes-be/pkg/nats"

	"github.com/google/uuid"
)

type INoteService interface {
	List(ctx context.Context, userID, orgID uuid.UUID) ([]dto.NoteDTO, error)
	Create(ctx context.Context, userID uuid.UUID, req *dto.CreateNoteRequest) (*dto.CreateNoteResponse, error)
	Update(ctx context.Context, userID uuid.UUID, req *dto.UpdateNoteRequest) (*dto.UpdateNoteResponse, error)
	Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error
}

type noteService struct {
	uowFactory       unitofwork.RepositoryFactory
	orgService       IOrgService
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
}

func NewNoteService(
	uowFactory unitofwork.RepositoryFactory,
	orgService IOrgService,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
) INoteService {
	return &noteService{
		uowFactory:       uowFactory,
		orgService:       orgService,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
	}
}

// List returns the org's notes, most recently updated first.
func (c *noteService) List(ctx context.Context, userID, orgID uuid.UUID) ([]dto.NoteDTO, error) {
	if err := c.orgService.RequireMembership(ctx, orgID, userID); err != nil {
		return nil, err
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)

	notes, err := uow.NoteRepository().FindAll(ctx,
		specification.ByOrgID{OrgID: orgID},
		specification.OrderBy{Field: "updated_at", Desc: true},
	)
	if err != nil {
		return nil, apperrors.Backend("failed to list notes", err)
	}

	result := make([]dto.NoteDTO, 0, len(notes))
	for _, note := range notes {
		result = append(result, dto.NoteDTO{
			Id:        note.Id,
			OrgId:     note.OrgId,
			AuthorId:  note.AuthorId,
			Title:     note.Title,
			Content:   note.Content,
			CreatedAt: note.CreatedAt,
			UpdatedAt: note.UpdatedAt,
		})
	}
	return result, nil
}

func (c *noteService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateNoteRequest) (*dto.CreateNoteResponse, error) {
	if err := c.orgService.RequireMembership(ctx, req.OrgId, userID); err != nil {
		return nil, err
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)

	now := time.Now()
	note := entity.Note{
		Id:        uuid.New(),
		OrgId:     req.OrgId,
		AuthorId:  userID,
		Title:     req.Title,
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: &now,
	}

	if err := uow.NoteRepository().Create(ctx, &note); err != nil {
		return nil, apperrors.Backend("failed to create note", err)
	}

	c.publishChange(ctx, note.OrgId, note.Id, "created")

	return &dto.CreateNoteResponse{Id: note.Id}, nil
}

func (c *noteService) Update(ctx context.Context, userID uuid.UUID, req *dto.UpdateNoteRequest) (*dto.UpdateNoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, apperrors.Backend("failed to load note", err)
	}
	if note == nil {
		return nil, apperrors.NotFound("note not found")
	}

	if err := c.orgService.RequireMembership(ctx, note.OrgId, userID); err != nil {
		return nil, err
	}

	now := time.Now()
	note.Title = req.Title
	note.Content = req.Content
	note.UpdatedAt = &now

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, apperrors.Backend("failed to update note", err)
	}

	c.publishChange(ctx, note.OrgId, note.Id, "updated")

	return &dto.UpdateNoteResponse{Id: note.Id}, nil
}

func (c *noteService) Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return apperrors.Backend("failed to load note", err)
	}
	if note == nil {
		return apperrors.NotFound("note not found")
	}

	if err := c.orgService.RequireMembership(ctx, note.OrgId, userID); err != nil {
		return err
	}

	if err := uow.NoteRepository().Delete(ctx, id); err != nil {
		return apperrors.Backend("failed to delete note", err)
	}

	c.publishChange(ctx, note.OrgId, note.Id, "deleted")

	return nil
}

// publishChange fans the mutation out on both buses: the in-process channel
// feeds the websocket change feed, NATS feeds anything outside the process.
// The write already committed, so a publish failure is logged by the
// publisher and swallowed here; subscribers catch up on their next refetch.
func (c *noteService) publishChange(ctx context.Context, orgID, noteID uuid.UUID, action string) {
	msgPayload := dto.NoteChangeMessage{
		OrgId:  orgID,
		NoteId: noteID,
		Action: action,
	}
	if msgJson, err := json.Marshal(msgPayload); err == nil {
		_ = c.publisherService.Publish(ctx, msgJson)
	}

	if c.eventPublisher != nil {
		eventType := "NOTE_CREATED"
		switch action {
		case "updated":
			eventType = "NOTE_UPDATED"
		case "deleted":
			eventType = "NOTE_DELETED"
		}
		evt := events.BaseEvent{
			Type: eventType,
			Data: map[string]interface{}{
				"org_id":  orgID.String(),
				"note_id": noteID.String(),
				"action":  action,
			},
			OccurredAt: time.Now(),
		}
		_ = c.eventPublisher.Publish(ctx, evt)
	}
}
