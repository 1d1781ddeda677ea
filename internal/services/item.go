package services

import (
	"context"
	"errors"
	"strings"

	"github.com/Ninibaz/Ninibaz-REMWASTE-Assignment/types"
)

// ErrEmptyText is returned when an item would end up with blank text.
var ErrEmptyText = errors.New("text is required")

// ItemRepository defines persistence operations for items. All operations
// are scoped to an owner; a mismatched owner behaves like a missing record.
type ItemRepository interface {
	ListByOwner(ctx context.Context, ownerID int) ([]types.Item, error)
	GetByOwner(ctx context.Context, ownerID, id int) (types.Item, error)
	Create(ctx context.Context, item types.Item) (types.Item, error)
	UpdateFields(ctx context.Context, ownerID, id int, patch types.ItemPatch) (types.Item, error)
	DeleteByOwner(ctx context.Context, ownerID, id int) error
}

// ItemService encapsulates item use-cases.
type ItemService struct {
	repo ItemRepository
}

func NewItemService(repo ItemRepository) *ItemService {
	return &ItemService{repo: repo}
}

func (s *ItemService) List(ctx context.Context, ownerID int) ([]types.Item, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *ItemService) Get(ctx context.Context, ownerID, id int) (types.Item, error) {
	return s.repo.GetByOwner(ctx, ownerID, id)
}

// Create validates the text and stores a new item owned by ownerID. The
// owner comes from the authenticated caller, never from the payload.
func (s *ItemService) Create(ctx context.Context, ownerID int, text string, completed bool) (types.Item, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return types.Item{}, ErrEmptyText
	}

	return s.repo.Create(ctx, types.Item{
		UserID:    ownerID,
		Text:      text,
		Completed: completed,
	})
}

// Update applies a partial patch. Fields absent from the patch are left
// untouched; a present-but-blank text is rejected before any storage call.
func (s *ItemService) Update(ctx context.Context, ownerID, id int, patch types.ItemPatch) (types.Item, error) {
	if patch.Text != nil {
		trimmed := strings.TrimSpace(*patch.Text)
		if trimmed == "" {
			return types.Item{}, ErrEmptyText
		}
		patch.Text = &trimmed
	}

	if patch.IsEmpty() {
		return s.repo.GetByOwner(ctx, ownerID, id)
	}

	return s.repo.UpdateFields(ctx, ownerID, id, patch)
}

func (s *ItemService) Delete(ctx context.Context, ownerID, id int) error {
	return s.repo.DeleteByOwner(ctx, ownerID, id)
}
