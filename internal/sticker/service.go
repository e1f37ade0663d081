// Package sticker 는 목표 스티커의 생성·수정·완료 토글을 제공한다.
package sticker

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jiwoolab/track/internal/model"
	"github.com/jiwoolab/track/internal/repository"
)

// Service 는 스티커 보드를 담당한다.
type Service struct {
	stickerRepo repository.StickerRepository
}

// NewService 는 Service를 생성한다.
func NewService(stickerRepo repository.StickerRepository) *Service {
	return &Service{stickerRepo: stickerRepo}
}

// List 는 사용자의 스티커를 생성일 오름차순으로 반환한다.
func (s *Service) List(ctx context.Context, userID string) ([]*model.Sticker, error) {
	stickers, err := s.stickerRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("스티커 조회에 실패했습니다: %w", err)
	}
	return stickers, nil
}

// Create 는 미완료 상태의 스티커를 생성한다. 빈 텍스트도 허용한다.
func (s *Service) Create(ctx context.Context, userID, text string) (*model.Sticker, error) {
	now := time.Now()
	sticker := &model.Sticker{
		ID:          uuid.NewString(),
		UserID:      userID,
		Text:        text,
		IsCompleted: false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.stickerRepo.Create(ctx, sticker); err != nil {
		return nil, fmt.Errorf("스티커 생성에 실패했습니다: %w", err)
	}
	return sticker, nil
}

// UpdateText 는 스티커 텍스트를 갱신한다. 완료 상태는 바꾸지 않는다.
func (s *Service) UpdateText(ctx context.Context, userID, id, text string) (*model.Sticker, error) {
	sticker, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	sticker.Text = text
	sticker.UpdatedAt = time.Now()
	if err := s.stickerRepo.Update(ctx, sticker); err != nil {
		return nil, fmt.Errorf("스티커 갱신에 실패했습니다: %w", err)
	}
	return sticker, nil
}

// Toggle 은 스티커의 완료 상태를 반전한다.
func (s *Service) Toggle(ctx context.Context, userID, id string) (*model.Sticker, error) {
	sticker, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	sticker.IsCompleted = !sticker.IsCompleted
	sticker.UpdatedAt = time.Now()
	if err := s.stickerRepo.Update(ctx, sticker); err != nil {
		return nil, fmt.Errorf("스티커 갱신에 실패했습니다: %w", err)
	}
	return sticker, nil
}

// Delete 는 스티커를 삭제한다.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.findOwned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.stickerRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("스티커 삭제에 실패했습니다: %w", err)
	}
	return nil
}

func (s *Service) findOwned(ctx context.Context, userID, id string) (*model.Sticker, error) {
	sticker, err := s.stickerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("스티커 조회에 실패했습니다: %w", err)
	}
	if sticker == nil || sticker.UserID != userID {
		return nil, model.NewStickerNotFoundError(id)
	}
	return sticker, nil
}
