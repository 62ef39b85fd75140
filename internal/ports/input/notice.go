package input

import (
	"context"

	"translationgate/internal/domain/entities"
)

type NoticeUseCase interface {
	Check(ctx context.Context)
	Notices() []entities.Notice
}
