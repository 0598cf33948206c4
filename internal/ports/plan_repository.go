package ports

import (
	"context"

	"github.com/bnema/ihaveaplan/internal/domain"
)

// PlanRepository stores the single plan aggregate. Save replaces it wholesale.
type PlanRepository interface {
	Load(ctx context.Context) (domain.Plan, error)
	Save(ctx context.Context, plan domain.Plan) error
}
