package toml

import (
	"context"
	"sync"

	"github.com/bnema/ihaveaplan/internal/domain"
	"github.com/bnema/ihaveaplan/internal/ports"
	"github.com/spf13/viper"
)

const planLabel = "plan"

type PlanRepository struct {
	path string
	mu   *sync.RWMutex
}

var _ ports.PlanRepository = (*PlanRepository)(nil)

func NewPlanRepository(cfg *viper.Viper) (*PlanRepository, error) {
	path, err := resolvePath(cfg, PlanPathKey, planFileName)
	if err != nil {
		return nil, err
	}
	return &PlanRepository{path: path, mu: lockForPath(path)}, nil
}

func (r *PlanRepository) Path() string {
	return r.path
}

// Load returns the empty plan when no plan has been saved.
func (r *PlanRepository) Load(ctx context.Context) (domain.Plan, error) {
	if err := ctx.Err(); err != nil {
		return domain.Plan{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var file planFileSchema
	found, err := readTOMLFile(r.path, planLabel, &file)
	if err != nil {
		return domain.Plan{}, err
	}
	if !found {
		return domain.NewPlan(""), nil
	}
	if err := checkVersion(planLabel, file.Version, currentPlanSchemaVersion); err != nil {
		return domain.Plan{}, err
	}

	return fromPlanSchema(file), nil
}

func (r *PlanRepository) Save(ctx context.Context, plan domain.Plan) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return writeTOMLFile(r.path, planLabel, toPlanSchema(plan))
}
