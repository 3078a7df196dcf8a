package writerepo

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"campsite-booking/internal/domain/site"
	"campsite-booking/internal/infra"
	"campsite-booking/internal/pkg/pgconv"
)

// SiteRepository loads sites as domain entities for the lifecycle commands.
// The catalog is read-only at runtime; rows come from the seed data.
type SiteRepository struct {
	pool *pgxpool.Pool
}

func NewSiteRepository(pool *pgxpool.Pool) *SiteRepository {
	return &SiteRepository{pool: pool}
}

func (r *SiteRepository) FindByID(ctx context.Context, id uuid.UUID) (*site.Site, error) {
	var (
		name              string
		dailyRate         int32
		surface           int32
		allowed, provided string
	)
	err := r.pool.QueryRow(ctx, `
		SELECT name, daily_rate, surface, allowed_equipment, provided_service
		FROM sites
		WHERE id = $1`, id).
		Scan(&name, &dailyRate, &surface, &allowed, &provided)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("site not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find site by ID", err)
	}

	equipment, err := site.NewEquipment(allowed)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid equipment catalog value", err)
	}
	service, err := site.NewService(provided)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid service catalog value", err)
	}
	return site.ReconstructSite(id, name, dailyRate, surface, equipment, service), nil
}
