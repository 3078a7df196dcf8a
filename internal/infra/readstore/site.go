package readstore

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"campsite-booking/internal/domain/site"
	"campsite-booking/internal/infra"
	"campsite-booking/internal/pkg/pgconv"
	"campsite-booking/internal/usecase/queries"
)

type SiteReadStore struct {
	pool *pgxpool.Pool
}

func NewSiteReadStore(pool *pgxpool.Pool) *SiteReadStore {
	return &SiteReadStore{pool: pool}
}

func (r *SiteReadStore) List(ctx context.Context) ([]*queries.SiteView, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, daily_rate, surface, allowed_equipment, provided_service,
		       created_at, updated_at
		FROM sites
		ORDER BY name`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list sites", err)
	}
	defer rows.Close()

	var views []*queries.SiteView
	for rows.Next() {
		var v queries.SiteView
		if err := rows.Scan(&v.ID, &v.Name, &v.DailyRate, &v.Surface,
			&v.AllowedEquipment, &v.ProvidedService, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan site row", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read site rows", err)
	}
	return views, nil
}

func (r *SiteReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.SiteView, error) {
	var v queries.SiteView
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, daily_rate, surface, allowed_equipment, provided_service,
		       created_at, updated_at
		FROM sites
		WHERE id = $1`, id).
		Scan(&v.ID, &v.Name, &v.DailyRate, &v.Surface,
			&v.AllowedEquipment, &v.ProvidedService, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("site not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find site by ID", err)
	}
	return &v, nil
}

// ListOrdered returns every site as a domain entity, in the stable name
// order the availability search walks them in.
func (r *SiteReadStore) ListOrdered(ctx context.Context) ([]*site.Site, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, daily_rate, surface, allowed_equipment, provided_service
		FROM sites
		ORDER BY name`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list sites", err)
	}
	defer rows.Close()

	var sites []*site.Site
	for rows.Next() {
		var (
			id                uuid.UUID
			name              string
			dailyRate         int32
			surface           int32
			allowed, provided string
		)
		if err := rows.Scan(&id, &name, &dailyRate, &surface, &allowed, &provided); err != nil {
			return nil, infra.WrapRepoErr("failed to scan site row", err)
		}
		entity, err := reconstructSite(id, name, dailyRate, surface, allowed, provided)
		if err != nil {
			return nil, err
		}
		sites = append(sites, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read site rows", err)
	}
	return sites, nil
}

func reconstructSite(id uuid.UUID, name string, dailyRate, surface int32, allowed, provided string) (*site.Site, error) {
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
