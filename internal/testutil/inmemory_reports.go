package testutil

import (
	"context"
	"sort"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/thrivecorp/platform/internal/model"
)

// billedAccess is one access that survives the report join chain
type billedAccess struct {
	access  model.Access
	user    model.User
	collab  model.Collaborator
	company model.Company
	gym     model.Gym
	price   decimal.NullDecimal
}

func inPeriod(ts time.Time, year, month int) bool {
	ts = ts.UTC()
	return ts.Year() == year && int(ts.Month()) == month
}

// firstPrice mirrors the first_plans CTE; mu must be held
func (r *InMemoryRepository) firstPrice(providerID uint) decimal.NullDecimal {
	plans := r.providerPlans(providerID)
	if len(plans) == 0 {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(plans[0].PricePerAccess)
}

// joinedAccesses applies the inner joins shared by every report query.
// When activeOnly is set, accesses of inactive collaborators are dropped.
func (r *InMemoryRepository) joinedAccesses(year, month int, activeOnly bool) []billedAccess {
	collabByUser := lo.SliceToMap(lo.Values(r.data.collaborators), func(c model.Collaborator) (uint, model.Collaborator) {
		return c.UserID, c
	})
	out := make([]billedAccess, 0)
	for _, a := range r.data.accesses {
		if !inPeriod(a.AccessTimestamp, year, month) {
			continue
		}
		u, ok := r.data.users[a.UserID]
		if !ok {
			continue
		}
		col, ok := collabByUser[u.ID]
		if !ok || (activeOnly && col.Status != model.CollaboratorStatusActive) {
			continue
		}
		c, ok := r.data.companies[col.CompanyID]
		if !ok {
			continue
		}
		g, ok := r.data.gyms[a.GymID]
		if !ok {
			continue
		}
		if _, ok := r.data.providers[g.ProviderID]; !ok && activeOnly {
			continue
		}
		out = append(out, billedAccess{
			access:  a,
			user:    u,
			collab:  col,
			company: c,
			gym:     g,
			price:   r.firstPrice(g.ProviderID),
		})
	}
	return out
}

func sortRecentFirst(rows []billedAccess) {
	sort.Slice(rows, func(i, j int) bool {
		ti, tj := rows[i].access.AccessTimestamp, rows[j].access.AccessTimestamp
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return rows[i].access.ID > rows[j].access.ID
	})
}

type memAccesses struct{ r *InMemoryRepository }

func (s *memAccesses) Create(ctx context.Context, access *model.Access) error {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	if err := s.r.fault("accesses.create"); err != nil {
		return err
	}
	access.ID = s.r.nextID()
	s.r.data.accesses[access.ID] = *access
	return nil
}

func (s *memAccesses) CompanyDetails(ctx context.Context, companyID uint, year, month int) ([]*model.AccessDetailRow, error) {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	if err := s.r.fault("accesses.company_details"); err != nil {
		return nil, err
	}
	rows := lo.Filter(s.r.joinedAccesses(year, month, true), func(b billedAccess, _ int) bool {
		return b.company.ID == companyID
	})
	sortRecentFirst(rows)
	return lo.Map(rows, func(b billedAccess, _ int) *model.AccessDetailRow {
		return &model.AccessDetailRow{
			AccessID:       b.access.ID,
			Timestamp:      b.access.AccessTimestamp,
			FirstName:      b.user.FirstName,
			LastName:       b.user.LastName,
			GymName:        b.gym.Name,
			PricePerAccess: b.price,
		}
	}), nil
}

func (s *memAccesses) CompanyUsage(ctx context.Context, companyID uint, year, month int) ([]*model.CollaboratorUsageRow, error) {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	if err := s.r.fault("accesses.company_usage"); err != nil {
		return nil, err
	}
	byUser := map[uint]*model.CollaboratorUsageRow{}
	for _, b := range s.r.joinedAccesses(year, month, true) {
		if b.company.ID != companyID {
			continue
		}
		row, ok := byUser[b.user.ID]
		if !ok {
			row = &model.CollaboratorUsageRow{
				UserID:    b.user.ID,
				FirstName: b.user.FirstName,
				LastName:  b.user.LastName,
				TotalCost: decimal.Zero,
			}
			byUser[b.user.ID] = row
		}
		row.TotalAccesses++
		if b.price.Valid {
			row.TotalCost = row.TotalCost.Add(b.price.Decimal)
		}
	}
	rows := lo.Values(byUser)
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].FirstName != rows[j].FirstName {
			return rows[i].FirstName < rows[j].FirstName
		}
		if rows[i].LastName != rows[j].LastName {
			return rows[i].LastName < rows[j].LastName
		}
		return rows[i].UserID < rows[j].UserID
	})
	return rows, nil
}

func (s *memAccesses) ProviderReport(ctx context.Context, providerID uint, year, month int) ([]*model.ProviderAccessRow, error) {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	if err := s.r.fault("accesses.provider_report"); err != nil {
		return nil, err
	}
	rows := lo.Filter(s.r.joinedAccesses(year, month, false), func(b billedAccess, _ int) bool {
		return b.gym.ProviderID == providerID
	})
	sortRecentFirst(rows)
	return lo.Map(rows, func(b billedAccess, _ int) *model.ProviderAccessRow {
		return &model.ProviderAccessRow{
			AccessID:       b.access.ID,
			Timestamp:      b.access.AccessTimestamp,
			FirstName:      b.user.FirstName,
			LastName:       b.user.LastName,
			CompanyName:    b.company.Name,
			GymName:        b.gym.Name,
			PricePerAccess: b.price,
		}
	}), nil
}

type memBilling struct{ r *InMemoryRepository }

func (s *memBilling) MonthlyReport(ctx context.Context, year, month int) ([]*model.BillingReportRow, error) {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	if err := s.r.fault("billing.monthly_report"); err != nil {
		return nil, err
	}
	byCompany := map[uint]*model.BillingReportRow{}
	for _, b := range s.r.joinedAccesses(year, month, true) {
		row, ok := byCompany[b.company.ID]
		if !ok {
			status := model.BillingStatusPending
			if h, found := s.r.data.billing[billingKey{b.company.ID, year, month}]; found {
				status = h.Status
			}
			row = &model.BillingReportRow{
				CompanyID:     b.company.ID,
				CompanyName:   b.company.Name,
				TotalCost:     decimal.Zero,
				BillingStatus: status,
			}
			byCompany[b.company.ID] = row
		}
		row.TotalAccesses++
		if b.price.Valid {
			row.TotalCost = row.TotalCost.Add(b.price.Decimal)
		}
	}
	rows := lo.Values(byCompany)
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].CompanyName != rows[j].CompanyName {
			return rows[i].CompanyName < rows[j].CompanyName
		}
		return rows[i].CompanyID < rows[j].CompanyID
	})
	return rows, nil
}

func (s *memBilling) UpsertStatus(ctx context.Context, history *model.BillingHistory) error {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	if err := s.r.fault("billing.upsert"); err != nil {
		return err
	}
	s.r.data.billing[billingKey{history.CompanyID, history.BillingYear, history.BillingMonth}] = *history
	return nil
}

func (s *memBilling) Get(ctx context.Context, companyID uint, year, month int) (*model.BillingHistory, error) {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	if err := s.r.fault("billing.get"); err != nil {
		return nil, err
	}
	h, ok := s.r.data.billing[billingKey{companyID, year, month}]
	if !ok {
		return nil, notFound("billing history not found", "Histórico de faturamento não encontrado")
	}
	return &h, nil
}
