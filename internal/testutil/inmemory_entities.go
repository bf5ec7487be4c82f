package testutil

import (
	"context"
	"sort"

	"github.com/samber/lo"

	"github.com/thrivecorp/platform/internal/model"
	"github.com/thrivecorp/platform/internal/repository"
)

type memUsers struct{ r *InMemoryRepository }

func (s *memUsers) Create(ctx context.Context, user *model.User) error {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	if err := s.r.fault("users.create"); err != nil {
		return err
	}
	for _, u := range s.r.data.users {
		if u.Email == user.Email {
			return conflict("duplicate user email")
		}
	}
	if user.Status == "" {
		user.Status = model.UserStatusPending
	}
	user.ID = s.r.nextID()
	user.CreatedAt = s.r.now()
	user.UpdatedAt = user.CreatedAt
	s.r.data.users[user.ID] = *user
	return nil
}

func (s *memUsers) Get(ctx context.Context, id uint) (*model.User, error) {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	if err := s.r.fault("users.get"); err != nil {
		return nil, err
	}
	u, ok := s.r.data.users[id]
	if !ok {
		return nil, notFound("user not found", "Usuário não encontrado")
	}
	return &u, nil
}

func (s *memUsers) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	if err := s.r.fault("users.get_by_email"); err != nil {
		return nil, err
	}
	u, ok := lo.Find(lo.Values(s.r.data.users), func(u model.User) bool { return u.Email == email })
	if !ok {
		return nil, notFound("user not found", "Usuário não encontrado")
	}
	return &u, nil
}

func (s *memUsers) ListByStatus(ctx context.Context, status model.UserStatus) ([]*model.User, error) {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	if err := s.r.fault("users.list"); err != nil {
		return nil, err
	}
	out := make([]*model.User, 0)
	for _, u := range s.r.data.users {
		if u.Status == status {
			out = append(out, lo.ToPtr(u))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memUsers) UpdateStatus(ctx context.Context, id uint, status model.UserStatus) error {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	if err := s.r.fault("users.update_status"); err != nil {
		return err
	}
	u, ok := s.r.data.users[id]
	if !ok {
		return notFound("user not found", "Usuário não encontrado")
	}
	u.Status = status
	u.UpdatedAt = s.r.now()
	s.r.data.users[id] = u
	return nil
}

func (s *memUsers) Delete(ctx context.Context, ids ...uint) error {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	if err := s.r.fault("users.delete"); err != nil {
		return err
	}
	for _, id := range ids {
		delete(s.r.data.users, id)
	}
	return nil
}

type memCompanies struct{ r *InMemoryRepository }

func (s *memCompanies) Create(ctx context.Context, company *model.Company) error {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	if err := s.r.fault("companies.create"); err != nil {
		return err
	}
	for _, c := range s.r.data.companies {
		if c.AdminID == company.AdminID || c.CNPJ == company.CNPJ {
			return conflict("duplicate company")
		}
	}
	if company.Status == "" {
		company.Status = model.CompanyStatusPending
	}
	company.ID = s.r.nextID()
	company.CreatedAt = s.r.now()
	company.UpdatedAt = company.CreatedAt
	row := *company
	row.Admin = nil
	s.r.data.companies[company.ID] = row
	return nil
}

func (s *memCompanies) Get(ctx context.Context, id uint) (*model.Company, error) {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	if err := s.r.fault("companies.get"); err != nil {
		return nil, err
	}
	c, ok := s.r.data.companies[id]
	if !ok {
		return nil, notFound("company not found", "Empresa não encontrada")
	}
	return &c, nil
}

func (s *memCompanies) GetByAdminID(ctx context.Context, adminID uint) (*model.Company, error) {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	if err := s.r.fault("companies.get_by_admin"); err != nil {
		return nil, err
	}
	c, ok := lo.Find(lo.Values(s.r.data.companies), func(c model.Company) bool { return c.AdminID == adminID })
	if !ok {
		return nil, notFound("company not found", "Empresa não encontrada")
	}
	return &c, nil
}

func (s *memCompanies) List(ctx context.Context) ([]*model.Company, error) {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	if err := s.r.fault("companies.list"); err != nil {
		return nil, err
	}
	out := make([]*model.Company, 0, len(s.r.data.companies))
	for _, c := range s.r.data.companies {
		if admin, ok := s.r.data.users[c.AdminID]; ok {
			c.Admin = lo.ToPtr(admin)
		}
		out = append(out, lo.ToPtr(c))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *memCompanies) UpdateStatus(ctx context.Context, id uint, status model.CompanyStatus) error {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	if err := s.r.fault("companies.update_status"); err != nil {
		return err
	}
	c, ok := s.r.data.companies[id]
	if !ok {
		return notFound("company not found", "Empresa não encontrada")
	}
	c.Status = status
	c.UpdatedAt = s.r.now()
	s.r.data.companies[id] = c
	return nil
}

func (s *memCompanies) Delete(ctx context.Context, id uint) error {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	if err := s.r.fault("companies.delete"); err != nil {
		return err
	}
	if _, ok := s.r.data.companies[id]; !ok {
		return notFound("company not found", "Empresa não encontrada")
	}
	delete(s.r.data.companies, id)
	return nil
}

type memCollaborators struct{ r *InMemoryRepository }

func (s *memCollaborators) withUser(c model.Collaborator) *model.Collaborator {
	if u, ok := s.r.data.users[c.UserID]; ok {
		c.User = lo.ToPtr(u)
	}
	return &c
}

func (s *memCollaborators) Create(ctx context.Context, collaborator *model.Collaborator) error {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	if err := s.r.fault("collaborators.create"); err != nil {
		return err
	}
	for _, c := range s.r.data.collaborators {
		if c.UserID == collaborator.UserID {
			return conflict("duplicate collaborator user")
		}
	}
	if collaborator.Status == "" {
		collaborator.Status = model.CollaboratorStatusActive
	}
	collaborator.ID = s.r.nextID()
	collaborator.CreatedAt = s.r.now()
	collaborator.UpdatedAt = collaborator.CreatedAt
	row := *collaborator
	row.User = nil
	s.r.data.collaborators[collaborator.ID] = row
	return nil
}

func (s *memCollaborators) Get(ctx context.Context, id uint) (*model.Collaborator, error) {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	if err := s.r.fault("collaborators.get"); err != nil {
		return nil, err
	}
	c, ok := s.r.data.collaborators[id]
	if !ok {
		return nil, notFound("collaborator not found", "Colaborador não encontrado")
	}
	return s.withUser(c), nil
}

func (s *memCollaborators) GetByUserID(ctx context.Context, userID uint) (*model.Collaborator, error) {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	if err := s.r.fault("collaborators.get_by_user"); err != nil {
		return nil, err
	}
	c, ok := lo.Find(lo.Values(s.r.data.collaborators), func(c model.Collaborator) bool { return c.UserID == userID })
	if !ok {
		return nil, notFound("collaborator not found", "Colaborador não encontrado")
	}
	return &c, nil
}

func (s *memCollaborators) ListByCompany(ctx context.Context, companyID uint) ([]*model.Collaborator, error) {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	if err := s.r.fault("collaborators.list"); err != nil {
		return nil, err
	}
	out := make([]*model.Collaborator, 0)
	for _, c := range s.r.data.collaborators {
		if c.CompanyID == companyID {
			out = append(out, s.withUser(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memCollaborators) UpdateStatus(ctx context.Context, id uint, status model.CollaboratorStatus) error {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	if err := s.r.fault("collaborators.update_status"); err != nil {
		return err
	}
	c, ok := s.r.data.collaborators[id]
	if !ok {
		return notFound("collaborator not found", "Colaborador não encontrado")
	}
	c.Status = status
	c.UpdatedAt = s.r.now()
	s.r.data.collaborators[id] = c
	return nil
}

func (s *memCollaborators) DeleteByCompany(ctx context.Context, companyID uint) error {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	if err := s.r.fault("collaborators.delete"); err != nil {
		return err
	}
	for id, c := range s.r.data.collaborators {
		if c.CompanyID == companyID {
			delete(s.r.data.collaborators, id)
		}
	}
	return nil
}

type memProviders struct{ r *InMemoryRepository }

func (s *memProviders) Create(ctx context.Context, provider *model.Provider) error {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	if err := s.r.fault("providers.create"); err != nil {
		return err
	}
	for _, p := range s.r.data.providers {
		if p.UserID == provider.UserID {
			return conflict("duplicate provider user")
		}
	}
	provider.ID = s.r.nextID()
	provider.CreatedAt = s.r.now()
	provider.UpdatedAt = provider.CreatedAt
	s.r.data.providers[provider.ID] = *provider
	return nil
}

func (s *memProviders) Get(ctx context.Context, id uint) (*model.Provider, error) {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	if err := s.r.fault("providers.get"); err != nil {
		return nil, err
	}
	p, ok := s.r.data.providers[id]
	if !ok {
		return nil, notFound("provider not found", "Fornecedor não encontrado")
	}
	return &p, nil
}

func (s *memProviders) GetByUserID(ctx context.Context, userID uint) (*model.Provider, error) {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	if err := s.r.fault("providers.get_by_user"); err != nil {
		return nil, err
	}
	p, ok := lo.Find(lo.Values(s.r.data.providers), func(p model.Provider) bool { return p.UserID == userID })
	if !ok {
		return nil, notFound("provider not found", "Fornecedor não encontrado")
	}
	return &p, nil
}

func (s *memProviders) Delete(ctx context.Context, id uint) error {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	if err := s.r.fault("providers.delete"); err != nil {
		return err
	}
	if _, ok := s.r.data.providers[id]; !ok {
		return notFound("provider not found", "Fornecedor não encontrado")
	}
	delete(s.r.data.providers, id)
	return nil
}

type memGyms struct{ r *InMemoryRepository }

func (s *memGyms) Create(ctx context.Context, gym *model.Gym) error {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	if err := s.r.fault("gyms.create"); err != nil {
		return err
	}
	if gym.Status == "" {
		gym.Status = model.GymStatusPending
	}
	gym.ID = s.r.nextID()
	gym.CreatedAt = s.r.now()
	gym.UpdatedAt = gym.CreatedAt
	s.r.data.gyms[gym.ID] = *gym
	return nil
}

func (s *memGyms) Get(ctx context.Context, id uint) (*model.Gym, error) {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	if err := s.r.fault("gyms.get"); err != nil {
		return nil, err
	}
	g, ok := s.r.data.gyms[id]
	if !ok {
		return nil, notFound("gym not found", "Academia não encontrada")
	}
	return &g, nil
}

func (s *memGyms) List(ctx context.Context, filter repository.GymFilter) ([]*model.Gym, error) {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	if err := s.r.fault("gyms.list"); err != nil {
		return nil, err
	}
	out := make([]*model.Gym, 0)
	for _, g := range s.r.data.gyms {
		if filter.ProviderID != nil && g.ProviderID != *filter.ProviderID {
			continue
		}
		if filter.Status != nil && g.Status != *filter.Status {
			continue
		}
		out = append(out, lo.ToPtr(g))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memGyms) UpdateStatus(ctx context.Context, id uint, status model.GymStatus) error {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	if err := s.r.fault("gyms.update_status"); err != nil {
		return err
	}
	g, ok := s.r.data.gyms[id]
	if !ok {
		return notFound("gym not found", "Academia não encontrada")
	}
	g.Status = status
	g.UpdatedAt = s.r.now()
	s.r.data.gyms[id] = g
	return nil
}

func (s *memGyms) Delete(ctx context.Context, id uint) error {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	if err := s.r.fault("gyms.delete"); err != nil {
		return err
	}
	if _, ok := s.r.data.gyms[id]; !ok {
		return notFound("gym not found", "Academia não encontrada")
	}
	delete(s.r.data.gyms, id)
	return nil
}

func (s *memGyms) CountByProvider(ctx context.Context, providerID uint) (int64, error) {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	if err := s.r.fault("gyms.count"); err != nil {
		return 0, err
	}
	n := lo.CountBy(lo.Values(s.r.data.gyms), func(g model.Gym) bool { return g.ProviderID == providerID })
	return int64(n), nil
}

type memPlans struct{ r *InMemoryRepository }

func (s *memPlans) Create(ctx context.Context, plan *model.Plan) error {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	if err := s.r.fault("plans.create"); err != nil {
		return err
	}
	plan.ID = s.r.nextID()
	plan.CreatedAt = s.r.now()
	plan.UpdatedAt = plan.CreatedAt
	s.r.data.plans[plan.ID] = *plan
	return nil
}

func (s *memPlans) Get(ctx context.Context, id uint) (*model.Plan, error) {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	if err := s.r.fault("plans.get"); err != nil {
		return nil, err
	}
	p, ok := s.r.data.plans[id]
	if !ok {
		return nil, notFound("plan not found", "Plano não encontrado")
	}
	return &p, nil
}

func (s *memPlans) ListByProvider(ctx context.Context, providerID uint) ([]*model.Plan, error) {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	if err := s.r.fault("plans.list"); err != nil {
		return nil, err
	}
	return s.r.providerPlans(providerID), nil
}

func (s *memPlans) Update(ctx context.Context, plan *model.Plan) error {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	if err := s.r.fault("plans.update"); err != nil {
		return err
	}
	p, ok := s.r.data.plans[plan.ID]
	if !ok {
		return notFound("plan not found", "Plano não encontrado")
	}
	p.Name = plan.Name
	p.Description = plan.Description
	p.PricePerAccess = plan.PricePerAccess
	p.UpdatedAt = s.r.now()
	s.r.data.plans[plan.ID] = p
	return nil
}

func (s *memPlans) Delete(ctx context.Context, id uint) error {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	if err := s.r.fault("plans.delete"); err != nil {
		return err
	}
	if _, ok := s.r.data.plans[id]; !ok {
		return notFound("plan not found", "Plano não encontrado")
	}
	delete(s.r.data.plans, id)
	return nil
}

func (s *memPlans) FirstByProvider(ctx context.Context, providerID uint) (*model.Plan, error) {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	if err := s.r.fault("plans.first"); err != nil {
		return nil, err
	}
	plans := s.r.providerPlans(providerID)
	if len(plans) == 0 {
		return nil, notFound("plan not found", "Plano não encontrado")
	}
	return plans[0], nil
}

// providerPlans returns the provider's plans by ascending id; mu must be held
func (r *InMemoryRepository) providerPlans(providerID uint) []*model.Plan {
	out := make([]*model.Plan, 0)
	for _, p := range r.data.plans {
		if p.ProviderID == providerID {
			out = append(out, lo.ToPtr(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
