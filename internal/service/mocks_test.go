package service

import (
	"context"

	"paroquia_connect/internal/mailer"
	"paroquia_connect/internal/model"

	"github.com/stretchr/testify/mock"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, u *model.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id int) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]model.User)
	return users, args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, u *model.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) MarkVerified(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockUserRepo) SetVerificationCode(ctx context.Context, id int, code string) error {
	return m.Called(ctx, id, code).Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockUserRepo) EmailTakenByOther(ctx context.Context, email string, id int) (bool, error) {
	args := m.Called(ctx, email, id)
	return args.Bool(0), args.Error(1)
}

type mockSessionRepo struct{ mock.Mock }

func (m *mockSessionRepo) Create(ctx context.Context, s *model.Session) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockSessionRepo) FindActive(ctx context.Context, id string) (*model.Session, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*model.Session)
	return s, args.Error(1)
}

func (m *mockSessionRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockSessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockEventRepo struct{ mock.Mock }

func (m *mockEventRepo) Create(ctx context.Context, e *model.Event) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockEventRepo) FindByID(ctx context.Context, id int) (*model.Event, error) {
	args := m.Called(ctx, id)
	e, _ := args.Get(0).(*model.Event)
	return e, args.Error(1)
}

func (m *mockEventRepo) List(ctx context.Context) ([]model.Event, error) {
	args := m.Called(ctx)
	events, _ := args.Get(0).([]model.Event)
	return events, args.Error(1)
}

func (m *mockEventRepo) Update(ctx context.Context, e *model.Event) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockEventRepo) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

type mockRegistrationRepo struct{ mock.Mock }

func (m *mockRegistrationRepo) CreateWithinCapacity(ctx context.Context, reg *model.Registration) error {
	return m.Called(ctx, reg).Error(0)
}

func (m *mockRegistrationRepo) ListByEvent(ctx context.Context, eventID int) ([]model.Registration, error) {
	args := m.Called(ctx, eventID)
	regs, _ := args.Get(0).([]model.Registration)
	return regs, args.Error(1)
}

func (m *mockRegistrationRepo) CountByEvent(ctx context.Context, eventID int) (int, error) {
	args := m.Called(ctx, eventID)
	return args.Int(0), args.Error(1)
}

type mockAgendaRepo struct{ mock.Mock }

func (m *mockAgendaRepo) Create(ctx context.Context, a *model.AgendaItem) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockAgendaRepo) FindByID(ctx context.Context, id int) (*model.AgendaItem, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*model.AgendaItem)
	return a, args.Error(1)
}

func (m *mockAgendaRepo) List(ctx context.Context) ([]model.AgendaItem, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.AgendaItem)
	return items, args.Error(1)
}

func (m *mockAgendaRepo) ListPublic(ctx context.Context) ([]model.AgendaItem, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.AgendaItem)
	return items, args.Error(1)
}

func (m *mockAgendaRepo) Update(ctx context.Context, a *model.AgendaItem) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockAgendaRepo) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

type mockAnnouncementRepo struct{ mock.Mock }

func (m *mockAnnouncementRepo) Create(ctx context.Context, a *model.Announcement) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockAnnouncementRepo) FindByID(ctx context.Context, id int) (*model.Announcement, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*model.Announcement)
	return a, args.Error(1)
}

func (m *mockAnnouncementRepo) List(ctx context.Context) ([]model.Announcement, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]model.Announcement)
	return list, args.Error(1)
}

func (m *mockAnnouncementRepo) Update(ctx context.Context, a *model.Announcement) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockAnnouncementRepo) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

type mockDashboardRepo struct{ mock.Mock }

func (m *mockDashboardRepo) Stats(ctx context.Context, scope model.DashboardScope) (model.DashboardStats, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).(model.DashboardStats), args.Error(1)
}

func (m *mockDashboardRepo) RecentEvents(ctx context.Context, scope model.DashboardScope, limit int) ([]model.RecentItem, error) {
	args := m.Called(ctx, scope, limit)
	items, _ := args.Get(0).([]model.RecentItem)
	return items, args.Error(1)
}

func (m *mockDashboardRepo) RecentAnnouncements(ctx context.Context, scope model.DashboardScope, limit int) ([]model.RecentItem, error) {
	args := m.Called(ctx, scope, limit)
	items, _ := args.Get(0).([]model.RecentItem)
	return items, args.Error(1)
}

func (m *mockDashboardRepo) RecentAgenda(ctx context.Context, scope model.DashboardScope, limit int) ([]model.RecentItem, error) {
	args := m.Called(ctx, scope, limit)
	items, _ := args.Get(0).([]model.RecentItem)
	return items, args.Error(1)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) Send(ctx context.Context, msg mailer.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }
