package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayel/intranet/internal/core/domain"
	"github.com/ayel/intranet/internal/core/ports"
)

func calendar() []domain.Event {
	mk := func(id, date string, role domain.RoleTarget, company domain.CompanyTarget) domain.Event {
		return domain.Event{ID: id, Title: "event " + id, Date: date, Type: domain.EventOther, Audience: domain.Audience{RoleTarget: role, CompanyTarget: company}}
	}
	return []domain.Event{
		mk("1", "2025-11-20", domain.AllRoles, "c1"),
		mk("2", "2025-11-28", domain.AllRoles, domain.AllCompanies),
		mk("3", "2025-11-15", domain.AllRoles, "c1"),
		mk("4", "2025-11-18", "vendedor", "c2"),
		mk("5", "2025-12-25", domain.AllRoles, domain.AllCompanies),
	}
}

func eventIDs(events []domain.Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.ID)
	}
	return out
}

func TestEventService_List(t *testing.T) {
	svc := NewEventService(newStubRepo(domain.ErrEventNotFound, calendar()...), discardLogger)
	ctx := context.Background()

	got, err := svc.List(ctx, regularUser("2", domain.CategoryVendedor, "c1"), 11)
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "1", "2"}, eventIDs(got))

	got, err = svc.List(ctx, regularUser("5", domain.CategoryVendedor, "c2"), 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"4", "2", "5"}, eventIDs(got))

	got, err = svc.List(ctx, adminUser(), 12)
	require.NoError(t, err)
	assert.Equal(t, []string{"5"}, eventIDs(got))

	_, err = svc.List(ctx, adminUser(), 13)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEventService_Get_RespectsAudience(t *testing.T) {
	svc := NewEventService(newStubRepo(domain.ErrEventNotFound, calendar()...), discardLogger)

	_, err := svc.Get(context.Background(), regularUser("3", domain.CategoryTecnico, "c1"), "4")
	assert.ErrorIs(t, err, domain.ErrEventNotFound)

	e, err := svc.Get(context.Background(), regularUser("5", domain.CategoryVendedor, "c2"), "4")
	require.NoError(t, err)
	assert.Equal(t, "2025-11-18", e.Date)
}

func TestEventService_Create(t *testing.T) {
	repo := newStubRepo[domain.Event](domain.ErrEventNotFound)
	svc := NewEventService(repo, discardLogger)
	svc.now = fixedClock

	e, err := svc.Create(context.Background(), adminUser(), ports.EventInput{
		Title: "Reunião Geral",
		Date:  "2025-11-15",
		Type:  "reuniao",
	})
	require.NoError(t, err)
	assert.Equal(t, "#3B82F6", e.Color)
	assert.Equal(t, domain.AllRoles, e.RoleTarget)
	assert.Equal(t, domain.AllCompanies, e.CompanyTarget)
	assert.Equal(t, "1", e.CreatedBy)
	assert.True(t, e.CreatedAt.Equal(fixedNow))

	tests := []struct {
		name string
		in   ports.EventInput
	}{
		{"missing title", ports.EventInput{Date: "2025-11-15", Type: "outro"}},
		{"bad date", ports.EventInput{Title: "x", Date: "15/11/2025", Type: "outro"}},
		{"bad type", ports.EventInput{Title: "x", Date: "2025-11-15", Type: "festa"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), adminUser(), tt.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	_, err = svc.Create(context.Background(), adminUser(), ports.EventInput{Title: "x", Date: "2025-11-15", Type: "outro", RoleTarget: "gerente"})
	assert.ErrorIs(t, err, domain.ErrInvalidAudience)
	assert.Len(t, repo.items, 1)
}

func TestEventService_UpdateDelete(t *testing.T) {
	repo := newStubRepo(domain.ErrEventNotFound, calendar()...)
	svc := NewEventService(repo, discardLogger)

	e, err := svc.Update(context.Background(), "1", ports.EventInput{Title: "Feriado", Date: "2025-11-21", Type: "feriado", Color: "#000000", CompanyTarget: "c2"})
	require.NoError(t, err)
	assert.Equal(t, "#000000", e.Color)
	assert.Equal(t, domain.CompanyTarget("c2"), e.CompanyTarget)

	require.NoError(t, svc.Delete(context.Background(), "1"))
	assert.ErrorIs(t, svc.Delete(context.Background(), "1"), domain.ErrEventNotFound)
}
