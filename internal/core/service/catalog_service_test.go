package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayel/intranet/internal/core/domain"
	"github.com/ayel/intranet/internal/core/ports"
)

func TestTrainingService(t *testing.T) {
	repo := newStubRepo(domain.ErrTrainingNotFound,
		domain.Training{ID: "1", Title: "Técnicas de Vendas", Category: domain.TrainingVendedor, CompanyID: "c1", CreatedAt: fixedNow.Add(-2 * time.Hour)},
		domain.Training{ID: "2", Title: "Manutenção", Category: domain.TrainingTecnico, CompanyID: "c1", CreatedAt: fixedNow.Add(-time.Hour)},
		domain.Training{ID: "3", Title: "Atendimento", Category: domain.TrainingVendedor, CompanyID: "c2", CreatedAt: fixedNow},
	)
	svc := NewTrainingService(repo, discardLogger)
	svc.now = fixedClock
	ctx := context.Background()

	list, err := svc.List(ctx, "all", "vendedor")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "3", list[0].ID, "newest first")

	list, err = svc.List(ctx, "c1", "")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = svc.Create(ctx, ports.TrainingInput{Title: "x", Category: "marketing", CompanyID: "c1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = svc.Create(ctx, ports.TrainingInput{Title: "x", Category: "geral"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	created, err := svc.Create(ctx, ports.TrainingInput{Title: " Onboarding ", Category: "geral", CompanyID: "c2"})
	require.NoError(t, err)
	assert.Equal(t, "Onboarding", created.Title)
	assert.Nil(t, created.UpdatedAt)

	updated, err := svc.Update(ctx, created.ID, ports.TrainingInput{Title: "Onboarding 2", Category: "suporte", CompanyID: "c2"})
	require.NoError(t, err)
	require.NotNil(t, updated.UpdatedAt)
	assert.Equal(t, domain.TrainingSuporte, updated.Category)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Onboarding 2", got.Title)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrTrainingNotFound)
}

func TestCompanyService(t *testing.T) {
	repo := newStubRepo(domain.ErrCompanyNotFound,
		domain.Company{ID: "c2", Name: "Zeta Telecom"},
		domain.Company{ID: "c1", Name: "Ayel Tecnologia"},
	)
	svc := NewCompanyService(repo, discardLogger)
	ctx := context.Background()

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "c1", list[0].ID)

	_, err = svc.Create(ctx, ports.CompanyInput{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	c, err := svc.Create(ctx, ports.CompanyInput{Name: "Nova", CNPJ: " 00.000.000/0001-00 ", BrandColor: "#123456"})
	require.NoError(t, err)
	assert.Equal(t, "00.000.000/0001-00", c.CNPJ)

	c, err = svc.Update(ctx, c.ID, ports.CompanyInput{Name: "Nova S.A."})
	require.NoError(t, err)
	assert.Equal(t, "Nova S.A.", c.Name)

	_, err = svc.Update(ctx, "missing", ports.CompanyInput{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrCompanyNotFound)
}

func TestExtensionService_List(t *testing.T) {
	repo := newStubRepo(domain.ErrExtensionNotFound,
		domain.Extension{ID: "1", Name: "Ana", Sector: "Vendas", Extension: "201", CompanyID: "c1"},
		domain.Extension{ID: "2", Name: "Bruno", Sector: "Financeiro", Extension: "101", CompanyID: "c1"},
		domain.Extension{ID: "3", Name: "Carla", Sector: "Vendas", Extension: "202", CompanyID: "c2"},
	)
	svc := NewExtensionService(repo, discardLogger)
	ctx := context.Background()

	groups, err := svc.List(ctx, regularUser("2", domain.CategoryVendedor, "c1"), "c2")
	require.NoError(t, err)
	require.Len(t, groups, 2, "regular users are pinned to their own company")
	assert.Equal(t, "Financeiro", groups[0].Sector)
	assert.Equal(t, "Vendas", groups[1].Sector)
	assert.Len(t, groups[1].Extensions, 1)

	groups, err = svc.List(ctx, adminUser(), "all")
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Len(t, groups[1].Extensions, 2)

	groups, err = svc.List(ctx, adminUser(), "c2")
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "Carla", groups[0].Extensions[0].Name)
}

func TestExtensionService_Mutations(t *testing.T) {
	repo := newStubRepo[domain.Extension](domain.ErrExtensionNotFound)
	svc := NewExtensionService(repo, discardLogger)
	svc.now = fixedClock
	ctx := context.Background()

	_, err := svc.Create(ctx, ports.ExtensionInput{Name: "Ana", Sector: "Vendas", CompanyID: "c1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	e, err := svc.Create(ctx, ports.ExtensionInput{Name: "Ana", Sector: "Vendas", Extension: "201", CompanyID: "c1"})
	require.NoError(t, err)

	e, err = svc.Update(ctx, e.ID, ports.ExtensionInput{Name: "Ana", Sector: "Comercial", Extension: "210", CompanyID: "c1"})
	require.NoError(t, err)
	assert.Equal(t, "210", e.Extension)
	require.NotNil(t, e.UpdatedAt)
	assert.True(t, e.UpdatedAt.Equal(fixedNow))

	require.NoError(t, svc.Delete(ctx, e.ID))
	assert.Empty(t, repo.items)
}

func TestShortcutService(t *testing.T) {
	repo := newStubRepo(domain.ErrShortcutNotFound,
		domain.Shortcut{ID: "1", Title: "Webmail", URL: "https://mail.ayel.com.br"},
		domain.Shortcut{ID: "2", Title: "CRM", URL: "https://crm.ayel.com.br"},
	)
	svc := NewShortcutService(repo, discardLogger)
	ctx := context.Background()

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "CRM", list[0].Title)

	_, err = svc.Create(ctx, adminUser(), ports.ShortcutInput{Title: "x", URL: "crm.local"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = svc.Create(ctx, adminUser(), ports.ShortcutInput{Title: "x", URL: "javascript:alert(1)"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = svc.Create(ctx, nil, ports.ShortcutInput{Title: "x", URL: "https://x.io"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	sc, err := svc.Create(ctx, adminUser(), ports.ShortcutInput{Title: "Ponto", URL: " https://ponto.ayel.com.br/login "})
	require.NoError(t, err)
	assert.Equal(t, "https://ponto.ayel.com.br/login", sc.URL)
	assert.Equal(t, "1", sc.CreatedBy)

	_, err = svc.Update(ctx, "missing", ports.ShortcutInput{Title: "x", URL: "https://x.io"})
	assert.ErrorIs(t, err, domain.ErrShortcutNotFound)
}

func TestDirectoryService(t *testing.T) {
	users := newStubUserRepo(
		domain.User{ID: "1", FullName: "Administrador Sistema", Role: domain.RoleAdmin, CompanyID: "c1", BirthDate: "1980-01-15"},
		domain.User{ID: "2", FullName: "João Silva", Email: "joao@ayel.com.br", Category: domain.CategoryVendedor, CompanyID: "c1", Sector: "Comercial", BirthDate: "1990-06-20"},
		domain.User{ID: "3", FullName: "Maria Santos", Category: domain.CategoryTecnico, CompanyID: "c1", BirthDate: "1992-06-11"},
		domain.User{ID: "4", FullName: "Pedro Costa", Category: domain.CategoryVendedor, CompanyID: "c2", BirthDate: "1985-06-10"},
	)
	companies := newStubRepo(domain.ErrCompanyNotFound,
		domain.Company{ID: "c1", Name: "Ayel Tecnologia"},
		domain.Company{ID: "c2", Name: "Zeta Telecom"},
	)
	svc := NewDirectoryService(users, companies, discardLogger)
	svc.now = fixedClock
	ctx := context.Background()
	viewer := regularUser("2", domain.CategoryVendedor, "c1")

	found, err := svc.Search(ctx, viewer, "joao")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "joao@ayel.com.br", found[0].Email)

	found, err = svc.Search(ctx, viewer, "zeta")
	require.NoError(t, err)
	assert.Empty(t, found, "regular users do not see other companies")

	found, err = svc.Search(ctx, adminUser(), "zeta")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "4", found[0].ID)

	all, err := svc.Search(ctx, viewer, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "Administrador Sistema", all[0].FullName)

	unassigned, err := svc.Search(ctx, regularUser("9", domain.CategoryVendedor, ""), "")
	require.NoError(t, err)
	assert.Empty(t, unassigned, "users without a company see no company's staff")

	june, err := svc.Birthdays(ctx, viewer, 0)
	require.NoError(t, err)
	assert.Len(t, june, 2)

	_, err = svc.Birthdays(ctx, viewer, 13)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	next, err := svc.NextBirthday(ctx, viewer)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, "3", next.Collaborator.ID)

	next, err = svc.NextBirthday(ctx, adminUser())
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, "4", next.Collaborator.ID, "birthday today counts as upcoming")
}

func TestDirectoryService_NoBirthDates(t *testing.T) {
	svc := NewDirectoryService(newStubUserRepo(domain.User{ID: "1", FullName: "Sem Data"}), newStubRepo[domain.Company](domain.ErrCompanyNotFound), discardLogger)
	next, err := svc.NextBirthday(context.Background(), adminUser())
	require.NoError(t, err)
	assert.Nil(t, next)
}
