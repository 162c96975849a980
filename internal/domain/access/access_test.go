package access_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rentalops/internal/domain/access"
)

// ──────────────────────────────────────────────────────────────────────────────
// Roles
// ──────────────────────────────────────────────────────────────────────────────

func TestParseRole_NombresDeCable(t *testing.T) {
	casos := map[string]access.Role{
		"ES":         access.RoleES,
		"RC":         access.RoleRC,
		"FIN":        access.RoleFIN,
		"Manager":    access.RoleManager,
		"ADMIN":      access.RoleAdmin,
		"Dist User":  access.RoleDistUser,
		"Data Entry": access.RoleDataEntry,
	}
	for name, want := range casos {
		got := access.ParseRole(name)
		assert.Equal(t, want, got, "ParseRole(%q)", name)
		assert.Equal(t, name, got.String(), "String debe devolver el nombre de cable")
		assert.True(t, got.Known())
	}
}

func TestParseRole_DesconocidoNoEsValido(t *testing.T) {
	for _, s := range []string{"", "fin", "admin", "Dist  User", "DistUser", "root"} {
		r := access.ParseRole(s)
		assert.Equal(t, access.RoleUnknown, r, "ParseRole(%q)", s)
		assert.False(t, r.Known())
		assert.Equal(t, "unknown", r.String())
	}
}

func TestRoleSet_NoAdmiteUnknown(t *testing.T) {
	s := access.NewRoleSet(access.RoleUnknown, access.RoleFIN)
	assert.True(t, s.Contains(access.RoleFIN))
	assert.False(t, s.Contains(access.RoleUnknown))
	assert.Equal(t, []access.Role{access.RoleFIN}, s.Roles())
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro rol → dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboardFor_TablaCompleta(t *testing.T) {
	esperado := map[string]string{
		"ES":         "/es/dashboard",
		"RC":         "/rc/dashboard",
		"FIN":        "/fin/dashboard",
		"Manager":    "/manager/dashboard",
		"ADMIN":      "/manager/dashboard",
		"Dist User":  "/es/dashboard",
		"Data Entry": "/rc/dashboard",
	}
	for role, path := range esperado {
		assert.Equal(t, path, access.DashboardFor(role), "DashboardFor(%q)", role)
	}
}

func TestDashboardFor_DesconocidoCaeEnDefault(t *testing.T) {
	for _, role := range []string{"", "unknown", "manager", "SUPERUSER", "Data-Entry"} {
		assert.Equal(t, "/es/dashboard", access.DashboardFor(role), "DashboardFor(%q)", role)
	}
}

func TestSectionFor_LimiteDeSegmento(t *testing.T) {
	s, ok := access.SectionFor("/es/rentals/new")
	require.True(t, ok)
	assert.Equal(t, access.SectionES, s.Key)

	s, ok = access.SectionFor("/manager")
	require.True(t, ok)
	assert.Equal(t, access.SectionManager, s.Key)

	_, ok = access.SectionFor("/estimates")
	assert.False(t, ok, "/estimates no pertenece a /es")

	_, ok = access.SectionFor("/login")
	assert.False(t, ok)
}

func TestSections_RolesPermitidos(t *testing.T) {
	reg := access.Default()
	casos := map[string][]access.Role{
		access.SectionES:      {access.RoleES, access.RoleDistUser},
		access.SectionRC:      {access.RoleRC, access.RoleDataEntry},
		access.SectionFIN:     {access.RoleFIN},
		access.SectionManager: {access.RoleManager, access.RoleAdmin},
	}
	for key, roles := range casos {
		s, ok := reg.SectionByKey(key)
		require.True(t, ok, key)
		assert.Equal(t, roles, s.Allowed.Roles(), "sección %s", key)
	}
}

func TestSections_DevuelveCopia(t *testing.T) {
	reg := access.Default()
	secs := reg.Sections()
	secs[0].Dashboard = "/hackeado"

	s, _ := reg.SectionByKey(access.SectionES)
	assert.Equal(t, "/es/dashboard", s.Dashboard, "el registro no debe poder mutarse desde fuera")
}

// ──────────────────────────────────────────────────────────────────────────────
// Guard
// ──────────────────────────────────────────────────────────────────────────────

func TestGuard_SinSesionSiempreALogin(t *testing.T) {
	sets := []access.RoleSet{
		access.NewRoleSet(),
		access.NewRoleSet(access.RoleFIN),
		access.NewRoleSet(access.AllRoles()...),
	}
	for _, allowed := range sets {
		d := access.Guard(nil, allowed)
		assert.False(t, d.Allowed())
		assert.Equal(t, "/login", d.Path)

		d = access.Guard(&access.Session{Role: access.RoleFIN}, allowed)
		assert.Equal(t, "/login", d.Path, "sesión sin usuario cuenta como ausente")
	}
}

func TestGuard_RolFueraDelConjuntoAHome(t *testing.T) {
	allowed := access.NewRoleSet(access.RoleES, access.RoleDistUser)
	for _, r := range append(access.AllRoles(), access.RoleUnknown) {
		if allowed.Contains(r) {
			continue
		}
		d := access.Guard(&access.Session{UserID: "u1", Role: r}, allowed)
		assert.False(t, d.Allowed(), "rol %s", r)
		assert.Equal(t, "/", d.Path, "rol %s", r)
		assert.Nil(t, d.Session)
	}
}

func TestGuard_PermitePasaLaMismaSesion(t *testing.T) {
	s := &access.Session{UserID: "u1", Role: access.RoleAdmin, Name: "Admin"}
	d := access.Guard(s, access.NewRoleSet(access.RoleManager, access.RoleAdmin))

	require.True(t, d.Allowed())
	assert.Same(t, s, d.Session, "la sesión debe pasar sin cambios")
	assert.Equal(t, access.Session{UserID: "u1", Role: access.RoleAdmin, Name: "Admin"}, *s)
}

// Escenario: FIN visitando /es/rentals/new → "/".
func TestGuard_EscenarioFINEnES(t *testing.T) {
	sec, ok := access.SectionFor("/es/rentals/new")
	require.True(t, ok)
	d := access.Guard(&access.Session{UserID: "u1", Role: access.ParseRole("FIN")}, sec.Allowed)
	assert.Equal(t, access.RedirectTo("/"), d)
}

// Escenario: sin sesión visitando /manager/config → "/login".
func TestGuard_EscenarioSinSesionEnManager(t *testing.T) {
	sec, ok := access.SectionFor("/manager/config")
	require.True(t, ok)
	assert.Equal(t, access.RedirectTo("/login"), access.Guard(nil, sec.Allowed))
}

// ──────────────────────────────────────────────────────────────────────────────
// ResolveLanding
// ──────────────────────────────────────────────────────────────────────────────

func TestResolveLanding(t *testing.T) {
	assert.Equal(t, "/login", access.ResolveLanding(nil))
	assert.Equal(t, "/login", access.ResolveLanding(&access.Session{}))
	assert.Equal(t, "/fin/dashboard", access.ResolveLanding(&access.Session{UserID: "u", Role: access.RoleFIN}))
	assert.Equal(t, "/rc/dashboard", access.ResolveLanding(&access.Session{UserID: "u", Role: access.RoleDataEntry}))
	assert.Equal(t, "/es/dashboard", access.ResolveLanding(&access.Session{UserID: "u", Role: access.RoleUnknown}))
}

func TestResolveLanding_Idempotente(t *testing.T) {
	s := &access.Session{UserID: "u", Role: access.RoleManager}
	before := *s
	first := access.ResolveLanding(s)
	second := access.ResolveLanding(s)
	assert.Equal(t, first, second)
	assert.Equal(t, before, *s, "no debe mutar la sesión")
}

// El registro se lee concurrentemente sin locks (ejecutar con -race).
func TestRegistry_LecturaConcurrente(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			role := access.AllRoles()[i%len(access.AllRoles())]
			_ = access.DashboardFor(role.String())
			_, _ = access.SectionFor("/rc/rentals")
			_ = access.Guard(&access.Session{UserID: "u", Role: role}, access.NewRoleSet(access.RoleRC))
		}(i)
	}
	wg.Wait()
}
