package access

import "strings"

// Rutas fijas de la aplicación.
const (
	LoginPath        = "/login"
	HomePath         = "/"
	DefaultDashboard = "/es/dashboard"
)

// Claves de sección.
const (
	SectionES      = "es"
	SectionRC      = "rc"
	SectionFIN     = "fin"
	SectionManager = "manager"
)

// Section es un prefijo de ruta protegido por un conjunto de roles.
type Section struct {
	Key       string
	Prefix    string
	Title     string
	Dashboard string
	Allowed   RoleSet
}

// Registry es la tabla estática rol → dashboard y sección → roles.
// Se construye una vez en newRegistry y no se modifica después.
type Registry struct {
	dashboards map[Role]string
	sections   []Section
}

var registry = newRegistry()

func newRegistry() *Registry {
	return &Registry{
		dashboards: map[Role]string{
			RoleES:        "/es/dashboard",
			RoleRC:        "/rc/dashboard",
			RoleFIN:       "/fin/dashboard",
			RoleManager:   "/manager/dashboard",
			RoleAdmin:     "/manager/dashboard",
			RoleDistUser:  "/es/dashboard",
			RoleDataEntry: "/rc/dashboard",
		},
		sections: []Section{
			{Key: SectionES, Prefix: "/es", Title: "Especialista de Equipos", Dashboard: "/es/dashboard", Allowed: NewRoleSet(RoleES, RoleDistUser)},
			{Key: SectionRC, Prefix: "/rc", Title: "Coordinación de Rentas", Dashboard: "/rc/dashboard", Allowed: NewRoleSet(RoleRC, RoleDataEntry)},
			{Key: SectionFIN, Prefix: "/fin", Title: "Finanzas", Dashboard: "/fin/dashboard", Allowed: NewRoleSet(RoleFIN)},
			{Key: SectionManager, Prefix: "/manager", Title: "Gerencia", Dashboard: "/manager/dashboard", Allowed: NewRoleSet(RoleManager, RoleAdmin)},
		},
	}
}

// Default devuelve el registro del proceso.
func Default() *Registry { return registry }

// DashboardFor devuelve el dashboard del rol (nombre de cable).
// Es total: roles desconocidos o vacíos caen en DefaultDashboard.
func (r *Registry) DashboardFor(role string) string {
	return r.DashboardForRole(ParseRole(role))
}

// DashboardForRole igual que DashboardFor pero con el rol ya parseado.
func (r *Registry) DashboardForRole(role Role) string {
	if path, ok := r.dashboards[role]; ok {
		return path
	}
	return DefaultDashboard
}

// Sections devuelve una copia de las secciones protegidas.
func (r *Registry) Sections() []Section {
	out := make([]Section, len(r.sections))
	copy(out, r.sections)
	return out
}

// SectionByKey busca una sección por clave ("es", "rc", ...).
func (r *Registry) SectionByKey(key string) (Section, bool) {
	for _, s := range r.sections {
		if s.Key == key {
			return s, true
		}
	}
	return Section{}, false
}

// SectionFor devuelve la sección que protege path. El prefijo debe coincidir
// en un límite de segmento: "/es" y "/es/rentals" sí, "/estimates" no.
func (r *Registry) SectionFor(path string) (Section, bool) {
	for _, s := range r.sections {
		if path == s.Prefix || strings.HasPrefix(path, s.Prefix+"/") {
			return s, true
		}
	}
	return Section{}, false
}

// SectionForRole devuelve la sección a la que pertenece el rol, si hay una.
func (r *Registry) SectionForRole(role Role) (Section, bool) {
	for _, s := range r.sections {
		if s.Allowed.Contains(role) {
			return s, true
		}
	}
	return Section{}, false
}

// DashboardFor atajo sobre el registro del proceso.
func DashboardFor(role string) string {
	return registry.DashboardFor(role)
}

// SectionFor atajo sobre el registro del proceso.
func SectionFor(path string) (Section, bool) {
	return registry.SectionFor(path)
}
