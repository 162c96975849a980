package access

// Session es la identidad que emite el proveedor de sesión.
type Session struct {
	UserID string
	Role   Role
	Name   string
}

// Present informa si hay una sesión utilizable (no nil y con usuario).
func (s *Session) Present() bool {
	return s != nil && s.UserID != ""
}

// DecisionKind distingue los resultados del guard.
type DecisionKind uint8

const (
	DecisionAllow DecisionKind = iota + 1
	DecisionRedirect
)

// Decision es el resultado del guard. La capa HTTP la interpreta:
// Allow continúa con la sesión; Redirect responde con una redirección a Path
// antes de producir cualquier contenido.
type Decision struct {
	Kind    DecisionKind
	Path    string
	Session *Session
}

// Allow construye una decisión de paso.
func Allow(s *Session) Decision {
	return Decision{Kind: DecisionAllow, Session: s}
}

// RedirectTo construye una decisión de redirección.
func RedirectTo(path string) Decision {
	return Decision{Kind: DecisionRedirect, Path: path}
}

// Allowed informa si la decisión deja pasar la petición.
func (d Decision) Allowed() bool {
	return d.Kind == DecisionAllow
}

// Guard decide el acceso a una sección:
//   - sin sesión            → RedirectTo("/login"), sin importar allowed
//   - rol fuera de allowed  → RedirectTo("/")
//   - en otro caso          → Allow con la misma sesión
func Guard(session *Session, allowed RoleSet) Decision {
	if !session.Present() {
		return RedirectTo(LoginPath)
	}
	if !allowed.Contains(session.Role) {
		return RedirectTo(HomePath)
	}
	return Allow(session)
}

// ResolveLanding devuelve a dónde enviar al usuario que entra por "/".
func ResolveLanding(session *Session) string {
	if !session.Present() {
		return LoginPath
	}
	return registry.DashboardForRole(session.Role)
}
