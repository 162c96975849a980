// Package access contiene el modelo de control de acceso por rol: el catálogo
// cerrado de roles, el registro rol → dashboard, las secciones protegidas y el
// guard que decide si una petición entra o se redirige.
//
// Todo el paquete es puro: no hace I/O y su estado global se construye una sola
// vez al iniciar el proceso, por lo que puede leerse desde cualquier goroutine.
package access

// Role es el conjunto cerrado de roles de la aplicación.
// El valor cero es RoleUnknown: un string que no coincide con ningún rol
// conocido nunca se convierte en un rol válido por accidente.
type Role uint8

const (
	RoleUnknown Role = iota
	RoleES
	RoleRC
	RoleFIN
	RoleManager
	RoleAdmin
	RoleDistUser
	RoleDataEntry
)

// Nombres de cable tal como se guardan en users.role y viajan en el token.
var roleNames = [...]string{
	RoleUnknown:   "unknown",
	RoleES:        "ES",
	RoleRC:        "RC",
	RoleFIN:       "FIN",
	RoleManager:   "Manager",
	RoleAdmin:     "ADMIN",
	RoleDistUser:  "Dist User",
	RoleDataEntry: "Data Entry",
}

var rolesByName = func() map[string]Role {
	m := make(map[string]Role, len(roleNames)-1)
	for r, name := range roleNames {
		if Role(r) == RoleUnknown {
			continue
		}
		m[name] = Role(r)
	}
	return m
}()

// ParseRole convierte el nombre de cable en Role. La comparación es exacta
// ("fin" no es "FIN"); cualquier otro valor devuelve RoleUnknown.
func ParseRole(s string) Role {
	if r, ok := rolesByName[s]; ok {
		return r
	}
	return RoleUnknown
}

// String devuelve el nombre de cable del rol.
func (r Role) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return roleNames[RoleUnknown]
}

// Known informa si el rol pertenece al catálogo.
func (r Role) Known() bool {
	return r != RoleUnknown && int(r) < len(roleNames)
}

// AllRoles devuelve los roles conocidos en orden de declaración.
func AllRoles() []Role {
	return []Role{RoleES, RoleRC, RoleFIN, RoleManager, RoleAdmin, RoleDistUser, RoleDataEntry}
}

// RoleSet es un conjunto inmutable de roles.
type RoleSet struct {
	bits uint16
}

// NewRoleSet construye el conjunto. RoleUnknown nunca forma parte de él.
func NewRoleSet(roles ...Role) RoleSet {
	var s RoleSet
	for _, r := range roles {
		if r.Known() {
			s.bits |= 1 << r
		}
	}
	return s
}

// Contains informa si r pertenece al conjunto.
func (s RoleSet) Contains(r Role) bool {
	return r.Known() && s.bits&(1<<r) != 0
}

// Roles devuelve los miembros en orden de declaración.
func (s RoleSet) Roles() []Role {
	var out []Role
	for _, r := range AllRoles() {
		if s.Contains(r) {
			out = append(out, r)
		}
	}
	return out
}
