package entity

// District distrito operativo; dato de referencia para los formularios.
type District struct {
	ID     string
	Code   string
	Name   string
	Region string
	Active bool
}
